package v1

import (
	"github.com/centsible/backend/internal/classifier"
	"github.com/centsible/backend/internal/models"
)

// MatchRuleEditable represents all user configurable parameters
type MatchRuleEditable struct {
	Priority uint              `json:"priority" example:"1" default:"0"`            // Rules with lower numbers are applied first
	Match    string            `json:"match" example:"Rent Payment*" default:""`    // Glob pattern matched against the descriptor
	Bucket   classifier.Bucket `json:"bucket" example:"rent"`                       // The bucket matching transactions are assigned to
}

func (editable MatchRuleEditable) model() models.MatchRule {
	return models.MatchRule{
		Priority: editable.Priority,
		Match:    editable.Match,
		Bucket:   editable.Bucket,
	}
}

type MatchRuleListResponse struct {
	Data       []models.MatchRule `json:"data"`                                             // List of match rules
	Error      *string            `json:"error" example:"the specified resource ID is not a valid number"` // The error, if any occurred
	Pagination *Pagination        `json:"pagination"`                                       // Pagination information
}

type MatchRuleCreateResponse struct {
	Data  []MatchRuleResponse `json:"data"`                                             // List of the created match rules or their respective error
	Error *string             `json:"error" example:"the specified resource ID is not a valid number"` // The error, if any occurred
}

func (m *MatchRuleCreateResponse) appendError(err error, currentStatus int) int {
	s := err.Error()
	m.Data = append(m.Data, MatchRuleResponse{Error: &s})

	// The final status code is the highest HTTP status code number
	newStatus := status(err)
	if newStatus > currentStatus {
		return newStatus
	}

	return currentStatus
}

type MatchRuleResponse struct {
	Data  *models.MatchRule `json:"data"`                                             // Data for the match rule
	Error *string           `json:"error" example:"the specified resource ID is not a valid number"` // The error, if any occurred
}

type MatchRuleQueryFilter struct {
	Bucket string `form:"bucket" filterField:"false"` // By the bucket the rule assigns
	Match  string `form:"match" filterField:"false"`  // By match pattern
	Offset uint   `form:"offset" filterField:"false"` // The offset of the first match rule returned. Defaults to 0.
	Limit  int    `form:"limit" filterField:"false"`  // Maximum number of match rules to return. Defaults to 50.
}
