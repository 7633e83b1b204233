package models

import (
	"strings"

	"gorm.io/gorm"

	"github.com/centsible/backend/internal/classifier"
)

// MatchRule overrides the classification of transactions whose
// descriptor matches a glob pattern.
type MatchRule struct {
	Model
	Priority uint              `json:"priority" example:"1"`          // Rules with lower numbers are applied first
	Match    string            `json:"match" example:"Rent Payment*"` // Glob pattern matched against the descriptor
	Bucket   classifier.Bucket `json:"bucket" example:"rent"`         // The bucket matching transactions are assigned to
}

func (r *MatchRule) BeforeSave(_ *gorm.DB) error {
	r.Match = strings.TrimSpace(r.Match)
	if r.Match == "" {
		return ErrMatchRuleMatchEmpty
	}

	if !r.Bucket.Valid() {
		return ErrMatchRuleBucketInvalid
	}

	return nil
}

// UserRule returns the rule as the classifier consumes it.
func (r MatchRule) UserRule() classifier.UserRule {
	return classifier.UserRule{
		Match:  r.Match,
		Bucket: r.Bucket,
	}
}

// UserRules returns all match rules in application order.
func UserRules(db *gorm.DB) ([]classifier.UserRule, error) {
	var matchRules []MatchRule
	err := db.Order("priority asc, id asc").Find(&matchRules).Error
	if err != nil {
		return nil, err
	}

	rules := make([]classifier.UserRule, 0, len(matchRules))
	for _, matchRule := range matchRules {
		rules = append(rules, matchRule.UserRule())
	}

	return rules, nil
}
