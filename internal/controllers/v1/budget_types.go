package v1

import (
	"github.com/centsible/backend/internal/models"
)

// BudgetEditable represents all user configurable parameters
type BudgetEditable struct {
	Name   string `json:"name" example:"Morre's Budget" default:""`    // Name of the budget
	Note   string `json:"note" example:"My personal expenses" default:""` // Notes about the budget
	Income int64  `json:"income" example:"2000" default:"0"`           // Monthly income the allocations are derived from
}

func (editable BudgetEditable) model() models.Budget {
	return models.Budget{
		Name:   editable.Name,
		Note:   editable.Note,
		Income: editable.Income,
	}
}

type BudgetLinks struct {
	Self       string `json:"self" example:"https://example.com/api/v1/budgets/2"`             // The budget itself
	Categories string `json:"categories" example:"https://example.com/api/v1/categories?budget=2"` // Categories for this budget
	Edits      string `json:"edits" example:"https://example.com/api/v1/budgets/2/edits"`      // Endpoint applying edit sessions
}

type Budget struct {
	models.Budget
	Links BudgetLinks `json:"links"`

	// These fields are computed
	Categories []models.Category `json:"categories"` // Categories for the budget
}

type BudgetListResponse struct {
	Data       []Budget    `json:"data"`                                             // List of budgets
	Error      *string     `json:"error" example:"the specified resource ID is not a valid number"` // The error, if any occurred
	Pagination *Pagination `json:"pagination"`                                       // Pagination information
}

type BudgetCreateResponse struct {
	Data  []BudgetResponse `json:"data"`                                             // List of the created budgets or their respective error
	Error *string          `json:"error" example:"the specified resource ID is not a valid number"` // The error, if any occurred
}

func (b *BudgetCreateResponse) appendError(err error, currentStatus int) int {
	s := err.Error()
	b.Data = append(b.Data, BudgetResponse{Error: &s})

	// The final status code is the highest HTTP status code number
	newStatus := status(err)
	if newStatus > currentStatus {
		return newStatus
	}

	return currentStatus
}

type BudgetResponse struct {
	Data  *Budget `json:"data"`                                             // Data for the budget
	Error *string `json:"error" example:"the specified resource ID is not a valid number"` // The error, if any occurred
}

type BudgetQueryFilter struct {
	Name   string `form:"name" filterField:"false"`   // By name
	Note   string `form:"note" filterField:"false"`   // By note
	Offset uint   `form:"offset" filterField:"false"` // The offset of the first budget returned. Defaults to 0.
	Limit  int    `form:"limit" filterField:"false"`  // Maximum number of budgets to return. Defaults to 50.
}
