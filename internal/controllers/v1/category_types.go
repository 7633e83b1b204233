package v1

import (
	"fmt"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"

	"github.com/centsible/backend/internal/classifier"
	"github.com/centsible/backend/internal/httputil"
	"github.com/centsible/backend/internal/models"
)

// CategoryEditable represents all user configurable parameters
type CategoryEditable struct {
	Name         string            `json:"name" example:"Housing" default:""`       // Name of the category
	BudgetID     int64             `json:"budgetId" example:"1"`                    // ID of the budget the category belongs to
	Color        string            `json:"color" example:"#FF6384" default:""`      // Hex color for charts
	CategoryType classifier.Bucket `json:"categoryType" example:"rent"`             // The spending bucket the category tracks
	Percentage   decimal.Decimal   `json:"percentage" example:"30" default:"0"`     // Share of the budget's income
	Amount       decimal.Decimal   `json:"amount" example:"600" default:"0"`        // Amount derived from income and percentage
}

func (editable CategoryEditable) model() models.Category {
	return models.Category{
		Name:         editable.Name,
		BudgetID:     editable.BudgetID,
		Color:        editable.Color,
		CategoryType: editable.CategoryType,
		Percentage:   editable.Percentage,
		Amount:       editable.Amount,
	}
}

type CategoryLinks struct {
	Self   string `json:"self" example:"https://example.com/api/v1/categories/4"` // The category itself
	Budget string `json:"budget" example:"https://example.com/api/v1/budgets/1"`  // The budget the category belongs to
}

type Category struct {
	models.Category
	Links CategoryLinks `json:"links"`
}

func newCategoryResource(c *gin.Context, model models.Category) Category {
	url := httputil.RequestPathV1(c)

	return Category{
		Category: model,
		Links: CategoryLinks{
			Self:   fmt.Sprintf("%s/categories/%d", url, model.ID),
			Budget: fmt.Sprintf("%s/budgets/%d", url, model.BudgetID),
		},
	}
}

type CategoryListResponse struct {
	Data       []Category  `json:"data"`                                             // List of categories
	Error      *string     `json:"error" example:"the specified resource ID is not a valid number"` // The error, if any occurred
	Pagination *Pagination `json:"pagination"`                                       // Pagination information
}

type CategoryCreateResponse struct {
	Data  []CategoryResponse `json:"data"`                                             // List of the created categories or their respective error
	Error *string            `json:"error" example:"the specified resource ID is not a valid number"` // The error, if any occurred
}

func (c *CategoryCreateResponse) appendError(err error, currentStatus int) int {
	s := err.Error()
	c.Data = append(c.Data, CategoryResponse{Error: &s})

	// The final status code is the highest HTTP status code number
	newStatus := status(err)
	if newStatus > currentStatus {
		return newStatus
	}

	return currentStatus
}

type CategoryResponse struct {
	Data  *Category `json:"data"`                                             // Data for the category
	Error *string   `json:"error" example:"the specified resource ID is not a valid number"` // The error, if any occurred
}

type CategoryQueryFilter struct {
	BudgetID int64  `form:"budget"`                     // By ID of the budget
	Name     string `form:"name" filterField:"false"`   // By name
	Offset   uint   `form:"offset" filterField:"false"` // The offset of the first category returned. Defaults to 0.
	Limit    int    `form:"limit" filterField:"false"`  // Maximum number of categories to return. Defaults to 50.
}
