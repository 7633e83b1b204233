package models

import (
	"strings"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"github.com/centsible/backend/internal/classifier"
	"github.com/centsible/backend/internal/reconciler"
)

// Category represents one allocation of a budget's income.
type Category struct {
	Model
	Name         string            `json:"name" gorm:"uniqueIndex:category_budget_name" example:"Housing"` // Name of the category
	BudgetID     int64             `json:"budgetId" gorm:"uniqueIndex:category_budget_name" example:"1"`   // ID of the budget the category belongs to
	Budget       Budget            `json:"-"`
	Color        string            `json:"color" example:"#FF6384"`                       // Hex color for charts
	CategoryType classifier.Bucket `json:"categoryType" example:"rent"`                   // The spending bucket the category tracks
	Percentage   decimal.Decimal   `json:"percentage" gorm:"type:DECIMAL(20,8)" example:"30"` // Share of the budget's income
	Amount       decimal.Decimal   `json:"amount" gorm:"type:DECIMAL(20,8)" example:"600"`    // Amount derived from income and percentage
}

func (c *Category) BeforeCreate(tx *gorm.DB) error {
	if strings.TrimSpace(c.Name) == "" {
		return ErrCategoryNameEmpty
	}

	return c.checkIntegrity(tx)
}

func (c *Category) BeforeUpdate(tx *gorm.DB) error {
	if tx.Statement.Changed("BudgetID") {
		return c.checkIntegrity(tx)
	}

	return nil
}

// checkIntegrity verifies references to other resources
func (c *Category) checkIntegrity(tx *gorm.DB) error {
	return tx.First(&Budget{}, c.BudgetID).Error
}

func (c *Category) BeforeSave(_ *gorm.DB) error {
	c.Name = strings.TrimSpace(c.Name)
	return nil
}

// Allocation returns the category as an edit session works on it.
func (c Category) Allocation() reconciler.Allocation {
	return reconciler.Allocation{
		ID:         c.ID,
		Name:       c.Name,
		Color:      c.Color,
		Type:       c.CategoryType,
		Percentage: c.Percentage,
		Amount:     c.Amount,
	}
}

// CategoryFromAllocation converts a saved allocation back into a
// category. Negative IDs mark allocations created during the session,
// the database assigns their real ID on insert.
func CategoryFromAllocation(budgetID int64, allocation reconciler.Allocation) Category {
	category := Category{
		Name:         allocation.Name,
		BudgetID:     budgetID,
		Color:        allocation.Color,
		CategoryType: allocation.Type,
		Percentage:   allocation.Percentage,
		Amount:       allocation.Amount,
	}

	if allocation.ID > 0 {
		category.ID = allocation.ID
	}

	return category
}
