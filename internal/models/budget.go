package models

import (
	"strings"

	"gorm.io/gorm"

	"github.com/centsible/backend/internal/reconciler"
)

// Budget represents a budget
//
// A budget is the highest level of organization in Centsible, all other
// resources reference it directly or transitively.
type Budget struct {
	Model
	Name   string `json:"name" gorm:"uniqueIndex" example:"Morre's Budget"` // Name of the budget
	Note   string `json:"note" example:"My personal expenses"`              // Notes about the budget
	Income int64  `json:"income" example:"2000"`                            // Monthly income the allocations are derived from
}

func (b *Budget) BeforeSave(_ *gorm.DB) error {
	b.Name = strings.TrimSpace(b.Name)
	b.Note = strings.TrimSpace(b.Note)

	return nil
}

func (b *Budget) AfterSave(_ *gorm.DB) error {
	if b.Income < 0 || b.Income >= 200_000_000 {
		return ErrBudgetIncomeInvalid
	}

	return nil
}

// Categories returns all categories of the budget.
func (b Budget) Categories(db *gorm.DB) ([]Category, error) {
	var categories []Category
	err := db.Where(&Category{BudgetID: b.ID}).Order("id asc").Find(&categories).Error
	if err != nil {
		return nil, err
	}

	return categories, nil
}

// EditState assembles the budget and its categories into the
// representation an edit session works on.
func (b Budget) EditState(db *gorm.DB) (reconciler.Budget, error) {
	categories, err := b.Categories(db)
	if err != nil {
		return reconciler.Budget{}, err
	}

	allocations := make([]reconciler.Allocation, 0, len(categories))
	for _, category := range categories {
		allocations = append(allocations, category.Allocation())
	}

	return reconciler.Budget{
		Income:      b.Income,
		Allocations: allocations,
	}, nil
}
