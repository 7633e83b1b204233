package models_test

import (
	"testing"

	"github.com/centsible/backend/internal/classifier"
	"github.com/centsible/backend/internal/models"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func (suite *TestSuiteStandard) TestBudgetTrimWhitespace() {
	budget := createTestBudget(suite.T(), models.Budget{Name: " Whitespace budget  ", Note: " A note\t"})

	assert.Equal(suite.T(), "Whitespace budget", budget.Name)
	assert.Equal(suite.T(), "A note", budget.Note)
}

func (suite *TestSuiteStandard) TestBudgetNameUnique() {
	createTestBudget(suite.T(), models.Budget{Name: "Unique"})

	err := models.DB.Create(&models.Budget{Name: "Unique"}).Error
	assert.ErrorIs(suite.T(), err, models.ErrBudgetNameNotUnique)
}

func (suite *TestSuiteStandard) TestBudgetIncomeBounds() {
	tests := []struct {
		name   string
		income int64
		err    error
	}{
		{"Zero", 0, nil},
		{"Upper bound", 199_999_999, nil},
		{"Negative", -1, models.ErrBudgetIncomeInvalid},
		{"Too large", 200_000_000, models.ErrBudgetIncomeInvalid},
	}

	for _, tt := range tests {
		suite.T().Run(tt.name, func(t *testing.T) {
			budget := models.Budget{Income: tt.income}
			budget.Name = tt.name

			err := models.DB.Create(&budget).Error
			if tt.err == nil {
				assert.NoError(t, err)
			} else {
				assert.ErrorIs(t, err, tt.err)
			}
		})
	}
}

func (suite *TestSuiteStandard) TestBudgetEditState() {
	budget := createTestBudget(suite.T(), models.Budget{Income: 2000})
	createTestCategory(suite.T(), models.Category{
		Name:         "Housing",
		BudgetID:     budget.ID,
		CategoryType: classifier.BucketRent,
		Percentage:   decimal.NewFromInt(60),
		Amount:       decimal.NewFromInt(1200),
	})

	state, err := budget.EditState(models.DB)
	require.NoError(suite.T(), err)

	assert.Equal(suite.T(), int64(2000), state.Income)
	require.Len(suite.T(), state.Allocations, 1)
	assert.Equal(suite.T(), "Housing", state.Allocations[0].Name)
	assert.Equal(suite.T(), classifier.BucketRent, state.Allocations[0].Type)
	assert.True(suite.T(), state.Allocations[0].Percentage.Equal(decimal.NewFromInt(60)))
}

func (suite *TestSuiteStandard) TestBudgetCategoriesOrder() {
	budget := createTestBudget(suite.T(), models.Budget{})
	first := createTestCategory(suite.T(), models.Category{BudgetID: budget.ID})
	second := createTestCategory(suite.T(), models.Category{BudgetID: budget.ID})

	categories, err := budget.Categories(models.DB)
	require.NoError(suite.T(), err)

	require.Len(suite.T(), categories, 2)
	assert.Equal(suite.T(), first.ID, categories[0].ID)
	assert.Equal(suite.T(), second.ID, categories[1].ID)
}
