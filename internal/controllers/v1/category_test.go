package v1_test

import (
	"fmt"
	"net/http"
	"testing"

	"github.com/centsible/backend/internal/classifier"
	v1 "github.com/centsible/backend/internal/controllers/v1"
	"github.com/centsible/backend/internal/models"
	"github.com/centsible/backend/test"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func (suite *TestSuiteStandard) TestCategoriesCreate() {
	budget := createTestBudget(suite.T(), v1.BudgetEditable{Income: 2000})

	category := createTestCategory(suite.T(), v1.CategoryEditable{
		Name:         "Housing",
		BudgetID:     budget.Data.ID,
		Color:        "#FF6384",
		CategoryType: classifier.BucketRent,
		Percentage:   decimal.NewFromInt(30),
		Amount:       decimal.NewFromInt(600),
	})

	assert.Equal(suite.T(), "Housing", category.Data.Name)
	assert.Equal(suite.T(), classifier.BucketRent, category.Data.CategoryType)
	assert.Contains(suite.T(), category.Data.Links.Budget, fmt.Sprintf("/v1/budgets/%d", budget.Data.ID))
}

func (suite *TestSuiteStandard) TestCategoriesCreateErrors() {
	budget := createTestBudget(suite.T(), v1.BudgetEditable{})

	tests := []struct {
		name   string
		body   any
		status int
	}{
		{"Broken JSON", `{ "name": "Groceries"`, http.StatusBadRequest},
		{"No budget with this ID", []v1.CategoryEditable{{Name: "Orphaned", BudgetID: 9999}}, http.StatusNotFound},
		{"Empty name", []v1.CategoryEditable{{Name: "", BudgetID: budget.Data.ID}}, http.StatusBadRequest},
	}

	for _, tt := range tests {
		suite.T().Run(tt.name, func(t *testing.T) {
			r := test.Request(t, http.MethodPost, "/v1/categories", tt.body)
			test.AssertHTTPStatus(t, &r, tt.status)
		})
	}
}

func (suite *TestSuiteStandard) TestCategoriesCreateDuplicateName() {
	budget := createTestBudget(suite.T(), v1.BudgetEditable{})
	createTestCategory(suite.T(), v1.CategoryEditable{Name: "Housing", BudgetID: budget.Data.ID})

	// The name is only taken within the same budget
	r := test.Request(suite.T(), http.MethodPost, "/v1/categories", []v1.CategoryEditable{{Name: "Housing", BudgetID: budget.Data.ID}})
	test.AssertHTTPStatus(suite.T(), &r, http.StatusBadRequest)

	var response v1.CategoryCreateResponse
	test.DecodeResponse(suite.T(), &r, &response)
	require.Len(suite.T(), response.Data, 1)
	assert.Equal(suite.T(), models.ErrCategoryNameNotUnique.Error(), *response.Data[0].Error)

	createTestCategory(suite.T(), v1.CategoryEditable{Name: "Housing"})
}

func (suite *TestSuiteStandard) TestCategoriesGetFilter() {
	budget := createTestBudget(suite.T(), v1.BudgetEditable{})
	otherBudget := createTestBudget(suite.T(), v1.BudgetEditable{})

	createTestCategory(suite.T(), v1.CategoryEditable{Name: "Housing", BudgetID: budget.Data.ID})
	createTestCategory(suite.T(), v1.CategoryEditable{Name: "Savings", BudgetID: budget.Data.ID})
	createTestCategory(suite.T(), v1.CategoryEditable{Name: "Housing", BudgetID: otherBudget.Data.ID})

	tests := []struct {
		name  string
		query string
		count int
	}{
		{"No filter", "", 3},
		{"Budget", fmt.Sprintf("budget=%d", budget.Data.ID), 2},
		{"Name", "name=Housing", 2},
		{"Budget and name", fmt.Sprintf("budget=%d&name=Housing", budget.Data.ID), 1},
		{"Limit", "limit=2", 2},
		{"Offset", "offset=2", 1},
	}

	for _, tt := range tests {
		suite.T().Run(tt.name, func(t *testing.T) {
			r := test.Request(t, http.MethodGet, fmt.Sprintf("/v1/categories?%s", tt.query), "")
			test.AssertHTTPStatus(t, &r, http.StatusOK)

			var response v1.CategoryListResponse
			test.DecodeResponse(t, &r, &response)
			assert.Len(t, response.Data, tt.count)
		})
	}
}

func (suite *TestSuiteStandard) TestCategoriesGetSingle() {
	category := createTestCategory(suite.T(), v1.CategoryEditable{})

	tests := []struct {
		name   string
		id     string
		status int
		method string
	}{
		{"GET Existing category", fmt.Sprintf("%d", category.Data.ID), http.StatusOK, http.MethodGet},
		{"GET No category with this ID", "9999", http.StatusNotFound, http.MethodGet},
		{"GET Invalid ID (string)", "definitelyNotANumber", http.StatusBadRequest, http.MethodGet},
		{"PATCH No category with this ID", "9999", http.StatusNotFound, http.MethodPatch},
		{"DELETE No category with this ID", "9999", http.StatusNotFound, http.MethodDelete},
	}

	for _, tt := range tests {
		suite.T().Run(tt.name, func(t *testing.T) {
			r := test.Request(t, tt.method, fmt.Sprintf("/v1/categories/%s", tt.id), "")
			test.AssertHTTPStatus(t, &r, tt.status)
		})
	}
}

func (suite *TestSuiteStandard) TestCategoriesUpdate() {
	category := createTestCategory(suite.T(), v1.CategoryEditable{Name: "Savings", CategoryType: classifier.BucketSavings})

	r := test.Request(suite.T(), http.MethodPatch, category.Data.Links.Self, map[string]any{
		"percentage": 25,
		"amount":     500,
	})
	test.AssertHTTPStatus(suite.T(), &r, http.StatusOK)

	var updated v1.CategoryResponse
	test.DecodeResponse(suite.T(), &r, &updated)

	// Only the fields in the request change
	assert.Equal(suite.T(), "Savings", updated.Data.Name)
	assert.Equal(suite.T(), classifier.BucketSavings, updated.Data.CategoryType)
	assert.True(suite.T(), updated.Data.Percentage.Equal(decimal.NewFromInt(25)), "got %s", updated.Data.Percentage)
}

func (suite *TestSuiteStandard) TestCategoriesDelete() {
	category := createTestCategory(suite.T(), v1.CategoryEditable{})

	r := test.Request(suite.T(), http.MethodDelete, category.Data.Links.Self, "")
	test.AssertHTTPStatus(suite.T(), &r, http.StatusNoContent)

	r = test.Request(suite.T(), http.MethodGet, category.Data.Links.Self, "")
	test.AssertHTTPStatus(suite.T(), &r, http.StatusNotFound)
}

func (suite *TestSuiteStandard) TestCategoriesOptions() {
	category := createTestCategory(suite.T(), v1.CategoryEditable{})

	tests := []struct {
		name   string
		path   string
		status int
		allow  string
	}{
		{"List", "/v1/categories", http.StatusNoContent, "GET, POST"},
		{"Existing category", fmt.Sprintf("/v1/categories/%d", category.Data.ID), http.StatusNoContent, "GET, PATCH, DELETE"},
		{"No category with this ID", "/v1/categories/9999", http.StatusNotFound, ""},
	}

	for _, tt := range tests {
		suite.T().Run(tt.name, func(t *testing.T) {
			r := test.Request(t, http.MethodOptions, tt.path, "")
			test.AssertHTTPStatus(t, &r, tt.status)

			if tt.allow != "" {
				assert.Equal(t, tt.allow, r.Header().Get("allow"))
			}
		})
	}
}
