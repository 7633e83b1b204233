package v1_test

import (
	"net/http"
	"testing"

	"github.com/centsible/backend/internal/classifier"
	v1 "github.com/centsible/backend/internal/controllers/v1"
	"github.com/centsible/backend/internal/models"
	"github.com/centsible/backend/test"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
)

func (suite *TestSuiteStandard) TestCleanup() {
	budget := createTestBudget(suite.T(), v1.BudgetEditable{Name: "Test budget"})
	createTestCategory(suite.T(), v1.CategoryEditable{BudgetID: budget.Data.ID, CategoryType: classifier.BucketRent})
	createTestMatchRule(suite.T(), v1.MatchRuleEditable{Match: "Rent*", Bucket: classifier.BucketRent})
	createTestTransaction(suite.T(), models.Transaction{Descriptor: "ACME Apartments", Amount: decimal.NewFromInt(1200)})

	tests := []string{
		"/v1/budgets",
		"/v1/categories",
		"/v1/match-rules",
		"/v1/transactions",
	}

	// Delete
	recorder := test.Request(suite.T(), http.MethodDelete, "/v1?confirm=yes-please-delete-everything", "")
	test.AssertHTTPStatus(suite.T(), &recorder, http.StatusNoContent)

	// Verify
	for _, tt := range tests {
		suite.T().Run(tt, func(t *testing.T) {
			recorder := test.Request(t, http.MethodGet, tt, "")
			test.AssertHTTPStatus(t, &recorder, http.StatusOK)

			var response struct {
				Data []any `json:"data"`
			}
			test.DecodeResponse(t, &recorder, &response)
			assert.Len(t, response.Data, 0, "There are resources left for type %s", tt)
		})
	}
}

func (suite *TestSuiteStandard) TestCleanupFails() {
	tests := []struct {
		name string
		path string
	}{
		{"No confirmation", "/v1"},
		{"Wrong confirmation", "/v1?confirm=on-second-thought-rather-not"},
	}

	for _, tt := range tests {
		suite.T().Run(tt.name, func(t *testing.T) {
			recorder := test.Request(t, http.MethodDelete, tt.path, "")
			test.AssertHTTPStatus(t, &recorder, http.StatusBadRequest)

			var response struct {
				Error string `json:"error"`
			}
			test.DecodeResponse(t, &recorder, &response)
			assert.Contains(t, response.Error, "confirmation")
		})
	}
}

func (suite *TestSuiteStandard) TestCleanupDBError() {
	suite.CloseDB()

	recorder := test.Request(suite.T(), http.MethodDelete, "/v1?confirm=yes-please-delete-everything", "")
	test.AssertHTTPStatus(suite.T(), &recorder, http.StatusInternalServerError)
}
