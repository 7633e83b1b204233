package v1_test

import (
	"bytes"
	"errors"
	"fmt"
	"mime/multipart"
	"net/http"
	"testing"
	"time"

	"github.com/centsible/backend/internal/classifier"
	v1 "github.com/centsible/backend/internal/controllers/v1"
	"github.com/centsible/backend/internal/models"
	"github.com/centsible/backend/internal/provider"
	"github.com/centsible/backend/test"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// createTestTransaction stores a transaction directly. Transactions
// only enter the API via sync or import, so tests seed them this way.
func createTestTransaction(t *testing.T, transaction models.Transaction) models.Transaction {
	if transaction.ExternalID == "" {
		transaction.ExternalID = uuid.NewString()
	}

	if transaction.Date.IsZero() {
		transaction.Date = time.Date(2024, 7, 12, 0, 0, 0, 0, time.UTC)
	}

	err := models.DB.Create(&transaction).Error
	require.NoError(t, err)

	return transaction
}

// csvUpload builds a multipart request body with a single file field.
func csvUpload(t *testing.T, filename, content string) (*bytes.Buffer, map[string]string) {
	buf := new(bytes.Buffer)
	w := multipart.NewWriter(buf)

	part, err := w.CreateFormFile("file", filename)
	require.NoError(t, err)

	_, err = part.Write([]byte(content))
	require.NoError(t, err)
	require.NoError(t, w.Close())

	return buf, map[string]string{"Content-Type": w.FormDataContentType()}
}

func (suite *TestSuiteStandard) TestTransactionsGetFilter() {
	createTestTransaction(suite.T(), models.Transaction{
		Descriptor: "ACME Apartments",
		Amount:     decimal.NewFromInt(1200),
		Date:       time.Date(2024, 7, 1, 0, 0, 0, 0, time.UTC),
		Bucket:     classifier.BucketRent,
	})
	createTestTransaction(suite.T(), models.Transaction{
		Descriptor: "UBER EATS",
		Amount:     decimal.NewFromFloat(23.42),
		Date:       time.Date(2024, 7, 12, 0, 0, 0, 0, time.UTC),
		Bucket:     classifier.BucketRecreation,
	})
	createTestTransaction(suite.T(), models.Transaction{
		Descriptor: "STARBUCKS",
		Amount:     decimal.NewFromFloat(5.80),
		Date:       time.Date(2024, 8, 2, 0, 0, 0, 0, time.UTC),
		Pending:    true,
		Bucket:     classifier.BucketRecreation,
	})

	tests := []struct {
		name  string
		query string
		count int
	}{
		{"No filter", "", 3},
		{"Bucket", "bucket=recreation", 2},
		{"Bucket without matches", "bucket=loans", 0},
		{"Pending", "pending=true", 1},
		{"Not pending", "pending=false", 2},
		{"Month", "month=2024-07", 2},
		{"Month without matches", "month=2024-06", 0},
		{"Month and bucket", "month=2024-07&bucket=rent", 1},
		{"Limit", "limit=2", 2},
		{"Offset", "offset=2", 1},
	}

	for _, tt := range tests {
		suite.T().Run(tt.name, func(t *testing.T) {
			r := test.Request(t, http.MethodGet, fmt.Sprintf("/v1/transactions?%s", tt.query), "")
			test.AssertHTTPStatus(t, &r, http.StatusOK)

			var response v1.TransactionListResponse
			test.DecodeResponse(t, &r, &response)
			assert.Len(t, response.Data, tt.count)
		})
	}
}

func (suite *TestSuiteStandard) TestTransactionsGetFilterErrors() {
	tests := []struct {
		name  string
		query string
	}{
		{"Invalid bucket", "bucket=groceries"},
		{"Invalid month", "month=yesteryear"},
	}

	for _, tt := range tests {
		suite.T().Run(tt.name, func(t *testing.T) {
			r := test.Request(t, http.MethodGet, fmt.Sprintf("/v1/transactions?%s", tt.query), "")
			test.AssertHTTPStatus(t, &r, http.StatusBadRequest)
		})
	}
}

func (suite *TestSuiteStandard) TestTransactionsGetSingle() {
	transaction := createTestTransaction(suite.T(), models.Transaction{Descriptor: "UBER EATS", Amount: decimal.NewFromFloat(23.42)})

	tests := []struct {
		name   string
		id     string
		status int
		method string
	}{
		{"GET Existing transaction", fmt.Sprintf("%d", transaction.ID), http.StatusOK, http.MethodGet},
		{"GET No transaction with this ID", "9999", http.StatusNotFound, http.MethodGet},
		{"GET Invalid ID (string)", "definitelyNotANumber", http.StatusBadRequest, http.MethodGet},
		{"DELETE No transaction with this ID", "9999", http.StatusNotFound, http.MethodDelete},
	}

	for _, tt := range tests {
		suite.T().Run(tt.name, func(t *testing.T) {
			r := test.Request(t, tt.method, fmt.Sprintf("/v1/transactions/%s", tt.id), "")
			test.AssertHTTPStatus(t, &r, tt.status)
		})
	}
}

func (suite *TestSuiteStandard) TestTransactionsDelete() {
	transaction := createTestTransaction(suite.T(), models.Transaction{Descriptor: "STARBUCKS", Amount: decimal.NewFromFloat(5.80)})

	r := test.Request(suite.T(), http.MethodDelete, fmt.Sprintf("/v1/transactions/%d", transaction.ID), "")
	test.AssertHTTPStatus(suite.T(), &r, http.StatusNoContent)

	r = test.Request(suite.T(), http.MethodGet, fmt.Sprintf("/v1/transactions/%d", transaction.ID), "")
	test.AssertHTTPStatus(suite.T(), &r, http.StatusNotFound)
}

func (suite *TestSuiteStandard) TestTransactionsSummary() {
	createTestTransaction(suite.T(), models.Transaction{
		Descriptor: "ACME Apartments",
		Amount:     decimal.NewFromInt(1200),
		Bucket:     classifier.BucketRent,
	})
	createTestTransaction(suite.T(), models.Transaction{
		Descriptor: "DOORDASH ORDER 123",
		Amount:     decimal.NewFromFloat(23.42),
	})
	// Pending transactions are not part of the summary
	createTestTransaction(suite.T(), models.Transaction{
		Descriptor: "STARBUCKS",
		Amount:     decimal.NewFromFloat(5.80),
		Pending:    true,
	})

	r := test.Request(suite.T(), http.MethodGet, "/v1/transactions/summary", "")
	test.AssertHTTPStatus(suite.T(), &r, http.StatusOK)

	var response v1.SummaryResponse
	test.DecodeResponse(suite.T(), &r, &response)

	require.NotNil(suite.T(), response.Data)
	assert.True(suite.T(), response.Data.Total.Equal(decimal.NewFromFloat(1223.42)), "got %s", response.Data.Total)
	assert.True(suite.T(), response.Data.Sums["rent"].Equal(decimal.NewFromInt(1200)), "got %s", response.Data.Sums["rent"])
	assert.True(suite.T(), response.Data.Sums["recreation"].Equal(decimal.NewFromFloat(23.42)), "got %s", response.Data.Sums["recreation"])
	assert.Len(suite.T(), response.Data.Transactions["recreation"], 1)

	// Every bucket is present, even when it is empty
	assert.Len(suite.T(), response.Data.Sums, 9)
	assert.True(suite.T(), response.Data.Sums["loans"].IsZero())
}

func (suite *TestSuiteStandard) TestTransactionsSummaryMatchRules() {
	createTestTransaction(suite.T(), models.Transaction{
		Descriptor: "STARBUCKS STORE 1234",
		Amount:     decimal.NewFromFloat(5.80),
	})

	// The rule overrides the built-in classification, which would put
	// coffee shops into recreation
	createTestMatchRule(suite.T(), v1.MatchRuleEditable{Match: "STARBUCKS*", Bucket: classifier.BucketFood})

	r := test.Request(suite.T(), http.MethodGet, "/v1/transactions/summary", "")
	test.AssertHTTPStatus(suite.T(), &r, http.StatusOK)

	var response v1.SummaryResponse
	test.DecodeResponse(suite.T(), &r, &response)

	require.NotNil(suite.T(), response.Data)
	assert.True(suite.T(), response.Data.Sums["food"].Equal(decimal.NewFromFloat(5.80)), "got %s", response.Data.Sums["food"])
	assert.True(suite.T(), response.Data.Sums["recreation"].IsZero())
}

func (suite *TestSuiteStandard) TestTransactionsSyncNotConfigured() {
	r := test.Request(suite.T(), http.MethodPost, "/v1/transactions/sync", "")
	test.AssertHTTPStatus(suite.T(), &r, http.StatusServiceUnavailable)

	var response v1.SyncResponse
	test.DecodeResponse(suite.T(), &r, &response)
	require.NotNil(suite.T(), response.Error)
	assert.Contains(suite.T(), *response.Error, "PROVIDER_URL")
}

func (suite *TestSuiteStandard) TestTransactionsSync() {
	v1.TransactionSource = &provider.Memory{
		Items: []provider.Transaction{
			{
				ID:         "provider-1",
				Descriptor: "ACME Apartments",
				Amount:     decimal.NewFromInt(1200),
				Date:       time.Date(2024, 7, 1, 9, 30, 0, 0, time.UTC),
			},
			{
				ID:         "provider-2",
				Descriptor: "UBER EATS",
				Categories: []string{"Food and Drink"},
				Amount:     decimal.NewFromFloat(23.42),
				Date:       time.Date(2024, 7, 12, 0, 0, 0, 0, time.UTC),
				Pending:    true,
			},
		},
	}

	r := test.Request(suite.T(), http.MethodPost, "/v1/transactions/sync", "")
	test.AssertHTTPStatus(suite.T(), &r, http.StatusOK)

	var response v1.SyncResponse
	test.DecodeResponse(suite.T(), &r, &response)
	require.NotNil(suite.T(), response.Data)
	assert.Equal(suite.T(), 2, response.Data.Synced)
	assert.Equal(suite.T(), 0, response.Data.Updated)

	// The transactions are classified on the way in
	var listResponse v1.TransactionListResponse
	list := test.Request(suite.T(), http.MethodGet, "/v1/transactions?bucket=rent", "")
	test.DecodeResponse(suite.T(), &list, &listResponse)
	require.Len(suite.T(), listResponse.Data, 1)
	assert.Equal(suite.T(), "provider-1", listResponse.Data[0].ExternalID)

	// Syncing again without changes does nothing
	r = test.Request(suite.T(), http.MethodPost, "/v1/transactions/sync", "")
	test.AssertHTTPStatus(suite.T(), &r, http.StatusOK)
	test.DecodeResponse(suite.T(), &r, &response)
	assert.Equal(suite.T(), 0, response.Data.Synced)
	assert.Equal(suite.T(), 0, response.Data.Updated)
}

func (suite *TestSuiteStandard) TestTransactionsSyncUpdates() {
	source := &provider.Memory{
		Items: []provider.Transaction{
			{
				ID:         "provider-1",
				Descriptor: "STARBUCKS",
				Amount:     decimal.NewFromFloat(5.80),
				Date:       time.Date(2024, 8, 2, 0, 0, 0, 0, time.UTC),
				Pending:    true,
			},
		},
	}
	v1.TransactionSource = source

	r := test.Request(suite.T(), http.MethodPost, "/v1/transactions/sync", "")
	test.AssertHTTPStatus(suite.T(), &r, http.StatusOK)

	// The transaction settles with its final amount
	source.Items[0].Pending = false
	source.Items[0].Amount = decimal.NewFromFloat(6.10)

	r = test.Request(suite.T(), http.MethodPost, "/v1/transactions/sync", "")
	test.AssertHTTPStatus(suite.T(), &r, http.StatusOK)

	var response v1.SyncResponse
	test.DecodeResponse(suite.T(), &r, &response)
	require.NotNil(suite.T(), response.Data)
	assert.Equal(suite.T(), 0, response.Data.Synced)
	assert.Equal(suite.T(), 1, response.Data.Updated)

	var listResponse v1.TransactionListResponse
	list := test.Request(suite.T(), http.MethodGet, "/v1/transactions?pending=false", "")
	test.DecodeResponse(suite.T(), &list, &listResponse)
	require.Len(suite.T(), listResponse.Data, 1)
	assert.True(suite.T(), listResponse.Data[0].Amount.Equal(decimal.NewFromFloat(6.10)), "got %s", listResponse.Data[0].Amount)
}

func (suite *TestSuiteStandard) TestTransactionsSyncProviderError() {
	v1.TransactionSource = &provider.Memory{Err: errors.New("connection reset by peer")}

	r := test.Request(suite.T(), http.MethodPost, "/v1/transactions/sync", "")
	test.AssertHTTPStatus(suite.T(), &r, http.StatusInternalServerError)
}

func (suite *TestSuiteStandard) TestTransactionsImport() {
	content := "id,date,descriptor,amount,categories,pending\n" +
		"csv-1,2024-07-01,ACME Apartments,1200,Housing,false\n" +
		",2024-07-12,UBER EATS,23.42,Food and Drink;Delivery,false\n"

	body, headers := csvUpload(suite.T(), "transactions.csv", content)
	r := test.Request(suite.T(), http.MethodPost, "/v1/transactions/import", body, headers)
	test.AssertHTTPStatus(suite.T(), &r, http.StatusCreated)

	var response v1.ImportResponse
	test.DecodeResponse(suite.T(), &r, &response)
	require.NotNil(suite.T(), response.Data)
	assert.Equal(suite.T(), 2, response.Data.Imported)
	assert.Equal(suite.T(), 0, response.Data.Skipped)

	// Importing the same file again skips all rows
	body, headers = csvUpload(suite.T(), "transactions.csv", content)
	r = test.Request(suite.T(), http.MethodPost, "/v1/transactions/import", body, headers)
	test.AssertHTTPStatus(suite.T(), &r, http.StatusCreated)

	test.DecodeResponse(suite.T(), &r, &response)
	assert.Equal(suite.T(), 0, response.Data.Imported)
	assert.Equal(suite.T(), 2, response.Data.Skipped)

	var listResponse v1.TransactionListResponse
	list := test.Request(suite.T(), http.MethodGet, "/v1/transactions?bucket=rent", "")
	test.DecodeResponse(suite.T(), &list, &listResponse)
	assert.Len(suite.T(), listResponse.Data, 1)
}

func (suite *TestSuiteStandard) TestTransactionsImportErrors() {
	tests := []struct {
		name     string
		filename string
		content  string
		contains string
	}{
		{"Wrong file suffix", "transactions.xlsx", "id,date\n", "this endpoint only supports files of the following types"},
		{"Empty file", "empty.csv", "id,date,descriptor,amount,categories,pending\n", "the file contains no transactions"},
		{"Broken row", "broken.csv", "id,date,descriptor,amount,categories,pending\nx,someday,ACME,12,,false\n", "row 2"},
	}

	for _, tt := range tests {
		suite.T().Run(tt.name, func(t *testing.T) {
			body, headers := csvUpload(t, tt.filename, tt.content)
			r := test.Request(t, http.MethodPost, "/v1/transactions/import", body, headers)
			test.AssertHTTPStatus(t, &r, http.StatusBadRequest)

			var response v1.ImportResponse
			test.DecodeResponse(t, &r, &response)
			require.NotNil(t, response.Error)
			assert.Contains(t, *response.Error, tt.contains)
		})
	}
}

func (suite *TestSuiteStandard) TestTransactionsImportNoFile() {
	r := test.Request(suite.T(), http.MethodPost, "/v1/transactions/import", "")
	test.AssertHTTPStatus(suite.T(), &r, http.StatusBadRequest)

	var response v1.ImportResponse
	test.DecodeResponse(suite.T(), &r, &response)
	require.NotNil(suite.T(), response.Error)
	assert.Contains(suite.T(), *response.Error, "you must send a file")
}

func (suite *TestSuiteStandard) TestTransactionsOptions() {
	transaction := createTestTransaction(suite.T(), models.Transaction{Descriptor: "ACME Apartments", Amount: decimal.NewFromInt(1200)})

	tests := []struct {
		name   string
		path   string
		status int
		allow  string
	}{
		{"List", "/v1/transactions", http.StatusNoContent, "GET"},
		{"Summary", "/v1/transactions/summary", http.StatusNoContent, "GET"},
		{"Sync", "/v1/transactions/sync", http.StatusNoContent, "POST"},
		{"Import", "/v1/transactions/import", http.StatusNoContent, "POST"},
		{"Existing transaction", fmt.Sprintf("/v1/transactions/%d", transaction.ID), http.StatusNoContent, "GET, DELETE"},
		{"No transaction with this ID", "/v1/transactions/9999", http.StatusNotFound, ""},
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
