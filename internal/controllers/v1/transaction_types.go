package v1

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/centsible/backend/internal/classifier"
	"github.com/centsible/backend/internal/models"
)

type TransactionListResponse struct {
	Data       []models.Transaction `json:"data"`                                             // List of transactions
	Error      *string              `json:"error" example:"the specified resource ID is not a valid number"` // The error, if any occurred
	Pagination *Pagination          `json:"pagination"`                                       // Pagination information
}

type TransactionResponse struct {
	Data  *models.Transaction `json:"data"`                                             // Data for the transaction
	Error *string             `json:"error" example:"the specified resource ID is not a valid number"` // The error, if any occurred
}

type TransactionQueryFilter struct {
	Bucket  string    `form:"bucket" filterField:"false"`                                // By the bucket the transaction was classified into
	Pending bool      `form:"pending"`                                                   // Is the transaction pending?
	Month   time.Time `form:"month" time_format:"2006-01" time_utc:"1" example:"2024-07"` // Only transactions in this month
	Offset  uint      `form:"offset" filterField:"false"`                                // The offset of the first transaction returned. Defaults to 0.
	Limit   int       `form:"limit" filterField:"false"`                                 // Maximum number of transactions to return. Defaults to 50.
}

// Summary is the aggregation of classified transactions per bucket.
type Summary struct {
	Total        decimal.Decimal                     `json:"total" example:"1753.15"` // Sum over all buckets
	Sums         map[string]decimal.Decimal          `json:"sums"`                    // Sum per bucket
	Transactions map[string][]classifier.Transaction `json:"transactions"`            // Transactions per bucket, in input order
}

func newSummary(result classifier.Result) Summary {
	summary := Summary{
		Total:        result.Total(),
		Sums:         make(map[string]decimal.Decimal, len(result.Sums)),
		Transactions: make(map[string][]classifier.Transaction, len(result.Transactions)),
	}

	for _, bucket := range classifier.Buckets() {
		summary.Sums[bucket.String()] = result.Sums[bucket]
		summary.Transactions[bucket.String()] = result.Transactions[bucket]
	}

	return summary
}

type SummaryResponse struct {
	Data  *Summary `json:"data"`                                             // The classification summary
	Error *string  `json:"error" example:"the specified resource ID is not a valid number"` // The error, if any occurred
}

// SyncResult reports what a sync with the transaction provider changed.
type SyncResult struct {
	Synced  int `json:"synced" example:"17"` // Number of new transactions stored
	Updated int `json:"updated" example:"2"` // Number of existing transactions updated
}

type SyncResponse struct {
	Data  *SyncResult `json:"data"`                                           // The sync result
	Error *string     `json:"error" example:"no transaction provider is configured, set PROVIDER_URL to enable syncing"` // The error, if any occurred
}

// ImportResult reports what a file import changed.
type ImportResult struct {
	Imported int `json:"imported" example:"42"` // Number of transactions stored
	Skipped  int `json:"skipped" example:"3"`   // Number of rows skipped because they were already imported
}

type ImportResponse struct {
	Data  *ImportResult `json:"data"`                                         // The import result
	Error *string       `json:"error" example:"you must send a file to this endpoint"` // The error, if any occurred
}
