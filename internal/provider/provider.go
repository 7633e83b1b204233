// Package provider fetches transactions from a transaction
// aggregation service.
package provider

import (
	"context"
	"time"

	"github.com/shopspring/decimal"
)

// Transaction is a transaction as the aggregator reports it.
type Transaction struct {
	ID         string          `json:"id"`         // ID assigned by the aggregator, stable across syncs
	Descriptor string          `json:"descriptor"` // Merchant or transaction name
	Categories []string        `json:"categories"` // Category labels supplied by the aggregator
	Amount     decimal.Decimal `json:"amount"`     // Positive amounts leave the account
	Date       time.Time       `json:"date"`       // Date the transaction took place
	Pending    bool            `json:"pending"`
}

// Source is a source of transactions.
//
// Transactions returns a page of transactions starting at the cursor
// together with the cursor for the next page. An empty returned
// cursor means there are no further pages. The first page is
// requested with an empty cursor.
type Source interface {
	Transactions(ctx context.Context, cursor string) ([]Transaction, string, error)
}
