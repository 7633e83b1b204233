package models

import (
	"strconv"
	"time"

	"github.com/shopspring/decimal"
	"gorm.io/datatypes"
	"gorm.io/gorm"

	"github.com/centsible/backend/internal/classifier"
)

// Transaction represents a transaction fetched from the aggregator or
// imported from a file.
type Transaction struct {
	Model
	ExternalID         string                        `json:"externalId" gorm:"uniqueIndex" example:"yqPee1N4NLSznBgpEAMPtdEB4y8byBuQGyXdy"` // ID assigned by the aggregator
	Descriptor         string                        `json:"descriptor" example:"UBER EATS JUL 12"`                                         // Merchant or transaction name
	ProviderCategories datatypes.JSONSlice[string]   `json:"providerCategories" swaggertype:"array,string" example:"Food and Drink"`        // Category labels supplied by the aggregator
	Amount             decimal.Decimal               `json:"amount" gorm:"type:DECIMAL(20,8)" example:"23.42"`                              // Positive amounts leave the account
	Date               time.Time                     `json:"date" example:"2024-07-12T00:00:00Z"`                                           // Date the transaction took place
	Pending            bool                          `json:"pending" example:"false"`                                                       // Pending transactions are excluded from summaries
	Bucket             classifier.Bucket             `json:"bucket" example:"recreation"`                                                   // The bucket the transaction was classified into
}

func (t *Transaction) BeforeSave(_ *gorm.DB) error {
	// Normalize the date to UTC midnight, only the day is relevant
	t.Date = time.Date(t.Date.Year(), t.Date.Month(), t.Date.Day(), 0, 0, 0, 0, time.UTC)

	return nil
}

func (t *Transaction) AfterFind(tx *gorm.DB) error {
	err := t.Model.AfterFind(tx)
	if err != nil {
		return err
	}

	t.Date = t.Date.In(time.UTC)
	return nil
}

// ForClassification returns the transaction as the classifier
// consumes it.
func (t Transaction) ForClassification() classifier.Transaction {
	id := t.ExternalID
	if id == "" {
		id = strconv.FormatInt(t.ID, 10)
	}

	return classifier.Transaction{
		ID:                 id,
		Descriptor:         t.Descriptor,
		ProviderCategories: t.ProviderCategories,
		Amount:             t.Amount,
		Pending:            t.Pending,
		Bucket:             t.Bucket,
	}
}
