// Package importer parses transaction exports so they can be stored
// and classified like synced transactions.
package importer

import (
	"errors"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/gocarina/gocsv"
	"github.com/shopspring/decimal"

	"github.com/centsible/backend/internal/models"
)

var ErrNoTransactions = errors.New("the file contains no transactions")

// row maps one line of a transaction export.
//
// The categories column holds zero or more labels separated by ";".
type row struct {
	ID         string `csv:"id"`
	Date       string `csv:"date"`
	Descriptor string `csv:"descriptor"`
	Amount     string `csv:"amount"`
	Categories string `csv:"categories"`
	Pending    string `csv:"pending"`
}

// Parse reads a CSV transaction export.
//
// Each row must have a date in YYYY-MM-DD format and a decimal
// amount. The id column is optional, rows without one get an external
// ID derived from their content so re-imports do not duplicate them.
func Parse(f io.Reader) ([]models.Transaction, error) {
	var rows []row
	err := gocsv.Unmarshal(f, &rows)
	if err != nil {
		return nil, fmt.Errorf("error parsing CSV file: %w", err)
	}

	if len(rows) == 0 {
		return nil, ErrNoTransactions
	}

	transactions := make([]models.Transaction, 0, len(rows))
	for i, r := range rows {
		date, err := time.Parse("2006-01-02", strings.TrimSpace(r.Date))
		if err != nil {
			return nil, fmt.Errorf("row %d: %w", i+2, err)
		}

		amount, err := decimal.NewFromString(strings.TrimSpace(r.Amount))
		if err != nil {
			return nil, fmt.Errorf("row %d: the amount %q is not a valid number", i+2, r.Amount)
		}

		externalID := strings.TrimSpace(r.ID)
		if externalID == "" {
			externalID = fmt.Sprintf("import:%s:%s:%s", r.Date, strings.TrimSpace(r.Descriptor), amount)
		}

		var categories []string
		for _, category := range strings.Split(r.Categories, ";") {
			category = strings.TrimSpace(category)
			if category != "" {
				categories = append(categories, category)
			}
		}

		transactions = append(transactions, models.Transaction{
			ExternalID:         externalID,
			Descriptor:         strings.TrimSpace(r.Descriptor),
			ProviderCategories: categories,
			Amount:             amount,
			Date:               date,
			Pending:            strings.EqualFold(strings.TrimSpace(r.Pending), "true"),
		})
	}

	return transactions, nil
}
