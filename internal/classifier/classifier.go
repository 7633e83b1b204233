// Package classifier assigns spending buckets to transactions.
//
// Classification is deterministic and runs in three stages with a
// documented precedence: user-defined match rules first, then the
// fixed descriptor override patterns, then the provider category
// keyword table. Transactions nothing matches land in the "other"
// bucket.
package classifier

import (
	"errors"
	"strings"

	"github.com/ryanuber/go-glob"
	"github.com/shopspring/decimal"
)

var ErrUnknownBucket = errors.New("there is no bucket with this name")

// Transaction is the classifier's view of a transaction. Pending
// transactions are skipped entirely.
type Transaction struct {
	ID                 string          `json:"id" example:"yqPee1N4NLSznBgpEAMPtdEB4y8byBuQGyXdy"` // Identifier assigned by the aggregator
	Descriptor         string          `json:"descriptor" example:"UBER EATS JUL 12"`              // Free-text merchant or transaction name
	ProviderCategories []string        `json:"providerCategories" example:"Food and Drink"`        // Category labels supplied by the aggregator
	Amount             decimal.Decimal `json:"amount" example:"23.42"`                             // Positive amounts leave the account
	Pending            bool            `json:"pending" example:"false"`
	Bucket             Bucket          `json:"bucket" example:"recreation"` // Set during classification
}

// UserRule matches a glob pattern against the transaction descriptor
// and forces a bucket. Rules are applied in the order given, the
// first match wins and takes precedence over all built-in rules.
type UserRule struct {
	Match  string
	Bucket Bucket
}

// Classifier classifies transactions. The zero value uses only the
// built-in rules.
type Classifier struct {
	rules []UserRule
}

// New returns a Classifier applying the given user rules before the
// built-in rules. The caller is responsible for passing them in
// priority order.
func New(rules ...UserRule) *Classifier {
	return &Classifier{rules: rules}
}

// Classify determines the bucket for a single transaction. It never
// fails: unmatched transactions are assigned BucketOther.
func (c *Classifier) Classify(t Transaction) Bucket {
	descriptor := strings.ToLower(t.Descriptor)

	for _, rule := range c.rules {
		if glob.Glob(rule.Match, t.Descriptor) {
			return rule.Bucket
		}
	}

	for _, override := range overrides {
		if override.re.MatchString(descriptor) {
			return override.bucket
		}
	}

	// Provider categories are checked against the whole table before
	// the descriptor is consulted.
	for _, rule := range keywordTable {
		for _, category := range t.ProviderCategories {
			category = strings.ToLower(category)
			for _, keyword := range rule.keywords {
				if strings.Contains(category, keyword) {
					return rule.bucket
				}
			}
		}
	}

	for _, rule := range keywordTable {
		for _, keyword := range rule.keywords {
			if strings.Contains(descriptor, keyword) {
				return rule.bucket
			}
		}
	}

	return BucketOther
}

// Run classifies all transactions and aggregates them per bucket.
// Pending transactions contribute to no bucket. Within a bucket,
// transactions keep their input order.
func (c *Classifier) Run(transactions []Transaction) Result {
	result := newResult()

	for _, t := range transactions {
		if t.Pending {
			continue
		}

		t.Bucket = c.Classify(t)

		result.Sums[t.Bucket] = result.Sums[t.Bucket].Add(t.Amount)
		result.Transactions[t.Bucket] = append(result.Transactions[t.Bucket], t)
	}

	return result
}
