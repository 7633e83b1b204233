package classifier

import "github.com/shopspring/decimal"

// Result is the aggregation of a classifier run. Every assignable
// bucket is present in both maps, buckets without transactions with a
// zero sum and an empty list.
type Result struct {
	Sums         map[Bucket]decimal.Decimal
	Transactions map[Bucket][]Transaction
}

func newResult() Result {
	result := Result{
		Sums:         make(map[Bucket]decimal.Decimal, len(bucketNames)),
		Transactions: make(map[Bucket][]Transaction, len(bucketNames)),
	}

	// Empty buckets marshal as 0 and [], not null
	for _, bucket := range Buckets() {
		result.Sums[bucket] = decimal.Zero
		result.Transactions[bucket] = make([]Transaction, 0)
	}

	return result
}

// Total returns the sum over all buckets. It equals the sum of the
// amounts of all non-pending input transactions.
func (r Result) Total() decimal.Decimal {
	total := decimal.Zero
	for _, sum := range r.Sums {
		total = total.Add(sum)
	}

	return total
}
