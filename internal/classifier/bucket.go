package classifier

import (
	"encoding/json"
	"fmt"
)

// Bucket is one of the fixed spending categories a transaction
// can be assigned to.
//
// The zero value is the "not yet selected" sentinel used by
// categories that have been created but not typed yet. It is never
// assigned to a transaction.
type Bucket uint8

const (
	BucketNone Bucket = iota
	BucketRent
	BucketUtilities
	BucketFood
	BucketTransportation
	BucketRecreation
	BucketInsurance
	BucketLoans
	BucketSavings
	BucketOther
)

var bucketNames = map[Bucket]string{
	BucketRent:           "rent",
	BucketUtilities:      "utilities",
	BucketFood:           "food",
	BucketTransportation: "transportation",
	BucketRecreation:     "recreation",
	BucketInsurance:      "insurance",
	BucketLoans:          "loans",
	BucketSavings:        "savings",
	BucketOther:          "other",
}

// Buckets returns all assignable buckets in their canonical order.
//
// The order doubles as the tie-break order for the keyword table, so
// do not reorder.
func Buckets() []Bucket {
	return []Bucket{
		BucketRent,
		BucketUtilities,
		BucketFood,
		BucketTransportation,
		BucketRecreation,
		BucketInsurance,
		BucketLoans,
		BucketSavings,
		BucketOther,
	}
}

func (b Bucket) String() string {
	if name, ok := bucketNames[b]; ok {
		return name
	}

	return ""
}

// Valid reports whether the bucket is one of the assignable buckets.
func (b Bucket) Valid() bool {
	_, ok := bucketNames[b]
	return ok
}

// ParseBucket returns the bucket with the given name.
func ParseBucket(name string) (Bucket, error) {
	for bucket, n := range bucketNames {
		if n == name {
			return bucket, nil
		}
	}

	return BucketNone, fmt.Errorf("%w: %q", ErrUnknownBucket, name)
}

func (b Bucket) MarshalJSON() ([]byte, error) {
	return json.Marshal(b.String())
}

func (b *Bucket) UnmarshalJSON(data []byte) error {
	var name string
	if err := json.Unmarshal(data, &name); err != nil {
		return err
	}

	if name == "" {
		*b = BucketNone
		return nil
	}

	parsed, err := ParseBucket(name)
	if err != nil {
		return err
	}

	*b = parsed
	return nil
}
