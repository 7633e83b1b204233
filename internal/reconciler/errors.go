package reconciler

import (
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/shopspring/decimal"
)

var (
	ErrLastCategory    = errors.New("a budget must keep at least one category")
	ErrUnknownCategory = errors.New("there is no category with this ID in the session")
	ErrNameMissing     = errors.New("the category name must not be empty")
	ErrNameTooLong     = errors.New("the category name must be 20 characters or fewer")
)

// ValidationError reports why a session cannot be saved. An unbalanced
// total is reported before missing category types.
type ValidationError struct {
	Total          decimal.Decimal
	MissingTypeIDs []int64
}

func (e ValidationError) Error() string {
	if len(e.MissingTypeIDs) > 0 {
		ids := make([]string, 0, len(e.MissingTypeIDs))
		for _, id := range e.MissingTypeIDs {
			ids = append(ids, strconv.FormatInt(id, 10))
		}

		return fmt.Sprintf("these categories do not have a category type selected: %s", strings.Join(ids, ", "))
	}

	return fmt.Sprintf("the total allocation is %s%%, it needs to be 100%%", e.Total)
}
