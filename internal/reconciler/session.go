// Package reconciler keeps a budget's allocations consistent while it
// is being edited.
//
// A Session wraps a budget and applies edits one at a time. After
// every edit, percentages and amounts are rederived so they stay
// consistent with each other and with the income: changing a
// percentage recomputes the amount, changing an amount recomputes the
// percentage, changing the income recomputes all amounts. Nothing is
// persisted until Save, and Cancel throws all edits away.
package reconciler

import (
	"regexp"
	"strconv"
	"strings"
	"time"

	"github.com/shopspring/decimal"
	"golang.org/x/exp/slices"

	"github.com/centsible/backend/internal/classifier"
)

const (
	incomeLimit   = 200_000_000
	maxNameLength = 20
	defaultColor  = "#FF6384"
)

// Percentage input is restricted to unsigned integers. Anything else,
// including decimals, leaves the allocation untouched.
var unsignedInteger = regexp.MustCompile(`^\d+$`)

// Allocation is one category's share of the budget.
type Allocation struct {
	ID         int64             `json:"id"`           // Negative for categories created in this session
	Name       string            `json:"name"`
	Color      string            `json:"color"`        // Hex color for charts
	Type       classifier.Bucket `json:"categoryType"` // BucketNone until the user picks one
	Percentage decimal.Decimal   `json:"percentage"`   // Share of income, 0 to 100, one decimal place
	Amount     decimal.Decimal   `json:"amount"`       // Derived from income and percentage, two decimal places
}

// Budget is the edited state: the income and its allocations.
type Budget struct {
	Income      int64        `json:"income"`
	Allocations []Allocation `json:"categories"`
}

// Session is an edit session over a budget. It is not safe for
// concurrent use.
type Session struct {
	committed Budget

	income          int64
	allocations     []Allocation
	pendingDeletion []int64
	lastSyntheticID int64
}

// NewSession starts an edit session on a budget. The budget is copied,
// the caller's value is never modified.
func NewSession(budget Budget) *Session {
	return &Session{
		committed:   cloneBudget(budget),
		income:      budget.Income,
		allocations: slices.Clone(budget.Allocations),
	}
}

func cloneBudget(budget Budget) Budget {
	budget.Allocations = slices.Clone(budget.Allocations)
	return budget
}

// Income returns the income as currently edited.
func (s *Session) Income() int64 {
	return s.income
}

// Allocations returns a copy of the allocations as currently edited.
func (s *Session) Allocations() []Allocation {
	return slices.Clone(s.allocations)
}

// TotalPercentage returns the sum of all allocation percentages.
func (s *Session) TotalPercentage() decimal.Decimal {
	total := decimal.Zero
	for _, allocation := range s.allocations {
		total = total.Add(allocation.Percentage)
	}

	return total
}

func (s *Session) find(id int64) int {
	return slices.IndexFunc(s.allocations, func(a Allocation) bool {
		return a.ID == id
	})
}

// ChangeIncome sets the income and rederives all allocation amounts.
// Negative values and values at or above the income limit are
// rejected silently, matching the behavior of the other edits.
func (s *Session) ChangeIncome(income int64) {
	if income < 0 || income >= incomeLimit {
		return
	}

	s.income = income
	for i := range s.allocations {
		s.allocations[i].Amount = amountFor(s.income, s.allocations[i].Percentage)
	}
}

// ChangePercentage sets an allocation's percentage from raw user
// input and rederives its amount.
//
// An empty string or "0" clears both the percentage and the amount.
// Input that is not an unsigned integer is ignored. The value is
// clamped so neither the allocation nor the budget total exceeds
// 100%.
func (s *Session) ChangePercentage(id int64, input string) error {
	i := s.find(id)
	if i < 0 {
		return ErrUnknownCategory
	}

	if input == "" || input == "0" {
		s.allocations[i].Percentage = decimal.Zero
		s.allocations[i].Amount = decimal.Zero
		return nil
	}

	if !unsignedInteger.MatchString(input) {
		return nil
	}

	value, err := strconv.ParseInt(input, 10, 64)
	if err != nil {
		return nil
	}

	percentage := decimal.NewFromInt(value)
	hundred := decimal.NewFromInt(100)

	if percentage.GreaterThan(hundred) {
		percentage = hundred
	}

	others := s.TotalPercentage().Sub(s.allocations[i].Percentage)
	if others.Add(percentage).GreaterThan(hundred) {
		percentage = hundred.Sub(others)
	}

	s.allocations[i].Percentage = percentage
	s.allocations[i].Amount = amountFor(s.income, percentage)
	return nil
}

// ChangeAmount sets an allocation's amount from raw user input and
// rederives its percentage.
//
// An empty string or "0" clears both values. Input that does not
// parse as a decimal is ignored. Negative amounts become zero and
// amounts above the income are clamped to the income.
func (s *Session) ChangeAmount(id int64, input string) error {
	i := s.find(id)
	if i < 0 {
		return ErrUnknownCategory
	}

	if input == "" || input == "0" {
		s.allocations[i].Percentage = decimal.Zero
		s.allocations[i].Amount = decimal.Zero
		return nil
	}

	amount, err := decimal.NewFromString(input)
	if err != nil {
		return nil
	}

	if amount.IsNegative() {
		amount = decimal.Zero
	}

	income := decimal.NewFromInt(s.income)
	if amount.GreaterThan(income) {
		amount = income
	}

	percentage := decimal.Zero
	if s.income > 0 {
		percentage = amount.Div(income).Mul(decimal.NewFromInt(100)).Round(1)
	}

	s.allocations[i].Amount = amount
	s.allocations[i].Percentage = percentage
	return nil
}

// AddCategory adds a new, empty allocation and returns its ID.
//
// The ID is negative so it can never collide with a persisted one.
// The persistence layer replaces it on save. IDs are strictly
// decreasing within a session.
func (s *Session) AddCategory(name string) (int64, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return 0, ErrNameMissing
	}

	if len(name) > maxNameLength {
		return 0, ErrNameTooLong
	}

	id := -time.Now().UnixNano()
	if id >= s.lastSyntheticID {
		id = s.lastSyntheticID - 1
	}
	s.lastSyntheticID = id

	s.allocations = append(s.allocations, Allocation{
		ID:         id,
		Name:       name,
		Color:      defaultColor,
		Percentage: decimal.Zero,
		Amount:     decimal.Zero,
	})

	return id, nil
}

// SetType sets the category type of an allocation.
func (s *Session) SetType(id int64, bucket classifier.Bucket) error {
	i := s.find(id)
	if i < 0 {
		return ErrUnknownCategory
	}

	s.allocations[i].Type = bucket
	return nil
}

// SetColor sets the chart color of an allocation.
func (s *Session) SetColor(id int64, color string) error {
	i := s.find(id)
	if i < 0 {
		return ErrUnknownCategory
	}

	s.allocations[i].Color = color
	return nil
}

// RemoveCategory removes an allocation from the session. The last
// remaining allocation cannot be removed.
func (s *Session) RemoveCategory(id int64) error {
	if len(s.allocations) <= 1 {
		return ErrLastCategory
	}

	i := s.find(id)
	if i < 0 {
		return ErrUnknownCategory
	}

	s.allocations = slices.Delete(s.allocations, i, i+1)
	s.pendingDeletion = append(s.pendingDeletion, id)
	return nil
}

// Save validates the session and commits it.
//
// It returns the committed budget and the IDs of persisted categories
// that were removed during the session, for the caller to delete from
// storage. Categories created and removed within the same session
// never had a persisted ID and are not reported.
func (s *Session) Save() (Budget, []int64, error) {
	total := s.TotalPercentage()
	if total.Sub(decimal.NewFromInt(100)).Abs().GreaterThan(decimal.RequireFromString("0.5")) {
		return Budget{}, nil, ValidationError{Total: total}
	}

	var missing []int64
	for _, allocation := range s.allocations {
		if allocation.Type == classifier.BucketNone {
			missing = append(missing, allocation.ID)
		}
	}
	if len(missing) > 0 {
		return Budget{}, nil, ValidationError{MissingTypeIDs: missing}
	}

	for i := range s.allocations {
		s.allocations[i].Amount = amountFor(s.income, s.allocations[i].Percentage)
	}

	var deleted []int64
	for _, id := range s.pendingDeletion {
		if id > 0 {
			deleted = append(deleted, id)
		}
	}

	s.committed = Budget{
		Income:      s.income,
		Allocations: slices.Clone(s.allocations),
	}
	s.pendingDeletion = nil

	return cloneBudget(s.committed), deleted, nil
}

// Cancel discards all edits since the last commit.
func (s *Session) Cancel() {
	s.income = s.committed.Income
	s.allocations = slices.Clone(s.committed.Allocations)
	s.pendingDeletion = nil
}

func amountFor(income int64, percentage decimal.Decimal) decimal.Decimal {
	if income <= 0 {
		return decimal.Zero
	}

	return decimal.NewFromInt(income).Mul(percentage).Div(decimal.NewFromInt(100)).Round(2)
}
