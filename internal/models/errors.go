package models

import (
	"errors"
)

var (
	ErrGeneral          = errors.New("an error occurred on the server during your request")
	ErrResourceNotFound = errors.New("there is no")

	// Budget
	ErrBudgetNameNotUnique = errors.New("the budget name must be unique")
	ErrBudgetIncomeInvalid = errors.New("the income must be zero or positive and less than 200000000")

	// Category
	ErrCategoryNameNotUnique = errors.New("the category name must be unique for the budget")
	ErrCategoryNameEmpty     = errors.New("the category name must not be empty")

	// Transaction
	ErrTransactionIDNotUnique = errors.New("a transaction with this external ID already exists")

	// MatchRule
	ErrMatchRuleMatchEmpty    = errors.New("the match pattern must not be empty")
	ErrMatchRuleBucketInvalid = errors.New("the match rule must have a valid bucket")
)
