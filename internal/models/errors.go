package models

import (
	"errors"
)

var (
	// ErrGeneral is returned for persistence failures that the user cannot
	// act on. The underlying error is logged, never returned.
	ErrGeneral = errors.New("an error occurred on the server during your request")

	// ErrResourceNotFound is wrapped with the resource name by the query
	// callback, see database.go.
	ErrResourceNotFound = errors.New("there is no")

	// ErrNoPermission is returned when the caller's role is below the
	// threshold for the operation.
	ErrNoPermission = errors.New("you do not have sufficient permissions for this request")
)

// Validation errors
var (
	ErrAmountZero          = errors.New("the amount of a transaction must not be zero")
	ErrAmountNotPositive   = errors.New("the amount must be larger than zero")
	ErrBudgetAmountTooLow  = errors.New("the budget amount must be at least 0.01")
	ErrDateOrder           = errors.New("the start date must not be after the end date")
	ErrPeriodInvalid       = errors.New("the budget period must be one of daily, weekly, monthly, yearly, custom")
	ErrDirectionInvalid    = errors.New("the budget direction must be either expense or income")
	ErrDebtKindInvalid     = errors.New("the debt kind must be either owed or owing")
	ErrCategoryTypeInvalid = errors.New("the category type must be either income or expense")
)

// Conflict errors
var (
	ErrSameAccountTransfer   = errors.New("the source and destination accounts of a transfer must be different")
	ErrCategoryHasChildren   = errors.New("this category has child categories and cannot be deleted")
	ErrCategoryCycle         = errors.New("a category cannot become a descendant of itself")
	ErrCategoryTypeMismatch  = errors.New("a child category must have the same type as its parent")
	ErrAccountNameNotUnique  = errors.New("the account name must be unique for the household")
	ErrCategoryNameNotUnique = errors.New("the category name must be unique for the parent category")
)
