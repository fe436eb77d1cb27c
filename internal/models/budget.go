package models

import (
	"strings"

	"github.com/google/uuid"
	"github.com/hearthledger/backend/internal/types"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// BudgetPeriod is the recurrence of a budget window.
type BudgetPeriod string

const (
	PeriodDaily   BudgetPeriod = "daily"
	PeriodWeekly  BudgetPeriod = "weekly"
	PeriodMonthly BudgetPeriod = "monthly"
	PeriodYearly  BudgetPeriod = "yearly"
	PeriodCustom  BudgetPeriod = "custom"
)

// BudgetDirection determines which side of the ledger a budget tracks.
type BudgetDirection string

const (
	DirectionExpense BudgetDirection = "expense"
	DirectionIncome  BudgetDirection = "income"
)

// budgetAmountMin is the smallest allowed budget limit.
var budgetAmountMin = decimal.New(1, -2)

// Budget is a spending or income limit over a repeating window.
//
// A budget can be scoped to a category (optionally including its whole
// subtree) and to a set of accounts. Transfer legs never count against
// a budget.
type Budget struct {
	DefaultModel
	HouseholdID uuid.UUID  `json:"householdId"`
	Household   Household  `json:"-"`
	CategoryID  *uuid.UUID `json:"categoryId"`
	Category    Category   `json:"-"`

	Name           string          `json:"name" example:"Groceries"`
	Note           string          `json:"note" default:""`
	Amount         decimal.Decimal `json:"amount" gorm:"type:DECIMAL(20,8)" example:"450"`
	Period         BudgetPeriod    `json:"period" example:"monthly"`
	Direction      BudgetDirection `json:"direction" example:"expense" default:"expense"`
	StartDate      types.Date      `json:"startDate" example:"2024-01-01"`
	EndDate        types.Date      `json:"endDate" example:"2024-12-31"`
	Rollover       bool            `json:"rollover" example:"false" default:"false"`
	IncludeSubtree bool            `json:"includeSubtree" example:"true" default:"false"`
	SortOrder      int             `json:"sortOrder" example:"0" default:"0"`

	// Accounts the budget is limited to. An empty set means all
	// accounts of the household.
	Accounts []Account `json:"-" gorm:"many2many:budget_accounts"`
}

func (b *Budget) BeforeSave(_ *gorm.DB) error {
	b.Name = strings.TrimSpace(b.Name)
	b.Note = strings.TrimSpace(b.Note)

	if b.Amount.LessThan(budgetAmountMin) {
		return ErrBudgetAmountTooLow
	}

	switch b.Period {
	case PeriodDaily, PeriodWeekly, PeriodMonthly, PeriodYearly, PeriodCustom:
	default:
		return ErrPeriodInvalid
	}

	if b.Direction == "" {
		b.Direction = DirectionExpense
	}
	if b.Direction != DirectionExpense && b.Direction != DirectionIncome {
		return ErrDirectionInvalid
	}

	if b.CategoryID != nil && *b.CategoryID == uuid.Nil {
		b.CategoryID = nil
	}

	if b.EndDate.Before(b.StartDate) {
		return ErrDateOrder
	}

	return nil
}

// BudgetComputeResult is the state of a budget for one window. It is
// derived on demand and never persisted.
type BudgetComputeResult struct {
	BudgetID    uuid.UUID       `json:"budgetId"`
	AsOf        types.Date      `json:"asOf"`
	WindowStart types.Date      `json:"windowStart"`
	WindowEnd   types.Date      `json:"windowEnd"`
	Limit       decimal.Decimal `json:"limit"`
	Spent       decimal.Decimal `json:"spent"`
	Income      decimal.Decimal `json:"income"`
	CarryPrev   decimal.Decimal `json:"carryPrev"`
	Available   decimal.Decimal `json:"available"`
}

// rolloverWindowCap bounds the carry chain so that a budget with a far
// away start date cannot make a single request scan unbounded history.
const rolloverWindowCap = 120

// Compute calculates the state of the budget as of a date.
//
// The window is [StartDate, min(asOf, EndDate)]. With rollover enabled
// the unspent remainder of each previous window is carried forward,
// starting at the oldest window that still has matching transactions.
func (b Budget) Compute(db *gorm.DB, asOf types.Date) (BudgetComputeResult, error) {
	result := BudgetComputeResult{
		BudgetID:  b.ID,
		AsOf:      asOf,
		Limit:     b.Amount,
		Spent:     decimal.Zero,
		Income:    decimal.Zero,
		CarryPrev: decimal.Zero,
		Available: b.Amount,
	}

	// Before the budget starts there is nothing to count
	if asOf.Before(b.StartDate) {
		result.WindowStart = b.StartDate
		result.WindowEnd = b.EndDate
		return result, nil
	}

	accountIDs, err := b.AccountIDs(db)
	if err != nil {
		return BudgetComputeResult{}, err
	}

	categoryIDs, err := b.categoryIDs(db)
	if err != nil {
		return BudgetComputeResult{}, err
	}

	result.WindowStart = b.StartDate
	result.WindowEnd = asOf.Min(b.EndDate)

	// The direction determines which side of the ledger is counted
	// against the limit
	used, err := b.sum(db, result.WindowStart, result.WindowEnd, accountIDs, categoryIDs)
	if err != nil {
		return BudgetComputeResult{}, err
	}

	if b.Direction == DirectionIncome {
		result.Income = used
	} else {
		result.Spent = used
	}

	if b.Rollover {
		result.CarryPrev, err = b.carry(db, accountIDs, categoryIDs)
		if err != nil {
			return BudgetComputeResult{}, err
		}
	}

	result.Available = b.Amount.Sub(used).Add(result.CarryPrev)
	return result, nil
}

// carry folds the unspent remainders of all previous windows into a
// single carry amount.
//
// Previous windows are derived by shifting both window boundaries back
// by one period length per step. The chain is anchored at the oldest
// window that ends on or after the earliest matching transaction and is
// capped at rolloverWindowCap windows. Custom-period budgets have no
// well-defined previous window and always carry zero.
func (b Budget) carry(db *gorm.DB, accountIDs, categoryIDs []uuid.UUID) (decimal.Decimal, error) {
	if b.Period == PeriodCustom {
		return decimal.Zero, nil
	}

	earliest, ok, err := b.earliestTransactionDate(db, accountIDs, categoryIDs)
	if err != nil {
		return decimal.Zero, err
	}
	if !ok {
		return decimal.Zero, nil
	}

	type window struct {
		start, end types.Date
	}

	var windows []window

	start, end := b.StartDate, b.EndDate
	for i := 0; i < rolloverWindowCap; i++ {
		start, end = b.previousWindow(start, end)
		if end.Before(earliest) {
			break
		}
		windows = append(windows, window{start, end})
	}

	// Fold forward from the oldest window so that overspending in one
	// window reduces the carry of all later ones
	carry := decimal.Zero
	for i := len(windows) - 1; i >= 0; i-- {
		spent, err := b.sum(db, windows[i].start, windows[i].end, accountIDs, categoryIDs)
		if err != nil {
			return decimal.Zero, err
		}

		carry = b.Amount.Sub(spent).Add(carry)
	}

	return carry, nil
}

// previousWindow shifts a window back by one period length.
func (b Budget) previousWindow(start, end types.Date) (types.Date, types.Date) {
	switch b.Period {
	case PeriodDaily:
		return start.AddDate(0, 0, -1), end.AddDate(0, 0, -1)
	case PeriodWeekly:
		return start.AddDate(0, 0, -7), end.AddDate(0, 0, -7)
	case PeriodMonthly:
		return start.AddDate(0, -1, 0), end.AddDate(0, -1, 0)
	default:
		return start.AddDate(-1, 0, 0), end.AddDate(-1, 0, 0)
	}
}

// sum returns the magnitude of all matching transactions in a window.
// Transactions on the wrong side of the ledger for the budget's
// direction are ignored.
func (b Budget) sum(db *gorm.DB, start, end types.Date, accountIDs, categoryIDs []uuid.UUID) (decimal.Decimal, error) {
	var sum decimal.NullDecimal

	query := b.transactionFilter(db, accountIDs, categoryIDs).
		Where("date >= date(?) AND date < date(?)", start, end.AddDate(0, 0, 1))

	if b.Direction == DirectionIncome {
		query = query.Select("SUM(amount)").Where("amount > 0")
	} else {
		query = query.Select("SUM(-amount)").Where("amount < 0")
	}

	err := query.Find(&sum).Error
	if err != nil {
		return decimal.Zero, err
	}

	// If no transactions are found, the value is nil
	if !sum.Valid {
		return decimal.Zero, nil
	}

	return sum.Decimal, nil
}

// earliestTransactionDate returns the date of the oldest transaction
// matching the budget's filters. ok is false when there is none.
func (b Budget) earliestTransactionDate(db *gorm.DB, accountIDs, categoryIDs []uuid.UUID) (types.Date, bool, error) {
	var earliest types.Date

	query := b.transactionFilter(db, accountIDs, categoryIDs).Select("MIN(date)")
	if b.Direction == DirectionIncome {
		query = query.Where("amount > 0")
	} else {
		query = query.Where("amount < 0")
	}

	row := query.Row()
	if row == nil {
		return types.Date{}, false, nil
	}

	var value any
	if err := row.Scan(&value); err != nil {
		return types.Date{}, false, err
	}
	if value == nil {
		return types.Date{}, false, nil
	}

	if err := earliest.Scan(value); err != nil {
		return types.Date{}, false, err
	}

	return earliest, true, nil
}

// transactionFilter builds the base query for all matching
// transactions: household, no transfer legs, optional account and
// category scope.
func (b Budget) transactionFilter(db *gorm.DB, accountIDs, categoryIDs []uuid.UUID) *gorm.DB {
	query := db.
		Model(&Transaction{}).
		Where("household_id = ?", b.HouseholdID).
		Where("transfer_id IS NULL")

	if len(accountIDs) > 0 {
		query = query.Where("account_id IN ?", accountIDs)
	}

	if len(categoryIDs) > 0 {
		query = query.Where("category_id IN ?", categoryIDs)
	}

	return query
}

// AccountIDs returns the IDs of the accounts the budget is limited to.
// An empty slice means the budget covers all accounts.
func (b Budget) AccountIDs(db *gorm.DB) ([]uuid.UUID, error) {
	var ids []uuid.UUID

	err := db.
		Table("budget_accounts").
		Where("budget_id = ?", b.ID).
		Pluck("account_id", &ids).Error

	return ids, err
}

// categoryIDs resolves the budget's category scope. With IncludeSubtree
// the whole subtree of the category is part of the scope.
func (b Budget) categoryIDs(db *gorm.DB) ([]uuid.UUID, error) {
	if b.CategoryID == nil {
		return nil, nil
	}

	var category Category
	err := db.Where("household_id = ?", b.HouseholdID).First(&category, *b.CategoryID).Error
	if err != nil {
		return nil, err
	}

	if !b.IncludeSubtree {
		return []uuid.UUID{category.ID}, nil
	}

	return category.SubtreeIDs(db)
}
