package models

import (
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// TransactionType is derived from the sign of the amount, it is not
// stored.
type TransactionType string

const (
	TransactionIncome  TransactionType = "income"
	TransactionExpense TransactionType = "expense"
)

// Transaction represents money moving in or out of an account.
//
// The sign of the amount encodes the direction: negative amounts are
// outflows, positive amounts are inflows. A transaction that is one leg
// of a transfer has a non-nil TransferID and is excluded from all
// budget calculations.
type Transaction struct {
	DefaultModel
	HouseholdID uuid.UUID  `json:"householdId"`
	Household   Household  `json:"-"`
	AccountID   uuid.UUID  `json:"accountId"`
	Account     Account    `json:"-"`
	CategoryID  *uuid.UUID `json:"categoryId"`
	Category    Category   `json:"-"`
	MemberID    *uuid.UUID `json:"memberId"`
	DebtID      *uuid.UUID `json:"debtId"`
	TransferID  *uuid.UUID `json:"transferId"`

	Date        time.Time       `json:"date"` // Time of day is currently only used for sorting
	Amount      decimal.Decimal `json:"amount" gorm:"type:DECIMAL(20,8);check:transaction_amount_not_zero,amount <> 0"`
	Payee       string          `json:"payee" example:"Corner store" default:""`
	Description string          `json:"description" default:""`
	Note        string          `json:"note" default:""`

	// ImportID stamps all rows created by one import batch so that the
	// batch can be rolled back later.
	ImportID *uuid.UUID `json:"importId"`

	// ImportHash is the SHA256 hash of a unique combination of values
	// to use in duplicate detection when importing transactions
	ImportHash string `json:"importHash" default:""`
}

// Type returns the transaction type derived from the sign of the
// amount.
func (t Transaction) Type() TransactionType {
	if t.Amount.IsNegative() {
		return TransactionExpense
	}
	return TransactionIncome
}

// AfterFind updates the timestamps to use UTC as
// timezone, not +0000. Yes, this is different.
//
// We already store them in UTC, but somehow reading
// them from the database returns them as +0000.
func (t *Transaction) AfterFind(tx *gorm.DB) (err error) {
	err = t.DefaultModel.AfterFind(tx)
	if err != nil {
		return err
	}

	t.Date = t.Date.In(time.UTC)
	return
}

// BeforeSave
//   - rejects zero amounts
//   - sets the timezone for the Date to UTC
//   - normalizes nil-able UUID fields
//   - trims whitespace from string fields
func (t *Transaction) BeforeSave(_ *gorm.DB) (err error) {
	if t.Amount.IsZero() {
		return ErrAmountZero
	}

	t.Payee = strings.TrimSpace(t.Payee)
	t.Description = strings.TrimSpace(t.Description)
	t.Note = strings.TrimSpace(t.Note)
	t.ImportHash = strings.TrimSpace(t.ImportHash)

	// Ensure that nil-able IDs are nil and not pointers to the nil UUID
	if t.CategoryID != nil && *t.CategoryID == uuid.Nil {
		t.CategoryID = nil
	}
	if t.MemberID != nil && *t.MemberID == uuid.Nil {
		t.MemberID = nil
	}
	if t.DebtID != nil && *t.DebtID == uuid.Nil {
		t.DebtID = nil
	}

	if t.Date.IsZero() {
		t.Date = time.Now().In(time.UTC)
	} else {
		t.Date = t.Date.In(time.UTC)
	}

	return
}
