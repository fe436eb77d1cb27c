package models

import (
	"strings"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// DebtKind distinguishes money the household owes from money owed to
// the household.
type DebtKind string

const (
	// DebtOwed is money someone else owes the household.
	DebtOwed DebtKind = "owed"

	// DebtOwing is money the household owes someone else.
	DebtOwing DebtKind = "owing"
)

// Debt tracks a loan or IOU. Transactions reference a debt to pay it
// down, the remaining balance is always derived from them.
type Debt struct {
	DefaultModel
	HouseholdID uuid.UUID       `json:"householdId"`
	Household   Household       `json:"-"`
	Name        string          `json:"name" example:"Car loan"`
	Kind        DebtKind        `json:"kind" example:"owing"`
	Amount      decimal.Decimal `json:"amount" gorm:"type:DECIMAL(20,8)" example:"5000"`
	Note        string          `json:"note" default:""`
	Closed      bool            `json:"closed" example:"false" default:"false"`
}

func (d *Debt) BeforeSave(_ *gorm.DB) error {
	d.Name = strings.TrimSpace(d.Name)
	d.Note = strings.TrimSpace(d.Note)

	if d.Kind != DebtOwed && d.Kind != DebtOwing {
		return ErrDebtKindInvalid
	}

	if !d.Amount.IsPositive() {
		return ErrAmountNotPositive
	}

	return nil
}

// Balance returns the amount still outstanding: the original amount
// minus the magnitudes of all transactions linked to the debt.
func (d Debt) Balance(db *gorm.DB) (decimal.Decimal, error) {
	var paid decimal.NullDecimal

	err := db.
		Model(&Transaction{}).
		Select("SUM(ABS(amount))").
		Where("debt_id = ?", d.ID).
		Find(&paid).
		Error
	if err != nil {
		return decimal.Zero, err
	}

	// If no transactions are found, the value is nil
	if !paid.Valid {
		return d.Amount, nil
	}

	return d.Amount.Sub(paid.Decimal), nil
}
