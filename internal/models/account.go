package models

import (
	"strings"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// Account represents an asset account of a household, e.g. a bank
// account or a cash wallet.
type Account struct {
	DefaultModel
	HouseholdID uuid.UUID `json:"householdId" gorm:"uniqueIndex:account_household_name"`
	Household   Household `json:"-"`
	Name        string    `json:"name" gorm:"uniqueIndex:account_household_name" example:"Checking"`
	Note        string    `json:"note" example:"Joint account" default:""`
	Archived    bool      `json:"archived" example:"false" default:"false"`
}

func (a *Account) BeforeSave(_ *gorm.DB) error {
	a.Name = strings.TrimSpace(a.Name)
	a.Note = strings.TrimSpace(a.Note)
	return nil
}

// Balance returns the sum of all transaction amounts for the account.
// Transfer legs count: an outgoing leg lowers the balance of the source
// account and the incoming leg raises the destination account.
func (a Account) Balance(db *gorm.DB) (decimal.Decimal, error) {
	var balance decimal.NullDecimal

	err := db.
		Model(&Transaction{}).
		Select("SUM(amount)").
		Where(&Transaction{AccountID: a.ID}).
		Find(&balance).
		Error
	if err != nil {
		return decimal.Zero, err
	}

	// If no transactions are found, the value is nil
	if !balance.Valid {
		return decimal.Zero, nil
	}

	return balance.Decimal, nil
}
