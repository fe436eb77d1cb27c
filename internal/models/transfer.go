package models

import (
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

var (
	ErrTransferAmountMismatch = errors.New("the two legs of a transfer must have amounts of equal magnitude and opposite sign")
	ErrTransferLegDirection   = errors.New("the outgoing leg of a transfer must have a negative amount")
)

// Transfer links two transactions that together represent money moving
// between two accounts of the same household.
//
// Invariants: the outgoing leg has a negative amount, the incoming leg
// a positive one of the same magnitude, and both legs belong to
// different accounts. A transfer only ever exists together with both
// legs, they are created and deleted as a unit.
type Transfer struct {
	DefaultModel
	HouseholdID       uuid.UUID   `json:"householdId"`
	Household         Household   `json:"-"`
	FromTransactionID uuid.UUID   `json:"fromTransactionId"`
	FromTransaction   Transaction `json:"-" gorm:"foreignKey:FromTransactionID"`
	ToTransactionID   uuid.UUID   `json:"toTransactionId"`
	ToTransaction     Transaction `json:"-" gorm:"foreignKey:ToTransactionID"`
}

// CreateTransfer creates both legs and the transfer record as a single
// atomic unit. Either all three rows are written or none are.
//
// The from leg must have a negative amount, the to leg the same
// magnitude with a positive sign, and the account IDs must differ.
func CreateTransfer(db *gorm.DB, from, to Transaction) (Transfer, error) {
	if from.AccountID == to.AccountID {
		return Transfer{}, ErrSameAccountTransfer
	}

	if !from.Amount.IsNegative() {
		return Transfer{}, ErrTransferLegDirection
	}

	if !from.Amount.Neg().Equal(to.Amount) {
		return Transfer{}, ErrTransferAmountMismatch
	}

	var transfer Transfer

	err := db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(&from).Error; err != nil {
			return err
		}

		if err := tx.Create(&to).Error; err != nil {
			return err
		}

		transfer = Transfer{
			HouseholdID:       from.HouseholdID,
			FromTransactionID: from.ID,
			ToTransactionID:   to.ID,
		}
		if err := tx.Create(&transfer).Error; err != nil {
			return err
		}

		// Stamp both legs with the transfer so that budget queries can
		// exclude them with a single IS NULL filter. UpdateColumn skips
		// the transaction hooks, which would run on a zero-value model
		err := tx.Model(&Transaction{}).
			Where("id IN ?", []uuid.UUID{from.ID, to.ID}).
			UpdateColumn("transfer_id", transfer.ID).Error
		if err != nil {
			return err
		}

		return nil
	})
	if err != nil {
		return Transfer{}, err
	}

	transfer.FromTransaction = from
	transfer.ToTransaction = to
	transfer.FromTransaction.TransferID = &transfer.ID
	transfer.ToTransaction.TransferID = &transfer.ID

	return transfer, nil
}

// NewTransferLegs builds the two legs for a transfer of amount from one
// account to another. The amount must be positive.
func NewTransferLegs(householdID, fromAccountID, toAccountID uuid.UUID, amount decimal.Decimal, date time.Time, note string) (from, to Transaction, err error) {
	if !amount.IsPositive() {
		return Transaction{}, Transaction{}, ErrAmountNotPositive
	}

	from = Transaction{
		HouseholdID: householdID,
		AccountID:   fromAccountID,
		Amount:      amount.Neg(),
		Date:        date,
		Note:        note,
	}

	to = Transaction{
		HouseholdID: householdID,
		AccountID:   toAccountID,
		Amount:      amount,
		Date:        date,
		Note:        note,
	}

	return from, to, nil
}

// DeleteTransfer removes the transfer and both legs as a unit.
func DeleteTransfer(db *gorm.DB, transfer Transfer) error {
	return db.Transaction(func(tx *gorm.DB) error {
		// Unlink the legs first so that the foreign key on transfer_id
		// does not block deleting the transfer row
		err := tx.Model(&Transaction{}).
			Where("transfer_id = ?", transfer.ID).
			UpdateColumn("transfer_id", nil).Error
		if err != nil {
			return err
		}

		if err := tx.Delete(&Transfer{}, transfer.ID).Error; err != nil {
			return err
		}

		return tx.Delete(&Transaction{}, []uuid.UUID{transfer.FromTransactionID, transfer.ToTransactionID}).Error
	})
}
