package importer

import (
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/hearthledger/backend/internal/models"
	"gorm.io/gorm"
)

var (
	// ErrPairIndex is returned for a confirmed pair that references a
	// row outside the batch.
	ErrPairIndex = errors.New("a confirmed transfer references a row that is not part of the batch")

	// ErrPairConflict is returned for a confirmed pair that shares a leg
	// with an earlier confirmed pair.
	ErrPairConflict = errors.New("a row can only be part of one transfer")
)

// Commit writes a batch to the database.
//
// Every created transaction is stamped with a fresh server-generated
// import id, the handle for a later rollback. Confirmed transfer pairs
// are created as atomic units of two legs and the transfer link, the
// remaining rows become plain transactions.
//
// A failing row or pair does not abort the batch, it is reported in the
// result instead. Pairs are processed in order, a pair that shares a
// leg with an already accepted pair is rejected.
func Commit(db *gorm.DB, batch Batch) (Result, error) {
	if len(batch.Rows) > maxBatchRows {
		return Result{}, ErrBatchTooLarge
	}

	result := Result{
		ImportID: uuid.New(),
		Failures: make([]Failure, 0),
	}

	// Rows that end up as transfer legs are excluded from the plain
	// transaction import
	inTransfer := make(map[int]bool, 2*len(batch.Transfers))

	for _, pair := range batch.Transfers {
		if pair.FromIndex < 0 || pair.FromIndex >= len(batch.Rows) ||
			pair.ToIndex < 0 || pair.ToIndex >= len(batch.Rows) {
			result.Failures = append(result.Failures, Failure{
				Indexes: []int{pair.FromIndex, pair.ToIndex},
				Error:   ErrPairIndex.Error(),
			})
			continue
		}

		if inTransfer[pair.FromIndex] || inTransfer[pair.ToIndex] {
			result.Failures = append(result.Failures, Failure{
				Indexes: []int{pair.FromIndex, pair.ToIndex},
				Error:   ErrPairConflict.Error(),
			})
			continue
		}

		from := transaction(batch, batch.Rows[pair.FromIndex], result.ImportID)
		to := transaction(batch, batch.Rows[pair.ToIndex], result.ImportID)

		_, err := models.CreateTransfer(db, from, to)
		if err != nil {
			result.Failures = append(result.Failures, Failure{
				Indexes: []int{pair.FromIndex, pair.ToIndex},
				Error:   err.Error(),
			})
			continue
		}

		inTransfer[pair.FromIndex] = true
		inTransfer[pair.ToIndex] = true
		result.Transfers++
		result.Transactions += 2
	}

	for i, row := range batch.Rows {
		if inTransfer[i] {
			continue
		}

		t := transaction(batch, row, result.ImportID)
		err := db.Create(&t).Error
		if err != nil {
			result.Failures = append(result.Failures, Failure{
				Indexes: []int{i},
				Error:   err.Error(),
			})
			continue
		}

		result.Transactions++
	}

	return result, nil
}

// transaction builds the transaction for one row of a batch.
func transaction(batch Batch, row Row, importID uuid.UUID) models.Transaction {
	memberID := batch.MemberID

	return models.Transaction{
		HouseholdID: batch.HouseholdID,
		AccountID:   row.AccountID,
		CategoryID:  row.CategoryID,
		MemberID:    &memberID,
		Date:        time.Time(row.Date),
		Amount:      row.Amount,
		Payee:       row.Payee,
		Note:        row.Note,
		ImportID:    &importID,
		ImportHash:  row.ImportHash,
	}
}

// Rollback removes everything a batch created: first the transfer links
// between stamped transactions, then the transactions themselves.
//
// Rolling back a batch that does not exist or was already rolled back
// is a no-op.
func Rollback(db *gorm.DB, importID uuid.UUID) error {
	return db.Transaction(func(tx *gorm.DB) error {
		var transferIDs []uuid.UUID
		err := tx.Model(&models.Transaction{}).
			Where("import_id = ?", importID).
			Where("transfer_id IS NOT NULL").
			Distinct().
			Pluck("transfer_id", &transferIDs).Error
		if err != nil {
			return fmt.Errorf("could not resolve the transfers of the import: %w", err)
		}

		if len(transferIDs) > 0 {
			err = tx.Model(&models.Transaction{}).
				Where("transfer_id IN ?", transferIDs).
				UpdateColumn("transfer_id", nil).Error
			if err != nil {
				return err
			}

			err = tx.Unscoped().Delete(&models.Transfer{}, transferIDs).Error
			if err != nil {
				return err
			}
		}

		return tx.Unscoped().
			Where("import_id = ?", importID).
			Delete(&models.Transaction{}).Error
	})
}
