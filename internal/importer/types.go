// Package importer implements the CSV import pipeline: parsing rows,
// reconciling transfer candidates between accounts and committing or
// rolling back whole import batches.
package importer

import (
	"errors"

	"github.com/google/uuid"
	"github.com/hearthledger/backend/internal/types"
	"github.com/shopspring/decimal"
)

var (
	// ErrBatchTooLarge is returned when a batch exceeds the row limit of
	// the candidate scan.
	ErrBatchTooLarge = errors.New("the import batch exceeds the limit of 10000 rows")

	// ErrColumnMapping is returned for a column mapping that cannot
	// describe a valid row.
	ErrColumnMapping = errors.New("the column mapping must set the date column and either the amount column or the outflow and inflow columns")
)

// Row is one parsed line of an import file. The account is set by the
// caller, it is not part of the file.
type Row struct {
	AccountID  uuid.UUID       `json:"accountId"`
	Date       types.Date      `json:"date"`
	Amount     decimal.Decimal `json:"amount"`
	Payee      string          `json:"payee" example:"Corner store"`
	Note       string          `json:"note" default:""`
	CategoryID *uuid.UUID      `json:"categoryId"`
	ImportHash string          `json:"importHash"`
}

// ColumnMapping describes which CSV column holds which value. Columns
// are zero-indexed, -1 marks a column as absent.
//
// Either Amount is set, with negative values as outflows, or Outflow
// and Inflow are set as separate unsigned columns.
type ColumnMapping struct {
	Date    int `json:"date" example:"0"`
	Amount  int `json:"amount" example:"1" default:"-1"`
	Outflow int `json:"outflow" default:"-1"`
	Inflow  int `json:"inflow" default:"-1"`
	Payee   int `json:"payee" example:"2" default:"-1"`
	Note    int `json:"note" default:"-1"`

	// DateFormat is a Go time layout, defaults to "2006-01-02".
	DateFormat string `json:"dateFormat" example:"02.01.2006" default:"2006-01-02"`

	// HasHeader skips the first line of the file.
	HasHeader bool `json:"hasHeader" example:"true" default:"false"`
}

// TransferCandidate is a pair of rows that looks like the two legs of
// a transfer between two accounts. Rows are referenced by their index
// in the batch, the negative leg is always From.
type TransferCandidate struct {
	FromIndex    int             `json:"fromIndex"`
	ToIndex      int             `json:"toIndex"`
	Amount       decimal.Decimal `json:"amount"`
	DateDiffDays int             `json:"dateDiffDays"`
}

// Pair is a confirmed transfer candidate in a commit request.
type Pair struct {
	FromIndex int `json:"fromIndex"`
	ToIndex   int `json:"toIndex"`
}

// Batch is a commit request: the rows to create and the confirmed
// transfer pairs among them.
type Batch struct {
	HouseholdID uuid.UUID `json:"-"`
	MemberID    uuid.UUID `json:"-"`
	Rows        []Row     `json:"rows"`
	Transfers   []Pair    `json:"transfers"`
}

// Failure reports why a single row or pair of a batch was not
// committed. Indexes reference the rows of the batch.
type Failure struct {
	Indexes []int  `json:"indexes"`
	Error   string `json:"error"`
}

// Result reports the outcome of a commit. The ImportID stamps every
// created transaction and is the handle for a later rollback.
type Result struct {
	ImportID     uuid.UUID `json:"importId"`
	Transactions int       `json:"transactions"`
	Transfers    int       `json:"transfers"`
	Failures     []Failure `json:"failures"`
}
