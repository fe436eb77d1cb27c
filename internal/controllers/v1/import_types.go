package v1

import (
	"github.com/google/uuid"
	"github.com/hearthledger/backend/internal/importer"
	hl_uuid "github.com/hearthledger/backend/internal/uuid"
)

// ImportPreviewQuery is the set of form fields accompanying the file
// upload for an import preview. The column indexes are zero-based, -1
// marks a column as not present in the file.
type ImportPreviewQuery struct {
	AccountID  hl_uuid.UUID `form:"accountId"`                     // ID of the account to import the transactions for
	Date       int          `form:"dateColumn,default=0"`          // Column holding the date
	Amount     int          `form:"amountColumn,default=-1"`       // Column holding the signed amount
	Outflow    int          `form:"outflowColumn,default=-1"`      // Column holding the unsigned outflow
	Inflow     int          `form:"inflowColumn,default=-1"`       // Column holding the unsigned inflow
	Payee      int          `form:"payeeColumn,default=-1"`        // Column holding the payee
	Note       int          `form:"noteColumn,default=-1"`         // Column holding the note
	DateFormat string       `form:"dateFormat,default=2006-01-02"` // Go time layout for the date column
	HasHeader  bool         `form:"hasHeader,default=false"`       // Does the file start with a header line?
}

// mapping returns the column mapping for the query parameters.
func (q ImportPreviewQuery) mapping() importer.ColumnMapping {
	return importer.ColumnMapping{
		Date:       q.Date,
		Amount:     q.Amount,
		Outflow:    q.Outflow,
		Inflow:     q.Inflow,
		Payee:      q.Payee,
		Note:       q.Note,
		DateFormat: q.DateFormat,
		HasHeader:  q.HasHeader,
	}
}

type ImportRollbackQuery struct {
	ImportID hl_uuid.UUID `form:"importId"` // ID of the import to roll back
}

// PreviewRow is one row of an import preview: the parsed row plus
// everything the server could derive for it.
type PreviewRow struct {
	importer.Row
	DuplicateTransactionIDs []uuid.UUID `json:"duplicateTransactionIds"` // IDs of transactions that this row duplicates
	MatchRuleID             *uuid.UUID  `json:"matchRuleId"`             // ID of the match rule that set the category, if any
}

type ImportPreview struct {
	Rows       []PreviewRow                 `json:"rows"`       // The parsed rows
	Candidates []importer.TransferCandidate `json:"candidates"` // Row pairs that look like the two legs of a transfer
}

type ImportPreviewResponse struct {
	Error *string        `json:"error" example:"the accountId parameter must be set"` // The error, if any occurred
	Data  *ImportPreview `json:"data"`                                                // The preview, if parsing was successful
}

type ImportResponse struct {
	Error *string          `json:"error" example:"the import batch exceeds the limit of 10000 rows"` // The error, if any occurred
	Data  *importer.Result `json:"data"`                                                             // The result of the import, if it was committed
}
