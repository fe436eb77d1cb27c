package v1

import (
	"fmt"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/hearthledger/backend/internal/models"
	hl_uuid "github.com/hearthledger/backend/internal/uuid"
	"github.com/shopspring/decimal"
)

type TransactionEditable struct {
	Date time.Time `json:"date" example:"2024-03-12T00:00:00Z"` // Date of the transaction. Time is currently only used for sorting

	// The sign of the amount encodes the direction: negative amounts are
	// outflows, positive amounts are inflows.
	Amount decimal.Decimal `json:"amount" example:"-14.03" multipleOf:"0.00000001"` // The amount for the transaction

	AccountID   uuid.UUID  `json:"accountId" example:"af892e10-7e0a-4f8f-b857-c66f6091a413"`  // ID of the account
	CategoryID  *uuid.UUID `json:"categoryId" example:"3b1ea324-d438-4419-882a-2fc91f71defe"` // ID of the category
	DebtID      *uuid.UUID `json:"debtId" example:"9b63e5d3-21ac-4a35-bd50-f4a7f3ada6cd"`     // ID of the debt this transaction pays down
	Payee       string     `json:"payee" example:"Corner store" default:""`                   // The other party of the transaction
	Description string     `json:"description" default:""`
	Note        string     `json:"note" example:"Lunch" default:""`

	ImportHash string `json:"importHash" example:"867e3a26dc0baf73f4bff506f31a97f6c32088917e9e5cf1a5ed6f3f84a6fa70" default:""` // The SHA256 hash of a unique combination of values to use in duplicate detection
}

// model returns the database resource for the API representation of the editable fields
func (editable TransactionEditable) model(householdID, memberID uuid.UUID) models.Transaction {
	mID := memberID

	return models.Transaction{
		HouseholdID: householdID,
		AccountID:   editable.AccountID,
		CategoryID:  editable.CategoryID,
		DebtID:      editable.DebtID,
		MemberID:    &mID,
		Date:        editable.Date,
		Amount:      editable.Amount,
		Payee:       editable.Payee,
		Description: editable.Description,
		Note:        editable.Note,
		ImportHash:  editable.ImportHash,
	}
}

type TransactionLinks struct {
	Self string `json:"self" example:"https://example.com/v1/transactions/d430d7c3-d14c-4712-9336-ee56965a6673"` // The transaction itself
}

// Transaction is the representation of a Transaction in API v1.
type Transaction struct {
	models.DefaultModel
	TransactionEditable
	Type       models.TransactionType `json:"type" example:"expense"` // Derived from the sign of the amount
	TransferID *uuid.UUID             `json:"transferId"`             // Set if the transaction is one leg of a transfer
	ImportID   *uuid.UUID             `json:"importId"`               // Set if the transaction was created by an import
	Links      TransactionLinks       `json:"links"`
}

// newTransaction returns the API v1 representation of the resource
func newTransaction(c *gin.Context, model models.Transaction) Transaction {
	url := c.GetString(string(models.DBContextURL))

	return Transaction{
		DefaultModel: model.DefaultModel,
		TransactionEditable: TransactionEditable{
			Date:        model.Date,
			Amount:      model.Amount,
			AccountID:   model.AccountID,
			CategoryID:  model.CategoryID,
			DebtID:      model.DebtID,
			Payee:       model.Payee,
			Description: model.Description,
			Note:        model.Note,
			ImportHash:  model.ImportHash,
		},
		Type:       model.Type(),
		TransferID: model.TransferID,
		ImportID:   model.ImportID,
		Links: TransactionLinks{
			Self: fmt.Sprintf("%s/v1/transactions/%s", url, model.ID),
		},
	}
}

type TransactionListResponse struct {
	Data       []Transaction `json:"data"`                                                          // List of transactions
	Error      *string       `json:"error" example:"the specified resource ID is not a valid UUID"` // The error, if any occurred
	Pagination *Pagination   `json:"pagination"`                                                    // Pagination information
}

type TransactionCreateResponse struct {
	Error *string               `json:"error" example:"the specified resource ID is not a valid UUID"` // The error, if any occurred
	Data  []TransactionResponse `json:"data"`                                                          // List of created Transactions
}

func (t *TransactionCreateResponse) appendError(err error, currentStatus int) int {
	s := err.Error()
	t.Data = append(t.Data, TransactionResponse{Error: &s})

	// The final status code is the highest HTTP status code number
	newStatus := status(err)
	if newStatus > currentStatus {
		return newStatus
	}

	return currentStatus
}

type TransactionResponse struct {
	Error *string      `json:"error" example:"the specified resource ID is not a valid UUID"` // The error, if any occurred for this transaction
	Data  *Transaction `json:"data"`                                                          // The Transaction data, if creation was successful
}

// TransferEditable is the request body for creating a transfer between
// two accounts. The amount is always positive, the direction is given
// by the two account IDs.
type TransferEditable struct {
	FromAccountID uuid.UUID       `json:"fromAccountId" example:"af892e10-7e0a-4f8f-b857-c66f6091a413"` // Account the money leaves
	ToAccountID   uuid.UUID       `json:"toAccountId" example:"16634657-f2b5-4b10-a3dc-e1b0b0956f5a"`   // Account the money arrives in
	Amount        decimal.Decimal `json:"amount" example:"250" minimum:"0.00000001"`
	Date          time.Time       `json:"date" example:"2024-03-12T00:00:00Z"`
	Note          string          `json:"note" example:"Savings" default:""`
}

// Transfer is the representation of a Transfer in API v1.
type Transfer struct {
	models.DefaultModel
	FromTransaction Transaction `json:"fromTransaction"` // The outgoing leg
	ToTransaction   Transaction `json:"toTransaction"`   // The incoming leg
}

// newTransfer returns the API v1 representation of the resource
func newTransfer(c *gin.Context, model models.Transfer) Transfer {
	return Transfer{
		DefaultModel:    model.DefaultModel,
		FromTransaction: newTransaction(c, model.FromTransaction),
		ToTransaction:   newTransaction(c, model.ToTransaction),
	}
}

type TransferResponse struct {
	Error *string   `json:"error" example:"the source and destination accounts of a transfer must be different"` // The error, if any occurred
	Data  *Transfer `json:"data"`                                                                                // The Transfer data, if creation was successful
}

type TransactionQueryFilter struct {
	Date              time.Time              `form:"date" filterField:"false"`              // Exact date. Time is ignored.
	FromDate          time.Time              `form:"fromDate" filterField:"false"`          // From this date. Time is ignored.
	UntilDate         time.Time              `form:"untilDate" filterField:"false"`         // Until this date. Time is ignored.
	Amount            decimal.Decimal        `form:"amount"`                                // Exact amount
	AmountLessOrEqual decimal.Decimal        `form:"amountLessOrEqual" filterField:"false"` // Amount less than or equal to this
	AmountMoreOrEqual decimal.Decimal        `form:"amountMoreOrEqual" filterField:"false"` // Amount more than or equal to this
	Payee             string                 `form:"payee" filterField:"false"`             // Payee contains this string
	Note              string                 `form:"note" filterField:"false"`              // Note contains this string
	AccountID         hl_uuid.UUID           `form:"account"`                               // ID of the account
	CategoryID        hl_uuid.UUID           `form:"category"`                              // ID of the category
	DebtID            hl_uuid.UUID           `form:"debt"`                                  // ID of the debt
	ImportID          hl_uuid.UUID           `form:"import" filterField:"false"`            // ID of the import batch
	Type              models.TransactionType `form:"type" filterField:"false"`              // Type of the transaction, derived from the sign
	Transfers         string                 `form:"transfers" filterField:"false"`         // "only" returns transfer legs, "none" excludes them
	Offset            uint                   `form:"offset" filterField:"false"`            // The offset of the first Transaction returned. Defaults to 0.
	Limit             int                    `form:"limit" filterField:"false"`             // Maximum number of Transactions to return. Defaults to 50.
}

func (f TransactionQueryFilter) model() models.Transaction {
	// If the category or debt ID is nil, use an actual nil, not uuid.Nil
	var categoryID, debtID *uuid.UUID
	if f.CategoryID != hl_uuid.Nil {
		categoryID = &f.CategoryID.UUID
	}
	if f.DebtID != hl_uuid.Nil {
		debtID = &f.DebtID.UUID
	}

	return models.Transaction{
		Amount:     f.Amount,
		AccountID:  f.AccountID.UUID,
		CategoryID: categoryID,
		DebtID:     debtID,
	}
}
