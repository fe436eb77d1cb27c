package v1

import (
	"fmt"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/hearthledger/backend/internal/models"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

type AccountEditable struct {
	Name     string `json:"name" example:"Checking" default:""`
	Note     string `json:"note" example:"Joint account" default:""`
	Archived bool   `json:"archived" example:"false" default:"false"`
}

// model returns the database resource for the API representation of the editable fields
func (editable AccountEditable) model(householdID uuid.UUID) models.Account {
	return models.Account{
		HouseholdID: householdID,
		Name:        editable.Name,
		Note:        editable.Note,
		Archived:    editable.Archived,
	}
}

type AccountLinks struct {
	Self         string `json:"self" example:"https://example.com/v1/accounts/af892e10-7e0a-4f8f-b857-c66f6091a413"`                     // The account itself
	Transactions string `json:"transactions" example:"https://example.com/v1/transactions?account=af892e10-7e0a-4f8f-b857-c66f6091a413"` // Transactions referencing the account
}

// Account is the representation of an Account in API v1.
type Account struct {
	models.DefaultModel
	AccountEditable
	Balance decimal.Decimal `json:"balance" example:"1317.62"` // Sum of all transaction amounts for the account
	Links   AccountLinks    `json:"links"`
}

// newAccount returns the API v1 representation of the resource
func newAccount(c *gin.Context, db *gorm.DB, model models.Account) (Account, error) {
	url := c.GetString(string(models.DBContextURL))

	balance, err := model.Balance(db)
	if err != nil {
		return Account{}, err
	}

	return Account{
		DefaultModel: model.DefaultModel,
		AccountEditable: AccountEditable{
			Name:     model.Name,
			Note:     model.Note,
			Archived: model.Archived,
		},
		Balance: balance,
		Links: AccountLinks{
			Self:         fmt.Sprintf("%s/v1/accounts/%s", url, model.ID),
			Transactions: fmt.Sprintf("%s/v1/transactions?account=%s", url, model.ID),
		},
	}, nil
}

type AccountListResponse struct {
	Data       []Account   `json:"data"`                                                          // List of accounts
	Error      *string     `json:"error" example:"the specified resource ID is not a valid UUID"` // The error, if any occurred
	Pagination *Pagination `json:"pagination"`                                                    // Pagination information
}

type AccountCreateResponse struct {
	Error *string           `json:"error" example:"the specified resource ID is not a valid UUID"` // The error, if any occurred
	Data  []AccountResponse `json:"data"`                                                          // List of created Accounts
}

func (a *AccountCreateResponse) appendError(err error, currentStatus int) int {
	s := err.Error()
	a.Data = append(a.Data, AccountResponse{Error: &s})

	// The final status code is the highest HTTP status code number
	newStatus := status(err)
	if newStatus > currentStatus {
		return newStatus
	}

	return currentStatus
}

type AccountResponse struct {
	Error *string  `json:"error" example:"the specified resource ID is not a valid UUID"` // The error, if any occurred for this account
	Data  *Account `json:"data"`                                                          // The Account data, if creation was successful
}

type AccountQueryFilter struct {
	Name     string `form:"name" filterField:"false"`     // Name of the account, fuzzy matched
	Note     string `form:"note" filterField:"false"`     // Note of the account, fuzzy matched
	Archived bool   `form:"archived"`                     // Is the account archived?
	Offset   uint   `form:"offset" filterField:"false"`   // The offset of the first Account returned. Defaults to 0.
	Limit    int    `form:"limit" filterField:"false"`    // Maximum number of Accounts to return. Defaults to 50.
}

func (f AccountQueryFilter) model() models.Account {
	return models.Account{
		Archived: f.Archived,
	}
}
