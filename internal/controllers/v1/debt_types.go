package v1

import (
	"fmt"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/hearthledger/backend/internal/models"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

type DebtEditable struct {
	Name   string          `json:"name" example:"Car loan" default:""`
	Kind   models.DebtKind `json:"kind" example:"owing"`
	Amount decimal.Decimal `json:"amount" example:"5000" minimum:"0.00000001"` // The original amount of the debt
	Note   string          `json:"note" default:""`
	Closed bool            `json:"closed" example:"false" default:"false"`
}

// model returns the database resource for the API representation of the editable fields
func (editable DebtEditable) model(householdID uuid.UUID) models.Debt {
	return models.Debt{
		HouseholdID: householdID,
		Name:        editable.Name,
		Kind:        editable.Kind,
		Amount:      editable.Amount,
		Note:        editable.Note,
		Closed:      editable.Closed,
	}
}

type DebtLinks struct {
	Self         string `json:"self" example:"https://example.com/v1/debts/9b63e5d3-21ac-4a35-bd50-f4a7f3ada6cd"`                     // The debt itself
	Transactions string `json:"transactions" example:"https://example.com/v1/transactions?debt=9b63e5d3-21ac-4a35-bd50-f4a7f3ada6cd"` // Transactions paying down the debt
}

// Debt is the representation of a Debt in API v1.
type Debt struct {
	models.DefaultModel
	DebtEditable
	Balance decimal.Decimal `json:"balance" example:"3200"` // The amount still outstanding
	Links   DebtLinks       `json:"links"`
}

// newDebt returns the API v1 representation of the resource
func newDebt(c *gin.Context, db *gorm.DB, model models.Debt) (Debt, error) {
	url := c.GetString(string(models.DBContextURL))

	balance, err := model.Balance(db)
	if err != nil {
		return Debt{}, err
	}

	return Debt{
		DefaultModel: model.DefaultModel,
		DebtEditable: DebtEditable{
			Name:   model.Name,
			Kind:   model.Kind,
			Amount: model.Amount,
			Note:   model.Note,
			Closed: model.Closed,
		},
		Balance: balance,
		Links: DebtLinks{
			Self:         fmt.Sprintf("%s/v1/debts/%s", url, model.ID),
			Transactions: fmt.Sprintf("%s/v1/transactions?debt=%s", url, model.ID),
		},
	}, nil
}

type DebtListResponse struct {
	Data       []Debt      `json:"data"`                                                          // List of debts
	Error      *string     `json:"error" example:"the specified resource ID is not a valid UUID"` // The error, if any occurred
	Pagination *Pagination `json:"pagination"`                                                    // Pagination information
}

type DebtCreateResponse struct {
	Error *string        `json:"error" example:"the specified resource ID is not a valid UUID"` // The error, if any occurred
	Data  []DebtResponse `json:"data"`                                                          // List of created Debts
}

func (d *DebtCreateResponse) appendError(err error, currentStatus int) int {
	s := err.Error()
	d.Data = append(d.Data, DebtResponse{Error: &s})

	// The final status code is the highest HTTP status code number
	newStatus := status(err)
	if newStatus > currentStatus {
		return newStatus
	}

	return currentStatus
}

type DebtResponse struct {
	Error *string `json:"error" example:"the specified resource ID is not a valid UUID"` // The error, if any occurred for this debt
	Data  *Debt   `json:"data"`                                                          // The Debt data, if creation was successful
}

type DebtQueryFilter struct {
	Name   string          `form:"name" filterField:"false"`   // Name of the debt, fuzzy matched
	Kind   models.DebtKind `form:"kind"`                       // Kind of the debt
	Closed bool            `form:"closed"`                     // Is the debt closed?
	Offset uint            `form:"offset" filterField:"false"` // The offset of the first Debt returned. Defaults to 0.
	Limit  int             `form:"limit" filterField:"false"`  // Maximum number of Debts to return. Defaults to 50.
}

func (f DebtQueryFilter) model() models.Debt {
	return models.Debt{
		Kind:   f.Kind,
		Closed: f.Closed,
	}
}
