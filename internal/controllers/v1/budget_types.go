package v1

import (
	"fmt"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/hearthledger/backend/internal/models"
	"github.com/hearthledger/backend/internal/types"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

type BudgetEditable struct {
	Name string `json:"name" example:"Groceries" default:""`
	Note string `json:"note" default:""`

	// The maximum value is "999999999999.99999999", swagger unfortunately rounds this.
	Amount decimal.Decimal `json:"amount" example:"450" minimum:"0.01" multipleOf:"0.00000001"` // The limit for one budget window

	Period         models.BudgetPeriod    `json:"period" example:"monthly"`
	Direction      models.BudgetDirection `json:"direction" example:"expense" default:"expense"`
	StartDate      types.Date             `json:"startDate" example:"2024-01-01"`
	EndDate        types.Date             `json:"endDate" example:"2024-12-31"`
	Rollover       bool                   `json:"rollover" example:"false" default:"false"`
	IncludeSubtree bool                   `json:"includeSubtree" example:"true" default:"false"`
	SortOrder      int                    `json:"sortOrder" example:"0" default:"0"`
	CategoryID     *uuid.UUID             `json:"categoryId" example:"3b1ea324-d438-4419-882a-2fc91f71defe"` // Category the budget tracks, null for all categories
	AccountIDs     []uuid.UUID            `json:"accountIds"`                                                // Accounts the budget is limited to, empty for all accounts
}

// model returns the database resource for the API representation of the editable fields
func (editable BudgetEditable) model(householdID uuid.UUID) models.Budget {
	return models.Budget{
		HouseholdID:    householdID,
		Name:           editable.Name,
		Note:           editable.Note,
		Amount:         editable.Amount,
		Period:         editable.Period,
		Direction:      editable.Direction,
		StartDate:      editable.StartDate,
		EndDate:        editable.EndDate,
		Rollover:       editable.Rollover,
		IncludeSubtree: editable.IncludeSubtree,
		SortOrder:      editable.SortOrder,
		CategoryID:     editable.CategoryID,
	}
}

type BudgetLinks struct {
	Self    string `json:"self" example:"https://example.com/v1/budgets/b2f45861-9f3e-4ba9-a2a6-c85072e67a0d"`                     // The budget itself
	Compute string `json:"compute" example:"https://example.com/v1/budgets/b2f45861-9f3e-4ba9-a2a6-c85072e67a0d/compute"`          // Computed state of the budget
}

// Budget is the representation of a Budget in API v1.
type Budget struct {
	models.DefaultModel
	BudgetEditable
	Links BudgetLinks `json:"links"`
}

// newBudget returns the API v1 representation of the resource
func newBudget(c *gin.Context, db *gorm.DB, model models.Budget) (Budget, error) {
	url := c.GetString(string(models.DBContextURL))

	accountIDs, err := model.AccountIDs(db)
	if err != nil {
		return Budget{}, err
	}

	return Budget{
		DefaultModel: model.DefaultModel,
		BudgetEditable: BudgetEditable{
			Name:           model.Name,
			Note:           model.Note,
			Amount:         model.Amount,
			Period:         model.Period,
			Direction:      model.Direction,
			StartDate:      model.StartDate,
			EndDate:        model.EndDate,
			Rollover:       model.Rollover,
			IncludeSubtree: model.IncludeSubtree,
			SortOrder:      model.SortOrder,
			CategoryID:     model.CategoryID,
			AccountIDs:     accountIDs,
		},
		Links: BudgetLinks{
			Self:    fmt.Sprintf("%s/v1/budgets/%s", url, model.ID),
			Compute: fmt.Sprintf("%s/v1/budgets/%s/compute", url, model.ID),
		},
	}, nil
}

type BudgetListResponse struct {
	Data       []Budget    `json:"data"`                                                          // List of budgets
	Error      *string     `json:"error" example:"the specified resource ID is not a valid UUID"` // The error, if any occurred
	Pagination *Pagination `json:"pagination"`                                                    // Pagination information
}

type BudgetCreateResponse struct {
	Error *string          `json:"error" example:"the specified resource ID is not a valid UUID"` // The error, if any occurred
	Data  []BudgetResponse `json:"data"`                                                          // List of created Budgets
}

func (b *BudgetCreateResponse) appendError(err error, currentStatus int) int {
	s := err.Error()
	b.Data = append(b.Data, BudgetResponse{Error: &s})

	// The final status code is the highest HTTP status code number
	newStatus := status(err)
	if newStatus > currentStatus {
		return newStatus
	}

	return currentStatus
}

type BudgetResponse struct {
	Error *string `json:"error" example:"the specified resource ID is not a valid UUID"` // The error, if any occurred for this budget
	Data  *Budget `json:"data"`                                                          // The Budget data, if creation was successful
}

type BudgetComputeResponse struct {
	Error *string                     `json:"error" example:"the asOf query parameter must be a date in the format YYYY-MM-DD"` // The error, if any occurred
	Data  *models.BudgetComputeResult `json:"data"`                                                                             // The computed budget state
}

type BudgetQueryFilter struct {
	Name      string                 `form:"name" filterField:"false"`     // Name of the budget, fuzzy matched
	Period    models.BudgetPeriod    `form:"period"`                       // Period of the budget
	Direction models.BudgetDirection `form:"direction"`                    // Direction of the budget
	Category  string                 `form:"category" filterField:"false"` // ID of the category the budget tracks
	Rollover  bool                   `form:"rollover"`                     // Does the budget roll over?
	Offset    uint                   `form:"offset" filterField:"false"`   // The offset of the first Budget returned. Defaults to 0.
	Limit     int                    `form:"limit" filterField:"false"`    // Maximum number of Budgets to return. Defaults to 50.
}

// This does not set the category since it is handled
// in the controller function
func (f BudgetQueryFilter) model() models.Budget {
	return models.Budget{
		Period:    f.Period,
		Direction: f.Direction,
		Rollover:  f.Rollover,
	}
}
