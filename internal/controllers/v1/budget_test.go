package v1_test

import (
	"fmt"
	"net/http"
	"time"

	"github.com/google/uuid"
	v1 "github.com/hearthledger/backend/internal/controllers/v1"
	"github.com/hearthledger/backend/internal/models"
	"github.com/hearthledger/backend/internal/types"
	"github.com/hearthledger/backend/test"
	"github.com/shopspring/decimal"
)

func date(year int, month time.Month, day int) time.Time {
	return time.Date(year, month, day, 0, 0, 0, 0, time.UTC)
}

func (suite *TestSuiteStandard) TestCreateBudgets() {
	account := suite.createTestAccount(models.Account{Name: "Checking"})
	category := suite.createTestCategory(models.Category{Name: "Groceries"})

	recorder := suite.request(http.MethodPost, "/v1/budgets", []v1.BudgetEditable{
		{
			Name:       "Groceries",
			Amount:     decimal.NewFromInt(450),
			Period:     models.PeriodMonthly,
			StartDate:  types.NewDate(2024, 1, 1),
			EndDate:    types.NewDate(2024, 1, 31),
			CategoryID: &category.ID,
			AccountIDs: []uuid.UUID{account.ID},
		},
	})
	test.AssertHTTPStatus(suite.T(), &recorder, http.StatusCreated)

	var response v1.BudgetCreateResponse
	test.DecodeResponse(suite.T(), &recorder, &response)

	suite.Require().Len(response.Data, 1)
	suite.Require().NotNil(response.Data[0].Data)
	suite.Assert().Equal("Groceries", response.Data[0].Data.Name)
	suite.Assert().Equal([]uuid.UUID{account.ID}, response.Data[0].Data.AccountIDs)
}

func (suite *TestSuiteStandard) TestCreateBudgetForeignAccount() {
	other := suite.createTestHousehold(models.Household{})
	foreign := suite.createTestAccount(models.Account{HouseholdID: other.ID, Name: "Foreign"})

	recorder := suite.request(http.MethodPost, "/v1/budgets", []v1.BudgetEditable{
		{
			Name:       "Sneaky",
			Amount:     decimal.NewFromInt(100),
			Period:     models.PeriodMonthly,
			StartDate:  types.NewDate(2024, 1, 1),
			EndDate:    types.NewDate(2024, 1, 31),
			AccountIDs: []uuid.UUID{foreign.ID},
		},
	})
	test.AssertHTTPStatus(suite.T(), &recorder, http.StatusNotFound)
}

func (suite *TestSuiteStandard) TestCreateBudgetForeignCategory() {
	other := suite.createTestHousehold(models.Household{})
	foreign := suite.createTestCategory(models.Category{HouseholdID: other.ID, Name: "Foreign"})

	recorder := suite.request(http.MethodPost, "/v1/budgets", []v1.BudgetEditable{
		{
			Name:       "Sneaky",
			Amount:     decimal.NewFromInt(100),
			Period:     models.PeriodMonthly,
			StartDate:  types.NewDate(2024, 1, 1),
			EndDate:    types.NewDate(2024, 1, 31),
			CategoryID: &foreign.ID,
		},
	})
	test.AssertHTTPStatus(suite.T(), &recorder, http.StatusNotFound)
}

func (suite *TestSuiteStandard) TestUpdateBudgetForeignCategory() {
	other := suite.createTestHousehold(models.Household{})
	foreign := suite.createTestCategory(models.Category{HouseholdID: other.ID, Name: "Foreign"})

	budget := suite.createTestBudget(models.Budget{
		Amount:    decimal.NewFromInt(100),
		Period:    models.PeriodMonthly,
		StartDate: types.NewDate(2024, 1, 1),
		EndDate:   types.NewDate(2024, 1, 31),
	})

	recorder := suite.request(http.MethodPatch, fmt.Sprintf("/v1/budgets/%s", budget.ID), map[string]any{
		"categoryId": foreign.ID,
	})
	test.AssertHTTPStatus(suite.T(), &recorder, http.StatusNotFound)
}

func (suite *TestSuiteStandard) TestGetBudgetCompute() {
	account := suite.createTestAccount(models.Account{Name: "Checking"})
	category := suite.createTestCategory(models.Category{Name: "Groceries"})

	budget := suite.createTestBudget(models.Budget{
		CategoryID: &category.ID,
		Amount:     decimal.NewFromInt(450),
		Period:     models.PeriodMonthly,
		StartDate:  types.NewDate(2024, 1, 1),
		EndDate:    types.NewDate(2024, 1, 31),
	})

	suite.createTestTransaction(models.Transaction{
		AccountID:  account.ID,
		CategoryID: &category.ID,
		Date:       date(2024, 1, 5),
		Amount:     decimal.NewFromFloat(-120.50),
	})

	recorder := suite.request(http.MethodGet, fmt.Sprintf("/v1/budgets/%s/compute?asOf=2024-01-31", budget.ID), nil)
	test.AssertHTTPStatus(suite.T(), &recorder, http.StatusOK)

	var response v1.BudgetComputeResponse
	test.DecodeResponse(suite.T(), &recorder, &response)

	suite.Require().NotNil(response.Data)
	suite.Assert().True(response.Data.Spent.Equal(decimal.NewFromFloat(120.50)), "Spent is %s", response.Data.Spent)
	suite.Assert().True(response.Data.Available.Equal(decimal.NewFromFloat(329.50)), "Available is %s", response.Data.Available)
}

func (suite *TestSuiteStandard) TestGetBudgetComputeInvalidAsOf() {
	budget := suite.createTestBudget(models.Budget{
		Amount:    decimal.NewFromInt(100),
		Period:    models.PeriodMonthly,
		StartDate: types.NewDate(2024, 1, 1),
		EndDate:   types.NewDate(2024, 1, 31),
	})

	recorder := suite.request(http.MethodGet, fmt.Sprintf("/v1/budgets/%s/compute?asOf=January", budget.ID), nil)
	test.AssertHTTPStatus(suite.T(), &recorder, http.StatusBadRequest)
}

func (suite *TestSuiteStandard) TestGetBudgetComputeForeignHousehold() {
	other := suite.createTestHousehold(models.Household{})
	budget := suite.createTestBudget(models.Budget{
		HouseholdID: other.ID,
		Amount:      decimal.NewFromInt(100),
		Period:      models.PeriodMonthly,
		StartDate:   types.NewDate(2024, 1, 1),
		EndDate:     types.NewDate(2024, 1, 31),
	})

	recorder := suite.request(http.MethodGet, fmt.Sprintf("/v1/budgets/%s/compute", budget.ID), nil)
	test.AssertHTTPStatus(suite.T(), &recorder, http.StatusNotFound)
}

func (suite *TestSuiteStandard) TestUpdateBudgetAccounts() {
	checking := suite.createTestAccount(models.Account{Name: "Checking"})
	cash := suite.createTestAccount(models.Account{Name: "Cash"})

	budget := suite.createTestBudget(models.Budget{
		Amount:    decimal.NewFromInt(100),
		Period:    models.PeriodMonthly,
		StartDate: types.NewDate(2024, 1, 1),
		EndDate:   types.NewDate(2024, 1, 31),
		Accounts:  []models.Account{checking},
	})

	recorder := suite.request(http.MethodPatch, fmt.Sprintf("/v1/budgets/%s", budget.ID), map[string]any{
		"accountIds": []uuid.UUID{cash.ID},
	})
	test.AssertHTTPStatus(suite.T(), &recorder, http.StatusOK)

	var response v1.BudgetResponse
	test.DecodeResponse(suite.T(), &recorder, &response)

	suite.Require().NotNil(response.Data)
	suite.Assert().Equal([]uuid.UUID{cash.ID}, response.Data.AccountIDs)
}
