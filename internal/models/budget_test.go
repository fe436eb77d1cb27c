package models_test

import (
	"time"

	"github.com/google/uuid"
	"github.com/hearthledger/backend/internal/models"
	"github.com/hearthledger/backend/internal/types"
	"github.com/shopspring/decimal"
)

func date(year int, month time.Month, day int) time.Time {
	return time.Date(year, month, day, 0, 0, 0, 0, time.UTC)
}

func (suite *TestSuiteStandard) TestBudgetInvalidPeriod() {
	household := suite.createTestHousehold(models.Household{})

	err := models.DB.Create(&models.Budget{
		HouseholdID: household.ID,
		Name:        "Invalid",
		Amount:      decimal.NewFromInt(100),
		Period:      "fortnightly",
		StartDate:   types.NewDate(2024, 1, 1),
		EndDate:     types.NewDate(2024, 1, 31),
	}).Error

	suite.Assert().ErrorIs(err, models.ErrPeriodInvalid)
}

func (suite *TestSuiteStandard) TestBudgetAmountTooLow() {
	household := suite.createTestHousehold(models.Household{})

	err := models.DB.Create(&models.Budget{
		HouseholdID: household.ID,
		Name:        "Too low",
		Amount:      decimal.New(1, -3),
		Period:      models.PeriodMonthly,
		StartDate:   types.NewDate(2024, 1, 1),
		EndDate:     types.NewDate(2024, 1, 31),
	}).Error

	suite.Assert().ErrorIs(err, models.ErrBudgetAmountTooLow)
}

func (suite *TestSuiteStandard) TestBudgetDateOrder() {
	household := suite.createTestHousehold(models.Household{})

	err := models.DB.Create(&models.Budget{
		HouseholdID: household.ID,
		Name:        "Backwards",
		Amount:      decimal.NewFromInt(100),
		Period:      models.PeriodMonthly,
		StartDate:   types.NewDate(2024, 2, 1),
		EndDate:     types.NewDate(2024, 1, 1),
	}).Error

	suite.Assert().ErrorIs(err, models.ErrDateOrder)
}

func (suite *TestSuiteStandard) TestBudgetDefaultDirection() {
	household := suite.createTestHousehold(models.Household{})

	budget := suite.createTestBudget(models.Budget{
		HouseholdID: household.ID,
		Amount:      decimal.NewFromInt(100),
		Period:      models.PeriodMonthly,
		StartDate:   types.NewDate(2024, 1, 1),
		EndDate:     types.NewDate(2024, 1, 31),
	})

	suite.Assert().Equal(models.DirectionExpense, budget.Direction)
}

func (suite *TestSuiteStandard) TestBudgetCompute() {
	household := suite.createTestHousehold(models.Household{})
	account := suite.createTestAccount(models.Account{HouseholdID: household.ID})
	category := suite.createTestCategory(models.Category{HouseholdID: household.ID, Name: "Groceries"})

	budget := suite.createTestBudget(models.Budget{
		HouseholdID: household.ID,
		CategoryID:  &category.ID,
		Name:        "Groceries",
		Amount:      decimal.NewFromInt(450),
		Period:      models.PeriodMonthly,
		StartDate:   types.NewDate(2024, 1, 1),
		EndDate:     types.NewDate(2024, 1, 31),
	})

	// Counts
	suite.createTestTransaction(models.Transaction{
		HouseholdID: household.ID,
		AccountID:   account.ID,
		CategoryID:  &category.ID,
		Date:        date(2024, 1, 5),
		Amount:      decimal.NewFromFloat(-120.50),
	})

	// Counts, the window end is inclusive
	suite.createTestTransaction(models.Transaction{
		HouseholdID: household.ID,
		AccountID:   account.ID,
		CategoryID:  &category.ID,
		Date:        date(2024, 1, 31),
		Amount:      decimal.NewFromInt(-30),
	})

	// Income does not count against an expense budget
	suite.createTestTransaction(models.Transaction{
		HouseholdID: household.ID,
		AccountID:   account.ID,
		CategoryID:  &category.ID,
		Date:        date(2024, 1, 10),
		Amount:      decimal.NewFromInt(200),
	})

	// Outside of the window
	suite.createTestTransaction(models.Transaction{
		HouseholdID: household.ID,
		AccountID:   account.ID,
		CategoryID:  &category.ID,
		Date:        date(2024, 2, 1),
		Amount:      decimal.NewFromInt(-50),
	})

	result, err := budget.Compute(models.DB, types.NewDate(2024, 1, 31))
	suite.Require().NoError(err)

	suite.Assert().True(result.Spent.Equal(decimal.NewFromFloat(150.50)), "Spent is %s", result.Spent)
	suite.Assert().True(result.Available.Equal(decimal.NewFromFloat(299.50)), "Available is %s", result.Available)
	suite.Assert().True(result.CarryPrev.IsZero(), "CarryPrev is %s", result.CarryPrev)
}

func (suite *TestSuiteStandard) TestBudgetComputeBeforeStart() {
	household := suite.createTestHousehold(models.Household{})

	budget := suite.createTestBudget(models.Budget{
		HouseholdID: household.ID,
		Amount:      decimal.NewFromInt(100),
		Period:      models.PeriodMonthly,
		StartDate:   types.NewDate(2024, 3, 1),
		EndDate:     types.NewDate(2024, 3, 31),
	})

	result, err := budget.Compute(models.DB, types.NewDate(2024, 2, 15))
	suite.Require().NoError(err)

	suite.Assert().True(result.Spent.IsZero())
	suite.Assert().True(result.Available.Equal(budget.Amount))
}

func (suite *TestSuiteStandard) TestBudgetComputeExcludesTransfers() {
	household := suite.createTestHousehold(models.Household{})
	checking := suite.createTestAccount(models.Account{HouseholdID: household.ID, Name: "Checking"})
	savings := suite.createTestAccount(models.Account{HouseholdID: household.ID, Name: "Savings"})

	budget := suite.createTestBudget(models.Budget{
		HouseholdID: household.ID,
		Amount:      decimal.NewFromInt(100),
		Period:      models.PeriodMonthly,
		StartDate:   types.NewDate(2024, 1, 1),
		EndDate:     types.NewDate(2024, 1, 31),
	})

	from, to, err := models.NewTransferLegs(household.ID, checking.ID, savings.ID, decimal.NewFromInt(500), date(2024, 1, 10), "")
	suite.Require().NoError(err)

	_, err = models.CreateTransfer(models.DB, from, to)
	suite.Require().NoError(err)

	suite.createTestTransaction(models.Transaction{
		HouseholdID: household.ID,
		AccountID:   checking.ID,
		Date:        date(2024, 1, 12),
		Amount:      decimal.NewFromInt(-25),
	})

	result, err := budget.Compute(models.DB, types.NewDate(2024, 1, 31))
	suite.Require().NoError(err)

	// Only the plain transaction counts, the transfer legs do not
	suite.Assert().True(result.Spent.Equal(decimal.NewFromInt(25)), "Spent is %s", result.Spent)
}

func (suite *TestSuiteStandard) TestBudgetComputeAccountScope() {
	household := suite.createTestHousehold(models.Household{})
	checking := suite.createTestAccount(models.Account{HouseholdID: household.ID, Name: "Checking"})
	cash := suite.createTestAccount(models.Account{HouseholdID: household.ID, Name: "Cash"})

	budget := suite.createTestBudget(models.Budget{
		HouseholdID: household.ID,
		Amount:      decimal.NewFromInt(100),
		Period:      models.PeriodMonthly,
		StartDate:   types.NewDate(2024, 1, 1),
		EndDate:     types.NewDate(2024, 1, 31),
		Accounts:    []models.Account{checking},
	})

	suite.createTestTransaction(models.Transaction{
		HouseholdID: household.ID,
		AccountID:   checking.ID,
		Date:        date(2024, 1, 5),
		Amount:      decimal.NewFromInt(-10),
	})

	suite.createTestTransaction(models.Transaction{
		HouseholdID: household.ID,
		AccountID:   cash.ID,
		Date:        date(2024, 1, 5),
		Amount:      decimal.NewFromInt(-70),
	})

	result, err := budget.Compute(models.DB, types.NewDate(2024, 1, 31))
	suite.Require().NoError(err)

	suite.Assert().True(result.Spent.Equal(decimal.NewFromInt(10)), "Spent is %s", result.Spent)
}

func (suite *TestSuiteStandard) TestBudgetComputeSubtree() {
	household := suite.createTestHousehold(models.Household{})
	account := suite.createTestAccount(models.Account{HouseholdID: household.ID})
	parent := suite.createTestCategory(models.Category{HouseholdID: household.ID, Name: "Essentials"})
	child := suite.createTestCategory(models.Category{HouseholdID: household.ID, Name: "Groceries", ParentID: &parent.ID})

	withSubtree := suite.createTestBudget(models.Budget{
		HouseholdID:    household.ID,
		CategoryID:     &parent.ID,
		Amount:         decimal.NewFromInt(100),
		Period:         models.PeriodMonthly,
		StartDate:      types.NewDate(2024, 1, 1),
		EndDate:        types.NewDate(2024, 1, 31),
		IncludeSubtree: true,
	})

	withoutSubtree := suite.createTestBudget(models.Budget{
		HouseholdID: household.ID,
		CategoryID:  &parent.ID,
		Amount:      decimal.NewFromInt(100),
		Period:      models.PeriodMonthly,
		StartDate:   types.NewDate(2024, 1, 1),
		EndDate:     types.NewDate(2024, 1, 31),
	})

	suite.createTestTransaction(models.Transaction{
		HouseholdID: household.ID,
		AccountID:   account.ID,
		CategoryID:  &child.ID,
		Date:        date(2024, 1, 5),
		Amount:      decimal.NewFromInt(-40),
	})

	result, err := withSubtree.Compute(models.DB, types.NewDate(2024, 1, 31))
	suite.Require().NoError(err)
	suite.Assert().True(result.Spent.Equal(decimal.NewFromInt(40)), "Spent is %s", result.Spent)

	result, err = withoutSubtree.Compute(models.DB, types.NewDate(2024, 1, 31))
	suite.Require().NoError(err)
	suite.Assert().True(result.Spent.IsZero(), "Spent is %s", result.Spent)
}

func (suite *TestSuiteStandard) TestBudgetComputeIncomeDirection() {
	household := suite.createTestHousehold(models.Household{})
	account := suite.createTestAccount(models.Account{HouseholdID: household.ID})

	budget := suite.createTestBudget(models.Budget{
		HouseholdID: household.ID,
		Amount:      decimal.NewFromInt(2000),
		Period:      models.PeriodMonthly,
		Direction:   models.DirectionIncome,
		StartDate:   types.NewDate(2024, 1, 1),
		EndDate:     types.NewDate(2024, 1, 31),
	})

	suite.createTestTransaction(models.Transaction{
		HouseholdID: household.ID,
		AccountID:   account.ID,
		Date:        date(2024, 1, 2),
		Amount:      decimal.NewFromInt(1500),
	})

	suite.createTestTransaction(models.Transaction{
		HouseholdID: household.ID,
		AccountID:   account.ID,
		Date:        date(2024, 1, 3),
		Amount:      decimal.NewFromInt(-300),
	})

	result, err := budget.Compute(models.DB, types.NewDate(2024, 1, 31))
	suite.Require().NoError(err)

	suite.Assert().True(result.Income.Equal(decimal.NewFromInt(1500)), "Income is %s", result.Income)
	suite.Assert().True(result.Spent.IsZero(), "Spent is %s", result.Spent)
	suite.Assert().True(result.Available.Equal(decimal.NewFromInt(500)), "Available is %s", result.Available)
}

func (suite *TestSuiteStandard) TestBudgetComputeRollover() {
	household := suite.createTestHousehold(models.Household{})
	account := suite.createTestAccount(models.Account{HouseholdID: household.ID})

	// Weekly budget for the week of 2024-03-18
	budget := suite.createTestBudget(models.Budget{
		HouseholdID: household.ID,
		Amount:      decimal.NewFromInt(100),
		Period:      models.PeriodWeekly,
		StartDate:   types.NewDate(2024, 3, 18),
		EndDate:     types.NewDate(2024, 3, 24),
		Rollover:    true,
	})

	// Two windows back, overspent by 20
	suite.createTestTransaction(models.Transaction{
		HouseholdID: household.ID,
		AccountID:   account.ID,
		Date:        date(2024, 3, 5),
		Amount:      decimal.NewFromInt(-120),
	})

	// One window back, 60 unspent
	suite.createTestTransaction(models.Transaction{
		HouseholdID: household.ID,
		AccountID:   account.ID,
		Date:        date(2024, 3, 12),
		Amount:      decimal.NewFromInt(-40),
	})

	// Current window
	suite.createTestTransaction(models.Transaction{
		HouseholdID: household.ID,
		AccountID:   account.ID,
		Date:        date(2024, 3, 20),
		Amount:      decimal.NewFromInt(-30),
	})

	result, err := budget.Compute(models.DB, types.NewDate(2024, 3, 24))
	suite.Require().NoError(err)

	// Carry chain: (100 - 120) from the oldest window, then
	// 100 - 40 - 20 = 40 from the week before the current one
	suite.Assert().True(result.CarryPrev.Equal(decimal.NewFromInt(40)), "CarryPrev is %s", result.CarryPrev)
	suite.Assert().True(result.Spent.Equal(decimal.NewFromInt(30)), "Spent is %s", result.Spent)
	suite.Assert().True(result.Available.Equal(decimal.NewFromInt(110)), "Available is %s", result.Available)
}

func (suite *TestSuiteStandard) TestBudgetComputeRolloverCustomPeriod() {
	household := suite.createTestHousehold(models.Household{})
	account := suite.createTestAccount(models.Account{HouseholdID: household.ID})

	// Custom periods have no previous window, the carry is always zero
	budget := suite.createTestBudget(models.Budget{
		HouseholdID: household.ID,
		Amount:      decimal.NewFromInt(100),
		Period:      models.PeriodCustom,
		StartDate:   types.NewDate(2024, 3, 1),
		EndDate:     types.NewDate(2024, 3, 31),
		Rollover:    true,
	})

	suite.createTestTransaction(models.Transaction{
		HouseholdID: household.ID,
		AccountID:   account.ID,
		Date:        date(2024, 2, 10),
		Amount:      decimal.NewFromInt(-40),
	})

	result, err := budget.Compute(models.DB, types.NewDate(2024, 3, 31))
	suite.Require().NoError(err)

	suite.Assert().True(result.CarryPrev.IsZero(), "CarryPrev is %s", result.CarryPrev)
}

func (suite *TestSuiteStandard) TestBudgetAccountIDs() {
	household := suite.createTestHousehold(models.Household{})
	checking := suite.createTestAccount(models.Account{HouseholdID: household.ID, Name: "Checking"})

	budget := suite.createTestBudget(models.Budget{
		HouseholdID: household.ID,
		Amount:      decimal.NewFromInt(100),
		Period:      models.PeriodMonthly,
		StartDate:   types.NewDate(2024, 1, 1),
		EndDate:     types.NewDate(2024, 1, 31),
		Accounts:    []models.Account{checking},
	})

	ids, err := budget.AccountIDs(models.DB)
	suite.Require().NoError(err)
	suite.Assert().Equal([]uuid.UUID{checking.ID}, ids)
}
