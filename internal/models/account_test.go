package models_test

import (
	"github.com/hearthledger/backend/internal/models"
	"github.com/shopspring/decimal"
)

func (suite *TestSuiteStandard) TestAccountBalance() {
	household := suite.createTestHousehold(models.Household{})
	account := suite.createTestAccount(models.Account{HouseholdID: household.ID})

	balance, err := account.Balance(models.DB)
	suite.Require().NoError(err)
	suite.Assert().True(balance.IsZero())

	suite.createTestTransaction(models.Transaction{
		HouseholdID: household.ID,
		AccountID:   account.ID,
		Date:        date(2024, 1, 2),
		Amount:      decimal.NewFromInt(1000),
	})

	suite.createTestTransaction(models.Transaction{
		HouseholdID: household.ID,
		AccountID:   account.ID,
		Date:        date(2024, 1, 5),
		Amount:      decimal.NewFromFloat(-120.50),
	})

	balance, err = account.Balance(models.DB)
	suite.Require().NoError(err)
	suite.Assert().True(balance.Equal(decimal.NewFromFloat(879.50)), "Balance is %s", balance)
}

func (suite *TestSuiteStandard) TestAccountBalanceWithTransfer() {
	household := suite.createTestHousehold(models.Household{})
	checking := suite.createTestAccount(models.Account{HouseholdID: household.ID, Name: "Checking"})
	savings := suite.createTestAccount(models.Account{HouseholdID: household.ID, Name: "Savings"})

	suite.createTestTransaction(models.Transaction{
		HouseholdID: household.ID,
		AccountID:   checking.ID,
		Date:        date(2024, 1, 2),
		Amount:      decimal.NewFromInt(1000),
	})

	from, to, err := models.NewTransferLegs(household.ID, checking.ID, savings.ID, decimal.NewFromInt(300), date(2024, 1, 10), "")
	suite.Require().NoError(err)

	_, err = models.CreateTransfer(models.DB, from, to)
	suite.Require().NoError(err)

	// Transfer legs count against the account balances
	balance, err := checking.Balance(models.DB)
	suite.Require().NoError(err)
	suite.Assert().True(balance.Equal(decimal.NewFromInt(700)), "Balance is %s", balance)

	balance, err = savings.Balance(models.DB)
	suite.Require().NoError(err)
	suite.Assert().True(balance.Equal(decimal.NewFromInt(300)), "Balance is %s", balance)
}

func (suite *TestSuiteStandard) TestAccountNameUniquePerHousehold() {
	household := suite.createTestHousehold(models.Household{})
	suite.createTestAccount(models.Account{HouseholdID: household.ID, Name: "Checking"})

	err := models.DB.Create(&models.Account{
		HouseholdID: household.ID,
		Name:        "Checking",
	}).Error
	suite.Assert().ErrorIs(err, models.ErrAccountNameNotUnique)

	// The same name is fine in another household
	other := suite.createTestHousehold(models.Household{})
	err = models.DB.Create(&models.Account{
		HouseholdID: other.ID,
		Name:        "Checking",
	}).Error
	suite.Assert().NoError(err)
}
