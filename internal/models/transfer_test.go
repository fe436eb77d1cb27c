package models_test

import (
	"github.com/hearthledger/backend/internal/models"
	"github.com/shopspring/decimal"
)

func (suite *TestSuiteStandard) TestCreateTransfer() {
	household := suite.createTestHousehold(models.Household{})
	checking := suite.createTestAccount(models.Account{HouseholdID: household.ID, Name: "Checking"})
	savings := suite.createTestAccount(models.Account{HouseholdID: household.ID, Name: "Savings"})

	from, to, err := models.NewTransferLegs(household.ID, checking.ID, savings.ID, decimal.NewFromInt(500), date(2024, 1, 10), "Savings rate")
	suite.Require().NoError(err)

	transfer, err := models.CreateTransfer(models.DB, from, to)
	suite.Require().NoError(err)

	suite.Assert().True(transfer.FromTransaction.Amount.Equal(decimal.NewFromInt(-500)))
	suite.Assert().True(transfer.ToTransaction.Amount.Equal(decimal.NewFromInt(500)))

	// Both legs are stamped with the transfer
	var legs []models.Transaction
	err = models.DB.Where("transfer_id = ?", transfer.ID).Find(&legs).Error
	suite.Require().NoError(err)
	suite.Assert().Len(legs, 2)
}

func (suite *TestSuiteStandard) TestCreateTransferSameAccount() {
	household := suite.createTestHousehold(models.Household{})
	checking := suite.createTestAccount(models.Account{HouseholdID: household.ID, Name: "Checking"})

	from, to, err := models.NewTransferLegs(household.ID, checking.ID, checking.ID, decimal.NewFromInt(500), date(2024, 1, 10), "")
	suite.Require().NoError(err)

	_, err = models.CreateTransfer(models.DB, from, to)
	suite.Assert().ErrorIs(err, models.ErrSameAccountTransfer)
}

func (suite *TestSuiteStandard) TestCreateTransferLegDirection() {
	household := suite.createTestHousehold(models.Household{})
	checking := suite.createTestAccount(models.Account{HouseholdID: household.ID, Name: "Checking"})
	savings := suite.createTestAccount(models.Account{HouseholdID: household.ID, Name: "Savings"})

	from := models.Transaction{HouseholdID: household.ID, AccountID: checking.ID, Amount: decimal.NewFromInt(500), Date: date(2024, 1, 10)}
	to := models.Transaction{HouseholdID: household.ID, AccountID: savings.ID, Amount: decimal.NewFromInt(500), Date: date(2024, 1, 10)}

	_, err := models.CreateTransfer(models.DB, from, to)
	suite.Assert().ErrorIs(err, models.ErrTransferLegDirection)
}

func (suite *TestSuiteStandard) TestCreateTransferAmountMismatch() {
	household := suite.createTestHousehold(models.Household{})
	checking := suite.createTestAccount(models.Account{HouseholdID: household.ID, Name: "Checking"})
	savings := suite.createTestAccount(models.Account{HouseholdID: household.ID, Name: "Savings"})

	from := models.Transaction{HouseholdID: household.ID, AccountID: checking.ID, Amount: decimal.NewFromFloat(-500.01), Date: date(2024, 1, 10)}
	to := models.Transaction{HouseholdID: household.ID, AccountID: savings.ID, Amount: decimal.NewFromInt(500), Date: date(2024, 1, 10)}

	_, err := models.CreateTransfer(models.DB, from, to)
	suite.Assert().ErrorIs(err, models.ErrTransferAmountMismatch)
}

func (suite *TestSuiteStandard) TestNewTransferLegsNotPositive() {
	household := suite.createTestHousehold(models.Household{})
	checking := suite.createTestAccount(models.Account{HouseholdID: household.ID, Name: "Checking"})
	savings := suite.createTestAccount(models.Account{HouseholdID: household.ID, Name: "Savings"})

	_, _, err := models.NewTransferLegs(household.ID, checking.ID, savings.ID, decimal.Zero, date(2024, 1, 10), "")
	suite.Assert().ErrorIs(err, models.ErrAmountNotPositive)

	_, _, err = models.NewTransferLegs(household.ID, checking.ID, savings.ID, decimal.NewFromInt(-10), date(2024, 1, 10), "")
	suite.Assert().ErrorIs(err, models.ErrAmountNotPositive)
}

func (suite *TestSuiteStandard) TestDeleteTransfer() {
	household := suite.createTestHousehold(models.Household{})
	checking := suite.createTestAccount(models.Account{HouseholdID: household.ID, Name: "Checking"})
	savings := suite.createTestAccount(models.Account{HouseholdID: household.ID, Name: "Savings"})

	from, to, err := models.NewTransferLegs(household.ID, checking.ID, savings.ID, decimal.NewFromInt(500), date(2024, 1, 10), "")
	suite.Require().NoError(err)

	transfer, err := models.CreateTransfer(models.DB, from, to)
	suite.Require().NoError(err)

	err = models.DeleteTransfer(models.DB, transfer)
	suite.Require().NoError(err)

	var count int64
	err = models.DB.Model(&models.Transaction{}).Where("household_id = ?", household.ID).Count(&count).Error
	suite.Require().NoError(err)
	suite.Assert().Zero(count)

	err = models.DB.First(&models.Transfer{}, transfer.ID).Error
	suite.Assert().ErrorIs(err, models.ErrResourceNotFound)
}
