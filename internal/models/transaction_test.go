package models_test

import (
	"github.com/google/uuid"
	"github.com/hearthledger/backend/internal/models"
	"github.com/shopspring/decimal"
)

func (suite *TestSuiteStandard) TestTransactionAmountZero() {
	household := suite.createTestHousehold(models.Household{})
	account := suite.createTestAccount(models.Account{HouseholdID: household.ID})

	err := models.DB.Create(&models.Transaction{
		HouseholdID: household.ID,
		AccountID:   account.ID,
		Date:        date(2024, 1, 5),
		Amount:      decimal.Zero,
	}).Error

	suite.Assert().ErrorIs(err, models.ErrAmountZero)
}

func (suite *TestSuiteStandard) TestTransactionType() {
	expense := models.Transaction{Amount: decimal.NewFromInt(-10)}
	suite.Assert().Equal(models.TransactionExpense, expense.Type())

	income := models.Transaction{Amount: decimal.NewFromInt(10)}
	suite.Assert().Equal(models.TransactionIncome, income.Type())
}

func (suite *TestSuiteStandard) TestTransactionNilUUIDs() {
	household := suite.createTestHousehold(models.Household{})
	account := suite.createTestAccount(models.Account{HouseholdID: household.ID})

	transaction := suite.createTestTransaction(models.Transaction{
		HouseholdID: household.ID,
		AccountID:   account.ID,
		CategoryID:  &uuid.Nil,
		MemberID:    &uuid.Nil,
		DebtID:      &uuid.Nil,
		Date:        date(2024, 1, 5),
		Amount:      decimal.NewFromInt(-10),
	})

	suite.Assert().Nil(transaction.CategoryID)
	suite.Assert().Nil(transaction.MemberID)
	suite.Assert().Nil(transaction.DebtID)
}

func (suite *TestSuiteStandard) TestTransactionTrimsStrings() {
	household := suite.createTestHousehold(models.Household{})
	account := suite.createTestAccount(models.Account{HouseholdID: household.ID})

	transaction := suite.createTestTransaction(models.Transaction{
		HouseholdID: household.ID,
		AccountID:   account.ID,
		Date:        date(2024, 1, 5),
		Amount:      decimal.NewFromInt(-10),
		Payee:       " Corner store ",
		Note:        " weekly shop ",
	})

	suite.Assert().Equal("Corner store", transaction.Payee)
	suite.Assert().Equal("weekly shop", transaction.Note)
}
