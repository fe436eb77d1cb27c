package v1_test

import (
	"fmt"
	"net/http"

	v1 "github.com/hearthledger/backend/internal/controllers/v1"
	"github.com/hearthledger/backend/internal/models"
	"github.com/hearthledger/backend/test"
	"github.com/shopspring/decimal"
)

func (suite *TestSuiteStandard) TestCreateDebts() {
	recorder := suite.request(http.MethodPost, "/v1/debts", []v1.DebtEditable{
		{Name: "Car loan", Kind: models.DebtOwing, Amount: decimal.NewFromInt(5000)},
	})
	test.AssertHTTPStatus(suite.T(), &recorder, http.StatusCreated)

	var response v1.DebtCreateResponse
	test.DecodeResponse(suite.T(), &recorder, &response)

	suite.Require().Len(response.Data, 1)
	suite.Require().NotNil(response.Data[0].Data)
	suite.Assert().True(response.Data[0].Data.Balance.Equal(decimal.NewFromInt(5000)))
}

func (suite *TestSuiteStandard) TestCreateDebtInvalidKind() {
	recorder := suite.request(http.MethodPost, "/v1/debts", []v1.DebtEditable{
		{Name: "Car loan", Kind: "borrowed", Amount: decimal.NewFromInt(5000)},
	})
	test.AssertHTTPStatus(suite.T(), &recorder, http.StatusBadRequest)
}

func (suite *TestSuiteStandard) TestGetDebtBalance() {
	account := suite.createTestAccount(models.Account{Name: "Checking"})
	debt := suite.createTestDebt(models.Debt{Name: "Car loan", Kind: models.DebtOwing, Amount: decimal.NewFromInt(5000)})

	suite.createTestTransaction(models.Transaction{
		AccountID: account.ID,
		DebtID:    &debt.ID,
		Date:      date(2024, 1, 5),
		Amount:    decimal.NewFromInt(-400),
	})

	recorder := suite.request(http.MethodGet, fmt.Sprintf("/v1/debts/%s", debt.ID), nil)
	test.AssertHTTPStatus(suite.T(), &recorder, http.StatusOK)

	var response v1.DebtResponse
	test.DecodeResponse(suite.T(), &recorder, &response)

	suite.Require().NotNil(response.Data)
	suite.Assert().True(response.Data.Balance.Equal(decimal.NewFromInt(4600)), "Balance is %s", response.Data.Balance)
}

func (suite *TestSuiteStandard) TestGetDebtsKindFilter() {
	suite.createTestDebt(models.Debt{Name: "Car loan", Kind: models.DebtOwing, Amount: decimal.NewFromInt(5000)})
	suite.createTestDebt(models.Debt{Name: "Loan to Sam", Kind: models.DebtOwed, Amount: decimal.NewFromInt(200)})

	recorder := suite.request(http.MethodGet, "/v1/debts?kind=owed", nil)
	test.AssertHTTPStatus(suite.T(), &recorder, http.StatusOK)

	var response v1.DebtListResponse
	test.DecodeResponse(suite.T(), &recorder, &response)

	suite.Require().Len(response.Data, 1)
	suite.Assert().Equal("Loan to Sam", response.Data[0].Name)
}
