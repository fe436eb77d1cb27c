package v1_test

import (
	"fmt"
	"net/http"
	"net/http/httptest"

	"github.com/google/uuid"
	v1 "github.com/hearthledger/backend/internal/controllers/v1"
	"github.com/hearthledger/backend/internal/importer"
	"github.com/hearthledger/backend/internal/models"
	"github.com/hearthledger/backend/internal/types"
	"github.com/hearthledger/backend/test"
	"github.com/shopspring/decimal"
)

const testCSV = "2024-01-05,-12.50,Corner store,Weekly shop\n2024-01-06,1500,Employer,Salary\n"

// previewRequest uploads a CSV file for a preview with a signed amount
// column, payee and note.
func (suite *TestSuiteStandard) previewRequest(fileName, content string, fields map[string]string) httptest.ResponseRecorder {
	if _, ok := fields["amountColumn"]; !ok {
		fields["amountColumn"] = "1"
		fields["payeeColumn"] = "2"
		fields["noteColumn"] = "3"
	}

	body, headers := test.MultipartFile(suite.T(), fileName, content, fields)
	headers["Authorization"] = "Bearer " + suite.editorToken

	return test.Request(suite.T(), http.MethodPost, "/v1/import/preview", body, headers)
}

func (suite *TestSuiteStandard) TestImportPreview() {
	account := suite.createTestAccount(models.Account{Name: "Checking"})
	category := suite.createTestCategory(models.Category{Name: "Groceries"})
	rule := suite.createTestMatchRule(models.MatchRule{Priority: 1, Match: "Corner*", CategoryID: category.ID})

	recorder := suite.previewRequest("import.csv", testCSV, map[string]string{"accountId": account.ID.String()})
	test.AssertHTTPStatus(suite.T(), &recorder, http.StatusOK)

	var response v1.ImportPreviewResponse
	test.DecodeResponse(suite.T(), &recorder, &response)

	suite.Require().NotNil(response.Data)
	suite.Require().Len(response.Data.Rows, 2)

	// The first row matches the rule, the second does not
	first := response.Data.Rows[0]
	suite.Assert().Equal(account.ID, first.AccountID)
	suite.Assert().True(first.Amount.Equal(decimal.NewFromFloat(-12.50)), "Amount is %s", first.Amount)
	suite.Require().NotNil(first.MatchRuleID)
	suite.Assert().Equal(rule.ID, *first.MatchRuleID)
	suite.Require().NotNil(first.CategoryID)
	suite.Assert().Equal(category.ID, *first.CategoryID)
	suite.Assert().Empty(first.DuplicateTransactionIDs)

	suite.Assert().Nil(response.Data.Rows[1].MatchRuleID)
	suite.Assert().Nil(response.Data.Rows[1].CategoryID)

	// All rows are on the same account, so there are no candidates
	suite.Assert().Empty(response.Data.Candidates)
}

func (suite *TestSuiteStandard) TestImportPreviewDuplicates() {
	account := suite.createTestAccount(models.Account{Name: "Checking"})

	recorder := suite.previewRequest("import.csv", testCSV, map[string]string{"accountId": account.ID.String()})
	test.AssertHTTPStatus(suite.T(), &recorder, http.StatusOK)

	var preview v1.ImportPreviewResponse
	test.DecodeResponse(suite.T(), &recorder, &preview)
	suite.Require().NotNil(preview.Data)
	suite.Require().Len(preview.Data.Rows, 2)

	// Commit the previewed rows
	rows := make([]importer.Row, 0, len(preview.Data.Rows))
	for _, row := range preview.Data.Rows {
		rows = append(rows, row.Row)
	}

	recorder = suite.request(http.MethodPost, "/v1/import", importer.Batch{Rows: rows})
	test.AssertHTTPStatus(suite.T(), &recorder, http.StatusCreated)

	// Previewing the same file again flags every row as a duplicate
	recorder = suite.previewRequest("import.csv", testCSV, map[string]string{"accountId": account.ID.String()})
	test.AssertHTTPStatus(suite.T(), &recorder, http.StatusOK)

	test.DecodeResponse(suite.T(), &recorder, &preview)
	suite.Require().NotNil(preview.Data)
	suite.Require().Len(preview.Data.Rows, 2)
	suite.Assert().Len(preview.Data.Rows[0].DuplicateTransactionIDs, 1)
	suite.Assert().Len(preview.Data.Rows[1].DuplicateTransactionIDs, 1)
}

func (suite *TestSuiteStandard) TestImportPreviewNoAccount() {
	recorder := suite.previewRequest("import.csv", testCSV, map[string]string{})
	test.AssertHTTPStatus(suite.T(), &recorder, http.StatusBadRequest)
}

func (suite *TestSuiteStandard) TestImportPreviewWrongSuffix() {
	account := suite.createTestAccount(models.Account{Name: "Checking"})

	recorder := suite.previewRequest("import.txt", testCSV, map[string]string{"accountId": account.ID.String()})
	test.AssertHTTPStatus(suite.T(), &recorder, http.StatusBadRequest)
}

func (suite *TestSuiteStandard) TestImportPreviewForeignAccount() {
	other := suite.createTestHousehold(models.Household{})
	foreign := suite.createTestAccount(models.Account{HouseholdID: other.ID, Name: "Foreign"})

	recorder := suite.previewRequest("import.csv", testCSV, map[string]string{"accountId": foreign.ID.String()})
	test.AssertHTTPStatus(suite.T(), &recorder, http.StatusNotFound)
}

func (suite *TestSuiteStandard) TestCreateImport() {
	checking := suite.createTestAccount(models.Account{Name: "Checking"})
	savings := suite.createTestAccount(models.Account{Name: "Savings"})

	batch := importer.Batch{
		Rows: []importer.Row{
			{AccountID: checking.ID, Date: types.NewDate(2024, 1, 5), Amount: decimal.NewFromInt(-500)},
			{AccountID: savings.ID, Date: types.NewDate(2024, 1, 5), Amount: decimal.NewFromInt(500)},
			{AccountID: checking.ID, Date: types.NewDate(2024, 1, 6), Amount: decimal.NewFromFloat(-12.50), Payee: "Corner store"},
		},
		Transfers: []importer.Pair{{FromIndex: 0, ToIndex: 1}},
	}

	recorder := suite.request(http.MethodPost, "/v1/import", batch)
	test.AssertHTTPStatus(suite.T(), &recorder, http.StatusCreated)

	var response v1.ImportResponse
	test.DecodeResponse(suite.T(), &recorder, &response)

	suite.Require().NotNil(response.Data)
	suite.Assert().Equal(3, response.Data.Transactions)
	suite.Assert().Equal(1, response.Data.Transfers)
	suite.Assert().Empty(response.Data.Failures)

	// Every transaction is stamped with the import ID
	var count int64
	err := models.DB.Model(&models.Transaction{}).Where("import_id = ?", response.Data.ImportID).Count(&count).Error
	suite.Require().NoError(err)
	suite.Assert().Equal(int64(3), count)
}

func (suite *TestSuiteStandard) TestCreateImportPairConflict() {
	checking := suite.createTestAccount(models.Account{Name: "Checking"})
	savings := suite.createTestAccount(models.Account{Name: "Savings"})

	batch := importer.Batch{
		Rows: []importer.Row{
			{AccountID: checking.ID, Date: types.NewDate(2024, 1, 5), Amount: decimal.NewFromInt(-500)},
			{AccountID: savings.ID, Date: types.NewDate(2024, 1, 5), Amount: decimal.NewFromInt(500)},
			{AccountID: checking.ID, Date: types.NewDate(2024, 1, 6), Amount: decimal.NewFromInt(-500)},
		},
		Transfers: []importer.Pair{
			{FromIndex: 0, ToIndex: 1},
			{FromIndex: 2, ToIndex: 1},
		},
	}

	recorder := suite.request(http.MethodPost, "/v1/import", batch)
	test.AssertHTTPStatus(suite.T(), &recorder, http.StatusCreated)

	var response v1.ImportResponse
	test.DecodeResponse(suite.T(), &recorder, &response)

	suite.Require().NotNil(response.Data)
	suite.Assert().Equal(1, response.Data.Transfers)

	// The rejected pair's row is still imported as a plain transaction
	suite.Assert().Equal(3, response.Data.Transactions)
	suite.Require().Len(response.Data.Failures, 1)
	suite.Assert().Equal([]int{2, 1}, response.Data.Failures[0].Indexes)
}

func (suite *TestSuiteStandard) TestCreateImportViewer() {
	checking := suite.createTestAccount(models.Account{Name: "Checking"})

	batch := importer.Batch{
		Rows: []importer.Row{
			{AccountID: checking.ID, Date: types.NewDate(2024, 1, 5), Amount: decimal.NewFromInt(-500)},
		},
	}

	recorder := suite.requestWithToken(suite.viewerToken, http.MethodPost, "/v1/import", batch)
	test.AssertHTTPStatus(suite.T(), &recorder, http.StatusForbidden)
}

func (suite *TestSuiteStandard) TestCreateImportForeignAccount() {
	other := suite.createTestHousehold(models.Household{})
	foreign := suite.createTestAccount(models.Account{HouseholdID: other.ID, Name: "Foreign"})

	batch := importer.Batch{
		Rows: []importer.Row{
			{AccountID: foreign.ID, Date: types.NewDate(2024, 1, 5), Amount: decimal.NewFromInt(-500)},
		},
	}

	recorder := suite.request(http.MethodPost, "/v1/import", batch)
	test.AssertHTTPStatus(suite.T(), &recorder, http.StatusNotFound)
}

func (suite *TestSuiteStandard) TestRollbackImport() {
	checking := suite.createTestAccount(models.Account{Name: "Checking"})
	savings := suite.createTestAccount(models.Account{Name: "Savings"})

	batch := importer.Batch{
		Rows: []importer.Row{
			{AccountID: checking.ID, Date: types.NewDate(2024, 1, 5), Amount: decimal.NewFromInt(-500)},
			{AccountID: savings.ID, Date: types.NewDate(2024, 1, 5), Amount: decimal.NewFromInt(500)},
		},
		Transfers: []importer.Pair{{FromIndex: 0, ToIndex: 1}},
	}

	recorder := suite.request(http.MethodPost, "/v1/import", batch)
	test.AssertHTTPStatus(suite.T(), &recorder, http.StatusCreated)

	var response v1.ImportResponse
	test.DecodeResponse(suite.T(), &recorder, &response)
	suite.Require().NotNil(response.Data)

	rollbackURL := fmt.Sprintf("/v1/import/rollback?importId=%s", response.Data.ImportID)
	recorder = suite.request(http.MethodPost, rollbackURL, nil)
	test.AssertHTTPStatus(suite.T(), &recorder, http.StatusNoContent)

	var count int64
	err := models.DB.Model(&models.Transaction{}).Count(&count).Error
	suite.Require().NoError(err)
	suite.Assert().Zero(count)

	// Rolling back again is a no-op
	recorder = suite.request(http.MethodPost, rollbackURL, nil)
	test.AssertHTTPStatus(suite.T(), &recorder, http.StatusNoContent)
}

func (suite *TestSuiteStandard) TestRollbackImportNoID() {
	recorder := suite.request(http.MethodPost, "/v1/import/rollback", nil)
	test.AssertHTTPStatus(suite.T(), &recorder, http.StatusBadRequest)
}

func (suite *TestSuiteStandard) TestRollbackImportViewer() {
	recorder := suite.requestWithToken(suite.viewerToken, http.MethodPost, fmt.Sprintf("/v1/import/rollback?importId=%s", uuid.New()), nil)
	test.AssertHTTPStatus(suite.T(), &recorder, http.StatusForbidden)
}

func (suite *TestSuiteStandard) TestRollbackImportForeignHousehold() {
	other := suite.createTestHousehold(models.Household{})
	foreign := suite.createTestAccount(models.Account{HouseholdID: other.ID, Name: "Foreign"})

	importID := uuid.New()
	suite.createTestTransaction(models.Transaction{
		HouseholdID: other.ID,
		AccountID:   foreign.ID,
		Date:        date(2024, 1, 5),
		Amount:      decimal.NewFromInt(-500),
		ImportID:    &importID,
	})

	recorder := suite.request(http.MethodPost, fmt.Sprintf("/v1/import/rollback?importId=%s", importID), nil)
	test.AssertHTTPStatus(suite.T(), &recorder, http.StatusNotFound)
}
