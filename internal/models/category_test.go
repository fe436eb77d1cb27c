package models_test

import (
	"github.com/hearthledger/backend/internal/models"
)

func (suite *TestSuiteStandard) TestCategoryPath() {
	household := suite.createTestHousehold(models.Household{})

	parent := suite.createTestCategory(models.Category{HouseholdID: household.ID, Name: "Essentials"})
	suite.Assert().Equal("Essentials", parent.Path)

	child := suite.createTestCategory(models.Category{HouseholdID: household.ID, Name: "Groceries", ParentID: &parent.ID})
	suite.Assert().Equal("Essentials:Groceries", child.Path)
}

func (suite *TestSuiteStandard) TestCategoryTypeInvalid() {
	household := suite.createTestHousehold(models.Household{})

	err := models.DB.Create(&models.Category{
		HouseholdID: household.ID,
		Name:        "Broken",
		Type:        "sideways",
	}).Error

	suite.Assert().ErrorIs(err, models.ErrCategoryTypeInvalid)
}

func (suite *TestSuiteStandard) TestCategoryTypeMismatch() {
	household := suite.createTestHousehold(models.Household{})
	parent := suite.createTestCategory(models.Category{HouseholdID: household.ID, Name: "Essentials", Type: models.CategoryExpense})

	err := models.DB.Create(&models.Category{
		HouseholdID: household.ID,
		Name:        "Salary",
		Type:        models.CategoryIncome,
		ParentID:    &parent.ID,
	}).Error

	suite.Assert().ErrorIs(err, models.ErrCategoryTypeMismatch)
}

func (suite *TestSuiteStandard) TestCategoryForeignParent() {
	household := suite.createTestHousehold(models.Household{})
	other := suite.createTestHousehold(models.Household{})
	parent := suite.createTestCategory(models.Category{HouseholdID: other.ID, Name: "Secret Savings"})

	err := models.DB.Create(&models.Category{
		HouseholdID: household.ID,
		Name:        "Leak",
		Type:        models.CategoryExpense,
		ParentID:    &parent.ID,
	}).Error

	suite.Assert().ErrorIs(err, models.ErrResourceNotFound)
}

func (suite *TestSuiteStandard) TestCategoryNameNotUnique() {
	household := suite.createTestHousehold(models.Household{})
	suite.createTestCategory(models.Category{HouseholdID: household.ID, Name: "Groceries"})

	err := models.DB.Create(&models.Category{
		HouseholdID: household.ID,
		Name:        "Groceries",
		Type:        models.CategoryExpense,
	}).Error

	suite.Assert().ErrorIs(err, models.ErrCategoryNameNotUnique)
}

func (suite *TestSuiteStandard) TestCategoryMoveRename() {
	household := suite.createTestHousehold(models.Household{})
	parent := suite.createTestCategory(models.Category{HouseholdID: household.ID, Name: "Essentials"})
	child := suite.createTestCategory(models.Category{HouseholdID: household.ID, Name: "Groceries", ParentID: &parent.ID})
	grandchild := suite.createTestCategory(models.Category{HouseholdID: household.ID, Name: "Produce", ParentID: &child.ID})

	err := parent.Move(models.DB, "Daily life", nil)
	suite.Require().NoError(err)
	suite.Assert().Equal("Daily life", parent.Path)

	// The whole subtree is fixed up
	err = models.DB.First(&child, child.ID).Error
	suite.Require().NoError(err)
	suite.Assert().Equal("Daily life:Groceries", child.Path)

	err = models.DB.First(&grandchild, grandchild.ID).Error
	suite.Require().NoError(err)
	suite.Assert().Equal("Daily life:Groceries:Produce", grandchild.Path)
}

func (suite *TestSuiteStandard) TestCategoryMoveReparent() {
	household := suite.createTestHousehold(models.Household{})
	essentials := suite.createTestCategory(models.Category{HouseholdID: household.ID, Name: "Essentials"})
	fun := suite.createTestCategory(models.Category{HouseholdID: household.ID, Name: "Fun"})
	games := suite.createTestCategory(models.Category{HouseholdID: household.ID, Name: "Games", ParentID: &fun.ID})
	board := suite.createTestCategory(models.Category{HouseholdID: household.ID, Name: "Board games", ParentID: &games.ID})

	err := games.Move(models.DB, "", &essentials.ID)
	suite.Require().NoError(err)
	suite.Assert().Equal("Essentials:Games", games.Path)
	suite.Assert().Equal(&essentials.ID, games.ParentID)

	err = models.DB.First(&board, board.ID).Error
	suite.Require().NoError(err)
	suite.Assert().Equal("Essentials:Games:Board games", board.Path)
}

func (suite *TestSuiteStandard) TestCategoryMoveCycle() {
	household := suite.createTestHousehold(models.Household{})
	parent := suite.createTestCategory(models.Category{HouseholdID: household.ID, Name: "Essentials"})
	child := suite.createTestCategory(models.Category{HouseholdID: household.ID, Name: "Groceries", ParentID: &parent.ID})

	err := parent.Move(models.DB, "", &child.ID)
	suite.Assert().ErrorIs(err, models.ErrCategoryCycle)

	err = parent.Move(models.DB, "", &parent.ID)
	suite.Assert().ErrorIs(err, models.ErrCategoryCycle)
}

func (suite *TestSuiteStandard) TestCategoryMoveTypeMismatch() {
	household := suite.createTestHousehold(models.Household{})
	expense := suite.createTestCategory(models.Category{HouseholdID: household.ID, Name: "Essentials", Type: models.CategoryExpense})
	income := suite.createTestCategory(models.Category{HouseholdID: household.ID, Name: "Income", Type: models.CategoryIncome})

	err := expense.Move(models.DB, "", &income.ID)
	suite.Assert().ErrorIs(err, models.ErrCategoryTypeMismatch)
}

func (suite *TestSuiteStandard) TestCategoryMoveForeignParent() {
	household := suite.createTestHousehold(models.Household{})
	other := suite.createTestHousehold(models.Household{})

	category := suite.createTestCategory(models.Category{HouseholdID: household.ID, Name: "Groceries"})
	foreign := suite.createTestCategory(models.Category{HouseholdID: other.ID, Name: "Groceries"})

	err := category.Move(models.DB, "", &foreign.ID)
	suite.Assert().ErrorIs(err, models.ErrResourceNotFound)
}

func (suite *TestSuiteStandard) TestCategoryHasChildren() {
	household := suite.createTestHousehold(models.Household{})
	parent := suite.createTestCategory(models.Category{HouseholdID: household.ID, Name: "Essentials"})
	child := suite.createTestCategory(models.Category{HouseholdID: household.ID, Name: "Groceries", ParentID: &parent.ID})

	hasChildren, err := parent.HasChildren(models.DB)
	suite.Require().NoError(err)
	suite.Assert().True(hasChildren)

	hasChildren, err = child.HasChildren(models.DB)
	suite.Require().NoError(err)
	suite.Assert().False(hasChildren)
}

func (suite *TestSuiteStandard) TestCategorySubtreeIDs() {
	household := suite.createTestHousehold(models.Household{})
	parent := suite.createTestCategory(models.Category{HouseholdID: household.ID, Name: "Essentials"})
	child := suite.createTestCategory(models.Category{HouseholdID: household.ID, Name: "Groceries", ParentID: &parent.ID})
	grandchild := suite.createTestCategory(models.Category{HouseholdID: household.ID, Name: "Produce", ParentID: &child.ID})

	// A sibling with a path that shares the prefix as a string, but not
	// as a path segment
	suite.createTestCategory(models.Category{HouseholdID: household.ID, Name: "Essentials extra"})

	ids, err := parent.SubtreeIDs(models.DB)
	suite.Require().NoError(err)

	suite.Assert().Len(ids, 3)
	suite.Assert().Contains(ids, parent.ID)
	suite.Assert().Contains(ids, child.ID)
	suite.Assert().Contains(ids, grandchild.ID)
}
