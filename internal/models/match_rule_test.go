package models_test

import (
	"github.com/hearthledger/backend/internal/models"
)

func (suite *TestSuiteStandard) TestMatchRuleMatches() {
	rule := models.MatchRule{Match: "Supermarket*"}

	suite.Assert().True(rule.Matches("Supermarket Main Street"))
	suite.Assert().False(rule.Matches("Gas station"))

	contains := models.MatchRule{Match: "*PayPal*"}
	suite.Assert().True(contains.Matches("PAYMENT PayPal Inc"))
}

func (suite *TestSuiteStandard) TestMatchRulesFor() {
	household := suite.createTestHousehold(models.Household{})
	other := suite.createTestHousehold(models.Household{})

	groceries := suite.createTestCategory(models.Category{HouseholdID: household.ID, Name: "Groceries"})
	foreign := suite.createTestCategory(models.Category{HouseholdID: other.ID, Name: "Groceries"})

	suite.createTestMatchRule(models.MatchRule{HouseholdID: household.ID, Priority: 2, Match: "B*", CategoryID: groceries.ID})
	suite.createTestMatchRule(models.MatchRule{HouseholdID: household.ID, Priority: 1, Match: "Z*", CategoryID: groceries.ID})
	suite.createTestMatchRule(models.MatchRule{HouseholdID: household.ID, Priority: 1, Match: "A*", CategoryID: groceries.ID})
	suite.createTestMatchRule(models.MatchRule{HouseholdID: other.ID, Priority: 0, Match: "C*", CategoryID: foreign.ID})

	rules, err := models.MatchRulesFor(models.DB, household.ID)
	suite.Require().NoError(err)

	// Ordered by priority, then by pattern. Rules of other households
	// are not returned.
	suite.Require().Len(rules, 3)
	suite.Assert().Equal("A*", rules[0].Match)
	suite.Assert().Equal("Z*", rules[1].Match)
	suite.Assert().Equal("B*", rules[2].Match)
}
