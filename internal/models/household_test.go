package models_test

import (
	"time"

	"github.com/hearthledger/backend/internal/models"
)

func (suite *TestSuiteStandard) TestRoleAtLeast() {
	suite.Assert().True(models.RoleAdmin.AtLeast(models.RoleEditor))
	suite.Assert().True(models.RoleEditor.AtLeast(models.RoleEditor))
	suite.Assert().True(models.RoleEditor.AtLeast(models.RoleViewer))
	suite.Assert().False(models.RoleViewer.AtLeast(models.RoleEditor))
	suite.Assert().False(models.Role("").AtLeast(models.RoleViewer))
}

func (suite *TestSuiteStandard) TestResolveToken() {
	household := suite.createTestHousehold(models.Household{})
	member := suite.createTestMember(models.Member{HouseholdID: household.ID, Role: models.RoleEditor})
	session := suite.createTestSession(models.Session{
		MemberID:    member.ID,
		HouseholdID: household.ID,
		ExpiresAt:   time.Now().Add(time.Hour),
	})

	rc, err := models.ResolveToken(models.DB, session.Token)
	suite.Require().NoError(err)

	suite.Assert().Equal(member.ID, rc.MemberID)
	suite.Assert().Equal(household.ID, rc.HouseholdID)
	suite.Assert().Equal(models.RoleEditor, rc.Role)
}

func (suite *TestSuiteStandard) TestResolveTokenExpired() {
	household := suite.createTestHousehold(models.Household{})
	member := suite.createTestMember(models.Member{HouseholdID: household.ID, Role: models.RoleEditor})
	session := suite.createTestSession(models.Session{
		MemberID:    member.ID,
		HouseholdID: household.ID,
		ExpiresAt:   time.Now().Add(-time.Hour),
	})

	_, err := models.ResolveToken(models.DB, session.Token)
	suite.Assert().ErrorIs(err, models.ErrNoPermission)
}

func (suite *TestSuiteStandard) TestResolveTokenUnknown() {
	_, err := models.ResolveToken(models.DB, "not-a-token")
	suite.Assert().ErrorIs(err, models.ErrResourceNotFound)
}
