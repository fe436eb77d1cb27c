package v1

import (
	"fmt"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/hearthledger/backend/internal/models"
)

type MatchRuleEditable struct {
	Priority   uint      `json:"priority" example:"1"`                                      // The priority of the match rule, lower numbers are applied first
	Match      string    `json:"match" example:"REWE*" default:""`                          // The glob pattern to match payees against
	CategoryID uuid.UUID `json:"categoryId" example:"3b1ea324-d438-4419-882a-2fc91f71defe"` // The category to assign on a match
}

// model returns the database resource for the API representation of the editable fields
func (editable MatchRuleEditable) model(householdID uuid.UUID) models.MatchRule {
	return models.MatchRule{
		HouseholdID: householdID,
		Priority:    editable.Priority,
		Match:       editable.Match,
		CategoryID:  editable.CategoryID,
	}
}

type MatchRuleLinks struct {
	Self string `json:"self" example:"https://example.com/v1/match-rules/95685c82-53c6-455d-b235-f49960b73b21"` // The match rule itself
}

// MatchRule is the representation of a MatchRule in API v1.
type MatchRule struct {
	models.DefaultModel
	MatchRuleEditable
	Links MatchRuleLinks `json:"links"`
}

// newMatchRule returns the API v1 representation of the resource
func newMatchRule(c *gin.Context, model models.MatchRule) MatchRule {
	url := c.GetString(string(models.DBContextURL))

	return MatchRule{
		DefaultModel: model.DefaultModel,
		MatchRuleEditable: MatchRuleEditable{
			Priority:   model.Priority,
			Match:      model.Match,
			CategoryID: model.CategoryID,
		},
		Links: MatchRuleLinks{
			Self: fmt.Sprintf("%s/v1/match-rules/%s", url, model.ID),
		},
	}
}

type MatchRuleListResponse struct {
	Data       []MatchRule `json:"data"`                                                          // List of match rules
	Error      *string     `json:"error" example:"the specified resource ID is not a valid UUID"` // The error, if any occurred
	Pagination *Pagination `json:"pagination"`                                                    // Pagination information
}

type MatchRuleCreateResponse struct {
	Error *string             `json:"error" example:"the specified resource ID is not a valid UUID"` // The error, if any occurred
	Data  []MatchRuleResponse `json:"data"`                                                          // List of created MatchRules
}

func (m *MatchRuleCreateResponse) appendError(err error, currentStatus int) int {
	s := err.Error()
	m.Data = append(m.Data, MatchRuleResponse{Error: &s})

	// The final status code is the highest HTTP status code number
	newStatus := status(err)
	if newStatus > currentStatus {
		return newStatus
	}

	return currentStatus
}

type MatchRuleResponse struct {
	Error *string    `json:"error" example:"the specified resource ID is not a valid UUID"` // The error, if any occurred for this match rule
	Data  *MatchRule `json:"data"`                                                          // The MatchRule data, if creation was successful
}

type MatchRuleQueryFilter struct {
	Priority uint   `form:"priority"`                     // Priority of the match rule
	Match    string `form:"match" filterField:"false"`    // Match pattern, fuzzy matched
	Category string `form:"category" filterField:"false"` // ID of the category the rule assigns
	Offset   uint   `form:"offset" filterField:"false"`   // The offset of the first MatchRule returned. Defaults to 0.
	Limit    int    `form:"limit" filterField:"false"`    // Maximum number of MatchRules to return. Defaults to 50.
}

func (f MatchRuleQueryFilter) model() models.MatchRule {
	return models.MatchRule{
		Priority: f.Priority,
	}
}
