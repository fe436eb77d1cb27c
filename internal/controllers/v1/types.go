package v1

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/hearthledger/backend/internal/models"
	hl_uuid "github.com/hearthledger/backend/internal/uuid"
)

type URIID struct {
	ID hl_uuid.UUID `uri:"id" binding:"required" format:"UUID"` // ID of the resource
}

// Pagination contains information about the pagination for collection endpoint responses.
type Pagination struct {
	Count  int   `json:"count"`  // The amount of records returned in this response
	Offset uint  `json:"offset"` // The offset for the first record returned
	Limit  int   `json:"limit"`  // The maximum amount of resources to return for this request
	Total  int64 `json:"total"`  // The total number of resources matching the query
}

// requestContext returns the caller identity resolved by the
// authentication middleware. It panics when called outside of the /v1
// route group.
func requestContext(c *gin.Context) models.RequestContext {
	return c.MustGet(string(models.DBContextRequest)).(models.RequestContext)
}

type V1Response struct {
	Links V1Links `json:"links"`
}

type V1Links struct {
	Accounts     string `json:"accounts" example:"https://example.com/v1/accounts"`
	Categories   string `json:"categories" example:"https://example.com/v1/categories"`
	Budgets      string `json:"budgets" example:"https://example.com/v1/budgets"`
	Transactions string `json:"transactions" example:"https://example.com/v1/transactions"`
	Debts        string `json:"debts" example:"https://example.com/v1/debts"`
	MatchRules   string `json:"matchRules" example:"https://example.com/v1/match-rules"`
	Import       string `json:"import" example:"https://example.com/v1/import"`
}

// @Summary		v1 API
// @Description	Entrypoint for the v1 API, listing all endpoints
// @Tags			v1
// @Success		200	{object}	V1Response
// @Router			/v1 [get]
func GetV1(c *gin.Context) {
	url := c.GetString(string(models.DBContextURL))

	c.JSON(http.StatusOK, V1Response{
		Links: V1Links{
			Accounts:     url + "/v1/accounts",
			Categories:   url + "/v1/categories",
			Budgets:      url + "/v1/budgets",
			Transactions: url + "/v1/transactions",
			Debts:        url + "/v1/debts",
			MatchRules:   url + "/v1/match-rules",
			Import:       url + "/v1/import",
		},
	})
}

// @Summary		Allowed HTTP verbs
// @Description	Returns an empty response with the HTTP Header "allow" set to the allowed HTTP verbs
// @Tags			v1
// @Success		204
// @Router			/v1 [options]
func OptionsV1(c *gin.Context) {
	c.Header("allow", "OPTIONS, GET")
	c.Status(http.StatusNoContent)
}
