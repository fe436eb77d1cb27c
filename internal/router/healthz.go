package router

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/hearthledger/backend/internal/models"
)

type HealthzResponse struct {
	Status string `json:"status" example:"ok"`
}

// @Summary		Health check
// @Description	Reports whether the service can reach its database
// @Tags			General
// @Success		200	{object}	HealthzResponse
// @Failure		503	{object}	HealthzResponse
// @Router			/healthz [get]
func GetHealthz(c *gin.Context) {
	sqlDB, err := models.DB.DB()
	if err == nil {
		err = sqlDB.Ping()
	}

	if err != nil {
		c.JSON(http.StatusServiceUnavailable, HealthzResponse{Status: "unavailable"})
		return
	}

	c.JSON(http.StatusOK, HealthzResponse{Status: "ok"})
}

// @Summary		Allowed HTTP verbs
// @Description	Returns an empty response with the HTTP Header "allow" set to the allowed HTTP verbs
// @Tags			General
// @Success		204
// @Router			/healthz [options]
func OptionsHealthz(c *gin.Context) {
	c.Header("allow", "OPTIONS, GET")
	c.Status(http.StatusNoContent)
}
