package test

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"pismo-account-backend/internal/utils"
)

// HealthResponse defines the structure of the health probe response
type HealthResponse struct {
	Status string    `json:"status"`
	Time   time.Time `json:"time"`
}

// HealthHandler godoc
// @Summary      Health check
// @Description  Liveness probe; requires no authentication.
// @Tags         test
// @Produce      json
// @Success      200 {object} utils.Response{data=HealthResponse}
// @Router       /test/health [get]
func HealthHandler(c *gin.Context) {
	c.JSON(http.StatusOK, utils.NewSuccessResponse(
		"Service is healthy",
		HealthResponse{Status: "ok", Time: time.Now()},
	))
}
