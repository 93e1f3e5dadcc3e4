package user

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"pismo-account-backend/internal/middleware"
	"pismo-account-backend/internal/models"
	"pismo-account-backend/internal/utils"
)

// CurrentUser godoc
// @Summary Get current user
// @Description Get the authenticated user's information
// @Tags user
// @Produce  json
// @Security ApiKeyAuth
// @Success 200 {object} utils.Response{data=UserResponse}
// @Failure 401 {object} utils.Response
// @Router /auth/user [get]
func CurrentUser(c *gin.Context) {
	value, exists := c.Get(middleware.UserKey)
	if !exists {
		c.JSON(http.StatusUnauthorized, utils.NewErrorResponse(http.StatusUnauthorized, "Unauthorized"))
		return
	}

	u := value.(models.User)

	c.JSON(http.StatusOK, utils.NewSuccessResponse("User information retrieved successfully", UserResponse{
		ID:       u.ID,
		Username: u.Username,
		Email:    u.Email,
		Enabled:  u.Enabled,
		Roles:    u.RoleNames(),
	}))
}
