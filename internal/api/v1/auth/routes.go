package auth

import (
	"github.com/gin-gonic/gin"

	"pismo-account-backend/internal/middleware"
	"pismo-account-backend/internal/utils"
)

func RegisterRoutes(router *gin.RouterGroup, tm *utils.TokenManager) {
	auth := router.Group("/auth")
	auth.POST("/register", Register)
	auth.POST("/login", Login(tm))
	auth.POST("/logout", middleware.AuthMiddleware(tm), Logout)
}
