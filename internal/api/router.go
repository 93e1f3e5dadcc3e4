package api

import (
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"

	"pismo-account-backend/config"
	_ "pismo-account-backend/docs"
	"pismo-account-backend/internal/api/test"
	adminUser "pismo-account-backend/internal/api/v1/admin/user"
	"pismo-account-backend/internal/api/v1/account"
	"pismo-account-backend/internal/api/v1/auth"
	"pismo-account-backend/internal/api/v1/transaction"
	userRoutes "pismo-account-backend/internal/api/v1/user"
	"pismo-account-backend/internal/database"
	"pismo-account-backend/internal/middleware"
	"pismo-account-backend/internal/models"
	"pismo-account-backend/internal/services"
	"pismo-account-backend/internal/utils"
)

func NewRouter() (*gin.Engine, error) {
	cfg, err := config.LoadConfig()
	if err != nil {
		return nil, err
	}

	_, err = database.Connect(cfg.DSN())
	if err != nil {
		return nil, err
	}

	err = database.ConnectRedis(cfg)
	if err != nil {
		return nil, err
	}

	services.SetBalanceEnforced(cfg.EnforceBalance)

	// The signing key is loaded once here and immutable afterwards.
	tm := utils.NewTokenManager(cfg.JWTSecret, time.Duration(cfg.JWTExpiryHours)*time.Hour)

	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(middleware.Logger())

	// Configure CORS
	router.Use(cors.New(cors.Config{
		AllowOrigins:     []string{"http://localhost:5173", "http://localhost:8080"},
		AllowMethods:     []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Accept", "Authorization"},
		ExposeHeaders:    []string{"Content-Length"},
		AllowCredentials: true,
		MaxAge:           300,
	}))

	// Swagger
	router.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	// API v1
	v1 := router.Group("/api/v1")
	{
		v1.GET("/test/health", test.HealthHandler)
		auth.RegisterRoutes(v1, tm)

		authorized := v1.Group("/")
		authorized.Use(middleware.AuthMiddleware(tm))
		{
			userRoutes.RegisterRoutes(authorized)
			account.RegisterRoutes(authorized)
			transaction.RegisterRoutes(authorized)
		}

		// Admin routes
		admin := v1.Group("/admin")
		admin.Use(middleware.AuthMiddleware(tm), middleware.RequireRole(models.RoleAdmin))
		{
			adminUser.RegisterRoutes(admin)
		}
	}

	return router, nil
}
