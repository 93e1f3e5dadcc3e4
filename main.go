package main

import (
	"log"

	"golang.org/x/crypto/bcrypt"

	"pismo-account-backend/config"
	"pismo-account-backend/internal/api"
	"pismo-account-backend/internal/database"
	"pismo-account-backend/internal/models"
	"pismo-account-backend/internal/services"
	"pismo-account-backend/pkg/logger"
)

// @title pismo-account-backend API
// @version 1.0
// @description Account and transaction management API with JWT authentication.

// @host localhost:8080
// @BasePath /api/v1

// @securityDefinitions.apikey ApiKeyAuth
// @in header
// @name Authorization

func main() {
	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatalf("failed to load config: %v", err)
	}

	if err := logger.InitLogger(&logger.Config{
		Level:      cfg.LogLevel,
		Filename:   cfg.LogFilename,
		MaxSize:    cfg.LogMaxSize,
		MaxBackups: cfg.LogMaxBackups,
		MaxAge:     cfg.LogMaxAge,
		Compress:   cfg.LogCompress,
	}); err != nil {
		log.Fatalf("failed to init logger: %v", err)
	}
	defer logger.Sync()

	router, err := api.NewRouter()
	if err != nil {
		log.Fatalf("failed to create router: %v", err)
	}

	// Migrate the schema
	err = database.DB.AutoMigrate(
		&models.User{},
		&models.Role{},
		&models.Account{},
		&models.OperationType{},
		&models.Transaction{},
	)
	if err != nil {
		log.Fatalf("failed to migrate database: %v", err)
	}

	if err := seedReferenceData(); err != nil {
		log.Fatalf("failed to seed reference data: %v", err)
	}

	if err := router.Run(":" + cfg.Port); err != nil {
		log.Fatalf("failed to run server: %v", err)
	}
}

// seedReferenceData installs the fixed operation-type catalog, the built-in
// roles and the default admin/user identities when they are missing.
func seedReferenceData() error {
	for _, op := range models.OperationTypes {
		row := op
		if err := database.DB.FirstOrCreate(&row, models.OperationType{ID: op.ID}).Error; err != nil {
			return err
		}
	}

	roles, err := services.EnsureRoles([]string{models.RoleUser, models.RoleAdmin})
	if err != nil {
		return err
	}
	roleUser, roleAdmin := roles[0], roles[1]

	defaultUsers := []struct {
		username string
		email    string
		roles    []models.Role
	}{
		{"admin", "admin@pismo.com", []models.Role{roleUser, roleAdmin}},
		{"user", "user@pismo.com", []models.Role{roleUser}},
	}

	for _, du := range defaultUsers {
		var count int64
		if err := database.DB.Model(&models.User{}).Where("username = ?", du.username).Count(&count).Error; err != nil {
			return err
		}
		if count > 0 {
			continue
		}

		hashedPassword, err := bcrypt.GenerateFromPassword([]byte("password123"), bcrypt.DefaultCost)
		if err != nil {
			return err
		}

		user := models.User{
			Username: du.username,
			Email:    du.email,
			Password: string(hashedPassword),
			Enabled:  true,
			Roles:    du.roles,
		}
		if err := database.DB.Create(&user).Error; err != nil {
			return err
		}
		log.Printf("default user %q created", du.username)
	}

	return nil
}
