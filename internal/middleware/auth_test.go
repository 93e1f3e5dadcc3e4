package middleware

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/gin-gonic/gin"
	"github.com/go-redis/redis/v8"
	"github.com/stretchr/testify/assert"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"pismo-account-backend/internal/database"
	"pismo-account-backend/internal/models"
	"pismo-account-backend/internal/utils"
)

func setupTestDB(t *testing.T) {
	db, err := gorm.Open(sqlite.Open("file::memory:?cache=shared"), &gorm.Config{})
	if err != nil {
		t.Fatalf("failed to connect database: %v", err)
	}

	db.Migrator().DropTable(&models.User{}, &models.Role{}, "user_roles")
	if err := db.AutoMigrate(&models.User{}, &models.Role{}); err != nil {
		t.Fatalf("failed to migrate database: %v", err)
	}

	database.DB = db
}

func setupMockRedis(t *testing.T) *miniredis.Miniredis {
	mr, err := miniredis.Run()
	if err != nil {
		t.Fatalf("failed to start miniredis: %v", err)
	}

	database.RedisClient = redis.NewClient(&redis.Options{
		Addr: mr.Addr(),
	})

	t.Cleanup(func() {
		database.RedisClient = nil
		mr.Close()
	})

	return mr
}

func createTestUser(t *testing.T, username string, enabled bool, roleNames ...string) models.User {
	hashed, err := bcrypt.GenerateFromPassword([]byte("password123"), bcrypt.MinCost)
	assert.NoError(t, err)

	roles := make([]models.Role, 0, len(roleNames))
	for _, name := range roleNames {
		var role models.Role
		assert.NoError(t, database.DB.Where(models.Role{Name: name}).FirstOrCreate(&role).Error)
		roles = append(roles, role)
	}

	user := models.User{
		Username: username,
		Email:    username + "@example.com",
		Password: string(hashed),
		Enabled:  enabled,
		Roles:    roles,
	}
	assert.NoError(t, database.DB.Create(&user).Error)
	return user
}

func TestAuthMiddleware(t *testing.T) {
	setupTestDB(t)
	setupMockRedis(t)
	gin.SetMode(gin.TestMode)

	tm := utils.NewTokenManager("test_secret", time.Hour)
	expiredTM := utils.NewTokenManager("test_secret", -time.Hour)
	foreignTM := utils.NewTokenManager("other_secret", time.Hour)

	createTestUser(t, "alice", true, models.RoleUser)
	createTestUser(t, "bob", false, models.RoleUser)

	aliceToken, err := tm.Issue("alice", []string{models.RoleUser})
	assert.NoError(t, err)
	expiredToken, err := expiredTM.Issue("alice", []string{models.RoleUser})
	assert.NoError(t, err)
	forgedToken, err := foreignTM.Issue("alice", []string{models.RoleUser})
	assert.NoError(t, err)
	ghostToken, err := tm.Issue("nobody", []string{models.RoleUser})
	assert.NoError(t, err)
	disabledToken, err := tm.Issue("bob", []string{models.RoleUser})
	assert.NoError(t, err)

	tests := []struct {
		name           string
		authHeader     string
		expectedStatus int
	}{
		{
			name:           "Missing Authorization Header",
			authHeader:     "",
			expectedStatus: http.StatusUnauthorized,
		},
		{
			name:           "Invalid Token Format",
			authHeader:     "InvalidToken",
			expectedStatus: http.StatusUnauthorized,
		},
		{
			name:           "Garbled Token",
			authHeader:     "Bearer not.a.token",
			expectedStatus: http.StatusUnauthorized,
		},
		{
			name:           "Expired Token",
			authHeader:     "Bearer " + expiredToken,
			expectedStatus: http.StatusUnauthorized,
		},
		{
			name:           "Invalid Signature",
			authHeader:     "Bearer " + forgedToken,
			expectedStatus: http.StatusUnauthorized,
		},
		{
			name:           "Unknown Subject",
			authHeader:     "Bearer " + ghostToken,
			expectedStatus: http.StatusUnauthorized,
		},
		{
			name:           "Disabled User",
			authHeader:     "Bearer " + disabledToken,
			expectedStatus: http.StatusUnauthorized,
		},
		{
			name:           "Valid Token",
			authHeader:     "Bearer " + aliceToken,
			expectedStatus: http.StatusOK,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			router := gin.New()
			router.GET("/protected", AuthMiddleware(tm), func(c *gin.Context) {
				value, exists := c.Get(IdentityKey)
				assert.True(t, exists)
				identity := value.(AuthIdentity)
				assert.Equal(t, "alice", identity.Subject)
				assert.True(t, identity.HasRole(models.RoleUser))
				c.JSON(http.StatusOK, gin.H{"subject": identity.Subject})
			})

			w := httptest.NewRecorder()
			req := httptest.NewRequest("GET", "/protected", nil)
			if tt.authHeader != "" {
				req.Header.Set("Authorization", tt.authHeader)
			}
			router.ServeHTTP(w, req)

			assert.Equal(t, tt.expectedStatus, w.Code)
		})
	}
}

func TestRequireRole(t *testing.T) {
	setupTestDB(t)
	setupMockRedis(t)
	gin.SetMode(gin.TestMode)

	tm := utils.NewTokenManager("test_secret", time.Hour)

	createTestUser(t, "admin", true, models.RoleUser, models.RoleAdmin)
	createTestUser(t, "plain", true, models.RoleUser)

	adminToken, err := tm.Issue("admin", []string{models.RoleUser, models.RoleAdmin})
	assert.NoError(t, err)
	plainToken, err := tm.Issue("plain", []string{models.RoleUser})
	assert.NoError(t, err)

	router := gin.New()
	router.GET("/admin", AuthMiddleware(tm), RequireRole(models.RoleAdmin), func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"ok": true})
	})

	tests := []struct {
		name           string
		token          string
		expectedStatus int
	}{
		{name: "Admin Allowed", token: adminToken, expectedStatus: http.StatusOK},
		{name: "Plain User Forbidden", token: plainToken, expectedStatus: http.StatusForbidden},
		{name: "No Token", token: "", expectedStatus: http.StatusUnauthorized},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := httptest.NewRecorder()
			req := httptest.NewRequest("GET", "/admin", nil)
			if tt.token != "" {
				req.Header.Set("Authorization", "Bearer "+tt.token)
			}
			router.ServeHTTP(w, req)

			assert.Equal(t, tt.expectedStatus, w.Code)

			if tt.expectedStatus == http.StatusForbidden {
				var resp struct {
					Status int `json:"status"`
				}
				assert.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
				assert.Equal(t, http.StatusForbidden, resp.Status)
			}
		})
	}
}
