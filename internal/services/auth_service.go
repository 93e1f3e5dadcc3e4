package services

import (
	"errors"
	"strings"

	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"pismo-account-backend/internal/database"
	"pismo-account-backend/internal/models"
	"pismo-account-backend/internal/utils"
)

var (
	ErrUsernameTaken = errors.New("username already exists")
	ErrEmailTaken    = errors.New("email already exists")
	// ErrInvalidCredentials deliberately covers both unknown-user and
	// wrong-password so the caller cannot probe which usernames exist.
	ErrInvalidCredentials = errors.New("invalid username or password")
)

// RegisterUser creates a new identity. Duplicate username and email are
// checked before any write; requested role names are normalized to the
// ROLE_<NAME> form and created on demand, with ROLE_USER assigned when none
// are requested.
func RegisterUser(username, email, password string, roleNames []string) (*models.User, error) {
	var count int64
	if err := database.DB.Model(&models.User{}).Where("username = ?", username).Count(&count).Error; err != nil {
		return nil, err
	}
	if count > 0 {
		return nil, ErrUsernameTaken
	}

	if err := database.DB.Model(&models.User{}).Where("email = ?", email).Count(&count).Error; err != nil {
		return nil, err
	}
	if count > 0 {
		return nil, ErrEmailTaken
	}

	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}

	names := make([]string, 0, len(roleNames))
	for _, name := range roleNames {
		names = append(names, NormalizeRoleName(name))
	}
	if len(names) == 0 {
		names = append(names, models.RoleUser)
	}

	roles, err := EnsureRoles(names)
	if err != nil {
		return nil, err
	}

	user := &models.User{
		Username: username,
		Email:    email,
		Password: string(hashedPassword),
		Enabled:  true,
		Roles:    roles,
	}

	if err := database.DB.Create(user).Error; err != nil {
		if isUniqueViolation(err) {
			// A concurrent registration won the race on username or email.
			return nil, ErrUsernameTaken
		}
		return nil, err
	}

	return user, nil
}

// LoginUser verifies the presented credentials and issues a bearer token
// carrying the identity's role claims.
func LoginUser(tm *utils.TokenManager, username, password string) (string, *models.User, error) {
	var user models.User
	if err := database.DB.Preload("Roles").Where("username = ?", username).First(&user).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return "", nil, ErrInvalidCredentials
		}
		return "", nil, err
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(password)); err != nil {
		return "", nil, ErrInvalidCredentials
	}

	if !user.Enabled {
		return "", nil, ErrInvalidCredentials
	}

	token, err := tm.Issue(user.Username, user.RoleNames())
	if err != nil {
		return "", nil, err
	}

	return token, &user, nil
}

// NormalizeRoleName maps a requested role name to its canonical
// ROLE_<UPPER> form; names already carrying the prefix pass through.
func NormalizeRoleName(name string) string {
	name = strings.ToUpper(strings.TrimSpace(name))
	if strings.HasPrefix(name, "ROLE_") {
		return name
	}
	return "ROLE_" + name
}

// EnsureRoles upserts the given role names and returns the full set, creating
// any that do not exist yet. The operation is idempotent.
func EnsureRoles(names []string) ([]models.Role, error) {
	roles := make([]models.Role, 0, len(names))
	for _, name := range names {
		var role models.Role
		err := database.DB.Where(models.Role{Name: name}).FirstOrCreate(&role).Error
		if err != nil {
			if !isUniqueViolation(err) {
				return nil, err
			}
			// Lost a concurrent create of the same role; fetch the winner.
			if err := database.DB.Where("name = ?", name).First(&role).Error; err != nil {
				return nil, err
			}
		}
		roles = append(roles, role)
	}
	return roles, nil
}
