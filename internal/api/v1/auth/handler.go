package auth

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"pismo-account-backend/internal/services"
	"pismo-account-backend/internal/utils"
)

type RegisterInput struct {
	Username string   `json:"username" binding:"required,min=3,max=50"`
	Email    string   `json:"email" binding:"required,email"`
	Password string   `json:"password" binding:"required,min=8"`
	Roles    []string `json:"roles"`
}

type LoginInput struct {
	Username string `json:"username" binding:"required"`
	Password string `json:"password" binding:"required"`
}

// JwtResponse is the login payload: the bearer token plus the authenticated
// identity and its role claims.
type JwtResponse struct {
	Token    string   `json:"token"`
	ID       uint     `json:"id"`
	Username string   `json:"username"`
	Email    string   `json:"email"`
	Roles    []string `json:"roles"`
}

// Register godoc
// @Summary Register a new user
// @Description Register a new user with username, email, password and optional role names
// @Tags auth
// @Accept  json
// @Produce  json
// @Param   input     body   RegisterInput  true  "Register Input"
// @Success 201 {object} utils.Response
// @Failure 400 {object} utils.Response
// @Failure 409 {object} utils.Response
// @Failure 500 {object} utils.Response
// @Router /auth/register [post]
func Register(c *gin.Context) {
	var input RegisterInput
	if !utils.BindAndValidate(c, &input) {
		return
	}

	_, err := services.RegisterUser(input.Username, input.Email, input.Password, input.Roles)
	if err != nil {
		if errors.Is(err, services.ErrUsernameTaken) || errors.Is(err, services.ErrEmailTaken) {
			c.JSON(http.StatusConflict, utils.NewErrorResponse(http.StatusConflict, err.Error()))
			return
		}
		c.JSON(http.StatusInternalServerError, utils.NewErrorResponse(http.StatusInternalServerError, "Failed to register user due to an internal error"))
		return
	}

	c.JSON(http.StatusCreated, utils.NewResponse(http.StatusCreated, "User registered successfully", nil))
}

// Login godoc
// @Summary Log in a user
// @Description Authenticate with username and password and receive a bearer token
// @Tags auth
// @Accept  json
// @Produce  json
// @Param   input     body   LoginInput  true  "Login Input"
// @Success 200 {object} utils.Response{data=JwtResponse}
// @Failure 400 {object} utils.Response
// @Failure 401 {object} utils.Response
// @Router /auth/login [post]
func Login(tm *utils.TokenManager) gin.HandlerFunc {
	return func(c *gin.Context) {
		var input LoginInput
		if !utils.BindAndValidate(c, &input) {
			return
		}

		token, u, err := services.LoginUser(tm, input.Username, input.Password)
		if err != nil {
			if errors.Is(err, services.ErrInvalidCredentials) {
				c.JSON(http.StatusUnauthorized, utils.NewErrorResponse(http.StatusUnauthorized, err.Error()))
				return
			}
			c.JSON(http.StatusInternalServerError, utils.NewErrorResponse(http.StatusInternalServerError, "Failed to log in due to an internal error"))
			return
		}

		c.JSON(http.StatusOK, utils.NewSuccessResponse("Logged in successfully", JwtResponse{
			Token:    token,
			ID:       u.ID,
			Username: u.Username,
			Email:    u.Email,
			Roles:    u.RoleNames(),
		}))
	}
}

// Logout godoc
// @Summary Log out a user
// @Description Tokens are stateless and cannot be revoked server-side; the client discards the token
// @Tags auth
// @Produce  json
// @Security ApiKeyAuth
// @Success 200 {object} utils.Response
// @Failure 401 {object} utils.Response
// @Router /auth/logout [post]
func Logout(c *gin.Context) {
	// Server-side no-op: tokens remain valid until expiry.
	c.JSON(http.StatusOK, utils.NewSuccessResponse("Logged out successfully", nil))
}
