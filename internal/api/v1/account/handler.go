package account

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"pismo-account-backend/internal/services"
	"pismo-account-backend/internal/utils"
)

// CreateAccount godoc
// @Summary Create a new account
// @Description Create an account with a unique document number (11-14 characters)
// @Tags accounts
// @Accept  json
// @Produce  json
// @Security ApiKeyAuth
// @Param   input     body   CreateAccountInput  true  "Account Input"
// @Success 201 {object} utils.Response{data=AccountResponse}
// @Failure 400 {object} utils.Response
// @Failure 401 {object} utils.Response
// @Failure 409 {object} utils.Response
// @Failure 500 {object} utils.Response
// @Router /accounts [post]
func CreateAccount(c *gin.Context) {
	var input CreateAccountInput
	if !utils.BindAndValidate(c, &input) {
		return
	}

	a, err := services.CreateAccount(input.DocumentNumber)
	if err != nil {
		switch {
		case errors.Is(err, services.ErrInvalidDocumentNumber):
			c.JSON(http.StatusBadRequest, utils.NewErrorResponse(http.StatusBadRequest, err.Error()))
		case errors.Is(err, services.ErrDuplicateAccount):
			c.JSON(http.StatusConflict, utils.NewErrorResponse(http.StatusConflict, err.Error()))
		default:
			c.JSON(http.StatusInternalServerError, utils.NewErrorResponse(http.StatusInternalServerError, "Failed to create account due to an internal error"))
		}
		return
	}

	c.JSON(http.StatusCreated, utils.NewResponse(http.StatusCreated, "Account created successfully", newAccountResponse(a)))
}

// GetAccount godoc
// @Summary Get account by ID
// @Description Retrieve an existing account by its internal id
// @Tags accounts
// @Produce  json
// @Security ApiKeyAuth
// @Param   accountId  path  int  true  "Account ID"
// @Success 200 {object} utils.Response{data=AccountResponse}
// @Failure 400 {object} utils.Response
// @Failure 401 {object} utils.Response
// @Failure 404 {object} utils.Response
// @Router /accounts/{accountId} [get]
func GetAccount(c *gin.Context) {
	id, err := strconv.ParseUint(c.Param("accountId"), 10, 32)
	if err != nil {
		c.JSON(http.StatusBadRequest, utils.NewErrorResponse(http.StatusBadRequest, "Invalid account ID"))
		return
	}

	a, err := services.FindAccountByID(uint(id))
	if err != nil {
		if errors.Is(err, services.ErrAccountNotFound) {
			c.JSON(http.StatusNotFound, utils.NewErrorResponse(http.StatusNotFound, err.Error()))
			return
		}
		c.JSON(http.StatusInternalServerError, utils.NewErrorResponse(http.StatusInternalServerError, "Failed to retrieve account due to an internal error"))
		return
	}

	c.JSON(http.StatusOK, utils.NewSuccessResponse("Account retrieved successfully", newAccountResponse(a)))
}
