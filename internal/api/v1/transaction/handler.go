package transaction

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"pismo-account-backend/internal/services"
	"pismo-account-backend/internal/utils"
)

// CreateTransaction godoc
// @Summary Create a new transaction
// @Description Post a transaction for an existing account with one of the four operation types
// @Tags transactions
// @Accept  json
// @Produce  json
// @Security ApiKeyAuth
// @Param   input     body   CreateTransactionInput  true  "Transaction Input"
// @Success 201 {object} utils.Response{data=TransactionResponse}
// @Failure 400 {object} utils.Response
// @Failure 401 {object} utils.Response
// @Failure 404 {object} utils.Response
// @Failure 422 {object} utils.Response
// @Router /transactions [post]
func CreateTransaction(c *gin.Context) {
	var input CreateTransactionInput
	if !utils.BindAndValidate(c, &input) {
		return
	}

	t, err := services.CreateTransaction(input.AccountID, input.OperationTypeID, input.Amount)
	if err != nil {
		switch {
		case errors.Is(err, services.ErrInvalidAmount):
			c.JSON(http.StatusBadRequest, utils.NewErrorResponse(http.StatusBadRequest, err.Error()))
		case errors.Is(err, services.ErrAccountNotFound), errors.Is(err, services.ErrOperationTypeNotFound):
			c.JSON(http.StatusNotFound, utils.NewErrorResponse(http.StatusNotFound, err.Error()))
		case errors.Is(err, services.ErrInsufficientBalance):
			c.JSON(http.StatusUnprocessableEntity, utils.NewErrorResponse(http.StatusUnprocessableEntity, err.Error()))
		case errors.Is(err, services.ErrPostingConflict):
			c.JSON(http.StatusConflict, utils.NewErrorResponse(http.StatusConflict, err.Error()))
		default:
			c.JSON(http.StatusInternalServerError, utils.NewErrorResponse(http.StatusInternalServerError, "Failed to create transaction due to an internal error"))
		}
		return
	}

	c.JSON(http.StatusCreated, utils.NewResponse(http.StatusCreated, "Transaction created successfully", newTransactionResponse(t)))
}
