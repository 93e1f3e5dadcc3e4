package transaction

import (
	"time"

	"github.com/shopspring/decimal"

	"pismo-account-backend/internal/models"
)

type CreateTransactionInput struct {
	AccountID       uint            `json:"account_id" binding:"required"`
	OperationTypeID uint            `json:"operation_type_id" binding:"required"`
	Amount          decimal.Decimal `json:"amount"`
}

type TransactionResponse struct {
	TransactionID   uint            `json:"transaction_id"`
	AccountID       uint            `json:"account_id"`
	OperationTypeID uint            `json:"operation_type_id"`
	Amount          decimal.Decimal `json:"amount"`
	EventDate       time.Time       `json:"event_date"`
}

func newTransactionResponse(t *models.Transaction) TransactionResponse {
	return TransactionResponse{
		TransactionID:   t.ID,
		AccountID:       t.AccountID,
		OperationTypeID: t.OperationTypeID,
		Amount:          t.Amount,
		EventDate:       t.EventDate,
	}
}
