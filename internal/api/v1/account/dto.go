package account

import "pismo-account-backend/internal/models"

type CreateAccountInput struct {
	DocumentNumber string `json:"document_number" binding:"required,min=11,max=14"`
}

type AccountResponse struct {
	AccountID      uint   `json:"account_id"`
	DocumentNumber string `json:"document_number"`
}

func newAccountResponse(a *models.Account) AccountResponse {
	return AccountResponse{
		AccountID:      a.ID,
		DocumentNumber: a.DocumentNumber,
	}
}
