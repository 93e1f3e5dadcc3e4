package services

import (
	"errors"
	"time"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"pismo-account-backend/internal/database"
	"pismo-account-backend/internal/models"
)

var (
	ErrInvalidAmount         = errors.New("amount must be positive with at most two decimal places")
	ErrOperationTypeNotFound = errors.New("operation type not found")
	ErrInsufficientBalance   = errors.New("insufficient balance for this transaction")
	ErrPostingConflict       = errors.New("account balance was modified concurrently, transaction not posted")
)

// balanceEnforced selects the posting policy: unconditional posting (default)
// or balance-enforced posting, which debits the account inside the same
// storage transaction. Set once at startup from configuration.
var balanceEnforced bool

func SetBalanceEnforced(enforce bool) {
	balanceEnforced = enforce
}

// CreateTransaction validates and persists a ledger posting. Validation order:
// amount, account existence, operation-type existence. The stored amount is
// the sign-normalized input; the event date is assigned here, server-side.
func CreateTransaction(accountID, operationTypeID uint, amount decimal.Decimal) (*models.Transaction, error) {
	if !amount.IsPositive() || amount.Exponent() < -2 {
		return nil, ErrInvalidAmount
	}

	account, err := FindAccountByID(accountID)
	if err != nil {
		return nil, err
	}

	operationType, ok := models.OperationTypeByID(operationTypeID)
	if !ok {
		return nil, ErrOperationTypeNotFound
	}

	transaction := &models.Transaction{
		AccountID:       account.ID,
		OperationTypeID: operationType.ID,
		Amount:          SignedAmount(amount, operationType),
		EventDate:       time.Now(),
	}

	if !balanceEnforced {
		if err := database.DB.Create(transaction).Error; err != nil {
			return nil, err
		}
		return transaction, nil
	}

	err = database.DB.Transaction(func(tx *gorm.DB) error {
		var current models.Account
		if err := tx.First(&current, account.ID).Error; err != nil {
			return err
		}

		newBalance := current.Balance.Add(transaction.Amount)
		if newBalance.LessThan(current.AvailableCreditLimit.Neg()) {
			return ErrInsufficientBalance
		}

		// Version-guarded update so a concurrent posting to the same account
		// cannot produce a lost balance write.
		result := tx.Model(&models.Account{}).
			Where("account_id = ? AND version = ?", current.ID, current.Version).
			Updates(map[string]interface{}{
				"balance": newBalance,
				"version": current.Version + 1,
			})
		if result.Error != nil {
			return result.Error
		}
		if result.RowsAffected == 0 {
			return ErrPostingConflict
		}

		return tx.Create(transaction).Error
	})
	if err != nil {
		return nil, err
	}

	return transaction, nil
}

// SignedAmount applies the operation type's sign convention: the absolute
// input amount, negated for debt-like operation types. Pure function of its
// inputs.
func SignedAmount(amount decimal.Decimal, operationType models.OperationType) decimal.Decimal {
	abs := amount.Abs()
	if operationType.Negative {
		return abs.Neg()
	}
	return abs
}
