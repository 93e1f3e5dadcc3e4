package services

import (
	"errors"
	"strings"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"pismo-account-backend/internal/database"
	"pismo-account-backend/internal/models"
)

var (
	ErrAccountNotFound       = errors.New("account not found")
	ErrDuplicateAccount      = errors.New("account with this document number already exists")
	ErrInvalidDocumentNumber = errors.New("document number must be between 11 and 14 characters")
)

var defaultCreditLimit = decimal.NewFromInt(1000)

// CreateAccount creates an account keyed by a unique document number. Two
// concurrent creations for the same document number are serialized by the
// storage unique index: exactly one succeeds, the loser observes
// ErrDuplicateAccount.
func CreateAccount(documentNumber string) (*models.Account, error) {
	documentNumber = strings.TrimSpace(documentNumber)
	if len(documentNumber) < 11 || len(documentNumber) > 14 {
		return nil, ErrInvalidDocumentNumber
	}

	account := &models.Account{
		DocumentNumber:       documentNumber,
		AvailableCreditLimit: defaultCreditLimit,
		Balance:              decimal.Zero,
	}

	if err := database.DB.Create(account).Error; err != nil {
		if isUniqueViolation(err) {
			return nil, ErrDuplicateAccount
		}
		return nil, err
	}

	return account, nil
}

// FindAccountByID resolves an account by its internal id.
func FindAccountByID(id uint) (*models.Account, error) {
	var account models.Account
	if err := database.DB.First(&account, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrAccountNotFound
		}
		return nil, err
	}
	return &account, nil
}

// isUniqueViolation reports whether err is a storage-layer unique-constraint
// violation. gorm translates these to ErrDuplicatedKey on postgres; the
// string checks cover the sqlite driver used in tests.
func isUniqueViolation(err error) bool {
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return true
	}
	msg := err.Error()
	return strings.Contains(msg, "duplicate key") || strings.Contains(msg, "UNIQUE constraint")
}
