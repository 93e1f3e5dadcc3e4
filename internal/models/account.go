package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// Account is identified externally by its unique document number. The balance
// is only mutated by the transaction posting engine when balance enforcement
// is enabled; Version backs the optimistic-locking update of that path.
type Account struct {
	ID                   uint `gorm:"primarykey;column:account_id"`
	CreatedAt            time.Time
	UpdatedAt            time.Time
	DocumentNumber       string          `gorm:"uniqueIndex;not null;size:14"`
	AvailableCreditLimit decimal.Decimal `gorm:"type:decimal(19,2);not null"`
	Balance              decimal.Decimal `gorm:"type:decimal(19,2);not null"`
	Version              int             `gorm:"not null;default:1"`
}
