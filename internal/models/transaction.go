package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// Transaction is an append-only ledger record. Amount carries the sign
// dictated by the operation type and EventDate is assigned server-side at
// persistence time; neither is ever updated.
type Transaction struct {
	ID              uint            `gorm:"primarykey;column:transaction_id"`
	AccountID       uint            `gorm:"index;not null"`
	OperationTypeID uint            `gorm:"not null"`
	Amount          decimal.Decimal `gorm:"type:decimal(19,2);not null"`
	EventDate       time.Time       `gorm:"not null;precision:3"`
}
