package models

// OperationType classifies a transaction and fixes the sign of its stored
// amount. The catalog is static: it is compiled in here and mirrored into the
// operation_types reference table at startup.
type OperationType struct {
	ID          uint   `gorm:"primarykey;column:operation_type_id"`
	Description string `gorm:"not null"`
	Negative    bool   `gorm:"not null"`
}

const (
	OperationTypePurchase            uint = 1
	OperationTypeInstallmentPurchase uint = 2
	OperationTypeWithdrawal          uint = 3
	OperationTypePayment             uint = 4
)

var OperationTypes = []OperationType{
	{ID: OperationTypePurchase, Description: "PURCHASE", Negative: true},
	{ID: OperationTypeInstallmentPurchase, Description: "INSTALLMENT PURCHASE", Negative: true},
	{ID: OperationTypeWithdrawal, Description: "WITHDRAWAL", Negative: true},
	{ID: OperationTypePayment, Description: "PAYMENT", Negative: false},
}

// OperationTypeByID resolves a catalog entry, reporting whether the id is one
// of the four known operation types.
func OperationTypeByID(id uint) (OperationType, bool) {
	for _, op := range OperationTypes {
		if op.ID == id {
			return op, true
		}
	}
	return OperationType{}, false
}
