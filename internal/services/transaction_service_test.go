package services

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"pismo-account-backend/internal/database"
	"pismo-account-backend/internal/models"
)

func setupTransactionTestDB(t *testing.T) *models.Account {
	db, err := gorm.Open(sqlite.Open("file::memory:?cache=shared"), &gorm.Config{})
	if err != nil {
		t.Fatalf("failed to connect database: %v", err)
	}

	db.Migrator().DropTable(&models.Account{}, &models.Transaction{})
	if err := db.AutoMigrate(&models.Account{}, &models.Transaction{}); err != nil {
		t.Fatalf("failed to migrate database: %v", err)
	}

	database.DB = db

	t.Cleanup(func() { SetBalanceEnforced(false) })

	account, err := CreateAccount("12345678900")
	if err != nil {
		t.Fatalf("failed to create account: %v", err)
	}
	return account
}

func TestCreateTransactionSignConvention(t *testing.T) {
	account := setupTransactionTestDB(t)

	tests := []struct {
		name            string
		operationTypeID uint
		amount          string
		wantAmount      string
	}{
		{name: "Purchase Is Negative", operationTypeID: models.OperationTypePurchase, amount: "50.00", wantAmount: "-50.00"},
		{name: "Installment Purchase Is Negative", operationTypeID: models.OperationTypeInstallmentPurchase, amount: "23.50", wantAmount: "-23.50"},
		{name: "Withdrawal Is Negative", operationTypeID: models.OperationTypeWithdrawal, amount: "123.45", wantAmount: "-123.45"},
		{name: "Payment Is Positive", operationTypeID: models.OperationTypePayment, amount: "60.00", wantAmount: "60.00"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			transaction, err := CreateTransaction(account.ID, tt.operationTypeID, decimal.RequireFromString(tt.amount))
			assert.NoError(t, err)
			assert.NotZero(t, transaction.ID)
			assert.True(t, transaction.Amount.Equal(decimal.RequireFromString(tt.wantAmount)),
				"amount = %s, want %s", transaction.Amount, tt.wantAmount)
			assert.Equal(t, account.ID, transaction.AccountID)
			assert.WithinDuration(t, time.Now(), transaction.EventDate, 5*time.Second)
		})
	}
}

func TestCreateTransactionInvalidAmount(t *testing.T) {
	account := setupTransactionTestDB(t)

	tests := []struct {
		name   string
		amount string
	}{
		{name: "Zero", amount: "0"},
		{name: "Negative", amount: "-50.00"},
		{name: "Three Decimal Places", amount: "50.001"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := CreateTransaction(account.ID, models.OperationTypePurchase, decimal.RequireFromString(tt.amount))
			assert.ErrorIs(t, err, ErrInvalidAmount)
		})
	}
}

func TestCreateTransactionUnknownAccount(t *testing.T) {
	account := setupTransactionTestDB(t)

	_, err := CreateTransaction(account.ID+999, models.OperationTypePurchase, decimal.RequireFromString("50.00"))
	assert.ErrorIs(t, err, ErrAccountNotFound)
}

func TestCreateTransactionUnknownOperationType(t *testing.T) {
	account := setupTransactionTestDB(t)

	for _, id := range []uint{0, 5, 99} {
		_, err := CreateTransaction(account.ID, id, decimal.RequireFromString("50.00"))
		assert.ErrorIs(t, err, ErrOperationTypeNotFound, "operation type %d", id)
	}
}

func TestCreateTransactionUnconditionalLeavesBalance(t *testing.T) {
	account := setupTransactionTestDB(t)
	SetBalanceEnforced(false)

	_, err := CreateTransaction(account.ID, models.OperationTypePurchase, decimal.RequireFromString("400.00"))
	assert.NoError(t, err)

	reloaded, err := FindAccountByID(account.ID)
	assert.NoError(t, err)
	assert.True(t, reloaded.Balance.Equal(decimal.Zero))
}

func TestCreateTransactionBalanceEnforced(t *testing.T) {
	account := setupTransactionTestDB(t)
	SetBalanceEnforced(true)

	// Debit within the credit limit: balance moves to -400.00.
	_, err := CreateTransaction(account.ID, models.OperationTypePurchase, decimal.RequireFromString("400.00"))
	assert.NoError(t, err)

	reloaded, err := FindAccountByID(account.ID)
	assert.NoError(t, err)
	assert.True(t, reloaded.Balance.Equal(decimal.RequireFromString("-400.00")))

	// A payment credits the balance back.
	_, err = CreateTransaction(account.ID, models.OperationTypePayment, decimal.RequireFromString("150.00"))
	assert.NoError(t, err)

	reloaded, err = FindAccountByID(account.ID)
	assert.NoError(t, err)
	assert.True(t, reloaded.Balance.Equal(decimal.RequireFromString("-250.00")))

	// Exceeding the available credit limit is rejected and posts nothing.
	_, err = CreateTransaction(account.ID, models.OperationTypeWithdrawal, decimal.RequireFromString("800.00"))
	assert.ErrorIs(t, err, ErrInsufficientBalance)

	reloaded, err = FindAccountByID(account.ID)
	assert.NoError(t, err)
	assert.True(t, reloaded.Balance.Equal(decimal.RequireFromString("-250.00")))

	var count int64
	database.DB.Model(&models.Transaction{}).Where("account_id = ?", account.ID).Count(&count)
	assert.Equal(t, int64(2), count)
}

func TestSignedAmount(t *testing.T) {
	purchase, _ := models.OperationTypeByID(models.OperationTypePurchase)
	payment, _ := models.OperationTypeByID(models.OperationTypePayment)

	// Pure and idempotent over its inputs, including already-signed values.
	assert.True(t, SignedAmount(decimal.RequireFromString("50.00"), purchase).
		Equal(decimal.RequireFromString("-50.00")))
	assert.True(t, SignedAmount(decimal.RequireFromString("-50.00"), purchase).
		Equal(decimal.RequireFromString("-50.00")))
	assert.True(t, SignedAmount(decimal.RequireFromString("60.00"), payment).
		Equal(decimal.RequireFromString("60.00")))
	assert.True(t, SignedAmount(decimal.RequireFromString("-60.00"), payment).
		Equal(decimal.RequireFromString("60.00")))
}
