package models

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestOperationTypeCatalog(t *testing.T) {
	tests := []struct {
		id          uint
		description string
		negative    bool
	}{
		{1, "PURCHASE", true},
		{2, "INSTALLMENT PURCHASE", true},
		{3, "WITHDRAWAL", true},
		{4, "PAYMENT", false},
	}

	assert.Len(t, OperationTypes, len(tests))

	for _, tt := range tests {
		op, ok := OperationTypeByID(tt.id)
		assert.True(t, ok, "operation type %d", tt.id)
		assert.Equal(t, tt.description, op.Description)
		assert.Equal(t, tt.negative, op.Negative)
	}

	_, ok := OperationTypeByID(5)
	assert.False(t, ok)
	_, ok = OperationTypeByID(0)
	assert.False(t, ok)
}
