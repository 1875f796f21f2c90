package domain

import (
	"strings"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
)

func TestSignedDelta(t *testing.T) {
	amount := decimal.NewFromInt(150)
	assert.True(t, SignedDelta(TypeIncome, amount).Equal(decimal.NewFromInt(150)))
	assert.True(t, SignedDelta(TypeExpense, amount).Equal(decimal.NewFromInt(-150)))
}

func TestTransactionFormValidate(t *testing.T) {
	valid := TransactionForm{
		Amount:   decimal.NewFromInt(100),
		Type:     TypeExpense,
		Category: "Shopping",
		Date:     time.Date(2024, 5, 1, 0, 0, 0, 0, time.UTC),
	}
	assert.NoError(t, valid.Validate())

	bad := valid
	bad.Type = "transfer"
	assert.Error(t, bad.Validate())

	bad = valid
	bad.Amount = decimal.NewFromInt(-1)
	assert.Error(t, bad.Validate())

	bad = valid
	bad.Category = ""
	assert.Error(t, bad.Validate())

	bad = valid
	bad.Description = strings.Repeat("x", 201)
	assert.Error(t, bad.Validate())

	bad = valid
	bad.Amount = decimal.Zero
	assert.Error(t, bad.Validate())
}
