// internal/domain/wallet_test.go
package domain

import (
	"encoding/json"
	"testing"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewWallet(t *testing.T) {
	w := NewWallet()

	assert.NotEqual(t, uuid.Nil, w.ID)
	assert.True(t, w.Balance.IsZero())
	assert.False(t, w.CreatedAt.IsZero())
	assert.Equal(t, w.CreatedAt, w.UpdatedAt)

	other := NewWallet()
	assert.NotEqual(t, w.ID, other.ID)
}

func TestTransactionTypeValid(t *testing.T) {
	assert.True(t, TransactionTypeDeposit.Valid())
	assert.True(t, TransactionTypeWithdraw.Valid())
	assert.False(t, TransactionType("TRANSFER").Valid())
	assert.False(t, TransactionType("deposit").Valid())
	assert.False(t, TransactionType("").Valid())
}

func TestNewTransaction(t *testing.T) {
	w := NewWallet()
	amount := decimal.RequireFromString("12.3400")

	tx := NewTransaction(w.ID, TransactionTypeWithdraw, amount, w.UpdatedAt)

	assert.NotEqual(t, uuid.Nil, tx.ID)
	assert.Equal(t, w.ID, tx.WalletID)
	assert.Equal(t, TransactionTypeWithdraw, tx.Type)
	assert.True(t, tx.Amount.Equal(amount))
	assert.Equal(t, w.UpdatedAt, tx.CreatedAt)
}

// Balances cross the wire as quoted decimal strings and must survive the
// round trip without floating point drift.
func TestWalletBalanceJSONExactness(t *testing.T) {
	w := NewWallet()
	w.Balance = decimal.RequireFromString("0.01")

	raw, err := json.Marshal(w)
	require.NoError(t, err)

	var decoded Wallet
	require.NoError(t, json.Unmarshal(raw, &decoded))
	assert.True(t, decoded.Balance.Equal(decimal.RequireFromString("0.01")))
}
