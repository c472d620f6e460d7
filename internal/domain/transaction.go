// internal/domain/transaction.go
package domain

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// TransactionType defines the kind of balance mutation.
type TransactionType string

const (
	TransactionTypeDeposit  TransactionType = "DEPOSIT"
	TransactionTypeWithdraw TransactionType = "WITHDRAW"
)

// Valid reports whether t is one of the known transaction types.
func (t TransactionType) Valid() bool {
	return t == TransactionTypeDeposit || t == TransactionTypeWithdraw
}

// Transaction is an immutable record of one deposit or withdrawal applied
// to a wallet. A transaction row exists if and only if the corresponding
// balance mutation committed; both are written in the same atomic unit.
type Transaction struct {
	ID        uuid.UUID       `db:"id" json:"id"`                 // Primary key, UUID in DB
	WalletID  uuid.UUID       `db:"wallet_id" json:"wallet_id"`   // Wallet this transaction mutated
	Type      TransactionType `db:"type" json:"type"`             // DEPOSIT or WITHDRAW
	Amount    decimal.Decimal `db:"amount" json:"amount"`         // Positive amount, NUMERIC(20, 4) in DB
	CreatedAt time.Time       `db:"created_at" json:"created_at"` // Timestamp of commit
}

// NewTransaction creates a new Transaction instance. The caller supplies
// the timestamp so the transaction and the wallet's updated_at agree
// within one commit.
func NewTransaction(walletID uuid.UUID, txType TransactionType, amount decimal.Decimal, at time.Time) *Transaction {
	return &Transaction{
		ID:        uuid.New(),
		WalletID:  walletID,
		Type:      txType,
		Amount:    amount,
		CreatedAt: at,
	}
}
