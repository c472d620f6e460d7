// internal/domain/wallet.go
package domain

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal" // For precise monetary calculations
)

// Wallet represents a monetary balance identified by an opaque UUID.
// Invariant: Balance is never negative in any committed state.
type Wallet struct {
	ID        uuid.UUID       `db:"id" json:"wallet_id"`          // Primary key, UUID in DB
	Balance   decimal.Decimal `db:"balance" json:"balance"`       // Current balance, NUMERIC(20, 4) in DB
	CreatedAt time.Time       `db:"created_at" json:"created_at"` // Timestamp of creation, immutable
	UpdatedAt time.Time       `db:"updated_at" json:"updated_at"` // Timestamp of last balance mutation
}

// NewWallet creates a new Wallet with a fresh id and a zero balance.
func NewWallet() *Wallet {
	now := time.Now().UTC()
	return &Wallet{
		ID:        uuid.New(),
		Balance:   decimal.Zero,
		CreatedAt: now,
		UpdatedAt: now,
	}
}
