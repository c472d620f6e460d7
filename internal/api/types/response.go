// internal/api/types/response.go
package types

import (
	"time"

	"github.com/shopspring/decimal"
)

// WalletResponse is the wire view of a wallet. UpdatedAt is omitted on
// creation responses.
type WalletResponse struct {
	WalletID  string          `json:"wallet_id"`
	Balance   decimal.Decimal `json:"balance"`
	CreatedAt time.Time       `json:"created_at"`
	UpdatedAt *time.Time      `json:"updated_at,omitempty"`
}

// WalletsListResponse wraps a page of wallets with the total count.
type WalletsListResponse struct {
	Wallets []WalletResponse `json:"wallets"`
	Total   int64            `json:"total"`
}

// OperationResponse reports the outcome of a deposit or withdrawal.
type OperationResponse struct {
	Status        string          `json:"status"`
	WalletID      string          `json:"wallet_id"`
	TransactionID string          `json:"transaction_id"`
	NewBalance    decimal.Decimal `json:"new_balance"`
}

// PaginatedResponse defines a generic structure for paginated API responses.
// T represents the type of data contained in the 'Data' slice.
type PaginatedResponse[T any] struct {
	Data       []T   `json:"data"`
	Limit      int   `json:"limit"`
	Offset     int   `json:"offset"`
	TotalCount int64 `json:"total_count"`
}
