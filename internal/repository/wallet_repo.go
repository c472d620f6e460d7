// internal/repository/wallet_repo.go
package repository

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"walletledger/internal/domain"
)

// WalletRepository defines the interface for wallet data operations.
type WalletRepository interface {
	// CreateWallet adds a new wallet using the provided DBExecutor.
	CreateWallet(ctx context.Context, q DBExecutor, wallet *domain.Wallet) error
	// GetWalletByID retrieves a wallet by its ID using the provided DBExecutor.
	GetWalletByID(ctx context.Context, q DBExecutor, id uuid.UUID) (*domain.Wallet, error)
	// GetWalletByIDForUpdate retrieves a wallet and takes an exclusive row
	// lock on it for the remainder of the enclosing transaction. The
	// DBExecutor must be a transaction.
	GetWalletByIDForUpdate(ctx context.Context, q DBExecutor, id uuid.UUID) (*domain.Wallet, error)
	// UpdateWalletBalance writes the absolute new balance and updated_at of
	// a wallet. Callers hold the row lock via GetWalletByIDForUpdate.
	UpdateWalletBalance(ctx context.Context, q DBExecutor, id uuid.UUID, balance decimal.Decimal, updatedAt time.Time) error
	// ListWallets retrieves wallets in creation order with offset/limit.
	ListWallets(ctx context.Context, q DBExecutor, offset, limit int) ([]domain.Wallet, error)
	// CountWallets returns the total number of wallets.
	CountWallets(ctx context.Context, q DBExecutor) (int64, error)
}
