// internal/repository/postgres/wallet_pg.go
package postgres

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
	"github.com/shopspring/decimal"

	"walletledger/internal/domain"
	"walletledger/internal/repository"
	"walletledger/internal/util"
)

// WalletRepository implements repository.WalletRepository for PostgreSQL.
type WalletRepository struct {
	// Stateless; methods receive a DBExecutor directly.
}

// NewWalletRepository creates a new WalletRepository.
func NewWalletRepository(db *sqlx.DB) repository.WalletRepository {
	return &WalletRepository{}
}

// CreateWallet inserts a new wallet using the provided DBExecutor.
func (r *WalletRepository) CreateWallet(ctx context.Context, q repository.DBExecutor, wallet *domain.Wallet) error {
	query := `INSERT INTO wallets (id, balance, created_at, updated_at)
              VALUES ($1, $2, $3, $4)`
	if _, err := q.ExecContext(ctx, query, wallet.ID, wallet.Balance, wallet.CreatedAt, wallet.UpdatedAt); err != nil {
		return fmt.Errorf("failed to create wallet: %w", err)
	}
	return nil
}

// GetWalletByID retrieves a wallet by its ID using the provided DBExecutor.
func (r *WalletRepository) GetWalletByID(ctx context.Context, q repository.DBExecutor, id uuid.UUID) (*domain.Wallet, error) {
	var wallet domain.Wallet
	query := `SELECT id, balance, created_at, updated_at FROM wallets WHERE id = $1`
	err := q.GetContext(ctx, &wallet, query, id)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, util.ErrWalletNotFound
		}
		return nil, fmt.Errorf("failed to get wallet %s: %w", id, err)
	}
	return &wallet, nil
}

// GetWalletByIDForUpdate retrieves a wallet and locks its row until the
// enclosing transaction commits or rolls back. Concurrent operations on the
// same wallet serialize here; operations on different wallets do not block
// each other.
func (r *WalletRepository) GetWalletByIDForUpdate(ctx context.Context, q repository.DBExecutor, id uuid.UUID) (*domain.Wallet, error) {
	var wallet domain.Wallet
	query := `SELECT id, balance, created_at, updated_at FROM wallets WHERE id = $1 FOR UPDATE`
	err := q.GetContext(ctx, &wallet, query, id)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, util.ErrWalletNotFound
		}
		return nil, fmt.Errorf("failed to lock wallet %s: %w", id, err)
	}
	return &wallet, nil
}

// UpdateWalletBalance writes the absolute balance of a wallet. The caller
// computed the new balance under the row lock, so no relative arithmetic
// happens here.
func (r *WalletRepository) UpdateWalletBalance(ctx context.Context, q repository.DBExecutor, id uuid.UUID, balance decimal.Decimal, updatedAt time.Time) error {
	query := `UPDATE wallets SET balance = $1, updated_at = $2 WHERE id = $3`
	result, err := q.ExecContext(ctx, query, balance, updatedAt, id)
	if err != nil {
		return fmt.Errorf("failed to update wallet balance for %s: %w", id, err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected after updating wallet %s: %w", id, err)
	}
	if rowsAffected == 0 {
		return util.ErrWalletNotFound
	}
	return nil
}

// ListWallets retrieves wallets in creation order. UUIDs do not encode
// creation order, so the timestamp leads and the id breaks ties.
func (r *WalletRepository) ListWallets(ctx context.Context, q repository.DBExecutor, offset, limit int) ([]domain.Wallet, error) {
	wallets := []domain.Wallet{}
	query := `SELECT id, balance, created_at, updated_at
              FROM wallets
              ORDER BY created_at, id
              LIMIT $1 OFFSET $2`
	if err := q.SelectContext(ctx, &wallets, query, limit, offset); err != nil {
		return nil, fmt.Errorf("failed to list wallets: %w", err)
	}
	return wallets, nil
}

// CountWallets returns the total number of wallets via an aggregate query.
func (r *WalletRepository) CountWallets(ctx context.Context, q repository.DBExecutor) (int64, error) {
	var count int64
	if err := q.GetContext(ctx, &count, `SELECT COUNT(*) FROM wallets`); err != nil {
		return 0, fmt.Errorf("failed to count wallets: %w", err)
	}
	return count, nil
}
