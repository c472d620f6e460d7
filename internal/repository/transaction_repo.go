// internal/repository/transaction_repo.go
package repository

import (
	"context"

	"github.com/google/uuid"

	"walletledger/internal/domain"
)

// TransactionRepository defines the interface for transaction data operations.
type TransactionRepository interface {
	// CreateTransaction adds a new transaction record using the provided DBExecutor.
	CreateTransaction(ctx context.Context, q DBExecutor, transaction *domain.Transaction) error
	// GetTransactionsByWalletID retrieves paginated transaction history for a
	// wallet together with the total count.
	GetTransactionsByWalletID(ctx context.Context, q DBExecutor, walletID uuid.UUID, limit, offset int) ([]domain.Transaction, int64, error)
}
