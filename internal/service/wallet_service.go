// internal/service/wallet_service.go
package service

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"walletledger/internal/domain"
	"walletledger/internal/repository"
	"walletledger/internal/util"
	"walletledger/pkg/db"
)

const (
	// DefaultListLimit is used when a caller passes limit <= 0; MaxListLimit
	// caps page sizes either way.
	DefaultListLimit = 100
	MaxListLimit     = 100

	// maxApplyAttempts bounds the retry loop around one balance mutation.
	// Only transient conflicts (serialization failure, deadlock, lock
	// timeout) are retried; everything else fails on the first attempt.
	maxApplyAttempts = 3
	retryBaseBackoff = 25 * time.Millisecond

	// lockTimeoutStmt bounds the wait for the wallet row lock so a stuck
	// transaction cannot starve the wallet. SET LOCAL scopes it to the
	// current transaction.
	lockTimeoutStmt = `SET LOCAL lock_timeout = '3s'`
)

// WalletService defines the interface for wallet-related business logic.
type WalletService interface {
	CreateWallet(ctx context.Context) (*domain.Wallet, error)
	GetWallet(ctx context.Context, id uuid.UUID) (*domain.Wallet, error)
	ListWallets(ctx context.Context, offset, limit int) ([]domain.Wallet, int64, error)
	ApplyOperation(ctx context.Context, walletID uuid.UUID, opType domain.TransactionType, amount decimal.Decimal) (*domain.Wallet, *domain.Transaction, error)
	GetTransactionHistory(ctx context.Context, walletID uuid.UUID, limit, offset int) ([]domain.Transaction, int64, error)
}

// walletService implements the WalletService interface.
type walletService struct {
	dbBeginner      db.DBTxBeginner       // For starting transactions (e.g., *sqlx.DB)
	dbExecutor      repository.DBExecutor // For non-transactional reads (e.g., *sqlx.DB)
	walletRepo      repository.WalletRepository
	transactionRepo repository.TransactionRepository
	cache           repository.WalletCache
	beginTx         db.BeginTxFunc
	commitTx        db.CommitTxFunc
	rollbackTx      db.RollbackTxFunc
}

// NewWalletService creates a new instance of WalletService.
func NewWalletService(
	dbBeginner db.DBTxBeginner,
	dbExecutor repository.DBExecutor,
	walletRepo repository.WalletRepository,
	transactionRepo repository.TransactionRepository,
	cache repository.WalletCache,
	beginTx db.BeginTxFunc,
	commitTx db.CommitTxFunc,
	rollbackTx db.RollbackTxFunc,
) WalletService {
	if cache == nil {
		cache = repository.NopWalletCache{}
	}
	return &walletService{
		dbBeginner:      dbBeginner,
		dbExecutor:      dbExecutor,
		walletRepo:      walletRepo,
		transactionRepo: transactionRepo,
		cache:           cache,
		beginTx:         beginTx,
		commitTx:        commitTx,
		rollbackTx:      rollbackTx,
	}
}

// CreateWallet creates a wallet with a zero balance and a fresh id.
func (s *walletService) CreateWallet(ctx context.Context) (*domain.Wallet, error) {
	wallet := domain.NewWallet()
	if err := s.walletRepo.CreateWallet(ctx, s.dbExecutor, wallet); err != nil {
		return nil, fmt.Errorf("create wallet: %w", err)
	}
	return wallet, nil
}

// GetWallet returns the wallet view, serving from the cache when possible.
func (s *walletService) GetWallet(ctx context.Context, id uuid.UUID) (*domain.Wallet, error) {
	if wallet, err := s.cache.Get(ctx, id); err == nil {
		return wallet, nil
	}

	wallet, err := s.walletRepo.GetWalletByID(ctx, s.dbExecutor, id)
	if err != nil {
		return nil, fmt.Errorf("get wallet: %w", err)
	}

	// Best effort; a failed cache write never fails the read.
	_ = s.cache.Set(ctx, wallet)
	return wallet, nil
}

// ListWallets returns a page of wallets in creation order plus the total
// count. The total comes from an aggregate query, never from loading every
// row.
func (s *walletService) ListWallets(ctx context.Context, offset, limit int) ([]domain.Wallet, int64, error) {
	if offset < 0 {
		offset = 0
	}
	if limit <= 0 {
		limit = DefaultListLimit
	}
	if limit > MaxListLimit {
		limit = MaxListLimit
	}

	wallets, err := s.walletRepo.ListWallets(ctx, s.dbExecutor, offset, limit)
	if err != nil {
		return nil, 0, fmt.Errorf("list wallets: %w", err)
	}
	total, err := s.walletRepo.CountWallets(ctx, s.dbExecutor)
	if err != nil {
		return nil, 0, fmt.Errorf("list wallets: %w", err)
	}
	return wallets, total, nil
}

// ApplyOperation performs the atomic balance check-and-update for one
// wallet. The handler validates the amount before calling, but the engine
// re-checks and fails closed. Transient storage conflicts are retried with
// backoff up to maxApplyAttempts; exhausted retries surface as
// ErrStorageUnavailable.
func (s *walletService) ApplyOperation(ctx context.Context, walletID uuid.UUID, opType domain.TransactionType, amount decimal.Decimal) (*domain.Wallet, *domain.Transaction, error) {
	if amount.LessThanOrEqual(decimal.Zero) {
		return nil, nil, util.ErrInvalidAmount
	}
	if !opType.Valid() {
		return nil, nil, util.ErrInvalidOperation
	}

	var lastErr error
	for attempt := 0; attempt < maxApplyAttempts; attempt++ {
		if attempt > 0 {
			select {
			case <-ctx.Done():
				return nil, nil, ctx.Err()
			case <-time.After(retryBaseBackoff << (attempt - 1)):
			}
		}

		wallet, transaction, err := s.applyOnce(ctx, walletID, opType, amount)
		if err == nil {
			// Publish the committed view. Set refuses to replace a newer
			// entry, so a delayed write from a slow reader cannot shadow
			// this state.
			_ = s.cache.Set(ctx, wallet)
			return wallet, transaction, nil
		}
		if !db.IsRetryable(err) {
			return nil, nil, err
		}
		lastErr = err
	}

	return nil, nil, fmt.Errorf("%w: %v", util.ErrStorageUnavailable, lastErr)
}

// applyOnce runs one attempt of the check-and-update as a single database
// transaction: lock the wallet row, validate, write the new balance and the
// transaction record, commit. A failure of any step leaves both tables
// untouched.
func (s *walletService) applyOnce(ctx context.Context, walletID uuid.UUID, opType domain.TransactionType, amount decimal.Decimal) (*domain.Wallet, *domain.Transaction, error) {
	txController, err := s.beginTx(ctx, s.dbBeginner)
	if err != nil {
		return nil, nil, fmt.Errorf("apply operation: failed to begin transaction: %w", err)
	}
	defer s.rollbackTx(txController)

	txExecutor, ok := txController.(repository.DBExecutor)
	if !ok {
		return nil, nil, fmt.Errorf("apply operation: transaction controller does not implement DBExecutor")
	}

	if _, err := txExecutor.ExecContext(ctx, lockTimeoutStmt); err != nil {
		return nil, nil, fmt.Errorf("apply operation: failed to set lock timeout: %w", err)
	}

	// Exclusive row lock: no concurrent apply on this wallet can interleave
	// between this read and the commit below.
	wallet, err := s.walletRepo.GetWalletByIDForUpdate(ctx, txExecutor, walletID)
	if err != nil {
		return nil, nil, fmt.Errorf("apply operation: %w", err)
	}

	now := time.Now().UTC()
	var newBalance decimal.Decimal
	switch opType {
	case domain.TransactionTypeDeposit:
		newBalance = wallet.Balance.Add(amount)
	case domain.TransactionTypeWithdraw:
		if wallet.Balance.LessThan(amount) {
			return nil, nil, util.ErrInsufficientFunds
		}
		newBalance = wallet.Balance.Sub(amount)
	default:
		return nil, nil, util.ErrInvalidOperation
	}

	if err := s.walletRepo.UpdateWalletBalance(ctx, txExecutor, walletID, newBalance, now); err != nil {
		return nil, nil, fmt.Errorf("apply operation: failed to update wallet balance: %w", err)
	}

	transaction := domain.NewTransaction(walletID, opType, amount, now)
	if err := s.transactionRepo.CreateTransaction(ctx, txExecutor, transaction); err != nil {
		return nil, nil, fmt.Errorf("apply operation: failed to create transaction: %w", err)
	}

	if err := s.commitTx(txController); err != nil {
		return nil, nil, fmt.Errorf("apply operation: failed to commit transaction: %w", err)
	}

	wallet.Balance = newBalance
	wallet.UpdatedAt = now
	return wallet, transaction, nil
}

// GetTransactionHistory retrieves a paginated list of transactions for a
// specific wallet.
func (s *walletService) GetTransactionHistory(ctx context.Context, walletID uuid.UUID, limit, offset int) ([]domain.Transaction, int64, error) {
	if _, err := s.walletRepo.GetWalletByID(ctx, s.dbExecutor, walletID); err != nil {
		return nil, 0, fmt.Errorf("get transaction history: %w", err)
	}

	if limit <= 0 {
		limit = DefaultListLimit
	}
	if limit > MaxListLimit {
		limit = MaxListLimit
	}
	if offset < 0 {
		offset = 0
	}

	transactions, totalCount, err := s.transactionRepo.GetTransactionsByWalletID(ctx, s.dbExecutor, walletID, limit, offset)
	if err != nil {
		return nil, 0, fmt.Errorf("get transaction history: %w", err)
	}
	return transactions, totalCount, nil
}
