// internal/repository/wallet_cache.go
package repository

import (
	"context"
	"errors"

	"github.com/google/uuid"

	"walletledger/internal/domain"
)

// ErrCacheMiss indicates the requested wallet is not present in the cache.
var ErrCacheMiss = errors.New("wallet cache miss")

// WalletCache is a read-side cache for wallet views. Implementations must
// tolerate misses; the service treats every cache failure as a miss and
// falls through to the database. Set must never replace an entry with an
// older view (compared by UpdatedAt) so cached reads of one wallet stay
// monotonic.
type WalletCache interface {
	Get(ctx context.Context, id uuid.UUID) (*domain.Wallet, error)
	Set(ctx context.Context, wallet *domain.Wallet) error
}

// NopWalletCache satisfies WalletCache without storing anything. It is
// used when no Redis address is configured.
type NopWalletCache struct{}

func (NopWalletCache) Get(ctx context.Context, id uuid.UUID) (*domain.Wallet, error) {
	return nil, ErrCacheMiss
}

func (NopWalletCache) Set(ctx context.Context, wallet *domain.Wallet) error { return nil }
