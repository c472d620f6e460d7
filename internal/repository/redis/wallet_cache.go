// internal/repository/redis/wallet_cache.go
package redis

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"

	"walletledger/internal/domain"
	"walletledger/internal/repository"
)

// NewClient connects to Redis and verifies the connection with a ping.
func NewClient(ctx context.Context, addr string) (*redis.Client, error) {
	client := redis.NewClient(&redis.Options{Addr: addr})

	pingCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()
	if err := client.Ping(pingCtx).Err(); err != nil {
		return nil, fmt.Errorf("failed to ping Redis at %s: %w", addr, err)
	}
	return client, nil
}

// WalletCache implements repository.WalletCache backed by Redis. Entries are
// JSON-encoded wallet views with a TTL; decimal balances round-trip exactly
// because they marshal as strings.
type WalletCache struct {
	client *redis.Client
	ttl    time.Duration
}

// NewWalletCache creates a Redis-backed wallet cache.
func NewWalletCache(client *redis.Client, ttl time.Duration) *WalletCache {
	return &WalletCache{client: client, ttl: ttl}
}

func walletKey(id uuid.UUID) string {
	return "wallet:" + id.String()
}

// Get returns the cached wallet view, or repository.ErrCacheMiss.
func (c *WalletCache) Get(ctx context.Context, id uuid.UUID) (*domain.Wallet, error) {
	data, err := c.client.Get(ctx, walletKey(id)).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, repository.ErrCacheMiss
		}
		return nil, fmt.Errorf("failed to read wallet %s from cache: %w", id, err)
	}

	var wallet domain.Wallet
	if err := json.Unmarshal(data, &wallet); err != nil {
		// A corrupt entry is indistinguishable from a miss for callers.
		return nil, repository.ErrCacheMiss
	}
	return &wallet, nil
}

// maxSetAttempts bounds WATCH retries when concurrent writers race on the
// same wallet key.
const maxSetAttempts = 3

// Set stores a wallet view with the configured TTL. The write is guarded by
// a WATCH-based compare on UpdatedAt: an entry is only replaced by a view
// that is at least as new. A delayed write from a slow reader therefore
// cannot shadow a later committed state, which keeps cached reads of one
// wallet monotonic.
func (c *WalletCache) Set(ctx context.Context, wallet *domain.Wallet) error {
	data, err := json.Marshal(wallet)
	if err != nil {
		return fmt.Errorf("failed to encode wallet %s for cache: %w", wallet.ID, err)
	}
	key := walletKey(wallet.ID)

	write := func(tx *redis.Tx) error {
		cur, err := tx.Get(ctx, key).Bytes()
		switch {
		case err == nil:
			var cached domain.Wallet
			if json.Unmarshal(cur, &cached) == nil && cached.UpdatedAt.After(wallet.UpdatedAt) {
				// The cached view is newer; keep it.
				return nil
			}
		case !errors.Is(err, redis.Nil):
			return err
		}
		_, err = tx.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
			pipe.Set(ctx, key, data, c.ttl)
			return nil
		})
		return err
	}

	for attempt := 0; attempt < maxSetAttempts; attempt++ {
		err := c.client.Watch(ctx, write, key)
		if errors.Is(err, redis.TxFailedErr) {
			// A concurrent writer changed the key; re-read and re-compare.
			continue
		}
		if err != nil {
			return fmt.Errorf("failed to write wallet %s to cache: %w", wallet.ID, err)
		}
		return nil
	}
	// Contention won every attempt; the TTL bounds how long any entry lives.
	return nil
}
