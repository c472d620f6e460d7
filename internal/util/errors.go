// internal/util/errors.go
package util

import "errors"

// Closed set of failures the service layer can surface. Callers match
// these with errors.Is; nothing in the system inspects error text.
var (
	ErrWalletNotFound     = errors.New("wallet not found")
	ErrInsufficientFunds  = errors.New("insufficient funds")
	ErrInvalidAmount      = errors.New("amount must be positive")
	ErrInvalidOperation   = errors.New("unknown operation type")
	ErrStorageUnavailable = errors.New("storage temporarily unavailable")
)

// IsError reports whether err wraps target.
func IsError(err, target error) bool {
	return errors.Is(err, target)
}
