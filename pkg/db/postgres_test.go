// pkg/db/postgres_test.go
package db

import (
	"errors"
	"fmt"
	"testing"

	"github.com/lib/pq"
	"github.com/stretchr/testify/assert"
)

func TestIsRetryable(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want bool
	}{
		{"Nil", nil, false},
		{"SerializationFailure", &pq.Error{Code: "40001"}, true},
		{"DeadlockDetected", &pq.Error{Code: "40P01"}, true},
		{"LockNotAvailable", &pq.Error{Code: "55P03"}, true},
		{"UniqueViolation", &pq.Error{Code: "23505"}, false},
		{"CheckViolation", &pq.Error{Code: "23514"}, false},
		{"PlainError", errors.New("connection refused"), false},
		{"WrappedRetryable", fmt.Errorf("apply operation: %w", &pq.Error{Code: "40001"}), true},
		{"DoublyWrappedRetryable", fmt.Errorf("outer: %w", fmt.Errorf("inner: %w", &pq.Error{Code: "55P03"})), true},
		{"WrappedNonRetryable", fmt.Errorf("outer: %w", &pq.Error{Code: "23505"}), false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, IsRetryable(tt.err))
		})
	}
}
