package ports

import (
	"context"

	"github.com/aretw0/arbor/pkg/domain"
)

// ActionStore defines the interface for persisting serialized action calls.
// Stores are append-only logs; replaying the log against a fresh tree
// reproduces the recorded mutations in order.
type ActionStore interface {
	// Append adds one call to the end of the log.
	Append(ctx context.Context, call domain.SerializedActionCall) error

	// List returns the full log in append order.
	List(ctx context.Context) ([]domain.SerializedActionCall, error)

	// Clear removes all recorded calls.
	Clear(ctx context.Context) error
}
