// Package repository provides the transcript store: an append-only,
// per-customer message history read back in send order.
package repository

import (
	"context"

	"github.com/joseph-ayodele/order-intake/internal/entity"
)

// TranscriptRepository is the external message-history collaborator. A read
// for a customer always reflects that customer's previously completed
// appends; otherwise extraction would run against a stale transcript and
// completeness detection would flap.
type TranscriptRepository interface {
	// Append records one turn for a customer and returns it with its
	// assigned ID and timestamp.
	Append(ctx context.Context, customerID string, direction entity.Direction, text string) (entity.Turn, error)

	// ReadAll returns a customer's full transcript in ascending send order.
	ReadAll(ctx context.Context, customerID string) ([]entity.Turn, error)

	// Clear deletes a customer's transcript.
	Clear(ctx context.Context, customerID string) error

	// Close closes the store.
	Close() error
}
