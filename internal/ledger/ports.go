package ledger

import (
	"context"
	"errors"

	"tally/internal/core"
)

// ErrNotFound is returned when a delete or lookup references an id that is
// not present for the given kind.
var ErrNotFound = errors.New("record not found")

// Ports for outbound adapters.
type (
	// RecordStore owns the authoritative copies of all records. Create assigns
	// identity (ID, Seq, CreatedAt); callers validate before storing.
	RecordStore interface {
		Create(ctx context.Context, r core.Record) (core.Record, error)
		Delete(ctx context.Context, kind core.Kind, id string) error
		List(ctx context.Context, kind core.Kind) ([]core.Record, error)
		Get(ctx context.Context, kind core.Kind, id string) (core.Record, error)

		// Snapshot returns both kinds from a single consistent point-in-time
		// view, so a dashboard read never observes a torn mix of in-flight
		// mutations.
		Snapshot(ctx context.Context) (incomes, expenses []core.Record, err error)
	}

	// EventPublisher emits record mutation events for the export pipeline.
	// Publishing is best-effort and never affects ledger semantics.
	EventPublisher interface {
		PublishRecordCreated(ctx context.Context, kind core.Kind, id string) error
		PublishRecordDeleted(ctx context.Context, kind core.Kind, id string) error
	}
)
