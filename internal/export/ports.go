package export

import (
	"context"

	"tally/internal/core"
)

// Ports for outbound export adapters.
type (
	// RowAppender appends one exported record row to an external destination
	// and returns an opaque row reference.
	RowAppender interface {
		AppendRecord(ctx context.Context, r core.Record) (rowRef string, err error)
	}
)
