package worker

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"tally/internal/amqp"
	"tally/internal/export"
	"tally/internal/ledger"
)

// ExportWorker mirrors ledger mutations into an external row store. It is
// driven by record events and fetches records from the store on demand, so a
// lost event never corrupts the ledger itself.
type ExportWorker struct {
	store    ledger.RecordStore
	appender export.RowAppender
}

func NewExportWorker(store ledger.RecordStore, appender export.RowAppender) *ExportWorker {
	return &ExportWorker{
		store:    store,
		appender: appender,
	}
}

// HandleRecordEvent processes a single record event from AMQP.
func (w *ExportWorker) HandleRecordEvent(ctx context.Context, event *amqp.RecordEvent) error {
	switch event.Action {
	case amqp.ActionCreated:
		return w.exportCreated(ctx, event)
	case amqp.ActionDeleted:
		// Deletions are not mirrored; the sheet is an append-only journal.
		slog.InfoContext(ctx, "Skipping delete event for export",
			"kind", event.Kind, "id", event.ID)
		return nil
	default:
		slog.WarnContext(ctx, "Unknown record event action",
			"action", event.Action, "kind", event.Kind, "id", event.ID)
		return nil
	}
}

func (w *ExportWorker) exportCreated(ctx context.Context, event *amqp.RecordEvent) error {
	record, err := w.store.Get(ctx, event.Kind, event.ID)
	if errors.Is(err, ledger.ErrNotFound) {
		// Deleted before the worker got to it; nothing to export.
		slog.WarnContext(ctx, "Record gone before export",
			"kind", event.Kind, "id", event.ID)
		return nil
	}
	if err != nil {
		return fmt.Errorf("get record for export: %w", err)
	}

	ref, err := w.appender.AppendRecord(ctx, record)
	if err != nil {
		return fmt.Errorf("append record row: %w", err)
	}

	slog.InfoContext(ctx, "Record exported",
		"kind", record.Kind,
		"id", record.ID,
		"row_ref", ref,
		"amount_cents", record.Amount.Cents)

	return nil
}
