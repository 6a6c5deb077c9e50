package ledger

import (
	"context"
	"fmt"
	"log/slog"

	"tally/internal/core"
)

// Dashboard is one coherent read over the ledger: totals plus the merged
// recent-transaction feed, both computed from the same store snapshot.
type Dashboard struct {
	Summary            core.Summary
	RecentTransactions []core.TransactionView
}

// Service is the single entry point composing the record store, the
// aggregator and the transaction merger.
type Service struct {
	store       RecordStore
	events      EventPublisher // optional, nil-safe
	recentLimit int
}

func NewService(store RecordStore, events EventPublisher, recentLimit int) *Service {
	if recentLimit <= 0 {
		recentLimit = 10
	}
	return &Service{
		store:       store,
		events:      events,
		recentLimit: recentLimit,
	}
}

// AddIncome validates and persists a new income record.
func (s *Service) AddIncome(ctx context.Context, r core.Record) (core.Record, error) {
	r.Kind = core.KindIncome
	r.Icon = ""
	return s.add(ctx, r)
}

// AddExpense validates and persists a new expense record. The icon is derived
// from the category server-side; any caller-supplied icon is overwritten.
func (s *Service) AddExpense(ctx context.Context, r core.Record) (core.Record, error) {
	r.Kind = core.KindExpense
	r.Icon = core.IconFor(r.Category)
	return s.add(ctx, r)
}

func (s *Service) add(ctx context.Context, r core.Record) (core.Record, error) {
	if err := r.Validate(); err != nil {
		return core.Record{}, err
	}

	created, err := s.store.Create(ctx, r)
	if err != nil {
		return core.Record{}, fmt.Errorf("create %s record: %w", r.Kind, err)
	}

	s.publishCreated(ctx, created)

	slog.InfoContext(ctx, "Record created",
		"kind", created.Kind,
		"id", created.ID,
		"title", created.Title,
		"amount_cents", created.Amount.Cents,
		"category", created.Category,
		"date", created.Date.String())

	return created, nil
}

// RemoveIncome deletes an income record by id. Deleting an unknown id returns
// ErrNotFound, not an internal error.
func (s *Service) RemoveIncome(ctx context.Context, id string) error {
	return s.remove(ctx, core.KindIncome, id)
}

// RemoveExpense deletes an expense record by id.
func (s *Service) RemoveExpense(ctx context.Context, id string) error {
	return s.remove(ctx, core.KindExpense, id)
}

func (s *Service) remove(ctx context.Context, kind core.Kind, id string) error {
	if err := s.store.Delete(ctx, kind, id); err != nil {
		return err
	}

	s.publishDeleted(ctx, kind, id)

	slog.InfoContext(ctx, "Record deleted", "kind", kind, "id", id)
	return nil
}

// ListIncome returns all income records. No ordering contract.
func (s *Service) ListIncome(ctx context.Context) ([]core.Record, error) {
	return s.store.List(ctx, core.KindIncome)
}

// ListExpense returns all expense records. No ordering contract.
func (s *Service) ListExpense(ctx context.Context) ([]core.Record, error) {
	return s.store.List(ctx, core.KindExpense)
}

// Dashboard recomputes the summary and the merged feed from one consistent
// snapshot of the store. The aggregator always sees the unbounded record sets;
// the recency limit windows only the feed.
func (s *Service) Dashboard(ctx context.Context) (Dashboard, error) {
	incomes, expenses, err := s.store.Snapshot(ctx)
	if err != nil {
		return Dashboard{}, fmt.Errorf("snapshot ledger: %w", err)
	}

	return Dashboard{
		Summary:            core.Summarize(incomes, expenses),
		RecentTransactions: core.RecentTransactions(incomes, expenses, s.recentLimit),
	}, nil
}

func (s *Service) publishCreated(ctx context.Context, r core.Record) {
	if s.events == nil {
		return
	}
	if err := s.events.PublishRecordCreated(ctx, r.Kind, r.ID); err != nil {
		// Record is saved locally; export catches up later.
		slog.ErrorContext(ctx, "Failed to publish created event",
			"kind", r.Kind, "id", r.ID, "error", err)
	}
}

func (s *Service) publishDeleted(ctx context.Context, kind core.Kind, id string) {
	if s.events == nil {
		return
	}
	if err := s.events.PublishRecordDeleted(ctx, kind, id); err != nil {
		slog.ErrorContext(ctx, "Failed to publish deleted event",
			"kind", kind, "id", id, "error", err)
	}
}
