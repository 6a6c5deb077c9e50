package ledger

import (
	"context"
	"errors"
	"fmt"
	"testing"

	"tally/internal/core"
)

// fakeStore is a minimal in-memory RecordStore for service tests.
type fakeStore struct {
	records []core.Record
	nextSeq int64

	createErr   error
	snapshotErr error
}

func (f *fakeStore) Create(_ context.Context, r core.Record) (core.Record, error) {
	if f.createErr != nil {
		return core.Record{}, f.createErr
	}
	f.nextSeq++
	r.ID = fmt.Sprintf("id-%d", f.nextSeq)
	r.Seq = f.nextSeq
	f.records = append(f.records, r)
	return r, nil
}

func (f *fakeStore) Delete(_ context.Context, kind core.Kind, id string) error {
	for i, r := range f.records {
		if r.Kind == kind && r.ID == id {
			f.records = append(f.records[:i], f.records[i+1:]...)
			return nil
		}
	}
	return ErrNotFound
}

func (f *fakeStore) List(_ context.Context, kind core.Kind) ([]core.Record, error) {
	return f.collect(kind), nil
}

func (f *fakeStore) Get(_ context.Context, kind core.Kind, id string) (core.Record, error) {
	for _, r := range f.records {
		if r.Kind == kind && r.ID == id {
			return r, nil
		}
	}
	return core.Record{}, ErrNotFound
}

func (f *fakeStore) Snapshot(_ context.Context) ([]core.Record, []core.Record, error) {
	if f.snapshotErr != nil {
		return nil, nil, f.snapshotErr
	}
	return f.collect(core.KindIncome), f.collect(core.KindExpense), nil
}

func (f *fakeStore) collect(kind core.Kind) []core.Record {
	var out []core.Record
	for _, r := range f.records {
		if r.Kind == kind {
			out = append(out, r)
		}
	}
	return out
}

type fakePublisher struct {
	created []string
	deleted []string
	err     error
}

func (f *fakePublisher) PublishRecordCreated(_ context.Context, kind core.Kind, id string) error {
	f.created = append(f.created, fmt.Sprintf("%s/%s", kind, id))
	return f.err
}

func (f *fakePublisher) PublishRecordDeleted(_ context.Context, kind core.Kind, id string) error {
	f.deleted = append(f.deleted, fmt.Sprintf("%s/%s", kind, id))
	return f.err
}

func TestService_AddIncome(t *testing.T) {
	store := &fakeStore{}
	svc := NewService(store, nil, 10)

	created, err := svc.AddIncome(context.Background(), core.Record{
		Title:    "Salary",
		Amount:   core.Money{Cents: 200000},
		Category: "Salary",
		Icon:     "😎", // callers cannot set icons on incomes
		Date:     core.NewDate(2024, 2, 1),
	})
	if err != nil {
		t.Fatalf("AddIncome() unexpected error: %v", err)
	}
	if created.ID == "" {
		t.Error("AddIncome() did not assign an id")
	}
	if created.Kind != core.KindIncome {
		t.Errorf("Kind = %s, want income", created.Kind)
	}
	if created.Icon != "" {
		t.Errorf("Icon = %q, want empty on stored income", created.Icon)
	}
}

func TestService_AddExpense_DerivesIcon(t *testing.T) {
	store := &fakeStore{}
	svc := NewService(store, nil, 10)

	created, err := svc.AddExpense(context.Background(), core.Record{
		Title:    "Groceries",
		Amount:   core.Money{Cents: 4550},
		Category: "Food",
		Icon:     "🙅", // overwritten server-side
		Date:     core.NewDate(2024, 2, 2),
	})
	if err != nil {
		t.Fatalf("AddExpense() unexpected error: %v", err)
	}
	if created.Icon != "🍔" {
		t.Errorf("Icon = %q, want 🍔", created.Icon)
	}
}

func TestService_Add_ValidationRejected(t *testing.T) {
	tests := []struct {
		name    string
		record  core.Record
		wantErr error
	}{
		{
			name: "zero amount",
			record: core.Record{
				Title:    "Broken",
				Category: "Salary",
				Date:     core.NewDate(2024, 2, 1),
			},
			wantErr: core.ErrInvalidAmount,
		},
		{
			name: "unknown category",
			record: core.Record{
				Title:    "Broken",
				Amount:   core.Money{Cents: 100},
				Category: "Lottery",
				Date:     core.NewDate(2024, 2, 1),
			},
			wantErr: core.ErrUnknownCategory,
		},
		{
			name: "missing date",
			record: core.Record{
				Title:    "Broken",
				Amount:   core.Money{Cents: 100},
				Category: "Salary",
			},
			wantErr: core.ErrInvalidDate,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			store := &fakeStore{}
			svc := NewService(store, nil, 10)

			_, err := svc.AddIncome(context.Background(), tt.record)
			if !errors.Is(err, tt.wantErr) {
				t.Fatalf("AddIncome() error = %v, want %v", err, tt.wantErr)
			}
			// Rejected records never reach the store.
			if len(store.records) != 0 {
				t.Errorf("store holds %d records after rejection, want 0", len(store.records))
			}
		})
	}
}

func TestService_Remove(t *testing.T) {
	store := &fakeStore{}
	svc := NewService(store, nil, 10)
	ctx := context.Background()

	created, _ := svc.AddExpense(ctx, core.Record{
		Title:    "Lunch",
		Amount:   core.Money{Cents: 1200},
		Category: "Food",
		Date:     core.NewDate(2024, 2, 2),
	})

	if err := svc.RemoveExpense(ctx, created.ID); err != nil {
		t.Fatalf("RemoveExpense() unexpected error: %v", err)
	}
	if err := svc.RemoveExpense(ctx, created.ID); !errors.Is(err, ErrNotFound) {
		t.Errorf("second RemoveExpense() error = %v, want ErrNotFound", err)
	}
	if err := svc.RemoveIncome(ctx, "missing"); !errors.Is(err, ErrNotFound) {
		t.Errorf("RemoveIncome(missing) error = %v, want ErrNotFound", err)
	}
}

func TestService_Dashboard(t *testing.T) {
	store := &fakeStore{}
	svc := NewService(store, nil, 10)
	ctx := context.Background()

	svc.AddIncome(ctx, core.Record{
		Title:    "Salary",
		Amount:   core.Money{Cents: 200000},
		Category: "Salary",
		Date:     core.NewDate(2024, 2, 1),
	})
	svc.AddExpense(ctx, core.Record{
		Title:    "Rent",
		Amount:   core.Money{Cents: 80000},
		Category: "Bills",
		Date:     core.NewDate(2024, 2, 2),
	})

	d, err := svc.Dashboard(ctx)
	if err != nil {
		t.Fatalf("Dashboard() unexpected error: %v", err)
	}

	if d.Summary.TotalIncome.Cents != 200000 {
		t.Errorf("TotalIncome = %d, want 200000", d.Summary.TotalIncome.Cents)
	}
	if d.Summary.TotalExpense.Cents != 80000 {
		t.Errorf("TotalExpense = %d, want 80000", d.Summary.TotalExpense.Cents)
	}
	if d.Summary.Balance.Cents != 120000 {
		t.Errorf("Balance = %d, want 120000", d.Summary.Balance.Cents)
	}

	if len(d.RecentTransactions) != 2 {
		t.Fatalf("len(RecentTransactions) = %d, want 2", len(d.RecentTransactions))
	}
	if d.RecentTransactions[0].Title != "Rent" || d.RecentTransactions[1].Title != "Salary" {
		t.Errorf("feed order = [%s, %s], want [Rent, Salary]",
			d.RecentTransactions[0].Title, d.RecentTransactions[1].Title)
	}
}

func TestService_Dashboard_Empty(t *testing.T) {
	svc := NewService(&fakeStore{}, nil, 10)

	d, err := svc.Dashboard(context.Background())
	if err != nil {
		t.Fatalf("Dashboard() unexpected error: %v", err)
	}
	if d.Summary != (core.Summary{}) {
		t.Errorf("Summary = %+v, want all zeros", d.Summary)
	}
	if len(d.RecentTransactions) != 0 {
		t.Errorf("len(RecentTransactions) = %d, want 0", len(d.RecentTransactions))
	}
}

func TestService_PublishesEvents(t *testing.T) {
	store := &fakeStore{}
	pub := &fakePublisher{}
	svc := NewService(store, pub, 10)
	ctx := context.Background()

	created, err := svc.AddIncome(ctx, core.Record{
		Title:    "Salary",
		Amount:   core.Money{Cents: 200000},
		Category: "Salary",
		Date:     core.NewDate(2024, 2, 1),
	})
	if err != nil {
		t.Fatalf("AddIncome() unexpected error: %v", err)
	}
	if len(pub.created) != 1 || pub.created[0] != "income/"+created.ID {
		t.Errorf("created events = %v, want [income/%s]", pub.created, created.ID)
	}

	if err := svc.RemoveIncome(ctx, created.ID); err != nil {
		t.Fatalf("RemoveIncome() unexpected error: %v", err)
	}
	if len(pub.deleted) != 1 || pub.deleted[0] != "income/"+created.ID {
		t.Errorf("deleted events = %v, want [income/%s]", pub.deleted, created.ID)
	}
}

func TestService_PublishFailureDoesNotFailWrite(t *testing.T) {
	store := &fakeStore{}
	pub := &fakePublisher{err: errors.New("broker down")}
	svc := NewService(store, pub, 10)

	created, err := svc.AddIncome(context.Background(), core.Record{
		Title:    "Salary",
		Amount:   core.Money{Cents: 200000},
		Category: "Salary",
		Date:     core.NewDate(2024, 2, 1),
	})
	if err != nil {
		t.Fatalf("AddIncome() unexpected error: %v", err)
	}
	if created.ID == "" || len(store.records) != 1 {
		t.Error("record not persisted despite publish failure")
	}
}

func TestService_Dashboard_StoreError(t *testing.T) {
	svc := NewService(&fakeStore{snapshotErr: errors.New("db gone")}, nil, 10)

	if _, err := svc.Dashboard(context.Background()); err == nil {
		t.Fatal("Dashboard() expected error, got nil")
	}
}
