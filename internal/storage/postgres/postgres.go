// Package postgres provides a Postgres-backed record store using pgx.
package postgres

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"tally/internal/core"
	"tally/internal/ledger"
)

type Repository struct {
	pool *pgxpool.Pool
}

var _ ledger.RecordStore = (*Repository)(nil)

const schema = `
CREATE TABLE IF NOT EXISTS records (
    seq BIGINT GENERATED ALWAYS AS IDENTITY PRIMARY KEY,
    id TEXT NOT NULL,
    kind TEXT NOT NULL CHECK (kind IN ('income', 'expense')),
    title TEXT NOT NULL,
    amount_cents BIGINT NOT NULL CHECK (amount_cents > 0),
    category TEXT NOT NULL,
    description TEXT NOT NULL DEFAULT '',
    icon TEXT NOT NULL DEFAULT '',
    date DATE NOT NULL,
    created_at TIMESTAMPTZ NOT NULL,
    UNIQUE (kind, id)
);
CREATE INDEX IF NOT EXISTS idx_records_kind_date ON records (kind, date DESC, seq DESC)`

func NewRepository(ctx context.Context, connString string) (*Repository, error) {
	pool, err := pgxpool.New(ctx, connString)
	if err != nil {
		return nil, fmt.Errorf("connect postgres: %w", err)
	}

	if err := pool.Ping(ctx); err != nil {
		pool.Close()
		return nil, fmt.Errorf("ping postgres: %w", err)
	}

	if _, err := pool.Exec(ctx, schema); err != nil {
		pool.Close()
		return nil, fmt.Errorf("ensure schema: %w", err)
	}

	return &Repository{pool: pool}, nil
}

func (r *Repository) Close() error {
	r.pool.Close()
	return nil
}

const recordColumns = "seq, id, kind, title, amount_cents, category, description, icon, date, created_at"

func (r *Repository) Create(ctx context.Context, rec core.Record) (core.Record, error) {
	rec.ID = uuid.NewString()
	if rec.CreatedAt.IsZero() {
		rec.CreatedAt = time.Now().UTC()
	}

	err := r.pool.QueryRow(ctx,
		`INSERT INTO records (id, kind, title, amount_cents, category, description, icon, date, created_at)
		 VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
		 RETURNING seq`,
		rec.ID, string(rec.Kind), rec.Title, rec.Amount.Cents, rec.Category,
		rec.Description, rec.Icon, rec.Date.Time, rec.CreatedAt).Scan(&rec.Seq)
	if err != nil {
		return core.Record{}, fmt.Errorf("insert record: %w", err)
	}

	return rec, nil
}

func (r *Repository) Delete(ctx context.Context, kind core.Kind, id string) error {
	tag, err := r.pool.Exec(ctx,
		`DELETE FROM records WHERE kind = $1 AND id = $2`, string(kind), id)
	if err != nil {
		return fmt.Errorf("delete record: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return ledger.ErrNotFound
	}
	return nil
}

func (r *Repository) List(ctx context.Context, kind core.Kind) ([]core.Record, error) {
	rows, err := r.pool.Query(ctx,
		`SELECT `+recordColumns+` FROM records WHERE kind = $1 ORDER BY seq`, string(kind))
	if err != nil {
		return nil, fmt.Errorf("list records: %w", err)
	}
	defer rows.Close()

	return collectRecords(rows)
}

func (r *Repository) Get(ctx context.Context, kind core.Kind, id string) (core.Record, error) {
	rows, err := r.pool.Query(ctx,
		`SELECT `+recordColumns+` FROM records WHERE kind = $1 AND id = $2`, string(kind), id)
	if err != nil {
		return core.Record{}, fmt.Errorf("get record: %w", err)
	}
	defer rows.Close()

	records, err := collectRecords(rows)
	if err != nil {
		return core.Record{}, err
	}
	if len(records) == 0 {
		return core.Record{}, ledger.ErrNotFound
	}
	return records[0], nil
}

// Snapshot reads both kinds inside one repeatable-read transaction.
func (r *Repository) Snapshot(ctx context.Context) ([]core.Record, []core.Record, error) {
	tx, err := r.pool.BeginTx(ctx, pgx.TxOptions{
		IsoLevel:   pgx.RepeatableRead,
		AccessMode: pgx.ReadOnly,
	})
	if err != nil {
		return nil, nil, fmt.Errorf("begin snapshot: %w", err)
	}
	defer tx.Rollback(ctx)

	incomes, err := listTx(ctx, tx, core.KindIncome)
	if err != nil {
		return nil, nil, err
	}
	expenses, err := listTx(ctx, tx, core.KindExpense)
	if err != nil {
		return nil, nil, err
	}

	if err := tx.Commit(ctx); err != nil {
		return nil, nil, fmt.Errorf("commit snapshot: %w", err)
	}
	return incomes, expenses, nil
}

func listTx(ctx context.Context, tx pgx.Tx, kind core.Kind) ([]core.Record, error) {
	rows, err := tx.Query(ctx,
		`SELECT `+recordColumns+` FROM records WHERE kind = $1 ORDER BY seq`, string(kind))
	if err != nil {
		return nil, fmt.Errorf("snapshot %s records: %w", kind, err)
	}
	defer rows.Close()

	return collectRecords(rows)
}

func collectRecords(rows pgx.Rows) ([]core.Record, error) {
	records := make([]core.Record, 0)
	for rows.Next() {
		var (
			rec  core.Record
			kind string
			date time.Time
		)
		if err := rows.Scan(&rec.Seq, &rec.ID, &kind, &rec.Title, &rec.Amount.Cents,
			&rec.Category, &rec.Description, &rec.Icon, &date, &rec.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan record: %w", err)
		}
		rec.Kind = core.Kind(kind)
		rec.Date = core.NewDate(date.Year(), int(date.Month()), date.Day())
		records = append(records, rec)
	}
	if err := rows.Err(); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return records, nil
		}
		return nil, fmt.Errorf("iterate records: %w", err)
	}
	return records, nil
}
