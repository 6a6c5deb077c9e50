package storage

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"time"

	"github.com/google/uuid"

	"tally/internal/core"
	"tally/internal/ledger"

	_ "modernc.org/sqlite"
)

// SQLiteRepository is the durable record store. Both record kinds live in one
// table tagged by kind; a shared autoincrement sequence preserves total
// creation order for the merged feed.
type SQLiteRepository struct {
	db *sql.DB
}

var _ ledger.RecordStore = (*SQLiteRepository)(nil)

func NewSQLiteRepository(dbPath string) (*SQLiteRepository, error) {
	if err := os.MkdirAll(filepath.Dir(dbPath), 0755); err != nil {
		return nil, fmt.Errorf("create db directory: %w", err)
	}

	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("open sqlite database: %w", err)
	}

	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("ping database: %w", err)
	}

	if err := RunMigrations(dbPath); err != nil {
		db.Close()
		return nil, fmt.Errorf("run migrations: %w", err)
	}

	return &SQLiteRepository{db: db}, nil
}

func (r *SQLiteRepository) Close() error {
	if r.db != nil {
		return r.db.Close()
	}
	return nil
}

const recordColumns = "seq, id, kind, title, amount_cents, category, description, icon, date, created_at"

// Create implements ledger.RecordStore. Identity is assigned here: a fresh
// UUID, the table's autoincrement sequence, and the creation timestamp.
func (r *SQLiteRepository) Create(ctx context.Context, rec core.Record) (core.Record, error) {
	rec.ID = uuid.NewString()
	if rec.CreatedAt.IsZero() {
		rec.CreatedAt = time.Now().UTC()
	}

	res, err := r.db.ExecContext(ctx,
		`INSERT INTO records (id, kind, title, amount_cents, category, description, icon, date, created_at)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		rec.ID, string(rec.Kind), rec.Title, rec.Amount.Cents, rec.Category,
		rec.Description, rec.Icon, rec.Date.String(), rec.CreatedAt.Format(time.RFC3339Nano))
	if err != nil {
		return core.Record{}, fmt.Errorf("insert record: %w", err)
	}

	seq, err := res.LastInsertId()
	if err != nil {
		return core.Record{}, fmt.Errorf("read record seq: %w", err)
	}
	rec.Seq = seq

	slog.InfoContext(ctx, "Record saved to SQLite",
		"id", rec.ID,
		"kind", rec.Kind,
		"title", rec.Title,
		"amount_cents", rec.Amount.Cents)

	return rec, nil
}

// Delete implements ledger.RecordStore. A hard delete; zero affected rows
// means the id was never present (or already gone) for this kind.
func (r *SQLiteRepository) Delete(ctx context.Context, kind core.Kind, id string) error {
	res, err := r.db.ExecContext(ctx,
		`DELETE FROM records WHERE kind = ? AND id = ?`, string(kind), id)
	if err != nil {
		return fmt.Errorf("delete record: %w", err)
	}

	affected, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("delete record rows affected: %w", err)
	}
	if affected == 0 {
		return ledger.ErrNotFound
	}
	return nil
}

func (r *SQLiteRepository) List(ctx context.Context, kind core.Kind) ([]core.Record, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT `+recordColumns+` FROM records WHERE kind = ? ORDER BY seq`, string(kind))
	if err != nil {
		return nil, fmt.Errorf("list records: %w", err)
	}
	defer rows.Close()

	return scanRecords(rows)
}

func (r *SQLiteRepository) Get(ctx context.Context, kind core.Kind, id string) (core.Record, error) {
	row := r.db.QueryRowContext(ctx,
		`SELECT `+recordColumns+` FROM records WHERE kind = ? AND id = ?`, string(kind), id)

	rec, err := scanRecord(row)
	if errors.Is(err, sql.ErrNoRows) {
		return core.Record{}, ledger.ErrNotFound
	}
	if err != nil {
		return core.Record{}, fmt.Errorf("get record: %w", err)
	}
	return rec, nil
}

// Snapshot reads both kinds inside one transaction so the dashboard never
// observes a state interleaved with an in-flight create or delete.
func (r *SQLiteRepository) Snapshot(ctx context.Context) ([]core.Record, []core.Record, error) {
	tx, err := r.db.BeginTx(ctx, &sql.TxOptions{ReadOnly: true})
	if err != nil {
		return nil, nil, fmt.Errorf("begin snapshot: %w", err)
	}
	defer tx.Rollback()

	incomes, err := listTx(ctx, tx, core.KindIncome)
	if err != nil {
		return nil, nil, err
	}
	expenses, err := listTx(ctx, tx, core.KindExpense)
	if err != nil {
		return nil, nil, err
	}

	if err := tx.Commit(); err != nil {
		return nil, nil, fmt.Errorf("commit snapshot: %w", err)
	}
	return incomes, expenses, nil
}

func listTx(ctx context.Context, tx *sql.Tx, kind core.Kind) ([]core.Record, error) {
	rows, err := tx.QueryContext(ctx,
		`SELECT `+recordColumns+` FROM records WHERE kind = ? ORDER BY seq`, string(kind))
	if err != nil {
		return nil, fmt.Errorf("snapshot %s records: %w", kind, err)
	}
	defer rows.Close()

	return scanRecords(rows)
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanRecord(row rowScanner) (core.Record, error) {
	var (
		rec       core.Record
		kind      string
		date      string
		createdAt string
	)
	if err := row.Scan(&rec.Seq, &rec.ID, &kind, &rec.Title, &rec.Amount.Cents,
		&rec.Category, &rec.Description, &rec.Icon, &date, &createdAt); err != nil {
		return core.Record{}, err
	}

	rec.Kind = core.Kind(kind)

	d, err := core.ParseDate(date)
	if err != nil {
		return core.Record{}, fmt.Errorf("parse stored date %q: %w", date, err)
	}
	rec.Date = d

	ts, err := time.Parse(time.RFC3339Nano, createdAt)
	if err != nil {
		return core.Record{}, fmt.Errorf("parse stored created_at %q: %w", createdAt, err)
	}
	rec.CreatedAt = ts

	return rec, nil
}

func scanRecords(rows *sql.Rows) ([]core.Record, error) {
	records := make([]core.Record, 0)
	for rows.Next() {
		rec, err := scanRecord(rows)
		if err != nil {
			return nil, fmt.Errorf("scan record: %w", err)
		}
		records = append(records, rec)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate records: %w", err)
	}
	return records, nil
}
