// Package storage keeps records in a SQLite database. It is separate from
// the load, filter and save flow and is driven by the db commands.
package storage

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/shopspring/decimal"
	_ "modernc.org/sqlite"

	"github.com/txnsift/txnsift/internal/model"
)

// DateFormat is how dates are stored in the date column.
const DateFormat = "2006-01-02"

// SelectAll is a query in the column order Query expects.
const SelectAll = "SELECT amount, date, memo, description, category, tag FROM transactions ORDER BY id"

const insertSQL = `INSERT INTO transactions (amount, date, memo, description, category, tag)
VALUES (?, ?, ?, ?, ?, ?)`

// Store is a SQLite-backed record table.
type Store struct {
	db *sql.DB
}

// MemoryPath opens a private in-memory database.
const MemoryPath = ":memory:"

// Open opens or creates the database at path and applies migrations.
// MemoryPath gives a throwaway database that lives until Close.
func Open(ctx context.Context, path string) (*Store, error) {
	inMemory := path == MemoryPath
	if !inMemory {
		if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
			return nil, fmt.Errorf("create db directory: %w", err)
		}
	}

	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("open sqlite database: %w", err)
	}
	if inMemory {
		// Every connection to :memory: is a separate database.
		db.SetMaxOpenConns(1)
	}
	if err := db.PingContext(ctx); err != nil {
		db.Close()
		return nil, fmt.Errorf("ping database: %w", err)
	}

	if err := migrateUp(db); err != nil {
		db.Close()
		return nil, err
	}
	return &Store{db: db}, nil
}

// Close releases the database handle.
func (s *Store) Close() error {
	if s.db != nil {
		return s.db.Close()
	}
	return nil
}

// Insert adds records in a single transaction and returns how many were written.
func (s *Store) Insert(ctx context.Context, records []model.Record) (int, error) {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return 0, fmt.Errorf("begin insert: %w", err)
	}
	defer tx.Rollback() //nolint:errcheck // no-op after commit

	stmt, err := tx.PrepareContext(ctx, insertSQL)
	if err != nil {
		return 0, fmt.Errorf("prepare insert: %w", err)
	}
	defer stmt.Close()

	for i, r := range records {
		_, err := stmt.ExecContext(ctx, r.Amount.String(), r.Date.Format(DateFormat), r.Memo, r.Description, r.Category, r.Tag)
		if err != nil {
			return 0, fmt.Errorf("insert record %d: %w", i, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return 0, fmt.Errorf("commit insert: %w", err)
	}
	return len(records), nil
}

// All returns every stored record in insertion order.
func (s *Store) All(ctx context.Context) ([]model.Record, error) {
	return s.Query(ctx, SelectAll)
}

// Query runs a caller-supplied SELECT whose result columns are
// amount, date, memo, description, category, tag in that order.
func (s *Store) Query(ctx context.Context, query string, args ...any) ([]model.Record, error) {
	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("query transactions: %w", err)
	}
	defer rows.Close()

	var records []model.Record
	for rows.Next() {
		var (
			amount  decimal.Decimal
			dateStr string
			r       model.Record
		)
		if err := rows.Scan(&amount, &dateStr, &r.Memo, &r.Description, &r.Category, &r.Tag); err != nil {
			return nil, fmt.Errorf("scan transaction: %w", err)
		}
		date, err := time.Parse(DateFormat, dateStr)
		if err != nil {
			return nil, fmt.Errorf("parsing stored date %q: %w", dateStr, err)
		}
		r.Amount = amount
		r.Date = date
		records = append(records, r)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate transactions: %w", err)
	}
	return records, nil
}
