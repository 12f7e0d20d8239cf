// Package sqlite persists inventory records in a SQLite database
package sqlite

import (
	"context"
	"database/sql"
	"embed"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/shopspring/decimal"

	"stockmap/pkg/inventory"
)

//go:embed migrations/*.sql
var migrations embed.FS

// Repository is an inventory store backed by database/sql
type Repository struct {
	db *sql.DB
}

// Verify interface compliance
var _ inventory.Store = (*Repository)(nil)

// New wraps an open database. Call Init before use.
func New(db *sql.DB) *Repository {
	return &Repository{db: db}
}

// OpenSQLite opens (creating if needed) the database file at dbPath.
// Callers must blank-import the ncruces driver and embed packages.
func OpenSQLite(dbPath string) (*sql.DB, error) {
	if dir := filepath.Dir(dbPath); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return nil, fmt.Errorf("mkdir db dir: %w", err)
		}
	}

	dsn := fmt.Sprintf("file:%s?cache=shared&mode=rwc&_pragma=busy_timeout=5000", dbPath)
	db, err := sql.Open("sqlite3", dsn)
	if err != nil {
		return nil, err
	}
	db.SetMaxOpenConns(1)
	return db, nil
}

// Init applies the embedded schema migrations in name order
func (r *Repository) Init(ctx context.Context) error {
	entries, err := migrations.ReadDir("migrations")
	if err != nil {
		return fmt.Errorf("migrations: %w", err)
	}
	for _, e := range entries {
		data, err := migrations.ReadFile("migrations/" + e.Name())
		if err != nil {
			return fmt.Errorf("read migration %s: %w", e.Name(), err)
		}
		if _, err := r.db.ExecContext(ctx, string(data)); err != nil {
			return fmt.Errorf("apply migration %s: %w", e.Name(), err)
		}
	}
	return nil
}

// Put inserts or replaces a record
func (r *Repository) Put(ctx context.Context, rec inventory.Record) error {
	if rec.Code == "" {
		return fmt.Errorf("cannot store record without a code")
	}
	if rec.UpdatedAt.IsZero() {
		rec.UpdatedAt = time.Now().UTC()
	}
	_, err := r.db.ExecContext(ctx, `
        INSERT INTO items (code, name, quantity, sector_id, shelf_id, slot_name, updated_at)
        VALUES (?, ?, ?, ?, ?, ?, ?)
        ON CONFLICT(code) DO UPDATE SET
            name = excluded.name,
            quantity = excluded.quantity,
            sector_id = excluded.sector_id,
            shelf_id = excluded.shelf_id,
            slot_name = excluded.slot_name,
            updated_at = excluded.updated_at
    `, rec.Code, rec.Name, rec.Quantity.String(),
		rec.Location.SectorID, rec.Location.ShelfID, rec.Location.SlotName, rec.UpdatedAt)
	if err != nil {
		return fmt.Errorf("put item %s: %w", rec.Code, err)
	}
	return nil
}

// Import stores many records in a single transaction
func (r *Repository) Import(ctx context.Context, records []*inventory.Record) error {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin import: %w", err)
	}
	defer tx.Rollback()

	stmt, err := tx.PrepareContext(ctx, `
        INSERT OR REPLACE INTO items (code, name, quantity, sector_id, shelf_id, slot_name, updated_at)
        VALUES (?, ?, ?, ?, ?, ?, ?)
    `)
	if err != nil {
		return fmt.Errorf("prepare import: %w", err)
	}
	defer stmt.Close()

	for _, rec := range records {
		if _, err := stmt.ExecContext(ctx, rec.Code, rec.Name, rec.Quantity.String(),
			rec.Location.SectorID, rec.Location.ShelfID, rec.Location.SlotName, rec.UpdatedAt); err != nil {
			return fmt.Errorf("import item %s: %w", rec.Code, err)
		}
	}
	return tx.Commit()
}

// Get returns the record for a code
func (r *Repository) Get(ctx context.Context, code string) (inventory.Record, bool, error) {
	row := r.db.QueryRowContext(ctx, `
        SELECT code, name, quantity, sector_id, shelf_id, slot_name, updated_at
        FROM items
        WHERE code = ?
    `, code)

	var (
		rec inventory.Record
		qty string
	)
	err := row.Scan(&rec.Code, &rec.Name, &qty,
		&rec.Location.SectorID, &rec.Location.ShelfID, &rec.Location.SlotName, &rec.UpdatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return inventory.Record{}, false, nil
	}
	if err != nil {
		return inventory.Record{}, false, fmt.Errorf("get item %s: %w", code, err)
	}
	if rec.Quantity, err = decimal.NewFromString(qty); err != nil {
		return inventory.Record{}, false, fmt.Errorf("item %s: bad stored quantity %q: %w", code, qty, err)
	}
	return rec, true, nil
}

// ItemLocation returns the stored location of an item
func (r *Repository) ItemLocation(ctx context.Context, code string) (inventory.Location, bool, error) {
	row := r.db.QueryRowContext(ctx, `
        SELECT sector_id, shelf_id, slot_name FROM items WHERE code = ?
    `, code)

	var loc inventory.Location
	err := row.Scan(&loc.SectorID, &loc.ShelfID, &loc.SlotName)
	if errors.Is(err, sql.ErrNoRows) {
		return inventory.Location{}, false, nil
	}
	if err != nil {
		return inventory.Location{}, false, fmt.Errorf("locate item %s: %w", code, err)
	}
	return loc, true, nil
}

// ItemCodes returns all item codes in sorted order
func (r *Repository) ItemCodes(ctx context.Context) ([]string, error) {
	rows, err := r.db.QueryContext(ctx, `SELECT code FROM items ORDER BY code`)
	if err != nil {
		return nil, fmt.Errorf("list items: %w", err)
	}
	defer rows.Close()

	var codes []string
	for rows.Next() {
		var code string
		if err := rows.Scan(&code); err != nil {
			return nil, err
		}
		codes = append(codes, code)
	}
	return codes, rows.Err()
}
