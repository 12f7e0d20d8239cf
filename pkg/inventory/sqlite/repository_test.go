package sqlite

import (
	"context"
	"path/filepath"
	"testing"

	_ "github.com/ncruces/go-sqlite3/driver"
	_ "github.com/ncruces/go-sqlite3/embed"
	"github.com/shopspring/decimal"

	"stockmap/pkg/inventory"
)

func newRepo(t *testing.T) *Repository {
	t.Helper()
	db, err := OpenSQLite(filepath.Join(t.TempDir(), "db", "inventory.db"))
	if err != nil {
		t.Fatalf("OpenSQLite() error = %v", err)
	}
	t.Cleanup(func() { db.Close() })

	repo := New(db)
	if err := repo.Init(context.Background()); err != nil {
		t.Fatalf("Init() error = %v", err)
	}
	return repo
}

func TestRepository_PutGet(t *testing.T) {
	ctx := context.Background()
	repo := newRepo(t)

	rec, _ := inventory.NewRecord("ITEM-1", "Hex bolt", decimal.RequireFromString("12.25"),
		inventory.Location{SectorID: "ins", ShelfID: "ins-1", SlotName: "E2"})
	if err := repo.Put(ctx, *rec); err != nil {
		t.Fatalf("Put() error = %v", err)
	}

	got, ok, err := repo.Get(ctx, "ITEM-1")
	if err != nil || !ok {
		t.Fatalf("Get() = %v, %v", ok, err)
	}
	if !got.Quantity.Equal(rec.Quantity) || got.Location != rec.Location {
		t.Errorf("Get() = %+v, want %+v", got, *rec)
	}

	rec.Location.SlotName = "F1"
	if err := repo.Put(ctx, *rec); err != nil {
		t.Fatalf("Put(update) error = %v", err)
	}
	loc, ok, err := repo.ItemLocation(ctx, "ITEM-1")
	if err != nil || !ok || loc.SlotName != "F1" {
		t.Errorf("ItemLocation() = %+v, %v, %v; want slot F1", loc, ok, err)
	}

	if _, ok, err := repo.ItemLocation(ctx, "nope"); ok || err != nil {
		t.Errorf("ItemLocation(nope) = %v, %v; want false, nil", ok, err)
	}
}

func TestRepository_ImportAndList(t *testing.T) {
	ctx := context.Background()
	repo := newRepo(t)

	var recs []*inventory.Record
	for _, code := range []string{"C", "A", "B"} {
		r, _ := inventory.NewRecord(code, "", decimal.NewFromInt(1), inventory.Location{})
		recs = append(recs, r)
	}
	if err := repo.Import(ctx, recs); err != nil {
		t.Fatalf("Import() error = %v", err)
	}
	codes, err := repo.ItemCodes(ctx)
	if err != nil {
		t.Fatalf("ItemCodes() error = %v", err)
	}
	if len(codes) != 3 || codes[0] != "A" || codes[2] != "C" {
		t.Errorf("ItemCodes() = %v, want [A B C]", codes)
	}

	// Init is idempotent
	if err := repo.Init(ctx); err != nil {
		t.Errorf("second Init() error = %v", err)
	}
}
