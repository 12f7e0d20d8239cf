package inventory

import (
	"context"
	"testing"

	"github.com/shopspring/decimal"
)

func TestNewRecord(t *testing.T) {
	rec, err := NewRecord("  ITEM-1 ", "Bolt M6", decimal.NewFromInt(12), Location{SectorID: "ins", ShelfID: "ins-1", SlotName: "E2"})
	if err != nil {
		t.Fatalf("NewRecord() error = %v", err)
	}
	if rec.Code != "ITEM-1" {
		t.Errorf("Code = %q, want trimmed ITEM-1", rec.Code)
	}
	if rec.UpdatedAt.IsZero() {
		t.Error("UpdatedAt not set")
	}
}

func TestNewRecord_Invalid(t *testing.T) {
	tests := []struct {
		name string
		code string
		qty  decimal.Decimal
		loc  Location
	}{
		{"empty code", " ", decimal.Zero, Location{}},
		{"negative quantity", "X", decimal.NewFromInt(-1), Location{}},
		{"slot without shelf", "X", decimal.Zero, Location{SlotName: "A1"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := NewRecord(tt.code, "", tt.qty, tt.loc); err == nil {
				t.Error("NewRecord() error = nil, want error")
			}
		})
	}
}

func TestLookupFunc(t *testing.T) {
	var l Lookup = LookupFunc(func(ctx context.Context, code string) (Location, bool, error) {
		return Location{ShelfID: code + "-shelf"}, true, nil
	})
	loc, ok, err := l.ItemLocation(context.Background(), "a")
	if err != nil || !ok || loc.ShelfID != "a-shelf" {
		t.Errorf("ItemLocation(a) = %+v, %v, %v", loc, ok, err)
	}
}
