package csv

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

const sample = `code,name,quantity,sector_id,shelf_id,slot_name
ITEM-1,Hex bolt M6,120,ins,ins-1,E2
ITEM-2,Pallet wrap,3.5,dsp,dsp-2,
ITEM-3,Unplaced,,,,
`

func TestReadRecords(t *testing.T) {
	recs, err := NewLoader().ReadRecords(strings.NewReader(sample))
	if err != nil {
		t.Fatalf("ReadRecords() error = %v", err)
	}
	if len(recs) != 3 {
		t.Fatalf("len = %d, want 3", len(recs))
	}
	if got := recs[0].Location; got.ShelfID != "ins-1" || got.SlotName != "E2" || got.SectorID != "ins" {
		t.Errorf("ITEM-1 location = %+v", got)
	}
	if got := recs[1].Quantity.String(); got != "3.5" {
		t.Errorf("ITEM-2 quantity = %s, want 3.5", got)
	}
	if !recs[2].Quantity.IsZero() || recs[2].Location.ShelfID != "" {
		t.Errorf("ITEM-3 = %+v, want zero quantity and no shelf", recs[2])
	}
}

func TestReadRecords_Errors(t *testing.T) {
	tests := []struct {
		name string
		data string
		want string
	}{
		{"empty", "", "header row"},
		{"bad header", "code,name\nA,B\n", "header mismatch"},
		{"bad quantity", "code,name,quantity,sector_id,shelf_id,slot_name\nA,x,lots,,,\n", "row 2"},
		{"duplicate", "code,name,quantity,sector_id,shelf_id,slot_name\nA,x,1,,,\nA,y,2,,,\n", "duplicate code A"},
		{"slot without shelf", "code,name,quantity,sector_id,shelf_id,slot_name\nA,x,1,gen,,A1\n", "without a shelf"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := NewLoader().ReadRecords(strings.NewReader(tt.data))
			if err == nil || !strings.Contains(err.Error(), tt.want) {
				t.Errorf("ReadRecords() error = %v, want containing %q", err, tt.want)
			}
		})
	}
}

func TestLoadRecords_File(t *testing.T) {
	path := filepath.Join(t.TempDir(), "inventory.csv")
	if err := os.WriteFile(path, []byte(sample), 0o644); err != nil {
		t.Fatal(err)
	}
	recs, err := NewLoader().LoadRecords(path)
	if err != nil || len(recs) != 3 {
		t.Fatalf("LoadRecords() = %d records, %v", len(recs), err)
	}
	if _, err := NewLoader().LoadRecords(filepath.Join(t.TempDir(), "missing.csv")); err == nil {
		t.Error("LoadRecords(missing) error = nil")
	}
}
