// Package csv loads inventory records from CSV exports
package csv

import (
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/shopspring/decimal"

	"stockmap/pkg/inventory"
)

var expectedHeader = []string{"code", "name", "quantity", "sector_id", "shelf_id", "slot_name"}

// Loader handles loading inventory records from CSV files
type Loader struct{}

// NewLoader creates a new CSV loader
func NewLoader() *Loader {
	return &Loader{}
}

// LoadRecords loads inventory records from a CSV file
func (l *Loader) LoadRecords(filename string) ([]*inventory.Record, error) {
	file, err := os.Open(filename)
	if err != nil {
		return nil, fmt.Errorf("failed to open inventory file %s: %w", filename, err)
	}
	defer file.Close()

	return l.ReadRecords(file)
}

// ReadRecords parses inventory records from CSV data
func (l *Loader) ReadRecords(r io.Reader) ([]*inventory.Record, error) {
	reader := csv.NewReader(r)
	reader.TrimLeadingSpace = true
	records, err := reader.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("failed to read inventory CSV: %w", err)
	}

	if len(records) < 1 {
		return nil, fmt.Errorf("inventory CSV must have a header row")
	}

	header := records[0]
	if !validateHeader(header, expectedHeader) {
		return nil, fmt.Errorf("inventory CSV header mismatch. Expected: %v, Got: %v", expectedHeader, header)
	}

	seen := make(map[string]int, len(records)-1)
	var out []*inventory.Record
	for i, record := range records[1:] {
		row := i + 2
		if len(record) != len(expectedHeader) {
			return nil, fmt.Errorf("inventory CSV row %d: expected %d columns, got %d", row, len(expectedHeader), len(record))
		}

		rec, err := parseRecord(record)
		if err != nil {
			return nil, fmt.Errorf("inventory CSV row %d: %w", row, err)
		}
		if prev, dup := seen[rec.Code]; dup {
			return nil, fmt.Errorf("inventory CSV row %d: duplicate code %s (first seen on row %d)", row, rec.Code, prev)
		}
		seen[rec.Code] = row
		out = append(out, rec)
	}

	return out, nil
}

func parseRecord(record []string) (*inventory.Record, error) {
	qtyText := strings.TrimSpace(record[2])
	if qtyText == "" {
		qtyText = "0"
	}
	qty, err := decimal.NewFromString(qtyText)
	if err != nil {
		return nil, fmt.Errorf("invalid quantity %q: %w", record[2], err)
	}

	loc := inventory.Location{
		SectorID: strings.TrimSpace(record[3]),
		ShelfID:  strings.TrimSpace(record[4]),
		SlotName: strings.TrimSpace(record[5]),
	}
	return inventory.NewRecord(record[0], strings.TrimSpace(record[1]), qty, loc)
}

func validateHeader(actual, expected []string) bool {
	if len(actual) != len(expected) {
		return false
	}
	for i, col := range expected {
		if strings.TrimSpace(actual[i]) != col {
			return false
		}
	}
	return true
}
