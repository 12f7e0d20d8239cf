// Package memory provides an in-memory inventory store
package memory

import (
	"context"
	"fmt"
	"sort"
	"sync"

	"stockmap/pkg/inventory"
)

// Repository provides in-memory inventory storage
type Repository struct {
	mu      sync.RWMutex
	records map[string]inventory.Record
}

// NewRepository creates a new in-memory inventory repository
func NewRepository() *Repository {
	return &Repository{records: make(map[string]inventory.Record)}
}

// Verify interface compliance
var _ inventory.Store = (*Repository)(nil)

// Load adds records to the repository, replacing records with the same code
func (r *Repository) Load(records []*inventory.Record) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, rec := range records {
		if rec == nil || rec.Code == "" {
			return fmt.Errorf("cannot load record without a code")
		}
		r.records[rec.Code] = *rec
	}
	return nil
}

// Put stores a record
func (r *Repository) Put(ctx context.Context, rec inventory.Record) error {
	if rec.Code == "" {
		return fmt.Errorf("cannot store record without a code")
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	r.records[rec.Code] = rec
	return nil
}

// Get returns the record for a code
func (r *Repository) Get(ctx context.Context, code string) (inventory.Record, bool, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	rec, ok := r.records[code]
	return rec, ok, nil
}

// ItemLocation returns the stored location of an item
func (r *Repository) ItemLocation(ctx context.Context, code string) (inventory.Location, bool, error) {
	if err := ctx.Err(); err != nil {
		return inventory.Location{}, false, err
	}
	rec, ok, err := r.Get(ctx, code)
	return rec.Location, ok, err
}

// ItemCodes returns all known codes in sorted order
func (r *Repository) ItemCodes(ctx context.Context) ([]string, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	codes := make([]string, 0, len(r.records))
	for code := range r.records {
		codes = append(codes, code)
	}
	sort.Strings(codes)
	return codes, nil
}

// Len returns the number of stored records
func (r *Repository) Len() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.records)
}
