// Package inventory defines the item records the locator reads locations from and
// the lookup interfaces it consumes. The inventory subsystem owns these records;
// the map only reads them.
package inventory

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/shopspring/decimal"
)

// Location is where an item is stored. Any field may be empty: an item can be
// registered before it has been put away on a shelf.
type Location struct {
	SectorID string `json:"sectorId,omitempty"`
	ShelfID  string `json:"shelfId,omitempty"`
	SlotName string `json:"slotName,omitempty"`
}

// Record is one stock item
type Record struct {
	Code      string          `json:"code"`
	Name      string          `json:"name"`
	Quantity  decimal.Decimal `json:"quantity"`
	Location  Location        `json:"location"`
	UpdatedAt time.Time       `json:"updatedAt"`
}

// NewRecord creates a validated Record
func NewRecord(code, name string, quantity decimal.Decimal, loc Location) (*Record, error) {
	code = strings.TrimSpace(code)
	if code == "" {
		return nil, fmt.Errorf("item code cannot be empty")
	}
	if quantity.IsNegative() {
		return nil, fmt.Errorf("item %s: quantity cannot be negative, got %s", code, quantity)
	}
	if loc.ShelfID == "" && loc.SlotName != "" {
		return nil, fmt.Errorf("item %s: slot %q given without a shelf", code, loc.SlotName)
	}
	return &Record{
		Code:      code,
		Name:      name,
		Quantity:  quantity,
		Location:  loc,
		UpdatedAt: time.Now().UTC(),
	}, nil
}

// Lookup resolves an item code to its stored location.
// The bool is false when the code is unknown.
type Lookup interface {
	ItemLocation(ctx context.Context, code string) (Location, bool, error)
}

// Lister enumerates known item codes; the locator uses it for suggestions
type Lister interface {
	ItemCodes(ctx context.Context) ([]string, error)
}

// Store is a full inventory repository
type Store interface {
	Lookup
	Lister
	Get(ctx context.Context, code string) (Record, bool, error)
	Put(ctx context.Context, rec Record) error
}

// LookupFunc adapts a function to the Lookup interface
type LookupFunc func(ctx context.Context, code string) (Location, bool, error)

// ItemLocation calls f
func (f LookupFunc) ItemLocation(ctx context.Context, code string) (Location, bool, error) {
	return f(ctx, code)
}
