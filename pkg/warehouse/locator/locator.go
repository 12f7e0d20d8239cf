// Package locator resolves an item code to a point on the map and drives the
// camera and marker to reveal it.
package locator

import (
	"context"
	"errors"
	"log"
	"strings"

	"stockmap/pkg/engine/geom"
	"stockmap/pkg/inventory"
	"stockmap/pkg/warehouse/layout"
	"stockmap/pkg/warehouse/marker"
	"stockmap/pkg/warehouse/viewport"
)

// Target receives the side effects of a locate
type Target interface {
	CenterOn(world geom.Point, zoom float64)
	SetMarker(m *marker.Marker)
	ClearMarker()
}

// Result is a successful locate
type Result struct {
	Code  string       `json:"code"`
	Shelf layout.Shelf `json:"shelf"`

	// Slot is the slot that was hit, empty when the shelf center was used
	Slot     string     `json:"slot,omitempty"`
	World    geom.Point `json:"world"`
	Label    string     `json:"label"`
	Warnings []Warning  `json:"warnings,omitempty"`
}

// Locator resolves item codes against one layout
type Locator struct {
	layout *layout.Layout
	lookup inventory.Lookup
}

// New creates a locator. If lookup also implements inventory.Lister, failed
// lookups carry spelling suggestions.
func New(l *layout.Layout, lookup inventory.Lookup) *Locator {
	return &Locator{layout: l, lookup: lookup}
}

// Resolve computes the locate result for code without any side effects
func (l *Locator) Resolve(ctx context.Context, code string) (Result, error) {
	code = strings.TrimSpace(code)
	if code == "" {
		return Result{}, ErrInvalidInput
	}

	loc, ok, err := l.lookup.ItemLocation(ctx, code)
	if err != nil {
		log.Printf("[LOCATE] lookup %s failed: %v", code, err)
		return Result{}, &Error{Kind: ItemNotFound, Code: code, Err: err}
	}
	if !ok {
		return Result{}, &Error{Kind: ItemNotFound, Code: code, Suggestions: l.suggestions(ctx, code)}
	}

	if loc.ShelfID == "" {
		return Result{}, &Error{Kind: NoShelfAssigned, Code: code}
	}
	shelf, ok := l.layout.GetShelf(loc.ShelfID)
	if !ok {
		return Result{}, &Error{Kind: ShelfNotFound, Code: code, ShelfID: loc.ShelfID}
	}

	res := Result{Code: code, Shelf: shelf}
	if p, ok := shelf.SlotPoint(loc.SlotName); ok && loc.SlotName != "" {
		res.World = p
		res.Slot = loc.SlotName
	} else {
		res.World = shelf.Center()
		if loc.SlotName == "" {
			res.Warnings = append(res.Warnings, Warning{Kind: SlotMissing})
		} else {
			res.Warnings = append(res.Warnings, Warning{Kind: SlotUnknown, Recorded: loc.SlotName, Actual: shelf.ID})
		}
	}
	if loc.SectorID != "" && loc.SectorID != shelf.SectorID {
		res.Warnings = append(res.Warnings, Warning{Kind: SectorMismatch, Recorded: loc.SectorID, Actual: shelf.SectorID})
	}
	res.Label = marker.LocateLabel(code, shelf.ID, loc.SlotName)
	return res, nil
}

// Locate resolves code and applies the outcome to t: on success the camera is
// centered on the point and a marker is placed; on an expected failure the
// marker is cleared. ErrInvalidInput leaves t untouched.
func (l *Locator) Locate(ctx context.Context, code string, t Target) (Result, error) {
	res, err := l.Resolve(ctx, code)
	Apply(t, res, err)
	return res, err
}

// Apply performs the side effects for an already resolved locate
func Apply(t Target, res Result, err error) {
	switch {
	case errors.Is(err, ErrInvalidInput):
		return
	case err != nil:
		t.ClearMarker()
	default:
		t.CenterOn(res.World, viewport.LocateZoomLevel)
		t.SetMarker(marker.New(res.World, res.Label))
		if len(res.Warnings) > 0 {
			log.Printf("[LOCATE] %s resolved with warnings: %v", res.Code, res.Warnings)
		}
	}
}

func (l *Locator) suggestions(ctx context.Context, code string) []string {
	lister, ok := l.lookup.(inventory.Lister)
	if !ok {
		return nil
	}
	known, err := lister.ItemCodes(ctx)
	if err != nil {
		return nil
	}
	return suggest(code, known)
}
