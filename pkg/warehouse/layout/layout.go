// Package layout holds the read-only facility catalog: sectors, the shelves inside
// them and the named slot offsets inside each shelf.
package layout

import (
	"image/color"
	"maps"
	"sort"

	"stockmap/pkg/engine/geom"
)

// Sector is a large named zone of the warehouse
type Sector struct {
	ID   string
	Name string
	Rect geom.Rect
	Fill color.RGBA
}

// Shelf is a rack inside a sector. Slots maps a slot name to its offset from the
// shelf's top-left corner.
type Shelf struct {
	ID       string
	SectorID string
	Rect     geom.Rect
	Slots    map[string]geom.Point
}

// Origin returns the shelf's top-left corner in world coordinates
func (s Shelf) Origin() geom.Point {
	return s.Rect.Min()
}

// Center returns the shelf's geometric center in world coordinates
func (s Shelf) Center() geom.Point {
	return s.Rect.Center()
}

// SlotPoint resolves a slot name to an absolute world point.
// The second return value is false when the shelf has no slot with that name.
func (s Shelf) SlotPoint(name string) (geom.Point, bool) {
	off, ok := s.Slots[name]
	if !ok {
		return geom.Point{}, false
	}
	return s.Origin().Add(off), true
}

// SlotNames returns the shelf's slot names in sorted order
func (s Shelf) SlotNames() []string {
	names := make([]string, 0, len(s.Slots))
	for name := range s.Slots {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// clone copies the shelf with its own slot map so callers cannot edit the catalog
func (s Shelf) clone() Shelf {
	s.Slots = maps.Clone(s.Slots)
	return s
}

// Layout is an immutable catalog of sectors and shelves. Build one with Load or Default.
type Layout struct {
	name     string
	sectors  []Sector
	shelves  []Shelf
	sectorBy map[string]int
	shelfBy  map[string]int
	bySector map[string][]int
	bounds   geom.Rect
	warnings []string
}

// Name returns the facility name
func (l *Layout) Name() string {
	return l.name
}

// GetSector returns the sector with the given id
func (l *Layout) GetSector(id string) (Sector, bool) {
	if l == nil {
		return Sector{}, false
	}
	i, ok := l.sectorBy[id]
	if !ok {
		return Sector{}, false
	}
	return l.sectors[i], true
}

// GetShelf returns the shelf with the given id
func (l *Layout) GetShelf(id string) (Shelf, bool) {
	if l == nil {
		return Shelf{}, false
	}
	i, ok := l.shelfBy[id]
	if !ok {
		return Shelf{}, false
	}
	return l.shelves[i].clone(), true
}

// ShelvesOfSector returns the shelves owned by a sector in authoring order.
// An unknown sector yields an empty slice.
func (l *Layout) ShelvesOfSector(sectorID string) []Shelf {
	if l == nil {
		return nil
	}
	idx := l.bySector[sectorID]
	out := make([]Shelf, 0, len(idx))
	for _, i := range idx {
		out = append(out, l.shelves[i].clone())
	}
	return out
}

// Sectors returns all sectors in drawing order
func (l *Layout) Sectors() []Sector {
	return append([]Sector(nil), l.sectors...)
}

// Shelves returns all shelves in drawing order
func (l *Layout) Shelves() []Shelf {
	out := make([]Shelf, len(l.shelves))
	for i, sh := range l.shelves {
		out[i] = sh.clone()
	}
	return out
}

// Bounds returns the world-space rectangle covering every sector and shelf
func (l *Layout) Bounds() geom.Rect {
	return l.bounds
}

// Size returns the world size of the layout measured from the world origin.
// Viewport math treats the layout as spanning [0, Size] on both axes.
func (l *Layout) Size() geom.Size {
	return geom.Size{W: l.bounds.X + l.bounds.Width, H: l.bounds.Y + l.bounds.Height}
}

// Warnings returns non-fatal authoring problems found while loading
func (l *Layout) Warnings() []string {
	return append([]string(nil), l.warnings...)
}
