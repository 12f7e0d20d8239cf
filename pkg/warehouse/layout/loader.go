package layout

import (
	_ "embed"
	"encoding/json"
	"fmt"
	"image/color"
	"os"
	"strconv"
	"strings"

	"github.com/zyedidia/generic/mapset"

	"stockmap/pkg/engine/geom"
)

//go:embed facility.json
var defaultFacility []byte

// minOverlap is the fraction of a shelf's area that must fall inside its sector
// before the loader stops warning about it.
const minOverlap = 0.5

// fileLayout is the JSON-serializable definition of a facility.
type fileLayout struct {
	Name    string       `json:"name"`
	Sectors []fileSector `json:"sectors"`
	Shelves []fileShelf  `json:"shelves"`
}

type fileSector struct {
	ID    string    `json:"id"`
	Name  string    `json:"name"`
	Rect  geom.Rect `json:"rect"`
	Color string    `json:"color"`
}

type fileShelf struct {
	ID     string                `json:"id"`
	Sector string                `json:"sector"`
	Rect   geom.Rect             `json:"rect"`
	Slots  map[string]geom.Point `json:"slots"`
}

// Default returns the facility layout bundled with the binary
func Default() *Layout {
	l, err := Load(defaultFacility)
	if err != nil {
		panic(fmt.Sprintf("embedded facility layout is invalid: %v", err))
	}
	return l
}

// LoadFile reads and parses a layout JSON file
func LoadFile(path string) (*Layout, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read layout %s: %w", path, err)
	}
	return Load(data)
}

// Load parses a Layout from JSON bytes and validates its references
func Load(data []byte) (*Layout, error) {
	var fl fileLayout
	if err := json.Unmarshal(data, &fl); err != nil {
		return nil, fmt.Errorf("parse layout: %w", err)
	}
	if len(fl.Sectors) == 0 {
		return nil, fmt.Errorf("layout %q has no sectors", fl.Name)
	}

	l := &Layout{
		name:     fl.Name,
		sectorBy: make(map[string]int, len(fl.Sectors)),
		shelfBy:  make(map[string]int, len(fl.Shelves)),
		bySector: make(map[string][]int, len(fl.Sectors)),
	}

	sectorIDs := mapset.New[string]()
	for i, fs := range fl.Sectors {
		if fs.ID == "" {
			return nil, fmt.Errorf("sector %d: empty id", i)
		}
		if sectorIDs.Has(fs.ID) {
			return nil, fmt.Errorf("sector %q: duplicate id", fs.ID)
		}
		if fs.Rect.Size().Empty() {
			return nil, fmt.Errorf("sector %q: non-positive size %gx%g", fs.ID, fs.Rect.Width, fs.Rect.Height)
		}
		fill, err := parseHexColor(fs.Color)
		if err != nil {
			return nil, fmt.Errorf("sector %q: %w", fs.ID, err)
		}
		sectorIDs.Put(fs.ID)
		name := fs.Name
		if name == "" {
			name = fs.ID
		}
		l.sectorBy[fs.ID] = len(l.sectors)
		l.sectors = append(l.sectors, Sector{ID: fs.ID, Name: name, Rect: fs.Rect, Fill: fill})
		l.extend(fs.Rect)
	}

	shelfIDs := mapset.New[string]()
	for i, fs := range fl.Shelves {
		if fs.ID == "" {
			return nil, fmt.Errorf("shelf %d: empty id", i)
		}
		if shelfIDs.Has(fs.ID) {
			return nil, fmt.Errorf("shelf %q: duplicate id", fs.ID)
		}
		if !sectorIDs.Has(fs.Sector) {
			return nil, fmt.Errorf("shelf %q: unknown sector %q", fs.ID, fs.Sector)
		}
		if fs.Rect.Size().Empty() {
			return nil, fmt.Errorf("shelf %q: non-positive size %gx%g", fs.ID, fs.Rect.Width, fs.Rect.Height)
		}
		shelfIDs.Put(fs.ID)

		slots := make(map[string]geom.Point, len(fs.Slots))
		for name, off := range fs.Slots {
			if off.X < 0 || off.Y < 0 || off.X > fs.Rect.Width || off.Y > fs.Rect.Height {
				l.warnings = append(l.warnings, fmt.Sprintf("shelf %q: slot %q offset (%g,%g) lies outside the shelf", fs.ID, name, off.X, off.Y))
			}
			slots[name] = off
		}

		sector := l.sectors[l.sectorBy[fs.Sector]]
		overlap, ok := fs.Rect.Intersect(sector.Rect)
		if !ok || overlap.Area() < fs.Rect.Area()*minOverlap {
			l.warnings = append(l.warnings, fmt.Sprintf("shelf %q: barely overlaps sector %q", fs.ID, fs.Sector))
		}

		idx := len(l.shelves)
		l.shelfBy[fs.ID] = idx
		l.bySector[fs.Sector] = append(l.bySector[fs.Sector], idx)
		l.shelves = append(l.shelves, Shelf{ID: fs.ID, SectorID: fs.Sector, Rect: fs.Rect, Slots: slots})
		l.extend(fs.Rect)
	}

	return l, nil
}

// extend grows the layout bounds to include r
func (l *Layout) extend(r geom.Rect) {
	if l.bounds.Width == 0 && l.bounds.Height == 0 {
		l.bounds = r
		return
	}
	l.bounds = l.bounds.Union(r)
}

// parseHexColor parses "#rrggbb" or "#rgb". An empty string yields a neutral gray.
func parseHexColor(s string) (color.RGBA, error) {
	if s == "" {
		return color.RGBA{200, 200, 200, 255}, nil
	}
	hex := strings.TrimPrefix(s, "#")
	if len(hex) == 3 {
		hex = string([]byte{hex[0], hex[0], hex[1], hex[1], hex[2], hex[2]})
	}
	if len(hex) != 6 {
		return color.RGBA{}, fmt.Errorf("invalid color %q", s)
	}
	v, err := strconv.ParseUint(hex, 16, 32)
	if err != nil {
		return color.RGBA{}, fmt.Errorf("invalid color %q: %w", s, err)
	}
	return color.RGBA{R: uint8(v >> 16), G: uint8(v >> 8), B: uint8(v), A: 255}, nil
}
