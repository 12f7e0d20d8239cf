package server

import (
	"fmt"
	"image/color"

	"github.com/shopspring/decimal"

	"stockmap/pkg/engine/geom"
	"stockmap/pkg/inventory"
	"stockmap/pkg/warehouse/layout"
	"stockmap/pkg/warehouse/locator"
	"stockmap/pkg/warehouse/marker"
	"stockmap/pkg/warehouse/renderer"
	"stockmap/pkg/warehouse/viewport"
)

// Response bodies. Field names follow the layout file format.

type sectorDTO struct {
	ID    string    `json:"id"`
	Name  string    `json:"name"`
	Rect  geom.Rect `json:"rect"`
	Color string    `json:"color"`
}

type shelfDTO struct {
	ID     string                `json:"id"`
	Sector string                `json:"sector"`
	Rect   geom.Rect             `json:"rect"`
	Slots  map[string]geom.Point `json:"slots,omitempty"`
}

type layoutDTO struct {
	Name    string      `json:"name"`
	Size    geom.Size   `json:"size"`
	Sectors []sectorDTO `json:"sectors"`
	Shelves []shelfDTO  `json:"shelves"`
}

type warningDTO struct {
	Kind    string `json:"kind"`
	Message string `json:"message"`
}

type locateDTO struct {
	Code     string         `json:"code"`
	Shelf    shelfDTO       `json:"shelf"`
	Slot     string         `json:"slot,omitempty"`
	World    geom.Point     `json:"world"`
	Label    string         `json:"label"`
	Message  string         `json:"message"`
	Warnings []warningDTO   `json:"warnings,omitempty"`
	View     viewport.State `json:"view"`
}

type viewDTO struct {
	View          viewport.State `json:"view"`
	Viewport      geom.Size      `json:"viewport"`
	Zoom          string         `json:"zoom"`
	Visible       geom.Rect      `json:"visible"`
	HoveredShelf  string         `json:"hoveredShelf,omitempty"`
	SelectedShelf string         `json:"selectedShelf,omitempty"`
	Marker        *marker.Marker `json:"marker,omitempty"`
}

type shelfDetailDTO struct {
	Shelf  shelfDTO `json:"shelf"`
	Detail []string `json:"detail"`
}

type errorDTO struct {
	Error       string   `json:"error"`
	Kind        string   `json:"kind,omitempty"`
	Message     string   `json:"message"`
	Suggestions []string `json:"suggestions,omitempty"`
}

// Request bodies

type itemRequest struct {
	Name     string             `json:"name"`
	Quantity decimal.Decimal    `json:"quantity"`
	Location inventory.Location `json:"location"`
}

type resizeRequest struct {
	Width  float64 `json:"width"`
	Height float64 `json:"height"`
}

type zoomRequest struct {
	Direction string   `json:"direction"`
	X         *float64 `json:"x,omitempty"`
	Y         *float64 `json:"y,omitempty"`
}

type panRequest struct {
	DX float64 `json:"dx"`
	DY float64 `json:"dy"`
}

func toShelfDTO(sh layout.Shelf) shelfDTO {
	return shelfDTO{ID: sh.ID, Sector: sh.SectorID, Rect: sh.Rect, Slots: sh.Slots}
}

func toLayoutDTO(l *layout.Layout) layoutDTO {
	out := layoutDTO{Name: l.Name(), Size: l.Size()}
	for _, sec := range l.Sectors() {
		out.Sectors = append(out.Sectors, sectorDTO{ID: sec.ID, Name: sec.Name, Rect: sec.Rect, Color: hexColor(sec.Fill)})
	}
	for _, sh := range l.Shelves() {
		out.Shelves = append(out.Shelves, toShelfDTO(sh))
	}
	return out
}

func toLocateDTO(res locator.Result, view viewport.State) locateDTO {
	out := locateDTO{
		Code:    res.Code,
		Shelf:   toShelfDTO(res.Shelf),
		Slot:    res.Slot,
		World:   res.World,
		Label:   res.Label,
		Message: renderer.LocateStatus(res, nil).Text,
		View:    view,
	}
	for _, w := range res.Warnings {
		out.Warnings = append(out.Warnings, warningDTO{Kind: w.Kind.String(), Message: w.Message()})
	}
	return out
}

func hexColor(c color.RGBA) string {
	return fmt.Sprintf("#%02x%02x%02x", c.R, c.G, c.B)
}
