// Package scene draws one frame of the warehouse map onto an abstract Canvas
// and answers which shelf lies under a screen point. It holds no state: every
// call takes the full Frame.
package scene

import (
	"stockmap/pkg/engine/geom"
	"stockmap/pkg/warehouse/animator"
	"stockmap/pkg/warehouse/interaction"
	"stockmap/pkg/warehouse/layout"
	"stockmap/pkg/warehouse/marker"
	"stockmap/pkg/warehouse/viewport"
)

// Marker glyph sizes in screen pixels; they do not scale with zoom
const (
	MarkerRadius     = 6.0
	MarkerRingRadius = 14.0
	MarkerRingWidth  = 2.5
	markerLabelGap   = 10.0
)

// Label text sizes and the minimum on-screen shelf width that gets a label
const (
	SectorLabelSize = 14.0
	ShelfLabelSize  = 11.0
	minLabelWidth   = 28.0
)

// Frame is everything needed to draw one frame
type Frame struct {
	Layout      *layout.Layout
	View        viewport.State
	Interaction interaction.State
	Marker      *marker.Marker
	Pulse       animator.Pulse
}

// Render draws sectors, then shelves, then the marker
func Render(c Canvas, f Frame, p Palette) {
	size := c.Size()
	screen := geom.Rect{Width: size.W, Height: size.H}
	c.FillRect(screen, p.Background)
	if f.Layout == nil {
		return
	}

	for _, sec := range f.Layout.Sectors() {
		r := viewport.WorldRectToScreen(sec.Rect, f.View)
		if _, ok := r.Intersect(screen); !ok {
			continue
		}
		c.FillRect(r, sec.Fill)
		c.StrokeRect(r, 1, p.SectorBorder)
		c.Text(sec.Name, geom.Pt(r.X+6, r.Y+4), SectorLabelSize, p.SectorLabel)
	}

	hovered := f.Interaction.HoveredShelfID
	selected := f.Interaction.SelectedShelfID()
	for _, sh := range f.Layout.Shelves() {
		r := viewport.WorldRectToScreen(sh.Rect, f.View)
		if _, ok := r.Intersect(screen); !ok {
			continue
		}
		fill := p.Shelf
		switch sh.ID {
		case selected:
			fill = p.ShelfSelected
		case hovered:
			fill = p.ShelfHovered
		}
		c.FillRect(r, fill)
		c.StrokeRect(r, 1, p.ShelfBorder)
		if r.Width >= minLabelWidth {
			c.Text(sh.ID, geom.Pt(r.X+4, r.Y+4), ShelfLabelSize, p.ShelfLabel)
		}
	}

	if f.Marker != nil {
		drawMarker(c, f, p)
	}
}

func drawMarker(c Canvas, f Frame, p Palette) {
	at := viewport.WorldToScreen(f.Marker.World, f.View)
	pulse := f.Pulse
	if pulse.Scale == 0 {
		pulse = animator.DefaultParams.Rest()
	}

	c.StrokeCircle(at, MarkerRingRadius*pulse.Scale, MarkerRingWidth, WithAlpha(p.MarkerRing, pulse.Opacity))
	c.FillCircle(at, MarkerRadius, p.Marker)
	if f.Marker.Label != "" {
		c.Text(f.Marker.Label, geom.Pt(at.X+markerLabelGap, at.Y-markerLabelGap-SectorLabelSize), SectorLabelSize, p.MarkerLabel)
	}
}

// HitTest returns the shelf under a screen point. Shelves drawn later sit on top,
// so the last match in draw order wins.
func HitTest(l *layout.Layout, s viewport.State, screenPt geom.Point) (string, bool) {
	if l == nil || s.Scale <= 0 {
		return "", false
	}
	world := viewport.ScreenToWorld(screenPt, s)
	shelves := l.Shelves()
	for i := len(shelves) - 1; i >= 0; i-- {
		if shelves[i].Rect.Contains(world) {
			return shelves[i].ID, true
		}
	}
	return "", false
}

// SectorAt returns the sector under a screen point
func SectorAt(l *layout.Layout, s viewport.State, screenPt geom.Point) (layout.Sector, bool) {
	if l == nil || s.Scale <= 0 {
		return layout.Sector{}, false
	}
	world := viewport.ScreenToWorld(screenPt, s)
	sectors := l.Sectors()
	for i := len(sectors) - 1; i >= 0; i-- {
		if sectors[i].Rect.Contains(world) {
			return sectors[i], true
		}
	}
	return layout.Sector{}, false
}
