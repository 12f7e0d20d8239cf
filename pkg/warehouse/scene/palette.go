package scene

import "image/color"

// Palette holds every color the scene draws with
type Palette struct {
	Background    color.RGBA
	SectorBorder  color.RGBA
	SectorLabel   color.RGBA
	Shelf         color.RGBA
	ShelfHovered  color.RGBA
	ShelfSelected color.RGBA
	ShelfBorder   color.RGBA
	ShelfLabel    color.RGBA
	Marker        color.RGBA
	MarkerRing    color.RGBA
	MarkerLabel   color.RGBA
}

// DefaultPalette is the light map theme
var DefaultPalette = Palette{
	Background:    color.RGBA{245, 246, 248, 255}, // Off-white floor
	SectorBorder:  color.RGBA{120, 125, 140, 255}, // Slate
	SectorLabel:   color.RGBA{70, 75, 90, 255},    // Dark slate
	Shelf:         color.RGBA{190, 200, 215, 255}, // Steel blue-gray
	ShelfHovered:  color.RGBA{150, 185, 235, 255}, // Light blue
	ShelfSelected: color.RGBA{60, 130, 230, 255},  // Strong blue
	ShelfBorder:   color.RGBA{90, 100, 120, 255},  // Dark steel
	ShelfLabel:    color.RGBA{30, 35, 45, 255},    // Near black
	Marker:        color.RGBA{230, 50, 60, 255},   // Red
	MarkerRing:    color.RGBA{230, 50, 60, 255},   // Red, alpha from the pulse
	MarkerLabel:   color.RGBA{160, 20, 30, 255},   // Dark red
}

// WithAlpha returns c with its alpha multiplied by a (0..1)
func WithAlpha(c color.RGBA, a float64) color.RGBA {
	if a < 0 {
		a = 0
	}
	if a > 1 {
		a = 1
	}
	c.A = uint8(float64(c.A) * a)
	return c
}
