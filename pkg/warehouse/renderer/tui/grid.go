package tui

import (
	"image/color"
	"math"
	"strings"

	gcolor "github.com/gookit/color"

	"stockmap/pkg/engine/geom"
	"stockmap/pkg/engine/terminal"
	"stockmap/pkg/warehouse/scene"
)

// Pixel size of one character cell; the height follows the terminal's cell
// aspect so the map keeps its proportions.
const (
	CellWidth  = 8.0
	CellHeight = CellWidth * terminal.CellAspect
)

// Glyphs used on the grid
const (
	glyphBlank      = ' '
	glyphHorizontal = '─'
	glyphVertical   = '│'
	glyphTopLeft    = '┌'
	glyphTopRight   = '┐'
	glyphBotLeft    = '└'
	glyphBotRight   = '┘'
	glyphSmallBox   = '■'
	glyphDot        = '●'
	glyphRing       = '·'
)

type cell struct {
	r     rune
	fg    color.RGBA
	bg    color.RGBA
	hasFg bool
}

// Grid is a scene.Canvas that rasterizes onto terminal character cells
type Grid struct {
	cols, rows int
	cells      []cell
}

var _ scene.Canvas = (*Grid)(nil)

// NewGrid creates a blank grid
func NewGrid(cols, rows int) *Grid {
	if cols < 1 {
		cols = 1
	}
	if rows < 1 {
		rows = 1
	}
	g := &Grid{cols: cols, rows: rows, cells: make([]cell, cols*rows)}
	for i := range g.cells {
		g.cells[i].r = glyphBlank
	}
	return g
}

// Cols returns the grid width in cells
func (g *Grid) Cols() int { return g.cols }

// Rows returns the grid height in cells
func (g *Grid) Rows() int { return g.rows }

// Size returns the grid size in canvas pixels
func (g *Grid) Size() geom.Size {
	return geom.Sz(float64(g.cols)*CellWidth, float64(g.rows)*CellHeight)
}

// CellCenter returns the pixel point at the middle of a cell
func CellCenter(col, row int) geom.Point {
	return geom.Pt((float64(col)+0.5)*CellWidth, (float64(row)+0.5)*CellHeight)
}

func (g *Grid) at(col, row int) *cell {
	if col < 0 || row < 0 || col >= g.cols || row >= g.rows {
		return nil
	}
	return &g.cells[row*g.cols+col]
}

// cellSpan returns the cells whose centers fall inside r
func cellSpan(r geom.Rect) (c0, r0, c1, r1 int) {
	c0 = int(math.Ceil(r.X/CellWidth - 0.5))
	r0 = int(math.Ceil(r.Y/CellHeight - 0.5))
	c1 = int(math.Ceil((r.X+r.Width)/CellWidth-0.5)) - 1
	r1 = int(math.Ceil((r.Y+r.Height)/CellHeight-0.5)) - 1
	return c0, r0, c1, r1
}

func (g *Grid) FillRect(r geom.Rect, c color.RGBA) {
	c0, r0, c1, r1 := cellSpan(r)
	for row := r0; row <= r1; row++ {
		for col := c0; col <= c1; col++ {
			if cl := g.at(col, row); cl != nil {
				cl.bg = blend(cl.bg, c)
			}
		}
	}
}

// StrokeRect draws a box outline; rectangles too small for a box become a
// single block
func (g *Grid) StrokeRect(r geom.Rect, _ float64, c color.RGBA) {
	c0, r0, c1, r1 := cellSpan(r)
	if c1 < c0 || r1 < r0 {
		center := r.Center()
		g.put(int(center.X/CellWidth), int(center.Y/CellHeight), glyphSmallBox, c)
		return
	}
	if c0 == c1 || r0 == r1 {
		for row := r0; row <= r1; row++ {
			for col := c0; col <= c1; col++ {
				g.put(col, row, glyphSmallBox, c)
			}
		}
		return
	}
	for col := c0 + 1; col < c1; col++ {
		g.put(col, r0, glyphHorizontal, c)
		g.put(col, r1, glyphHorizontal, c)
	}
	for row := r0 + 1; row < r1; row++ {
		g.put(c0, row, glyphVertical, c)
		g.put(c1, row, glyphVertical, c)
	}
	g.put(c0, r0, glyphTopLeft, c)
	g.put(c1, r0, glyphTopRight, c)
	g.put(c0, r1, glyphBotLeft, c)
	g.put(c1, r1, glyphBotRight, c)
}

// FillCircle draws a dot when the circle is smaller than a cell, otherwise it
// shades every cell whose center lies inside
func (g *Grid) FillCircle(center geom.Point, radius float64, c color.RGBA) {
	if radius*2 < CellHeight {
		g.put(int(center.X/CellWidth), int(center.Y/CellHeight), glyphDot, c)
		return
	}
	g.eachCell(center, radius, func(col, row int, d float64) {
		if d <= radius {
			if cl := g.at(col, row); cl != nil {
				cl.bg = blend(cl.bg, c)
			}
		}
	})
}

func (g *Grid) StrokeCircle(center geom.Point, radius, width float64, c color.RGBA) {
	band := math.Max(width/2, CellWidth/2)
	dot := geom.Pt(math.Floor(center.X/CellWidth), math.Floor(center.Y/CellHeight))
	g.eachCell(center, radius+band, func(col, row int, d float64) {
		if math.Abs(d-radius) > band {
			return
		}
		// never cover the cell holding the marker dot
		if float64(col) == dot.X && float64(row) == dot.Y {
			return
		}
		g.put(col, row, glyphRing, c)
	})
}

// eachCell visits the cells within reach of center with their center distance
func (g *Grid) eachCell(center geom.Point, reach float64, fn func(col, row int, d float64)) {
	c0, r0, c1, r1 := cellSpan(geom.Rect{X: center.X - reach, Y: center.Y - reach, Width: reach * 2, Height: reach * 2})
	for row := r0; row <= r1; row++ {
		for col := c0; col <= c1; col++ {
			fn(col, row, CellCenter(col, row).Dist(center))
		}
	}
}

// Text writes s starting at the cell containing at; size is ignored
func (g *Grid) Text(s string, at geom.Point, _ float64, c color.RGBA) {
	col := int(math.Floor(at.X / CellWidth))
	row := int(math.Floor(at.Y / CellHeight))
	for _, r := range s {
		g.put(col, row, r, c)
		col++
	}
}

func (g *Grid) put(col, row int, r rune, c color.RGBA) {
	cl := g.at(col, row)
	if cl == nil {
		return
	}
	cl.r = r
	cl.fg = blend(cl.bg, c)
	cl.hasFg = true
}

// Plain returns the grid glyphs without color, one line per row
func (g *Grid) Plain() string {
	var b strings.Builder
	for row := 0; row < g.rows; row++ {
		for col := 0; col < g.cols; col++ {
			b.WriteRune(g.at(col, row).r)
		}
		b.WriteByte('\n')
	}
	return b.String()
}

// String renders the grid with 24-bit color, merging runs of equal style
func (g *Grid) String() string {
	var b strings.Builder
	for row := 0; row < g.rows; row++ {
		var run []rune
		var runStyle cell
		flush := func() {
			if len(run) == 0 {
				return
			}
			b.WriteString(styleFor(runStyle).Sprint(string(run)))
			run = run[:0]
		}
		for col := 0; col < g.cols; col++ {
			cl := *g.at(col, row)
			if len(run) > 0 && (cl.fg != runStyle.fg || cl.bg != runStyle.bg || cl.hasFg != runStyle.hasFg) {
				flush()
			}
			runStyle = cl
			run = append(run, cl.r)
		}
		flush()
		b.WriteByte('\n')
	}
	return b.String()
}

func styleFor(cl cell) *gcolor.RGBStyle {
	fg := cl.bg
	if cl.hasFg {
		fg = cl.fg
	}
	return gcolor.NewRGBStyle(gcolor.RGB(fg.R, fg.G, fg.B), gcolor.RGB(cl.bg.R, cl.bg.G, cl.bg.B, true))
}

// blend composites src over an opaque dst
func blend(dst, src color.RGBA) color.RGBA {
	if src.A == 255 {
		return src
	}
	a := float64(src.A) / 255
	mix := func(d, s uint8) uint8 {
		return uint8(math.Round(float64(d)*(1-a) + float64(s)*a))
	}
	return color.RGBA{R: mix(dst.R, src.R), G: mix(dst.G, src.G), B: mix(dst.B, src.B), A: 255}
}
