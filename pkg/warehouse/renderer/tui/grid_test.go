package tui

import (
	"image/color"
	"strings"
	"testing"

	"stockmap/pkg/engine/geom"
)

var red = color.RGBA{255, 0, 0, 255}

func TestGrid_Size(t *testing.T) {
	g := NewGrid(10, 5)
	if got := g.Size(); got != geom.Sz(80, 80) {
		t.Errorf("Size() = %v, want 80x80", got)
	}
	if g := NewGrid(0, -1); g.Cols() != 1 || g.Rows() != 1 {
		t.Errorf("NewGrid(0,-1) = %dx%d, want 1x1", g.Cols(), g.Rows())
	}
}

func TestGrid_FillRectCoversCellCenters(t *testing.T) {
	g := NewGrid(4, 2)
	// covers the centers of columns 1 and 2 on row 0 only
	g.FillRect(geom.R(8, 0, 16, 16), red)
	for col := 0; col < 4; col++ {
		want := col == 1 || col == 2
		if got := g.at(col, 0).bg == red; got != want {
			t.Errorf("cell (%d,0) filled = %v, want %v", col, got, want)
		}
		if g.at(col, 1).bg == red {
			t.Errorf("cell (%d,1) filled, want untouched", col)
		}
	}
}

func TestGrid_StrokeRectDrawsBox(t *testing.T) {
	g := NewGrid(5, 4)
	g.StrokeRect(geom.R(0, 0, 40, 64), 1, red)
	want := "┌───┐\n│   │\n│   │\n└───┘\n"
	if got := g.Plain(); got != want {
		t.Errorf("Plain() =\n%s\nwant\n%s", got, want)
	}
}

func TestGrid_StrokeRectTinyBecomesBlock(t *testing.T) {
	g := NewGrid(3, 1)
	g.StrokeRect(geom.R(9, 2, 2, 2), 1, red)
	if got := g.Plain(); got != " ■ \n" {
		t.Errorf("Plain() = %q, want block in the middle cell", got)
	}
}

func TestGrid_SmallCircleIsDot(t *testing.T) {
	g := NewGrid(3, 3)
	g.FillCircle(CellCenter(1, 1), 6, red)
	if got := g.at(1, 1).r; got != glyphDot {
		t.Errorf("center glyph = %q, want %q", got, glyphDot)
	}
}

func TestGrid_RingSparesDot(t *testing.T) {
	g := NewGrid(9, 5)
	center := CellCenter(4, 2)
	g.FillCircle(center, 6, red)
	g.StrokeCircle(center, 14, 2.5, red)
	if got := g.at(4, 2).r; got != glyphDot {
		t.Errorf("ring overwrote dot: %q", got)
	}
	if !strings.ContainsRune(g.Plain(), glyphRing) {
		t.Error("ring glyphs missing")
	}
}

func TestGrid_TextClipsAtEdge(t *testing.T) {
	g := NewGrid(4, 1)
	g.Text("abcdef", geom.Pt(8, 0), 11, red)
	if got := g.Plain(); got != " abc\n" {
		t.Errorf("Plain() = %q, want %q", got, " abc\n")
	}
}

func TestBlend(t *testing.T) {
	dst := color.RGBA{0, 0, 0, 255}
	got := blend(dst, color.RGBA{200, 100, 0, 128})
	if got.A != 255 || got.R < 99 || got.R > 101 || got.G < 49 || got.G > 51 {
		t.Errorf("blend() = %v, want about {100 50 0 255}", got)
	}
	if got := blend(dst, red); got != red {
		t.Errorf("opaque blend() = %v, want %v", got, red)
	}
}

func TestGrid_StringKeepsGlyphs(t *testing.T) {
	g := NewGrid(3, 1)
	g.Text("ab", geom.Pt(0, 0), 11, red)
	if out := g.String(); !strings.Contains(out, "a") || !strings.Contains(out, "b") {
		t.Errorf("String() = %q, want glyphs present", out)
	}
}
