package ebiten

import (
	"image/color"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/text/v2"
	"github.com/hajimehoshi/ebiten/v2/vector"

	"stockmap/pkg/engine/geom"
	"stockmap/pkg/warehouse/scene"
)

// screenCanvas adapts an ebiten.Image to scene.Canvas
type screenCanvas struct {
	dst  *ebiten.Image
	size geom.Size
	face func(size float64) *text.GoTextFace
}

var _ scene.Canvas = (*screenCanvas)(nil)

func (c *screenCanvas) Size() geom.Size { return c.size }

func (c *screenCanvas) FillRect(r geom.Rect, col color.RGBA) {
	vector.DrawFilledRect(c.dst, float32(r.X), float32(r.Y), float32(r.Width), float32(r.Height), nrgba(col), false)
}

func (c *screenCanvas) StrokeRect(r geom.Rect, width float64, col color.RGBA) {
	vector.StrokeRect(c.dst, float32(r.X), float32(r.Y), float32(r.Width), float32(r.Height), float32(width), nrgba(col), false)
}

func (c *screenCanvas) FillCircle(center geom.Point, radius float64, col color.RGBA) {
	vector.DrawFilledCircle(c.dst, float32(center.X), float32(center.Y), float32(radius), nrgba(col), true)
}

func (c *screenCanvas) StrokeCircle(center geom.Point, radius, width float64, col color.RGBA) {
	vector.StrokeCircle(c.dst, float32(center.X), float32(center.Y), float32(radius), float32(width), nrgba(col), true)
}

func (c *screenCanvas) Text(s string, at geom.Point, size float64, col color.RGBA) {
	op := &text.DrawOptions{}
	op.GeoM.Translate(at.X, at.Y)
	op.ColorScale.ScaleWithColor(nrgba(col))
	text.Draw(c.dst, s, c.face(size), op)
}

// nrgba reinterprets palette colors, which carry straight alpha
func nrgba(c color.RGBA) color.NRGBA {
	return color.NRGBA{R: c.R, G: c.G, B: c.B, A: c.A}
}
