// Package svg is a scene.Canvas that writes an SVG document
package svg

import (
	"fmt"
	"html"
	"image/color"
	"math"
	"strconv"
	"strings"

	"stockmap/pkg/engine/geom"
	"stockmap/pkg/warehouse/scene"
)

// Canvas collects SVG elements for one frame
type Canvas struct {
	size     geom.Size
	elements []string
}

// Verify interface compliance
var _ scene.Canvas = (*Canvas)(nil)

// New creates an SVG canvas of the given pixel size
func New(size geom.Size) *Canvas {
	return &Canvas{size: size}
}

// Render draws a frame and returns the SVG document
func Render(size geom.Size, f scene.Frame, p scene.Palette) (string, error) {
	if size.Empty() {
		return "", fmt.Errorf("svg: canvas size %gx%g must be positive", size.W, size.H)
	}
	c := New(size)
	scene.Render(c, f, p)
	return c.String(), nil
}

func (c *Canvas) Size() geom.Size { return c.size }

func (c *Canvas) FillRect(r geom.Rect, col color.RGBA) {
	c.elements = append(c.elements, fmt.Sprintf(`<rect x="%s" y="%s" width="%s" height="%s" fill="%s"%s/>`,
		formatFloat(r.X), formatFloat(r.Y), formatFloat(r.Width), formatFloat(r.Height), hex(col), opacity("fill-opacity", col)))
}

func (c *Canvas) StrokeRect(r geom.Rect, width float64, col color.RGBA) {
	c.elements = append(c.elements, fmt.Sprintf(`<rect x="%s" y="%s" width="%s" height="%s" fill="none" stroke="%s" stroke-width="%s"%s/>`,
		formatFloat(r.X), formatFloat(r.Y), formatFloat(r.Width), formatFloat(r.Height), hex(col), formatFloat(width), opacity("stroke-opacity", col)))
}

func (c *Canvas) FillCircle(center geom.Point, radius float64, col color.RGBA) {
	c.elements = append(c.elements, fmt.Sprintf(`<circle cx="%s" cy="%s" r="%s" fill="%s"%s/>`,
		formatFloat(center.X), formatFloat(center.Y), formatFloat(radius), hex(col), opacity("fill-opacity", col)))
}

func (c *Canvas) StrokeCircle(center geom.Point, radius, width float64, col color.RGBA) {
	c.elements = append(c.elements, fmt.Sprintf(`<circle cx="%s" cy="%s" r="%s" fill="none" stroke="%s" stroke-width="%s"%s/>`,
		formatFloat(center.X), formatFloat(center.Y), formatFloat(radius), hex(col), formatFloat(width), opacity("stroke-opacity", col)))
}

func (c *Canvas) Text(s string, at geom.Point, size float64, col color.RGBA) {
	// SVG anchors text at the baseline
	c.elements = append(c.elements, fmt.Sprintf(`<text x="%s" y="%s" font-family="sans-serif" font-size="%s" fill="%s">%s</text>`,
		formatFloat(at.X), formatFloat(at.Y+size), formatFloat(size), hex(col), html.EscapeString(s)))
}

// String returns the complete SVG document
func (c *Canvas) String() string {
	var builder strings.Builder
	builder.WriteString(`<?xml version="1.0" encoding="UTF-8"?>` + "\n")
	builder.WriteString(fmt.Sprintf(`<svg xmlns="http://www.w3.org/2000/svg" width="%s" height="%s" viewBox="0 0 %s %s">`,
		formatFloat(c.size.W), formatFloat(c.size.H), formatFloat(c.size.W), formatFloat(c.size.H)))
	builder.WriteString("\n")

	for _, elem := range c.elements {
		builder.WriteString("  ")
		builder.WriteString(elem)
		builder.WriteString("\n")
	}

	builder.WriteString(`</svg>`)
	return builder.String()
}

func hex(c color.RGBA) string {
	return fmt.Sprintf("#%02x%02x%02x", c.R, c.G, c.B)
}

func opacity(attr string, c color.RGBA) string {
	if c.A == 255 {
		return ""
	}
	return fmt.Sprintf(` %s="%s"`, attr, formatFloat(math.Round(float64(c.A)/255*1000)/1000))
}

func formatFloat(val float64) string {
	return strconv.FormatFloat(math.Round(val*100)/100, 'f', -1, 64)
}
