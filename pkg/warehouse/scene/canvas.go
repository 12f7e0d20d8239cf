package scene

import (
	"image/color"

	"stockmap/pkg/engine/geom"
)

// Canvas is the drawing surface a backend provides. All coordinates are screen
// pixels with the origin at the top-left; text is anchored at its top-left.
type Canvas interface {
	Size() geom.Size
	FillRect(r geom.Rect, c color.RGBA)
	StrokeRect(r geom.Rect, width float64, c color.RGBA)
	FillCircle(center geom.Point, radius float64, c color.RGBA)
	StrokeCircle(center geom.Point, radius, width float64, c color.RGBA)
	Text(s string, at geom.Point, size float64, c color.RGBA)
}

// OpKind names a recorded canvas call
type OpKind string

const (
	OpFillRect     OpKind = "fillRect"
	OpStrokeRect   OpKind = "strokeRect"
	OpFillCircle   OpKind = "fillCircle"
	OpStrokeCircle OpKind = "strokeCircle"
	OpText         OpKind = "text"
)

// Op is one recorded drawing call
type Op struct {
	Kind   OpKind
	Rect   geom.Rect
	Center geom.Point
	Radius float64
	Width  float64
	Text   string
	Color  color.RGBA
}

// Recorder is a Canvas that records calls instead of drawing them
type Recorder struct {
	size geom.Size
	Ops  []Op
}

// NewRecorder creates a recorder for a canvas of the given size
func NewRecorder(size geom.Size) *Recorder {
	return &Recorder{size: size}
}

func (r *Recorder) Size() geom.Size { return r.size }

func (r *Recorder) FillRect(rect geom.Rect, c color.RGBA) {
	r.Ops = append(r.Ops, Op{Kind: OpFillRect, Rect: rect, Color: c})
}

func (r *Recorder) StrokeRect(rect geom.Rect, width float64, c color.RGBA) {
	r.Ops = append(r.Ops, Op{Kind: OpStrokeRect, Rect: rect, Width: width, Color: c})
}

func (r *Recorder) FillCircle(center geom.Point, radius float64, c color.RGBA) {
	r.Ops = append(r.Ops, Op{Kind: OpFillCircle, Center: center, Radius: radius, Color: c})
}

func (r *Recorder) StrokeCircle(center geom.Point, radius, width float64, c color.RGBA) {
	r.Ops = append(r.Ops, Op{Kind: OpStrokeCircle, Center: center, Radius: radius, Width: width, Color: c})
}

func (r *Recorder) Text(s string, at geom.Point, size float64, c color.RGBA) {
	r.Ops = append(r.Ops, Op{Kind: OpText, Rect: geom.Rect{X: at.X, Y: at.Y}, Text: s, Width: size, Color: c})
}

// Find returns the recorded ops of one kind
func (r *Recorder) Find(kind OpKind) []Op {
	var out []Op
	for _, op := range r.Ops {
		if op.Kind == kind {
			out = append(out, op)
		}
	}
	return out
}

// Reset drops all recorded ops
func (r *Recorder) Reset() {
	r.Ops = r.Ops[:0]
}
