package scene

import (
	"testing"

	"stockmap/pkg/engine/geom"
	"stockmap/pkg/warehouse/animator"
	"stockmap/pkg/warehouse/interaction"
	"stockmap/pkg/warehouse/layout"
	"stockmap/pkg/warehouse/marker"
	"stockmap/pkg/warehouse/viewport"
)

func fittedFrame(t *testing.T, canvas geom.Size) Frame {
	t.Helper()
	l := layout.Default()
	s, err := viewport.FitToWidth(canvas.W, canvas.H, l.Size().W, l.Size().H)
	if err != nil {
		t.Fatalf("FitToWidth() error = %v", err)
	}
	return Frame{Layout: l, View: s}
}

func TestRender_DrawOrder(t *testing.T) {
	canvas := NewRecorder(geom.Sz(1180, 780))
	f := fittedFrame(t, canvas.Size())
	f.Marker = marker.New(geom.Pt(150, 490), "ITEM-1 (ins-1-E2)")
	f.Pulse = animator.Tick(0, animator.DefaultParams)

	Render(canvas, f, DefaultPalette)

	fills := canvas.Find(OpFillRect)
	wantFills := 1 + len(f.Layout.Sectors()) + len(f.Layout.Shelves())
	if len(fills) != wantFills {
		t.Fatalf("fillRect ops = %d, want %d (background + sectors + shelves)", len(fills), wantFills)
	}

	// Sectors precede shelves, and the marker comes last
	lastShelf, firstMarker := -1, -1
	for i, op := range canvas.Ops {
		if op.Kind == OpFillRect && op.Color == DefaultPalette.Shelf {
			lastShelf = i
		}
		if op.Kind == OpStrokeCircle && firstMarker < 0 {
			firstMarker = i
		}
	}
	if firstMarker < lastShelf {
		t.Errorf("marker drawn at op %d before last shelf at op %d", firstMarker, lastShelf)
	}

	dots := canvas.Find(OpFillCircle)
	if len(dots) != 1 {
		t.Fatalf("marker dots = %d, want 1", len(dots))
	}
	want := viewport.WorldToScreen(geom.Pt(150, 490), f.View)
	if !dots[0].Center.ApproxEqual(want, 1e-9) || dots[0].Radius != MarkerRadius {
		t.Errorf("dot = %v r=%v, want %v r=%v", dots[0].Center, dots[0].Radius, want, MarkerRadius)
	}

	last := canvas.Ops[len(canvas.Ops)-1]
	if last.Kind != OpText || last.Text != f.Marker.Label {
		t.Errorf("last op = %+v, want marker label", last)
	}
	if last.Rect.X <= want.X || last.Rect.Y >= want.Y {
		t.Errorf("label at (%v,%v), want up-right of %v", last.Rect.X, last.Rect.Y, want)
	}
}

func TestRender_ShelfFillPrecedence(t *testing.T) {
	canvas := NewRecorder(geom.Sz(1180, 780))
	f := fittedFrame(t, canvas.Size())
	sel, _ := f.Layout.GetShelf("gen-1")
	f.Interaction = interaction.State{HoveredShelfID: "gen-1", SelectedShelf: &sel}

	Render(canvas, f, DefaultPalette)

	var selected, hovered int
	for _, op := range canvas.Find(OpFillRect) {
		switch op.Color {
		case DefaultPalette.ShelfSelected:
			selected++
		case DefaultPalette.ShelfHovered:
			hovered++
		}
	}
	if selected != 1 || hovered != 0 {
		t.Errorf("selected=%d hovered=%d, want selection to win over hover", selected, hovered)
	}

	canvas.Reset()
	f.Interaction = interaction.State{HoveredShelfID: "gen-2", SelectedShelf: &sel}
	Render(canvas, f, DefaultPalette)
	hovered = 0
	for _, op := range canvas.Find(OpFillRect) {
		if op.Color == DefaultPalette.ShelfHovered {
			hovered++
		}
	}
	if hovered != 1 {
		t.Errorf("hovered fills = %d, want 1", hovered)
	}
}

func TestRender_PulseOnlyAffectsRing(t *testing.T) {
	f := fittedFrame(t, geom.Sz(800, 600))
	f.Marker = marker.New(geom.Pt(300, 300), "")

	radii := map[float64]bool{}
	for _, ms := range []int{0, 120, 250, 400} {
		canvas := NewRecorder(geom.Sz(800, 600))
		f.Pulse = animator.Tick(timeMS(ms), animator.DefaultParams)
		Render(canvas, f, DefaultPalette)

		dot := canvas.Find(OpFillCircle)[0]
		if dot.Radius != MarkerRadius {
			t.Errorf("t=%dms dot radius = %v, want constant %v", ms, dot.Radius, MarkerRadius)
		}
		ring := canvas.Find(OpStrokeCircle)[0]
		radii[ring.Radius] = true
	}
	if len(radii) < 2 {
		t.Error("ring radius did not change with the pulse")
	}
}

func TestRender_CullsOffscreen(t *testing.T) {
	canvas := NewRecorder(geom.Sz(200, 200))
	f := fittedFrame(t, geom.Sz(1180, 780))
	f.View = viewport.CenterOn(geom.Pt(60, 60), 4, canvas.Size(), f.View)
	Render(canvas, f, DefaultPalette)

	all := 1 + len(f.Layout.Sectors()) + len(f.Layout.Shelves())
	if got := len(canvas.Find(OpFillRect)); got >= all {
		t.Errorf("fillRect ops = %d, want fewer than %d when zoomed into a corner", got, all)
	}
}

func TestHitTest(t *testing.T) {
	f := fittedFrame(t, geom.Sz(1180, 780)) // scale 1
	l := f.Layout
	ins1, _ := l.GetShelf("ins-1")

	at := viewport.WorldToScreen(ins1.Center(), f.View)
	if id, ok := HitTest(l, f.View, at); !ok || id != "ins-1" {
		t.Errorf("HitTest(ins-1 center) = %q, %v; want ins-1", id, ok)
	}
	if _, ok := HitTest(l, f.View, geom.Pt(5, 5)); ok {
		t.Error("HitTest(empty corner) ok = true")
	}
	if _, ok := HitTest(nil, f.View, at); ok {
		t.Error("HitTest(nil layout) ok = true")
	}

	// Hit-testing follows zoom
	zoomed := viewport.CenterOn(ins1.Center(), 4, geom.Sz(800, 600), f.View)
	if id, ok := HitTest(l, zoomed, geom.Pt(400, 300)); !ok || id != "ins-1" {
		t.Errorf("zoomed HitTest(center) = %q, %v; want ins-1", id, ok)
	}

	if sec, ok := SectorAt(l, f.View, at); !ok || sec.ID != "ins" {
		t.Errorf("SectorAt(ins-1 center) = %q, %v; want ins", sec.ID, ok)
	}
}

func TestHitTest_TopmostWins(t *testing.T) {
	l, err := layout.Load([]byte(`{
		"name": "overlap",
		"sectors": [{"id": "s", "name": "S", "rect": {"x": 0, "y": 0, "width": 100, "height": 100}}],
		"shelves": [
			{"id": "under", "sector": "s", "rect": {"x": 10, "y": 10, "width": 50, "height": 50}},
			{"id": "over", "sector": "s", "rect": {"x": 30, "y": 30, "width": 50, "height": 50}}
		]
	}`))
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if id, _ := HitTest(l, viewport.State{Scale: 1}, geom.Pt(40, 40)); id != "over" {
		t.Errorf("HitTest(overlap) = %q, want over", id)
	}
	if id, _ := HitTest(l, viewport.State{Scale: 1}, geom.Pt(15, 15)); id != "under" {
		t.Errorf("HitTest(under only) = %q, want under", id)
	}
}

func TestWithAlpha(t *testing.T) {
	c := WithAlpha(DefaultPalette.Marker, 0.5)
	if c.A != 127 {
		t.Errorf("A = %d, want 127", c.A)
	}
	if WithAlpha(DefaultPalette.Marker, 2).A != 255 {
		t.Error("alpha above 1 not clamped")
	}
}
