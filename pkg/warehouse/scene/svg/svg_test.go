package svg

import (
	"image/color"
	"strings"
	"testing"

	"stockmap/pkg/engine/geom"
	"stockmap/pkg/warehouse/layout"
	"stockmap/pkg/warehouse/marker"
	"stockmap/pkg/warehouse/scene"
	"stockmap/pkg/warehouse/viewport"
)

func TestRender(t *testing.T) {
	l := layout.Default()
	f := scene.Frame{
		Layout: l,
		View:   viewport.State{Scale: 1},
		Marker: marker.New(geom.Pt(150, 490), `ITEM-1 <ins-1-E2>`),
	}
	doc, err := Render(geom.Sz(1180, 780), f, scene.DefaultPalette)
	if err != nil {
		t.Fatalf("Render() error = %v", err)
	}

	if !strings.HasPrefix(doc, `<?xml`) || !strings.HasSuffix(doc, `</svg>`) {
		t.Errorf("document is not a complete SVG:\n%s", doc)
	}
	if !strings.Contains(doc, `viewBox="0 0 1180 780"`) {
		t.Error("missing viewBox")
	}
	if !strings.Contains(doc, `<circle cx="150" cy="490" r="6"`) {
		t.Error("marker dot not at its world point")
	}
	if !strings.Contains(doc, "ITEM-1 &lt;ins-1-E2&gt;") {
		t.Error("marker label not escaped")
	}
	if got := strings.Count(doc, ">ins-"); got != len(l.ShelvesOfSector("ins")) {
		t.Errorf("ins shelf labels = %d, want %d", got, len(l.ShelvesOfSector("ins")))
	}
}

func TestRender_EmptySize(t *testing.T) {
	if _, err := Render(geom.Sz(0, 100), scene.Frame{}, scene.DefaultPalette); err == nil {
		t.Error("Render(0x100) error = nil")
	}
}

func TestOpacity(t *testing.T) {
	if got := opacity("fill-opacity", color.RGBA{A: 255}); got != "" {
		t.Errorf("opaque = %q, want empty", got)
	}
	if got := opacity("fill-opacity", color.RGBA{A: 51}); got != ` fill-opacity="0.2"` {
		t.Errorf("opacity(51) = %q", got)
	}
}
