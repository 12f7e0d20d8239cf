package layout

import (
	"strings"
	"testing"

	"stockmap/pkg/engine/geom"
)

const twoShelfLayout = `{
  "name": "test",
  "sectors": [
    {"id": "a", "name": "Alpha", "rect": {"x": 0, "y": 0, "width": 100, "height": 100}, "color": "#102030"},
    {"id": "b", "rect": {"x": 100, "y": 0, "width": 100, "height": 50}}
  ],
  "shelves": [
    {"id": "a-1", "sector": "a", "rect": {"x": 10, "y": 10, "width": 40, "height": 20}, "slots": {"E2": {"x": 5, "y": 6}}},
    {"id": "a-2", "sector": "a", "rect": {"x": 10, "y": 40, "width": 40, "height": 20}},
    {"id": "b-1", "sector": "b", "rect": {"x": 110, "y": 10, "width": 40, "height": 20}}
  ]
}`

func mustLoad(t *testing.T, data string) *Layout {
	t.Helper()
	l, err := Load([]byte(data))
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	return l
}

func TestLoad_Lookups(t *testing.T) {
	l := mustLoad(t, twoShelfLayout)

	s, ok := l.GetSector("a")
	if !ok || s.Name != "Alpha" {
		t.Fatalf("GetSector(a) = %+v, %v; want Alpha, true", s, ok)
	}
	if s.Fill.R != 0x10 || s.Fill.G != 0x20 || s.Fill.B != 0x30 {
		t.Errorf("sector fill = %v, want #102030", s.Fill)
	}
	if b, _ := l.GetSector("b"); b.Name != "b" {
		t.Errorf("unnamed sector Name = %q, want id fallback %q", b.Name, "b")
	}
	if _, ok := l.GetSector("missing"); ok {
		t.Error("GetSector(missing) ok = true, want false")
	}
	if _, ok := l.GetShelf("missing"); ok {
		t.Error("GetShelf(missing) ok = true, want false")
	}

	shelves := l.ShelvesOfSector("a")
	if len(shelves) != 2 || shelves[0].ID != "a-1" || shelves[1].ID != "a-2" {
		t.Errorf("ShelvesOfSector(a) = %v, want [a-1 a-2]", shelves)
	}
	if got := l.ShelvesOfSector("nope"); len(got) != 0 {
		t.Errorf("ShelvesOfSector(nope) = %v, want empty", got)
	}
}

func TestNilLayoutLookupsDoNotPanic(t *testing.T) {
	var l *Layout
	if _, ok := l.GetShelf("x"); ok {
		t.Error("nil layout GetShelf ok = true")
	}
	if _, ok := l.GetSector("x"); ok {
		t.Error("nil layout GetSector ok = true")
	}
	if got := l.ShelvesOfSector("x"); got != nil {
		t.Errorf("nil layout ShelvesOfSector = %v, want nil", got)
	}
}

func TestShelf_SlotPointAndCenter(t *testing.T) {
	l := mustLoad(t, twoShelfLayout)
	shelf, _ := l.GetShelf("a-1")

	p, ok := shelf.SlotPoint("E2")
	if !ok || p != geom.Pt(15, 16) {
		t.Errorf("SlotPoint(E2) = %v, %v; want (15,16), true", p, ok)
	}
	if _, ok := shelf.SlotPoint("Z9"); ok {
		t.Error("SlotPoint(Z9) ok = true, want false")
	}
	if c := shelf.Center(); c != geom.Pt(30, 20) {
		t.Errorf("Center() = %v, want (30,20)", c)
	}
}

func TestShelf_SlotsAreCopied(t *testing.T) {
	l := mustLoad(t, twoShelfLayout)

	sh, _ := l.GetShelf("a-1")
	sh.Slots["E2"] = geom.Pt(99, 99)
	sh.Slots["Z9"] = geom.Pt(1, 1)
	l.Shelves()[0].Slots["E2"] = geom.Pt(50, 50)
	l.ShelvesOfSector("a")[0].Slots["E2"] = geom.Pt(60, 60)

	fresh, _ := l.GetShelf("a-1")
	if p, ok := fresh.SlotPoint("E2"); !ok || p != geom.Pt(15, 16) {
		t.Errorf("SlotPoint(E2) = %v, %v; want (15,16), true", p, ok)
	}
	if _, ok := fresh.SlotPoint("Z9"); ok {
		t.Error("slot added through a returned shelf leaked into the layout")
	}
}

func TestLayout_SizeAndBounds(t *testing.T) {
	l := mustLoad(t, twoShelfLayout)
	if got := l.Bounds(); got != geom.R(0, 0, 200, 100) {
		t.Errorf("Bounds() = %v, want (0,0,200,100)", got)
	}
	if got := l.Size(); got != geom.Sz(200, 100) {
		t.Errorf("Size() = %v, want 200x100", got)
	}
}

func TestLoad_Errors(t *testing.T) {
	tests := []struct {
		name string
		data string
		want string
	}{
		{"bad json", `{`, "parse layout"},
		{"no sectors", `{"name":"x","sectors":[]}`, "no sectors"},
		{"duplicate sector", `{"sectors":[{"id":"a","rect":{"width":1,"height":1}},{"id":"a","rect":{"width":1,"height":1}}]}`, "duplicate id"},
		{"zero size sector", `{"sectors":[{"id":"a","rect":{"width":0,"height":1}}]}`, "non-positive size"},
		{"bad color", `{"sectors":[{"id":"a","rect":{"width":1,"height":1},"color":"#12"}]}`, "invalid color"},
		{"unknown sector ref", `{"sectors":[{"id":"a","rect":{"width":1,"height":1}}],"shelves":[{"id":"s","sector":"zz","rect":{"width":1,"height":1}}]}`, "unknown sector"},
		{"duplicate shelf", `{"sectors":[{"id":"a","rect":{"width":9,"height":9}}],"shelves":[{"id":"s","sector":"a","rect":{"width":1,"height":1}},{"id":"s","sector":"a","rect":{"width":1,"height":1}}]}`, "duplicate id"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Load([]byte(tt.data))
			if err == nil {
				t.Fatal("Load() error = nil, want error")
			}
			if !strings.Contains(err.Error(), tt.want) {
				t.Errorf("Load() error = %q, want it to contain %q", err, tt.want)
			}
		})
	}
}

func TestLoad_WarnsOnShelfOutsideSector(t *testing.T) {
	data := `{"sectors":[{"id":"a","rect":{"width":10,"height":10}}],
	  "shelves":[{"id":"s","sector":"a","rect":{"x":50,"y":50,"width":5,"height":5},"slots":{"X":{"x":99,"y":0}}}]}`
	l := mustLoad(t, data)
	w := l.Warnings()
	if len(w) != 2 {
		t.Fatalf("Warnings() = %v, want 2 entries", w)
	}
}

func TestDefault(t *testing.T) {
	l := Default()
	if len(l.Warnings()) != 0 {
		t.Errorf("embedded facility warnings = %v, want none", l.Warnings())
	}
	shelf, ok := l.GetShelf("ins-1")
	if !ok {
		t.Fatal("embedded facility has no shelf ins-1")
	}
	if _, ok := shelf.SlotPoint("E2"); !ok {
		t.Error("shelf ins-1 has no slot E2")
	}
	for _, s := range l.Shelves() {
		if _, ok := l.GetSector(s.SectorID); !ok {
			t.Errorf("shelf %s references missing sector %s", s.ID, s.SectorID)
		}
	}
	if names := shelf.SlotNames(); len(names) != 12 || names[0] != "A1" {
		t.Errorf("SlotNames() = %v, want 12 names starting at A1", names)
	}
}
