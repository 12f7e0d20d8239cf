package input

import (
	"os"
	"path/filepath"
	"testing"
	"time"
)

func TestMapToIntent(t *testing.T) {
	tests := []struct {
		code string
		want Action
	}{
		{"arrow_up", ActionPanUp},
		{"+", ActionZoomIn},
		{"-", ActionZoomOut},
		{"0", ActionResetView},
		{"/", ActionSearch},
		{"escape", ActionDismiss},
		{"q", ActionQuit},
		{"nonsense", ActionNone},
	}
	for _, tt := range tests {
		got := MapToIntent(DebouncedInput{Device: DeviceKeyboard, Code: tt.code}).Action
		if got != tt.want {
			t.Errorf("MapToIntent(%q) = %s, want %s", tt.code, ActionName(got), ActionName(tt.want))
		}
	}
}

func TestPanDelta(t *testing.T) {
	dx, dy, ok := PanDelta(ActionPanRight)
	if !ok || dx != -PanStep || dy != 0 {
		t.Errorf("PanDelta(right) = %v,%v,%v", dx, dy, ok)
	}
	if _, _, ok := PanDelta(ActionZoomIn); ok {
		t.Error("PanDelta(zoom) ok = true")
	}
}

func TestDebouncer(t *testing.T) {
	d := NewDebouncer()
	now := time.Now()
	if _, ok := d.Accept(RawInput{Code: "+", Timestamp: now}); !ok {
		t.Fatal("first press rejected")
	}
	if _, ok := d.Accept(RawInput{Code: "+", Timestamp: now.Add(10 * time.Millisecond)}); ok {
		t.Error("repeat within interval accepted")
	}
	if _, ok := d.Accept(RawInput{Code: "-", Timestamp: now.Add(10 * time.Millisecond)}); !ok {
		t.Error("different code rejected")
	}
	if _, ok := d.Accept(RawInput{Code: "+", Timestamp: now.Add(RepeatInterval + time.Millisecond)}); !ok {
		t.Error("press after interval rejected")
	}
}

func TestSetSingleBinding_KeepsReserved(t *testing.T) {
	saved := make(map[string]Action, len(bindings))
	for k, v := range bindings {
		saved[k] = v
	}
	t.Cleanup(func() { bindings = saved })

	SetSingleBinding(ActionPanUp, "i")
	codes := GetBindingsByAction()[ActionPanUp]
	if len(codes) != 2 || codes[0] != "arrow_up" || codes[1] != "i" {
		t.Errorf("PanUp bindings = %v, want [arrow_up i]", codes)
	}
	SetSingleBinding(ActionQuit, "escape")
	if MapToIntent(DebouncedInput{Code: "escape"}).Action != ActionDismiss {
		t.Error("reserved escape binding was rebound")
	}
}

func TestReader_ReadLineFromPipe(t *testing.T) {
	path := filepath.Join(t.TempDir(), "cmds")
	if err := os.WriteFile(path, []byte("locate ITEM-1\r\nzoom in"), 0o644); err != nil {
		t.Fatal(err)
	}
	f, err := os.Open(path)
	if err != nil {
		t.Fatal(err)
	}
	defer f.Close()

	r := NewReaderFrom(f, os.Stdout)
	if r.Interactive() {
		t.Fatal("file reported as terminal")
	}
	for _, want := range []string{"locate ITEM-1", "zoom in"} {
		got, err := r.ReadCommand()
		if err != nil || got != want {
			t.Errorf("ReadCommand() = %q, %v; want %q", got, err, want)
		}
	}
	if _, err := r.ReadCommand(); err == nil {
		t.Error("ReadCommand() at EOF error = nil")
	}
}

func TestActionByName(t *testing.T) {
	for _, name := range []string{"zoomin", "Zoom In", "zoom_in", "ZOOM-IN"} {
		if a, ok := ActionByName(name); !ok || a != ActionZoomIn {
			t.Errorf("ActionByName(%q) = %s, %v; want Zoom In", name, ActionName(a), ok)
		}
	}
	if _, ok := ActionByName("teleport"); ok {
		t.Error("ActionByName(teleport) ok = true")
	}
}

func TestApplyBindings(t *testing.T) {
	saved := make(map[string]Action, len(bindings))
	for k, v := range bindings {
		saved[k] = v
	}
	t.Cleanup(func() { bindings = saved })

	if err := ApplyBindings("zoomin=z, reset view=r"); err != nil {
		t.Fatalf("ApplyBindings() error = %v", err)
	}
	if got := MapToIntent(DebouncedInput{Code: "z"}).Action; got != ActionZoomIn {
		t.Errorf("z -> %s, want Zoom In", ActionName(got))
	}
	if got := MapToIntent(DebouncedInput{Code: "+"}).Action; got != ActionNone {
		t.Errorf("+ -> %s after rebinding, want None", ActionName(got))
	}
	if got := MapToIntent(DebouncedInput{Code: "r"}).Action; got != ActionResetView {
		t.Errorf("r -> %s, want Reset View", ActionName(got))
	}

	for _, bad := range []string{"zoomin", "zoomin=", "fly=x"} {
		if err := ApplyBindings(bad); err == nil {
			t.Errorf("ApplyBindings(%q) error = nil, want error", bad)
		}
	}
}
