package devtools

import (
	"bytes"
	"os"
	"strings"
	"testing"

	"stockmap/pkg/engine/geom"
	"stockmap/pkg/inventory/memory"
	"stockmap/pkg/warehouse/animator"
	"stockmap/pkg/warehouse/layout"
	"stockmap/pkg/warehouse/session"
)

func TestDumpLayout(t *testing.T) {
	var buf bytes.Buffer
	if err := DumpLayout(&buf, layout.Default()); err != nil {
		t.Fatalf("DumpLayout() error = %v", err)
	}
	out := buf.String()
	for _, want := range []string{"name: Main warehouse", "## Sector ins (Inspection)", "- shelf ins-1", "E2: (150,490)"} {
		if !strings.Contains(out, want) {
			t.Errorf("dump missing %q", want)
		}
	}
	if strings.Contains(out, "# Warnings") {
		t.Error("default layout dump lists warnings")
	}
}

func TestDumpLayoutToFile(t *testing.T) {
	path, err := DumpLayoutToFile(layout.Default(), t.TempDir())
	if err != nil {
		t.Fatalf("DumpLayoutToFile() error = %v", err)
	}
	if _, err := os.Stat(path); err != nil {
		t.Errorf("dump file: %v", err)
	}
}

func TestSaveScreenshotSVG(t *testing.T) {
	s := session.New(layout.Default(), memory.NewRepository(), session.Options{Scheduler: animator.NewFrameScheduler()})
	defer s.Close()
	if _, err := SaveScreenshotSVG(s, t.TempDir()); err == nil {
		t.Error("screenshot before Resize error = nil")
	}

	if err := s.Resize(geom.Sz(800, 600)); err != nil {
		t.Fatal(err)
	}
	path, err := SaveScreenshotSVG(s, t.TempDir())
	if err != nil {
		t.Fatalf("SaveScreenshotSVG() error = %v", err)
	}
	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(string(data), "<svg") {
		t.Error("screenshot is not SVG")
	}
}
