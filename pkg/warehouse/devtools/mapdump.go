// Package devtools provides developer tools for inspecting layouts and views.
package devtools

import (
	"fmt"
	"io"
	"os"
	"strings"

	"stockmap/pkg/warehouse/layout"
)

const layoutDumpFilename = "layout.txt"

// DumpLayout writes a readable description of a layout: metadata, every sector
// with its shelves and slots, then any load warnings.
func DumpLayout(w io.Writer, l *layout.Layout) error {
	size := l.Size()
	b := l.Bounds()

	var sb strings.Builder
	fmt.Fprintf(&sb, "# Layout\n")
	fmt.Fprintf(&sb, "name: %s\n", l.Name())
	fmt.Fprintf(&sb, "size: %gx%g\n", size.W, size.H)
	fmt.Fprintf(&sb, "bounds: (%g,%g) %gx%g\n", b.X, b.Y, b.Width, b.Height)
	fmt.Fprintf(&sb, "sectors: %d\n", len(l.Sectors()))
	fmt.Fprintf(&sb, "shelves: %d\n\n", len(l.Shelves()))

	for _, sec := range l.Sectors() {
		fmt.Fprintf(&sb, "## Sector %s (%s)\n", sec.ID, sec.Name)
		fmt.Fprintf(&sb, "rect: (%g,%g) %gx%g\n", sec.Rect.X, sec.Rect.Y, sec.Rect.Width, sec.Rect.Height)
		for _, sh := range l.ShelvesOfSector(sec.ID) {
			fmt.Fprintf(&sb, "- shelf %s at (%g,%g) %gx%g\n", sh.ID, sh.Rect.X, sh.Rect.Y, sh.Rect.Width, sh.Rect.Height)
			for _, name := range sh.SlotNames() {
				p, _ := sh.SlotPoint(name)
				fmt.Fprintf(&sb, "    %s: (%g,%g)\n", name, p.X, p.Y)
			}
		}
		sb.WriteString("\n")
	}

	if warnings := l.Warnings(); len(warnings) > 0 {
		sb.WriteString("# Warnings\n")
		for _, w := range warnings {
			fmt.Fprintf(&sb, "- %s\n", w)
		}
	}

	_, err := io.WriteString(w, sb.String())
	return err
}

// DumpLayoutToFile writes DumpLayout output to layout.txt in dir and returns the path
func DumpLayoutToFile(l *layout.Layout, dir string) (string, error) {
	path := layoutDumpFilename
	if dir != "" {
		path = strings.TrimRight(dir, "/") + "/" + layoutDumpFilename
	}
	f, err := os.Create(path)
	if err != nil {
		return "", fmt.Errorf("create layout dump: %w", err)
	}
	defer f.Close()
	if err := DumpLayout(f, l); err != nil {
		return "", fmt.Errorf("write layout dump: %w", err)
	}
	return path, nil
}
