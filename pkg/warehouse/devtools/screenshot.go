package devtools

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"stockmap/pkg/warehouse/scene"
	"stockmap/pkg/warehouse/scene/svg"
	"stockmap/pkg/warehouse/session"
)

// SaveScreenshotSVG renders the session's current view to an SVG file in dir
// and returns its path
func SaveScreenshotSVG(s *session.Session, dir string) (string, error) {
	timestamp := time.Now().Format("20060102-150405")
	filename := filepath.Join(dir, fmt.Sprintf("screenshot-%s.svg", timestamp))

	doc, err := svg.Render(s.Viewport(), s.Frame(), scene.DefaultPalette)
	if err != nil {
		return "", err
	}
	if err := os.WriteFile(filename, []byte(doc), 0o644); err != nil {
		return "", fmt.Errorf("write screenshot: %w", err)
	}
	return filename, nil
}
