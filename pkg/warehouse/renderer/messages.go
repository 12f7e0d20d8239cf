// Package renderer holds what every map front end shares: the Renderer
// interface and the operator-facing text for locate results and shelf details.
package renderer

import (
	"errors"
	"fmt"
	"strings"

	"stockmap/pkg/engine/input"
	"stockmap/pkg/i18n"
	"stockmap/pkg/warehouse/layout"
	"stockmap/pkg/warehouse/locator"
	"stockmap/pkg/warehouse/viewport"
)

// Severity of a status message
type Severity int

const (
	SeverityInfo Severity = iota
	SeverityWarning
	SeverityError
)

// Status is one line for the status bar
type Status struct {
	Text     string
	Severity Severity
}

// LocateStatus turns a locate outcome into a status line
func LocateStatus(res locator.Result, err error) Status {
	var le *locator.Error
	switch {
	case errors.Is(err, locator.ErrInvalidInput):
		return Status{Text: i18n.Get("INVALID_INPUT"), Severity: SeverityWarning}
	case errors.As(err, &le):
		return Status{Text: le.Message(), Severity: SeverityError}
	case err != nil:
		return Status{Text: err.Error(), Severity: SeverityError}
	}

	text := i18n.Get("LOCATED", res.Label)
	if len(res.Warnings) == 0 {
		return Status{Text: text}
	}
	msgs := make([]string, 0, len(res.Warnings))
	for _, w := range res.Warnings {
		msgs = append(msgs, w.Message())
	}
	return Status{Text: text + ". " + strings.Join(msgs, "; "), Severity: SeverityWarning}
}

// ShelfDetail returns the lines of the shelf detail panel
func ShelfDetail(l *layout.Layout, shelf layout.Shelf) []string {
	sectorName := shelf.SectorID
	if sec, ok := l.GetSector(shelf.SectorID); ok {
		sectorName = sec.Name
	}
	lines := []string{
		fmt.Sprintf("%s %s", i18n.Get("SHELF"), shelf.ID),
		fmt.Sprintf("%s: %s", i18n.Get("SECTOR"), sectorName),
	}
	names := shelf.SlotNames()
	if len(names) == 0 {
		return lines
	}
	lines = append(lines, fmt.Sprintf("%s (%d):", i18n.Get("SLOTS"), len(names)))
	// slots wrap six to a line
	for i := 0; i < len(names); i += 6 {
		end := i + 6
		if end > len(names) {
			end = len(names)
		}
		lines = append(lines, "  "+strings.Join(names[i:end], " "))
	}
	return lines
}

// ZoomLabel renders the scale as a percentage
func ZoomLabel(s viewport.State) string {
	return fmt.Sprintf("%s %d%%", i18n.Get("ZOOM"), int(s.Scale*100+0.5))
}

// KeyHelp lists the current key bindings, one action per line
func KeyHelp() []string {
	byAction := input.GetBindingsByAction()
	var lines []string
	for a := input.ActionPanUp; a <= input.ActionQuit; a++ {
		codes := byAction[a]
		if len(codes) == 0 {
			continue
		}
		lines = append(lines, fmt.Sprintf("%-12s %s", input.ActionName(a), strings.Join(codes, ", ")))
	}
	return lines
}
