// Package terminal reports the size of the controlling terminal
package terminal

import (
	"os"

	"golang.org/x/term"
)

const (
	DefaultWidth  = 80
	DefaultHeight = 24
)

// CellAspect is the height/width ratio of one character cell; the TUI map uses
// it so that squares look square.
const CellAspect = 2.0

// GetSize returns the current terminal width and height in cells.
// Falls back to defaults if the size cannot be determined.
func GetSize() (width, height int) {
	width, height, err := term.GetSize(int(os.Stdout.Fd()))
	if err != nil || width <= 0 || height <= 0 {
		return DefaultWidth, DefaultHeight
	}
	return width, height
}

// MapArea returns the cells available for the map after reserving rows for
// the status and prompt lines
func MapArea(reservedRows int) (cols, rows int) {
	cols, rows = GetSize()
	rows -= reservedRows
	if rows < 4 {
		rows = 4
	}
	return cols, rows
}

// IsInteractive reports whether stdout is a terminal
func IsInteractive() bool {
	return term.IsTerminal(int(os.Stdout.Fd()))
}
