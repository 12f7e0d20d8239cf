package renderer

import (
	"stockmap/pkg/warehouse/session"
)

// Renderer defines the interface for map front ends.
// Implementations include the Ebiten window and the terminal (TUI).
type Renderer interface {
	// Init prepares the renderer (fonts, colors, terminal state)
	Init() error

	// Run drives the session until the operator quits
	Run(s *session.Session) error

	// ShowMessage puts a message on the status line
	ShowMessage(msg string)

	// GetViewportSize returns the current map canvas size in pixels
	GetViewportSize() (width, height int)
}

// Current holds the active renderer instance
var Current Renderer

// SetRenderer sets the active renderer
func SetRenderer(r Renderer) {
	Current = r
}

// Init initializes the current renderer
func Init() error {
	if Current != nil {
		return Current.Init()
	}
	return nil
}

// ShowMessage shows a message through the current renderer
func ShowMessage(msg string) {
	if Current != nil {
		Current.ShowMessage(msg)
	}
}

// GetViewportSize returns the canvas size of the current renderer
func GetViewportSize() (width, height int) {
	if Current != nil {
		return Current.GetViewportSize()
	}
	return 1280, 800 // sensible defaults
}
