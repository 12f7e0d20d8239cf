// Package tui renders the warehouse map as colored character cells and drives
// it from typed commands.
package tui

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log"
	"os"
	"strings"
	"sync"
	"time"

	"github.com/gookit/color"

	"stockmap/pkg/engine/geom"
	"stockmap/pkg/engine/input"
	"stockmap/pkg/engine/terminal"
	"stockmap/pkg/i18n"
	"stockmap/pkg/warehouse/layout"
	"stockmap/pkg/warehouse/renderer"
	"stockmap/pkg/warehouse/scene"
	"stockmap/pkg/warehouse/session"
	"stockmap/pkg/warehouse/viewport"
)

// Rows kept free below the map: status, up to four detail lines, prompt
const reservedRows = 7

// locateTimeout bounds one inventory lookup
const locateTimeout = 10 * time.Second

// TUIRenderer is the terminal-based renderer implementation
type TUIRenderer struct {
	colorTitle   color.Style
	colorInfo    color.Style
	colorWarning color.Style
	colorDenied  color.Style
	colorSubtle  color.Style
	colorPrompt  color.Style

	reader *input.Reader
	out    io.Writer

	// fixed grid size; zero means follow the terminal
	cols, rows int
	lastCols   int
	lastRows   int

	mu       sync.Mutex
	status   renderer.Status
	showKeys bool
}

// Verify interface compliance
var _ renderer.Renderer = (*TUIRenderer)(nil)

// New creates a new TUI renderer on stdin/stdout
func New() *TUIRenderer {
	return &TUIRenderer{reader: input.NewReader(), out: os.Stdout}
}

// NewWithIO creates a TUI renderer over arbitrary streams with a fixed grid
func NewWithIO(in *os.File, out io.Writer, cols, rows int) *TUIRenderer {
	return &TUIRenderer{reader: input.NewReaderFrom(in, out), out: out, cols: cols, rows: rows}
}

// Init initializes the TUI renderer (colors, etc.)
func (t *TUIRenderer) Init() error {
	t.colorTitle = color.Style{color.FgBlue, color.OpBold}
	t.colorInfo = color.Style{color.FgGreen}
	t.colorWarning = color.Style{color.FgYellow, color.OpBold}
	t.colorDenied = color.Style{color.FgRed, color.OpBold}
	t.colorSubtle = color.Style{color.FgGray, color.OpBold}
	t.colorPrompt = color.Style{color.FgMagenta}
	return nil
}

// ShowMessage sets the status line
func (t *TUIRenderer) ShowMessage(msg string) {
	t.setStatus(renderer.Status{Text: msg})
}

func (t *TUIRenderer) setStatus(st renderer.Status) {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.status = st
}

func (t *TUIRenderer) takeStatus() renderer.Status {
	t.mu.Lock()
	defer t.mu.Unlock()
	st := t.status
	t.status = renderer.Status{}
	return st
}

// GetViewportSize returns the map canvas size in grid pixels
func (t *TUIRenderer) GetViewportSize() (width, height int) {
	cols, rows := t.gridSize()
	return int(float64(cols) * CellWidth), int(float64(rows) * CellHeight)
}

func (t *TUIRenderer) gridSize() (cols, rows int) {
	if t.cols > 0 && t.rows > 0 {
		return t.cols, t.rows
	}
	return terminal.MapArea(reservedRows)
}

// Run reads commands until quit or end of input
func (t *TUIRenderer) Run(s *session.Session) error {
	s.OnShelfSelected(func(shelf layout.Shelf) {
		t.ShowMessage(fmt.Sprintf("%s %s", i18n.Get("SHELF"), shelf.ID))
	})
	t.ShowMessage(i18n.Get("TUI_HELP"))

	for {
		if err := t.RenderFrame(s); err != nil {
			return err
		}
		fmt.Fprint(t.out, t.colorPrompt.Sprint("> "))

		line, err := t.reader.ReadCommand()
		if errors.Is(err, io.EOF) {
			return nil
		}
		if err != nil {
			return fmt.Errorf("read command: %w", err)
		}
		cmd, err := ParseCommand(line)
		if err != nil {
			t.setStatus(renderer.Status{Text: err.Error(), Severity: renderer.SeverityWarning})
			continue
		}
		if !t.Execute(s, cmd) {
			return nil
		}
	}
}

// Execute applies one command; it returns false when the operator quits
func (t *TUIRenderer) Execute(s *session.Session, cmd Command) bool {
	switch cmd.Kind {
	case CmdIntent:
		return t.applyIntent(s, cmd.Intent)
	case CmdLocate:
		ctx, cancel := context.WithTimeout(context.Background(), locateTimeout)
		defer cancel()
		res, err := s.Locate(ctx, cmd.Arg)
		if err != nil {
			log.Printf("[LOCATE] %s: %v", cmd.Arg, err)
		}
		t.setStatus(renderer.LocateStatus(res, err))
	case CmdSelect:
		if _, ok := s.SelectShelf(cmd.Arg); !ok {
			t.setStatus(renderer.Status{Text: i18n.Get("UNKNOWN_SHELF", cmd.Arg), Severity: renderer.SeverityWarning})
		}
	case CmdClick:
		pt := CellCenter(cmd.Col, cmd.Row)
		s.PointerDown(pt)
		s.PointerUp(pt)
	case CmdZoom:
		dir := viewport.ZoomOut
		if cmd.In {
			dir = viewport.ZoomIn
		}
		if cmd.At {
			s.Wheel(CellCenter(cmd.Col, cmd.Row), dir)
		} else {
			s.ZoomCenter(dir)
		}
	case CmdPan:
		s.PanBy(geom.Pt(cmd.DX, cmd.DY))
	case CmdReset:
		return t.applyIntent(s, input.Intent{Action: input.ActionResetView})
	case CmdClear:
		s.DismissSelection()
		s.DismissMarker()
	case CmdHelp:
		t.help()
	case CmdQuit:
		return false
	}
	return true
}

// help shows the command summary and, on the next frame, the key bindings
func (t *TUIRenderer) help() {
	t.ShowMessage(i18n.Get("TUI_HELP"))
	t.mu.Lock()
	t.showKeys = true
	t.mu.Unlock()
}

func (t *TUIRenderer) takeShowKeys() bool {
	t.mu.Lock()
	defer t.mu.Unlock()
	show := t.showKeys
	t.showKeys = false
	return show
}

func (t *TUIRenderer) applyIntent(s *session.Session, intent input.Intent) bool {
	if dx, dy, ok := input.PanDelta(intent.Action); ok {
		s.PanBy(geom.Pt(dx, dy))
		return true
	}
	switch intent.Action {
	case input.ActionZoomIn:
		s.ZoomCenter(viewport.ZoomIn)
	case input.ActionZoomOut:
		s.ZoomCenter(viewport.ZoomOut)
	case input.ActionResetView:
		if err := s.ResetView(); err != nil {
			t.setStatus(renderer.Status{Text: err.Error(), Severity: renderer.SeverityError})
		}
	case input.ActionDismiss:
		if s.Interaction().SelectedShelf != nil {
			s.DismissSelection()
		} else {
			s.DismissMarker()
		}
	case input.ActionHelp, input.ActionSearch:
		t.help()
	case input.ActionQuit:
		return false
	}
	return true
}

// RenderFrame draws the map, the status line and the shelf detail
func (t *TUIRenderer) RenderFrame(s *session.Session) error {
	cols, rows := t.gridSize()
	if cols != t.lastCols || rows != t.lastRows {
		w, h := t.GetViewportSize()
		if err := s.Resize(geom.Sz(float64(w), float64(h))); err != nil {
			return fmt.Errorf("fit map to terminal: %w", err)
		}
		t.lastCols, t.lastRows = cols, rows
	}

	grid := NewGrid(cols, rows)
	frame := s.Frame()
	scene.Render(grid, frame, scene.DefaultPalette)

	var b strings.Builder
	if terminal.IsInteractive() {
		b.WriteString("\033[H\033[2J")
	}
	b.WriteString(t.colorTitle.Sprint(frame.Layout.Name()))
	b.WriteString("  ")
	b.WriteString(t.colorSubtle.Sprint(renderer.ZoomLabel(frame.View)))
	b.WriteString("\n")
	b.WriteString(grid.String())

	if st := t.takeStatus(); st.Text != "" {
		b.WriteString(t.styleFor(st.Severity).Sprint(st.Text))
		b.WriteString("\n")
	}
	if sel := frame.Interaction.SelectedShelf; sel != nil {
		for _, line := range renderer.ShelfDetail(frame.Layout, *sel) {
			b.WriteString(t.colorSubtle.Sprint(line))
			b.WriteString("\n")
		}
	}
	if t.takeShowKeys() {
		b.WriteString(t.colorTitle.Sprint(i18n.Get("KEYS")))
		b.WriteString("\n")
		for _, line := range renderer.KeyHelp() {
			b.WriteString("  " + line + "\n")
		}
	}
	_, err := io.WriteString(t.out, b.String())
	return err
}

func (t *TUIRenderer) styleFor(sev renderer.Severity) color.Style {
	switch sev {
	case renderer.SeverityWarning:
		return t.colorWarning
	case renderer.SeverityError:
		return t.colorDenied
	}
	return t.colorInfo
}
