// Package ebiten provides the Ebiten-based graphical map window.
package ebiten

import (
	"context"
	"fmt"
	"log"
	"sync"
	"time"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/text/v2"

	engineinput "stockmap/pkg/engine/input"
	"stockmap/pkg/i18n"
	"stockmap/pkg/warehouse/animator"
	"stockmap/pkg/warehouse/layout"
	"stockmap/pkg/warehouse/locator"
	"stockmap/pkg/warehouse/renderer"
	"stockmap/pkg/warehouse/session"
)

// locateOutcome carries a finished locate back to the frame loop
type locateOutcome struct {
	res locator.Result
	err error
}

// EbitenRenderer is the Ebiten-based graphical renderer
type EbitenRenderer struct {
	// Window dimensions
	windowWidth  int
	windowHeight int

	session *session.Session
	sched   *animator.FrameScheduler

	// Font sources for text rendering
	sansFontSource     *text.GoTextFaceSource
	sansBoldFontSource *text.GoTextFaceSource
	monoFontSource     *text.GoTextFaceSource

	// Cached font faces
	cachedFaces        map[float64]*text.GoTextFace
	cachedSansBoldFace *text.GoTextFace
	cachedMonoFace     *text.GoTextFace

	// Status line, written from locate goroutines and listeners
	statusMutex sync.Mutex
	status      renderer.Status
	statusAt    int64 // Unix milliseconds when status was set

	// Search prompt
	searching bool
	query     []rune

	showHelp bool

	results   chan locateOutcome
	debouncer *engineinput.Debouncer

	lastUpdate         time.Time
	pointerInside      bool
	hoverSector        string
	windowOpenedLogged bool
	quit               bool
	screenshotDir      string
}

// Verify interface compliance
var _ renderer.Renderer = (*EbitenRenderer)(nil)

// New creates a new Ebiten renderer. sched must be the scheduler the session's
// animator runs on; the renderer advances it once per frame.
func New(sched *animator.FrameScheduler, width, height int) *EbitenRenderer {
	return &EbitenRenderer{
		windowWidth:  width,
		windowHeight: height,
		sched:        sched,
		cachedFaces:  make(map[float64]*text.GoTextFace),
		results:      make(chan locateOutcome, 8),
		debouncer:    engineinput.NewDebouncer(),
	}
}

// Init loads fonts and configures the window
func (e *EbitenRenderer) Init() error {
	if err := e.loadFontSources(); err != nil {
		return err
	}
	ebiten.SetWindowSize(e.windowWidth, e.windowHeight)
	ebiten.SetWindowTitle("stockmap")
	ebiten.SetWindowResizingMode(ebiten.WindowResizingModeEnabled)
	return nil
}

// Run starts the Ebiten game loop; it returns when the window is closed
func (e *EbitenRenderer) Run(s *session.Session) error {
	e.session = s
	s.OnShelfSelected(func(shelf layout.Shelf) {
		e.ShowMessage(fmt.Sprintf("%s %s", i18n.Get("SHELF"), shelf.ID))
	})
	if err := s.Resize(e.mapSize()); err != nil {
		return fmt.Errorf("initial fit: %w", err)
	}

	e.lastUpdate = time.Now()
	if err := ebiten.RunGame(e); err != nil && err != ebiten.Termination {
		return err
	}
	return nil
}

// ShowMessage puts a message on the status bar
func (e *EbitenRenderer) ShowMessage(msg string) {
	e.setStatus(renderer.Status{Text: msg})
}

func (e *EbitenRenderer) setStatus(st renderer.Status) {
	e.statusMutex.Lock()
	defer e.statusMutex.Unlock()
	e.status = st
	e.statusAt = time.Now().UnixMilli()
}

func (e *EbitenRenderer) currentStatus() (renderer.Status, bool) {
	e.statusMutex.Lock()
	defer e.statusMutex.Unlock()
	if e.status.Text == "" || time.Now().UnixMilli()-e.statusAt > statusTTL {
		return renderer.Status{}, false
	}
	return e.status, true
}

// GetViewportSize returns the map canvas size (window minus status bar)
func (e *EbitenRenderer) GetViewportSize() (width, height int) {
	return e.windowWidth, e.windowHeight - statusBarHeight
}

// SetScreenshotDir sets where F12 screenshots are written
func (e *EbitenRenderer) SetScreenshotDir(dir string) {
	e.screenshotDir = dir
}

// startLocate runs a locate off the frame loop; the session applies the
// result and the outcome comes back through e.results
func (e *EbitenRenderer) startLocate(code string) {
	s := e.session
	go func() {
		ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		res, err := s.Locate(ctx, code)
		if err != nil {
			log.Printf("[LOCATE] %s: %v", code, err)
		}
		e.results <- locateOutcome{res: res, err: err}
	}()
}
