package ebiten

import (
	"log"
	"time"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"

	"stockmap/pkg/engine/geom"
	engineinput "stockmap/pkg/engine/input"
	"stockmap/pkg/warehouse/devtools"
	"stockmap/pkg/warehouse/renderer"
	"stockmap/pkg/warehouse/viewport"
)

// keyCodes maps watched Ebiten keys to the raw codes the binding table uses
var keyCodes = map[ebiten.Key]string{
	ebiten.KeyArrowUp:        "arrow_up",
	ebiten.KeyArrowDown:      "arrow_down",
	ebiten.KeyArrowLeft:      "arrow_left",
	ebiten.KeyArrowRight:     "arrow_right",
	ebiten.KeyW:              "w",
	ebiten.KeyA:              "a",
	ebiten.KeyS:              "s",
	ebiten.KeyD:              "d",
	ebiten.KeyH:              "h",
	ebiten.KeyJ:              "j",
	ebiten.KeyK:              "k",
	ebiten.KeyL:              "l",
	ebiten.KeyEqual:          "=",
	ebiten.KeyMinus:          "-",
	ebiten.KeyNumpadAdd:      "numpad_add",
	ebiten.KeyNumpadSubtract: "numpad_subtract",
	ebiten.Key0:              "0",
	ebiten.KeyHome:           "home",
	ebiten.KeySlash:          "/",
	ebiten.KeyF:              "f",
	ebiten.KeyEscape:         "escape",
	ebiten.KeyF1:             "?",
	ebiten.KeyF12:            "f12",
	ebiten.KeyQ:              "q",
}

// Update handles input and advances animation (Ebiten interface)
func (e *EbitenRenderer) Update() error {
	if !e.windowOpenedLogged {
		e.windowOpenedLogged = true
		w, h := ebiten.WindowSize()
		log.Printf("Map window opened (%dx%d)", w, h)
	}
	if e.quit {
		return ebiten.Termination
	}

	now := time.Now()
	dt := now.Sub(e.lastUpdate)
	e.lastUpdate = now
	e.sched.Advance(dt)
	e.session.Advance(dt)

	e.drainResults()

	if e.searching {
		e.handleSearchInput()
		return nil
	}
	e.handlePointer()
	e.handleKeys(now)
	return nil
}

// Layout refits the map when the window size changes (Ebiten interface)
func (e *EbitenRenderer) Layout(outsideWidth, outsideHeight int) (int, int) {
	if outsideWidth != e.windowWidth || outsideHeight != e.windowHeight {
		e.windowWidth, e.windowHeight = outsideWidth, outsideHeight
		if e.session != nil {
			if err := e.session.Resize(e.mapSize()); err != nil {
				log.Printf("Resize to %dx%d failed: %v", outsideWidth, outsideHeight, err)
			}
		}
	}
	return outsideWidth, outsideHeight
}

func (e *EbitenRenderer) mapSize() geom.Size {
	w, h := e.GetViewportSize()
	return geom.Sz(float64(w), float64(h))
}

// drainResults picks up finished locates without blocking the frame
func (e *EbitenRenderer) drainResults() {
	for {
		select {
		case out := <-e.results:
			e.setStatus(renderer.LocateStatus(out.res, out.err))
		default:
			return
		}
	}
}

func (e *EbitenRenderer) handlePointer() {
	x, y := ebiten.CursorPosition()
	pt := geom.Pt(float64(x), float64(y))
	inside := pt.Y < e.mapSize().H && x >= 0 && y >= 0 && float64(x) < e.mapSize().W

	if !inside {
		if e.pointerInside {
			e.pointerInside = false
			e.hoverSector = ""
			e.session.PointerLeave()
		}
		if inpututil.IsMouseButtonJustReleased(ebiten.MouseButtonLeft) {
			e.session.PointerCancel()
		}
		return
	}
	e.pointerInside = true
	e.hoverSector = ""
	if sec, ok := e.session.SectorAt(pt); ok {
		e.hoverSector = sec.Name
		if e.hoverSector == "" {
			e.hoverSector = sec.ID
		}
	}

	if inpututil.IsMouseButtonJustPressed(ebiten.MouseButtonLeft) {
		e.session.PointerDown(pt)
	}
	e.session.PointerMove(pt)
	if inpututil.IsMouseButtonJustReleased(ebiten.MouseButtonLeft) {
		e.session.PointerUp(pt)
	}

	if _, dy := ebiten.Wheel(); dy != 0 {
		if dir, ok := wheelDirection(dy); ok {
			e.session.Wheel(pt, dir)
		}
	}
}

// wheelDirection maps a wheel delta to a zoom step; scrolling up zooms in
func wheelDirection(dy float64) (viewport.Direction, bool) {
	switch {
	case dy > 0:
		return viewport.ZoomIn, true
	case dy < 0:
		return viewport.ZoomOut, true
	}
	return viewport.ZoomIn, false
}

func (e *EbitenRenderer) handleKeys(now time.Time) {
	// Shift+= arrives as KeyEqual, which is already bound to zoom in
	for key, code := range keyCodes {
		pressed := inpututil.IsKeyJustPressed(key)
		if !pressed && isRepeatable(code) {
			pressed = ebiten.IsKeyPressed(key)
		}
		if !pressed {
			continue
		}
		ev, ok := e.debouncer.Accept(engineinput.RawInput{Device: engineinput.DeviceKeyboard, Code: code, Timestamp: now})
		if !ok {
			continue
		}
		e.apply(engineinput.MapToIntent(ev))
	}
}

// isRepeatable reports whether holding the key keeps acting
func isRepeatable(code string) bool {
	switch code {
	case "arrow_up", "arrow_down", "arrow_left", "arrow_right", "w", "a", "s", "d", "h", "j", "k", "l":
		return true
	}
	return false
}

func (e *EbitenRenderer) apply(intent engineinput.Intent) {
	if dx, dy, ok := engineinput.PanDelta(intent.Action); ok {
		e.session.PanBy(geom.Pt(dx, dy))
		return
	}
	switch intent.Action {
	case engineinput.ActionZoomIn:
		e.session.ZoomCenter(viewport.ZoomIn)
	case engineinput.ActionZoomOut:
		e.session.ZoomCenter(viewport.ZoomOut)
	case engineinput.ActionResetView:
		if err := e.session.ResetView(); err != nil {
			log.Printf("Reset view failed: %v", err)
		}
	case engineinput.ActionSearch:
		e.searching = true
		e.query = e.query[:0]
	case engineinput.ActionDismiss:
		// First escape closes the shelf detail, the next one clears the marker
		if e.session.Interaction().SelectedShelf != nil {
			e.session.DismissSelection()
		} else {
			e.session.DismissMarker()
		}
	case engineinput.ActionHelp:
		e.showHelp = !e.showHelp
	case engineinput.ActionScreenshot:
		path, err := devtools.SaveScreenshotSVG(e.session, e.screenshotDir)
		if err != nil {
			e.setStatus(renderer.Status{Text: err.Error(), Severity: renderer.SeverityError})
			return
		}
		e.ShowMessage(path)
	case engineinput.ActionQuit:
		e.quit = true
	}
}

// handleSearchInput collects the item code typed into the prompt
func (e *EbitenRenderer) handleSearchInput() {
	e.query = ebiten.AppendInputChars(e.query)

	switch {
	case inpututil.IsKeyJustPressed(ebiten.KeyEscape):
		e.searching = false
		e.query = e.query[:0]
	case inpututil.IsKeyJustPressed(ebiten.KeyBackspace):
		if len(e.query) > 0 {
			e.query = e.query[:len(e.query)-1]
		}
	case inpututil.IsKeyJustPressed(ebiten.KeyEnter), inpututil.IsKeyJustPressed(ebiten.KeyNumpadEnter):
		code := string(e.query)
		e.searching = false
		e.query = e.query[:0]
		e.startLocate(code)
	}
}
