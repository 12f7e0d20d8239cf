package ebiten

import (
	"fmt"
	"image/color"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/text/v2"
	"github.com/hajimehoshi/ebiten/v2/vector"

	"stockmap/pkg/i18n"
	"stockmap/pkg/warehouse/renderer"
	"stockmap/pkg/warehouse/scene"
)

// Draw renders the map and the UI chrome (Ebiten interface)
func (e *EbitenRenderer) Draw(screen *ebiten.Image) {
	if e.session == nil {
		return
	}
	frame := e.session.Frame()

	canvas := &screenCanvas{dst: screen, size: e.mapSize(), face: e.faceForSize}
	scene.Render(canvas, frame, scene.DefaultPalette)

	if sel := frame.Interaction.SelectedShelf; sel != nil {
		e.drawPanel(screen, e.windowWidth-panelWidth-panelPadding, renderer.ShelfDetail(frame.Layout, *sel))
	}
	if e.showHelp {
		e.drawPanel(screen, panelPadding, append([]string{i18n.Get("KEYS")}, renderer.KeyHelp()...))
	}
	e.drawStatusBar(screen, renderer.ZoomLabel(frame.View))
}

// drawPanel draws a boxed list of lines at the top of the map; the first line is the title
func (e *EbitenRenderer) drawPanel(screen *ebiten.Image, left int, lines []string) {
	face := e.getSansFontFace()
	lineH := baseFontSize * lineSpacing
	h := float32(panelPadding*2) + float32(lineH)*float32(len(lines))
	x := float32(left)
	y := float32(panelPadding)

	vector.DrawFilledRect(screen, x, y, panelWidth, h, colorPanelBackground, false)
	vector.StrokeRect(screen, x, y, panelWidth, h, 1.5, colorPanelBorder, false)

	for i, line := range lines {
		f := face
		if i == 0 {
			f = e.getSansBoldFontFace()
		}
		drawText(screen, line, f, float64(x)+panelPadding, float64(y)+panelPadding+float64(i)*lineH, colorText)
	}
}

func (e *EbitenRenderer) drawStatusBar(screen *ebiten.Image, zoom string) {
	top := float32(e.windowHeight - statusBarHeight)
	vector.DrawFilledRect(screen, 0, top, float32(e.windowWidth), statusBarHeight, colorStatusBar, false)
	textY := float64(top) + (statusBarHeight-baseFontSize)/2 - 1

	face := e.getSansFontFace()
	right := zoom
	if e.hoverSector != "" {
		right = e.hoverSector + "  " + zoom
	}
	rightW, _ := text.Measure(right, face, 0)
	drawText(screen, right, face, float64(e.windowWidth)-rightW-panelPadding, textY, colorSubtle)

	if e.searching {
		prompt := fmt.Sprintf("%s: %s_", i18n.Get("SEARCH_PROMPT"), string(e.query))
		drawText(screen, prompt, e.getMonoFontFace(), panelPadding, textY, colorPrompt)
		return
	}
	if st, ok := e.currentStatus(); ok {
		drawText(screen, st.Text, face, panelPadding, textY, severityColor(st.Severity))
		return
	}
	drawText(screen, i18n.Get("HELP_LINE"), face, panelPadding, textY, colorSubtle)
}

func severityColor(s renderer.Severity) color.RGBA {
	switch s {
	case renderer.SeverityWarning:
		return colorWarning
	case renderer.SeverityError:
		return colorDenied
	}
	return colorText
}

// drawText draws s with its top-left corner at (x, y)
func drawText(dst *ebiten.Image, s string, face text.Face, x, y float64, clr color.Color) {
	op := &text.DrawOptions{}
	op.GeoM.Translate(x, y)
	op.ColorScale.ScaleWithColor(clr)
	text.Draw(dst, s, face, op)
}
