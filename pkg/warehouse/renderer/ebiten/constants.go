package ebiten

import "image/color"

// UI chrome colors; the map itself uses scene.DefaultPalette
var (
	colorStatusBar       = color.RGBA{36, 40, 52, 255}    // Dark slate bar
	colorText            = color.RGBA{225, 230, 240, 255} // Off-white
	colorSubtle          = color.RGBA{150, 158, 180, 255} // Muted blue-gray
	colorWarning         = color.RGBA{255, 205, 90, 255}  // Amber
	colorDenied          = color.RGBA{255, 110, 110, 255} // Red
	colorPanelBackground = color.RGBA{30, 34, 46, 230}    // Semi-transparent dark
	colorPanelBorder     = color.RGBA{60, 130, 230, 255}  // Selection blue
	colorPrompt          = color.RGBA{180, 150, 250, 255} // Blue-purple
)

// Layout metrics in pixels
const (
	statusBarHeight = 28
	panelWidth      = 240
	panelPadding    = 12
	baseFontSize    = 14.0
	lineSpacing     = 1.4
)

// statusTTL is how long a status message stays before the help line returns
const statusTTL = 6000 // milliseconds
