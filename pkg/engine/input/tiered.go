package input

import (
	"fmt"
	"sort"
	"strings"
	"time"
)

// Device represents a physical input source.
type Device int

const (
	DeviceUnknown Device = iota
	DeviceKeyboard
	DevicePointer
	DeviceTerminal
)

// Action represents a high-level intent on the map.
type Action int

const (
	ActionNone Action = iota

	// Camera
	ActionPanUp
	ActionPanDown
	ActionPanLeft
	ActionPanRight
	ActionZoomIn
	ActionZoomOut
	ActionResetView

	// Map / UI
	ActionSearch  // Open the item search prompt
	ActionDismiss // Close shelf detail, then clear the marker
	ActionHelp
	ActionScreenshot
	ActionQuit
)

// PanStep is how far (in screen pixels) one pan action moves the view
const PanStep = 60.0

// Intent is the 4th-layer, high-level description of what the operator wants to do.
type Intent struct {
	Action Action
}

// RawInput is the 1st-layer event emitted directly from an input device.
// Code is a device-specific identifier (e.g. "arrow_up", "escape", "+").
type RawInput struct {
	Device    Device
	Code      string
	Timestamp time.Time
}

// DebouncedInput is the 2nd-layer representation after debouncing.
// Repeats closer together than RepeatInterval are dropped by a Debouncer.
type DebouncedInput struct {
	Device Device
	Code   string
}

// RepeatInterval is the minimum spacing between two accepted presses of one code
const RepeatInterval = 40 * time.Millisecond

// Debouncer suppresses key-repeat bursts per code
type Debouncer struct {
	last map[string]time.Time
}

// NewDebouncer creates an empty debouncer
func NewDebouncer() *Debouncer {
	return &Debouncer{last: make(map[string]time.Time)}
}

// Accept converts a raw event to a debounced one; ok is false for a repeat
// that arrived within RepeatInterval of the previous accepted press.
func (d *Debouncer) Accept(raw RawInput) (DebouncedInput, bool) {
	if prev, seen := d.last[raw.Code]; seen && raw.Timestamp.Sub(prev) < RepeatInterval {
		return DebouncedInput{}, false
	}
	d.last[raw.Code] = raw.Timestamp
	return NewDebouncedInput(raw), true
}

// NewDebouncedInput converts a raw event without repeat suppression.
func NewDebouncedInput(raw RawInput) DebouncedInput {
	return DebouncedInput{
		Device: raw.Device,
		Code:   raw.Code,
	}
}

// bindings maps raw codes to actions (3rd-layer bindings).
// Multiple codes may point to the same Action.
var bindings = map[string]Action{
	// Pan (arrows, WASD, Vim)
	"arrow_up":    ActionPanUp,
	"w":           ActionPanUp,
	"k":           ActionPanUp,
	"arrow_down":  ActionPanDown,
	"s":           ActionPanDown,
	"j":           ActionPanDown,
	"arrow_left":  ActionPanLeft,
	"a":           ActionPanLeft,
	"h":           ActionPanLeft,
	"arrow_right": ActionPanRight,
	"d":           ActionPanRight,
	"l":           ActionPanRight,

	// Zoom
	"=":               ActionZoomIn,
	"+":               ActionZoomIn,
	"numpad_add":      ActionZoomIn,
	"-":               ActionZoomOut,
	"numpad_subtract": ActionZoomOut,
	"0":               ActionResetView,
	"home":            ActionResetView,

	// Search / dismiss
	"/":      ActionSearch,
	"f":      ActionSearch,
	"escape": ActionDismiss,

	"?":          ActionHelp,
	"f12":        ActionScreenshot,
	"screenshot": ActionScreenshot,
	"q":          ActionQuit,
	"quit":       ActionQuit,
}

// reserved codes always keep their binding
var reserved = map[string]bool{
	"arrow_up": true, "arrow_down": true, "arrow_left": true, "arrow_right": true,
	"escape": true, "/": true,
}

// MapToIntent is the 3rd+4th layer: it applies the current bindings to a
// debounced input and returns a high-level Intent.
func MapToIntent(ev DebouncedInput) Intent {
	if act, ok := bindings[ev.Code]; ok {
		return Intent{Action: act}
	}
	return Intent{Action: ActionNone}
}

// PanDelta returns the screen-space pan for a pan action. Panning "up" reveals
// what is above, so the content moves down.
func PanDelta(a Action) (dx, dy float64, ok bool) {
	switch a {
	case ActionPanUp:
		return 0, PanStep, true
	case ActionPanDown:
		return 0, -PanStep, true
	case ActionPanLeft:
		return PanStep, 0, true
	case ActionPanRight:
		return -PanStep, 0, true
	}
	return 0, 0, false
}

// ActionName returns a human-friendly name for an action.
func ActionName(a Action) string {
	switch a {
	case ActionPanUp:
		return "Pan Up"
	case ActionPanDown:
		return "Pan Down"
	case ActionPanLeft:
		return "Pan Left"
	case ActionPanRight:
		return "Pan Right"
	case ActionZoomIn:
		return "Zoom In"
	case ActionZoomOut:
		return "Zoom Out"
	case ActionResetView:
		return "Reset View"
	case ActionSearch:
		return "Search"
	case ActionDismiss:
		return "Dismiss"
	case ActionHelp:
		return "Help"
	case ActionScreenshot:
		return "Screenshot"
	case ActionQuit:
		return "Quit"
	default:
		return "None"
	}
}

// GetBindingsByAction returns the current bindings grouped by action.
func GetBindingsByAction() map[Action][]string {
	result := make(map[Action][]string)
	for code, act := range bindings {
		result[act] = append(result[act], code)
	}
	// Stable ordering so help text doesn't flicker
	for act, codes := range result {
		sort.Strings(codes)
		result[act] = codes
	}
	return result
}

// SetSingleBinding replaces all non-reserved bindings for the given action with a single code.
func SetSingleBinding(action Action, code string) {
	for c, a := range bindings {
		if reserved[c] {
			continue
		}
		if a == action {
			delete(bindings, c)
		}
	}
	if code != "" && !reserved[code] {
		bindings[code] = action
	}
}

// ActionByName resolves an action from its name, ignoring case and spaces
// ("zoomin", "Zoom In" and "zoom_in" all work).
func ActionByName(name string) (Action, bool) {
	want := normalizeActionName(name)
	for a := ActionPanUp; a <= ActionQuit; a++ {
		if normalizeActionName(ActionName(a)) == want {
			return a, true
		}
	}
	return ActionNone, false
}

func normalizeActionName(s string) string {
	s = strings.ToLower(s)
	return strings.NewReplacer(" ", "", "_", "", "-", "").Replace(s)
}

// ApplyBindings rebinds actions from a comma-separated list of action=code
// pairs, e.g. "zoomin=z,zoomout=x". Each pair goes through SetSingleBinding.
func ApplyBindings(list string) error {
	for _, pair := range strings.Split(list, ",") {
		pair = strings.TrimSpace(pair)
		if pair == "" {
			continue
		}
		name, code, ok := strings.Cut(pair, "=")
		if !ok || strings.TrimSpace(code) == "" {
			return fmt.Errorf("binding %q: want action=code", pair)
		}
		action, ok := ActionByName(name)
		if !ok {
			return fmt.Errorf("binding %q: unknown action %q", pair, name)
		}
		SetSingleBinding(action, strings.TrimSpace(code))
	}
	return nil
}
