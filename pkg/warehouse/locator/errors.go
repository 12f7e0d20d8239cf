package locator

import (
	"errors"
	"fmt"
	"strings"

	"stockmap/pkg/i18n"
)

// ErrInvalidInput is returned for an empty or blank item code. It is a caller
// bug rather than a lookup outcome, so the current marker is left untouched.
var ErrInvalidInput = errors.New("locator: item code is empty")

// Kind classifies an expected locate failure
type Kind int

const (
	ItemNotFound Kind = iota + 1
	NoShelfAssigned
	ShelfNotFound
)

// String returns the kind name
func (k Kind) String() string {
	switch k {
	case ItemNotFound:
		return "ItemNotFound"
	case NoShelfAssigned:
		return "NoShelfAssigned"
	case ShelfNotFound:
		return "ShelfNotFound"
	default:
		return fmt.Sprintf("Kind(%d)", int(k))
	}
}

// Error is an expected locate failure, surfaced to the operator
type Error struct {
	Kind    Kind
	Code    string
	ShelfID string

	// Suggestions holds near-miss item codes for ItemNotFound
	Suggestions []string

	// Err is the lookup error that was treated as ItemNotFound, if any
	Err error
}

func (e *Error) Error() string {
	msg := fmt.Sprintf("locate %s: %s", e.Code, e.Kind)
	if e.ShelfID != "" {
		msg += " (shelf " + e.ShelfID + ")"
	}
	if e.Err != nil {
		msg += ": " + e.Err.Error()
	}
	return msg
}

func (e *Error) Unwrap() error {
	return e.Err
}

// Message is the localized, operator-facing text for the failure
func (e *Error) Message() string {
	var msg string
	switch e.Kind {
	case NoShelfAssigned:
		msg = i18n.Get("NO_SHELF_ASSIGNED", e.Code)
	case ShelfNotFound:
		msg = i18n.Get("SHELF_NOT_FOUND", e.ShelfID, e.Code)
	default:
		msg = i18n.Get("ITEM_NOT_FOUND", e.Code)
	}
	if len(e.Suggestions) > 0 {
		msg += ". " + i18n.Get("DID_YOU_MEAN", strings.Join(e.Suggestions, ", "))
	}
	return msg
}

// KindOf returns the failure kind of err, or 0 when err is not a locate failure
func KindOf(err error) Kind {
	var le *Error
	if errors.As(err, &le) {
		return le.Kind
	}
	return 0
}

// WarningKind classifies a locate that succeeded with a degraded point
type WarningKind int

const (
	// SlotMissing: the item has a shelf but no slot
	SlotMissing WarningKind = iota + 1
	// SlotUnknown: the recorded slot does not exist on the shelf
	SlotUnknown
	// SectorMismatch: the recorded sector is not the shelf's sector
	SectorMismatch
)

func (k WarningKind) String() string {
	switch k {
	case SlotMissing:
		return "SlotMissing"
	case SlotUnknown:
		return "SlotUnknown"
	case SectorMismatch:
		return "SectorMismatch"
	default:
		return fmt.Sprintf("WarningKind(%d)", int(k))
	}
}

// Warning reports recorded location data that did not match the layout
type Warning struct {
	Kind     WarningKind `json:"kind"`
	Recorded string      `json:"recorded,omitempty"`
	Actual   string      `json:"actual,omitempty"`
}

// Message is the localized text for the warning
func (w Warning) Message() string {
	switch w.Kind {
	case SlotMissing:
		return i18n.Get("SLOT_MISSING")
	case SlotUnknown:
		return i18n.Get("SLOT_UNKNOWN", w.Recorded, w.Actual)
	case SectorMismatch:
		return i18n.Get("SECTOR_MISMATCH", w.Recorded, w.Actual)
	}
	return w.Kind.String()
}
