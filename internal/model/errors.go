package model

import (
	"errors"
	"fmt"
)

// Precondition failures. Each one is detected before any numeric work starts
// so callers can render specific guidance.
var (
	ErrResolution      = errors.New("location not resolved")
	ErrEmptyFleet      = errors.New("no panels defined")
	ErrNoActivePanel   = errors.New("no active panel")
	ErrPanelNotReady   = errors.New("panel not parametrized")
	ErrGridUnavailable = errors.New("optimization grid not built for location")
	ErrNormalization   = errors.New("efficiency surface has no positive cell")
	ErrInvalidWeather  = errors.New("invalid weather profile")
	ErrInvalidPanel    = errors.New("invalid panel field")
	ErrPanelIndex      = errors.New("panel index out of range")
)

// PanelNotReadyError identifies the first active panel missing a required field.
type PanelNotReadyError struct {
	Index int
	Label string
}

func (e *PanelNotReadyError) Error() string {
	return fmt.Sprintf("panel %s (index %d): %v", e.Label, e.Index, ErrPanelNotReady)
}

func (e *PanelNotReadyError) Unwrap() error { return ErrPanelNotReady }

// ErrorKind returns a stable identifier for err, used by clients to pick a message.
// Unknown errors map to "internal".
func ErrorKind(err error) string {
	switch {
	case err == nil:
		return ""
	case errors.Is(err, ErrResolution):
		return "resolution"
	case errors.Is(err, ErrEmptyFleet):
		return "empty_fleet"
	case errors.Is(err, ErrNoActivePanel):
		return "no_active_panel"
	case errors.Is(err, ErrPanelNotReady):
		return "panel_not_ready"
	case errors.Is(err, ErrGridUnavailable):
		return "grid_unavailable"
	case errors.Is(err, ErrNormalization):
		return "normalization"
	case errors.Is(err, ErrInvalidWeather):
		return "invalid_weather"
	case errors.Is(err, ErrInvalidPanel):
		return "invalid_panel"
	case errors.Is(err, ErrPanelIndex):
		return "panel_index"
	default:
		return "internal"
	}
}

// Guidance returns the user-facing hint for a precondition error.
func Guidance(err error) string {
	switch ErrorKind(err) {
	case "resolution":
		return "Please define a location!"
	case "empty_fleet":
		return "Please add a new panel!"
	case "no_active_panel":
		return "Please activate at least one panel!"
	case "panel_not_ready":
		return "At least one panel is not parametrized!"
	case "grid_unavailable":
		return "Orientation grid is not available for this location yet."
	case "normalization":
		return "Weather factors are all zero, no orientation can be rated."
	default:
		return err.Error()
	}
}
