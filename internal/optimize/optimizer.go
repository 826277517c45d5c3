// Package optimize finds the best free panel angle on an efficiency surface.
package optimize

import (
	"fmt"
	"math"

	"pv_yield/internal/model"
	"pv_yield/internal/surface"
)

// Axis selects the angle being optimized.
type Axis int

const (
	Azimuth Axis = iota
	Tilt
)

func (a Axis) String() string {
	if a == Tilt {
		return "tilt"
	}
	return "azimuth"
}

// ParseAxis accepts "azimuth" or "tilt".
func ParseAxis(s string) (Axis, error) {
	switch s {
	case "azimuth", "azi":
		return Azimuth, nil
	case "tilt", "alt":
		return Tilt, nil
	}
	return Azimuth, fmt.Errorf("unknown axis %q", s)
}

// Bounds returns the admissible range of the axis.
func (a Axis) Bounds() (lo, hi float64) {
	if a == Tilt {
		return 0, 90
	}
	return 0, 360
}

// Seed returns the starting guess: equator facing for azimuth, 45° for tilt.
func (a Axis) Seed() float64 {
	if a == Tilt {
		return 45
	}
	return 180
}

// Outcome is the optimizer result. OK is false when the optimization was
// declined for missing inputs; that is not an error.
type Outcome struct {
	Axis          Axis
	AngleDeg      int
	EfficiencyPct float64
	OK            bool
}

// Optimizer runs a bounded scalar search over one axis of an interpolated surface.
type Optimizer struct {
	XTol    float64
	MaxIter int
}

func New() *Optimizer {
	return &Optimizer{XTol: 1e-5, MaxIter: 500}
}

// Optimize returns the best free angle given the fixed value of the other axis.
// A nil surface or nil fixed angle declines the request.
func (o *Optimizer) Optimize(s *surface.Surface, free Axis, fixed *float64) (Outcome, error) {
	if s == nil || fixed == nil {
		return Outcome{Axis: free}, nil
	}
	if free == Azimuth && (*fixed < 0 || *fixed > 90 || math.IsNaN(*fixed)) {
		return Outcome{}, fmt.Errorf("%w: fixed tilt %v° outside [0,90]", model.ErrInvalidPanel, *fixed)
	}
	if math.IsNaN(*fixed) || math.IsInf(*fixed, 0) {
		return Outcome{}, fmt.Errorf("%w: fixed azimuth %v", model.ErrInvalidPanel, *fixed)
	}

	ip, err := NewInterpolant(s)
	if err != nil {
		return Outcome{}, err
	}

	eff := func(angle float64) float64 {
		if free == Azimuth {
			return ip.At(angle, *fixed)
		}
		return ip.At(*fixed, angle)
	}
	lo, hi := free.Bounds()
	x, _, _ := minimizeBounded(func(angle float64) float64 { return -eff(angle) }, lo, hi, free.Seed(), o.XTol, o.MaxIter)

	angle := int(math.Round(x))
	if free == Azimuth {
		angle %= 360
	}
	return Outcome{
		Axis:          free,
		AngleDeg:      angle,
		EfficiencyPct: eff(float64(angle)),
		OK:            true,
	}, nil
}
