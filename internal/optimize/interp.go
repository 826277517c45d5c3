package optimize

import (
	"fmt"
	"math"

	"gonum.org/v1/gonum/interp"

	"pv_yield/internal/surface"
)

// Interpolant is a tensor-product cubic spline over a closed efficiency surface.
// The azimuth axis is padded with one wrapped node on each side so values and
// slopes line up across 0°/360°.
type Interpolant struct {
	azimuths []float64
	tilts    []float64
	columns  []interp.NaturalCubic
}

// NewInterpolant fits one tilt spline per azimuth node of s.
func NewInterpolant(s *surface.Surface) (*Interpolant, error) {
	rows, cols := s.Percent.Dims()
	if rows < 3 || cols < 3 || len(s.AzimuthDeg) != rows || len(s.TiltDeg) != cols {
		return nil, fmt.Errorf("surface %dx%d too small for cubic interpolation", rows, cols)
	}

	// rows-1 is the closing 360° row; rows-2 is the last distinct azimuth.
	azimuths := make([]float64, 0, rows+2)
	azimuths = append(azimuths, s.AzimuthDeg[rows-2]-360)
	azimuths = append(azimuths, s.AzimuthDeg...)
	azimuths = append(azimuths, s.AzimuthDeg[1]+360)
	source := make([]int, 0, rows+2)
	source = append(source, rows-2)
	for a := 0; a < rows; a++ {
		source = append(source, a)
	}
	source = append(source, 1)

	ip := &Interpolant{
		azimuths: azimuths,
		tilts:    append([]float64(nil), s.TiltDeg...),
		columns:  make([]interp.NaturalCubic, len(source)),
	}
	for i, a := range source {
		ys := append([]float64(nil), s.Percent.RawRowView(a)...)
		if err := ip.columns[i].Fit(ip.tilts, ys); err != nil {
			return nil, fmt.Errorf("fitting tilt spline at azimuth %v: %w", azimuths[i], err)
		}
	}
	return ip, nil
}

// At returns the interpolated efficiency. Azimuth wraps modulo 360; tilt is
// clamped to the surface range.
func (ip *Interpolant) At(azimuthDeg, tiltDeg float64) float64 {
	az := WrapAzimuth(azimuthDeg)
	tilt := math.Max(ip.tilts[0], math.Min(ip.tilts[len(ip.tilts)-1], tiltDeg))

	ys := make([]float64, len(ip.columns))
	for i := range ip.columns {
		ys[i] = ip.columns[i].Predict(tilt)
	}
	var row interp.NaturalCubic
	if err := row.Fit(ip.azimuths, ys); err != nil {
		return math.NaN()
	}
	return row.Predict(az)
}

// WrapAzimuth maps an azimuth into [0,360]. Exactly 360 is kept, since it is
// a grid node equal to 0.
func WrapAzimuth(deg float64) float64 {
	if deg >= 0 && deg <= 360 {
		return deg
	}
	w := math.Mod(deg, 360)
	if w < 0 {
		w += 360
	}
	return w
}
