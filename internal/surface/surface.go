// Package surface folds the yield grid with a weather profile into a
// normalized percentage-of-best-orientation map.
package surface

import (
	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/mat"

	"pv_yield/internal/model"
)

// Surface is the efficiency map. Rows are azimuths including a closing 360°
// row equal to the 0° row; columns are tilts. The best cell is exactly 100.
type Surface struct {
	AzimuthDeg []float64
	TiltDeg    []float64
	Percent    *mat.Dense
}

// Compute folds grid with weather and normalizes the result.
func Compute(g *model.Grid, weather model.Weather) (*Surface, error) {
	if g == nil {
		return nil, model.ErrGridUnavailable
	}
	if err := g.Validate(); err != nil {
		return nil, err
	}
	if err := weather.Validate(); err != nil {
		return nil, err
	}

	na, nt := len(g.AzimuthDeg), len(g.TiltDeg)
	pct := mat.NewDense(na+1, nt, nil)
	for a := 0; a < na; a++ {
		for t := 0; t < nt; t++ {
			pct.Set(a, t, floats.Dot(g.Yield[a][t], weather[:]))
		}
	}
	for t := 0; t < nt; t++ {
		pct.Set(na, t, pct.At(0, t))
	}

	best := mat.Max(pct)
	if !(best > 0) {
		return nil, model.ErrNormalization
	}
	pct.Apply(func(_, _ int, v float64) float64 { return v / best * 100 }, pct)

	azimuths := make([]float64, na+1)
	copy(azimuths, g.AzimuthDeg)
	azimuths[na] = 360
	tilts := make([]float64, nt)
	copy(tilts, g.TiltDeg)

	return &Surface{AzimuthDeg: azimuths, TiltDeg: tilts, Percent: pct}, nil
}

// At returns the percentage at grid node (azimuth index, tilt index).
func (s *Surface) At(a, t int) float64 {
	return s.Percent.At(a, t)
}

// Best returns the node with the highest percentage; the first one in
// azimuth-major order wins ties.
func (s *Surface) Best() (azimuthDeg, tiltDeg, percent float64) {
	rows, _ := s.Percent.Dims()
	bestA, bestT := 0, 0
	for a := 0; a < rows; a++ {
		row := s.Percent.RawRowView(a)
		t := floats.MaxIdx(row)
		if row[t] > s.Percent.At(bestA, bestT) {
			bestA, bestT = a, t
		}
	}
	return s.AzimuthDeg[bestA], s.TiltDeg[bestT], s.Percent.At(bestA, bestT)
}

// Rows returns the percentages as a plain [azimuth][tilt] table.
func (s *Surface) Rows() [][]float64 {
	rows, cols := s.Percent.Dims()
	out := make([][]float64, rows)
	for a := range out {
		out[a] = make([]float64, cols)
		copy(out[a], s.Percent.RawRowView(a))
	}
	return out
}
