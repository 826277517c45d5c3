package optimize

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"pv_yield/internal/model"
	"pv_yield/internal/surface"
)

// makeSurface samples fn on the standard 8×7 grid, with constant monthly split.
func makeSurface(t *testing.T, fn func(azi, tilt float64) float64) *surface.Surface {
	t.Helper()
	g := &model.Grid{
		AzimuthDeg: []float64{0, 45, 90, 135, 180, 225, 270, 315},
		TiltDeg:    []float64{0, 15, 30, 45, 60, 75, 90},
	}
	for _, azi := range g.AzimuthDeg {
		row := make([][]float64, len(g.TiltDeg))
		for i, tilt := range g.TiltDeg {
			months := make([]float64, 12)
			for m := range months {
				months[m] = fn(azi, tilt) / 12
			}
			row[i] = months
		}
		g.Yield = append(g.Yield, row)
	}
	s, err := surface.Compute(g, model.ClearSkyWeather())
	require.NoError(t, err)
	return s
}

// southFacing mimics a northern-hemisphere yield: best near azimuth 180, tilt 60.
func southFacing(azi, tilt float64) float64 {
	d := (tilt - 35) / 90
	return 1000 + 300*math.Cos((azi-180)*math.Pi/180)*math.Sin(tilt*math.Pi/180) - 400*d*d
}

// northFacing mimics a southern-hemisphere yield: best near azimuth 0.
func northFacing(azi, tilt float64) float64 {
	return southFacing(math.Mod(azi+180, 360), tilt)
}

func ptr(v float64) *float64 { return &v }

func TestInterpolant_ReproducesNodes(t *testing.T) {
	s := makeSurface(t, southFacing)
	ip, err := NewInterpolant(s)
	require.NoError(t, err)

	for a, azi := range s.AzimuthDeg {
		for ti, tilt := range s.TiltDeg {
			assert.InDelta(t, s.At(a, ti), ip.At(azi, tilt), 1e-9)
		}
	}
}

func TestInterpolant_Circular(t *testing.T) {
	s := makeSurface(t, southFacing)
	ip, err := NewInterpolant(s)
	require.NoError(t, err)

	for _, tilt := range []float64{0, 7.5, 30, 44.2, 90} {
		assert.Equal(t, ip.At(0, tilt), ip.At(360, tilt))
		assert.Equal(t, ip.At(270, tilt), ip.At(-90, tilt))
		assert.Equal(t, ip.At(90, tilt), ip.At(450, tilt))
	}
}

func TestInterpolant_SmoothAcrossWrap(t *testing.T) {
	s := makeSurface(t, northFacing)
	ip, err := NewInterpolant(s)
	require.NoError(t, err)

	// Efficiency just either side of north must be close.
	assert.InDelta(t, ip.At(359, 35), ip.At(1, 35), 0.05)
}

func TestInterpolant_TooSmall(t *testing.T) {
	g := &model.Grid{
		AzimuthDeg: []float64{0},
		TiltDeg:    []float64{0, 90},
		Yield:      [][][]float64{{make([]float64, 12), make([]float64, 12)}},
	}
	g.Yield[0][0][0] = 1
	s, err := surface.Compute(g, model.ClearSkyWeather())
	require.NoError(t, err)

	_, err = NewInterpolant(s)
	assert.Error(t, err)
}

func TestOptimize_Azimuth(t *testing.T) {
	s := makeSurface(t, southFacing)
	out, err := New().Optimize(s, Azimuth, ptr(35))
	require.NoError(t, err)
	require.True(t, out.OK)
	assert.Equal(t, 180, out.AngleDeg)
	assert.Equal(t, Azimuth, out.Axis)
	assert.LessOrEqual(t, out.EfficiencyPct, 100.5)
	assert.Greater(t, out.EfficiencyPct, 90.0)
}

func TestOptimize_Tilt(t *testing.T) {
	s := makeSurface(t, southFacing)
	out, err := New().Optimize(s, Tilt, ptr(180))
	require.NoError(t, err)
	require.True(t, out.OK)
	assert.InDelta(t, 60, out.AngleDeg, 5)

	// Facing north the best tilt is flat.
	out, err = New().Optimize(s, Tilt, ptr(0))
	require.NoError(t, err)
	assert.Equal(t, 0, out.AngleDeg)
}

func TestOptimize_NorthOptimumWraps(t *testing.T) {
	s := makeSurface(t, northFacing)
	out, err := New().Optimize(s, Azimuth, ptr(35))
	require.NoError(t, err)
	require.True(t, out.OK)
	assert.Equal(t, 0, out.AngleDeg)
}

func TestOptimize_Declines(t *testing.T) {
	s := makeSurface(t, southFacing)

	out, err := New().Optimize(s, Azimuth, nil)
	require.NoError(t, err)
	assert.False(t, out.OK)

	out, err = New().Optimize(nil, Tilt, ptr(180))
	require.NoError(t, err)
	assert.False(t, out.OK)
}

func TestOptimize_InvalidFixedTilt(t *testing.T) {
	s := makeSurface(t, southFacing)
	_, err := New().Optimize(s, Azimuth, ptr(120))
	assert.ErrorIs(t, err, model.ErrInvalidPanel)
}

func TestParseAxis(t *testing.T) {
	a, err := ParseAxis("tilt")
	require.NoError(t, err)
	assert.Equal(t, Tilt, a)
	assert.Equal(t, "tilt", a.String())

	_, err = ParseAxis("roll")
	assert.Error(t, err)
}
