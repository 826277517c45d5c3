package solar

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"pv_yield/internal/model"
)

func berlin(t *testing.T) model.Site {
	t.Helper()
	site, err := model.NewGeolocation(52.52, 13.40, 34, "Europe/Berlin", "Berlin").Site()
	require.NoError(t, err)
	return site
}

func TestClearSky_NightIsZero(t *testing.T) {
	site := berlin(t)
	m := NewClearSky()
	times := []time.Time{time.Date(2024, time.March, 20, 0, 0, 0, 0, site.Location)}
	p, err := m.Power(site, model.Orientation{AzimuthDeg: 180, TiltDeg: 30}, 1000, times)
	require.NoError(t, err)
	assert.Equal(t, []float64{0}, p)
}

func TestClearSky_NoonPlausible(t *testing.T) {
	site := berlin(t)
	m := NewClearSky()
	noon := time.Date(2024, time.June, 21, 13, 0, 0, 0, site.Location)
	p, err := m.Power(site, model.Orientation{AzimuthDeg: 180, TiltDeg: 30}, 1000, []time.Time{noon})
	require.NoError(t, err)
	assert.Greater(t, p[0], 700.0)
	assert.Less(t, p[0], 1200.0)
}

func TestClearSky_LinearInCapacity(t *testing.T) {
	site := berlin(t)
	m := NewClearSky()
	times := DayTimes(time.Date(2024, time.May, 1, 0, 0, 0, 0, time.UTC), site.Location, 30*time.Minute)
	o := model.Orientation{AzimuthDeg: 135, TiltDeg: 20}

	p1, err := m.Power(site, o, 500, times)
	require.NoError(t, err)
	p2, err := m.Power(site, o, 1000, times)
	require.NoError(t, err)
	for i := range p1 {
		assert.InDelta(t, 2*p1[i], p2[i], 1e-9)
	}
}

func TestClearSky_SouthBeatsNorth(t *testing.T) {
	site := berlin(t)
	m := NewClearSky()
	times := DayTimes(time.Date(2024, time.March, 20, 0, 0, 0, 0, time.UTC), site.Location, time.Hour)

	south, err := m.Power(site, model.Orientation{AzimuthDeg: 180, TiltDeg: 45}, 1000, times)
	require.NoError(t, err)
	north, err := m.Power(site, model.Orientation{AzimuthDeg: 0, TiltDeg: 45}, 1000, times)
	require.NoError(t, err)
	assert.Greater(t, sum(south), sum(north))
}

func TestClearSky_FlatPanelSeesGHI(t *testing.T) {
	m := NewClearSky()
	pos := Position{ZenithDeg: 30, AzimuthDeg: 160}
	ts := time.Date(2024, time.April, 10, 12, 0, 0, 0, time.UTC)
	irr := m.Irradiance(pos, 0, ts)
	poa := m.PlaneOfArray(irr, pos, model.Orientation{AzimuthDeg: 0, TiltDeg: 0})
	assert.InDelta(t, irr.GHI, poa, 1e-9)
}

func TestClearSky_RejectsBadTilt(t *testing.T) {
	site := berlin(t)
	_, err := NewClearSky().Power(site, model.Orientation{AzimuthDeg: 0, TiltDeg: 95}, 1000, nil)
	assert.Error(t, err)
}

func sum(xs []float64) float64 {
	var s float64
	for _, x := range xs {
		s += x
	}
	return s
}
