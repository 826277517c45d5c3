package simulator

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"pv_yield/internal/model"
)

// seasonal peaks on 21 June and is lowest on 31 December.
func seasonal(o model.Orientation, t time.Time) float64 {
	d := float64(t.YearDay())
	amp := 1 - absf(d-172)/365
	return amp * bell(o, t)
}

func absf(v float64) float64 {
	if v < 0 {
		return -v
	}
	return v
}

func TestFindDaysOfInterest_Seasonal(t *testing.T) {
	agg := NewAggregator(&fakeModel{fn: seasonal})
	res, ok, err := agg.FindDaysOfInterest(utcLocation(), fleetOf(panel(10, 180, 30)), 2023, 0)
	require.NoError(t, err)
	require.True(t, ok)

	require.Len(t, res.Days, 365)
	assert.Equal(t, time.June, res.MaxPeak.Date.Month())
	assert.Equal(t, 21, res.MaxPeak.Date.Day())
	assert.Equal(t, res.MaxPeak.Date, res.MaxEnergy.Date)
	assert.Equal(t, time.December, res.MinPeak.Date.Month())
	assert.Equal(t, 31, res.MinPeak.Date.Day())
	assert.Equal(t, res.MinPeak.Date, res.MinEnergy.Date)
	assert.Greater(t, res.MaxEnergy.Value, res.MinEnergy.Value)
}

func TestFindDaysOfInterest_TiesPickEarliestDay(t *testing.T) {
	constant := func(model.Orientation, time.Time) float64 { return 1 }
	agg := NewAggregator(&fakeModel{fn: constant})

	res, ok, err := agg.FindDaysOfInterest(utcLocation(), fleetOf(panel(10, 180, 30)), 2023, time.Hour)
	require.NoError(t, err)
	require.True(t, ok)

	jan1 := time.Date(2023, time.January, 1, 0, 0, 0, 0, time.UTC)
	for _, d := range []DayValue{res.MinPeak, res.MaxPeak, res.MinEnergy, res.MaxEnergy} {
		assert.True(t, d.Date.Equal(jan1), "got %v", d.Date)
	}
	// 10 m² × 142.86 W/m² all day long.
	assert.InDelta(t, 1428.6*24/1000, res.MaxEnergy.Value, 1e-9)
	assert.InDelta(t, 1428.6, res.MaxPeak.Value, 1e-9)
}

func TestFindDaysOfInterest_DSTDaysUseLocalLength(t *testing.T) {
	constant := func(model.Orientation, time.Time) float64 { return 1 }
	agg := NewAggregator(&fakeModel{fn: constant})

	res, ok, err := agg.FindDaysOfInterest(berlin(), fleetOf(panel(10, 180, 30)), 2023, time.Hour)
	require.NoError(t, err)
	require.True(t, ok)
	require.Len(t, res.Days, 365)

	assert.Equal(t, time.March, res.MinEnergy.Date.Month())
	assert.Equal(t, 26, res.MinEnergy.Date.Day())
	assert.InDelta(t, 1428.6*23/1000, res.MinEnergy.Value, 1e-9)
	assert.Equal(t, time.October, res.MaxEnergy.Date.Month())
	assert.Equal(t, 29, res.MaxEnergy.Date.Day())
	assert.InDelta(t, 1428.6*25/1000, res.MaxEnergy.Value, 1e-9)

	// Peaks are flat, so the first local day wins.
	assert.Equal(t, "Europe/Berlin", res.MaxPeak.Date.Location().String())
	assert.Equal(t, time.January, res.MaxPeak.Date.Month())
	assert.Equal(t, 1, res.MaxPeak.Date.Day())
}

func TestFindDaysOfInterest_Declines(t *testing.T) {
	m := &fakeModel{fn: bell}
	agg := NewAggregator(m)
	off := panel(1, 180, 30)
	off.Active = false
	unready := panel(1, 180, 30)
	unready.SizeM2 = nil

	res, ok, err := agg.FindDaysOfInterest(utcLocation(), fleetOf(off, unready), 2023, 0)
	require.NoError(t, err)
	assert.False(t, ok)
	assert.Nil(t, res)
	assert.Zero(t, m.calls)
}

func TestFindDaysOfInterest_NeedsLocation(t *testing.T) {
	agg := NewAggregator(&fakeModel{fn: bell})
	_, _, err := agg.FindDaysOfInterest(model.Geolocation{}, fleetOf(panel(1, 180, 30)), 2023, 0)
	assert.ErrorIs(t, err, model.ErrResolution)
}
