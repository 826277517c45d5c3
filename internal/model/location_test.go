package model

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGeolocation_Ready(t *testing.T) {
	var g Geolocation
	assert.False(t, g.Ready())

	g = NewGeolocation(48.14, 11.58, 519, "Europe/Berlin", "Munich")
	assert.True(t, g.Ready())

	g.Elevation = nil
	assert.False(t, g.Ready())
}

func TestGeolocation_Site(t *testing.T) {
	g := NewGeolocation(48.14, 11.58, 519, "Europe/Berlin", "Munich")
	site, err := g.Site()
	require.NoError(t, err)
	assert.Equal(t, 48.14, site.Lat)
	assert.Equal(t, "Europe/Berlin", site.Location.String())

	g.Timezone = "Mars/Olympus"
	_, err = g.Site()
	assert.ErrorIs(t, err, ErrResolution)
}

func TestGrid_Validate(t *testing.T) {
	var nilGrid *Grid
	assert.ErrorIs(t, nilGrid.Validate(), ErrGridUnavailable)

	g := &Grid{
		AzimuthDeg: []float64{0, 180},
		TiltDeg:    []float64{0},
		Yield:      [][][]float64{{make([]float64, 12)}, {make([]float64, 12)}},
	}
	assert.NoError(t, g.Validate())

	g.Yield[1][0] = make([]float64, 11)
	assert.ErrorIs(t, g.Validate(), ErrGridUnavailable)
}
