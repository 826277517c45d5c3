package model

import (
	"fmt"
	"math"
	"time"
)

// Geolocation is a resolved installation site. Fields are pointers because the
// resolver may leave any of them unset; see Ready.
type Geolocation struct {
	Lat       *float64 `json:"lat,omitempty" yaml:"lat,omitempty"`
	Lon       *float64 `json:"lon,omitempty" yaml:"lon,omitempty"`
	Elevation *float64 `json:"elevation,omitempty" yaml:"elevation,omitempty"`
	Timezone  string   `json:"timezone,omitempty" yaml:"timezone,omitempty"`
	Address   string   `json:"address,omitempty" yaml:"address,omitempty"`

	// Grid is the cached clear-sky yield grid, attached once by the grid builder.
	Grid *Grid `json:"grid,omitempty" yaml:"grid,omitempty"`
}

// NewGeolocation returns a fully populated location.
func NewGeolocation(lat, lon, elevation float64, timezone, address string) Geolocation {
	return Geolocation{
		Lat:       &lat,
		Lon:       &lon,
		Elevation: &elevation,
		Timezone:  timezone,
		Address:   address,
	}
}

// Ready reports whether lat, lon, elevation and timezone are all present.
func (g Geolocation) Ready() bool {
	return g.Lat != nil && g.Lon != nil && g.Elevation != nil && g.Timezone != ""
}

// Site is the numeric form of a ready Geolocation.
type Site struct {
	Lat       float64
	Lon       float64
	Elevation float64
	Location  *time.Location
}

// Site resolves the timezone and returns the site, or ErrResolution.
func (g Geolocation) Site() (Site, error) {
	if !g.Ready() {
		return Site{}, ErrResolution
	}
	loc, err := time.LoadLocation(g.Timezone)
	if err != nil {
		return Site{}, fmt.Errorf("%w: timezone %q: %v", ErrResolution, g.Timezone, err)
	}
	if math.IsNaN(*g.Lat) || math.IsNaN(*g.Lon) || *g.Lat < -90 || *g.Lat > 90 {
		return Site{}, fmt.Errorf("%w: invalid coordinates", ErrResolution)
	}
	return Site{
		Lat:       *g.Lat,
		Lon:       *g.Lon,
		Elevation: *g.Elevation,
		Location:  loc,
	}, nil
}

// WithGrid returns a copy of g carrying grid.
func (g Geolocation) WithGrid(grid *Grid) Geolocation {
	g.Grid = grid
	return g
}

// Grid holds monthly clear-sky energy (kWh per m²) of a reference panel for
// every (azimuth, tilt) node. Yield is indexed [azimuth][tilt][month].
// A grid is never modified after construction.
type Grid struct {
	AzimuthDeg []float64     `json:"azimuth_deg" yaml:"azimuth_deg"`
	TiltDeg    []float64     `json:"tilt_deg" yaml:"tilt_deg"`
	Yield      [][][]float64 `json:"yield_kwh_m2" yaml:"yield_kwh_m2"`
}

// Validate checks the grid dimensions against its axes.
func (g *Grid) Validate() error {
	if g == nil {
		return ErrGridUnavailable
	}
	if len(g.AzimuthDeg) == 0 || len(g.TiltDeg) == 0 {
		return fmt.Errorf("%w: empty axis", ErrGridUnavailable)
	}
	if len(g.Yield) != len(g.AzimuthDeg) {
		return fmt.Errorf("%w: %d azimuth rows, want %d", ErrGridUnavailable, len(g.Yield), len(g.AzimuthDeg))
	}
	for a, row := range g.Yield {
		if len(row) != len(g.TiltDeg) {
			return fmt.Errorf("%w: azimuth row %d has %d tilts, want %d", ErrGridUnavailable, a, len(row), len(g.TiltDeg))
		}
		for t, months := range row {
			if len(months) != 12 {
				return fmt.Errorf("%w: cell (%d,%d) has %d months", ErrGridUnavailable, a, t, len(months))
			}
		}
	}
	return nil
}

// Orientation is a panel facing: azimuth 0=N, 90=E, 180=S, 270=W; tilt 0=flat, 90=vertical.
type Orientation struct {
	AzimuthDeg float64
	TiltDeg    float64
}

type TimeRange struct {
	Start time.Time
	End   time.Time
}
