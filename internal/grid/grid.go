// Package grid builds the clear-sky yield grid used for orientation optimization.
package grid

import (
	"fmt"
	"time"

	"pv_yield/internal/model"
	"pv_yield/internal/solar"
)

const (
	AzimuthPoints = 8
	TiltPoints    = 7

	// DefaultFrequency is the sampling step of the yearly simulations.
	DefaultFrequency = time.Hour
	// DefaultReferenceYear is a non-leap year so months are comparable across builds.
	DefaultReferenceYear = 2023
)

// AzimuthAxis returns azimuths evenly spaced over [0,360): 360 is not included.
func AzimuthAxis() []float64 {
	axis := make([]float64, AzimuthPoints)
	for i := range axis {
		axis[i] = 360 * float64(i) / AzimuthPoints
	}
	return axis
}

// TiltAxis returns tilts evenly spaced over [0,90], both ends included.
func TiltAxis() []float64 {
	axis := make([]float64, TiltPoints)
	for i := range axis {
		axis[i] = 90 * float64(i) / (TiltPoints - 1)
	}
	return axis
}

// Builder runs one yearly simulation of a 1 m² reference panel per grid node.
type Builder struct {
	Model     solar.PowerModel
	Year      int
	Frequency time.Duration
}

func NewBuilder(m solar.PowerModel) *Builder {
	return &Builder{
		Model:     m,
		Year:      DefaultReferenceYear,
		Frequency: DefaultFrequency,
	}
}

// Build computes a new grid for site. Model errors are returned unchanged.
func (b *Builder) Build(site model.Site) (*model.Grid, error) {
	azimuths := AzimuthAxis()
	tilts := TiltAxis()
	times := solar.YearTimes(b.Year, site.Location, b.Frequency)
	if len(times) == 0 {
		return nil, fmt.Errorf("no samples for year %d at %v", b.Year, b.Frequency)
	}

	reference := model.Panel{SizeM2: ptr(1.0)}
	capacity := reference.DCCapacityW()
	weather := model.ClearSkyWeather()

	yield := make([][][]float64, len(azimuths))
	for a, azi := range azimuths {
		yield[a] = make([][]float64, len(tilts))
		for t, tilt := range tilts {
			power, err := b.Model.Power(site, model.Orientation{AzimuthDeg: azi, TiltDeg: tilt}, capacity, times)
			if err != nil {
				return nil, err
			}
			monthly := solar.MonthlyEnergyKWh(times, power, weather)
			yield[a][t] = monthly[:]
		}
	}

	return &model.Grid{AzimuthDeg: azimuths, TiltDeg: tilts, Yield: yield}, nil
}

// Ensure returns loc carrying a grid. An existing grid is returned as is; a new
// one is attached only after every node succeeded. built reports whether the
// simulations ran.
func (b *Builder) Ensure(loc model.Geolocation) (out model.Geolocation, built bool, err error) {
	if loc.Grid != nil {
		return loc, false, nil
	}
	site, err := loc.Site()
	if err != nil {
		return loc, false, err
	}
	g, err := b.Build(site)
	if err != nil {
		return loc, false, err
	}
	return loc.WithGrid(g), true, nil
}

func ptr(v float64) *float64 { return &v }
