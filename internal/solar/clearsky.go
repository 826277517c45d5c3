package solar

import (
	"fmt"
	"math"
	"time"

	"pv_yield/internal/model"
)

// PowerModel converts a panel orientation at a site into DC power for each timestamp.
type PowerModel interface {
	Power(site model.Site, o model.Orientation, dcCapacityW float64, times []time.Time) ([]float64, error)
}

// Irradiance components in W/m².
type Irradiance struct {
	DNI float64
	DHI float64
	GHI float64
}

// ClearSky is a clear-sky PV model: Laue/Meinel beam irradiance with a fixed
// diffuse fraction, isotropic sky and ground transposition, SAPM cell
// temperature and a linear DC temperature coefficient.
type ClearSky struct {
	// SolarConstant is the mean extraterrestrial irradiance (W/m²).
	SolarConstant float64
	// DiffuseFraction is the diffuse horizontal share of beam irradiance.
	DiffuseFraction float64
	Albedo          float64
	AmbientC        float64
	WindMps         float64
	// GammaPdc is the relative DC power change per °C of cell temperature.
	GammaPdc float64
	// SAPM open-rack glass/polymer parameters.
	TempA, TempB, TempDeltaT float64
}

// NewClearSky returns the model with the default parameters.
func NewClearSky() *ClearSky {
	return &ClearSky{
		SolarConstant:   1353,
		DiffuseFraction: 0.1,
		Albedo:          0.25,
		AmbientC:        20,
		WindMps:         0,
		GammaPdc:        -0.004,
		TempA:           -3.56,
		TempB:           -0.075,
		TempDeltaT:      3,
	}
}

// Irradiance returns clear-sky irradiance for a sun position and site elevation (m).
func (m *ClearSky) Irradiance(p Position, elevationM float64, t time.Time) Irradiance {
	cosZen := math.Cos(p.ZenithDeg * deg)
	if cosZen <= 0 {
		return Irradiance{}
	}
	airMass := 1 / (cosZen + 0.50572*math.Pow(96.07995-p.ZenithDeg, -1.6364))
	h := math.Max(elevationM, 0) / 1000
	ext := m.SolarConstant * (1 + 0.033*math.Cos(2*math.Pi*float64(t.UTC().YearDay())/365))
	dni := ext * ((1-0.14*h)*math.Pow(0.7, math.Pow(airMass, 0.678)) + 0.14*h)
	dhi := m.DiffuseFraction * dni
	return Irradiance{DNI: dni, DHI: dhi, GHI: dni*cosZen + dhi}
}

// PlaneOfArray transposes irradiance onto a tilted surface.
func (m *ClearSky) PlaneOfArray(irr Irradiance, p Position, o model.Orientation) float64 {
	beam := irr.DNI * math.Max(AngleOfIncidenceCos(p, o.AzimuthDeg, o.TiltDeg), 0)
	cosTilt := math.Cos(o.TiltDeg * deg)
	sky := irr.DHI * (1 + cosTilt) / 2
	ground := irr.GHI * m.Albedo * (1 - cosTilt) / 2
	return beam + sky + ground
}

// CellTemperature returns the SAPM cell temperature for a plane-of-array irradiance.
func (m *ClearSky) CellTemperature(poa float64) float64 {
	module := poa*math.Exp(m.TempA+m.TempB*m.WindMps) + m.AmbientC
	return module + poa/1000*m.TempDeltaT
}

// Power implements PowerModel.
func (m *ClearSky) Power(site model.Site, o model.Orientation, dcCapacityW float64, times []time.Time) ([]float64, error) {
	if o.TiltDeg < 0 || o.TiltDeg > 90 {
		return nil, fmt.Errorf("tilt %v° outside [0,90]", o.TiltDeg)
	}
	if dcCapacityW < 0 {
		return nil, fmt.Errorf("negative DC capacity %v W", dcCapacityW)
	}

	out := make([]float64, len(times))
	for i, t := range times {
		pos := SunPosition(t, site.Lat, site.Lon)
		if pos.ElevationDeg() <= 0 {
			continue
		}
		irr := m.Irradiance(pos, site.Elevation, t)
		poa := m.PlaneOfArray(irr, pos, o)
		tc := m.CellTemperature(poa)
		pdc := dcCapacityW * poa / 1000 * (1 + m.GammaPdc*(tc-25))
		if pdc > 0 {
			out[i] = pdc
		}
	}
	return out, nil
}
