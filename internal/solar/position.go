package solar

import (
	"math"
	"time"
)

const deg = math.Pi / 180

// Position is the apparent sun position at an instant.
type Position struct {
	// ZenithDeg is the angle from the vertical; above 90 the sun is below the horizon.
	ZenithDeg float64
	// AzimuthDeg is measured clockwise from north (0=N, 90=E, 180=S, 270=W).
	AzimuthDeg float64
}

// ElevationDeg returns the sun altitude above the horizon.
func (p Position) ElevationDeg() float64 {
	return 90 - p.ZenithDeg
}

// SunPosition computes the sun position using the NOAA fractional-year
// approximation (accuracy well under one degree).
func SunPosition(t time.Time, latDeg, lonDeg float64) Position {
	u := t.UTC()
	hours := float64(u.Hour()) + float64(u.Minute())/60 + float64(u.Second())/3600
	g := 2 * math.Pi / daysInYear(u.Year()) * (float64(u.YearDay()-1) + (hours-12)/24)

	eqTimeMin := 229.18 * (0.000075 + 0.001868*math.Cos(g) - 0.032077*math.Sin(g) -
		0.014615*math.Cos(2*g) - 0.040849*math.Sin(2*g))
	decl := 0.006918 - 0.399912*math.Cos(g) + 0.070257*math.Sin(g) -
		0.006758*math.Cos(2*g) + 0.000907*math.Sin(2*g) -
		0.002697*math.Cos(3*g) + 0.00148*math.Sin(3*g)

	trueSolarMin := hours*60 + eqTimeMin + 4*lonDeg
	hourAngle := (trueSolarMin/4 - 180) * deg

	lat := latDeg * deg
	cosZen := math.Sin(lat)*math.Sin(decl) + math.Cos(lat)*math.Cos(decl)*math.Cos(hourAngle)
	cosZen = math.Max(-1, math.Min(1, cosZen))
	zen := math.Acos(cosZen)

	az := math.Atan2(math.Sin(hourAngle), math.Cos(hourAngle)*math.Sin(lat)-math.Tan(decl)*math.Cos(lat))
	azDeg := math.Mod(az/deg+180, 360)
	if azDeg < 0 {
		azDeg += 360
	}

	return Position{ZenithDeg: zen / deg, AzimuthDeg: azDeg}
}

// AngleOfIncidenceCos returns the cosine of the angle between the sun ray and
// the normal of a surface with the given orientation. Negative values mean the
// sun is behind the surface.
func AngleOfIncidenceCos(p Position, surfaceAzimuthDeg, surfaceTiltDeg float64) float64 {
	z := p.ZenithDeg * deg
	tilt := surfaceTiltDeg * deg
	return math.Cos(z)*math.Cos(tilt) + math.Sin(z)*math.Sin(tilt)*math.Cos((p.AzimuthDeg-surfaceAzimuthDeg)*deg)
}

func daysInYear(year int) float64 {
	if time.Date(year, time.December, 31, 0, 0, 0, 0, time.UTC).YearDay() == 366 {
		return 366
	}
	return 365
}
