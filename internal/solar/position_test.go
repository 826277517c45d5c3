package solar

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestSunPosition_EquatorEquinoxNoon(t *testing.T) {
	ts := time.Date(2024, time.March, 20, 12, 0, 0, 0, time.UTC)
	p := SunPosition(ts, 0, 0)
	assert.Less(t, p.ZenithDeg, 3.0, "sun should be near zenith")
}

func TestSunPosition_BerlinSolarNoon(t *testing.T) {
	// Solar noon in Berlin (13.4°E) is close to 11:00 UTC around the equinox.
	ts := time.Date(2024, time.March, 20, 11, 0, 0, 0, time.UTC)
	p := SunPosition(ts, 52.52, 13.40)
	assert.InDelta(t, 52.5, p.ZenithDeg, 1.5)
	assert.InDelta(t, 180, p.AzimuthDeg, 6)
}

func TestSunPosition_MorningIsEast(t *testing.T) {
	ts := time.Date(2024, time.June, 21, 5, 0, 0, 0, time.UTC)
	p := SunPosition(ts, 52.52, 13.40)
	assert.Less(t, p.AzimuthDeg, 180.0)
	assert.Greater(t, p.AzimuthDeg, 0.0)
	assert.Less(t, p.ZenithDeg, 90.0, "sun is up at 07:00 CEST in June")
}

func TestSunPosition_Midnight(t *testing.T) {
	ts := time.Date(2024, time.March, 20, 23, 0, 0, 0, time.UTC)
	p := SunPosition(ts, 52.52, 13.40)
	assert.Greater(t, p.ZenithDeg, 90.0)
	assert.Less(t, p.ElevationDeg(), 0.0)
}

func TestAngleOfIncidence_FacingSun(t *testing.T) {
	p := Position{ZenithDeg: 40, AzimuthDeg: 180}
	assert.InDelta(t, 1.0, AngleOfIncidenceCos(p, 180, 40), 1e-12)
	assert.InDelta(t, 0.0, AngleOfIncidenceCos(p, 0, 50), 1e-12)
}
