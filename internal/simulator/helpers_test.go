package simulator

import (
	"math"
	"sync"
	"time"

	"pv_yield/internal/model"
)

// fakeModel returns capacity × fn(orientation, time) for every timestamp,
// sleeping delay per call when set.
type fakeModel struct {
	fn    func(o model.Orientation, t time.Time) float64
	err   error
	delay time.Duration

	mu    sync.Mutex
	calls int
}

func (m *fakeModel) Power(_ model.Site, o model.Orientation, dcCapacityW float64, times []time.Time) ([]float64, error) {
	m.mu.Lock()
	m.calls++
	m.mu.Unlock()
	time.Sleep(m.delay)
	if m.err != nil {
		return nil, m.err
	}
	out := make([]float64, len(times))
	for i, t := range times {
		out[i] = dcCapacityW * m.fn(o, t)
	}
	return out, nil
}

// bell is a daylight curve between 06:00 and 18:00 that favours south and moderate tilts.
func bell(o model.Orientation, t time.Time) float64 {
	h := float64(t.Hour()) + float64(t.Minute())/60
	if h <= 6 || h >= 18 {
		return 0
	}
	facing := 1 + 0.5*math.Cos((o.AzimuthDeg-180)*math.Pi/180)
	return math.Sin(math.Pi*(h-6)/12) * facing * (1 - math.Abs(o.TiltDeg-35)/100)
}

func f64(v float64) *float64 { return &v }

func utcLocation() model.Geolocation {
	return model.NewGeolocation(48.0, 11.0, 500, "UTC", "test site")
}

func berlin() model.Geolocation {
	return model.NewGeolocation(52.52, 13.405, 34, "Europe/Berlin", "Berlin")
}

func panel(size, azimuth, tilt float64) model.Panel {
	p := model.NewPanel()
	p.SizeM2 = f64(size)
	p.AzimuthDeg = f64(azimuth)
	p.TiltDeg = f64(tilt)
	return p
}

func fleetOf(panels ...model.Panel) model.Fleet {
	var f model.Fleet
	for _, p := range panels {
		f.Add(p)
	}
	return f
}
