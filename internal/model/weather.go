package model

import (
	"fmt"
	"math"
	"time"
)

// Weather holds one factor per calendar month (January first) scaling
// clear-sky yield to account for clouds, fog, snow and similar losses.
type Weather [12]float64

// ClearSkyWeather returns the ideal profile: 1.0 for every month.
func ClearSkyWeather() Weather {
	return UniformWeather(1)
}

// UniformWeather returns a profile with the same factor for every month.
func UniformWeather(f float64) Weather {
	var w Weather
	for m := range w {
		w[m] = f
	}
	return w
}

// WeatherFromPercentages combines an overall percentage with per-month
// percentages. Nil entries count as 100%; set entries must lie in [0,100].
func WeatherFromPercentages(overall *float64, monthly [12]*float64) (Weather, error) {
	if err := checkPercent("overall", overall); err != nil {
		return Weather{}, err
	}
	base := 1.0
	if overall != nil {
		base = *overall / 100
	}
	w := UniformWeather(base)
	for m := range w {
		if err := checkPercent(time.Month(m+1).String(), monthly[m]); err != nil {
			return Weather{}, err
		}
		if monthly[m] != nil {
			w[m] *= *monthly[m] / 100
		}
	}
	return w, nil
}

func checkPercent(name string, pct *float64) error {
	if pct != nil && !(*pct >= 0 && *pct <= 100) {
		return fmt.Errorf("%w: %s percentage %v outside 0-100", ErrInvalidWeather, name, *pct)
	}
	return nil
}

// Factor returns the factor for month.
func (w Weather) Factor(month time.Month) float64 {
	return w[month-1]
}

// Validate rejects factors outside [0,1], NaN included.
func (w Weather) Validate() error {
	for m, f := range w {
		if math.IsNaN(f) || f < 0 || f > 1 {
			return fmt.Errorf("%w: %s factor %v", ErrInvalidWeather, time.Month(m+1), f)
		}
	}
	return nil
}
