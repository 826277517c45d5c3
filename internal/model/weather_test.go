package model

import (
	"math"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestWeatherFromPercentages(t *testing.T) {
	var monthly [12]*float64
	monthly[0] = f64(50)
	monthly[6] = f64(90)

	w, err := WeatherFromPercentages(f64(80), monthly)
	require.NoError(t, err)
	assert.InDelta(t, 0.4, w.Factor(time.January), 1e-12)
	assert.InDelta(t, 0.72, w.Factor(time.July), 1e-12)
	assert.InDelta(t, 0.8, w.Factor(time.March), 1e-12)

	w, err = WeatherFromPercentages(nil, [12]*float64{})
	require.NoError(t, err)
	assert.Equal(t, ClearSkyWeather(), w)
}

func TestWeatherFromPercentages_RejectsOutOfRange(t *testing.T) {
	_, err := WeatherFromPercentages(f64(120), [12]*float64{})
	assert.ErrorIs(t, err, ErrInvalidWeather)

	var monthly [12]*float64
	monthly[4] = f64(-5)
	_, err = WeatherFromPercentages(nil, monthly)
	assert.ErrorIs(t, err, ErrInvalidWeather)
	assert.Contains(t, err.Error(), "May")

	monthly[4] = f64(math.NaN())
	_, err = WeatherFromPercentages(nil, monthly)
	assert.ErrorIs(t, err, ErrInvalidWeather)

	monthly[4] = f64(100)
	_, err = WeatherFromPercentages(f64(0), monthly)
	assert.NoError(t, err)
}

func TestWeather_Validate(t *testing.T) {
	assert.NoError(t, ClearSkyWeather().Validate())
	assert.NoError(t, UniformWeather(0).Validate())

	w := ClearSkyWeather()
	w[3] = -0.1
	assert.ErrorIs(t, w.Validate(), ErrInvalidWeather)

	w[3] = math.NaN()
	assert.ErrorIs(t, w.Validate(), ErrInvalidWeather)

	w[3] = 1.2
	assert.ErrorIs(t, w.Validate(), ErrInvalidWeather)
}
