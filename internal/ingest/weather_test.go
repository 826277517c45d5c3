package ingest

import (
	"os"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"pv_yield/internal/model"
)

func TestWeatherCSVParser_Parse(t *testing.T) {
	input := `month,percent
1,40
6,95
12,50`

	w, err := NewWeatherCSVParser().Parse(strings.NewReader(input))
	require.NoError(t, err)

	assert.InDelta(t, 0.40, w[0], 1e-12)
	assert.InDelta(t, 0.95, w[5], 1e-12)
	assert.InDelta(t, 0.50, w[11], 1e-12)
	// Unlisted months stay clear sky.
	assert.Equal(t, 1.0, w[1])
	assert.Equal(t, 1.0, w[6])
}

func TestWeatherCSVParser_OverallScalesEveryMonth(t *testing.T) {
	input := `month,percent
overall,80
3,50`

	w, err := NewWeatherCSVParser().Parse(strings.NewReader(input))
	require.NoError(t, err)

	assert.InDelta(t, 0.40, w[2], 1e-12)
	assert.InDelta(t, 0.80, w[0], 1e-12)
}

func TestWeatherCSVParser_BlankPercentIsHundred(t *testing.T) {
	input := `month,percent
overall,
4,`

	w, err := NewWeatherCSVParser().Parse(strings.NewReader(input))
	require.NoError(t, err)
	assert.Equal(t, model.ClearSkyWeather(), w)
}

func TestWeatherCSVParser_MonthNames(t *testing.T) {
	input := `Month,Percent
January,10%
feb,20`

	w, err := NewWeatherCSVParser().Parse(strings.NewReader(input))
	require.NoError(t, err)
	assert.InDelta(t, 0.10, w[0], 1e-12)
	assert.InDelta(t, 0.20, w[1], 1e-12)
}

func TestWeatherCSVParser_InvalidHeader(t *testing.T) {
	input := `mon,percent
1,50`

	_, err := NewWeatherCSVParser().Parse(strings.NewReader(input))
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "month")
}

func TestWeatherCSVParser_EmptyInput(t *testing.T) {
	_, err := NewWeatherCSVParser().Parse(strings.NewReader(""))
	assert.Error(t, err)
}

func TestWeatherCSVParser_Rejects(t *testing.T) {
	cases := []struct {
		name    string
		input   string
		line    string
		invalid bool
	}{
		{"month out of range", "month,percent\n13,50", "line 2", true},
		{"unknown month", "month,percent\nsmarch,50", "line 2", true},
		{"percent too high", "month,percent\n1,120", "line 2", true},
		{"negative percent", "month,percent\n1,-5", "line 2", true},
		{"not a number", "month,percent\n1,cloudy", "line 2", true},
		{"duplicate month", "month,percent\n1,50\n1,60", "line 3", false},
		{"duplicate overall", "month,percent\noverall,50\noverall,60", "line 3", false},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := NewWeatherCSVParser().Parse(strings.NewReader(tc.input))
			require.Error(t, err)
			assert.Contains(t, err.Error(), tc.line)
			if tc.invalid {
				assert.ErrorIs(t, err, model.ErrInvalidWeather)
			}
		})
	}
}

func TestWeatherCSVParser_SampleFile(t *testing.T) {
	f, err := os.Open("testdata/weather_sample.csv")
	require.NoError(t, err)
	defer f.Close()

	w, err := NewWeatherCSVParser().Parse(f)
	require.NoError(t, err)

	assert.InDelta(t, 0.36, w[0], 1e-12)
	assert.InDelta(t, 0.81, w[5], 1e-12)
	assert.InDelta(t, 0.90, w[11], 1e-12)
	require.NoError(t, w.Validate())
}
