package ingest

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"
	"time"

	"pv_yield/internal/model"
)

// OverallRow is the month column value of the row holding the overall percentage.
const OverallRow = "overall"

// WeatherCSVParser parses `month,percent` profiles. Months are 1-12 or
// English month names; a blank or missing percentage counts as 100. An
// optional overall row scales every month.
type WeatherCSVParser struct{}

func NewWeatherCSVParser() *WeatherCSVParser {
	return &WeatherCSVParser{}
}

func (p *WeatherCSVParser) Parse(r io.Reader) (model.Weather, error) {
	reader := csv.NewReader(r)
	reader.TrimLeadingSpace = true
	reader.FieldsPerRecord = -1

	header, err := reader.Read()
	if err != nil {
		return model.Weather{}, fmt.Errorf("reading header: %w", err)
	}
	if err := validateHeader(header); err != nil {
		return model.Weather{}, err
	}

	var overall *float64
	var monthly [12]*float64
	lineNum := 1
	for {
		record, err := reader.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		lineNum++
		if err != nil {
			return model.Weather{}, fmt.Errorf("line %d: %w", lineNum, err)
		}
		if len(record) == 0 || (len(record) == 1 && strings.TrimSpace(record[0]) == "") {
			continue
		}

		key := strings.ToLower(strings.TrimSpace(record[0]))
		var raw string
		if len(record) > 1 {
			raw = record[1]
		}
		pct, err := parsePercent(raw)
		if err != nil {
			return model.Weather{}, fmt.Errorf("line %d: %w", lineNum, err)
		}

		if key == OverallRow {
			if overall != nil {
				return model.Weather{}, fmt.Errorf("line %d: duplicate overall row", lineNum)
			}
			overall = pct
			continue
		}
		m, err := parseMonth(key)
		if err != nil {
			return model.Weather{}, fmt.Errorf("line %d: %w", lineNum, err)
		}
		if monthly[m-1] != nil {
			return model.Weather{}, fmt.Errorf("line %d: duplicate month %d", lineNum, m)
		}
		if pct == nil {
			pct = hundred()
		}
		monthly[m-1] = pct
	}

	return model.WeatherFromPercentages(overall, monthly)
}

func validateHeader(header []string) error {
	if len(header) < 2 {
		return fmt.Errorf("expected at least 2 columns (month, percent), got %d", len(header))
	}
	expected := []string{"month", "percent"}
	for i, name := range expected {
		col := strings.ToLower(strings.TrimSpace(strings.TrimPrefix(header[i], "\ufeff")))
		if col != name {
			return fmt.Errorf("column %d: expected %q, got %q", i, name, header[i])
		}
	}
	return nil
}

func parseMonth(s string) (int, error) {
	if n, err := strconv.Atoi(s); err == nil {
		if n < 1 || n > 12 {
			return 0, fmt.Errorf("%w: month %d outside 1-12", model.ErrInvalidWeather, n)
		}
		return n, nil
	}
	for m := 1; m <= 12; m++ {
		name := strings.ToLower(time.Month(m).String())
		if s == name || s == name[:3] {
			return m, nil
		}
	}
	return 0, fmt.Errorf("%w: unknown month %q", model.ErrInvalidWeather, s)
}

// parsePercent returns nil for a blank value.
func parsePercent(s string) (*float64, error) {
	s = strings.TrimSpace(strings.TrimSuffix(strings.TrimSpace(s), "%"))
	if s == "" {
		return nil, nil
	}
	v, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return nil, fmt.Errorf("%w: percent %q", model.ErrInvalidWeather, s)
	}
	if !(v >= 0 && v <= 100) {
		return nil, fmt.Errorf("%w: percent %v outside 0-100", model.ErrInvalidWeather, v)
	}
	return &v, nil
}

func hundred() *float64 {
	v := 100.0
	return &v
}
