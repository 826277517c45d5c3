package simulator

import (
	"fmt"
	"time"

	"gonum.org/v1/gonum/floats"

	"pv_yield/internal/model"
	"pv_yield/internal/solar"
)

const (
	DefaultDayFrequency      = 30 * time.Minute
	DefaultYearFrequency     = time.Hour
	DefaultExtremesFrequency = 30 * time.Minute
)

// PanelCurve is the day output of one panel.
type PanelCurve struct {
	Index     int       `json:"index"`
	ID        string    `json:"id"`
	Label     string    `json:"label"`
	Color     string    `json:"color"`
	PowerW    []float64 `json:"power_w"`
	EnergyKWh []float64 `json:"energy_kwh"`
}

// DayResult holds power and cumulative energy curves for one day.
type DayResult struct {
	Date           time.Time    `json:"date"`
	Times          []time.Time  `json:"times"`
	Panels         []PanelCurve `json:"panels"`
	TotalPowerW    []float64    `json:"total_power_w"`
	TotalEnergyKWh []float64    `json:"total_energy_kwh"`
}

// EnergyKWh returns the fleet energy of the whole day.
func (r *DayResult) EnergyKWh() float64 {
	if len(r.TotalEnergyKWh) == 0 {
		return 0
	}
	return r.TotalEnergyKWh[len(r.TotalEnergyKWh)-1]
}

// PeakPowerW returns the highest fleet power of the day.
func (r *DayResult) PeakPowerW() float64 {
	if len(r.TotalPowerW) == 0 {
		return 0
	}
	return floats.Max(r.TotalPowerW)
}

// YearRow is one panel line of the annual table.
type YearRow struct {
	Index      int         `json:"index"`
	ID         string      `json:"id"`
	Label      string      `json:"label"`
	Color      string      `json:"color"`
	MonthlyKWh [12]float64 `json:"monthly_kwh"`
	TotalKWh   float64     `json:"total_kwh"`
}

// YearResult is the annual energy table including weather losses.
type YearResult struct {
	Year           int           `json:"year"`
	Weather        model.Weather `json:"weather"`
	Rows           []YearRow     `json:"rows"`
	MonthTotalsKWh [12]float64   `json:"month_totals_kwh"`
	TotalKWh       float64       `json:"total_kwh"`
}

// Aggregator computes fleet yields from the power model at each panel's real orientation.
type Aggregator struct {
	Model solar.PowerModel
}

func NewAggregator(m solar.PowerModel) *Aggregator {
	return &Aggregator{Model: m}
}

// Day computes power and cumulative energy curves on date, sampled every freq
// (DefaultDayFrequency when zero).
func (a *Aggregator) Day(loc model.Geolocation, fleet model.Fleet, date time.Time, freq time.Duration) (*DayResult, error) {
	site, err := model.CheckInputs(loc, fleet)
	if err != nil {
		return nil, err
	}
	if freq <= 0 {
		freq = DefaultDayFrequency
	}

	times := solar.DayTimes(date, site.Location, freq)
	res := &DayResult{
		Date:           time.Date(date.Year(), date.Month(), date.Day(), 0, 0, 0, 0, site.Location),
		Times:          times,
		TotalPowerW:    make([]float64, len(times)),
		TotalEnergyKWh: make([]float64, len(times)),
	}

	for _, ip := range fleet.Active() {
		power, err := a.power(site, ip.Panel, times)
		if err != nil {
			return nil, err
		}
		energy := CumulativeEnergyKWh(power, freq)
		floats.Add(res.TotalPowerW, power)
		floats.Add(res.TotalEnergyKWh, energy)
		res.Panels = append(res.Panels, PanelCurve{
			Index:     ip.Index,
			ID:        ip.Panel.ID,
			Label:     ip.Panel.DisplayLabel(ip.Index),
			Color:     ip.Panel.DisplayColor(),
			PowerW:    power,
			EnergyKWh: energy,
		})
	}
	return res, nil
}

// Year computes the monthly energy table of year, scaled by weather, sampled
// every freq (DefaultYearFrequency when zero).
func (a *Aggregator) Year(loc model.Geolocation, fleet model.Fleet, year int, weather model.Weather, freq time.Duration) (*YearResult, error) {
	site, err := model.CheckInputs(loc, fleet)
	if err != nil {
		return nil, err
	}
	if err := weather.Validate(); err != nil {
		return nil, err
	}
	if freq <= 0 {
		freq = DefaultYearFrequency
	}

	times := solar.YearTimes(year, site.Location, freq)
	res := &YearResult{Year: year, Weather: weather}
	for _, ip := range fleet.Active() {
		power, err := a.power(site, ip.Panel, times)
		if err != nil {
			return nil, err
		}
		row := YearRow{
			Index:      ip.Index,
			ID:         ip.Panel.ID,
			Label:      ip.Panel.DisplayLabel(ip.Index),
			Color:      ip.Panel.DisplayColor(),
			MonthlyKWh: solar.MonthlyEnergyKWh(times, power, weather),
		}
		row.TotalKWh = floats.Sum(row.MonthlyKWh[:])
		floats.Add(res.MonthTotalsKWh[:], row.MonthlyKWh[:])
		res.Rows = append(res.Rows, row)
	}
	res.TotalKWh = floats.Sum(res.MonthTotalsKWh[:])
	return res, nil
}

func (a *Aggregator) power(site model.Site, p model.Panel, times []time.Time) ([]float64, error) {
	power, err := a.Model.Power(site, p.Orientation(), p.DCCapacityW(), times)
	if err != nil {
		return nil, err
	}
	if len(power) != len(times) {
		return nil, fmt.Errorf("power model returned %d samples for %d timestamps", len(power), len(times))
	}
	return power, nil
}

// CumulativeEnergyKWh integrates a power series (W) sampled every step with
// the trapezoidal rule. The first value is P[0]/1000 sample-units; it marks
// the start of the curve and is not carried into later values.
func CumulativeEnergyKWh(power []float64, step time.Duration) []float64 {
	out := make([]float64, len(power))
	if len(power) == 0 {
		return out
	}
	out[0] = power[0] / 1000
	var sum float64
	for i := 1; i < len(power); i++ {
		sum += (power[i-1] + power[i]) / 2
		out[i] = sum
	}
	floats.Scale(step.Hours()/1000, out)
	return out
}
