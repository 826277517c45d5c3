package simulator

import (
	"time"

	"gonum.org/v1/gonum/floats"

	"pv_yield/internal/model"
	"pv_yield/internal/solar"
)

// DailyStats summarizes fleet power over one local calendar day.
type DailyStats struct {
	Date       time.Time `json:"date"`
	MeanPowerW float64   `json:"mean_power_w"`
	PeakPowerW float64   `json:"peak_power_w"`
	EnergyKWh  float64   `json:"energy_kwh"`
}

// DayValue is a day together with the metric that selected it.
type DayValue struct {
	Date  time.Time `json:"date"`
	Value float64   `json:"value"`
}

// DaysOfInterest holds the extreme days of a year.
type DaysOfInterest struct {
	Year      int          `json:"year"`
	MinPeak   DayValue     `json:"min_peak"`
	MaxPeak   DayValue     `json:"max_peak"`
	MinEnergy DayValue     `json:"min_energy"`
	MaxEnergy DayValue     `json:"max_energy"`
	Days      []DailyStats `json:"days"`
}

// FindDaysOfInterest returns the days with the lowest and highest fleet peak
// power and energy in year. ok is false when no panel is both active and
// ready. Ties go to the earliest day.
func (a *Aggregator) FindDaysOfInterest(loc model.Geolocation, fleet model.Fleet, year int, freq time.Duration) (*DaysOfInterest, bool, error) {
	site, err := loc.Site()
	if err != nil {
		return nil, false, err
	}
	active := fleet.Active()
	if len(active) == 0 {
		return nil, false, nil
	}
	if freq <= 0 {
		freq = DefaultExtremesFrequency
	}

	times := solar.YearTimes(year, site.Location, freq)
	total := make([]float64, len(times))
	for _, ip := range active {
		power, err := a.power(site, ip.Panel, times)
		if err != nil {
			return nil, false, err
		}
		floats.Add(total, power)
	}

	days := dailyStats(times, total)
	if len(days) == 0 {
		return nil, false, nil
	}
	peaks := make([]float64, len(days))
	energies := make([]float64, len(days))
	for i, d := range days {
		peaks[i] = d.PeakPowerW
		energies[i] = d.EnergyKWh
	}

	pick := func(values []float64, i int) DayValue {
		return DayValue{Date: days[i].Date, Value: values[i]}
	}
	return &DaysOfInterest{
		Year:      year,
		MinPeak:   pick(peaks, floats.MinIdx(peaks)),
		MaxPeak:   pick(peaks, floats.MaxIdx(peaks)),
		MinEnergy: pick(energies, floats.MinIdx(energies)),
		MaxEnergy: pick(energies, floats.MaxIdx(energies)),
		Days:      days,
	}, true, nil
}

// dailyStats groups a chronological series by local calendar day. Daily
// energy is the mean power over the day times the day's local length, 23 or
// 25 h on DST switch days.
func dailyStats(times []time.Time, power []float64) []DailyStats {
	var out []DailyStats
	start := 0
	for i := 1; i <= len(times); i++ {
		if i < len(times) && sameDay(times[i], times[start]) {
			continue
		}
		day := power[start:i]
		mean := floats.Sum(day) / float64(len(day))
		t := times[start]
		out = append(out, DailyStats{
			Date:       time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location()),
			MeanPowerW: mean,
			PeakPowerW: floats.Max(day),
			EnergyKWh:  mean * solar.HoursInDay(t, t.Location()) / 1000,
		})
		start = i
	}
	return out
}

func sameDay(a, b time.Time) bool {
	return a.Year() == b.Year() && a.YearDay() == b.YearDay()
}
