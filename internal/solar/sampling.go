package solar

import (
	"time"

	"pv_yield/internal/model"
)

// DayTimes returns timestamps from local midnight of date to 23:59 at freq.
func DayTimes(date time.Time, loc *time.Location, freq time.Duration) []time.Time {
	start := time.Date(date.Year(), date.Month(), date.Day(), 0, 0, 0, 0, loc)
	end := time.Date(date.Year(), date.Month(), date.Day(), 23, 59, 59, 0, loc)
	return Times(model.TimeRange{Start: start, End: end}, freq)
}

// YearTimes returns timestamps covering the calendar year in loc at freq.
func YearTimes(year int, loc *time.Location, freq time.Duration) []time.Time {
	start := time.Date(year, time.January, 1, 0, 0, 0, 0, loc)
	end := time.Date(year, time.December, 31, 23, 59, 59, 0, loc)
	return Times(model.TimeRange{Start: start, End: end}, freq)
}

// Times returns start, start+freq, ... up to and including end.
func Times(tr model.TimeRange, freq time.Duration) []time.Time {
	if freq <= 0 || tr.End.Before(tr.Start) {
		return nil
	}
	n := int(tr.End.Sub(tr.Start)/freq) + 1
	times := make([]time.Time, n)
	for i := range times {
		times[i] = tr.Start.Add(time.Duration(i) * freq)
	}
	return times
}

// HoursInMonth returns the elapsed hours of month in year on the local clock
// of loc, so months with a DST switch are one hour shorter or longer.
func HoursInMonth(year int, month time.Month, loc *time.Location) float64 {
	start := time.Date(year, month, 1, 0, 0, 0, 0, loc)
	return start.AddDate(0, 1, 0).Sub(start).Hours()
}

// HoursInDay returns the elapsed hours between local midnight of date and the
// next local midnight in loc.
func HoursInDay(date time.Time, loc *time.Location) float64 {
	start := time.Date(date.Year(), date.Month(), date.Day(), 0, 0, 0, 0, loc)
	return start.AddDate(0, 0, 1).Sub(start).Hours()
}

// MonthlyEnergyKWh reduces a power series (W) to energy per calendar month:
// mean power of the month × local hours in the month × weather factor.
func MonthlyEnergyKWh(times []time.Time, power []float64, weather model.Weather) [12]float64 {
	var sum [12]float64
	var count [12]int
	for i, t := range times {
		m := t.Month() - 1
		sum[m] += power[i]
		count[m]++
	}

	var out [12]float64
	for m := range out {
		if count[m] == 0 {
			continue
		}
		mean := sum[m] / float64(count[m])
		out[m] = mean * HoursInMonth(times[0].Year(), time.Month(m+1), times[0].Location()) / 1000 * weather.Factor(time.Month(m+1))
	}
	return out
}
