package main

import (
	"fmt"
	"io"
	"strings"
	"time"

	"pv_yield/internal/simulator"
	"pv_yield/internal/surface"
)

func printDay(w io.Writer, r *simulator.DayResult) {
	fmt.Fprintf(w, "Day %s\n\n", r.Date.Format("2006-01-02"))

	fmt.Fprintf(w, "%-6s", "time")
	for _, p := range r.Panels {
		fmt.Fprintf(w, " %12s", truncate(p.Label, 12))
	}
	fmt.Fprintf(w, " %12s %12s\n", "total W", "total kWh")
	for i, t := range r.Times {
		fmt.Fprintf(w, "%-6s", t.Format("15:04"))
		for _, p := range r.Panels {
			fmt.Fprintf(w, " %12.1f", p.PowerW[i])
		}
		fmt.Fprintf(w, " %12.1f %12.3f\n", r.TotalPowerW[i], r.TotalEnergyKWh[i])
	}

	fmt.Fprintf(w, "\nEnergy: %.2f kWh\n", r.EnergyKWh())
	fmt.Fprintf(w, "Peak:   %.0f W\n", r.PeakPowerW())
}

func printYear(w io.Writer, r *simulator.YearResult) {
	fmt.Fprintf(w, "Year %d (kWh)\n\n", r.Year)

	fmt.Fprintf(w, "%-12s", "panel")
	for m := time.January; m <= time.December; m++ {
		fmt.Fprintf(w, " %7s", m.String()[:3])
	}
	fmt.Fprintf(w, " %9s\n", "total")

	for _, row := range r.Rows {
		fmt.Fprintf(w, "%-12s", truncate(row.Label, 12))
		for _, v := range row.MonthlyKWh {
			fmt.Fprintf(w, " %7.1f", v)
		}
		fmt.Fprintf(w, " %9.1f\n", row.TotalKWh)
	}

	fmt.Fprintf(w, "%-12s", "total")
	for _, v := range r.MonthTotalsKWh {
		fmt.Fprintf(w, " %7.1f", v)
	}
	fmt.Fprintf(w, " %9.1f\n", r.TotalKWh)

	fmt.Fprintf(w, "%-12s", "weather %")
	for _, f := range r.Weather {
		fmt.Fprintf(w, " %7.0f", f*100)
	}
	fmt.Fprintln(w)
}

func printExtremes(w io.Writer, r *simulator.DaysOfInterest) {
	fmt.Fprintf(w, "Days of interest %d\n\n", r.Year)
	fmt.Fprintf(w, "  Lowest peak:    %s  %8.0f W\n", r.MinPeak.Date.Format("2006-01-02"), r.MinPeak.Value)
	fmt.Fprintf(w, "  Highest peak:   %s  %8.0f W\n", r.MaxPeak.Date.Format("2006-01-02"), r.MaxPeak.Value)
	fmt.Fprintf(w, "  Lowest energy:  %s  %8.2f kWh\n", r.MinEnergy.Date.Format("2006-01-02"), r.MinEnergy.Value)
	fmt.Fprintf(w, "  Highest energy: %s  %8.2f kWh\n", r.MaxEnergy.Date.Format("2006-01-02"), r.MaxEnergy.Value)
}

func printSurface(w io.Writer, s *surface.Surface) {
	fmt.Fprintf(w, "%-8s", "azi\\tilt")
	for _, t := range s.TiltDeg {
		fmt.Fprintf(w, " %6.0f", t)
	}
	fmt.Fprintln(w)
	for a, row := range s.Rows() {
		fmt.Fprintf(w, "%-8.0f", s.AzimuthDeg[a])
		for _, v := range row {
			fmt.Fprintf(w, " %6.1f", v)
		}
		fmt.Fprintln(w)
	}
	az, tilt, _ := s.Best()
	fmt.Fprintf(w, "\nBest node: azimuth %.0f°, tilt %.0f°\n", az, tilt)
}

func truncate(s string, n int) string {
	s = strings.TrimSpace(s)
	if len(s) <= n {
		return s
	}
	return s[:n]
}
