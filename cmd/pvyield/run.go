package main

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log"
	"os"
	"time"

	"pv_yield/internal/ingest"
	"pv_yield/internal/model"
	"pv_yield/internal/optimize"
	"pv_yield/internal/project"
	"pv_yield/internal/simulator"
	"pv_yield/internal/solar"
)

// inputs is a loaded project ready for computation.
type inputs struct {
	file    *project.File
	fleet   model.Fleet
	weather model.Weather
	engine  *simulator.Engine
}

func load(opts *options) (*inputs, error) {
	if opts.projectPath == "" {
		return nil, errors.New("--project is required")
	}
	f, err := project.Load(opts.projectPath)
	if err != nil {
		return nil, err
	}

	weather := f.WeatherProfile()
	if opts.weatherCSV != "" {
		weather, err = loadWeather(opts.weatherCSV, ingest.NewWeatherCSVParser())
		if err != nil {
			return nil, err
		}
	}

	return &inputs{
		file:    f,
		fleet:   f.Fleet(),
		weather: weather,
		engine:  simulator.New(solar.NewClearSky(), nil, nil),
	}, nil
}

func loadWeather(path string, parser ingest.Parser) (model.Weather, error) {
	f, err := os.Open(path)
	if err != nil {
		return model.Weather{}, fmt.Errorf("opening weather profile: %w", err)
	}
	defer f.Close()

	w, err := parser.Parse(f)
	if err != nil {
		return model.Weather{}, fmt.Errorf("parsing %s: %w", path, err)
	}
	return w, nil
}

// explain prefixes engine errors with the user guidance for their kind.
func explain(err error) error {
	if model.ErrorKind(err) == "internal" {
		return err
	}
	return fmt.Errorf("%s %w", model.Guidance(err), err)
}

func (in *inputs) date(flag string) (time.Time, error) {
	if flag != "" {
		d, err := time.Parse(project.DateLayout, flag)
		if err != nil {
			return time.Time{}, fmt.Errorf("invalid --date %q: %w", flag, err)
		}
		return d, nil
	}
	if d, ok := in.file.Day(); ok {
		return d, nil
	}
	return time.Now(), nil
}

func (in *inputs) year(flag int) int {
	if flag != 0 {
		return flag
	}
	if d, ok := in.file.Day(); ok {
		return d.Year()
	}
	return time.Now().Year()
}

func minutes(n int) time.Duration {
	return time.Duration(n) * time.Minute
}

func writeJSON(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

func runDay(w io.Writer, opts *options, dateFlag string, freq int) error {
	in, err := load(opts)
	if err != nil {
		return err
	}
	date, err := in.date(dateFlag)
	if err != nil {
		return err
	}

	res, err := in.engine.Day(in.file.Location, in.fleet, date, minutes(freq))
	if err != nil {
		return explain(err)
	}
	if opts.asJSON {
		return writeJSON(w, res)
	}
	printDay(w, res)
	return nil
}

func runYear(w io.Writer, opts *options, yearFlag, freq int) error {
	in, err := load(opts)
	if err != nil {
		return err
	}

	res, err := in.engine.Year(in.file.Location, in.fleet, in.year(yearFlag), in.weather, minutes(freq))
	if err != nil {
		return explain(err)
	}
	if opts.asJSON {
		return writeJSON(w, res)
	}
	printYear(w, res)
	return nil
}

func runExtremes(w io.Writer, opts *options, yearFlag, freq int) error {
	in, err := load(opts)
	if err != nil {
		return err
	}

	res, ok, err := in.engine.DaysOfInterest(in.file.Location, in.fleet, in.year(yearFlag), minutes(freq))
	if err != nil {
		return explain(err)
	}
	if !ok {
		fmt.Fprintln(w, "No active and parametrized panel, nothing to rank.")
		return nil
	}
	if opts.asJSON {
		return writeJSON(w, res)
	}
	printExtremes(w, res)
	return nil
}

func runSurface(w io.Writer, opts *options, save bool) error {
	in, err := load(opts)
	if err != nil {
		return err
	}

	loc, err := in.engine.EnsureGrid(in.file.Location)
	if err != nil {
		return explain(err)
	}
	if err := in.saveGrid(opts, loc, save); err != nil {
		return err
	}
	s, err := in.engine.Surface(loc, in.weather)
	if err != nil {
		return explain(err)
	}
	if opts.asJSON {
		az, tilt, _ := s.Best()
		return writeJSON(w, map[string]any{
			"azimuth_deg":      s.AzimuthDeg,
			"tilt_deg":         s.TiltDeg,
			"percent":          s.Rows(),
			"best_azimuth_deg": az,
			"best_tilt_deg":    tilt,
		})
	}
	printSurface(w, s)
	return nil
}

func runOptimize(w io.Writer, opts *options, fixedAzimuth, fixedTilt *float64, save bool) error {
	in, err := load(opts)
	if err != nil {
		return err
	}

	free, fixed := optimize.Azimuth, fixedTilt
	if fixedAzimuth != nil {
		free, fixed = optimize.Tilt, fixedAzimuth
	}
	loc, out, err := in.engine.OptimizeAngle(in.file.Location, in.weather, free, fixed)
	if err != nil {
		return explain(err)
	}
	if !out.OK {
		fmt.Fprintln(w, "Set --fixed-azimuth or --fixed-tilt to optimize the other angle.")
		return nil
	}
	if err := in.saveGrid(opts, loc, save); err != nil {
		return err
	}
	if opts.asJSON {
		return writeJSON(w, map[string]any{
			"axis":           out.Axis.String(),
			"angle_deg":      out.AngleDeg,
			"efficiency_pct": out.EfficiencyPct,
		})
	}
	fmt.Fprintf(w, "Best %s: %d° (%.1f%% of the best orientation)\n", out.Axis, out.AngleDeg, out.EfficiencyPct)
	return nil
}

// saveGrid writes the project back with loc's grid attached. Panels keep the
// IDs assigned on load.
func (in *inputs) saveGrid(opts *options, loc model.Geolocation, save bool) error {
	if !save || in.file.Location.Grid == loc.Grid {
		return nil
	}
	in.file.Location = loc
	in.file.SetFleet(in.fleet)
	if err := project.Save(opts.projectPath, in.file); err != nil {
		return err
	}
	log.Printf("Saved orientation grid to %s", opts.projectPath)
	return nil
}
