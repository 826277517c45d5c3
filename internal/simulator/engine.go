package simulator

import (
	"fmt"
	"time"

	"golang.org/x/sync/singleflight"

	"pv_yield/internal/grid"
	"pv_yield/internal/model"
	"pv_yield/internal/optimize"
	"pv_yield/internal/solar"
	"pv_yield/internal/store"
	"pv_yield/internal/surface"
)

// Computation kinds reported to the Recorder.
const (
	KindDay      = "day"
	KindYear     = "year"
	KindExtremes = "extremes"
	KindSurface  = "surface"
	KindOptimize = "optimize"
)

// Recorder receives engine activity. Implemented by the metrics package.
type Recorder interface {
	GridBuilt(d time.Duration)
	Computation(kind string)
}

type nopRecorder struct{}

func (nopRecorder) GridBuilt(time.Duration) {}
func (nopRecorder) Computation(string)      {}

// Engine wires the power model, grid builder, grid cache and optimizer
// behind one entry point.
type Engine struct {
	agg       *Aggregator
	builder   *grid.Builder
	grids     *store.GridStore
	optimizer *optimize.Optimizer
	rec       Recorder
	builds    singleflight.Group
}

// New creates an engine. A nil grids gets a private store; a nil rec discards activity.
func New(m solar.PowerModel, grids *store.GridStore, rec Recorder) *Engine {
	if grids == nil {
		grids = store.New(nil)
	}
	if rec == nil {
		rec = nopRecorder{}
	}
	return &Engine{
		agg:       NewAggregator(m),
		builder:   grid.NewBuilder(m),
		grids:     grids,
		optimizer: optimize.New(),
		rec:       rec,
	}
}

// Grids returns the engine's grid cache.
func (e *Engine) Grids() *store.GridStore { return e.grids }

func (e *Engine) Day(loc model.Geolocation, fleet model.Fleet, date time.Time, freq time.Duration) (*DayResult, error) {
	e.rec.Computation(KindDay)
	return e.agg.Day(loc, fleet, date, freq)
}

func (e *Engine) Year(loc model.Geolocation, fleet model.Fleet, year int, weather model.Weather, freq time.Duration) (*YearResult, error) {
	e.rec.Computation(KindYear)
	return e.agg.Year(loc, fleet, year, weather, freq)
}

func (e *Engine) DaysOfInterest(loc model.Geolocation, fleet model.Fleet, year int, freq time.Duration) (*DaysOfInterest, bool, error) {
	e.rec.Computation(KindExtremes)
	return e.agg.FindDaysOfInterest(loc, fleet, year, freq)
}

// EnsureGrid returns loc carrying a grid: its own, the cached one for its
// key, or a freshly built one. Concurrent requests for one key share a single
// build, and a new grid is cached only after a complete build.
func (e *Engine) EnsureGrid(loc model.Geolocation) (model.Geolocation, error) {
	if loc.Grid != nil {
		return loc, nil
	}
	key, err := store.KeyFor(loc)
	if err != nil {
		return loc, err
	}
	if g, ok := e.grids.Get(key); ok {
		return loc.WithGrid(g), nil
	}

	v, err, _ := e.builds.Do(key.String(), func() (any, error) {
		// A build for this key may have finished since the lookup above.
		if g, ok := e.grids.Peek(key); ok {
			return g, nil
		}
		start := time.Now()
		out, built, err := e.builder.Ensure(loc)
		if err != nil {
			return nil, err
		}
		if built {
			e.rec.GridBuilt(time.Since(start))
		}
		if err := e.grids.Put(key, out.Grid); err != nil {
			return nil, fmt.Errorf("caching grid for %s: %w", key, err)
		}
		return out.Grid, nil
	})
	if err != nil {
		return loc, err
	}
	return loc.WithGrid(v.(*model.Grid)), nil
}

// InvalidateGrid drops the cached grid of loc. The next optimization rebuilds it.
func (e *Engine) InvalidateGrid(loc model.Geolocation) bool {
	key, err := store.KeyFor(loc)
	if err != nil {
		return false
	}
	return e.grids.Invalidate(key)
}

// Surface computes the efficiency surface from the grid attached to loc or
// cached for it. It never builds a grid.
func (e *Engine) Surface(loc model.Geolocation, weather model.Weather) (*surface.Surface, error) {
	e.rec.Computation(KindSurface)
	g := loc.Grid
	if g == nil {
		key, err := store.KeyFor(loc)
		if err != nil {
			return nil, err
		}
		cached, ok := e.grids.Get(key)
		if !ok {
			return nil, model.ErrGridUnavailable
		}
		g = cached
	}
	return surface.Compute(g, weather)
}

// OptimizeAngle finds the best free angle given the fixed other one. The grid
// is built on the first request for a location; the returned location carries
// it. A nil fixed angle declines without touching the grid.
func (e *Engine) OptimizeAngle(loc model.Geolocation, weather model.Weather, free optimize.Axis, fixed *float64) (model.Geolocation, optimize.Outcome, error) {
	e.rec.Computation(KindOptimize)
	if fixed == nil {
		return loc, optimize.Outcome{Axis: free}, nil
	}
	if err := weather.Validate(); err != nil {
		return loc, optimize.Outcome{}, err
	}
	loc, err := e.EnsureGrid(loc)
	if err != nil {
		return loc, optimize.Outcome{}, err
	}
	s, err := surface.Compute(loc.Grid, weather)
	if err != nil {
		return loc, optimize.Outcome{}, err
	}
	out, err := e.optimizer.Optimize(s, free, fixed)
	return loc, out, err
}
