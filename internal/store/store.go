package store

import (
	"fmt"
	"math"
	"sort"
	"sync"

	"pv_yield/internal/model"
)

// Coordinate tolerance of the cache key: 1e-4° is about 11 m.
const keyPrecision = 1e4

// Key identifies a resolved location in the grid cache.
type Key struct {
	Lat        float64
	Lon        float64
	ElevationM int
	Timezone   string
}

func (k Key) String() string {
	return fmt.Sprintf("%.4f,%.4f,%dm,%s", k.Lat, k.Lon, k.ElevationM, k.Timezone)
}

// KeyFor derives the cache key of a location, or ErrResolution if it is not ready.
func KeyFor(loc model.Geolocation) (Key, error) {
	if !loc.Ready() {
		return Key{}, model.ErrResolution
	}
	return Key{
		Lat:        math.Round(*loc.Lat*keyPrecision) / keyPrecision,
		Lon:        math.Round(*loc.Lon*keyPrecision) / keyPrecision,
		ElevationM: int(math.Round(*loc.Elevation)),
		Timezone:   loc.Timezone,
	}, nil
}

// Observer receives cache lookups outcomes.
type Observer interface {
	CacheHit()
	CacheMiss()
}

// GridStore caches optimization grids per location. Grids are shared and must
// not be modified by callers.
type GridStore struct {
	mu    sync.RWMutex
	grids map[Key]*model.Grid
	obs   Observer
}

func New(obs Observer) *GridStore {
	return &GridStore{
		grids: make(map[Key]*model.Grid),
		obs:   obs,
	}
}

// Get returns the cached grid for key.
func (s *GridStore) Get(key Key) (*model.Grid, bool) {
	s.mu.RLock()
	g, ok := s.grids[key]
	s.mu.RUnlock()

	if s.obs != nil {
		if ok {
			s.obs.CacheHit()
		} else {
			s.obs.CacheMiss()
		}
	}
	return g, ok
}

// Peek returns the cached grid for key without reporting a hit or miss.
func (s *GridStore) Peek(key Key) (*model.Grid, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	g, ok := s.grids[key]
	return g, ok
}

// Put stores grid for key. A grid failing validation is rejected.
func (s *GridStore) Put(key Key, grid *model.Grid) error {
	if err := grid.Validate(); err != nil {
		return err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.grids[key] = grid
	return nil
}

// Invalidate drops the grid for key and reports whether one was cached.
func (s *GridStore) Invalidate(key Key) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	_, ok := s.grids[key]
	delete(s.grids, key)
	return ok
}

// Clear drops every grid.
func (s *GridStore) Clear() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.grids = make(map[Key]*model.Grid)
}

// Len returns the number of cached grids.
func (s *GridStore) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.grids)
}

// Keys returns the cached keys sorted by string form.
func (s *GridStore) Keys() []Key {
	s.mu.RLock()
	defer s.mu.RUnlock()

	keys := make([]Key, 0, len(s.grids))
	for k := range s.grids {
		keys = append(keys, k)
	}
	sort.Slice(keys, func(i, j int) bool {
		return keys[i].String() < keys[j].String()
	})
	return keys
}
