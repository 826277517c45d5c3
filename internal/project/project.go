// Package project loads and saves installation projects: a location, its
// panels and a weather profile.
package project

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"gopkg.in/yaml.v3"

	"pv_yield/internal/model"
)

const DateLayout = "2006-01-02"

// File is the persisted project. Weather is optional; Date is YYYY-MM-DD.
type File struct {
	Location model.Geolocation `json:"location" yaml:"location"`
	Panels   []model.Panel     `json:"panels" yaml:"panels"`
	Weather  *model.Weather    `json:"weather,omitempty" yaml:"weather,omitempty"`
	Date     string            `json:"date,omitempty" yaml:"date,omitempty"`
}

// Format is the serialization of a project file.
type Format int

const (
	YAML Format = iota
	JSON
)

// FormatFor picks the format from the file extension; anything but .json is YAML.
func FormatFor(path string) Format {
	if strings.EqualFold(filepath.Ext(path), ".json") {
		return JSON
	}
	return YAML
}

// Load reads and validates a project file.
func Load(path string) (*File, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading project file: %w", err)
	}
	return Decode(data, FormatFor(path))
}

// Decode parses data in format and validates the result.
func Decode(data []byte, format Format) (*File, error) {
	var f File
	switch format {
	case JSON:
		if err := json.Unmarshal(data, &f); err != nil {
			return nil, fmt.Errorf("parsing project JSON: %w", err)
		}
	default:
		if err := yaml.Unmarshal(data, &f); err != nil {
			return nil, fmt.Errorf("parsing project YAML: %w", err)
		}
	}
	if err := f.Validate(); err != nil {
		return nil, err
	}
	return &f, nil
}

// Save writes f to path in the format given by its extension.
func Save(path string, f *File) error {
	data, err := Encode(f, FormatFor(path))
	if err != nil {
		return err
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("writing project file: %w", err)
	}
	return nil
}

func Encode(f *File, format Format) ([]byte, error) {
	switch format {
	case JSON:
		data, err := json.MarshalIndent(f, "", "  ")
		if err != nil {
			return nil, fmt.Errorf("encoding project JSON: %w", err)
		}
		return append(data, '\n'), nil
	default:
		data, err := yaml.Marshal(f)
		if err != nil {
			return nil, fmt.Errorf("encoding project YAML: %w", err)
		}
		return data, nil
	}
}

// Validate checks panels, weather, date and an attached grid.
func (f *File) Validate() error {
	for i, p := range f.Panels {
		if err := p.Validate(); err != nil {
			return fmt.Errorf("panel %d: %w", i, err)
		}
	}
	if f.Weather != nil {
		if err := f.Weather.Validate(); err != nil {
			return err
		}
	}
	if f.Date != "" {
		if _, err := time.Parse(DateLayout, f.Date); err != nil {
			return fmt.Errorf("date %q: %w", f.Date, err)
		}
	}
	if f.Location.Grid != nil {
		if err := f.Location.Grid.Validate(); err != nil {
			return err
		}
	}
	return nil
}

// Fleet returns the panels as a fleet, assigning IDs where missing.
func (f *File) Fleet() model.Fleet {
	var fleet model.Fleet
	for _, p := range f.Panels {
		fleet.Add(p)
	}
	return fleet
}

// SetFleet replaces the stored panels.
func (f *File) SetFleet(fleet model.Fleet) {
	f.Panels = append([]model.Panel(nil), fleet.Panels...)
}

// WeatherProfile returns the stored profile or clear sky.
func (f *File) WeatherProfile() model.Weather {
	if f.Weather == nil {
		return model.ClearSkyWeather()
	}
	return *f.Weather
}

// Day returns the stored date, or ok=false when none is set.
func (f *File) Day() (time.Time, bool) {
	if f.Date == "" {
		return time.Time{}, false
	}
	d, err := time.Parse(DateLayout, f.Date)
	if err != nil {
		return time.Time{}, false
	}
	return d, true
}
