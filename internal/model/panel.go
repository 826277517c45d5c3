package model

import (
	"fmt"
	"math"

	"github.com/google/uuid"
)

// DefaultSpecificPowerWpm2 is the rated DC power per m² used when a panel has none:
// a 5 kWp reference array on 35 m², rounded to two decimals.
const DefaultSpecificPowerWpm2 = 142.86

// DefaultColor is the display color of a panel without one.
const DefaultColor = "#FF0000"

// Panel is one PV array of the installation.
type Panel struct {
	ID                string   `json:"id" yaml:"id"`
	Label             string   `json:"label,omitempty" yaml:"label,omitempty"`
	SizeM2            *float64 `json:"size_m2,omitempty" yaml:"size_m2,omitempty"`
	AzimuthDeg        *float64 `json:"azimuth_deg,omitempty" yaml:"azimuth_deg,omitempty"`
	TiltDeg           *float64 `json:"tilt_deg,omitempty" yaml:"tilt_deg,omitempty"`
	Active            bool     `json:"active" yaml:"active"`
	Color             string   `json:"color,omitempty" yaml:"color,omitempty"`
	SpecificPowerWpm2 *float64 `json:"specific_power_wpm2,omitempty" yaml:"specific_power_wpm2,omitempty"`
}

// NewPanel returns an empty active panel with a fresh ID.
func NewPanel() Panel {
	return Panel{ID: uuid.NewString(), Active: true}
}

// Ready reports whether size, azimuth and tilt are set. Inactive panels are always ready.
func (p Panel) Ready() bool {
	if !p.Active {
		return true
	}
	return p.SizeM2 != nil && p.AzimuthDeg != nil && p.TiltDeg != nil
}

// Orientation returns the panel facing. Only valid when Ready and Active.
func (p Panel) Orientation() Orientation {
	return Orientation{AzimuthDeg: *p.AzimuthDeg, TiltDeg: *p.TiltDeg}
}

// DCCapacityW returns the rated DC power: size × specific power.
func (p Panel) DCCapacityW() float64 {
	wpm2 := DefaultSpecificPowerWpm2
	if p.SpecificPowerWpm2 != nil {
		wpm2 = *p.SpecificPowerWpm2
	}
	return *p.SizeM2 * wpm2
}

// DisplayLabel returns the label or "<n>.Panel" for position index.
func (p Panel) DisplayLabel(index int) string {
	if p.Label != "" {
		return p.Label
	}
	return fmt.Sprintf("%d.Panel", index+1)
}

// DisplayColor returns the color or DefaultColor.
func (p Panel) DisplayColor() string {
	if p.Color != "" {
		return p.Color
	}
	return DefaultColor
}

// PanelEdit carries field updates. Nil fields are left untouched.
type PanelEdit struct {
	Label             *string  `json:"label,omitempty"`
	SizeM2            *float64 `json:"size_m2,omitempty"`
	AzimuthDeg        *float64 `json:"azimuth_deg,omitempty"`
	TiltDeg           *float64 `json:"tilt_deg,omitempty"`
	Active            *bool    `json:"active,omitempty"`
	Color             *string  `json:"color,omitempty"`
	SpecificPowerWpm2 *float64 `json:"specific_power_wpm2,omitempty"`
}

func (e PanelEdit) validate() error {
	if e.SizeM2 != nil && (*e.SizeM2 < 0 || math.IsNaN(*e.SizeM2) || math.IsInf(*e.SizeM2, 0)) {
		return fmt.Errorf("%w: size %v m²", ErrInvalidPanel, *e.SizeM2)
	}
	if e.AzimuthDeg != nil && !(*e.AzimuthDeg >= 0 && *e.AzimuthDeg < 360) {
		return fmt.Errorf("%w: azimuth %v° outside [0,360)", ErrInvalidPanel, *e.AzimuthDeg)
	}
	if e.TiltDeg != nil && !(*e.TiltDeg >= 0 && *e.TiltDeg <= 90) {
		return fmt.Errorf("%w: tilt %v° outside [0,90]", ErrInvalidPanel, *e.TiltDeg)
	}
	if e.SpecificPowerWpm2 != nil && !(*e.SpecificPowerWpm2 >= 0) {
		return fmt.Errorf("%w: specific power %v W/m²", ErrInvalidPanel, *e.SpecificPowerWpm2)
	}
	return nil
}

// Validate checks the set fields against their ranges.
func (p Panel) Validate() error {
	return PanelEdit{
		SizeM2:            p.SizeM2,
		AzimuthDeg:        p.AzimuthDeg,
		TiltDeg:           p.TiltDeg,
		SpecificPowerWpm2: p.SpecificPowerWpm2,
	}.validate()
}

func (p *Panel) apply(e PanelEdit) {
	if e.Label != nil {
		p.Label = *e.Label
	}
	if e.SizeM2 != nil {
		v := *e.SizeM2
		p.SizeM2 = &v
	}
	if e.AzimuthDeg != nil {
		v := *e.AzimuthDeg
		p.AzimuthDeg = &v
	}
	if e.TiltDeg != nil {
		v := *e.TiltDeg
		p.TiltDeg = &v
	}
	if e.Active != nil {
		p.Active = *e.Active
	}
	if e.Color != nil {
		p.Color = *e.Color
	}
	if e.SpecificPowerWpm2 != nil {
		v := *e.SpecificPowerWpm2
		p.SpecificPowerWpm2 = &v
	}
}

// Fleet is the ordered panel collection. Positions are always contiguous.
type Fleet struct {
	Panels []Panel `json:"panels" yaml:"panels"`
}

func (f *Fleet) Len() int { return len(f.Panels) }

// Add appends p, assigning an ID if it has none, and returns its index.
func (f *Fleet) Add(p Panel) int {
	if p.ID == "" {
		p.ID = uuid.NewString()
	}
	f.Panels = append(f.Panels, p)
	return len(f.Panels) - 1
}

// Clear removes every panel.
func (f *Fleet) Clear() {
	f.Panels = nil
}

// Delete removes the panel at index i and shifts later panels down by one.
func (f *Fleet) Delete(i int) error {
	if i < 0 || i >= len(f.Panels) {
		return fmt.Errorf("%w: %d of %d", ErrPanelIndex, i, len(f.Panels))
	}
	panels := make([]Panel, 0, len(f.Panels)-1)
	panels = append(panels, f.Panels[:i]...)
	panels = append(panels, f.Panels[i+1:]...)
	f.Panels = panels
	return nil
}

// DeleteByID removes the panel with the given ID.
func (f *Fleet) DeleteByID(id string) error {
	i := f.IndexOf(id)
	if i < 0 {
		return fmt.Errorf("%w: id %q", ErrPanelIndex, id)
	}
	return f.Delete(i)
}

// Update applies e to the panel at index i. Nothing changes when e is invalid.
func (f *Fleet) Update(i int, e PanelEdit) error {
	if i < 0 || i >= len(f.Panels) {
		return fmt.Errorf("%w: %d of %d", ErrPanelIndex, i, len(f.Panels))
	}
	if err := e.validate(); err != nil {
		return err
	}
	f.Panels[i].apply(e)
	return nil
}

// UpdateByID applies e to the panel with the given ID.
func (f *Fleet) UpdateByID(id string, e PanelEdit) error {
	i := f.IndexOf(id)
	if i < 0 {
		return fmt.Errorf("%w: id %q", ErrPanelIndex, id)
	}
	return f.Update(i, e)
}

// IndexOf returns the position of the panel with the given ID, or -1.
func (f *Fleet) IndexOf(id string) int {
	for i, p := range f.Panels {
		if p.ID == id {
			return i
		}
	}
	return -1
}

// Ready reports whether every panel is ready.
func (f *Fleet) Ready() bool {
	for _, p := range f.Panels {
		if !p.Ready() {
			return false
		}
	}
	return true
}

// IndexedPanel is a panel together with its fleet position.
type IndexedPanel struct {
	Index int
	Panel Panel
}

// Active returns the active and ready panels in fleet order.
func (f *Fleet) Active() []IndexedPanel {
	var out []IndexedPanel
	for i, p := range f.Panels {
		if p.Active && p.Ready() {
			out = append(out, IndexedPanel{Index: i, Panel: p})
		}
	}
	return out
}

// Check returns the first fleet precondition violated: empty fleet, no
// active panel, then an active panel that is not ready.
func (f *Fleet) Check() error {
	if len(f.Panels) == 0 {
		return ErrEmptyFleet
	}
	active := 0
	for _, p := range f.Panels {
		if p.Active {
			active++
		}
	}
	if active == 0 {
		return ErrNoActivePanel
	}
	for i, p := range f.Panels {
		if !p.Ready() {
			return &PanelNotReadyError{Index: i, Label: p.DisplayLabel(i)}
		}
	}
	return nil
}

// CheckInputs validates location then fleet and returns the resolved site.
func CheckInputs(loc Geolocation, fleet Fleet) (Site, error) {
	site, err := loc.Site()
	if err != nil {
		return Site{}, err
	}
	if err := fleet.Check(); err != nil {
		return Site{}, err
	}
	return site, nil
}
