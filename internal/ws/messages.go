package ws

import (
	"encoding/json"

	"pv_yield/internal/model"
	"pv_yield/internal/optimize"
	"pv_yield/internal/surface"
)

// Envelope wraps all WebSocket messages with a type discriminator.
type Envelope struct {
	Type    string          `json:"type"`
	Payload json.RawMessage `json:"payload,omitempty"`
}

// Message type constants
const (
	// Client -> Server
	TypeLocationSet    = "location:set"
	TypeDateSet        = "date:set"
	TypeWeatherSet     = "weather:set"
	TypePanelAdd       = "panel:add"
	TypePanelUpdate    = "panel:update"
	TypePanelDelete    = "panel:delete"
	TypePanelsClear    = "panels:clear"
	TypeResultDay      = "result:day"
	TypeResultYear     = "result:year"
	TypeResultExtremes = "result:extremes"
	TypeOptiSurface    = "opti:surface"
	TypeOptiAngle      = "opti:angle"

	// Server -> Client
	TypeSessionState = "session:state"
	TypePanelsState  = "panels:state"
	TypeOptiNone     = "opti:none"
	TypeGridBuilt    = "grid:built"
	TypeError        = "error"
)

// Client -> Server messages

type LocationPayload struct {
	Lat       *float64 `json:"lat"`
	Lon       *float64 `json:"lon"`
	Elevation *float64 `json:"elevation"`
	Timezone  string   `json:"timezone"`
	Address   string   `json:"address"`
}

type DatePayload struct {
	Date string `json:"date"`
}

// WeatherPayload sets the profile either as factors or as percentages.
type WeatherPayload struct {
	Factors  *model.Weather `json:"factors,omitempty"`
	Overall  *float64       `json:"overall_pct,omitempty"`
	Monthly  [12]*float64   `json:"monthly_pct"`
	Disabled bool           `json:"disabled,omitempty"`
}

// PanelRef points at a panel by ID or, when ID is empty, by position.
type PanelRef struct {
	Index *int   `json:"index,omitempty"`
	ID    string `json:"id,omitempty"`
}

type PanelUpdatePayload struct {
	PanelRef
	Edit model.PanelEdit `json:"edit"`
}

type ComputePayload struct {
	Year       int `json:"year,omitempty"`
	FreqMinute int `json:"freq_min,omitempty"`
}

type OptiAngleRequest struct {
	Free  string   `json:"free"`
	Fixed *float64 `json:"fixed"`
}

// Server -> Client messages

type SessionStatePayload struct {
	Location model.Geolocation `json:"location"`
	Date     string            `json:"date"`
	Weather  model.Weather     `json:"weather"`
	GridKey  string            `json:"grid_key,omitempty"`
}

type PanelInfo struct {
	Index int         `json:"index"`
	Label string      `json:"label"`
	Color string      `json:"color"`
	Ready bool        `json:"ready"`
	Panel model.Panel `json:"panel"`
}

type PanelsStatePayload struct {
	Panels []PanelInfo `json:"panels"`
}

type SurfacePayload struct {
	AzimuthDeg  []float64   `json:"azimuth_deg"`
	TiltDeg     []float64   `json:"tilt_deg"`
	Percent     [][]float64 `json:"percent"`
	BestAzimuth float64     `json:"best_azimuth_deg"`
	BestTilt    float64     `json:"best_tilt_deg"`
}

type OptiAnglePayload struct {
	Axis          string  `json:"axis"`
	AngleDeg      int     `json:"angle_deg"`
	EfficiencyPct float64 `json:"efficiency_pct"`
}

type OptiNonePayload struct {
	Request string `json:"request"`
	Reason  string `json:"reason"`
}

type GridBuiltPayload struct {
	DurationMs int64 `json:"duration_ms"`
}

type ErrorPayload struct {
	Request string `json:"request"`
	Kind    string `json:"kind"`
	Message string `json:"message"`
	Detail  string `json:"detail,omitempty"`
}

func NewEnvelope(msgType string, payload any) ([]byte, error) {
	var raw json.RawMessage
	if payload != nil {
		var err error
		raw, err = json.Marshal(payload)
		if err != nil {
			return nil, err
		}
	}
	return json.Marshal(Envelope{Type: msgType, Payload: raw})
}

func PanelsStateFromFleet(f model.Fleet) PanelsStatePayload {
	panels := make([]PanelInfo, 0, f.Len())
	for i, p := range f.Panels {
		panels = append(panels, PanelInfo{
			Index: i,
			Label: p.DisplayLabel(i),
			Color: p.DisplayColor(),
			Ready: p.Ready(),
			Panel: p,
		})
	}
	return PanelsStatePayload{Panels: panels}
}

func SurfaceFromEngine(s *surface.Surface) SurfacePayload {
	az, tilt, _ := s.Best()
	return SurfacePayload{
		AzimuthDeg:  s.AzimuthDeg,
		TiltDeg:     s.TiltDeg,
		Percent:     s.Rows(),
		BestAzimuth: az,
		BestTilt:    tilt,
	}
}

func OptiAngleFromOutcome(o optimize.Outcome) OptiAnglePayload {
	return OptiAnglePayload{
		Axis:          o.Axis.String(),
		AngleDeg:      o.AngleDeg,
		EfficiencyPct: o.EfficiencyPct,
	}
}

// ErrorFromEngine maps err to its kind and user guidance.
func ErrorFromEngine(request string, err error) ErrorPayload {
	p := ErrorPayload{
		Request: request,
		Kind:    model.ErrorKind(err),
		Message: model.Guidance(err),
	}
	if p.Message != err.Error() {
		p.Detail = err.Error()
	}
	return p
}
