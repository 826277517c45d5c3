package ws

import (
	"fmt"
	"time"

	"pv_yield/internal/model"
)

// Session is the per-connection project state. It is only touched by the
// connection's read loop.
type Session struct {
	Location model.Geolocation
	Fleet    model.Fleet
	Weather  model.Weather
	Date     time.Time
}

// NewSession starts with clear-sky weather and today's date.
func NewSession() *Session {
	now := time.Now()
	return &Session{
		Weather: model.ClearSkyWeather(),
		Date:    time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, time.UTC),
	}
}

func (s *Session) updatePanel(ref PanelRef, e model.PanelEdit) error {
	if ref.ID != "" {
		return s.Fleet.UpdateByID(ref.ID, e)
	}
	if ref.Index == nil {
		return fmt.Errorf("%w: no index or id", model.ErrPanelIndex)
	}
	return s.Fleet.Update(*ref.Index, e)
}

func (s *Session) deletePanel(ref PanelRef) error {
	if ref.ID != "" {
		return s.Fleet.DeleteByID(ref.ID)
	}
	if ref.Index == nil {
		return fmt.Errorf("%w: no index or id", model.ErrPanelIndex)
	}
	return s.Fleet.Delete(*ref.Index)
}
