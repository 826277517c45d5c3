package ws

import (
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"net/http"
	"time"

	"github.com/gorilla/websocket"

	"pv_yield/internal/model"
	"pv_yield/internal/optimize"
	"pv_yield/internal/project"
	"pv_yield/internal/simulator"
	"pv_yield/internal/store"
)

var upgrader = websocket.Upgrader{
	CheckOrigin: func(r *http.Request) bool { return true },
}

var errBadRequest = errors.New("malformed request")

// MessageCounter counts received messages by type.
type MessageCounter interface {
	Message(msgType string)
}

// Handler manages WebSocket connections. Each connection gets its own
// Session; computations run on the shared engine.
type Handler struct {
	hub     *Hub
	engine  *simulator.Engine
	counter MessageCounter
}

// NewHandler creates a handler. counter may be nil.
func NewHandler(hub *Hub, engine *simulator.Engine, counter MessageCounter) *Handler {
	return &Handler{hub: hub, engine: engine, counter: counter}
}

func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	conn, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		log.Printf("WebSocket upgrade error: %v", err)
		return
	}

	client := &Client{
		hub:     h.hub,
		conn:    conn,
		send:    make(chan []byte, 256),
		session: NewSession(),
	}

	h.hub.Register(client)
	go client.writePump()

	h.reply(client, TypeSessionState, h.sessionState(client.session))
	h.reply(client, TypePanelsState, PanelsStateFromFleet(client.session.Fleet))

	h.readPump(client)
}

func (h *Handler) readPump(c *Client) {
	defer func() {
		h.hub.Unregister(c)
		c.conn.Close()
	}()

	for {
		_, msg, err := c.conn.ReadMessage()
		if err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseNormalClosure) {
				log.Printf("WebSocket read error: %v", err)
			}
			return
		}

		h.handleMessage(c, msg)
	}
}

func (h *Handler) handleMessage(c *Client, msg []byte) {
	var env Envelope
	if err := json.Unmarshal(msg, &env); err != nil {
		log.Printf("Invalid message: %v", err)
		h.fail(c, "", fmt.Errorf("%w: %v", errBadRequest, err))
		return
	}
	if h.counter != nil {
		h.counter.Message(env.Type)
	}

	s := c.session
	switch env.Type {
	case TypeLocationSet:
		var p LocationPayload
		if !h.decode(c, env, &p) {
			return
		}
		s.Location = model.Geolocation{
			Lat:       p.Lat,
			Lon:       p.Lon,
			Elevation: p.Elevation,
			Timezone:  p.Timezone,
			Address:   p.Address,
		}
		h.reply(c, TypeSessionState, h.sessionState(s))

	case TypeDateSet:
		var p DatePayload
		if !h.decode(c, env, &p) {
			return
		}
		d, err := time.Parse(project.DateLayout, p.Date)
		if err != nil {
			h.fail(c, env.Type, fmt.Errorf("%w: date %q", errBadRequest, p.Date))
			return
		}
		s.Date = d
		h.reply(c, TypeSessionState, h.sessionState(s))

	case TypeWeatherSet:
		var p WeatherPayload
		if !h.decode(c, env, &p) {
			return
		}
		var w model.Weather
		var err error
		switch {
		case p.Disabled:
			w = model.ClearSkyWeather()
		case p.Factors != nil:
			w = *p.Factors
		default:
			w, err = model.WeatherFromPercentages(p.Overall, p.Monthly)
		}
		if err == nil {
			err = w.Validate()
		}
		if err != nil {
			h.fail(c, env.Type, err)
			return
		}
		s.Weather = w
		h.reply(c, TypeSessionState, h.sessionState(s))

	case TypePanelAdd:
		var edit model.PanelEdit
		if !h.decode(c, env, &edit) {
			return
		}
		i := s.Fleet.Add(model.NewPanel())
		if err := s.Fleet.Update(i, edit); err != nil {
			_ = s.Fleet.Delete(i)
			h.fail(c, env.Type, err)
			return
		}
		h.reply(c, TypePanelsState, PanelsStateFromFleet(s.Fleet))

	case TypePanelUpdate:
		var p PanelUpdatePayload
		if !h.decode(c, env, &p) {
			return
		}
		if err := s.updatePanel(p.PanelRef, p.Edit); err != nil {
			h.fail(c, env.Type, err)
			return
		}
		h.reply(c, TypePanelsState, PanelsStateFromFleet(s.Fleet))

	case TypePanelDelete:
		var p PanelRef
		if !h.decode(c, env, &p) {
			return
		}
		if err := s.deletePanel(p); err != nil {
			h.fail(c, env.Type, err)
			return
		}
		h.reply(c, TypePanelsState, PanelsStateFromFleet(s.Fleet))

	case TypePanelsClear:
		s.Fleet.Clear()
		h.reply(c, TypePanelsState, PanelsStateFromFleet(s.Fleet))

	case TypeResultDay:
		var p ComputePayload
		if !h.decode(c, env, &p) {
			return
		}
		res, err := h.engine.Day(s.Location, s.Fleet, s.Date, minutes(p.FreqMinute))
		if err != nil {
			h.fail(c, env.Type, err)
			return
		}
		h.reply(c, TypeResultDay, res)

	case TypeResultYear:
		var p ComputePayload
		if !h.decode(c, env, &p) {
			return
		}
		res, err := h.engine.Year(s.Location, s.Fleet, h.year(s, p), s.Weather, minutes(p.FreqMinute))
		if err != nil {
			h.fail(c, env.Type, err)
			return
		}
		h.reply(c, TypeResultYear, res)

	case TypeResultExtremes:
		var p ComputePayload
		if !h.decode(c, env, &p) {
			return
		}
		res, ok, err := h.engine.DaysOfInterest(s.Location, s.Fleet, h.year(s, p), minutes(p.FreqMinute))
		if err != nil {
			h.fail(c, env.Type, err)
			return
		}
		if !ok {
			h.reply(c, TypeOptiNone, OptiNonePayload{Request: env.Type, Reason: "no active and parametrized panel"})
			return
		}
		h.reply(c, TypeResultExtremes, res)

	case TypeOptiSurface:
		loc, err := h.engine.EnsureGrid(s.Location)
		if err != nil {
			h.fail(c, env.Type, err)
			return
		}
		s.Location = loc
		surf, err := h.engine.Surface(loc, s.Weather)
		if err != nil {
			h.fail(c, env.Type, err)
			return
		}
		h.reply(c, TypeOptiSurface, SurfaceFromEngine(surf))

	case TypeOptiAngle:
		var p OptiAngleRequest
		if !h.decode(c, env, &p) {
			return
		}
		axis, err := optimize.ParseAxis(p.Free)
		if err != nil {
			h.fail(c, env.Type, fmt.Errorf("%w: %v", errBadRequest, err))
			return
		}
		loc, out, err := h.engine.OptimizeAngle(s.Location, s.Weather, axis, p.Fixed)
		if err != nil {
			h.fail(c, env.Type, err)
			return
		}
		s.Location = loc
		if !out.OK {
			h.reply(c, TypeOptiNone, OptiNonePayload{Request: env.Type, Reason: "fixed angle missing"})
			return
		}
		h.reply(c, TypeOptiAngle, OptiAngleFromOutcome(out))

	default:
		log.Printf("Unknown message type: %s", env.Type)
		h.fail(c, env.Type, fmt.Errorf("%w: unknown message type %q", errBadRequest, env.Type))
	}
}

// decode unmarshals the payload into v. An absent payload leaves v untouched.
func (h *Handler) decode(c *Client, env Envelope, v any) bool {
	if len(env.Payload) == 0 {
		return true
	}
	if err := json.Unmarshal(env.Payload, v); err != nil {
		log.Printf("Invalid %s payload: %v", env.Type, err)
		h.fail(c, env.Type, fmt.Errorf("%w: %v", errBadRequest, err))
		return false
	}
	return true
}

func (h *Handler) year(s *Session, p ComputePayload) int {
	if p.Year != 0 {
		return p.Year
	}
	return s.Date.Year()
}

func minutes(n int) time.Duration {
	return time.Duration(n) * time.Minute
}

func (h *Handler) sessionState(s *Session) SessionStatePayload {
	p := SessionStatePayload{
		Location: s.Location,
		Date:     s.Date.Format(project.DateLayout),
		Weather:  s.Weather,
	}
	if key, err := store.KeyFor(s.Location); err == nil {
		p.GridKey = key.String()
	}
	// The grid itself is not sent back with every state update.
	p.Location.Grid = nil
	return p
}

func (h *Handler) reply(c *Client, msgType string, payload any) {
	msg, err := NewEnvelope(msgType, payload)
	if err != nil {
		log.Printf("Error creating %s message: %v", msgType, err)
		return
	}
	c.deliver(msg)
}

func (h *Handler) fail(c *Client, request string, err error) {
	p := ErrorFromEngine(request, err)
	if errors.Is(err, errBadRequest) {
		p.Kind = "bad_request"
		p.Message = err.Error()
		p.Detail = ""
	}
	h.reply(c, TypeError, p)
}
