package ws

import (
	"log"
	"time"

	"pv_yield/internal/simulator"
)

// Bridge implements simulator.Recorder: it announces new grids to every
// connected client and forwards all activity to next.
type Bridge struct {
	hub  *Hub
	next simulator.Recorder
}

// NewBridge creates a bridge. next may be nil.
func NewBridge(hub *Hub, next simulator.Recorder) *Bridge {
	return &Bridge{hub: hub, next: next}
}

func (b *Bridge) GridBuilt(d time.Duration) {
	if b.next != nil {
		b.next.GridBuilt(d)
	}
	msg, err := NewEnvelope(TypeGridBuilt, GridBuiltPayload{DurationMs: d.Milliseconds()})
	if err != nil {
		log.Printf("Error marshaling grid:built: %v", err)
		return
	}
	b.hub.Broadcast(msg)
}

func (b *Bridge) Computation(kind string) {
	if b.next != nil {
		b.next.Computation(kind)
	}
}
