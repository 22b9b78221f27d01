package sse

import (
	"context"
	"log/slog"

	"github.com/osse101/GardenBot_Go/internal/event"
)

// ForwardedTypes are the bus events relayed to stream clients
var ForwardedTypes = []event.Type{
	event.PlantWilting,
	event.PlantDied,
	event.TradeCommitted,
	event.TradeAborted,
}

// Subscriber bridges the internal event bus to the SSE hub
type Subscriber struct {
	hub *Hub
	bus event.Bus
}

// NewSubscriber creates a new SSE subscriber
func NewSubscriber(hub *Hub, bus event.Bus) *Subscriber {
	return &Subscriber{hub: hub, bus: bus}
}

// Subscribe registers the relay for every forwarded type
func (s *Subscriber) Subscribe() {
	names := make([]string, 0, len(ForwardedTypes))
	for _, t := range ForwardedTypes {
		s.bus.Subscribe(t, s.relay)
		names = append(names, string(t))
	}
	slog.Info(LogMsgSubscribed, "types", names)
}

// relay forwards the typed payload unchanged; clients decode by event type
func (s *Subscriber) relay(_ context.Context, evt event.Event) error {
	s.hub.Broadcast(evt)
	slog.Debug(LogMsgEventBroadcast, "event_type", evt.Type)
	return nil
}
