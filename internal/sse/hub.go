// Package sse streams garden notifications (wilting, deaths, trade
// outcomes) to long-lived HTTP clients such as the Discord bot.
package sse

import (
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"slices"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/osse101/GardenBot_Go/internal/event"
)

// ErrUnknownEventType is returned when a client filters on a type the stream never carries
var ErrUnknownEventType = errors.New(ErrMsgUnknownEventType)

// Event is one frame of the garden stream
type Event struct {
	ID        string `json:"id"`
	Type      string `json:"type"`
	Version   string `json:"version,omitempty"`
	Timestamp int64  `json:"timestamp"`
	Payload   any    `json:"payload"`
}

// Client is one connected stream consumer
type Client struct {
	ID           string
	EventChannel chan Event
	// Types is nil when the client takes every forwarded type
	Types map[event.Type]bool

	// dropped counts consecutive events lost to a full buffer
	dropped int
}

func (c *Client) wants(t event.Type) bool {
	return c.Types == nil || c.Types[t]
}

// Hub fans garden events out to stream clients
type Hub struct {
	mu       sync.RWMutex
	clients  map[string]*Client
	closed   bool
	events   chan event.Event
	shutdown chan struct{}
	stopOnce sync.Once
	wg       sync.WaitGroup
	now      func() time.Time
}

// NewHub creates a hub; call Start before broadcasting
func NewHub() *Hub {
	return &Hub{
		clients:  make(map[string]*Client),
		events:   make(chan event.Event, BroadcastBufferSize),
		shutdown: make(chan struct{}),
		now:      time.Now,
	}
}

// Start starts the fan-out loop
func (h *Hub) Start() {
	h.wg.Add(1)
	go h.run()
}

// Stop ends the fan-out loop and closes every client channel
func (h *Hub) Stop() {
	h.stopOnce.Do(func() {
		close(h.shutdown)
		h.wg.Wait()

		h.mu.Lock()
		h.closed = true
		for id, c := range h.clients {
			close(c.EventChannel)
			delete(h.clients, id)
		}
		h.mu.Unlock()
	})
}

func (h *Hub) run() {
	defer h.wg.Done()
	for {
		select {
		case evt := <-h.events:
			h.fanOut(evt)
		case <-h.shutdown:
			return
		}
	}
}

func (h *Hub) fanOut(evt event.Event) {
	frame := Event{
		ID:        uuid.NewString(),
		Type:      string(evt.Type),
		Version:   evt.Version,
		Timestamp: h.now().Unix(),
		Payload:   evt.Payload,
	}

	h.mu.Lock()
	defer h.mu.Unlock()
	for id, c := range h.clients {
		if !c.wants(evt.Type) {
			continue
		}
		select {
		case c.EventChannel <- frame:
			c.dropped = 0
		default:
			c.dropped++
			if c.dropped >= MaxDroppedEvents {
				slog.Warn(LogMsgClientEvicted, "client_id", id, "dropped", c.dropped)
				close(c.EventChannel)
				delete(h.clients, id)
			}
		}
	}
}

// Register adds a client. Empty types subscribes to every forwarded type;
// a type outside ForwardedTypes yields ErrUnknownEventType.
func (h *Hub) Register(types []string) (*Client, error) {
	client := &Client{
		ID:           uuid.NewString(),
		EventChannel: make(chan Event, ClientEventBuffer),
	}
	if len(types) > 0 {
		client.Types = make(map[event.Type]bool, len(types))
		for _, t := range types {
			if !slices.Contains(ForwardedTypes, event.Type(t)) {
				return nil, fmt.Errorf("%w: %q", ErrUnknownEventType, t)
			}
			client.Types[event.Type(t)] = true
		}
	}

	h.mu.Lock()
	defer h.mu.Unlock()
	if h.closed {
		close(client.EventChannel)
		return client, nil
	}
	h.clients[client.ID] = client
	return client, nil
}

// Unregister removes a client and closes its channel; unknown ids are ignored
func (h *Hub) Unregister(clientID string) {
	h.mu.Lock()
	defer h.mu.Unlock()
	if c, ok := h.clients[clientID]; ok {
		close(c.EventChannel)
		delete(h.clients, clientID)
	}
}

// Broadcast queues a bus event for every interested client. It never blocks;
// when the queue is full the event is dropped.
func (h *Hub) Broadcast(evt event.Event) {
	select {
	case h.events <- evt:
	default:
		slog.Warn(LogMsgEventDropped, "event_type", evt.Type)
	}
}

// ClientCount returns the number of connected clients
func (h *Hub) ClientCount() int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.clients)
}

// FormatSSEMessage renders evt as "id", "event" and "data" lines
func FormatSSEMessage(evt Event) ([]byte, error) {
	data, err := json.Marshal(evt)
	if err != nil {
		return nil, err
	}
	return fmt.Appendf(nil, "id: %s\nevent: %s\ndata: %s\n\n", evt.ID, evt.Type, data), nil
}
