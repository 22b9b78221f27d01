package discord

import (
	"bufio"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"slices"
	"strings"
	"sync"
	"time"

	"github.com/osse101/GardenBot_Go/internal/event"
	"github.com/osse101/GardenBot_Go/internal/sse"
)

// errStreamRejected marks responses that retrying cannot fix
var errStreamRejected = errors.New("notification stream rejected the request")

// SSEEvent is one garden notification read from the stream
type SSEEvent struct {
	ID        string          `json:"id"`
	Type      event.Type      `json:"type"`
	Version   string          `json:"version"`
	Timestamp int64           `json:"timestamp"`
	Payload   json.RawMessage `json:"payload"`
}

// SSEEventHandler handles one garden event type
type SSEEventHandler func(event SSEEvent) error

// SSEClient follows the API's garden notification stream, reconnecting with backoff
type SSEClient struct {
	baseURL    string
	apiKey     string
	handlers   map[event.Type][]SSEEventHandler
	httpClient *http.Client
	mu         sync.RWMutex
	shutdown   chan struct{}
	stopOnce   sync.Once
	cancel     context.CancelFunc
	wg         sync.WaitGroup
	connected  bool
}

// NewSSEClient creates a client; the stream is filtered to the types given handlers via OnEvent
func NewSSEClient(baseURL, apiKey string) *SSEClient {
	return &SSEClient{
		baseURL:  baseURL,
		apiKey:   apiKey,
		handlers: make(map[event.Type][]SSEEventHandler),
		// The stream stays open indefinitely
		httpClient: &http.Client{},
		shutdown:   make(chan struct{}),
	}
}

// OnEvent registers a handler; call before Start
func (c *SSEClient) OnEvent(eventType event.Type, handler SSEEventHandler) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.handlers[eventType] = append(c.handlers[eventType], handler)
}

// Start connects in the background and keeps reconnecting until Stop
func (c *SSEClient) Start(ctx context.Context) {
	ctx, c.cancel = context.WithCancel(ctx)
	c.wg.Add(1)
	go c.connectLoop(ctx)
}

// Stop disconnects and waits for the loop to exit; it is safe to call twice
func (c *SSEClient) Stop() {
	c.stopOnce.Do(func() {
		close(c.shutdown)
		if c.cancel != nil {
			c.cancel()
		}
	})
	c.wg.Wait()
}

// IsConnected reports whether the stream is currently open
func (c *SSEClient) IsConnected() bool {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.connected
}

func (c *SSEClient) setConnected(v bool) {
	c.mu.Lock()
	c.connected = v
	c.mu.Unlock()
}

// subscribedTypes lists the handled types in a stable order
func (c *SSEClient) subscribedTypes() []string {
	c.mu.RLock()
	defer c.mu.RUnlock()
	types := make([]string, 0, len(c.handlers))
	for t := range c.handlers {
		types = append(types, string(t))
	}
	slices.Sort(types)
	return types
}

func (c *SSEClient) connectLoop(ctx context.Context) {
	defer c.wg.Done()

	backoff := sseInitialBackoff
	failures := 0

	for {
		select {
		case <-c.shutdown:
			slog.Info(sseLogMsgClientStopped)
			return
		case <-ctx.Done():
			slog.Info(sseLogMsgClientStopped)
			return
		default:
		}

		err := c.connect(ctx)
		if err == nil {
			backoff = sseInitialBackoff
			failures = 0
			continue
		}
		if errors.Is(err, errStreamRejected) {
			slog.Error(sseLogMsgStreamRejected, "error", err)
			return
		}

		failures++
		slog.Warn(sseLogMsgConnectionFailed, "error", err, "backoff", backoff, "consecutive_failures", failures)

		timer := time.NewTimer(backoff)
		select {
		case <-timer.C:
			backoff = min(time.Duration(float64(backoff)*sseBackoffMultiplier), sseMaxBackoff)
		case <-c.shutdown:
			timer.Stop()
			return
		case <-ctx.Done():
			timer.Stop()
			return
		}
	}
}

func (c *SSEClient) connect(ctx context.Context) error {
	url := c.baseURL + sseStreamPath
	if types := c.subscribedTypes(); len(types) > 0 {
		url += "?" + sse.QueryParamTypes + "=" + strings.Join(types, ",")
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Accept", "text/event-stream")
	req.Header.Set("Cache-Control", "no-cache")
	if c.apiKey != "" {
		req.Header.Set("X-API-Key", c.apiKey)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("failed to connect: %w", err)
	}
	defer resp.Body.Close()

	switch {
	case resp.StatusCode == http.StatusOK:
	case resp.StatusCode == http.StatusBadRequest || resp.StatusCode == http.StatusUnauthorized || resp.StatusCode == http.StatusForbidden:
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 1024))
		return fmt.Errorf("%w: status %d: %s", errStreamRejected, resp.StatusCode, strings.TrimSpace(string(body)))
	default:
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 1024))
		return fmt.Errorf("unexpected status %d: %s", resp.StatusCode, strings.TrimSpace(string(body)))
	}

	c.setConnected(true)
	defer c.setConnected(false)
	slog.Info(sseLogMsgClientConnected, "url", url)

	return c.readEvents(ctx, resp.Body)
}

func (c *SSEClient) readEvents(ctx context.Context, body io.Reader) error {
	scanner := bufio.NewScanner(body)
	scanner.Buffer(make([]byte, 0, sseBufferSize), sseBufferSize)

	var eventID, eventType, data string
	for scanner.Scan() {
		select {
		case <-c.shutdown:
			return nil
		case <-ctx.Done():
			return ctx.Err()
		default:
		}

		line := scanner.Text()
		switch {
		case line == "":
			if data != "" {
				c.dispatchEvent(eventID, eventType, data)
			}
			eventID, eventType, data = "", "", ""
		case strings.HasPrefix(line, "id: "):
			eventID = strings.TrimPrefix(line, "id: ")
		case strings.HasPrefix(line, "event: "):
			eventType = strings.TrimPrefix(line, "event: ")
		case strings.HasPrefix(line, "data: "):
			data = strings.TrimPrefix(line, "data: ")
		}
	}

	if err := scanner.Err(); err != nil {
		return fmt.Errorf("error reading stream: %w", err)
	}
	return fmt.Errorf("stream closed unexpectedly")
}

func (c *SSEClient) dispatchEvent(id, eventType, data string) {
	if eventType == "" || eventType == sse.EventTypeKeepalive || eventType == sse.EventTypeConnected {
		return
	}

	var evt SSEEvent
	if err := json.Unmarshal([]byte(data), &evt); err != nil {
		slog.Warn(sseLogMsgParseError, "error", err, "data", data)
		return
	}
	evt.Type = event.Type(eventType)
	if id != "" {
		evt.ID = id
	}
	if !supportedVersion(evt.Version) {
		slog.Warn(sseLogMsgUnsupportedVersion, "event_type", evt.Type, "version", evt.Version)
		return
	}

	c.mu.RLock()
	handlers := c.handlers[evt.Type]
	c.mu.RUnlock()

	for _, handler := range handlers {
		if err := handler(evt); err != nil {
			slog.Error(sseLogMsgHandlerError, "event_type", evt.Type, "error", err)
		}
	}
}

// supportedVersion accepts the payload major version the notifier decodes.
// Frames without a version predate versioning and use the same payloads.
func supportedVersion(v string) bool {
	major, _, _ := strings.Cut(event.EventSchemaVersion, ".")
	return v == "" || v == major || strings.HasPrefix(v, major+".")
}
