// Package realtime holds the live notification channel: a registry of open
// per-user connections, a heartbeat, and the SSE writer.
package realtime

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/heartmarshall/storyflow-backend/internal/config"
	"github.com/heartmarshall/storyflow-backend/internal/observability/metrics"
)

// Event names carried by Message.
const (
	EventNotification = "notification"
	EventUnreadCount  = "unread_count"
	EventHeartbeat    = "heartbeat"
)

var (
	errConnClosed = errors.New("connection closed")
	errConnFull   = errors.New("outbound buffer full")
)

// Message is one frame pushed to a user's live connections.
type Message struct {
	Event  string          `json:"event"`
	UserID uuid.UUID       `json:"userId"`
	Data   json.RawMessage `json:"data,omitempty"`
}

// Conn is one open live connection of a user.
type Conn struct {
	ID     uuid.UUID
	UserID uuid.UUID

	outbound  chan Message
	done      chan struct{}
	closeOnce sync.Once
}

// Outbound delivers frames queued for this connection.
func (c *Conn) Outbound() <-chan Message { return c.outbound }

// Done is closed once the connection has been removed from the hub.
func (c *Conn) Done() <-chan struct{} { return c.done }

func (c *Conn) key() string { return connKey(c.UserID, c.ID) }

// push enqueues msg without blocking.
func (c *Conn) push(msg Message) error {
	select {
	case <-c.done:
		return errConnClosed
	default:
	}
	select {
	case c.outbound <- msg:
		return nil
	default:
		return errConnFull
	}
}

func (c *Conn) close() {
	c.closeOnce.Do(func() { close(c.done) })
}

func connKey(userID, connID uuid.UUID) string {
	return userID.String() + ":" + connID.String()
}

// Hub is the registry of live connections keyed "userId:connectionId".
// A zero Hub is not usable; call NewHub.
type Hub struct {
	mu    sync.Mutex
	conns map[string]*Conn

	buffer    int
	heartbeat time.Duration
	metrics   *metrics.NotificationMetrics
	log       *slog.Logger
}

// NewHub creates an empty hub. m may be nil.
func NewHub(log *slog.Logger, cfg config.NotificationConfig, m *metrics.NotificationMetrics) *Hub {
	buffer := cfg.ConnectionBuffer
	if buffer <= 0 {
		buffer = 16
	}
	return &Hub{
		conns:     make(map[string]*Conn),
		buffer:    buffer,
		heartbeat: cfg.HeartbeatInterval,
		metrics:   m,
		log:       log.With("component", "live_hub"),
	}
}

// Register opens a new connection for userID.
func (h *Hub) Register(userID uuid.UUID) *Conn {
	c := &Conn{
		ID:       uuid.New(),
		UserID:   userID,
		outbound: make(chan Message, h.buffer),
		done:     make(chan struct{}),
	}

	h.mu.Lock()
	h.conns[c.key()] = c
	n := len(h.conns)
	h.mu.Unlock()

	h.metrics.SetLiveConnections(n)
	h.log.Debug("live connection registered",
		slog.String("user_id", userID.String()),
		slog.String("conn_id", c.ID.String()),
	)
	return c
}

// Unregister removes c. It is safe to call more than once.
func (h *Hub) Unregister(c *Conn) {
	h.mu.Lock()
	if h.conns[c.key()] == c {
		delete(h.conns, c.key())
	}
	n := len(h.conns)
	h.mu.Unlock()

	c.close()
	h.metrics.SetLiveConnections(n)
}

// CloseAll drops every open connection so streaming handlers return. The
// HTTP server calls it on shutdown.
func (h *Hub) CloseAll() {
	h.mu.Lock()
	conns := h.conns
	h.conns = make(map[string]*Conn)
	h.mu.Unlock()

	for _, c := range conns {
		c.close()
	}
	h.metrics.SetLiveConnections(0)
}

// Len returns the number of open connections.
func (h *Hub) Len() int {
	h.mu.Lock()
	defer h.mu.Unlock()
	return len(h.conns)
}

// Broadcast pushes msg to every connection of userID and returns how many
// accepted it. Connections that fail the push are removed.
func (h *Hub) Broadcast(userID uuid.UUID, msg Message) int {
	prefix := userID.String() + ":"
	return h.pushMatching(func(key string) bool { return strings.HasPrefix(key, prefix) }, msg)
}

// Publish delivers msg to the local connections of msg.UserID.
func (h *Hub) Publish(_ context.Context, msg Message) error {
	h.Broadcast(msg.UserID, msg)
	return nil
}

func (h *Hub) pushMatching(match func(key string) bool, msg Message) int {
	h.mu.Lock()
	defer h.mu.Unlock()

	delivered := 0
	for key, c := range h.conns {
		if !match(key) {
			continue
		}
		frame := msg
		frame.UserID = c.UserID
		if err := c.push(frame); err != nil {
			delete(h.conns, key)
			c.close()
			h.metrics.RecordPush(false)
			h.log.Warn("live connection evicted",
				slog.String("user_id", c.UserID.String()),
				slog.String("conn_id", c.ID.String()),
				slog.String("reason", err.Error()),
			)
			continue
		}
		h.metrics.RecordPush(true)
		delivered++
	}
	h.metrics.SetLiveConnections(len(h.conns))
	return delivered
}

// Run sends a heartbeat frame to every connection each interval until ctx
// is cancelled. It returns nil on cancellation.
func (h *Hub) Run(ctx context.Context) error {
	if h.heartbeat <= 0 {
		<-ctx.Done()
		return nil
	}

	ticker := time.NewTicker(h.heartbeat)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return nil
		case <-ticker.C:
			h.Heartbeat()
		}
	}
}

// Heartbeat pushes one keepalive frame to every open connection.
func (h *Hub) Heartbeat() int {
	return h.pushMatching(func(string) bool { return true }, Message{Event: EventHeartbeat})
}
