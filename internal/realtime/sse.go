package realtime

import (
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/google/uuid"
)

// ServeSSE streams the live frames of userID until the client goes away or
// the hub drops the connection.
func (h *Hub) ServeSSE(w http.ResponseWriter, r *http.Request, userID uuid.UUID) {
	flusher, ok := w.(http.Flusher)
	if !ok {
		http.Error(w, "streaming unsupported", http.StatusInternalServerError)
		return
	}
	// The server-wide write timeout would cut the stream.
	_ = http.NewResponseController(w).SetWriteDeadline(time.Time{})

	w.Header().Set("Content-Type", "text/event-stream")
	w.Header().Set("Cache-Control", "no-cache")
	w.Header().Set("Connection", "keep-alive")
	w.Header().Set("X-Accel-Buffering", "no")
	w.WriteHeader(http.StatusOK)

	conn := h.Register(userID)
	defer h.Unregister(conn)

	// Tell the client which connection it holds.
	if _, err := fmt.Fprintf(w, "retry: 5000\nevent: connected\ndata: {\"connectionId\":%q}\n\n", conn.ID); err != nil {
		return
	}
	flusher.Flush()

	ctx := r.Context()
	for {
		select {
		case <-ctx.Done():
			return
		case <-conn.Done():
			return
		case msg := <-conn.Outbound():
			if err := writeFrame(w, msg); err != nil {
				h.log.Debug("live write failed",
					slog.String("conn_id", conn.ID.String()),
					slog.String("error", err.Error()),
				)
				return
			}
			flusher.Flush()
		}
	}
}

func writeFrame(w http.ResponseWriter, msg Message) error {
	if msg.Event == EventHeartbeat {
		_, err := fmt.Fprint(w, ": heartbeat\n\n")
		return err
	}
	data := msg.Data
	if len(data) == 0 {
		data = []byte("{}")
	}
	_, err := fmt.Fprintf(w, "event: %s\ndata: %s\n\n", msg.Event, data)
	return err
}
