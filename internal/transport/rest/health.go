package rest

import (
	"context"
	"net/http"
	"sync"
	"time"
)

const probeTimeout = 3 * time.Second

// pinger is anything a readiness probe can check.
type pinger interface {
	Ping(ctx context.Context) error
}

// HealthHandler serves liveness, readiness and detailed health endpoints.
type HealthHandler struct {
	components map[string]pinger
	version    string
}

// NewHealthHandler creates a HealthHandler that checks the database. More
// dependencies are added with WithComponent.
func NewHealthHandler(db pinger, version string) *HealthHandler {
	return &HealthHandler{components: map[string]pinger{"database": db}, version: version}
}

// WithComponent adds a named dependency to the readiness checks.
func (h *HealthHandler) WithComponent(name string, p pinger) *HealthHandler {
	h.components[name] = p
	return h
}

// HealthResponse is the JSON response for /health and /ready.
type HealthResponse struct {
	Status     string                `json:"status"`
	Version    string                `json:"version,omitempty"`
	Components map[string]CompStatus `json:"components,omitempty"`
	Timestamp  time.Time             `json:"timestamp"`
}

// CompStatus is the status of an individual component.
type CompStatus struct {
	Status  string `json:"status"`
	Latency string `json:"latency,omitempty"`
}

// Live is the liveness probe. Always returns 200.
func (h *HealthHandler) Live(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, HealthResponse{Status: "ok", Timestamp: time.Now()})
}

// Ready is the readiness probe: 200 when every component answers, 503
// otherwise.
func (h *HealthHandler) Ready(w http.ResponseWriter, r *http.Request) {
	_, ok := h.check(r.Context())
	if !ok {
		writeJSON(w, http.StatusServiceUnavailable, HealthResponse{Status: "down", Timestamp: time.Now()})
		return
	}
	writeJSON(w, http.StatusOK, HealthResponse{Status: "ok", Timestamp: time.Now()})
}

// Health reports every component with its ping latency and the build version.
func (h *HealthHandler) Health(w http.ResponseWriter, r *http.Request) {
	components, ok := h.check(r.Context())

	resp := HealthResponse{Status: "ok", Version: h.version, Components: components, Timestamp: time.Now()}
	status := http.StatusOK
	if !ok {
		resp.Status = "down"
		status = http.StatusServiceUnavailable
	}
	writeJSON(w, status, resp)
}

// check pings all components concurrently.
func (h *HealthHandler) check(ctx context.Context) (map[string]CompStatus, bool) {
	ctx, cancel := context.WithTimeout(ctx, probeTimeout)
	defer cancel()

	var (
		mu  sync.Mutex
		wg  sync.WaitGroup
		out = make(map[string]CompStatus, len(h.components))
		ok  = true
	)
	for name, p := range h.components {
		wg.Add(1)
		go func(name string, p pinger) {
			defer wg.Done()
			start := time.Now()
			err := p.Ping(ctx)
			st := CompStatus{Status: "ok", Latency: time.Since(start).String()}
			if err != nil {
				st = CompStatus{Status: "down"}
			}
			mu.Lock()
			out[name] = st
			if err != nil {
				ok = false
			}
			mu.Unlock()
		}(name, p)
	}
	wg.Wait()
	return out, ok
}
