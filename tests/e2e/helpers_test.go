//go:build e2e

package e2e_test

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/stretchr/testify/require"

	"github.com/heartmarshall/storyflow-backend/internal/adapter/postgres/testhelper"
	"github.com/heartmarshall/storyflow-backend/internal/app"
	"github.com/heartmarshall/storyflow-backend/internal/config"
	"github.com/heartmarshall/storyflow-backend/internal/domain"
)

// testServer wraps the full-stack HTTP server for E2E tests.
type testServer struct {
	URL    string
	Client *http.Client
	Pool   *pgxpool.Pool
	app    *app.App
}

// testLogWriter adapts testing.T to io.Writer for slog.
type testLogWriter struct{ t *testing.T }

func (w testLogWriter) Write(p []byte) (int, error) {
	w.t.Helper()
	w.t.Log(string(p))
	return len(p), nil
}

func testConfig() *config.Config {
	return &config.Config{
		Auth: config.AuthConfig{
			JWTSecret:      "test-secret-at-least-32-chars-long!!",
			JWTIssuer:      "test-issuer",
			AccessTokenTTL: 15 * time.Minute,
		},
		CORS: config.CORSConfig{
			AllowedOrigins: "*",
			AllowedMethods: "GET,POST,PATCH,DELETE,OPTIONS",
			AllowedHeaders: "Authorization,Content-Type,Idempotency-Key",
			MaxAge:         86400,
		},
		Workflow: config.WorkflowConfig{
			IdempotencyWindow: 5 * time.Second,
			BulkMaxItems:      100,
			MaxContentLength:  200000,
			MaxFeedbackLength: 5000,
		},
		Notification: config.NotificationConfig{
			HeartbeatInterval: time.Hour,
			ConnectionBuffer:  16,
			PushTimeout:       time.Second,
			RetentionDays:     90,
			DefaultPageSize:   20,
		},
		Metrics: config.MetricsConfig{Enabled: true, Path: "/metrics"},
	}
}

// setupTestServer bootstraps the full application stack backed by a real
// PostgreSQL container (shared via testhelper).
func setupTestServer(t *testing.T) *testServer {
	t.Helper()

	pool := testhelper.SetupTestDB(t)
	logger := slog.New(slog.NewTextHandler(testLogWriter{t}, &slog.HandlerOptions{Level: slog.LevelWarn}))

	a, err := app.NewWithPool(context.Background(), testConfig(), logger, pool)
	require.NoError(t, err)

	srv := httptest.NewServer(a.Handler())
	t.Cleanup(srv.Close)

	return &testServer{URL: srv.URL, Client: srv.Client(), Pool: pool, app: a}
}

// user is a seeded account with a valid access token.
type user struct {
	ID    uuid.UUID
	Role  domain.UserRole
	Token string
}

func (ts *testServer) newUser(t *testing.T, role domain.UserRole) user {
	t.Helper()
	u := testhelper.SeedUser(t, ts.Pool, role)
	tok, err := ts.app.Tokens.GenerateAccessToken(u.ID, role)
	require.NoError(t, err)
	return user{ID: u.ID, Role: role, Token: tok}
}

// do sends a JSON request and returns the status code and raw body.
func (ts *testServer) do(t *testing.T, method, path string, body any, token string) (int, []byte) {
	t.Helper()

	var rd io.Reader
	if body != nil {
		b, err := json.Marshal(body)
		require.NoError(t, err)
		rd = bytes.NewReader(b)
	}
	req, err := http.NewRequest(method, ts.URL+path, rd)
	require.NoError(t, err)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	resp, err := ts.Client.Do(req)
	require.NoError(t, err)
	defer resp.Body.Close()

	out, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	return resp.StatusCode, out
}

// doJSON is do plus decoding into a generic map.
func (ts *testServer) doJSON(t *testing.T, method, path string, body any, token string) (int, map[string]any) {
	t.Helper()
	status, raw := ts.do(t, method, path, body, token)
	var m map[string]any
	if len(raw) > 0 {
		require.NoError(t, json.Unmarshal(raw, &m), "body: %s", raw)
	}
	return status, m
}

// createDraft creates a draft as author and returns its id.
func (ts *testServer) createDraft(t *testing.T, author user, title string) string {
	t.Helper()
	status, body := ts.doJSON(t, http.MethodPost, "/api/submissions", map[string]any{
		"title":   title,
		"content": "It was a quiet evening in the village when the lantern started to glow.",
	}, author.Token)
	require.Equal(t, http.StatusCreated, status, "body: %v", body)
	return body["id"].(string)
}

// transition applies action and requires the wanted status code.
func (ts *testServer) transition(t *testing.T, actor user, id, action string, extra map[string]any, want int) map[string]any {
	t.Helper()
	req := map[string]any{"action": action}
	for k, v := range extra {
		req[k] = v
	}
	status, body := ts.doJSON(t, http.MethodPost, "/api/submissions/"+id+"/transitions", req, actor.Token)
	require.Equal(t, want, status, "%s as %s: %v", action, actor.Role, body)
	return body
}

func submissionStatus(t *testing.T, body map[string]any) string {
	t.Helper()
	sub, ok := body["submission"].(map[string]any)
	require.True(t, ok, "expected submission in %v", body)
	return sub["status"].(string)
}
