package rest

import (
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/heartmarshall/storyflow-backend/internal/config"
	"github.com/heartmarshall/storyflow-backend/internal/transport/middleware"
)

// RouterConfig carries everything the HTTP surface is built from.
type RouterConfig struct {
	Log         *slog.Logger
	CORS        config.CORSConfig
	Validator   middleware.TokenValidator
	RateLimiter *middleware.RateLimiter

	Health        *HealthHandler
	Metrics       http.Handler // nil disables the metrics endpoint
	MetricsPath   string
	Submissions   *SubmissionHandler
	Comments      *CommentHandler
	Notifications *NotificationHandler
	Achievements  *AchievementHandler
	Users         *UserHandler
}

// NewRouter wires the REST and SSE routes.
func NewRouter(cfg RouterConfig) http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.RequestID, middleware.Recovery(cfg.Log), middleware.CORS(cfg.CORS))

	// Probes and metrics stay reachable without credentials.
	r.Group(func(r chi.Router) {
		r.Use(middleware.Logger(cfg.Log))
		r.Get("/live", cfg.Health.Live)
		r.Get("/ready", cfg.Health.Ready)
		r.Get("/health", cfg.Health.Health)
		if cfg.Metrics != nil {
			r.Handle(cfg.MetricsPath, cfg.Metrics)
		}
	})

	r.Route("/api", func(r chi.Router) {
		r.Use(middleware.Auth(cfg.Validator), middleware.Logger(cfg.Log), middleware.RequireAuth)
		if cfg.RateLimiter != nil {
			r.Use(cfg.RateLimiter.Limit)
		}

		r.Route("/submissions", func(r chi.Router) {
			s := cfg.Submissions
			r.Post("/", s.Create)
			r.Get("/queue", s.Queue)
			r.Get("/mine", s.Mine)
			r.Route("/{id}", func(r chi.Router) {
				r.Get("/", s.Get)
				r.Patch("/", s.Update)
				r.Delete("/", s.Delete)
				r.Post("/transitions", s.Transition)
				r.Get("/transitions", s.History)
				r.Get("/actions", s.Actions)
				r.Get("/comments", cfg.Comments.List)
				r.Post("/comments", cfg.Comments.Create)
			})
		})

		r.Route("/comments/{id}", func(r chi.Router) {
			r.Patch("/", cfg.Comments.Edit)
			r.Delete("/", cfg.Comments.Delete)
			r.Post("/resolve", cfg.Comments.Resolve)
		})

		r.Route("/notifications", func(r chi.Router) {
			n := cfg.Notifications
			r.Get("/", n.List)
			r.Get("/unread-count", n.UnreadCount)
			r.Get("/stream", n.Stream)
			r.Post("/read", n.MarkRead)
			r.Post("/unread", n.MarkUnread)
			r.Post("/read-all", n.MarkAllRead)
			r.Delete("/{id}", n.Delete)
		})

		r.Get("/achievements", cfg.Achievements.List)

		r.Get("/users/me", cfg.Users.Me)
		r.Post("/users/me", cfg.Users.Register)

		r.Route("/admin", func(r chi.Router) {
			// Bulk status targets are gated per role by the workflow service.
			r.Post("/submissions/status", cfg.Submissions.BulkStatus)
			r.With(middleware.RequireAdmin).Get("/users", cfg.Users.List)
			r.With(middleware.RequireAdmin).Patch("/users/{id}/role", cfg.Users.SetRole)
		})
	})

	return r
}
