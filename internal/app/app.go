package app

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net"
	"net/http"
	"strconv"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"golang.org/x/sync/errgroup"

	"github.com/heartmarshall/storyflow-backend/internal/adapter/postgres"
	achievementrepo "github.com/heartmarshall/storyflow-backend/internal/adapter/postgres/achievement"
	commentrepo "github.com/heartmarshall/storyflow-backend/internal/adapter/postgres/comment"
	notificationrepo "github.com/heartmarshall/storyflow-backend/internal/adapter/postgres/notification"
	submissionrepo "github.com/heartmarshall/storyflow-backend/internal/adapter/postgres/submission"
	userrepo "github.com/heartmarshall/storyflow-backend/internal/adapter/postgres/user"
	"github.com/heartmarshall/storyflow-backend/internal/auth"
	"github.com/heartmarshall/storyflow-backend/internal/config"
	"github.com/heartmarshall/storyflow-backend/internal/observability/metrics"
	"github.com/heartmarshall/storyflow-backend/internal/realtime"
	"github.com/heartmarshall/storyflow-backend/internal/realtime/bus"
	"github.com/heartmarshall/storyflow-backend/internal/service/achievement"
	"github.com/heartmarshall/storyflow-backend/internal/service/comment"
	"github.com/heartmarshall/storyflow-backend/internal/service/notification"
	"github.com/heartmarshall/storyflow-backend/internal/service/submission"
	"github.com/heartmarshall/storyflow-backend/internal/service/user"
	"github.com/heartmarshall/storyflow-backend/internal/service/workflow"
	"github.com/heartmarshall/storyflow-backend/internal/transport/middleware"
	"github.com/heartmarshall/storyflow-backend/internal/transport/rest"
)

// App owns the long-lived dependencies of one storyflow process. The serve
// command runs it; maintenance commands use its services directly.
type App struct {
	Config *config.Config
	Log    *slog.Logger

	Pool        *pgxpool.Pool
	Tokens      *auth.JWTManager
	Users       *userrepo.Repo
	Transitions *submissionrepo.TransitionRepo

	UserService         *user.Service
	SubmissionService   *submission.Service
	WorkflowService     *workflow.Service
	CommentService      *comment.Service
	NotificationService *notification.Service
	AchievementService  *achievement.Service

	registry *prometheus.Registry
	hub      *realtime.Hub
	bus      *bus.RedisBus
}

// New connects to the database (and Redis when enabled) and wires every
// service. Call Close when done.
func New(ctx context.Context, cfg *config.Config, logger *slog.Logger) (*App, error) {
	pool, err := postgres.NewPool(ctx, cfg.Database)
	if err != nil {
		return nil, fmt.Errorf("connect to database: %w", err)
	}
	a, err := NewWithPool(ctx, cfg, logger, pool)
	if err != nil {
		pool.Close()
		return nil, err
	}
	return a, nil
}

// NewWithPool wires every service on an existing pool. Close also closes
// the pool.
func NewWithPool(ctx context.Context, cfg *config.Config, logger *slog.Logger, pool *pgxpool.Pool) (*App, error) {
	a := &App{
		Config:   cfg,
		Log:      logger,
		Pool:     pool,
		Tokens:   auth.NewJWTManager(cfg.Auth.JWTSecret, cfg.Auth.JWTIssuer, cfg.Auth.AccessTokenTTL),
		registry: prometheus.NewRegistry(),
	}

	a.registry.MustRegister(collectors.NewGoCollector(), collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))
	notifMetrics, err := metrics.NewNotificationMetrics(a.registry)
	if err != nil {
		return nil, fmt.Errorf("notification metrics: %w", err)
	}
	wfMetrics, err := metrics.NewWorkflowMetrics(a.registry)
	if err != nil {
		return nil, fmt.Errorf("workflow metrics: %w", err)
	}

	a.hub = realtime.NewHub(logger, cfg.Notification, notifMetrics)

	// Without Redis notifications go straight to this instance's hub.
	var live interface {
		Publish(ctx context.Context, msg realtime.Message) error
	} = a.hub
	if cfg.Redis.Enabled {
		a.bus, err = bus.NewRedisBus(ctx, logger, cfg.Redis)
		if err != nil {
			return nil, fmt.Errorf("connect to redis: %w", err)
		}
		live = a.bus
	}

	tx := postgres.NewTxManager(pool)
	a.Users = userrepo.New(pool)
	submissions := submissionrepo.New(pool)
	a.Transitions = submissionrepo.NewTransitionRepo(pool)

	a.NotificationService = notification.NewService(logger, notificationrepo.New(pool), a.Users, live, notifMetrics, cfg.Notification)
	a.AchievementService = achievement.NewService(logger, achievementrepo.New(pool), tx, a.NotificationService, notifMetrics)
	a.UserService = user.NewService(logger, a.Users)
	a.SubmissionService = submission.NewService(logger, submissions, cfg.Workflow)
	a.WorkflowService = workflow.NewService(logger, submissions, a.Transitions, tx,
		a.NotificationService, a.AchievementService, wfMetrics, cfg.Workflow)
	a.CommentService = comment.NewService(logger, commentrepo.New(pool), submissions, tx,
		a.NotificationService, a.AchievementService, cfg.Workflow)

	return a, nil
}

// Close releases the database pool and the Redis client.
func (a *App) Close() {
	if a.bus != nil {
		if err := a.bus.Close(); err != nil {
			a.Log.Warn("close redis", slog.String("error", err.Error()))
		}
	}
	a.Pool.Close()
}

// Handler builds the HTTP surface.
func (a *App) Handler() http.Handler {
	health := rest.NewHealthHandler(a.Pool, BuildVersion())
	if a.bus != nil {
		health = health.WithComponent("redis", a.bus)
	}

	cfg := rest.RouterConfig{
		Log:           a.Log,
		CORS:          a.Config.CORS,
		Validator:     a.Tokens,
		RateLimiter:   middleware.NewRateLimiter(a.Config.RateLimit),
		Health:        health,
		MetricsPath:   a.Config.Metrics.Path,
		Submissions:   rest.NewSubmissionHandler(a.SubmissionService, a.WorkflowService, a.Log),
		Comments:      rest.NewCommentHandler(a.CommentService, a.Log),
		Notifications: rest.NewNotificationHandler(a.NotificationService, a.hub, a.Log),
		Achievements:  rest.NewAchievementHandler(a.AchievementService, a.Log),
		Users:         rest.NewUserHandler(a.UserService, a.Log),
	}
	if a.Config.Metrics.Enabled {
		cfg.Metrics = promhttp.HandlerFor(a.registry, promhttp.HandlerOpts{Registry: a.registry})
	}
	return rest.NewRouter(cfg)
}

// Serve runs the HTTP server, the live heartbeat and, when Redis is enabled,
// the relay until ctx is cancelled or one of them fails.
func (a *App) Serve(ctx context.Context) error {
	srvCfg := a.Config.Server
	srv := &http.Server{
		Addr:         net.JoinHostPort(srvCfg.Host, strconv.Itoa(srvCfg.Port)),
		Handler:      a.Handler(),
		ReadTimeout:  srvCfg.ReadTimeout,
		WriteTimeout: srvCfg.WriteTimeout,
		IdleTimeout:  srvCfg.IdleTimeout,
	}
	// Open SSE streams would otherwise hold Shutdown until its timeout.
	srv.RegisterOnShutdown(a.hub.CloseAll)

	g, gctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		a.Log.Info("http server listening", slog.String("addr", srv.Addr))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return fmt.Errorf("http server: %w", err)
		}
		return nil
	})

	g.Go(func() error {
		<-gctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), srvCfg.ShutdownTimeout)
		defer cancel()
		a.Log.Info("shutting down http server")
		return srv.Shutdown(shutdownCtx)
	})

	g.Go(func() error {
		return a.hub.Run(gctx)
	})

	if a.bus != nil {
		g.Go(func() error {
			return a.bus.Forward(gctx, func(msg realtime.Message) {
				a.hub.Broadcast(msg.UserID, msg)
			})
		})
	}

	return g.Wait()
}
