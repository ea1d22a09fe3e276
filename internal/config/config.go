package config

import "time"

// Config is the root application configuration.
type Config struct {
	Server       ServerConfig       `yaml:"server"`
	Database     DatabaseConfig     `yaml:"database"`
	Auth         AuthConfig         `yaml:"auth"`
	Log          LogConfig          `yaml:"log"`
	CORS         CORSConfig         `yaml:"cors"`
	RateLimit    RateLimitConfig    `yaml:"rate_limit"`
	Workflow     WorkflowConfig     `yaml:"workflow"`
	Notification NotificationConfig `yaml:"notification"`
	Redis        RedisConfig        `yaml:"redis"`
	Metrics      MetricsConfig      `yaml:"metrics"`
}

// CORSConfig holds CORS settings.
type CORSConfig struct {
	AllowedOrigins   string `yaml:"allowed_origins"   env:"CORS_ALLOWED_ORIGINS"   env-default:"*"`
	AllowedMethods   string `yaml:"allowed_methods"   env:"CORS_ALLOWED_METHODS"   env-default:"GET,POST,PATCH,DELETE,OPTIONS"`
	AllowedHeaders   string `yaml:"allowed_headers"   env:"CORS_ALLOWED_HEADERS"   env-default:"Authorization,Content-Type,Idempotency-Key"`
	AllowCredentials bool   `yaml:"allow_credentials" env:"CORS_ALLOW_CREDENTIALS" env-default:"true"`
	MaxAge           int    `yaml:"max_age"           env:"CORS_MAX_AGE"           env-default:"86400"`
}

// ServerConfig holds HTTP server settings.
// WriteTimeout does not apply to the SSE stream, which clears its own deadline.
type ServerConfig struct {
	Host            string        `yaml:"host"             env:"SERVER_HOST"             env-default:"0.0.0.0"`
	Port            int           `yaml:"port"             env:"SERVER_PORT"             env-default:"8080"`
	ReadTimeout     time.Duration `yaml:"read_timeout"     env:"SERVER_READ_TIMEOUT"     env-default:"10s"`
	WriteTimeout    time.Duration `yaml:"write_timeout"    env:"SERVER_WRITE_TIMEOUT"    env-default:"30s"`
	IdleTimeout     time.Duration `yaml:"idle_timeout"     env:"SERVER_IDLE_TIMEOUT"     env-default:"60s"`
	ShutdownTimeout time.Duration `yaml:"shutdown_timeout" env:"SERVER_SHUTDOWN_TIMEOUT" env-default:"10s"`
}

// DatabaseConfig holds PostgreSQL connection settings.
type DatabaseConfig struct {
	DSN             string        `yaml:"dsn"                env:"DATABASE_DSN"                env-required:"true"`
	MaxConns        int32         `yaml:"max_conns"          env:"DATABASE_MAX_CONNS"          env-default:"25"`
	MinConns        int32         `yaml:"min_conns"          env:"DATABASE_MIN_CONNS"          env-default:"5"`
	MaxConnLifetime time.Duration `yaml:"max_conn_lifetime"  env:"DATABASE_MAX_CONN_LIFETIME"  env-default:"1h"`
	MaxConnIdleTime time.Duration `yaml:"max_conn_idle_time" env:"DATABASE_MAX_CONN_IDLE_TIME" env-default:"30m"`
}

// AuthConfig holds the settings for verifying identity-provider tokens.
type AuthConfig struct {
	JWTSecret      string        `yaml:"jwt_secret"       env:"AUTH_JWT_SECRET"       env-required:"true"`
	JWTIssuer      string        `yaml:"jwt_issuer"       env:"AUTH_JWT_ISSUER"       env-default:"storyflow"`
	AccessTokenTTL time.Duration `yaml:"access_token_ttl" env:"AUTH_ACCESS_TOKEN_TTL" env-default:"15m"`
}

// LogConfig holds logging settings.
type LogConfig struct {
	Level  string `yaml:"level"  env:"LOG_LEVEL"  env-default:"info"`
	Format string `yaml:"format" env:"LOG_FORMAT" env-default:"json"`
}

// RateLimitConfig holds per-IP request limits.
type RateLimitConfig struct {
	RequestsPerMinute int           `yaml:"requests_per_minute" env:"RATE_LIMIT_RPM"     env-default:"300"`
	CleanupInterval   time.Duration `yaml:"cleanup_interval"    env:"RATE_LIMIT_CLEANUP" env-default:"5m"`
}

// WorkflowConfig holds submission workflow settings.
type WorkflowConfig struct {
	IdempotencyWindow time.Duration `yaml:"idempotency_window"  env:"WORKFLOW_IDEMPOTENCY_WINDOW"  env-default:"5s"`
	BulkMaxItems      int           `yaml:"bulk_max_items"      env:"WORKFLOW_BULK_MAX_ITEMS"      env-default:"100"`
	MaxContentLength  int           `yaml:"max_content_length"  env:"WORKFLOW_MAX_CONTENT_LENGTH"  env-default:"200000"`
	MaxFeedbackLength int           `yaml:"max_feedback_length" env:"WORKFLOW_MAX_FEEDBACK_LENGTH" env-default:"5000"`
}

// NotificationConfig holds fan-out and live channel settings.
type NotificationConfig struct {
	HeartbeatInterval time.Duration `yaml:"heartbeat_interval" env:"NOTIFICATION_HEARTBEAT_INTERVAL" env-default:"15s"`
	ConnectionBuffer  int           `yaml:"connection_buffer"  env:"NOTIFICATION_CONNECTION_BUFFER"  env-default:"16"`
	RetentionDays     int           `yaml:"retention_days"     env:"NOTIFICATION_RETENTION_DAYS"     env-default:"90"`
	DefaultPageSize   int           `yaml:"default_page_size"  env:"NOTIFICATION_DEFAULT_PAGE_SIZE"  env-default:"20"`
	PushTimeout       time.Duration `yaml:"push_timeout"       env:"NOTIFICATION_PUSH_TIMEOUT"       env-default:"500ms"`
}

// RedisConfig enables the cross-instance live channel relay.
type RedisConfig struct {
	Enabled     bool          `yaml:"enabled"      env:"REDIS_ENABLED"      env-default:"false"`
	Addr        string        `yaml:"addr"         env:"REDIS_ADDR"         env-default:"localhost:6379"`
	Password    string        `yaml:"password"     env:"REDIS_PASSWORD"`
	DB          int           `yaml:"db"           env:"REDIS_DB"           env-default:"0"`
	Channel     string        `yaml:"channel"      env:"REDIS_CHANNEL"      env-default:"storyflow:notifications"`
	DialTimeout time.Duration `yaml:"dial_timeout" env:"REDIS_DIAL_TIMEOUT" env-default:"5s"`
}

// MetricsConfig controls the Prometheus endpoint.
type MetricsConfig struct {
	Enabled bool   `yaml:"enabled" env:"METRICS_ENABLED" env-default:"true"`
	Path    string `yaml:"path"    env:"METRICS_PATH"    env-default:"/metrics"`
}
