package config

import (
	"fmt"
	"strings"
)

// Validate performs business-rule validation on the loaded configuration.
// It must be called after loading; Load calls it automatically.
func (c *Config) Validate() error {
	if len(c.Auth.JWTSecret) < 32 {
		return fmt.Errorf("auth.jwt_secret must be at least 32 characters (got %d)", len(c.Auth.JWTSecret))
	}

	if err := c.Workflow.validate(); err != nil {
		return fmt.Errorf("workflow: %w", err)
	}

	if err := c.Notification.validate(); err != nil {
		return fmt.Errorf("notification: %w", err)
	}

	if c.Redis.Enabled && strings.TrimSpace(c.Redis.Addr) == "" {
		return fmt.Errorf("redis.addr is required when redis is enabled")
	}

	if c.Metrics.Enabled && !strings.HasPrefix(c.Metrics.Path, "/") {
		return fmt.Errorf("metrics.path must start with / (got %q)", c.Metrics.Path)
	}

	return nil
}

func (w *WorkflowConfig) validate() error {
	if w.IdempotencyWindow < 0 {
		return fmt.Errorf("idempotency_window must be >= 0 (got %v)", w.IdempotencyWindow)
	}
	if w.BulkMaxItems <= 0 || w.BulkMaxItems > 1000 {
		return fmt.Errorf("bulk_max_items must be in 1..1000 (got %d)", w.BulkMaxItems)
	}
	if w.MaxContentLength <= 0 {
		return fmt.Errorf("max_content_length must be > 0 (got %d)", w.MaxContentLength)
	}
	if w.MaxFeedbackLength <= 0 {
		return fmt.Errorf("max_feedback_length must be > 0 (got %d)", w.MaxFeedbackLength)
	}
	return nil
}

func (n *NotificationConfig) validate() error {
	if n.HeartbeatInterval <= 0 {
		return fmt.Errorf("heartbeat_interval must be > 0 (got %v)", n.HeartbeatInterval)
	}
	if n.ConnectionBuffer <= 0 {
		return fmt.Errorf("connection_buffer must be > 0 (got %d)", n.ConnectionBuffer)
	}
	if n.PushTimeout <= 0 {
		return fmt.Errorf("push_timeout must be > 0 (got %v)", n.PushTimeout)
	}
	if n.RetentionDays <= 0 {
		return fmt.Errorf("retention_days must be > 0 (got %d)", n.RetentionDays)
	}
	if n.DefaultPageSize <= 0 || n.DefaultPageSize > 200 {
		return fmt.Errorf("default_page_size must be in 1..200 (got %d)", n.DefaultPageSize)
	}
	return nil
}
