// Package bus relays live messages between instances over Redis pub/sub so
// a notification created on one instance reaches connections held by another.
package bus

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"time"

	goredis "github.com/redis/go-redis/v9"

	"github.com/heartmarshall/storyflow-backend/internal/config"
	"github.com/heartmarshall/storyflow-backend/internal/realtime"
)

// RedisBus publishes live messages to a Redis channel and forwards the
// channel back into the local hub.
type RedisBus struct {
	log     *slog.Logger
	rdb     *goredis.Client
	channel string
}

// NewRedisBus connects to Redis and verifies the connection.
func NewRedisBus(ctx context.Context, log *slog.Logger, cfg config.RedisConfig) (*RedisBus, error) {
	if cfg.DialTimeout <= 0 {
		cfg.DialTimeout = 5 * time.Second
	}
	rdb := goredis.NewClient(&goredis.Options{
		Addr:        cfg.Addr,
		Password:    cfg.Password,
		DB:          cfg.DB,
		DialTimeout: cfg.DialTimeout,
	})

	pingCtx, cancel := context.WithTimeout(ctx, cfg.DialTimeout)
	defer cancel()
	if err := rdb.Ping(pingCtx).Err(); err != nil {
		_ = rdb.Close()
		return nil, fmt.Errorf("redis ping: %w", err)
	}

	return &RedisBus{
		log:     log.With("component", "redis_bus"),
		rdb:     rdb,
		channel: cfg.Channel,
	}, nil
}

// Publish sends msg to every instance subscribed to the channel, this one included.
func (b *RedisBus) Publish(ctx context.Context, msg realtime.Message) error {
	raw, err := json.Marshal(msg)
	if err != nil {
		return fmt.Errorf("marshal live message: %w", err)
	}
	if err := b.rdb.Publish(ctx, b.channel, raw).Err(); err != nil {
		return fmt.Errorf("redis publish: %w", err)
	}
	return nil
}

// Forward subscribes to the channel and calls onMsg for every message until
// ctx is cancelled. It returns nil on cancellation.
func (b *RedisBus) Forward(ctx context.Context, onMsg func(realtime.Message)) error {
	if onMsg == nil {
		return errors.New("onMsg callback required")
	}

	sub := b.rdb.Subscribe(ctx, b.channel)
	defer sub.Close()

	// Receive blocks until the subscription is confirmed.
	if _, err := sub.Receive(ctx); err != nil {
		if ctx.Err() != nil {
			return nil
		}
		return fmt.Errorf("redis subscribe: %w", err)
	}
	b.log.Info("live relay subscribed", slog.String("channel", b.channel))

	ch := sub.Channel()
	for {
		select {
		case <-ctx.Done():
			return nil
		case m, ok := <-ch:
			if !ok {
				return errors.New("redis subscription closed")
			}
			var msg realtime.Message
			if err := json.Unmarshal([]byte(m.Payload), &msg); err != nil {
				b.log.Warn("bad live relay payload", slog.String("error", err.Error()))
				continue
			}
			onMsg(msg)
		}
	}
}

// Close releases the Redis client.
func (b *RedisBus) Close() error {
	return b.rdb.Close()
}

// Ping checks the Redis connection for readiness probes.
func (b *RedisBus) Ping(ctx context.Context) error {
	return b.rdb.Ping(ctx).Err()
}
