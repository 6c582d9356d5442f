// Package redis holds the logout revocation list. Every authenticated
// request checks it, so the client is tuned to fail fast rather than queue.
package redis

import (
	"context"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

const (
	defaultTimeout = 5 * time.Second
	// lookupTimeout bounds a single revocation check on the request path.
	lookupTimeout = 500 * time.Millisecond
)

// Config is read from REDIS_ADDR, REDIS_PASSWORD and REDIS_DB.
type Config struct {
	Addr     string
	Password string
	DB       int
	// Timeout bounds the startup ping; zero means defaultTimeout.
	Timeout time.Duration
}

// Connect opens the client backing the revocation list and pings it once.
func Connect(ctx context.Context, cfg Config) (*redis.Client, error) {
	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = defaultTimeout
	}

	client := redis.NewClient(options(cfg))

	pingCtx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	if err := client.Ping(pingCtx).Err(); err != nil {
		_ = client.Close()
		return nil, fmt.Errorf("redis ping %s: %w", cfg.Addr, err)
	}

	return client, nil
}

func options(cfg Config) *redis.Options {
	return &redis.Options{
		Addr:         cfg.Addr,
		Password:     cfg.Password,
		DB:           cfg.DB,
		ReadTimeout:  lookupTimeout,
		WriteTimeout: lookupTimeout,
		// A request waiting on the pool is a request stuck behind auth.
		PoolTimeout: lookupTimeout,
		MaxRetries:  1,
	}
}
