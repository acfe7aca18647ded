// Package prefs is the local key-value store the reminder list is persisted in.
package prefs

import (
	"context"
	"fmt"
	"log"

	"github.com/go-redis/redis"
	"github.com/pathakanu/linkLater/internal/config"
	"github.com/pathakanu/linkLater/internal/database"
)

// Store reads and writes opaque string values by key.
type Store interface {
	Get(ctx context.Context, key string) (value string, found bool, err error)
	Set(ctx context.Context, key, value string) error
}

// Open returns a redis-backed store when REDIS_URL is configured and a gorm-backed one otherwise.
func Open(cfg *config.Config, logger *log.Logger) (Store, error) {
	if cfg.RedisURL != "" {
		opts, err := redis.ParseURL(cfg.RedisURL)
		if err != nil {
			return nil, fmt.Errorf("parse REDIS_URL: %w", err)
		}
		client := redis.NewClient(opts)
		if err := client.Ping().Err(); err != nil {
			return nil, fmt.Errorf("redis ping: %w", err)
		}
		logger.Printf("prefs: using redis at %s", opts.Addr)
		return NewRedisStore(client, cfg.RedisNamespace), nil
	}

	db, err := database.New(cfg.DatabaseURL, cfg.SQLitePath)
	if err != nil {
		return nil, fmt.Errorf("database init: %w", err)
	}
	return NewGormStore(db), nil
}
