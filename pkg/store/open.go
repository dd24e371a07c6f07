package store

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/sirupsen/logrus"

	"holdem-server/internal/config"
	"holdem-server/pkg/db"
)

// Open returns the store selected by the configuration
// SQL backends are migrated before they are returned. The closer releases any connections.
func Open(ctx context.Context, cfg config.Config) (Store, func() error, error) {
	noop := func() error { return nil }

	switch cfg.Store.Driver {
	case "", "memory":
		return NewMemory(), noop, nil
	case "postgres":
		return openSQL(db.Postgres, cfg.Store.PGDSN, migrations(cfg.MigrationsPath, "postgres"))
	case "sqlite":
		return openSQL(db.SQLite, cfg.Store.SQLitePath, migrations(cfg.MigrationsPath, "sqlite"))
	case "redis":
		client := redis.NewClient(&redis.Options{
			Addr: cfg.Store.RedisAddr,
			DB:   cfg.Store.RedisDB,
		})

		if err := client.Ping(ctx).Err(); err != nil {
			_ = client.Close()
			return nil, nil, fmt.Errorf("could not connect to redis: %w", err)
		}

		ttl := time.Duration(cfg.Store.RedisTTL) * time.Second
		return NewRedis(client, ttl), client.Close, nil
	}

	return nil, nil, fmt.Errorf("unknown store driver: %s", cfg.Store.Driver)
}

func openSQL(dialect db.Dialect, dsn, migrationsPath string) (Store, func() error, error) {
	d, err := db.Open(dialect, dsn)
	if err != nil {
		return nil, nil, err
	}

	if err := d.Migrate(migrationsPath); err != nil {
		_ = d.Close()
		return nil, nil, err
	}

	logrus.WithField("dialect", dialect).Info("opened sql store")
	return NewSQL(d), d.Close, nil
}

func migrations(base, dialect string) string {
	return strings.TrimSuffix(base, "/") + "/" + dialect
}
