package db

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	_ "github.com/jackc/pgx/v5/stdlib" // registers the "pgx" database/sql driver
	"github.com/spf13/viper"

	"elevate-backend/internal/shared/telemetry"
)

// Options tunes the connection pool.
type Options struct {
	MaxOpenConns    int
	MaxIdleConns    int
	ConnMaxLifetime time.Duration
	ConnMaxIdleTime time.Duration
	PingTimeout     time.Duration
}

var openDB = sql.Open

// DefaultServerOptions suits the long-running API process.
func DefaultServerOptions() Options {
	return Options{
		MaxOpenConns:    10,
		MaxIdleConns:    5,
		ConnMaxLifetime: time.Hour,
		ConnMaxIdleTime: 2 * time.Minute,
		PingTimeout:     5 * time.Second,
	}
}

// DefaultMigrateOptions suits one-shot migration runs.
func DefaultMigrateOptions() Options {
	opts := DefaultServerOptions()
	opts.MaxOpenConns = 1
	opts.MaxIdleConns = 1
	return opts
}

// OptionsFromEnv lets DB_MAX_OPEN_CONNS, DB_MAX_IDLE_CONNS, DB_CONN_MAX_LIFETIME,
// DB_CONN_MAX_IDLE_TIME and DB_PING_TIMEOUT override defaults. Unparsable or
// non-positive values are ignored.
func OptionsFromEnv(defaults Options) Options {
	v := viper.New()
	v.SetEnvPrefix("DB")
	v.AutomaticEnv()

	opts := defaults
	overrideInt(v, "MAX_OPEN_CONNS", &opts.MaxOpenConns)
	overrideInt(v, "MAX_IDLE_CONNS", &opts.MaxIdleConns)
	overrideDuration(v, "CONN_MAX_LIFETIME", &opts.ConnMaxLifetime)
	overrideDuration(v, "CONN_MAX_IDLE_TIME", &opts.ConnMaxIdleTime)
	overrideDuration(v, "PING_TIMEOUT", &opts.PingTimeout)
	return opts
}

func overrideInt(v *viper.Viper, key string, dst *int) {
	if !v.IsSet(key) {
		return
	}
	if n := v.GetInt(key); n > 0 {
		*dst = n
		return
	}
	telemetry.Warn("db.option_ignored", map[string]any{"key": "DB_" + key, "value": v.GetString(key)})
}

func overrideDuration(v *viper.Viper, key string, dst *time.Duration) {
	if !v.IsSet(key) {
		return
	}
	if d := v.GetDuration(key); d > 0 {
		*dst = d
		return
	}
	telemetry.Warn("db.option_ignored", map[string]any{"key": "DB_" + key, "value": v.GetString(key)})
}

// Connect opens a pgx-backed pool and verifies it with a bounded ping.
func Connect(ctx context.Context, databaseURL string, opts Options) (*sql.DB, error) {
	if strings.TrimSpace(databaseURL) == "" {
		return nil, errors.New("DATABASE_URL is empty")
	}

	pool, err := openDB("pgx", databaseURL)
	if err != nil {
		return nil, fmt.Errorf("open database: %w", err)
	}
	configurePool(pool, opts)

	timeout := opts.PingTimeout
	if timeout <= 0 {
		timeout = 5 * time.Second
	}
	pingCtx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()
	if err := pool.PingContext(pingCtx); err != nil {
		pool.Close()
		return nil, fmt.Errorf("ping database: %w", err)
	}

	telemetry.Info("db.connected", map[string]any{
		"max_open":          opts.MaxOpenConns,
		"max_idle":          opts.MaxIdleConns,
		"conn_max_lifetime": opts.ConnMaxLifetime.String(),
	})
	return pool, nil
}

func configurePool(pool *sql.DB, opts Options) {
	if opts.MaxOpenConns > 0 {
		pool.SetMaxOpenConns(opts.MaxOpenConns)
	}
	if opts.MaxIdleConns > 0 {
		pool.SetMaxIdleConns(opts.MaxIdleConns)
	}
	if opts.ConnMaxLifetime > 0 {
		pool.SetConnMaxLifetime(opts.ConnMaxLifetime)
	}
	if opts.ConnMaxIdleTime > 0 {
		pool.SetConnMaxIdleTime(opts.ConnMaxIdleTime)
	}
}
