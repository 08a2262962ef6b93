package db

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/stdlib"

	"resume-builder/internal/shared/telemetry"
)

const applicationName = "resume-builder"

// Options sizes the connection pool shared by the user and resume repos.
type Options struct {
	MaxOpenConns    int
	MaxIdleConns    int
	ConnMaxLifetime time.Duration
	ConnMaxIdleTime time.Duration
	PingTimeout     time.Duration
}

// openDB is swapped in tests for a driver that needs no server.
var openDB = func(cfg pgx.ConnConfig) *sql.DB { return stdlib.OpenDB(cfg) }

// DefaultServerOptions suits the API process.
func DefaultServerOptions() Options {
	return Options{
		MaxOpenConns:    10,
		MaxIdleConns:    5,
		ConnMaxIdleTime: 2 * time.Minute,
		ConnMaxLifetime: time.Hour,
		PingTimeout:     5 * time.Second,
	}
}

// DefaultMigrateOptions suits the one-shot migrate command.
func DefaultMigrateOptions() Options {
	opts := DefaultServerOptions()
	opts.MaxOpenConns = 1
	opts.MaxIdleConns = 1
	return opts
}

type envOverride struct {
	key   string
	apply func(*Options, string) error
}

var envOverrides = []envOverride{
	{"DB_MAX_OPEN_CONNS", intSetter(func(o *Options, v int) { o.MaxOpenConns = v })},
	{"DB_MAX_IDLE_CONNS", intSetter(func(o *Options, v int) { o.MaxIdleConns = v })},
	{"DB_CONN_MAX_LIFETIME", durationSetter(func(o *Options, v time.Duration) { o.ConnMaxLifetime = v })},
	{"DB_CONN_MAX_IDLE_TIME", durationSetter(func(o *Options, v time.Duration) { o.ConnMaxIdleTime = v })},
	{"DB_PING_TIMEOUT", durationSetter(func(o *Options, v time.Duration) { o.PingTimeout = v })},
}

// OptionsFromEnv applies DB_* overrides; unparsable values keep the default.
func OptionsFromEnv(defaults Options) Options {
	opts := defaults
	for _, o := range envOverrides {
		raw := strings.TrimSpace(os.Getenv(o.key))
		if raw == "" {
			continue
		}
		if err := o.apply(&opts, raw); err != nil {
			telemetry.Warn("db.env_invalid", map[string]any{"key": o.key, "error": err})
		}
	}
	return opts
}

func intSetter(set func(*Options, int)) func(*Options, string) error {
	return func(o *Options, raw string) error {
		v, err := strconv.Atoi(raw)
		if err != nil {
			return err
		}
		set(o, v)
		return nil
	}
}

func durationSetter(set func(*Options, time.Duration)) func(*Options, string) error {
	return func(o *Options, raw string) error {
		v, err := time.ParseDuration(raw)
		if err != nil {
			return err
		}
		set(o, v)
		return nil
	}
}

// Connect parses databaseURL with pgx, opens a database/sql pool over it and
// verifies connectivity. The pool is shared by every repository.
func Connect(ctx context.Context, databaseURL string, opts Options) (*sql.DB, error) {
	if strings.TrimSpace(databaseURL) == "" {
		return nil, errors.New("DATABASE_URL is empty")
	}
	connCfg, err := pgx.ParseConfig(databaseURL)
	if err != nil {
		return nil, fmt.Errorf("parse DATABASE_URL: %w", err)
	}
	if connCfg.RuntimeParams["application_name"] == "" {
		connCfg.RuntimeParams["application_name"] = applicationName
	}

	db := openDB(*connCfg)
	applyOptions(db, opts)
	if err := Ping(ctx, db, opts.PingTimeout); err != nil {
		_ = db.Close()
		return nil, err
	}

	stats := db.Stats()
	telemetry.Info("db.connected", map[string]any{
		"host":     connCfg.Host,
		"database": connCfg.Database,
		"max_open": stats.MaxOpenConnections,
	})
	return db, nil
}

// Ping checks connectivity within timeout (5s when non-positive).
func Ping(ctx context.Context, db *sql.DB, timeout time.Duration) error {
	if db == nil {
		return errors.New("database not configured")
	}
	if timeout <= 0 {
		timeout = 5 * time.Second
	}
	pingCtx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()
	if err := db.PingContext(pingCtx); err != nil {
		return fmt.Errorf("ping database: %w", err)
	}
	return nil
}

func applyOptions(db *sql.DB, opts Options) {
	def := DefaultServerOptions()
	if opts.MaxOpenConns <= 0 {
		opts.MaxOpenConns = def.MaxOpenConns
	}
	if opts.MaxIdleConns <= 0 {
		opts.MaxIdleConns = def.MaxIdleConns
	}
	if opts.ConnMaxLifetime <= 0 {
		opts.ConnMaxLifetime = def.ConnMaxLifetime
	}
	db.SetMaxOpenConns(opts.MaxOpenConns)
	db.SetMaxIdleConns(opts.MaxIdleConns)
	db.SetConnMaxLifetime(opts.ConnMaxLifetime)
	if opts.ConnMaxIdleTime > 0 {
		db.SetConnMaxIdleTime(opts.ConnMaxIdleTime)
	}
}
