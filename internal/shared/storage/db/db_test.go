package db

import (
	"context"
	"database/sql"
	"database/sql/driver"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/jackc/pgx/v5"
)

type nopDriver struct{}

func (d nopDriver) Open(name string) (driver.Conn, error) {
	if name == "unreachable" {
		return nil, errors.New("connection refused")
	}
	return nopConn{}, nil
}

type nopConn struct{}

func (nopConn) Prepare(query string) (driver.Stmt, error) { return nil, errors.New("not supported") }
func (nopConn) Close() error                              { return nil }
func (nopConn) Begin() (driver.Tx, error)                 { return nil, errors.New("not supported") }

var registerTestDriverOnce sync.Once

func withTestDriver(t *testing.T) {
	t.Helper()
	registerTestDriverOnce.Do(func() {
		sql.Register("dbtest", nopDriver{})
	})
	prev := openDB
	openDB = func(cfg pgx.ConnConfig) *sql.DB {
		db, _ := sql.Open("dbtest", cfg.Database)
		return db
	}
	t.Cleanup(func() { openDB = prev })
}

func TestConnectRequiresURL(t *testing.T) {
	if _, err := Connect(context.Background(), "  ", DefaultServerOptions()); err == nil {
		t.Fatalf("expected error for empty url")
	}
}

func TestConnectFailsWhenPingFails(t *testing.T) {
	withTestDriver(t)
	if _, err := Connect(context.Background(), "postgres://localhost:5432/unreachable", DefaultServerOptions()); err == nil {
		t.Fatalf("expected ping failure")
	}
}

func TestOptionsFromEnvAppliesOverrides(t *testing.T) {
	withTestDriver(t)

	t.Setenv("DB_MAX_OPEN_CONNS", "7")
	t.Setenv("DB_MAX_IDLE_CONNS", "3")
	t.Setenv("DB_CONN_MAX_LIFETIME", "20m")
	t.Setenv("DB_CONN_MAX_IDLE_TIME", "45s")
	t.Setenv("DB_PING_TIMEOUT", "1s")

	opts := OptionsFromEnv(DefaultServerOptions())
	db, err := Connect(context.Background(), "postgres://localhost:5432/resumes", opts)
	if err != nil {
		t.Fatalf("Connect: %v", err)
	}
	defer db.Close()

	if stats := db.Stats(); stats.MaxOpenConnections != 7 {
		t.Fatalf("expected MaxOpenConnections=7, got %d", stats.MaxOpenConnections)
	}
	if opts.MaxIdleConns != 3 {
		t.Fatalf("expected MaxIdleConns=3, got %d", opts.MaxIdleConns)
	}
	if opts.ConnMaxLifetime != 20*time.Minute {
		t.Fatalf("expected ConnMaxLifetime=20m, got %s", opts.ConnMaxLifetime)
	}
	if opts.ConnMaxIdleTime != 45*time.Second {
		t.Fatalf("expected ConnMaxIdleTime=45s, got %s", opts.ConnMaxIdleTime)
	}
	if opts.PingTimeout != time.Second {
		t.Fatalf("expected PingTimeout=1s, got %s", opts.PingTimeout)
	}
}

func TestOptionsFromEnvIgnoresInvalidValues(t *testing.T) {
	t.Setenv("DB_MAX_OPEN_CONNS", "lots")
	t.Setenv("DB_PING_TIMEOUT", "fast")

	opts := OptionsFromEnv(DefaultMigrateOptions())
	if opts.MaxOpenConns != 1 {
		t.Fatalf("expected default MaxOpenConns=1, got %d", opts.MaxOpenConns)
	}
	if opts.PingTimeout != 5*time.Second {
		t.Fatalf("expected default PingTimeout=5s, got %s", opts.PingTimeout)
	}
}

func TestPingNilDB(t *testing.T) {
	if err := Ping(context.Background(), nil, 0); err == nil {
		t.Fatalf("expected error for nil db")
	}
}

func TestConnectRejectsMalformedURL(t *testing.T) {
	withTestDriver(t)
	if _, err := Connect(context.Background(), "postgres://%zz", DefaultServerOptions()); err == nil {
		t.Fatalf("expected parse error")
	}
}

func TestConnectSetsApplicationName(t *testing.T) {
	withTestDriver(t)
	var seen pgx.ConnConfig
	prev := openDB
	openDB = func(cfg pgx.ConnConfig) *sql.DB {
		seen = cfg
		return prev(cfg)
	}
	t.Cleanup(func() { openDB = prev })

	db, err := Connect(context.Background(), "postgres://localhost:5432/resumes", DefaultMigrateOptions())
	if err != nil {
		t.Fatalf("Connect: %v", err)
	}
	defer db.Close()
	if got := seen.RuntimeParams["application_name"]; got != applicationName {
		t.Fatalf("application_name = %q", got)
	}
	if seen.Database != "resumes" {
		t.Fatalf("database = %q", seen.Database)
	}
}
