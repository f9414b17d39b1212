package db

import (
	"context"
	"database/sql"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/avvvet/bloodbank-services/internal/bloodbank/config"

	_ "github.com/jackc/pgx/v5/stdlib"
	_ "github.com/mattn/go-sqlite3"
)

// DB hands out one connection per store operation. Idle connections are not
// kept, so a released connection is closed instead of being reused.
type DB struct {
	Driver string

	sqlDB *sql.DB

	// MaxRetryElapsed bounds how long a lock-busy statement is retried.
	MaxRetryElapsed time.Duration
}

// Connect opens the database for driver and verifies it answers.
func Connect(driver, dsn string) (*DB, error) {
	if driver != config.DriverSQLite && driver != config.DriverPostgres {
		return nil, fmt.Errorf("unsupported driver %q", driver)
	}

	sqlDB, err := sql.Open(driver, dsn)
	if err != nil {
		return nil, fmt.Errorf("open %s database: %w", driver, err)
	}
	sqlDB.SetMaxIdleConns(0)

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	// Try pinging to make sure it's valid
	if err := sqlDB.PingContext(ctx); err != nil {
		_ = sqlDB.Close()
		return nil, fmt.Errorf("ping %s database: %w", driver, err)
	}

	return &DB{
		Driver:          driver,
		sqlDB:           sqlDB,
		MaxRetryElapsed: 2 * time.Second,
	}, nil
}

// Close is for graceful shutdown
func (d *DB) Close() error {
	if d == nil || d.sqlDB == nil {
		return nil
	}
	return d.sqlDB.Close()
}

func (d *DB) Ping(ctx context.Context) error {
	return d.WithConn(ctx, func(conn *sql.Conn) error {
		return conn.PingContext(ctx)
	})
}

// WithConn acquires a dedicated connection, runs fn on it and releases the
// connection on every exit path. Lock-busy failures rerun the whole
// acquire/run/release cycle with backoff.
func (d *DB) WithConn(ctx context.Context, fn func(conn *sql.Conn) error) error {
	return d.retry(ctx, func() error {
		conn, err := d.sqlDB.Conn(ctx)
		if err != nil {
			return err
		}
		defer conn.Close()

		return fn(conn)
	})
}

// Rebind rewrites ? placeholders into the driver's bind syntax.
func (d *DB) Rebind(query string) string {
	if d.Driver != config.DriverPostgres {
		return query
	}

	var b strings.Builder
	b.Grow(len(query) + 8)
	n := 0
	for _, r := range query {
		if r == '?' {
			n++
			b.WriteByte('$')
			b.WriteString(strconv.Itoa(n))
			continue
		}
		b.WriteRune(r)
	}
	return b.String()
}
