package database

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"net"
	"net/url"
	"time"

	"github.com/XSAM/otelsql"
	_ "github.com/jackc/pgx/v5/stdlib"
	semconv "go.opentelemetry.io/otel/semconv/v1.24.0"

	"helloapi/internal/config"
)

// The pool only serves readiness pings.
const (
	probeConns       = 1
	probeIdleTimeout = time.Minute
	connectTimeout   = 5 * time.Second
)

var (
	ErrIncompleteConfig = errors.New("database config requires host, port, user and name")

	sqlOpen = sql.Open
)

// ProbeDSN builds a postgres:// URL for the readiness probe. appName is reported
// to the server as application_name so probe sessions are easy to spot.
func ProbeDSN(c config.DatabaseConfig, appName string) (string, error) {
	if c.Host == "" || c.Port == "" || c.User == "" || c.Name == "" {
		return "", ErrIncompleteConfig
	}

	q := url.Values{}
	q.Set("connect_timeout", fmt.Sprint(int(connectTimeout.Seconds())))
	if appName != "" {
		q.Set("application_name", appName)
	}
	if c.SSLMode != "" {
		q.Set("sslmode", c.SSLMode)
	}

	u := url.URL{
		Scheme:   "postgres",
		User:     url.User(c.User),
		Host:     net.JoinHostPort(c.Host, c.Port),
		Path:     "/" + c.Name,
		RawQuery: q.Encode(),
	}
	if c.Password != "" {
		u.User = url.UserPassword(c.User, c.Password)
	}
	return u.String(), nil
}

// Open connects a single-connection pool through pgx wrapped by otelsql and
// verifies it with a ping.
func Open(ctx context.Context, c config.DatabaseConfig, appName string) (*sql.DB, error) {
	dsn, err := ProbeDSN(c, appName)
	if err != nil {
		return nil, err
	}

	driverName, err := otelsql.Register("pgx", otelsql.WithAttributes(semconv.DBSystemPostgreSQL))
	if err != nil {
		return nil, fmt.Errorf("register otelsql: %w", err)
	}

	db, err := sqlOpen(driverName, dsn)
	if err != nil {
		return nil, fmt.Errorf("sql open: %w", err)
	}
	db.SetMaxOpenConns(probeConns)
	db.SetMaxIdleConns(probeConns)
	db.SetConnMaxIdleTime(probeIdleTimeout)

	ctx, cancel := context.WithTimeout(ctx, connectTimeout)
	defer cancel()
	if err := db.PingContext(ctx); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("db ping: %w", err)
	}
	return db, nil
}

// Pinger is a health.Checker backed by a *sql.DB.
type Pinger struct {
	db *sql.DB
}

// NewPinger wraps db as a readiness check.
func NewPinger(db *sql.DB) *Pinger {
	return &Pinger{db: db}
}

// Name implements health.Checker.
func (p *Pinger) Name() string { return "postgres" }

// Check implements health.Checker.
func (p *Pinger) Check(ctx context.Context) error {
	if err := p.db.PingContext(ctx); err != nil {
		return fmt.Errorf("db ping: %w", err)
	}
	return nil
}
