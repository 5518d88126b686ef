package database

import (
	"context"
	"database/sql"
	"fmt"
	"net/url"
	"time"

	"github.com/XSAM/otelsql"
	_ "github.com/jackc/pgx/v5/stdlib"
	semconv "go.opentelemetry.io/otel/semconv/v1.24.0"

	"gamesapi/internal/config"
)

var sqlOpen = sql.Open

// ValidateURL checks that rawURL is a well-formed connection URL for the
// given store driver before any dial is attempted.
func ValidateURL(driver, rawURL string) error {
	if rawURL == "" {
		return fmt.Errorf("connection URL is required")
	}
	u, err := url.Parse(rawURL)
	if err != nil {
		return fmt.Errorf("parse connection URL: %w", err)
	}

	switch driver {
	case config.DriverMongo:
		if u.Scheme != "mongodb" && u.Scheme != "mongodb+srv" {
			return fmt.Errorf("unexpected scheme %q for mongo store", u.Scheme)
		}
	case config.DriverPostgres:
		if u.Scheme != "postgres" && u.Scheme != "postgresql" {
			return fmt.Errorf("unexpected scheme %q for postgres store", u.Scheme)
		}
	default:
		return fmt.Errorf("unknown store driver %q", driver)
	}

	if u.Host == "" {
		return fmt.Errorf("connection URL has no host")
	}
	return nil
}

// NewPostgres opens a database/sql connection using the pgx stdlib driver and
// applies pooling settings.
func NewPostgres(c config.StoreConfig) (*sql.DB, error) {
	if err := ValidateURL(config.DriverPostgres, c.URL); err != nil {
		return nil, err
	}

	// Register the otelsql driver wrapper
	driverName, err := otelsql.Register("pgx",
		otelsql.WithAttributes(semconv.DBSystemPostgreSQL),
		otelsql.WithSQLCommenter(true),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to register otelsql: %w", err)
	}

	db, err := sqlOpen(driverName, c.URL)
	if err != nil {
		return nil, fmt.Errorf("sql open: %w", err)
	}

	// Apply connection pool settings if provided
	if c.MaxOpenConns > 0 {
		db.SetMaxOpenConns(c.MaxOpenConns)
	}
	if c.MaxIdleConns > 0 {
		db.SetMaxIdleConns(c.MaxIdleConns)
	}
	if c.ConnMaxLifetimeSec > 0 {
		db.SetConnMaxLifetime(time.Duration(c.ConnMaxLifetimeSec) * time.Second)
	}

	// Verify connectivity with a short timeout
	ctx, cancel := context.WithTimeout(context.Background(), connectTimeout(c))
	defer cancel()
	if err := db.PingContext(ctx); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("db ping: %w", err)
	}

	return db, nil
}

func connectTimeout(c config.StoreConfig) time.Duration {
	if c.ConnectTimeoutSec > 0 {
		return time.Duration(c.ConnectTimeoutSec) * time.Second
	}
	return 10 * time.Second
}
