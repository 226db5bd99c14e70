// Package postgres is a reference implementation of the §6 "optional
// historical data provider" interface: (bridge_id, DateBucket) ->
// {open_count, total_count}, Beta-smoothed into an open probability. The
// connection shape (Config/DefaultConfig/NewClient) is adapted from
// storage/postgres.Client, minus the ledger-specific hash-chain operations
// that have no place in this domain.
package postgres

import (
	"context"
	"database/sql"
	"fmt"

	_ "github.com/lib/pq"
)

// Config holds PostgreSQL connection configuration.
type Config struct {
	Host         string
	Port         int
	User         string
	Password     string
	Database     string
	SSLMode      string
	MaxOpenConns int
	MaxIdleConns int
}

// DefaultConfig returns a default configuration for local development.
func DefaultConfig() Config {
	return Config{
		Host:         "localhost",
		Port:         5432,
		User:         "postgres",
		Password:     "postgres",
		Database:     "bridge_routing_history",
		SSLMode:      "disable",
		MaxOpenConns: 50,
		MaxIdleConns: 10,
	}
}

// Client wraps a PostgreSQL connection exposing bridge-open-count lookups.
type Client struct {
	db *sql.DB
}

// NewClient opens and pings a connection per cfg.
func NewClient(ctx context.Context, cfg Config) (*Client, error) {
	dsn := fmt.Sprintf(
		"host=%s port=%d user=%s password=%s dbname=%s sslmode=%s",
		cfg.Host, cfg.Port, cfg.User, cfg.Password, cfg.Database, cfg.SSLMode,
	)

	db, err := sql.Open("postgres", dsn)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}
	db.SetMaxOpenConns(cfg.MaxOpenConns)
	db.SetMaxIdleConns(cfg.MaxIdleConns)

	if err := db.PingContext(ctx); err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	return &Client{db: db}, nil
}

// Close closes the underlying connection.
func (c *Client) Close() error {
	return c.db.Close()
}

// OpenCounts is one (bridge_id, DateBucket) row's raw tallies.
type OpenCounts struct {
	BridgeID   string
	DateBucket int
	OpenCount  int64
	TotalCount int64
}

// OpenCounts fetches the raw tallies for one bridge and date bucket.
func (c *Client) OpenCounts(ctx context.Context, bridgeID string, bucket int) (OpenCounts, error) {
	const query = `
		SELECT bridge_id, date_bucket, open_count, total_count
		FROM bridge_open_history
		WHERE bridge_id = $1 AND date_bucket = $2
	`
	var oc OpenCounts
	err := c.db.QueryRowContext(ctx, query, bridgeID, bucket).Scan(&oc.BridgeID, &oc.DateBucket, &oc.OpenCount, &oc.TotalCount)
	if err != nil {
		return OpenCounts{}, fmt.Errorf("failed to fetch open counts: %w", err)
	}
	return oc, nil
}

// Probability returns the Beta-smoothed open probability for oc:
//
//	(open_count + alpha) / (total_count + alpha + beta)
func Probability(oc OpenCounts, alpha, beta float64) float64 {
	return (float64(oc.OpenCount) + alpha) / (float64(oc.TotalCount) + alpha + beta)
}
