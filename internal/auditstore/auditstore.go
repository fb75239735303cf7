// Package auditstore keeps a durable trail of workspace API calls in
// PostgreSQL. It is optional: when no audit database is configured the
// client falls back to its log sink.
package auditstore

import (
	"context"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/sirupsen/logrus"

	"github.com/labsyncio/labsync/client"
)

// Store writes API call records to the api_audit_log table.
type Store struct {
	pool *pgxpool.Pool
	log  *logrus.Logger
}

// Open connects to the audit database, applies pending migrations, and
// returns a ready Store.
func Open(ctx context.Context, databaseURL string, log *logrus.Logger) (*Store, error) {
	if log == nil {
		log = logrus.New()
	}
	cfg, err := pgxpool.ParseConfig(databaseURL)
	if err != nil {
		return nil, fmt.Errorf("parsing audit database URL: %w", err)
	}

	cfg.ConnConfig.RuntimeParams["statement_timeout"] = "30000"
	cfg.MaxConns = 4
	cfg.MinConns = 1
	cfg.MaxConnLifetime = 30 * time.Minute
	cfg.MaxConnIdleTime = 5 * time.Minute

	pool, err := pgxpool.NewWithConfig(ctx, cfg)
	if err != nil {
		return nil, fmt.Errorf("creating audit pool: %w", err)
	}
	if err := pool.Ping(ctx); err != nil {
		pool.Close()
		return nil, fmt.Errorf("pinging audit database: %w", err)
	}

	s := &Store{pool: pool, log: log}
	if err := s.runMigrations(ctx); err != nil {
		pool.Close()
		return nil, err
	}
	return s, nil
}

// RecordCall implements client.AuditSink. Insert failures are returned
// to the client, which logs them; they never fail the originating call.
func (s *Store) RecordCall(call client.APICall) error {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	_, err := s.pool.Exec(ctx, `
		INSERT INTO api_audit_log (called_at, method, endpoint, status_code, duration_ms)
		VALUES ($1, $2, $3, $4, $5)`,
		call.CalledAt, call.Method, call.Endpoint, call.StatusCode, call.Duration.Milliseconds(),
	)
	if err != nil {
		return fmt.Errorf("inserting audit entry: %w", err)
	}
	return nil
}

// Recent returns the most recent n audit entries, newest first.
func (s *Store) Recent(ctx context.Context, n int) ([]client.APICall, error) {
	rows, err := s.pool.Query(ctx, `
		SELECT called_at, method, endpoint, status_code, duration_ms
		FROM api_audit_log
		ORDER BY called_at DESC
		LIMIT $1`, n)
	if err != nil {
		return nil, fmt.Errorf("querying audit entries: %w", err)
	}
	defer rows.Close()

	var calls []client.APICall
	for rows.Next() {
		var c client.APICall
		var ms int64
		if err := rows.Scan(&c.CalledAt, &c.Method, &c.Endpoint, &c.StatusCode, &ms); err != nil {
			return nil, fmt.Errorf("scanning audit entry: %w", err)
		}
		c.Duration = time.Duration(ms) * time.Millisecond
		calls = append(calls, c)
	}
	return calls, rows.Err()
}

// Ping verifies the audit database is reachable.
func (s *Store) Ping(ctx context.Context) error {
	return s.pool.Ping(ctx)
}

// Close releases the connection pool.
func (s *Store) Close() {
	s.pool.Close()
}
