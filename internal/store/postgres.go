package store

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/pocketfin-ledger/internal/config"
)

// querier supports database operations for both the pool and mocks
type querier interface {
	Exec(ctx context.Context, sql string, arguments ...interface{}) (pgconn.CommandTag, error)
	QueryRow(ctx context.Context, sql string, args ...interface{}) pgx.Row
}

// Ensure the pool satisfies the interface (compile-time check)
var _ querier = (*pgxpool.Pool)(nil)

// PostgresStore is a Store backed by a single key-value table. Collection
// documents are held as JSONB so they stay queryable for ad-hoc inspection.
type PostgresStore struct {
	db     querier
	pool   *pgxpool.Pool
	logger *slog.Logger
}

// NewPostgresStore connects to PostgreSQL, runs migrations, and returns the store
func NewPostgresStore(ctx context.Context, logger *slog.Logger, cfg *config.PostgresConfig) (*PostgresStore, error) {
	if err := RunMigrations(cfg.URL, cfg.MigrationsPath); err != nil {
		return nil, err
	}

	poolConfig, err := pgxpool.ParseConfig(cfg.URL)
	if err != nil {
		return nil, fmt.Errorf("failed to parse PostgreSQL connection string: %w", err)
	}

	poolConfig.MaxConns = cfg.MaxConns
	poolConfig.MinConns = cfg.MinConns
	poolConfig.MaxConnLifetime = cfg.ConnMaxLifetime
	poolConfig.MaxConnIdleTime = cfg.ConnMaxIdleTime

	pool, err := pgxpool.NewWithConfig(ctx, poolConfig)
	if err != nil {
		return nil, fmt.Errorf("failed to create PostgreSQL connection pool: %w", err)
	}

	if err := pool.Ping(ctx); err != nil {
		return nil, fmt.Errorf("failed to ping PostgreSQL: %w", err)
	}

	logger.Info("Connected to PostgreSQL")

	return &PostgresStore{
		db:     pool,
		pool:   pool,
		logger: logger,
	}, nil
}

// Read returns the document stored under key
func (s *PostgresStore) Read(ctx context.Context, key string) ([]byte, error) {
	query := `
		SELECT value
		FROM ledger_kv
		WHERE key = $1
	`

	var value []byte
	err := s.db.QueryRow(ctx, query, key).Scan(&value)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrKeyNotFound
		}
		s.logger.Error("Failed to read key", "key", key, "error", err)
		return nil, fmt.Errorf("failed to read key %s: %w", key, err)
	}

	return value, nil
}

// Write upserts the document stored under key
func (s *PostgresStore) Write(ctx context.Context, key string, value []byte) error {
	query := `
		INSERT INTO ledger_kv (key, value, updated_at)
		VALUES ($1, $2::jsonb, NOW())
		ON CONFLICT (key) DO UPDATE
		SET value = EXCLUDED.value, updated_at = NOW()
	`

	_, err := s.db.Exec(ctx, query, key, string(value))
	if err != nil {
		s.logger.Error("Failed to write key", "key", key, "error", err)
		return fmt.Errorf("failed to write key %s: %w", key, err)
	}

	return nil
}

// Exists reports whether key holds a value
func (s *PostgresStore) Exists(ctx context.Context, key string) (bool, error) {
	query := `SELECT EXISTS (SELECT 1 FROM ledger_kv WHERE key = $1)`

	var exists bool
	if err := s.db.QueryRow(ctx, query, key).Scan(&exists); err != nil {
		s.logger.Error("Failed to check key existence", "key", key, "error", err)
		return false, fmt.Errorf("failed to check key %s: %w", key, err)
	}

	return exists, nil
}

// Clear wipes the entire key-value table
func (s *PostgresStore) Clear(ctx context.Context) error {
	if _, err := s.db.Exec(ctx, `DELETE FROM ledger_kv`); err != nil {
		s.logger.Error("Failed to clear store", "error", err)
		return fmt.Errorf("failed to clear store: %w", err)
	}

	return nil
}

// Close releases the connection pool
func (s *PostgresStore) Close(_ context.Context) error {
	if s.pool != nil {
		s.pool.Close()
		s.logger.Info("Closed PostgreSQL connection")
	}
	return nil
}
