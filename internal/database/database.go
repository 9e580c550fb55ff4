package database

import (
	"context"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	log "github.com/sirupsen/logrus"
)

const connectTimeout = 10 * time.Second

// DB wraps the pgx connection pool
type DB struct {
	Pool *pgxpool.Pool
}

// New opens a pool for pgURL and checks it with a ping
func New(ctx context.Context, pgURL string) (*DB, error) {
	cfg, err := pgxpool.ParseConfig(pgURL)
	if err != nil {
		return nil, fmt.Errorf("failed to parse PG_URL: %w", err)
	}

	ctx, cancel := context.WithTimeout(ctx, connectTimeout)
	defer cancel()

	pool, err := pgxpool.NewWithConfig(ctx, cfg)
	if err != nil {
		return nil, fmt.Errorf("failed to create pool: %w", err)
	}
	if err := pool.Ping(ctx); err != nil {
		pool.Close()
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}

	log.WithFields(log.Fields{
		"host":     cfg.ConnConfig.Host,
		"database": cfg.ConnConfig.Database,
	}).Info("Connected to database")
	return &DB{Pool: pool}, nil
}

// Close releases all pool connections
func (db *DB) Close() {
	if db.Pool != nil {
		db.Pool.Close()
	}
}
