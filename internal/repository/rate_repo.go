package repository

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/epeers/wealthboard/internal/models"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

// RateRepository persists the last fetched exchange rate per currency pair
// so a restart begins from it instead of the fallback.
type RateRepository struct {
	pool *pgxpool.Pool
}

// NewRateRepository creates a new RateRepository
func NewRateRepository(pool *pgxpool.Pool) *RateRepository {
	return &RateRepository{pool: pool}
}

// SaveRate stores the rate for a pair, replacing the previous one unless
// that was fetched later
func (r *RateRepository) SaveRate(ctx context.Context, rate models.StoredRate) error {
	query := `
		INSERT INTO fx_rate (base, quote, rate, fetched_at, updated_at)
		VALUES ($1, $2, $3, $4, $5)
		ON CONFLICT (base, quote) DO UPDATE
		SET rate = EXCLUDED.rate, fetched_at = EXCLUDED.fetched_at, updated_at = EXCLUDED.updated_at
		WHERE fx_rate.fetched_at <= EXCLUDED.fetched_at
	`
	var updatedAt *time.Time
	if !rate.UpdatedAt.IsZero() {
		updatedAt = &rate.UpdatedAt
	}
	_, err := r.pool.Exec(ctx, query, strings.ToUpper(rate.Base), strings.ToUpper(rate.Quote),
		rate.Rate, rate.FetchedAt, updatedAt)
	if err != nil {
		return fmt.Errorf("failed to save rate: %w", err)
	}
	return nil
}

// GetLatestRate retrieves the stored rate for a pair, or nil if none
func (r *RateRepository) GetLatestRate(ctx context.Context, base, quote string) (*models.StoredRate, error) {
	query := `
		SELECT base, quote, rate, fetched_at, updated_at
		FROM fx_rate
		WHERE base = $1 AND quote = $2
	`
	s := &models.StoredRate{}
	var updatedAt *time.Time
	err := r.pool.QueryRow(ctx, query, strings.ToUpper(base), strings.ToUpper(quote)).Scan(
		&s.Base, &s.Quote, &s.Rate, &s.FetchedAt, &updatedAt,
	)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get rate: %w", err)
	}
	if updatedAt != nil {
		s.UpdatedAt = *updatedAt
	}
	return s, nil
}
