package services

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/Rhymond/go-money"
	"github.com/epeers/wealthboard/internal/cache"
	"github.com/epeers/wealthboard/internal/fxrate"
	"github.com/epeers/wealthboard/internal/models"
	"github.com/shopspring/decimal"
	log "github.com/sirupsen/logrus"
)

// refreshTimeout bounds a single background refresh
const refreshTimeout = 30 * time.Second

// RateFetcher fetches a live exchange rate
type RateFetcher interface {
	GetRate(ctx context.Context, base, quote string) (*fxrate.ParsedRate, error)
}

// RateStore persists the last fetched rate across restarts
type RateStore interface {
	SaveRate(ctx context.Context, rate models.StoredRate) error
	GetLatestRate(ctx context.Context, base, quote string) (*models.StoredRate, error)
}

// CurrencyService converts base-currency amounts into the display currency
// using the cached rate, or a fixed fallback multiplier until one is fetched.
type CurrencyService struct {
	fetcher  RateFetcher
	cache    *cache.RateCache
	store    RateStore
	base     string
	quote    string
	fallback decimal.Decimal
}

// NewCurrencyService creates a new CurrencyService
func NewCurrencyService(fetcher RateFetcher, rateCache *cache.RateCache, base, quote string, fallback decimal.Decimal) *CurrencyService {
	return &CurrencyService{
		fetcher:  fetcher,
		cache:    rateCache,
		base:     strings.ToUpper(base),
		quote:    strings.ToUpper(quote),
		fallback: fallback,
	}
}

// WithStore persists refreshed rates to store
func (s *CurrencyService) WithStore(store RateStore) *CurrencyService {
	s.store = store
	return s
}

// Warm loads the last stored rate into the cache. It may already be stale.
func (s *CurrencyService) Warm(ctx context.Context) error {
	if s.store == nil {
		return nil
	}
	stored, err := s.store.GetLatestRate(ctx, s.base, s.quote)
	if err != nil {
		return fmt.Errorf("failed to load stored %s/%s rate: %w", s.base, s.quote, err)
	}
	if stored == nil {
		return nil
	}
	s.cache.SetRateAt(s.base, s.quote, stored.Rate, stored.FetchedAt, stored.UpdatedAt)
	log.WithFields(log.Fields{"base": s.base, "quote": s.quote, "fetched_at": stored.FetchedAt}).Info("Restored stored exchange rate")
	return nil
}

// Base returns the currency amounts are converted from
func (s *CurrencyService) Base() string { return s.base }

// Quote returns the currency amounts are converted to
func (s *CurrencyService) Quote() string { return s.quote }

// Rate returns the rate currently used for conversion
func (s *CurrencyService) Rate() models.RateSnapshot {
	snap := models.RateSnapshot{
		Base:   s.base,
		Quote:  s.quote,
		Rate:   s.fallback,
		Source: models.RateSourceFallback,
	}
	cached, ok := s.cache.GetRate(s.base, s.quote)
	if !ok {
		return snap
	}
	fetchedAt := cached.FetchedAt
	snap.Rate = cached.Rate
	snap.FetchedAt = &fetchedAt
	if !cached.UpdatedAt.IsZero() {
		updatedAt := cached.UpdatedAt
		snap.UpdatedAt = &updatedAt
	}
	snap.Source = models.RateSourceLive
	if cached.Stale {
		snap.Source = models.RateSourceStale
	}
	return snap
}

// FormatAmount rounds value to the currency's minor unit and formats it,
// e.g. "$4,498.58".
func FormatAmount(value decimal.Decimal, currency string) models.Amount {
	// money.New never returns a nil currency, unlike money.GetCurrency
	cur := money.New(0, currency).Currency()
	minor := value.Shift(int32(cur.Fraction)).Round(0)
	return models.Amount{
		Value:     minor.Shift(-int32(cur.Fraction)),
		Currency:  cur.Code,
		Formatted: cur.Formatter().Format(minor.IntPart()),
	}
}

// Refresh fetches the live rate and replaces the cached one. On failure the
// previous value stays in place.
func (s *CurrencyService) Refresh(ctx context.Context) (models.RateSnapshot, error) {
	defer TrackTime("CurrencyService.Refresh", time.Now())

	rate, err := s.fetcher.GetRate(ctx, s.base, s.quote)
	if err != nil {
		log.WithFields(log.Fields{"base": s.base, "quote": s.quote}).Warnf("Exchange rate refresh failed: %v", err)
		return s.Rate(), fmt.Errorf("failed to refresh %s/%s rate: %w", s.base, s.quote, err)
	}

	s.cache.SetRate(s.base, s.quote, rate.Rate, rate.UpdatedAt)
	log.WithFields(log.Fields{"base": s.base, "quote": s.quote, "rate": rate.Rate.String()}).Info("Exchange rate refreshed")

	snap := s.Rate()
	if s.store != nil && snap.FetchedAt != nil {
		// the cached rate is already in use; a failed save only costs the restart warm-up
		stored := models.StoredRate{Base: s.base, Quote: s.quote, Rate: snap.Rate, FetchedAt: *snap.FetchedAt}
		if snap.UpdatedAt != nil {
			stored.UpdatedAt = *snap.UpdatedAt
		}
		if err := s.store.SaveRate(ctx, stored); err != nil {
			log.WithFields(log.Fields{"base": s.base, "quote": s.quote}).Warnf("Failed to store exchange rate: %v", err)
		}
	}
	return snap, nil
}

// AddRateWarnings records a warning in ctx when conversion is not using a fresh rate
func (s *CurrencyService) AddRateWarnings(ctx context.Context, snap models.RateSnapshot) {
	switch snap.Source {
	case models.RateSourceFallback:
		AddWarning(ctx, models.Warning{
			Code:    models.WarnFallbackFXRate,
			Message: fmt.Sprintf("no %s/%s rate available, using fallback %s", snap.Base, snap.Quote, snap.Rate),
		})
	case models.RateSourceStale:
		AddWarning(ctx, models.Warning{
			Code:    models.WarnStaleFXRate,
			Message: fmt.Sprintf("%s/%s rate fetched at %s is stale", snap.Base, snap.Quote, snap.FetchedAt.Format(time.RFC3339)),
		})
	}
}

// Name implements scheduler.Job
func (s *CurrencyService) Name() string { return "fx-refresh" }

// Run implements scheduler.Job
func (s *CurrencyService) Run() error {
	ctx, cancel := context.WithTimeout(context.Background(), refreshTimeout)
	defer cancel()
	_, err := s.Refresh(ctx)
	return err
}
