package service

import (
	"context"
	"errors"
	"fmt"
	"math"
	"time"

	"github.com/guttosm/quotepulse/internal/cache"
	"github.com/guttosm/quotepulse/internal/domain/models"
	"github.com/guttosm/quotepulse/internal/indicator"
	"github.com/guttosm/quotepulse/internal/logger"
	"github.com/guttosm/quotepulse/internal/marketdata"
	"github.com/guttosm/quotepulse/internal/storage"
)

const (
	// DefaultFetchTimeout bounds one call to the market data client.
	DefaultFetchTimeout = 5 * time.Second

	shortWindow = 20
	longWindow  = 50

	journalTimeout = 2 * time.Second
)

// QuoteAggregator turns a (symbol, period) request into a snapshot of derived metrics.
type QuoteAggregator interface {
	GetSnapshot(ctx context.Context, symbol string, period models.Period) (*models.Snapshot, error)
}

type quoteAggregator struct {
	client       marketdata.Client
	snapshots    *cache.SnapshotCache
	journal      storage.FetchJournal
	fetchTimeout time.Duration
}

// NewQuoteAggregator wires the aggregator.
//
// Parameters:
//   - client: market data source, called once per cache miss.
//   - snapshots: TTL cache shared by all callers; its clock stamps FetchedAt.
//   - journal: fetch audit trail; nil disables it.
//   - fetchTimeout: per-fetch bound (DefaultFetchTimeout when <= 0).
func NewQuoteAggregator(client marketdata.Client, snapshots *cache.SnapshotCache, journal storage.FetchJournal, fetchTimeout time.Duration) QuoteAggregator {
	if journal == nil {
		journal = storage.NewNoopJournal()
	}
	if fetchTimeout <= 0 {
		fetchTimeout = DefaultFetchTimeout
	}
	return &quoteAggregator{
		client:       client,
		snapshots:    snapshots,
		journal:      journal,
		fetchTimeout: fetchTimeout,
	}
}

// GetSnapshot returns the cached snapshot for the key while it is fresh, and
// otherwise fetches, validates and derives a new one.
//
// Errors: ErrInvalidPeriod, ErrInvalidSymbol, ErrInsufficientHistory (as
// *InsufficientHistoryError), ErrDivisionByZero (as *ChangeUnavailableError),
// *UpstreamFetchError.
// Failures are never cached.
func (a *quoteAggregator) GetSnapshot(ctx context.Context, symbol string, period models.Period) (*models.Snapshot, error) {
	key := models.NewRequestKey(symbol, period)
	if key.Symbol == "" {
		return nil, fmt.Errorf("%w: symbol is required", ErrInvalidSymbol)
	}
	if !period.Valid() {
		return nil, fmt.Errorf("%w: %q", ErrInvalidPeriod, period)
	}

	if snap, ok := a.snapshots.Get(key); ok {
		logger.L().Debug().Str("key", key.String()).Msg("snapshot cache hit")
		return snap, nil
	}

	clock := a.snapshots.Clock()
	start := clock.Now()

	fetchCtx, cancel := context.WithTimeout(ctx, a.fetchTimeout)
	series, err := a.client.FetchSeries(fetchCtx, key.Symbol, key.Period, key.Period.Interval())
	cancel()

	var snap *models.Snapshot
	if err != nil {
		if errors.Is(err, marketdata.ErrMalformedSeries) {
			err = fmt.Errorf("%w: %v", ErrInvalidSymbol, err)
		} else {
			err = &UpstreamFetchError{Key: key, Err: err}
		}
	} else {
		snap, err = buildSnapshot(key, series, start)
	}

	a.record(ctx, key, series, snap, err, clock.Since(start))

	if err != nil {
		logger.L().Warn().Str("key", key.String()).Err(err).Msg("snapshot fetch failed")
		return nil, err
	}

	a.snapshots.Put(key, snap)
	logger.L().Info().
		Str("key", key.String()).
		Int("bars", len(snap.Bars)).
		Float64("close", snap.Latest.Close).
		Str("direction", string(snap.Direction)).
		Msg("snapshot refreshed")
	return snap, nil
}

// buildSnapshot validates series and derives every metric.
func buildSnapshot(key models.RequestKey, series models.Series, fetchedAt time.Time) (*models.Snapshot, error) {
	if series.Len() == 0 {
		return nil, fmt.Errorf("%w: no data for %s", ErrInvalidSymbol, key)
	}
	if err := validateBars(series.Bars); err != nil {
		return nil, fmt.Errorf("%w: %s: %v", ErrInvalidSymbol, key, err)
	}

	bars := make([]models.Bar, len(series.Bars))
	copy(bars, series.Bars)

	if len(bars) < 2 {
		return nil, &InsufficientHistoryError{Key: key, Bars: bars}
	}

	latest := bars[len(bars)-1]
	previous := bars[len(bars)-2]
	if previous.Close == 0 {
		return nil, &ChangeUnavailableError{Key: key, Latest: latest, Previous: previous}
	}

	change := latest.Close - previous.Close
	closes := series.Closes()
	ma20, err := indicator.RollingMean(closes, shortWindow)
	if err != nil {
		return nil, err
	}
	ma50, err := indicator.RollingMean(closes, longWindow)
	if err != nil {
		return nil, err
	}

	interval := series.Interval
	if interval == "" {
		interval = key.Period.Interval()
	}

	return &models.Snapshot{
		Key:           key,
		Interval:      interval,
		Bars:          bars,
		Latest:        latest,
		Previous:      previous,
		PriceChange:   change,
		PercentChange: change / previous.Close * 100,
		Direction:     models.DirectionOf(change),
		MA20:          ma20,
		MA50:          ma50,
		FetchedAt:     fetchedAt,
	}, nil
}

// validateBars enforces strictly ascending timestamps and finite, non-negative OHLCV.
func validateBars(bars []models.Bar) error {
	for i, b := range bars {
		for _, v := range [...]float64{b.Open, b.High, b.Low, b.Close, b.Volume} {
			if math.IsNaN(v) || math.IsInf(v, 0) || v < 0 {
				return fmt.Errorf("bar %d has invalid value %v", i, v)
			}
		}
		if i > 0 && !b.Time.After(bars[i-1].Time) {
			return fmt.Errorf("bar %d is not after bar %d", i, i-1)
		}
	}
	return nil
}

// record writes the journal row. Journal failures are logged, never returned.
func (a *quoteAggregator) record(ctx context.Context, key models.RequestKey, series models.Series, snap *models.Snapshot, err error, elapsed time.Duration) {
	rec := models.FetchRecord{
		Symbol:    key.Symbol,
		Period:    key.Period,
		Interval:  key.Period.Interval(),
		Outcome:   outcomeOf(err),
		BarCount:  series.Len(),
		LatencyMs: elapsed.Milliseconds(),
		FetchedAt: a.snapshots.Clock().Now(),
	}
	if snap != nil {
		rec.LatestClose = models.Some(snap.Latest.Close)
	} else if n := series.Len(); n > 0 && (errors.Is(err, ErrInsufficientHistory) || errors.Is(err, ErrDivisionByZero)) {
		rec.LatestClose = models.Some(series.Bars[n-1].Close)
	}

	jctx, cancel := context.WithTimeout(context.WithoutCancel(ctx), journalTimeout)
	defer cancel()
	if jerr := a.journal.RecordFetch(jctx, rec); jerr != nil {
		logger.L().Error().Err(jerr).Str("key", key.String()).Msg("journal write failed")
	}
}

func outcomeOf(err error) models.FetchOutcome {
	var upstream *UpstreamFetchError
	switch {
	case err == nil:
		return models.OutcomeOK
	case errors.As(err, &upstream):
		return models.OutcomeUpstreamError
	case errors.Is(err, ErrInsufficientHistory):
		return models.OutcomeInsufficientHistory
	case errors.Is(err, ErrDivisionByZero):
		return models.OutcomeDivisionByZero
	default:
		return models.OutcomeInvalidSymbol
	}
}
