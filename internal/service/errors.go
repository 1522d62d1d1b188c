package service

import (
	"errors"
	"fmt"
	"time"

	"github.com/guttosm/quotepulse/internal/domain/models"
)

var (
	// ErrInvalidSymbol means the quote source returned no usable series for the
	// symbol (unknown ticker, empty or malformed data). User-correctable.
	ErrInvalidSymbol = errors.New("invalid symbol")

	// ErrInsufficientHistory means the series has fewer than two bars.
	ErrInsufficientHistory = errors.New("insufficient history")

	// ErrDivisionByZero means the previous close is zero, so percent change is undefined.
	ErrDivisionByZero = errors.New("previous close is zero")

	// ErrInvalidPeriod means the period is not one of models.Periods.
	ErrInvalidPeriod = errors.New("invalid period")
)

// UpstreamFetchError wraps a failure of the market data client (network,
// timeout, provider error). It is transient; the next refresh retries.
type UpstreamFetchError struct {
	Key models.RequestKey
	Err error
}

func (e *UpstreamFetchError) Error() string {
	return fmt.Sprintf("upstream fetch %s: %v", e.Key, e.Err)
}

func (e *UpstreamFetchError) Unwrap() error { return e.Err }

// InsufficientHistoryError carries the bars that were available so callers can
// render a degraded view (price without moving averages).
type InsufficientHistoryError struct {
	Key  models.RequestKey
	Bars []models.Bar
}

func (e *InsufficientHistoryError) Error() string {
	return fmt.Sprintf("%s: %s has %d bar(s), need 2", ErrInsufficientHistory, e.Key, len(e.Bars))
}

func (e *InsufficientHistoryError) Is(target error) bool { return target == ErrInsufficientHistory }

// ChangeUnavailableError reports a zero previous close. The latest price is
// still known; only the change and percent change are undefined.
type ChangeUnavailableError struct {
	Key      models.RequestKey
	Latest   models.Bar
	Previous models.Bar
}

func (e *ChangeUnavailableError) Error() string {
	return fmt.Sprintf("%s: %s at %s", ErrDivisionByZero, e.Key, e.Previous.Time.Format(time.RFC3339))
}

func (e *ChangeUnavailableError) Is(target error) bool { return target == ErrDivisionByZero }
