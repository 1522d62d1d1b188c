package marketdata

import (
	"context"
	"errors"

	"github.com/guttosm/quotepulse/internal/domain/models"
)

// ErrMalformedSeries marks a provider payload that decoded but cannot form a
// consistent series (mismatched column lengths, missing quote block).
var ErrMalformedSeries = errors.New("malformed series")

// Client fetches OHLCV bars for a symbol and period.
//
// Implementations return bars ascending by time. An unknown symbol yields an
// empty series with a nil error, as does a request the provider refuses for
// good (no 5m history for the period). Transport and transient provider
// failures are errors.
// Retry policy, if any, belongs to the implementation.
type Client interface {
	FetchSeries(ctx context.Context, symbol string, period models.Period, interval string) (models.Series, error)
}
