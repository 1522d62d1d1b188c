package marketdata

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"sort"
	"strings"
	"time"

	"github.com/guttosm/quotepulse/internal/domain/models"
	"github.com/guttosm/quotepulse/internal/logger"
)

const (
	// DefaultYahooBaseURL is the public Yahoo Finance chart host.
	DefaultYahooBaseURL = "https://query1.finance.yahoo.com"
	// DefaultTimeout bounds a single chart request.
	DefaultTimeout = 5 * time.Second

	yahooNotFound = "Not Found"
	maxErrorBody  = 512
)

// YahooClient implements Client on top of the Yahoo Finance v8 chart endpoint.
type YahooClient struct {
	baseURL    string
	httpClient *http.Client
}

// NewYahooClient creates a client for baseURL (DefaultYahooBaseURL when empty).
// Requests are bounded by timeout (DefaultTimeout when <= 0).
func NewYahooClient(baseURL string, timeout time.Duration) *YahooClient {
	if baseURL == "" {
		baseURL = DefaultYahooBaseURL
	}
	if timeout <= 0 {
		timeout = DefaultTimeout
	}
	return &YahooClient{
		baseURL:    strings.TrimRight(baseURL, "/"),
		httpClient: &http.Client{Timeout: timeout},
	}
}

// chartResponse mirrors the parts of the chart payload we read. Columns are
// pointers because the provider emits null for gaps.
type chartResponse struct {
	Chart struct {
		Result []struct {
			Timestamp  []int64 `json:"timestamp"`
			Indicators struct {
				Quote []struct {
					Open   []*float64 `json:"open"`
					High   []*float64 `json:"high"`
					Low    []*float64 `json:"low"`
					Close  []*float64 `json:"close"`
					Volume []*float64 `json:"volume"`
				} `json:"quote"`
			} `json:"indicators"`
		} `json:"result"`
		Error *struct {
			Code        string `json:"code"`
			Description string `json:"description"`
		} `json:"error"`
	} `json:"chart"`
}

// FetchSeries fetches the chart for symbol over period sampled at interval.
func (c *YahooClient) FetchSeries(ctx context.Context, symbol string, period models.Period, interval string) (models.Series, error) {
	key := models.NewRequestKey(symbol, period)
	series := models.Series{Key: key, Interval: interval}

	endpoint := fmt.Sprintf("%s/v8/finance/chart/%s?range=%s&interval=%s",
		c.baseURL,
		url.PathEscape(key.Symbol),
		url.QueryEscape(string(period)),
		url.QueryEscape(interval),
	)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return series, fmt.Errorf("creating request: %w", err)
	}
	req.Header.Set("User-Agent", "Mozilla/5.0")
	req.Header.Set("Accept", "application/json")

	start := time.Now()
	resp, err := c.httpClient.Do(req)
	if err != nil {
		return series, fmt.Errorf("yahoo request failed: %w", err)
	}
	defer func() { _ = resp.Body.Close() }()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return series, fmt.Errorf("yahoo read body: %w", err)
	}

	logger.L().Debug().
		Str("symbol", key.Symbol).
		Str("period", string(period)).
		Int("status", resp.StatusCode).
		Dur("elapsed", time.Since(start)).
		Msg("yahoo chart fetched")

	var chart chartResponse
	decodeErr := json.Unmarshal(body, &chart)

	// Unknown tickers come back as 404 with a structured chart error. Other
	// structured 4xx refusals (e.g. 422 when 5m bars are not kept that far
	// back) are permanent for the key and also mean "no data".
	if decodeErr == nil && chart.Chart.Error != nil && (chart.Chart.Error.Code == yahooNotFound || isRefusal(resp.StatusCode)) {
		logger.L().Debug().
			Str("symbol", key.Symbol).
			Str("period", string(period)).
			Str("code", chart.Chart.Error.Code).
			Str("description", chart.Chart.Error.Description).
			Msg("yahoo returned no data")
		return series, nil
	}
	if resp.StatusCode != http.StatusOK {
		return series, fmt.Errorf("yahoo: status %d: %s", resp.StatusCode, truncate(body, maxErrorBody))
	}
	if decodeErr != nil {
		return series, fmt.Errorf("yahoo decode: %w", decodeErr)
	}
	if chart.Chart.Error != nil {
		return series, fmt.Errorf("yahoo api error: %s: %s", chart.Chart.Error.Code, chart.Chart.Error.Description)
	}
	if len(chart.Chart.Result) == 0 || len(chart.Chart.Result[0].Timestamp) == 0 {
		return series, nil
	}

	result := chart.Chart.Result[0]
	if len(result.Indicators.Quote) == 0 {
		return series, fmt.Errorf("yahoo: no quote block: %w", ErrMalformedSeries)
	}
	q := result.Indicators.Quote[0]
	n := len(result.Timestamp)
	if len(q.Open) != n || len(q.High) != n || len(q.Low) != n || len(q.Close) != n || len(q.Volume) != n {
		return series, fmt.Errorf("yahoo: %d timestamps but columns o=%d h=%d l=%d c=%d v=%d: %w",
			n, len(q.Open), len(q.High), len(q.Low), len(q.Close), len(q.Volume), ErrMalformedSeries)
	}

	bars := make([]models.Bar, 0, n)
	for i, ts := range result.Timestamp {
		if q.Open[i] == nil || q.High[i] == nil || q.Low[i] == nil || q.Close[i] == nil {
			continue // gap in the session
		}
		vol := 0.0
		if q.Volume[i] != nil {
			vol = *q.Volume[i]
		}
		bars = append(bars, models.Bar{
			Time:   time.Unix(ts, 0).UTC(),
			Open:   *q.Open[i],
			High:   *q.High[i],
			Low:    *q.Low[i],
			Close:  *q.Close[i],
			Volume: vol,
		})
	}

	sort.SliceStable(bars, func(i, j int) bool { return bars[i].Time.Before(bars[j].Time) })
	series.Bars = bars
	return series, nil
}

// isRefusal reports a client-error status the provider will keep returning for
// the same request. 429 is excluded; it clears once the rate limit resets.
func isRefusal(status int) bool {
	return status >= 400 && status < 500 && status != http.StatusTooManyRequests
}

func truncate(b []byte, n int) string {
	if len(b) > n {
		return string(b[:n]) + "..."
	}
	return string(b)
}
