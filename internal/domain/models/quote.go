package models

import (
	"fmt"
	"strings"
	"time"
)

// SampleInterval is the bar width requested from the quote source.
// Every period is sampled with 5-minute bars; this is a fixed policy.
const SampleInterval = "5m"

// Period is the look-back range requested from the quote source.
type Period string

const (
	Period1D Period = "1d"
	Period5D Period = "5d"
	Period1M Period = "1mo"
	Period3M Period = "3mo"
	Period6M Period = "6mo"
	Period1Y Period = "1y"
)

// Periods lists the accepted periods in display order.
var Periods = []Period{Period1D, Period5D, Period1M, Period3M, Period6M, Period1Y}

// ParsePeriod validates s against the enumerated periods.
func ParsePeriod(s string) (Period, error) {
	p := Period(strings.ToLower(strings.TrimSpace(s)))
	if !p.Valid() {
		return "", fmt.Errorf("unsupported period %q", s)
	}
	return p, nil
}

// Valid reports whether p is one of the enumerated periods.
func (p Period) Valid() bool {
	for _, v := range Periods {
		if v == p {
			return true
		}
	}
	return false
}

// Interval returns the sampling interval used for p.
func (p Period) Interval() string {
	return SampleInterval
}

// NormalizeSymbol trims and upper-cases a ticker. Tickers are case-insensitive.
func NormalizeSymbol(s string) string {
	return strings.ToUpper(strings.TrimSpace(s))
}

// RequestKey identifies one aggregator request and its cache slot.
type RequestKey struct {
	Symbol string `json:"symbol" example:"AAPL"`
	Period Period `json:"period" example:"1d"`
}

// NewRequestKey builds a key with a normalized symbol.
func NewRequestKey(symbol string, period Period) RequestKey {
	return RequestKey{Symbol: NormalizeSymbol(symbol), Period: period}
}

func (k RequestKey) String() string {
	return k.Symbol + "/" + string(k.Period)
}

// Bar is one OHLCV sample for a fixed interval. Bars are never mutated once fetched.
type Bar struct {
	Time   time.Time `json:"time"`
	Open   float64   `json:"open"`
	High   float64   `json:"high"`
	Low    float64   `json:"low"`
	Close  float64   `json:"close"`
	Volume float64   `json:"volume"`
}

// Series is an ascending-by-time sequence of bars for one request key.
type Series struct {
	Key      RequestKey
	Interval string
	Bars     []Bar
}

// Len returns the number of bars.
func (s Series) Len() int { return len(s.Bars) }

// Closes extracts the close prices in series order.
func (s Series) Closes() []float64 {
	closes := make([]float64, len(s.Bars))
	for i, b := range s.Bars {
		closes[i] = b.Close
	}
	return closes
}
