package models

import "time"

// FetchOutcome classifies how an upstream fetch ended.
type FetchOutcome string

const (
	OutcomeOK                  FetchOutcome = "ok"
	OutcomeInvalidSymbol       FetchOutcome = "invalid_symbol"
	OutcomeInsufficientHistory FetchOutcome = "insufficient_history"
	OutcomeDivisionByZero      FetchOutcome = "division_by_zero"
	OutcomeUpstreamError       FetchOutcome = "upstream_error"
)

// FetchRecord is one journal row describing a cache miss and its fetch.
//
// Journal rows are an audit trail only; they are never read back to
// rebuild snapshots.
type FetchRecord struct {
	Symbol      string
	Period      Period
	Interval    string
	Outcome     FetchOutcome
	BarCount    int
	LatestClose Point
	LatencyMs   int64
	FetchedAt   time.Time
}
