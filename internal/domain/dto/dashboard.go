package dto

import (
	"time"

	"github.com/guttosm/quotepulse/internal/domain/models"
)

// Selection is the viewer's current choice of symbol, period and overlay toggle.
type Selection struct {
	Symbol string        `json:"symbol" binding:"required" example:"AAPL"`
	Period models.Period `json:"period" binding:"required" example:"1d" enums:"1d,5d,1mo,3mo,6mo,1y"`
	ShowMA bool          `json:"show_ma" example:"true"`
}

// Error states a dashboard can be in.
const (
	StateInvalidSymbol       = "invalid_symbol"
	StateInsufficientHistory = "insufficient_history"
	StateChangeUnavailable   = "change_unavailable"
	StateUpstreamUnavailable = "upstream_unavailable"
	StateInvalidRequest      = "invalid_request"
)

// DashboardError describes why a refresh produced no full snapshot.
type DashboardError struct {
	State   string `json:"state" example:"upstream_unavailable"`
	Message string `json:"message" example:"upstream fetch AAPL/1d: timeout"`
}

// Dashboard is what the refresh driver publishes after every refresh: either
// metrics and chart, or an error state. Degraded states may still carry the
// latest price in Partial.
type Dashboard struct {
	Selection Selection         `json:"selection"`
	Snapshot  *SnapshotResponse `json:"snapshot,omitempty"`
	Chart     *ChartResponse    `json:"chart,omitempty"`
	Partial   *models.Bar       `json:"partial,omitempty"`
	Error     *DashboardError   `json:"error,omitempty"`
	UpdatedAt time.Time         `json:"updated_at"`
}
