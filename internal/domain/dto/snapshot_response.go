package dto

import (
	"time"

	"github.com/guttosm/quotepulse/internal/domain/models"
)

// SnapshotResponse represents the JSON structure returned by the
// GET /api/v1/snapshot endpoint: the headline price metrics.
//
// Moving averages are null when the series is shorter than the window.
type SnapshotResponse struct {
	Symbol        string       `json:"symbol" example:"AAPL"`
	Period        string       `json:"period" example:"1d"`
	Interval      string       `json:"interval" example:"5m"`
	Price         float64      `json:"price" example:"189.52"`
	PreviousClose float64      `json:"previous_close" example:"189.10"`
	PriceChange   float64      `json:"price_change" example:"0.42"`
	PercentChange float64      `json:"percent_change" example:"0.22"`
	Direction     string       `json:"direction" example:"up" enums:"up,down"`
	Volume        float64      `json:"volume" example:"154320"`
	High          float64      `json:"high" example:"189.70"`
	Low           float64      `json:"low" example:"189.01"`
	MA20          models.Point `json:"ma20" swaggertype:"number" extensions:"x-nullable"`
	MA50          models.Point `json:"ma50" swaggertype:"number" extensions:"x-nullable"`
	BarCount      int          `json:"bar_count" example:"78"`
	FetchedAt     time.Time    `json:"fetched_at" example:"2025-09-12T14:30:00Z"`
}

// NewSnapshotResponse maps a snapshot to its API shape.
func NewSnapshotResponse(s *models.Snapshot) SnapshotResponse {
	return SnapshotResponse{
		Symbol:        s.Key.Symbol,
		Period:        string(s.Key.Period),
		Interval:      s.Interval,
		Price:         s.Latest.Close,
		PreviousClose: s.Previous.Close,
		PriceChange:   s.PriceChange,
		PercentChange: s.PercentChange,
		Direction:     string(s.Direction),
		Volume:        s.Latest.Volume,
		High:          s.Latest.High,
		Low:           s.Latest.Low,
		MA20:          s.LatestMA20(),
		MA50:          s.LatestMA50(),
		BarCount:      len(s.Bars),
		FetchedAt:     s.FetchedAt,
	}
}
