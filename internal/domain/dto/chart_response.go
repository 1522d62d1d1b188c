package dto

import (
	"time"

	"github.com/guttosm/quotepulse/internal/domain/models"
)

const (
	// DefaultTailSize is the number of rows in the data table view.
	DefaultTailSize = 15
	// MaxTailSize caps the tail query parameter.
	MaxTailSize = 500
)

// Candle is one candlestick point.
type Candle struct {
	Time  time.Time `json:"time"`
	Open  float64   `json:"open"`
	High  float64   `json:"high"`
	Low   float64   `json:"low"`
	Close float64   `json:"close"`
}

// OverlayPoint is one moving-average point; Value is null where undefined.
type OverlayPoint struct {
	Time  time.Time    `json:"time"`
	Value models.Point `json:"value" swaggertype:"number" extensions:"x-nullable"`
}

// VolumeBar is one volume histogram point.
type VolumeBar struct {
	Time   time.Time `json:"time"`
	Volume float64   `json:"volume"`
}

// TableRow is one row of the recent-bars table.
type TableRow struct {
	Time   time.Time    `json:"time"`
	Open   float64      `json:"open"`
	High   float64      `json:"high"`
	Low    float64      `json:"low"`
	Close  float64      `json:"close"`
	Volume float64      `json:"volume"`
	MA20   models.Point `json:"ma20" swaggertype:"number" extensions:"x-nullable"`
	MA50   models.Point `json:"ma50" swaggertype:"number" extensions:"x-nullable"`
}

// ChartResponse represents the JSON structure returned by GET /api/v1/chart:
// everything needed to draw the candlestick chart, the optional moving-average
// overlays, the volume chart and the recent-bars table.
type ChartResponse struct {
	Symbol    string         `json:"symbol" example:"AAPL"`
	Period    string         `json:"period" example:"1d"`
	Interval  string         `json:"interval" example:"5m"`
	Candles   []Candle       `json:"candles"`
	MA20      []OverlayPoint `json:"ma20,omitempty"`
	MA50      []OverlayPoint `json:"ma50,omitempty"`
	Volume    []VolumeBar    `json:"volume"`
	Tail      []TableRow     `json:"tail"`
	FetchedAt time.Time      `json:"fetched_at"`
}

// NewChartResponse maps a snapshot to chart series. Overlays are included only
// when showMA is set; tail is the number of most recent rows in the table.
func NewChartResponse(s *models.Snapshot, showMA bool, tail int) ChartResponse {
	n := len(s.Bars)
	resp := ChartResponse{
		Symbol:    s.Key.Symbol,
		Period:    string(s.Key.Period),
		Interval:  s.Interval,
		Candles:   make([]Candle, n),
		Volume:    make([]VolumeBar, n),
		FetchedAt: s.FetchedAt,
	}
	for i, b := range s.Bars {
		resp.Candles[i] = Candle{Time: b.Time, Open: b.Open, High: b.High, Low: b.Low, Close: b.Close}
		resp.Volume[i] = VolumeBar{Time: b.Time, Volume: b.Volume}
	}
	if showMA {
		resp.MA20 = overlay(s.Bars, s.MA20)
		resp.MA50 = overlay(s.Bars, s.MA50)
	}

	rows := s.Tail(tail)
	offset := n - len(rows)
	resp.Tail = make([]TableRow, len(rows))
	for i, b := range rows {
		resp.Tail[i] = TableRow{
			Time: b.Time, Open: b.Open, High: b.High, Low: b.Low, Close: b.Close, Volume: b.Volume,
			MA20: pointAt(s.MA20, offset+i),
			MA50: pointAt(s.MA50, offset+i),
		}
	}
	return resp
}

func overlay(bars []models.Bar, points []models.Point) []OverlayPoint {
	out := make([]OverlayPoint, len(bars))
	for i, b := range bars {
		out[i] = OverlayPoint{Time: b.Time, Value: pointAt(points, i)}
	}
	return out
}

func pointAt(points []models.Point, i int) models.Point {
	if i < 0 || i >= len(points) {
		return models.Point{}
	}
	return points[i]
}
