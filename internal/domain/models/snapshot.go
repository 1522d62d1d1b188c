package models

import (
	"encoding/json"
	"time"
)

// Direction is the sign of the latest price change.
type Direction string

const (
	DirectionUp   Direction = "up"
	DirectionDown Direction = "down"
)

// DirectionOf classifies a price change. A zero change is reported as down.
func DirectionOf(change float64) Direction {
	if change > 0 {
		return DirectionUp
	}
	return DirectionDown
}

// Point is an optional numeric value. Invalid points carry no value and
// encode as JSON null; they are never zero-filled.
type Point struct {
	Value float64
	Valid bool
}

// Some returns a valid point holding v.
func Some(v float64) Point { return Point{Value: v, Valid: true} }

// MarshalJSON encodes invalid points as null.
func (p Point) MarshalJSON() ([]byte, error) {
	if !p.Valid {
		return []byte("null"), nil
	}
	return json.Marshal(p.Value)
}

// UnmarshalJSON accepts a number or null.
func (p *Point) UnmarshalJSON(b []byte) error {
	if string(b) == "null" {
		*p = Point{}
		return nil
	}
	var v float64
	if err := json.Unmarshal(b, &v); err != nil {
		return err
	}
	*p = Some(v)
	return nil
}

// Snapshot is the immutable result of one aggregator request.
//
// Fields:
//   - Key: the (symbol, period) the snapshot was built for.
//   - Bars: the full fetched series, ascending by time.
//   - Latest / Previous: the last and second-to-last bars.
//   - PriceChange / PercentChange: latest close minus previous close, and that delta relative to the previous close.
//   - MA20 / MA50: trailing simple moving averages of close, one point per bar.
//   - FetchedAt: when the series was fetched from the quote source.
//
// Snapshots are shared between cache readers and must not be modified.
type Snapshot struct {
	Key           RequestKey
	Interval      string
	Bars          []Bar
	Latest        Bar
	Previous      Bar
	PriceChange   float64
	PercentChange float64
	Direction     Direction
	MA20          []Point
	MA50          []Point
	FetchedAt     time.Time
}

// LatestMA20 returns the 20-bar average at the latest bar.
func (s *Snapshot) LatestMA20() Point { return last(s.MA20) }

// LatestMA50 returns the 50-bar average at the latest bar.
func (s *Snapshot) LatestMA50() Point { return last(s.MA50) }

// Tail returns the most recent n bars (all bars if n exceeds the series).
func (s *Snapshot) Tail(n int) []Bar {
	if n <= 0 {
		return nil
	}
	if n > len(s.Bars) {
		n = len(s.Bars)
	}
	return s.Bars[len(s.Bars)-n:]
}

func last(points []Point) Point {
	if len(points) == 0 {
		return Point{}
	}
	return points[len(points)-1]
}
