package indicator

import (
	"math"
	"testing"
)

func naiveMean(values []float64) float64 {
	sum := 0.0
	for _, v := range values {
		sum += v
	}
	return sum / float64(len(values))
}

func closeTo(a, b float64) bool {
	return math.Abs(a-b) <= 1e-9*math.Max(1, math.Abs(b))
}

func TestRollingMean_Window50MatchesNaive(t *testing.T) {
	values := make([]float64, 180)
	for i := range values {
		values[i] = 100 + 7*math.Sin(float64(i)/5) + float64(i%13)*0.37
	}

	out, err := RollingMean(values, 50)
	if err != nil {
		t.Fatalf("unexpected err: %v", err)
	}
	if len(out) != len(values) {
		t.Fatalf("len=%d want %d", len(out), len(values))
	}
	for i, p := range out {
		if i < 49 {
			if p.Valid {
				t.Fatalf("point %d should be undefined, got %v", i, p.Value)
			}
			continue
		}
		want := naiveMean(values[i-49 : i+1])
		if !p.Valid || !closeTo(p.Value, want) {
			t.Fatalf("point %d = %+v, want %v", i, p, want)
		}
	}
}

func TestRollingMean_EdgeCases(t *testing.T) {
	cases := []struct {
		name   string
		values []float64
		n      int
		want   []any // float64 for valid, nil for undefined
	}{
		{name: "window of one", values: []float64{1, 2, 3}, n: 1, want: []any{1.0, 2.0, 3.0}},
		{name: "shorter than window", values: []float64{1, 2}, n: 3, want: []any{nil, nil}},
		{name: "exact window", values: []float64{2, 4, 6}, n: 3, want: []any{nil, nil, 4.0}},
		{name: "sliding", values: []float64{1, 2, 3, 4, 5}, n: 2, want: []any{nil, 1.5, 2.5, 3.5, 4.5}},
		{name: "empty", values: nil, n: 20, want: []any{}},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			out, err := RollingMean(tc.values, tc.n)
			if err != nil {
				t.Fatalf("unexpected err: %v", err)
			}
			if len(out) != len(tc.want) {
				t.Fatalf("len=%d want %d", len(out), len(tc.want))
			}
			for i, w := range tc.want {
				if w == nil {
					if out[i].Valid {
						t.Fatalf("point %d should be undefined", i)
					}
					continue
				}
				if !out[i].Valid || !closeTo(out[i].Value, w.(float64)) {
					t.Fatalf("point %d = %+v, want %v", i, out[i], w)
				}
			}
		})
	}
}

func TestRollingMean_InvalidWindow(t *testing.T) {
	if _, err := RollingMean([]float64{1}, 0); err != ErrInvalidWindow {
		t.Fatalf("want ErrInvalidWindow, got %v", err)
	}
}

func TestRollingMean_LargeMagnitudeStaysAccurate(t *testing.T) {
	values := make([]float64, 5000)
	for i := range values {
		if i%2 == 0 {
			values[i] = 1e9
		} else {
			values[i] = 0.1
		}
	}
	out, _ := RollingMean(values, 20)
	last := out[len(out)-1]
	want := naiveMean(values[len(values)-20:])
	if !closeTo(last.Value, want) {
		t.Fatalf("drift: got %v want %v", last.Value, want)
	}
}

func TestSMA(t *testing.T) {
	if p := SMA([]float64{1, 2, 3, 4}, 2); !p.Valid || p.Value != 3.5 {
		t.Fatalf("unexpected %+v", p)
	}
	if p := SMA([]float64{1}, 2); p.Valid {
		t.Fatalf("expected undefined, got %+v", p)
	}
}
