package calculator

import (
	"math"
	"testing"
	"time"

	"BullScout/internal/model"
)

func barsFromCloses(closes []float64) model.Series {
	series := make(model.Series, len(closes))
	base := time.Date(2025, 6, 2, 9, 30, 0, 0, time.UTC)
	for i, c := range closes {
		series[i] = model.Bar{
			Time:   base.Add(time.Duration(i) * time.Minute),
			Open:   c * 0.999,
			High:   c * 1.004,
			Low:    c * 0.996,
			Close:  c,
			Volume: 100000,
		}
	}
	return series
}

func TestEMA_Deterministic(t *testing.T) {
	values := []float64{10, 11, 10.5, 12, 13, 12.5, 14, 15}
	a := EMA(values, 3)
	b := EMA(values, 3)
	if len(a) != len(values) {
		t.Fatalf("expected output length %d, got %d", len(values), len(a))
	}
	for i := range a {
		if a[i] != b[i] {
			t.Errorf("index %d: repeated calls differ: %v vs %v", i, a[i], b[i])
		}
	}
	if a[0] != values[0] {
		t.Errorf("first EMA value should equal first input, got %v", a[0])
	}
}

func TestEMA_ConstantInput(t *testing.T) {
	values := make([]float64, 50)
	for i := range values {
		values[i] = 42.5
	}
	out := EMA(values, 9)
	for i, v := range out {
		if math.Abs(v-42.5) > 1e-9 {
			t.Fatalf("index %d: constant input should yield constant EMA, got %v", i, v)
		}
	}
}

func TestEMA_PeriodClamped(t *testing.T) {
	values := []float64{1, 2, 3}
	out := EMA(values, 0)
	// period 0 clamps to 1, k=1: output tracks input exactly
	for i := range values {
		if out[i] != values[i] {
			t.Errorf("index %d: expected %v, got %v", i, values[i], out[i])
		}
	}
}

func TestEMA_Empty(t *testing.T) {
	if out := EMA(nil, 9); len(out) != 0 {
		t.Errorf("expected empty output for empty input, got %d values", len(out))
	}
}

func TestRSI_Bounds(t *testing.T) {
	values := []float64{
		50, 51, 49, 52, 48, 53, 47, 55, 44, 57,
		42, 60, 40, 62, 39, 64, 38, 66, 37, 68,
	}
	out := RSI(values, DefaultRSIPeriod)
	if len(out) != len(values) {
		t.Fatalf("expected output length %d, got %d", len(values), len(out))
	}
	for i, v := range out {
		if v < 0 || v > 100 {
			t.Errorf("index %d: RSI %v out of [0,100]", i, v)
		}
	}
}

func TestRSI_MonotonicRiseApproaches100(t *testing.T) {
	values := make([]float64, 60)
	for i := range values {
		values[i] = 100 + float64(i)
	}
	out := RSI(values, DefaultRSIPeriod)
	last := out[len(out)-1]
	if last < 99.9 {
		t.Errorf("expected RSI near 100 for a pure uptrend, got %v", last)
	}
}

func TestRSI_ShortInputIsNeutral(t *testing.T) {
	values := []float64{10, 11, 12, 13, 14}
	out := RSI(values, DefaultRSIPeriod)
	if len(out) != len(values) {
		t.Fatalf("expected output length %d, got %d", len(values), len(out))
	}
	for i, v := range out {
		if v != 50 {
			t.Errorf("index %d: expected neutral 50 for short input, got %v", i, v)
		}
	}
}

func TestRSI_FrontPadding(t *testing.T) {
	values := make([]float64, 20)
	for i := range values {
		values[i] = 100 + float64(i%3)
	}
	out := RSI(values, DefaultRSIPeriod)
	for i := 1; i < DefaultRSIPeriod; i++ {
		if out[i] != out[0] {
			t.Errorf("index %d: front padding should repeat first computed value", i)
		}
	}
}

func TestATR_LengthAndPadding(t *testing.T) {
	series := barsFromCloses([]float64{
		100, 101, 99, 102, 103, 101, 104, 105, 103, 106,
		107, 105, 108, 109, 107, 110, 111, 109, 112, 113,
	})
	out := ATR(series, DefaultATRPeriod)
	if len(out) != len(series) {
		t.Fatalf("expected output length %d, got %d", len(series), len(out))
	}
	for i := 1; i < DefaultATRPeriod; i++ {
		if out[i] != out[0] {
			t.Errorf("index %d: front padding should repeat the seed value", i)
		}
	}
	for i, v := range out {
		if v <= 0 {
			t.Errorf("index %d: ATR should be positive for non-degenerate bars, got %v", i, v)
		}
	}
}

func TestATR_Empty(t *testing.T) {
	if out := ATR(nil, DefaultATRPeriod); len(out) != 0 {
		t.Errorf("expected empty output for empty series, got %d values", len(out))
	}
}

func TestATR_ShorterThanPeriod(t *testing.T) {
	series := barsFromCloses([]float64{100, 102, 101})
	out := ATR(series, DefaultATRPeriod)
	if len(out) != len(series) {
		t.Fatalf("expected output length %d, got %d", len(series), len(out))
	}
	for i := 1; i < len(out); i++ {
		if out[i] != out[0] {
			t.Errorf("index %d: all values should equal the seed when series is shorter than period", i)
		}
	}
}

func TestRecentLowHigh(t *testing.T) {
	series := barsFromCloses([]float64{100, 90, 110, 95, 105})
	low := RecentLow(series, 3)
	want := 95 * 0.996
	if math.Abs(low-want) > 1e-9 {
		t.Errorf("expected recent low %v, got %v", want, low)
	}
	high := RecentHigh(series, 3)
	wantHigh := 110 * 1.004
	if math.Abs(high-wantHigh) > 1e-9 {
		t.Errorf("expected recent high %v, got %v", wantHigh, high)
	}
	if RecentLow(nil, 5) != 0 {
		t.Error("expected 0 recent low for empty series")
	}
}
