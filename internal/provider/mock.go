package provider

import (
	"math"
	"time"

	"BullScout/internal/model"
)

// MockProvider returns deterministic synthetic data for development and
// tests. DriftPct sets the per-bar percentage move per ticker; tickers
// without an entry get a gentle sine-wave chop around the base price.
type MockProvider struct {
	BasePrice float64
	DriftPct  map[string]float64
	Now       time.Time
}

// NewMockProvider creates a mock provider anchored at a fixed price.
func NewMockProvider(basePrice float64) *MockProvider {
	return &MockProvider{
		BasePrice: basePrice,
		DriftPct:  make(map[string]float64),
		Now:       time.Now(),
	}
}

func (m *MockProvider) Name() string { return "mock" }

// FetchSeries generates lookback bars ending at Now. The same arguments
// always produce the same series.
func (m *MockProvider) FetchSeries(ticker string, _ Kind, interval Interval, lookback int) (model.Series, error) {
	step := intervalDuration(interval)
	drift := m.DriftPct[ticker]

	series := make(model.Series, 0, lookback)
	price := m.BasePrice
	for i := lookback; i > 0; i-- {
		wobble := math.Sin(float64(i)/20) * price * 0.001
		open := price*0.999 + wobble
		close := price + wobble
		high := math.Max(open, close) * 1.004
		low := math.Min(open, close) * 0.996
		series = append(series, model.Bar{
			Time:   m.Now.Add(-time.Duration(i) * step),
			Open:   open,
			High:   high,
			Low:    low,
			Close:  close,
			Volume: 1000000,
		})
		price = math.Max(0.5, price*(1+drift/100))
	}
	return series, nil
}

func intervalDuration(interval Interval) time.Duration {
	switch interval {
	case Interval1m:
		return time.Minute
	case Interval5m:
		return 5 * time.Minute
	case Interval1h:
		return time.Hour
	default:
		return 24 * time.Hour
	}
}
