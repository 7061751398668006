package calculator

import (
	"math"

	"BullScout/internal/model"
)

// DefaultATRPeriod is the classic Wilder lookback.
const DefaultATRPeriod = 14

// ATR computes the average true range over the series using Wilder's running
// moving average. The seed is the simple average of the first period true
// ranges; earlier positions are front-padded with that seed so the output
// matches the series length. An empty series yields an empty output.
func ATR(series model.Series, period int) []float64 {
	if len(series) == 0 {
		return nil
	}
	if period < 1 {
		period = 1
	}

	trs := make([]float64, len(series))
	for i, b := range series {
		if i == 0 {
			trs[i] = b.High - b.Low
			continue
		}
		prevClose := series[i-1].Close
		trs[i] = math.Max(b.High-b.Low,
			math.Max(math.Abs(b.High-prevClose), math.Abs(b.Low-prevClose)))
	}

	seedLen := period
	if seedLen > len(trs) {
		seedLen = len(trs)
	}
	var sum float64
	for _, tr := range trs[:seedLen] {
		sum += tr
	}
	rma := sum / float64(seedLen)

	out := make([]float64, len(trs))
	for i := 0; i < len(out) && i < period; i++ {
		out[i] = rma
	}
	for i := period; i < len(trs); i++ {
		rma = (rma*float64(period-1) + trs[i]) / float64(period)
		out[i] = rma
	}
	return out
}
