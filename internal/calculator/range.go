package calculator

import (
	"math"

	"BullScout/internal/model"
)

// RecentLow returns the minimum low over the most recent n bars (or fewer if
// the series is shorter). Returns 0 for an empty series.
func RecentLow(series model.Series, n int) float64 {
	if len(series) == 0 {
		return 0
	}
	start := len(series) - n
	if start < 0 {
		start = 0
	}
	low := math.Inf(1)
	for _, b := range series[start:] {
		if b.Low < low {
			low = b.Low
		}
	}
	return low
}

// RecentHigh returns the maximum high over the most recent n bars (or fewer
// if the series is shorter). Returns 0 for an empty series.
func RecentHigh(series model.Series, n int) float64 {
	if len(series) == 0 {
		return 0
	}
	start := len(series) - n
	if start < 0 {
		start = 0
	}
	high := math.Inf(-1)
	for _, b := range series[start:] {
		if b.High > high {
			high = b.High
		}
	}
	return high
}
