package model

import "time"

// Bar represents a single OHLCV candlestick.
type Bar struct {
	Time   time.Time
	Open   float64
	High   float64
	Low    float64
	Close  float64
	Volume float64
}

// Series is a chronologically ordered sequence of bars, oldest first.
// Treated as immutable once fetched.
type Series []Bar

// Closes returns the close price of every bar.
func (s Series) Closes() []float64 {
	closes := make([]float64, len(s))
	for i, b := range s {
		closes[i] = b.Close
	}
	return closes
}

// Volumes returns the volume of every bar.
func (s Series) Volumes() []float64 {
	vols := make([]float64, len(s))
	for i, b := range s {
		vols[i] = b.Volume
	}
	return vols
}

// Last returns the most recent bar. The second return is false for an empty series.
func (s Series) Last() (Bar, bool) {
	if len(s) == 0 {
		return Bar{}, false
	}
	return s[len(s)-1], true
}
