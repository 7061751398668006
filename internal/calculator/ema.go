package calculator

// EMA computes the exponential moving average over the given values.
// The output has the same length as the input; the first element equals the
// first input value (the average is seeded from it rather than warmed up).
// A period below 1 is clamped to 1.
func EMA(values []float64, period int) []float64 {
	if len(values) == 0 {
		return nil
	}
	if period < 1 {
		period = 1
	}
	k := 2.0 / float64(period+1)
	out := make([]float64, len(values))
	prev := values[0]
	out[0] = prev
	for i := 1; i < len(values); i++ {
		prev = values[i]*k + prev*(1-k)
		out[i] = prev
	}
	return out
}
