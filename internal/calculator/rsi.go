package calculator

// DefaultRSIPeriod is the classic Wilder lookback.
const DefaultRSIPeriod = 14

// lossFloor avoids division by zero when a window contains no losses.
const lossFloor = 1e-9

// RSI computes the Wilder-smoothed relative strength index over the values.
// The output matches the input length, front-padded by repeating the first
// computed value. If fewer than period+1 values are available the whole
// output is a flat neutral 50 rather than an error.
func RSI(values []float64, period int) []float64 {
	if period < 1 {
		period = 1
	}
	if len(values) < period+1 {
		out := make([]float64, len(values))
		for i := range out {
			out[i] = 50
		}
		return out
	}

	var gains, losses float64
	for i := 1; i <= period; i++ {
		diff := values[i] - values[i-1]
		if diff >= 0 {
			gains += diff
		} else {
			losses -= diff
		}
	}
	computed := make([]float64, 0, len(values)-period)
	computed = append(computed, rsiValue(gains, losses))

	for i := period + 1; i < len(values); i++ {
		diff := values[i] - values[i-1]
		var gain, loss float64
		if diff > 0 {
			gain = diff
		} else {
			loss = -diff
		}
		gains = (gains*float64(period-1) + gain) / float64(period)
		losses = (losses*float64(period-1) + loss) / float64(period)
		computed = append(computed, rsiValue(gains, losses))
	}

	out := make([]float64, len(values))
	pad := len(values) - len(computed)
	for i := 0; i < pad; i++ {
		out[i] = computed[0]
	}
	copy(out[pad:], computed)
	return out
}

func rsiValue(gains, losses float64) float64 {
	if losses == 0 {
		losses = lossFloor
	}
	rs := gains / losses
	return 100 - 100/(1+rs)
}
