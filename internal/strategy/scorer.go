package strategy

import (
	"fmt"
	"math"

	"BullScout/internal/calculator"
	"BullScout/internal/model"
)

// Verdict thresholds on the 0-100 score.
const (
	StrongThreshold   = 75
	ModerateThreshold = 60
	WeakThreshold     = 50
)

// Factor weights for the composite bullish score. They sum to 1.0.
const (
	weightEMACross   = 0.30 // EMA(9) above EMA(21)
	weightEMARegime  = 0.15 // EMA(21) above EMA(50)
	weightHTFRegime  = 0.10 // EMA(50) above the higher-timeframe EMA
	weightRSIBull    = 0.18 // RSI(14) at or above 50
	weightSlope      = 0.17 // positive 20-bar slope
	weightVolImpulse = 0.10 // excess volume over the 20-bar average
)

// Volatility penalty: ATR as a percent of price, capped, scaled down.
const (
	volPenaltyCap   = 15.0
	volPenaltyScale = 0.25
)

const slopeLookback = 20

// ScoreBullish evaluates a price series and returns the composite bullish
// score, verdict, per-factor explanation and derived trade targets. The
// function is pure: the same series always yields the same result. An empty
// series returns the degenerate Avoid result rather than an error.
func ScoreBullish(series model.Series) model.SignalExplanation {
	if len(series) == 0 {
		return model.SignalExplanation{Score: 0, Verdict: model.VerdictAvoid}
	}

	closes := series.Closes()
	vols := series.Volumes()
	n := len(closes)

	ema9 := calculator.EMA(closes, 9)
	ema21 := calculator.EMA(closes, 21)
	ema50 := calculator.EMA(closes, 50)
	htfPeriod := htfEMAPeriod(n)
	emaHTF := calculator.EMA(closes, htfPeriod)

	last := closes[n-1]
	last9 := ema9[n-1]
	last21 := ema21[n-1]
	last50 := ema50[n-1]
	lastHTF := emaHTF[n-1]

	rsis := calculator.RSI(closes, calculator.DefaultRSIPeriod)
	lastRSI := rsis[n-1]
	atrs := calculator.ATR(series, calculator.DefaultATRPeriod)
	lastATR := atrs[n-1]

	lookback := slopeLookback
	if lookback > n-1 {
		lookback = n - 1
	}
	slope := 0.0
	if lookback > 0 {
		slope = (closes[n-1] - closes[n-1-lookback]) / float64(lookback)
	}

	volImpulse := volumeImpulse(vols)

	raw := (boolScore(last9 > last21)*weightEMACross +
		boolScore(last21 > last50)*weightEMARegime +
		boolScore(last50 > lastHTF)*weightHTFRegime +
		boolScore(lastRSI >= 50)*weightRSIBull +
		boolScore(slope > 0)*weightSlope +
		math.Max(0, volImpulse)*weightVolImpulse) * 100

	// High relative volatility reduces confidence.
	atrPct := 0.0
	if last > 0 {
		atrPct = lastATR / last
	}
	raw -= math.Min(volPenaltyCap, atrPct*100) * volPenaltyScale

	score := int(math.Round(math.Min(100, math.Max(0, raw))))

	return model.SignalExplanation{
		Score:   score,
		Verdict: VerdictFor(score),
		Details: []model.Detail{
			{Label: "EMA(9) > EMA(21)", Value: fmt.Sprintf("%t (%.2f/%.2f)", last9 > last21, last9, last21)},
			{Label: "EMA(21) > EMA(50)", Value: fmt.Sprintf("%t (%.2f/%.2f)", last21 > last50, last21, last50)},
			{Label: "EMA(50) > EMA(HTF)", Value: fmt.Sprintf("%t (%.2f/%.2f)", last50 > lastHTF, last50, lastHTF)},
			{Label: "RSI(14)", Value: fmt.Sprintf("%.1f", lastRSI)},
			{Label: "Slope(20)", Value: fmt.Sprintf("%.3f", slope)},
			{Label: "ATR(14)/Price", Value: fmt.Sprintf("%.2f%%", atrPct*100)},
		},
		Targets: deriveTargets(series, last, lastATR),
	}
}

// htfEMAPeriod picks the higher-timeframe EMA period from the series length:
// 60% of the length, clamped to [50, 200].
func htfEMAPeriod(n int) int {
	p := int(math.Round(float64(n) * 0.6))
	if p < 50 {
		p = 50
	}
	if p > 200 {
		p = 200
	}
	return p
}

// volumeImpulse measures the last bar's volume against the 20-bar average:
// 0 at average, up to +1 at twice average or more, negative below average.
// Zero when the average volume is zero.
func volumeImpulse(vols []float64) float64 {
	window := 20
	if window > len(vols) {
		window = len(vols)
	}
	if window == 0 {
		return 0
	}
	var sum float64
	for _, v := range vols[len(vols)-window:] {
		sum += v
	}
	avg := sum / float64(window)
	if avg <= 0 {
		return 0
	}
	return math.Min(2, vols[len(vols)-1]/avg) - 1
}

func boolScore(cond bool) float64 {
	if cond {
		return 1
	}
	return 0
}

// VerdictFor maps a 0-100 score to its qualitative verdict.
func VerdictFor(score int) model.Verdict {
	switch {
	case score >= StrongThreshold:
		return model.VerdictStrong
	case score >= ModerateThreshold:
		return model.VerdictModerate
	case score >= WeakThreshold:
		return model.VerdictWeak
	default:
		return model.VerdictAvoid
	}
}
