// Package edge converts bullish scores into trade-quality estimates:
// probability of reaching the first target, risk/reward, and expected value.
package edge

import (
	"math"

	"BullScout/internal/model"
)

// Calibrator supplies empirically calibrated probabilities by score. The
// second return is false when no calibration is available for that score.
type Calibrator interface {
	CalibratedProb(score int) (float64, bool)
}

// Logistic curve parameters for the uncalibrated fallback.
const (
	logisticSlope = 0.09
	logisticMid   = 60.0
	probMin       = 0.25
	probMax       = 0.85
)

const riskFloor = 0.0001

// Worth-taking gate thresholds.
const (
	minRiskReward = 1.2
	minProb       = 0.5
)

// Evaluator maps scores to probabilities, preferring calibrated values over
// the logistic fallback.
type Evaluator struct {
	cal Calibrator
}

// NewEvaluator returns an Evaluator. A nil calibrator means the logistic
// fallback is always used.
func NewEvaluator(cal Calibrator) *Evaluator {
	return &Evaluator{cal: cal}
}

// ProbHitTP1 estimates the probability of reaching TP1 before the stop.
// A calibrated value wins when available; otherwise a logistic curve over
// the score, capped to avoid overconfidence at the extremes.
func (e *Evaluator) ProbHitTP1(score int) float64 {
	if e.cal != nil {
		if p, ok := e.cal.CalibratedProb(score); ok && !math.IsNaN(p) && !math.IsInf(p, 0) {
			return p
		}
	}
	p := 1 / (1 + math.Exp(-logisticSlope*(float64(score)-logisticMid)))
	return math.Max(probMin, math.Min(probMax, p))
}

// RiskReward returns reward-to-risk for a long setup. Risk is floored so a
// degenerate stop at entry cannot divide by zero.
func RiskReward(entry, stop, t1 float64) float64 {
	risk := math.Max(riskFloor, entry-stop)
	reward := math.Max(0, t1-entry)
	return reward / risk
}

// ExpectedValuePerShare returns the probability-weighted payoff of one share:
// win the reward with probability p, lose the risk otherwise.
func ExpectedValuePerShare(entry, stop, t1, probTP1 float64) float64 {
	risk := math.Max(riskFloor, entry-stop)
	reward := math.Max(0, t1-entry)
	return probTP1*reward - (1-probTP1)*risk
}

// Assessment is the result of the worth-taking gate.
type Assessment struct {
	OK   bool    `json:"ok"`
	RR   float64 `json:"rr"`
	Prob float64 `json:"prob"`
	EV   float64 `json:"ev"`
}

// WorthTaking gates a setup: positive expected value, risk/reward of at
// least 1.2 and probability of at least 0.5.
func (e *Evaluator) WorthTaking(score int, entry, stop, t1 float64) Assessment {
	rr := RiskReward(entry, stop, t1)
	p := e.ProbHitTP1(score)
	ev := ExpectedValuePerShare(entry, stop, t1, p)
	return Assessment{
		OK:   ev > 0 && rr >= minRiskReward && p >= minProb,
		RR:   rr,
		Prob: p,
		EV:   ev,
	}
}

// Forecast holds an ordinary least-squares extrapolation of close prices.
type Forecast struct {
	Next  []float64 `json:"next"`
	Slope float64   `json:"slope"`
}

// ForecastLinear fits close price against bar index and extrapolates the
// next steps values. Series with fewer than 5 bars yield an empty forecast.
func ForecastLinear(series model.Series, steps int) Forecast {
	if len(series) < 5 || steps <= 0 {
		return Forecast{}
	}
	closes := series.Closes()
	n := float64(len(closes))

	var sumX, sumY, sumXY, sumXX float64
	for i, y := range closes {
		x := float64(i + 1)
		sumX += x
		sumY += y
		sumXY += x * y
		sumXX += x * x
	}
	denom := n*sumXX - sumX*sumX
	if denom == 0 {
		denom = 1
	}
	slope := (n*sumXY - sumX*sumY) / denom
	intercept := (sumY - slope*sumX) / n

	lastX := float64(len(closes))
	next := make([]float64, steps)
	for i := 1; i <= steps; i++ {
		next[i-1] = intercept + slope*(lastX+float64(i))
	}
	return Forecast{Next: next, Slope: slope}
}
