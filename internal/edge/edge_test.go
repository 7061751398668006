package edge

import (
	"math"
	"testing"
	"time"

	"BullScout/internal/model"
)

type fixedCalibrator struct {
	prob float64
	ok   bool
}

func (f fixedCalibrator) CalibratedProb(int) (float64, bool) { return f.prob, f.ok }

func TestProbHitTP1_LogisticFallback(t *testing.T) {
	e := NewEvaluator(nil)

	// Midpoint of the logistic sits at score 60.
	if p := e.ProbHitTP1(60); math.Abs(p-0.5) > 1e-9 {
		t.Errorf("expected 0.5 at score 60, got %v", p)
	}
	// Caps at both ends.
	if p := e.ProbHitTP1(0); p != 0.25 {
		t.Errorf("expected lower cap 0.25, got %v", p)
	}
	if p := e.ProbHitTP1(100); p != 0.85 {
		t.Errorf("expected upper cap 0.85, got %v", p)
	}
	// Monotonic in score within the caps.
	if e.ProbHitTP1(70) <= e.ProbHitTP1(60) {
		t.Error("probability should increase with score")
	}
}

func TestProbHitTP1_CalibratedWins(t *testing.T) {
	e := NewEvaluator(fixedCalibrator{prob: 0.62, ok: true})
	if p := e.ProbHitTP1(30); p != 0.62 {
		t.Errorf("expected calibrated 0.62, got %v", p)
	}

	// Unavailable calibration falls back to the logistic.
	e = NewEvaluator(fixedCalibrator{ok: false})
	if p := e.ProbHitTP1(60); math.Abs(p-0.5) > 1e-9 {
		t.Errorf("expected logistic fallback 0.5, got %v", p)
	}
}

func TestRiskReward(t *testing.T) {
	if rr := RiskReward(100, 98, 104); math.Abs(rr-2.0) > 1e-9 {
		t.Errorf("expected rr 2.0, got %v", rr)
	}
	// Target below entry: zero reward.
	if rr := RiskReward(100, 98, 99); rr != 0 {
		t.Errorf("expected rr 0 when t1 < entry, got %v", rr)
	}
	// Stop at entry: risk floored, no division by zero.
	rr := RiskReward(100, 100, 101)
	if math.IsInf(rr, 0) || math.IsNaN(rr) {
		t.Errorf("expected finite rr with floored risk, got %v", rr)
	}
}

func TestExpectedValuePerShare(t *testing.T) {
	// p=0.5, reward 4, risk 2: EV = 0.5*4 - 0.5*2 = 1
	if ev := ExpectedValuePerShare(100, 98, 104, 0.5); math.Abs(ev-1.0) > 1e-9 {
		t.Errorf("expected EV 1.0, got %v", ev)
	}
	// p=0: EV is the full risk, negative.
	if ev := ExpectedValuePerShare(100, 98, 104, 0); math.Abs(ev+2.0) > 1e-9 {
		t.Errorf("expected EV -2.0, got %v", ev)
	}
}

func TestWorthTaking_Gates(t *testing.T) {
	e := NewEvaluator(fixedCalibrator{prob: 0.6, ok: true})

	// rr = 4/2 = 2, p = 0.6, ev = 0.6*4 - 0.4*2 = 1.6 > 0 -> ok
	a := e.WorthTaking(80, 100, 98, 104)
	if !a.OK {
		t.Errorf("expected ok assessment, got %+v", a)
	}

	// Low risk/reward fails the gate even with positive EV.
	// rr = 2/2 = 1 < 1.2
	a = e.WorthTaking(80, 100, 98, 102)
	if a.OK {
		t.Errorf("expected rr gate to fail, got %+v", a)
	}

	// Probability below 0.5 fails the gate.
	e = NewEvaluator(fixedCalibrator{prob: 0.4, ok: true})
	a = e.WorthTaking(80, 100, 98, 110)
	if a.OK {
		t.Errorf("expected probability gate to fail, got %+v", a)
	}
}

func lineSeries(count int, start, step float64) model.Series {
	series := make(model.Series, count)
	base := time.Date(2025, 6, 2, 0, 0, 0, 0, time.UTC)
	for i := 0; i < count; i++ {
		c := start + step*float64(i)
		series[i] = model.Bar{
			Time: base.Add(time.Duration(i) * time.Minute),
			Open: c, High: c, Low: c, Close: c,
		}
	}
	return series
}

func TestForecastLinear_PerfectLine(t *testing.T) {
	series := lineSeries(30, 100, 0.5)
	fc := ForecastLinear(series, 3)
	if math.Abs(fc.Slope-0.5) > 1e-9 {
		t.Errorf("expected slope 0.5, got %v", fc.Slope)
	}
	if len(fc.Next) != 3 {
		t.Fatalf("expected 3 forecast steps, got %d", len(fc.Next))
	}
	lastClose := series[len(series)-1].Close
	for i, v := range fc.Next {
		want := lastClose + 0.5*float64(i+1)
		if math.Abs(v-want) > 1e-6 {
			t.Errorf("step %d: expected %v, got %v", i+1, want, v)
		}
	}
}

func TestForecastLinear_TooShort(t *testing.T) {
	fc := ForecastLinear(lineSeries(4, 100, 1), 3)
	if len(fc.Next) != 0 || fc.Slope != 0 {
		t.Errorf("expected empty forecast for short series, got %+v", fc)
	}
}
