package strategy

import (
	"reflect"
	"testing"
	"time"

	"BullScout/internal/model"
)

// trendSeries builds bars whose close moves by ratePct percent per bar.
func trendSeries(count int, start, ratePct float64) model.Series {
	series := make(model.Series, count)
	base := time.Date(2025, 6, 2, 9, 30, 0, 0, time.UTC)
	price := start
	for i := 0; i < count; i++ {
		open := price * 0.999
		close := price
		high := price * 1.004
		low := price * 0.996
		series[i] = model.Bar{
			Time:   base.Add(time.Duration(i) * time.Minute),
			Open:   open,
			High:   high,
			Low:    low,
			Close:  close,
			Volume: 500000,
		}
		price *= 1 + ratePct/100
	}
	return series
}

func TestScoreBullish_EmptySeries(t *testing.T) {
	sig := ScoreBullish(nil)
	if sig.Score != 0 {
		t.Errorf("expected score 0 for empty series, got %d", sig.Score)
	}
	if sig.Verdict != model.VerdictAvoid {
		t.Errorf("expected Avoid verdict, got %s", sig.Verdict)
	}
	if len(sig.Details) != 0 {
		t.Errorf("expected empty details, got %d", len(sig.Details))
	}
	if sig.Targets != (model.Targets{}) {
		t.Errorf("expected zero targets, got %+v", sig.Targets)
	}
}

func TestScoreBullish_Deterministic(t *testing.T) {
	series := trendSeries(120, 100, 0.05)
	a := ScoreBullish(series)
	b := ScoreBullish(series)
	if !reflect.DeepEqual(a, b) {
		t.Error("repeated calls on the same series should be identical")
	}
}

func TestScoreBullish_ScoreBounds(t *testing.T) {
	cases := []struct {
		name   string
		series model.Series
	}{
		{"single bar", trendSeries(1, 50, 0)},
		{"short flat", trendSeries(10, 100, 0)},
		{"uptrend", trendSeries(200, 100, 0.1)},
		{"downtrend", trendSeries(200, 100, -0.1)},
		{"steep rally", trendSeries(300, 10, 0.5)},
		{"crash", trendSeries(300, 500, -0.5)},
	}
	for _, tc := range cases {
		sig := ScoreBullish(tc.series)
		if sig.Score < 0 || sig.Score > 100 {
			t.Errorf("%s: score %d out of [0,100]", tc.name, sig.Score)
		}
	}
}

func TestScoreBullish_TargetOrdering(t *testing.T) {
	series := trendSeries(200, 100, 0.1)
	sig := ScoreBullish(series)
	tg := sig.Targets
	if !(tg.Stop < tg.Entry) {
		t.Errorf("expected stop < entry, got stop=%v entry=%v", tg.Stop, tg.Entry)
	}
	if !(tg.Entry < tg.T1) {
		t.Errorf("expected entry < t1, got entry=%v t1=%v", tg.Entry, tg.T1)
	}
	if !(tg.T1 <= tg.T2) {
		t.Errorf("expected t1 <= t2, got t1=%v t2=%v", tg.T1, tg.T2)
	}
}

func TestScoreBullish_UptrendScenario(t *testing.T) {
	// 180 one-minute bars climbing from 100 toward 110: EMA stack aligned
	// and RSI above 50 well before the final bar.
	series := trendSeries(180, 100, 0.0533)
	last := series[len(series)-1].Close
	if last < 109 || last > 111 {
		t.Fatalf("scenario setup drifted: final close %v", last)
	}
	sig := ScoreBullish(series)
	if sig.Verdict != model.VerdictStrong {
		t.Errorf("expected Strong verdict for sustained uptrend, got %s (score %d)", sig.Verdict, sig.Score)
	}
	if sig.Score < StrongThreshold {
		t.Errorf("expected score >= %d, got %d", StrongThreshold, sig.Score)
	}
	if len(sig.Details) != 6 {
		t.Fatalf("expected 6 detail rows, got %d", len(sig.Details))
	}
	if sig.Details[0].Label != "EMA(9) > EMA(21)" || sig.Details[5].Label != "ATR(14)/Price" {
		t.Errorf("detail rows out of order: %+v", sig.Details)
	}
}

func TestScoreBullish_DowntrendAvoid(t *testing.T) {
	series := trendSeries(200, 100, -0.1)
	sig := ScoreBullish(series)
	if sig.Verdict != model.VerdictAvoid {
		t.Errorf("expected Avoid for sustained downtrend, got %s (score %d)", sig.Verdict, sig.Score)
	}
}

func TestVerdictThresholds(t *testing.T) {
	tests := []struct {
		score   int
		verdict model.Verdict
	}{
		{100, model.VerdictStrong},
		{75, model.VerdictStrong},
		{74, model.VerdictModerate},
		{60, model.VerdictModerate},
		{59, model.VerdictWeak},
		{50, model.VerdictWeak},
		{49, model.VerdictAvoid},
		{0, model.VerdictAvoid},
	}
	for _, tt := range tests {
		if got := VerdictFor(tt.score); got != tt.verdict {
			t.Errorf("score %d: expected %s, got %s", tt.score, tt.verdict, got)
		}
	}
}

func TestHTFEMAPeriod(t *testing.T) {
	tests := []struct {
		n, want int
	}{
		{10, 50},   // clamps up
		{100, 60},  // 0.6x
		{180, 108}, // 0.6x
		{500, 200}, // clamps down
	}
	for _, tt := range tests {
		if got := htfEMAPeriod(tt.n); got != tt.want {
			t.Errorf("n=%d: expected period %d, got %d", tt.n, tt.want, got)
		}
	}
}
