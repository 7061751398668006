// Package learn tracks signal outcomes and calibrates hit probabilities by
// score bin. Every strong setup becomes an experiment; later bars resolve it
// to a target hit or a stop hit, and resolved outcomes feed calibrated
// probabilities back into the edge evaluator.
package learn

import (
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"sync"
	"time"

	"BullScout/internal/model"
	"BullScout/internal/store"
	"BullScout/internal/strategy"
)

const experimentsKey = "learn.experiments"

const (
	maxExperiments = 500
	dedupWindow    = 2 * time.Hour

	minResolvedTotal = 20
	minBinSamples    = 8
	binCount         = 10

	calibProbMin = 0.25
	calibProbMax = 0.9
)

// Learner records experiments in the key-value store and aggregates resolved
// outcomes into per-score-bin win rates. All mutations serialize the whole
// load-mutate-save cycle under one mutex, so concurrent callers cannot lose
// updates to each other.
type Learner struct {
	mu  sync.Mutex
	kv  store.KV
	now func() time.Time
}

// NewLearner creates a Learner backed by the given store.
func NewLearner(kv store.KV) *Learner {
	return &Learner{kv: kv, now: time.Now}
}

// StartExperiment records the current setup for a ticker as an unresolved
// experiment and reports whether one was created. If an unresolved
// experiment for the ticker was started within the last two hours the call
// is a no-op, so an elevated score does not spawn a new experiment on every
// refresh tick.
func (l *Learner) StartExperiment(ticker string, series model.Series) bool {
	l.mu.Lock()
	defer l.mu.Unlock()

	exps := l.load()
	now := l.now()
	nowMs := now.UnixMilli()
	for i := range exps {
		e := &exps[i]
		if e.Ticker == ticker && !e.IsResolved() && now.Sub(time.UnixMilli(e.StartedAt)) < dedupWindow {
			return false
		}
	}

	sig := strategy.ScoreBullish(series)
	exps = append(exps, model.Experiment{
		ID:        fmt.Sprintf("%s-%d", ticker, nowMs),
		Ticker:    ticker,
		StartedAt: nowMs,
		Score:     sig.Score,
		Entry:     sig.Targets.Entry,
		Stop:      sig.Targets.Stop,
		T1:        sig.Targets.T1,
	})
	l.save(exps)
	return true
}

// UpdateWithSeries resolves open experiments for a ticker against fresh
// bars. The scan walks forward from the experiment's start; the first bar
// touching the stop or the target decides the outcome. When one bar touches
// both levels, the bar's own direction breaks the tie: a close above the
// open counts as a target hit, anything else as a stop hit. That is an
// approximation of the intrabar path, biased toward the worse outcome.
// Resolved experiments are never touched again. The returned slice holds
// the outcome of every experiment resolved by this call.
func (l *Learner) UpdateWithSeries(ticker string, series model.Series) []model.Outcome {
	l.mu.Lock()
	defer l.mu.Unlock()

	exps := l.load()
	var resolved []model.Outcome
	for i := range exps {
		e := &exps[i]
		if e.Ticker != ticker || e.IsResolved() {
			continue
		}
		outcome := resolveOutcome(e, series)
		if outcome == "" {
			continue
		}
		e.Resolved = outcome
		e.ResolvedAt = l.now().UnixMilli()
		resolved = append(resolved, outcome)
	}
	if len(resolved) > 0 {
		l.save(exps)
	}
	return resolved
}

func resolveOutcome(e *model.Experiment, series model.Series) model.Outcome {
	for _, bar := range series {
		if bar.Time.UnixMilli() < e.StartedAt {
			continue
		}
		hitStop := bar.Low <= e.Stop
		hitTP1 := bar.High >= e.T1
		switch {
		case hitStop && hitTP1:
			if bar.Close > bar.Open {
				return model.OutcomeTP1
			}
			return model.OutcomeStop
		case hitStop:
			return model.OutcomeStop
		case hitTP1:
			return model.OutcomeTP1
		}
	}
	return ""
}

// CalibratedProb returns the empirical win rate for the 10-point score bin
// containing score. The second return is false until at least 20 experiments
// have resolved system-wide and at least 8 within the bin; callers fall back
// to their own estimate in that case. Returned values are clamped to
// [0.25, 0.9] so the display stays conservative.
func (l *Learner) CalibratedProb(score int) (float64, bool) {
	l.mu.Lock()
	defer l.mu.Unlock()

	var resolved []model.Experiment
	for _, e := range l.load() {
		if e.IsResolved() {
			resolved = append(resolved, e)
		}
	}
	if len(resolved) < minResolvedTotal {
		return 0, false
	}

	bin := binFor(score)
	var total, wins int
	for _, e := range resolved {
		if binFor(e.Score) != bin {
			continue
		}
		total++
		if e.Resolved == model.OutcomeTP1 {
			wins++
		}
	}
	if total < minBinSamples {
		return 0, false
	}

	p := float64(wins) / float64(total)
	if p < calibProbMin {
		p = calibProbMin
	}
	if p > calibProbMax {
		p = calibProbMax
	}
	return p, true
}

func binFor(score int) int {
	bin := score / 10
	if bin < 0 {
		bin = 0
	}
	if bin >= binCount {
		bin = binCount - 1
	}
	return bin
}

// Experiments returns a copy of the full experiment history, newest last.
func (l *Learner) Experiments() []model.Experiment {
	l.mu.Lock()
	defer l.mu.Unlock()

	exps := l.load()
	out := make([]model.Experiment, len(exps))
	copy(out, exps)
	return out
}

// Stats summarizes the experiment history.
type Stats struct {
	Total    int `json:"total"`
	Open     int `json:"open"`
	Resolved int `json:"resolved"`
	Wins     int `json:"wins"`
}

// Stats returns aggregate counts over the experiment history.
func (l *Learner) Stats() Stats {
	l.mu.Lock()
	defer l.mu.Unlock()

	var st Stats
	for _, e := range l.load() {
		st.Total++
		if !e.IsResolved() {
			st.Open++
			continue
		}
		st.Resolved++
		if e.Resolved == model.OutcomeTP1 {
			st.Wins++
		}
	}
	return st
}

// BinStats describes one calibration bin for display.
type BinStats struct {
	Bin       int     `json:"bin"` // 0-9, covering scores bin*10 .. bin*10+9
	Total     int     `json:"total"`
	Wins      int     `json:"wins"`
	Prob      float64 `json:"prob"`
	Available bool    `json:"available"`
}

// CalibrationBins returns the per-bin resolved counts and availability.
func (l *Learner) CalibrationBins() []BinStats {
	l.mu.Lock()
	defer l.mu.Unlock()

	bins := make([]BinStats, binCount)
	var resolvedTotal int
	for i := range bins {
		bins[i].Bin = i
	}
	for _, e := range l.load() {
		if !e.IsResolved() {
			continue
		}
		resolvedTotal++
		b := &bins[binFor(e.Score)]
		b.Total++
		if e.Resolved == model.OutcomeTP1 {
			b.Wins++
		}
	}
	for i := range bins {
		b := &bins[i]
		if resolvedTotal < minResolvedTotal || b.Total < minBinSamples {
			continue
		}
		p := float64(b.Wins) / float64(b.Total)
		if p < calibProbMin {
			p = calibProbMin
		}
		if p > calibProbMax {
			p = calibProbMax
		}
		b.Prob = p
		b.Available = true
	}
	return bins
}

// load reads the experiment list. Missing or corrupt state degrades to an
// empty history rather than failing the tick. Callers must hold the mutex.
func (l *Learner) load() []model.Experiment {
	raw, err := l.kv.Get(experimentsKey)
	if err != nil {
		if !errors.Is(err, store.ErrNotFound) {
			log.Printf("[WARN] load experiments: %v", err)
		}
		return nil
	}
	var exps []model.Experiment
	if err := json.Unmarshal(raw, &exps); err != nil {
		log.Printf("[WARN] corrupt experiment state, starting empty: %v", err)
		return nil
	}
	return exps
}

// save persists the experiment list, keeping only the most recent entries.
// Write failures are logged and skipped; the tick continues in memory.
// Callers must hold the mutex.
func (l *Learner) save(exps []model.Experiment) {
	if len(exps) > maxExperiments {
		exps = exps[len(exps)-maxExperiments:]
	}
	raw, err := json.Marshal(exps)
	if err != nil {
		log.Printf("[ERROR] marshal experiments: %v", err)
		return
	}
	if err := l.kv.Set(experimentsKey, raw); err != nil {
		log.Printf("[ERROR] save experiments: %v", err)
	}
}
