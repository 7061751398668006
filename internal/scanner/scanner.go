// Package scanner sweeps the configured universe, scores every ticker and
// ranks the candidates worth surfacing.
package scanner

import (
	"log"
	"sort"

	"BullScout/internal/edge"
	"BullScout/internal/model"
	"BullScout/internal/provider"
	"BullScout/internal/strategy"
	"BullScout/internal/universe"
)

// Options controls one scan pass. Zero values fall back to the defaults.
type Options struct {
	Interval provider.Interval
	Lookback int
	Sectors  []universe.Sector
}

const (
	defaultInterval = provider.Interval5m
	defaultLookback = 180
)

// Counter increments a monotonic count; satisfied by a Prometheus counter.
type Counter interface{ Inc() }

// Scanner iterates a ticker universe, applies the bullish scorer and the
// edge evaluator, and returns the ranked candidates.
type Scanner struct {
	Provider       provider.Provider
	Universe       *universe.Universe
	Edge           *edge.Evaluator
	FetchErrors    Counter // optional
	TickersScanned Counter // optional
}

// NewScanner creates a Scanner.
func NewScanner(p provider.Provider, u *universe.Universe, e *edge.Evaluator) *Scanner {
	return &Scanner{Provider: p, Universe: u, Edge: e}
}

// TopPicks scans the selected sectors and returns up to limit candidates
// whose probability of hitting TP1 is at least minProb, sorted by
// probability descending with score as the tie-break. A failed fetch drops
// that ticker from the batch; one bad symbol never aborts the scan.
func (s *Scanner) TopPicks(limit int, minProb float64, opts Options) []model.Pick {
	interval := opts.Interval
	if interval == "" {
		interval = defaultInterval
	}
	lookback := opts.Lookback
	if lookback <= 0 {
		lookback = defaultLookback
	}

	var picks []model.Pick
	for _, ticker := range s.Universe.Tickers(opts.Sectors...) {
		if s.TickersScanned != nil {
			s.TickersScanned.Inc()
		}
		series, err := s.Provider.FetchSeries(ticker, provider.KindFor(ticker), interval, lookback)
		if err != nil {
			log.Printf("[WARN] scan fetch %s: %v", ticker, err)
			if s.FetchErrors != nil {
				s.FetchErrors.Inc()
			}
			continue
		}
		score := strategy.ScoreBullish(series).Score
		prob := s.Edge.ProbHitTP1(score)
		if prob < minProb {
			continue
		}
		picks = append(picks, model.Pick{Ticker: ticker, Series: series, Score: score, Prob: prob})
	}

	sort.Slice(picks, func(i, j int) bool {
		if picks[i].Prob != picks[j].Prob {
			return picks[i].Prob > picks[j].Prob
		}
		return picks[i].Score > picks[j].Score
	})
	if len(picks) > limit {
		picks = picks[:limit]
	}
	return picks
}
