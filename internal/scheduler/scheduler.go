// Package scheduler drives the engine: a refresh tick that keeps watchlist
// experiments current and a scan tick that sweeps the universe for
// candidates.
package scheduler

import (
	"context"
	"fmt"
	"log"
	"strings"
	"sync"
	"time"

	"BullScout/internal/edge"
	"BullScout/internal/learn"
	"BullScout/internal/metrics"
	"BullScout/internal/model"
	"BullScout/internal/notifier"
	"BullScout/internal/provider"
	"BullScout/internal/scanner"
	"BullScout/internal/strategy"
	"BullScout/internal/watch"

	"github.com/robfig/cron/v3"
)

// ScanSettings are the operational knobs for both ticks.
type ScanSettings struct {
	Interval provider.Interval
	Lookback int
	Limit    int
	MinProb  float64
}

// Scheduler manages all cron tasks.
type Scheduler struct {
	Cron     *cron.Cron
	Provider provider.Provider
	Watch    *watch.Manager
	Learner  *learn.Learner
	Edge     *edge.Evaluator
	Scanner  *scanner.Scanner
	Notifier *notifier.TelegramNotifier
	Metrics  *metrics.Metrics
	Settings ScanSettings
	Ctx      context.Context

	mu         sync.Mutex
	lastPicks  []model.Pick
	lastScanAt time.Time
}

// NewScheduler creates a Scheduler.
func NewScheduler(ctx context.Context, p provider.Provider, wm *watch.Manager, l *learn.Learner,
	e *edge.Evaluator, sc *scanner.Scanner, tn *notifier.TelegramNotifier, m *metrics.Metrics,
	settings ScanSettings) *Scheduler {
	return &Scheduler{
		Cron:     cron.New(cron.WithSeconds()),
		Provider: p,
		Watch:    wm,
		Learner:  l,
		Edge:     e,
		Scanner:  sc,
		Notifier: tn,
		Metrics:  m,
		Settings: settings,
		Ctx:      ctx,
	}
}

// RegisterAll registers the refresh and scan tasks.
func (s *Scheduler) RegisterAll(refreshCron, scanCron string) error {
	if _, err := s.Cron.AddFunc(refreshCron, s.refreshTask); err != nil {
		return fmt.Errorf("register refresh task: %w", err)
	}
	if _, err := s.Cron.AddFunc(scanCron, s.scanTask); err != nil {
		return fmt.Errorf("register scan task: %w", err)
	}
	return nil
}

// Start starts the cron scheduler.
func (s *Scheduler) Start() {
	s.Cron.Start()
	log.Println("[INFO] scheduler started")
}

// Stop stops the cron scheduler gracefully.
func (s *Scheduler) Stop() {
	s.Cron.Stop()
	log.Println("[INFO] scheduler stopped")
}

// RunScanNow executes the scan task immediately (manual trigger / RUN_ON_START).
func (s *Scheduler) RunScanNow() {
	s.scanTask()
}

// LastPicks returns the cached result of the most recent scan.
func (s *Scheduler) LastPicks() ([]model.Pick, time.Time) {
	s.mu.Lock()
	defer s.mu.Unlock()
	picks := make([]model.Pick, len(s.lastPicks))
	copy(picks, s.lastPicks)
	return picks, s.lastScanAt
}

// refreshTask re-evaluates every watchlist ticker: resolve open experiments
// against fresh bars, then record a new experiment when the score is strong.
func (s *Scheduler) refreshTask() {
	entries := s.Watch.Entries()
	if len(entries) == 0 {
		return
	}
	log.Printf("[INFO] refresh tick: %d watched tickers", len(entries))

	for _, e := range entries {
		series, err := s.Provider.FetchSeries(e.Ticker, e.Kind, s.Settings.Interval, s.Settings.Lookback)
		if err != nil {
			log.Printf("[WARN] refresh fetch %s: %v", e.Ticker, err)
			s.Metrics.FetchErrors.Inc()
			continue
		}

		for _, outcome := range s.Learner.UpdateWithSeries(e.Ticker, series) {
			s.Metrics.ExperimentsResolved.WithLabelValues(string(outcome)).Inc()
			log.Printf("[INFO] experiment resolved %s: %s", e.Ticker, outcome)
		}

		sig := strategy.ScoreBullish(series)
		if sig.Score < strategy.StrongThreshold {
			continue
		}
		if !s.Learner.StartExperiment(e.Ticker, series) {
			continue
		}
		s.Metrics.ExperimentsStarted.Inc()

		t := sig.Targets
		a := s.Edge.WorthTaking(sig.Score, t.Entry, t.Stop, t.T1)
		s.Watch.RecordSuggestions([]model.Suggestion{{
			Ticker:  e.Ticker,
			Kind:    string(e.Kind),
			Score:   sig.Score,
			Verdict: sig.Verdict,
			Prob:    a.Prob,
			At:      time.Now().UnixMilli(),
		}})
		if a.OK {
			s.trySend(notifier.FormatSignal(e.Ticker, sig, a))
		}
	}
}

// scanTask sweeps the universe and caches the ranked picks.
func (s *Scheduler) scanTask() {
	log.Println("[INFO] running universe scan")
	start := time.Now()

	picks := s.Scanner.TopPicks(s.Settings.Limit, s.Settings.MinProb, scanner.Options{
		Interval: s.Settings.Interval,
		Lookback: s.Settings.Lookback,
		Sectors:  s.Watch.SectorFilter(),
	})

	s.Metrics.ScansTotal.Inc()
	s.Metrics.ScanDuration.Observe(time.Since(start).Seconds())
	s.Metrics.PicksReturned.Set(float64(len(picks)))

	s.mu.Lock()
	s.lastPicks = picks
	s.lastScanAt = time.Now()
	s.mu.Unlock()

	suggestions := make([]model.Suggestion, 0, len(picks))
	for _, p := range picks {
		suggestions = append(suggestions, model.Suggestion{
			Ticker:  p.Ticker,
			Kind:    string(provider.KindFor(p.Ticker)),
			Score:   p.Score,
			Verdict: strategy.VerdictFor(p.Score),
			Prob:    p.Prob,
			At:      time.Now().UnixMilli(),
		})
	}
	s.Watch.RecordSuggestions(suggestions)

	if len(picks) > 0 {
		s.trySend(notifier.FormatScanReport(picks, s.Settings.MinProb))
	}
	log.Printf("[INFO] scan finished: %d picks in %v", len(picks), time.Since(start).Round(time.Millisecond))
}

// HandleCommand processes a user command and returns a reply.
func (s *Scheduler) HandleCommand(command string) string {
	switch {
	case command == "/scan":
		s.scanTask()
		picks, _ := s.LastPicks()
		return notifier.FormatScanReport(picks, s.Settings.MinProb)
	case command == "/watchlist":
		return s.formatWatchlist()
	case command == "/stats":
		return notifier.FormatLearningStats(s.Learner.Stats(), s.Learner.CalibrationBins())
	case strings.HasPrefix(command, "/signal "):
		return s.formatSignalFor(strings.TrimSpace(strings.TrimPrefix(command, "/signal ")))
	default:
		return "Commands:\n• /scan - scan the universe now\n• /watchlist - show watched tickers\n• /signal TICKER - full breakdown for one ticker\n• /stats - learning state"
	}
}

func (s *Scheduler) formatWatchlist() string {
	entries := s.Watch.Entries()
	if len(entries) == 0 {
		return "Watchlist is empty."
	}
	var b strings.Builder
	b.WriteString("👁 <b>Watchlist</b>\n\n")
	for _, e := range entries {
		b.WriteString(fmt.Sprintf("• %s (%s)\n", e.Ticker, e.Kind))
	}
	return b.String()
}

func (s *Scheduler) formatSignalFor(ticker string) string {
	if ticker == "" {
		return "Usage: /signal TICKER"
	}
	series, err := s.Provider.FetchSeries(ticker, provider.KindFor(ticker), s.Settings.Interval, s.Settings.Lookback)
	if err != nil {
		s.Metrics.FetchErrors.Inc()
		return fmt.Sprintf("No data for %s: %v", ticker, err)
	}
	sig := strategy.ScoreBullish(series)
	t := sig.Targets
	return notifier.FormatSignal(ticker, sig, s.Edge.WorthTaking(sig.Score, t.Entry, t.Stop, t.T1))
}

func (s *Scheduler) trySend(text string) {
	if !s.Notifier.Enabled() {
		return
	}
	if err := s.Notifier.SendWithRetry(s.Ctx, text, 3); err != nil {
		log.Printf("[ERROR] send notification: %v", err)
	}
}
