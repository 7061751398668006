package notifier

import (
	"fmt"
	"strings"
	"time"

	"BullScout/internal/edge"
	"BullScout/internal/learn"
	"BullScout/internal/model"
)

// FormatScanReport formats the result of a universe scan.
func FormatScanReport(picks []model.Pick, minProb float64) string {
	var b strings.Builder

	b.WriteString(fmt.Sprintf("🔎 <b>BullScout scan</b> | %s\n\n", time.Now().Format("2006-01-02 15:04")))
	if len(picks) == 0 {
		b.WriteString(fmt.Sprintf("No candidates above %.0f%% probability this pass.\n", minProb*100))
		return b.String()
	}

	for i, p := range picks {
		b.WriteString(fmt.Sprintf("%d. <b>%s</b>  score %d  p(TP1) %.0f%%\n", i+1, p.Ticker, p.Score, p.Prob*100))
	}
	return b.String()
}

// FormatSignal formats a full signal breakdown for one ticker.
func FormatSignal(ticker string, sig model.SignalExplanation, a edge.Assessment) string {
	var b strings.Builder

	b.WriteString(fmt.Sprintf("📈 <b>%s</b> — %s (score %d)\n\n", ticker, sig.Verdict, sig.Score))
	for _, d := range sig.Details {
		b.WriteString(fmt.Sprintf("  %s: %s\n", d.Label, d.Value))
	}

	t := sig.Targets
	b.WriteString(fmt.Sprintf("\nEntry %.2f | Stop %.2f | TP1 %.2f | TP2 %.2f\n", t.Entry, t.Stop, t.T1, t.T2))
	b.WriteString(fmt.Sprintf("R/R %.2f | p(TP1) %.0f%% | EV/share %+.2f\n", a.RR, a.Prob*100, a.EV))
	if a.OK {
		b.WriteString("✅ Worth taking by the current gate")
	} else {
		b.WriteString("⛔ Below the worth-taking gate")
	}
	return b.String()
}

// FormatLearningStats formats the experiment history summary.
func FormatLearningStats(st learn.Stats, bins []learn.BinStats) string {
	var b strings.Builder

	b.WriteString("🧪 <b>Learning state</b>\n\n")
	b.WriteString(fmt.Sprintf("Experiments: %d total, %d open, %d resolved\n", st.Total, st.Open, st.Resolved))
	if st.Resolved > 0 {
		b.WriteString(fmt.Sprintf("Win rate: %.0f%% (%d/%d)\n", float64(st.Wins)/float64(st.Resolved)*100, st.Wins, st.Resolved))
	}

	var calibrated int
	for _, bin := range bins {
		if !bin.Available {
			continue
		}
		calibrated++
		b.WriteString(fmt.Sprintf("  bin %d0-%d9: %.0f%% (%d/%d)\n", bin.Bin, bin.Bin, bin.Prob*100, bin.Wins, bin.Total))
	}
	if calibrated == 0 {
		b.WriteString("No calibrated bins yet; using the logistic fallback.\n")
	}
	return b.String()
}
