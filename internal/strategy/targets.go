package strategy

import (
	"math"

	"BullScout/internal/calculator"
	"BullScout/internal/model"
)

const (
	swingLookback = 20
	priceFloor    = 0.01
	riskFloor     = 0.0001
)

// deriveTargets computes the swing-based stop and the R-multiple take-profit
// levels for a long entry at the last close.
func deriveTargets(series model.Series, entry, atr float64) model.Targets {
	swingLook := swingLookback
	if swingLook > len(series) {
		swingLook = len(series)
	}
	recentLow := calculator.RecentLow(series, swingLook)

	stopBuf := math.Max(entry*0.005, atr*0.6)
	rawStop := math.Min(entry-stopBuf, recentLow-atr*0.2)
	stop := math.Max(priceFloor, rawStop)

	risk := math.Max(riskFloor, entry-stop)
	t1 := entry + math.Max(risk, atr*0.8)
	t2 := entry + math.Max(2*risk, atr*1.5)

	return model.Targets{Entry: entry, Stop: stop, T1: t1, T2: t2}
}
