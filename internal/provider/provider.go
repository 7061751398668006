// Package provider abstracts the external market-data source. The engine
// only ever sees an ordered Series per ticker; everything about transport,
// symbol mapping and rate limits lives behind the Provider interface.
package provider

import "BullScout/internal/model"

// Kind distinguishes the instrument class, since most data sources use
// different symbols or endpoints for each.
type Kind string

const (
	KindStock  Kind = "stock"
	KindCrypto Kind = "crypto"
)

// Interval is the bar sampling interval.
type Interval string

const (
	Interval1m Interval = "1m"
	Interval5m Interval = "5m"
	Interval1h Interval = "1h"
	Interval1d Interval = "1d"
)

// Provider fetches a price series for one ticker. Calls are independent and
// may be issued concurrently. A failed fetch means "no data for this ticker";
// callers drop the ticker and continue.
type Provider interface {
	FetchSeries(ticker string, kind Kind, interval Interval, lookback int) (model.Series, error)
	Name() string
}

// KindFor guesses the instrument class from the ticker: USD-quoted pairs are
// treated as crypto, everything else as stock.
func KindFor(ticker string) Kind {
	if len(ticker) > 3 && ticker[len(ticker)-3:] == "USD" {
		return KindCrypto
	}
	return KindStock
}
