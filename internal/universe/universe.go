// Package universe holds the scan universe: static ticker lists grouped by
// sector. Membership is configuration, not engine logic; the default table
// can be replaced wholesale from a YAML file.
package universe

import (
	"fmt"
	"os"
	"sort"

	"gopkg.in/yaml.v3"
)

// Sector names a group of related tickers.
type Sector string

// Universe maps sectors to their member tickers.
type Universe struct {
	sectors map[Sector][]string
}

// New builds a Universe from an explicit sector table.
func New(sectors map[Sector][]string) *Universe {
	return &Universe{sectors: sectors}
}

// Default returns the built-in sector table.
func Default() *Universe {
	return &Universe{sectors: map[Sector][]string{
		"Tech":        {"AAPL", "MSFT", "NVDA", "AMZN", "META", "GOOGL", "ADBE", "CRM", "NOW", "ORCL", "INTU", "SHOP", "PANW", "UBER"},
		"Semis":       {"AMD", "AVGO", "QCOM", "MU", "INTC", "ASML", "TSM", "SMH"},
		"Finance":     {"JPM", "BAC", "MS", "GS", "SCHW", "V", "MA", "AXP"},
		"Consumer":    {"COST", "WMT", "HD", "LOW", "NKE", "SBUX", "MCD", "PG", "KO", "PEP"},
		"Healthcare":  {"LLY", "UNH", "JNJ", "PFE", "MRK", "ABT", "TMO"},
		"Energy":      {"XOM", "CVX", "COP", "SLB", "EOG"},
		"Industrials": {"CAT", "DE", "HON", "GE", "BA", "UPS"},
		"Materials":   {"LIN", "SHW", "FCX", "NEM"},
		"Crypto":      {"BTCUSD", "ETHUSD", "SOLUSD", "ADAUSD", "XRPUSD"},
	}}
}

// LoadFile reads a sector table from a YAML file shaped as
// `sector: [TICKER, ...]` and returns it as a Universe.
func LoadFile(path string) (*Universe, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read universe file: %w", err)
	}
	var raw map[Sector][]string
	if err := yaml.Unmarshal(data, &raw); err != nil {
		return nil, fmt.Errorf("parse universe file: %w", err)
	}
	if len(raw) == 0 {
		return nil, fmt.Errorf("universe file %s defines no sectors", path)
	}
	return &Universe{sectors: raw}, nil
}

// Sectors lists all known sector names, sorted.
func (u *Universe) Sectors() []Sector {
	out := make([]Sector, 0, len(u.sectors))
	for s := range u.sectors {
		out = append(out, s)
	}
	sort.Slice(out, func(i, j int) bool { return out[i] < out[j] })
	return out
}

// Tickers returns the de-duplicated union of the selected sectors' members,
// in stable order. An empty selection means all sectors.
func (u *Universe) Tickers(selected ...Sector) []string {
	sectors := selected
	if len(sectors) == 0 {
		sectors = u.Sectors()
	}
	seen := make(map[string]bool)
	var out []string
	for _, s := range sectors {
		for _, t := range u.sectors[s] {
			if seen[t] {
				continue
			}
			seen[t] = true
			out = append(out, t)
		}
	}
	return out
}
