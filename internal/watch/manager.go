// Package watch manages the user-facing persisted state: the watchlist,
// the rolling suggestion list and the sector filter selection.
package watch

import (
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"sync"

	"BullScout/internal/model"
	"BullScout/internal/provider"
	"BullScout/internal/store"
	"BullScout/internal/universe"
)

const (
	watchlistKey   = "watch.list"
	suggestionsKey = "watch.suggestions"
	sectorsKey     = "watch.sectors"

	maxWatchlist   = 10
	maxSuggestions = 30
)

// ErrWatchlistFull is returned by Add when the watchlist is at capacity.
var ErrWatchlistFull = errors.New("watchlist is full")

// Entry is one watched instrument.
type Entry struct {
	Ticker string        `json:"ticker"`
	Kind   provider.Kind `json:"kind"`
}

// Manager holds the persisted watch state with concurrency safety. State is
// loaded once at startup and written back on every mutation; corrupt or
// missing values degrade to empty defaults.
type Manager struct {
	mu          sync.Mutex
	kv          store.KV
	entries     []Entry
	suggestions []model.Suggestion
	sectors     []universe.Sector
}

// NewManager creates a Manager, loading any existing state from the store.
func NewManager(kv store.KV) *Manager {
	m := &Manager{kv: kv}
	loadJSON(kv, watchlistKey, &m.entries)
	loadJSON(kv, suggestionsKey, &m.suggestions)
	loadJSON(kv, sectorsKey, &m.sectors)
	return m
}

// Entries returns a copy of the watchlist.
func (m *Manager) Entries() []Entry {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := make([]Entry, len(m.entries))
	copy(out, m.entries)
	return out
}

// Add appends a ticker to the watchlist. Adding an already-watched ticker is
// a no-op; a full watchlist returns ErrWatchlistFull.
func (m *Manager) Add(ticker string, kind provider.Kind) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	for _, e := range m.entries {
		if e.Ticker == ticker {
			return nil
		}
	}
	if len(m.entries) >= maxWatchlist {
		return fmt.Errorf("%w (max %d)", ErrWatchlistFull, maxWatchlist)
	}
	m.entries = append(m.entries, Entry{Ticker: ticker, Kind: kind})
	m.saveJSON(watchlistKey, m.entries)
	return nil
}

// Remove deletes a ticker from the watchlist. Returns false if it was not
// present.
func (m *Manager) Remove(ticker string) bool {
	m.mu.Lock()
	defer m.mu.Unlock()

	for i, e := range m.entries {
		if e.Ticker == ticker {
			m.entries = append(m.entries[:i], m.entries[i+1:]...)
			m.saveJSON(watchlistKey, m.entries)
			return true
		}
	}
	return false
}

// Suggestions returns a copy of the suggestion list, newest first.
func (m *Manager) Suggestions() []model.Suggestion {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := make([]model.Suggestion, len(m.suggestions))
	copy(out, m.suggestions)
	return out
}

// RecordSuggestions prepends new suggestions, keeping the most recent
// entries up to capacity.
func (m *Manager) RecordSuggestions(batch []model.Suggestion) {
	if len(batch) == 0 {
		return
	}
	m.mu.Lock()
	defer m.mu.Unlock()

	m.suggestions = append(batch, m.suggestions...)
	if len(m.suggestions) > maxSuggestions {
		m.suggestions = m.suggestions[:maxSuggestions]
	}
	m.saveJSON(suggestionsKey, m.suggestions)
}

// SectorFilter returns the selected sectors; empty means all.
func (m *Manager) SectorFilter() []universe.Sector {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := make([]universe.Sector, len(m.sectors))
	copy(out, m.sectors)
	return out
}

// SetSectorFilter replaces the sector selection.
func (m *Manager) SetSectorFilter(sectors []universe.Sector) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.sectors = append([]universe.Sector(nil), sectors...)
	m.saveJSON(sectorsKey, m.sectors)
}

func loadJSON(kv store.KV, key string, out interface{}) {
	raw, err := kv.Get(key)
	if err != nil {
		if !errors.Is(err, store.ErrNotFound) {
			log.Printf("[WARN] load %s: %v", key, err)
		}
		return
	}
	if err := json.Unmarshal(raw, out); err != nil {
		log.Printf("[WARN] corrupt %s, using defaults: %v", key, err)
	}
}

// saveJSON persists one key; write failures are logged and skipped so the
// in-memory state keeps working for this session. Callers hold the mutex.
func (m *Manager) saveJSON(key string, v interface{}) {
	raw, err := json.Marshal(v)
	if err != nil {
		log.Printf("[ERROR] marshal %s: %v", key, err)
		return
	}
	if err := m.kv.Set(key, raw); err != nil {
		log.Printf("[ERROR] save %s: %v", key, err)
	}
}
