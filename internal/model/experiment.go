package model

// Outcome is how a tracked setup resolved.
type Outcome string

const (
	OutcomeTP1  Outcome = "tp1"
	OutcomeStop Outcome = "stop"
)

// Experiment records a bullish setup observed at a moment in time. It is
// created unresolved, resolved exactly once when a later bar confirms a
// target or stop hit, and never mutated after resolution.
type Experiment struct {
	ID         string  `json:"id"` // ticker + start timestamp
	Ticker     string  `json:"ticker"`
	StartedAt  int64   `json:"startedAt"` // ms epoch
	Score      int     `json:"score"`
	Entry      float64 `json:"entry"`
	Stop       float64 `json:"stop"`
	T1         float64 `json:"t1"`
	Resolved   Outcome `json:"resolved,omitempty"`
	ResolvedAt int64   `json:"resolvedAt,omitempty"`
}

// IsResolved reports whether the experiment has an outcome.
func (e *Experiment) IsResolved() bool { return e.Resolved != "" }
