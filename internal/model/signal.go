package model

// Verdict is the qualitative reading of a bullish score.
type Verdict string

const (
	VerdictStrong   Verdict = "Strong"
	VerdictModerate Verdict = "Moderate"
	VerdictWeak     Verdict = "Weak"
	VerdictAvoid    Verdict = "Avoid"
)

// Detail is one (label, value) display pair in a signal explanation.
type Detail struct {
	Label string `json:"label"`
	Value string `json:"value"`
}

// Targets holds the derived trade levels for a setup.
type Targets struct {
	Entry float64 `json:"entry"`
	Stop  float64 `json:"stop"`
	T1    float64 `json:"t1"`
	T2    float64 `json:"t2"`
}

// SignalExplanation is the full output of the bullish scorer.
type SignalExplanation struct {
	Score   int      `json:"score"` // 0-100
	Verdict Verdict  `json:"verdict"`
	Details []Detail `json:"details"`
	Targets Targets  `json:"targets"`
}

// Pick is one scanner ranking result.
type Pick struct {
	Ticker string  `json:"ticker"`
	Series Series  `json:"-"`
	Score  int     `json:"score"`
	Prob   float64 `json:"prob"`
}

// Suggestion is a persisted strong-setup record surfaced to the display layer.
type Suggestion struct {
	Ticker  string  `json:"ticker"`
	Kind    string  `json:"kind"`
	Score   int     `json:"score"`
	Verdict Verdict `json:"verdict"`
	Prob    float64 `json:"prob"`
	At      int64   `json:"at"` // ms epoch
}
