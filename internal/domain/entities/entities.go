// Package entities contains core business entities.
// These are pure domain objects with no external dependencies: a NAV snapshot,
// the fund records derived from it, the user profile, and the recommendation.
package entities

import "time"

// Column names used by the AMFI NAV file.
const (
	ColumnSchemeName = "Scheme Name"
	ColumnNAV        = "Net Asset Value"
)

// Snapshot is one published NAV file as fetched from the source.
type Snapshot struct {
	Date time.Time // Date token found in the body
	Path string    // Where the snapshot was saved, if anywhere
	Raw  string
}

// RawRecord is one parsed row of a NAV file, keyed by header name.
type RawRecord map[string]string

// Signals are the per-fund performance and volatility values used for scoring.
// Returns are percentages; Volatility is non-negative.
type Signals struct {
	OneDay     float64 `json:"1d"`
	OneWeek    float64 `json:"1w"`
	OneMonth   float64 `json:"1m"`
	SixMonth   float64 `json:"6m"`
	OneYear    float64 `json:"1y"`
	ThreeYear  float64 `json:"3y"`
	Volatility float64 `json:"volatility"`
}

// FundRecord is one row of the working table.
// Name is unique within a cleaned set. Signals is nil until attached.
type FundRecord struct {
	Name     string   `json:"name"`
	NAV      float64  `json:"nav"`
	Category Category `json:"category"`
	Signals  *Signals `json:"signals,omitempty"`
}

// RankedFund is a fund that survived the profile filter, with its score.
type RankedFund struct {
	FundRecord
	AdjustedScore float64 `json:"adjusted_score"`
	Rank          int     `json:"rank"` // 1-based
}

// Outcome classifies a recommendation result.
type Outcome int

const (
	// OutcomeMatched means at least one fund was ranked.
	OutcomeMatched Outcome = iota
	// OutcomeIngestEmpty means there was no usable NAV data to rank.
	OutcomeIngestEmpty
	// OutcomeNoMatch means data existed but nothing fit the profile.
	OutcomeNoMatch
)

var outcomeNames = [...]string{"matched", "ingest_empty", "no_match"}

func (o Outcome) String() string {
	if o >= 0 && int(o) < len(outcomeNames) {
		return outcomeNames[o]
	}
	return "unknown"
}

// MarshalText implements encoding.TextMarshaler.
func (o Outcome) MarshalText() ([]byte, error) { return []byte(o.String()), nil }

// Message is the user-facing explanation for an empty result.
func (o Outcome) Message() string {
	switch o {
	case OutcomeIngestEmpty:
		return "No NAV data available. Try again later."
	case OutcomeNoMatch:
		return "No funds match your preferences. Try changing your inputs."
	default:
		return ""
	}
}

// Recommendation is the ranked short-list produced for one profile.
type Recommendation struct {
	Profile UserProfile  `json:"profile"`
	Allowed CategorySet  `json:"allowed"`
	Funds   []RankedFund `json:"funds"`
	Outcome Outcome      `json:"outcome"`
}

// Empty reports whether no fund was recommended.
func (r *Recommendation) Empty() bool {
	return len(r.Funds) == 0
}
