// Package model defines shared data structures.
package model

import "time"

// DecodeConfig defines decoding settings after config and flags are merged.
type DecodeConfig struct {
	Lang       string
	Segmenter  string
	Policy     string
	MinWordLen int
	Digits     bool
	Workers    int
	Timeout    time.Duration
	History    bool
}

// Run captures one finished decode.
type Run struct {
	ID         int64
	StartedAt  time.Time
	EndedAt    time.Time
	Code       string
	Mode       string
	Lang       string
	Best       string
	Letters    string
	Likelihood float64
	Outcome    string
	Candidates int
	Scored     int
	DurationMs int64
}

// HistoryFilter narrows stored runs for listing.
type HistoryFilter struct {
	Lang    string
	Outcome string
	Since   *time.Time
	Last    int
}

// RunSummary aggregates stored runs per outcome.
type RunSummary struct {
	Total          int
	Found          int
	NoDecoding     int
	NoSegmentation int
	Cancelled      int
	AvgDurationMs  float64
	MaxCandidates  int
}
