package models

import "time"

// Crowdedness and noise readings use a 1..3 scale.
const (
	LevelLow    = 1.0 // Sparse / Quiet
	LevelMedium = 2.0 // Crowded / Audible
	LevelHigh   = 3.0 // Full / Loud
)

// LevelUnknown distinguishes "no data" from a zero reading when
// rendering level text.
const LevelUnknown = -1.0

// DynamicSample is one crowdedness/noise reading submitted for a
// location. Samples have no identity beyond their position in the
// location's dynamicReviews log.
type DynamicSample struct {
	Timestamp   time.Time `json:"timestamp"`
	Crowdedness float64   `json:"crowdedness"`
	Noise       float64   `json:"noise"`
}
