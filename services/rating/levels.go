package rating

import "studyon/models"

// LevelScale buckets a numeric reading into three display bands via
// two thresholds. Thresholds and labels are configuration, not
// hard-coded per field.
type LevelScale struct {
	LowMax  float64
	MidMax  float64
	Low     string
	Mid     string
	High    string
	Unknown string
}

// CrowdednessScale is the display preset for crowdedness readings.
var CrowdednessScale = LevelScale{
	LowMax:  1.67,
	MidMax:  2.33,
	Low:     "Sparse",
	Mid:     "Crowded",
	High:    "Full",
	Unknown: "Unknown",
}

// NoiseScale is the display preset for noise readings.
var NoiseScale = LevelScale{
	LowMax:  1.67,
	MidMax:  2.33,
	Low:     "Quiet",
	Mid:     "Audible",
	High:    "Loud",
	Unknown: "Unknown",
}

// LevelToText renders the effective reading as display text. A
// non-zero userOverride means the user is composing a submission and
// their choice wins over the aggregate. The -1 sentinel means no data.
// Both thresholds are boundary inclusive.
func LevelToText(userOverride, aggregate float64, scale LevelScale) string {
	value := aggregate
	if userOverride != 0 {
		value = userOverride
	}

	if value == models.LevelUnknown {
		return scale.Unknown
	}
	if value <= scale.LowMax {
		return scale.Low
	}
	if value <= scale.MidMax {
		return scale.Mid
	}
	return scale.High
}
