package rating

import "studyon/models"

// SampleField selects which reading RollingAverage averages.
type SampleField int

const (
	FieldCrowdedness SampleField = iota
	FieldNoise
)

// DefaultWindowSize is the rolling window used when configuration does
// not override it.
const DefaultWindowSize = 5

// RollingAverage returns the arithmetic mean of one field over the
// first windowSize entries of the log, in original insertion order.
// Averaging the oldest entries rather than the newest reproduces the
// historical behavior; see DESIGN.md before changing the direction.
// An empty log yields 0.
func RollingAverage(samples []models.DynamicSample, field SampleField, windowSize int) float64 {
	if len(samples) == 0 || windowSize <= 0 {
		return 0
	}

	window := samples
	if len(window) > windowSize {
		window = window[:windowSize]
	}

	var sum float64
	for _, s := range window {
		switch field {
		case FieldNoise:
			sum += s.Noise
		default:
			sum += s.Crowdedness
		}
	}
	return sum / float64(len(window))
}

// FoldRating folds a new star submission into a running mean without
// retaining the individual submission.
func FoldRating(rating float64, count int, newStar float64) (float64, int) {
	updated := (rating*float64(count) + newStar) / float64(count+1)
	return updated, count + 1
}
