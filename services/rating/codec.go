package rating

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"studyon/models"
	"studyon/utils"

	"go.uber.org/zap"
)

// Sample log entries are flattened strings because the store's atomic
// array-append primitive only takes scalar values. The timestamp
// separator can never occur in a unix timestamp, the comma separates
// the two readings.
const (
	timestampSeparator = "___"
	readingSeparator   = ","
)

// EncodeSample flattens one reading into a log entry:
// "<unixTimestamp>___<crowdedness>,<noise>".
func EncodeSample(crowdedness, noise float64, ts time.Time) string {
	return fmt.Sprintf("%d%s%s%s%s",
		ts.Unix(),
		timestampSeparator,
		strconv.FormatFloat(crowdedness, 'g', -1, 64),
		readingSeparator,
		strconv.FormatFloat(noise, 'g', -1, 64),
	)
}

// DecodeSample parses one log entry. It is strict: exactly two
// timestamp-separated parts, exactly two numeric readings.
func DecodeSample(s string) (models.DynamicSample, error) {
	parts := strings.Split(s, timestampSeparator)
	if len(parts) != 2 {
		return models.DynamicSample{}, &ParseError{Entry: s,
			Reason: fmt.Sprintf("expected 2 timestamp-separated parts, got %d", len(parts))}
	}

	unix, err := strconv.ParseInt(parts[0], 10, 64)
	if err != nil {
		return models.DynamicSample{}, &ParseError{Entry: s, Reason: "non-numeric timestamp"}
	}

	readings := strings.Split(parts[1], readingSeparator)
	if len(readings) != 2 {
		return models.DynamicSample{}, &ParseError{Entry: s,
			Reason: fmt.Sprintf("expected 2 readings, got %d", len(readings))}
	}

	crowdedness, err := strconv.ParseFloat(readings[0], 64)
	if err != nil {
		return models.DynamicSample{}, &ParseError{Entry: s, Reason: "non-numeric crowdedness"}
	}
	noise, err := strconv.ParseFloat(readings[1], 64)
	if err != nil {
		return models.DynamicSample{}, &ParseError{Entry: s, Reason: "non-numeric noise"}
	}

	return models.DynamicSample{
		Timestamp:   time.Unix(unix, 0).UTC(),
		Crowdedness: crowdedness,
		Noise:       noise,
	}, nil
}

// DecodeLog decodes a whole sample log in original order. Malformed
// entries are logged and skipped; one corrupt line never aborts the
// rest of the log.
func DecodeLog(entries []string) []models.DynamicSample {
	samples := make([]models.DynamicSample, 0, len(entries))
	for _, entry := range entries {
		sample, err := DecodeSample(entry)
		if err != nil {
			utils.GetLogger().Warn("skipping malformed sample log entry", zap.Error(err))
			continue
		}
		samples = append(samples, sample)
	}
	return samples
}
