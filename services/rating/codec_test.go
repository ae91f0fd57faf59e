package rating

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEncodeSampleFormat(t *testing.T) {
	ts := time.Unix(1717171717, 0)
	entry := EncodeSample(2, 3, ts)
	assert.Equal(t, "1717171717___2,3", entry)
}

func TestDecodeSampleRoundTrip(t *testing.T) {
	cases := []struct {
		crowdedness float64
		noise       float64
	}{
		{1, 1},
		{2, 3},
		{1.5, 2.75},
		{0.001, 2.9999},
	}

	ts := time.Unix(1717171717, 0).UTC()
	for _, tc := range cases {
		entry := EncodeSample(tc.crowdedness, tc.noise, ts)
		sample, err := DecodeSample(entry)
		require.NoError(t, err, "entry %q", entry)
		assert.Equal(t, tc.crowdedness, sample.Crowdedness)
		assert.Equal(t, tc.noise, sample.Noise)
		assert.Equal(t, ts, sample.Timestamp)
	}
}

func TestDecodeSampleMalformed(t *testing.T) {
	cases := []string{
		"",
		"no separator at all",
		"1717171717___1,2___3",
		"1717171717___1",
		"1717171717___1,2,3",
		"1717171717___x,2",
		"1717171717___1,y",
		"notatime___1,2",
	}
	for _, entry := range cases {
		_, err := DecodeSample(entry)
		require.Error(t, err, "entry %q", entry)
		var parseErr *ParseError
		assert.ErrorAs(t, err, &parseErr, "entry %q", entry)
	}
}

func TestDecodeLogSkipsCorruptEntries(t *testing.T) {
	ts := time.Unix(1700000000, 0)
	entries := []string{
		EncodeSample(1, 1, ts),
		EncodeSample(2, 2, ts.Add(time.Minute)),
		"garbage entry",
		EncodeSample(3, 3, ts.Add(2*time.Minute)),
	}

	samples := DecodeLog(entries)
	require.Len(t, samples, 3)

	// Original order survives the skip.
	assert.Equal(t, []float64{1, 2, 3}, []float64{
		samples[0].Crowdedness, samples[1].Crowdedness, samples[2].Crowdedness,
	})
}

func TestDecodeLogEmpty(t *testing.T) {
	assert.Empty(t, DecodeLog(nil))
	assert.Empty(t, DecodeLog([]string{}))
}

func TestDecodeLogAllCorrupt(t *testing.T) {
	samples := DecodeLog([]string{"a", "b___", "___c"})
	assert.Empty(t, samples)
}
