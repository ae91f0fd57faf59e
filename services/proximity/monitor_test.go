package proximity

import (
	"testing"
	"time"

	"studyon/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// Coordinates around the British Library. 0.001 degrees of latitude is
// roughly 111 meters, comfortably past the 50 meter radius.
const (
	baseLat = 51.5299
	baseLng = -0.1276
	farStep = 0.001
)

func testLocations() []models.StudyLocation {
	return []models.StudyLocation{
		{DocumentID: "library", Name: "British Library", Latitude: baseLat, Longitude: baseLng},
	}
}

func fix(lat, lng float64) models.PositionFix {
	return models.PositionFix{Latitude: lat, Longitude: lng}
}

// fakeClock pins the monitor's clock and lets tests advance it.
type fakeClock struct{ t time.Time }

func (c *fakeClock) now() time.Time          { return c.t }
func (c *fakeClock) advance(d time.Duration) { c.t = c.t.Add(d) }

func newTestMonitor(nearest bool) (*Monitor, *fakeClock) {
	clock := &fakeClock{t: time.Unix(1700000000, 0)}
	m := NewMonitor(50, 30*time.Second, nearest)
	m.now = clock.now
	return m, clock
}

func TestObserveFirstFixOnlyPrimes(t *testing.T) {
	m, _ := newTestMonitor(false)

	event := m.Observe(fix(baseLat, baseLng), testLocations())
	assert.Nil(t, event)
	assert.Equal(t, Idle, m.State())
}

func TestObserveDwellFiresOnce(t *testing.T) {
	m, clock := newTestMonitor(false)
	known := testLocations()

	// Prime, then start dwelling at the location.
	require.Nil(t, m.Observe(fix(baseLat, baseLng), known))
	require.Nil(t, m.Observe(fix(baseLat, baseLng), known))
	assert.Equal(t, Dwelling, m.State())

	// Ten seconds in: below threshold, no event.
	clock.advance(10 * time.Second)
	assert.Nil(t, m.Observe(fix(baseLat, baseLng), known))

	// Thirty-five seconds in: threshold crossed, exactly one event.
	clock.advance(25 * time.Second)
	event := m.Observe(fix(baseLat, baseLng), known)
	require.NotNil(t, event)
	assert.Equal(t, "library", event.Location.DocumentID)
	assert.Equal(t, clock.t, event.FiredAt)
	assert.Equal(t, Prompted, m.State())

	// Staying put never retriggers.
	clock.advance(time.Hour)
	assert.Nil(t, m.Observe(fix(baseLat, baseLng), known))
	assert.Equal(t, Prompted, m.State())
}

func TestObserveDepartureBeforeThresholdResets(t *testing.T) {
	m, clock := newTestMonitor(false)
	known := testLocations()

	require.Nil(t, m.Observe(fix(baseLat, baseLng), known))
	require.Nil(t, m.Observe(fix(baseLat, baseLng), known))
	require.Equal(t, Dwelling, m.State())

	// Leave after twenty seconds: no event, timer cleared.
	clock.advance(20 * time.Second)
	assert.Nil(t, m.Observe(fix(baseLat+farStep, baseLng), known))
	assert.Equal(t, Idle, m.State())
	assert.Nil(t, m.Candidate())

	// Coming back starts a fresh dwell period.
	require.Nil(t, m.Observe(fix(baseLat, baseLng), known))
	clock.advance(29 * time.Second)
	assert.Nil(t, m.Observe(fix(baseLat, baseLng), known))
	clock.advance(time.Second)
	assert.NotNil(t, m.Observe(fix(baseLat, baseLng), known))
}

func TestObserveDepartureRearmsAfterPrompt(t *testing.T) {
	m, clock := newTestMonitor(false)
	known := testLocations()

	require.Nil(t, m.Observe(fix(baseLat, baseLng), known))
	require.Nil(t, m.Observe(fix(baseLat, baseLng), known))
	clock.advance(30 * time.Second)
	require.NotNil(t, m.Observe(fix(baseLat, baseLng), known))
	require.Equal(t, Prompted, m.State())

	// Leaving the radius re-arms the machine.
	assert.Nil(t, m.Observe(fix(baseLat+farStep, baseLng), known))
	assert.Equal(t, Idle, m.State())

	// A second full dwell fires again.
	require.Nil(t, m.Observe(fix(baseLat, baseLng), known))
	clock.advance(30 * time.Second)
	assert.NotNil(t, m.Observe(fix(baseLat, baseLng), known))
}

func TestObserveNoKnownLocationNearby(t *testing.T) {
	m, clock := newTestMonitor(false)
	far := []models.StudyLocation{
		{DocumentID: "remote", Latitude: baseLat + 1, Longitude: baseLng},
	}

	require.Nil(t, m.Observe(fix(baseLat, baseLng), far))
	for i := 0; i < 5; i++ {
		clock.advance(time.Minute)
		assert.Nil(t, m.Observe(fix(baseLat, baseLng), far))
		assert.Equal(t, Idle, m.State())
	}
}

func TestFindCandidateFirstMatchVersusNearest(t *testing.T) {
	// Both within radius; the second is closer to the fix.
	known := []models.StudyLocation{
		{DocumentID: "first", Latitude: baseLat + 0.0003, Longitude: baseLng},
		{DocumentID: "closer", Latitude: baseLat, Longitude: baseLng},
	}

	m, _ := newTestMonitor(false)
	require.Nil(t, m.Observe(fix(baseLat, baseLng), known))
	require.Nil(t, m.Observe(fix(baseLat, baseLng), known))
	require.NotNil(t, m.Candidate())
	assert.Equal(t, "first", m.Candidate().DocumentID)

	m, _ = newTestMonitor(true)
	require.Nil(t, m.Observe(fix(baseLat, baseLng), known))
	require.Nil(t, m.Observe(fix(baseLat, baseLng), known))
	require.NotNil(t, m.Candidate())
	assert.Equal(t, "closer", m.Candidate().DocumentID)
}

func TestObserveBoundaryAtExactRadius(t *testing.T) {
	m, _ := newTestMonitor(false)
	known := testLocations()

	require.Nil(t, m.Observe(fix(baseLat, baseLng), known))
	require.Nil(t, m.Observe(fix(baseLat, baseLng), known))
	require.Equal(t, Dwelling, m.State())

	// Displacement well past 50 meters from the last fix resets; a
	// couple of meters does not.
	assert.Nil(t, m.Observe(fix(baseLat+farStep, baseLng), known))
	assert.Equal(t, Idle, m.State())
}

func TestHaversineMeters(t *testing.T) {
	// One degree of latitude is about 111.2 km.
	d := haversineMeters(0, 0, 1, 0)
	assert.InDelta(t, 111195, d, 100)

	assert.Zero(t, haversineMeters(baseLat, baseLng, baseLat, baseLng))
}
