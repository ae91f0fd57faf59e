package proximity

import (
	"time"

	"studyon/models"
)

// State is the monitor's dwell-detection phase.
type State int

const (
	// Idle: no candidate, no running dwell timer.
	Idle State = iota
	// Dwelling: candidate set, dwell timer running.
	Dwelling
	// Prompted: event fired for this dwell period; the machine re-arms
	// only when the device leaves the radius.
	Prompted
)

func (s State) String() string {
	switch s {
	case Dwelling:
		return "dwelling"
	case Prompted:
		return "prompted"
	default:
		return "idle"
	}
}

// Monitor is a single-threaded state reducer over a serial stream of
// position fixes. It carries no locking: the caller must process one
// fix to completion before the next.
type Monitor struct {
	radius  float64
	dwell   time.Duration
	nearest bool
	now     func() time.Time

	state      State
	lastFix    *models.PositionFix
	dwellStart time.Time
	candidate  *models.StudyLocation
}

// NewMonitor builds a monitor with the given proximity radius in
// meters and minimum dwell duration. When nearest is false the
// candidate lookup keeps the first location found within radius, which
// matches the shipped behavior; true upgrades to the closest one.
func NewMonitor(radiusMeters float64, dwell time.Duration, nearest bool) *Monitor {
	return &Monitor{
		radius:  radiusMeters,
		dwell:   dwell,
		nearest: nearest,
		now:     time.Now,
	}
}

// State returns the current phase.
func (m *Monitor) State() State { return m.state }

// Candidate returns the location currently dwelt near, if any.
func (m *Monitor) Candidate() *models.StudyLocation { return m.candidate }

// Observe feeds one fix through the state machine. known is the
// current set of study locations scanned for a candidate. It returns a
// non-nil event exactly when a dwell period crosses the threshold.
func (m *Monitor) Observe(fix models.PositionFix, known []models.StudyLocation) *models.ProximityEvent {
	defer func() {
		f := fix
		m.lastFix = &f
	}()

	if m.lastFix == nil {
		return nil
	}

	distance := haversineMeters(fix.Latitude, fix.Longitude, m.lastFix.Latitude, m.lastFix.Longitude)
	if distance >= m.radius {
		// Moved away: reset and re-arm.
		m.state = Idle
		m.dwellStart = time.Time{}
		m.candidate = nil
		return nil
	}

	switch m.state {
	case Prompted:
		// Cooldown: the same dwell period never retriggers.
		return nil

	case Idle:
		candidate := m.findCandidate(fix, known)
		if candidate == nil {
			// Not near anything known. Normal, not an error.
			return nil
		}
		m.candidate = candidate
		m.dwellStart = m.now()
		m.state = Dwelling
		return nil

	default: // Dwelling
		if m.now().Sub(m.dwellStart) < m.dwell {
			return nil
		}
		event := &models.ProximityEvent{
			Location: *m.candidate,
			FiredAt:  m.now(),
		}
		m.state = Prompted
		m.dwellStart = time.Time{}
		return event
	}
}

// findCandidate scans all known locations linearly for one within
// radius of the fix.
func (m *Monitor) findCandidate(fix models.PositionFix, known []models.StudyLocation) *models.StudyLocation {
	var best *models.StudyLocation
	bestDistance := m.radius

	for i := range known {
		loc := &known[i]
		d := haversineMeters(fix.Latitude, fix.Longitude, loc.Latitude, loc.Longitude)
		if d >= m.radius {
			continue
		}
		if !m.nearest {
			return loc
		}
		if best == nil || d < bestDistance {
			best = loc
			bestDistance = d
		}
	}
	return best
}
