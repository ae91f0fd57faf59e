package proximity

import (
	"context"
	"errors"
	"sync"
	"time"

	"studyon/models"
	"studyon/utils"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// ErrSessionNotFound is returned for an unknown or expired session ID.
var ErrSessionNotFound = errors.New("proximity session not found")

// LocationSource supplies the current set of known study locations for
// candidate scans.
type LocationSource interface {
	Snapshot(ctx context.Context) ([]models.StudyLocation, error)
}

// PromptSink delivers "rate this location" prompts. Delivery is
// fire-and-forget: a sink failure is logged and never touches the
// state machine.
type PromptSink interface {
	EnqueuePrompt(ctx context.Context, payload models.PromptPayload) error
}

// PendingPrompt is the in-app state a fired event leaves behind: which
// location to prompt for and whether a submission is currently allowed.
type PendingPrompt struct {
	Location    *models.StudyLocation `json:"location,omitempty"`
	AllowSubmit bool                  `json:"allowSubmit"`
	State       string                `json:"state"`
	Foreground  bool                  `json:"foreground"`
}

// session is one device's monitoring state. The monitor itself is a
// lock-free reducer; mu serializes the fix stream per session.
type session struct {
	mu          sync.Mutex
	monitor     *Monitor
	fcmToken    string
	pending     *models.StudyLocation
	allowSubmit bool
	foreground  bool
}

// Service owns the per-device proximity monitors.
type Service struct {
	Locations LocationSource
	Sink      PromptSink

	RadiusMeters   float64
	DwellThreshold time.Duration
	Nearest        bool

	mu       sync.Mutex
	sessions map[string]*session
}

// NewService builds a proximity service with the configured radius,
// dwell threshold and candidate selection policy.
func NewService(locations LocationSource, sink PromptSink, radiusMeters float64, dwell time.Duration, nearest bool) *Service {
	return &Service{
		Locations:      locations,
		Sink:           sink,
		RadiusMeters:   radiusMeters,
		DwellThreshold: dwell,
		Nearest:        nearest,
		sessions:       make(map[string]*session),
	}
}

// CreateSession registers a monitoring session for a device and
// returns its ID. fcmToken may be empty; prompts then surface only
// through the pending state.
func (s *Service) CreateSession(fcmToken string) string {
	id := uuid.New().String()
	s.mu.Lock()
	s.sessions[id] = &session{
		monitor:    NewMonitor(s.RadiusMeters, s.DwellThreshold, s.Nearest),
		fcmToken:   fcmToken,
		foreground: true,
	}
	s.mu.Unlock()
	return id
}

func (s *Service) get(sessionID string) (*session, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	sess, ok := s.sessions[sessionID]
	if !ok {
		return nil, ErrSessionNotFound
	}
	return sess, nil
}

// ObserveFix feeds one position fix through the session's monitor and
// handles any emitted event.
func (s *Service) ObserveFix(ctx context.Context, sessionID string, fix models.PositionFix) error {
	sess, err := s.get(sessionID)
	if err != nil {
		return err
	}

	known, err := s.Locations.Snapshot(ctx)
	if err != nil {
		return err
	}

	sess.mu.Lock()
	event := sess.monitor.Observe(fix, known)
	if event != nil {
		// A fired event re-arms submission for the new dwell period.
		loc := event.Location
		sess.pending = &loc
		sess.allowSubmit = true
	}
	token := sess.fcmToken
	sess.mu.Unlock()

	if event == nil {
		return nil
	}

	logger := utils.GetLogger()
	logger.Info("proximity event fired",
		zap.String("sessionID", sessionID),
		zap.String("location", event.Location.Name))

	payload := models.PromptPayload{
		SessionID:    sessionID,
		FCMToken:     token,
		LocationID:   event.Location.DocumentID,
		LocationName: event.Location.Name,
	}
	if err := s.Sink.EnqueuePrompt(ctx, payload); err != nil {
		// Best effort: the in-app pending state is already set.
		logger.Warn("prompt delivery failed",
			zap.String("sessionID", sessionID), zap.Error(err))
	}
	return nil
}

// EnterForeground switches the session to continuous update cadence.
// The cadence itself is the platform's job; the service only records
// the policy.
func (s *Service) EnterForeground(sessionID string) error {
	return s.setForeground(sessionID, true)
}

// EnterBackground switches the session to coarse significant-change
// updates.
func (s *Service) EnterBackground(sessionID string) error {
	return s.setForeground(sessionID, false)
}

func (s *Service) setForeground(sessionID string, foreground bool) error {
	sess, err := s.get(sessionID)
	if err != nil {
		return err
	}
	sess.mu.Lock()
	sess.foreground = foreground
	sess.mu.Unlock()
	return nil
}

// Pending returns the session's prompt state for the UI layer.
func (s *Service) Pending(sessionID string) (*PendingPrompt, error) {
	sess, err := s.get(sessionID)
	if err != nil {
		return nil, err
	}
	sess.mu.Lock()
	defer sess.mu.Unlock()
	return &PendingPrompt{
		Location:    sess.pending,
		AllowSubmit: sess.allowSubmit,
		State:       sess.monitor.State().String(),
		Foreground:  sess.foreground,
	}, nil
}

// MarkSubmitted clears the submission gate after the user has sent a
// reading, guarding against duplicates for the same dwell period. Only
// the next proximity event re-arms it.
func (s *Service) MarkSubmitted(sessionID string) error {
	sess, err := s.get(sessionID)
	if err != nil {
		return err
	}
	sess.mu.Lock()
	sess.allowSubmit = false
	sess.mu.Unlock()
	return nil
}
