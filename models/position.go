package models

import "time"

// PositionFix is one positional report from a device.
type PositionFix struct {
	Latitude  float64   `json:"latitude"`
	Longitude float64   `json:"longitude"`
	Accuracy  float64   `json:"accuracy"`
	Timestamp time.Time `json:"timestamp"`
}

// ProximityEvent is emitted when a device has dwelt near a known
// location long enough to be prompted for a reading.
type ProximityEvent struct {
	Location StudyLocation `json:"location"`
	FiredAt  time.Time     `json:"firedAt"`
}

// PromptPayload is the prompt delivery task body queued for the push
// worker.
type PromptPayload struct {
	SessionID    string `json:"sessionId"`
	FCMToken     string `json:"fcmToken"`
	LocationID   string `json:"locationId"`
	LocationName string `json:"locationName"`
}
