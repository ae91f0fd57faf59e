package notification

import (
	"context"
	"fmt"

	"studyon/models"
	"studyon/utils"

	"firebase.google.com/go/v4/messaging"
)

// NotificationService sends the "rate this study location" push.
type NotificationService interface {
	SendRatePrompt(ctx context.Context, payload models.PromptPayload) error
}

// DefaultNotificationService is the production implementation on FCM.
type DefaultNotificationService struct{}

// SendRatePrompt pushes the prompt to the device token attached to the
// proximity session. Best effort: the caller logs failures and moves on.
func (s *DefaultNotificationService) SendRatePrompt(ctx context.Context, payload models.PromptPayload) error {
	if payload.FCMToken == "" {
		return fmt.Errorf("SendRatePrompt: session %s has no FCM token", payload.SessionID)
	}

	msg := &messaging.Message{
		Token: payload.FCMToken,
		Notification: &messaging.Notification{
			Title: "Rate this study location!",
			Body: fmt.Sprintf("You seem to be at %s.\nPlease rate this location and share your experience!",
				payload.LocationName),
		},
		Data: map[string]string{
			"type":       "rate_prompt",
			"locationId": payload.LocationID,
		},
		Android: &messaging.AndroidConfig{
			Priority: "high",
			Notification: &messaging.AndroidNotification{
				ChannelID: "high_priority",
				Sound:     "default",
			},
		},
		APNS: &messaging.APNSConfig{
			Headers: map[string]string{
				"apns-priority":  "10",
				"apns-push-type": "alert",
			},
			Payload: &messaging.APNSPayload{
				Aps: &messaging.Aps{
					Sound: "default",
				},
			},
		},
	}

	if _, err := utils.FCMClient.Send(ctx, msg); err != nil {
		return fmt.Errorf("SendRatePrompt: failed to send FCM message: %w", err)
	}
	return nil
}
