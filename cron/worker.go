package cron

import (
	"context"
	"encoding/json"
	"log"
	"time"

	"studyon/config"
	"studyon/models"
	"studyon/services/notification"

	"github.com/hibiken/asynq"
)

// InitPromptWorker runs the async prompt delivery worker in background.
func InitPromptWorker(notifSvc notification.NotificationService) {
	redisOpts := asynq.RedisClientOpt{
		Addr:     config.AppConfig.RedisAddr,
		Password: config.AppConfig.RedisPassword,
		DB:       config.AppConfig.RedisPromptQueue,
	}

	srv := asynq.NewServer(
		redisOpts,
		asynq.Config{
			Concurrency: 10,
			Queues: map[string]int{
				"default": 1,
			},
		},
	)

	mux := asynq.NewServeMux()
	mux.HandleFunc(notification.TypePromptSend, handlePromptTask(notifSvc))

	go func() {
		log.Println("[PromptWorker] starting async worker...")
		const maxAttempts = 5

		for attempts := 1; attempts <= maxAttempts; attempts++ {
			if err := srv.Run(mux); err != nil {
				log.Printf("[PromptWorker] attempt %d/%d failed to start worker: %v", attempts, maxAttempts, err)

				if attempts == maxAttempts {
					log.Fatal("[PromptWorker] max retry attempts reached. Exiting.")
				}
				time.Sleep(time.Duration(attempts*2) * time.Second)
			} else {
				break
			}
		}
	}()
}

func handlePromptTask(notifSvc notification.NotificationService) asynq.HandlerFunc {
	return func(ctx context.Context, task *asynq.Task) error {
		var p models.PromptPayload
		if err := json.Unmarshal(task.Payload(), &p); err != nil {
			log.Printf("[PromptWorker] invalid payload: %v", err)
			return err
		}

		// Best effort: a push that cannot be delivered is dropped, not
		// retried forever. The in-app pending state already carries the
		// prompt.
		if err := notifSvc.SendRatePrompt(ctx, p); err != nil {
			log.Printf("[PromptWorker] prompt for session %s not delivered: %v", p.SessionID, err)
		}
		return nil
	}
}
