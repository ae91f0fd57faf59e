package notification

import (
	"context"
	"encoding/json"
	"fmt"

	"studyon/config"
	"studyon/models"

	"github.com/hibiken/asynq"
)

// TypePromptSend is the task type for queued rate prompts.
const TypePromptSend = "prompt:send"

// PromptQueue enqueues rate prompts for the async worker. It decouples
// the proximity state machine from push delivery.
type PromptQueue struct {
	client *asynq.Client
}

// NewPromptQueue builds the queue client against the configured Redis.
func NewPromptQueue() *PromptQueue {
	return &PromptQueue{
		client: asynq.NewClient(asynq.RedisClientOpt{
			Addr:     config.AppConfig.RedisAddr,
			Password: config.AppConfig.RedisPassword,
			DB:       config.AppConfig.RedisPromptQueue,
		}),
	}
}

// EnqueuePrompt queues one prompt for delivery.
func (q *PromptQueue) EnqueuePrompt(ctx context.Context, payload models.PromptPayload) error {
	data, err := json.Marshal(payload)
	if err != nil {
		return fmt.Errorf("failed to marshal prompt payload: %w", err)
	}
	task := asynq.NewTask(TypePromptSend, data)
	if _, err := q.client.EnqueueContext(ctx, task); err != nil {
		return fmt.Errorf("failed to enqueue prompt: %w", err)
	}
	return nil
}

// Close releases the underlying client.
func (q *PromptQueue) Close() error {
	return q.client.Close()
}
