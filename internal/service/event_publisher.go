package service

import (
	"bio_olymp_backend/internal/model"
	"bio_olymp_backend/pkg/logger"
	"context"
	"encoding/json"

	"go.uber.org/zap"
)

// MessagePublisher is satisfied by messaging.RabbitMQClient.
type MessagePublisher interface {
	Publish(ctx context.Context, queueName string, body []byte) error
}

// EventPublisher announces achievement unlocks. Failures are logged and
// never reach the caller of the operation that caused the unlock.
type EventPublisher struct {
	Client MessagePublisher
	Queue  string
}

func NewEventPublisher(client MessagePublisher, queue string) *EventPublisher {
	return &EventPublisher{Client: client, Queue: queue}
}

func (p *EventPublisher) AchievementUnlocked(ctx context.Context, event model.AchievementUnlockedEvent) {
	if p == nil || p.Client == nil {
		return
	}

	body, err := json.Marshal(event)
	if err != nil {
		logger.Log.Error("Failed to encode achievement event", zap.Error(err))
		return
	}

	if err := p.Client.Publish(ctx, p.Queue, body); err != nil {
		logger.Log.Warn("Failed to publish achievement event",
			zap.String("achievement", event.AchievementID),
			zap.Error(err))
	}
}
