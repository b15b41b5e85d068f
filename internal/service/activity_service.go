package service

import (
	"context"
	"encoding/json"

	"gembreak-be/internal/pkg/logger"
	"gembreak-be/pkg/events"

	"github.com/ThreeDotsLabs/watermill/message"
)

// ActivityService consumes turn events off the in-process bus and writes the
// audit trail to its own log file, away from application logs.
type ActivityService struct {
	subscriber message.Subscriber
	audit      logger.ILogger
}

func NewActivityService(subscriber message.Subscriber, audit logger.ILogger) *ActivityService {
	return &ActivityService{subscriber: subscriber, audit: audit}
}

// Run blocks until ctx is cancelled or the subscription closes.
func (s *ActivityService) Run(ctx context.Context) error {
	messages, err := s.subscriber.Subscribe(ctx, events.TopicTurnCompleted)
	if err != nil {
		return err
	}
	for msg := range messages {
		s.record(msg)
		msg.Ack()
	}
	return nil
}

func (s *ActivityService) record(msg *message.Message) {
	var event events.TurnCompletedEvent
	if err := json.Unmarshal(msg.Payload, &event); err != nil {
		s.audit.Warn("activity", "unparseable turn event", map[string]interface{}{
			"message_id": msg.UUID,
			"error":      err.Error(),
		})
		return
	}
	s.audit.Info("activity", "turn completed", map[string]interface{}{
		"session_id":   event.SessionId,
		"user_id":      event.UserId,
		"outcome":      event.Outcome,
		"block_reason": event.BlockReason,
		"tool_calls":   event.ToolCalls,
		"duration_ms":  event.DurationMs,
		"occurred_at":  event.OccurredAt,
	})
}
