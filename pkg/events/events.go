package events

import (
	"encoding/json"
	"time"

	"github.com/ThreeDotsLabs/watermill"
	"github.com/ThreeDotsLabs/watermill/message"
)

const TopicTurnCompleted = "chat.turn.completed"

// TurnCompletedEvent is published after every generative turn, successful
// or not, so the activity trail stays complete.
type TurnCompletedEvent struct {
	SessionId   string    `json:"session_id"`
	UserId      string    `json:"user_id"`
	Outcome     string    `json:"outcome"`
	BlockReason string    `json:"block_reason,omitempty"`
	ToolCalls   int       `json:"tool_calls"`
	DurationMs  int64     `json:"duration_ms"`
	OccurredAt  time.Time `json:"occurred_at"`
}

const (
	OutcomeCompleted = "completed"
	OutcomeBlocked   = "blocked"
	OutcomeFailed    = "failed"
)

type Publisher struct {
	publisher message.Publisher
}

func NewPublisher(publisher message.Publisher) *Publisher {
	return &Publisher{publisher: publisher}
}

func (p *Publisher) PublishTurnCompleted(event TurnCompletedEvent) error {
	payload, err := json.Marshal(event)
	if err != nil {
		return err
	}
	return p.publisher.Publish(TopicTurnCompleted, message.NewMessage(watermill.NewUUID(), payload))
}
