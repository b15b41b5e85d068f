package entity

import (
	"time"

	"github.com/google/uuid"
)

// SystemPrompt is a named reusable instruction preamble (persona). At most
// one prompt is primary at a time; the registry keeps at least one primary
// whenever any prompt exists.
type SystemPrompt struct {
	Id         uuid.UUID
	Name       string
	PromptText string
	IsPrimary  bool
	CreatedAt  time.Time
	UpdatedAt  time.Time
}
