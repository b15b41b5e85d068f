package model

import (
	"time"

	"github.com/google/uuid"
)

// HiddenChat uses a composite primary key so a second hide of the same pair
// is a clean conflict no-op rather than a duplicate row.
type HiddenChat struct {
	UserId     uuid.UUID `gorm:"type:uuid;primaryKey"`
	SessionKey string    `gorm:"type:varchar(128);primaryKey"`
	HiddenAt   time.Time `gorm:"autoCreateTime"`
}

func (HiddenChat) TableName() string {
	return "hidden_chats"
}
