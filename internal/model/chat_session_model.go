package model

import (
	"time"

	"github.com/google/uuid"
)

type ChatSession struct {
	Key       string    `gorm:"type:varchar(128);primaryKey"`
	OwnerId   uuid.UUID `gorm:"type:uuid;not null;index"` // ownership is immutable and exclusive
	Title     *string   `gorm:"type:text"`
	CreatedAt time.Time `gorm:"autoCreateTime"`
	UpdatedAt time.Time `gorm:"autoUpdateTime;index"`
}

func (ChatSession) TableName() string {
	return "chat_sessions"
}
