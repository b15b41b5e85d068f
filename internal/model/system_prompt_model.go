package model

import (
	"time"

	"github.com/google/uuid"
)

type SystemPrompt struct {
	Id         uuid.UUID `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	Name       string    `gorm:"type:text;not null"`
	PromptText string    `gorm:"type:text;not null"`
	IsPrimary  bool      `gorm:"not null;default:false;index"`
	CreatedAt  time.Time `gorm:"autoCreateTime"`
	UpdatedAt  time.Time `gorm:"autoUpdateTime"`
}

func (SystemPrompt) TableName() string {
	return "system_prompts"
}
