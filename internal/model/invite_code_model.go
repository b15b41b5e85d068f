package model

import (
	"time"

	"github.com/google/uuid"
)

type InviteCode struct {
	Id        uuid.UUID  `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	Code      string     `gorm:"type:varchar(32);not null;uniqueIndex"`
	IsUsed    bool       `gorm:"not null;default:false"`
	CreatedBy string     `gorm:"type:varchar(64);not null"`
	UsedBy    *uuid.UUID `gorm:"type:uuid"`
	UsedAt    *time.Time
	CreatedAt time.Time `gorm:"autoCreateTime"`
}

func (InviteCode) TableName() string {
	return "invite_codes"
}
