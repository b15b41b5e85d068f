package model

import (
	"time"

	"github.com/google/uuid"
)

type User struct {
	Id               uuid.UUID `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	Username         string    `gorm:"type:varchar(64);not null;uniqueIndex"`
	PasswordHash     string    `gorm:"type:text;not null"`
	InviteCode       string    `gorm:"type:varchar(32);not null;uniqueIndex"`
	IsInviteCodeUsed bool      `gorm:"not null;default:false"`
	UsedInviteCode   string    `gorm:"type:varchar(32);not null"`
	CreatedAt        time.Time `gorm:"autoCreateTime"`
	UpdatedAt        time.Time `gorm:"autoUpdateTime"`
}

func (User) TableName() string {
	return "users"
}
