package entity

import (
	"time"

	"github.com/google/uuid"
)

// User carries a personal single-use invite code minted at registration,
// meant to be passed along to one other person.
type User struct {
	Id               uuid.UUID
	Username         string
	PasswordHash     string
	InviteCode       string
	IsInviteCodeUsed bool
	UsedInviteCode   string
	CreatedAt        time.Time
	UpdatedAt        time.Time
}

// InviteCode is an admin-minted registration code. Consumed exactly once;
// never deleted.
type InviteCode struct {
	Id        uuid.UUID
	Code      string
	IsUsed    bool
	CreatedBy string
	UsedBy    *uuid.UUID
	UsedAt    *time.Time
	CreatedAt time.Time
}
