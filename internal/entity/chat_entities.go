package entity

import (
	"time"

	"github.com/google/uuid"
)

// Role is the closed set of message roles as stored. The Gemini API speaks a
// different vocabulary for the assistant side; conversions happen through the
// explicit mapping functions below rather than ad hoc string comparisons.
type Role string

const (
	RoleUser      Role = "user"
	RoleAssistant Role = "assistant"
	RoleSystem    Role = "system"
)

const providerRoleModel = "model"

// ProviderRole maps a stored role onto the role label the Gemini API expects.
func (r Role) ProviderRole() string {
	if r == RoleAssistant {
		return providerRoleModel
	}
	return string(r)
}

// DisplayRole normalizes an arbitrary stored role string for rendering.
// Unknown values fall back to system.
func DisplayRole(raw string) Role {
	switch raw {
	case string(RoleUser):
		return RoleUser
	case string(RoleAssistant), providerRoleModel:
		return RoleAssistant
	default:
		return RoleSystem
	}
}

// ChatSession is one persisted conversation. The key is chosen by the client
// at creation and is immutable, as is the owner.
type ChatSession struct {
	Key       string
	OwnerId   uuid.UUID
	Title     *string
	CreatedAt time.Time
	UpdatedAt time.Time
}

// ChatMessage is one turn's content. Messages are append-only; created
// timestamps are non-decreasing in append order.
type ChatMessage struct {
	Id         uuid.UUID
	SessionKey string
	Role       Role
	Content    string
	CreatedAt  time.Time
}

// HiddenChat is a per-user tombstone that removes a session from that user's
// listing without deleting it. Never updated, never expired.
type HiddenChat struct {
	UserId     uuid.UUID
	SessionKey string
	HiddenAt   time.Time
}
