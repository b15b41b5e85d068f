package specification

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type BySessionKey struct {
	Key string
}

func (s BySessionKey) Apply(db *gorm.DB) *gorm.DB {
	return db.Where("session_key = ?", s.Key)
}

type OwnedBy struct {
	UserID uuid.UUID
}

func (s OwnedBy) Apply(db *gorm.DB) *gorm.DB {
	return db.Where("owner_id = ?", s.UserID)
}

type HiddenFor struct {
	UserID uuid.UUID
}

func (s HiddenFor) Apply(db *gorm.DB) *gorm.DB {
	return db.Where("user_id = ?", s.UserID)
}

// KeyNotIn excludes sessions by key. An empty set applies no filter.
type KeyNotIn struct {
	Keys []string
}

func (s KeyNotIn) Apply(db *gorm.DB) *gorm.DB {
	if len(s.Keys) == 0 {
		return db
	}
	return db.Where("key NOT IN ?", s.Keys)
}

// UpdatedSince selects sessions whose last activity falls after the cutoff.
type UpdatedSince struct {
	Cutoff time.Time
}

func (s UpdatedSince) Apply(db *gorm.DB) *gorm.DB {
	return db.Where("updated_at >= ?", s.Cutoff)
}
