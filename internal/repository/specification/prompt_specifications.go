package specification

import (
	"github.com/google/uuid"
	"gorm.io/gorm"
)

type PrimaryOnly struct{}

func (s PrimaryOnly) Apply(db *gorm.DB) *gorm.DB {
	return db.Where("is_primary = ?", true)
}

type ExcludeID struct {
	ID uuid.UUID
}

func (s ExcludeID) Apply(db *gorm.DB) *gorm.DB {
	return db.Where("id <> ?", s.ID)
}
