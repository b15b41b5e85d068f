package specification

import "gorm.io/gorm"

type ByUsername struct {
	Username string
}

func (s ByUsername) Apply(db *gorm.DB) *gorm.DB {
	return db.Where("username = ?", s.Username)
}

// ByPersonalInviteCode matches a user by their own shareable code.
type ByPersonalInviteCode struct {
	Code string
}

func (s ByPersonalInviteCode) Apply(db *gorm.DB) *gorm.DB {
	return db.Where("invite_code = ?", s.Code)
}

type ByCode struct {
	Code string
}

func (s ByCode) Apply(db *gorm.DB) *gorm.DB {
	return db.Where("code = ?", s.Code)
}

type UnusedOnly struct{}

func (s UnusedOnly) Apply(db *gorm.DB) *gorm.DB {
	return db.Where("is_used = ?", false)
}
