package mapper

import (
	"gembreak-be/internal/entity"
	"gembreak-be/internal/model"
)

type UserMapper struct{}

func NewUserMapper() *UserMapper {
	return &UserMapper{}
}

func (m *UserMapper) UserToEntity(u *model.User) *entity.User {
	if u == nil {
		return nil
	}
	return &entity.User{
		Id:               u.Id,
		Username:         u.Username,
		PasswordHash:     u.PasswordHash,
		InviteCode:       u.InviteCode,
		IsInviteCodeUsed: u.IsInviteCodeUsed,
		UsedInviteCode:   u.UsedInviteCode,
		CreatedAt:        u.CreatedAt,
		UpdatedAt:        u.UpdatedAt,
	}
}

func (m *UserMapper) UserToModel(u *entity.User) *model.User {
	if u == nil {
		return nil
	}
	return &model.User{
		Id:               u.Id,
		Username:         u.Username,
		PasswordHash:     u.PasswordHash,
		InviteCode:       u.InviteCode,
		IsInviteCodeUsed: u.IsInviteCodeUsed,
		UsedInviteCode:   u.UsedInviteCode,
		CreatedAt:        u.CreatedAt,
		UpdatedAt:        u.UpdatedAt,
	}
}

func (m *UserMapper) InviteCodeToEntity(c *model.InviteCode) *entity.InviteCode {
	if c == nil {
		return nil
	}
	return &entity.InviteCode{
		Id:        c.Id,
		Code:      c.Code,
		IsUsed:    c.IsUsed,
		CreatedBy: c.CreatedBy,
		UsedBy:    c.UsedBy,
		UsedAt:    c.UsedAt,
		CreatedAt: c.CreatedAt,
	}
}

func (m *UserMapper) InviteCodeToModel(c *entity.InviteCode) *model.InviteCode {
	if c == nil {
		return nil
	}
	return &model.InviteCode{
		Id:        c.Id,
		Code:      c.Code,
		IsUsed:    c.IsUsed,
		CreatedBy: c.CreatedBy,
		UsedBy:    c.UsedBy,
		UsedAt:    c.UsedAt,
		CreatedAt: c.CreatedAt,
	}
}
