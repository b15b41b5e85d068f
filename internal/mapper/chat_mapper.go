package mapper

import (
	"gembreak-be/internal/entity"
	"gembreak-be/internal/model"
)

type ChatMapper struct{}

func NewChatMapper() *ChatMapper {
	return &ChatMapper{}
}

func (m *ChatMapper) SessionToEntity(s *model.ChatSession) *entity.ChatSession {
	if s == nil {
		return nil
	}
	return &entity.ChatSession{
		Key:       s.Key,
		OwnerId:   s.OwnerId,
		Title:     s.Title,
		CreatedAt: s.CreatedAt,
		UpdatedAt: s.UpdatedAt,
	}
}

func (m *ChatMapper) SessionToModel(s *entity.ChatSession) *model.ChatSession {
	if s == nil {
		return nil
	}
	return &model.ChatSession{
		Key:       s.Key,
		OwnerId:   s.OwnerId,
		Title:     s.Title,
		CreatedAt: s.CreatedAt,
		UpdatedAt: s.UpdatedAt,
	}
}

func (m *ChatMapper) MessageToEntity(msg *model.ChatMessage) *entity.ChatMessage {
	if msg == nil {
		return nil
	}
	return &entity.ChatMessage{
		Id:         msg.Id,
		SessionKey: msg.SessionKey,
		Role:       entity.DisplayRole(msg.Role),
		Content:    msg.Content,
		CreatedAt:  msg.CreatedAt,
	}
}

func (m *ChatMapper) MessageToModel(msg *entity.ChatMessage) *model.ChatMessage {
	if msg == nil {
		return nil
	}
	return &model.ChatMessage{
		Id:         msg.Id,
		SessionKey: msg.SessionKey,
		Role:       string(msg.Role),
		Content:    msg.Content,
		CreatedAt:  msg.CreatedAt,
	}
}

func (m *ChatMapper) HiddenChatToEntity(h *model.HiddenChat) *entity.HiddenChat {
	if h == nil {
		return nil
	}
	return &entity.HiddenChat{
		UserId:     h.UserId,
		SessionKey: h.SessionKey,
		HiddenAt:   h.HiddenAt,
	}
}

func (m *ChatMapper) HiddenChatToModel(h *entity.HiddenChat) *model.HiddenChat {
	if h == nil {
		return nil
	}
	return &model.HiddenChat{
		UserId:     h.UserId,
		SessionKey: h.SessionKey,
		HiddenAt:   h.HiddenAt,
	}
}
