package mapper

import (
	"gembreak-be/internal/entity"
	"gembreak-be/internal/model"
)

type PromptMapper struct{}

func NewPromptMapper() *PromptMapper {
	return &PromptMapper{}
}

func (m *PromptMapper) ToEntity(p *model.SystemPrompt) *entity.SystemPrompt {
	if p == nil {
		return nil
	}
	return &entity.SystemPrompt{
		Id:         p.Id,
		Name:       p.Name,
		PromptText: p.PromptText,
		IsPrimary:  p.IsPrimary,
		CreatedAt:  p.CreatedAt,
		UpdatedAt:  p.UpdatedAt,
	}
}

func (m *PromptMapper) ToModel(p *entity.SystemPrompt) *model.SystemPrompt {
	if p == nil {
		return nil
	}
	return &model.SystemPrompt{
		Id:         p.Id,
		Name:       p.Name,
		PromptText: p.PromptText,
		IsPrimary:  p.IsPrimary,
		CreatedAt:  p.CreatedAt,
		UpdatedAt:  p.UpdatedAt,
	}
}
