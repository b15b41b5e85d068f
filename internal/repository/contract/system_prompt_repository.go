package contract

import (
	"context"

	"gembreak-be/internal/entity"
	"gembreak-be/internal/repository/specification"

	"github.com/google/uuid"
)

type SystemPromptRepository interface {
	Create(ctx context.Context, prompt *entity.SystemPrompt) error
	Update(ctx context.Context, prompt *entity.SystemPrompt) error
	Delete(ctx context.Context, id uuid.UUID) error
	// ClearPrimary drops the primary flag everywhere except the given id
	// (pass uuid.Nil to clear all).
	ClearPrimary(ctx context.Context, exceptId uuid.UUID) error
	FindOne(ctx context.Context, specs ...specification.Specification) (*entity.SystemPrompt, error)
	FindAll(ctx context.Context, specs ...specification.Specification) ([]*entity.SystemPrompt, error)
	Count(ctx context.Context, specs ...specification.Specification) (int64, error)
}
