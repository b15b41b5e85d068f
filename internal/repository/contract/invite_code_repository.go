package contract

import (
	"context"

	"gembreak-be/internal/entity"
	"gembreak-be/internal/repository/specification"

	"github.com/google/uuid"
)

type InviteCodeRepository interface {
	Create(ctx context.Context, code *entity.InviteCode) error
	// MarkUsed records the one-time consumption: usedBy and usedAt are set
	// exactly once.
	MarkUsed(ctx context.Context, id uuid.UUID, usedBy uuid.UUID) error
	FindOne(ctx context.Context, specs ...specification.Specification) (*entity.InviteCode, error)
	FindAll(ctx context.Context, specs ...specification.Specification) ([]*entity.InviteCode, error)
	Count(ctx context.Context, specs ...specification.Specification) (int64, error)
}
