package contract

import (
	"context"

	"gembreak-be/internal/entity"
	"gembreak-be/internal/repository/specification"
)

type ChatSessionRepository interface {
	// CreateIfAbsent inserts the session unless a row with the same key
	// already exists. Safe to race: the loser simply no-ops.
	CreateIfAbsent(ctx context.Context, session *entity.ChatSession) error
	// Patch applies a partial column update to the session with the given key.
	Patch(ctx context.Context, key string, values map[string]interface{}) error
	FindOne(ctx context.Context, specs ...specification.Specification) (*entity.ChatSession, error)
	FindAll(ctx context.Context, specs ...specification.Specification) ([]*entity.ChatSession, error)
	Count(ctx context.Context, specs ...specification.Specification) (int64, error)
}
