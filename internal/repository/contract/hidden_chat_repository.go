package contract

import (
	"context"

	"gembreak-be/internal/entity"
	"gembreak-be/internal/repository/specification"
)

type HiddenChatRepository interface {
	// CreateIfAbsent inserts the tombstone; inserting an existing pair is a
	// no-op so hide stays idempotent.
	CreateIfAbsent(ctx context.Context, mark *entity.HiddenChat) error
	FindAll(ctx context.Context, specs ...specification.Specification) ([]*entity.HiddenChat, error)
	Count(ctx context.Context, specs ...specification.Specification) (int64, error)
}
