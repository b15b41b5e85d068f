package unitofwork

import (
	"context"

	"gembreak-be/internal/repository/contract"
)

type UnitOfWork interface {
	Begin(ctx context.Context) error
	Commit() error
	Rollback() error

	UserRepository() contract.UserRepository
	InviteCodeRepository() contract.InviteCodeRepository
	ChatSessionRepository() contract.ChatSessionRepository
	ChatMessageRepository() contract.ChatMessageRepository
	HiddenChatRepository() contract.HiddenChatRepository
	SystemPromptRepository() contract.SystemPromptRepository
}
