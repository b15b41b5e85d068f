package service

import (
	"context"
	"sort"
	"time"

	"gembreak-be/internal/dto"
	"gembreak-be/internal/entity"
	"gembreak-be/internal/pkg/logger"
	"gembreak-be/internal/pkg/serverutils"
	"gembreak-be/internal/repository/contract"
	"gembreak-be/internal/repository/specification"

	"github.com/google/uuid"
)

const (
	titleMaxRunes = 50

	msgChatHidden        = "Chat hidden successfully"
	msgChatAlreadyHidden = "Chat already hidden"
)

type IChatService interface {
	// AppendUserTurn upserts the session for (key, owner), appends the user
	// message and returns the history as it was before the append.
	AppendUserTurn(ctx context.Context, ownerId uuid.UUID, sessionKey, content string) ([]*entity.ChatMessage, error)
	// AppendAssistantTurn appends the assistant message. When titleEligible
	// is set and the session is still untitled, the title is derived from the
	// content; blocked and error placeholders pass false.
	AppendAssistantTurn(ctx context.Context, sessionKey, content string, titleEligible bool) error
	GetHistory(ctx context.Context, ownerId uuid.UUID, sessionKey string) ([]dto.ChatMessageResponse, error)
	ListSessions(ctx context.Context, ownerId uuid.UUID) ([]dto.ChatSessionResponse, error)
	Hide(ctx context.Context, ownerId uuid.UUID, sessionKey string) (*dto.HideChatResponse, error)
}

type ChatServiceImpl struct {
	sessionRepo contract.ChatSessionRepository
	messageRepo contract.ChatMessageRepository
	hiddenRepo  contract.HiddenChatRepository
	logger      logger.ILogger
}

func NewChatService(
	sessionRepo contract.ChatSessionRepository,
	messageRepo contract.ChatMessageRepository,
	hiddenRepo contract.HiddenChatRepository,
	logger logger.ILogger,
) IChatService {
	return &ChatServiceImpl{
		sessionRepo: sessionRepo,
		messageRepo: messageRepo,
		hiddenRepo:  hiddenRepo,
		logger:      logger,
	}
}

func (s *ChatServiceImpl) AppendUserTurn(ctx context.Context, ownerId uuid.UUID, sessionKey, content string) ([]*entity.ChatMessage, error) {
	session, err := s.sessionRepo.FindOne(ctx, specification.Filter("key", sessionKey))
	if err != nil {
		return nil, serverutils.Internal("Failed to load chat session")
	}
	if session != nil && session.OwnerId != ownerId {
		// Ownership is exclusive; a foreign session looks absent to the caller
		// but its key cannot be reused.
		return nil, serverutils.NotFound("Chat session not found")
	}

	if session == nil {
		if err := s.sessionRepo.CreateIfAbsent(ctx, &entity.ChatSession{
			Key:     sessionKey,
			OwnerId: ownerId,
		}); err != nil {
			return nil, serverutils.Internal("Failed to create chat session")
		}
	}

	prior, err := s.messageRepo.FindAll(ctx,
		specification.BySessionKey{Key: sessionKey},
		specification.OrderBy{Field: "created_at"},
	)
	if err != nil {
		return nil, serverutils.Internal("Failed to load chat history")
	}

	if err := s.messageRepo.Create(ctx, &entity.ChatMessage{
		SessionKey: sessionKey,
		Role:       entity.RoleUser,
		Content:    content,
	}); err != nil {
		return nil, serverutils.Internal("Failed to save message")
	}

	if err := s.sessionRepo.Patch(ctx, sessionKey, map[string]interface{}{
		"updated_at": time.Now(),
	}); err != nil {
		s.logger.Warn("chat", "failed to bump session activity", map[string]interface{}{
			"session_key": sessionKey,
			"error":       err.Error(),
		})
	}

	return prior, nil
}

func (s *ChatServiceImpl) AppendAssistantTurn(ctx context.Context, sessionKey, content string, titleEligible bool) error {
	if err := s.messageRepo.Create(ctx, &entity.ChatMessage{
		SessionKey: sessionKey,
		Role:       entity.RoleAssistant,
		Content:    content,
	}); err != nil {
		return serverutils.Internal("Failed to save assistant message")
	}

	values := map[string]interface{}{"updated_at": time.Now()}
	if titleEligible {
		if title, ok := s.deriveTitle(ctx, sessionKey, content); ok {
			values["title"] = title
		}
	}
	if err := s.sessionRepo.Patch(ctx, sessionKey, values); err != nil {
		return serverutils.Internal("Failed to update chat session")
	}
	return nil
}

// deriveTitle reports the title to set, or false when the session already has
// one or the content does not qualify.
func (s *ChatServiceImpl) deriveTitle(ctx context.Context, sessionKey, content string) (string, bool) {
	if content == "" || content == EmptyResponseSentinel {
		return "", false
	}
	session, err := s.sessionRepo.FindOne(ctx, specification.Filter("key", sessionKey))
	if err != nil || session == nil || session.Title != nil {
		return "", false
	}
	runes := []rune(content)
	if len(runes) > titleMaxRunes {
		return string(runes[:titleMaxRunes]) + "...", true
	}
	return content, true
}

func (s *ChatServiceImpl) GetHistory(ctx context.Context, ownerId uuid.UUID, sessionKey string) ([]dto.ChatMessageResponse, error) {
	session, err := s.sessionRepo.FindOne(ctx, specification.Filter("key", sessionKey))
	if err != nil {
		return nil, serverutils.Internal("Failed to load chat session")
	}
	// Absent and foreign sessions both read as an empty history: a new,
	// unsaved chat from the caller's point of view.
	if session == nil || session.OwnerId != ownerId {
		return []dto.ChatMessageResponse{}, nil
	}

	messages, err := s.messageRepo.FindAll(ctx,
		specification.BySessionKey{Key: sessionKey},
		specification.OrderBy{Field: "created_at"},
	)
	if err != nil {
		return nil, serverutils.Internal("Failed to load chat history")
	}

	sort.SliceStable(messages, func(i, j int) bool {
		return messages[i].CreatedAt.Before(messages[j].CreatedAt)
	})

	out := make([]dto.ChatMessageResponse, 0, len(messages))
	for _, m := range messages {
		out = append(out, dto.ChatMessageResponse{
			Role:      string(m.Role),
			Content:   m.Content,
			Timestamp: m.CreatedAt,
		})
	}
	return out, nil
}

func (s *ChatServiceImpl) ListSessions(ctx context.Context, ownerId uuid.UUID) ([]dto.ChatSessionResponse, error) {
	hidden, err := s.hiddenRepo.FindAll(ctx, specification.HiddenFor{UserID: ownerId})
	if err != nil {
		return nil, serverutils.Internal("Failed to load hidden chats")
	}
	hiddenKeys := make([]string, 0, len(hidden))
	for _, h := range hidden {
		hiddenKeys = append(hiddenKeys, h.SessionKey)
	}

	sessions, err := s.sessionRepo.FindAll(ctx,
		specification.OwnedBy{UserID: ownerId},
		specification.KeyNotIn{Keys: hiddenKeys},
		specification.OrderBy{Field: "updated_at", Desc: true},
	)
	if err != nil {
		return nil, serverutils.Internal("Failed to load sessions")
	}

	out := make([]dto.ChatSessionResponse, 0, len(sessions))
	for _, sess := range sessions {
		out = append(out, dto.ChatSessionResponse{
			Id:           sess.Key,
			Title:        sess.Title,
			LastActivity: sess.UpdatedAt,
		})
	}
	return out, nil
}

func (s *ChatServiceImpl) Hide(ctx context.Context, ownerId uuid.UUID, sessionKey string) (*dto.HideChatResponse, error) {
	existing, err := s.hiddenRepo.FindAll(ctx,
		specification.HiddenFor{UserID: ownerId},
		specification.BySessionKey{Key: sessionKey},
	)
	if err != nil {
		return nil, serverutils.Internal("Failed to check hidden chats")
	}
	if len(existing) > 0 {
		return &dto.HideChatResponse{Message: msgChatAlreadyHidden}, nil
	}

	session, err := s.sessionRepo.FindOne(ctx, specification.Filter("key", sessionKey))
	if err != nil {
		return nil, serverutils.Internal("Failed to load chat session")
	}
	if session == nil || session.OwnerId != ownerId {
		return nil, serverutils.Forbidden("Access denied or session not found for user")
	}

	if err := s.hiddenRepo.CreateIfAbsent(ctx, &entity.HiddenChat{
		UserId:     ownerId,
		SessionKey: sessionKey,
	}); err != nil {
		return nil, serverutils.Internal("Failed to hide chat")
	}
	return &dto.HideChatResponse{Message: msgChatHidden}, nil
}
