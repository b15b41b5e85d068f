package service

import (
	"context"
	"crypto/rand"
	"encoding/hex"
	"math"
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

type IAdminService interface {
	// ChatHistories returns every session with its full message log, most
	// recently active first.
	ChatHistories(ctx context.Context) ([]dto.AdminChatHistoryResponse, error)
	// Users aggregates activity per session owner.
	Users(ctx context.Context) ([]dto.AdminUserResponse, error)
	Metrics(ctx context.Context) (*dto.MetricsResponse, error)
	ListInviteCodes(ctx context.Context) ([]dto.InviteCodeResponse, error)
	GenerateInviteCode(ctx context.Context) (*dto.InviteCodeResponse, error)
}

type AdminServiceImpl struct {
	sessionRepo contract.ChatSessionRepository
	messageRepo contract.ChatMessageRepository
	promptRepo  contract.SystemPromptRepository
	userRepo    contract.UserRepository
	codeRepo    contract.InviteCodeRepository
	logger      logger.ILogger
}

func NewAdminService(
	sessionRepo contract.ChatSessionRepository,
	messageRepo contract.ChatMessageRepository,
	promptRepo contract.SystemPromptRepository,
	userRepo contract.UserRepository,
	codeRepo contract.InviteCodeRepository,
	logger logger.ILogger,
) IAdminService {
	return &AdminServiceImpl{
		sessionRepo: sessionRepo,
		messageRepo: messageRepo,
		promptRepo:  promptRepo,
		userRepo:    userRepo,
		codeRepo:    codeRepo,
		logger:      logger,
	}
}

func (s *AdminServiceImpl) ChatHistories(ctx context.Context) ([]dto.AdminChatHistoryResponse, error) {
	sessions, err := s.sessionRepo.FindAll(ctx, specification.OrderBy{Field: "updated_at", Desc: true})
	if err != nil {
		return nil, serverutils.Internal("Failed to fetch chat histories")
	}
	messagesBySession, err := s.messagesBySession(ctx)
	if err != nil {
		return nil, err
	}

	out := make([]dto.AdminChatHistoryResponse, 0, len(sessions))
	for _, sess := range sessions {
		messages := messagesBySession[sess.Key]
		formatted := make([]dto.ChatMessageResponse, 0, len(messages))
		for _, m := range messages {
			formatted = append(formatted, dto.ChatMessageResponse{
				Role:      string(entity.DisplayRole(string(m.Role))),
				Content:   m.Content,
				Timestamp: m.CreatedAt,
			})
		}
		out = append(out, dto.AdminChatHistoryResponse{
			Id:        sess.Key,
			SessionId: sess.Key,
			Messages:  formatted,
			CreatedAt: sess.CreatedAt,
			UpdatedAt: sess.UpdatedAt,
		})
	}
	return out, nil
}

func (s *AdminServiceImpl) Users(ctx context.Context) ([]dto.AdminUserResponse, error) {
	sessions, err := s.sessionRepo.FindAll(ctx)
	if err != nil {
		return nil, serverutils.Internal("Failed to fetch users")
	}
	messagesBySession, err := s.messagesBySession(ctx)
	if err != nil {
		return nil, err
	}
	users, err := s.userRepo.FindAll(ctx)
	if err != nil {
		return nil, serverutils.Internal("Failed to fetch users")
	}
	usernames := make(map[uuid.UUID]string, len(users))
	for _, u := range users {
		usernames[u.Id] = u.Username
	}

	byOwner := make(map[uuid.UUID]*dto.AdminUserResponse)
	for _, sess := range sessions {
		agg, ok := byOwner[sess.OwnerId]
		if !ok {
			agg = &dto.AdminUserResponse{
				Id:            sess.OwnerId.String(),
				Username:      usernames[sess.OwnerId],
				FirstActivity: sess.CreatedAt,
				LastActivity:  sess.UpdatedAt,
			}
			byOwner[sess.OwnerId] = agg
		}
		if sess.CreatedAt.Before(agg.FirstActivity) {
			agg.FirstActivity = sess.CreatedAt
		}
		if sess.UpdatedAt.After(agg.LastActivity) {
			agg.LastActivity = sess.UpdatedAt
		}
		agg.SessionCount++
		agg.MessageCount += len(messagesBySession[sess.Key])
	}

	out := make([]dto.AdminUserResponse, 0, len(byOwner))
	for _, agg := range byOwner {
		out = append(out, *agg)
	}
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].LastActivity.After(out[j].LastActivity)
	})
	return out, nil
}

func (s *AdminServiceImpl) Metrics(ctx context.Context) (*dto.MetricsResponse, error) {
	totalSessions, err := s.sessionRepo.Count(ctx)
	if err != nil {
		return nil, serverutils.Internal("Failed to fetch metrics")
	}
	totalMessages, err := s.messageRepo.Count(ctx)
	if err != nil {
		return nil, serverutils.Internal("Failed to fetch metrics")
	}
	average := 0.0
	if totalSessions > 0 {
		average = math.Round(float64(totalMessages)/float64(totalSessions)*100) / 100
	}

	now := time.Now()
	active24h, err := s.sessionRepo.Count(ctx, specification.UpdatedSince{Cutoff: now.Add(-24 * time.Hour)})
	if err != nil {
		return nil, serverutils.Internal("Failed to fetch metrics")
	}
	active7d, err := s.sessionRepo.Count(ctx, specification.UpdatedSince{Cutoff: now.Add(-7 * 24 * time.Hour)})
	if err != nil {
		return nil, serverutils.Internal("Failed to fetch metrics")
	}

	totalPrompts, err := s.promptRepo.Count(ctx)
	if err != nil {
		return nil, serverutils.Internal("Failed to fetch metrics")
	}
	totalCodes, err := s.codeRepo.Count(ctx)
	if err != nil {
		return nil, serverutils.Internal("Failed to fetch metrics")
	}
	unusedCodes, err := s.codeRepo.Count(ctx, specification.UnusedOnly{})
	if err != nil {
		return nil, serverutils.Internal("Failed to fetch metrics")
	}

	return &dto.MetricsResponse{
		TotalSessions:             totalSessions,
		TotalMessages:             totalMessages,
		AverageMessagesPerSession: average,
		ActiveSessions24h:         active24h,
		ActiveSessions7d:          active7d,
		TotalSystemPrompts:        totalPrompts,
		TotalAdminInviteCodes:     totalCodes,
		UsedAdminInviteCodes:      totalCodes - unusedCodes,
		UnusedAdminInviteCodes:    unusedCodes,
	}, nil
}

func (s *AdminServiceImpl) ListInviteCodes(ctx context.Context) ([]dto.InviteCodeResponse, error) {
	codes, err := s.codeRepo.FindAll(ctx,
		specification.Filter("created_by", "admin"),
		specification.OrderBy{Field: "created_at", Desc: true},
	)
	if err != nil {
		return nil, serverutils.Internal("Failed to fetch invite codes")
	}
	out := make([]dto.InviteCodeResponse, 0, len(codes))
	for _, c := range codes {
		out = append(out, mapInviteCodeToResponse(c))
	}
	return out, nil
}

func (s *AdminServiceImpl) GenerateInviteCode(ctx context.Context) (*dto.InviteCodeResponse, error) {
	var code string
	for {
		buf := make([]byte, 8)
		if _, err := rand.Read(buf); err != nil {
			return nil, serverutils.Internal("Failed to generate invite code")
		}
		code = hex.EncodeToString(buf)

		userHit, err := s.userRepo.FindOne(ctx, specification.ByPersonalInviteCode{Code: code})
		if err != nil {
			return nil, serverutils.Internal("Failed to check invite code")
		}
		if userHit != nil {
			continue
		}
		codeHit, err := s.codeRepo.FindOne(ctx, specification.ByCode{Code: code})
		if err != nil {
			return nil, serverutils.Internal("Failed to check invite code")
		}
		if codeHit == nil {
			break
		}
	}

	invite := &entity.InviteCode{Code: code, CreatedBy: "admin"}
	if err := s.codeRepo.Create(ctx, invite); err != nil {
		return nil, serverutils.Internal("Failed to insert new invite code.")
	}
	resp := mapInviteCodeToResponse(invite)
	return &resp, nil
}

func (s *AdminServiceImpl) messagesBySession(ctx context.Context) (map[string][]*entity.ChatMessage, error) {
	messages, err := s.messageRepo.FindAll(ctx, specification.OrderBy{Field: "created_at"})
	if err != nil {
		return nil, serverutils.Internal("Failed to fetch chat messages")
	}
	grouped := make(map[string][]*entity.ChatMessage)
	for _, m := range messages {
		grouped[m.SessionKey] = append(grouped[m.SessionKey], m)
	}
	return grouped, nil
}

func mapInviteCodeToResponse(c *entity.InviteCode) dto.InviteCodeResponse {
	var usedBy *string
	if c.UsedBy != nil {
		v := c.UsedBy.String()
		usedBy = &v
	}
	return dto.InviteCodeResponse{
		Id:        c.Id.String(),
		Code:      c.Code,
		IsUsed:    c.IsUsed,
		CreatedBy: c.CreatedBy,
		UsedBy:    usedBy,
		UsedAt:    c.UsedAt,
		CreatedAt: c.CreatedAt,
	}
}
