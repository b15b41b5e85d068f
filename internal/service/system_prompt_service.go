package service

import (
	"context"

	"gembreak-be/internal/dto"
	"gembreak-be/internal/entity"
	"gembreak-be/internal/pkg/logger"
	"gembreak-be/internal/pkg/serverutils"
	"gembreak-be/internal/repository/contract"
	"gembreak-be/internal/repository/specification"
	"gembreak-be/internal/repository/unitofwork"

	"github.com/google/uuid"
	gocache "github.com/patrickmn/go-cache"
)

const primaryPromptCacheKey = "system_prompt:primary_text"

type ISystemPromptService interface {
	Create(ctx context.Context, req *dto.CreateSystemPromptRequest) (*dto.SystemPromptResponse, error)
	Update(ctx context.Context, req *dto.UpdateSystemPromptRequest) (*dto.SystemPromptResponse, error)
	Delete(ctx context.Context, id string) error
	// ListForAdmin returns every persona, newest first.
	ListForAdmin(ctx context.Context) ([]dto.SystemPromptResponse, error)
	// ListForUser returns every persona sorted by name.
	ListForUser(ctx context.Context) ([]dto.SystemPromptResponse, error)
	// PrimaryPromptText returns the primary persona's text, or "" when no
	// persona exists. Served from cache on the turn hot path.
	PrimaryPromptText(ctx context.Context) string
}

type SystemPromptServiceImpl struct {
	promptRepo contract.SystemPromptRepository
	uowFactory unitofwork.RepositoryFactory
	cache      *gocache.Cache
	logger     logger.ILogger
}

func NewSystemPromptService(
	promptRepo contract.SystemPromptRepository,
	uowFactory unitofwork.RepositoryFactory,
	cache *gocache.Cache,
	logger logger.ILogger,
) ISystemPromptService {
	return &SystemPromptServiceImpl{
		promptRepo: promptRepo,
		uowFactory: uowFactory,
		cache:      cache,
		logger:     logger,
	}
}

func (s *SystemPromptServiceImpl) Create(ctx context.Context, req *dto.CreateSystemPromptRequest) (*dto.SystemPromptResponse, error) {
	uow := s.uowFactory.NewUnitOfWork(ctx)
	if err := uow.Begin(ctx); err != nil {
		return nil, serverutils.Internal("Failed to start transaction")
	}
	defer uow.Rollback()

	repo := uow.SystemPromptRepository()
	if req.IsPrimary {
		if err := repo.ClearPrimary(ctx, uuid.Nil); err != nil {
			return nil, serverutils.Internal("Failed to clear primary flag")
		}
	}

	prompt := &entity.SystemPrompt{
		Name:       req.Name,
		PromptText: req.PromptText,
		IsPrimary:  req.IsPrimary,
	}
	if err := repo.Create(ctx, prompt); err != nil {
		return nil, serverutils.Internal("Failed to create system prompt")
	}

	// The first persona ever is always primary, explicit flag or not.
	if !prompt.IsPrimary {
		count, err := repo.Count(ctx)
		if err != nil {
			return nil, serverutils.Internal("Failed to count system prompts")
		}
		if count == 1 {
			prompt.IsPrimary = true
			if err := repo.Update(ctx, prompt); err != nil {
				return nil, serverutils.Internal("Failed to promote system prompt")
			}
		}
	}

	if err := uow.Commit(); err != nil {
		return nil, serverutils.Internal("Failed to commit transaction")
	}
	s.cache.Delete(primaryPromptCacheKey)
	return mapPromptToResponse(prompt), nil
}

func (s *SystemPromptServiceImpl) Update(ctx context.Context, req *dto.UpdateSystemPromptRequest) (*dto.SystemPromptResponse, error) {
	if req.Id == "" {
		return nil, serverutils.BadRequest("Prompt ID is required for update")
	}
	if req.Name == nil && req.PromptText == nil && req.IsPrimary == nil {
		return nil, serverutils.BadRequest("No update fields provided")
	}
	id, err := uuid.Parse(req.Id)
	if err != nil {
		return nil, serverutils.BadRequest("Invalid Prompt ID format")
	}

	uow := s.uowFactory.NewUnitOfWork(ctx)
	if err := uow.Begin(ctx); err != nil {
		return nil, serverutils.Internal("Failed to start transaction")
	}
	defer uow.Rollback()

	repo := uow.SystemPromptRepository()
	prompt, err := repo.FindOne(ctx, specification.ByID{ID: id})
	if err != nil {
		return nil, serverutils.Internal("Failed to load system prompt")
	}
	if prompt == nil {
		return nil, serverutils.NotFound("System prompt not found")
	}

	if req.Name != nil {
		prompt.Name = *req.Name
	}
	if req.PromptText != nil {
		prompt.PromptText = *req.PromptText
	}
	if req.IsPrimary != nil {
		if *req.IsPrimary {
			if err := repo.ClearPrimary(ctx, id); err != nil {
				return nil, serverutils.Internal("Failed to clear primary flag")
			}
			prompt.IsPrimary = true
		} else if prompt.IsPrimary {
			others, err := repo.Count(ctx, specification.PrimaryOnly{}, specification.ExcludeID{ID: id})
			if err != nil {
				return nil, serverutils.Internal("Failed to count primary prompts")
			}
			if others == 0 {
				return nil, serverutils.Conflict("Cannot unmark the only primary system prompt. Set another prompt as primary first.")
			}
			prompt.IsPrimary = false
		} else {
			prompt.IsPrimary = false
		}
	}

	if err := repo.Update(ctx, prompt); err != nil {
		return nil, serverutils.Internal("Failed to update system prompt")
	}
	if err := uow.Commit(); err != nil {
		return nil, serverutils.Internal("Failed to commit transaction")
	}
	s.cache.Delete(primaryPromptCacheKey)
	return mapPromptToResponse(prompt), nil
}

// Delete removes a persona. Deleting the primary leaves no primary behind;
// the next turn falls back to an empty instruction until an admin promotes
// another persona.
func (s *SystemPromptServiceImpl) Delete(ctx context.Context, id string) error {
	if id == "" {
		return serverutils.BadRequest("Prompt ID is required for deletion")
	}
	parsed, err := uuid.Parse(id)
	if err != nil {
		return serverutils.BadRequest("Invalid Prompt ID format")
	}

	prompt, err := s.promptRepo.FindOne(ctx, specification.ByID{ID: parsed})
	if err != nil {
		return serverutils.Internal("Failed to load system prompt")
	}
	if prompt == nil {
		return serverutils.NotFound("System prompt not found")
	}
	if err := s.promptRepo.Delete(ctx, parsed); err != nil {
		return serverutils.Internal("Failed to delete system prompt")
	}
	s.cache.Delete(primaryPromptCacheKey)
	return nil
}

func (s *SystemPromptServiceImpl) ListForAdmin(ctx context.Context) ([]dto.SystemPromptResponse, error) {
	return s.list(ctx, specification.OrderBy{Field: "created_at", Desc: true})
}

func (s *SystemPromptServiceImpl) ListForUser(ctx context.Context) ([]dto.SystemPromptResponse, error) {
	return s.list(ctx, specification.OrderBy{Field: "name"})
}

func (s *SystemPromptServiceImpl) list(ctx context.Context, order specification.OrderBy) ([]dto.SystemPromptResponse, error) {
	prompts, err := s.promptRepo.FindAll(ctx, order)
	if err != nil {
		return nil, serverutils.Internal("Failed to fetch system prompts")
	}
	out := make([]dto.SystemPromptResponse, 0, len(prompts))
	for _, p := range prompts {
		out = append(out, *mapPromptToResponse(p))
	}
	return out, nil
}

func (s *SystemPromptServiceImpl) PrimaryPromptText(ctx context.Context) string {
	if cached, ok := s.cache.Get(primaryPromptCacheKey); ok {
		return cached.(string)
	}
	prompt, err := s.promptRepo.FindOne(ctx, specification.PrimaryOnly{})
	if err != nil {
		s.logger.Warn("system_prompt", "failed to load primary prompt", map[string]interface{}{
			"error": err.Error(),
		})
		return ""
	}
	text := ""
	if prompt != nil {
		text = prompt.PromptText
	}
	s.cache.Set(primaryPromptCacheKey, text, gocache.DefaultExpiration)
	return text
}

func mapPromptToResponse(p *entity.SystemPrompt) *dto.SystemPromptResponse {
	return &dto.SystemPromptResponse{
		Id:         p.Id.String(),
		Name:       p.Name,
		PromptText: p.PromptText,
		IsPrimary:  p.IsPrimary,
		CreatedAt:  p.CreatedAt,
		UpdatedAt:  p.UpdatedAt,
	}
}
