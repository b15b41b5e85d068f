package service

import (
	"context"
	"fmt"
	"strings"
	"time"

	"gembreak-be/internal/dto"
	"gembreak-be/internal/entity"
	"gembreak-be/internal/pkg/logger"
	"gembreak-be/internal/pkg/serverutils"
	"gembreak-be/pkg/chatbot"
	"gembreak-be/pkg/events"
	"gembreak-be/pkg/search"

	"github.com/google/uuid"
)

const (
	// EmptyResponseSentinel is persisted when the model finishes a turn
	// without any text. It never becomes a session title.
	EmptyResponseSentinel = "[The model did not provide a textual response after processing.]"

	// maxToolRounds caps google_search round trips per turn so a misbehaving
	// provider cannot loop forever.
	maxToolRounds = 8
)

type IGenerateService interface {
	RunTurn(ctx context.Context, req *dto.GenerateRequest) (*dto.GenerateResponse, error)
}

type GenerateServiceImpl struct {
	chatService   IChatService
	promptService ISystemPromptService
	chatbot       chatbot.Client
	searcher      search.Searcher
	publisher     *events.Publisher
	logger        logger.ILogger
}

func NewGenerateService(
	chatService IChatService,
	promptService ISystemPromptService,
	bot chatbot.Client,
	searcher search.Searcher,
	publisher *events.Publisher,
	logger logger.ILogger,
) IGenerateService {
	return &GenerateServiceImpl{
		chatService:   chatService,
		promptService: promptService,
		chatbot:       bot,
		searcher:      searcher,
		publisher:     publisher,
		logger:        logger,
	}
}

func (s *GenerateServiceImpl) RunTurn(ctx context.Context, req *dto.GenerateRequest) (*dto.GenerateResponse, error) {
	if req.UserId == "" {
		return nil, serverutils.BadRequest("userId is required")
	}
	if req.SessionId == "" {
		return nil, serverutils.BadRequest("sessionId is required")
	}
	if req.Prompt == "" {
		return nil, serverutils.BadRequest("prompt is required")
	}
	ownerId, err := uuid.Parse(req.UserId)
	if err != nil {
		return nil, serverutils.BadRequest("Invalid userId format")
	}

	systemPrompt := req.SystemPrompt
	if systemPrompt == "" {
		systemPrompt = s.promptService.PrimaryPromptText(ctx)
	}

	prior, err := s.chatService.AppendUserTurn(ctx, ownerId, req.SessionId, req.Prompt)
	if err != nil {
		return nil, err
	}

	started := time.Now()
	contents := make([]*chatbot.Content, 0, len(prior)+1)
	for _, m := range prior {
		contents = append(contents, &chatbot.Content{
			Role:  m.Role.ProviderRole(),
			Parts: []chatbot.Part{{Text: m.Content}},
		})
	}
	contents = append(contents, &chatbot.Content{
		Role:  entity.RoleUser.ProviderRole(),
		Parts: []chatbot.Part{{Text: req.Prompt}},
	})

	text, toolCalls, err := s.converse(ctx, systemPrompt, contents)
	if err != nil {
		if blocked, ok := serverutils.AsAppError(err); ok && blocked.IsBlocked {
			s.persistBestEffort(ctx, req.SessionId, fmt.Sprintf("[AI response blocked: %s]", blockReasonOf(blocked)))
			s.publishTurn(req, events.OutcomeBlocked, blockReasonOf(blocked), toolCalls, started)
			return nil, err
		}
		s.persistBestEffort(ctx, req.SessionId, fmt.Sprintf("[Error processing request: %s]", err.Error()))
		s.publishTurn(req, events.OutcomeFailed, "", toolCalls, started)
		return nil, err
	}

	if text == "" {
		text = EmptyResponseSentinel
	}
	if err := s.chatService.AppendAssistantTurn(ctx, req.SessionId, text, true); err != nil {
		s.publishTurn(req, events.OutcomeFailed, "", toolCalls, started)
		return nil, err
	}

	s.publishTurn(req, events.OutcomeCompleted, "", toolCalls, started)
	return &dto.GenerateResponse{Text: text}, nil
}

// converse drives the model, servicing google_search calls until the model
// settles on text or the round cap trips.
func (s *GenerateServiceImpl) converse(ctx context.Context, systemPrompt string, contents []*chatbot.Content) (string, int, error) {
	toolCalls := 0
	for round := 0; ; round++ {
		if round > maxToolRounds {
			return "", toolCalls, serverutils.Internal("tool loop exceeded")
		}

		result, err := s.chatbot.Generate(ctx, systemPrompt, contents)
		if err != nil {
			return "", toolCalls, serverutils.Internal(err.Error())
		}
		if result.BlockReason != "" {
			return "", toolCalls, serverutils.UpstreamBlocked(fmt.Sprintf("Response blocked due to: %s", result.BlockReason))
		}
		if len(result.FunctionCalls) == 0 {
			return result.Text, toolCalls, nil
		}

		fc := result.FunctionCalls[0]
		if fc.Name != chatbot.SearchToolName {
			// Protocol violation; keep whatever text came along with it.
			s.logger.Warn("generate", "model called unknown tool", map[string]interface{}{
				"tool": fc.Name,
			})
			return result.Text, toolCalls, nil
		}

		toolCalls++
		contents = append(contents, modelTurn(result, fc))
		contents = append(contents, &chatbot.Content{
			Role: entity.RoleUser.ProviderRole(),
			Parts: []chatbot.Part{{FunctionResponse: &chatbot.FunctionResponse{
				Name:     chatbot.SearchToolName,
				Response: s.runSearch(ctx, fc),
			}}},
		})
	}
}

// modelTurn echoes the model's tool-call turn back into the conversation so
// the follow-up request stays coherent.
func modelTurn(result *chatbot.Result, fc chatbot.FunctionCall) *chatbot.Content {
	if result.Content != nil {
		return result.Content
	}
	return &chatbot.Content{
		Role:  entity.RoleAssistant.ProviderRole(),
		Parts: []chatbot.Part{{FunctionCall: &fc}},
	}
}

func (s *GenerateServiceImpl) runSearch(ctx context.Context, fc chatbot.FunctionCall) map[string]any {
	query, _ := fc.Args["query"].(string)
	if query == "" {
		return map[string]any{"error": "Search query was missing."}
	}
	results, err := s.searcher.Search(ctx, query)
	if err != nil {
		return map[string]any{"error": fmt.Sprintf("Failed to execute search: %s", err.Error())}
	}
	items := make([]map[string]any, 0, len(results.Items))
	for _, item := range results.Items {
		items = append(items, map[string]any{
			"title":   item.Title,
			"snippet": item.Snippet,
			"url":     item.Link,
		})
	}
	return map[string]any{
		"results":           items,
		"searchInformation": results.SearchInformation,
	}
}

func (s *GenerateServiceImpl) persistBestEffort(ctx context.Context, sessionKey, content string) {
	if err := s.chatService.AppendAssistantTurn(ctx, sessionKey, content, false); err != nil {
		s.logger.Error("generate", "failed to persist placeholder message", map[string]interface{}{
			"session_key": sessionKey,
			"error":       err.Error(),
		})
	}
}

func (s *GenerateServiceImpl) publishTurn(req *dto.GenerateRequest, outcome, blockReason string, toolCalls int, started time.Time) {
	if s.publisher == nil {
		return
	}
	event := events.TurnCompletedEvent{
		SessionId:   req.SessionId,
		UserId:      req.UserId,
		Outcome:     outcome,
		BlockReason: blockReason,
		ToolCalls:   toolCalls,
		DurationMs:  time.Since(started).Milliseconds(),
		OccurredAt:  time.Now(),
	}
	if err := s.publisher.PublishTurnCompleted(event); err != nil {
		s.logger.Warn("generate", "failed to publish turn event", map[string]interface{}{
			"error": err.Error(),
		})
	}
}

func blockReasonOf(appErr *serverutils.AppError) string {
	return strings.TrimPrefix(appErr.Message, "Response blocked due to: ")
}
