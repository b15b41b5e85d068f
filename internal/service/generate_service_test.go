package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"gembreak-be/internal/dto"
	"gembreak-be/internal/entity"
	"gembreak-be/internal/pkg/serverutils"
	"gembreak-be/pkg/chatbot"

	"github.com/google/uuid"
	gocache "github.com/patrickmn/go-cache"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type generateEnv struct {
	sessionRepo *fakeChatSessionRepo
	messageRepo *fakeChatMessageRepo
	promptRepo  *fakeSystemPromptRepo
	bot         *scriptedChatbot
	searcher    *recordingSearcher
	service     IGenerateService
}

func newGenerateEnv(bot *scriptedChatbot) *generateEnv {
	clock := newFakeClock()
	sessionRepo := newFakeChatSessionRepo(clock)
	messageRepo := newFakeChatMessageRepo(clock)
	hiddenRepo := newFakeHiddenChatRepo(clock)
	promptRepo := newFakeSystemPromptRepo(clock)

	uow := &fakeUnitOfWork{
		sessionRepo: sessionRepo,
		messageRepo: messageRepo,
		hiddenRepo:  hiddenRepo,
		promptRepo:  promptRepo,
	}
	chatService := NewChatService(sessionRepo, messageRepo, hiddenRepo, nopLogger{})
	promptService := NewSystemPromptService(promptRepo, &fakeUowFactory{uow: uow}, gocache.New(time.Minute, time.Minute), nopLogger{})
	searcher := &recordingSearcher{}

	return &generateEnv{
		sessionRepo: sessionRepo,
		messageRepo: messageRepo,
		promptRepo:  promptRepo,
		bot:         bot,
		searcher:    searcher,
		service:     NewGenerateService(chatService, promptService, bot, searcher, nil, nopLogger{}),
	}
}

func generateRequest(prompt string) *dto.GenerateRequest {
	return &dto.GenerateRequest{
		Prompt:    prompt,
		SessionId: "sess-1",
		UserId:    uuid.New().String(),
	}
}

func searchCall(query map[string]any) *chatbot.Result {
	return &chatbot.Result{
		FunctionCalls: []chatbot.FunctionCall{{Name: "google_search", Args: query}},
	}
}

func (env *generateEnv) messageContents(t *testing.T) []string {
	t.Helper()
	messages, err := env.messageRepo.FindAll(context.Background())
	require.NoError(t, err)
	out := make([]string, len(messages))
	for i, m := range messages {
		out[i] = m.Content
	}
	return out
}

func TestRunTurnHappyPath(t *testing.T) {
	env := newGenerateEnv(&scriptedChatbot{
		results: []*chatbot.Result{{Text: "Hello there."}},
	})

	res, err := env.service.RunTurn(context.Background(), generateRequest("hi"))
	require.NoError(t, err)
	assert.Equal(t, "Hello there.", res.Text)

	assert.Equal(t, []string{"hi", "Hello there."}, env.messageContents(t))

	session, _ := env.sessionRepo.FindOne(context.Background())
	require.NotNil(t, session.Title)
	assert.Equal(t, "Hello there.", *session.Title)
}

func TestRunTurnValidationNeverTouchesStorage(t *testing.T) {
	env := newGenerateEnv(&scriptedChatbot{})

	cases := []struct {
		name    string
		mutate  func(*dto.GenerateRequest)
		message string
	}{
		{"missing prompt", func(r *dto.GenerateRequest) { r.Prompt = "" }, "prompt is required"},
		{"missing session", func(r *dto.GenerateRequest) { r.SessionId = "" }, "sessionId is required"},
		{"missing user", func(r *dto.GenerateRequest) { r.UserId = "" }, "userId is required"},
		{"malformed user", func(r *dto.GenerateRequest) { r.UserId = "not-a-uuid" }, "Invalid userId format"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			req := generateRequest("hi")
			tc.mutate(req)
			_, err := env.service.RunTurn(context.Background(), req)
			require.Error(t, err)
			appErr, ok := serverutils.AsAppError(err)
			require.True(t, ok)
			assert.Equal(t, 400, appErr.Code)
			assert.Equal(t, tc.message, appErr.Message)
		})
	}

	assert.Empty(t, env.messageContents(t))
	assert.Empty(t, env.bot.calls)
}

func TestRunTurnBlockedPersistsPlaceholder(t *testing.T) {
	env := newGenerateEnv(&scriptedChatbot{
		results: []*chatbot.Result{{BlockReason: "SAFETY"}},
	})

	_, err := env.service.RunTurn(context.Background(), generateRequest("something nasty"))
	require.Error(t, err)
	appErr, ok := serverutils.AsAppError(err)
	require.True(t, ok)
	assert.True(t, appErr.IsBlocked)
	assert.Equal(t, 400, appErr.Code)
	assert.Equal(t, "Response blocked due to: SAFETY", appErr.Message)

	assert.Equal(t, []string{"something nasty", "[AI response blocked: SAFETY]"}, env.messageContents(t))

	// The blocked placeholder never becomes a title.
	session, _ := env.sessionRepo.FindOne(context.Background())
	assert.Nil(t, session.Title)
}

func TestRunTurnToolLoopLeavesNoArtifacts(t *testing.T) {
	env := newGenerateEnv(&scriptedChatbot{
		results: []*chatbot.Result{
			searchCall(map[string]any{"query": "cats"}),
			{Text: "Cats are mammals."},
		},
	})

	res, err := env.service.RunTurn(context.Background(), generateRequest("tell me about cats"))
	require.NoError(t, err)
	assert.Equal(t, "Cats are mammals.", res.Text)
	assert.Equal(t, []string{"cats"}, env.searcher.queries)

	assert.Equal(t, []string{"tell me about cats", "Cats are mammals."}, env.messageContents(t))

	// The second model call carries the tool round trip.
	require.Len(t, env.bot.calls, 2)
	second := env.bot.calls[1]
	last := second[len(second)-1]
	require.Len(t, last.Parts, 1)
	require.NotNil(t, last.Parts[0].FunctionResponse)
	assert.Equal(t, "google_search", last.Parts[0].FunctionResponse.Name)
}

func TestRunTurnMissingQueryFeedsToolError(t *testing.T) {
	env := newGenerateEnv(&scriptedChatbot{
		results: []*chatbot.Result{
			searchCall(map[string]any{}),
			{Text: "Never mind."},
		},
	})

	res, err := env.service.RunTurn(context.Background(), generateRequest("search something"))
	require.NoError(t, err)
	assert.Equal(t, "Never mind.", res.Text)
	assert.Empty(t, env.searcher.queries)

	second := env.bot.calls[1]
	last := second[len(second)-1]
	require.NotNil(t, last.Parts[0].FunctionResponse)
	assert.Equal(t, "Search query was missing.", last.Parts[0].FunctionResponse.Response["error"])
}

func TestRunTurnUnknownToolStopsLooping(t *testing.T) {
	env := newGenerateEnv(&scriptedChatbot{
		results: []*chatbot.Result{
			{
				Text:          "partial answer",
				FunctionCalls: []chatbot.FunctionCall{{Name: "file_system", Args: map[string]any{}}},
			},
		},
	})

	res, err := env.service.RunTurn(context.Background(), generateRequest("do something odd"))
	require.NoError(t, err)
	assert.Equal(t, "partial answer", res.Text)
	assert.Len(t, env.bot.calls, 1)
	assert.Empty(t, env.searcher.queries)
}

func TestRunTurnEmptyResponseGetsSentinel(t *testing.T) {
	env := newGenerateEnv(&scriptedChatbot{
		results: []*chatbot.Result{{Text: ""}},
	})

	res, err := env.service.RunTurn(context.Background(), generateRequest("hi"))
	require.NoError(t, err)
	assert.Equal(t, EmptyResponseSentinel, res.Text)

	assert.Equal(t, []string{"hi", EmptyResponseSentinel}, env.messageContents(t))

	session, _ := env.sessionRepo.FindOne(context.Background())
	assert.Nil(t, session.Title)
}

func TestRunTurnToolLoopCap(t *testing.T) {
	var results []*chatbot.Result
	for i := 0; i < 12; i++ {
		results = append(results, searchCall(map[string]any{"query": "again"}))
	}
	env := newGenerateEnv(&scriptedChatbot{results: results})

	_, err := env.service.RunTurn(context.Background(), generateRequest("loop forever"))
	require.Error(t, err)
	appErr, ok := serverutils.AsAppError(err)
	require.True(t, ok)
	assert.Equal(t, 500, appErr.Code)
	assert.Equal(t, "tool loop exceeded", appErr.Message)

	contents := env.messageContents(t)
	require.Len(t, contents, 2)
	assert.Equal(t, "[Error processing request: tool loop exceeded]", contents[1])
}

func TestRunTurnModelErrorPersistsPlaceholder(t *testing.T) {
	env := newGenerateEnv(&scriptedChatbot{
		errs: []error{errors.New("upstream exploded")},
	})

	_, err := env.service.RunTurn(context.Background(), generateRequest("hi"))
	require.Error(t, err)

	contents := env.messageContents(t)
	require.Len(t, contents, 2)
	assert.Equal(t, "[Error processing request: upstream exploded]", contents[1])
}

func TestRunTurnHistoryExcludesLatestAndMapsRoles(t *testing.T) {
	env := newGenerateEnv(&scriptedChatbot{
		results: []*chatbot.Result{
			{Text: "first reply"},
			{Text: "second reply"},
		},
	})
	req := generateRequest("first question")

	_, err := env.service.RunTurn(context.Background(), req)
	require.NoError(t, err)

	req2 := &dto.GenerateRequest{Prompt: "second question", SessionId: req.SessionId, UserId: req.UserId}
	_, err = env.service.RunTurn(context.Background(), req2)
	require.NoError(t, err)

	require.Len(t, env.bot.calls, 2)
	second := env.bot.calls[1]
	require.Len(t, second, 3)
	assert.Equal(t, "user", second[0].Role)
	assert.Equal(t, "first question", second[0].Parts[0].Text)
	assert.Equal(t, "model", second[1].Role)
	assert.Equal(t, "first reply", second[1].Parts[0].Text)
	assert.Equal(t, "user", second[2].Role)
	assert.Equal(t, "second question", second[2].Parts[0].Text)
}

func TestRunTurnFallsBackToPrimaryPersona(t *testing.T) {
	env := newGenerateEnv(&scriptedChatbot{
		results: []*chatbot.Result{{Text: "ok"}, {Text: "ok"}},
	})
	persona := &entity.SystemPrompt{Name: "Pirate", PromptText: "You are a helpful pirate.", IsPrimary: true}
	require.NoError(t, env.promptRepo.Create(context.Background(), persona))

	first := generateRequest("hi")
	_, err := env.service.RunTurn(context.Background(), first)
	require.NoError(t, err)
	assert.Equal(t, "You are a helpful pirate.", env.bot.systems[0])

	// A caller-supplied prompt wins over the primary persona.
	req := &dto.GenerateRequest{Prompt: "hi again", SessionId: first.SessionId, UserId: first.UserId}
	req.SystemPrompt = "You are terse."
	_, err = env.service.RunTurn(context.Background(), req)
	require.NoError(t, err)
	assert.Equal(t, "You are terse.", env.bot.systems[1])
}
