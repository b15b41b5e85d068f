package service

import (
	"context"
	"testing"
	"time"

	"gembreak-be/internal/entity"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type adminEnv struct {
	sessionRepo *fakeChatSessionRepo
	messageRepo *fakeChatMessageRepo
	promptRepo  *fakeSystemPromptRepo
	userRepo    *fakeUserRepo
	codeRepo    *fakeInviteCodeRepo
	service     IAdminService
}

func newAdminEnv() *adminEnv {
	clock := newFakeClock()
	env := &adminEnv{
		sessionRepo: newFakeChatSessionRepo(clock),
		messageRepo: newFakeChatMessageRepo(clock),
		promptRepo:  newFakeSystemPromptRepo(clock),
		userRepo:    newFakeUserRepo(clock),
		codeRepo:    newFakeInviteCodeRepo(clock),
	}
	env.service = NewAdminService(env.sessionRepo, env.messageRepo, env.promptRepo, env.userRepo, env.codeRepo, nopLogger{})
	return env
}

func (env *adminEnv) seedSession(t *testing.T, key string, owner uuid.UUID, messages int) {
	t.Helper()
	ctx := context.Background()
	require.NoError(t, env.sessionRepo.CreateIfAbsent(ctx, &entity.ChatSession{Key: key, OwnerId: owner}))
	for i := 0; i < messages; i++ {
		role := entity.RoleUser
		if i%2 == 1 {
			role = entity.RoleAssistant
		}
		require.NoError(t, env.messageRepo.Create(ctx, &entity.ChatMessage{
			SessionKey: key,
			Role:       role,
			Content:    "msg",
		}))
	}
}

func TestMetrics(t *testing.T) {
	env := newAdminEnv()
	ctx := context.Background()
	owner := uuid.New()

	env.seedSession(t, "sess-a", owner, 2)
	env.seedSession(t, "sess-b", owner, 1)
	env.seedSession(t, "sess-c", owner, 1)

	// Only two sessions have been active recently; one of those within a day.
	now := time.Now()
	require.NoError(t, env.sessionRepo.Patch(ctx, "sess-a", map[string]interface{}{"updated_at": now}))
	require.NoError(t, env.sessionRepo.Patch(ctx, "sess-b", map[string]interface{}{"updated_at": now.Add(-3 * 24 * time.Hour)}))

	require.NoError(t, env.promptRepo.Create(ctx, &entity.SystemPrompt{Name: "A", PromptText: "a"}))
	require.NoError(t, env.promptRepo.Create(ctx, &entity.SystemPrompt{Name: "B", PromptText: "b"}))

	for _, code := range []string{"code-1", "code-2", "code-3"} {
		require.NoError(t, env.codeRepo.Create(ctx, &entity.InviteCode{Code: code, CreatedBy: "admin"}))
	}
	require.NoError(t, env.codeRepo.MarkUsed(ctx, env.codeRepo.codes[0].Id, owner))

	metrics, err := env.service.Metrics(ctx)
	require.NoError(t, err)
	assert.Equal(t, int64(3), metrics.TotalSessions)
	assert.Equal(t, int64(4), metrics.TotalMessages)
	assert.Equal(t, 1.33, metrics.AverageMessagesPerSession)
	assert.Equal(t, int64(1), metrics.ActiveSessions24h)
	assert.Equal(t, int64(2), metrics.ActiveSessions7d)
	assert.Equal(t, int64(2), metrics.TotalSystemPrompts)
	assert.Equal(t, int64(3), metrics.TotalAdminInviteCodes)
	assert.Equal(t, int64(1), metrics.UsedAdminInviteCodes)
	assert.Equal(t, int64(2), metrics.UnusedAdminInviteCodes)
}

func TestMetricsEmptyDatabase(t *testing.T) {
	env := newAdminEnv()

	metrics, err := env.service.Metrics(context.Background())
	require.NoError(t, err)
	assert.Equal(t, int64(0), metrics.TotalSessions)
	assert.Equal(t, 0.0, metrics.AverageMessagesPerSession)
}

func TestUsersAggregation(t *testing.T) {
	env := newAdminEnv()
	ctx := context.Background()

	alice := &entity.User{Username: "alice"}
	require.NoError(t, env.userRepo.Create(ctx, alice))

	env.seedSession(t, "a-1", alice.Id, 2)
	env.seedSession(t, "a-2", alice.Id, 1)

	anon := uuid.New()
	env.seedSession(t, "n-1", anon, 3)

	// Anonymous owner is the most recently active.
	require.NoError(t, env.sessionRepo.Patch(ctx, "n-1", map[string]interface{}{"updated_at": time.Now()}))

	users, err := env.service.Users(ctx)
	require.NoError(t, err)
	require.Len(t, users, 2)

	assert.Equal(t, anon.String(), users[0].Id)
	assert.Equal(t, "", users[0].Username)
	assert.Equal(t, 1, users[0].SessionCount)
	assert.Equal(t, 3, users[0].MessageCount)

	assert.Equal(t, alice.Id.String(), users[1].Id)
	assert.Equal(t, "alice", users[1].Username)
	assert.Equal(t, 2, users[1].SessionCount)
	assert.Equal(t, 3, users[1].MessageCount)
	assert.True(t, users[1].FirstActivity.Before(users[1].LastActivity) || users[1].FirstActivity.Equal(users[1].LastActivity))
}

func TestChatHistoriesNormalizesRoles(t *testing.T) {
	env := newAdminEnv()
	ctx := context.Background()
	owner := uuid.New()

	require.NoError(t, env.sessionRepo.CreateIfAbsent(ctx, &entity.ChatSession{Key: "sess-1", OwnerId: owner}))
	for _, raw := range []string{"user", "model", "weird"} {
		require.NoError(t, env.messageRepo.Create(ctx, &entity.ChatMessage{
			SessionKey: "sess-1",
			Role:       entity.Role(raw),
			Content:    raw + " says",
		}))
	}

	histories, err := env.service.ChatHistories(ctx)
	require.NoError(t, err)
	require.Len(t, histories, 1)
	assert.Equal(t, "sess-1", histories[0].Id)
	assert.Equal(t, "sess-1", histories[0].SessionId)

	roles := make([]string, 0, 3)
	for _, m := range histories[0].Messages {
		roles = append(roles, m.Role)
	}
	assert.Equal(t, []string{"user", "assistant", "system"}, roles)
}

func TestChatHistoriesOrderedByRecency(t *testing.T) {
	env := newAdminEnv()
	ctx := context.Background()
	owner := uuid.New()

	env.seedSession(t, "old", owner, 1)
	env.seedSession(t, "new", owner, 1)
	require.NoError(t, env.sessionRepo.Patch(ctx, "new", map[string]interface{}{"updated_at": time.Now()}))

	histories, err := env.service.ChatHistories(ctx)
	require.NoError(t, err)
	require.Len(t, histories, 2)
	assert.Equal(t, "new", histories[0].SessionId)
	assert.Equal(t, "old", histories[1].SessionId)
}

func TestListInviteCodesOnlyAdminMinted(t *testing.T) {
	env := newAdminEnv()
	ctx := context.Background()

	require.NoError(t, env.codeRepo.Create(ctx, &entity.InviteCode{Code: "admin-1", CreatedBy: "admin"}))
	require.NoError(t, env.codeRepo.Create(ctx, &entity.InviteCode{Code: "sys-1", CreatedBy: "system"}))
	require.NoError(t, env.codeRepo.Create(ctx, &entity.InviteCode{Code: "admin-2", CreatedBy: "admin"}))

	codes, err := env.service.ListInviteCodes(ctx)
	require.NoError(t, err)
	require.Len(t, codes, 2)
	assert.Equal(t, "admin-2", codes[0].Code)
	assert.Equal(t, "admin-1", codes[1].Code)
}

func TestGenerateInviteCode(t *testing.T) {
	env := newAdminEnv()
	ctx := context.Background()

	first, err := env.service.GenerateInviteCode(ctx)
	require.NoError(t, err)
	assert.Len(t, first.Code, 16)
	assert.Equal(t, "admin", first.CreatedBy)
	assert.False(t, first.IsUsed)

	second, err := env.service.GenerateInviteCode(ctx)
	require.NoError(t, err)
	assert.NotEqual(t, first.Code, second.Code)

	codes, err := env.service.ListInviteCodes(ctx)
	require.NoError(t, err)
	assert.Len(t, codes, 2)
}
