package service

import (
	"context"
	"errors"
	"sort"
	"time"

	"gembreak-be/internal/entity"
	"gembreak-be/internal/repository/contract"
	"gembreak-be/internal/repository/specification"
	"gembreak-be/internal/repository/unitofwork"
	"gembreak-be/pkg/chatbot"
	"gembreak-be/pkg/search"

	"github.com/google/uuid"
)

type nopLogger struct{}

func (nopLogger) Debug(string, string, map[string]interface{}) {}
func (nopLogger) Info(string, string, map[string]interface{})  {}
func (nopLogger) Warn(string, string, map[string]interface{})  {}
func (nopLogger) Error(string, string, map[string]interface{}) {}
func (nopLogger) Sync() error                                  { return nil }

// fakeClock hands out strictly increasing timestamps so ordering assertions
// are deterministic.
type fakeClock struct {
	base time.Time
	step int
}

func newFakeClock() *fakeClock {
	return &fakeClock{base: time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)}
}

func (c *fakeClock) next() time.Time {
	c.step++
	return c.base.Add(time.Duration(c.step) * time.Second)
}

type fakeChatSessionRepo struct {
	clock    *fakeClock
	sessions map[string]*entity.ChatSession
}

func newFakeChatSessionRepo(clock *fakeClock) *fakeChatSessionRepo {
	return &fakeChatSessionRepo{clock: clock, sessions: make(map[string]*entity.ChatSession)}
}

func (r *fakeChatSessionRepo) CreateIfAbsent(_ context.Context, session *entity.ChatSession) error {
	if _, ok := r.sessions[session.Key]; ok {
		return nil
	}
	now := r.clock.next()
	stored := *session
	stored.CreatedAt = now
	stored.UpdatedAt = now
	r.sessions[session.Key] = &stored
	return nil
}

func (r *fakeChatSessionRepo) Patch(_ context.Context, key string, values map[string]interface{}) error {
	session, ok := r.sessions[key]
	if !ok {
		return nil
	}
	if v, ok := values["updated_at"].(time.Time); ok {
		session.UpdatedAt = v
	}
	if v, ok := values["title"].(string); ok {
		session.Title = &v
	}
	return nil
}

func (r *fakeChatSessionRepo) matches(session *entity.ChatSession, specs []specification.Specification) bool {
	for _, spec := range specs {
		switch s := spec.(type) {
		case specification.FilterBy:
			if s.Field == "key" && session.Key != s.Value.(string) {
				return false
			}
		case specification.OwnedBy:
			if session.OwnerId != s.UserID {
				return false
			}
		case specification.KeyNotIn:
			for _, k := range s.Keys {
				if session.Key == k {
					return false
				}
			}
		case specification.UpdatedSince:
			if session.UpdatedAt.Before(s.Cutoff) {
				return false
			}
		}
	}
	return true
}

func (r *fakeChatSessionRepo) FindOne(_ context.Context, specs ...specification.Specification) (*entity.ChatSession, error) {
	for _, session := range r.sessions {
		if r.matches(session, specs) {
			copied := *session
			return &copied, nil
		}
	}
	return nil, nil
}

func (r *fakeChatSessionRepo) FindAll(_ context.Context, specs ...specification.Specification) ([]*entity.ChatSession, error) {
	var out []*entity.ChatSession
	for _, session := range r.sessions {
		if r.matches(session, specs) {
			copied := *session
			out = append(out, &copied)
		}
	}
	for _, spec := range specs {
		if order, ok := spec.(specification.OrderBy); ok && order.Field == "updated_at" {
			sort.SliceStable(out, func(i, j int) bool {
				if order.Desc {
					return out[i].UpdatedAt.After(out[j].UpdatedAt)
				}
				return out[i].UpdatedAt.Before(out[j].UpdatedAt)
			})
		}
	}
	return out, nil
}

func (r *fakeChatSessionRepo) Count(ctx context.Context, specs ...specification.Specification) (int64, error) {
	all, _ := r.FindAll(ctx, specs...)
	return int64(len(all)), nil
}

type fakeChatMessageRepo struct {
	clock     *fakeClock
	messages  []*entity.ChatMessage
	createErr error
}

func newFakeChatMessageRepo(clock *fakeClock) *fakeChatMessageRepo {
	return &fakeChatMessageRepo{clock: clock}
}

func (r *fakeChatMessageRepo) Create(_ context.Context, message *entity.ChatMessage) error {
	if r.createErr != nil {
		return r.createErr
	}
	stored := *message
	stored.Id = uuid.New()
	stored.CreatedAt = r.clock.next()
	r.messages = append(r.messages, &stored)
	*message = stored
	return nil
}

func (r *fakeChatMessageRepo) FindAll(_ context.Context, specs ...specification.Specification) ([]*entity.ChatMessage, error) {
	var out []*entity.ChatMessage
	for _, message := range r.messages {
		keep := true
		for _, spec := range specs {
			if s, ok := spec.(specification.BySessionKey); ok && message.SessionKey != s.Key {
				keep = false
			}
		}
		if keep {
			copied := *message
			out = append(out, &copied)
		}
	}
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].CreatedAt.Before(out[j].CreatedAt)
	})
	return out, nil
}

func (r *fakeChatMessageRepo) Count(ctx context.Context, specs ...specification.Specification) (int64, error) {
	all, _ := r.FindAll(ctx, specs...)
	return int64(len(all)), nil
}

type fakeHiddenChatRepo struct {
	clock *fakeClock
	marks []*entity.HiddenChat
}

func newFakeHiddenChatRepo(clock *fakeClock) *fakeHiddenChatRepo {
	return &fakeHiddenChatRepo{clock: clock}
}

func (r *fakeHiddenChatRepo) CreateIfAbsent(_ context.Context, mark *entity.HiddenChat) error {
	for _, existing := range r.marks {
		if existing.UserId == mark.UserId && existing.SessionKey == mark.SessionKey {
			return nil
		}
	}
	stored := *mark
	stored.HiddenAt = r.clock.next()
	r.marks = append(r.marks, &stored)
	return nil
}

func (r *fakeHiddenChatRepo) FindAll(_ context.Context, specs ...specification.Specification) ([]*entity.HiddenChat, error) {
	var out []*entity.HiddenChat
	for _, mark := range r.marks {
		keep := true
		for _, spec := range specs {
			switch s := spec.(type) {
			case specification.HiddenFor:
				if mark.UserId != s.UserID {
					keep = false
				}
			case specification.BySessionKey:
				if mark.SessionKey != s.Key {
					keep = false
				}
			}
		}
		if keep {
			copied := *mark
			out = append(out, &copied)
		}
	}
	return out, nil
}

func (r *fakeHiddenChatRepo) Count(ctx context.Context, specs ...specification.Specification) (int64, error) {
	all, _ := r.FindAll(ctx, specs...)
	return int64(len(all)), nil
}

type fakeSystemPromptRepo struct {
	clock   *fakeClock
	prompts []*entity.SystemPrompt
}

func newFakeSystemPromptRepo(clock *fakeClock) *fakeSystemPromptRepo {
	return &fakeSystemPromptRepo{clock: clock}
}

func (r *fakeSystemPromptRepo) Create(_ context.Context, prompt *entity.SystemPrompt) error {
	stored := *prompt
	stored.Id = uuid.New()
	now := r.clock.next()
	stored.CreatedAt = now
	stored.UpdatedAt = now
	r.prompts = append(r.prompts, &stored)
	*prompt = stored
	return nil
}

func (r *fakeSystemPromptRepo) Update(_ context.Context, prompt *entity.SystemPrompt) error {
	for i, existing := range r.prompts {
		if existing.Id == prompt.Id {
			stored := *prompt
			stored.UpdatedAt = r.clock.next()
			r.prompts[i] = &stored
			*prompt = stored
			return nil
		}
	}
	return errors.New("prompt not found")
}

func (r *fakeSystemPromptRepo) Delete(_ context.Context, id uuid.UUID) error {
	for i, existing := range r.prompts {
		if existing.Id == id {
			r.prompts = append(r.prompts[:i], r.prompts[i+1:]...)
			return nil
		}
	}
	return nil
}

func (r *fakeSystemPromptRepo) ClearPrimary(_ context.Context, exceptId uuid.UUID) error {
	for _, prompt := range r.prompts {
		if prompt.Id != exceptId && prompt.IsPrimary {
			prompt.IsPrimary = false
			prompt.UpdatedAt = r.clock.next()
		}
	}
	return nil
}

func (r *fakeSystemPromptRepo) matches(prompt *entity.SystemPrompt, specs []specification.Specification) bool {
	for _, spec := range specs {
		switch s := spec.(type) {
		case specification.ByID:
			if prompt.Id != s.ID {
				return false
			}
		case specification.PrimaryOnly:
			if !prompt.IsPrimary {
				return false
			}
		case specification.ExcludeID:
			if prompt.Id == s.ID {
				return false
			}
		}
	}
	return true
}

func (r *fakeSystemPromptRepo) FindOne(_ context.Context, specs ...specification.Specification) (*entity.SystemPrompt, error) {
	for _, prompt := range r.prompts {
		if r.matches(prompt, specs) {
			copied := *prompt
			return &copied, nil
		}
	}
	return nil, nil
}

func (r *fakeSystemPromptRepo) FindAll(_ context.Context, specs ...specification.Specification) ([]*entity.SystemPrompt, error) {
	var out []*entity.SystemPrompt
	for _, prompt := range r.prompts {
		if r.matches(prompt, specs) {
			copied := *prompt
			out = append(out, &copied)
		}
	}
	for _, spec := range specs {
		if order, ok := spec.(specification.OrderBy); ok {
			sort.SliceStable(out, func(i, j int) bool {
				var less bool
				switch order.Field {
				case "name":
					less = out[i].Name < out[j].Name
				case "created_at":
					less = out[i].CreatedAt.Before(out[j].CreatedAt)
				}
				if order.Desc {
					return !less
				}
				return less
			})
		}
	}
	return out, nil
}

func (r *fakeSystemPromptRepo) Count(ctx context.Context, specs ...specification.Specification) (int64, error) {
	all, _ := r.FindAll(ctx, specs...)
	return int64(len(all)), nil
}

type fakeUserRepo struct {
	clock *fakeClock
	users []*entity.User
}

func newFakeUserRepo(clock *fakeClock) *fakeUserRepo {
	return &fakeUserRepo{clock: clock}
}

func (r *fakeUserRepo) Create(_ context.Context, user *entity.User) error {
	stored := *user
	stored.Id = uuid.New()
	now := r.clock.next()
	stored.CreatedAt = now
	stored.UpdatedAt = now
	r.users = append(r.users, &stored)
	*user = stored
	return nil
}

func (r *fakeUserRepo) MarkInviteCodeUsed(_ context.Context, userId uuid.UUID) error {
	for _, user := range r.users {
		if user.Id == userId {
			user.IsInviteCodeUsed = true
			user.UpdatedAt = r.clock.next()
			return nil
		}
	}
	return errors.New("user not found")
}

func (r *fakeUserRepo) matches(user *entity.User, specs []specification.Specification) bool {
	for _, spec := range specs {
		switch s := spec.(type) {
		case specification.ByID:
			if user.Id != s.ID {
				return false
			}
		case specification.ByUsername:
			if user.Username != s.Username {
				return false
			}
		case specification.ByPersonalInviteCode:
			if user.InviteCode != s.Code {
				return false
			}
		case specification.FilterBy:
			if s.Field == "is_invite_code_used" && user.IsInviteCodeUsed != s.Value.(bool) {
				return false
			}
		}
	}
	return true
}

func (r *fakeUserRepo) FindOne(_ context.Context, specs ...specification.Specification) (*entity.User, error) {
	for _, user := range r.users {
		if r.matches(user, specs) {
			copied := *user
			return &copied, nil
		}
	}
	return nil, nil
}

func (r *fakeUserRepo) FindAll(_ context.Context, specs ...specification.Specification) ([]*entity.User, error) {
	var out []*entity.User
	for _, user := range r.users {
		if r.matches(user, specs) {
			copied := *user
			out = append(out, &copied)
		}
	}
	return out, nil
}

func (r *fakeUserRepo) Count(ctx context.Context, specs ...specification.Specification) (int64, error) {
	all, _ := r.FindAll(ctx, specs...)
	return int64(len(all)), nil
}

type fakeInviteCodeRepo struct {
	clock *fakeClock
	codes []*entity.InviteCode
}

func newFakeInviteCodeRepo(clock *fakeClock) *fakeInviteCodeRepo {
	return &fakeInviteCodeRepo{clock: clock}
}

func (r *fakeInviteCodeRepo) Create(_ context.Context, code *entity.InviteCode) error {
	stored := *code
	stored.Id = uuid.New()
	stored.CreatedAt = r.clock.next()
	r.codes = append(r.codes, &stored)
	*code = stored
	return nil
}

func (r *fakeInviteCodeRepo) MarkUsed(_ context.Context, id uuid.UUID, usedBy uuid.UUID) error {
	for _, code := range r.codes {
		if code.Id == id {
			code.IsUsed = true
			used := usedBy
			code.UsedBy = &used
			at := r.clock.next()
			code.UsedAt = &at
			return nil
		}
	}
	return errors.New("invite code not found")
}

func (r *fakeInviteCodeRepo) matches(code *entity.InviteCode, specs []specification.Specification) bool {
	for _, spec := range specs {
		switch s := spec.(type) {
		case specification.ByID:
			if code.Id != s.ID {
				return false
			}
		case specification.ByCode:
			if code.Code != s.Code {
				return false
			}
		case specification.UnusedOnly:
			if code.IsUsed {
				return false
			}
		case specification.FilterBy:
			if s.Field == "created_by" && code.CreatedBy != s.Value.(string) {
				return false
			}
		}
	}
	return true
}

func (r *fakeInviteCodeRepo) FindOne(_ context.Context, specs ...specification.Specification) (*entity.InviteCode, error) {
	for _, code := range r.codes {
		if r.matches(code, specs) {
			copied := *code
			return &copied, nil
		}
	}
	return nil, nil
}

func (r *fakeInviteCodeRepo) FindAll(_ context.Context, specs ...specification.Specification) ([]*entity.InviteCode, error) {
	var out []*entity.InviteCode
	for _, code := range r.codes {
		if r.matches(code, specs) {
			copied := *code
			out = append(out, &copied)
		}
	}
	for _, spec := range specs {
		if order, ok := spec.(specification.OrderBy); ok && order.Field == "created_at" {
			sort.SliceStable(out, func(i, j int) bool {
				if order.Desc {
					return out[i].CreatedAt.After(out[j].CreatedAt)
				}
				return out[i].CreatedAt.Before(out[j].CreatedAt)
			})
		}
	}
	return out, nil
}

func (r *fakeInviteCodeRepo) Count(ctx context.Context, specs ...specification.Specification) (int64, error) {
	all, _ := r.FindAll(ctx, specs...)
	return int64(len(all)), nil
}

// fakeUnitOfWork hands back the shared fake repos; Begin/Commit/Rollback are
// bookkeeping only.
type fakeUnitOfWork struct {
	sessionRepo *fakeChatSessionRepo
	messageRepo *fakeChatMessageRepo
	hiddenRepo  *fakeHiddenChatRepo
	promptRepo  *fakeSystemPromptRepo
	userRepo    *fakeUserRepo
	codeRepo    *fakeInviteCodeRepo

	began      bool
	committed  bool
	rolledBack bool
}

func (u *fakeUnitOfWork) Begin(context.Context) error { u.began = true; return nil }
func (u *fakeUnitOfWork) Commit() error               { u.committed = true; return nil }
func (u *fakeUnitOfWork) Rollback() error             { u.rolledBack = true; return nil }

func (u *fakeUnitOfWork) UserRepository() contract.UserRepository                 { return u.userRepo }
func (u *fakeUnitOfWork) InviteCodeRepository() contract.InviteCodeRepository     { return u.codeRepo }
func (u *fakeUnitOfWork) ChatSessionRepository() contract.ChatSessionRepository   { return u.sessionRepo }
func (u *fakeUnitOfWork) ChatMessageRepository() contract.ChatMessageRepository   { return u.messageRepo }
func (u *fakeUnitOfWork) HiddenChatRepository() contract.HiddenChatRepository     { return u.hiddenRepo }
func (u *fakeUnitOfWork) SystemPromptRepository() contract.SystemPromptRepository { return u.promptRepo }

type fakeUowFactory struct {
	uow *fakeUnitOfWork
}

func (f *fakeUowFactory) NewUnitOfWork(context.Context) unitofwork.UnitOfWork { return f.uow }

// scriptedChatbot replays a fixed sequence of results and records every call.
type scriptedChatbot struct {
	results []*chatbot.Result
	errs    []error
	calls   [][]*chatbot.Content
	systems []string
}

func (c *scriptedChatbot) Generate(_ context.Context, systemInstruction string, contents []*chatbot.Content) (*chatbot.Result, error) {
	snapshot := make([]*chatbot.Content, len(contents))
	copy(snapshot, contents)
	c.calls = append(c.calls, snapshot)
	c.systems = append(c.systems, systemInstruction)

	i := len(c.calls) - 1
	if i < len(c.errs) && c.errs[i] != nil {
		return nil, c.errs[i]
	}
	if i < len(c.results) {
		return c.results[i], nil
	}
	return &chatbot.Result{Text: ""}, nil
}

type recordingSearcher struct {
	queries []string
	err     error
}

func (s *recordingSearcher) Search(_ context.Context, query string) (*search.Results, error) {
	s.queries = append(s.queries, query)
	if s.err != nil {
		return nil, s.err
	}
	return &search.Results{
		Items: []search.Item{
			{Title: "result for " + query, Link: "https://example.com", Snippet: "snippet"},
		},
		SearchInformation: map[string]any{"totalResults": "1"},
	}, nil
}
