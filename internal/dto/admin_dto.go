package dto

import "time"

type AdminChatHistoryResponse struct {
	Id        string                `json:"_id"`
	SessionId string                `json:"sessionId"`
	Messages  []ChatMessageResponse `json:"messages"`
	CreatedAt time.Time             `json:"createdAt"`
	UpdatedAt time.Time             `json:"updatedAt"`
}

// AdminUserResponse aggregates one owner's footprint across all sessions.
type AdminUserResponse struct {
	Id            string    `json:"id"`
	Username      string    `json:"username,omitempty"`
	FirstActivity time.Time `json:"firstActivity"`
	LastActivity  time.Time `json:"lastActivity"`
	SessionCount  int       `json:"sessionCount"`
	MessageCount  int       `json:"messageCount"`
}

type MetricsResponse struct {
	TotalSessions             int64   `json:"totalSessions"`
	TotalMessages             int64   `json:"totalMessages"`
	AverageMessagesPerSession float64 `json:"averageMessagesPerSession"`
	ActiveSessions24h         int64   `json:"activeSessions24h"`
	ActiveSessions7d          int64   `json:"activeSessions7d"`
	TotalSystemPrompts        int64   `json:"totalSystemPrompts"`
	TotalAdminInviteCodes     int64   `json:"totalAdminInviteCodes"`
	UsedAdminInviteCodes      int64   `json:"usedAdminInviteCodes"`
	UnusedAdminInviteCodes    int64   `json:"unusedAdminInviteCodes"`
}

type InviteCodeResponse struct {
	Id        string     `json:"id"`
	Code      string     `json:"code"`
	IsUsed    bool       `json:"isUsed"`
	CreatedBy string     `json:"createdBy"`
	UsedBy    *string    `json:"usedBy"`
	UsedAt    *time.Time `json:"usedAt"`
	CreatedAt time.Time  `json:"createdAt"`
}
