package dto

import "time"

type ChatMessageResponse struct {
	Role      string    `json:"role"`
	Content   string    `json:"content"`
	Timestamp time.Time `json:"timestamp"`
}

// ChatSessionResponse is one row of the session directory listing. Title is
// omitted until the first assistant reply derives one.
type ChatSessionResponse struct {
	Id           string    `json:"id"`
	Title        *string   `json:"title,omitempty"`
	LastActivity time.Time `json:"lastActivity"`
}

type HideChatRequest struct {
	SessionId string `json:"sessionId" validate:"required"`
	UserId    string `json:"userId" validate:"required"`
}

type HideChatResponse struct {
	Message string `json:"message"`
}
