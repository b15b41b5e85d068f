package dto

import "time"

type CreateSystemPromptRequest struct {
	Name       string `json:"name" validate:"required"`
	PromptText string `json:"promptText" validate:"required"`
	IsPrimary  bool   `json:"isPrimary"`
}

// UpdateSystemPromptRequest carries partial updates. Nil fields are left
// untouched.
type UpdateSystemPromptRequest struct {
	Id         string  `json:"id"`
	Name       *string `json:"name"`
	PromptText *string `json:"promptText"`
	IsPrimary  *bool   `json:"isPrimary"`
}

type SystemPromptResponse struct {
	Id         string    `json:"id"`
	Name       string    `json:"name"`
	PromptText string    `json:"promptText"`
	IsPrimary  bool      `json:"isPrimary"`
	CreatedAt  time.Time `json:"createdAt"`
	UpdatedAt  time.Time `json:"updatedAt"`
}

type SystemPromptListResponse struct {
	Success       bool                   `json:"success"`
	SystemPrompts []SystemPromptResponse `json:"systemPrompts"`
}

type SystemPromptItemResponse struct {
	Success      bool                 `json:"success"`
	SystemPrompt SystemPromptResponse `json:"systemPrompt"`
}
