package dto

// GenerateRequest is the body of POST /api/generate. SystemPrompt, when
// present, overrides the primary persona for this turn only.
type GenerateRequest struct {
	Prompt       string `json:"prompt" validate:"required"`
	SessionId    string `json:"sessionId" validate:"required"`
	UserId       string `json:"userId" validate:"required"`
	SystemPrompt string `json:"systemPrompt"`
}

type GenerateResponse struct {
	Text string `json:"text"`
}

// GenerateErrorResponse mirrors the wire shape the web client expects on
// failed turns. IsBlocked is only emitted when the provider refused the
// prompt outright.
type GenerateErrorResponse struct {
	Error     string `json:"error"`
	IsBlocked bool   `json:"isBlocked,omitempty"`
}
