package chatbot

import "context"

// Content is a provider-neutral conversation entry. Role is the provider
// role ("user" or "model"), not the storage role.
type Content struct {
	Role  string
	Parts []Part
}

type Part struct {
	Text             string
	FunctionCall     *FunctionCall
	FunctionResponse *FunctionResponse
}

type FunctionCall struct {
	Name string
	Args map[string]any
}

type FunctionResponse struct {
	Name     string
	Response map[string]any
}

// Result is a single model response. BlockReason is non-empty when the
// provider refused the prompt; Content carries the full model turn so it
// can be echoed back into the conversation during tool loops.
type Result struct {
	Text          string
	FunctionCalls []FunctionCall
	BlockReason   string
	Content       *Content
}

type Client interface {
	Generate(ctx context.Context, systemInstruction string, contents []*Content) (*Result, error)
}
