package chatbot

import (
	"context"
	"fmt"

	"google.golang.org/genai"
)

const SearchToolName = "google_search"

type GeminiChatbot struct {
	client *genai.Client
	model  string
}

func NewGeminiChatbot(ctx context.Context, apiKey, model string) (*GeminiChatbot, error) {
	client, err := genai.NewClient(ctx, &genai.ClientConfig{
		APIKey:  apiKey,
		Backend: genai.BackendGeminiAPI,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create gemini client: %w", err)
	}
	return &GeminiChatbot{client: client, model: model}, nil
}

func searchTool() *genai.Tool {
	return &genai.Tool{
		FunctionDeclarations: []*genai.FunctionDeclaration{
			{
				Name:        SearchToolName,
				Description: "Performs a Google search for the given query and returns relevant results.",
				Parameters: &genai.Schema{
					Type: genai.TypeObject,
					Properties: map[string]*genai.Schema{
						"query": {
							Type:        genai.TypeString,
							Description: "The search query.",
						},
					},
					Required: []string{"query"},
				},
			},
		},
	}
}

func safetySettings() []*genai.SafetySetting {
	categories := []genai.HarmCategory{
		genai.HarmCategoryHarassment,
		genai.HarmCategoryHateSpeech,
		genai.HarmCategorySexuallyExplicit,
		genai.HarmCategoryDangerousContent,
	}
	settings := make([]*genai.SafetySetting, 0, len(categories))
	for _, c := range categories {
		settings = append(settings, &genai.SafetySetting{
			Category:  c,
			Threshold: genai.HarmBlockThresholdBlockNone,
		})
	}
	return settings
}

func toProviderContents(contents []*Content) []*genai.Content {
	out := make([]*genai.Content, 0, len(contents))
	for _, c := range contents {
		parts := make([]*genai.Part, 0, len(c.Parts))
		for _, p := range c.Parts {
			switch {
			case p.FunctionCall != nil:
				parts = append(parts, &genai.Part{FunctionCall: &genai.FunctionCall{
					Name: p.FunctionCall.Name,
					Args: p.FunctionCall.Args,
				}})
			case p.FunctionResponse != nil:
				parts = append(parts, &genai.Part{FunctionResponse: &genai.FunctionResponse{
					Name:     p.FunctionResponse.Name,
					Response: p.FunctionResponse.Response,
				}})
			default:
				parts = append(parts, &genai.Part{Text: p.Text})
			}
		}
		out = append(out, &genai.Content{Role: c.Role, Parts: parts})
	}
	return out
}

func fromProviderContent(c *genai.Content) *Content {
	if c == nil {
		return nil
	}
	out := &Content{Role: c.Role}
	for _, p := range c.Parts {
		switch {
		case p.FunctionCall != nil:
			out.Parts = append(out.Parts, Part{FunctionCall: &FunctionCall{
				Name: p.FunctionCall.Name,
				Args: p.FunctionCall.Args,
			}})
		case p.FunctionResponse != nil:
			out.Parts = append(out.Parts, Part{FunctionResponse: &FunctionResponse{
				Name:     p.FunctionResponse.Name,
				Response: p.FunctionResponse.Response,
			}})
		default:
			out.Parts = append(out.Parts, Part{Text: p.Text})
		}
	}
	return out
}

func (g *GeminiChatbot) Generate(ctx context.Context, systemInstruction string, contents []*Content) (*Result, error) {
	config := &genai.GenerateContentConfig{
		SafetySettings: safetySettings(),
		Tools:          []*genai.Tool{searchTool()},
	}
	if systemInstruction != "" {
		config.SystemInstruction = &genai.Content{
			Parts: []*genai.Part{{Text: systemInstruction}},
		}
	}

	resp, err := g.client.Models.GenerateContent(ctx, g.model, toProviderContents(contents), config)
	if err != nil {
		return nil, fmt.Errorf("generate content: %w", err)
	}

	result := &Result{}
	if resp.PromptFeedback != nil && resp.PromptFeedback.BlockReason != "" {
		result.BlockReason = string(resp.PromptFeedback.BlockReason)
		return result, nil
	}

	result.Text = resp.Text()
	for _, fc := range resp.FunctionCalls() {
		result.FunctionCalls = append(result.FunctionCalls, FunctionCall{Name: fc.Name, Args: fc.Args})
	}
	if len(resp.Candidates) > 0 {
		result.Content = fromProviderContent(resp.Candidates[0].Content)
	}
	return result, nil
}
