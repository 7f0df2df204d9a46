package llm

import (
	"context"
	"net/http"
	"time"

	openaiapi "github.com/sashabaranov/go-openai"
)

// OpenAIClient adapts the OpenAI chat completions API to Client.
type OpenAIClient struct {
	api *openaiapi.Client
}

// NewOpenAIClient creates a new OpenAI client. An empty baseURL uses the
// public OpenAI endpoint.
func NewOpenAIClient(baseURL, apiKey string, timeout time.Duration) *OpenAIClient {
	cfg := openaiapi.DefaultConfig(apiKey)
	if baseURL != "" {
		cfg.BaseURL = baseURL
	}
	cfg.HTTPClient = &http.Client{Timeout: timeout}
	return &OpenAIClient{
		api: openaiapi.NewClientWithConfig(cfg),
	}
}

// Chat sends a chat completion request and maps the first choice into a
// ChatResponse. A response without choices has a nil Message; a choice
// without content (e.g. a refusal) has no content blocks.
func (c *OpenAIClient) Chat(ctx context.Context, req *ChatRequest) (*ChatResponse, error) {
	messages := make([]openaiapi.ChatCompletionMessage, 0, len(req.Messages))
	for _, m := range req.Messages {
		messages = append(messages, openaiapi.ChatCompletionMessage{
			Role:    string(m.Role),
			Content: m.Content,
		})
	}

	resp, err := c.api.CreateChatCompletion(ctx, openaiapi.ChatCompletionRequest{
		Model:       req.Model,
		Messages:    messages,
		Temperature: float32(req.Temperature),
	})
	if err != nil {
		return nil, err
	}

	out := &ChatResponse{ID: resp.ID}
	if resp.Usage.TotalTokens > 0 {
		out.Usage = &Usage{Tokens: &TokenCounts{
			InputTokens:  float64(resp.Usage.PromptTokens),
			OutputTokens: float64(resp.Usage.CompletionTokens),
		}}
	}
	if len(resp.Choices) == 0 {
		return out, nil
	}

	choice := resp.Choices[0]
	out.FinishReason = string(choice.FinishReason)
	out.Message = &AssistantMessage{Role: choice.Message.Role}
	if choice.Message.Content != "" {
		out.Message.Content = []ContentBlock{TextBlock(choice.Message.Content)}
	}
	return out, nil
}
