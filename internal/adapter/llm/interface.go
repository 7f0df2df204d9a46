// Package llm provides an abstraction for chat completion providers.
package llm

import (
	"context"

	"github.com/Shuaib-8/Travel-Copilot/internal/domain"
)

// Client defines the chat completion operation used by the guidance service.
type Client interface {
	// Chat sends the whole conversation and returns the provider's reply.
	Chat(ctx context.Context, req *ChatRequest) (*ChatResponse, error)
}

// ChatRequest is a provider-neutral chat completion request.
type ChatRequest struct {
	Model       string
	Messages    []domain.Message
	Temperature float64
}

// ChatResponse mirrors the Cohere v2 chat response. Message is nil when the
// provider returned no assistant message.
type ChatResponse struct {
	ID           string            `json:"id"`
	FinishReason string            `json:"finish_reason,omitempty"`
	Message      *AssistantMessage `json:"message,omitempty"`
	Usage        *Usage            `json:"usage,omitempty"`
}

// AssistantMessage is the generated message of a chat response.
type AssistantMessage struct {
	Role    string         `json:"role"`
	Content []ContentBlock `json:"content,omitempty"`
}

// ContentBlock is one element of the assistant message content. Text is nil
// for blocks that carry no text (tool calls, citations).
type ContentBlock struct {
	Type string  `json:"type"`
	Text *string `json:"text,omitempty"`
}

// Usage represents token usage information.
type Usage struct {
	BilledUnits *TokenCounts `json:"billed_units,omitempty"`
	Tokens      *TokenCounts `json:"tokens,omitempty"`
}

// TokenCounts holds input and output token counts.
type TokenCounts struct {
	InputTokens  float64 `json:"input_tokens"`
	OutputTokens float64 `json:"output_tokens"`
}

// Text returns the text of the first content block and whether it was present.
func (r *ChatResponse) Text() (string, bool) {
	if r == nil || r.Message == nil {
		return "", false
	}
	if len(r.Message.Content) == 0 {
		return "", false
	}
	first := r.Message.Content[0]
	if first.Text == nil {
		return "", false
	}
	return *first.Text, true
}

// TextBlock builds a text content block.
func TextBlock(text string) ContentBlock {
	return ContentBlock{Type: "text", Text: &text}
}

// Ensure the concrete clients implement Client.
var (
	_ Client = (*CohereClient)(nil)
	_ Client = (*OpenAIClient)(nil)
	_ Client = (*MockClient)(nil)
)
