package llm

import (
	"context"
	"fmt"
	"time"

	"github.com/Shuaib-8/Travel-Copilot/internal/domain"
)

// MockClient is a canned implementation of Client for local runs.
type MockClient struct{}

// NewMockClient creates a new mock LLM client.
func NewMockClient() *MockClient {
	return &MockClient{}
}

// Chat returns a reply that echoes the last user message.
func (m *MockClient) Chat(ctx context.Context, req *ChatRequest) (*ChatResponse, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	content := m.generateMockResponse(req)
	return &ChatResponse{
		ID:           fmt.Sprintf("mock-chat-%d", time.Now().UnixNano()),
		FinishReason: "COMPLETE",
		Message: &AssistantMessage{
			Role:    string(domain.RoleAssistant),
			Content: []ContentBlock{TextBlock(content)},
		},
		Usage: &Usage{Tokens: &TokenCounts{
			InputTokens:  float64(m.estimateTokens(req)),
			OutputTokens: float64(len(content) / 4),
		}},
	}, nil
}

func (m *MockClient) generateMockResponse(req *ChatRequest) string {
	var lastUserMessage string
	for i := len(req.Messages) - 1; i >= 0; i-- {
		if req.Messages[i].Role == domain.RoleUser {
			lastUserMessage = req.Messages[i].Content
			break
		}
	}

	if lastUserMessage == "" {
		return "[MOCK] Please ask me something about travel."
	}
	return fmt.Sprintf("[MOCK] Received your travel question: %q. This is a mock response.", truncate(lastUserMessage, 100))
}

// estimateTokens provides a rough token count estimate.
func (m *MockClient) estimateTokens(req *ChatRequest) int {
	total := 0
	for _, msg := range req.Messages {
		total += len(msg.Content) / 4
	}
	return total
}

// truncate shortens s to at most maxLen runes.
func truncate(s string, maxLen int) string {
	runes := []rune(s)
	if len(runes) <= maxLen {
		return s
	}
	return string(runes[:maxLen]) + "..."
}
