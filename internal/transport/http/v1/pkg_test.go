package v1

import (
	"context"
	"testing"

	"github.com/Shuaib-8/Travel-Copilot/internal/adapter/llm"
	"github.com/Shuaib-8/Travel-Copilot/internal/config"
	"github.com/Shuaib-8/Travel-Copilot/internal/domain"
	"github.com/Shuaib-8/Travel-Copilot/internal/service"
	"github.com/Shuaib-8/Travel-Copilot/policy"
)

type fakeLLM struct {
	reply    string
	err      error
	requests [][]domain.Message
}

func (f *fakeLLM) Chat(_ context.Context, req *llm.ChatRequest) (*llm.ChatResponse, error) {
	f.requests = append(f.requests, append([]domain.Message(nil), req.Messages...))
	if f.err != nil {
		return nil, f.err
	}
	return &llm.ChatResponse{
		ID:      "test",
		Message: &llm.AssistantMessage{Role: "assistant", Content: []llm.ContentBlock{llm.TextBlock(f.reply)}},
	}, nil
}

func newTestHandler(t *testing.T, client *fakeLLM) *Handler {
	t.Helper()

	cfg := config.NewDefaultConfig()
	cfg.Policy.MaxMessages = 50
	engine, err := policy.NewEngine(context.Background(), policy.DefaultPolicy)
	if err != nil {
		t.Fatalf("NewEngine failed: %v", err)
	}
	svc := service.New(nil, client, cfg, nil)
	return NewHandler(svc, engine, cfg)
}
