package llm

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Shuaib-8/Travel-Copilot/internal/domain"
)

func TestCohereClientChat(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/v2/chat" {
			t.Fatalf("unexpected path: %s", r.URL.Path)
		}
		if r.Method != http.MethodPost {
			t.Fatalf("unexpected method: %s", r.Method)
		}

		var body cohereChatRequest
		if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
			t.Fatalf("decode request: %v", err)
		}
		if body.Model != "command-a-03-2025" || body.Temperature != 0.1 || len(body.Messages) != 2 {
			t.Fatalf("unexpected request: %+v", body)
		}

		w.Header().Set("Content-Type", "application/json")
		fmt.Fprint(w, `{"id":"c1","finish_reason":"COMPLETE","message":{"role":"assistant","content":[{"type":"text","text":"Visit Kyoto"}]},"usage":{"billed_units":{"input_tokens":5,"output_tokens":2}}}`)
	}))
	defer server.Close()

	client := NewCohereClient(server.URL, "", time.Second)
	resp, err := client.Chat(context.Background(), &ChatRequest{
		Model:       "command-a-03-2025",
		Temperature: 0.1,
		Messages: []domain.Message{
			{Role: domain.RoleSystem, Content: "be helpful"},
			{Role: domain.RoleUser, Content: "where to go?"},
		},
	})
	require.NoError(t, err)

	text, ok := resp.Text()
	assert.True(t, ok)
	assert.Equal(t, "Visit Kyoto", text)
	assert.Equal(t, "COMPLETE", resp.FinishReason)
	require.NotNil(t, resp.Usage)
	assert.Equal(t, float64(5), resp.Usage.BilledUnits.InputTokens)
}

func TestCohereClientChatEmptyContent(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		fmt.Fprint(w, `{"id":"c1","finish_reason":"COMPLETE","message":{"role":"assistant","content":[]}}`)
	}))
	defer server.Close()

	client := NewCohereClient(server.URL, "", time.Second)
	resp, err := client.Chat(context.Background(), &ChatRequest{Model: "m"})
	require.NoError(t, err)

	_, ok := resp.Text()
	assert.False(t, ok)
}

func TestCohereClientChatError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusTooManyRequests)
		fmt.Fprint(w, `{"id":"e1","message":"rate limit exceeded"}`)
	}))
	defer server.Close()

	client := NewCohereClient(server.URL, "", time.Second)
	_, err := client.Chat(context.Background(), &ChatRequest{Model: "m"})
	require.Error(t, err)
	assert.Equal(t, "LLM API error [429]: rate limit exceeded", err.Error())
}

func TestCohereClientChatErrorRawBody(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadGateway)
		fmt.Fprint(w, "bad gateway")
	}))
	defer server.Close()

	client := NewCohereClient(server.URL, "", time.Second)
	_, err := client.Chat(context.Background(), &ChatRequest{Model: "m"})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "bad gateway")
}

func TestCohereClientSetHeaders(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if got := r.Header.Get("Authorization"); got != "Bearer secret" {
			t.Fatalf("unexpected Authorization header: %q", got)
		}
		w.Header().Set("Content-Type", "application/json")
		fmt.Fprint(w, `{"id":"c1","message":{"role":"assistant","content":[{"type":"text","text":"ok"}]}}`)
	}))
	defer server.Close()

	client := NewCohereClient(server.URL+"/", "secret", time.Second)
	_, err := client.Chat(context.Background(), &ChatRequest{Model: "m"})
	require.NoError(t, err)
}

func TestChatResponseText(t *testing.T) {
	text := "hello"
	tests := []struct {
		name string
		resp *ChatResponse
		want string
		ok   bool
	}{
		{name: "nil response", resp: nil},
		{name: "no message", resp: &ChatResponse{}},
		{name: "no content", resp: &ChatResponse{Message: &AssistantMessage{}}},
		{name: "block without text", resp: &ChatResponse{Message: &AssistantMessage{Content: []ContentBlock{{Type: "tool_call"}}}}},
		{name: "text block", resp: &ChatResponse{Message: &AssistantMessage{Content: []ContentBlock{{Type: "text", Text: &text}}}}, want: "hello", ok: true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := tt.resp.Text()
			assert.Equal(t, tt.ok, ok)
			assert.Equal(t, tt.want, got)
		})
	}
}
