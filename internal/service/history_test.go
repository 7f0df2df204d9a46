package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Shuaib-8/Travel-Copilot/internal/config"
	"github.com/Shuaib-8/Travel-Copilot/internal/domain"
	"github.com/Shuaib-8/Travel-Copilot/tests/helpers"
)

func TestTranscriptFromHistory(t *testing.T) {
	assert.Nil(t, TranscriptFromHistory(nil))

	got := TranscriptFromHistory([]domain.HistoryEntry{
		{UserMessage: "What are the best places to visit in Tokyo?", AIResponse: "Here are some great places..."},
	})
	assert.Equal(t, domain.Transcript{
		{Role: domain.RoleSystem, Content: SystemPrompt},
		{Role: domain.RoleUser, Content: "What are the best places to visit in Tokyo?"},
		{Role: domain.RoleAssistant, Content: "Here are some great places..."},
	}, got)
}

func TestGuideSessionBuildsTranscriptFromHistory(t *testing.T) {
	ctx := context.Background()
	db := helpers.NewTestSQLiteStore(t)
	client := replyWith("Based on your interest in Tokyo, I also recommend Kyoto.")
	svc := New(db, client, config.NewDefaultConfig(), nil)

	require.NoError(t, db.AppendHistory(ctx, "s1", domain.HistoryEntry{
		UserMessage: "What are the best places to visit in Tokyo?",
		AIResponse:  "Here are some great places...",
	}))

	turn, err := svc.GuideSession(ctx, "s1", "What about cultural sites?", nil)
	require.NoError(t, err)

	require.Len(t, client.requests, 1)
	assert.Equal(t, []domain.Message{
		{Role: domain.RoleSystem, Content: SystemPrompt},
		{Role: domain.RoleUser, Content: "What are the best places to visit in Tokyo?"},
		{Role: domain.RoleAssistant, Content: "Here are some great places..."},
		{Role: domain.RoleUser, Content: "What about cultural sites?"},
	}, client.requests[0].Messages)

	assert.Equal(t, "Based on your interest in Tokyo, I also recommend Kyoto.", turn.Reply)
	assert.Len(t, turn.Transcript, 5)
	require.Len(t, turn.History, 2)
	assert.Equal(t, "What about cultural sites?", turn.History[1].UserMessage)

	stored, err := db.GetHistory(ctx, "s1")
	require.NoError(t, err)
	require.Len(t, stored, 2)
	assert.Equal(t, turn.Reply, stored[1].AIResponse)
}

func TestGuideSessionNewSession(t *testing.T) {
	ctx := context.Background()
	db := helpers.NewTestSQLiteStore(t)
	client := replyWith("Shibuya")
	svc := New(db, client, config.NewDefaultConfig(), nil)

	turn, err := svc.GuideSession(ctx, "fresh", "Tokyo?", nil)
	require.NoError(t, err)

	require.Len(t, client.requests, 1)
	assert.Len(t, client.requests[0].Messages, 2)
	assert.Len(t, turn.Transcript, 3)
	assert.Len(t, turn.History, 1)
}

func TestGuideSessionExplicitTranscript(t *testing.T) {
	ctx := context.Background()
	db := helpers.NewTestSQLiteStore(t)
	client := replyWith("ok")
	svc := New(db, client, config.NewDefaultConfig(), nil)

	require.NoError(t, db.AppendHistory(ctx, "s1", domain.HistoryEntry{UserMessage: "old", AIResponse: "old"}))

	prior := domain.Transcript{{Role: domain.RoleUser, Content: "from the form"}}
	turn, err := svc.GuideSession(ctx, "s1", "next", prior)
	require.NoError(t, err)

	require.Len(t, client.requests, 1)
	assert.Equal(t, "from the form", client.requests[0].Messages[0].Content)
	assert.Len(t, turn.Transcript, 3)
}

func TestGuideSessionStoresErrorReply(t *testing.T) {
	ctx := context.Background()
	db := helpers.NewTestSQLiteStore(t)
	svc := New(db, failWith(errors.New("unauthorized")), config.NewDefaultConfig(), nil)

	turn, err := svc.GuideSession(ctx, "s1", "Tokyo?", nil)
	require.NoError(t, err)

	assert.Equal(t, "Error getting travel guidance: unauthorized", turn.Reply)
	assert.Len(t, turn.Transcript, 1)

	stored, err := db.GetHistory(ctx, "s1")
	require.NoError(t, err)
	require.Len(t, stored, 1)
	assert.True(t, IsErrorReply(stored[0].AIResponse))
}

func TestClearSession(t *testing.T) {
	ctx := context.Background()
	db := helpers.NewTestSQLiteStore(t)
	svc := New(db, replyWith("ok"), config.NewDefaultConfig(), nil)

	_, err := svc.GuideSession(ctx, "s1", "Tokyo?", nil)
	require.NoError(t, err)
	require.NoError(t, svc.ClearSession(ctx, "s1"))

	history, err := svc.History(ctx, "s1")
	require.NoError(t, err)
	assert.Empty(t, history)
}

func TestSessionOperationsWithoutStore(t *testing.T) {
	ctx := context.Background()
	svc := newTestService(replyWith("ok"))

	_, err := svc.GuideSession(ctx, "s1", "Tokyo?", nil)
	assert.ErrorIs(t, err, ErrNoStore)
	_, err = svc.History(ctx, "s1")
	assert.ErrorIs(t, err, ErrNoStore)
	_, err = svc.EnsureSession(ctx, "s1")
	assert.ErrorIs(t, err, ErrNoStore)
	assert.ErrorIs(t, svc.ClearSession(ctx, "s1"), ErrNoStore)
}

func TestSweepIdleSessions(t *testing.T) {
	ctx := context.Background()
	db := helpers.NewTestSQLiteStore(t)
	cfg := config.NewDefaultConfig()
	cfg.Session.MaxAge = time.Hour
	svc := New(db, replyWith("ok"), cfg, nil)

	require.NoError(t, db.AppendHistory(ctx, "stale", domain.HistoryEntry{
		UserMessage: "q", AIResponse: "a", CreatedAt: time.Now().Add(-2 * time.Hour),
	}))
	require.NoError(t, db.AppendHistory(ctx, "active", domain.HistoryEntry{UserMessage: "q", AIResponse: "a"}))

	svc.sweepIdleSessions(ctx)

	stale, err := db.GetSession(ctx, "stale")
	require.NoError(t, err)
	assert.Nil(t, stale)
	active, err := db.GetSession(ctx, "active")
	require.NoError(t, err)
	assert.NotNil(t, active)
}

func TestRunSessionSweeperStopsOnCancel(t *testing.T) {
	db := helpers.NewTestSQLiteStore(t)
	cfg := config.NewDefaultConfig()
	cfg.Session.SweepInterval = 5 * time.Millisecond
	svc := New(db, replyWith("ok"), cfg, nil)

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan struct{})
	go func() {
		svc.RunSessionSweeper(ctx)
		close(done)
	}()

	time.Sleep(20 * time.Millisecond)
	cancel()

	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("sweeper did not stop")
	}
}
