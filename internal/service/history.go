package service

import (
	"context"
	"errors"
	"fmt"

	"go.uber.org/zap"

	"github.com/Shuaib-8/Travel-Copilot/internal/domain"
)

// ErrNoStore is returned by session operations when the Service has no store.
var ErrNoStore = errors.New("session store not configured")

// TranscriptFromHistory expands stored turns into a transcript prefixed with
// the system prompt. It returns nil when there are no turns.
func TranscriptFromHistory(entries []domain.HistoryEntry) domain.Transcript {
	if len(entries) == 0 {
		return nil
	}
	transcript := make(domain.Transcript, 0, 1+2*len(entries))
	transcript = append(transcript, NewTranscript()...)
	for _, e := range entries {
		transcript = append(transcript,
			domain.Message{Role: domain.RoleUser, Content: e.UserMessage},
			domain.Message{Role: domain.RoleAssistant, Content: e.AIResponse},
		)
	}
	return transcript
}

// History returns the stored turns of a session.
func (s *Service) History(ctx context.Context, sessionID string) ([]domain.HistoryEntry, error) {
	if s.store == nil {
		return nil, ErrNoStore
	}
	entries, err := s.store.GetHistory(ctx, sessionID)
	if err != nil {
		return nil, fmt.Errorf("failed to get history: %w", err)
	}
	return entries, nil
}

// SessionTurn is the result of a guidance call made on behalf of a session.
type SessionTurn struct {
	Reply      string
	Transcript domain.Transcript
	History    []domain.HistoryEntry
}

// GuideSession answers userMessage for a server-side session. When prior is
// nil the transcript is rebuilt from the stored history. The turn is stored
// whatever the outcome of the remote call, so error replies show up in the
// conversation like any other reply.
func (s *Service) GuideSession(ctx context.Context, sessionID, userMessage string, prior domain.Transcript) (*SessionTurn, error) {
	if s.store == nil {
		return nil, ErrNoStore
	}

	history, err := s.History(ctx, sessionID)
	if err != nil {
		return nil, err
	}
	if prior == nil {
		prior = TranscriptFromHistory(history)
	}

	reply, transcript := s.GetGuidance(ctx, userMessage, prior)

	entry := domain.HistoryEntry{
		UserMessage: userMessage,
		AIResponse:  reply,
		CreatedAt:   s.now(),
	}
	if err := s.store.AppendHistory(ctx, sessionID, entry); err != nil {
		s.logger.Warn("failed to store session history", zap.String("session_id", sessionID), zap.Error(err))
	} else {
		history = append(history, entry)
	}

	return &SessionTurn{Reply: reply, Transcript: transcript, History: history}, nil
}

// EnsureSession creates the session row if it does not exist yet.
func (s *Service) EnsureSession(ctx context.Context, sessionID string) (*domain.Session, error) {
	if s.store == nil {
		return nil, ErrNoStore
	}
	session, err := s.store.GetOrCreateSession(ctx, sessionID)
	if err != nil {
		return nil, fmt.Errorf("failed to get session: %w", err)
	}
	return session, nil
}

// ClearSession drops the stored history of a session.
func (s *Service) ClearSession(ctx context.Context, sessionID string) error {
	if s.store == nil {
		return ErrNoStore
	}
	if err := s.store.ClearHistory(ctx, sessionID); err != nil {
		return fmt.Errorf("failed to clear history: %w", err)
	}
	return nil
}
