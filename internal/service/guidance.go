package service

import (
	"context"
	"fmt"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/Shuaib-8/Travel-Copilot/internal/adapter/llm"
	"github.com/Shuaib-8/Travel-Copilot/internal/domain"
)

// NewTranscript returns a transcript holding only the system prompt.
func NewTranscript() domain.Transcript {
	return domain.Transcript{{Role: domain.RoleSystem, Content: SystemPrompt}}
}

// GetGuidance appends userMessage to a copy of prior, asks the model and
// appends its reply. A nil prior starts a new conversation. prior is never
// modified.
//
// A failed remote call does not return an error: the reply is the error
// text and the transcript is a fresh system-only transcript, discarding the
// user message and prior history.
func (s *Service) GetGuidance(ctx context.Context, userMessage string, prior domain.Transcript) (string, domain.Transcript) {
	transcript := prior.Clone()
	if transcript == nil {
		transcript = NewTranscript()
	}
	transcript = append(transcript, domain.Message{Role: domain.RoleUser, Content: userMessage})

	reply, err := s.complete(ctx, transcript)
	if err != nil {
		return ErrorPrefix + err.Error(), NewTranscript()
	}

	transcript = append(transcript, domain.Message{Role: domain.RoleAssistant, Content: reply})
	return reply, transcript
}

// complete performs the remote call and reply extraction. Panics raised by
// the client are returned as errors so that every failure has one shape.
func (s *Service) complete(ctx context.Context, transcript domain.Transcript) (reply string, err error) {
	model := s.config.LLM.Model
	if model == "" {
		model = DefaultModel
	}
	start := time.Now()

	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("%v", r)
		}
		fields := []zap.Field{
			zap.String("model", model),
			zap.Int("messages", len(transcript)),
			zap.Duration("latency", time.Since(start)),
		}
		if err != nil {
			s.logger.Warn("travel guidance call failed", append(fields, zap.Error(err))...)
			return
		}
		s.logger.Info("travel guidance served", fields...)
	}()

	if s.config.LLM.Timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, s.config.LLM.Timeout)
		defer cancel()
	}

	resp, err := s.llmClient.Chat(ctx, &llm.ChatRequest{
		Model:       model,
		Messages:    transcript,
		Temperature: Temperature,
	})
	if err != nil {
		return "", err
	}

	text, ok := resp.Text()
	if !ok {
		s.logger.Debug("reply carried no text, using fallback")
		return FallbackResponse, nil
	}
	return strings.TrimSpace(text), nil
}

// IsErrorReply reports whether reply was produced by a failed remote call.
func IsErrorReply(reply string) bool {
	return strings.HasPrefix(reply, ErrorPrefix)
}
