// Package service implements the travel guidance use cases.
package service

import (
	"time"

	"go.uber.org/zap"

	"github.com/Shuaib-8/Travel-Copilot/internal/adapter/llm"
	"github.com/Shuaib-8/Travel-Copilot/internal/config"
	"github.com/Shuaib-8/Travel-Copilot/internal/repository"
)

// Service holds the collaborators shared by every request. It keeps no
// per-conversation state.
type Service struct {
	store     repository.Store
	llmClient llm.Client
	config    *config.Config
	logger    *zap.Logger
	now       func() time.Time
}

// New creates a Service. store may be nil for callers that only use
// GetGuidance (e.g. the one-shot CLI).
func New(store repository.Store, llmClient llm.Client, cfg *config.Config, logger *zap.Logger) *Service {
	if cfg == nil {
		cfg = config.NewDefaultConfig()
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Service{
		store:     store,
		llmClient: llmClient,
		config:    cfg,
		logger:    logger,
		now:       time.Now,
	}
}
