package llm

import (
	"fmt"
	"strings"
	"time"
)

const (
	ProviderCohere = "cohere"
	ProviderOpenAI = "openai"
	ProviderMock   = "mock"
)

// Options selects and configures a provider.
type Options struct {
	Provider string
	BaseURL  string
	APIKey   string
	Timeout  time.Duration
}

// NewClient creates the Client for opts.Provider. An empty provider selects Cohere.
func NewClient(opts Options) (Client, error) {
	switch strings.ToLower(strings.TrimSpace(opts.Provider)) {
	case "", ProviderCohere:
		return NewCohereClient(opts.BaseURL, opts.APIKey, opts.Timeout), nil
	case ProviderOpenAI:
		return NewOpenAIClient(opts.BaseURL, opts.APIKey, opts.Timeout), nil
	case ProviderMock:
		return NewMockClient(), nil
	default:
		return nil, fmt.Errorf("unknown llm provider %q", opts.Provider)
	}
}
