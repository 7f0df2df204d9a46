// Package repository persists server-side session history.
package repository

import (
	"context"
	"time"

	"github.com/Shuaib-8/Travel-Copilot/internal/domain"
)

// Store defines the interface for session persistence.
type Store interface {
	// Session operations
	GetSession(ctx context.Context, sessionID string) (*domain.Session, error)
	GetOrCreateSession(ctx context.Context, sessionID string) (*domain.Session, error)
	DeleteSessionsIdleSince(ctx context.Context, cutoff time.Time) (int64, error)

	// History operations
	AppendHistory(ctx context.Context, sessionID string, entry domain.HistoryEntry) error
	GetHistory(ctx context.Context, sessionID string) ([]domain.HistoryEntry, error)
	ClearHistory(ctx context.Context, sessionID string) error

	// Lifecycle
	Close() error
}

// Ensure SQLiteStore implements Store.
var _ Store = (*SQLiteStore)(nil)
