package domain

import (
	"context"
)

// SnapshotKey names one of the logical documents persisted per player.
type SnapshotKey string

const (
	KeyPlayer       SnapshotKey = "player-data"
	KeyQuestHistory SnapshotKey = "quest-history"
	KeyAchievements SnapshotKey = "achievements"
)

var SnapshotKeys = []SnapshotKey{KeyPlayer, KeyQuestHistory, KeyAchievements}

type SnapshotStore interface {
	// Load returns the stored document, or ErrSnapshotNotFound when absent.
	Load(ctx context.Context, playerID string, key SnapshotKey) ([]byte, error)

	// Save replaces the whole document stored under key.
	Save(ctx context.Context, playerID string, key SnapshotKey, data []byte) error

	// Delete removes every document of the player.
	Delete(ctx context.Context, playerID string) error
}

type AccountRepository interface {
	// Create persists a new account. Duplicate emails yield ErrEmailAlreadyExists.
	Create(ctx context.Context, account *Account) error

	// GetByEmail looks up an account by its normalized email.
	GetByEmail(ctx context.Context, email string) (*Account, error)

	// GetByID retrieves an account by its unique identifier.
	GetByID(ctx context.Context, id string) (*Account, error)
}
