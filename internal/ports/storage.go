package ports

import (
	"context"
	"errors"

	"doppelkopf/internal/domain"
)

// ErrNoSnapshot is returned when a user has no saved game.
var ErrNoSnapshot = errors.New("no saved game snapshot")

// SnapshotStore persists game state snapshots so a learner can resume
// an interrupted game.
type SnapshotStore interface {
	// Save stores the snapshot as the user's current game, replacing
	// any previous one.
	Save(ctx context.Context, userID string, state *domain.GameStateData) error

	// Load returns the user's current snapshot, or ErrNoSnapshot.
	Load(ctx context.Context, userID string) (*domain.GameStateData, error)

	// Delete removes the user's snapshot. Deleting a missing snapshot
	// is not an error.
	Delete(ctx context.Context, userID string) error
}
