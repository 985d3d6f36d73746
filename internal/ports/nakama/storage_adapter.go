package nakama

import (
	"context"
	"encoding/json"
	"fmt"

	"doppelkopf/internal/domain"
	"doppelkopf/internal/ports"

	"github.com/heroiclabs/nakama-common/runtime"
)

const (
	savedGameCollection = "saved_games"
	savedGameKey        = "current_v1"
)

// NakamaSnapshotStore implements ports.SnapshotStore on Nakama storage.
// Snapshots are private to their owner.
type NakamaSnapshotStore struct {
	nk runtime.NakamaModule
}

// NewNakamaSnapshotStore creates a new snapshot store adapter.
func NewNakamaSnapshotStore(nk runtime.NakamaModule) *NakamaSnapshotStore {
	return &NakamaSnapshotStore{nk: nk}
}

// Save stores the snapshot as the user's current game.
func (a *NakamaSnapshotStore) Save(ctx context.Context, userID string, state *domain.GameStateData) error {
	if userID == "" {
		return fmt.Errorf("userID is required")
	}
	value, err := json.Marshal(state)
	if err != nil {
		return fmt.Errorf("failed to marshal game snapshot: %w", err)
	}

	writes := []*runtime.StorageWrite{
		{
			Collection:      savedGameCollection,
			Key:             savedGameKey,
			UserID:          userID,
			Value:           string(value),
			PermissionRead:  runtime.STORAGE_PERMISSION_OWNER_READ,
			PermissionWrite: runtime.STORAGE_PERMISSION_NO_WRITE,
		},
	}
	if _, err := a.nk.StorageWrite(ctx, writes); err != nil {
		return fmt.Errorf("failed to write game snapshot: %w", err)
	}
	return nil
}

// Load returns the user's current snapshot, or ports.ErrNoSnapshot.
func (a *NakamaSnapshotStore) Load(ctx context.Context, userID string) (*domain.GameStateData, error) {
	reads := []*runtime.StorageRead{
		{
			Collection: savedGameCollection,
			Key:        savedGameKey,
			UserID:     userID,
		},
	}
	objects, err := a.nk.StorageRead(ctx, reads)
	if err != nil {
		return nil, fmt.Errorf("failed to read game snapshot: %w", err)
	}
	if len(objects) == 0 {
		return nil, ports.ErrNoSnapshot
	}

	var state domain.GameStateData
	if err := json.Unmarshal([]byte(objects[0].Value), &state); err != nil {
		return nil, fmt.Errorf("failed to unmarshal game snapshot: %w", err)
	}
	return &state, nil
}

// Delete removes the user's snapshot.
func (a *NakamaSnapshotStore) Delete(ctx context.Context, userID string) error {
	deletes := []*runtime.StorageDelete{
		{
			Collection: savedGameCollection,
			Key:        savedGameKey,
			UserID:     userID,
		},
	}
	if err := a.nk.StorageDelete(ctx, deletes); err != nil {
		return fmt.Errorf("failed to delete game snapshot: %w", err)
	}
	return nil
}

var _ ports.SnapshotStore = (*NakamaSnapshotStore)(nil)
