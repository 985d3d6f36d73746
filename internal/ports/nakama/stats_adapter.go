package nakama

import (
	"context"
	"encoding/json"
	"fmt"

	"doppelkopf/internal/ports"

	"github.com/heroiclabs/nakama-common/runtime"
)

const (
	statsCollection = "player_stats"
	statsKey        = "progress_v1"
)

// NakamaStatsAdapter implements ports.StatsPort on Nakama storage.
type NakamaStatsAdapter struct {
	nk runtime.NakamaModule
}

// NewNakamaStatsAdapter creates a new stats adapter.
func NewNakamaStatsAdapter(nk runtime.NakamaModule) *NakamaStatsAdapter {
	return &NakamaStatsAdapter{nk: nk}
}

// RecordGame folds one finished game into the user's stats.
func (a *NakamaStatsAdapter) RecordGame(ctx context.Context, userID string, won bool, achievements, hintsShown int) error {
	stats, err := a.Get(ctx, userID)
	if err != nil {
		return err
	}

	stats.GamesPlayed++
	if won {
		stats.GamesWon++
	}
	stats.Achievements += achievements
	stats.HintsShown += hintsShown

	value, err := json.Marshal(stats)
	if err != nil {
		return fmt.Errorf("failed to marshal player stats: %w", err)
	}

	writes := []*runtime.StorageWrite{
		{
			Collection:      statsCollection,
			Key:             statsKey,
			UserID:          userID,
			Value:           string(value),
			PermissionRead:  runtime.STORAGE_PERMISSION_OWNER_READ,
			PermissionWrite: runtime.STORAGE_PERMISSION_NO_WRITE,
		},
	}
	if _, err := a.nk.StorageWrite(ctx, writes); err != nil {
		return fmt.Errorf("failed to write player stats: %w", err)
	}
	return nil
}

// Get returns the user's accumulated stats, zero-valued for new users.
func (a *NakamaStatsAdapter) Get(ctx context.Context, userID string) (ports.PlayerStats, error) {
	var stats ports.PlayerStats

	reads := []*runtime.StorageRead{
		{
			Collection: statsCollection,
			Key:        statsKey,
			UserID:     userID,
		},
	}
	objects, err := a.nk.StorageRead(ctx, reads)
	if err != nil {
		return stats, fmt.Errorf("failed to read player stats: %w", err)
	}
	if len(objects) == 0 {
		return stats, nil
	}
	if err := json.Unmarshal([]byte(objects[0].Value), &stats); err != nil {
		return stats, fmt.Errorf("failed to unmarshal player stats: %w", err)
	}
	return stats, nil
}

var _ ports.StatsPort = (*NakamaStatsAdapter)(nil)
