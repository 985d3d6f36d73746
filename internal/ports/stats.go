package ports

import "context"

// PlayerStats tracks a learner's progress across games.
type PlayerStats struct {
	GamesPlayed  int `json:"games_played"`
	GamesWon     int `json:"games_won"`
	Achievements int `json:"achievements"`
	HintsShown   int `json:"hints_shown"`
}

// StatsPort records per-player learning progress.
type StatsPort interface {
	// RecordGame folds one finished game into the user's stats.
	RecordGame(ctx context.Context, userID string, won bool, achievements, hintsShown int) error

	// Get returns the user's accumulated stats, zero-valued for new users.
	Get(ctx context.Context, userID string) (PlayerStats, error)
}
