package bot

import (
	"context"
	"time"

	"doppelkopf/internal/domain"
)

// Agent wraps a Brain with an identity and a human-like thinking delay.
type Agent struct {
	ID         string
	Name       string
	Level      Level
	Strategy   Brain
	ThinkDelay time.Duration
}

// MakeMove waits out the thinking delay and then asks the strategy for
// a card. The context cancels the wait when the match shuts down.
func (a *Agent) MakeMove(ctx context.Context, game *domain.Game, seat int) (domain.Card, error) {
	if a.ThinkDelay > 0 {
		timer := time.NewTimer(a.ThinkDelay)
		defer timer.Stop()
		select {
		case <-timer.C:
		case <-ctx.Done():
			return domain.Card{}, ctx.Err()
		}
	}
	return a.Strategy.SelectCard(game, seat)
}

// Play asks the agent for a card at its own seat, looked up by user ID.
func (a *Agent) Play(ctx context.Context, game *domain.Game) (domain.Card, error) {
	player, ok := game.Players[a.ID]
	if !ok {
		return domain.Card{}, ErrNoLegalMove
	}
	return a.MakeMove(ctx, game, player.Seat)
}
