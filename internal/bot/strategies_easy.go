package bot

import (
	"math/rand"

	"doppelkopf/internal/domain"
)

// EasyBot plays a uniformly random legal card. It never reasons about
// teams, points or what has been played.
type EasyBot struct {
	rng *rand.Rand
}

func (b *EasyBot) SelectCard(game *domain.Game, seat int) (domain.Card, error) {
	player := game.PlayerBySeat(seat)
	if player == nil {
		return domain.Card{}, ErrNoLegalMove
	}
	legal := domain.LegalMoves(player.Hand, game.Trick, game.Rules)
	if len(legal) == 0 {
		return domain.Card{}, ErrNoLegalMove
	}
	if b.rng == nil {
		return legal[0], nil
	}
	return legal[b.rng.Intn(len(legal))], nil
}
