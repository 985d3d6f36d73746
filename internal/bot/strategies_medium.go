package bot

import (
	"doppelkopf/internal/domain"
)

// MediumBot applies a small set of heuristics: lead from strength,
// duck when the partner already holds the trick, otherwise win as
// cheaply as possible.
type MediumBot struct{}

func (b *MediumBot) SelectCard(game *domain.Game, seat int) (domain.Card, error) {
	player := game.PlayerBySeat(seat)
	if player == nil {
		return domain.Card{}, ErrNoLegalMove
	}
	legal := domain.LegalMoves(player.Hand, game.Trick, game.Rules)
	if len(legal) == 0 {
		return domain.Card{}, ErrNoLegalMove
	}
	if len(legal) == 1 {
		return legal[0], nil
	}

	rules := game.Rules

	// Leading: put pressure on with the strongest card available.
	winning, trickOpen := domain.CurrentWinningCard(game.Trick, rules)
	if !trickOpen {
		return strongestCard(rules, legal), nil
	}

	// Partner holds the trick: throw the cheapest card.
	if game.TeamOfSeat(winning.Seat) == player.Team && winning.Seat != seat {
		return weakestCard(rules, legal), nil
	}

	// Take the trick with the weakest card that still wins.
	var taker domain.Card
	canTake := false
	for _, c := range legal {
		if !rules.Beats(c, winning.Card) {
			continue
		}
		if !canTake || stronger(rules, taker, c) {
			taker = c
			canTake = true
		}
	}
	if canTake {
		return taker, nil
	}

	// Cannot win: give up as little as possible.
	return weakestCard(rules, legal), nil
}

// stronger reports whether a outranks b in raw playing strength.
// Cross-suit plain cards have no real order in a trick, so rank
// strength ties are broken by point value.
func stronger(rules domain.Rules, a, b domain.Card) bool {
	aTrump := rules.IsTrump(a)
	bTrump := rules.IsTrump(b)
	if aTrump != bTrump {
		return aTrump
	}
	if aTrump {
		return rules.CompareTrump(a, b) > 0
	}
	sa, sb := domain.PlainStrength(a.Rank), domain.PlainStrength(b.Rank)
	if sa != sb {
		return sa > sb
	}
	return a.Points() > b.Points()
}

func strongestCard(rules domain.Rules, cards []domain.Card) domain.Card {
	best := cards[0]
	for _, c := range cards[1:] {
		if stronger(rules, c, best) {
			best = c
		}
	}
	return best
}

func weakestCard(rules domain.Rules, cards []domain.Card) domain.Card {
	worst := cards[0]
	for _, c := range cards[1:] {
		if stronger(rules, worst, c) {
			worst = c
		}
	}
	return worst
}
