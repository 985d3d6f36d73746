package domain

// LegalMoves computes the subset of the hand that may legally be played
// into the trick. Leading allows everything. A trump lead obliges trump; a
// plain lead obliges cards of that exact suit that are not themselves trump
// (a trump of the same raw suit does not satisfy the obligation). A player
// holding nothing that matches may play anything.
//
// This is the single obligation implementation; validation, the bots and
// the hint triggers all call it.
func LegalMoves(hand []Card, t *Trick, rules Rules) []Card {
	if len(hand) == 0 {
		return nil
	}
	lead, ok := leadOf(t)
	if !ok {
		return append([]Card{}, hand...)
	}

	var matching []Card
	if rules.IsTrump(lead) {
		for _, c := range hand {
			if rules.IsTrump(c) {
				matching = append(matching, c)
			}
		}
	} else {
		for _, c := range hand {
			if c.Suit == lead.Suit && !rules.IsTrump(c) {
				matching = append(matching, c)
			}
		}
	}

	if len(matching) > 0 {
		return matching
	}
	return append([]Card{}, hand...)
}

// MustFollowSuit reports whether the obligation restricts the hand, i.e.
// the legal set is a strict subset of it.
func MustFollowSuit(hand []Card, t *Trick, rules Rules) bool {
	return len(LegalMoves(hand, t, rules)) < len(hand)
}

// IsLegalMove reports whether the given card may be played from the hand.
func IsLegalMove(hand []Card, t *Trick, rules Rules, c Card) bool {
	return ContainsCard(LegalMoves(hand, t, rules), c)
}

func leadOf(t *Trick) (Card, bool) {
	if t == nil {
		return Card{}, false
	}
	return t.LeadCard()
}
