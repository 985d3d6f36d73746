package domain

// Rules carries the rule parameters for one game: the trump suit and the
// configured rank subset. Classification is a pure function of a card and
// the rules, so cards never exist in a half-classified state.
type Rules struct {
	TrumpSuit Suit `json:"trump_suit"`
	WithNines bool `json:"with_nines"`
}

// StandardRules returns the standard 2-vs-2 contract: Diamonds trump,
// 48-card deck with nines.
func StandardRules() Rules {
	return Rules{TrumpSuit: Diamonds, WithNines: true}
}

// Ranks returns the rank subset of the configured deck.
func (r Rules) Ranks() []Rank {
	if r.WithNines {
		return []Rank{Nine, Ten, Jack, Queen, King, Ace}
	}
	return []Rank{Ten, Jack, Queen, King, Ace}
}

// TotalTricks returns the number of tricks in a full game: 12 with nines,
// 10 without.
func (r Rules) TotalTricks() int {
	return len(r.Ranks())
}

// DeckSize returns the number of cards in the double deck.
func (r Rules) DeckSize() int {
	return len(r.Ranks()) * 4 * 2
}

// IsDulle reports whether the card is the designated highest trump,
// the Ten of Hearts.
func (r Rules) IsDulle(c Card) bool {
	return c.Suit == Hearts && c.Rank == Ten
}

// IsMarker reports whether the card is the team marker, the Queen of Clubs.
func (r Rules) IsMarker(c Card) bool {
	return c.Suit == Clubs && c.Rank == Queen
}

// IsFox reports whether the card is the Fox, the Ace of the trump suit.
func (r Rules) IsFox(c Card) bool {
	return c.Suit == r.TrumpSuit && c.Rank == Ace
}

// IsKarlchen reports whether the card is the Jack of Clubs, which earns a
// bonus when it wins the final trick.
func (r Rules) IsKarlchen(c Card) bool {
	return c.Suit == Clubs && c.Rank == Jack
}

// IsTrump reports whether the card belongs to the trump group.
// Classification priority: Dulle, then Queens, then Jacks, then the
// trump suit itself.
func (r Rules) IsTrump(c Card) bool {
	if r.IsDulle(c) {
		return true
	}
	if c.Rank == Queen || c.Rank == Jack {
		return true
	}
	return c.Suit == r.TrumpSuit
}

// TrumpOrder returns the trump strength of a card; lower is stronger.
// The second return is false for plain cards. Both copies of a card share
// one order value, so the beats relation is strict and the first-played
// copy holds a trick against its twin.
func (r Rules) TrumpOrder(c Card) (int, bool) {
	if r.IsDulle(c) {
		return 0, true
	}
	if c.Rank == Queen {
		return 1 + int(c.Suit), true
	}
	if c.Rank == Jack {
		return 5 + int(c.Suit), true
	}
	if c.Suit != r.TrumpSuit {
		return 0, false
	}
	switch c.Rank {
	case Ace:
		return 9, true
	case Ten:
		return 10, true
	case King:
		return 11, true
	default: // Nine
		return 12, true
	}
}

// CompareTrump orders two trump cards: negative when a is stronger,
// positive when b is stronger, zero for the two copies of one card.
func (r Rules) CompareTrump(a, b Card) int {
	ao, aok := r.TrumpOrder(a)
	bo, bok := r.TrumpOrder(b)
	if !aok || !bok {
		return 0
	}
	return ao - bo
}

// Beats reports whether c strictly beats the incumbent winning card of a
// trick. Equal trump strength does not beat, so the earlier-played copy
// keeps the trick. A plain card only competes within the incumbent's suit;
// an off-suit plain card never wins.
func (r Rules) Beats(c, incumbent Card) bool {
	co, cTrump := r.TrumpOrder(c)
	io, iTrump := r.TrumpOrder(incumbent)
	if cTrump && iTrump {
		return co < io
	}
	if cTrump {
		return true
	}
	if iTrump {
		return false
	}
	if c.Suit != incumbent.Suit {
		return false
	}
	return PlainStrength(c.Rank) > PlainStrength(incumbent.Rank)
}
