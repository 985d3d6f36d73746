package domain

import (
	"fmt"
	"math/rand"
)

// NewDeck builds the ordered double deck for the configured rank subset:
// two copies of every (suit, rank) pair.
func NewDeck(rules Rules) []Card {
	deck := make([]Card, 0, rules.DeckSize())
	for _, s := range AllSuits() {
		for _, r := range rules.Ranks() {
			deck = append(deck, Card{Suit: s, Rank: r, Copy: 0})
			deck = append(deck, Card{Suit: s, Rank: r, Copy: 1})
		}
	}
	return deck
}

// ShuffleDeck returns a shuffled copy of the deck using the provided rng.
func ShuffleDeck(deck []Card, rng *rand.Rand) []Card {
	out := make([]Card, len(deck))
	copy(out, deck)
	rng.Shuffle(len(out), func(i, j int) { out[i], out[j] = out[j], out[i] })
	return out
}

// Deal splits a full deck into four equal hands in seat order. The deck is
// consumed by the deal; afterwards only hands and tricks exist.
func Deal(deck []Card) ([4][]Card, error) {
	var hands [4][]Card
	if len(deck)%4 != 0 {
		return hands, fmt.Errorf("%w: deck of %d cards cannot be dealt evenly", ErrInvariant, len(deck))
	}
	per := len(deck) / 4
	for seat := 0; seat < 4; seat++ {
		hands[seat] = append([]Card{}, deck[seat*per:(seat+1)*per]...)
	}
	return hands, nil
}

// ValidateDeal checks double-deck integrity across four hands: every
// (suit, rank) pair of the configured rank subset must appear exactly twice
// and the total count must match the deck size. A violation names the
// offending pair and the observed count.
func ValidateDeal(hands [4][]Card, rules Rules) error {
	type key struct {
		Suit Suit
		Rank Rank
	}

	counts := make(map[key]int)
	total := 0
	for _, hand := range hands {
		for _, c := range hand {
			counts[key{c.Suit, c.Rank}]++
			total++
		}
	}

	if total != rules.DeckSize() {
		return fmt.Errorf("%w: dealt %d cards, want %d", ErrInvariant, total, rules.DeckSize())
	}
	for _, s := range AllSuits() {
		for _, r := range rules.Ranks() {
			if n := counts[key{s, r}]; n != 2 {
				return fmt.Errorf("%w: %s of %s appears %d times, want 2", ErrInvariant, r, s, n)
			}
		}
	}
	return nil
}
