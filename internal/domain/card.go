package domain

import "fmt"

// Suit represents a card suit. The declaration order is the Doppelkopf
// suit priority used to rank Queens and Jacks among themselves.
type Suit int

const (
	Clubs Suit = iota
	Spades
	Hearts
	Diamonds
)

func (s Suit) String() string {
	switch s {
	case Clubs:
		return "clubs"
	case Spades:
		return "spades"
	case Hearts:
		return "hearts"
	case Diamonds:
		return "diamonds"
	default:
		return "unknown"
	}
}

// SuitFromString parses the wire/JSON form of a suit.
func SuitFromString(s string) (Suit, error) {
	switch s {
	case "clubs":
		return Clubs, nil
	case "spades":
		return Spades, nil
	case "hearts":
		return Hearts, nil
	case "diamonds":
		return Diamonds, nil
	default:
		return 0, fmt.Errorf("unknown suit %q", s)
	}
}

// AllSuits returns the suits in priority order.
func AllSuits() []Suit {
	return []Suit{Clubs, Spades, Hearts, Diamonds}
}

// Rank represents a card face rank. Only the ranks used by the Doppelkopf
// deck exist; numeric values follow the usual 9..14 convention.
type Rank int

const (
	Nine  Rank = 9
	Ten   Rank = 10
	Jack  Rank = 11
	Queen Rank = 12
	King  Rank = 13
	Ace   Rank = 14
)

func (r Rank) String() string {
	switch r {
	case Nine:
		return "nine"
	case Ten:
		return "ten"
	case Jack:
		return "jack"
	case Queen:
		return "queen"
	case King:
		return "king"
	case Ace:
		return "ace"
	default:
		return "unknown"
	}
}

// Points returns the card point value of the rank. The full double deck
// always totals 240 points.
func (r Rank) Points() int {
	switch r {
	case Ace:
		return 11
	case Ten:
		return 10
	case King:
		return 4
	case Queen:
		return 3
	case Jack:
		return 2
	default:
		return 0
	}
}

// plainLadder is the strength ordering of ranks within a plain suit.
// This is an explicit lookup on purpose: the ladder (Ace > Ten > King >
// Queen > Jack > Nine) does not follow from point values or face order.
var plainLadder = map[Rank]int{
	Nine:  0,
	Jack:  1,
	Queen: 2,
	King:  3,
	Ten:   4,
	Ace:   5,
}

// PlainStrength returns the plain-suit ladder position of a rank.
// Higher means stronger.
func PlainStrength(r Rank) int {
	return plainLadder[r]
}

// Card is a single physical card. The double deck holds two copies of every
// (suit, rank) pair; Copy distinguishes them. Cards are immutable values;
// ownership moves from hand to trick by removal and append, never by copy
// of a shared mutable object.
type Card struct {
	Suit Suit `json:"suit"`
	Rank Rank `json:"rank"`
	Copy int  `json:"copy"`
}

// ID returns the stable identity string of the card, e.g. "queen_clubs_0".
func (c Card) ID() string {
	return fmt.Sprintf("%s_%s_%d", c.Rank, c.Suit, c.Copy)
}

// Points returns the card's point value.
func (c Card) Points() int {
	return c.Rank.Points()
}

func (c Card) String() string {
	return fmt.Sprintf("%s of %s (#%d)", c.Rank, c.Suit, c.Copy+1)
}

// ContainsCard reports whether cards holds the exact physical card c.
func ContainsCard(cards []Card, c Card) bool {
	for _, held := range cards {
		if held == c {
			return true
		}
	}
	return false
}

// FindCardByID returns the card with the given id from cards.
func FindCardByID(cards []Card, id string) (Card, bool) {
	for _, c := range cards {
		if c.ID() == id {
			return c, true
		}
	}
	return Card{}, false
}

// RemoveCard removes one instance of c from hand and returns the updated hand.
func RemoveCard(hand []Card, c Card) []Card {
	updated := make([]Card, 0, len(hand))
	removed := false
	for _, held := range hand {
		if !removed && held == c {
			removed = true
			continue
		}
		updated = append(updated, held)
	}
	return updated
}
