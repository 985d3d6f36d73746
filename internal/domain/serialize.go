package domain

import "fmt"

// GameStateData is the plain serializable snapshot of a Game: ids, enums
// and nested card data only, no behavior and no cycles. Cards are value
// types keyed by (suit, rank, copy), so a card referenced by the current
// trick is the same logical card that left a hand; FromData rebuilds and
// checks that ownership table instead of relying on reference identity.
type GameStateData struct {
	ID              string               `json:"id"`
	Rules           Rules                `json:"rules"`
	Phase           Phase                `json:"phase"`
	Seats           [4]string            `json:"seats"`
	CurrentSeat     int                  `json:"current_seat"`
	Players         []PlayerData         `json:"players"`
	Trick           *TrickData           `json:"trick,omitempty"`
	CompletedTricks []CompletedTrickData `json:"completed_tricks"`
	Score           *Scorecard           `json:"score,omitempty"`
	Result          *GameResult          `json:"result,omitempty"`
}

// PlayerData is the snapshot form of a player.
type PlayerData struct {
	UserID    string     `json:"user_id"`
	Seat      int        `json:"seat"`
	Hand      []CardData `json:"hand"`
	Team      Team       `json:"team"`
	TricksWon int        `json:"tricks_won"`
	Announced bool       `json:"announced"`
}

// CardData is the snapshot form of a card.
type CardData struct {
	Suit string `json:"suit"`
	Rank int    `json:"rank"`
	Copy int    `json:"copy"`
}

// TrickCardData pairs a snapshot card with the seat that played it.
type TrickCardData struct {
	Card CardData `json:"card"`
	Seat int      `json:"seat"`
}

// TrickData is the snapshot form of the current trick.
type TrickData struct {
	Cards  []TrickCardData `json:"cards"`
	Leader int             `json:"leader"`
}

// CompletedTrickData is the snapshot form of an archived trick.
type CompletedTrickData struct {
	Cards  []TrickCardData `json:"cards"`
	Winner int             `json:"winner"`
	Points int             `json:"points"`
}

func cardToData(c Card) CardData {
	return CardData{Suit: c.Suit.String(), Rank: int(c.Rank), Copy: c.Copy}
}

func cardFromData(d CardData) (Card, error) {
	suit, err := SuitFromString(d.Suit)
	if err != nil {
		return Card{}, err
	}
	rank := Rank(d.Rank)
	switch rank {
	case Nine, Ten, Jack, Queen, King, Ace:
	default:
		return Card{}, fmt.Errorf("unknown rank %d", d.Rank)
	}
	if d.Copy != 0 && d.Copy != 1 {
		return Card{}, fmt.Errorf("copy index %d out of range", d.Copy)
	}
	return Card{Suit: suit, Rank: rank, Copy: d.Copy}, nil
}

func trickCardsToData(cards []TrickCard) []TrickCardData {
	out := make([]TrickCardData, 0, len(cards))
	for _, tc := range cards {
		out = append(out, TrickCardData{Card: cardToData(tc.Card), Seat: tc.Seat})
	}
	return out
}

func trickCardsFromData(data []TrickCardData) ([]TrickCard, error) {
	out := make([]TrickCard, 0, len(data))
	for _, tcd := range data {
		c, err := cardFromData(tcd.Card)
		if err != nil {
			return nil, err
		}
		out = append(out, TrickCard{Card: c, Seat: tcd.Seat})
	}
	return out, nil
}

// ToData produces the snapshot of a game.
func (g *Game) ToData() *GameStateData {
	data := &GameStateData{
		ID:          g.ID,
		Rules:       g.Rules,
		Phase:       g.Phase,
		Seats:       g.Seats,
		CurrentSeat: g.CurrentSeat,
		Score:       g.Score,
		Result:      g.Result,
	}

	for seat := 0; seat < len(g.Seats); seat++ {
		p := g.PlayerBySeat(seat)
		if p == nil {
			continue
		}
		hand := make([]CardData, 0, len(p.Hand))
		for _, c := range p.Hand {
			hand = append(hand, cardToData(c))
		}
		data.Players = append(data.Players, PlayerData{
			UserID:    p.UserID,
			Seat:      p.Seat,
			Hand:      hand,
			Team:      p.Team,
			TricksWon: p.TricksWon,
			Announced: p.Announced,
		})
	}

	if g.Trick != nil {
		data.Trick = &TrickData{
			Cards:  trickCardsToData(g.Trick.Cards),
			Leader: g.Trick.Leader,
		}
	}

	for _, ct := range g.CompletedTricks {
		data.CompletedTricks = append(data.CompletedTricks, CompletedTrickData{
			Cards:  trickCardsToData(ct.Cards),
			Winner: ct.Winner,
			Points: ct.Points,
		})
	}

	return data
}

// GameFromData reconstructs a game from its snapshot. Every live card
// (hands plus the current trick) must be owned by exactly one holder; a
// duplicate is a corruption of the snapshot, as is any seat index
// outside the four-player table.
func GameFromData(data *GameStateData) (*Game, error) {
	if err := validateSnapshotSeats(data); err != nil {
		return nil, err
	}
	g := &Game{
		ID:          data.ID,
		Rules:       data.Rules,
		Phase:       data.Phase,
		Seats:       data.Seats,
		CurrentSeat: data.CurrentSeat,
		Players:     make(map[string]*Player),
		Score:       data.Score,
		Result:      data.Result,
	}
	if g.Score == nil {
		g.Score = NewScorecard()
	}

	owners := make(map[Card]string)
	claim := func(c Card, owner string) error {
		if prev, taken := owners[c]; taken {
			return fmt.Errorf("%w: card %s owned by both %s and %s", ErrInvariant, c.ID(), prev, owner)
		}
		owners[c] = owner
		return nil
	}

	for _, pd := range data.Players {
		hand := make([]Card, 0, len(pd.Hand))
		for _, cd := range pd.Hand {
			c, err := cardFromData(cd)
			if err != nil {
				return nil, fmt.Errorf("player %s: %w", pd.UserID, err)
			}
			if err := claim(c, pd.UserID); err != nil {
				return nil, err
			}
			hand = append(hand, c)
		}
		g.Players[pd.UserID] = &Player{
			UserID:    pd.UserID,
			Seat:      pd.Seat,
			Hand:      hand,
			Team:      pd.Team,
			TricksWon: pd.TricksWon,
			Announced: pd.Announced,
		}
	}

	if data.Trick != nil {
		cards, err := trickCardsFromData(data.Trick.Cards)
		if err != nil {
			return nil, fmt.Errorf("current trick: %w", err)
		}
		for _, tc := range cards {
			if err := claim(tc.Card, "trick"); err != nil {
				return nil, err
			}
		}
		g.Trick = &Trick{Cards: cards, Leader: data.Trick.Leader}
	}

	for i, ctd := range data.CompletedTricks {
		cards, err := trickCardsFromData(ctd.Cards)
		if err != nil {
			return nil, fmt.Errorf("completed trick %d: %w", i, err)
		}
		g.CompletedTricks = append(g.CompletedTricks, CompletedTrick{
			Cards:  cards,
			Winner: ctd.Winner,
			Points: ctd.Points,
		})
	}

	return g, nil
}

// validateSnapshotSeats rejects snapshots whose seat bookkeeping cannot
// index the four-seat table. CurrentSeat is read unchecked by the turn
// logic, so a bad value here would otherwise surface as a panic later.
func validateSnapshotSeats(data *GameStateData) error {
	if data.CurrentSeat < 0 || data.CurrentSeat > 3 {
		return fmt.Errorf("%w: current seat %d out of range", ErrInvariant, data.CurrentSeat)
	}
	if len(data.Players) != 4 {
		return fmt.Errorf("%w: snapshot holds %d players, want 4", ErrInvariant, len(data.Players))
	}
	var taken [4]bool
	for _, pd := range data.Players {
		if pd.Seat < 0 || pd.Seat > 3 {
			return fmt.Errorf("%w: player %s seat %d out of range", ErrInvariant, pd.UserID, pd.Seat)
		}
		if taken[pd.Seat] {
			return fmt.Errorf("%w: seat %d occupied twice", ErrInvariant, pd.Seat)
		}
		taken[pd.Seat] = true
		if pd.UserID == "" || data.Seats[pd.Seat] != pd.UserID {
			return fmt.Errorf("%w: seat %d maps to %q but player is %q", ErrInvariant, pd.Seat, data.Seats[pd.Seat], pd.UserID)
		}
	}
	if data.Trick != nil {
		if data.Trick.Leader < 0 || data.Trick.Leader > 3 {
			return fmt.Errorf("%w: trick leader %d out of range", ErrInvariant, data.Trick.Leader)
		}
		for _, tcd := range data.Trick.Cards {
			if tcd.Seat < 0 || tcd.Seat > 3 {
				return fmt.Errorf("%w: trick card seat %d out of range", ErrInvariant, tcd.Seat)
			}
		}
	}
	for i, ctd := range data.CompletedTricks {
		if ctd.Winner < 0 || ctd.Winner > 3 {
			return fmt.Errorf("%w: completed trick %d winner %d out of range", ErrInvariant, i, ctd.Winner)
		}
	}
	return nil
}
