package domain

import (
	"encoding/json"
	"errors"
	"math/rand"
	"testing"
)

func newSerializableGame(t *testing.T) *Game {
	t.Helper()
	rules := StandardRules()
	deck := ShuffleDeck(NewDeck(rules), rand.New(rand.NewSource(11)))
	hands, err := Deal(deck)
	if err != nil {
		t.Fatalf("Deal failed: %v", err)
	}

	g := &Game{
		ID:      "game-1",
		Rules:   rules,
		Phase:   PhasePlaying,
		Players: make(map[string]*Player),
		Seats:   [4]string{"a", "b", "c", "d"},
		Trick:   NewTrick(0),
		Score:   NewScorecard(),
	}
	for seat, id := range g.Seats {
		g.Players[id] = &Player{UserID: id, Seat: seat, Hand: hands[seat]}
	}
	if err := AssignTeams([]*Player{g.Players["a"], g.Players["b"], g.Players["c"], g.Players["d"]}, rules); err != nil {
		// A random deal can produce any split; force one for the test.
		g.Players["a"].Team = TeamRe
		g.Players["b"].Team = TeamKontra
		g.Players["c"].Team = TeamRe
		g.Players["d"].Team = TeamKontra
	}

	// Move one card from the leader's hand into the trick, as play would.
	lead := g.Players["a"].Hand[0]
	g.Players["a"].Remove(lead)
	if err := g.Trick.Play(0, lead); err != nil {
		t.Fatalf("Play failed: %v", err)
	}
	return g
}

func TestSnapshotRoundTrip(t *testing.T) {
	g := newSerializableGame(t)
	g.Players["b"].Announced = true

	raw, err := json.Marshal(g.ToData())
	if err != nil {
		t.Fatalf("marshal failed: %v", err)
	}
	var data GameStateData
	if err := json.Unmarshal(raw, &data); err != nil {
		t.Fatalf("unmarshal failed: %v", err)
	}

	restored, err := GameFromData(&data)
	if err != nil {
		t.Fatalf("GameFromData failed: %v", err)
	}

	if restored.ID != g.ID || restored.Phase != g.Phase || restored.CurrentSeat != g.CurrentSeat {
		t.Error("game header did not survive the round trip")
	}
	for id, p := range g.Players {
		rp := restored.Players[id]
		if rp == nil {
			t.Fatalf("player %s missing after restore", id)
		}
		if len(rp.Hand) != len(p.Hand) {
			t.Errorf("player %s hand size = %d, want %d", id, len(rp.Hand), len(p.Hand))
		}
		for i, c := range p.Hand {
			if rp.Hand[i] != c {
				t.Errorf("player %s card %d = %v, want %v", id, i, rp.Hand[i], c)
			}
		}
		if rp.Team != p.Team || rp.Announced != p.Announced {
			t.Errorf("player %s team state did not survive", id)
		}
	}

	// The card in the trick must be the same logical card that left the
	// hand, and it must not have been duplicated back into any hand.
	trickCard := restored.Trick.Cards[0].Card
	if trickCard != g.Trick.Cards[0].Card {
		t.Errorf("trick card = %v, want %v", trickCard, g.Trick.Cards[0].Card)
	}
	for id, p := range restored.Players {
		if ContainsCard(p.Hand, trickCard) {
			t.Errorf("card %s owned by both the trick and player %s", trickCard.ID(), id)
		}
	}
}

func TestGameFromDataRejectsDuplicateOwnership(t *testing.T) {
	g := newSerializableGame(t)
	data := g.ToData()

	// Claim the trick's card for a hand as well.
	data.Players[1].Hand = append(data.Players[1].Hand, data.Trick.Cards[0].Card)

	_, err := GameFromData(data)
	if err == nil {
		t.Fatal("expected duplicated card ownership to be rejected")
	}
	if !errors.Is(err, ErrInvariant) {
		t.Errorf("error should wrap ErrInvariant, got %v", err)
	}
}

func TestGameFromDataRejectsBrokenSeats(t *testing.T) {
	cases := []struct {
		name   string
		mutate func(*GameStateData)
	}{
		{"current seat out of range", func(d *GameStateData) { d.CurrentSeat = 9 }},
		{"negative current seat", func(d *GameStateData) { d.CurrentSeat = -1 }},
		{"missing player", func(d *GameStateData) { d.Players = d.Players[:3] }},
		{"player seat out of range", func(d *GameStateData) { d.Players[2].Seat = 7 }},
		{"seat occupied twice", func(d *GameStateData) { d.Players[2].Seat = d.Players[1].Seat }},
		{"seat map disagrees", func(d *GameStateData) { d.Seats[0] = "stranger" }},
		{"trick leader out of range", func(d *GameStateData) { d.Trick.Leader = 4 }},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			data := newSerializableGame(t).ToData()
			tc.mutate(data)
			_, err := GameFromData(data)
			if err == nil {
				t.Fatal("expected the broken snapshot to be rejected")
			}
			if !errors.Is(err, ErrInvariant) {
				t.Errorf("error should wrap ErrInvariant, got %v", err)
			}
		})
	}
}

func TestGameFromDataRejectsUnknownSuit(t *testing.T) {
	g := newSerializableGame(t)
	data := g.ToData()
	data.Players[0].Hand[0].Suit = "cups"

	if _, err := GameFromData(data); err == nil {
		t.Error("expected unknown suit to be rejected")
	}
}
