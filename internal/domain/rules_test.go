package domain

import "testing"

func TestTrumpClassification(t *testing.T) {
	rules := StandardRules()

	tests := []struct {
		name  string
		card  Card
		trump bool
	}{
		{"Ten of Hearts is the highest trump", Card{Suit: Hearts, Rank: Ten}, true},
		{"Queens are trump", Card{Suit: Spades, Rank: Queen}, true},
		{"Jacks are trump", Card{Suit: Hearts, Rank: Jack}, true},
		{"Trump suit cards are trump", Card{Suit: Diamonds, Rank: Nine}, true},
		{"Trump suit ace is trump", Card{Suit: Diamonds, Rank: Ace}, true},
		{"Plain ace is not trump", Card{Suit: Clubs, Rank: Ace}, false},
		{"Plain nine is not trump", Card{Suit: Spades, Rank: Nine}, false},
		{"Ten of Spades is not trump", Card{Suit: Spades, Rank: Ten}, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := rules.IsTrump(tt.card); got != tt.trump {
				t.Errorf("IsTrump(%v) = %v, want %v", tt.card, got, tt.trump)
			}
		})
	}
}

func TestTrumpOrderIsTotalAcrossGroups(t *testing.T) {
	rules := StandardRules()

	dulle := Card{Suit: Hearts, Rank: Ten}
	queens := []Card{
		{Suit: Clubs, Rank: Queen}, {Suit: Spades, Rank: Queen},
		{Suit: Hearts, Rank: Queen}, {Suit: Diamonds, Rank: Queen},
	}
	jacks := []Card{
		{Suit: Clubs, Rank: Jack}, {Suit: Spades, Rank: Jack},
		{Suit: Hearts, Rank: Jack}, {Suit: Diamonds, Rank: Jack},
	}
	plainsOfTrump := []Card{
		{Suit: Diamonds, Rank: Ace}, {Suit: Diamonds, Rank: Ten},
		{Suit: Diamonds, Rank: King}, {Suit: Diamonds, Rank: Nine},
	}

	for _, q := range queens {
		if rules.CompareTrump(dulle, q) >= 0 {
			t.Errorf("dulle should outrank %v", q)
		}
	}
	for _, q := range queens {
		for _, j := range jacks {
			if rules.CompareTrump(q, j) >= 0 {
				t.Errorf("%v should outrank %v", q, j)
			}
		}
	}
	for _, j := range jacks {
		for _, p := range plainsOfTrump {
			if rules.CompareTrump(j, p) >= 0 {
				t.Errorf("%v should outrank %v", j, p)
			}
		}
	}

	// Antisymmetry over the whole ladder.
	ladder := append([]Card{dulle}, queens...)
	ladder = append(ladder, jacks...)
	ladder = append(ladder, plainsOfTrump...)
	for i, a := range ladder {
		for _, b := range ladder[i+1:] {
			if rules.CompareTrump(a, b) >= 0 || rules.CompareTrump(b, a) <= 0 {
				t.Errorf("ordering of %v and %v is not antisymmetric", a, b)
			}
		}
	}
}

func TestBeats(t *testing.T) {
	rules := StandardRules()

	tests := []struct {
		name       string
		challenger Card
		incumbent  Card
		expected   bool
	}{
		{"trump beats plain ace", Card{Suit: Diamonds, Rank: Nine}, Card{Suit: Clubs, Rank: Ace}, true},
		{"plain never beats trump", Card{Suit: Clubs, Rank: Ace}, Card{Suit: Diamonds, Rank: Nine}, false},
		{"stronger trump wins", Card{Suit: Clubs, Rank: Queen}, Card{Suit: Diamonds, Rank: Jack}, true},
		{"weaker trump loses", Card{Suit: Diamonds, Rank: Jack}, Card{Suit: Clubs, Rank: Queen}, false},
		{"twin copy does not beat", Card{Suit: Clubs, Rank: Queen, Copy: 1}, Card{Suit: Clubs, Rank: Queen, Copy: 0}, false},
		{"ace tops ten within plain suit", Card{Suit: Spades, Rank: Ace}, Card{Suit: Spades, Rank: Ten}, true},
		{"ten tops king within plain suit", Card{Suit: Spades, Rank: Ten}, Card{Suit: Spades, Rank: King}, true},
		{"off-suit plain never wins", Card{Suit: Clubs, Rank: Ace}, Card{Suit: Spades, Rank: Nine}, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := rules.Beats(tt.challenger, tt.incumbent); got != tt.expected {
				t.Errorf("Beats(%v, %v) = %v, want %v", tt.challenger, tt.incumbent, got, tt.expected)
			}
		})
	}
}

func TestTrickWinner(t *testing.T) {
	rules := StandardRules()

	tests := []struct {
		name   string
		plays  []Card
		winner int // seat index, plays are seats 0..3 in order
	}{
		{
			// Plain-suit ladder decides, not raw point value: the ace tops
			// the ten even though both are worth double digits.
			name: "plain suit ladder",
			plays: []Card{
				{Suit: Spades, Rank: Nine},
				{Suit: Spades, Rank: Ace},
				{Suit: Spades, Rank: King},
				{Suit: Spades, Rank: Ten},
			},
			winner: 1,
		},
		{
			name: "lone trump takes a trick of fat aces",
			plays: []Card{
				{Suit: Clubs, Rank: Ace},
				{Suit: Clubs, Rank: Ten},
				{Suit: Diamonds, Rank: Nine},
				{Suit: Spades, Rank: Ace},
			},
			winner: 2,
		},
		{
			name: "strongest of four trumps wins regardless of position",
			plays: []Card{
				{Suit: Diamonds, Rank: Ace},
				{Suit: Hearts, Rank: Jack},
				{Suit: Spades, Rank: Queen},
				{Suit: Diamonds, Rank: Jack},
			},
			winner: 2,
		},
		{
			name: "ten of hearts wins a hearts trick as trump",
			plays: []Card{
				{Suit: Hearts, Rank: Nine},
				{Suit: Hearts, Rank: Ace},
				{Suit: Hearts, Rank: King},
				{Suit: Hearts, Rank: Ten},
			},
			winner: 3,
		},
		{
			name: "first copy holds against its twin",
			plays: []Card{
				{Suit: Clubs, Rank: Queen, Copy: 0},
				{Suit: Clubs, Rank: Queen, Copy: 1},
				{Suit: Diamonds, Rank: Nine},
				{Suit: Diamonds, Rank: King},
			},
			winner: 0,
		},
		{
			name: "off-suit ace does not win a plain trick",
			plays: []Card{
				{Suit: Spades, Rank: King},
				{Suit: Clubs, Rank: Ace},
				{Suit: Spades, Rank: Nine},
				{Suit: Clubs, Rank: Ten},
			},
			winner: 0,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			trick := NewTrick(0)
			for seat, c := range tt.plays {
				if err := trick.Play(seat, c); err != nil {
					t.Fatalf("Play failed: %v", err)
				}
			}
			winner, err := TrickWinner(trick, rules)
			if err != nil {
				t.Fatalf("TrickWinner failed: %v", err)
			}
			if winner != tt.winner {
				t.Errorf("winner = seat %d, want seat %d", winner, tt.winner)
			}
		})
	}
}

func TestTrickWinnerIncomplete(t *testing.T) {
	rules := StandardRules()
	trick := NewTrick(0)
	trick.Play(0, Card{Suit: Spades, Rank: Ace})

	if _, err := TrickWinner(trick, rules); err == nil {
		t.Error("expected error for incomplete trick")
	}
	if seat, ok := CurrentWinningSeat(trick, rules); !ok || seat != 0 {
		t.Errorf("CurrentWinningSeat = %d, %v; want 0, true", seat, ok)
	}
}
