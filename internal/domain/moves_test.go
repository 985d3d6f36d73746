package domain

import "testing"

func TestLegalMoves(t *testing.T) {
	rules := StandardRules()

	heartsNine := Card{Suit: Hearts, Rank: Nine}
	heartsKing := Card{Suit: Hearts, Rank: King}
	clubsAce := Card{Suit: Clubs, Rank: Ace}
	clubsTen := Card{Suit: Clubs, Rank: Ten}
	diamondsKing := Card{Suit: Diamonds, Rank: King}
	heartsJack := Card{Suit: Hearts, Rank: Jack}

	tests := []struct {
		name     string
		hand     []Card
		lead     *Card
		expected []Card
	}{
		{
			name:     "leading allows the whole hand",
			hand:     []Card{heartsNine, clubsAce, diamondsKing},
			lead:     nil,
			expected: []Card{heartsNine, clubsAce, diamondsKing},
		},
		{
			name:     "plain lead obliges the exact suit",
			hand:     []Card{heartsNine, heartsKing, clubsAce, clubsTen},
			lead:     &Card{Suit: Hearts, Rank: Ace},
			expected: []Card{heartsNine, heartsKing},
		},
		{
			name: "trump of the raw lead suit does not satisfy a plain lead",
			// The Jack of Hearts is trump, so holding it plus clubs means
			// no hearts obligation can be met.
			hand:     []Card{heartsJack, clubsAce},
			lead:     &Card{Suit: Hearts, Rank: Ace},
			expected: []Card{heartsJack, clubsAce},
		},
		{
			name:     "trump lead obliges trump",
			hand:     []Card{heartsJack, clubsAce},
			lead:     &Card{Suit: Diamonds, Rank: Nine},
			expected: []Card{heartsJack},
		},
		{
			name:     "void in lead suit and trump frees the hand",
			hand:     []Card{clubsAce, clubsTen},
			lead:     &Card{Suit: Spades, Rank: Ace},
			expected: []Card{clubsAce, clubsTen},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			trick := NewTrick(0)
			if tt.lead != nil {
				if err := trick.Play(0, *tt.lead); err != nil {
					t.Fatalf("Play failed: %v", err)
				}
			}

			got := LegalMoves(tt.hand, trick, rules)
			if len(got) != len(tt.expected) {
				t.Fatalf("LegalMoves returned %v, want %v", got, tt.expected)
			}
			for i, c := range tt.expected {
				if got[i] != c {
					t.Errorf("legal move %d = %v, want %v", i, got[i], c)
				}
			}

			wantFollow := len(tt.expected) < len(tt.hand)
			if follow := MustFollowSuit(tt.hand, trick, rules); follow != wantFollow {
				t.Errorf("MustFollowSuit = %v, want %v", follow, wantFollow)
			}
		})
	}
}

func TestLegalMovesEmptyHand(t *testing.T) {
	if got := LegalMoves(nil, NewTrick(0), StandardRules()); got != nil {
		t.Errorf("expected no legal moves for empty hand, got %v", got)
	}
}
