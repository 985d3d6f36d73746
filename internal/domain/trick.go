package domain

// TrickCard is one card played into a trick together with the seat that
// played it.
type TrickCard struct {
	Card Card `json:"card"`
	Seat int  `json:"seat"`
}

// Trick is the ordered accumulation of up to four played cards. The first
// card fixes the obligation for every later seat.
type Trick struct {
	Cards  []TrickCard `json:"cards"`
	Leader int         `json:"leader"`
}

// NewTrick returns an empty trick led by the given seat.
func NewTrick(leader int) *Trick {
	return &Trick{
		Cards:  make([]TrickCard, 0, 4),
		Leader: leader,
	}
}

// Play appends a card to the trick.
func (t *Trick) Play(seat int, c Card) error {
	if t.IsComplete() {
		return ErrTrickFull
	}
	t.Cards = append(t.Cards, TrickCard{Card: c, Seat: seat})
	return nil
}

// IsComplete reports whether all four seats have played.
func (t *Trick) IsComplete() bool {
	return len(t.Cards) == 4
}

// LeadCard returns the first card played, which determines the obligation.
func (t *Trick) LeadCard() (Card, bool) {
	if len(t.Cards) == 0 {
		return Card{}, false
	}
	return t.Cards[0].Card, true
}

// Points returns the summed point value of the cards played so far.
func (t *Trick) Points() int {
	points := 0
	for _, tc := range t.Cards {
		points += tc.Card.Points()
	}
	return points
}

// CardPlayedBy returns the card the given seat played into the trick.
func (t *Trick) CardPlayedBy(seat int) (Card, bool) {
	for _, tc := range t.Cards {
		if tc.Seat == seat {
			return tc.Card, true
		}
	}
	return Card{}, false
}

// CompletedTrick is an archived trick. Once archived it is immutable; the
// recorded winner and points never change.
type CompletedTrick struct {
	Cards  []TrickCard `json:"cards"`
	Winner int         `json:"winner"`
	Points int         `json:"points"`
}

// CompleteTrick freezes a full trick into its archived form.
func CompleteTrick(t *Trick, rules Rules) (CompletedTrick, error) {
	winner, err := TrickWinner(t, rules)
	if err != nil {
		return CompletedTrick{}, err
	}
	return CompletedTrick{
		Cards:  append([]TrickCard{}, t.Cards...),
		Winner: winner,
		Points: t.Points(),
	}, nil
}

// TrickWinner resolves the winning seat of a complete trick.
func TrickWinner(t *Trick, rules Rules) (int, error) {
	if !t.IsComplete() {
		return -1, ErrTrickIncomplete
	}
	tc, ok := CurrentWinningCard(t, rules)
	if !ok {
		return -1, ErrTrickIncomplete
	}
	return tc.Seat, nil
}

// CurrentWinningCard applies the beats relation to a possibly partial
// trick. The bots and the hint triggers use it mid-trick; TrickWinner uses
// it on the full four cards.
func CurrentWinningCard(t *Trick, rules Rules) (TrickCard, bool) {
	if t == nil || len(t.Cards) == 0 {
		return TrickCard{}, false
	}
	winning := t.Cards[0]
	for _, tc := range t.Cards[1:] {
		if rules.Beats(tc.Card, winning.Card) {
			winning = tc
		}
	}
	return winning, true
}

// CurrentWinningSeat returns the seat currently holding the trick.
func CurrentWinningSeat(t *Trick, rules Rules) (int, bool) {
	tc, ok := CurrentWinningCard(t, rules)
	if !ok {
		return -1, false
	}
	return tc.Seat, true
}
