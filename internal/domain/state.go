package domain

// Phase represents the lifecycle stage of a game.
type Phase string

const (
	// PhaseDealing covers deck construction, the deal and team assignment.
	PhaseDealing Phase = "dealing"
	// PhaseAnnouncements is a pass-through placeholder before play begins;
	// announcements themselves are accepted during play.
	PhaseAnnouncements Phase = "announcements"
	// PhasePlaying is the active trick-by-trick state.
	PhasePlaying Phase = "playing"
	// PhaseScoring is the final tally after the last trick.
	PhaseScoring Phase = "scoring"
	// PhaseFinished is the terminal state.
	PhaseFinished Phase = "finished"
)

// Game owns the complete state of one Doppelkopf game: four fixed seats in
// clockwise order, exactly one current trick, the archive of completed
// tricks and the running scorecard.
type Game struct {
	ID              string
	Rules           Rules
	Phase           Phase
	Players         map[string]*Player // userID -> player
	Seats           [4]string          // seat index -> userID
	CurrentSeat     int                // next seat to act
	Trick           *Trick
	CompletedTricks []CompletedTrick
	Score           *Scorecard
	Result          *GameResult // set once the game reaches scoring
}

// PlayerBySeat returns the player occupying the given seat.
func (g *Game) PlayerBySeat(seat int) *Player {
	if seat < 0 || seat >= len(g.Seats) {
		return nil
	}
	return g.Players[g.Seats[seat]]
}

// CurrentPlayer returns the player whose turn it is.
func (g *Game) CurrentPlayer() *Player {
	return g.PlayerBySeat(g.CurrentSeat)
}

// TrickIndex returns the 0-based index of the current trick.
func (g *Game) TrickIndex() int {
	return len(g.CompletedTricks)
}

// TeamOfSeat returns the internally tracked team of a seat.
func (g *Game) TeamOfSeat(seat int) Team {
	p := g.PlayerBySeat(seat)
	if p == nil {
		return TeamUnknown
	}
	return p.Team
}

// AnnouncedTeams returns the publicly visible team per seat; unannounced
// seats are absent.
func (g *Game) AnnouncedTeams() map[int]Team {
	public := make(map[int]Team)
	for _, p := range g.Players {
		if p.Announced {
			public[p.Seat] = p.Team
		}
	}
	return public
}
