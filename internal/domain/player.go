package domain

// Team is the hidden side a player belongs to for one game.
type Team string

const (
	TeamUnknown Team = ""
	TeamRe      Team = "re"
	TeamKontra  Team = "kontra"
)

// Opponents returns the opposing team.
func (t Team) Opponents() Team {
	switch t {
	case TeamRe:
		return TeamKontra
	case TeamKontra:
		return TeamRe
	default:
		return TeamUnknown
	}
}

// Player holds the domain state for one seat. The hand only shrinks after
// the deal; the team is assigned once from the dealt cards.
type Player struct {
	UserID    string `json:"user_id"`
	Seat      int    `json:"seat"` // 0-based, clockwise
	Hand      []Card `json:"hand"`
	Team      Team   `json:"team"`
	TricksWon int    `json:"tricks_won"`
	Announced bool   `json:"announced"` // team made public by the player
}

// CardByID returns the card with the given id from the player's hand.
func (p *Player) CardByID(id string) (Card, bool) {
	return FindCardByID(p.Hand, id)
}

// Remove takes one instance of c out of the hand.
func (p *Player) Remove(c Card) {
	p.Hand = RemoveCard(p.Hand, c)
}

// PublicTeam returns the player's team as visible to the other seats:
// TeamUnknown until the player has announced.
func (p *Player) PublicTeam() Team {
	if p.Announced {
		return p.Team
	}
	return TeamUnknown
}
