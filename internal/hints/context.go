package hints

import (
	"doppelkopf/internal/domain"
)

// Context is the read-only view a trigger evaluates against. Pre-move
// evaluations set Candidate and Trick; post-trick evaluations set
// Completed. Triggers never see more than the viewer could: the only
// team knowledge beyond the viewer's own is AnnouncedTeams.
type Context struct {
	Rules          domain.Rules
	Seat           int
	Hand           []domain.Card
	Team           domain.Team
	AnnouncedTeams map[int]domain.Team

	Candidate domain.Card
	Trick     *domain.Trick
	Completed *domain.CompletedTrick

	TrickIndex  int
	TotalTricks int
}

// KnownTeammate reports whether the given seat is publicly known to be
// on the viewer's team. Without an announcement the answer is always
// false, even when the engine internally knows better.
func (c *Context) KnownTeammate(seat int) bool {
	if seat == c.Seat || c.Team == "" {
		return false
	}
	return c.AnnouncedTeams[seat] == c.Team
}

// LegalMoves returns the viewer's legal cards for the current trick.
func (c *Context) LegalMoves() []domain.Card {
	return domain.LegalMoves(c.Hand, c.Trick, c.Rules)
}

// IsFinalTrick reports whether the current trick is the last of the game.
func (c *Context) IsFinalTrick() bool {
	return c.TrickIndex == c.TotalTricks-1
}
