package domain

import "fmt"

// AssignTeams derives the hidden teams from card possession: every holder
// of a Queen of Clubs is Re, everyone else Kontra. The standard contract
// requires a 2-vs-2 split; anything else means the deal is corrupt.
func AssignTeams(players []*Player, rules Rules) error {
	re := 0
	for _, p := range players {
		p.Team = TeamKontra
		for _, c := range p.Hand {
			if rules.IsMarker(c) {
				p.Team = TeamRe
				break
			}
		}
		if p.Team == TeamRe {
			re++
		}
	}
	if re != 2 {
		return fmt.Errorf("%w: team split is %d-vs-%d, want 2-vs-2", ErrInvariant, re, len(players)-re)
	}
	return nil
}

// IsKnownTeammate reports whether, from the viewer's perspective, the other
// player is publicly known to be on the viewer's team. The viewer always
// knows their own side from their own hand, but the other seat counts only
// once it has announced. Absent an announcement the answer is false, which
// deliberately suppresses some legitimate team-assist advice.
func IsKnownTeammate(viewer, other *Player) bool {
	if viewer == nil || other == nil || viewer.Seat == other.Seat {
		return false
	}
	return other.Announced && other.Team == viewer.Team
}
