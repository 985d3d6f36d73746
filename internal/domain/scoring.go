package domain

import "fmt"

// AchievementKind identifies a per-trick bonus achievement.
type AchievementKind string

const (
	// AchievementFoxCaught fires when a trick containing the Fox is won by
	// the team opposing whoever played it.
	AchievementFoxCaught AchievementKind = "fox_caught"
	// AchievementKarlchen fires when the final trick is won with the Jack
	// of Clubs by the player of that very card.
	AchievementKarlchen AchievementKind = "karlchen"
	// AchievementDoppelkopf fires for any single trick worth 40 or more
	// points.
	AchievementDoppelkopf AchievementKind = "doppelkopf"
)

// doppelkopfTrickPoints is the threshold for the high-value trick bonus.
const doppelkopfTrickPoints = 40

// Achievement records one earned bonus with its context.
type Achievement struct {
	Kind       AchievementKind `json:"kind"`
	Team       Team            `json:"team"`
	Seat       int             `json:"seat"`
	TrickIndex int             `json:"trick_index"`
}

// BonusKind identifies a margin-based flag from the final tally.
type BonusKind string

const (
	BonusUnder90 BonusKind = "under_90"
	BonusUnder60 BonusKind = "under_60"
	BonusUnder30 BonusKind = "under_30"
	BonusSchwarz BonusKind = "schwarz"
)

// Scorecard accumulates team points, trick counts and achievements as
// tricks complete. It is the incremental view; FinalResult derives the
// terminal one from it and the two always agree.
type Scorecard struct {
	Points       map[Team]int  `json:"points"`
	Tricks       map[Team]int  `json:"tricks"`
	Achievements []Achievement `json:"achievements"`
}

// NewScorecard returns an empty scorecard.
func NewScorecard() *Scorecard {
	return &Scorecard{
		Points: map[Team]int{TeamRe: 0, TeamKontra: 0},
		Tricks: map[Team]int{TeamRe: 0, TeamKontra: 0},
	}
}

// RecordTrick books a completed trick onto the scorecard and evaluates the
// per-trick achievements. It returns the achievements the trick earned.
// trickIndex is the position of the trick in the archive.
func (s *Scorecard) RecordTrick(g *Game, ct CompletedTrick, trickIndex int) []Achievement {
	winnerTeam := g.TeamOfSeat(ct.Winner)
	s.Points[winnerTeam] += ct.Points
	s.Tricks[winnerTeam]++

	var earned []Achievement

	for _, tc := range ct.Cards {
		if !g.Rules.IsFox(tc.Card) {
			continue
		}
		if g.TeamOfSeat(tc.Seat) != winnerTeam {
			earned = append(earned, Achievement{
				Kind:       AchievementFoxCaught,
				Team:       winnerTeam,
				Seat:       ct.Winner,
				TrickIndex: trickIndex,
			})
		}
	}

	if trickIndex == g.Rules.TotalTricks()-1 {
		if winning, ok := winningCardOf(ct); ok && g.Rules.IsKarlchen(winning.Card) && winning.Seat == ct.Winner {
			earned = append(earned, Achievement{
				Kind:       AchievementKarlchen,
				Team:       winnerTeam,
				Seat:       ct.Winner,
				TrickIndex: trickIndex,
			})
		}
	}

	if ct.Points >= doppelkopfTrickPoints {
		earned = append(earned, Achievement{
			Kind:       AchievementDoppelkopf,
			Team:       winnerTeam,
			Seat:       ct.Winner,
			TrickIndex: trickIndex,
		})
	}

	s.Achievements = append(s.Achievements, earned...)
	return earned
}

// winningCardOf recovers which played card took an archived trick.
func winningCardOf(ct CompletedTrick) (TrickCard, bool) {
	for _, tc := range ct.Cards {
		if tc.Seat == ct.Winner {
			return tc, true
		}
	}
	return TrickCard{}, false
}

// RebuildScorecard re-derives a scorecard from the archived tricks alone.
// Re-deriving is deterministic and must match the incrementally maintained
// card exactly.
func RebuildScorecard(g *Game) *Scorecard {
	card := NewScorecard()
	for i, ct := range g.CompletedTricks {
		card.RecordTrick(g, ct, i)
	}
	return card
}

// GameResult is the final tally of a completed game.
type GameResult struct {
	Winner       Team          `json:"winner"`
	Points       map[Team]int  `json:"points"`
	Bonuses      []BonusKind   `json:"bonuses"`
	Achievements []Achievement `json:"achievements"`
	GameValue    int           `json:"game_value"`
}

// FinalResult computes the terminal score of a game whose tricks have all
// been archived. Re needs 121 points; Kontra wins the 120-120 tie. The game
// value is one base point plus one per margin bonus and per achievement.
func FinalResult(g *Game) (*GameResult, error) {
	if len(g.CompletedTricks) != g.Rules.TotalTricks() {
		return nil, fmt.Errorf("%w: %d of %d tricks archived", ErrInvariant, len(g.CompletedTricks), g.Rules.TotalTricks())
	}

	winner := TeamKontra
	if g.Score.Points[TeamRe] >= 121 {
		winner = TeamRe
	}
	loser := winner.Opponents()

	var bonuses []BonusKind
	loserPoints := g.Score.Points[loser]
	if loserPoints < 90 {
		bonuses = append(bonuses, BonusUnder90)
	}
	if loserPoints < 60 {
		bonuses = append(bonuses, BonusUnder60)
	}
	if loserPoints < 30 {
		bonuses = append(bonuses, BonusUnder30)
	}
	if g.Score.Tricks[loser] == 0 {
		bonuses = append(bonuses, BonusSchwarz)
	}

	return &GameResult{
		Winner:       winner,
		Points:       map[Team]int{TeamRe: g.Score.Points[TeamRe], TeamKontra: g.Score.Points[TeamKontra]},
		Bonuses:      bonuses,
		Achievements: append([]Achievement{}, g.Score.Achievements...),
		GameValue:    1 + len(bonuses) + len(g.Score.Achievements),
	}, nil
}
