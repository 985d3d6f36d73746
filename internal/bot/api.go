package bot

import (
	"errors"
	"fmt"

	"doppelkopf/internal/domain"
)

// Level selects how strongly a bot plays.
type Level int

const (
	LevelEasy Level = iota
	LevelMedium
	LevelHard
)

func (l Level) String() string {
	switch l {
	case LevelEasy:
		return "easy"
	case LevelMedium:
		return "medium"
	case LevelHard:
		return "hard"
	default:
		return "unknown"
	}
}

// ParseLevel maps a difficulty string to a Level.
func ParseLevel(s string) (Level, error) {
	switch s {
	case "easy":
		return LevelEasy, nil
	case "medium":
		return LevelMedium, nil
	case "hard":
		return LevelHard, nil
	default:
		return LevelEasy, fmt.Errorf("unknown bot level: %q", s)
	}
}

// ErrNoLegalMove is returned when the seat has no playable card, which
// only happens when the brain is consulted out of turn.
var ErrNoLegalMove = errors.New("bot: no legal move available")

// Brain is the interface that all bot strategies must implement.
type Brain interface {
	SelectCard(game *domain.Game, seat int) (domain.Card, error)
}
