package bot

import (
	"fmt"
	"math/rand"
	"time"

	"doppelkopf/internal/config"
)

// NewBrain creates a new AI brain for the given level.
func NewBrain(level Level, rng *rand.Rand) (Brain, error) {
	switch level {
	case LevelEasy:
		return &EasyBot{rng: rng}, nil
	case LevelMedium:
		return &MediumBot{}, nil
	case LevelHard:
		return &HardBot{}, nil
	default:
		return nil, fmt.Errorf("unknown bot level: %d", level)
	}
}

// NewAgent builds an agent for a pool bot, resolving its difficulty and
// thinking delay from the identity and game configuration. Harder bots
// take longer to "think".
func NewAgent(userID string) (*Agent, error) {
	level := LevelMedium
	name := userID
	if identity, ok := GetBotConfig(userID); ok {
		level = identity.Level()
		name = identity.DisplayName
	}

	brain, err := NewBrain(level, rand.New(rand.NewSource(time.Now().UnixNano())))
	if err != nil {
		return nil, err
	}
	return &Agent{
		ID:         userID,
		Name:       name,
		Level:      level,
		Strategy:   brain,
		ThinkDelay: config.GetBotThinkDelay(level.String()),
	}, nil
}
