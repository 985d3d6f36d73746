package config

import (
	"encoding/json"
	"fmt"
	"os"
	"sync"
	"time"

	"doppelkopf/internal/domain"
)

type GameConfig struct {
	// WithNines selects the 48-card contract; false deals 40 cards.
	WithNines bool   `json:"with_nines"`
	TrumpSuit string `json:"trump_suit"`
	// BotThinkDelayMillis configures the simulated thinking wait per difficulty.
	BotThinkDelayMillis map[string]int `json:"bot_think_delay_millis"`
	// BotAutoFillDelaySeconds configures how many seconds to wait before adding a bot to a solo human lobby.
	BotAutoFillDelaySeconds int `json:"bot_auto_fill_delay_seconds"`
	MaxHintsPerGame         int `json:"max_hints_per_game"`
	MaxHintsPerTrick        int `json:"max_hints_per_trick"`
}

var (
	cfg      *GameConfig
	loadOnce sync.Once
	loadErr  error
)

// LoadGameConfig loads the game configuration from the given path.
func LoadGameConfig(path string) error {
	loadOnce.Do(func() {
		data, err := os.ReadFile(path)
		if err != nil {
			loadErr = fmt.Errorf("failed to read game config: %w", err)
			return
		}

		var c GameConfig
		if err := json.Unmarshal(data, &c); err != nil {
			loadErr = fmt.Errorf("failed to unmarshal game config: %w", err)
			return
		}
		cfg = &c
	})
	return loadErr
}

// GetGameConfig returns the global game configuration.
func GetGameConfig() *GameConfig {
	return cfg
}

// GetRules builds the rule contract from the configuration, falling
// back to the standard game when no config is loaded.
func GetRules() domain.Rules {
	rules := domain.StandardRules()
	if cfg == nil {
		return rules
	}
	rules.WithNines = cfg.WithNines
	if cfg.TrumpSuit != "" {
		if suit, err := domain.SuitFromString(cfg.TrumpSuit); err == nil {
			rules.TrumpSuit = suit
		}
	}
	return rules
}

// GetBotThinkDelay returns the thinking delay for a difficulty string.
func GetBotThinkDelay(difficulty string) time.Duration {
	if cfg != nil {
		if ms, ok := cfg.BotThinkDelayMillis[difficulty]; ok && ms >= 0 {
			return time.Duration(ms) * time.Millisecond
		}
	}
	return 900 * time.Millisecond
}

// GetBotAutoFillDelaySeconds returns the lobby auto-fill delay.
func GetBotAutoFillDelaySeconds() int {
	if cfg == nil || cfg.BotAutoFillDelaySeconds <= 0 {
		return 10
	}
	return cfg.BotAutoFillDelaySeconds
}

// GetMaxHintsPerGame returns the per-game hint cap.
func GetMaxHintsPerGame() int {
	if cfg == nil || cfg.MaxHintsPerGame <= 0 {
		return 8
	}
	return cfg.MaxHintsPerGame
}

// GetMaxHintsPerTrick returns the per-trick hint cap.
func GetMaxHintsPerTrick() int {
	if cfg == nil || cfg.MaxHintsPerTrick <= 0 {
		return 1
	}
	return cfg.MaxHintsPerTrick
}
