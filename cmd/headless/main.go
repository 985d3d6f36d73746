package main

import (
	"context"
	"flag"
	"math/rand"
	"os"
	"time"

	"doppelkopf/internal/app"
	"doppelkopf/internal/bot"
	"doppelkopf/internal/config"
	"doppelkopf/internal/domain"

	"github.com/joho/godotenv"
	"go.uber.org/zap"
)

// The headless runner plays AI-only games against the real orchestrator.
// It exists for soak-testing rule changes and bot heuristics without a
// Nakama server.
func main() {
	games := flag.Int("games", 10, "number of games to play")
	level := flag.String("level", "medium", "bot difficulty: easy, medium or hard")
	seed := flag.Int64("seed", 0, "rng seed, 0 means time-based")
	delay := flag.Duration("delay", 0, "per-move thinking delay")
	configPath := flag.String("config", "", "optional game config JSON path")
	flag.Parse()

	if err := godotenv.Load(); err != nil && !os.IsNotExist(err) {
		panic(err)
	}

	logger, err := zap.NewProduction()
	if err != nil {
		panic(err)
	}
	defer logger.Sync()

	if *configPath != "" {
		if err := config.LoadGameConfig(*configPath); err != nil {
			logger.Warn("could not load game config", zap.Error(err))
		}
	}

	botLevel, err := bot.ParseLevel(*level)
	if err != nil {
		logger.Fatal("invalid level", zap.Error(err))
	}

	if *seed == 0 {
		*seed = time.Now().UnixNano()
	}
	rng := rand.New(rand.NewSource(*seed))
	logger.Info("starting headless run",
		zap.Int("games", *games),
		zap.String("level", botLevel.String()),
		zap.Int64("seed", *seed),
	)

	ctx := context.Background()
	wins := map[domain.Team]int{}
	achievements := 0

	for i := 0; i < *games; i++ {
		result, err := playOneGame(ctx, rng, botLevel, *delay)
		if err != nil {
			logger.Error("game failed", zap.Int("game", i), zap.Error(err))
			continue
		}
		wins[result.Winner]++
		achievements += len(result.Achievements)
		logger.Info("game finished",
			zap.Int("game", i),
			zap.String("winner", string(result.Winner)),
			zap.Int("re_points", result.Points[domain.TeamRe]),
			zap.Int("kontra_points", result.Points[domain.TeamKontra]),
			zap.Int("game_value", result.GameValue),
		)
	}

	logger.Info("headless run complete",
		zap.Int("re_wins", wins[domain.TeamRe]),
		zap.Int("kontra_wins", wins[domain.TeamKontra]),
		zap.Int("achievements", achievements),
	)
}

func playOneGame(ctx context.Context, rng *rand.Rand, level bot.Level, delay time.Duration) (*domain.GameResult, error) {
	svc := app.NewService(rand.New(rand.NewSource(rng.Int63())), config.GetRules())

	playerIDs := []string{"bot-0", "bot-1", "bot-2", "bot-3"}
	agents := make([]*bot.Agent, len(playerIDs))
	for i, id := range playerIDs {
		brain, err := bot.NewBrain(level, rand.New(rand.NewSource(rng.Int63())))
		if err != nil {
			return nil, err
		}
		agents[i] = &bot.Agent{
			ID:         id,
			Level:      level,
			Strategy:   brain,
			ThinkDelay: delay,
		}
	}

	game, _, err := svc.StartGame(playerIDs)
	if err != nil {
		return nil, err
	}

	for game.Phase == domain.PhasePlaying {
		seat := game.CurrentSeat
		card, err := agents[seat].MakeMove(ctx, game, seat)
		if err != nil {
			return nil, err
		}
		if _, err := svc.PlayCard(game, game.Seats[seat], card.ID()); err != nil {
			return nil, err
		}
	}

	return game.Result, nil
}
