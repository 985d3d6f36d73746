package nakama

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"math/rand"
	"strconv"
	"time"

	"doppelkopf/internal/app"
	"doppelkopf/internal/bot"
	"doppelkopf/internal/config"
	"doppelkopf/internal/domain"
	"doppelkopf/internal/hints"
	"doppelkopf/internal/ports"

	"github.com/heroiclabs/nakama-common/runtime"
)

// MatchState holds the authoritative runtime state for the Nakama match handler.
type MatchState struct {
	Seats     [4]string                   `json:"seats"`      // Array of user IDs, empty string means seat is empty
	OwnerSeat int                         `json:"owner_seat"` // Seat index of the match owner
	Tick      int64                       `json:"tick"`       // Current tick of the match for turn-based logic
	Presences map[string]runtime.Presence `json:"-"`          // Map UserId -> Presence for targeted messaging
	App       *app.Service                `json:"-"`          // Doppelkopf app service with game logic
	Game      *domain.Game                `json:"-"`          // Current active game state (nil if in lobby)

	BotsEnabled          bool                  `json:"bots_enabled"`            // Whether AI players are allowed
	BotMinDelay          int                   `json:"bot_min_delay"`           // Min seconds a bot waits
	BotMaxDelay          int                   `json:"bot_max_delay"`           // Max seconds a bot waits
	BotAutoFillDelay     int                   `json:"bot_auto_fill_delay"`     // Seconds to wait before auto-filling with bots
	BotWaitUntil         int64                 `json:"bot_wait_until"`          // Tick when the bot should act
	BotWaitGameID        string                `json:"bot_wait_game_id"`        // Game the pending bot decision belongs to
	LastSinglePlayerTick int64                 `json:"last_single_player_tick"` // Tick when a single player started waiting
	Bots                 map[string]*bot.Agent `json:"-"`                       // Active bot agents

	HintEngines map[string]*hints.Engine `json:"-"` // Per-human hint engines
	HintsShown  map[string]int           `json:"-"` // Per-human hint count for stats
	Snapshots   ports.SnapshotStore      `json:"-"` // Saved-game persistence
	Stats       ports.StatsPort          `json:"-"` // Learning progress persistence
}

func (ms *MatchState) GetOpenSeatsCount() int {
	count := 0
	for _, seat := range ms.Seats {
		if seat == "" {
			count++
		}
	}
	return count
}

func (ms *MatchState) GetOccupiedSeatCount() int {
	count := 0
	for _, seat := range ms.Seats {
		if seat != "" {
			count++
		}
	}
	return count
}

func (ms *MatchState) GetHumanPlayerCount() int {
	count := 0
	for _, seat := range ms.Seats {
		if seat != "" && !isBotUserId(seat) {
			count++
		}
	}
	return count
}

// seatOf returns the seat index for a user id, or -1.
func (ms *MatchState) seatOf(userID string) int {
	for i, seatUserId := range ms.Seats {
		if seatUserId == userID {
			return i
		}
	}
	return -1
}

// isBotUserId reports whether the given user id represents a bot seat.
func isBotUserId(userId string) bool {
	return bot.IsBot(userId)
}

// isHumanSeat reports whether the seat index belongs to a human player.
func isHumanSeat(seats []string, seatIndex int) bool {
	if seatIndex < 0 || seatIndex >= len(seats) {
		return false
	}
	userId := seats[seatIndex]
	return userId != "" && !isBotUserId(userId)
}

// findFirstHumanSeat returns the first seat index with a human occupant or -1 if none exist.
func findFirstHumanSeat(seats []string) int {
	for i, userId := range seats {
		if userId != "" && !isBotUserId(userId) {
			return i
		}
	}
	return -1
}

// shouldTerminateNoHumans returns true when there are no humans in the match.
func shouldTerminateNoHumans(seats []string) bool {
	return findFirstHumanSeat(seats) == -1
}

func newMatchHandler() runtime.Match {
	return &matchHandler{}
}

type matchHandler struct{}

// MatchInit is called when the match is created.
func (mh *matchHandler) MatchInit(ctx context.Context, logger runtime.Logger, db *sql.DB, nk runtime.NakamaModule, params map[string]interface{}) (interface{}, int, string) {
	logger.Debug("MatchInit: Initializing match handler.")

	// Load bot identities and game config from the data folder
	if err := bot.LoadIdentities("data/bot_identities.json"); err != nil {
		logger.Warn("MatchInit: Could not load bot identities: %v", err)
	}
	if err := config.LoadGameConfig("data/game_config.json"); err != nil {
		logger.Warn("MatchInit: Could not load game config: %v", err)
	}

	state := &MatchState{
		Tick:             time.Now().Unix(),
		Presences:        make(map[string]runtime.Presence),
		App:              app.NewService(nil, config.GetRules()),
		OwnerSeat:        -1,
		Bots:             make(map[string]*bot.Agent),
		HintEngines:      make(map[string]*hints.Engine),
		HintsShown:       make(map[string]int),
		Snapshots:        NewNakamaSnapshotStore(nk),
		Stats:            NewNakamaStatsAdapter(nk),
		BotAutoFillDelay: config.GetBotAutoFillDelaySeconds(),
	}

	// Read environment variables for bot configuration
	env, _ := ctx.Value(runtime.RUNTIME_CTX_ENV).(map[string]string)
	if val, ok := env["doppelkopf_bots_enabled"]; ok {
		state.BotsEnabled = val == "true"
	}
	if val, ok := env["doppelkopf_bot_min_delay_sec"]; ok {
		if i, err := strconv.Atoi(val); err == nil {
			state.BotMinDelay = i
		}
	}
	if val, ok := env["doppelkopf_bot_max_delay_sec"]; ok {
		if i, err := strconv.Atoi(val); err == nil {
			state.BotMaxDelay = i
		}
	}
	if val, ok := env["doppelkopf_bot_auto_fill_delay_sec"]; ok {
		if i, err := strconv.Atoi(val); err == nil {
			state.BotAutoFillDelay = i
		}
	}

	// Defaults if not set
	if state.BotMinDelay == 0 {
		state.BotMinDelay = 1
	}
	if state.BotMaxDelay == 0 {
		state.BotMaxDelay = 3
	}
	if state.BotAutoFillDelay == 0 {
		state.BotAutoFillDelay = 5
	}

	label := MatchLabel{
		Open:  state.GetOpenSeatsCount(),
		Game:  "doppelkopf",
		Phase: "lobby",
	}
	labelBytes, err := json.Marshal(label)
	if err != nil {
		logger.Error("MatchInit: Failed to marshal label: %v", err)
		return nil, 0, ""
	}

	tickRate := 1
	return state, tickRate, string(labelBytes)
}

func (mh *matchHandler) MatchJoinAttempt(ctx context.Context, logger runtime.Logger, db *sql.DB, nk runtime.NakamaModule, dispatcher runtime.MatchDispatcher, tick int64, state interface{}, presence runtime.Presence, metadata map[string]string) (interface{}, bool, string) {
	matchState, ok := state.(*MatchState)
	if !ok {
		return state, false, "state not found"
	}

	// Allow join if there is an empty seat OR a bot to replace (if game hasn't started)
	if matchState.GetOpenSeatsCount() <= 0 {
		hasBot := false
		if matchState.Game == nil {
			for _, seat := range matchState.Seats {
				if isBotUserId(seat) {
					hasBot = true
					break
				}
			}
		}
		if !hasBot {
			return state, false, "Match full"
		}
	}

	return state, true, ""
}

func (mh *matchHandler) MatchJoin(ctx context.Context, logger runtime.Logger, db *sql.DB, nk runtime.NakamaModule, dispatcher runtime.MatchDispatcher, tick int64, state interface{}, presences []runtime.Presence) interface{} {
	matchState, ok := state.(*MatchState)
	if !ok {
		logger.Error("MatchJoin: state not found")
		return state
	}

	for _, p := range presences {
		matchState.Presences[p.GetUserId()] = p

		// Assign seat: try empty seats first, then bots (if lobby)
		assigned := false
		for i, seatUserId := range matchState.Seats {
			if seatUserId == "" {
				matchState.Seats[i] = p.GetUserId()
				assigned = true
				break
			}
		}

		if !assigned && matchState.Game == nil {
			for i, seatUserId := range matchState.Seats {
				if isBotUserId(seatUserId) {
					logger.Info("MatchJoin: Replacing bot %s with human %s in seat %d", seatUserId, p.GetUserId(), i)
					delete(matchState.Bots, seatUserId)
					matchState.Seats[i] = p.GetUserId()
					assigned = true
					break
				}
			}
		}

		if !assigned {
			logger.Warn("MatchJoin: User %s joined but no seat (empty or bot) was available.", p.GetUserId())
			continue
		}

		// Each human gets an independent hint session.
		if matchState.HintEngines[p.GetUserId()] == nil {
			engine := hints.NewEngine(nil)
			engine.SetLimits(config.GetMaxHintsPerGame(), config.GetMaxHintsPerTrick())
			matchState.HintEngines[p.GetUserId()] = engine
		}
	}

	// Ensure owner seat is assigned to a human player only.
	if !isHumanSeat(matchState.Seats[:], matchState.OwnerSeat) {
		matchState.OwnerSeat = findFirstHumanSeat(matchState.Seats[:])
		if matchState.OwnerSeat >= 0 {
			logger.Debug("MatchJoin: Owner set to human seat %d.", matchState.OwnerSeat)
		}
	}

	mh.updateLabel(matchState, dispatcher, logger)
	mh.broadcastMatchState(matchState, dispatcher, logger)

	return matchState
}

// MatchLeave is called when one or more players leave the match.
func (mh *matchHandler) MatchLeave(ctx context.Context, logger runtime.Logger, db *sql.DB, nk runtime.NakamaModule, dispatcher runtime.MatchDispatcher, tick int64, state interface{}, presences []runtime.Presence) interface{} {
	matchState, ok := state.(*MatchState)
	if !ok {
		logger.Error("MatchLeave: state not found")
		return state
	}

	for _, p := range presences {
		delete(matchState.Presences, p.GetUserId())
		delete(matchState.HintEngines, p.GetUserId())

		for i, seatUserId := range matchState.Seats {
			if seatUserId == p.GetUserId() {
				matchState.Seats[i] = ""
				logger.Debug("MatchLeave: User %s left, seat %d freed.", p.GetUserId(), i)
				break
			}
		}
	}

	newOwnerSeat := findFirstHumanSeat(matchState.Seats[:])
	if newOwnerSeat != matchState.OwnerSeat {
		matchState.OwnerSeat = newOwnerSeat
		if newOwnerSeat >= 0 {
			logger.Debug("MatchLeave: Owner set to human seat %d.", newOwnerSeat)
		}
	}

	if shouldTerminateNoHumans(matchState.Seats[:]) {
		logger.Info("MatchLeave: Terminating match with no humans.")
		return nil
	}

	mh.updateLabel(matchState, dispatcher, logger)

	return matchState
}

func (mh *matchHandler) MatchLoop(ctx context.Context, logger runtime.Logger, db *sql.DB, nk runtime.NakamaModule, dispatcher runtime.MatchDispatcher, tick int64, state interface{}, messages []runtime.MatchData) interface{} {
	matchState, ok := state.(*MatchState)
	if !ok {
		return state
	}

	matchState.Tick = tick

	for _, msg := range messages {
		switch msg.GetOpCode() {
		case OpStartGame:
			mh.handleStartGame(ctx, matchState, dispatcher, logger, msg)
		case OpPlayCard:
			mh.handlePlayCard(ctx, matchState, dispatcher, logger, msg)
		case OpAnnounceTeam:
			mh.handleAnnounceTeam(ctx, matchState, dispatcher, logger, msg)
		case OpRequestHint:
			mh.handleRequestHint(matchState, dispatcher, logger, msg)
		default:
			logger.Warn("MatchLoop: Unknown opcode received: %d", msg.GetOpCode())
		}
	}

	if matchState.BotsEnabled {
		mh.processBots(ctx, matchState, dispatcher, logger)
	}

	return matchState
}

func (mh *matchHandler) processBots(ctx context.Context, state *MatchState, dispatcher runtime.MatchDispatcher, logger runtime.Logger) {
	// 1. Auto-fill lobby with bots if there's only one human player after delay
	if state.Game == nil {
		humanCount := state.GetHumanPlayerCount()
		if humanCount == 1 {
			if state.LastSinglePlayerTick == 0 {
				state.LastSinglePlayerTick = state.Tick
				logger.Debug("processBots: Single player detected, starting auto-fill timer.")
			}

			if state.Tick-state.LastSinglePlayerTick >= int64(state.BotAutoFillDelay) {
				added := false
				for i, seat := range state.Seats {
					if seat == "" {
						identity := bot.GetBotIdentity(i)
						botID := identity.UserID
						state.Seats[i] = botID

						agent, err := bot.NewAgent(botID)
						if err != nil {
							logger.Error("processBots: Failed to create bot agent for %s: %v", botID, err)
						} else {
							state.Bots[botID] = agent
						}

						logger.Info("processBots: Added bot %s (%s) to seat %d", identity.Username, botID, i)
						added = true
					}
				}
				if added {
					mh.updateLabel(state, dispatcher, logger)
					mh.broadcastMatchState(state, dispatcher, logger)
				}
				state.LastSinglePlayerTick = 0
			}
		} else {
			state.LastSinglePlayerTick = 0
		}
	}

	// 2. Handle bot turns in-game
	if state.Game != nil && state.Game.Phase == domain.PhasePlaying {
		currentSeat := state.Game.CurrentSeat
		currentUserID := state.Seats[currentSeat]

		if isBotUserId(currentUserID) {
			if state.BotWaitUntil == 0 {
				agent := mh.botAgent(state, currentUserID, logger)
				if agent == nil {
					return
				}
				span := state.BotMaxDelay - state.BotMinDelay
				if span < 0 {
					span = 0
				}
				delay := rand.Intn(span+1) + state.BotMinDelay
				// Ticks run at one per second; the per-difficulty thinking
				// delay adds whole ticks on top of the random pacing.
				delay += int(agent.ThinkDelay / time.Second)
				state.BotWaitUntil = state.Tick + int64(delay)
				state.BotWaitGameID = state.Game.ID
				logger.Debug("processBots: Bot %s (seat %d) acts at tick %d (current %d)", currentUserID, currentSeat, state.BotWaitUntil, state.Tick)
			}

			// A pending decision scheduled against an older game must be
			// dropped, not applied to the new one.
			if state.BotWaitGameID != state.Game.ID {
				state.BotWaitUntil = 0
				state.BotWaitGameID = ""
				return
			}

			if state.Tick >= state.BotWaitUntil {
				state.BotWaitUntil = 0
				state.BotWaitGameID = ""

				agent := mh.botAgent(state, currentUserID, logger)
				if agent == nil {
					return
				}

				// The tick wait above already covered the thinking time,
				// so ask the strategy directly instead of sleeping again.
				card, err := agent.Strategy.SelectCard(state.Game, currentSeat)
				if err != nil {
					logger.Error("processBots: Bot %s failed to select a card: %v", currentUserID, err)
					return
				}

				events, err := state.App.PlayCard(state.Game, currentUserID, card.ID())
				if err != nil {
					logger.Error("processBots: Bot %s played illegal card %s: %v", currentUserID, card, err)
					return
				}
				mh.dispatchEvents(ctx, state, dispatcher, logger, events)
			}
		} else {
			state.BotWaitUntil = 0
			state.BotWaitGameID = ""
		}
	}
}

// botAgent returns the cached agent for a bot seat, creating it on
// first use.
func (mh *matchHandler) botAgent(state *MatchState, userID string, logger runtime.Logger) *bot.Agent {
	if agent, ok := state.Bots[userID]; ok {
		return agent
	}
	agent, err := bot.NewAgent(userID)
	if err != nil {
		logger.Error("botAgent: Failed to create agent for %s: %v", userID, err)
		return nil
	}
	state.Bots[userID] = agent
	return agent
}

func (mh *matchHandler) handleStartGame(ctx context.Context, state *MatchState, dispatcher runtime.MatchDispatcher, logger runtime.Logger, msg runtime.MatchData) {
	senderID := msg.GetUserId()
	senderSeat := state.seatOf(senderID)

	logger.Info("StartGame: Request from %s (seat=%d, owner_seat=%d, occupied=%d)", senderID, senderSeat, state.OwnerSeat, state.GetOccupiedSeatCount())

	if senderSeat != state.OwnerSeat {
		logger.Warn("StartGame: User %s tried to start game but is not owner (owner_seat=%d)", senderID, state.OwnerSeat)
		return
	}
	if state.Game != nil {
		logger.Warn("StartGame: Game already running.")
		return
	}
	if state.GetOpenSeatsCount() > 0 {
		logger.Warn("StartGame: Cannot start with %d open seats.", state.GetOpenSeatsCount())
		return
	}

	game, events, err := state.App.StartGame(state.Seats[:])
	if err != nil {
		logger.Error("StartGame: Failed to start game: %v", err)
		mh.sendRejection(state, dispatcher, logger, senderID, err, nil)
		return
	}

	state.Game = game
	for _, engine := range state.HintEngines {
		engine.Reset()
	}
	for id := range state.HintsShown {
		delete(state.HintsShown, id)
	}

	mh.updateLabel(state, dispatcher, logger)
	mh.dispatchEvents(ctx, state, dispatcher, logger, events)

	logger.Info("StartGame: Game %s started.", game.ID)
}

func (mh *matchHandler) handlePlayCard(ctx context.Context, state *MatchState, dispatcher runtime.MatchDispatcher, logger runtime.Logger, msg runtime.MatchData) {
	senderID := msg.GetUserId()

	if state.Game == nil {
		logger.Warn("handlePlayCard: Game not started.")
		return
	}

	var request playCardRequest
	if err := json.Unmarshal(msg.GetData(), &request); err != nil {
		logger.Error("handlePlayCard: Failed to unmarshal request: %v", err)
		return
	}

	events, err := state.App.PlayCard(state.Game, senderID, request.CardID)
	if err != nil {
		logger.Warn("handlePlayCard: User %s failed to play %q: %v", senderID, request.CardID, err)

		// An obligation violation gets the explanatory rule hint.
		var hint *hints.Hint
		if errors.Is(err, app.ErrMustFollowSuit) {
			if player, ok := state.Game.Players[senderID]; ok {
				if c, found := player.CardByID(request.CardID); found {
					if engine := state.HintEngines[senderID]; engine != nil {
						hint = engine.RuleViolation(c, state.Game.Trick, state.Game.Rules)
					}
				}
			}
		}
		mh.sendRejection(state, dispatcher, logger, senderID, err, hint)
		return
	}

	mh.dispatchEvents(ctx, state, dispatcher, logger, events)
}

func (mh *matchHandler) handleAnnounceTeam(ctx context.Context, state *MatchState, dispatcher runtime.MatchDispatcher, logger runtime.Logger, msg runtime.MatchData) {
	senderID := msg.GetUserId()

	if state.Game == nil {
		logger.Warn("handleAnnounceTeam: Game not started.")
		return
	}

	var request announceTeamRequest
	if err := json.Unmarshal(msg.GetData(), &request); err != nil {
		logger.Error("handleAnnounceTeam: Failed to unmarshal request: %v", err)
		return
	}

	events, err := state.App.AnnounceTeam(state.Game, senderID, domain.Team(request.Team))
	if err != nil {
		logger.Warn("handleAnnounceTeam: User %s failed to announce %q: %v", senderID, request.Team, err)
		mh.sendRejection(state, dispatcher, logger, senderID, err, nil)
		return
	}

	mh.dispatchEvents(ctx, state, dispatcher, logger, events)
}

// handleRequestHint evaluates the pre-move triggers for a candidate card
// the human is hovering and answers privately.
func (mh *matchHandler) handleRequestHint(state *MatchState, dispatcher runtime.MatchDispatcher, logger runtime.Logger, msg runtime.MatchData) {
	senderID := msg.GetUserId()

	if state.Game == nil {
		return
	}
	engine := state.HintEngines[senderID]
	player, ok := state.Game.Players[senderID]
	if engine == nil || !ok {
		return
	}

	var request requestHintRequest
	if err := json.Unmarshal(msg.GetData(), &request); err != nil {
		logger.Error("handleRequestHint: Failed to unmarshal request: %v", err)
		return
	}
	candidate, found := player.CardByID(request.CardID)
	if !found {
		return
	}

	hintCtx := buildHintContext(state.Game, player)
	hintCtx.Candidate = candidate
	hintCtx.Trick = state.Game.Trick

	if hint := engine.EvaluateMove(hintCtx); hint != nil {
		state.HintsShown[senderID]++
		mh.sendHint(state, dispatcher, logger, senderID, hint)
	}
}

// buildHintContext exposes exactly what the player may know: own hand,
// own team, and public announcements.
func buildHintContext(game *domain.Game, player *domain.Player) *hints.Context {
	return &hints.Context{
		Rules:          game.Rules,
		Seat:           player.Seat,
		Hand:           player.Hand,
		Team:           player.Team,
		AnnouncedTeams: game.AnnouncedTeams(),
		TrickIndex:     game.TrickIndex(),
		TotalTricks:    game.Rules.TotalTricks(),
	}
}

// dispatchEvents forwards app events to clients and runs the post-trick
// and end-of-game side effects.
func (mh *matchHandler) dispatchEvents(ctx context.Context, state *MatchState, dispatcher runtime.MatchDispatcher, logger runtime.Logger, events []app.Event) {
	for _, ev := range events {
		mh.broadcastEvent(state, dispatcher, logger, ev)

		switch ev.Kind {
		case app.EventTrickWon:
			mh.afterTrick(ctx, state, dispatcher, logger)
		case app.EventGameEnded:
			mh.afterGame(ctx, state, dispatcher, logger)
		}
	}
}

// afterTrick runs post-trick hint feedback, advances hint budgets and
// saves resume snapshots for the humans.
func (mh *matchHandler) afterTrick(ctx context.Context, state *MatchState, dispatcher runtime.MatchDispatcher, logger runtime.Logger) {
	game := state.Game
	if game == nil || len(game.CompletedTricks) == 0 {
		return
	}
	completed := game.CompletedTricks[len(game.CompletedTricks)-1]

	for userID, engine := range state.HintEngines {
		player, ok := game.Players[userID]
		if !ok {
			continue
		}
		hintCtx := buildHintContext(game, player)
		hintCtx.Completed = &completed
		hintCtx.TrickIndex = len(game.CompletedTricks) - 1

		if hint := engine.EvaluateTrick(hintCtx); hint != nil {
			state.HintsShown[userID]++
			mh.sendHint(state, dispatcher, logger, userID, hint)
		}
		engine.OnTrickComplete()
	}

	if state.Snapshots != nil && game.Phase == domain.PhasePlaying {
		data := game.ToData()
		for i, userID := range state.Seats {
			if !isHumanSeat(state.Seats[:], i) {
				continue
			}
			if err := state.Snapshots.Save(ctx, userID, data); err != nil {
				logger.Warn("afterTrick: Failed to save snapshot for %s: %v", userID, err)
			}
		}
	}
}

// afterGame records stats, clears snapshots and returns the match to lobby.
func (mh *matchHandler) afterGame(ctx context.Context, state *MatchState, dispatcher runtime.MatchDispatcher, logger runtime.Logger) {
	game := state.Game
	if game == nil || game.Result == nil {
		state.Game = nil
		mh.updateLabel(state, dispatcher, logger)
		return
	}

	for _, userID := range state.Seats {
		if userID == "" || isBotUserId(userID) {
			continue
		}
		player, ok := game.Players[userID]
		if !ok {
			continue
		}

		won := player.Team == game.Result.Winner
		achievements := 0
		for _, a := range game.Result.Achievements {
			if a.Team == player.Team {
				achievements++
			}
		}
		if state.Stats != nil {
			if err := state.Stats.RecordGame(ctx, userID, won, achievements, state.HintsShown[userID]); err != nil {
				logger.Warn("afterGame: Failed to record stats for %s: %v", userID, err)
			}
		}
		if state.Snapshots != nil {
			if err := state.Snapshots.Delete(ctx, userID); err != nil {
				logger.Warn("afterGame: Failed to clear snapshot for %s: %v", userID, err)
			}
		}
	}

	state.Game = nil
	state.BotWaitUntil = 0
	state.BotWaitGameID = ""
	mh.updateLabel(state, dispatcher, logger)
}

func (mh *matchHandler) broadcastMatchState(state *MatchState, dispatcher runtime.MatchDispatcher, logger runtime.Logger) {
	var playerStates []matchSnapshotPlayer
	for i, userId := range state.Seats {
		if userId == "" {
			continue
		}

		displayName := userId
		if p, exists := state.Presences[userId]; exists {
			displayName = p.GetUsername()
		} else if name := bot.GetBotDisplayName(userId); name != "" {
			displayName = name
		}

		cardsRemaining := 0
		announcedTeam := ""
		if state.Game != nil {
			if p, ok := state.Game.Players[userId]; ok {
				cardsRemaining = len(p.Hand)
				announcedTeam = string(p.PublicTeam())
			}
		}

		playerStates = append(playerStates, matchSnapshotPlayer{
			UserID:         userId,
			Seat:           i,
			IsOwner:        i == state.OwnerSeat,
			IsBot:          isBotUserId(userId),
			DisplayName:    displayName,
			CardsRemaining: cardsRemaining,
			AnnouncedTeam:  announcedTeam,
		})
	}

	snapshot := matchSnapshot{
		Seats:     state.Seats[:],
		OwnerSeat: state.OwnerSeat,
		Tick:      state.Tick,
		Players:   playerStates,
	}
	bytes, err := json.Marshal(snapshot)
	if err != nil {
		logger.Error("broadcastMatchState: Failed to marshal: %v", err)
		return
	}
	dispatcher.BroadcastMessage(OpPlayerJoined, bytes, nil, nil, true)
}

// broadcastEvent serializes an app event and dispatches it, honoring
// targeted recipients for private payloads like dealt hands.
func (mh *matchHandler) broadcastEvent(state *MatchState, dispatcher runtime.MatchDispatcher, logger runtime.Logger, ev app.Event) {
	opCode, known := eventOpCode(ev.Kind)
	if !known {
		logger.Warn("broadcastEvent: Unknown event kind: %v", ev.Kind)
		return
	}

	bytes, err := json.Marshal(ev.Payload)
	if err != nil {
		logger.Error("broadcastEvent: Failed to marshal event %v: %v", ev.Kind, err)
		return
	}

	// Determine recipients (default to broadcast)
	var recipients []runtime.Presence
	if len(ev.Recipients) > 0 {
		for _, uid := range ev.Recipients {
			if p, ok := state.Presences[uid]; ok {
				recipients = append(recipients, p)
			}
		}

		// If we had intended recipients but none are connected (e.g. they
		// are bots), we MUST NOT broadcast to everyone else.
		if len(recipients) == 0 {
			return
		}
	}

	dispatcher.BroadcastMessage(opCode, bytes, recipients, nil, true)
}

// sendRejection sends a playRejectedEvent to a specific user.
func (mh *matchHandler) sendRejection(state *MatchState, dispatcher runtime.MatchDispatcher, logger runtime.Logger, userID string, cause error, hint *hints.Hint) {
	payload := playRejectedEvent{
		Code:    400,
		Message: cause.Error(),
		Hint:    hint,
	}
	bytes, err := json.Marshal(payload)
	if err != nil {
		logger.Error("sendRejection: Failed to marshal: %v", err)
		return
	}

	presence, ok := state.Presences[userID]
	if !ok {
		logger.Warn("sendRejection: Presence not found for %s", userID)
		return
	}
	dispatcher.BroadcastMessage(OpPlayRejected, bytes, []runtime.Presence{presence}, nil, true)
}

// sendHint delivers a hint privately.
func (mh *matchHandler) sendHint(state *MatchState, dispatcher runtime.MatchDispatcher, logger runtime.Logger, userID string, hint *hints.Hint) {
	bytes, err := json.Marshal(hint)
	if err != nil {
		logger.Error("sendHint: Failed to marshal: %v", err)
		return
	}

	presence, ok := state.Presences[userID]
	if !ok {
		return
	}
	dispatcher.BroadcastMessage(OpHintShown, bytes, []runtime.Presence{presence}, nil, true)
}

func (mh *matchHandler) updateLabel(state *MatchState, dispatcher runtime.MatchDispatcher, logger runtime.Logger) {
	phase := "lobby"
	if state.Game != nil {
		phase = "playing"
	}

	label := MatchLabel{
		Open:  state.GetOpenSeatsCount(),
		Game:  "doppelkopf",
		Phase: phase,
	}
	labelBytes, err := json.Marshal(label)
	if err != nil {
		logger.Error("updateLabel: Failed to marshal: %v", err)
		return
	}
	if err := dispatcher.MatchLabelUpdate(string(labelBytes)); err != nil {
		logger.Error("updateLabel: Failed to update: %v", err)
	}
}

func (mh *matchHandler) MatchTerminate(ctx context.Context, logger runtime.Logger, db *sql.DB, nk runtime.NakamaModule, dispatcher runtime.MatchDispatcher, tick int64, state interface{}, reason int) interface{} {
	logger.Debug("MatchTerminate: Match terminated for reason %d", reason)
	return state
}

func (mh *matchHandler) MatchSignal(ctx context.Context, logger runtime.Logger, db *sql.DB, nk runtime.NakamaModule, dispatcher runtime.MatchDispatcher, tick int64, state interface{}, data string) (interface{}, string) {
	return state, ""
}
