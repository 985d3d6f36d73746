package app

import (
	"errors"
	"fmt"
	"math/rand"
	"time"

	"doppelkopf/internal/domain"

	"github.com/google/uuid"
)

// Service contains the Doppelkopf use-cases operating on domain state. It
// owns the only mutating entry points; bots and the hint engine read the
// same game but never write it.
type Service struct {
	rng   *rand.Rand
	rules domain.Rules
}

// NewService constructs a Service with the provided rng (or a time-seeded
// default) and rule set.
func NewService(rng *rand.Rand, rules domain.Rules) *Service {
	if rng == nil {
		rng = rand.New(rand.NewSource(time.Now().UnixNano()))
	}
	return &Service{rng: rng, rules: rules}
}

var (
	ErrWrongPlayerCount  = errors.New("a game needs exactly four players")
	ErrNotPlaying        = errors.New("game is not in the playing phase")
	ErrUnknownPlayer     = errors.New("player not found in this game")
	ErrNotYourTurn       = errors.New("it is not your turn")
	ErrCardNotInHand     = errors.New("card is not in your hand")
	ErrMustFollowSuit    = errors.New("you must follow the led suit")
	ErrWrongAnnouncement = errors.New("announcement does not match your cards")
)

// Rules returns the rule set the service plays under.
func (s *Service) Rules() domain.Rules {
	return s.rules
}

// StartGame deals a fresh game for the four given players in seat order.
// It runs the whole dealing phase: deck build, shuffle, deal, deal
// validation and team assignment, then passes through announcements into
// play with seat 0 leading.
func (s *Service) StartGame(playerIDs []string) (*domain.Game, []Event, error) {
	if len(playerIDs) != 4 {
		return nil, nil, fmt.Errorf("%w: got %d", ErrWrongPlayerCount, len(playerIDs))
	}
	for _, id := range playerIDs {
		if id == "" {
			return nil, nil, fmt.Errorf("%w: empty seat", ErrWrongPlayerCount)
		}
	}

	game := &domain.Game{
		ID:      uuid.NewString(),
		Rules:   s.rules,
		Phase:   domain.PhaseDealing,
		Players: make(map[string]*domain.Player),
		Score:   domain.NewScorecard(),
	}
	copy(game.Seats[:], playerIDs)

	deck := domain.ShuffleDeck(domain.NewDeck(s.rules), s.rng)
	hands, err := domain.Deal(deck)
	if err != nil {
		return nil, nil, err
	}
	if err := domain.ValidateDeal(hands, s.rules); err != nil {
		return nil, nil, err
	}

	seated := make([]*domain.Player, 0, 4)
	for seat, id := range playerIDs {
		p := &domain.Player{UserID: id, Seat: seat, Hand: hands[seat]}
		game.Players[id] = p
		seated = append(seated, p)
	}
	if err := domain.AssignTeams(seated, s.rules); err != nil {
		return nil, nil, err
	}

	events := make([]Event, 0, 6)
	for _, p := range seated {
		events = append(events, Event{
			Kind: EventHandDealt,
			Payload: HandDealtPayload{
				UserID: p.UserID,
				Seat:   p.Seat,
				Hand:   append([]domain.Card{}, p.Hand...),
			},
			Recipients: []string{p.UserID},
		})
	}

	// Announcements carry no blocking logic; the phase exists so clients
	// can show the hand before the first card is asked for.
	game.Phase = domain.PhaseAnnouncements
	game.Phase = domain.PhasePlaying
	game.Trick = domain.NewTrick(0)
	game.CurrentSeat = 0

	events = append(events, Event{
		Kind: EventGameStarted,
		Payload: GameStartedPayload{
			GameID:        game.ID,
			FirstTurnSeat: game.CurrentSeat,
			TotalTricks:   s.rules.TotalTricks(),
		},
	})

	return game, events, nil
}

// LegalMoves returns the cards the given player may currently play.
func (s *Service) LegalMoves(game *domain.Game, actorID string) ([]domain.Card, error) {
	p, ok := game.Players[actorID]
	if !ok {
		return nil, ErrUnknownPlayer
	}
	return domain.LegalMoves(p.Hand, game.Trick, game.Rules), nil
}

// PlayCard is the single mutating entry point during play. A rejected card
// leaves the game untouched and reports why; an accepted card moves from
// the hand into the trick, and a completed trick is resolved, scored,
// archived and handed to its winner.
func (s *Service) PlayCard(game *domain.Game, actorID, cardID string) ([]Event, error) {
	if game.Phase != domain.PhasePlaying {
		return nil, ErrNotPlaying
	}
	p, ok := game.Players[actorID]
	if !ok {
		return nil, ErrUnknownPlayer
	}
	if game.Seats[game.CurrentSeat] != actorID {
		return nil, ErrNotYourTurn
	}
	card, ok := p.CardByID(cardID)
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrCardNotInHand, cardID)
	}
	if game.Trick.IsComplete() {
		return nil, domain.ErrTrickFull
	}
	if !domain.IsLegalMove(p.Hand, game.Trick, game.Rules, card) {
		return nil, fmt.Errorf("%w: %s", ErrMustFollowSuit, card)
	}

	// All checks passed; from here the move is committed.
	p.Remove(card)
	if err := game.Trick.Play(p.Seat, card); err != nil {
		return nil, err
	}

	events := []Event{{
		Kind: EventCardPlayed,
		Payload: CardPlayedPayload{
			UserID: actorID,
			Seat:   p.Seat,
			Card:   card,
		},
	}}

	if !game.Trick.IsComplete() {
		game.CurrentSeat = (game.CurrentSeat + 1) % 4
		return events, nil
	}

	completed, err := domain.CompleteTrick(game.Trick, game.Rules)
	if err != nil {
		return nil, err
	}
	trickIndex := game.TrickIndex()
	earned := game.Score.RecordTrick(game, completed, trickIndex)
	game.CompletedTricks = append(game.CompletedTricks, completed)

	winner := game.PlayerBySeat(completed.Winner)
	winner.TricksWon++

	events = append(events, Event{
		Kind: EventTrickWon,
		Payload: TrickWonPayload{
			TrickIndex: trickIndex,
			WinnerSeat: completed.Winner,
			Points:     completed.Points,
			Cards:      append([]domain.TrickCard{}, completed.Cards...),
		},
	})
	for _, a := range earned {
		events = append(events, Event{
			Kind:    EventAchievementEarned,
			Payload: AchievementPayload{Achievement: a},
		})
	}

	if len(game.CompletedTricks) == game.Rules.TotalTricks() {
		game.Trick = nil
		game.Phase = domain.PhaseScoring
		result, err := domain.FinalResult(game)
		if err != nil {
			return nil, err
		}
		game.Result = result
		game.Phase = domain.PhaseFinished
		events = append(events, Event{
			Kind:    EventGameEnded,
			Payload: GameEndedPayload{Result: result},
		})
		return events, nil
	}

	game.Trick = domain.NewTrick(completed.Winner)
	game.CurrentSeat = completed.Winner
	return events, nil
}

// AnnounceTeam makes a player's team public. The claim must match the side
// their cards put them on.
func (s *Service) AnnounceTeam(game *domain.Game, actorID string, team domain.Team) ([]Event, error) {
	if game.Phase != domain.PhasePlaying && game.Phase != domain.PhaseAnnouncements {
		return nil, ErrNotPlaying
	}
	p, ok := game.Players[actorID]
	if !ok {
		return nil, ErrUnknownPlayer
	}
	if team != p.Team {
		return nil, fmt.Errorf("%w: you are not %s", ErrWrongAnnouncement, team)
	}
	p.Announced = true
	return []Event{{
		Kind:    EventTeamAnnounced,
		Payload: TeamAnnouncedPayload{UserID: actorID, Seat: p.Seat, Team: team},
	}}, nil
}
