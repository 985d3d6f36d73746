package app

import "doppelkopf/internal/domain"

// EventKind identifies emitted domain events for transport dispatch.
type EventKind string

const (
	EventGameStarted       EventKind = "game_started"
	EventHandDealt         EventKind = "hand_dealt"
	EventCardPlayed        EventKind = "card_played"
	EventTrickWon          EventKind = "trick_won"
	EventAchievementEarned EventKind = "achievement_earned"
	EventTeamAnnounced     EventKind = "team_announced"
	EventGameEnded         EventKind = "game_ended"
)

// Event is an app event with optional targeted recipients.
type Event struct {
	Kind       EventKind
	Payload    any
	Recipients []string // user IDs; empty means broadcast
}

type GameStartedPayload struct {
	GameID        string `json:"game_id"`
	FirstTurnSeat int    `json:"first_turn_seat"`
	TotalTricks   int    `json:"total_tricks"`
}

type HandDealtPayload struct {
	UserID string        `json:"user_id"`
	Seat   int           `json:"seat"`
	Hand   []domain.Card `json:"hand"`
}

type CardPlayedPayload struct {
	UserID string      `json:"user_id"`
	Seat   int         `json:"seat"`
	Card   domain.Card `json:"card"`
}

type TrickWonPayload struct {
	TrickIndex int                `json:"trick_index"`
	WinnerSeat int                `json:"winner_seat"`
	Points     int                `json:"points"`
	Cards      []domain.TrickCard `json:"cards"`
}

type AchievementPayload struct {
	Achievement domain.Achievement `json:"achievement"`
}

type TeamAnnouncedPayload struct {
	UserID string      `json:"user_id"`
	Seat   int         `json:"seat"`
	Team   domain.Team `json:"team"`
}

type GameEndedPayload struct {
	Result *domain.GameResult `json:"result"`
}
