package nakama

import (
	"doppelkopf/internal/app"
	"doppelkopf/internal/hints"
)

// MatchLabel is the JSON label Nakama indexes for match listing queries.
type MatchLabel struct {
	Open  int    `json:"open"`
	Game  string `json:"game"`
	Phase string `json:"phase"`
}

// Client request payloads. All match messages are JSON.
type playCardRequest struct {
	CardID string `json:"card_id"`
}

type announceTeamRequest struct {
	Team string `json:"team"`
}

type requestHintRequest struct {
	CardID string `json:"card_id"`
}

// playRejectedEvent explains a refused action, with an optional rule hint.
type playRejectedEvent struct {
	Code    int         `json:"code"`
	Message string      `json:"message"`
	Hint    *hints.Hint `json:"hint,omitempty"`
}

// matchSnapshotPlayer is one seat in the lobby/state broadcast.
type matchSnapshotPlayer struct {
	UserID         string `json:"user_id"`
	Seat           int    `json:"seat"`
	IsOwner        bool   `json:"is_owner"`
	IsBot          bool   `json:"is_bot"`
	DisplayName    string `json:"display_name"`
	CardsRemaining int    `json:"cards_remaining"`
	AnnouncedTeam  string `json:"announced_team,omitempty"`
}

type matchSnapshot struct {
	Seats     []string              `json:"seats"`
	OwnerSeat int                   `json:"owner_seat"`
	Tick      int64                 `json:"tick"`
	Players   []matchSnapshotPlayer `json:"players"`
}

// eventOpCode maps an app event kind to its wire op code.
func eventOpCode(kind app.EventKind) (int64, bool) {
	switch kind {
	case app.EventGameStarted:
		return OpGameStarted, true
	case app.EventHandDealt:
		return OpHandDealt, true
	case app.EventCardPlayed:
		return OpCardPlayed, true
	case app.EventTrickWon:
		return OpTrickWon, true
	case app.EventTeamAnnounced:
		return OpTeamAnnounced, true
	case app.EventAchievementEarned:
		return OpAchievement, true
	case app.EventGameEnded:
		return OpGameEnded, true
	default:
		return 0, false
	}
}
