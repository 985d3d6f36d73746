package hints

// Kind identifies a hint trigger. The set is closed: clients key
// localized education content off these ids.
type Kind string

const (
	KindFollowSuitViolation Kind = "follow_suit_violation"
	KindTrumpBeatsPlain     Kind = "trump_beats_plain"
	KindSaveHighTrump       Kind = "save_high_trump"
	KindProtectFox          Kind = "protect_fox"
	KindDiscardValue        Kind = "discard_value"
	KindAssistTeammate      Kind = "assist_teammate"
	KindKarlchenChance      Kind = "karlchen_chance"
	KindFoxLost             Kind = "fox_lost"
	KindBigTrickWon         Kind = "big_trick_won"
)

type Severity string

const (
	SeverityInfo    Severity = "info"
	SeverityWarning Severity = "warning"
	SeverityRule    Severity = "rule"
)

// Hint is one educational message. LearnMoreKey points at the client's
// tutorial content for the underlying rule or tactic.
type Hint struct {
	Kind         Kind     `json:"id"`
	Title        string   `json:"title"`
	Message      string   `json:"message"`
	Severity     Severity `json:"severity"`
	LearnMoreKey string   `json:"learn_more_key,omitempty"`
}
