package hints

import (
	"fmt"

	"doppelkopf/internal/domain"
)

// Trigger is one hint predicate. Evaluate returns nil when the trigger
// does not apply; it must not mutate the context.
type Trigger interface {
	Kind() Kind
	Evaluate(ctx *Context) *Hint
}

// MoveTriggers returns the pre-move triggers in priority order.
func MoveTriggers() []Trigger {
	return []Trigger{
		protectFoxTrigger{},
		trumpBeatsPlainTrigger{},
		karlchenChanceTrigger{},
		assistTeammateTrigger{},
		saveHighTrumpTrigger{},
		discardValueTrigger{},
	}
}

// TrickTriggers returns the post-trick triggers in priority order.
func TrickTriggers() []Trigger {
	return []Trigger{
		foxLostTrigger{},
		bigTrickWonTrigger{},
	}
}

// RuleViolationHint explains a rejected card. It bypasses suppression.
func RuleViolationHint(c domain.Card, t *domain.Trick, rules domain.Rules) *Hint {
	var lead domain.Card
	ok := false
	if t != nil {
		lead, ok = t.LeadCard()
	}
	obligation := "follow the led suit"
	if ok && rules.IsTrump(lead) {
		obligation = "play a trump card"
	} else if ok {
		obligation = fmt.Sprintf("follow %s with a plain %s card", lead, lead.Suit)
	}
	return &Hint{
		Kind:         KindFollowSuitViolation,
		Title:        "You must follow suit",
		Message:      fmt.Sprintf("%s is not allowed here: while you can, you have to %s.", c, obligation),
		Severity:     SeverityRule,
		LearnMoreKey: "rules.obligation",
	}
}

type protectFoxTrigger struct{}

func (protectFoxTrigger) Kind() Kind { return KindProtectFox }

func (protectFoxTrigger) Evaluate(ctx *Context) *Hint {
	if !ctx.Rules.IsFox(ctx.Candidate) {
		return nil
	}
	winning, ok := domain.CurrentWinningCard(ctx.Trick, ctx.Rules)
	if !ok {
		return nil
	}
	if ctx.KnownTeammate(winning.Seat) {
		return nil
	}
	if ctx.Rules.Beats(ctx.Candidate, winning.Card) {
		return nil
	}
	if len(ctx.LegalMoves()) < 2 {
		return nil
	}
	return &Hint{
		Kind:         KindProtectFox,
		Title:        "Watch your Fox",
		Message:      fmt.Sprintf("%s is worth 11 points and will not win this trick. If the opponents take it, they score a bonus.", ctx.Candidate),
		Severity:     SeverityWarning,
		LearnMoreKey: "tactics.fox",
	}
}

type trumpBeatsPlainTrigger struct{}

func (trumpBeatsPlainTrigger) Kind() Kind { return KindTrumpBeatsPlain }

func (trumpBeatsPlainTrigger) Evaluate(ctx *Context) *Hint {
	winning, ok := domain.CurrentWinningCard(ctx.Trick, ctx.Rules)
	if !ok || ctx.Rules.IsTrump(winning.Card) {
		return nil
	}
	if ctx.KnownTeammate(winning.Seat) {
		return nil
	}
	if ctx.Rules.Beats(ctx.Candidate, winning.Card) {
		return nil
	}
	for _, c := range ctx.LegalMoves() {
		if ctx.Rules.IsTrump(c) && ctx.Rules.Beats(c, winning.Card) {
			return &Hint{
				Kind:         KindTrumpBeatsPlain,
				Title:        "A trump would take this trick",
				Message:      fmt.Sprintf("%s loses to the current %s, but any of your trumps beats a plain card.", ctx.Candidate, winning.Card),
				Severity:     SeverityInfo,
				LearnMoreKey: "rules.trump",
			}
		}
	}
	return nil
}

type karlchenChanceTrigger struct{}

func (karlchenChanceTrigger) Kind() Kind { return KindKarlchenChance }

func (karlchenChanceTrigger) Evaluate(ctx *Context) *Hint {
	if !ctx.IsFinalTrick() || ctx.Rules.IsKarlchen(ctx.Candidate) {
		return nil
	}
	var karlchen domain.Card
	found := false
	for _, c := range ctx.LegalMoves() {
		if ctx.Rules.IsKarlchen(c) {
			karlchen, found = c, true
			break
		}
	}
	if !found {
		return nil
	}
	if winning, ok := domain.CurrentWinningCard(ctx.Trick, ctx.Rules); ok {
		if !ctx.Rules.Beats(karlchen, winning.Card) {
			return nil
		}
	}
	return &Hint{
		Kind:         KindKarlchenChance,
		Title:        "Karlchen is in reach",
		Message:      fmt.Sprintf("Winning the last trick with %s earns your team an extra point.", karlchen),
		Severity:     SeverityInfo,
		LearnMoreKey: "tactics.karlchen",
	}
}

type assistTeammateTrigger struct{}

func (assistTeammateTrigger) Kind() Kind { return KindAssistTeammate }

func (assistTeammateTrigger) Evaluate(ctx *Context) *Hint {
	winning, ok := domain.CurrentWinningCard(ctx.Trick, ctx.Rules)
	if !ok || !ctx.KnownTeammate(winning.Seat) {
		return nil
	}
	if ctx.Candidate.Points() >= 10 {
		return nil
	}
	for _, c := range ctx.LegalMoves() {
		if c.Points() >= 10 && !ctx.Rules.IsTrump(c) {
			return &Hint{
				Kind:         KindAssistTeammate,
				Title:        "Feed the trick",
				Message:      fmt.Sprintf("Your partner is winning this trick. Giving them %s banks its points for your team.", c),
				Severity:     SeverityInfo,
				LearnMoreKey: "tactics.schmieren",
			}
		}
	}
	return nil
}

type saveHighTrumpTrigger struct{}

func (saveHighTrumpTrigger) Kind() Kind { return KindSaveHighTrump }

// highTrumpThreshold covers the strongest trump and the four Queens.
const highTrumpThreshold = 4

func (saveHighTrumpTrigger) Evaluate(ctx *Context) *Hint {
	order, isTrump := ctx.Rules.TrumpOrder(ctx.Candidate)
	if !isTrump || order > highTrumpThreshold {
		return nil
	}
	winning, ok := domain.CurrentWinningCard(ctx.Trick, ctx.Rules)
	if !ok || !ctx.Rules.Beats(ctx.Candidate, winning.Card) {
		return nil
	}
	for _, c := range ctx.LegalMoves() {
		if c == ctx.Candidate || !ctx.Rules.Beats(c, winning.Card) {
			continue
		}
		if altOrder, altTrump := ctx.Rules.TrumpOrder(c); !altTrump || altOrder > order {
			return &Hint{
				Kind:         KindSaveHighTrump,
				Title:        "Save your high trump",
				Message:      fmt.Sprintf("%s also wins this trick. Keeping %s back preserves control for a later trick.", c, ctx.Candidate),
				Severity:     SeverityInfo,
				LearnMoreKey: "tactics.trump_control",
			}
		}
	}
	return nil
}

type discardValueTrigger struct{}

func (discardValueTrigger) Kind() Kind { return KindDiscardValue }

func (discardValueTrigger) Evaluate(ctx *Context) *Hint {
	winning, ok := domain.CurrentWinningCard(ctx.Trick, ctx.Rules)
	if !ok || ctx.KnownTeammate(winning.Seat) {
		return nil
	}
	if ctx.Candidate.Points() < 10 {
		return nil
	}
	legal := ctx.LegalMoves()
	for _, c := range legal {
		if ctx.Rules.Beats(c, winning.Card) {
			return nil
		}
	}
	for _, c := range legal {
		if c.Points() < ctx.Candidate.Points() {
			return &Hint{
				Kind:         KindDiscardValue,
				Title:        "Don't throw points away",
				Message:      fmt.Sprintf("You cannot win this trick, and %s hands the opponents %d points. A cheaper card keeps them.", ctx.Candidate, ctx.Candidate.Points()),
				Severity:     SeverityWarning,
				LearnMoreKey: "tactics.point_discipline",
			}
		}
	}
	return nil
}

type foxLostTrigger struct{}

func (foxLostTrigger) Kind() Kind { return KindFoxLost }

func (foxLostTrigger) Evaluate(ctx *Context) *Hint {
	if ctx.Completed == nil {
		return nil
	}
	if ctx.Completed.Winner == ctx.Seat || ctx.KnownTeammate(ctx.Completed.Winner) {
		return nil
	}
	for _, tc := range ctx.Completed.Cards {
		if tc.Seat == ctx.Seat && ctx.Rules.IsFox(tc.Card) {
			return &Hint{
				Kind:         KindFoxLost,
				Title:        "Fox captured",
				Message:      "Your Fox went to the other side. That is 11 points gone and a bonus point against your team.",
				Severity:     SeverityWarning,
				LearnMoreKey: "tactics.fox",
			}
		}
	}
	return nil
}

type bigTrickWonTrigger struct{}

func (bigTrickWonTrigger) Kind() Kind { return KindBigTrickWon }

func (bigTrickWonTrigger) Evaluate(ctx *Context) *Hint {
	if ctx.Completed == nil || ctx.Completed.Points < 40 {
		return nil
	}
	if ctx.Completed.Winner != ctx.Seat && !ctx.KnownTeammate(ctx.Completed.Winner) {
		return nil
	}
	return &Hint{
		Kind:         KindBigTrickWon,
		Title:        "Doppelkopf!",
		Message:      fmt.Sprintf("That trick was worth %d points. Any trick of 40 or more earns its own bonus point.", ctx.Completed.Points),
		Severity:     SeverityInfo,
		LearnMoreKey: "rules.doppelkopf_trick",
	}
}
