package hints

import (
	"doppelkopf/internal/domain"

	"go.uber.org/zap"
)

// Engine evaluates hint triggers against a game context and enforces
// the suppression policy. One engine serves one player in one game
// session; independent sessions get independent engines.
type Engine struct {
	logger        *zap.Logger
	suppression   *Suppression
	moveTriggers  []Trigger
	trickTriggers []Trigger
}

func NewEngine(logger *zap.Logger) *Engine {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Engine{
		logger:        logger,
		suppression:   NewSuppression(),
		moveTriggers:  MoveTriggers(),
		trickTriggers: TrickTriggers(),
	}
}

// SetLimits overrides the suppression caps, typically from game config.
// Non-positive values keep the current cap.
func (e *Engine) SetLimits(perGame, perTrick int) {
	if perGame > 0 {
		e.suppression.MaxPerGame = perGame
	}
	if perTrick > 0 {
		e.suppression.MaxPerTrick = perTrick
	}
}

// EvaluateMove runs the pre-move triggers against a candidate card and
// returns the first hint that fires and passes suppression, or nil.
func (e *Engine) EvaluateMove(ctx *Context) *Hint {
	return e.evaluate(e.moveTriggers, ctx)
}

// EvaluateTrick runs the post-trick triggers against a completed trick.
func (e *Engine) EvaluateTrick(ctx *Context) *Hint {
	return e.evaluate(e.trickTriggers, ctx)
}

func (e *Engine) evaluate(triggers []Trigger, ctx *Context) *Hint {
	for _, trigger := range triggers {
		hint := e.safeEvaluate(trigger, ctx)
		if hint == nil {
			continue
		}
		if !e.suppression.Allows(hint.Kind) {
			continue
		}
		e.suppression.Record(hint.Kind)
		return hint
	}
	return nil
}

// safeEvaluate isolates a panicking trigger. The turn loop must survive
// any single predicate failing, so a panic logs and reads as no hint.
func (e *Engine) safeEvaluate(trigger Trigger, ctx *Context) (hint *Hint) {
	defer func() {
		if r := recover(); r != nil {
			hint = nil
			e.logger.Error("hint trigger panicked",
				zap.String("kind", string(trigger.Kind())),
				zap.Any("panic", r),
			)
		}
	}()
	return trigger.Evaluate(ctx)
}

// RuleViolation builds the explanation for a rejected card. It bypasses
// suppression and is never counted against the limits.
func (e *Engine) RuleViolation(c domain.Card, t *domain.Trick, rules domain.Rules) *Hint {
	return RuleViolationHint(c, t, rules)
}

// OnTrickComplete resets the per-trick hint budget. Call exactly once
// per archived trick, after any post-trick evaluation.
func (e *Engine) OnTrickComplete() {
	e.suppression.AdvanceTrick()
}

// Reset clears all suppression state for a new game.
func (e *Engine) Reset() {
	e.suppression.Reset()
}
