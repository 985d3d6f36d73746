package hints

const (
	// DefaultMaxPerGame caps non-rule hints per game session.
	DefaultMaxPerGame = 8
	// DefaultMaxPerTrick caps non-rule hints per trick.
	DefaultMaxPerTrick = 1
)

// Suppression tracks which hints have been shown this game. It is the
// only mutable state the hint engine owns. Rule-violation hints bypass
// every limit and are never counted.
type Suppression struct {
	MaxPerGame  int
	MaxPerTrick int

	shownTotal     int
	shownThisTrick int
	shownKinds     map[Kind]bool
}

func NewSuppression() *Suppression {
	return &Suppression{
		MaxPerGame:  DefaultMaxPerGame,
		MaxPerTrick: DefaultMaxPerTrick,
		shownKinds:  make(map[Kind]bool),
	}
}

// Allows reports whether a hint of the given kind may be shown now.
func (s *Suppression) Allows(kind Kind) bool {
	if kind == KindFollowSuitViolation {
		return true
	}
	if s.shownTotal >= s.MaxPerGame {
		return false
	}
	if s.shownThisTrick >= s.MaxPerTrick {
		return false
	}
	return !s.shownKinds[kind]
}

// Record marks a hint as shown. Rule-violation hints do not count
// against any limit.
func (s *Suppression) Record(kind Kind) {
	if kind == KindFollowSuitViolation {
		return
	}
	s.shownTotal++
	s.shownThisTrick++
	s.shownKinds[kind] = true
}

// AdvanceTrick resets the per-trick counter. Called exactly once per
// completed trick.
func (s *Suppression) AdvanceTrick() {
	s.shownThisTrick = 0
}

// Reset clears all counters for a new game session.
func (s *Suppression) Reset() {
	s.shownTotal = 0
	s.shownThisTrick = 0
	s.shownKinds = make(map[Kind]bool)
}
