package domain

import "errors"

var (
	// ErrInvariant marks corruption of a core invariant (bad deal, broken
	// team split, winnerless complete trick). Callers should treat it as a
	// bug, not a recoverable input error.
	ErrInvariant = errors.New("game invariant violated")

	// ErrTrickFull is returned when a fifth card is played into a trick.
	ErrTrickFull = errors.New("trick already holds four cards")

	// ErrTrickIncomplete is returned when a winner is requested for a trick
	// that has not seen all four cards.
	ErrTrickIncomplete = errors.New("trick is not complete")
)
