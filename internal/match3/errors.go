package match3

import "errors"

var (
	// ErrOutOfRange is returned when a cell lies outside the grid.
	// It is a programmer error: callers bounds-check with Width/Height.
	ErrOutOfRange = errors.New("match3: cell out of range")

	// ErrInvalidMove is returned when a swap is rejected: the cells are not
	// 4-adjacent or the session is not active.
	ErrInvalidMove = errors.New("match3: invalid move")

	// ErrSessionInactive accompanies ErrInvalidMove when the session is stopped.
	ErrSessionInactive = errors.New("match3: session inactive")

	// ErrSessionBusy is returned when an operation arrives while a previous
	// cascade or shuffle is still resolving.
	ErrSessionBusy = errors.New("match3: session busy")

	// ErrShuffleExhausted is returned when no layout satisfying "no match,
	// at least one move" was found within the retry limit.
	ErrShuffleExhausted = errors.New("match3: shuffle exhausted")

	// ErrInvalidConfig is returned by NewSession for unusable settings.
	ErrInvalidConfig = errors.New("match3: invalid config")
)
