package match3

// Event is one entry of the ordered log a renderer replays after an
// operation. Concrete types: SessionStateChanged, Swapped, Cleared, Fell,
// Shuffled, ScoreChanged.
type Event interface {
	isEvent()
}

// SessionStateChanged is emitted when the session becomes active or inactive.
type SessionStateChanged struct {
	State State
}

func (SessionStateChanged) isEvent() {}

// Swapped is emitted for an accepted swap request. Reverted is true when the
// swap produced no match and was undone.
type Swapped struct {
	A        Cell
	B        Cell
	Reverted bool
}

func (Swapped) isEvent() {}

// Cleared is emitted for each cascade pass. Chain is 1 for the match made by
// the player's swap and grows with every gravity-triggered pass.
type Cleared struct {
	Cells []Cell
	Count int
	Chain int
}

func (Cleared) isEvent() {}

// Fell is one gem movement of a gravity pass.
type Fell FallEvent

func (Fell) isEvent() {}

// Shuffled carries the final layout after a deadlock shuffle.
type Shuffled struct {
	Layout   *Grid
	Attempts int
}

func (Shuffled) isEvent() {}

// ScoreChanged reports a score delta and the resulting total.
type ScoreChanged struct {
	Delta int
	Total int
}

func (ScoreChanged) isEvent() {}

// EventName returns a short name for logging.
func EventName(e Event) string {
	switch e.(type) {
	case SessionStateChanged:
		return "state"
	case Swapped:
		return "swap"
	case Cleared:
		return "clear"
	case Fell:
		return "fall"
	case Shuffled:
		return "shuffle"
	case ScoreChanged:
		return "score"
	default:
		return "unknown"
	}
}
