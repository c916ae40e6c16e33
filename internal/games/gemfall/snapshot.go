package gemfall

import "github.com/vovakirdan/gemfall/internal/match3"

// GameStateType represents the current game state.
type GameStateType string

const (
	StatePlaying     GameStateType = "playing"
	StateAnimating   GameStateType = "animating"
	StatePaused      GameStateType = "paused"
	StateTimeUp      GameStateType = "time_up"
	StateNoMoves     GameStateType = "no_moves"
	StateError       GameStateType = "error"
	StatePausedSmall GameStateType = "paused_small_window"
)

// Snapshot captures the complete game state for determinism testing and replay.
type Snapshot struct {
	Tick     uint64
	Mode     string   // "timed" or "zen"
	Score    int      // Engine score, ahead of the display while animating
	Moves    int
	Board    []string // Engine board, top row first
	Cursor   match3.Cell
	Selected *match3.Cell
	TimeLeft int // Seconds, -1 when untimed
	State    GameStateType
}

// Snapshot returns the current game snapshot for determinism verification.
func (g *Game) Snapshot() Snapshot {
	state := StatePlaying
	switch {
	case g.err != nil:
		state = StateError
	case g.tooSmall:
		state = StatePausedSmall
	case g.gameOver && g.deadlock:
		state = StateNoMoves
	case g.gameOver:
		state = StateTimeUp
	case g.paused:
		state = StatePaused
	case g.timeline != nil:
		state = StateAnimating
	}

	st := g.State()
	snap := Snapshot{
		Tick:     g.tick,
		Mode:     string(g.mode),
		Score:    st.Score,
		Moves:    st.Moves,
		Cursor:   g.cursor,
		TimeLeft: st.TimeLeft,
		State:    state,
	}
	if g.hasSelect {
		sel := g.selected
		snap.Selected = &sel
	}
	if g.session != nil {
		if b := g.session.Board(); b != nil {
			snap.Board = b.Rows()
		}
	}
	return snap
}
