package gemfall

import (
	"github.com/vovakirdan/gemfall/internal/config"
	"github.com/vovakirdan/gemfall/internal/match3"
)

// Phase is the kind of step the timeline is playing.
type Phase int

const (
	PhaseIdle Phase = iota
	PhaseSwap
	PhaseClear
	PhaseFall
	PhaseShuffle
)

// String returns the phase name.
func (p Phase) String() string {
	switch p {
	case PhaseSwap:
		return "swap"
	case PhaseClear:
		return "clear"
	case PhaseFall:
		return "fall"
	case PhaseShuffle:
		return "shuffle"
	default:
		return "idle"
	}
}

// step is one animated phase built from a run of engine events.
type step struct {
	phase    Phase
	a, b     match3.Cell // swap
	reverted bool        // swap
	cells    []match3.Cell
	chain    int
	score    int // running total once the step is done
	falls    []match3.FallEvent
	layout   *match3.Grid
}

// Sprite is a gem drawn off its resting cell, at a fractional row.
type Sprite struct {
	Type match3.GemType
	X    int
	Y    float64 // board rows, 0 is the bottom
}

// Timeline replays an engine event log against the board the player sees,
// one phase at a time. The engine has already committed the final state;
// the timeline only paces how it is shown.
type Timeline struct {
	board *match3.Grid
	steps []step
	cur   int
	ticks int
	anim  config.AnimationConfig
	score int
}

// NewTimeline builds a timeline that starts from board (copied) and the
// given score. Events that do not change the picture are skipped.
func NewTimeline(board *match3.Grid, score int, events []match3.Event, anim config.AnimationConfig) *Timeline {
	t := &Timeline{
		board: board.Clone(),
		anim:  anim,
		score: score,
	}

	running := score
	for _, e := range events {
		switch ev := e.(type) {
		case match3.Swapped:
			t.steps = append(t.steps, step{phase: PhaseSwap, a: ev.A, b: ev.B, reverted: ev.Reverted, score: running})
		case match3.Cleared:
			t.steps = append(t.steps, step{phase: PhaseClear, cells: ev.Cells, chain: ev.Chain, score: running})
		case match3.ScoreChanged:
			running = ev.Total
			if n := len(t.steps); n > 0 && t.steps[n-1].phase == PhaseClear {
				t.steps[n-1].score = running
			}
		case match3.Fell:
			n := len(t.steps)
			if n == 0 || t.steps[n-1].phase != PhaseFall {
				t.steps = append(t.steps, step{phase: PhaseFall, score: running})
				n++
			}
			t.steps[n-1].falls = append(t.steps[n-1].falls, match3.FallEvent(ev))
		case match3.Shuffled:
			t.steps = append(t.steps, step{phase: PhaseShuffle, layout: ev.Layout, score: running})
		}
	}
	t.skipInstant()
	return t
}

func (t *Timeline) duration(s step) int {
	switch s.phase {
	case PhaseSwap:
		if s.reverted {
			return 2 * t.anim.SwapTicks
		}
		return t.anim.SwapTicks
	case PhaseClear:
		return t.anim.ClearTicks
	case PhaseFall:
		return t.anim.FallTicks
	case PhaseShuffle:
		return t.anim.ShuffleTicks
	}
	return 0
}

// Advance moves the timeline forward by one tick.
func (t *Timeline) Advance() {
	if t.Done() {
		return
	}
	t.ticks++
	t.skipInstant()
}

// skipInstant applies every step whose time is up.
func (t *Timeline) skipInstant() {
	for t.cur < len(t.steps) && t.ticks >= t.duration(t.steps[t.cur]) {
		t.apply(t.steps[t.cur])
		t.cur++
		t.ticks = 0
	}
}

// Finish applies all remaining steps at once.
func (t *Timeline) Finish() {
	for t.cur < len(t.steps) {
		t.apply(t.steps[t.cur])
		t.cur++
	}
	t.ticks = 0
}

func (t *Timeline) apply(s step) {
	switch s.phase {
	case PhaseSwap:
		if !s.reverted {
			t.board.Swap(s.a, s.b) //nolint:errcheck // cells come from the engine
		}
	case PhaseClear:
		for _, c := range s.cells {
			t.board.Set(c, match3.None) //nolint:errcheck // cells come from the engine
		}
	case PhaseFall:
		// Vacate every origin first: a destination may be another gem's origin.
		for _, f := range s.falls {
			if !f.Spawned {
				t.board.Set(f.From, match3.None) //nolint:errcheck
			}
		}
		for _, f := range s.falls {
			t.board.Set(f.To, f.Type) //nolint:errcheck
		}
	case PhaseShuffle:
		t.board = s.layout.Clone()
	}
	t.score = s.score
}

// Done reports whether every step has been shown.
func (t *Timeline) Done() bool {
	return t.cur >= len(t.steps)
}

// Board returns the board as of the last finished step.
func (t *Timeline) Board() *match3.Grid {
	return t.board
}

// Score returns the score as of the last finished step.
func (t *Timeline) Score() int {
	return t.score
}

// Current returns the playing phase and its progress in [0, 1).
func (t *Timeline) Current() (Phase, float64) {
	if t.Done() {
		return PhaseIdle, 0
	}
	s := t.steps[t.cur]
	d := t.duration(s)
	if d <= 0 {
		return s.phase, 0
	}
	return s.phase, float64(t.ticks) / float64(d)
}

// Chain returns the cascade depth being shown, or 0 outside a cascade.
func (t *Timeline) Chain() int {
	for i := t.cur; i >= 0 && i < len(t.steps); i-- {
		if t.steps[i].phase == PhaseClear {
			return t.steps[i].chain
		}
		if t.steps[i].phase == PhaseSwap {
			return 0
		}
	}
	return 0
}

// Highlight returns cells the current step draws attention to: the swapped
// pair or the cells being cleared.
func (t *Timeline) Highlight() []match3.Cell {
	if t.Done() {
		return nil
	}
	s := t.steps[t.cur]
	switch s.phase {
	case PhaseSwap:
		return []match3.Cell{s.a, s.b}
	case PhaseClear:
		return s.cells
	}
	return nil
}

// SwapShown reports whether the swap being played currently appears
// exchanged. A reverted swap goes out and comes back.
func (t *Timeline) SwapShown() bool {
	phase, p := t.Current()
	if phase != PhaseSwap {
		return false
	}
	if t.steps[t.cur].reverted {
		return p >= 0.25 && p < 0.75
	}
	return p >= 0.5
}

// Sprites returns the gems in flight during a fall step, and the resting
// cells they have left, which should be drawn empty.
func (t *Timeline) Sprites() (sprites []Sprite, vacated map[match3.Cell]bool) {
	phase, p := t.Current()
	if phase != PhaseFall {
		return nil, nil
	}
	eased := easeInQuad(p)
	vacated = make(map[match3.Cell]bool)
	for _, f := range t.steps[t.cur].falls {
		if !f.Spawned {
			vacated[f.From] = true
		}
		y := float64(f.From.Y) + (float64(f.To.Y)-float64(f.From.Y))*eased
		sprites = append(sprites, Sprite{Type: f.Type, X: f.To.X, Y: y})
	}
	return sprites, vacated
}

// easeInQuad accelerates like a falling object.
func easeInQuad(t float64) float64 {
	return t * t
}
