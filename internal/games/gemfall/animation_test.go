package gemfall

import (
	"math/rand"
	"testing"

	"github.com/vovakirdan/gemfall/internal/config"
	"github.com/vovakirdan/gemfall/internal/match3"
)

var testAnim = config.AnimationConfig{SwapTicks: 2, ClearTicks: 3, FallTicks: 4, ShuffleTicks: 5}

// scenario swaps the right column of "CBA"/"AAB", clearing the bottom row
// once. Refills are B, A, C by column.
func scenario(t *testing.T) (*match3.Grid, match3.Result) {
	t.Helper()
	cfg := match3.DefaultConfig()
	cfg.Width, cfg.Height = 3, 2
	cfg.Types = []match3.GemType{1, 2, 3}
	gen := func(c match3.Cell) match3.GemType {
		return [...]match3.GemType{2, 1, 3}[c.X]
	}

	s, err := match3.NewSession(cfg, rand.New(rand.NewSource(1)), match3.WithGenerator(gen))
	if err != nil {
		t.Fatalf("NewSession() failed: %v", err)
	}
	start := match3.MustParseGrid("CBA", "AAB")
	if _, err := s.StartWithGrid(start); err != nil {
		t.Fatalf("StartWithGrid() failed: %v", err)
	}
	res, err := s.RequestSwap(match3.C(2, 0), match3.C(2, 1))
	if err != nil {
		t.Fatalf("RequestSwap() failed: %v", err)
	}
	return start, res
}

func TestTimelinePhases(t *testing.T) {
	start, res := scenario(t)
	tl := NewTimeline(start, 0, res.Events, testAnim)

	steps := []struct {
		advance int
		phase   Phase
		score   int
		rows    []string
	}{
		{0, PhaseSwap, 0, []string{"CBA", "AAB"}},
		{2, PhaseClear, 0, []string{"CBB", "AAA"}},
		{3, PhaseFall, 30, []string{"CBB", "..."}},
		{4, PhaseIdle, 30, []string{"BAC", "CBB"}},
	}

	for i, st := range steps {
		for range st.advance {
			tl.Advance()
		}
		phase, _ := tl.Current()
		if phase != st.phase {
			t.Errorf("step %d: phase = %v, expected %v", i, phase, st.phase)
		}
		if tl.Score() != st.score {
			t.Errorf("step %d: score = %d, expected %d", i, tl.Score(), st.score)
		}
		rows := tl.Board().Rows()
		for j := range st.rows {
			if rows[j] != st.rows[j] {
				t.Errorf("step %d: board = %v, expected %v", i, rows, st.rows)
				break
			}
		}
	}

	if !tl.Done() {
		t.Error("timeline should be done")
	}
	if !tl.Board().Equal(res.Board) {
		t.Errorf("replayed board = %v, expected %v", tl.Board().Rows(), res.Board.Rows())
	}
}

func TestTimelineDoesNotModifyInput(t *testing.T) {
	start, res := scenario(t)
	before := start.Clone()
	tl := NewTimeline(start, 0, res.Events, testAnim)
	tl.Finish()

	if !start.Equal(before) {
		t.Error("NewTimeline should copy the starting board")
	}
}

func TestTimelineFinish(t *testing.T) {
	start, res := scenario(t)
	tl := NewTimeline(start, 0, res.Events, testAnim)
	tl.Advance()
	tl.Finish()

	if !tl.Done() {
		t.Error("Finish() should complete the timeline")
	}
	if !tl.Board().Equal(res.Board) || tl.Score() != 30 {
		t.Errorf("after Finish() board = %v score = %d", tl.Board().Rows(), tl.Score())
	}
	tl.Advance() // no-op once done
	if phase, _ := tl.Current(); phase != PhaseIdle {
		t.Errorf("phase = %v, expected idle", phase)
	}
}

func TestTimelineZeroDurationsAreInstant(t *testing.T) {
	start, res := scenario(t)
	tl := NewTimeline(start, 0, res.Events, config.AnimationConfig{})

	if !tl.Done() {
		t.Fatal("timeline with zero durations should finish immediately")
	}
	if !tl.Board().Equal(res.Board) {
		t.Errorf("board = %v, expected %v", tl.Board().Rows(), res.Board.Rows())
	}
}

func TestTimelineSprites(t *testing.T) {
	start, res := scenario(t)
	tl := NewTimeline(start, 0, res.Events, testAnim)

	if sprites, _ := tl.Sprites(); sprites != nil {
		t.Error("no sprites expected outside a fall")
	}

	for range 5 {
		tl.Advance()
	}
	sprites, vacated := tl.Sprites()
	if len(sprites) != 6 {
		t.Fatalf("got %d sprites, expected 6", len(sprites))
	}
	if len(vacated) != 3 {
		t.Errorf("got %d vacated cells, expected 3", len(vacated))
	}
	for x := range 3 {
		if !vacated[match3.C(x, 1)] {
			t.Errorf("cell (%d,1) should be vacated", x)
		}
	}
	// Progress 0: every sprite is still at its origin.
	for _, s := range sprites {
		if s.Y != 1 && s.Y != 2 {
			t.Errorf("sprite %+v should start at row 1 or 2", s)
		}
	}

	if tl.Chain() != 1 {
		t.Errorf("Chain() = %d, expected 1", tl.Chain())
	}
}

func TestTimelineRevertedSwap(t *testing.T) {
	board := match3.MustParseGrid("ABC", "BCA", "CAB")
	a, b := match3.C(0, 0), match3.C(1, 0)
	events := []match3.Event{match3.Swapped{A: a, B: b, Reverted: true}}
	tl := NewTimeline(board, 7, events, testAnim)

	// Reverted swaps run out and back: 2 * SwapTicks.
	shown := []bool{false, true, true, false}
	for i, want := range shown {
		if got := tl.SwapShown(); got != want {
			t.Errorf("tick %d: SwapShown() = %v, expected %v", i, got, want)
		}
		if hl := tl.Highlight(); len(hl) != 2 || hl[0] != a || hl[1] != b {
			t.Errorf("tick %d: Highlight() = %v", i, hl)
		}
		tl.Advance()
	}

	if !tl.Done() {
		t.Error("timeline should be done after 4 ticks")
	}
	if !tl.Board().Equal(board) || tl.Score() != 7 {
		t.Errorf("reverted swap changed the board or score: %v %d", tl.Board().Rows(), tl.Score())
	}
}

func TestTimelineShuffle(t *testing.T) {
	board := match3.MustParseGrid("AAB", "BBA", "ABA")
	layout := match3.MustParseGrid("ABA", "BAB", "ABA")
	events := []match3.Event{
		match3.SessionStateChanged{State: match3.StateActive},
		match3.Shuffled{Layout: layout, Attempts: 3},
	}
	tl := NewTimeline(board, 0, events, testAnim)

	if phase, _ := tl.Current(); phase != PhaseShuffle {
		t.Fatalf("phase = %v, expected shuffle", phase)
	}
	tl.Finish()
	if !tl.Board().Equal(layout) {
		t.Errorf("board = %v, expected shuffled layout", tl.Board().Rows())
	}
}

func TestPhaseString(t *testing.T) {
	names := map[Phase]string{
		PhaseIdle:    "idle",
		PhaseSwap:    "swap",
		PhaseClear:   "clear",
		PhaseFall:    "fall",
		PhaseShuffle: "shuffle",
	}
	for p, want := range names {
		if p.String() != want {
			t.Errorf("%d.String() = %q, expected %q", p, p.String(), want)
		}
	}
}
