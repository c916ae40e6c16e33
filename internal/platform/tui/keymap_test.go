package tui

import (
	"path/filepath"
	"testing"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/vovakirdan/gemfall/internal/core"
	"github.com/vovakirdan/gemfall/internal/storage"
)

func runeKey(r rune) tea.KeyMsg {
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{r}}
}

func TestMapKey(t *testing.T) {
	km := NewKeyMapper()
	tests := []struct {
		name   string
		msg    tea.KeyMsg
		action core.Action
		quit   bool
	}{
		{"arrow up", tea.KeyMsg{Type: tea.KeyUp}, core.ActionUp, false},
		{"w", runeKey('w'), core.ActionUp, false},
		{"s", runeKey('s'), core.ActionDown, false},
		{"arrow left", tea.KeyMsg{Type: tea.KeyLeft}, core.ActionLeft, false},
		{"d", runeKey('d'), core.ActionRight, false},
		{"space", tea.KeyMsg{Type: tea.KeySpace, Runes: []rune{' '}}, core.ActionSelect, false},
		{"enter", tea.KeyMsg{Type: tea.KeyEnter}, core.ActionSelect, false},
		{"hint", runeKey('h'), core.ActionHint, false},
		{"pause", runeKey('p'), core.ActionPause, false},
		{"restart", runeKey('r'), core.ActionRestart, false},
		{"esc", tea.KeyMsg{Type: tea.KeyEsc}, core.ActionBack, false},
		{"q", runeKey('q'), core.ActionQuit, true},
		{"ctrl+c", tea.KeyMsg{Type: tea.KeyCtrlC}, core.ActionQuit, true},
		{"unbound", runeKey('z'), core.ActionNone, false},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			action, quit := km.MapKey(tc.msg)
			if action != tc.action || quit != tc.quit {
				t.Errorf("MapKey(%q) = %v, %v; expected %v, %v", tc.msg.String(), action, quit, tc.action, tc.quit)
			}
		})
	}
}

func TestMapKeyToFrame(t *testing.T) {
	km := NewKeyMapper()
	frame := core.NewInputFrame()

	if km.MapKeyToFrame(runeKey('h'), &frame) {
		t.Error("h should not quit")
	}
	if !frame.Has(core.ActionHint) {
		t.Error("frame should have the hint action")
	}
	if !km.MapKeyToFrame(runeKey('q'), &frame) {
		t.Error("q should quit")
	}
	if frame.Has(core.ActionQuit) {
		t.Error("quit is handled by the model, not the game")
	}
}

func TestMapKeyToMenuAction(t *testing.T) {
	km := NewKeyMapper()
	tests := map[string]struct {
		msg  tea.KeyMsg
		want MenuAction
	}{
		"k":     {runeKey('k'), MenuActionUp},
		"down":  {tea.KeyMsg{Type: tea.KeyDown}, MenuActionDown},
		"enter": {tea.KeyMsg{Type: tea.KeyEnter}, MenuActionSelect},
		"tab":   {tea.KeyMsg{Type: tea.KeyTab}, MenuActionScoreboard},
		"esc":   {tea.KeyMsg{Type: tea.KeyEsc}, MenuActionBack},
		"q":     {runeKey('q'), MenuActionQuit},
		"x":     {runeKey('x'), MenuActionNone},
	}
	for name, tc := range tests {
		if got := km.MapKeyToMenuAction(tc.msg); got != tc.want {
			t.Errorf("%s: MapKeyToMenuAction() = %v, expected %v", name, got, tc.want)
		}
	}
}

// stubGame ends after a fixed number of ticks and reports a summary.
type stubGame struct {
	ticks    int
	endAfter int
	resets   int
	resized  bool
}

func (g *stubGame) ID() string          { return "stub" }
func (g *stubGame) Title() string       { return "Stub" }
func (g *stubGame) Render(*core.Screen) {}
func (g *stubGame) Resize(int, int)     { g.resized = true }

func (g *stubGame) Reset(core.RuntimeConfig) {
	g.ticks = 0
	g.resets++
}

func (g *stubGame) Summary() core.RunSummary {
	return core.RunSummary{Score: 120, Moves: 4, LongestChain: 2}
}

func (g *stubGame) Step(in core.InputFrame) core.StepResult {
	if in.Has(core.ActionRestart) {
		g.ticks = 0
	} else {
		g.ticks++
	}
	return core.StepResult{State: g.State()}
}

func (g *stubGame) State() core.GameState {
	over := g.ticks >= g.endAfter
	return core.GameState{Score: 120, GameOver: over}
}

func TestGameModelSavesRunOnce(t *testing.T) {
	store, err := storage.Open(filepath.Join(t.TempDir(), "scores.db"))
	if err != nil {
		t.Fatalf("Open() failed: %v", err)
	}
	defer store.Close()

	game := &stubGame{endAfter: 3}
	m := NewGameModel(game, store, core.RuntimeConfig{ScreenW: 80, ScreenH: 24, TickRate: 30, Seed: 1})

	var model tea.Model = m
	for range 10 {
		model, _ = model.Update(TickMsg{})
	}

	runs, err := store.RecentRuns("stub", 10)
	if err != nil {
		t.Fatalf("RecentRuns() failed: %v", err)
	}
	if len(runs) != 1 {
		t.Fatalf("got %d runs, expected 1", len(runs))
	}
	if runs[0].Moves != 4 || runs[0].LongestChain != 2 {
		t.Errorf("run = %+v, expected the game's summary", runs[0])
	}

	// Restart then finish again: a second run is recorded.
	model, _ = model.Update(runeKey('r'))
	for range 10 {
		model, _ = model.Update(TickMsg{})
	}
	runs, _ = store.RecentRuns("stub", 10)
	if len(runs) != 2 {
		t.Errorf("got %d runs after restart, expected 2", len(runs))
	}
}

func TestGameModelResize(t *testing.T) {
	game := &stubGame{endAfter: 100}
	m := NewGameModel(game, nil, core.RuntimeConfig{ScreenW: 80, ScreenH: 24, TickRate: 30, Seed: 1})

	m.Update(tea.WindowSizeMsg{Width: 100, Height: 40})
	if !game.resized || game.resets != 0 {
		t.Errorf("resize should call Resize without Reset (resized=%v resets=%d)", game.resized, game.resets)
	}
}

func TestGameModelBack(t *testing.T) {
	game := &stubGame{endAfter: 1}
	var model tea.Model = NewGameModel(game, nil, core.RuntimeConfig{ScreenW: 80, ScreenH: 24, TickRate: 30, Seed: 1})

	model, _ = model.Update(tea.KeyMsg{Type: tea.KeyEsc})
	if model.(GameModel).BackToMenu() {
		t.Error("back should be ignored while playing")
	}

	model, _ = model.Update(TickMsg{})
	model, _ = model.Update(tea.KeyMsg{Type: tea.KeyEsc})
	if !model.(GameModel).BackToMenu() {
		t.Error("back should return to the menu after game over")
	}
}
