// Package gemfall implements the gemfall match-3 game on top of the match3
// engine. It owns everything the engine leaves to its caller: the cursor and
// selection, the round timer and the pacing of cascade animations.
package gemfall

import (
	"errors"
	"math/rand"
	"sync"

	"github.com/vovakirdan/gemfall/internal/config"
	"github.com/vovakirdan/gemfall/internal/core"
	"github.com/vovakirdan/gemfall/internal/match3"
	"github.com/vovakirdan/gemfall/internal/registry"
)

// Mode represents the game mode.
type Mode string

const (
	ModeTimed Mode = "timed"
	ModeZen   Mode = "zen"
)

const (
	hintTicksSeconds    = 3
	messageTicksSeconds = 2
)

// Game implements the gemfall puzzle.
type Game struct {
	mode    Mode
	cfg     config.GemfallConfig
	palette map[match3.GemType]config.GemStyle

	rng      *rand.Rand
	session  *match3.Session
	seed     int64
	tick     uint64
	tickRate int

	// Screen dimensions
	screenW int
	screenH int

	// What the player sees; trails the engine while a timeline plays.
	display  *match3.Grid
	shown    int // displayed score
	timeline *Timeline

	cursor    match3.Cell
	selected  match3.Cell
	hasSelect bool
	hint      match3.Move
	hintTicks int

	timeLeft     int // ticks, -1 when untimed
	roundTicks   int
	message      string
	messageTicks int

	gameOver bool
	deadlock bool // ended because no playable layout could be found
	paused   bool
	tooSmall bool
	err      error
}

var (
	defaultMu  sync.RWMutex
	defaultCfg = config.DefaultGemfallConfig()
)

// SetConfig sets the configuration new games are created with.
func SetConfig(cfg config.GemfallConfig) {
	defaultMu.Lock()
	defer defaultMu.Unlock()
	defaultCfg = cfg
}

func currentConfig() config.GemfallConfig {
	defaultMu.RLock()
	defer defaultMu.RUnlock()
	return defaultCfg
}

// New creates a game in the given mode with the configuration set by SetConfig.
func New(mode Mode) *Game {
	return NewWithConfig(mode, currentConfig())
}

// NewWithConfig creates a game with an explicit configuration.
func NewWithConfig(mode Mode, cfg config.GemfallConfig) *Game {
	if mode == ModeZen {
		cfg.Timer.DurationSeconds = 0
	}
	return &Game{
		mode:    mode,
		cfg:     cfg,
		palette: cfg.Palette(),
	}
}

func init() {
	registry.Register("gemfall", func() registry.Game {
		return New(ModeTimed)
	})
	registry.Register("gemfall_zen", func() registry.Game {
		return New(ModeZen)
	})
}

// ID returns the game identifier.
func (g *Game) ID() string {
	if g.mode == ModeZen {
		return "gemfall_zen"
	}
	return "gemfall"
}

// Title returns the display name.
func (g *Game) Title() string {
	if g.mode == ModeZen {
		return "Gemfall (Zen)"
	}
	return "Gemfall"
}

// Description returns a one-line summary for menus.
func (g *Game) Description() string {
	if g.mode == ModeZen {
		return "No clock; play until the board runs out of moves"
	}
	return "Match three or more gems before the clock runs out"
}

// Reset initializes/restarts the game.
func (g *Game) Reset(cfg core.RuntimeConfig) {
	g.seed = cfg.Seed
	g.rng = rand.New(rand.NewSource(cfg.Seed))
	g.tickRate = cfg.TickRate
	if g.tickRate <= 0 {
		g.tickRate = core.DefaultConfig().TickRate
	}
	g.screenW = cfg.ScreenW
	g.screenH = cfg.ScreenH
	g.tick = 0
	g.paused = false
	g.err = nil

	g.checkScreenSize()

	if err := g.cfg.Validate(); err != nil {
		g.fail(err)
		return
	}
	session, err := match3.NewSession(g.cfg.EngineConfig(), g.rng)
	if err != nil {
		g.fail(err)
		return
	}
	g.session = session
	g.startRound()
}

// Resize adapts the layout to a new terminal size without restarting.
func (g *Game) Resize(w, h int) {
	g.screenW = w
	g.screenH = h
	g.checkScreenSize()
}

// startRound deals a new board on the existing session.
func (g *Game) startRound() {
	res, err := g.session.Start()
	if err != nil {
		g.fail(err)
		return
	}

	g.display = res.Board
	g.shown = 0
	g.timeline = nil
	g.cursor = match3.C(g.cfg.Board.Width/2, g.cfg.Board.Height/2)
	g.hasSelect = false
	g.hintTicks = 0
	g.roundTicks = 0
	g.gameOver = false
	g.deadlock = false
	g.message = ""
	g.messageTicks = 0

	g.timeLeft = -1
	if g.cfg.Timer.DurationSeconds > 0 {
		g.timeLeft = g.cfg.Timer.DurationSeconds * g.tickRate
	}
}

func (g *Game) fail(err error) {
	g.err = err
	g.gameOver = true
}

// checkScreenSize checks if the screen is large enough.
func (g *Game) checkScreenSize() {
	minW, minH := g.layoutSize()
	g.tooSmall = g.screenW < minW || g.screenH < minH
}

// Step advances the game by one tick.
func (g *Game) Step(in core.InputFrame) core.StepResult {
	g.tick++

	if g.err != nil || g.tooSmall {
		return core.StepResult{State: g.State()}
	}

	if in.Has(core.ActionRestart) {
		g.finishTimeline()
		g.startRound()
		return core.StepResult{State: g.State()}
	}

	if in.Has(core.ActionPause) && !g.gameOver {
		g.paused = !g.paused
	}
	if g.paused || g.gameOver {
		return core.StepResult{State: g.State()}
	}

	g.roundTicks++
	g.advanceTimeline()
	g.countdown()
	if g.gameOver {
		return core.StepResult{State: g.State()}
	}

	g.moveCursor(in)

	if in.Has(core.ActionHint) {
		g.showHint()
	}
	if in.Has(core.ActionSelect) {
		g.selectAtCursor()
	}

	if g.hintTicks > 0 {
		g.hintTicks--
	}
	if g.messageTicks > 0 {
		g.messageTicks--
		if g.messageTicks == 0 {
			g.message = ""
		}
	}

	return core.StepResult{State: g.State()}
}

func (g *Game) advanceTimeline() {
	if g.timeline == nil {
		return
	}
	g.timeline.Advance()
	g.display = g.timeline.Board()
	g.shown = g.timeline.Score()
	if g.timeline.Done() {
		g.timeline = nil
	}
}

func (g *Game) finishTimeline() {
	if g.timeline == nil {
		return
	}
	g.timeline.Finish()
	g.display = g.timeline.Board()
	g.shown = g.timeline.Score()
	g.timeline = nil
}

// countdown runs the round clock and stops the session when it expires.
func (g *Game) countdown() {
	if g.timeLeft < 0 {
		return
	}
	if g.timeLeft > 0 {
		g.timeLeft--
	}
	if g.timeLeft == 0 {
		g.finishTimeline()
		res := g.session.Stop()
		if res.Board != nil {
			g.display = res.Board
		}
		g.shown = res.Score
		g.gameOver = true
		g.hasSelect = false
	}
}

func (g *Game) moveCursor(in core.InputFrame) {
	w, h := g.cfg.Board.Width, g.cfg.Board.Height
	switch {
	case in.Has(core.ActionUp):
		g.cursor.Y = core.Clamp(g.cursor.Y+1, 0, h-1)
	case in.Has(core.ActionDown):
		g.cursor.Y = core.Clamp(g.cursor.Y-1, 0, h-1)
	}
	switch {
	case in.Has(core.ActionLeft):
		g.cursor.X = core.Clamp(g.cursor.X-1, 0, w-1)
	case in.Has(core.ActionRight):
		g.cursor.X = core.Clamp(g.cursor.X+1, 0, w-1)
	}
}

func (g *Game) showHint() {
	if move, ok := g.session.Hint(); ok {
		g.hint = move
		g.hintTicks = hintTicksSeconds * g.tickRate
	}
}

// selectAtCursor picks, drops or swaps the gem under the cursor. Input is
// ignored while an animation plays.
func (g *Game) selectAtCursor() {
	if g.timeline != nil {
		return
	}

	switch {
	case !g.hasSelect:
		g.selected = g.cursor
		g.hasSelect = true
	case g.selected == g.cursor:
		g.hasSelect = false
	case !g.selected.Adjacent(g.cursor):
		// A distant second pick only drops the first one.
		g.hasSelect = false
	default:
		a := g.selected
		g.hasSelect = false
		g.swap(a, g.cursor)
	}
}

func (g *Game) swap(a, b match3.Cell) {
	before := g.display
	beforeScore := g.shown

	res, err := g.session.RequestSwap(a, b)
	switch {
	case errors.Is(err, match3.ErrShuffleExhausted):
		// The cascade was committed before the reshuffle failed.
		g.play(before, beforeScore, res.Events)
		g.finishTimeline()
		g.gameOver = true
		g.deadlock = true
		return
	case err != nil:
		g.flash(err.Error())
		return
	}

	g.hintTicks = 0
	g.play(before, beforeScore, res.Events)

	switch {
	case res.Outcome == match3.OutcomeNoMatch:
		g.flash("No match")
	case res.Chain > 1:
		g.flash("Chain x" + itoa(res.Chain) + "!")
	case res.Shuffled:
		g.flash("No moves left, shuffling")
	}
}

func (g *Game) play(board *match3.Grid, score int, events []match3.Event) {
	t := NewTimeline(board, score, events, g.cfg.Animation)
	g.display = t.Board()
	g.shown = t.Score()
	if t.Done() {
		g.timeline = nil
		return
	}
	g.timeline = t
}

func (g *Game) flash(msg string) {
	g.message = msg
	g.messageTicks = messageTicksSeconds * g.tickRate
}

// State returns the current game state.
func (g *Game) State() core.GameState {
	st := core.GameState{
		TimeLeft: -1,
		GameOver: g.gameOver,
		Paused:   g.paused || g.tooSmall,
		Busy:     g.timeline != nil,
	}
	if g.session != nil {
		st.Score = g.session.Score()
		st.Moves = g.session.Stats().Moves
	}
	if g.timeLeft >= 0 && g.tickRate > 0 {
		st.TimeLeft = (g.timeLeft + g.tickRate - 1) / g.tickRate
	}
	return st
}

// Summary reports the round for the run history.
func (g *Game) Summary() core.RunSummary {
	sum := core.RunSummary{Seed: g.seed, Ticks: g.roundTicks}
	if g.session == nil {
		return sum
	}
	stats := g.session.Stats()
	sum.Score = g.session.Score()
	sum.Moves = stats.Moves
	sum.LongestChain = stats.LongestChain
	sum.Cleared = stats.Cleared
	sum.Shuffles = stats.Shuffles
	return sum
}

// Err returns the error that stopped the game, if any.
func (g *Game) Err() error {
	return g.err
}

// itoa converts int to string without importing strconv.
func itoa(n int) string {
	if n == 0 {
		return "0"
	}
	neg := n < 0
	if neg {
		n = -n
	}
	var buf [20]byte
	i := len(buf)
	for n > 0 {
		i--
		buf[i] = byte('0' + n%10)
		n /= 10
	}
	if neg {
		i--
		buf[i] = '-'
	}
	return string(buf[i:])
}
