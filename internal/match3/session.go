package match3

import (
	"fmt"
	"sync"
	"sync/atomic"
)

// State is the session lifecycle state.
type State int

const (
	StateInactive State = iota
	StateActive
)

// String returns a human-readable name for the state.
func (s State) String() string {
	switch s {
	case StateInactive:
		return "inactive"
	case StateActive:
		return "active"
	default:
		return "unknown"
	}
}

// Config holds the board rules of a session.
type Config struct {
	Width  int
	Height int
	Types  []GemType // Gem kinds used for fill and refill

	PointsPerGem       int // Score per cleared cell
	MaxShuffleAttempts int // Permutations tried per deadlock shuffle
	MaxSettlePasses    int // Clear-and-refill passes allowed when setting up a board
	MaxCascadePasses   int // Passes before a runaway cascade is settled by shuffling
}

// DefaultConfig returns an 8x8 board with six gem types.
func DefaultConfig() Config {
	return Config{
		Width:              8,
		Height:             8,
		Types:              []GemType{1, 2, 3, 4, 5, 6},
		PointsPerGem:       10,
		MaxShuffleAttempts: DefaultShuffleAttempts,
		MaxSettlePasses:    1000,
		MaxCascadePasses:   1000,
	}
}

// withDefaults fills zero pass and attempt limits from DefaultConfig.
// PointsPerGem is taken as given, so 0 scores nothing.
func (c Config) withDefaults() Config {
	d := DefaultConfig()
	if c.MaxShuffleAttempts <= 0 {
		c.MaxShuffleAttempts = d.MaxShuffleAttempts
	}
	if c.MaxSettlePasses <= 0 {
		c.MaxSettlePasses = d.MaxSettlePasses
	}
	if c.MaxCascadePasses <= 0 {
		c.MaxCascadePasses = d.MaxCascadePasses
	}
	return c
}

// Validate checks the board size and gem set.
func (c Config) Validate() error {
	if c.Width <= 0 || c.Height <= 0 {
		return fmt.Errorf("%w: board size %dx%d", ErrInvalidConfig, c.Width, c.Height)
	}
	if c.Width*c.Height < 4 {
		return fmt.Errorf("%w: board area %d is below 4 cells", ErrInvalidConfig, c.Width*c.Height)
	}
	if max(c.Width, c.Height) < MinRun {
		return fmt.Errorf("%w: board %dx%d cannot hold a run of %d", ErrInvalidConfig, c.Width, c.Height, MinRun)
	}
	seen := make(map[GemType]bool, len(c.Types))
	for _, t := range c.Types {
		if t == None {
			return fmt.Errorf("%w: gem type 0 is reserved for empty cells", ErrInvalidConfig)
		}
		if seen[t] {
			return fmt.Errorf("%w: duplicate gem type %d", ErrInvalidConfig, t)
		}
		seen[t] = true
	}
	if len(seen) < 2 {
		return fmt.Errorf("%w: need at least 2 distinct gem types, have %d", ErrInvalidConfig, len(seen))
	}
	if c.PointsPerGem < 0 {
		return fmt.Errorf("%w: negative points per gem", ErrInvalidConfig)
	}
	return nil
}

// Outcome classifies an accepted swap.
type Outcome int

const (
	OutcomeNone    Outcome = iota // Not a swap (start, stop)
	OutcomeMatched                // Swap kept, cascade resolved
	OutcomeNoMatch                // Swap produced no match and was reverted
)

// String returns a human-readable name for the outcome.
func (o Outcome) String() string {
	switch o {
	case OutcomeNone:
		return "none"
	case OutcomeMatched:
		return "matched"
	case OutcomeNoMatch:
		return "no_match"
	default:
		return "unknown"
	}
}

// Result is returned by every session command.
type Result struct {
	Outcome    Outcome
	Events     []Event
	ScoreDelta int
	Score      int   // Total after the command
	Chain      int   // Cascade passes resolved by a swap
	Shuffled   bool  // A deadlock shuffle ran
	Board      *Grid // Settled board after the command (a copy)
}

// Stats are running counters since the last Start.
type Stats struct {
	Moves        int // Swaps that produced a match
	Reverted     int // Swaps undone for lack of a match
	Cascades     int // Total cascade passes
	LongestChain int
	Cleared      int // Total cells cleared
	Shuffles     int
}

// Snapshot captures the complete session state for determinism testing.
type Snapshot struct {
	State State
	Score int
	Board *Grid
	Stats Stats
}

// Option configures a Session.
type Option func(*Session)

// WithObserver registers fn to receive every event after each command
// commits. Commands issued from inside fn fail with ErrSessionBusy while a
// swap or start is still returning.
func WithObserver(fn func(Event)) Option {
	return func(s *Session) {
		s.observers = append(s.observers, fn)
	}
}

// WithGenerator replaces the uniform random refill generator.
func WithGenerator(gen Generator) Option {
	return func(s *Session) {
		s.gen = gen
	}
}

// Session owns one board and its score and runs the turn protocol:
// swap, cascade, deadlock check, shuffle.
type Session struct {
	cfg       Config
	rng       Rand
	gen       Generator
	observers []func(Event)

	busy atomic.Bool // Held by Start and RequestSwap while resolving

	mu    sync.RWMutex
	state State
	grid  *Grid
	score int
	epoch uint64 // Bumped by Start and Stop; stale resolutions are dropped
	stats Stats
}

// NewSession validates cfg and creates an inactive session.
func NewSession(cfg Config, rng Rand, opts ...Option) (*Session, error) {
	cfg = cfg.withDefaults()
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	if rng == nil {
		return nil, fmt.Errorf("%w: nil random source", ErrInvalidConfig)
	}
	s := &Session{
		cfg: cfg,
		rng: rng,
	}
	for _, opt := range opts {
		opt(s)
	}
	if s.gen == nil {
		types := append([]GemType(nil), cfg.Types...)
		s.gen = RandomGenerator(rng, types)
	}
	return s, nil
}

// Config returns the effective configuration.
func (s *Session) Config() Config {
	return s.cfg
}

// Start fills a fresh board, settles it, resets the score and activates the
// session. Calling Start on an active session restarts it. If the new board
// cannot be settled the session is left inactive.
func (s *Session) Start() (Result, error) {
	if !s.busy.CompareAndSwap(false, true) {
		return Result{}, ErrSessionBusy
	}
	defer s.busy.Store(false)

	g, err := NewGrid(s.cfg.Width, s.cfg.Height, s.gen)
	if err != nil {
		return Result{}, err
	}
	return s.start(g)
}

// StartWithGrid activates the session on a caller-supplied layout, which must
// be full and match the configured size. Residual matches are settled
// without scoring and a deadlocked layout is shuffled.
func (s *Session) StartWithGrid(g *Grid) (Result, error) {
	if !s.busy.CompareAndSwap(false, true) {
		return Result{}, ErrSessionBusy
	}
	defer s.busy.Store(false)

	if g == nil || g.w != s.cfg.Width || g.h != s.cfg.Height {
		return Result{}, fmt.Errorf("%w: layout does not match %dx%d board", ErrInvalidConfig, s.cfg.Width, s.cfg.Height)
	}
	if !g.Full() {
		return Result{}, fmt.Errorf("%w: layout has %d empty cells", ErrInvalidConfig, g.EmptyCount())
	}
	return s.start(g.Clone())
}

func (s *Session) start(g *Grid) (Result, error) {
	for passes := 0; ; passes++ {
		m := FindMatches(g)
		if m.Empty() {
			break
		}
		if passes >= s.cfg.MaxSettlePasses {
			return s.abortStart(fmt.Errorf("%w: board still matching after %d setup passes", ErrShuffleExhausted, passes))
		}
		clearCells(g, m)
		g, _ = Resolve(g, s.gen)
	}

	res := Result{Outcome: OutcomeNone}
	var shuffle *Shuffled
	if !HasPossibleMove(g) {
		out, attempts, err := Shuffle(g, s.rng, s.cfg.MaxShuffleAttempts)
		if err != nil {
			return s.abortStart(fmt.Errorf("setting up board: %w", err))
		}
		g = out
		shuffle = &Shuffled{Layout: out.Clone(), Attempts: attempts}
		res.Shuffled = true
	}

	s.mu.Lock()
	prev := s.score
	s.grid = g
	s.score = 0
	s.state = StateActive
	s.epoch++
	s.stats = Stats{}
	if shuffle != nil {
		s.stats.Shuffles++
	}
	s.mu.Unlock()

	res.Events = append(res.Events, SessionStateChanged{State: StateActive})
	if prev != 0 {
		res.Events = append(res.Events, ScoreChanged{Delta: -prev, Total: 0})
		res.ScoreDelta = -prev
	}
	if shuffle != nil {
		res.Events = append(res.Events, *shuffle)
	}
	res.Board = g.Clone()
	s.notify(res.Events)
	return res, nil
}

// abortStart ends the previous round, if any, after a failed setup.
func (s *Session) abortStart(err error) (Result, error) {
	s.mu.Lock()
	res := Result{Outcome: OutcomeNone, Score: s.score}
	wasActive := s.state == StateActive
	if wasActive {
		s.state = StateInactive
		s.epoch++
	}
	s.mu.Unlock()

	if wasActive {
		res.Events = []Event{SessionStateChanged{State: StateInactive}}
		s.notify(res.Events)
	}
	return res, err
}

// RequestSwap swaps two 4-adjacent cells and resolves the resulting cascade.
// A swap that produces no match is reverted and reported as OutcomeNoMatch.
// Rejected requests (ErrInvalidMove, ErrSessionBusy) leave the board untouched.
func (s *Session) RequestSwap(a, b Cell) (Result, error) {
	if !s.busy.CompareAndSwap(false, true) {
		return Result{}, ErrSessionBusy
	}
	defer s.busy.Store(false)

	s.mu.RLock()
	state, epoch, score := s.state, s.epoch, s.score
	var work *Grid
	if s.grid != nil {
		work = s.grid.Clone()
	}
	s.mu.RUnlock()

	if state != StateActive || work == nil {
		return Result{Score: score}, fmt.Errorf("%w: %w", ErrInvalidMove, ErrSessionInactive)
	}
	for _, c := range []Cell{a, b} {
		if err := work.checkBounds(c); err != nil {
			return Result{Score: score}, fmt.Errorf("%w: %w", ErrInvalidMove, err)
		}
	}
	if !a.Adjacent(b) {
		return Result{Score: score}, fmt.Errorf("%w: %v and %v are not adjacent", ErrInvalidMove, a, b)
	}

	work.swap(a, b)
	matches := FindMatches(work)
	if matches.Empty() {
		work.swap(a, b)
		res := Result{
			Outcome: OutcomeNoMatch,
			Events:  []Event{Swapped{A: a, B: b, Reverted: true}},
			Score:   score,
			Board:   work,
		}
		if !s.commit(epoch, func() { s.stats.Reverted++ }) {
			return Result{Score: score}, fmt.Errorf("%w: %w", ErrInvalidMove, ErrSessionInactive)
		}
		s.notify(res.Events)
		return res, nil
	}

	res := Result{Outcome: OutcomeMatched}
	res.Events = append(res.Events, Swapped{A: a, B: b})

	work, matches = s.cascade(work, matches, score, &res)

	var shuffleErr error
	if !matches.Empty() || !HasPossibleMove(work) {
		out, attempts, err := Shuffle(work, s.rng, s.cfg.MaxShuffleAttempts)
		if err != nil {
			shuffleErr = err
		} else {
			work = out
			res.Shuffled = true
			res.Events = append(res.Events, Shuffled{Layout: out.Clone(), Attempts: attempts})
		}
	}

	res.Score = score + res.ScoreDelta
	res.Board = work.Clone()
	committed := s.commit(epoch, func() {
		s.grid = work
		s.score = res.Score
		s.stats.Moves++
		s.stats.Cascades += res.Chain
		s.stats.Cleared += clearedCells(res.Events)
		if res.Chain > s.stats.LongestChain {
			s.stats.LongestChain = res.Chain
		}
		if res.Shuffled {
			s.stats.Shuffles++
		}
		if shuffleErr != nil {
			s.state = StateInactive
			s.epoch++
		}
	})
	if !committed {
		return Result{Score: score}, fmt.Errorf("%w: %w", ErrInvalidMove, ErrSessionInactive)
	}

	if shuffleErr != nil {
		res.Events = append(res.Events, SessionStateChanged{State: StateInactive})
		s.notify(res.Events)
		return res, fmt.Errorf("resolving deadlock: %w", shuffleErr)
	}
	s.notify(res.Events)
	return res, nil
}

// cascade clears, scores and refills until the board has no match or the
// pass limit is hit. It returns the settled board and any matches left over.
func (s *Session) cascade(work *Grid, matches MatchSet, base int, res *Result) (*Grid, MatchSet) {
	for !matches.Empty() && res.Chain < s.cfg.MaxCascadePasses {
		res.Chain++
		gained := matches.Len() * s.cfg.PointsPerGem
		res.ScoreDelta += gained

		clearCells(work, matches)
		res.Events = append(res.Events,
			Cleared{Cells: matches.Cells(), Count: matches.Len(), Chain: res.Chain},
			ScoreChanged{Delta: gained, Total: base + res.ScoreDelta},
		)

		next, falls := Resolve(work, s.gen)
		for _, f := range falls {
			res.Events = append(res.Events, Fell(f))
		}
		work = next
		matches = FindMatches(work)
	}
	return work, matches
}

// clearedCells totals the Cleared events of a log.
func clearedCells(events []Event) int {
	n := 0
	for _, e := range events {
		if c, ok := e.(Cleared); ok {
			n += c.Count
		}
	}
	return n
}

// commit applies fn under the write lock if no Start or Stop happened since
// the resolution began.
func (s *Session) commit(epoch uint64, fn func()) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.epoch != epoch || s.state != StateActive {
		return false
	}
	fn()
	return true
}

// Stop deactivates the session and freezes the board. It returns the final
// score; stopping an inactive session only reports the score.
func (s *Session) Stop() Result {
	s.mu.Lock()
	res := Result{Outcome: OutcomeNone, Score: s.score}
	if s.grid != nil {
		res.Board = s.grid.Clone()
	}
	if s.state != StateActive {
		s.mu.Unlock()
		return res
	}
	s.state = StateInactive
	s.epoch++
	s.mu.Unlock()

	res.Events = []Event{SessionStateChanged{State: StateInactive}}
	s.notify(res.Events)
	return res
}

// Hint returns the first available move on the current board.
func (s *Session) Hint() (Move, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.state != StateActive || s.grid == nil {
		return Move{}, false
	}
	return FindMove(s.grid)
}

// State returns the lifecycle state.
func (s *Session) State() State {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.state
}

// Score returns the current score.
func (s *Session) Score() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.score
}

// Board returns a copy of the settled board, or nil before the first Start.
func (s *Session) Board() *Grid {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.grid == nil {
		return nil
	}
	return s.grid.Clone()
}

// Stats returns the running counters without copying the board.
func (s *Session) Stats() Stats {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.stats
}

// Snapshot returns the current session snapshot.
func (s *Session) Snapshot() Snapshot {
	s.mu.RLock()
	defer s.mu.RUnlock()
	snap := Snapshot{
		State: s.state,
		Score: s.score,
		Stats: s.stats,
	}
	if s.grid != nil {
		snap.Board = s.grid.Clone()
	}
	return snap
}

func (s *Session) notify(events []Event) {
	for _, e := range events {
		for _, fn := range s.observers {
			fn(e)
		}
	}
}
