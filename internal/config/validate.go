package config

import (
	"fmt"
	"unicode/utf8"

	"github.com/vovakirdan/gemfall/internal/core"
	"github.com/vovakirdan/gemfall/internal/match3"
)

// Board size limits that still fit an 80x24 terminal.
const (
	MinBoardSize = 3
	MaxBoardSize = 16
)

// ValidationError contains details about validation failure.
type ValidationError struct {
	Code    string
	Message string
}

func (e ValidationError) Error() string {
	return fmt.Sprintf("[%s] %s", e.Code, e.Message)
}

// Validate checks the configuration for values the game cannot run with.
//
// Codes:
//   - BAD_BOARD: board dimension outside [MinBoardSize, MaxBoardSize]
//   - TOO_FEW_GEMS: fewer than two gem kinds
//   - BAD_GEM: gem id outside 1..255 or glyph not a single rune
//   - DUPLICATE_GEM: two gems share an id
//   - BAD_COLOR: unknown palette color
//   - BAD_SCORING: negative points per gem
//   - BAD_TIMER: negative duration
//   - BAD_ANIMATION: negative phase length
func (c GemfallConfig) Validate() error {
	for _, d := range []struct {
		name string
		v    int
	}{{"width", c.Board.Width}, {"height", c.Board.Height}} {
		if d.v < MinBoardSize || d.v > MaxBoardSize {
			return ValidationError{
				Code:    "BAD_BOARD",
				Message: fmt.Sprintf("board %s %d outside [%d, %d]", d.name, d.v, MinBoardSize, MaxBoardSize),
			}
		}
	}

	if len(c.Gems) < 2 {
		return ValidationError{
			Code:    "TOO_FEW_GEMS",
			Message: fmt.Sprintf("need at least 2 gem kinds, have %d", len(c.Gems)),
		}
	}

	seen := make(map[int]string, len(c.Gems))
	for _, g := range c.Gems {
		if g.ID < 1 || g.ID > 255 {
			return ValidationError{
				Code:    "BAD_GEM",
				Message: fmt.Sprintf("gem %q: id %d outside 1..255", g.Name, g.ID),
			}
		}
		if utf8.RuneCountInString(g.Glyph) != 1 {
			return ValidationError{
				Code:    "BAD_GEM",
				Message: fmt.Sprintf("gem %q: glyph %q must be a single character", g.Name, g.Glyph),
			}
		}
		if prev, dup := seen[g.ID]; dup {
			return ValidationError{
				Code:    "DUPLICATE_GEM",
				Message: fmt.Sprintf("gems %q and %q share id %d", prev, g.Name, g.ID),
			}
		}
		seen[g.ID] = g.Name
		if _, ok := core.ParseColor(g.Color); !ok {
			return ValidationError{
				Code:    "BAD_COLOR",
				Message: fmt.Sprintf("gem %q: unknown color %q", g.Name, g.Color),
			}
		}
	}

	if c.Scoring.PointsPerGem < 0 {
		return ValidationError{
			Code:    "BAD_SCORING",
			Message: fmt.Sprintf("points per gem %d is negative", c.Scoring.PointsPerGem),
		}
	}

	if c.Timer.DurationSeconds < 0 {
		return ValidationError{
			Code:    "BAD_TIMER",
			Message: fmt.Sprintf("duration %ds is negative", c.Timer.DurationSeconds),
		}
	}

	a := c.Animation
	if a.SwapTicks < 0 || a.ClearTicks < 0 || a.FallTicks < 0 || a.ShuffleTicks < 0 {
		return ValidationError{
			Code:    "BAD_ANIMATION",
			Message: "animation phase lengths must not be negative",
		}
	}

	return nil
}

// EngineConfig converts the game config into engine rules.
func (c GemfallConfig) EngineConfig() match3.Config {
	types := make([]match3.GemType, 0, len(c.Gems))
	for _, g := range c.Gems {
		types = append(types, match3.GemType(g.ID))
	}
	return match3.Config{
		Width:              c.Board.Width,
		Height:             c.Board.Height,
		Types:              types,
		PointsPerGem:       c.Scoring.PointsPerGem,
		MaxShuffleAttempts: c.Rules.MaxShuffleAttempts,
		MaxSettlePasses:    c.Rules.MaxSettlePasses,
		MaxCascadePasses:   c.Rules.MaxCascadePasses,
	}
}

// GemStyle is how one gem kind is drawn.
type GemStyle struct {
	Name  string
	Glyph rune
	Color core.Color
}

// Palette maps engine gem types to their display style. Invalid entries
// fall back to '?' in the default color; call Validate first.
func (c GemfallConfig) Palette() map[match3.GemType]GemStyle {
	out := make(map[match3.GemType]GemStyle, len(c.Gems))
	for _, g := range c.Gems {
		glyph, _ := utf8.DecodeRuneInString(g.Glyph)
		if glyph == utf8.RuneError {
			glyph = '?'
		}
		color, _ := core.ParseColor(g.Color)
		out[match3.GemType(g.ID)] = GemStyle{Name: g.Name, Glyph: glyph, Color: color}
	}
	return out
}
