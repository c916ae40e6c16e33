// Package config provides YAML-based game configuration loading and
// difficulty management for gemfall.
package config

// GemfallConfig contains all configuration for a gemfall game.
type GemfallConfig struct {
	Board     BoardConfig     `yaml:"board"`
	Gems      []GemConfig     `yaml:"gems"`
	Scoring   ScoringConfig   `yaml:"scoring"`
	Rules     RulesConfig     `yaml:"rules"`
	Timer     TimerConfig     `yaml:"timer"`
	Animation AnimationConfig `yaml:"animation"`
}

// BoardConfig defines the board dimensions in cells.
type BoardConfig struct {
	Width  int `yaml:"width"`
	Height int `yaml:"height"`
}

// GemConfig defines one gem kind and how it is drawn.
type GemConfig struct {
	ID    int    `yaml:"id"`    // Engine gem type, 1..255
	Name  string `yaml:"name"`  // Display name
	Glyph string `yaml:"glyph"` // Single rune drawn on the board
	Color string `yaml:"color"` // Palette name, see core.ParseColor
}

// ScoringConfig defines how cleared gems are scored.
type ScoringConfig struct {
	PointsPerGem int `yaml:"points_per_gem"`
}

// RulesConfig bounds the engine's internal loops.
type RulesConfig struct {
	MaxShuffleAttempts int `yaml:"max_shuffle_attempts"`
	MaxSettlePasses    int `yaml:"max_settle_passes"`
	MaxCascadePasses   int `yaml:"max_cascade_passes"`
}

// TimerConfig defines the round length. Zero means untimed.
type TimerConfig struct {
	DurationSeconds int `yaml:"duration_seconds"`
}

// AnimationConfig defines how many ticks each playback phase lasts.
type AnimationConfig struct {
	SwapTicks    int `yaml:"swap_ticks"`
	ClearTicks   int `yaml:"clear_ticks"`
	FallTicks    int `yaml:"fall_ticks"`
	ShuffleTicks int `yaml:"shuffle_ticks"`
}
