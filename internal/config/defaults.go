package config

import (
	_ "embed"
)

//go:embed defaults/gemfall.yaml
var defaultGemfallYAML []byte

// DefaultGemfallConfig returns the built-in configuration, used when the
// embedded YAML cannot be parsed.
func DefaultGemfallConfig() GemfallConfig {
	return GemfallConfig{
		Board: BoardConfig{
			Width:  8,
			Height: 8,
		},
		Gems: []GemConfig{
			{ID: 1, Name: "ruby", Glyph: "◆", Color: "bright_red"},
			{ID: 2, Name: "emerald", Glyph: "●", Color: "bright_green"},
			{ID: 3, Name: "sapphire", Glyph: "■", Color: "bright_blue"},
			{ID: 4, Name: "topaz", Glyph: "▲", Color: "bright_yellow"},
			{ID: 5, Name: "amethyst", Glyph: "★", Color: "bright_magenta"},
			{ID: 6, Name: "pearl", Glyph: "○", Color: "bright_white"},
			{ID: 7, Name: "amber", Glyph: "♦", Color: "orange"},
		},
		Scoring: ScoringConfig{
			PointsPerGem: 10,
		},
		Rules: RulesConfig{
			MaxShuffleAttempts: 1000,
			MaxSettlePasses:    1000,
			MaxCascadePasses:   1000,
		},
		Timer: TimerConfig{
			DurationSeconds: 60,
		},
		Animation: AnimationConfig{
			SwapTicks:    4,
			ClearTicks:   6,
			FallTicks:    6,
			ShuffleTicks: 12,
		},
	}
}

// GetDefaultYAML returns the embedded default YAML.
func GetDefaultYAML() []byte {
	return defaultGemfallYAML
}
