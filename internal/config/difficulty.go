package config

import "fmt"

// DifficultyPreset represents a named difficulty level.
type DifficultyPreset string

const (
	DifficultyEasy   DifficultyPreset = "easy"
	DifficultyNormal DifficultyPreset = "normal"
	DifficultyHard   DifficultyPreset = "hard"
)

// presetRules holds what a preset changes: more gem kinds make matches
// rarer, less time makes the round shorter.
type presetRules struct {
	gems    int
	seconds int
}

var presets = map[DifficultyPreset]presetRules{
	DifficultyEasy:   {gems: 5, seconds: 90},
	DifficultyNormal: {gems: 6, seconds: 60},
	DifficultyHard:   {gems: 7, seconds: 45},
}

// ParsePreset validates a preset name. The empty string means normal.
func ParsePreset(name string) (DifficultyPreset, error) {
	if name == "" {
		return DifficultyNormal, nil
	}
	p := DifficultyPreset(name)
	if _, ok := presets[p]; !ok {
		return "", fmt.Errorf("unknown difficulty %q (want easy, normal or hard)", name)
	}
	return p, nil
}

// ApplyPreset modifies the config based on a difficulty preset.
// The gem list is cut to the preset's size when it is longer; an untimed
// config stays untimed.
func ApplyPreset(cfg *GemfallConfig, preset DifficultyPreset) {
	rules, ok := presets[preset]
	if !ok {
		return
	}
	if len(cfg.Gems) > rules.gems {
		cfg.Gems = cfg.Gems[:rules.gems]
	}
	if cfg.Timer.DurationSeconds > 0 {
		cfg.Timer.DurationSeconds = rules.seconds
	}
}
