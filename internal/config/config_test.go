package config

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/vovakirdan/gemfall/internal/core"
	"github.com/vovakirdan/gemfall/internal/match3"
)

func TestEmbeddedDefaultsMatchBuiltin(t *testing.T) {
	cfg, err := parse(GetDefaultYAML())
	if err != nil {
		t.Fatalf("embedded YAML does not parse: %v", err)
	}

	def := DefaultGemfallConfig()
	if cfg.Board != def.Board || cfg.Scoring != def.Scoring || cfg.Rules != def.Rules ||
		cfg.Timer != def.Timer || cfg.Animation != def.Animation {
		t.Errorf("embedded config %+v differs from built-in %+v", cfg, def)
	}
	if len(cfg.Gems) != len(def.Gems) {
		t.Fatalf("embedded config has %d gems, built-in %d", len(cfg.Gems), len(def.Gems))
	}
	for i := range def.Gems {
		if cfg.Gems[i] != def.Gems[i] {
			t.Errorf("gem %d = %+v, expected %+v", i, cfg.Gems[i], def.Gems[i])
		}
	}
	if err := cfg.Validate(); err != nil {
		t.Errorf("embedded config invalid: %v", err)
	}
}

func TestLoadCustomPath(t *testing.T) {
	path := filepath.Join(t.TempDir(), "custom.yaml")
	data := []byte(`
board:
  width: 6
  height: 5
gems:
  - {id: 1, name: a, glyph: "x", color: red}
  - {id: 2, name: b, glyph: "o", color: blue}
  - {id: 3, name: c, glyph: "+", color: grey}
timer:
  duration_seconds: 0
`)
	if err := os.WriteFile(path, data, 0o600); err != nil {
		t.Fatal(err)
	}

	cfg, err := LoadGemfall(path)
	if err != nil {
		t.Fatalf("LoadGemfall() failed: %v", err)
	}

	if cfg.Board.Width != 6 || cfg.Board.Height != 5 {
		t.Errorf("board = %+v", cfg.Board)
	}
	if len(cfg.Gems) != 3 {
		t.Errorf("expected 3 gems, got %d", len(cfg.Gems))
	}
	if cfg.Timer.DurationSeconds != 0 {
		t.Errorf("timer = %d, expected untimed", cfg.Timer.DurationSeconds)
	}
	// Omitted sections keep defaults
	if cfg.Scoring.PointsPerGem != 10 || cfg.Animation.FallTicks != 6 {
		t.Errorf("defaults not kept: %+v %+v", cfg.Scoring, cfg.Animation)
	}
}

func TestLoadCustomPathErrors(t *testing.T) {
	if _, err := LoadGemfall(filepath.Join(t.TempDir(), "missing.yaml")); err == nil {
		t.Error("expected error for a missing file")
	}

	path := filepath.Join(t.TempDir(), "broken.yaml")
	if err := os.WriteFile(path, []byte("board: [1, 2"), 0o600); err != nil {
		t.Fatal(err)
	}
	if _, err := LoadGemfall(path); err == nil {
		t.Error("expected error for malformed YAML")
	}
}

func TestApplyPreset(t *testing.T) {
	tests := []struct {
		preset  DifficultyPreset
		gems    int
		seconds int
	}{
		{DifficultyEasy, 5, 90},
		{DifficultyNormal, 6, 60},
		{DifficultyHard, 7, 45},
	}

	for _, tc := range tests {
		t.Run(string(tc.preset), func(t *testing.T) {
			cfg := DefaultGemfallConfig()
			ApplyPreset(&cfg, tc.preset)

			if len(cfg.Gems) != tc.gems {
				t.Errorf("gems = %d, expected %d", len(cfg.Gems), tc.gems)
			}
			if cfg.Timer.DurationSeconds != tc.seconds {
				t.Errorf("duration = %d, expected %d", cfg.Timer.DurationSeconds, tc.seconds)
			}
		})
	}

	cfg := DefaultGemfallConfig()
	cfg.Timer.DurationSeconds = 0
	ApplyPreset(&cfg, DifficultyHard)
	if cfg.Timer.DurationSeconds != 0 {
		t.Error("untimed config should stay untimed")
	}
}

func TestParsePreset(t *testing.T) {
	if p, err := ParsePreset(""); err != nil || p != DifficultyNormal {
		t.Errorf("ParsePreset(\"\") = %q, %v", p, err)
	}
	if p, err := ParsePreset("hard"); err != nil || p != DifficultyHard {
		t.Errorf("ParsePreset(hard) = %q, %v", p, err)
	}
	if _, err := ParsePreset("nightmare"); err == nil {
		t.Error("expected error for unknown preset")
	}
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*GemfallConfig)
		code   string
	}{
		{"valid", func(*GemfallConfig) {}, ""},
		{"narrow board", func(c *GemfallConfig) { c.Board.Width = 2 }, "BAD_BOARD"},
		{"tall board", func(c *GemfallConfig) { c.Board.Height = 40 }, "BAD_BOARD"},
		{"one gem", func(c *GemfallConfig) { c.Gems = c.Gems[:1] }, "TOO_FEW_GEMS"},
		{"zero id", func(c *GemfallConfig) { c.Gems[0].ID = 0 }, "BAD_GEM"},
		{"long glyph", func(c *GemfallConfig) { c.Gems[0].Glyph = "ab" }, "BAD_GEM"},
		{"duplicate id", func(c *GemfallConfig) { c.Gems[1].ID = c.Gems[0].ID }, "DUPLICATE_GEM"},
		{"bad color", func(c *GemfallConfig) { c.Gems[2].Color = "plaid" }, "BAD_COLOR"},
		{"negative points", func(c *GemfallConfig) { c.Scoring.PointsPerGem = -5 }, "BAD_SCORING"},
		{"negative timer", func(c *GemfallConfig) { c.Timer.DurationSeconds = -1 }, "BAD_TIMER"},
		{"negative animation", func(c *GemfallConfig) { c.Animation.FallTicks = -1 }, "BAD_ANIMATION"},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			cfg := DefaultGemfallConfig()
			tc.mutate(&cfg)

			err := cfg.Validate()
			if tc.code == "" {
				if err != nil {
					t.Errorf("Validate() failed: %v", err)
				}
				return
			}

			var verr ValidationError
			if !errors.As(err, &verr) {
				t.Fatalf("Validate() = %v, expected ValidationError", err)
			}
			if verr.Code != tc.code {
				t.Errorf("code = %s, expected %s", verr.Code, tc.code)
			}
		})
	}
}

func TestEngineConfig(t *testing.T) {
	cfg := DefaultGemfallConfig()
	ApplyPreset(&cfg, DifficultyEasy)

	ec := cfg.EngineConfig()
	if ec.Width != 8 || ec.Height != 8 {
		t.Errorf("engine board = %dx%d", ec.Width, ec.Height)
	}
	if len(ec.Types) != 5 || ec.Types[0] != 1 || ec.Types[4] != 5 {
		t.Errorf("engine types = %v", ec.Types)
	}
	if err := ec.Validate(); err != nil {
		t.Errorf("engine config invalid: %v", err)
	}

	cfg.Scoring.PointsPerGem = 0
	if err := cfg.Validate(); err != nil {
		t.Errorf("zero points rejected: %v", err)
	}
	if ec := cfg.EngineConfig(); ec.PointsPerGem != 0 || ec.Validate() != nil {
		t.Errorf("engine points = %d, expected 0 to pass through", ec.PointsPerGem)
	}

	pal := cfg.Palette()
	if got := pal[match3.GemType(1)]; got.Glyph != '◆' || got.Color != core.ColorBrightRed {
		t.Errorf("palette[1] = %+v", got)
	}
}
