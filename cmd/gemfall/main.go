// gemfall is a match-3 puzzle game for the terminal.
//
// Usage:
//
//	gemfall list              - List available modes
//	gemfall play [mode]       - Play a mode (default: gemfall)
//	gemfall menu              - Start menu to pick modes interactively
//	gemfall serve             - Start SSH server for remote play
//	gemfall scores <mode>     - Show high scores and recent runs
//	gemfall sim               - Run the engine headless with an autoplayer
//
// Global flags:
//
//	--fps <rate>          - Set tick rate (default: 30)
//	--seed <value>        - Set RNG seed for reproducible gameplay
//	--db <path>           - Set database path (default: ~/.gemfall/scores.db)
//	--config <path>       - Load a custom gemfall.yaml
//	--difficulty <preset> - easy, normal or hard
//	--log-level <level>   - debug, info, warn or error
package main

import (
	"fmt"
	"os"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/vovakirdan/gemfall/internal/config"
	"github.com/vovakirdan/gemfall/internal/games/gemfall"
)

var (
	// Global flags
	flagFPS        int
	flagSeed       int64
	flagDBPath     string
	flagConfig     string
	flagDifficulty string
	flagLogLevel   string
)

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

var rootCmd = &cobra.Command{
	Use:   "gemfall",
	Short: "Gemfall - match three gems in your terminal",
	Long: `Gemfall is a match-3 puzzle game for the terminal.

Swap two neighbouring gems to line up three or more of a kind. Matched gems
are cleared, the gems above fall into the gaps and new ones drop in from
the top, which may set off further matches.

Available commands:
  list     - Show all available modes
  play     - Play a mode directly
  menu     - Interactive mode picker
  serve    - Start SSH server for remote play
  scores   - View high scores
  sim      - Headless autoplay run

Examples:
  gemfall play
  gemfall play gemfall_zen --difficulty easy
  gemfall menu
  gemfall serve --ssh :2222
  gemfall sim --seed 42 --moves 200`,
	SilenceUsage: true,
	PersistentPreRunE: func(_ *cobra.Command, _ []string) error {
		level, err := log.ParseLevel(flagLogLevel)
		if err != nil {
			return fmt.Errorf("invalid --log-level: %w", err)
		}
		log.SetLevel(level)
		return nil
	},
}

func init() {
	// Global persistent flags
	rootCmd.PersistentFlags().IntVar(&flagFPS, "fps", 30, "Tick rate (frames per second)")
	rootCmd.PersistentFlags().Int64Var(&flagSeed, "seed", 0, "RNG seed (0 = random based on time)")
	rootCmd.PersistentFlags().StringVar(&flagDBPath, "db", "~/.gemfall/scores.db", "Path to scores database")
	rootCmd.PersistentFlags().StringVar(&flagConfig, "config", "", "Path to custom gemfall.yaml")
	rootCmd.PersistentFlags().StringVar(&flagDifficulty, "difficulty", "", "Difficulty preset: easy, normal, hard")
	rootCmd.PersistentFlags().StringVar(&flagLogLevel, "log-level", "info", "Log level: debug, info, warn, error")

	// Add subcommands
	rootCmd.AddCommand(listCmd)
	rootCmd.AddCommand(playCmd)
	rootCmd.AddCommand(menuCmd)
	rootCmd.AddCommand(serveCmd)
	rootCmd.AddCommand(scoresCmd)
	rootCmd.AddCommand(simCmd)
}

// loadGameConfig resolves --config and --difficulty and installs the result
// as the configuration for every game created afterwards. Without
// --difficulty the file is used as written.
func loadGameConfig() (config.GemfallConfig, error) {
	var preset config.DifficultyPreset
	if flagDifficulty != "" {
		p, err := config.ParsePreset(flagDifficulty)
		if err != nil {
			return config.GemfallConfig{}, err
		}
		preset = p
	}
	cfg, err := config.Load(flagConfig, preset)
	if err != nil {
		return config.GemfallConfig{}, err
	}
	gemfall.SetConfig(cfg)
	log.Debug("config loaded",
		"board", fmt.Sprintf("%dx%d", cfg.Board.Width, cfg.Board.Height),
		"gems", len(cfg.Gems),
		"timer", cfg.Timer.DurationSeconds,
		"difficulty", preset,
	)
	return cfg, nil
}
