package main

import (
	"fmt"
	"os"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/vovakirdan/gemfall/internal/core"
	"github.com/vovakirdan/gemfall/internal/platform/tui"
	"github.com/vovakirdan/gemfall/internal/registry"
	"github.com/vovakirdan/gemfall/internal/storage"
)

var playCmd = &cobra.Command{
	Use:   "play [mode]",
	Short: "Play a mode",
	Long: `Start playing the specified mode (default: gemfall).

Controls:
  Arrows/WASD  - Move cursor
  Space/Enter  - Select a gem, then a neighbour to swap
  H            - Show a hint
  P            - Pause
  R            - Restart
  Esc/Q        - Quit

Difficulty options:
  easy   - 5 gem kinds, 90 second rounds
  normal - 6 gem kinds, 60 second rounds
  hard   - 7 gem kinds, 45 second rounds

Examples:
  gemfall play
  gemfall play gemfall_zen
  gemfall play --difficulty hard
  gemfall play --config ./my-gemfall.yaml --seed 42`,
	Args: cobra.MaximumNArgs(1),
	Run:  runPlay,
}

func runPlay(cmd *cobra.Command, args []string) {
	gameID := "gemfall"
	if len(args) > 0 {
		gameID = args[0]
	}

	if !registry.Exists(gameID) {
		fmt.Fprintf(os.Stderr, "Error: unknown mode %q\n", gameID)
		fmt.Fprintln(os.Stderr, "Run 'gemfall list' to see available modes.")
		os.Exit(1)
	}

	if _, err := loadGameConfig(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	cfg := runtimeConfig()

	game, err := registry.Create(gameID)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error creating game: %v\n", err)
		os.Exit(1)
	}

	store := openStore()

	runErr := tui.Run(game, store, cfg)

	// Close store before potential exit
	if store != nil {
		store.Close()
	}

	if runErr != nil {
		fmt.Fprintf(os.Stderr, "Error running game: %v\n", runErr)
		os.Exit(1)
	}
}

// runtimeConfig builds the platform config from the terminal size and flags.
func runtimeConfig() core.RuntimeConfig {
	width, height := 80, 24 // Defaults
	if w, h, err := term.GetSize(int(os.Stdout.Fd())); err == nil {
		width = w
		height = h
	}

	return core.RuntimeConfig{
		ScreenW:  width,
		ScreenH:  height,
		TickRate: flagFPS,
		Seed:     flagSeed,
	}
}

// openStore opens the scores database. Play continues without it.
func openStore() *storage.Store {
	store, err := storage.Open(flagDBPath)
	if err != nil {
		log.Warn("could not open scores database", "path", flagDBPath, "error", err)
		return nil
	}
	return store
}
