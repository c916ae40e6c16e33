package main

import (
	"errors"
	"fmt"
	"math/rand"
	"os"
	"time"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/vovakirdan/gemfall/internal/core"
	"github.com/vovakirdan/gemfall/internal/match3"
	"github.com/vovakirdan/gemfall/internal/storage"
)

var (
	flagSimMoves  int
	flagSimRounds int
	flagSimSave   bool
)

var simCmd = &cobra.Command{
	Use:   "sim",
	Short: "Run the engine headless with a hint-following autoplayer",
	Long: `Play rounds without a terminal UI. Each turn swaps the first move the
engine suggests, so a given seed always produces the same round.

Use --log-level debug to see every turn.

Examples:
  gemfall sim --seed 42
  gemfall sim --rounds 10 --moves 500
  gemfall sim --difficulty hard --save`,
	Run: runSim,
}

func init() {
	simCmd.Flags().IntVar(&flagSimMoves, "moves", 100, "Swaps per round")
	simCmd.Flags().IntVar(&flagSimRounds, "rounds", 1, "Rounds to play")
	simCmd.Flags().BoolVar(&flagSimSave, "save", false, "Record rounds in the scores database as gemfall_zen")
}

func runSim(_ *cobra.Command, _ []string) {
	gameCfg, err := loadGameConfig()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	seed := flagSeed
	if seed == 0 {
		seed = time.Now().UnixNano()
	}

	logger := log.NewWithOptions(os.Stderr, log.Options{
		ReportTimestamp: true,
		Prefix:          "sim",
		Level:           log.GetLevel(),
	})

	var store *storage.Store
	if flagSimSave {
		store = openStore()
		if store != nil {
			defer store.Close()
		}
	}

	total := 0
	for round := range flagSimRounds {
		roundSeed := seed + int64(round)
		sum, err := simulate(gameCfg.EngineConfig(), roundSeed, flagSimMoves, logger.With("round", round+1))
		if err != nil {
			logger.Error("round failed", "round", round+1, "seed", roundSeed, "error", err)
			continue
		}
		total += sum.Score
		logger.Info("round finished",
			"round", round+1,
			"seed", roundSeed,
			"score", sum.Score,
			"moves", sum.Moves,
			"longest_chain", sum.LongestChain,
			"cleared", sum.Cleared,
			"shuffles", sum.Shuffles,
		)
		if store != nil {
			if _, err := store.SaveRun("gemfall_zen", sum); err != nil {
				logger.Warn("could not save run", "error", err)
			}
		}
	}

	if flagSimRounds > 1 {
		logger.Info("simulation finished", "rounds", flagSimRounds, "average", total/flagSimRounds)
	}
}

// simulate plays one round by always taking the engine's hint. A round ends
// after maxMoves swaps or when no playable layout can be dealt.
func simulate(cfg match3.Config, seed int64, maxMoves int, logger *log.Logger) (core.RunSummary, error) {
	observe := match3.WithObserver(func(e match3.Event) {
		logger.Debug("event", "type", match3.EventName(e))
	})
	session, err := match3.NewSession(cfg, rand.New(rand.NewSource(seed)), observe)
	if err != nil {
		return core.RunSummary{}, err
	}
	if _, err := session.Start(); err != nil {
		return core.RunSummary{}, fmt.Errorf("starting round: %w", err)
	}

	for turn := 1; turn <= maxMoves; turn++ {
		move, ok := session.Hint()
		if !ok {
			break
		}
		res, err := session.RequestSwap(move.A, move.B)
		if errors.Is(err, match3.ErrShuffleExhausted) {
			logger.Warn("no playable layout left", "turn", turn)
			break
		}
		if err != nil {
			return core.RunSummary{}, fmt.Errorf("turn %d: %w", turn, err)
		}
		logger.Debug("turn",
			"n", turn,
			"move", move,
			"outcome", res.Outcome,
			"chain", res.Chain,
			"gained", res.ScoreDelta,
			"shuffled", res.Shuffled,
		)
	}

	final := session.Stop()
	stats := session.Stats()
	return core.RunSummary{
		Score:        final.Score,
		Moves:        stats.Moves,
		LongestChain: stats.LongestChain,
		Cleared:      stats.Cleared,
		Shuffles:     stats.Shuffles,
		Seed:         seed,
	}, nil
}
