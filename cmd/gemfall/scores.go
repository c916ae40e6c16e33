package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/gemfall/internal/registry"
	"github.com/vovakirdan/gemfall/internal/storage"
)

var (
	flagScoresClear bool
	flagScoresRuns  int
)

var scoresCmd = &cobra.Command{
	Use:   "scores <mode>",
	Short: "Show high scores for a mode",
	Long: `Display the top 10 high scores and the most recent runs for a mode.

Examples:
  gemfall scores gemfall
  gemfall scores gemfall_zen --runs 20
  gemfall scores gemfall --clear`,
	Args: cobra.ExactArgs(1),
	Run:  runScores,
}

func init() {
	scoresCmd.Flags().BoolVar(&flagScoresClear, "clear", false, "Delete all recorded scores for the mode")
	scoresCmd.Flags().IntVar(&flagScoresRuns, "runs", 5, "Number of recent runs to show")
}

func runScores(cmd *cobra.Command, args []string) {
	gameID := args[0]

	if !registry.Exists(gameID) {
		fmt.Fprintf(os.Stderr, "Error: unknown mode %q\n", gameID)
		fmt.Fprintln(os.Stderr, "Run 'gemfall list' to see available modes.")
		os.Exit(1)
	}

	game, err := registry.Create(gameID)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error creating game: %v\n", err)
		os.Exit(1)
	}
	title := game.Title()

	store, err := storage.Open(flagDBPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error opening scores database: %v\n", err)
		os.Exit(1)
	}
	defer store.Close()

	if flagScoresClear {
		if err := store.ClearScores(gameID); err != nil {
			fmt.Fprintf(os.Stderr, "Error clearing scores: %v\n", err)
			return
		}
		fmt.Printf("Cleared all scores for %s.\n", title)
		return
	}

	scores, err := store.TopScores(gameID, 10)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error retrieving scores: %v\n", err)
		return
	}

	fmt.Printf("High Scores - %s\n", title)
	fmt.Println()

	if len(scores) == 0 {
		fmt.Println("No scores recorded yet.")
		fmt.Println()
		fmt.Printf("Play 'gemfall play %s' to set the first high score!\n", gameID)
		return
	}

	fmt.Printf("  %-4s  %-10s  %s\n", "Rank", "Score", "Date")
	fmt.Printf("  %-4s  %-10s  %s\n", "----", "-----", "----")
	for i, entry := range scores {
		dateStr := entry.CreatedAt.Format("2006-01-02 15:04")
		fmt.Printf("  %-4d  %-10d  %s\n", i+1, entry.Score, dateStr)
	}

	if stats, err := store.GetGameStats(gameID); err == nil && stats.GamesCount > 0 {
		fmt.Println()
		fmt.Printf("Best: %d  Rounds: %d  Average: %.0f  Longest chain: x%d\n",
			stats.HighScore, stats.GamesCount, stats.AvgScore, stats.BestChain)
	}

	runs, err := store.RecentRuns(gameID, flagScoresRuns)
	if err != nil || len(runs) == 0 {
		return
	}
	fmt.Println()
	fmt.Println("Recent runs:")
	fmt.Printf("  %-16s  %-8s  %-6s  %-6s  %-8s  %s\n", "Date", "Score", "Moves", "Chain", "Cleared", "Seed")
	for _, r := range runs {
		fmt.Printf("  %-16s  %-8d  %-6d  %-6d  %-8d  %d\n",
			r.CreatedAt.Format("2006-01-02 15:04"), r.Score, r.Moves, r.LongestChain, r.Cleared, r.Seed)
	}
}
