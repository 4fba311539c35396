package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/vovakirdan/recycle-runner/internal/platform/tui"
	"github.com/vovakirdan/recycle-runner/internal/storage"
)

var (
	flagScoresTUI   bool
	flagScoresClear bool
	flagScoresLimit int
)

var scoresCmd = &cobra.Command{
	Use:   "scores",
	Short: "Show the leaderboard",
	Long: `Display the best runs recorded in the leaderboard database.

Examples:
  runner scores
  runner scores --limit 25
  runner scores --tui
  runner scores --clear`,
	Args: cobra.NoArgs,
	Run:  runScores,
}

func init() {
	scoresCmd.Flags().BoolVar(&flagScoresTUI, "tui", false, "Browse the full leaderboard interactively")
	scoresCmd.Flags().BoolVar(&flagScoresClear, "clear", false, "Delete every leaderboard entry")
	scoresCmd.Flags().IntVar(&flagScoresLimit, "limit", 10, "Number of entries to print")
}

func runScores(_ *cobra.Command, _ []string) {
	store, err := storage.Open(flagDBPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error opening leaderboard database: %v\n", err)
		os.Exit(1)
	}
	defer store.Close()

	if flagScoresClear {
		if err := store.ClearLeaderboard(); err != nil {
			fmt.Fprintf(os.Stderr, "Error clearing leaderboard: %v\n", err)
			os.Exit(1)
		}
		fmt.Println("Leaderboard cleared.")
		return
	}

	lb, err := store.LoadLeaderboard()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Warning: %v\n", err)
	}
	if lb == nil {
		lb = storage.NewLeaderboard(nil)
	}

	if flagScoresTUI {
		width, height := 80, 24
		if w, h, termErr := term.GetSize(int(os.Stdout.Fd())); termErr == nil {
			width, height = w, h
		}
		if err := tui.RunScoreboard(lb, width, height); err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(1)
		}
		return
	}

	fmt.Println("High Scores - Recycle Runner")
	fmt.Println()

	top := lb.Top(flagScoresLimit)
	if len(top) == 0 {
		fmt.Println("No scores recorded yet.")
		fmt.Println()
		fmt.Println("Play 'runner play' to set the first high score!")
		return
	}

	fmt.Printf("  %-4s  %-12s  %-8s  %s\n", "Rank", "Name", "Score", "Date")
	fmt.Printf("  %-4s  %-12s  %-8s  %s\n", "----", "----", "-----", "----")
	for i, e := range top {
		date := ""
		if !e.CreatedAt.IsZero() {
			date = e.CreatedAt.Format("2006-01-02 15:04")
		}
		fmt.Printf("  %-4d  %-12s  %-8d  %s\n", i+1, e.Name, e.Score, date)
	}

	fmt.Println()
	fmt.Printf("Best: %d\n", lb.Max())
}
