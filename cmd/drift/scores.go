package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/downhill-drift/internal/config"
	"github.com/vovakirdan/downhill-drift/internal/storage"
)

var flagScoresDifficulty string

var scoresCmd = &cobra.Command{
	Use:   "scores",
	Short: "Show the best runs",
	Long: `Display the 10 longest runs, optionally for one difficulty.

Examples:
  drift scores
  drift scores --difficulty hard`,
	Args: cobra.NoArgs,
	RunE: runScores,
}

func init() {
	scoresCmd.Flags().StringVar(&flagScoresDifficulty, "difficulty", "", "Only show runs for easy, normal or hard")
}

func runScores(cmd *cobra.Command, _ []string) error {
	filter := ""
	if flagScoresDifficulty != "" {
		preset, err := config.ParsePreset(flagScoresDifficulty)
		if err != nil {
			return err
		}
		filter = string(preset)
	}

	store, err := storage.Open(flagDBPath)
	if err != nil {
		return fmt.Errorf("opening run history: %w", err)
	}
	defer store.Close()

	runs, err := store.TopRuns(filter, 10)
	if err != nil {
		return fmt.Errorf("retrieving runs: %w", err)
	}

	out := cmd.OutOrStdout()
	title := "all difficulties"
	if filter != "" {
		title = filter
	}
	fmt.Fprintf(out, "Best Runs - %s\n\n", title)

	if len(runs) == 0 {
		fmt.Fprintln(out, "No runs recorded yet.")
		fmt.Fprintln(out)
		fmt.Fprintln(out, "Run 'drift play' to set the first one!")
		return nil
	}

	fmt.Fprintf(out, "  %-4s  %-10s  %-6s  %-6s  %-6s  %s\n", "Rank", "Distance", "Tokens", "Time", "Level", "Date")
	fmt.Fprintf(out, "  %-4s  %-10s  %-6s  %-6s  %-6s  %s\n", "----", "--------", "------", "----", "-----", "----")
	for i, r := range runs {
		fmt.Fprintf(out, "  %-4d  %-10s  %-6d  %-6s  %-6s  %s\n",
			i+1,
			fmt.Sprintf("%d m", r.Distance),
			r.Tokens,
			fmt.Sprintf("%.0fs", r.Seconds),
			r.Difficulty,
			r.CreatedAt.Format("2006-01-02 15:04"),
		)
	}

	stats, err := store.Stats(filter)
	if err == nil && stats.Runs > 0 {
		fmt.Fprintln(out)
		fmt.Fprintf(out, "Best: %d m   Average: %.0f m   Runs: %d   Tokens: %d\n",
			stats.BestDistance, stats.AvgDistance, stats.Runs, stats.TotalTokens)
	}
	return nil
}
