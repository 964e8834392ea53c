package main

import (
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/tui-cafe/internal/registry"
	"github.com/vovakirdan/tui-cafe/internal/storage"
)

var flagRuns bool

var scoresCmd = &cobra.Command{
	Use:   "scores [scene]",
	Short: "Show high scores or bench runs",
	Long: `Display the top 10 scores for a scene, or a summary of every scene
when no scene is given. With --runs, list recent bench runs instead.

Examples:
  cafe scores
  cafe scores cafe
  cafe scores balls_grid --runs`,
	Args: cobra.MaximumNArgs(1),
	Run:  runScores,
}

func init() {
	scoresCmd.Flags().BoolVar(&flagRuns, "runs", false, "List recent bench runs")
}

func runScores(_ *cobra.Command, args []string) {
	var sceneID string
	if len(args) == 1 {
		sceneID = args[0]
		if !registry.Exists(sceneID) {
			fmt.Fprintf(os.Stderr, "Error: unknown scene %q\n", sceneID)
			fmt.Fprintln(os.Stderr, "Run 'cafe list' to see available scenes.")
			os.Exit(1)
		}
	}

	store, err := storage.Open(flagDBPath)
	if err != nil {
		exitf("opening scores database: %v", err)
	}
	defer store.Close()

	switch {
	case flagRuns:
		err = printRuns(store, sceneID)
	case sceneID == "":
		err = printSummary(store)
	default:
		err = printTopScores(store, sceneID)
	}
	if err != nil {
		store.Close()
		exitf("%v", err)
	}
}

func sceneTitle(id string) string {
	for _, s := range registry.List() {
		if s.ID == id {
			return s.Title
		}
	}
	return id
}

func printTopScores(store *storage.Store, sceneID string) error {
	scores, err := store.TopScores(sceneID, 10)
	if err != nil {
		return err
	}

	fmt.Printf("High Scores - %s\n", sceneTitle(sceneID))
	fmt.Println()

	if len(scores) == 0 {
		fmt.Println("No scores recorded yet.")
		fmt.Println()
		fmt.Printf("Play 'cafe play %s' to set the first high score!\n", sceneID)
		return nil
	}

	fmt.Printf("  %-4s  %-10s  %s\n", "Rank", "Score", "Date")
	fmt.Printf("  %-4s  %-10s  %s\n", "----", "-----", "----")
	for i, entry := range scores {
		fmt.Printf("  %-4d  %-10d  %s\n", i+1, entry.Score, entry.CreatedAt.Format("2006-01-02 15:04"))
	}

	if best, err := store.HighScore(sceneID); err == nil {
		fmt.Println()
		fmt.Printf("Best: %d\n", best)
	}
	return nil
}

func printSummary(store *storage.Store) error {
	stats, err := store.AllSceneStats()
	if err != nil {
		return err
	}
	if len(stats) == 0 {
		fmt.Println("No scores recorded yet.")
		return nil
	}

	fmt.Printf("  %-16s  %6s  %6s  %8s  %s\n", "Scene", "Plays", "Best", "Average", "Last played")
	fmt.Printf("  %-16s  %6s  %6s  %8s  %s\n", "-----", "-----", "----", "-------", "-----------")
	for _, s := range registry.List() {
		st, ok := stats[s.ID]
		if !ok {
			continue
		}
		fmt.Printf("  %-16s  %6d  %6d  %8.1f  %s\n",
			s.ID, st.Plays, st.HighScore, st.AvgScore, st.LastPlayed.Format("2006-01-02 15:04"))
	}
	return nil
}

func printRuns(store *storage.Store, sceneID string) error {
	runs, err := store.RecentRuns(sceneID, 20)
	if err != nil {
		return err
	}
	if len(runs) == 0 {
		fmt.Println("No bench runs recorded yet.")
		return nil
	}

	fmt.Printf("  %-5s  %-16s  %7s  %6s  %10s  %9s  %10s  %s\n",
		"Run", "Scene", "Steps", "Bodies", "Pairs", "Hits", "Time", "Hash")
	for _, r := range runs {
		fmt.Printf("  %-5d  %-16s  %7d  %6d  %10d  %9d  %10s  %016x\n",
			r.ID, r.SceneID, r.Steps, r.Bodies, r.Pairs, r.Collisions,
			r.WallTime.Round(time.Millisecond), r.Hash)
	}
	return nil
}
