package main

import (
	"fmt"
	"os"
	"sort"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/laserdodge/internal/storage"
)

var flagClear bool

var statsCmd = &cobra.Command{
	Use:   "stats [level]",
	Short: "Show recorded attempt statistics",
	Long: `Shows attempt statistics. Without an argument every level with
recorded attempts is listed; with a level id the ten most recent attempts
are shown as well.

Examples:
  laserdodge stats
  laserdodge stats crossfire
  laserdodge stats crossfire --clear`,
	Args: cobra.MaximumNArgs(1),
	Run:  runStats,
}

func init() {
	statsCmd.Flags().BoolVar(&flagClear, "clear", false, "Delete the recorded attempts for the given level")
}

func runStats(cmd *cobra.Command, args []string) {
	store, err := storage.Open(flagDBPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error opening attempts database: %v\n", err)
		os.Exit(1)
	}
	defer store.Close()

	if len(args) == 0 {
		if flagClear {
			fmt.Fprintln(os.Stderr, "Error: --clear needs a level id")
			os.Exit(1)
		}
		showAllStats(store)
		return
	}

	levelID := args[0]
	if flagClear {
		if err := store.ClearAttempts(levelID); err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(1)
		}
		fmt.Printf("Cleared attempts for %s.\n", levelID)
		return
	}
	showLevelStats(store, levelID)
}

func showAllStats(store *storage.Store) {
	all, err := store.AllLevelStats()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error retrieving stats: %v\n", err)
		os.Exit(1)
	}

	if len(all) == 0 {
		fmt.Println("No attempts recorded yet.")
		fmt.Println()
		fmt.Println("Run 'laserdodge play <id>' to record the first attempt.")
		return
	}

	ids := make([]string, 0, len(all))
	maxIDLen := 5 // "Level" header
	for id := range all {
		ids = append(ids, id)
		if len(id) > maxIDLen {
			maxIDLen = len(id)
		}
	}
	sort.Strings(ids)

	// Print header
	fmt.Printf("  %-*s  %8s  %4s  %9s  %9s  %s\n", maxIDLen, "Level", "Attempts", "Wins", "Best fill", "Best time", "Last played")
	fmt.Printf("  %-*s  %8s  %4s  %9s  %9s  %s\n", maxIDLen, "-----", "--------", "----", "---------", "---------", "-----------")

	for _, id := range ids {
		st := all[id]
		fmt.Printf("  %-*s  %8d  %4d  %8.0f%%  %9s  %s\n",
			maxIDLen, id, st.Attempts, st.Wins, st.BestFill*100,
			formatBestTime(st.BestDuration), st.LastPlayed.Format("2006-01-02 15:04"))
	}
}

func showLevelStats(store *storage.Store, levelID string) {
	st, err := store.LevelStats(levelID)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error retrieving stats: %v\n", err)
		os.Exit(1)
	}

	if st.Attempts == 0 {
		fmt.Printf("No attempts recorded for %q.\n", levelID)
		fmt.Println()
		fmt.Printf("Run 'laserdodge play %s' to record the first attempt.\n", levelID)
		return
	}

	fmt.Printf("Attempts - %s\n", levelID)
	fmt.Println()
	fmt.Printf("  Attempts:  %d\n", st.Attempts)
	fmt.Printf("  Wins:      %d\n", st.Wins)
	fmt.Printf("  Best fill: %.0f%%\n", st.BestFill*100)
	fmt.Printf("  Best time: %s\n", formatBestTime(st.BestDuration))
	fmt.Printf("  Last run:  %s\n", st.LastPlayed.Format("2006-01-02 15:04"))

	recent, err := store.RecentAttempts(levelID, 10)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error retrieving attempts: %v\n", err)
		os.Exit(1)
	}

	fmt.Println()
	fmt.Printf("  %-9s  %4s  %9s  %4s  %s\n", "Outcome", "Fill", "Duration", "Zaps", "Date")
	fmt.Printf("  %-9s  %4s  %9s  %4s  %s\n", "-------", "----", "--------", "----", "----")
	for _, a := range recent {
		fmt.Printf("  %-9s  %3.0f%%  %8.2fs  %4d  %s\n",
			a.Outcome, a.Fill*100, a.Duration, a.Zaps, a.CreatedAt.Format("2006-01-02 15:04"))
	}
}

// formatBestTime renders the fastest winning duration, or a dash when the
// level has no wins yet.
func formatBestTime(secs float64) string {
	if secs <= 0 {
		return "-"
	}
	return fmt.Sprintf("%.2fs", secs)
}
