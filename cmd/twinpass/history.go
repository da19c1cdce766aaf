package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/vovakirdan/twinpass/internal/platform/tui"
	"github.com/vovakirdan/twinpass/internal/storage"
)

var (
	flagLimit int
	flagPlain bool
	flagClear bool
)

var historyCmd = &cobra.Command{
	Use:   "history",
	Short: "Show recorded benchmark runs",
	Long: `Browse the benchmark runs recorded by 'twinpass bench'.

On a terminal an interactive table is shown (Tab switches between the most
recent and the fastest runs). With --plain, or when stdout is not a
terminal, the fastest runs are printed instead.

Examples:
  twinpass history
  twinpass history --plain --limit 5
  twinpass history --clear`,
	Args: cobra.NoArgs,
	RunE: runHistory,
}

func init() {
	historyCmd.Flags().IntVar(&flagLimit, "limit", 10, "Number of runs to print with --plain")
	historyCmd.Flags().BoolVar(&flagPlain, "plain", false, "Print a plain table instead of the interactive view")
	historyCmd.Flags().BoolVar(&flagClear, "clear", false, "Delete all recorded runs")
}

func runHistory(_ *cobra.Command, _ []string) error {
	store, err := storage.Open(cfg.Storage.DBPath)
	if err != nil {
		return err
	}
	defer store.Close()

	if flagClear {
		if err := store.ClearRuns(); err != nil {
			return err
		}
		fmt.Println("Benchmark history cleared.")
		return nil
	}

	if flagPlain || !term.IsTerminal(int(os.Stdout.Fd())) {
		return printHistory(store, flagLimit)
	}
	w, h := terminalSize()
	return tui.RunHistory(store, w, h)
}

func printHistory(store *storage.Store, limit int) error {
	runs, err := store.TopRuns(limit)
	if err != nil {
		return err
	}

	fmt.Println("Fastest benchmark runs")
	fmt.Println()

	if len(runs) == 0 {
		fmt.Println("No runs recorded yet.")
		fmt.Println()
		fmt.Println("Run 'twinpass bench' to record the first one!")
		return nil
	}

	fmt.Printf("  %-4s  %-10s  %-6s  %-8s  %-12s  %s\n", "Rank", "Ticks/s", "Best", "Rounds", "Ticks", "Date")
	fmt.Printf("  %-4s  %-10s  %-6s  %-8s  %-12s  %s\n", "----", "-------", "----", "------", "-----", "----")
	for i, r := range runs {
		fmt.Printf("  %-4d  %-10.0f  %-6d  %-8d  %-12d  %s\n",
			i+1, r.TicksPerSec, r.BestScore, r.Rounds, r.Ticks, r.CreatedAt.Format("2006-01-02 15:04"))
	}

	sum, err := store.Summarize()
	if err != nil {
		return err
	}
	fmt.Println()
	fmt.Printf("%d runs, best score %d, mean %.0f ticks/s\n", sum.Runs, sum.BestScore, sum.AvgTicksPerSec)
	return nil
}
