package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/tui-sokoban/internal/platform/tui"
	"github.com/vovakirdan/tui-sokoban/internal/registry"
	"github.com/vovakirdan/tui-sokoban/internal/storage"
)

var (
	flagRecordsLimit  int
	flagRecordsClear  bool
	flagRecordsBoard  bool
	flagRecordsRecent bool
)

var recordsCmd = &cobra.Command{
	Use:   "records [pack] [level]",
	Short: "Show the best runs of a pack or level",
	Long: `Displays the best runs, fewest steps first, with the pack's statistics.

Examples:
  sokoban records                  # default pack
  sokoban records tutorial
  sokoban records classic 03
  sokoban records --board          # interactive records board
  sokoban records --recent         # latest runs across all packs
  sokoban records tutorial --clear # forget the pack's results`,
	Args: cobra.MaximumNArgs(2),
	RunE: runRecords,
}

func init() {
	recordsCmd.Flags().IntVarP(&flagRecordsLimit, "limit", "n", 10, "Number of runs to show")
	recordsCmd.Flags().BoolVar(&flagRecordsClear, "clear", false, "Delete the pack's results")
	recordsCmd.Flags().BoolVar(&flagRecordsBoard, "board", false, "Open the interactive records board")
	recordsCmd.Flags().BoolVar(&flagRecordsRecent, "recent", false, "Show the latest runs of every pack")
}

func runRecords(_ *cobra.Command, args []string) error {
	packID := cfg.Levels.Pack
	if len(args) > 0 {
		packID = args[0]
	}
	if !registry.Exists(packID) {
		return fmt.Errorf("unknown pack %q; run 'sokoban list' to see available packs", packID)
	}
	levelID := ""
	if len(args) > 1 {
		levelID = args[1]
	}

	store, err := storage.Open(cfg.Storage.DBPath)
	if err != nil {
		return fmt.Errorf("opening records database: %w", err)
	}
	defer closeStore(store)

	if flagRecordsClear {
		if err := store.ClearResults(packID); err != nil {
			return err
		}
		fmt.Printf("Cleared all results of %s.\n", registry.Title(packID))
		return nil
	}

	if flagRecordsRecent {
		return printRecent(store, flagRecordsLimit)
	}

	if flagRecordsBoard {
		width, height := terminalSize()
		_, err := tui.RunRecords(store, width, height, packID)
		return err
	}

	results, err := store.TopResults(packID, levelID, flagRecordsLimit)
	if err != nil {
		return err
	}

	title := registry.Title(packID)
	if levelID != "" {
		title += " / " + levelID
	}
	fmt.Printf("Records - %s\n\n", title)

	if len(results) == 0 {
		fmt.Println("No runs recorded yet.")
		fmt.Println()
		fmt.Printf("Play 'sokoban play %s' to set the first record!\n", packID)
		return nil
	}

	fmt.Printf("  %-4s  %-20s  %-5s  %-16s  %s\n", "Rank", "Level", "Steps", "Player", "Date")
	fmt.Printf("  %-4s  %-20s  %-5s  %-16s  %s\n", "----", "-----", "-----", "------", "----")
	for i, r := range results {
		fmt.Printf("  %-4d  %-20s  %-5d  %-16s  %s\n",
			i+1, r.LevelID, r.Steps, r.Player, r.CreatedAt.Format("2006-01-02 15:04"))
	}

	stats, err := store.PackStats(packID)
	if err != nil {
		return err
	}
	fmt.Println()
	fmt.Printf("Solved levels: %d  Runs: %d  Best total: %d steps\n",
		stats.SolvedLevels, stats.Attempts, stats.BestTotal)
	return nil
}

func printRecent(store *storage.Store, limit int) error {
	results, err := store.RecentResults(limit)
	if err != nil {
		return err
	}
	if len(results) == 0 {
		fmt.Println("No runs recorded yet.")
		return nil
	}

	fmt.Printf("Recent runs\n\n")
	fmt.Printf("  %-16s  %-12s  %-20s  %-5s  %s\n", "Date", "Pack", "Level", "Steps", "Player")
	fmt.Printf("  %-16s  %-12s  %-20s  %-5s  %s\n", "----", "----", "-----", "-----", "------")
	for _, r := range results {
		fmt.Printf("  %-16s  %-12s  %-20s  %-5d  %s\n",
			r.CreatedAt.Format("2006-01-02 15:04"), r.PackID, r.LevelID, r.Steps, r.Player)
	}
	return nil
}
