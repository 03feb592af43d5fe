package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/tui-sokoban/internal/games/sokoban"
	"github.com/vovakirdan/tui-sokoban/internal/registry"
)

var listCmd = &cobra.Command{
	Use:   "list [pack]",
	Short: "List level packs, or the levels of a pack",
	Long: `Shows the registered level packs. With a pack ID, lists its levels.

Examples:
  sokoban list
  sokoban list classic`,
	Args: cobra.MaximumNArgs(1),
	RunE: runList,
}

func runList(_ *cobra.Command, args []string) error {
	if len(args) == 1 {
		return listLevels(args[0])
	}

	packs := registry.List()
	if len(packs) == 0 {
		fmt.Println("No level packs available.")
		return nil
	}

	fmt.Println("Level packs:")
	fmt.Println()

	maxIDLen := 2 // "ID" header
	for _, p := range packs {
		maxIDLen = max(maxIDLen, len(p.ID))
	}

	fmt.Printf("  %-*s  %-6s  %s\n", maxIDLen, "ID", "Levels", "Title")
	fmt.Printf("  %-*s  %-6s  %s\n", maxIDLen, "--", "------", "-----")

	for _, p := range packs {
		count := "?"
		if ids, err := registry.LevelIDs(p.ID); err == nil {
			count = fmt.Sprintf("%d", len(ids))
		} else {
			logger.Warn("cannot load pack", "pack", p.ID, "err", err)
		}
		fmt.Printf("  %-*s  %-6s  %s\n", maxIDLen, p.ID, count, p.Title)
	}

	fmt.Println()
	fmt.Println("Run 'sokoban list <pack>' to see its levels, 'sokoban play <pack>' to play.")
	return nil
}

func listLevels(packID string) error {
	lvls, err := sokoban.PackLevels(packID)
	if err != nil {
		return err
	}

	store := openStore()
	defer closeStore(store)

	var best map[string]int
	if store != nil {
		if best, err = store.BestByLevel(packID); err != nil {
			logger.Warn("cannot read records", "err", err)
		}
	}

	fmt.Printf("%s\n\n", registry.Title(packID))

	maxIDLen := 2
	for _, lvl := range lvls {
		maxIDLen = max(maxIDLen, len(lvl.ID))
	}

	fmt.Printf("  %-*s  %-7s  %-5s  %-5s  %s\n", maxIDLen, "ID", "Size", "Boxes", "Best", "Title")
	fmt.Printf("  %-*s  %-7s  %-5s  %-5s  %s\n", maxIDLen, "--", "----", "-----", "----", "-----")
	for _, lvl := range lvls {
		bestStr := "-"
		if steps, ok := best[lvl.ID]; ok {
			bestStr = fmt.Sprintf("%d", steps)
		}
		fmt.Printf("  %-*s  %-7s  %-5d  %-5s  %s\n", maxIDLen, lvl.ID,
			fmt.Sprintf("%dx%d", lvl.Width, lvl.Height), lvl.BoxCount(), bestStr, lvl.DisplayName())
	}
	return nil
}
