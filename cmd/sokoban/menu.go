package main

import (
	"github.com/spf13/cobra"

	"github.com/vovakirdan/tui-sokoban/internal/games/sokoban"
	"github.com/vovakirdan/tui-sokoban/internal/platform/tui"
)

var menuCmd = &cobra.Command{
	Use:   "menu",
	Short: "Pick a pack and a level interactively",
	Long: `Start in the level chooser.

Pick a pack, then a level; the best recorded step count is shown next to
each level. Leaving a level returns to the chooser. Tab opens the records.

Controls:
  Up/Down/j/k  - Navigate
  Enter        - Select
  Esc          - Back to the pack list
  Tab          - Records
  Q            - Quit

Examples:
  sokoban menu
  sokoban menu --pace slow
  sokoban menu --db ./records.db`,
	Args: cobra.NoArgs,
	RunE: runMenu,
}

func runMenu(_ *cobra.Command, _ []string) error {
	store := openStore()
	defer closeStore(store)

	width, height := terminalSize()
	return tui.RunSession(tui.SessionConfig{
		Store:   store,
		NewGame: tui.SokobanFactory(sokoban.GlyphsFromConfig(cfg.Glyphs)),
		Player:  tui.LocalPlayerID(),
		Logger:  logger,
	}, runtimeConfig(width, height))
}
