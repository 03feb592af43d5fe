package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/vovakirdan/tui-sokoban/internal/games/sokoban"
	"github.com/vovakirdan/tui-sokoban/internal/platform/tui"
	"github.com/vovakirdan/tui-sokoban/internal/registry"
)

var playCmd = &cobra.Command{
	Use:   "play [pack] [level]",
	Short: "Play a level pack",
	Long: `Start playing a pack, from its first level or from the given level.
Without a pack, the configured default pack is played.

Controls:
  Arrows/WASD/HJKL  - Move (mouse drag works too)
  R                 - Restart the level
  [ / ]             - Previous / next level
  Enter             - Next level once solved
  P                 - Pause
  Esc/B             - Back to the level chooser
  Ctrl+S            - Save a screenshot to ~/.sokoban/screenshots
  Q/Ctrl+C          - Quit

Pace options:
  slow   - 250ms between moves
  normal - 150ms between moves
  fast   - 100ms between moves
  fixed  - keep the config's move_interval_ms

Examples:
  sokoban play
  sokoban play tutorial
  sokoban play classic 03 --pace fast
  sokoban play custom --levels ./my-levels`,
	Args: cobra.MaximumNArgs(2),
	RunE: runPlay,
}

func runPlay(_ *cobra.Command, args []string) error {
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

	newGame := tui.SokobanFactory(sokoban.GlyphsFromConfig(cfg.Glyphs))
	game, err := newGame(packID, levelID)
	if err != nil {
		return err
	}

	store := openStore()
	defer closeStore(store)

	width, height := terminalSize()
	rc := runtimeConfig(width, height)
	player := tui.LocalPlayerID()

	back, err := tui.Run(game, rc, tui.Options{
		Store:  tui.ResultStoreOf(store),
		Player: player,
		Logger: logger,
	})
	if err != nil {
		return fmt.Errorf("running game: %w", err)
	}
	if !back {
		return nil
	}

	// Esc leaves the game for the chooser, opened on the same pack.
	return tui.RunSession(tui.SessionConfig{
		Store:   store,
		NewGame: newGame,
		PackID:  packID,
		Player:  player,
		Logger:  logger,
	}, rc)
}

// terminalSize returns the size of stdout, or 80x24 if it is not a terminal.
func terminalSize() (int, int) {
	if w, h, err := term.GetSize(int(os.Stdout.Fd())); err == nil {
		return w, h
	}
	return 80, 24
}
