package main

import (
	"errors"
	"fmt"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/tui-sokoban/internal/games/sokoban"
	"github.com/vovakirdan/tui-sokoban/internal/games/sokoban/core"
	"github.com/vovakirdan/tui-sokoban/internal/games/sokoban/levels"
)

var flagMoves string

var showCmd = &cobra.Command{
	Use:   "show <pack> <level> | show <file>",
	Short: "Print a level, optionally after replaying moves",
	Long: `Prints a level as text with its metadata.

With a single argument, the level file at that path is parsed; parse errors
are reported with file, line and error code, so this doubles as a validator.

--moves replays a move string (u, d, l, r; case ignored) and prints the
resulting board.

Examples:
  sokoban show tutorial 01-first-push
  sokoban show ./my-levels/hard.txt
  sokoban show tutorial 01-first-push --moves rrr`,
	Args: cobra.RangeArgs(1, 2),
	RunE: runShow,
}

func init() {
	showCmd.Flags().StringVar(&flagMoves, "moves", "", "Moves to replay before printing (e.g. rrudl)")
}

func runShow(_ *cobra.Command, args []string) error {
	var (
		lvl levels.Level
		err error
	)
	if len(args) == 1 {
		lvl, err = loadLevelFile(args[0])
	} else {
		lvl, err = loadPackLevel(args[0], args[1])
	}
	if err != nil {
		var perr *levels.ParseError
		if errors.As(err, &perr) {
			return fmt.Errorf("invalid level: %w", perr)
		}
		return err
	}

	game := lvl.NewGame()
	accepted, err := replay(game, flagMoves)
	if err != nil {
		return err
	}

	fmt.Printf("%s (%s)\n", lvl.DisplayName(), lvl.ID)
	if lvl.Author != "" {
		fmt.Printf("by %s\n", lvl.Author)
	}
	fmt.Printf("%dx%d, %d boxes\n", lvl.Width, lvl.Height, lvl.BoxCount())
	if len(args) == 2 {
		fmt.Printf("best: %s\n", bestOf(args[0], lvl.ID))
	}
	fmt.Println()
	fmt.Print(sokoban.RenderText(game, sokoban.GlyphsFromConfig(cfg.Glyphs)))

	if flagMoves != "" {
		fmt.Printf("\nmoves: %d accepted, steps: %d, state: %s\n", accepted, game.Steps(), game.State())
	}
	return nil
}

func loadLevelFile(path string) (levels.Level, error) {
	return levels.NewLoader(filepath.Dir(path)).LoadFile(filepath.Base(path))
}

func loadPackLevel(packID, levelID string) (levels.Level, error) {
	loader, err := sokoban.LoadPack(packID)
	if err != nil {
		return levels.Level{}, err
	}
	loader.Logger = logger
	return loader.LoadByID(levelID)
}

// bestOf returns the recorded best of a level as text, or "-" when there is
// none or the records cannot be read.
func bestOf(packID, levelID string) string {
	store := openStore()
	if store == nil {
		return "-"
	}
	defer closeStore(store)

	steps, ok, err := store.BestSteps(packID, levelID)
	if err != nil {
		logger.Warn("cannot read records", "err", err)
		return "-"
	}
	if !ok {
		return "-"
	}
	return fmt.Sprintf("%d steps", steps)
}

// replay applies a move string and returns how many moves were accepted.
func replay(game *core.Game, moves string) (int, error) {
	dirs, err := core.ParseMoves(strings.TrimSpace(moves))
	if err != nil {
		return 0, err
	}
	accepted := 0
	for _, d := range dirs {
		if game.TryMove(d) == core.Accepted {
			accepted++
		}
	}
	return accepted, nil
}
