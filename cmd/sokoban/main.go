// sokoban is a terminal Sokoban game with level packs, records and SSH play.
//
// Usage:
//
//	sokoban list                    - List level packs and their levels
//	sokoban play [pack] [level]     - Play a pack, optionally from a level
//	sokoban menu                    - Pick packs and levels interactively
//	sokoban show <pack> <level>     - Print a level as text
//	sokoban records [pack] [level]  - Show the best runs
//	sokoban serve                   - Start SSH server for remote play
//	sokoban rules                   - Show how to play
//
// Global flags:
//
//	--config <path>     - Config file (default: search ~/.sokoban/configs, ./configs)
//	--db <path>         - Records database (default: ~/.sokoban/records.db)
//	--levels <dir>      - Extra level directory, played as pack "custom"
//	--pace <preset>     - Move pacing: slow, normal, fast, fixed
//	--log-level <level> - debug, info, warn, error
package main

import (
	"fmt"
	"os"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/vovakirdan/tui-sokoban/internal/config"
	"github.com/vovakirdan/tui-sokoban/internal/core"
	"github.com/vovakirdan/tui-sokoban/internal/games/sokoban"
	"github.com/vovakirdan/tui-sokoban/internal/storage"
)

const customPack = "custom"

var (
	// Global flags
	flagConfig   string
	flagDBPath   string
	flagLevels   string
	flagPace     string
	flagLogLevel string

	// Set up by the root command before any subcommand runs.
	cfg    config.Config
	logger *log.Logger
)

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

var rootCmd = &cobra.Command{
	Use:   "sokoban",
	Short: "Sokoban - push boxes onto sinks in your terminal",
	Long: `Sokoban is a terminal puzzle game: push every box onto a sink.
Boxes can only be pushed, one at a time.

Available commands:
  list     - Show level packs and levels
  play     - Play a pack directly
  menu     - Interactive pack and level chooser
  show     - Print a level
  records  - View the best runs
  serve    - Start SSH server for remote play
  rules    - How to play

Examples:
  sokoban list
  sokoban play tutorial
  sokoban play classic 03
  sokoban menu --pace fast
  sokoban play custom --levels ./my-levels
  sokoban serve --spectate :8080`,
	SilenceUsage:      true,
	PersistentPreRunE: setup,
}

func init() {
	rootCmd.PersistentFlags().StringVar(&flagConfig, "config", "", "Path to config YAML")
	rootCmd.PersistentFlags().StringVar(&flagDBPath, "db", "", "Path to records database (overrides config)")
	rootCmd.PersistentFlags().StringVar(&flagLevels, "levels", "", "Extra level directory, registered as pack \"custom\"")
	rootCmd.PersistentFlags().StringVar(&flagPace, "pace", "", "Move pacing preset: slow, normal, fast, fixed")
	rootCmd.PersistentFlags().StringVar(&flagLogLevel, "log-level", "warn", "Log level: debug, info, warn, error")

	rootCmd.AddCommand(listCmd)
	rootCmd.AddCommand(playCmd)
	rootCmd.AddCommand(menuCmd)
	rootCmd.AddCommand(showCmd)
	rootCmd.AddCommand(recordsCmd)
	rootCmd.AddCommand(serveCmd)
	rootCmd.AddCommand(rulesCmd)
}

// setup builds the logger, loads the config and registers the custom pack.
func setup(_ *cobra.Command, _ []string) error {
	level, err := log.ParseLevel(flagLogLevel)
	if err != nil {
		return fmt.Errorf("invalid --log-level: %w", err)
	}
	logger = log.NewWithOptions(os.Stderr, log.Options{
		ReportTimestamp: true,
		Prefix:          "sokoban",
		Level:           level,
	})
	log.SetDefault(logger)

	cfg, err = config.Load(flagConfig)
	if err != nil {
		return err
	}

	preset, err := config.ParsePace(flagPace)
	if err != nil {
		return err
	}
	config.ApplyPacePreset(&cfg, preset)

	if flagDBPath != "" {
		cfg.Storage.DBPath = flagDBPath
	}
	if flagLevels != "" {
		cfg.Levels.Dir = flagLevels
	}
	cfg = config.Validate(cfg)

	if cfg.Levels.Dir != "" {
		dir, err := storage.ExpandHome(cfg.Levels.Dir)
		if err != nil {
			return err
		}
		sokoban.RegisterDirectory(customPack, "Custom ("+dir+")", dir)
		logger.Debug("registered level directory", "pack", customPack, "dir", dir)
	}

	logger.Debug("config loaded", "move_interval", cfg.MoveInterval(), "tick_rate", cfg.Pacing.TickRate)
	return nil
}

// runtimeConfig builds the game runtime config for a screen size.
func runtimeConfig(width, height int) core.RuntimeConfig {
	return core.RuntimeConfig{
		ScreenW:      width,
		ScreenH:      height,
		TickRate:     cfg.Pacing.TickRate,
		MoveInterval: cfg.MoveInterval(),
	}
}

// openStore opens the records database. Play continues without records
// if it cannot be opened.
func openStore() *storage.Store {
	store, err := storage.Open(cfg.Storage.DBPath)
	if err != nil {
		logger.Warn("could not open records database, results will not be saved", "path", cfg.Storage.DBPath, "err", err)
		return nil
	}
	return store
}

func closeStore(store *storage.Store) {
	if store == nil {
		return
	}
	if err := store.Close(); err != nil {
		logger.Warn("could not close records database", "err", err)
	}
}
