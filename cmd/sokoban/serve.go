package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/tui-sokoban/internal/games/sokoban"
	"github.com/vovakirdan/tui-sokoban/internal/platform/tui"
	"github.com/vovakirdan/tui-sokoban/internal/transport/spectate"
)

var (
	flagSSHAddr     string
	flagHostKey     string
	flagIdleTimeout int
	flagSpectate    string
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the Sokoban SSH server",
	Long: `Start an SSH server that allows users to connect and play.

Each SSH connection gets its own session with the level chooser.
Results are stored per-server under the SSH user name.

Host key handling:
  - If --host-key is provided, uses that key file
  - Otherwise, auto-generates a key at ~/.sokoban/host_key

Spectating:
  With --spectate, every session's board is streamed as JSON over WebSocket:
    GET /sessions          - live session IDs
    GET /watch/{session}   - snapshots of one session

Examples:
  sokoban serve                           # Listen on :23234 with auto-generated key
  sokoban serve --ssh :2222               # Listen on port 2222
  sokoban serve --host-key ./my_host_key  # Use specific host key
  sokoban serve --spectate :8080          # Also serve the spectator feed

Users can connect with:
  ssh localhost -p 23234`,
	Args: cobra.NoArgs,
	RunE: runServe,
}

func init() {
	serveCmd.Flags().StringVar(&flagSSHAddr, "ssh", "", "SSH server address (default from config, :23234)")
	serveCmd.Flags().StringVar(&flagHostKey, "host-key", "", "Path to host key file (auto-generated if not specified)")
	serveCmd.Flags().IntVar(&flagIdleTimeout, "idle-timeout", 0, "Idle timeout in minutes (default from config, 30)")
	serveCmd.Flags().StringVar(&flagSpectate, "spectate", "", "Spectator feed address, e.g. :8080 (default from config, off)")
}

func runServe(cmd *cobra.Command, _ []string) error {
	if flagSSHAddr != "" {
		cfg.Server.Address = flagSSHAddr
	}
	if flagHostKey != "" {
		cfg.Server.HostKeyPath = flagHostKey
	}
	if flagIdleTimeout > 0 {
		cfg.Server.IdleTimeoutMinutes = flagIdleTimeout
	}
	if flagSpectate != "" {
		cfg.Server.SpectateAddress = flagSpectate
	}

	ctx, cancel := context.WithCancel(cmd.Context())
	defer cancel()

	store := openStore()
	defer closeStore(store)

	srvCfg := tui.SSHServerConfig{
		Address:     cfg.Server.Address,
		HostKeyPath: cfg.Server.HostKeyPath,
		IdleTimeout: cfg.IdleTimeout(),
		Runtime:     runtimeConfig(80, 24),
		NewGame:     tui.SokobanFactory(sokoban.GlyphsFromConfig(cfg.Glyphs)),
		PackID:      cfg.Levels.Pack,
		Logger:      logger,
	}

	spectateErr := make(chan error, 1)
	if addr := cfg.Server.SpectateAddress; addr != "" {
		hub := spectate.NewHub(logger.WithPrefix("spectate"))
		go hub.Run(ctx)
		go func() {
			logger.Info("starting spectator feed", "address", addr)
			err := hub.ListenAndServe(ctx, addr)
			if err != nil && !errors.Is(err, http.ErrServerClosed) {
				spectateErr <- err
				cancel()
			}
		}()
		srvCfg.Publisher = hub
	}

	server, err := tui.NewSSHServer(srvCfg, store)
	if err != nil {
		return err
	}

	fmt.Printf("Starting Sokoban SSH server on %s\n", server.Addr())
	fmt.Println("Press Ctrl+C to stop")

	if err := server.ListenAndServe(ctx); err != nil {
		return err
	}

	select {
	case err := <-spectateErr:
		return fmt.Errorf("spectator feed: %w", err)
	default:
		return nil
	}
}
