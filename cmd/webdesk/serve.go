package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"

	"github.com/yourusername/webdesk/internal/config"
	"github.com/yourusername/webdesk/internal/desktop"
	"github.com/yourusername/webdesk/internal/logging"
	"github.com/yourusername/webdesk/internal/registry"
	"github.com/yourusername/webdesk/internal/server"
	"github.com/yourusername/webdesk/internal/session"
)

var (
	serveWatch      bool
	serveForeground bool
)

// serveCmd runs the daemon
var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Run the desktop daemon",
	Long: `Starts a desktop with the configured applications and serves it on the
Unix socket until interrupted.

With --watch the config file is watched and the application registry is
reloaded when it changes. Open windows are kept.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		if serveForeground {
			logging.SetOutput(os.Stderr)
		}

		cfg, err := loadConfig()
		if err != nil {
			return err
		}
		reg, err := registry.FromConfig(cfg)
		if err != nil {
			return err
		}

		opts := []desktop.Option{desktop.WithConstraints(cfg.Constraints())}
		if cfg.Settings.CheckInvariants {
			opts = append(opts, desktop.WithInvariantChecks())
		}
		d := desktop.New(reg, cfg.GetViewport(), opts...)

		sess := session.New(d,
			session.WithMetrics(metricsFromConfig(cfg)),
			session.WithLiveUpdates(cfg.Settings.LiveResize),
		)
		defer sess.Close()

		srv := server.New(socketPath, sess)

		ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
		defer stop()

		g, gctx := errgroup.WithContext(ctx)
		g.Go(func() error { return srv.Serve(gctx) })

		if serveWatch {
			path := configPath
			if path == "" {
				path = config.GetConfigPath()
			}
			watcher := server.NewConfigWatcher(path, func(ctx context.Context, reg *registry.Registry) error {
				if err := sess.Reload(ctx, reg); err != nil {
					return err
				}
				srv.Broadcast("config.reloaded", map[string]interface{}{"apps": reg.IDs()})
				return nil
			})
			g.Go(func() error { return watcher.Run(gctx) })
		}

		successColor.Print("✓ Serving ")
		fmt.Printf("%d apps on %s\n", reg.Len(), socketPath)
		logging.Info().
			Str("socket", socketPath).
			Int("apps", reg.Len()).
			Bool("watch", serveWatch).
			Msg("daemon started")

		if err := g.Wait(); err != nil {
			return err
		}
		logging.Info().Msg("daemon stopped")
		return nil
	},
}

func initServeFlags() {
	serveCmd.Flags().BoolVar(&serveWatch, "watch", false, "Reload applications when the config file changes")
	serveCmd.Flags().BoolVar(&serveForeground, "foreground", false, "Log to stderr instead of the log file")
}
