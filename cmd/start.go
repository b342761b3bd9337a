package cmd

import (
	"context"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"

	"devserve/core/browser"
	"devserve/core/config"
	"devserve/core/loader"
	"devserve/core/logger"
	"devserve/core/middleware/accesslog"
	"devserve/core/middleware/rayid"
	"devserve/core/server"
	"devserve/feature/static"

	"github.com/fatih/color"
	"github.com/gofiber/fiber/v2"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

// startCmd represents the start command
var startCmd = &cobra.Command{
	Use:   "start",
	Short: "Serve the site and open it in a browser",
	Long:  `Binds the configured port, serves the site until interrupted and opens the default browser at the root URL.`,
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		return runServer(cmd.Context(), cmd.OutOrStdout())
	},
}

func runServer(ctx context.Context, out io.Writer) error {
	cfg, err := config.LoadConfig(".")
	if err != nil {
		return fmt.Errorf("failed to load configuration: %w", err)
	}

	logg, err := logger.New(&cfg.Log)
	if err != nil {
		return fmt.Errorf("failed to initialize logger: %w", err)
	}
	defer logg.Sync()
	zap.ReplaceGlobals(logg)

	source, location, err := newSource(cfg)
	if err != nil {
		return err
	}
	logg = logg.With(zap.String("source", cfg.Site.Source))

	app := fiber.New(fiber.Config{
		AppName:               "devserve",
		DisableStartupMessage: true, // We print our own banner
	})

	// RayID first so the access log carries it.
	app.Use(rayid.New())
	app.Use(accesslog.New(logg))

	mgr := loader.NewManager()
	mgr.Register(static.NewFeature(source, cfg.Site, logg))
	loaded, err := mgr.LoadAll(app)
	if err != nil {
		return err
	}
	logg.Debug("Features loaded", zap.Strings("features", loaded))

	ctx, stop := signal.NotifyContext(ctx, os.Interrupt, syscall.SIGTERM)
	defer stop()

	hooks := []server.StartHook{
		func(url string) {
			color.New(color.FgGreen, color.Bold).Fprintf(out, "Serving %s at %s\n", location, url)
		},
	}
	if cfg.Server.OpenBrowser {
		hooks = append(hooks, browser.Hook(browser.Default(), logg))
	}

	srv := server.New(cfg.Server, app, logg)
	if err := srv.Run(ctx, hooks...); err != nil {
		return err
	}

	color.New(color.FgYellow).Fprintln(out, "\nServer stopped.")
	return nil
}

func init() {
	RootCmd.AddCommand(startCmd)
	RootCmd.RunE = startCmd.RunE
}
