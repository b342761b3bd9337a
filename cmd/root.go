package cmd

import (
	"fmt"
	"os"

	"devserve/core/logger"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

// RootCmd represents the base command. Run without a subcommand it serves
// the site, same as start.
var RootCmd = &cobra.Command{
	Use:   "devserve",
	Short: "Serve a static site locally",
	Long: `devserve serves a static site from a local directory (or an S3/MinIO
bucket prefix) over HTTP and opens it in the default browser.

Configuration is read from config.yaml, .env and SECTION_KEY environment
variables, e.g. SITE_ROOT=./daily-planner SERVER_PORT=8000.`,
	Args:          cobra.NoArgs,
	SilenceUsage:  true,
	SilenceErrors: true,
}

func Execute() {
	if err := RootCmd.Execute(); err != nil {
		// Console format with ISO8601 timestamps, whatever LOG_FORMAT says:
		// the config itself may be what failed.
		l, logErr := logger.New(&logger.Config{Level: "debug", Format: "console"})
		if logErr == nil {
			l.Error("command failed", zap.Error(err))
			_ = l.Sync()
		} else {
			fmt.Fprintln(os.Stderr, err)
		}
		os.Exit(1)
	}
}
