package cmd

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"devserve/core/config"
	"devserve/core/logger"
	"devserve/feature/integrity"

	"github.com/spf13/cobra"
)

var errUnhealthy = errors.New("site is not servable as configured")

// checkCmd represents the check command
var checkCmd = &cobra.Command{
	Use:   "check",
	Short: "Check that the configured site can be served",
	Long:  `Verifies the site root exists and holds the index file, then prints the report as JSON.`,
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := config.LoadConfig(".")
		if err != nil {
			return fmt.Errorf("failed to load configuration: %w", err)
		}

		logg, err := logger.New(&cfg.Log)
		if err != nil {
			return fmt.Errorf("failed to initialize logger: %w", err)
		}
		defer logg.Sync()

		source, location, err := newSource(cfg)
		if err != nil {
			return err
		}

		ctx, cancel := context.WithTimeout(cmd.Context(), cfg.Storage.Timeout())
		defer cancel()

		svc := integrity.NewService(source, location, cfg.Site.Index, logg)
		report, err := svc.CheckSite(ctx)
		if err != nil {
			return err
		}

		enc := json.NewEncoder(cmd.OutOrStdout())
		enc.SetIndent("", "  ")
		if err := enc.Encode(report); err != nil {
			return err
		}

		if !report.Healthy() {
			return errUnhealthy
		}
		return nil
	},
}

func init() {
	RootCmd.AddCommand(checkCmd)
}
