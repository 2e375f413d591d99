package commands

import (
	"context"
	"log/slog"

	"github.com/spf13/cobra"

	"mcon/internal/config"
)

var (
	globalConfig *config.Config
	logger       = slog.Default()

	// Global flag values
	flagHost    string
	flagOrgID   string
	flagToken   string
	flagVerbose bool
)

var rootCmd = &cobra.Command{
	Use:   "mcon",
	Short: "Monitoring console - manage buckets, tokens and dashboards",
	Long: `mcon is a terminal console for a time-series monitoring platform.
It generates bucket-scoped read/write tokens and creates dashboards from templates,
either interactively or from scripts.`,
	Version:       "0.1.0",
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRun: func(cmd *cobra.Command, args []string) {
		level := slog.LevelInfo
		if flagVerbose {
			level = slog.LevelDebug
		}
		logger = slog.New(slog.NewTextHandler(cmd.ErrOrStderr(), &slog.HandlerOptions{Level: level}))
	},
}

// Execute runs the root command
func Execute(ctx context.Context, cfg *config.Config) error {
	globalConfig = cfg
	return rootCmd.ExecuteContext(ctx)
}

func init() {
	rootCmd.PersistentFlags().StringVar(&flagHost, "host", "", "API server URL (overrides config and MCON_HOST)")
	rootCmd.PersistentFlags().StringVar(&flagOrgID, "org-id", "", "Organization ID (overrides config and MCON_ORG_ID)")
	rootCmd.PersistentFlags().StringVar(&flagToken, "token", "", "API token (overrides the stored token and MCON_TOKEN)")
	rootCmd.PersistentFlags().BoolVarP(&flagVerbose, "verbose", "v", false, "Enable debug logging")

	// Add all commands
	rootCmd.AddCommand(bucketCmd)
	rootCmd.AddCommand(tokenCmd)
	rootCmd.AddCommand(templateCmd)
	rootCmd.AddCommand(dashboardCmd)
	rootCmd.AddCommand(historyCmd)
	rootCmd.AddCommand(authCmd)
	rootCmd.AddCommand(configCmd)
}
