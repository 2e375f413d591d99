package commands

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"mcon/internal/config"
)

var (
	// Variables to hold flag values
	serverURL   string
	orgID       string
	timeoutSecs int
	retryMax    int
)

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Manage mcon configuration",
	Long:  "View and update the global mcon configuration file",
}

var configGetCmd = &cobra.Command{
	Use:       "get [key]",
	Short:     "Get configuration value",
	Long:      "Display a single configuration value or the whole configuration",
	Args:      cobra.MaximumNArgs(1),
	ValidArgs: []string{"server-url", "org-id", "timeout", "retry-max"},
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := config.LoadGlobalConfig()
		if err != nil {
			return fmt.Errorf("failed to load configuration: %w", err)
		}

		out := cmd.OutOrStdout()
		if len(args) == 0 {
			fmt.Fprintln(out, "Current configuration:")
			fmt.Fprintf(out, "Server URL: %s\n", cfg.ServerURL)
			if cfg.OrgID != "" {
				fmt.Fprintf(out, "Organization ID: %s\n", cfg.OrgID)
			}
			fmt.Fprintf(out, "Timeout: %s\n", cfg.Timeout())
			fmt.Fprintf(out, "Retries: %d\n", cfg.Retries())
			return nil
		}

		switch args[0] {
		case "server-url":
			fmt.Fprintln(out, cfg.ServerURL)
		case "org-id":
			fmt.Fprintln(out, cfg.OrgID)
		case "timeout":
			fmt.Fprintln(out, cfg.Timeout())
		case "retry-max":
			fmt.Fprintln(out, cfg.Retries())
		default:
			return fmt.Errorf("unknown configuration key: %s", args[0])
		}

		return nil
	},
}

var configSetCmd = &cobra.Command{
	Use:   "set",
	Short: "Set configuration values",
	Example: `  mcon config set --server-url https://metrics.example.com --org-id 0a1b2c3d4e5f6071
  mcon config set --timeout 60 --retry-max 5`,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := config.LoadGlobalConfig()
		if err != nil {
			return fmt.Errorf("failed to load configuration: %w", err)
		}

		out := cmd.OutOrStdout()
		configUpdated := false

		if cmd.Flags().Changed("server-url") {
			fmt.Fprintf(out, "Server URL updated: %s -> %s\n", cfg.ServerURL, serverURL)
			cfg.ServerURL = serverURL
			configUpdated = true
		}
		if cmd.Flags().Changed("org-id") {
			fmt.Fprintf(out, "Organization ID updated: %q -> %q\n", cfg.OrgID, orgID)
			cfg.OrgID = orgID
			configUpdated = true
		}
		if cmd.Flags().Changed("timeout") {
			if timeoutSecs <= 0 {
				return fmt.Errorf("timeout must be positive, got %d", timeoutSecs)
			}
			cfg.TimeoutSeconds = timeoutSecs
			fmt.Fprintf(out, "Timeout updated: %s\n", cfg.Timeout())
			configUpdated = true
		}
		if cmd.Flags().Changed("retry-max") {
			if retryMax < 0 {
				return fmt.Errorf("retry-max must not be negative, got %d", retryMax)
			}
			retries := retryMax
			cfg.RetryMax = &retries
			fmt.Fprintf(out, "Retries updated: %d\n", retries)
			configUpdated = true
		}

		if !configUpdated {
			fmt.Fprintln(out, "No changes were made to the configuration.")
			return nil
		}
		if err := config.SaveGlobalConfig(cfg); err != nil {
			return fmt.Errorf("failed to save configuration: %w", err)
		}
		fmt.Fprintln(out, "Configuration updated successfully.")
		return nil
	},
}

var configInitCmd = &cobra.Command{
	Use:   "init",
	Short: "Initialize configuration",
	Long:  "Create a new configuration file with default values",
	RunE: func(cmd *cobra.Command, args []string) error {
		configPath, err := config.GetGlobalConfigPath()
		if err != nil {
			return fmt.Errorf("failed to get config path: %w", err)
		}

		out := cmd.OutOrStdout()
		if _, err := os.Stat(configPath); err == nil {
			fmt.Fprintln(out, "Configuration file already exists.")
			fmt.Fprintln(out, "Use 'mcon config set' to modify existing configuration.")
			return nil
		}

		cfg := config.Default()
		if serverURL != "" {
			cfg.ServerURL = serverURL
		}
		if orgID != "" {
			cfg.OrgID = orgID
		}

		if err := config.SaveGlobalConfig(cfg); err != nil {
			return fmt.Errorf("failed to save configuration: %w", err)
		}

		fmt.Fprintln(out, "Configuration initialized successfully.")
		fmt.Fprintf(out, "Configuration file created at: %s\n", configPath)
		return nil
	},
}

var configPathsCmd = &cobra.Command{
	Use:   "paths",
	Short: "Show configuration file paths",
	RunE: func(cmd *cobra.Command, args []string) error {
		globalConfigDir, err := config.GetGlobalConfigDir()
		if err != nil {
			return err
		}

		paths := []struct {
			label string
			path  string
		}{
			{"Config file", filepath.Join(globalConfigDir, "config.json")},
			{"Auth token file", filepath.Join(globalConfigDir, ".auth_token")},
			{"History database", filepath.Join(globalConfigDir, "history.db")},
		}

		out := cmd.OutOrStdout()
		fmt.Fprintf(out, "Config directory: %s\n", globalConfigDir)
		for _, p := range paths {
			status := "exists"
			if _, err := os.Stat(p.path); os.IsNotExist(err) {
				status = "does not exist"
			}
			fmt.Fprintf(out, "- %s: %s (%s)\n", p.label, p.path, status)
		}
		return nil
	},
}

func init() {
	configCmd.AddCommand(configGetCmd)
	configCmd.AddCommand(configSetCmd)
	configCmd.AddCommand(configInitCmd)
	configCmd.AddCommand(configPathsCmd)

	configSetCmd.Flags().StringVar(&serverURL, "server-url", "", "Set API server URL")
	configSetCmd.Flags().StringVar(&orgID, "org-id", "", "Set default organization ID")
	configSetCmd.Flags().IntVar(&timeoutSecs, "timeout", 0, "Set request timeout in seconds")
	configSetCmd.Flags().IntVar(&retryMax, "retry-max", 0, "Set retries for idempotent requests")

	configInitCmd.Flags().StringVar(&serverURL, "server-url", "", "Set API server URL")
	configInitCmd.Flags().StringVar(&orgID, "org-id", "", "Set default organization ID")
}
