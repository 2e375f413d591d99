package commands

import (
	"errors"
	"fmt"
	"os"
	"strings"
	"syscall"

	"github.com/charmbracelet/x/term"
	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"mcon/internal/api"
	"mcon/internal/config"
	"mcon/internal/models"
)

var authCmd = &cobra.Command{
	Use:   "auth",
	Short: "Manage the API token",
	Long:  "Store, remove and check the API token used to talk to the server",
}

var loginCmd = &cobra.Command{
	Use:   "login",
	Short: "Store an API token",
	Long: `Verify an API token against the server and store it in the global config directory.
The token is read from --token or prompted for without echo.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		globalConfigDir, err := config.GetGlobalConfigDir()
		if err != nil {
			return err
		}

		if err := os.MkdirAll(globalConfigDir, 0755); err != nil {
			return fmt.Errorf("error creating global config directory: %w", err)
		}

		serverURL := config.DefaultServerURL
		if globalConfig != nil && globalConfig.ServerURL != "" {
			serverURL = globalConfig.ServerURL
		}
		if flagHost != "" {
			serverURL = flagHost
		}

		token := flagToken
		if token == "" {
			fmt.Fprint(cmd.OutOrStdout(), "Token: ")
			tokenBytes, err := term.ReadPassword(uintptr(syscall.Stdin))
			if err != nil {
				return fmt.Errorf("error reading token: %w", err)
			}
			fmt.Fprintln(cmd.OutOrStdout()) // Add a newline after token input
			token = strings.TrimSpace(string(tokenBytes))
		}
		if token == "" {
			return errors.New("no token given")
		}

		client := api.NewClient(serverURL, token, nil, api.Options{Logger: logger})
		user, err := client.Me(cmd.Context())
		if err != nil {
			if api.IsUnauthorized(err) {
				return errors.New("login failed: the server rejected the token")
			}
			return fmt.Errorf("login failed: %w", err)
		}

		tokenStore := models.NewTokenStore(globalConfigDir)
		if err := tokenStore.SaveToken(token); err != nil {
			return fmt.Errorf("error saving token: %w", err)
		}

		color.New(color.FgGreen).Fprintf(cmd.OutOrStdout(), "Logged in as %s\n", user.Name)
		return nil
	},
}

var logoutCmd = &cobra.Command{
	Use:   "logout",
	Short: "Remove the stored API token",
	RunE: func(cmd *cobra.Command, args []string) error {
		globalConfigDir, err := config.GetGlobalConfigDir()
		if err != nil {
			return err
		}

		if err := models.NewTokenStore(globalConfigDir).ClearToken(); err != nil {
			return fmt.Errorf("error removing token: %w", err)
		}

		fmt.Fprintln(cmd.OutOrStdout(), "Successfully logged out")
		return nil
	},
}

var statusCmd = &cobra.Command{
	Use:   "status",
	Short: "Show who the current token belongs to",
	RunE: func(cmd *cobra.Command, args []string) error {
		s, err := newSession()
		if errors.Is(err, models.ErrNotLoggedIn) {
			fmt.Fprintln(cmd.OutOrStdout(), "You are not logged in")
			return nil
		}
		if err != nil {
			return err
		}

		user, err := s.client.Me(cmd.Context())
		if err != nil {
			return err
		}

		out := cmd.OutOrStdout()
		fmt.Fprintf(out, "Logged in as: %s\n", user.Name)
		fmt.Fprintf(out, "User ID: %s\n", user.ID)
		fmt.Fprintf(out, "Server: %s\n", s.client.BaseURL)
		if s.cfg.OrgID != "" {
			fmt.Fprintf(out, "Organization: %s\n", s.cfg.OrgID)
		}
		return nil
	},
}

func init() {
	authCmd.AddCommand(loginCmd)
	authCmd.AddCommand(logoutCmd)
	authCmd.AddCommand(statusCmd)
}
