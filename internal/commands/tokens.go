package commands

import (
	"fmt"
	"io"
	"strings"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"mcon/internal/models"
	"mcon/internal/permissions"
	"mcon/internal/ui"
	"mcon/internal/util"
)

var (
	tokenDescription string
	tokenRead        []string
	tokenWrite       []string
	tokenReadAll     bool
	tokenWriteAll    bool
)

var tokenCmd = &cobra.Command{
	Use:   "token",
	Short: "Generate bucket-scoped API tokens",
	Long:  "Generate API tokens with read and/or write access to buckets of the organization.",
}

var tokenCreateCmd = &cobra.Command{
	Use:   "create",
	Short: "Create a read/write token for the given buckets",
	Long: `Create a token granting read and/or write access to the named buckets.
Selecting every bucket of the organization grants access to all buckets,
including buckets created later.`,
	Example: `  mcon token create -d telegraf --write telegraf --read telegraf,system
  mcon token create -d grafana --read-all`,
	RunE: func(cmd *cobra.Command, args []string) error {
		s, err := newSession()
		if err != nil {
			return err
		}
		orgID, err := s.orgID()
		if err != nil {
			return err
		}

		buckets, err := s.client.ListBuckets(cmd.Context(), orgID)
		if err != nil {
			return err
		}

		read := permissions.NewSelection(tokenRead...)
		if tokenReadAll {
			read = read.SelectAll(buckets)
		}
		write := permissions.NewSelection(tokenWrite...)
		if tokenWriteAll {
			write = write.SelectAll(buckets)
		}

		unknown := append(permissions.UnknownBuckets(buckets, read), permissions.UnknownBuckets(buckets, write)...)
		if len(unknown) > 0 {
			return fmt.Errorf("%w: %s", models.ErrUnknownBucket, strings.Join(unknown, ", "))
		}

		// An empty selection over an empty organization would derive org-wide access
		if read.Len()+write.Len() == 0 {
			return models.ErrNoPermissions
		}

		auth := permissions.NewBucketsAuthorization(orgID, tokenDescription, buckets, read, write)
		if len(auth.Permissions) == 0 {
			return models.ErrNoPermissions
		}

		created, err := s.client.CreateAuthorization(cmd.Context(), auth)
		if err != nil {
			return err
		}
		s.recordToken(created)

		printAuthorization(cmd.OutOrStdout(), created)
		return nil
	},
}

var tokenNewCmd = &cobra.Command{
	Use:   "new",
	Short: "Generate a read/write token interactively",
	RunE: func(cmd *cobra.Command, args []string) error {
		s, err := newSession()
		if err != nil {
			return err
		}
		orgID, err := s.orgID()
		if err != nil {
			return err
		}

		overlay, err := ui.Run(ui.NewTokenOverlay(cmd.Context(), orgID, s.client, s.client))
		if err != nil {
			return err
		}
		if overlay.Created == nil {
			fmt.Fprintln(cmd.OutOrStdout(), "No token created.")
			return nil
		}

		s.recordToken(overlay.Created)
		printAuthorization(cmd.OutOrStdout(), overlay.Created)
		return nil
	},
}

func printAuthorization(out io.Writer, auth *models.Authorization) {
	color.New(color.FgGreen).Fprintf(out, "Token created (%s)\n", util.Pluralize(len(auth.Permissions), "permission"))
	fmt.Fprintf(out, "  ID: %s\n", auth.ID)
	if auth.Description != "" {
		fmt.Fprintf(out, "  Description: %s\n", auth.Description)
	}
	for _, p := range auth.Permissions {
		fmt.Fprintf(out, "  - %s\n", p)
	}
	fmt.Fprintf(out, "  Token: %s\n", auth.Token)
}

func init() {
	tokenCmd.AddCommand(tokenCreateCmd)
	tokenCmd.AddCommand(tokenNewCmd)

	tokenCreateCmd.Flags().StringVarP(&tokenDescription, "description", "d", "", "Describe this new token")
	tokenCreateCmd.Flags().StringSliceVar(&tokenRead, "read", nil, "Buckets to grant read access to")
	tokenCreateCmd.Flags().StringSliceVar(&tokenWrite, "write", nil, "Buckets to grant write access to")
	tokenCreateCmd.Flags().BoolVar(&tokenReadAll, "read-all", false, "Grant read access to all buckets")
	tokenCreateCmd.Flags().BoolVar(&tokenWriteAll, "write-all", false, "Grant write access to all buckets")
}
