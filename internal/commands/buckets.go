package commands

import (
	"fmt"

	"github.com/spf13/cobra"
)

var bucketCmd = &cobra.Command{
	Use:   "bucket",
	Short: "Inspect buckets",
	Long:  "List the buckets of the configured organization.",
}

var bucketListCmd = &cobra.Command{
	Use:   "list",
	Short: "List all buckets in the organization",
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

		out := cmd.OutOrStdout()
		if len(buckets) == 0 {
			fmt.Fprintln(out, "No buckets found.")
			return nil
		}

		fmt.Fprintf(out, "Buckets for organization %s:\n", orgID)
		for _, bucket := range buckets {
			fmt.Fprintf(out, "  - %s (%s)\n", bucket.Name, bucket.ID)
		}
		return nil
	},
}

func init() {
	bucketCmd.AddCommand(bucketListCmd)
}
