package commands

import (
	"fmt"

	"github.com/spf13/cobra"

	"mcon/internal/config"
	"mcon/internal/history"
)

var historyKind string

var historyCmd = &cobra.Command{
	Use:   "history",
	Short: "Show tokens and dashboards created from this machine",
	RunE: func(cmd *cobra.Command, args []string) error {
		configDir, err := config.GetGlobalConfigDir()
		if err != nil {
			return err
		}
		s := &session{configDir: configDir}

		store, err := s.history()
		if err != nil {
			return err
		}
		defer store.Close()

		var kinds []history.Kind
		if historyKind != "" {
			kinds = append(kinds, history.Kind(historyKind))
		}

		entries, err := store.List(kinds...)
		if err != nil {
			return err
		}

		out := cmd.OutOrStdout()
		if len(entries) == 0 {
			fmt.Fprintln(out, "Nothing created yet.")
			return nil
		}

		for _, e := range entries {
			switch e.Kind {
			case history.KindToken:
				fmt.Fprintf(out, "%s  token      %s  %q (%d permissions)\n", e.CreatedAt.Format("2006-01-02 15:04"), e.ID, e.Name, e.Permissions)
			case history.KindDashboard:
				fmt.Fprintf(out, "%s  dashboard  %s  %q from %q\n", e.CreatedAt.Format("2006-01-02 15:04"), e.ID, e.Name, e.Detail)
			}
		}
		return nil
	},
}

func init() {
	historyCmd.Flags().StringVar(&historyKind, "kind", "", "Only show one kind: tokens or dashboards")
}
