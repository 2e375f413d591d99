package commands

import (
	"errors"
	"fmt"
	"io"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"mcon/internal/dashboards"
	"mcon/internal/models"
	"mcon/internal/templates"
	"mcon/internal/ui"
	"mcon/internal/util"
)

var dashboardTemplateFile string

var dashboardCmd = &cobra.Command{
	Use:   "dashboard",
	Short: "Create dashboards",
	Long:  "Create dashboards from templates stored on the server or in local files.",
}

var dashboardFromTemplateCmd = &cobra.Command{
	Use:   "from-template [id|name]",
	Short: "Create a dashboard from a template",
	Example: `  mcon dashboard from-template System
  mcon dashboard from-template --file system.yaml`,
	Args: cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		if (len(args) == 0) == (dashboardTemplateFile == "") {
			return errors.New("specify either a template id/name or --file")
		}

		s, err := newSession()
		if err != nil {
			return err
		}
		orgID, err := s.orgID()
		if err != nil {
			return err
		}

		var tmpl *models.Template
		if dashboardTemplateFile != "" {
			tmpl, err = templates.Load(dashboardTemplateFile)
		} else {
			tmpl, err = s.resolveTemplate(cmd.Context(), args[0])
		}
		if err != nil {
			return err
		}

		dashboard, err := dashboards.NewCreator(s.client, logger).CreateFromTemplate(cmd.Context(), orgID, tmpl)
		if err != nil {
			if dashboard != nil {
				logger.Warn("dashboard created with errors", "dashboard_id", dashboard.ID)
			}
			return err
		}
		s.recordDashboard(dashboard, tmpl.Meta.Name)

		printDashboard(cmd.OutOrStdout(), dashboard, tmpl)
		return nil
	},
}

var dashboardNewCmd = &cobra.Command{
	Use:   "new",
	Short: "Pick a template and create a dashboard interactively",
	RunE: func(cmd *cobra.Command, args []string) error {
		s, err := newSession()
		if err != nil {
			return err
		}
		orgID, err := s.orgID()
		if err != nil {
			return err
		}

		creator := dashboards.NewCreator(s.client, logger)
		overlay, err := ui.Run(ui.NewTemplateOverlay(cmd.Context(), orgID, s.client, creator))
		if err != nil {
			return err
		}
		if overlay.Created == nil {
			fmt.Fprintln(cmd.OutOrStdout(), "No dashboard created.")
			return nil
		}

		s.recordDashboard(overlay.Created, overlay.SelectedTemplate.Meta.Name)
		printDashboard(cmd.OutOrStdout(), overlay.Created, overlay.SelectedTemplate)
		return nil
	},
}

func printDashboard(out io.Writer, d *models.Dashboard, tmpl *models.Template) {
	color.New(color.FgGreen).Fprintf(out, "Dashboard '%s' created\n", d.Name)
	fmt.Fprintf(out, "  ID: %s\n", d.ID)
	fmt.Fprintf(out, "  %s, %s\n",
		util.Pluralize(len(d.Cells), "cell"),
		util.Pluralize(len(templates.Variables(tmpl)), "variable"),
	)
}

func init() {
	dashboardCmd.AddCommand(dashboardFromTemplateCmd)
	dashboardCmd.AddCommand(dashboardNewCmd)

	dashboardFromTemplateCmd.Flags().StringVarP(&dashboardTemplateFile, "file", "f", "", "Read the template from a JSON or YAML file")
}
