package commands

import (
	"context"
	"errors"
	"fmt"
	"io"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"mcon/internal/models"
	"mcon/internal/templates"
	"mcon/internal/util"
)

var templateCmd = &cobra.Command{
	Use:   "template",
	Short: "Browse dashboard templates",
	Long:  "List the dashboard templates of the organization and preview their cells and variables.",
}

var templateListCmd = &cobra.Command{
	Use:   "list",
	Short: "List dashboard templates",
	RunE: func(cmd *cobra.Command, args []string) error {
		s, err := newSession()
		if err != nil {
			return err
		}
		orgID, err := s.orgID()
		if err != nil {
			return err
		}

		summaries, err := s.client.ListTemplates(cmd.Context(), orgID)
		if err != nil {
			return err
		}

		out := cmd.OutOrStdout()
		if len(summaries) == 0 {
			fmt.Fprintln(out, "No templates found.")
			return nil
		}

		fmt.Fprintln(out, "Templates:")
		for _, summary := range summaries {
			fmt.Fprintf(out, "  %s  %s\n", summary.ID, summary.Meta.Name)
		}
		return nil
	},
}

var templateShowCmd = &cobra.Command{
	Use:   "show <id|name>",
	Short: "Show the cells and variables of a template",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		s, err := newSession()
		if err != nil {
			return err
		}

		tmpl, err := s.resolveTemplate(cmd.Context(), args[0])
		if err != nil {
			return err
		}

		printTemplate(cmd.OutOrStdout(), tmpl)
		return nil
	},
}

// resolveTemplate fetches a template by ID, or by name through the template listing
func (s *session) resolveTemplate(ctx context.Context, idOrName string) (*models.Template, error) {
	if util.IsID(idOrName) {
		tmpl, err := s.client.GetTemplate(ctx, idOrName)
		if err == nil {
			return tmpl, nil
		}
		if !errors.Is(err, models.ErrTemplateNotFound) {
			return nil, err
		}
		logger.Debug("template id lookup failed, trying by name", "template", idOrName, "error", err)
	}

	orgID, err := s.orgID()
	if err != nil {
		return nil, err
	}
	summaries, err := s.client.ListTemplates(ctx, orgID)
	if err != nil {
		return nil, err
	}
	summary, err := templates.FindSummary(summaries, idOrName)
	if err != nil {
		return nil, err
	}
	return s.client.GetTemplate(ctx, summary.ID)
}

func printTemplate(out io.Writer, tmpl *models.Template) {
	heading := color.New(color.Bold)

	heading.Fprintf(out, "%s\n", tmpl.Meta.Name)
	if tmpl.Meta.Description != "" {
		fmt.Fprintln(out, tmpl.Meta.Description)
	}

	cells := templates.Cells(tmpl)
	heading.Fprintf(out, "\nCells (%d)\n", len(cells))
	for _, c := range cells {
		fmt.Fprintf(out, "  %s\n", c)
	}

	variables := templates.Variables(tmpl)
	heading.Fprintf(out, "\nVariables (%d)\n", len(variables))
	for _, v := range variables {
		fmt.Fprintf(out, "  %s\n", v)
	}
}

func init() {
	templateCmd.AddCommand(templateListCmd)
	templateCmd.AddCommand(templateShowCmd)
}
