// Package dashboards instantiates dashboards from templates.
package dashboards

import (
	"context"
	"fmt"
	"io"
	"log/slog"

	"golang.org/x/sync/errgroup"

	"mcon/internal/models"
	"mcon/internal/templates"
)

// defaultConcurrency bounds the number of in-flight cell and variable requests
const defaultConcurrency = 4

// Client is the subset of the platform API a Creator needs
type Client interface {
	CreateDashboard(ctx context.Context, d *models.Dashboard) (*models.Dashboard, error)
	CreateVariable(ctx context.Context, v *models.Variable) (*models.Variable, error)
	AddCell(ctx context.Context, dashboardID string, cell models.Cell, name string) (*models.Cell, error)
	UpdateCellView(ctx context.Context, dashboardID, cellID string, view models.View) (*models.View, error)
}

// Creator creates dashboards, with their variables and cells, from templates
type Creator struct {
	client      Client
	logger      *slog.Logger
	concurrency int
}

// NewCreator creates a Creator. A nil logger discards output.
func NewCreator(client Client, logger *slog.Logger) *Creator {
	if logger == nil {
		logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	return &Creator{client: client, logger: logger, concurrency: defaultConcurrency}
}

// CreateFromTemplate creates a dashboard in orgID described by t
func (c *Creator) CreateFromTemplate(ctx context.Context, orgID string, t *models.Template) (*models.Dashboard, error) {
	if err := templates.Validate(t); err != nil {
		return nil, err
	}

	attrs := t.Content.Data.Attributes
	dashboard, err := c.client.CreateDashboard(ctx, &models.Dashboard{
		OrgID:       orgID,
		Name:        attrs.Name,
		Description: attrs.Description,
	})
	if err != nil {
		return nil, err
	}
	c.logger.Info("dashboard created", "dashboard_id", dashboard.ID, "name", dashboard.Name)

	if err := c.createVariables(ctx, templates.VariableResources(t, orgID)); err != nil {
		return dashboard, err
	}

	cells, err := c.createCells(ctx, dashboard.ID, templates.CellLayouts(t))
	if err != nil {
		return dashboard, err
	}
	dashboard.Cells = cells

	return dashboard, nil
}

func (c *Creator) createVariables(ctx context.Context, vars []models.Variable) error {
	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(c.concurrency)

	for i := range vars {
		v := vars[i]
		g.Go(func() error {
			created, err := c.client.CreateVariable(ctx, &v)
			if err != nil {
				return fmt.Errorf("variable %q: %w", v.Name, err)
			}
			c.logger.Debug("variable created", "variable_id", created.ID, "name", v.Name)
			return nil
		})
	}

	return g.Wait()
}

// createCells adds every cell and attaches its view. Returned cells keep template order.
func (c *Creator) createCells(ctx context.Context, dashboardID string, layouts []templates.CellLayout) ([]models.Cell, error) {
	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(c.concurrency)

	cells := make([]models.Cell, len(layouts))

	for i := range layouts {
		i, layout := i, layouts[i]
		g.Go(func() error {
			cell, err := c.client.AddCell(ctx, dashboardID, layout.Cell, layout.View.Name)
			if err != nil {
				return fmt.Errorf("cell %q: %w", layout.View.Name, err)
			}

			view, err := c.client.UpdateCellView(ctx, dashboardID, cell.ID, layout.View)
			if err != nil {
				return fmt.Errorf("view %q: %w", layout.View.Name, err)
			}
			cell.ViewID = view.ID

			cells[i] = *cell
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}
	return cells, nil
}
