package api

import (
	"context"
	"fmt"
	"net/http"
	"net/url"

	"mcon/internal/models"
)

// CreateDashboard creates an empty dashboard
func (c *Client) CreateDashboard(ctx context.Context, d *models.Dashboard) (*models.Dashboard, error) {
	body := struct {
		OrgID       string `json:"orgID"`
		Name        string `json:"name"`
		Description string `json:"description,omitempty"`
	}{
		OrgID:       d.OrgID,
		Name:        d.Name,
		Description: d.Description,
	}

	var created models.Dashboard
	if err := c.do(ctx, http.MethodPost, "dashboards", body, &created); err != nil {
		return nil, fmt.Errorf("dashboard creation failed: %w", err)
	}
	return &created, nil
}

// CreateVariable creates a query variable
func (c *Client) CreateVariable(ctx context.Context, v *models.Variable) (*models.Variable, error) {
	var created models.Variable
	if err := c.do(ctx, http.MethodPost, "variables", v, &created); err != nil {
		return nil, fmt.Errorf("variable creation failed: %w", err)
	}
	return &created, nil
}

// AddCell adds a cell to a dashboard
func (c *Client) AddCell(ctx context.Context, dashboardID string, cell models.Cell, name string) (*models.Cell, error) {
	body := struct {
		models.Cell
		Name string `json:"name,omitempty"`
	}{
		Cell: cell,
		Name: name,
	}

	var created models.Cell
	path := fmt.Sprintf("dashboards/%s/cells", url.PathEscape(dashboardID))
	if err := c.do(ctx, http.MethodPost, path, body, &created); err != nil {
		return nil, fmt.Errorf("cell creation failed: %w", err)
	}
	return &created, nil
}

// UpdateCellView replaces the view rendered by a dashboard cell
func (c *Client) UpdateCellView(ctx context.Context, dashboardID, cellID string, view models.View) (*models.View, error) {
	var updated models.View
	path := fmt.Sprintf("dashboards/%s/cells/%s/view", url.PathEscape(dashboardID), url.PathEscape(cellID))
	if err := c.do(ctx, http.MethodPatch, path, view, &updated); err != nil {
		return nil, fmt.Errorf("view update failed: %w", err)
	}
	return &updated, nil
}
