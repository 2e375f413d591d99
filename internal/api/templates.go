package api

import (
	"context"
	"fmt"
	"net/http"
	"net/url"

	"mcon/internal/models"
)

// ListTemplates retrieves the template summaries of an organization
func (c *Client) ListTemplates(ctx context.Context, orgID string) ([]models.TemplateSummary, error) {
	query := url.Values{}
	query.Set("orgID", orgID)

	var response struct {
		Documents []models.TemplateSummary `json:"documents"`
	}
	if err := c.do(ctx, http.MethodGet, "documents/templates?"+query.Encode(), nil, &response); err != nil {
		return nil, fmt.Errorf("failed to list templates: %w", err)
	}
	return response.Documents, nil
}

// GetTemplate retrieves a template with its content
func (c *Client) GetTemplate(ctx context.Context, id string) (*models.Template, error) {
	var tmpl models.Template
	if err := c.do(ctx, http.MethodGet, "documents/templates/"+url.PathEscape(id), nil, &tmpl); err != nil {
		if IsNotFound(err) {
			return nil, fmt.Errorf("%w: %s", models.ErrTemplateNotFound, id)
		}
		return nil, fmt.Errorf("failed to get template: %w", err)
	}
	return &tmpl, nil
}
