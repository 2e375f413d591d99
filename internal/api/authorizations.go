package api

import (
	"context"
	"fmt"
	"net/http"

	"mcon/internal/models"
)

// CreateAuthorization creates a new API token carrying the given permissions
func (c *Client) CreateAuthorization(ctx context.Context, auth *models.Authorization) (*models.Authorization, error) {
	var created models.Authorization
	if err := c.do(ctx, http.MethodPost, "authorizations", auth, &created); err != nil {
		return nil, fmt.Errorf("token creation failed: %w", err)
	}
	return &created, nil
}
