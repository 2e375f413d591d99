package api

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"strconv"

	"mcon/internal/models"
)

// bucketPageSize is the number of buckets requested per page
const bucketPageSize = 100

// ListBuckets retrieves every bucket of an organization, following pagination
func (c *Client) ListBuckets(ctx context.Context, orgID string) ([]models.Bucket, error) {
	var buckets []models.Bucket

	for offset := 0; ; offset += bucketPageSize {
		query := url.Values{}
		query.Set("orgID", orgID)
		query.Set("limit", strconv.Itoa(bucketPageSize))
		query.Set("offset", strconv.Itoa(offset))

		var response struct {
			Buckets []models.Bucket `json:"buckets"`
		}
		if err := c.do(ctx, http.MethodGet, "buckets?"+query.Encode(), nil, &response); err != nil {
			return nil, fmt.Errorf("failed to list buckets: %w", err)
		}

		buckets = append(buckets, response.Buckets...)
		if len(response.Buckets) < bucketPageSize {
			break
		}
	}

	return buckets, nil
}
