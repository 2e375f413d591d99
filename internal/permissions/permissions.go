// Package permissions derives the permission list attached to a bucket-scoped
// API token from the buckets a user selected for reading and writing.
package permissions

import (
	"mcon/internal/models"
)

// AllBucketsPermissions returns the single permission granting action on
// every bucket of the organization
func AllBucketsPermissions(orgID string, action models.Action) []models.Permission {
	return []models.Permission{
		{
			Action: action,
			Resource: models.Resource{
				Type:  models.ResourceTypeBuckets,
				OrgID: orgID,
			},
		},
	}
}

// SpecificBucketsPermissions returns one permission per bucket, each scoped to
// the bucket's own organization and ID
func SpecificBucketsPermissions(buckets []models.Bucket, action models.Action) []models.Permission {
	perms := make([]models.Permission, 0, len(buckets))
	for _, b := range buckets {
		perms = append(perms, models.Permission{
			Action: action,
			Resource: models.Resource{
				Type:  models.ResourceTypeBuckets,
				OrgID: b.OrgID,
				ID:    b.ID,
				Name:  b.Name,
			},
		})
	}
	return perms
}

// BucketPermissions derives the permissions for one access mode.
//
// A selection as large as the bucket list collapses into the organization-wide
// permission. Otherwise every selected name that resolves to a bucket yields a
// bucket-specific permission; names with no matching bucket are dropped.
func BucketPermissions(orgID string, buckets []models.Bucket, selected Selection, action models.Action) []models.Permission {
	if selected.Len() == len(buckets) {
		return AllBucketsPermissions(orgID, action)
	}

	byName := make(map[string]models.Bucket, len(buckets))
	for _, b := range buckets {
		byName[b.Name] = b
	}

	matched := make([]models.Bucket, 0, selected.Len())
	for _, name := range selected.names {
		if b, ok := byName[name]; ok {
			matched = append(matched, b)
		}
	}

	return SpecificBucketsPermissions(matched, action)
}

// UnknownBuckets returns the selected names that match no bucket
func UnknownBuckets(buckets []models.Bucket, selected Selection) []string {
	known := make(map[string]struct{}, len(buckets))
	for _, b := range buckets {
		known[b.Name] = struct{}{}
	}

	var unknown []string
	for _, name := range selected.names {
		if _, ok := known[name]; !ok {
			unknown = append(unknown, name)
		}
	}
	return unknown
}

// NewBucketsAuthorization builds the token-creation payload for a read and a
// write selection. Write permissions come first.
func NewBucketsAuthorization(orgID, description string, buckets []models.Bucket, read, write Selection) *models.Authorization {
	perms := BucketPermissions(orgID, buckets, write, models.ActionWrite)
	perms = append(perms, BucketPermissions(orgID, buckets, read, models.ActionRead)...)

	return &models.Authorization{
		OrgID:       orgID,
		Description: description,
		Permissions: perms,
	}
}
