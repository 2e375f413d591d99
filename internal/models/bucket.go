package models

// Bucket represents a named storage scope within an organization
type Bucket struct {
	ID          string `json:"id"`
	OrgID       string `json:"orgID"`
	Name        string `json:"name"`
	Description string `json:"description,omitempty"`
	CreatedAt   string `json:"createdAt,omitempty"`
	UpdatedAt   string `json:"updatedAt,omitempty"`
}

// BucketNames returns the names of the given buckets in order
func BucketNames(buckets []Bucket) []string {
	names := make([]string, 0, len(buckets))
	for _, b := range buckets {
		names = append(names, b.Name)
	}
	return names
}
