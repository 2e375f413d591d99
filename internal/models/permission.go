package models

import "fmt"

// Action is the access mode granted by a permission
type Action string

const (
	// ActionRead grants read access
	ActionRead Action = "read"

	// ActionWrite grants write access
	ActionWrite Action = "write"
)

// ResourceType identifies the kind of resource a permission targets
type ResourceType string

const (
	// ResourceTypeBuckets targets buckets
	ResourceTypeBuckets ResourceType = "buckets"
)

// Resource is the target of a permission. A resource with an empty ID
// covers every resource of its type in the organization.
type Resource struct {
	Type  ResourceType `json:"type"`
	OrgID string       `json:"orgID,omitempty"`
	ID    string       `json:"id,omitempty"`
	Name  string       `json:"name,omitempty"`
}

// IsWildcard reports whether the resource covers all resources of its type
func (r Resource) IsWildcard() bool {
	return r.ID == ""
}

// Permission grants an action on a resource
type Permission struct {
	Action   Action   `json:"action"`
	Resource Resource `json:"resource"`
}

// String renders the permission as action:type/target
func (p Permission) String() string {
	if p.Resource.IsWildcard() {
		return fmt.Sprintf("%s:orgs/%s/%s", p.Action, p.Resource.OrgID, p.Resource.Type)
	}
	target := p.Resource.ID
	if p.Resource.Name != "" {
		target = p.Resource.Name
	}
	return fmt.Sprintf("%s:%s/%s", p.Action, p.Resource.Type, target)
}

// ParseAction converts a user-supplied string into an Action
func ParseAction(s string) (Action, error) {
	switch Action(s) {
	case ActionRead, ActionWrite:
		return Action(s), nil
	}
	return "", fmt.Errorf("%w: %q", ErrInvalidAction, s)
}
