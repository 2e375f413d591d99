package models

// AuthorizationStatus is the activation state of a token
type AuthorizationStatus string

const (
	StatusActive   AuthorizationStatus = "active"
	StatusInactive AuthorizationStatus = "inactive"
)

// Authorization is an API token together with the permissions it carries
type Authorization struct {
	ID          string              `json:"id,omitempty"`
	Token       string              `json:"token,omitempty"`
	Status      AuthorizationStatus `json:"status,omitempty"`
	Description string              `json:"description"`
	OrgID       string              `json:"orgID"`
	Permissions []Permission        `json:"permissions"`
	CreatedAt   string              `json:"createdAt,omitempty"`
}
