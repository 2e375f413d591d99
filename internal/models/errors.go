package models

import (
	"errors"
)

// Permission-related errors
var (
	// ErrInvalidAction is returned when an action is neither read nor write
	ErrInvalidAction = errors.New("invalid permission action")

	// ErrUnknownBucket is returned when a bucket name does not exist in the organization
	ErrUnknownBucket = errors.New("unknown bucket")

	// ErrNoPermissions is returned when a token would be created without any permission
	ErrNoPermissions = errors.New("token must grant at least one permission")
)

// Template-related errors
var (
	// ErrTemplateNotFound is returned when no template matches an ID or name
	ErrTemplateNotFound = errors.New("template not found")

	// ErrNotDashboardTemplate is returned when a template does not describe a dashboard
	ErrNotDashboardTemplate = errors.New("template is not a dashboard template")

	// ErrMissingDashboardName is returned when a dashboard template has no name
	ErrMissingDashboardName = errors.New("dashboard template has no name")

	// ErrUnsupportedTemplateFormat is returned for template files that are neither JSON nor YAML
	ErrUnsupportedTemplateFormat = errors.New("unsupported template file format")
)

// Session-related errors
var (
	// ErrNotLoggedIn is returned when no token is configured
	ErrNotLoggedIn = errors.New("not logged in")

	// ErrNoOrganization is returned when no organization ID is configured
	ErrNoOrganization = errors.New("no organization configured")
)
