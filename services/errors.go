package services

import "errors"

// Validation errors; the request is rejected as-is.
var (
	ErrInvalidMonth    = errors.New("invalid month")
	ErrInvalidDate     = errors.New("invalid date")
	ErrInvalidCategory = errors.New("invalid reminder category")
)

// Scope errors.
var (
	ErrNoTenantScope   = errors.New("caller has no tenant scope")
	ErrTenantRequired  = errors.New("tenantId is required for cross-tenant access")
	ErrForbiddenTenant = errors.New("caller may not act on this tenant")
	ErrTenantNotFound  = errors.New("tenant not found")
)

// ErrReadOnly rejects writes from preview-only callers.
var ErrReadOnly = errors.New("caller role is read-only")
