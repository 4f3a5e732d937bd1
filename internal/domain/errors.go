package domain

import "errors"

var (
	ErrNotFound                = errors.New("resource not found")
	ErrUnauthorized            = errors.New("unauthorized")
	ErrForbidden               = errors.New("forbidden")
	ErrInvalidCredentials      = errors.New("invalid credentials")
	ErrTenantInactive          = errors.New("tenant is inactive")
	ErrUserInactive            = errors.New("user is inactive")
	ErrUnsupportedFileType     = errors.New("unsupported file type")
	ErrFileTooLarge            = errors.New("file exceeds maximum allowed size")
	ErrDuplicateEmail          = errors.New("email already exists for this tenant")
	ErrDuplicateTenantSlug     = errors.New("tenant slug already exists")
	ErrInvalidTenantSlug       = errors.New("tenant slug must be lowercase letters, digits, and hyphens")
	ErrUploadFailed            = errors.New("file upload to storage failed")
	ErrVendorNotFound          = errors.New("vendor not found")
	ErrVendorInactive          = errors.New("vendor is inactive")
	ErrPropertyNotFound        = errors.New("property not found")
	ErrCertificateNotFound     = errors.New("certificate not found")
	ErrExtractionNotFound      = errors.New("extraction not found")
	ErrExtractionAlreadyExists = errors.New("extraction already exists for this certificate")
	ErrExtractionNotCompleted  = errors.New("extraction has not completed yet")
	ErrRuleSetNotFound         = errors.New("no compliance rule set for this trade type")
	ErrDuplicateRuleSet        = errors.New("rule set already exists for this trade type")
	ErrInvalidReviewStatus     = errors.New("invalid review status")
	ErrInsufficientRole        = errors.New("insufficient role for this action")
	ErrVendorNoContactEmail    = errors.New("vendor has no contact email")
)
