// Package errors provides structured error handling with i18n support.
package errors

import "github.com/polycoder/tenants/internal/platform/errors/i18n"

// Code is a machine-readable error code.
type Code string

const (
	// CodeUnknown represents an unknown error.
	CodeUnknown Code = "UNKNOWN"

	// Tenant errors
	CodeTenantIDRequired       Code = "TENANT_ID_REQUIRED"
	CodeTenantValidationFailed Code = "TENANT_VALIDATION_FAILED"
	CodeTenantNotFound         Code = "TENANT_NOT_FOUND"
	CodeTenantAlreadyExists    Code = "TENANT_ALREADY_EXISTS"
	CodeTenantVersionConflict  Code = "TENANT_VERSION_CONFLICT"

	// Storage errors
	CodeEventFilterInvalid Code = "EVENT_FILTER_INVALID"
)

func formatCode(locale string, code Code, metadata map[string]string) string {
	return i18n.GetCatalog(locale).Format(string(code), metadata)
}
