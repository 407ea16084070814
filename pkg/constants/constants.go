// Package constants defines system-wide constants for the Riskboard service.
package constants

import "time"

// ================================================================================
// Tenant Status Constants
// ================================================================================

// TenantStatus represents the lifecycle status of a managed tenant.
type TenantStatus string

const (
	// TenantStatusActive indicates the tenant is actively monitored.
	TenantStatusActive TenantStatus = "active"

	// TenantStatusSuspended indicates monitoring and reporting are paused.
	TenantStatusSuspended TenantStatus = "suspended"

	// TenantStatusDeleted indicates the tenant has been soft-deleted.
	TenantStatusDeleted TenantStatus = "deleted"
)

// ================================================================================
// Report Status Constants
// ================================================================================

// ReportStatus represents the lifecycle status of a quarterly report.
type ReportStatus string

const (
	// ReportStatusDraft is the initial state of a newly created report.
	ReportStatusDraft ReportStatus = "draft"

	// ReportStatusReview indicates the report is awaiting analyst review.
	ReportStatusReview ReportStatus = "review"

	// ReportStatusApproved indicates the report has passed review.
	ReportStatusApproved ReportStatus = "approved"

	// ReportStatusSent indicates the report has been delivered. Sent reports
	// are immutable.
	ReportStatusSent ReportStatus = "sent"
)

// ================================================================================
// Risk Category Constants
// ================================================================================

// RiskCategory identifies one of the five posture categories a tenant is
// scored on.
type RiskCategory string

const (
	CategoryIdentity RiskCategory = "identity"
	CategoryTraining RiskCategory = "training"
	CategoryDevice   RiskCategory = "device"
	CategoryCloud    RiskCategory = "cloud"
	CategoryThreat   RiskCategory = "threat"
)

// RiskCategories lists every category in display order.
var RiskCategories = []RiskCategory{
	CategoryIdentity,
	CategoryTraining,
	CategoryDevice,
	CategoryCloud,
	CategoryThreat,
}

// ================================================================================
// Metric Type Constants
// ================================================================================

// MetricType identifies one upstream metric payload. It is the cache key
// discriminator for per-tenant metric caching.
type MetricType string

const (
	MetricSecureScores       MetricType = "secure_scores"
	MetricManagedDevices     MetricType = "managed_devices"
	MetricSignInPolicies     MetricType = "sign_in_policies"
	MetricTrustedLocations   MetricType = "trusted_locations"
	MetricDirectoryRoles     MetricType = "directory_roles"
	MetricMFAMethods         MetricType = "mfa_methods"
	MetricCompliancePolicies MetricType = "compliance_policies"
)

// ================================================================================
// User Role Constants
// ================================================================================

// UserRole represents the access level of a staff user.
type UserRole string

const (
	RoleAdmin   UserRole = "admin"
	RoleAnalyst UserRole = "analyst"
	RoleViewer  UserRole = "viewer"
)

// ================================================================================
// Error Code Constants
// ================================================================================

// ErrorCode is a machine-readable error identifier carried by AppError.
type ErrorCode string

const (
	ErrCodeInternal        ErrorCode = "internal_error"
	ErrCodeInvalidRequest  ErrorCode = "invalid_request"
	ErrCodeValidation      ErrorCode = "validation_failed"
	ErrCodeUnauthorized    ErrorCode = "unauthorized"
	ErrCodeForbidden       ErrorCode = "forbidden"
	ErrCodeNotFound        ErrorCode = "not_found"
	ErrCodeConflict        ErrorCode = "conflict"
	ErrCodeRateLimited     ErrorCode = "rate_limit_exceeded"
	ErrCodeUpstream        ErrorCode = "upstream_error"
	ErrCodeBadPayload      ErrorCode = "bad_payload"
	ErrCodeUnavailable     ErrorCode = "service_unavailable"
)

// ================================================================================
// Cache Constants
// ================================================================================

const (
	// DefaultMetricCacheTTL bounds staleness of per-tenant metric payloads.
	DefaultMetricCacheTTL = 15 * time.Minute

	// TenantConfigCacheTTL bounds staleness of in-process tenant records.
	TenantConfigCacheTTL = 5 * time.Minute

	// DefaultUpstreamTimeout is the per-request timeout for the metrics backend.
	DefaultUpstreamTimeout = 30 * time.Second
)

// ================================================================================
// Context Keys
// ================================================================================

const (
	// ContextKeyRequestID carries the request correlation id through handlers.
	ContextKeyRequestID = "request_id"

	// ContextKeyUserID carries the authenticated staff user id.
	ContextKeyUserID = "user_id"

	// ContextKeyUserRole carries the authenticated staff user role.
	ContextKeyUserRole = "user_role"
)
