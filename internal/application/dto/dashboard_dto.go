package dto

import "time"

// RatingDTO is a classified value: label plus severity and its display color.
type RatingDTO struct {
	Label    string `json:"label"`
	Severity string `json:"severity"`
	Color    string `json:"color"`
}

// CategoryRatingDTO is one risk category with its score and rating.
type CategoryRatingDTO struct {
	Category string    `json:"category"`
	Score    float64   `json:"score"`
	Rating   RatingDTO `json:"rating"`
}

// RiskStatsResponse is the composite risk banner for a tenant.
type RiskStatsResponse struct {
	OverallScore float64             `json:"overall_score"`
	Overall      RatingDTO           `json:"overall"`
	Categories   []CategoryRatingDTO `json:"categories"`
}

// DashboardSection is one independently loaded widget of the dashboard
// composite. A failed section carries an error message, never fails the page.
type DashboardSection struct {
	Name  string      `json:"name"`
	Data  interface{} `json:"data,omitempty"`
	Error string      `json:"error,omitempty"`
}

// DashboardResponse is the composite dashboard for a tenant.
type DashboardResponse struct {
	TenantID  string             `json:"tenant_id"`
	RiskStats *RiskStatsResponse `json:"risk_stats,omitempty"`
	Sections  []DashboardSection `json:"sections"`
}

// SecureScorePointDTO is one point of the secure score history chart.
type SecureScorePointDTO struct {
	Date    time.Time `json:"date"`
	Percent float64   `json:"percent"`
	Rating  RatingDTO `json:"rating"`
}

// AdminUserDTO is one privileged role member row.
type AdminUserDTO struct {
	DisplayName       string    `json:"display_name"`
	UserPrincipalName string    `json:"user_principal_name"`
	RoleName          string    `json:"role_name"`
	MFARegistered     RatingDTO `json:"mfa_registered"`
}

// PolicyDTO is one conditional-access policy row, used by the trusted
// locations and sign-in policy widgets.
type PolicyDTO struct {
	DisplayName string    `json:"display_name"`
	State       string    `json:"state"`
	Enabled     RatingDTO `json:"enabled"`
}

// MFAUserDTO is one row of the phish-resistant MFA widget.
type MFAUserDTO struct {
	UserPrincipalName string    `json:"user_principal_name"`
	Methods           []string  `json:"methods"`
	PhishResistant    RatingDTO `json:"phish_resistant"`
}

// DeviceDTO is one row of the unencrypted devices widget.
type DeviceDTO struct {
	DeviceName      string    `json:"device_name"`
	OperatingSystem string    `json:"operating_system"`
	Compliance      RatingDTO `json:"compliance"`
	Encrypted       RatingDTO `json:"encrypted"`
}

// CompliancePolicyDTO is one device compliance policy row with its per-state
// counts.
type CompliancePolicyDTO struct {
	DisplayName       string    `json:"display_name"`
	Platform          string    `json:"platform"`
	CompliantCount    int       `json:"compliant_count"`
	NoncompliantCount int       `json:"noncompliant_count"`
	UnknownCount      int       `json:"unknown_count"`
	Overall           RatingDTO `json:"overall"`
}
