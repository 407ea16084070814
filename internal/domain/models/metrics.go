package models

import "time"

// Pass-through representations of the Microsoft Graph entities the metrics
// backend proxies. No local invariants beyond what Graph defines; these are
// validated only for shape at the fetch boundary.

// SecureScoreEntry is one dated secure-score measurement.
type SecureScoreEntry struct {
	CurrentScore float64   `json:"currentScore"`
	MaxScore     float64   `json:"maxScore"`
	CreatedAt    time.Time `json:"createdDateTime"`
}

// Percent converts the raw point score to a 0-100 percentage.
func (e SecureScoreEntry) Percent() float64 {
	if e.MaxScore <= 0 {
		return 0
	}
	return e.CurrentScore / e.MaxScore * 100
}

// ManagedDevice is an Intune-managed device record.
type ManagedDevice struct {
	ID              string    `json:"id"`
	DeviceName      string    `json:"deviceName"`
	OperatingSystem string    `json:"operatingSystem"`
	ComplianceState string    `json:"complianceState"`
	IsEncrypted     bool      `json:"isEncrypted"`
	LastSyncAt      time.Time `json:"lastSyncDateTime"`
}

// ConditionalAccessPolicy is a directory conditional-access policy, covering
// both sign-in risk policies and trusted (named) locations.
type ConditionalAccessPolicy struct {
	ID          string `json:"id"`
	DisplayName string `json:"displayName"`
	State       string `json:"state"`
	PolicyType  string `json:"policyType"`
}

// DirectoryRoleMember is a member of a privileged directory role.
type DirectoryRoleMember struct {
	ID                string `json:"id"`
	DisplayName       string `json:"displayName"`
	UserPrincipalName string `json:"userPrincipalName"`
	RoleName          string `json:"roleName"`
	MFARegistered     bool   `json:"mfaRegistered"`
}

// MFAMethodReport is one user's authentication method registration status.
// PhishResistant is tri-state as reported upstream: "true", "false",
// "partial", or empty when the backend could not determine it.
type MFAMethodReport struct {
	UserID            string   `json:"userId"`
	UserPrincipalName string   `json:"userPrincipalName"`
	Methods           []string `json:"methods"`
	PhishResistant    string   `json:"phishResistant"`
}

// CompliancePolicy is an Intune device compliance policy with its per-state
// device counts.
type CompliancePolicy struct {
	ID                 string `json:"id"`
	DisplayName        string `json:"displayName"`
	Platform           string `json:"platform"`
	CompliantCount     int    `json:"compliantCount"`
	NoncompliantCount  int    `json:"noncompliantCount"`
	UnknownCount       int    `json:"unknownCount"`
}
