package service

import (
	"strings"

	"github.com/mspsec/riskboard/internal/domain/models"
)

// MetricBundle groups the upstream payloads a posture snapshot derives from.
// Slices may be empty when a fetch failed; the affected category scores zero.
type MetricBundle struct {
	SecureScores       []models.SecureScoreEntry
	Devices            []models.ManagedDevice
	SignInPolicies     []models.ConditionalAccessPolicy
	TrustedLocations   []models.ConditionalAccessPolicy
	Admins             []models.DirectoryRoleMember
	MFAMethods         []models.MFAMethodReport
	CompliancePolicies []models.CompliancePolicy
}

// LatestSecureScorePercent returns the percentage of the most recent secure
// score entry, or 0 when there are none.
func (b MetricBundle) LatestSecureScorePercent() float64 {
	var latest *models.SecureScoreEntry
	for i := range b.SecureScores {
		e := &b.SecureScores[i]
		if latest == nil || e.CreatedAt.After(latest.CreatedAt) {
			latest = e
		}
	}
	if latest == nil {
		return 0
	}
	return latest.Percent()
}

// DeriveScores computes the per-category posture scores from raw metrics.
//
//   - overall: the latest secure score percentage
//   - identity: share of privileged role members with MFA registered
//   - training: share of users registered for phish-resistant MFA, partial
//     registrations counting half
//   - device: share of managed devices that are encrypted and compliant
//   - cloud: share of conditional access policies (sign-in and trusted
//     location) in the enabled state
//   - threat: share of devices reported compliant across compliance policies
//
// Ratios over an empty population score zero rather than a perfect 100, so a
// tenant with no data never shows up green.
func DeriveScores(b MetricBundle) models.RiskScores {
	return models.RiskScores{
		Overall:  b.LatestSecureScorePercent(),
		Identity: identityScore(b.Admins),
		Training: trainingScore(b.MFAMethods),
		Device:   deviceScore(b.Devices),
		Cloud:    cloudScore(b.SignInPolicies, b.TrustedLocations),
		Threat:   threatScore(b.CompliancePolicies),
	}
}

func identityScore(admins []models.DirectoryRoleMember) float64 {
	if len(admins) == 0 {
		return 0
	}
	var registered int
	for _, a := range admins {
		if a.MFARegistered {
			registered++
		}
	}
	return percent(registered, len(admins))
}

func trainingScore(reports []models.MFAMethodReport) float64 {
	if len(reports) == 0 {
		return 0
	}
	var sum float64
	for _, r := range reports {
		switch strings.ToLower(r.PhishResistant) {
		case "true":
			sum += 1
		case "partial":
			sum += 0.5
		}
	}
	return sum / float64(len(reports)) * 100
}

func deviceScore(devices []models.ManagedDevice) float64 {
	if len(devices) == 0 {
		return 0
	}
	var healthy int
	for _, d := range devices {
		if d.IsEncrypted && strings.EqualFold(d.ComplianceState, "compliant") {
			healthy++
		}
	}
	return percent(healthy, len(devices))
}

func cloudScore(policies ...[]models.ConditionalAccessPolicy) float64 {
	var total, enabled int
	for _, set := range policies {
		for _, p := range set {
			total++
			if strings.EqualFold(p.State, "enabled") {
				enabled++
			}
		}
	}
	if total == 0 {
		return 0
	}
	return percent(enabled, total)
}

func threatScore(policies []models.CompliancePolicy) float64 {
	var compliant, total int
	for _, p := range policies {
		compliant += p.CompliantCount
		total += p.CompliantCount + p.NoncompliantCount + p.UnknownCount
	}
	if total == 0 {
		return 0
	}
	return percent(compliant, total)
}

func percent(part, whole int) float64 {
	return float64(part) / float64(whole) * 100
}
