package service_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/mspsec/riskboard/internal/domain/models"
	"github.com/mspsec/riskboard/internal/domain/service"
)

func TestDeriveScores_EmptyBundleScoresZero(t *testing.T) {
	scores := service.DeriveScores(service.MetricBundle{})

	assert.Equal(t, models.RiskScores{}, scores)
}

func TestDeriveScores_OverallUsesLatestSecureScore(t *testing.T) {
	now := time.Now()
	b := service.MetricBundle{
		SecureScores: []models.SecureScoreEntry{
			{CurrentScore: 40, MaxScore: 100, CreatedAt: now.Add(-48 * time.Hour)},
			{CurrentScore: 65, MaxScore: 100, CreatedAt: now},
			{CurrentScore: 50, MaxScore: 100, CreatedAt: now.Add(-24 * time.Hour)},
		},
	}

	assert.Equal(t, 65.0, service.DeriveScores(b).Overall)
}

func TestDeriveScores_IdentityIsAdminMFAShare(t *testing.T) {
	b := service.MetricBundle{
		Admins: []models.DirectoryRoleMember{
			{UserPrincipalName: "a@x.com", MFARegistered: true},
			{UserPrincipalName: "b@x.com", MFARegistered: true},
			{UserPrincipalName: "c@x.com", MFARegistered: false},
			{UserPrincipalName: "d@x.com", MFARegistered: false},
		},
	}

	assert.Equal(t, 50.0, service.DeriveScores(b).Identity)
}

func TestDeriveScores_TrainingCountsPartialAsHalf(t *testing.T) {
	b := service.MetricBundle{
		MFAMethods: []models.MFAMethodReport{
			{UserID: "1", PhishResistant: "true"},
			{UserID: "2", PhishResistant: "partial"},
			{UserID: "3", PhishResistant: "false"},
			{UserID: "4", PhishResistant: ""},
		},
	}

	assert.Equal(t, 37.5, service.DeriveScores(b).Training)
}

func TestDeriveScores_DeviceRequiresEncryptionAndCompliance(t *testing.T) {
	b := service.MetricBundle{
		Devices: []models.ManagedDevice{
			{DeviceName: "ok", IsEncrypted: true, ComplianceState: "compliant"},
			{DeviceName: "unencrypted", IsEncrypted: false, ComplianceState: "compliant"},
			{DeviceName: "noncompliant", IsEncrypted: true, ComplianceState: "noncompliant"},
			{DeviceName: "grace", IsEncrypted: true, ComplianceState: "inGracePeriod"},
		},
	}

	assert.Equal(t, 25.0, service.DeriveScores(b).Device)
}

func TestDeriveScores_CloudSpansBothPolicySets(t *testing.T) {
	b := service.MetricBundle{
		SignInPolicies: []models.ConditionalAccessPolicy{
			{DisplayName: "block legacy auth", State: "enabled"},
			{DisplayName: "require mfa", State: "enabledForReportingButNotEnforced"},
		},
		TrustedLocations: []models.ConditionalAccessPolicy{
			{DisplayName: "hq", State: "Enabled"},
			{DisplayName: "old office", State: "disabled"},
		},
	}

	assert.Equal(t, 50.0, service.DeriveScores(b).Cloud)
}

func TestDeriveScores_ThreatWeightsByDeviceCounts(t *testing.T) {
	b := service.MetricBundle{
		CompliancePolicies: []models.CompliancePolicy{
			{DisplayName: "windows baseline", CompliantCount: 90, NoncompliantCount: 10},
			{DisplayName: "macos baseline", CompliantCount: 30, NoncompliantCount: 50, UnknownCount: 20},
		},
	}

	assert.Equal(t, 60.0, service.DeriveScores(b).Threat)
}
