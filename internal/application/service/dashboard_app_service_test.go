package service_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mspsec/riskboard/internal/application/service"
	"github.com/mspsec/riskboard/internal/domain/models"
	"github.com/mspsec/riskboard/pkg/constants"
	"github.com/mspsec/riskboard/pkg/logger"
)

// payloadFetcher serves canned payloads per metric type and can fail a subset.
type payloadFetcher struct {
	payloads map[constants.MetricType][]byte
	failing  map[constants.MetricType]error
}

func (f *payloadFetcher) FetchRaw(_ context.Context, _ string, metricType constants.MetricType) ([]byte, error) {
	if err, ok := f.failing[metricType]; ok {
		return nil, err
	}
	if p, ok := f.payloads[metricType]; ok {
		return p, nil
	}
	return []byte(`[]`), nil
}

type noopCache struct{}

func (noopCache) Get(context.Context, string, constants.MetricType) ([]byte, error) {
	return nil, assert.AnError
}
func (noopCache) Set(context.Context, string, constants.MetricType, []byte) error { return nil }
func (noopCache) InvalidateTenant(context.Context, string) error                  { return nil }

func newDashboardFixture(fetcher *payloadFetcher, snaps *fakeSnapshotRepo) service.DashboardAppService {
	metricSvc := service.NewMetricService(fetcher, noopCache{}, nil, logger.NewNoopLogger())
	return service.NewDashboardAppService(metricSvc, snaps, logger.NewNoopLogger())
}

func TestDashboardService_RiskStatsFromLatestSnapshot(t *testing.T) {
	snaps := newFakeSnapshotRepo()
	require.NoError(t, snaps.Append(context.Background(), models.NewSnapshot("tenant-a",
		models.RiskScores{Overall: 75, Identity: 80, Training: 35, Device: 90, Cloud: 60, Threat: 72}, 75)))

	svc := newDashboardFixture(&payloadFetcher{}, snaps)

	stats, err := svc.RiskStats(context.Background(), "tenant-a")
	require.NoError(t, err)
	assert.Equal(t, 75.0, stats.OverallScore)
	assert.Equal(t, "Low Risk", stats.Overall.Label)
	require.Len(t, stats.Categories, 5)

	byCategory := map[string]string{}
	for _, c := range stats.Categories {
		byCategory[c.Category] = c.Rating.Label
	}
	assert.Equal(t, "Good", byCategory["identity"])
	assert.Equal(t, "Poor", byCategory["training"])
	assert.Equal(t, "Fair", byCategory["cloud"])
}

func TestDashboardService_SecureScoresClassified(t *testing.T) {
	fetcher := &payloadFetcher{payloads: map[constants.MetricType][]byte{
		constants.MetricSecureScores: []byte(`[
			{"currentScore": 30, "maxScore": 100, "createdDateTime": "2026-08-01T00:00:00Z"},
			{"currentScore": 72, "maxScore": 100, "createdDateTime": "2026-08-02T00:00:00Z"}
		]`),
	}}
	svc := newDashboardFixture(fetcher, newFakeSnapshotRepo())

	points, err := svc.SecureScores(context.Background(), "tenant-a")
	require.NoError(t, err)
	require.Len(t, points, 2)
	assert.Equal(t, "red", points[0].Rating.Color)
	assert.Equal(t, "green", points[1].Rating.Color)
}

func TestDashboardService_UnencryptedDevicesUnknownStyledAsWarning(t *testing.T) {
	fetcher := &payloadFetcher{payloads: map[constants.MetricType][]byte{
		constants.MetricManagedDevices: []byte(`[
			{"id":"d1","deviceName":"LAPTOP-01","complianceState":"compliant","isEncrypted":true},
			{"id":"d2","deviceName":"LAPTOP-02","complianceState":"noncompliant","isEncrypted":false},
			{"id":"d3","deviceName":"LAPTOP-03","complianceState":"inGracePeriod","isEncrypted":false}
		]`),
	}}
	svc := newDashboardFixture(fetcher, newFakeSnapshotRepo())

	devices, err := svc.UnencryptedDevices(context.Background(), "tenant-a")
	require.NoError(t, err)
	// encrypted devices are excluded
	require.Len(t, devices, 2)
	assert.Equal(t, "red", devices[0].Compliance.Color)
	// unknown compliance renders yellow on this widget
	assert.Equal(t, "yellow", devices[1].Compliance.Color)
	assert.Equal(t, "No", devices[1].Encrypted.Label)
}

func TestDashboardService_PhishResistantMFATriState(t *testing.T) {
	fetcher := &payloadFetcher{payloads: map[constants.MetricType][]byte{
		constants.MetricMFAMethods: []byte(`[
			{"userPrincipalName":"a@acme.example","phishResistant":"true","methods":["fido2"]},
			{"userPrincipalName":"b@acme.example","phishResistant":"partial","methods":["authenticator"]},
			{"userPrincipalName":"c@acme.example","phishResistant":"false","methods":["sms"]},
			{"userPrincipalName":"d@acme.example","phishResistant":"","methods":[]}
		]`),
	}}
	svc := newDashboardFixture(fetcher, newFakeSnapshotRepo())

	rows, err := svc.PhishResistantMFA(context.Background(), "tenant-a")
	require.NoError(t, err)
	require.Len(t, rows, 4)
	assert.Equal(t, "Yes", rows[0].PhishResistant.Label)
	assert.Equal(t, "Partially Resistant", rows[1].PhishResistant.Label)
	assert.Equal(t, "No", rows[2].PhishResistant.Label)
	assert.Equal(t, "Unknown", rows[3].PhishResistant.Label)
}

func TestDashboardService_CompliancePoliciesOverall(t *testing.T) {
	fetcher := &payloadFetcher{payloads: map[constants.MetricType][]byte{
		constants.MetricCompliancePolicies: []byte(`[
			{"displayName":"Baseline","platform":"windows","compliantCount":9,"noncompliantCount":1,"unknownCount":0},
			{"displayName":"Mobile","platform":"ios","compliantCount":1,"noncompliantCount":3,"unknownCount":1}
		]`),
	}}
	svc := newDashboardFixture(fetcher, newFakeSnapshotRepo())

	rows, err := svc.CompliancePolicies(context.Background(), "tenant-a")
	require.NoError(t, err)
	require.Len(t, rows, 2)
	assert.Equal(t, "Good", rows[0].Overall.Label) // 90%
	assert.Equal(t, "Poor", rows[1].Overall.Label) // 20%
}

func TestDashboardService_CompositeSurvivesSectionFailures(t *testing.T) {
	fetcher := &payloadFetcher{
		payloads: map[constants.MetricType][]byte{
			constants.MetricSecureScores: []byte(`[{"currentScore":50,"maxScore":100,"createdDateTime":"2026-08-01T00:00:00Z"}]`),
		},
		failing: map[constants.MetricType]error{
			constants.MetricManagedDevices: assert.AnError,
			constants.MetricMFAMethods:     assert.AnError,
		},
	}
	svc := newDashboardFixture(fetcher, newFakeSnapshotRepo())

	resp, err := svc.Dashboard(context.Background(), "tenant-a")
	require.NoError(t, err)
	require.Len(t, resp.Sections, 7)

	byName := map[string]struct {
		hasData bool
		errMsg  string
	}{}
	for _, sec := range resp.Sections {
		byName[sec.Name] = struct {
			hasData bool
			errMsg  string
		}{sec.Data != nil, sec.Error}
	}

	assert.True(t, byName["secure_scores"].hasData)
	assert.Empty(t, byName["secure_scores"].errMsg)

	// failed sections carry the uniform client message, not the cause
	assert.False(t, byName["no_encryption"].hasData)
	assert.Equal(t, "data temporarily unavailable", byName["no_encryption"].errMsg)
	assert.Equal(t, "data temporarily unavailable", byName["phish_resistant_mfa"].errMsg)
}

func TestDashboardService_M365AdminsMFARegistration(t *testing.T) {
	fetcher := &payloadFetcher{payloads: map[constants.MetricType][]byte{
		constants.MetricDirectoryRoles: []byte(`[
			{"displayName":"Root Admin","userPrincipalName":"root@acme.example","roleName":"Global Administrator","mfaRegistered":true},
			{"displayName":"Helpdesk","userPrincipalName":"help@acme.example","roleName":"Helpdesk Administrator","mfaRegistered":false}
		]`),
	}}
	svc := newDashboardFixture(fetcher, newFakeSnapshotRepo())

	admins, err := svc.M365Admins(context.Background(), "tenant-a")
	require.NoError(t, err)
	require.Len(t, admins, 2)
	assert.Equal(t, "Yes", admins[0].MFARegistered.Label)
	assert.Equal(t, "No", admins[1].MFARegistered.Label)
}
