package service_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mspsec/riskboard/internal/application/dto"
	"github.com/mspsec/riskboard/internal/application/service"
	"github.com/mspsec/riskboard/internal/domain/models"
	"github.com/mspsec/riskboard/internal/infrastructure/secrets"
	apperrors "github.com/mspsec/riskboard/pkg/errors"
	"github.com/mspsec/riskboard/pkg/logger"
)

type integrationFixture struct {
	svc      service.IntegrationAppService
	store    *secrets.MemoryStore
	fetcher  *fakeFetcher
	audit    *fakeAudit
	tenantID string
}

func newIntegrationFixture(t *testing.T) *integrationFixture {
	t.Helper()
	tenants := newFakeTenantRepo()
	integrations := newFakeIntegrationRepo()
	store := secrets.NewMemoryStore()
	fetcher := &fakeFetcher{payload: []byte(`[]`)}
	audit := &fakeAudit{}

	tenant := models.NewTenant("Acme Corp", "")
	require.NoError(t, tenants.Save(context.Background(), tenant))

	metricSvc, _ := newMetricService(t, fetcher)
	return &integrationFixture{
		svc: service.NewIntegrationAppService(
			integrations, tenants, store, metricSvc, fetcher, audit, logger.NewNoopLogger()),
		store:    store,
		fetcher:  fetcher,
		audit:    audit,
		tenantID: tenant.ID,
	}
}

func TestIntegrationService_CreateStoresSecretSeparately(t *testing.T) {
	f := newIntegrationFixture(t)
	ctx := context.Background()

	created, err := f.svc.CreateIntegration(ctx, f.tenantID, &dto.CreateIntegrationRequest{
		DirectoryID:  "6e1f5e6a-6a9e-4d0a-8a74-0a3ddc1f4cf2",
		ClientID:     "app-registration-1",
		ClientSecret: "super-secret-value",
	})
	require.NoError(t, err)
	assert.Equal(t, "m365", created.Type)
	assert.Equal(t, "integrations/"+created.ID, created.SecretRef)

	// the secret lives only in the store
	secret, err := f.store.Get(ctx, created.SecretRef)
	require.NoError(t, err)
	assert.Equal(t, "super-secret-value", secret["client_secret"])

	assert.Contains(t, f.audit.eventTypes(), models.AuditIntegrationCreated)
}

func TestIntegrationService_CreateForUnknownTenant(t *testing.T) {
	f := newIntegrationFixture(t)

	_, err := f.svc.CreateIntegration(context.Background(), "nope", &dto.CreateIntegrationRequest{
		DirectoryID:  "6e1f5e6a-6a9e-4d0a-8a74-0a3ddc1f4cf2",
		ClientID:     "app",
		ClientSecret: "s",
	})
	assert.True(t, apperrors.IsNotFound(err))
}

func TestIntegrationService_DeleteRemovesSecret(t *testing.T) {
	f := newIntegrationFixture(t)
	ctx := context.Background()

	created, err := f.svc.CreateIntegration(ctx, f.tenantID, &dto.CreateIntegrationRequest{
		DirectoryID:  "6e1f5e6a-6a9e-4d0a-8a74-0a3ddc1f4cf2",
		ClientID:     "app",
		ClientSecret: "s",
	})
	require.NoError(t, err)

	require.NoError(t, f.svc.DeleteIntegration(ctx, created.ID))

	_, err = f.store.Get(ctx, created.SecretRef)
	assert.True(t, apperrors.IsNotFound(err))

	list, err := f.svc.ListIntegrations(ctx, f.tenantID)
	require.NoError(t, err)
	assert.Empty(t, list)
}

func TestIntegrationService_TestReportsReachability(t *testing.T) {
	f := newIntegrationFixture(t)
	ctx := context.Background()

	created, err := f.svc.CreateIntegration(ctx, f.tenantID, &dto.CreateIntegrationRequest{
		DirectoryID:  "6e1f5e6a-6a9e-4d0a-8a74-0a3ddc1f4cf2",
		ClientID:     "app",
		ClientSecret: "s",
	})
	require.NoError(t, err)

	result, err := f.svc.TestIntegration(ctx, created.ID)
	require.NoError(t, err)
	assert.True(t, result.Reachable)

	f.fetcher.mu.Lock()
	f.fetcher.err = assert.AnError
	f.fetcher.mu.Unlock()

	result, err = f.svc.TestIntegration(ctx, created.ID)
	require.NoError(t, err)
	assert.False(t, result.Reachable)
	assert.NotEmpty(t, result.Message)
}
