//go:build integration

package integration

import (
	"context"
	"os"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/testcontainers/testcontainers-go"
	tcpostgres "github.com/testcontainers/testcontainers-go/modules/postgres"
	"github.com/testcontainers/testcontainers-go/wait"
	gormpostgres "gorm.io/driver/postgres"
	"gorm.io/gorm"

	"github.com/mspsec/riskboard/internal/domain/models"
	"github.com/mspsec/riskboard/internal/infrastructure/persistence/postgres"
	"github.com/mspsec/riskboard/pkg/constants"
	"github.com/mspsec/riskboard/pkg/errors"
	"github.com/mspsec/riskboard/pkg/logger"
)

func startPostgres(t *testing.T) *gorm.DB {
	t.Helper()
	if os.Getenv("SKIP_DOCKER_TESTS") == "true" {
		t.Skip("skipping Docker-dependent tests")
	}

	ctx := context.Background()
	container, err := tcpostgres.RunContainer(ctx,
		testcontainers.WithImage("postgres:16-alpine"),
		tcpostgres.WithDatabase("riskboard_test"),
		tcpostgres.WithUsername("riskboard"),
		tcpostgres.WithPassword("riskboard"),
		testcontainers.WithWaitStrategy(
			wait.ForLog("database system is ready to accept connections").
				WithOccurrence(2).
				WithStartupTimeout(5*time.Minute),
		),
	)
	require.NoError(t, err)
	t.Cleanup(func() {
		require.NoError(t, container.Terminate(ctx))
	})

	connStr, err := container.ConnectionString(ctx, "sslmode=disable")
	require.NoError(t, err)

	db, err := gorm.Open(gormpostgres.Open(connStr), &gorm.Config{TranslateError: true})
	require.NoError(t, err)
	require.NoError(t, postgres.Migrate(db))
	return db
}

func TestTenantAndReportRepositories(t *testing.T) {
	ctx := context.Background()
	db := startPostgres(t)
	log := logger.NewNoopLogger()

	tenantRepo := postgres.NewTenantRepository(db, log)
	reportRepo := postgres.NewReportRepository(db, log)

	tenant := models.NewTenant("Contoso Ltd", "Manufacturing")
	require.NoError(t, tenantRepo.Save(ctx, tenant))

	got, err := tenantRepo.FindByID(ctx, tenant.ID)
	require.NoError(t, err)
	assert.Equal(t, constants.TenantStatusActive, got.Status)

	period := models.Period{Year: 2026, Quarter: 2}
	report := models.NewReport(tenant.ID, period, models.RiskScores{Overall: 72, Identity: 80}, "admin-1")
	require.NoError(t, reportRepo.Save(ctx, report))

	// One report per tenant and period.
	dup := models.NewReport(tenant.ID, period, models.RiskScores{}, "admin-1")
	err = reportRepo.Save(ctx, dup)
	require.Error(t, err)
	assert.True(t, errors.IsConflict(err))

	byPeriod, err := reportRepo.FindByPeriod(ctx, tenant.ID, period)
	require.NoError(t, err)
	require.NotNil(t, byPeriod)
	assert.Equal(t, report.ID, byPeriod.ID)
	assert.Equal(t, 72.0, byPeriod.Scores.Overall)

	// Lifecycle survives a round trip.
	require.NoError(t, byPeriod.Submit())
	require.NoError(t, byPeriod.Approve())
	require.NoError(t, byPeriod.Send([]string{"ciso@contoso.example"}))
	require.NoError(t, reportRepo.Update(ctx, byPeriod))

	sent, err := reportRepo.FindByID(ctx, report.ID)
	require.NoError(t, err)
	assert.Equal(t, constants.ReportStatusSent, sent.Status)
	assert.Equal(t, []string{"ciso@contoso.example"}, sent.Recipients)
	require.NotNil(t, sent.SentAt)
}

func TestSnapshotRepository_AppendAndRange(t *testing.T) {
	ctx := context.Background()
	db := startPostgres(t)
	repo := postgres.NewSnapshotRepository(db, logger.NewNoopLogger())

	tenantID := "tenant-range"
	base := time.Now().UTC().Add(-72 * time.Hour).Truncate(time.Second)
	for i := 0; i < 4; i++ {
		snap := models.NewSnapshot(tenantID, models.RiskScores{Overall: float64(50 + i)}, float64(50+i))
		snap.CollectedAt = base.Add(time.Duration(i) * 24 * time.Hour)
		require.NoError(t, repo.Append(ctx, snap))
	}

	latest, err := repo.Latest(ctx, tenantID)
	require.NoError(t, err)
	require.NotNil(t, latest)
	assert.Equal(t, 53.0, latest.Scores.Overall)

	window, err := repo.Range(ctx, tenantID, base.Add(12*time.Hour), base.Add(60*time.Hour))
	require.NoError(t, err)
	require.Len(t, window, 2)
	assert.True(t, window[0].CollectedAt.Before(window[1].CollectedAt))

	none, err := repo.Latest(ctx, "unknown-tenant")
	require.NoError(t, err)
	assert.Nil(t, none)
}
