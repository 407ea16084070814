package postgres

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"

	"github.com/mspsec/riskboard/internal/domain/models"
	"github.com/mspsec/riskboard/pkg/constants"
	"github.com/mspsec/riskboard/pkg/errors"
	"github.com/mspsec/riskboard/pkg/logger"
)

func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	// A named shared in-memory database keeps gorm's pooled connections on
	// the same data while isolating tests from each other.
	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", t.Name())
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		Logger:         gormlogger.Default.LogMode(gormlogger.Silent),
		TranslateError: true,
	})
	require.NoError(t, err)
	require.NoError(t, Migrate(db))
	t.Cleanup(func() {
		sqlDB, _ := db.DB()
		_ = sqlDB.Close()
	})
	return db
}

func TestTenantRepository_CRUD(t *testing.T) {
	ctx := context.Background()
	repo := NewTenantRepository(newTestDB(t), logger.NewNoopLogger())

	tenant := models.NewTenant("Contoso Ltd", "Manufacturing")
	require.NoError(t, repo.Save(ctx, tenant))

	got, err := repo.FindByID(ctx, tenant.ID)
	require.NoError(t, err)
	assert.Equal(t, "Contoso Ltd", got.Name)
	assert.Equal(t, constants.TenantStatusActive, got.Status)

	got.Suspend()
	require.NoError(t, repo.Update(ctx, got))

	got, err = repo.FindByID(ctx, tenant.ID)
	require.NoError(t, err)
	assert.Equal(t, constants.TenantStatusSuspended, got.Status)
}

func TestTenantRepository_FindAllExcludesDeleted(t *testing.T) {
	ctx := context.Background()
	repo := NewTenantRepository(newTestDB(t), logger.NewNoopLogger())

	alive := models.NewTenant("Alive Co", "Retail")
	dead := models.NewTenant("Gone Co", "Retail")
	require.NoError(t, repo.Save(ctx, alive))
	require.NoError(t, repo.Save(ctx, dead))

	dead.SoftDelete()
	require.NoError(t, repo.Update(ctx, dead))

	tenants, total, err := repo.FindAll(ctx, 10, 0)
	require.NoError(t, err)
	assert.EqualValues(t, 1, total)
	require.Len(t, tenants, 1)
	assert.Equal(t, alive.ID, tenants[0].ID)

	// Soft-deleted records stay reachable by id for history.
	got, err := repo.FindByID(ctx, dead.ID)
	require.NoError(t, err)
	assert.NotNil(t, got.DeletedAt)
}

func TestTenantRepository_NotFound(t *testing.T) {
	repo := NewTenantRepository(newTestDB(t), logger.NewNoopLogger())
	_, err := repo.FindByID(context.Background(), "missing")
	assert.True(t, errors.IsNotFound(err))
}

func TestReportRepository_RoundTrip(t *testing.T) {
	ctx := context.Background()
	repo := NewReportRepository(newTestDB(t), logger.NewNoopLogger())

	report := models.NewReport("tenant-1", models.Period{Year: 2026, Quarter: 1},
		models.RiskScores{Overall: 72, Identity: 80, Device: 65}, "analyst-1")
	require.NoError(t, report.AddComment("analyst-1", "enable conditional access"))
	require.NoError(t, repo.Save(ctx, report))

	got, err := repo.FindByID(ctx, report.ID)
	require.NoError(t, err)
	assert.Equal(t, 72.0, got.Scores.Overall)
	assert.Equal(t, 80.0, got.Scores.Identity)
	require.Len(t, got.Comments, 1)
	assert.Equal(t, "enable conditional access", got.Comments[0].Body)
}

func TestReportRepository_OnePerPeriod(t *testing.T) {
	ctx := context.Background()
	repo := NewReportRepository(newTestDB(t), logger.NewNoopLogger())

	period := models.Period{Year: 2026, Quarter: 2}
	first := models.NewReport("tenant-1", period, models.RiskScores{}, "a")
	require.NoError(t, repo.Save(ctx, first))

	dup := models.NewReport("tenant-1", period, models.RiskScores{}, "b")
	err := repo.Save(ctx, dup)
	assert.True(t, errors.IsConflict(err))

	// Same period for a different tenant is fine.
	other := models.NewReport("tenant-2", period, models.RiskScores{}, "c")
	assert.NoError(t, repo.Save(ctx, other))
}

func TestReportRepository_FindByPeriod(t *testing.T) {
	ctx := context.Background()
	repo := NewReportRepository(newTestDB(t), logger.NewNoopLogger())

	period := models.Period{Year: 2026, Month: 3}
	report := models.NewReport("tenant-1", period, models.RiskScores{Overall: 50}, "a")
	require.NoError(t, repo.Save(ctx, report))

	got, err := repo.FindByPeriod(ctx, "tenant-1", period)
	require.NoError(t, err)
	require.NotNil(t, got)
	assert.Equal(t, report.ID, got.ID)

	missing, err := repo.FindByPeriod(ctx, "tenant-1", models.Period{Year: 2026, Month: 4})
	require.NoError(t, err)
	assert.Nil(t, missing)
}

func TestReportRepository_UpdatePersistsTransition(t *testing.T) {
	ctx := context.Background()
	repo := NewReportRepository(newTestDB(t), logger.NewNoopLogger())

	report := models.NewReport("tenant-1", models.Period{Year: 2026, Quarter: 3}, models.RiskScores{}, "a")
	require.NoError(t, repo.Save(ctx, report))

	require.NoError(t, report.Submit())
	require.NoError(t, repo.Update(ctx, report))

	got, err := repo.FindByID(ctx, report.ID)
	require.NoError(t, err)
	assert.Equal(t, constants.ReportStatusReview, got.Status)
}

func TestSnapshotRepository_LatestAndRange(t *testing.T) {
	ctx := context.Background()
	repo := NewSnapshotRepository(newTestDB(t), logger.NewNoopLogger())

	older := models.NewSnapshot("tenant-1", models.RiskScores{Overall: 55}, 55)
	older.CollectedAt = time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)
	newer := models.NewSnapshot("tenant-1", models.RiskScores{Overall: 62}, 62)
	newer.CollectedAt = time.Date(2026, 2, 1, 0, 0, 0, 0, time.UTC)
	require.NoError(t, repo.Append(ctx, older))
	require.NoError(t, repo.Append(ctx, newer))

	latest, err := repo.Latest(ctx, "tenant-1")
	require.NoError(t, err)
	require.NotNil(t, latest)
	assert.Equal(t, 62.0, latest.Scores.Overall)

	window, err := repo.Range(ctx, "tenant-1",
		time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC),
		time.Date(2026, 2, 1, 0, 0, 0, 0, time.UTC))
	require.NoError(t, err)
	require.Len(t, window, 1)
	assert.Equal(t, 55.0, window[0].Scores.Overall)

	none, err := repo.Latest(ctx, "tenant-without-snapshots")
	require.NoError(t, err)
	assert.Nil(t, none)
}

func TestUserRepository_UniqueEmail(t *testing.T) {
	ctx := context.Background()
	repo := NewUserRepository(newTestDB(t), logger.NewNoopLogger())

	user := models.NewUser("ana@msp.example", "Ana", constants.RoleAnalyst)
	require.NoError(t, repo.Save(ctx, user))

	dup := models.NewUser("ana@msp.example", "Other Ana", constants.RoleViewer)
	assert.True(t, errors.IsConflict(repo.Save(ctx, dup)))

	got, err := repo.FindByEmail(ctx, "ana@msp.example")
	require.NoError(t, err)
	assert.Equal(t, user.ID, got.ID)
}

func TestInviteRepository_TokenLookupAndRevoke(t *testing.T) {
	ctx := context.Background()
	repo := NewInviteRepository(newTestDB(t), logger.NewNoopLogger())

	invite := models.NewInvite("new@msp.example", constants.RoleViewer, "admin-1")
	require.NoError(t, repo.Save(ctx, invite))

	got, err := repo.FindByToken(ctx, invite.Token)
	require.NoError(t, err)
	assert.Equal(t, invite.ID, got.ID)

	require.NoError(t, repo.Delete(ctx, invite.ID))
	_, err = repo.FindByToken(ctx, invite.Token)
	assert.True(t, errors.IsNotFound(err))
}

func TestIntegrationRepository_PerTenant(t *testing.T) {
	ctx := context.Background()
	repo := NewIntegrationRepository(newTestDB(t), logger.NewNoopLogger())

	integration := models.NewIntegration("tenant-1", "dir-123", "client-abc")
	require.NoError(t, repo.Save(ctx, integration))

	list, err := repo.FindByTenant(ctx, "tenant-1")
	require.NoError(t, err)
	require.Len(t, list, 1)
	assert.Equal(t, "integrations/"+integration.ID, list[0].SecretRef)

	require.NoError(t, repo.Delete(ctx, integration.ID))
	assert.True(t, errors.IsNotFound(repo.Delete(ctx, integration.ID)))
}
