package postgres

import (
	"context"
	"encoding/json"
	"time"

	"gorm.io/gorm"

	"github.com/mspsec/riskboard/internal/domain/models"
	"github.com/mspsec/riskboard/internal/domain/repository"
	"github.com/mspsec/riskboard/pkg/errors"
	"github.com/mspsec/riskboard/pkg/logger"
)

// snapshotDBM is the database model for the metric_snapshots table.
type snapshotDBM struct {
	ID                 string `gorm:"primaryKey"`
	TenantID           string `gorm:"index:idx_snapshots_tenant_time"`
	Scores             string
	SecureScorePercent float64
	CollectedAt        time.Time `gorm:"index:idx_snapshots_tenant_time"`
}

func (snapshotDBM) TableName() string {
	return "metric_snapshots"
}

func (dbm *snapshotDBM) toDomain() (*models.SecurityMetricSnapshot, error) {
	var scores models.RiskScores
	if err := json.Unmarshal([]byte(dbm.Scores), &scores); err != nil {
		return nil, errors.ErrDatabase(err)
	}
	return &models.SecurityMetricSnapshot{
		ID:                 dbm.ID,
		TenantID:           dbm.TenantID,
		Scores:             scores,
		SecureScorePercent: dbm.SecureScorePercent,
		CollectedAt:        dbm.CollectedAt,
	}, nil
}

// SnapshotRepoImpl implements SnapshotRepository using Postgres.
type SnapshotRepoImpl struct {
	db  *gorm.DB
	log logger.Logger
}

// NewSnapshotRepository creates a Postgres-backed snapshot repository.
func NewSnapshotRepository(db *gorm.DB, log logger.Logger) repository.SnapshotRepository {
	return &SnapshotRepoImpl{db: db, log: log}
}

// Append persists a new snapshot. Snapshots are never updated or deleted.
func (r *SnapshotRepoImpl) Append(ctx context.Context, snapshot *models.SecurityMetricSnapshot) error {
	scores, err := json.Marshal(snapshot.Scores)
	if err != nil {
		return errors.ErrDatabase(err)
	}
	dbm := &snapshotDBM{
		ID:                 snapshot.ID,
		TenantID:           snapshot.TenantID,
		Scores:             string(scores),
		SecureScorePercent: snapshot.SecureScorePercent,
		CollectedAt:        snapshot.CollectedAt,
	}
	if err := r.db.WithContext(ctx).Create(dbm).Error; err != nil {
		r.log.Error(ctx, "failed to append snapshot", err,
			logger.String("tenant_id", snapshot.TenantID))
		return errors.ErrDatabase(err)
	}
	return nil
}

// Latest retrieves the most recent snapshot for a tenant, or nil when the
// tenant has none yet.
func (r *SnapshotRepoImpl) Latest(ctx context.Context, tenantID string) (*models.SecurityMetricSnapshot, error) {
	var dbm snapshotDBM
	err := r.db.WithContext(ctx).
		Where("tenant_id = ?", tenantID).
		Order("collected_at DESC").
		First(&dbm).Error
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, nil
		}
		return nil, errors.ErrDatabase(err)
	}
	return dbm.toDomain()
}

// Range retrieves snapshots collected within [from, to), oldest first.
func (r *SnapshotRepoImpl) Range(ctx context.Context, tenantID string, from, to time.Time) ([]*models.SecurityMetricSnapshot, error) {
	var dbms []snapshotDBM
	err := r.db.WithContext(ctx).
		Where("tenant_id = ? AND collected_at >= ? AND collected_at < ?", tenantID, from, to).
		Order("collected_at ASC").
		Find(&dbms).Error
	if err != nil {
		return nil, errors.ErrDatabase(err)
	}

	snapshots := make([]*models.SecurityMetricSnapshot, 0, len(dbms))
	for i := range dbms {
		snapshot, err := dbms[i].toDomain()
		if err != nil {
			return nil, err
		}
		snapshots = append(snapshots, snapshot)
	}
	return snapshots, nil
}
