package postgres

import (
	"context"
	"encoding/json"
	"time"

	"gorm.io/gorm"

	"github.com/mspsec/riskboard/internal/domain/models"
	"github.com/mspsec/riskboard/internal/domain/repository"
	"github.com/mspsec/riskboard/pkg/constants"
	"github.com/mspsec/riskboard/pkg/errors"
	"github.com/mspsec/riskboard/pkg/logger"
)

// reportDBM is the database model for the reports table. Scores, comments,
// and recipients are stored as JSON documents.
type reportDBM struct {
	ID         string `gorm:"primaryKey"`
	TenantID   string `gorm:"index:idx_reports_tenant_period,unique"`
	PeriodKey  string `gorm:"index:idx_reports_tenant_period,unique"`
	Year       int
	Quarter    int
	Month      int
	Status     string `gorm:"index"`
	Scores     string
	Comments   string
	Recipients string
	CreatedBy  string
	CreatedAt  time.Time
	UpdatedAt  time.Time
	SentAt     *time.Time
}

func (reportDBM) TableName() string {
	return "reports"
}

func (dbm *reportDBM) toDomain() (*models.Report, error) {
	var scores models.RiskScores
	if err := json.Unmarshal([]byte(dbm.Scores), &scores); err != nil {
		return nil, errors.ErrDatabase(err)
	}
	var comments []models.Comment
	if dbm.Comments != "" {
		if err := json.Unmarshal([]byte(dbm.Comments), &comments); err != nil {
			return nil, errors.ErrDatabase(err)
		}
	}
	var recipients []string
	if dbm.Recipients != "" {
		if err := json.Unmarshal([]byte(dbm.Recipients), &recipients); err != nil {
			return nil, errors.ErrDatabase(err)
		}
	}
	return &models.Report{
		ID:         dbm.ID,
		TenantID:   dbm.TenantID,
		Period:     models.Period{Year: dbm.Year, Quarter: dbm.Quarter, Month: dbm.Month},
		Status:     constants.ReportStatus(dbm.Status),
		Scores:     scores,
		Comments:   comments,
		Recipients: recipients,
		CreatedBy:  dbm.CreatedBy,
		CreatedAt:  dbm.CreatedAt,
		UpdatedAt:  dbm.UpdatedAt,
		SentAt:     dbm.SentAt,
	}, nil
}

func reportFromDomain(r *models.Report) (*reportDBM, error) {
	scores, err := json.Marshal(r.Scores)
	if err != nil {
		return nil, errors.ErrDatabase(err)
	}
	comments, err := json.Marshal(r.Comments)
	if err != nil {
		return nil, errors.ErrDatabase(err)
	}
	recipients, err := json.Marshal(r.Recipients)
	if err != nil {
		return nil, errors.ErrDatabase(err)
	}
	return &reportDBM{
		ID:         r.ID,
		TenantID:   r.TenantID,
		PeriodKey:  r.Period.String(),
		Year:       r.Period.Year,
		Quarter:    r.Period.Quarter,
		Month:      r.Period.Month,
		Status:     string(r.Status),
		Scores:     string(scores),
		Comments:   string(comments),
		Recipients: string(recipients),
		CreatedBy:  r.CreatedBy,
		CreatedAt:  r.CreatedAt,
		UpdatedAt:  r.UpdatedAt,
		SentAt:     r.SentAt,
	}, nil
}

// ReportRepoImpl implements ReportRepository using Postgres.
type ReportRepoImpl struct {
	db  *gorm.DB
	log logger.Logger
}

// NewReportRepository creates a Postgres-backed report repository.
func NewReportRepository(db *gorm.DB, log logger.Logger) repository.ReportRepository {
	return &ReportRepoImpl{db: db, log: log}
}

// Save creates a new report. One report per tenant and period.
func (r *ReportRepoImpl) Save(ctx context.Context, report *models.Report) error {
	dbm, err := reportFromDomain(report)
	if err != nil {
		return err
	}
	if err := r.db.WithContext(ctx).Create(dbm).Error; err != nil {
		if err == gorm.ErrDuplicatedKey {
			return errors.ErrConflict("report already exists for period " + report.Period.String())
		}
		r.log.Error(ctx, "failed to create report", err,
			logger.String("tenant_id", report.TenantID),
			logger.String("period", report.Period.String()))
		return errors.ErrDatabase(err)
	}
	return nil
}

// FindByID retrieves a report by id.
func (r *ReportRepoImpl) FindByID(ctx context.Context, id string) (*models.Report, error) {
	var dbm reportDBM
	if err := r.db.WithContext(ctx).Where("id = ?", id).First(&dbm).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, errors.ErrNotFound("report", id)
		}
		return nil, errors.ErrDatabase(err)
	}
	return dbm.toDomain()
}

// FindByTenant lists a tenant's reports, newest period first.
func (r *ReportRepoImpl) FindByTenant(ctx context.Context, tenantID string) ([]*models.Report, error) {
	var dbms []reportDBM
	err := r.db.WithContext(ctx).
		Where("tenant_id = ?", tenantID).
		Order("year DESC, quarter DESC, month DESC").
		Find(&dbms).Error
	if err != nil {
		return nil, errors.ErrDatabase(err)
	}

	reports := make([]*models.Report, 0, len(dbms))
	for i := range dbms {
		report, err := dbms[i].toDomain()
		if err != nil {
			return nil, err
		}
		reports = append(reports, report)
	}
	return reports, nil
}

// FindByPeriod retrieves the report for one tenant and period, or nil when
// none exists.
func (r *ReportRepoImpl) FindByPeriod(ctx context.Context, tenantID string, period models.Period) (*models.Report, error) {
	var dbm reportDBM
	err := r.db.WithContext(ctx).
		Where("tenant_id = ? AND period_key = ?", tenantID, period.String()).
		First(&dbm).Error
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, nil
		}
		return nil, errors.ErrDatabase(err)
	}
	return dbm.toDomain()
}

// Update persists changes to an existing report.
func (r *ReportRepoImpl) Update(ctx context.Context, report *models.Report) error {
	dbm, err := reportFromDomain(report)
	if err != nil {
		return err
	}
	result := r.db.WithContext(ctx).
		Model(&reportDBM{}).
		Where("id = ?", report.ID).
		Select("Status", "Scores", "Comments", "Recipients", "UpdatedAt", "SentAt").
		Updates(dbm)
	if result.Error != nil {
		return errors.ErrDatabase(result.Error)
	}
	if result.RowsAffected == 0 {
		return errors.ErrNotFound("report", report.ID)
	}
	return nil
}
