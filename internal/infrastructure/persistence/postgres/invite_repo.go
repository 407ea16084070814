package postgres

import (
	"context"
	"time"

	"gorm.io/gorm"

	"github.com/mspsec/riskboard/internal/domain/models"
	"github.com/mspsec/riskboard/internal/domain/repository"
	"github.com/mspsec/riskboard/pkg/constants"
	"github.com/mspsec/riskboard/pkg/errors"
	"github.com/mspsec/riskboard/pkg/logger"
)

// inviteDBM is the database model for the invites table.
type inviteDBM struct {
	ID         string `gorm:"primaryKey"`
	Email      string `gorm:"index"`
	Role       string
	Token      string `gorm:"uniqueIndex"`
	InvitedBy  string
	CreatedAt  time.Time
	ExpiresAt  time.Time
	AcceptedAt *time.Time
}

func (inviteDBM) TableName() string {
	return "invites"
}

func (dbm *inviteDBM) toDomain() *models.Invite {
	return &models.Invite{
		ID:         dbm.ID,
		Email:      dbm.Email,
		Role:       constants.UserRole(dbm.Role),
		Token:      dbm.Token,
		InvitedBy:  dbm.InvitedBy,
		CreatedAt:  dbm.CreatedAt,
		ExpiresAt:  dbm.ExpiresAt,
		AcceptedAt: dbm.AcceptedAt,
	}
}

func inviteFromDomain(i *models.Invite) *inviteDBM {
	return &inviteDBM{
		ID:         i.ID,
		Email:      i.Email,
		Role:       string(i.Role),
		Token:      i.Token,
		InvitedBy:  i.InvitedBy,
		CreatedAt:  i.CreatedAt,
		ExpiresAt:  i.ExpiresAt,
		AcceptedAt: i.AcceptedAt,
	}
}

// InviteRepoImpl implements InviteRepository using Postgres.
type InviteRepoImpl struct {
	db  *gorm.DB
	log logger.Logger
}

// NewInviteRepository creates a Postgres-backed invite repository.
func NewInviteRepository(db *gorm.DB, log logger.Logger) repository.InviteRepository {
	return &InviteRepoImpl{db: db, log: log}
}

// Save creates a new invite record.
func (r *InviteRepoImpl) Save(ctx context.Context, invite *models.Invite) error {
	if err := r.db.WithContext(ctx).Create(inviteFromDomain(invite)).Error; err != nil {
		return errors.ErrDatabase(err)
	}
	return nil
}

// FindByToken retrieves an invite by its redemption token.
func (r *InviteRepoImpl) FindByToken(ctx context.Context, token string) (*models.Invite, error) {
	var dbm inviteDBM
	if err := r.db.WithContext(ctx).Where("token = ?", token).First(&dbm).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, errors.ErrNotFound("invite", "token")
		}
		return nil, errors.ErrDatabase(err)
	}
	return dbm.toDomain(), nil
}

// FindAll retrieves every invite, newest first.
func (r *InviteRepoImpl) FindAll(ctx context.Context) ([]*models.Invite, error) {
	var dbms []inviteDBM
	if err := r.db.WithContext(ctx).Order("created_at DESC").Find(&dbms).Error; err != nil {
		return nil, errors.ErrDatabase(err)
	}
	invites := make([]*models.Invite, 0, len(dbms))
	for i := range dbms {
		invites = append(invites, dbms[i].toDomain())
	}
	return invites, nil
}

// Update persists changes to an existing invite.
func (r *InviteRepoImpl) Update(ctx context.Context, invite *models.Invite) error {
	result := r.db.WithContext(ctx).
		Model(&inviteDBM{}).
		Where("id = ?", invite.ID).
		Select("AcceptedAt", "ExpiresAt").
		Updates(inviteFromDomain(invite))
	if result.Error != nil {
		return errors.ErrDatabase(result.Error)
	}
	if result.RowsAffected == 0 {
		return errors.ErrNotFound("invite", invite.ID)
	}
	return nil
}

// Delete revokes an invite.
func (r *InviteRepoImpl) Delete(ctx context.Context, id string) error {
	result := r.db.WithContext(ctx).Where("id = ?", id).Delete(&inviteDBM{})
	if result.Error != nil {
		return errors.ErrDatabase(result.Error)
	}
	if result.RowsAffected == 0 {
		return errors.ErrNotFound("invite", id)
	}
	r.log.Info(ctx, "invite revoked", logger.String("invite_id", id))
	return nil
}
