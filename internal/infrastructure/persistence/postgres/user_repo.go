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

// userDBM is the database model for the users table.
type userDBM struct {
	ID        string `gorm:"primaryKey"`
	Email     string `gorm:"uniqueIndex"`
	Name      string
	Role      string
	Active    bool
	CreatedAt time.Time
	UpdatedAt time.Time
}

func (userDBM) TableName() string {
	return "users"
}

func (dbm *userDBM) toDomain() *models.User {
	return &models.User{
		ID:        dbm.ID,
		Email:     dbm.Email,
		Name:      dbm.Name,
		Role:      constants.UserRole(dbm.Role),
		Active:    dbm.Active,
		CreatedAt: dbm.CreatedAt,
		UpdatedAt: dbm.UpdatedAt,
	}
}

func userFromDomain(u *models.User) *userDBM {
	return &userDBM{
		ID:        u.ID,
		Email:     u.Email,
		Name:      u.Name,
		Role:      string(u.Role),
		Active:    u.Active,
		CreatedAt: u.CreatedAt,
		UpdatedAt: u.UpdatedAt,
	}
}

// UserRepoImpl implements UserRepository using Postgres.
type UserRepoImpl struct {
	db  *gorm.DB
	log logger.Logger
}

// NewUserRepository creates a Postgres-backed user repository.
func NewUserRepository(db *gorm.DB, log logger.Logger) repository.UserRepository {
	return &UserRepoImpl{db: db, log: log}
}

// Save creates a new user. Emails are unique.
func (r *UserRepoImpl) Save(ctx context.Context, user *models.User) error {
	if err := r.db.WithContext(ctx).Create(userFromDomain(user)).Error; err != nil {
		if err == gorm.ErrDuplicatedKey {
			return errors.ErrConflict("user already exists: " + user.Email)
		}
		return errors.ErrDatabase(err)
	}
	return nil
}

// FindByID retrieves a user by id.
func (r *UserRepoImpl) FindByID(ctx context.Context, id string) (*models.User, error) {
	var dbm userDBM
	if err := r.db.WithContext(ctx).Where("id = ?", id).First(&dbm).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, errors.ErrNotFound("user", id)
		}
		return nil, errors.ErrDatabase(err)
	}
	return dbm.toDomain(), nil
}

// FindByEmail retrieves a user by email.
func (r *UserRepoImpl) FindByEmail(ctx context.Context, email string) (*models.User, error) {
	var dbm userDBM
	if err := r.db.WithContext(ctx).Where("email = ?", email).First(&dbm).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, errors.ErrNotFound("user", email)
		}
		return nil, errors.ErrDatabase(err)
	}
	return dbm.toDomain(), nil
}

// FindAll retrieves every staff user ordered by email.
func (r *UserRepoImpl) FindAll(ctx context.Context) ([]*models.User, error) {
	var dbms []userDBM
	if err := r.db.WithContext(ctx).Order("email").Find(&dbms).Error; err != nil {
		return nil, errors.ErrDatabase(err)
	}
	users := make([]*models.User, 0, len(dbms))
	for i := range dbms {
		users = append(users, dbms[i].toDomain())
	}
	return users, nil
}

// Update persists changes to an existing user.
func (r *UserRepoImpl) Update(ctx context.Context, user *models.User) error {
	result := r.db.WithContext(ctx).
		Model(&userDBM{}).
		Where("id = ?", user.ID).
		Select("Name", "Role", "Active", "UpdatedAt").
		Updates(userFromDomain(user))
	if result.Error != nil {
		return errors.ErrDatabase(result.Error)
	}
	if result.RowsAffected == 0 {
		return errors.ErrNotFound("user", user.ID)
	}
	return nil
}

// Delete removes a user.
func (r *UserRepoImpl) Delete(ctx context.Context, id string) error {
	result := r.db.WithContext(ctx).Where("id = ?", id).Delete(&userDBM{})
	if result.Error != nil {
		return errors.ErrDatabase(result.Error)
	}
	if result.RowsAffected == 0 {
		return errors.ErrNotFound("user", id)
	}
	r.log.Info(ctx, "user deleted", logger.String("user_id", id))
	return nil
}
