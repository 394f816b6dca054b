package infrastructure

import (
	"context"
	"time"

	"Demonstra/internal/domain/user"
	appErrors "Demonstra/internal/errors"
	"Demonstra/internal/pkg"

	"github.com/oklog/ulid/v2"
	"gorm.io/gorm"
)

type UserRepository struct {
	DB *gorm.DB
}

var _ user.Repository = (*UserRepository)(nil)

type userDB struct {
	Id                    string    `gorm:"type:varchar(26);primaryKey"`
	Name                  string    `gorm:"type:varchar(100);not null"`
	Email                 string    `gorm:"type:varchar(100);uniqueIndex:idx_system_users_email;not null"`
	Password              string    `gorm:"type:varchar(255);not null"`
	Role                  string    `gorm:"type:varchar(10);not null;default:'user'"`
	CompanyId             *string   `gorm:"type:varchar(26);index"`
	HasAllCompaniesAccess bool      `gorm:"not null"`
	IsActive              bool      `gorm:"not null"`
	CreatedAt             time.Time `gorm:"autoCreateTime;not null"`
	UpdatedAt             time.Time `gorm:"autoUpdateTime;not null"`
}

func (userDB) TableName() string {
	return "system_users"
}

func toDomainUser(udb *userDB) (*user.User, error) {
	id, err := parseID(udb.Id)
	if err != nil {
		return nil, err
	}
	companyID, err := parseOptionalID(udb.CompanyId)
	if err != nil {
		return nil, err
	}

	return &user.User{
		Id:                    id,
		Name:                  udb.Name,
		Email:                 udb.Email,
		Password:              udb.Password,
		Role:                  user.Role(udb.Role),
		CompanyId:             companyID,
		HasAllCompaniesAccess: udb.HasAllCompaniesAccess,
		IsActive:              udb.IsActive,
		CreatedAt:             udb.CreatedAt,
		UpdatedAt:             udb.UpdatedAt,
	}, nil
}

func toDBUser(u *user.User) *userDB {
	return &userDB{
		Id:                    u.Id.String(),
		Name:                  u.Name,
		Email:                 u.Email,
		Password:              u.Password,
		Role:                  string(u.Role),
		CompanyId:             pkg.ULIDPtrToString(u.CompanyId),
		HasAllCompaniesAccess: u.HasAllCompaniesAccess,
		IsActive:              u.IsActive,
		CreatedAt:             u.CreatedAt,
		UpdatedAt:             u.UpdatedAt,
	}
}

func (r *UserRepository) Create(ctx context.Context, u *user.User) error {
	if err := r.DB.WithContext(ctx).Create(toDBUser(u)).Error; err != nil {
		return appErrors.NewDatabaseError(err)
	}
	return nil
}

func (r *UserRepository) Update(ctx context.Context, u *user.User) error {
	udb := toDBUser(u)
	err := r.DB.WithContext(ctx).Model(&userDB{}).
		Where("id = ?", udb.Id).
		Select("*").Omit("id", "created_at").
		Updates(udb).Error
	if err != nil {
		return appErrors.NewDatabaseError(err)
	}
	return nil
}

func (r *UserRepository) GetByID(ctx context.Context, id ulid.ULID) (*user.User, error) {
	var udb userDB
	if err := r.DB.WithContext(ctx).Where("id = ?", id.String()).First(&udb).Error; err != nil {
		return nil, lookupError(err, appErrors.ErrUserNotFound)
	}
	return toDomainUser(&udb)
}

func (r *UserRepository) GetByEmail(ctx context.Context, email string) (*user.User, error) {
	var udb userDB
	if err := r.DB.WithContext(ctx).Where("email = ?", email).First(&udb).Error; err != nil {
		return nil, lookupError(err, appErrors.ErrUserNotFound)
	}
	return toDomainUser(&udb)
}

func (r *UserRepository) List(ctx context.Context) ([]*user.User, error) {
	var rows []userDB
	if err := r.DB.WithContext(ctx).Order("name ASC").Find(&rows).Error; err != nil {
		return nil, appErrors.NewDatabaseError(err)
	}
	return convertAll(rows, toDomainUser)
}
