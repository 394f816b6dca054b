package infrastructure

import (
	"context"
	"time"

	"Demonstra/internal/domain/company"
	appErrors "Demonstra/internal/errors"
	"Demonstra/internal/pkg/query"

	"github.com/oklog/ulid/v2"
	"gorm.io/gorm"
)

type CompanyRepository struct {
	DB *gorm.DB
}

var _ company.Repository = (*CompanyRepository)(nil)

type companyDB struct {
	Id          string    `gorm:"type:varchar(26);primaryKey"`
	Name        string    `gorm:"type:varchar(150);not null"`
	TradingName string    `gorm:"type:varchar(150);index"`
	IsActive    bool      `gorm:"not null"`
	CreatedAt   time.Time `gorm:"autoCreateTime;not null"`
	UpdatedAt   time.Time `gorm:"autoUpdateTime;not null"`
}

func (companyDB) TableName() string {
	return "companies"
}

func toDomainCompany(row *companyDB) (*company.Company, error) {
	id, err := parseID(row.Id)
	if err != nil {
		return nil, err
	}
	return &company.Company{
		Id:          id,
		Name:        row.Name,
		TradingName: row.TradingName,
		IsActive:    row.IsActive,
		CreatedAt:   row.CreatedAt,
		UpdatedAt:   row.UpdatedAt,
	}, nil
}

func toDBCompany(c *company.Company) *companyDB {
	return &companyDB{
		Id:          c.Id.String(),
		Name:        c.Name,
		TradingName: c.TradingName,
		IsActive:    c.IsActive,
		CreatedAt:   c.CreatedAt,
		UpdatedAt:   c.UpdatedAt,
	}
}

func (r *CompanyRepository) Create(ctx context.Context, c *company.Company) error {
	if err := r.DB.WithContext(ctx).Create(toDBCompany(c)).Error; err != nil {
		return appErrors.NewDatabaseError(err)
	}
	return nil
}

func (r *CompanyRepository) Update(ctx context.Context, c *company.Company) error {
	row := toDBCompany(c)
	err := r.DB.WithContext(ctx).Model(&companyDB{}).
		Where("id = ?", row.Id).
		Select("name", "trading_name", "is_active", "updated_at").
		Updates(row).Error
	if err != nil {
		return appErrors.NewDatabaseError(err)
	}
	return nil
}

func (r *CompanyRepository) GetByID(ctx context.Context, id ulid.ULID) (*company.Company, error) {
	var row companyDB
	if err := r.DB.WithContext(ctx).Where("id = ?", id.String()).First(&row).Error; err != nil {
		return nil, lookupError(err, appErrors.ErrCompanyNotFound)
	}
	return toDomainCompany(&row)
}

func (r *CompanyRepository) List(ctx context.Context, activeOnly bool) ([]*company.Company, error) {
	items, err := query.ExecuteAll(
		query.New[companyDB](r.DB, "companies").
			Context(ctx).
			WhereIf(activeOnly, "is_active = ?", true).
			Order("trading_name ASC, name ASC"),
		toDomainCompany,
	)
	if err != nil {
		return nil, appErrors.NewDatabaseError(err)
	}
	return items, nil
}
