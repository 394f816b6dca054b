package infrastructure

import (
	"context"
	"errors"
	"time"

	"Demonstra/internal/domain/indicator"
	appErrors "Demonstra/internal/errors"
	"Demonstra/internal/pkg"

	"github.com/oklog/ulid/v2"
	"gorm.io/gorm"
)

type IndicatorRepository struct {
	DB *gorm.DB
}

var _ indicator.Repository = (*IndicatorRepository)(nil)

type indicatorDB struct {
	Id               string    `gorm:"type:varchar(26);primaryKey"`
	Code             string    `gorm:"type:varchar(30);uniqueIndex:idx_indicators_code;not null"`
	Name             string    `gorm:"type:varchar(150);not null"`
	Type             string    `gorm:"type:varchar(12);not null;default:'manual'"`
	Operation        *string   `gorm:"type:varchar(10)"`
	CalculationBasis *string   `gorm:"type:varchar(10)"`
	SourceIds        []string  `gorm:"serializer:json;type:text"`
	CreatedAt        time.Time `gorm:"autoCreateTime;not null"`
	UpdatedAt        time.Time `gorm:"autoUpdateTime;not null"`
}

func (indicatorDB) TableName() string {
	return "indicators"
}

type companyIndicatorDB struct {
	Id          string `gorm:"type:varchar(26);primaryKey"`
	CompanyId   string `gorm:"type:varchar(26);not null;uniqueIndex:idx_company_indicator"`
	IndicatorId string `gorm:"type:varchar(26);not null;uniqueIndex:idx_company_indicator;index"`
	IsActive    bool   `gorm:"not null"`
}

func (companyIndicatorDB) TableName() string {
	return "company_indicators"
}

func optionalString(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}

func derefString(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}

func toDomainIndicator(row *indicatorDB) (*indicator.Indicator, error) {
	id, err := parseID(row.Id)
	if err != nil {
		return nil, err
	}
	sources, err := parseIDs(row.SourceIds)
	if err != nil {
		return nil, err
	}
	return &indicator.Indicator{
		Id:               id,
		Code:             row.Code,
		Name:             row.Name,
		Type:             indicator.Type(row.Type),
		Operation:        indicator.Operation(derefString(row.Operation)),
		CalculationBasis: indicator.Basis(derefString(row.CalculationBasis)),
		SourceIds:        sources,
		CreatedAt:        row.CreatedAt,
		UpdatedAt:        row.UpdatedAt,
	}, nil
}

func toDBIndicator(ind *indicator.Indicator) *indicatorDB {
	return &indicatorDB{
		Id:               ind.Id.String(),
		Code:             ind.Code,
		Name:             ind.Name,
		Type:             string(ind.Type),
		Operation:        optionalString(string(ind.Operation)),
		CalculationBasis: optionalString(string(ind.CalculationBasis)),
		SourceIds:        pkg.ULIDStrings(ind.SourceIds...),
		CreatedAt:        ind.CreatedAt,
		UpdatedAt:        ind.UpdatedAt,
	}
}

func (r *IndicatorRepository) Create(ctx context.Context, ind *indicator.Indicator) error {
	if err := r.DB.WithContext(ctx).Create(toDBIndicator(ind)).Error; err != nil {
		return appErrors.NewDatabaseError(err)
	}
	return nil
}

func (r *IndicatorRepository) Update(ctx context.Context, ind *indicator.Indicator) error {
	row := toDBIndicator(ind)
	err := r.DB.WithContext(ctx).Model(&indicatorDB{}).
		Where("id = ?", row.Id).
		Select("code", "name", "type", "operation", "calculation_basis", "source_ids", "updated_at").
		Updates(row).Error
	if err != nil {
		return appErrors.NewDatabaseError(err)
	}
	return nil
}

func (r *IndicatorRepository) GetByID(ctx context.Context, id ulid.ULID) (*indicator.Indicator, error) {
	var row indicatorDB
	if err := r.DB.WithContext(ctx).Where("id = ?", id.String()).First(&row).Error; err != nil {
		return nil, lookupError(err, appErrors.ErrIndicatorNotFound)
	}
	return toDomainIndicator(&row)
}

func (r *IndicatorRepository) GetByCode(ctx context.Context, code string) (*indicator.Indicator, error) {
	var row indicatorDB
	if err := r.DB.WithContext(ctx).Where("code = ?", code).First(&row).Error; err != nil {
		return nil, lookupError(err, appErrors.ErrIndicatorNotFound)
	}
	return toDomainIndicator(&row)
}

func (r *IndicatorRepository) GetByIDs(ctx context.Context, ids []ulid.ULID) ([]*indicator.Indicator, error) {
	if len(ids) == 0 {
		return nil, nil
	}
	var rows []indicatorDB
	if err := r.DB.WithContext(ctx).Where("id IN ?", pkg.ULIDStrings(ids...)).Find(&rows).Error; err != nil {
		return nil, appErrors.NewDatabaseError(err)
	}
	return convertAll(rows, toDomainIndicator)
}

func (r *IndicatorRepository) List(ctx context.Context) ([]*indicator.Indicator, error) {
	var rows []indicatorDB
	if err := r.DB.WithContext(ctx).Order("name ASC").Find(&rows).Error; err != nil {
		return nil, appErrors.NewDatabaseError(err)
	}
	return convertAll(rows, toDomainIndicator)
}

func (r *IndicatorRepository) ListCompanyLinks(ctx context.Context) ([]indicator.CompanyLink, error) {
	var rows []companyIndicatorDB
	if err := r.DB.WithContext(ctx).Where("is_active = ?", true).Find(&rows).Error; err != nil {
		return nil, appErrors.NewDatabaseError(err)
	}

	links := make([]indicator.CompanyLink, 0, len(rows))
	for _, row := range rows {
		indicatorID, err := parseID(row.IndicatorId)
		if err != nil {
			return nil, err
		}
		companyID, err := parseID(row.CompanyId)
		if err != nil {
			return nil, err
		}
		links = append(links, indicator.CompanyLink{IndicatorId: indicatorID, CompanyId: companyID})
	}
	return links, nil
}

func (r *IndicatorRepository) ToggleCompany(ctx context.Context, indicatorID, companyID ulid.ULID) (bool, error) {
	active := false
	err := r.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var existing companyIndicatorDB
		err := tx.Where("indicator_id = ? AND company_id = ?", indicatorID.String(), companyID.String()).
			First(&existing).Error
		switch {
		case err == nil:
			return tx.Delete(&companyIndicatorDB{}, "id = ?", existing.Id).Error
		case errors.Is(err, gorm.ErrRecordNotFound):
			active = true
			return tx.Create(&companyIndicatorDB{
				Id:          pkg.GenerateULID(),
				CompanyId:   companyID.String(),
				IndicatorId: indicatorID.String(),
				IsActive:    true,
			}).Error
		default:
			return err
		}
	})
	if err != nil {
		return false, appErrors.NewDatabaseError(err)
	}
	return active, nil
}

func (r *IndicatorRepository) DeleteWithLinks(ctx context.Context, id ulid.ULID) error {
	err := r.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("indicator_id = ?", id.String()).Delete(&companyIndicatorDB{}).Error; err != nil {
			return err
		}
		result := tx.Where("id = ?", id.String()).Delete(&indicatorDB{})
		if result.Error != nil {
			return result.Error
		}
		if result.RowsAffected == 0 {
			return appErrors.ErrIndicatorNotFound
		}
		return nil
	})
	if err != nil {
		if appErrors.IsAppError(err) {
			return err
		}
		return appErrors.NewDatabaseError(err)
	}
	return nil
}
