package infrastructure

import (
	"context"
	"time"

	"Demonstra/internal/domain/category"
	"Demonstra/internal/domain/indicator"
	appErrors "Demonstra/internal/errors"
	"Demonstra/internal/pkg"
	"Demonstra/internal/pkg/query"

	"github.com/oklog/ulid/v2"
	"gorm.io/gorm"
)

type CategoryRepository struct {
	DB *gorm.DB
}

var (
	_ category.Repository      = (*CategoryRepository)(nil)
	_ indicator.CategoryLookup = (*CategoryRepository)(nil)
)

type categoryDB struct {
	Id        string    `gorm:"type:varchar(26);primaryKey"`
	Code      string    `gorm:"type:varchar(30);uniqueIndex:idx_categories_code;not null"`
	Name      string    `gorm:"type:varchar(150);not null"`
	Type      string    `gorm:"type:varchar(10);not null;index"`
	CreatedAt time.Time `gorm:"autoCreateTime;not null"`
	UpdatedAt time.Time `gorm:"autoUpdateTime;not null"`
}

func (categoryDB) TableName() string {
	return "categories"
}

func toDomainCategory(cdb *categoryDB) (*category.Category, error) {
	id, err := parseID(cdb.Id)
	if err != nil {
		return nil, err
	}
	return &category.Category{
		Id:        id,
		Code:      cdb.Code,
		Name:      cdb.Name,
		Type:      category.Type(cdb.Type),
		CreatedAt: cdb.CreatedAt,
		UpdatedAt: cdb.UpdatedAt,
	}, nil
}

func toDBCategory(c *category.Category) *categoryDB {
	return &categoryDB{
		Id:        c.Id.String(),
		Code:      c.Code,
		Name:      c.Name,
		Type:      string(c.Type),
		CreatedAt: c.CreatedAt,
		UpdatedAt: c.UpdatedAt,
	}
}

func (r *CategoryRepository) Create(ctx context.Context, c *category.Category) error {
	if err := r.DB.WithContext(ctx).Create(toDBCategory(c)).Error; err != nil {
		return appErrors.NewDatabaseError(err)
	}
	return nil
}

func (r *CategoryRepository) Update(ctx context.Context, c *category.Category) error {
	cdb := toDBCategory(c)
	err := r.DB.WithContext(ctx).Model(&categoryDB{}).
		Where("id = ?", cdb.Id).
		Select("code", "name", "type", "updated_at").
		Updates(cdb).Error
	if err != nil {
		return appErrors.NewDatabaseError(err)
	}
	return nil
}

func (r *CategoryRepository) Delete(ctx context.Context, id ulid.ULID) error {
	result := r.DB.WithContext(ctx).Where("id = ?", id.String()).Delete(&categoryDB{})
	if result.Error != nil {
		return appErrors.NewDatabaseError(result.Error)
	}
	if result.RowsAffected == 0 {
		return appErrors.ErrCategoryNotFound
	}
	return nil
}

func (r *CategoryRepository) GetByID(ctx context.Context, id ulid.ULID) (*category.Category, error) {
	var row categoryDB
	if err := r.DB.WithContext(ctx).Where("id = ?", id.String()).First(&row).Error; err != nil {
		return nil, lookupError(err, appErrors.ErrCategoryNotFound)
	}
	return toDomainCategory(&row)
}

func (r *CategoryRepository) GetByCode(ctx context.Context, code string) (*category.Category, error) {
	var row categoryDB
	if err := r.DB.WithContext(ctx).Where("code = ?", code).First(&row).Error; err != nil {
		return nil, lookupError(err, appErrors.ErrCategoryNotFound)
	}
	return toDomainCategory(&row)
}

func (r *CategoryRepository) GetByIDs(ctx context.Context, ids []ulid.ULID) ([]*category.Category, error) {
	if len(ids) == 0 {
		return nil, nil
	}
	items, err := query.ExecuteAll(
		query.New[categoryDB](r.DB, "categories").
			Context(ctx).
			Where("id IN ?", pkg.ULIDStrings(ids...)).
			Order("code ASC"),
		toDomainCategory,
	)
	if err != nil {
		return nil, appErrors.NewDatabaseError(err)
	}
	return items, nil
}

func (r *CategoryRepository) CountByIDs(ctx context.Context, ids []ulid.ULID) (int64, error) {
	if len(ids) == 0 {
		return 0, nil
	}
	count, err := query.New[categoryDB](r.DB, "categories").
		Context(ctx).
		Where("id IN ?", pkg.ULIDStrings(ids...)).
		Count()
	if err != nil {
		return 0, appErrors.NewDatabaseError(err)
	}
	return count, nil
}

func (r *CategoryRepository) List(ctx context.Context, typ category.Type) ([]*category.Category, error) {
	items, err := query.ExecuteAll(
		query.New[categoryDB](r.DB, "categories").
			Context(ctx).
			WhereIf(typ != "", "type = ?", string(typ)).
			Order("code ASC"),
		toDomainCategory,
	)
	if err != nil {
		return nil, appErrors.NewDatabaseError(err)
	}
	return items, nil
}
