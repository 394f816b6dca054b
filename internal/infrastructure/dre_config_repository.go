package infrastructure

import (
	"context"
	"errors"
	"time"

	"Demonstra/internal/domain/dreconfig"
	appErrors "Demonstra/internal/errors"
	"Demonstra/internal/pkg"

	"github.com/oklog/ulid/v2"
	"gorm.io/gorm"
)

type DreConfigRepository struct {
	DB *gorm.DB
}

var _ dreconfig.Repository = (*DreConfigRepository)(nil)

type configAccountDB struct {
	Id               string    `gorm:"type:varchar(26);primaryKey"`
	Name             string    `gorm:"type:varchar(150);not null"`
	Type             string    `gorm:"type:varchar(12);not null"`
	Sign             *string   `gorm:"type:varchar(10)"`
	ParentAccountId  *string   `gorm:"type:varchar(26);index"`
	DisplayOrder     int       `gorm:"not null;default:0"`
	IsActive         bool      `gorm:"not null"`
	CategoryIds      []string  `gorm:"serializer:json;type:text"`
	IndicatorId      *string   `gorm:"type:varchar(26)"`
	SelectedAccounts []string  `gorm:"serializer:json;type:text"`
	CreatedAt        time.Time `gorm:"autoCreateTime;not null"`
	UpdatedAt        time.Time `gorm:"autoUpdateTime;not null"`
}

func (configAccountDB) TableName() string {
	return "dre_config_accounts"
}

type accountCompanyDB struct {
	Id        string `gorm:"type:varchar(26);primaryKey"`
	AccountId string `gorm:"type:varchar(26);not null;uniqueIndex:idx_account_company"`
	CompanyId string `gorm:"type:varchar(26);not null;uniqueIndex:idx_account_company;index"`
	IsActive  bool   `gorm:"not null"`
}

func (accountCompanyDB) TableName() string {
	return "dre_config_account_companies"
}

func toDomainConfigAccount(row *configAccountDB) (*dreconfig.Account, error) {
	id, err := parseID(row.Id)
	if err != nil {
		return nil, err
	}
	parent, err := parseOptionalID(row.ParentAccountId)
	if err != nil {
		return nil, err
	}
	indicatorID, err := parseOptionalID(row.IndicatorId)
	if err != nil {
		return nil, err
	}
	categories, err := parseIDs(row.CategoryIds)
	if err != nil {
		return nil, err
	}
	selected, err := parseIDs(row.SelectedAccounts)
	if err != nil {
		return nil, err
	}

	return &dreconfig.Account{
		Id:               id,
		Name:             row.Name,
		Type:             dreconfig.AccountType(row.Type),
		Sign:             dreconfig.Sign(derefString(row.Sign)),
		ParentAccountId:  parent,
		DisplayOrder:     row.DisplayOrder,
		IsActive:         row.IsActive,
		CategoryIds:      categories,
		IndicatorId:      indicatorID,
		SelectedAccounts: selected,
		CreatedAt:        row.CreatedAt,
		UpdatedAt:        row.UpdatedAt,
	}, nil
}

func toDBConfigAccount(a *dreconfig.Account) *configAccountDB {
	return &configAccountDB{
		Id:               a.Id.String(),
		Name:             a.Name,
		Type:             string(a.Type),
		Sign:             optionalString(string(a.Sign)),
		ParentAccountId:  pkg.ULIDPtrToString(a.ParentAccountId),
		DisplayOrder:     a.DisplayOrder,
		IsActive:         a.IsActive,
		CategoryIds:      pkg.ULIDStrings(a.CategoryIds...),
		IndicatorId:      pkg.ULIDPtrToString(a.IndicatorId),
		SelectedAccounts: pkg.ULIDStrings(a.SelectedAccounts...),
		CreatedAt:        a.CreatedAt,
		UpdatedAt:        a.UpdatedAt,
	}
}

func applyRename(tx *gorm.DB, rename *dreconfig.ComponentRename) error {
	if rename == nil {
		return nil
	}
	result := tx.Model(&componentDB{}).
		Where("id = ?", rename.ComponentId.String()).
		Update("nome_exibicao", optionalString(rename.DisplayName))
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return appErrors.ErrComponentNotFound
	}
	return nil
}

func wrapTxError(err error) error {
	if err == nil {
		return nil
	}
	if appErrors.IsAppError(err) {
		return err
	}
	return appErrors.NewDatabaseError(err)
}

func (r *DreConfigRepository) Create(ctx context.Context, account *dreconfig.Account, companyID ulid.ULID, rename *dreconfig.ComponentRename) error {
	err := r.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(toDBConfigAccount(account)).Error; err != nil {
			return err
		}
		link := &accountCompanyDB{
			Id:        pkg.GenerateULID(),
			AccountId: account.Id.String(),
			CompanyId: companyID.String(),
			IsActive:  true,
		}
		if err := tx.Create(link).Error; err != nil {
			return err
		}
		return applyRename(tx, rename)
	})
	return wrapTxError(err)
}

func (r *DreConfigRepository) Update(ctx context.Context, account *dreconfig.Account, rename *dreconfig.ComponentRename) error {
	err := r.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		row := toDBConfigAccount(account)
		result := tx.Model(&configAccountDB{}).
			Where("id = ?", row.Id).
			Select("*").Omit("id", "created_at").
			Updates(row)
		if result.Error != nil {
			return result.Error
		}
		if result.RowsAffected == 0 {
			return appErrors.ErrAccountNotFound
		}
		return applyRename(tx, rename)
	})
	return wrapTxError(err)
}

func (r *DreConfigRepository) GetByID(ctx context.Context, id ulid.ULID) (*dreconfig.Account, error) {
	var row configAccountDB
	if err := r.DB.WithContext(ctx).Where("id = ?", id.String()).First(&row).Error; err != nil {
		return nil, lookupError(err, appErrors.ErrAccountNotFound)
	}
	return toDomainConfigAccount(&row)
}

func (r *DreConfigRepository) GetByIDs(ctx context.Context, ids []ulid.ULID) ([]*dreconfig.Account, error) {
	if len(ids) == 0 {
		return nil, nil
	}
	var rows []configAccountDB
	if err := r.DB.WithContext(ctx).Where("id IN ?", pkg.ULIDStrings(ids...)).Find(&rows).Error; err != nil {
		return nil, appErrors.NewDatabaseError(err)
	}
	return convertAll(rows, toDomainConfigAccount)
}

func (r *DreConfigRepository) ListAll(ctx context.Context) ([]*dreconfig.Account, error) {
	var rows []configAccountDB
	if err := r.DB.WithContext(ctx).Order("display_order ASC").Find(&rows).Error; err != nil {
		return nil, appErrors.NewDatabaseError(err)
	}
	return convertAll(rows, toDomainConfigAccount)
}

func (r *DreConfigRepository) ListByCompany(ctx context.Context, companyID ulid.ULID) ([]*dreconfig.Account, error) {
	var rows []configAccountDB
	err := r.DB.WithContext(ctx).
		Table("dre_config_accounts AS a").
		Select("a.*").
		Joins("JOIN dre_config_account_companies ac ON ac.account_id = a.id").
		Where("ac.company_id = ? AND ac.is_active = ?", companyID.String(), true).
		Order("a.display_order ASC").
		Find(&rows).Error
	if err != nil {
		return nil, appErrors.NewDatabaseError(err)
	}
	return convertAll(rows, toDomainConfigAccount)
}

func (r *DreConfigRepository) CountByCompany(ctx context.Context, companyID ulid.ULID) (int64, error) {
	var count int64
	err := r.DB.WithContext(ctx).Model(&accountCompanyDB{}).
		Where("company_id = ?", companyID.String()).
		Count(&count).Error
	if err != nil {
		return 0, appErrors.NewDatabaseError(err)
	}
	return count, nil
}

func (r *DreConfigRepository) DeleteCascade(ctx context.Context, ids []ulid.ULID) error {
	if len(ids) == 0 {
		return nil
	}
	keys := pkg.ULIDStrings(ids...)
	err := r.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("account_id IN ?", keys).Delete(&accountCompanyDB{}).Error; err != nil {
			return err
		}
		return tx.Where("id IN ?", keys).Delete(&configAccountDB{}).Error
	})
	return wrapTxError(err)
}

func (r *DreConfigRepository) SwapOrder(ctx context.Context, a, b *dreconfig.Account) error {
	err := r.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		for _, acc := range []*dreconfig.Account{a, b} {
			if err := tx.Model(&configAccountDB{}).
				Where("id = ?", acc.Id.String()).
				Update("display_order", acc.DisplayOrder).Error; err != nil {
				return err
			}
		}
		return nil
	})
	return wrapTxError(err)
}

func (r *DreConfigRepository) SetActive(ctx context.Context, id ulid.ULID, active bool) error {
	result := r.DB.WithContext(ctx).Model(&configAccountDB{}).
		Where("id = ?", id.String()).
		Update("is_active", active)
	if result.Error != nil {
		return appErrors.NewDatabaseError(result.Error)
	}
	if result.RowsAffected == 0 {
		return appErrors.ErrAccountNotFound
	}
	return nil
}

func (r *DreConfigRepository) ToggleCompany(ctx context.Context, accountID, companyID ulid.ULID) (bool, error) {
	linked := false
	err := r.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var existing accountCompanyDB
		err := tx.Where("account_id = ? AND company_id = ?", accountID.String(), companyID.String()).
			First(&existing).Error
		switch {
		case err == nil:
			return tx.Delete(&accountCompanyDB{}, "id = ?", existing.Id).Error
		case errors.Is(err, gorm.ErrRecordNotFound):
			linked = true
			return tx.Create(&accountCompanyDB{
				Id:        pkg.GenerateULID(),
				AccountId: accountID.String(),
				CompanyId: companyID.String(),
				IsActive:  true,
			}).Error
		default:
			return err
		}
	})
	if err != nil {
		return false, wrapTxError(err)
	}
	return linked, nil
}

func (r *DreConfigRepository) ListCompanyIDs(ctx context.Context, accountID ulid.ULID) ([]ulid.ULID, error) {
	var ids []string
	err := r.DB.WithContext(ctx).Model(&accountCompanyDB{}).
		Where("account_id = ? AND is_active = ?", accountID.String(), true).
		Pluck("company_id", &ids).Error
	if err != nil {
		return nil, appErrors.NewDatabaseError(err)
	}
	return parseIDs(ids)
}
