package infrastructure

import (
	"context"
	"errors"

	"Demonstra/internal/domain/companyconfig"
	appErrors "Demonstra/internal/errors"
	"Demonstra/internal/pkg"

	"github.com/oklog/ulid/v2"
	"gorm.io/gorm"
)

type CompanyConfigRepository struct {
	DB *gorm.DB
}

var _ companyconfig.Repository = (*CompanyConfigRepository)(nil)

type companyAccountDB struct {
	Id               string `gorm:"type:varchar(26);primaryKey"`
	EmpresaId        string `gorm:"column:empresa_id;type:varchar(26);not null;uniqueIndex:idx_empresa_conta"`
	ContaDreModeloId string `gorm:"column:conta_dre_modelo_id;type:varchar(26);not null;uniqueIndex:idx_empresa_conta"`
	Ordem            int    `gorm:"column:ordem;not null"`
	Visivel          bool   `gorm:"column:visivel;not null"`
}

func (companyAccountDB) TableName() string {
	return "empresas_contas_dre"
}

type companyComponentDB struct {
	Id                string  `gorm:"type:varchar(26);primaryKey"`
	EmpresaId         string  `gorm:"column:empresa_id;type:varchar(26);not null;index"`
	ContaDreModeloId  *string `gorm:"column:conta_dre_modelo_id;type:varchar(26)"`
	ContaSecundariaId *string `gorm:"column:conta_secundaria_id;type:varchar(26)"`
	ComponenteId      string  `gorm:"column:componente_id;type:varchar(26);not null"`
}

func (companyComponentDB) TableName() string {
	return "empresas_componentes_dre"
}

func toDomainCompanyAccount(row *companyAccountDB) (*companyconfig.CompanyAccount, error) {
	id, err := parseID(row.Id)
	if err != nil {
		return nil, err
	}
	companyID, err := parseID(row.EmpresaId)
	if err != nil {
		return nil, err
	}
	accountID, err := parseID(row.ContaDreModeloId)
	if err != nil {
		return nil, err
	}
	return &companyconfig.CompanyAccount{
		Id:             id,
		CompanyId:      companyID,
		ModelAccountId: accountID,
		Order:          row.Ordem,
		Visible:        row.Visivel,
	}, nil
}

func toDBCompanyAccount(a *companyconfig.CompanyAccount) *companyAccountDB {
	return &companyAccountDB{
		Id:               a.Id.String(),
		EmpresaId:        a.CompanyId.String(),
		ContaDreModeloId: a.ModelAccountId.String(),
		Ordem:            a.Order,
		Visivel:          a.Visible,
	}
}

func toDomainCompanyComponent(row *companyComponentDB) (*companyconfig.CompanyComponent, error) {
	id, err := parseID(row.Id)
	if err != nil {
		return nil, err
	}
	companyID, err := parseID(row.EmpresaId)
	if err != nil {
		return nil, err
	}
	accountID, err := parseOptionalID(row.ContaDreModeloId)
	if err != nil {
		return nil, err
	}
	secondaryID, err := parseOptionalID(row.ContaSecundariaId)
	if err != nil {
		return nil, err
	}
	componentID, err := parseID(row.ComponenteId)
	if err != nil {
		return nil, err
	}
	return &companyconfig.CompanyComponent{
		Id:                 id,
		CompanyId:          companyID,
		ModelAccountId:     accountID,
		SecondaryAccountId: secondaryID,
		ComponentId:        componentID,
	}, nil
}

func toDBCompanyComponent(c *companyconfig.CompanyComponent) *companyComponentDB {
	return &companyComponentDB{
		Id:                c.Id.String(),
		EmpresaId:         c.CompanyId.String(),
		ContaDreModeloId:  pkg.ULIDPtrToString(c.ModelAccountId),
		ContaSecundariaId: pkg.ULIDPtrToString(c.SecondaryAccountId),
		ComponenteId:      c.ComponentId.String(),
	}
}

func (r *CompanyConfigRepository) ListAccounts(ctx context.Context, companyID ulid.ULID) ([]*companyconfig.CompanyAccount, error) {
	var rows []companyAccountDB
	err := r.DB.WithContext(ctx).
		Where("empresa_id = ?", companyID.String()).
		Order("ordem ASC").
		Find(&rows).Error
	if err != nil {
		return nil, appErrors.NewDatabaseError(err)
	}
	return convertAll(rows, toDomainCompanyAccount)
}

func (r *CompanyConfigRepository) FindAccount(ctx context.Context, companyID, modelAccountID ulid.ULID) (*companyconfig.CompanyAccount, error) {
	var row companyAccountDB
	err := r.DB.WithContext(ctx).
		Where("empresa_id = ? AND conta_dre_modelo_id = ?", companyID.String(), modelAccountID.String()).
		First(&row).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, appErrors.NewDatabaseError(err)
	}
	return toDomainCompanyAccount(&row)
}

func (r *CompanyConfigRepository) CreateAccount(ctx context.Context, account *companyconfig.CompanyAccount) error {
	if err := r.DB.WithContext(ctx).Create(toDBCompanyAccount(account)).Error; err != nil {
		return appErrors.NewDatabaseError(err)
	}
	return nil
}

func (r *CompanyConfigRepository) UpdateAccount(ctx context.Context, account *companyconfig.CompanyAccount) error {
	row := toDBCompanyAccount(account)
	err := r.DB.WithContext(ctx).Model(&companyAccountDB{}).
		Where("id = ?", row.Id).
		Select("ordem", "visivel").
		Updates(row).Error
	if err != nil {
		return appErrors.NewDatabaseError(err)
	}
	return nil
}

func (r *CompanyConfigRepository) ListComponents(ctx context.Context, companyID ulid.ULID) ([]*companyconfig.CompanyComponent, error) {
	var rows []companyComponentDB
	if err := r.DB.WithContext(ctx).Where("empresa_id = ?", companyID.String()).Find(&rows).Error; err != nil {
		return nil, appErrors.NewDatabaseError(err)
	}
	return convertAll(rows, toDomainCompanyComponent)
}

// selectionScope casa a chave (empresa, conta, secundária, componente), tratando ausência como NULL.
func selectionScope(sel *companyconfig.CompanyComponent) func(*gorm.DB) *gorm.DB {
	return func(db *gorm.DB) *gorm.DB {
		db = db.Where("empresa_id = ? AND componente_id = ?", sel.CompanyId.String(), sel.ComponentId.String())
		if sel.ModelAccountId != nil {
			db = db.Where("conta_dre_modelo_id = ?", sel.ModelAccountId.String())
		} else {
			db = db.Where("conta_dre_modelo_id IS NULL")
		}
		if sel.SecondaryAccountId != nil {
			db = db.Where("conta_secundaria_id = ?", sel.SecondaryAccountId.String())
		} else {
			db = db.Where("conta_secundaria_id IS NULL")
		}
		return db
	}
}

func (r *CompanyConfigRepository) ToggleComponent(ctx context.Context, selection *companyconfig.CompanyComponent) (bool, error) {
	selected := false
	err := r.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var existing companyComponentDB
		err := tx.Scopes(selectionScope(selection)).First(&existing).Error
		switch {
		case err == nil:
			return tx.Delete(&companyComponentDB{}, "id = ?", existing.Id).Error
		case errors.Is(err, gorm.ErrRecordNotFound):
			selected = true
			if pkg.IsEmptyULID(selection.Id) {
				selection.Id = pkg.GenerateULIDObject()
			}
			return tx.Create(toDBCompanyComponent(selection)).Error
		default:
			return err
		}
	})
	if err != nil {
		return false, wrapTxError(err)
	}
	return selected, nil
}

func (r *CompanyConfigRepository) ReplaceStructure(ctx context.Context, companyID ulid.ULID, accounts []*companyconfig.CompanyAccount, components []*companyconfig.CompanyComponent) error {
	err := r.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("empresa_id = ?", companyID.String()).Delete(&companyComponentDB{}).Error; err != nil {
			return err
		}
		if err := tx.Where("empresa_id = ?", companyID.String()).Delete(&companyAccountDB{}).Error; err != nil {
			return err
		}

		if len(accounts) > 0 {
			rows := make([]*companyAccountDB, 0, len(accounts))
			for _, a := range accounts {
				rows = append(rows, toDBCompanyAccount(a))
			}
			if err := tx.CreateInBatches(rows, 200).Error; err != nil {
				return err
			}
		}
		if len(components) > 0 {
			rows := make([]*companyComponentDB, 0, len(components))
			for _, c := range components {
				rows = append(rows, toDBCompanyComponent(c))
			}
			if err := tx.CreateInBatches(rows, 200).Error; err != nil {
				return err
			}
		}
		return nil
	})
	return wrapTxError(err)
}
