package infrastructure

import (
	"context"
	"time"

	"Demonstra/internal/domain/dremodel"
	appErrors "Demonstra/internal/errors"
	"Demonstra/internal/pkg"

	"github.com/oklog/ulid/v2"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

type DreModelRepository struct {
	DB *gorm.DB
}

var (
	_ dremodel.Repository       = (*DreModelRepository)(nil)
	_ dremodel.ReferenceChecker = (*DreModelRepository)(nil)
)

type modelAccountDB struct {
	Id          string    `gorm:"type:varchar(26);primaryKey"`
	Nome        string    `gorm:"column:nome;type:varchar(150);not null"`
	Tipo        string    `gorm:"column:tipo;type:varchar(20);not null"`
	Simbolo     string    `gorm:"column:simbolo;type:varchar(1);not null;default:'+'"`
	Expressao   *string   `gorm:"column:expressao;type:text"`
	OrdemPadrao int       `gorm:"column:ordem_padrao;not null;default:0"`
	Visivel     bool      `gorm:"column:visivel;not null"`
	CreatedAt   time.Time `gorm:"autoCreateTime;not null"`
	UpdatedAt   time.Time `gorm:"autoUpdateTime;not null"`
}

func (modelAccountDB) TableName() string {
	return "contas_dre_modelo"
}

type secondaryAccountDB struct {
	Id               string `gorm:"type:varchar(26);primaryKey"`
	ContaDreModeloId string `gorm:"column:conta_dre_modelo_id;type:varchar(26);not null;index"`
	Nome             string `gorm:"column:nome;type:varchar(150);not null"`
	Ordem            int    `gorm:"column:ordem;not null;default:0"`
}

func (secondaryAccountDB) TableName() string {
	return "contas_dre_secundarias"
}

type componentDB struct {
	Id                string          `gorm:"type:varchar(26);primaryKey"`
	ContaDreModeloId  *string         `gorm:"column:conta_dre_modelo_id;type:varchar(26);index"`
	ContaSecundariaId *string         `gorm:"column:conta_secundaria_id;type:varchar(26);index"`
	ReferenciaTipo    string          `gorm:"column:referencia_tipo;type:varchar(10);not null"`
	ReferenciaId      string          `gorm:"column:referencia_id;type:varchar(26);not null"`
	Peso              decimal.Decimal `gorm:"column:peso;type:decimal(15,4);not null;default:1"`
	Ordem             int             `gorm:"column:ordem;not null;default:0"`
	NomeExibicao      *string         `gorm:"column:nome_exibicao;type:varchar(150)"`
}

func (componentDB) TableName() string {
	return "contas_dre_componentes"
}

func toDomainModelAccount(row *modelAccountDB) (*dremodel.ModelAccount, error) {
	id, err := parseID(row.Id)
	if err != nil {
		return nil, err
	}
	return &dremodel.ModelAccount{
		Id:           id,
		Name:         row.Nome,
		Kind:         dremodel.Kind(row.Tipo),
		Symbol:       dremodel.Symbol(row.Simbolo),
		Expression:   derefString(row.Expressao),
		DefaultOrder: row.OrdemPadrao,
		Visible:      row.Visivel,
		CreatedAt:    row.CreatedAt,
		UpdatedAt:    row.UpdatedAt,
	}, nil
}

func toDBModelAccount(a *dremodel.ModelAccount) *modelAccountDB {
	return &modelAccountDB{
		Id:          a.Id.String(),
		Nome:        a.Name,
		Tipo:        string(a.Kind),
		Simbolo:     string(a.Symbol),
		Expressao:   optionalString(a.Expression),
		OrdemPadrao: a.DefaultOrder,
		Visivel:     a.Visible,
		CreatedAt:   a.CreatedAt,
		UpdatedAt:   a.UpdatedAt,
	}
}

func toDomainSecondary(row *secondaryAccountDB) (*dremodel.SecondaryAccount, error) {
	id, err := parseID(row.Id)
	if err != nil {
		return nil, err
	}
	accountID, err := parseID(row.ContaDreModeloId)
	if err != nil {
		return nil, err
	}
	return &dremodel.SecondaryAccount{
		Id:             id,
		ModelAccountId: accountID,
		Name:           row.Nome,
		Order:          row.Ordem,
	}, nil
}

func toDBSecondary(s *dremodel.SecondaryAccount) *secondaryAccountDB {
	return &secondaryAccountDB{
		Id:               s.Id.String(),
		ContaDreModeloId: s.ModelAccountId.String(),
		Nome:             s.Name,
		Ordem:            s.Order,
	}
}

func toDomainComponent(row *componentDB) (*dremodel.Component, error) {
	id, err := parseID(row.Id)
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
	refID, err := parseID(row.ReferenciaId)
	if err != nil {
		return nil, err
	}
	return &dremodel.Component{
		Id:                 id,
		ModelAccountId:     accountID,
		SecondaryAccountId: secondaryID,
		ReferenceType:      dremodel.ReferenceType(row.ReferenciaTipo),
		ReferenceId:        refID,
		Weight:             row.Peso,
		Order:              row.Ordem,
		DisplayName:        derefString(row.NomeExibicao),
	}, nil
}

func toDBComponent(c *dremodel.Component) *componentDB {
	return &componentDB{
		Id:                c.Id.String(),
		ContaDreModeloId:  pkg.ULIDPtrToString(c.ModelAccountId),
		ContaSecundariaId: pkg.ULIDPtrToString(c.SecondaryAccountId),
		ReferenciaTipo:    string(c.ReferenceType),
		ReferenciaId:      c.ReferenceId.String(),
		Peso:              c.Weight,
		Ordem:             c.Order,
		NomeExibicao:      optionalString(c.DisplayName),
	}
}

// Contas do modelo

func (r *DreModelRepository) ListAccounts(ctx context.Context, visibleOnly bool) ([]*dremodel.ModelAccount, error) {
	db := r.DB.WithContext(ctx)
	if visibleOnly {
		db = db.Where("visivel = ?", true)
	}
	var rows []modelAccountDB
	if err := db.Order("ordem_padrao ASC, nome ASC").Find(&rows).Error; err != nil {
		return nil, appErrors.NewDatabaseError(err)
	}
	return convertAll(rows, toDomainModelAccount)
}

func (r *DreModelRepository) GetAccount(ctx context.Context, id ulid.ULID) (*dremodel.ModelAccount, error) {
	var row modelAccountDB
	if err := r.DB.WithContext(ctx).Where("id = ?", id.String()).First(&row).Error; err != nil {
		return nil, lookupError(err, appErrors.ErrModelAccountNotFound)
	}
	return toDomainModelAccount(&row)
}

func (r *DreModelRepository) CreateAccount(ctx context.Context, account *dremodel.ModelAccount) error {
	if err := r.DB.WithContext(ctx).Create(toDBModelAccount(account)).Error; err != nil {
		return appErrors.NewDatabaseError(err)
	}
	return nil
}

func (r *DreModelRepository) UpdateAccount(ctx context.Context, account *dremodel.ModelAccount) error {
	row := toDBModelAccount(account)
	err := r.DB.WithContext(ctx).Model(&modelAccountDB{}).
		Where("id = ?", row.Id).
		Select("*").Omit("id", "created_at").
		Updates(row).Error
	if err != nil {
		return appErrors.NewDatabaseError(err)
	}
	return nil
}

func (r *DreModelRepository) DeleteAccount(ctx context.Context, id ulid.ULID) error {
	result := r.DB.WithContext(ctx).Where("id = ?", id.String()).Delete(&modelAccountDB{})
	if result.Error != nil {
		return appErrors.NewDatabaseError(result.Error)
	}
	if result.RowsAffected == 0 {
		return appErrors.ErrModelAccountNotFound
	}
	return nil
}

// Contas secundárias

func (r *DreModelRepository) ListSecondaries(ctx context.Context, modelAccountID *ulid.ULID) ([]*dremodel.SecondaryAccount, error) {
	db := r.DB.WithContext(ctx)
	if modelAccountID != nil {
		db = db.Where("conta_dre_modelo_id = ?", modelAccountID.String())
	}
	var rows []secondaryAccountDB
	if err := db.Order("ordem ASC, nome ASC").Find(&rows).Error; err != nil {
		return nil, appErrors.NewDatabaseError(err)
	}
	return convertAll(rows, toDomainSecondary)
}

func (r *DreModelRepository) GetSecondary(ctx context.Context, id ulid.ULID) (*dremodel.SecondaryAccount, error) {
	var row secondaryAccountDB
	if err := r.DB.WithContext(ctx).Where("id = ?", id.String()).First(&row).Error; err != nil {
		return nil, lookupError(err, appErrors.ErrSecondaryAccountNotFound)
	}
	return toDomainSecondary(&row)
}

func (r *DreModelRepository) CreateSecondary(ctx context.Context, secondary *dremodel.SecondaryAccount) error {
	if err := r.DB.WithContext(ctx).Create(toDBSecondary(secondary)).Error; err != nil {
		return appErrors.NewDatabaseError(err)
	}
	return nil
}

func (r *DreModelRepository) UpdateSecondary(ctx context.Context, secondary *dremodel.SecondaryAccount) error {
	row := toDBSecondary(secondary)
	err := r.DB.WithContext(ctx).Model(&secondaryAccountDB{}).
		Where("id = ?", row.Id).
		Select("conta_dre_modelo_id", "nome", "ordem").
		Updates(row).Error
	if err != nil {
		return appErrors.NewDatabaseError(err)
	}
	return nil
}

func (r *DreModelRepository) DeleteSecondary(ctx context.Context, id ulid.ULID) error {
	result := r.DB.WithContext(ctx).Where("id = ?", id.String()).Delete(&secondaryAccountDB{})
	if result.Error != nil {
		return appErrors.NewDatabaseError(result.Error)
	}
	if result.RowsAffected == 0 {
		return appErrors.ErrSecondaryAccountNotFound
	}
	return nil
}

// Componentes

func (r *DreModelRepository) ListComponents(ctx context.Context, owner dremodel.Owner) ([]*dremodel.Component, error) {
	db := r.DB.WithContext(ctx)
	switch {
	case owner.ModelAccountId != nil:
		db = db.Where("conta_dre_modelo_id = ?", owner.ModelAccountId.String())
	case owner.SecondaryAccountId != nil:
		db = db.Where("conta_secundaria_id = ?", owner.SecondaryAccountId.String())
	}
	var rows []componentDB
	if err := db.Order("ordem ASC").Find(&rows).Error; err != nil {
		return nil, appErrors.NewDatabaseError(err)
	}
	return convertAll(rows, toDomainComponent)
}

func (r *DreModelRepository) GetComponent(ctx context.Context, id ulid.ULID) (*dremodel.Component, error) {
	var row componentDB
	if err := r.DB.WithContext(ctx).Where("id = ?", id.String()).First(&row).Error; err != nil {
		return nil, lookupError(err, appErrors.ErrComponentNotFound)
	}
	return toDomainComponent(&row)
}

func (r *DreModelRepository) CreateComponent(ctx context.Context, component *dremodel.Component) error {
	if err := r.DB.WithContext(ctx).Create(toDBComponent(component)).Error; err != nil {
		return appErrors.NewDatabaseError(err)
	}
	return nil
}

func (r *DreModelRepository) UpdateComponent(ctx context.Context, component *dremodel.Component) error {
	row := toDBComponent(component)
	err := r.DB.WithContext(ctx).Model(&componentDB{}).
		Where("id = ?", row.Id).
		Select("*").Omit("id").
		Updates(row).Error
	if err != nil {
		return appErrors.NewDatabaseError(err)
	}
	return nil
}

func (r *DreModelRepository) DeleteComponent(ctx context.Context, id ulid.ULID) error {
	result := r.DB.WithContext(ctx).Where("id = ?", id.String()).Delete(&componentDB{})
	if result.Error != nil {
		return appErrors.NewDatabaseError(result.Error)
	}
	if result.RowsAffected == 0 {
		return appErrors.ErrComponentNotFound
	}
	return nil
}

// ReferenceExists procura o id na tabela correspondente ao tipo de referência.
func (r *DreModelRepository) ReferenceExists(ctx context.Context, typ dremodel.ReferenceType, id ulid.ULID) (bool, error) {
	var model interface{}
	switch typ {
	case dremodel.ReferenceCategory:
		model = &categoryDB{}
	case dremodel.ReferenceIndicator:
		model = &indicatorDB{}
	case dremodel.ReferenceAccount:
		model = &modelAccountDB{}
	default:
		return false, appErrors.NewValidationError("reference_type", "deve ser categoria, indicador ou conta")
	}

	var count int64
	if err := r.DB.WithContext(ctx).Model(model).Where("id = ?", id.String()).Count(&count).Error; err != nil {
		return false, appErrors.NewDatabaseError(err)
	}
	return count > 0, nil
}
