package infrastructure

import (
	"context"
	"time"

	"Demonstra/internal/domain/category"
	"Demonstra/internal/domain/dre"
	"Demonstra/internal/domain/rawdata"
	appErrors "Demonstra/internal/errors"
	"Demonstra/internal/pkg"
	"Demonstra/internal/pkg/query"

	"github.com/oklog/ulid/v2"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

type RawDataRepository struct {
	DB *gorm.DB
}

var (
	_ rawdata.Repository = (*RawDataRepository)(nil)
	_ dre.Repository     = (*RawDataRepository)(nil)
)

type rawDataDB struct {
	Id          string          `gorm:"type:varchar(26);primaryKey"`
	EmpresaId   string          `gorm:"column:empresa_id;type:varchar(26);not null;index"`
	CategoriaId *string         `gorm:"column:categoria_id;type:varchar(26);index"`
	IndicadorId *string         `gorm:"column:indicador_id;type:varchar(26);index"`
	Valor       decimal.Decimal `gorm:"column:valor;type:decimal(15,2);not null"`
	Mes         int             `gorm:"column:mes;not null"`
	Ano         int             `gorm:"column:ano;not null"`
	CreatedAt   time.Time       `gorm:"autoCreateTime;not null"`
}

func (rawDataDB) TableName() string {
	return "dados_brutos"
}

func toDomainRawData(row *rawDataDB) (*rawdata.RawData, error) {
	id, err := parseID(row.Id)
	if err != nil {
		return nil, err
	}
	companyID, err := parseID(row.EmpresaId)
	if err != nil {
		return nil, err
	}
	categoryID, err := parseOptionalID(row.CategoriaId)
	if err != nil {
		return nil, err
	}
	indicatorID, err := parseOptionalID(row.IndicadorId)
	if err != nil {
		return nil, err
	}
	return &rawdata.RawData{
		Id:          id,
		CompanyId:   companyID,
		CategoryId:  categoryID,
		IndicatorId: indicatorID,
		Value:       row.Valor,
		Month:       row.Mes,
		Year:        row.Ano,
		CreatedAt:   row.CreatedAt,
	}, nil
}

func toDBRawData(d *rawdata.RawData) *rawDataDB {
	return &rawDataDB{
		Id:          d.Id.String(),
		EmpresaId:   d.CompanyId.String(),
		CategoriaId: pkg.ULIDPtrToString(d.CategoryId),
		IndicadorId: pkg.ULIDPtrToString(d.IndicatorId),
		Valor:       d.Value,
		Mes:         d.Month,
		Ano:         d.Year,
		CreatedAt:   d.CreatedAt,
	}
}

func (r *RawDataRepository) List(ctx context.Context, filter rawdata.Filter, page query.Page) (*query.Result[*rawdata.RawData], error) {
	q := query.New[rawDataDB](r.DB, "dados_brutos").
		Context(ctx).
		Where("empresa_id = ?", filter.CompanyId.String()).
		WhereIf(filter.Month != 0, "mes = ?", filter.Month).
		WhereIf(filter.Year != 0, "ano = ?", filter.Year).
		Order("ano DESC, mes DESC, created_at DESC")

	result, err := query.Paginate(q, page, toDomainRawData)
	if err != nil {
		if appErrors.IsAppError(err) {
			return nil, err
		}
		return nil, appErrors.NewDatabaseError(err)
	}
	return result, nil
}

func (r *RawDataRepository) GetByID(ctx context.Context, id ulid.ULID) (*rawdata.RawData, error) {
	var row rawDataDB
	if err := r.DB.WithContext(ctx).Where("id = ?", id.String()).First(&row).Error; err != nil {
		return nil, lookupError(err, appErrors.ErrRawDataNotFound)
	}
	return toDomainRawData(&row)
}

func (r *RawDataRepository) Create(ctx context.Context, row *rawdata.RawData) error {
	if err := r.DB.WithContext(ctx).Create(toDBRawData(row)).Error; err != nil {
		return appErrors.NewDatabaseError(err)
	}
	return nil
}

func (r *RawDataRepository) CreateBatch(ctx context.Context, rows []*rawdata.RawData) error {
	if len(rows) == 0 {
		return nil
	}
	records := make([]*rawDataDB, 0, len(rows))
	for _, row := range rows {
		records = append(records, toDBRawData(row))
	}
	err := r.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return tx.CreateInBatches(records, 500).Error
	})
	return wrapTxError(err)
}

func (r *RawDataRepository) Delete(ctx context.Context, id ulid.ULID) error {
	result := r.DB.WithContext(ctx).Where("id = ?", id.String()).Delete(&rawDataDB{})
	if result.Error != nil {
		return appErrors.NewDatabaseError(result.Error)
	}
	if result.RowsAffected == 0 {
		return appErrors.ErrRawDataNotFound
	}
	return nil
}

type entryRow struct {
	Mes   int
	Ano   int
	Valor decimal.Decimal
	Tipo  *string
}

// ListEntries lê a janela num único SELECT, trazendo o tipo da categoria por LEFT JOIN.
func (r *RawDataRepository) ListEntries(ctx context.Context, companyID ulid.ULID, from, to dre.Period) ([]dre.Entry, error) {
	var rows []entryRow
	err := r.DB.WithContext(ctx).
		Table("dados_brutos AS d").
		Select("d.mes AS mes, d.ano AS ano, d.valor AS valor, c.type AS tipo").
		Joins("LEFT JOIN categories c ON c.id = d.categoria_id").
		Where("d.empresa_id = ?", companyID.String()).
		Where("(d.ano * 100 + d.mes) BETWEEN ? AND ?", from.Key(), to.Key()).
		Scan(&rows).Error
	if err != nil {
		return nil, appErrors.NewDatabaseError(err)
	}

	entries := make([]dre.Entry, 0, len(rows))
	for _, row := range rows {
		entries = append(entries, dre.Entry{
			Period:       dre.Period{Month: row.Mes, Year: row.Ano},
			Value:        row.Valor,
			CategoryType: category.Type(derefString(row.Tipo)),
		})
	}
	return entries, nil
}
