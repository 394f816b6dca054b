package infrastructure

import (
	"bytes"
	"context"
	"os"
	"testing"

	"Demonstra/config"
	"Demonstra/internal/domain/category"
	"Demonstra/internal/domain/company"
	"Demonstra/internal/domain/companyconfig"
	"Demonstra/internal/domain/dre"
	"Demonstra/internal/domain/dreconfig"
	"Demonstra/internal/domain/dremodel"
	"Demonstra/internal/domain/indicator"
	"Demonstra/internal/domain/rawdata"
	appErrors "Demonstra/internal/errors"
	"Demonstra/internal/logger"
	"Demonstra/internal/pkg"
	"Demonstra/internal/pkg/query"

	"github.com/oklog/ulid/v2"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	cfg := &config.Config{}
	cfg.Database.Driver = config.DriverSQLite
	cfg.Database.DSN = ":memory:"

	db, err := Open(cfg)
	require.NoError(t, err)
	require.NoError(t, Migrate(db))

	t.Cleanup(func() {
		if sqlDB, err := db.DB(); err == nil {
			sqlDB.Close()
		}
	})
	return db
}

func seedCompany(t *testing.T, db *gorm.DB, name string) *company.Company {
	t.Helper()
	now := pkg.SetTimestamps()
	c := &company.Company{Id: pkg.GenerateULIDObject(), Name: name, TradingName: name, IsActive: true, CreatedAt: now, UpdatedAt: now}
	require.NoError(t, (&CompanyRepository{DB: db}).Create(context.Background(), c))
	return c
}

func TestCompanyRepositoryUpdatePersistsInactive(t *testing.T) {
	db := newTestDB(t)
	repo := &CompanyRepository{DB: db}
	ctx := context.Background()

	b := seedCompany(t, db, "Beta")
	seedCompany(t, db, "Alfa")

	b.IsActive = false
	require.NoError(t, repo.Update(ctx, b))

	got, err := repo.GetByID(ctx, b.Id)
	require.NoError(t, err)
	assert.False(t, got.IsActive)

	active, err := repo.List(ctx, true)
	require.NoError(t, err)
	require.Len(t, active, 1)
	assert.Equal(t, "Alfa", active[0].Name)

	_, err = repo.GetByID(ctx, ulid.Make())
	assert.True(t, appErrors.HasCode(err, appErrors.ErrCompanyNotFound.Code))
}

func TestCategoryRepositoryUniqueCodeAndCount(t *testing.T) {
	db := newTestDB(t)
	repo := &CategoryRepository{DB: db}
	ctx := context.Background()

	rec := &category.Category{Id: ulid.Make(), Code: "REC01", Name: "Vendas", Type: category.TypeRevenue}
	require.NoError(t, repo.Create(ctx, rec))

	err := repo.Create(ctx, &category.Category{Id: ulid.Make(), Code: "REC01", Name: "Outra", Type: category.TypeRevenue})
	require.Error(t, err)
	assert.True(t, appErrors.HasCode(err, "DATABASE_ERROR"))

	count, err := repo.CountByIDs(ctx, []ulid.ULID{rec.Id, ulid.Make()})
	require.NoError(t, err)
	assert.Equal(t, int64(1), count)

	got, err := repo.GetByCode(ctx, "REC01")
	require.NoError(t, err)
	assert.Equal(t, rec.Id, got.Id)
}

func TestDreConfigRepositoryCreateLinksAndCascade(t *testing.T) {
	db := newTestDB(t)
	repo := &DreConfigRepository{DB: db}
	ctx := context.Background()
	co := seedCompany(t, db, "Empresa")

	root := &dreconfig.Account{Id: ulid.Make(), Name: "Receita", Type: dreconfig.TypeRevenue, IsActive: true, CategoryIds: []ulid.ULID{ulid.Make()}}
	child := &dreconfig.Account{Id: ulid.Make(), Name: "Serviços", Type: dreconfig.TypeFlex, Sign: dreconfig.SignPositive, ParentAccountId: &root.Id, DisplayOrder: 1, IsActive: true}
	require.NoError(t, repo.Create(ctx, root, co.Id, nil))
	require.NoError(t, repo.Create(ctx, child, co.Id, nil))

	count, err := repo.CountByCompany(ctx, co.Id)
	require.NoError(t, err)
	assert.Equal(t, int64(2), count)

	list, err := repo.ListByCompany(ctx, co.Id)
	require.NoError(t, err)
	require.Len(t, list, 2)
	assert.Equal(t, root.Id, list[0].Id)
	assert.Equal(t, root.CategoryIds, list[0].CategoryIds)
	require.NotNil(t, list[1].ParentAccountId)
	assert.Equal(t, root.Id, *list[1].ParentAccountId)

	err = repo.Create(ctx, &dreconfig.Account{Id: ulid.Make(), Name: "X", Type: dreconfig.TypeFlex}, co.Id,
		&dreconfig.ComponentRename{ComponentId: ulid.Make(), DisplayName: "Novo"})
	assert.True(t, appErrors.HasCode(err, appErrors.ErrComponentNotFound.Code))
	count, err = repo.CountByCompany(ctx, co.Id)
	require.NoError(t, err)
	assert.Equal(t, int64(2), count, "transaction must roll back the account and link")

	linked, err := repo.ToggleCompany(ctx, root.Id, co.Id)
	require.NoError(t, err)
	assert.False(t, linked)
	linked, err = repo.ToggleCompany(ctx, root.Id, co.Id)
	require.NoError(t, err)
	assert.True(t, linked)

	require.NoError(t, repo.SetActive(ctx, child.Id, false))
	got, err := repo.GetByID(ctx, child.Id)
	require.NoError(t, err)
	assert.False(t, got.IsActive)

	require.NoError(t, repo.DeleteCascade(ctx, []ulid.ULID{root.Id, child.Id}))
	all, err := repo.ListAll(ctx)
	require.NoError(t, err)
	assert.Empty(t, all)
	count, err = repo.CountByCompany(ctx, co.Id)
	require.NoError(t, err)
	assert.Zero(t, count)
}

func TestCompanyConfigRepositoryToggleAndReplace(t *testing.T) {
	db := newTestDB(t)
	repo := &CompanyConfigRepository{DB: db}
	ctx := context.Background()
	from := seedCompany(t, db, "Origem")
	to := seedCompany(t, db, "Destino")
	account := ulid.Make()

	sel := &companyconfig.CompanyComponent{CompanyId: from.Id, ModelAccountId: &account, ComponentId: ulid.Make()}
	on, err := repo.ToggleComponent(ctx, sel)
	require.NoError(t, err)
	assert.True(t, on)

	again := &companyconfig.CompanyComponent{CompanyId: from.Id, ModelAccountId: &account, ComponentId: sel.ComponentId}
	on, err = repo.ToggleComponent(ctx, again)
	require.NoError(t, err)
	assert.False(t, on)

	require.NoError(t, repo.CreateAccount(ctx, &companyconfig.CompanyAccount{Id: ulid.Make(), CompanyId: to.Id, ModelAccountId: account, Order: 3, Visible: true}))

	copies := []*companyconfig.CompanyAccount{{Id: ulid.Make(), CompanyId: to.Id, ModelAccountId: ulid.Make(), Order: 1, Visible: false}}
	components := []*companyconfig.CompanyComponent{{Id: ulid.Make(), CompanyId: to.Id, ModelAccountId: &account, ComponentId: ulid.Make()}}
	require.NoError(t, repo.ReplaceStructure(ctx, to.Id, copies, components))

	accounts, err := repo.ListAccounts(ctx, to.Id)
	require.NoError(t, err)
	require.Len(t, accounts, 1)
	assert.False(t, accounts[0].Visible)

	missing, err := repo.FindAccount(ctx, to.Id, account)
	require.NoError(t, err)
	assert.Nil(t, missing)

	selected, err := repo.ListComponents(ctx, to.Id)
	require.NoError(t, err)
	assert.Len(t, selected, 1)
}

func TestRawDataRepositoryEntriesWindow(t *testing.T) {
	db := newTestDB(t)
	repo := &RawDataRepository{DB: db}
	categories := &CategoryRepository{DB: db}
	ctx := context.Background()
	co := seedCompany(t, db, "Empresa")
	other := seedCompany(t, db, "Outra")

	rev := &category.Category{Id: ulid.Make(), Code: "REC", Name: "Receita", Type: category.TypeRevenue}
	exp := &category.Category{Id: ulid.Make(), Code: "DESP", Name: "Despesa", Type: category.TypeExpense}
	require.NoError(t, categories.Create(ctx, rev))
	require.NoError(t, categories.Create(ctx, exp))
	ind := ulid.Make()

	row := func(companyID ulid.ULID, cat *ulid.ULID, indID *ulid.ULID, v string, m, y int) *rawdata.RawData {
		return &rawdata.RawData{Id: pkg.GenerateULIDObject(), CompanyId: companyID, CategoryId: cat, IndicatorId: indID,
			Value: decimal.RequireFromString(v), Month: m, Year: y, CreatedAt: pkg.SetTimestamps()}
	}
	require.NoError(t, repo.CreateBatch(ctx, []*rawdata.RawData{
		row(co.Id, &rev.Id, nil, "1000.50", 3, 2024),
		row(co.Id, &exp.Id, nil, "200", 4, 2023),
		row(co.Id, nil, &ind, "7", 12, 2023),
		row(co.Id, &rev.Id, nil, "999", 3, 2023),
		row(other.Id, &rev.Id, nil, "5", 3, 2024),
	}))

	window := dre.TrailingWindow(3, 2024)
	entries, err := repo.ListEntries(ctx, co.Id, window[0], window[len(window)-1])
	require.NoError(t, err)
	require.Len(t, entries, 3)

	byType := map[category.Type]decimal.Decimal{}
	for _, e := range entries {
		byType[e.CategoryType] = byType[e.CategoryType].Add(e.Value)
	}
	assert.True(t, byType[category.TypeRevenue].Equal(decimal.RequireFromString("1000.5")))
	assert.True(t, byType[category.TypeExpense].Equal(decimal.NewFromInt(200)))
	assert.True(t, byType[""].Equal(decimal.NewFromInt(7)))

	page, err := repo.List(ctx, rawdata.Filter{CompanyId: co.Id, Year: 2024}, query.NewPage(1, 10))
	require.NoError(t, err)
	assert.Equal(t, int64(1), page.Total)
}

func TestIndicatorRepositoryLinksAndDelete(t *testing.T) {
	db := newTestDB(t)
	repo := &IndicatorRepository{DB: db}
	ctx := context.Background()
	co := seedCompany(t, db, "Empresa")

	src := ulid.Make()
	ind := &indicator.Indicator{Id: ulid.Make(), Code: "MARGEM", Name: "Margem", Type: indicator.TypeCalculated,
		Operation: indicator.OperationDivide, CalculationBasis: indicator.BasisCategory, SourceIds: []ulid.ULID{src}}
	require.NoError(t, repo.Create(ctx, ind))

	got, err := repo.GetByCode(ctx, "MARGEM")
	require.NoError(t, err)
	assert.Equal(t, []ulid.ULID{src}, got.SourceIds)
	assert.Equal(t, indicator.OperationDivide, got.Operation)

	on, err := repo.ToggleCompany(ctx, ind.Id, co.Id)
	require.NoError(t, err)
	assert.True(t, on)

	links, err := repo.ListCompanyLinks(ctx)
	require.NoError(t, err)
	assert.Len(t, links, 1)

	require.NoError(t, repo.DeleteWithLinks(ctx, ind.Id))
	links, err = repo.ListCompanyLinks(ctx)
	require.NoError(t, err)
	assert.Empty(t, links)

	err = repo.DeleteWithLinks(ctx, ind.Id)
	assert.True(t, appErrors.HasCode(err, appErrors.ErrIndicatorNotFound.Code))
}

func TestDreModelRepositoryReferencesAndComponents(t *testing.T) {
	db := newTestDB(t)
	repo := &DreModelRepository{DB: db}
	ctx := context.Background()

	acc := &dremodel.ModelAccount{Id: ulid.Make(), Name: "Receita Líquida", Kind: dremodel.KindSimple, Symbol: dremodel.SymbolPlus, Visible: false}
	require.NoError(t, repo.CreateAccount(ctx, acc))

	visible, err := repo.ListAccounts(ctx, true)
	require.NoError(t, err)
	assert.Empty(t, visible)

	ok, err := repo.ReferenceExists(ctx, dremodel.ReferenceAccount, acc.Id)
	require.NoError(t, err)
	assert.True(t, ok)
	ok, err = repo.ReferenceExists(ctx, dremodel.ReferenceCategory, acc.Id)
	require.NoError(t, err)
	assert.False(t, ok)

	comp := &dremodel.Component{Id: ulid.Make(), ModelAccountId: &acc.Id, ReferenceType: dremodel.ReferenceAccount,
		ReferenceId: ulid.Make(), Weight: decimal.RequireFromString("0.5"), Order: 1}
	require.NoError(t, repo.CreateComponent(ctx, comp))

	list, err := repo.ListComponents(ctx, dremodel.Owner{ModelAccountId: &acc.Id})
	require.NoError(t, err)
	require.Len(t, list, 1)
	assert.True(t, list[0].Weight.Equal(decimal.RequireFromString("0.5")))
	assert.Nil(t, list[0].SecondaryAccountId)
}

func TestGormLoggerSkipsRecordNotFound(t *testing.T) {
	var buf bytes.Buffer
	logger.SetOutput(&buf)
	t.Cleanup(func() { logger.SetOutput(os.Stderr) })

	db := newTestDB(t)
	repo := &CategoryRepository{DB: db}

	_, err := repo.GetByCode(context.Background(), "INEXISTENTE")
	assert.True(t, appErrors.HasCode(err, appErrors.ErrCategoryNotFound.Code))
	assert.NotContains(t, buf.String(), "record not found")

	require.Error(t, db.Exec("SELECT * FROM tabela_inexistente").Error)
	assert.Contains(t, buf.String(), "tabela_inexistente")
	assert.Contains(t, buf.String(), `"component":"gorm"`)
}
