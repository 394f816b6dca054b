package dre_test

import (
	"bytes"
	"context"
	"testing"

	"Demonstra/internal/domain/category"
	"Demonstra/internal/domain/dre"
	"Demonstra/internal/domain/dremodel"
	"Demonstra/internal/domain/shared"
	appErrors "Demonstra/internal/errors"

	"github.com/oklog/ulid/v2"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"
)

type fakeEntries struct {
	listFn func(ctx context.Context, companyID ulid.ULID, from, to dre.Period) ([]dre.Entry, error)
}

func (f fakeEntries) ListEntries(ctx context.Context, companyID ulid.ULID, from, to dre.Period) ([]dre.Entry, error) {
	if f.listFn != nil {
		return f.listFn(ctx, companyID, from, to)
	}
	return nil, nil
}

type fakeAccounts struct {
	accounts    []*dremodel.ModelAccount
	visibleOnly bool
}

func (f *fakeAccounts) ListAccounts(ctx context.Context, visibleOnly bool) ([]*dremodel.ModelAccount, error) {
	f.visibleOnly = visibleOnly
	return f.accounts, nil
}

type fakeCompanies struct{ err error }

func (f fakeCompanies) Exists(ctx context.Context, id ulid.ULID) error { return f.err }

func TestReportBuildsColumnsAndLines(t *testing.T) {
	t.Parallel()

	company := ulid.Make()
	var gotFrom, gotTo dre.Period
	entries := fakeEntries{
		listFn: func(ctx context.Context, companyID ulid.ULID, from, to dre.Period) ([]dre.Entry, error) {
			assert.Equal(t, company, companyID)
			gotFrom, gotTo = from, to
			return []dre.Entry{
				{Period: dre.Period{Month: 2, Year: 2024}, Value: decimal.NewFromInt(300), CategoryType: category.TypeRevenue},
			}, nil
		},
	}
	accounts := &fakeAccounts{accounts: []*dremodel.ModelAccount{
		{Id: ulid.Make(), Name: "Receita Bruta", Symbol: dremodel.SymbolPlus, Visible: true},
	}}

	svc := dre.NewService(entries, accounts, shared.NewCompanyCheckerService(fakeCompanies{}))
	report, err := svc.Report(context.Background(), company, 3, 2024)

	require.NoError(t, err)
	assert.True(t, accounts.visibleOnly)
	assert.Equal(t, dre.Period{Month: 4, Year: 2023}, gotFrom)
	assert.Equal(t, dre.Period{Month: 3, Year: 2024}, gotTo)
	require.Len(t, report.Columns, 13)
	assert.Equal(t, "Abr/23", report.Columns[0])
	assert.Equal(t, "Mar/24", report.Columns[11])
	assert.Equal(t, dre.TotalColumn, report.Columns[12])
	require.Len(t, report.Lines, 1)
	assert.True(t, report.Lines[0].Values[10].Value.Equal(decimal.NewFromInt(300)))

	var buf bytes.Buffer
	require.NoError(t, dre.WriteXLSX(&buf, report, "DRE Empresa"))

	f, err := excelize.OpenReader(&buf)
	require.NoError(t, err)
	defer f.Close()
	name, err := f.GetCellValue("DRE", "A4")
	require.NoError(t, err)
	assert.Equal(t, "Receita Bruta", name)
	header, err := f.GetCellValue("DRE", "O3")
	require.NoError(t, err)
	assert.Equal(t, dre.TotalColumn, header)
}

func TestReportValidatesInput(t *testing.T) {
	t.Parallel()

	svc := dre.NewService(fakeEntries{}, &fakeAccounts{}, shared.NewCompanyCheckerService(fakeCompanies{}))
	_, err := svc.Report(context.Background(), ulid.Make(), 0, 2024)
	assert.True(t, appErrors.HasCode(err, "VALIDATION_ERROR"))

	missing := dre.NewService(fakeEntries{}, &fakeAccounts{}, shared.NewCompanyCheckerService(fakeCompanies{err: appErrors.ErrNotFound}))
	_, err = missing.Report(context.Background(), ulid.Make(), 3, 2024)
	assert.True(t, appErrors.HasCode(err, appErrors.ErrCompanyNotFound.Code))
}
