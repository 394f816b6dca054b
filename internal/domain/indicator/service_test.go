package indicator_test

import (
	"context"
	"testing"

	"Demonstra/internal/domain/indicator"
	"Demonstra/internal/domain/shared"
	appErrors "Demonstra/internal/errors"

	"github.com/oklog/ulid/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeIndicatorRepository struct {
	createFn          func(ctx context.Context, ind *indicator.Indicator) error
	getByIDFn         func(ctx context.Context, id ulid.ULID) (*indicator.Indicator, error)
	getByIDsFn        func(ctx context.Context, ids []ulid.ULID) ([]*indicator.Indicator, error)
	listFn            func(ctx context.Context) ([]*indicator.Indicator, error)
	listLinksFn       func(ctx context.Context) ([]indicator.CompanyLink, error)
	toggleCompanyFn   func(ctx context.Context, indicatorID, companyID ulid.ULID) (bool, error)
	deleteWithLinksFn func(ctx context.Context, id ulid.ULID) error
}

func (f *fakeIndicatorRepository) Create(ctx context.Context, ind *indicator.Indicator) error {
	if f.createFn != nil {
		return f.createFn(ctx, ind)
	}
	return nil
}

func (f *fakeIndicatorRepository) Update(ctx context.Context, ind *indicator.Indicator) error {
	return nil
}

func (f *fakeIndicatorRepository) GetByID(ctx context.Context, id ulid.ULID) (*indicator.Indicator, error) {
	if f.getByIDFn != nil {
		return f.getByIDFn(ctx, id)
	}
	return nil, appErrors.ErrIndicatorNotFound
}

func (f *fakeIndicatorRepository) GetByCode(ctx context.Context, code string) (*indicator.Indicator, error) {
	return nil, appErrors.ErrIndicatorNotFound
}

func (f *fakeIndicatorRepository) GetByIDs(ctx context.Context, ids []ulid.ULID) ([]*indicator.Indicator, error) {
	if f.getByIDsFn != nil {
		return f.getByIDsFn(ctx, ids)
	}
	return nil, nil
}

func (f *fakeIndicatorRepository) List(ctx context.Context) ([]*indicator.Indicator, error) {
	if f.listFn != nil {
		return f.listFn(ctx)
	}
	return nil, nil
}

func (f *fakeIndicatorRepository) ListCompanyLinks(ctx context.Context) ([]indicator.CompanyLink, error) {
	if f.listLinksFn != nil {
		return f.listLinksFn(ctx)
	}
	return nil, nil
}

func (f *fakeIndicatorRepository) ToggleCompany(ctx context.Context, indicatorID, companyID ulid.ULID) (bool, error) {
	if f.toggleCompanyFn != nil {
		return f.toggleCompanyFn(ctx, indicatorID, companyID)
	}
	return false, nil
}

func (f *fakeIndicatorRepository) DeleteWithLinks(ctx context.Context, id ulid.ULID) error {
	if f.deleteWithLinksFn != nil {
		return f.deleteWithLinksFn(ctx, id)
	}
	return nil
}

type fakeCompanies struct{ err error }

func (f fakeCompanies) Exists(ctx context.Context, id ulid.ULID) error { return f.err }

func newService(repo indicator.Repository) *indicator.Service {
	return indicator.NewService(repo, nil, shared.NewCompanyCheckerService(fakeCompanies{}))
}

func TestCreateValidatesCalculatedFields(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		input   indicator.IndicatorInput
		wantErr bool
	}{
		{name: "manual ok", input: indicator.IndicatorInput{Code: "hc", Name: "Headcount", Type: indicator.TypeManual}},
		{name: "type defaults to manual", input: indicator.IndicatorInput{Code: "hc", Name: "Headcount"}},
		{name: "missing code", input: indicator.IndicatorInput{Name: "Headcount"}, wantErr: true},
		{name: "calculated without operation", input: indicator.IndicatorInput{Code: "m", Name: "Margem", Type: indicator.TypeCalculated, CalculationBasis: indicator.BasisCategory}, wantErr: true},
		{name: "calculated without basis", input: indicator.IndicatorInput{Code: "m", Name: "Margem", Type: indicator.TypeCalculated, Operation: indicator.OperationDivide}, wantErr: true},
		{name: "calculated ok", input: indicator.IndicatorInput{Code: "m", Name: "Margem", Type: indicator.TypeCalculated, Operation: indicator.OperationDivide, CalculationBasis: indicator.BasisCategory}},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			svc := newService(&fakeIndicatorRepository{})
			got, err := svc.Create(context.Background(), tt.input)
			if tt.wantErr {
				assert.True(t, appErrors.HasCode(err, "VALIDATION_ERROR"), "got %v", err)
				return
			}
			require.NoError(t, err)
			assert.NotEmpty(t, got.Code)
		})
	}
}

func TestCreateManualClearsCalculatedFields(t *testing.T) {
	t.Parallel()

	svc := newService(&fakeIndicatorRepository{})
	got, err := svc.Create(context.Background(), indicator.IndicatorInput{
		Code: "hc", Name: "Headcount", Type: indicator.TypeManual,
		Operation: indicator.OperationSum, SourceIds: []ulid.ULID{ulid.Make()},
	})

	require.NoError(t, err)
	assert.Empty(t, got.Operation)
	assert.Empty(t, got.SourceIds)
	assert.Equal(t, "HC", got.Code)
}

func TestCreateRejectsMissingIndicatorSource(t *testing.T) {
	t.Parallel()

	svc := newService(&fakeIndicatorRepository{
		getByIDsFn: func(ctx context.Context, ids []ulid.ULID) ([]*indicator.Indicator, error) {
			return nil, nil
		},
	})

	_, err := svc.Create(context.Background(), indicator.IndicatorInput{
		Code: "T", Name: "Total", Type: indicator.TypeCalculated,
		Operation: indicator.OperationSum, CalculationBasis: indicator.BasisIndicator,
		SourceIds: []ulid.ULID{ulid.Make()},
	})
	assert.True(t, appErrors.HasCode(err, appErrors.ErrIndicatorNotFound.Code))
}

func TestListFiltersBySearchTypeAndCompany(t *testing.T) {
	t.Parallel()

	company := ulid.Make()
	hc := &indicator.Indicator{Id: ulid.Make(), Code: "HC", Name: "Headcount", Type: indicator.TypeManual}
	margin := &indicator.Indicator{Id: ulid.Make(), Code: "MARGEM", Name: "Margem bruta", Type: indicator.TypeCalculated}
	ticket := &indicator.Indicator{Id: ulid.Make(), Code: "TICKET", Name: "Ticket médio", Type: indicator.TypeCalculated}

	svc := newService(&fakeIndicatorRepository{
		listFn: func(ctx context.Context) ([]*indicator.Indicator, error) {
			return []*indicator.Indicator{hc, margin, ticket}, nil
		},
		listLinksFn: func(ctx context.Context) ([]indicator.CompanyLink, error) {
			return []indicator.CompanyLink{{IndicatorId: margin.Id, CompanyId: company}}, nil
		},
	})
	ctx := context.Background()

	all, err := svc.List(ctx, indicator.Filter{Type: "all"})
	require.NoError(t, err)
	assert.Len(t, all, 3)

	calculated, err := svc.List(ctx, indicator.Filter{Type: indicator.TypeCalculated})
	require.NoError(t, err)
	assert.Len(t, calculated, 2)

	typo, err := svc.List(ctx, indicator.Filter{Search: "margen"})
	require.NoError(t, err)
	require.Len(t, typo, 1)
	assert.Equal(t, margin.Id, typo[0].Id)

	byCompany, err := svc.List(ctx, indicator.Filter{CompanyId: &company})
	require.NoError(t, err)
	require.Len(t, byCompany, 1)
	assert.Equal(t, []ulid.ULID{company}, byCompany[0].CompanyIds)

	_, err = svc.List(ctx, indicator.Filter{Type: "weird"})
	assert.True(t, appErrors.HasCode(err, "VALIDATION_ERROR"))
}

func TestDeleteUsesSingleTransactionalCall(t *testing.T) {
	t.Parallel()

	id := ulid.Make()
	calls := 0
	svc := newService(&fakeIndicatorRepository{
		getByIDFn: func(ctx context.Context, got ulid.ULID) (*indicator.Indicator, error) {
			return &indicator.Indicator{Id: got}, nil
		},
		deleteWithLinksFn: func(ctx context.Context, got ulid.ULID) error {
			calls++
			assert.Equal(t, id, got)
			return nil
		},
	})

	require.NoError(t, svc.Delete(context.Background(), id))
	assert.Equal(t, 1, calls)
}

func TestToggleCompanyRequiresExistingCompany(t *testing.T) {
	t.Parallel()

	svc := indicator.NewService(&fakeIndicatorRepository{
		getByIDFn: func(ctx context.Context, id ulid.ULID) (*indicator.Indicator, error) {
			return &indicator.Indicator{Id: id}, nil
		},
		toggleCompanyFn: func(ctx context.Context, indicatorID, companyID ulid.ULID) (bool, error) {
			t.Fatalf("toggle must not run for unknown company")
			return false, nil
		},
	}, nil, shared.NewCompanyCheckerService(fakeCompanies{err: appErrors.ErrCompanyNotFound}))

	_, err := svc.ToggleCompany(context.Background(), ulid.Make(), ulid.Make())
	assert.True(t, appErrors.HasCode(err, appErrors.ErrCompanyNotFound.Code))
}
