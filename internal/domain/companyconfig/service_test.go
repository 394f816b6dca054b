package companyconfig_test

import (
	"context"
	"testing"

	"Demonstra/internal/domain/companyconfig"
	"Demonstra/internal/domain/dremodel"
	"Demonstra/internal/domain/shared"
	appErrors "Demonstra/internal/errors"

	"github.com/oklog/ulid/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type memoryConfig struct {
	accounts   []*companyconfig.CompanyAccount
	components []*companyconfig.CompanyComponent
	replaced   int
}

func (m *memoryConfig) ListAccounts(ctx context.Context, companyID ulid.ULID) ([]*companyconfig.CompanyAccount, error) {
	var out []*companyconfig.CompanyAccount
	for _, a := range m.accounts {
		if a.CompanyId == companyID {
			out = append(out, a)
		}
	}
	return out, nil
}

func (m *memoryConfig) FindAccount(ctx context.Context, companyID, accountID ulid.ULID) (*companyconfig.CompanyAccount, error) {
	for _, a := range m.accounts {
		if a.CompanyId == companyID && a.ModelAccountId == accountID {
			return a, nil
		}
	}
	return nil, nil
}

func (m *memoryConfig) CreateAccount(ctx context.Context, a *companyconfig.CompanyAccount) error {
	m.accounts = append(m.accounts, a)
	return nil
}

func (m *memoryConfig) UpdateAccount(ctx context.Context, a *companyconfig.CompanyAccount) error {
	return nil
}

func (m *memoryConfig) ListComponents(ctx context.Context, companyID ulid.ULID) ([]*companyconfig.CompanyComponent, error) {
	var out []*companyconfig.CompanyComponent
	for _, c := range m.components {
		if c.CompanyId == companyID {
			out = append(out, c)
		}
	}
	return out, nil
}

func (m *memoryConfig) ToggleComponent(ctx context.Context, sel *companyconfig.CompanyComponent) (bool, error) {
	for i, c := range m.components {
		if c.CompanyId == sel.CompanyId && c.Key() == sel.Key() {
			m.components = append(m.components[:i], m.components[i+1:]...)
			return false, nil
		}
	}
	m.components = append(m.components, sel)
	return true, nil
}

func (m *memoryConfig) ReplaceStructure(ctx context.Context, companyID ulid.ULID, accounts []*companyconfig.CompanyAccount, components []*companyconfig.CompanyComponent) error {
	m.replaced++
	keptAccounts := m.accounts[:0:0]
	for _, a := range m.accounts {
		if a.CompanyId != companyID {
			keptAccounts = append(keptAccounts, a)
		}
	}
	keptComponents := m.components[:0:0]
	for _, c := range m.components {
		if c.CompanyId != companyID {
			keptComponents = append(keptComponents, c)
		}
	}
	m.accounts = append(keptAccounts, accounts...)
	m.components = append(keptComponents, components...)
	return nil
}

type fakeModel struct {
	accounts   map[ulid.ULID]*dremodel.ModelAccount
	components map[ulid.ULID]*dremodel.Component
	structure  []*dremodel.StructureNode
}

func (f *fakeModel) GetAccount(ctx context.Context, id ulid.ULID) (*dremodel.ModelAccount, error) {
	if a, ok := f.accounts[id]; ok {
		return a, nil
	}
	return nil, appErrors.ErrModelAccountNotFound
}

func (f *fakeModel) GetComponent(ctx context.Context, id ulid.ULID) (*dremodel.Component, error) {
	if c, ok := f.components[id]; ok {
		return c, nil
	}
	return nil, appErrors.ErrComponentNotFound
}

func (f *fakeModel) Structure(ctx context.Context, visibleOnly bool) ([]*dremodel.StructureNode, error) {
	return f.structure, nil
}

type fakeCompanies struct{}

func (fakeCompanies) Exists(ctx context.Context, id ulid.ULID) error { return nil }

type fixture struct {
	repo      *memoryConfig
	model     *fakeModel
	svc       *companyconfig.Service
	revenue   *dremodel.ModelAccount
	costs     *dremodel.ModelAccount
	secondary *dremodel.SecondaryAccount
	direct    *dremodel.Component
	nested    *dremodel.Component
}

func newFixture() *fixture {
	f := &fixture{repo: &memoryConfig{}}
	f.revenue = &dremodel.ModelAccount{Id: ulid.Make(), Name: "Receita", DefaultOrder: 1}
	f.costs = &dremodel.ModelAccount{Id: ulid.Make(), Name: "Custos", DefaultOrder: 2}
	f.secondary = &dremodel.SecondaryAccount{Id: ulid.Make(), ModelAccountId: f.revenue.Id, Name: "Serviços"}
	f.direct = &dremodel.Component{Id: ulid.Make(), ModelAccountId: &f.revenue.Id}
	f.nested = &dremodel.Component{Id: ulid.Make(), SecondaryAccountId: &f.secondary.Id}

	f.model = &fakeModel{
		accounts: map[ulid.ULID]*dremodel.ModelAccount{f.revenue.Id: f.revenue, f.costs.Id: f.costs},
		components: map[ulid.ULID]*dremodel.Component{
			f.direct.Id: f.direct,
			f.nested.Id: f.nested,
		},
		structure: dremodel.BuildStructure(
			[]*dremodel.ModelAccount{f.revenue, f.costs},
			[]*dremodel.SecondaryAccount{f.secondary},
			[]*dremodel.Component{f.direct, f.nested},
		),
	}
	f.svc = companyconfig.NewService(f.repo, f.model, shared.NewCompanyCheckerService(fakeCompanies{}))
	return f
}

func TestToggleAccountLifecycle(t *testing.T) {
	t.Parallel()

	f := newFixture()
	company := ulid.Make()
	ctx := context.Background()

	got, err := f.svc.ToggleAccount(ctx, company, f.costs.Id, false)
	require.NoError(t, err)
	assert.Nil(t, got)
	assert.Empty(t, f.repo.accounts)

	got, err = f.svc.ToggleAccount(ctx, company, f.costs.Id, true)
	require.NoError(t, err)
	assert.True(t, got.Visible)
	assert.Equal(t, 2, got.Order)
	require.Len(t, f.repo.accounts, 1)

	got, err = f.svc.ToggleAccount(ctx, company, f.costs.Id, false)
	require.NoError(t, err)
	assert.False(t, got.Visible)
	assert.Len(t, f.repo.accounts, 1)

	got, err = f.svc.ToggleAccount(ctx, company, f.costs.Id, true)
	require.NoError(t, err)
	assert.True(t, got.Visible)
	assert.Len(t, f.repo.accounts, 1)

	_, err = f.svc.ToggleAccount(ctx, company, ulid.Make(), true)
	assert.True(t, appErrors.HasCode(err, appErrors.ErrModelAccountNotFound.Code))
}

func TestSetAccountOrder(t *testing.T) {
	t.Parallel()

	f := newFixture()
	company := ulid.Make()
	ctx := context.Background()

	_, err := f.svc.SetAccountOrder(ctx, company, f.revenue.Id, 5)
	assert.True(t, appErrors.HasCode(err, "VALIDATION_ERROR"))

	_, err = f.svc.ToggleAccount(ctx, company, f.revenue.Id, true)
	require.NoError(t, err)

	got, err := f.svc.SetAccountOrder(ctx, company, f.revenue.Id, 5)
	require.NoError(t, err)
	assert.Equal(t, 5, got.Order)
}

func TestTreeMarksSelectionsAndOrders(t *testing.T) {
	t.Parallel()

	f := newFixture()
	company := ulid.Make()
	ctx := context.Background()

	_, err := f.svc.ToggleAccount(ctx, company, f.revenue.Id, true)
	require.NoError(t, err)
	_, err = f.svc.SetAccountOrder(ctx, company, f.revenue.Id, 9)
	require.NoError(t, err)
	checked, err := f.svc.ToggleComponent(ctx, company, dremodel.Owner{SecondaryAccountId: &f.secondary.Id}, f.nested.Id)
	require.NoError(t, err)
	assert.True(t, checked)

	tree, err := f.svc.Tree(ctx, company, false)
	require.NoError(t, err)
	require.Len(t, tree, 2)
	assert.Equal(t, "Custos", tree[0].Account.Name)
	assert.False(t, tree[0].Checked)
	assert.Equal(t, "Receita", tree[1].Account.Name)
	assert.True(t, tree[1].Checked)
	assert.False(t, tree[1].Components[0].Checked)
	assert.True(t, tree[1].Secondaries[0].Components[0].Checked)

	visible, err := f.svc.Tree(ctx, company, true)
	require.NoError(t, err)
	require.Len(t, visible, 1)
	assert.Empty(t, visible[0].Components)
	assert.Len(t, visible[0].Secondaries[0].Components, 1)
}

func TestToggleComponentValidatesOwner(t *testing.T) {
	t.Parallel()

	f := newFixture()
	company := ulid.Make()
	ctx := context.Background()

	_, err := f.svc.ToggleComponent(ctx, company, dremodel.Owner{}, f.direct.Id)
	assert.True(t, appErrors.HasCode(err, "VALIDATION_ERROR"))

	_, err = f.svc.ToggleComponent(ctx, company, dremodel.Owner{ModelAccountId: &f.costs.Id}, f.direct.Id)
	assert.True(t, appErrors.HasCode(err, "VALIDATION_ERROR"))

	on, err := f.svc.ToggleComponent(ctx, company, dremodel.Owner{ModelAccountId: &f.revenue.Id}, f.direct.Id)
	require.NoError(t, err)
	assert.True(t, on)

	off, err := f.svc.ToggleComponent(ctx, company, dremodel.Owner{ModelAccountId: &f.revenue.Id}, f.direct.Id)
	require.NoError(t, err)
	assert.False(t, off)
	assert.Empty(t, f.repo.components)
}

func TestCopyStructureReplacesDestination(t *testing.T) {
	t.Parallel()

	f := newFixture()
	source, target := ulid.Make(), ulid.Make()
	ctx := context.Background()

	_, err := f.svc.ToggleAccount(ctx, source, f.revenue.Id, true)
	require.NoError(t, err)
	_, err = f.svc.ToggleComponent(ctx, source, dremodel.Owner{ModelAccountId: &f.revenue.Id}, f.direct.Id)
	require.NoError(t, err)
	_, err = f.svc.ToggleAccount(ctx, target, f.costs.Id, true)
	require.NoError(t, err)

	result, err := f.svc.CopyStructure(ctx, source, target)
	require.NoError(t, err)
	assert.Equal(t, 1, result.Accounts)
	assert.Equal(t, 1, result.Components)
	assert.Equal(t, 1, f.repo.replaced)

	targetAccounts, _ := f.repo.ListAccounts(ctx, target)
	require.Len(t, targetAccounts, 1)
	assert.Equal(t, f.revenue.Id, targetAccounts[0].ModelAccountId)

	sourceAccounts, _ := f.repo.ListAccounts(ctx, source)
	assert.Len(t, sourceAccounts, 1)
	assert.NotEqual(t, sourceAccounts[0].Id, targetAccounts[0].Id)

	_, err = f.svc.CopyStructure(ctx, source, source)
	assert.True(t, appErrors.HasCode(err, "VALIDATION_ERROR"))
}
