package companyconfig

import (
	"context"
	"sort"

	"Demonstra/internal/domain/dremodel"
	"Demonstra/internal/domain/shared"
	appErrors "Demonstra/internal/errors"
	"Demonstra/internal/logger"
	"Demonstra/internal/pkg"

	"github.com/oklog/ulid/v2"
)

type Service struct {
	Repository Repository
	Model      ModelReader
	shared.BaseService
}

func NewService(repo Repository, model ModelReader, companyChecker *shared.CompanyCheckerService) *Service {
	return &Service{
		Repository: repo,
		Model:      model,
		BaseService: shared.BaseService{
			CompanyChecker: companyChecker,
		},
	}
}

// ToggleAccount marca ou desmarca a conta para a empresa. Marcar uma conta sem linha
// cria a linha com a ordem padrão do modelo; desmarcar só esconde.
func (s *Service) ToggleAccount(ctx context.Context, companyID, modelAccountID ulid.ULID, checked bool) (*CompanyAccount, error) {
	if err := s.EnsureCompanyExists(ctx, companyID); err != nil {
		return nil, err
	}
	model, err := s.Model.GetAccount(ctx, modelAccountID)
	if err != nil {
		return nil, err
	}

	existing, err := s.Repository.FindAccount(ctx, companyID, modelAccountID)
	if err != nil {
		return nil, err
	}

	if existing == nil {
		if !checked {
			return nil, nil
		}
		created := &CompanyAccount{
			Id:             pkg.GenerateULIDObject(),
			CompanyId:      companyID,
			ModelAccountId: modelAccountID,
			Order:          model.DefaultOrder,
			Visible:        true,
		}
		if err := s.Repository.CreateAccount(ctx, created); err != nil {
			return nil, err
		}
		return created, nil
	}

	if existing.Visible == checked {
		return existing, nil
	}
	existing.Visible = checked
	if err := s.Repository.UpdateAccount(ctx, existing); err != nil {
		return nil, err
	}
	return existing, nil
}

func (s *Service) SetAccountOrder(ctx context.Context, companyID, modelAccountID ulid.ULID, order int) (*CompanyAccount, error) {
	if order < 0 {
		return nil, appErrors.NewValidationError("order", "não pode ser negativa")
	}
	existing, err := s.Repository.FindAccount(ctx, companyID, modelAccountID)
	if err != nil {
		return nil, err
	}
	if existing == nil {
		return nil, appErrors.NewValidationError("model_account_id", "não está configurada para a empresa")
	}

	existing.Order = order
	if err := s.Repository.UpdateAccount(ctx, existing); err != nil {
		return nil, err
	}
	return existing, nil
}

// Tree devolve a estrutura do modelo marcada com as escolhas da empresa. Com
// visibleOnly, só entram contas e componentes marcados.
func (s *Service) Tree(ctx context.Context, companyID ulid.ULID, visibleOnly bool) ([]*AccountNode, error) {
	if err := s.EnsureCompanyExists(ctx, companyID); err != nil {
		return nil, err
	}

	structure, err := s.Model.Structure(ctx, false)
	if err != nil {
		return nil, err
	}
	overrides, err := s.Repository.ListAccounts(ctx, companyID)
	if err != nil {
		return nil, err
	}
	selections, err := s.Repository.ListComponents(ctx, companyID)
	if err != nil {
		return nil, err
	}

	return annotate(structure, overrides, selections, visibleOnly), nil
}

func annotate(structure []*dremodel.StructureNode, overrides []*CompanyAccount, selections []*CompanyComponent, visibleOnly bool) []*AccountNode {
	byAccount := make(map[ulid.ULID]*CompanyAccount, len(overrides))
	for _, o := range overrides {
		byAccount[o.ModelAccountId] = o
	}
	selected := make(map[string]struct{}, len(selections))
	for _, sel := range selections {
		selected[sel.Key()] = struct{}{}
	}

	componentNodes := func(list []*dremodel.Component, owner dremodel.Owner) []ComponentNode {
		out := make([]ComponentNode, 0, len(list))
		for _, c := range list {
			key := (&CompanyComponent{ComponentId: c.Id, ModelAccountId: owner.ModelAccountId, SecondaryAccountId: owner.SecondaryAccountId}).Key()
			_, checked := selected[key]
			if visibleOnly && !checked {
				continue
			}
			out = append(out, ComponentNode{Component: c, Checked: checked})
		}
		return out
	}

	nodes := make([]*AccountNode, 0, len(structure))
	for _, n := range structure {
		override := byAccount[n.Account.Id]
		checked := override != nil && override.Visible
		if visibleOnly && !checked {
			continue
		}

		order := n.Account.DefaultOrder
		if override != nil {
			order = override.Order
		}

		node := &AccountNode{
			Account:     n.Account,
			Checked:     checked,
			Order:       order,
			Components:  componentNodes(n.Components, dremodel.Owner{ModelAccountId: &n.Account.Id}),
			Secondaries: make([]SecondaryNode, 0, len(n.Secondaries)),
		}
		for _, sn := range n.Secondaries {
			node.Secondaries = append(node.Secondaries, SecondaryNode{
				Account:    sn.Account,
				Components: componentNodes(sn.Components, dremodel.Owner{SecondaryAccountId: &sn.Account.Id}),
			})
		}
		nodes = append(nodes, node)
	}

	sort.SliceStable(nodes, func(i, j int) bool { return nodes[i].Order < nodes[j].Order })
	return nodes
}

func (s *Service) ToggleComponent(ctx context.Context, companyID ulid.ULID, owner dremodel.Owner, componentID ulid.ULID) (bool, error) {
	if !owner.Valid() {
		return false, appErrors.NewValidationError("owner", "informe a conta do modelo ou a conta secundária")
	}
	if err := s.EnsureCompanyExists(ctx, companyID); err != nil {
		return false, err
	}

	component, err := s.Model.GetComponent(ctx, componentID)
	if err != nil {
		return false, err
	}
	if !component.Owns(owner) {
		return false, appErrors.NewValidationError("component_id", "não pertence à conta informada")
	}

	return s.Repository.ToggleComponent(ctx, &CompanyComponent{
		Id:                 pkg.GenerateULIDObject(),
		CompanyId:          companyID,
		ModelAccountId:     owner.ModelAccountId,
		SecondaryAccountId: owner.SecondaryAccountId,
		ComponentId:        componentID,
	})
}

// CopyStructure substitui toda a configuração de to pela de from.
func (s *Service) CopyStructure(ctx context.Context, from, to ulid.ULID) (*CopyResult, error) {
	if from == to {
		return nil, appErrors.NewValidationError("target_company_id", "deve ser diferente da empresa de origem")
	}
	if err := s.EnsureCompanyExists(ctx, from); err != nil {
		return nil, err
	}
	if err := s.EnsureCompanyExists(ctx, to); err != nil {
		return nil, err
	}

	accounts, err := s.Repository.ListAccounts(ctx, from)
	if err != nil {
		return nil, err
	}
	components, err := s.Repository.ListComponents(ctx, from)
	if err != nil {
		return nil, err
	}

	accountCopies := make([]*CompanyAccount, 0, len(accounts))
	for _, a := range accounts {
		accountCopies = append(accountCopies, &CompanyAccount{
			Id:             pkg.GenerateULIDObject(),
			CompanyId:      to,
			ModelAccountId: a.ModelAccountId,
			Order:          a.Order,
			Visible:        a.Visible,
		})
	}
	componentCopies := make([]*CompanyComponent, 0, len(components))
	for _, c := range components {
		componentCopies = append(componentCopies, &CompanyComponent{
			Id:                 pkg.GenerateULIDObject(),
			CompanyId:          to,
			ModelAccountId:     c.ModelAccountId,
			SecondaryAccountId: c.SecondaryAccountId,
			ComponentId:        c.ComponentId,
		})
	}

	if err := s.Repository.ReplaceStructure(ctx, to, accountCopies, componentCopies); err != nil {
		return nil, err
	}

	logger.Info().
		Str("from", from.String()).
		Str("to", to.String()).
		Int("accounts", len(accountCopies)).
		Int("components", len(componentCopies)).
		Msg("estrutura DRE copiada entre empresas")

	return &CopyResult{Accounts: len(accountCopies), Components: len(componentCopies)}, nil
}
