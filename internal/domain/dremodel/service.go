package dremodel

import (
	"context"
	"sort"
	"strings"

	"Demonstra/internal/domain/shared"
	appErrors "Demonstra/internal/errors"
	"Demonstra/internal/pkg"

	"github.com/oklog/ulid/v2"
	"github.com/shopspring/decimal"
)

type Service struct {
	Repository Repository
	References ReferenceChecker
}

func NewService(repo Repository, refs ReferenceChecker) *Service {
	return &Service{Repository: repo, References: refs}
}

type AccountInput struct {
	Id           *ulid.ULID
	Name         string
	Kind         Kind
	Symbol       Symbol
	Expression   string
	DefaultOrder int
	Visible      *bool
}

// SaveAccount insere quando não há id e atualiza quando há.
func (s *Service) SaveAccount(ctx context.Context, in AccountInput) (*ModelAccount, error) {
	in.Name = shared.CollapseSpaces(in.Name)
	in.Expression = strings.TrimSpace(in.Expression)

	if in.Name == "" {
		return nil, appErrors.NewValidationError("name", "é obrigatório")
	}
	if !in.Kind.IsValid() {
		return nil, appErrors.NewValidationError("kind", "deve ser simples, composta, formula, indicador ou soma_indicadores")
	}
	if in.Symbol == "" {
		in.Symbol = SymbolPlus
	}
	if !in.Symbol.IsValid() {
		return nil, appErrors.NewValidationError("symbol", "deve ser +, - ou =")
	}
	if in.Kind == KindFormula && in.Expression == "" {
		return nil, appErrors.NewValidationError("expression", "é obrigatória para contas do tipo formula")
	}
	if in.Kind != KindFormula {
		in.Expression = ""
	}
	if in.DefaultOrder < 0 {
		return nil, appErrors.NewValidationError("order", "não pode ser negativa")
	}

	now := pkg.SetTimestamps()
	if in.Id != nil {
		account, err := s.Repository.GetAccount(ctx, *in.Id)
		if err != nil {
			return nil, err
		}
		account.Name = in.Name
		account.Kind = in.Kind
		account.Symbol = in.Symbol
		account.Expression = in.Expression
		account.DefaultOrder = in.DefaultOrder
		if in.Visible != nil {
			account.Visible = *in.Visible
		}
		account.UpdatedAt = now
		if err := s.Repository.UpdateAccount(ctx, account); err != nil {
			return nil, err
		}
		return account, nil
	}

	account := &ModelAccount{
		Id:           pkg.GenerateULIDObject(),
		Name:         in.Name,
		Kind:         in.Kind,
		Symbol:       in.Symbol,
		Expression:   in.Expression,
		DefaultOrder: in.DefaultOrder,
		Visible:      in.Visible == nil || *in.Visible,
		CreatedAt:    now,
		UpdatedAt:    now,
	}
	if err := s.Repository.CreateAccount(ctx, account); err != nil {
		return nil, err
	}
	return account, nil
}

func (s *Service) GetAccount(ctx context.Context, id ulid.ULID) (*ModelAccount, error) {
	return s.Repository.GetAccount(ctx, id)
}

// ListAccounts devolve as contas do modelo por ordem padrão.
func (s *Service) ListAccounts(ctx context.Context, visibleOnly bool) ([]*ModelAccount, error) {
	return s.Repository.ListAccounts(ctx, visibleOnly)
}

// DeleteAccount remove só a conta; componentes que a referenciam permanecem.
func (s *Service) DeleteAccount(ctx context.Context, id ulid.ULID) error {
	if _, err := s.Repository.GetAccount(ctx, id); err != nil {
		return err
	}
	return s.Repository.DeleteAccount(ctx, id)
}

type SecondaryInput struct {
	Id             *ulid.ULID
	ModelAccountId ulid.ULID
	Name           string
	Order          int
}

func (s *Service) SaveSecondary(ctx context.Context, in SecondaryInput) (*SecondaryAccount, error) {
	in.Name = shared.CollapseSpaces(in.Name)
	if in.Name == "" {
		return nil, appErrors.NewValidationError("name", "é obrigatório")
	}
	if _, err := s.Repository.GetAccount(ctx, in.ModelAccountId); err != nil {
		return nil, err
	}

	if in.Id != nil {
		secondary, err := s.Repository.GetSecondary(ctx, *in.Id)
		if err != nil {
			return nil, err
		}
		secondary.ModelAccountId = in.ModelAccountId
		secondary.Name = in.Name
		secondary.Order = in.Order
		if err := s.Repository.UpdateSecondary(ctx, secondary); err != nil {
			return nil, err
		}
		return secondary, nil
	}

	secondary := &SecondaryAccount{
		Id:             pkg.GenerateULIDObject(),
		ModelAccountId: in.ModelAccountId,
		Name:           in.Name,
		Order:          in.Order,
	}
	if err := s.Repository.CreateSecondary(ctx, secondary); err != nil {
		return nil, err
	}
	return secondary, nil
}

func (s *Service) ListSecondaries(ctx context.Context, modelAccountID ulid.ULID) ([]*SecondaryAccount, error) {
	return s.Repository.ListSecondaries(ctx, &modelAccountID)
}

func (s *Service) DeleteSecondary(ctx context.Context, id ulid.ULID) error {
	if _, err := s.Repository.GetSecondary(ctx, id); err != nil {
		return err
	}
	return s.Repository.DeleteSecondary(ctx, id)
}

type ComponentInput struct {
	Id            *ulid.ULID
	Owner         Owner
	ReferenceType ReferenceType
	ReferenceId   ulid.ULID
	Weight        *decimal.Decimal
	Order         int
	DisplayName   string
}

func (s *Service) SaveComponent(ctx context.Context, in ComponentInput) (*Component, error) {
	if err := s.validateComponent(ctx, &in); err != nil {
		return nil, err
	}

	if in.Id != nil {
		component, err := s.Repository.GetComponent(ctx, *in.Id)
		if err != nil {
			return nil, err
		}
		fillComponent(component, &in)
		if err := s.Repository.UpdateComponent(ctx, component); err != nil {
			return nil, err
		}
		return component, nil
	}

	component := &Component{Id: pkg.GenerateULIDObject()}
	fillComponent(component, &in)
	if err := s.Repository.CreateComponent(ctx, component); err != nil {
		return nil, err
	}
	return component, nil
}

func fillComponent(c *Component, in *ComponentInput) {
	c.ModelAccountId = in.Owner.ModelAccountId
	c.SecondaryAccountId = in.Owner.SecondaryAccountId
	c.ReferenceType = in.ReferenceType
	c.ReferenceId = in.ReferenceId
	c.Weight = *in.Weight
	c.Order = in.Order
	c.DisplayName = strings.TrimSpace(in.DisplayName)
}

func (s *Service) validateComponent(ctx context.Context, in *ComponentInput) error {
	if !in.Owner.Valid() {
		return appErrors.NewValidationError("owner", "informe a conta do modelo ou a conta secundária, nunca ambas")
	}
	if !in.ReferenceType.IsValid() {
		return appErrors.NewValidationError("reference_type", "deve ser categoria, indicador ou conta")
	}
	if pkg.IsEmptyULID(in.ReferenceId) {
		return appErrors.NewValidationError("reference_id", "é obrigatória")
	}
	if in.Weight == nil {
		one := decimal.NewFromInt(1)
		in.Weight = &one
	}
	if in.Weight.IsZero() {
		return appErrors.NewValidationError("weight", "não pode ser zero")
	}

	if in.Owner.ModelAccountId != nil {
		if _, err := s.Repository.GetAccount(ctx, *in.Owner.ModelAccountId); err != nil {
			return err
		}
		if in.ReferenceType == ReferenceAccount && in.ReferenceId == *in.Owner.ModelAccountId {
			return appErrors.NewValidationError("reference_id", "não pode referenciar a própria conta")
		}
	} else if _, err := s.Repository.GetSecondary(ctx, *in.Owner.SecondaryAccountId); err != nil {
		return err
	}

	exists, err := s.References.ReferenceExists(ctx, in.ReferenceType, in.ReferenceId)
	if err != nil {
		return err
	}
	if !exists {
		return appErrors.NewValidationError("reference_id", "não encontrada para o tipo "+string(in.ReferenceType))
	}
	return nil
}

// ListComponents devolve os componentes do dono por ordem.
func (s *Service) ListComponents(ctx context.Context, owner Owner) ([]*Component, error) {
	if !owner.Valid() {
		return nil, appErrors.NewValidationError("owner", "informe a conta do modelo ou a conta secundária")
	}
	return s.Repository.ListComponents(ctx, owner)
}

func (s *Service) GetComponent(ctx context.Context, id ulid.ULID) (*Component, error) {
	return s.Repository.GetComponent(ctx, id)
}

func (s *Service) DeleteComponent(ctx context.Context, id ulid.ULID) error {
	if _, err := s.Repository.GetComponent(ctx, id); err != nil {
		return err
	}
	return s.Repository.DeleteComponent(ctx, id)
}

// Structure monta conta -> secundária -> componente com três leituras.
func (s *Service) Structure(ctx context.Context, visibleOnly bool) ([]*StructureNode, error) {
	accounts, err := s.Repository.ListAccounts(ctx, visibleOnly)
	if err != nil {
		return nil, err
	}
	secondaries, err := s.Repository.ListSecondaries(ctx, nil)
	if err != nil {
		return nil, err
	}
	components, err := s.Repository.ListComponents(ctx, Owner{})
	if err != nil {
		return nil, err
	}
	return BuildStructure(accounts, secondaries, components), nil
}

// BuildStructure agrupa secundárias e componentes sob suas contas, mantendo a ordem.
func BuildStructure(accounts []*ModelAccount, secondaries []*SecondaryAccount, components []*Component) []*StructureNode {
	byAccount := make(map[ulid.ULID][]*Component)
	bySecondary := make(map[ulid.ULID][]*Component)
	for _, c := range components {
		switch {
		case c.ModelAccountId != nil:
			byAccount[*c.ModelAccountId] = append(byAccount[*c.ModelAccountId], c)
		case c.SecondaryAccountId != nil:
			bySecondary[*c.SecondaryAccountId] = append(bySecondary[*c.SecondaryAccountId], c)
		}
	}

	secondariesByAccount := make(map[ulid.ULID][]*SecondaryAccount)
	for _, sa := range secondaries {
		secondariesByAccount[sa.ModelAccountId] = append(secondariesByAccount[sa.ModelAccountId], sa)
	}

	nodes := make([]*StructureNode, 0, len(accounts))
	for _, a := range accounts {
		node := &StructureNode{
			Account:     a,
			Components:  sortedComponents(byAccount[a.Id]),
			Secondaries: []*SecondaryNode{},
		}
		list := secondariesByAccount[a.Id]
		sort.SliceStable(list, func(i, j int) bool { return list[i].Order < list[j].Order })
		for _, sa := range list {
			node.Secondaries = append(node.Secondaries, &SecondaryNode{
				Account:    sa,
				Components: sortedComponents(bySecondary[sa.Id]),
			})
		}
		nodes = append(nodes, node)
	}

	sort.SliceStable(nodes, func(i, j int) bool {
		return nodes[i].Account.DefaultOrder < nodes[j].Account.DefaultOrder
	})
	return nodes
}

func sortedComponents(list []*Component) []*Component {
	if list == nil {
		return []*Component{}
	}
	sort.SliceStable(list, func(i, j int) bool { return list[i].Order < list[j].Order })
	return list
}
