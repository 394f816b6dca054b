package indicator

import (
	"context"

	"Demonstra/internal/domain/shared"
	appErrors "Demonstra/internal/errors"
	"Demonstra/internal/pkg"

	"github.com/oklog/ulid/v2"
)

type Service struct {
	Repository Repository
	Categories CategoryLookup
	shared.BaseService
}

func NewService(repo Repository, categories CategoryLookup, companyChecker *shared.CompanyCheckerService) *Service {
	return &Service{
		Repository: repo,
		Categories: categories,
		BaseService: shared.BaseService{
			CompanyChecker: companyChecker,
		},
	}
}

type IndicatorInput struct {
	Code             string
	Name             string
	Type             Type
	Operation        Operation
	CalculationBasis Basis
	SourceIds        []ulid.ULID
}

func (s *Service) validate(ctx context.Context, selfID *ulid.ULID, in *IndicatorInput) error {
	in.Code = shared.NormalizeCode(in.Code)
	in.Name = shared.CollapseSpaces(in.Name)

	if in.Code == "" {
		return appErrors.NewValidationError("code", "é obrigatório")
	}
	if in.Name == "" {
		return appErrors.NewValidationError("name", "é obrigatório")
	}
	if in.Type == "" {
		in.Type = TypeManual
	}
	if !in.Type.IsValid() {
		return appErrors.NewValidationError("type", "deve ser manual ou calculated")
	}

	if in.Type == TypeManual {
		in.Operation = ""
		in.CalculationBasis = ""
		in.SourceIds = nil
		return nil
	}

	if !in.Operation.IsValid() {
		return appErrors.NewValidationError("operation", "é obrigatória para indicadores calculados")
	}
	if !in.CalculationBasis.IsValid() {
		return appErrors.NewValidationError("calculation_basis", "é obrigatória para indicadores calculados")
	}
	return s.ensureSources(ctx, selfID, in)
}

func (s *Service) ensureSources(ctx context.Context, selfID *ulid.ULID, in *IndicatorInput) error {
	if len(in.SourceIds) == 0 {
		return nil
	}

	switch in.CalculationBasis {
	case BasisIndicator:
		for _, id := range in.SourceIds {
			if selfID != nil && id == *selfID {
				return appErrors.NewValidationError("source_ids", "não pode referenciar o próprio indicador")
			}
		}
		found, err := s.Repository.GetByIDs(ctx, in.SourceIds)
		if err != nil {
			return err
		}
		if len(found) != len(uniqueIDs(in.SourceIds)) {
			return appErrors.ErrIndicatorNotFound
		}
	case BasisCategory:
		if s.Categories == nil {
			return nil
		}
		n, err := s.Categories.CountByIDs(ctx, in.SourceIds)
		if err != nil {
			return err
		}
		if int(n) != len(uniqueIDs(in.SourceIds)) {
			return appErrors.ErrCategoryNotFound
		}
	}
	return nil
}

func uniqueIDs(ids []ulid.ULID) map[ulid.ULID]struct{} {
	out := make(map[ulid.ULID]struct{}, len(ids))
	for _, id := range ids {
		out[id] = struct{}{}
	}
	return out
}

func (s *Service) Create(ctx context.Context, input IndicatorInput) (*Indicator, error) {
	if err := s.validate(ctx, nil, &input); err != nil {
		return nil, err
	}

	now := pkg.SetTimestamps()
	entity := &Indicator{
		Id:               pkg.GenerateULIDObject(),
		Code:             input.Code,
		Name:             input.Name,
		Type:             input.Type,
		Operation:        input.Operation,
		CalculationBasis: input.CalculationBasis,
		SourceIds:        input.SourceIds,
		CreatedAt:        now,
		UpdatedAt:        now,
	}

	if err := s.Repository.Create(ctx, entity); err != nil {
		if shared.IsUniqueConstraintError(err) {
			return nil, appErrors.NewConflictError("indicador")
		}
		return nil, err
	}
	return entity, nil
}

func (s *Service) Update(ctx context.Context, id ulid.ULID, input IndicatorInput) (*Indicator, error) {
	entity, err := s.Repository.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := s.validate(ctx, &id, &input); err != nil {
		return nil, err
	}

	entity.Code = input.Code
	entity.Name = input.Name
	entity.Type = input.Type
	entity.Operation = input.Operation
	entity.CalculationBasis = input.CalculationBasis
	entity.SourceIds = input.SourceIds
	entity.UpdatedAt = pkg.SetTimestamps()

	if err := s.Repository.Update(ctx, entity); err != nil {
		if shared.IsUniqueConstraintError(err) {
			return nil, appErrors.NewConflictError("indicador")
		}
		return nil, err
	}
	return entity, nil
}

func (s *Service) GetByID(ctx context.Context, id ulid.ULID) (*Indicator, error) {
	return s.Repository.GetByID(ctx, id)
}

func (s *Service) GetByCode(ctx context.Context, code string) (*Indicator, error) {
	return s.Repository.GetByCode(ctx, shared.NormalizeCode(code))
}

// List aplica busca, tipo e empresa sobre o cadastro completo, ordenado por código.
func (s *Service) List(ctx context.Context, filter Filter) ([]*IndicatorWithCompanies, error) {
	if filter.Type == "all" {
		filter.Type = ""
	}
	if filter.Type != "" && !filter.Type.IsValid() {
		return nil, appErrors.NewValidationError("type", "deve ser all, manual ou calculated")
	}

	indicators, err := s.Repository.List(ctx)
	if err != nil {
		return nil, err
	}
	links, err := s.Repository.ListCompanyLinks(ctx)
	if err != nil {
		return nil, err
	}

	companiesByIndicator := make(map[ulid.ULID][]ulid.ULID, len(indicators))
	for _, l := range links {
		companiesByIndicator[l.IndicatorId] = append(companiesByIndicator[l.IndicatorId], l.CompanyId)
	}

	out := make([]*IndicatorWithCompanies, 0, len(indicators))
	for _, ind := range indicators {
		if filter.Type != "" && ind.Type != filter.Type {
			continue
		}
		if !Matches(ind, filter.Search) {
			continue
		}
		item := &IndicatorWithCompanies{
			Indicator:  ind,
			CompanyIds: companiesByIndicator[ind.Id],
		}
		if item.CompanyIds == nil {
			item.CompanyIds = []ulid.ULID{}
		}
		if filter.CompanyId != nil && !item.ActiveFor(*filter.CompanyId) {
			continue
		}
		out = append(out, item)
	}
	return out, nil
}

func (s *Service) ToggleCompany(ctx context.Context, indicatorID, companyID ulid.ULID) (bool, error) {
	if _, err := s.Repository.GetByID(ctx, indicatorID); err != nil {
		return false, err
	}
	if err := s.EnsureCompanyExists(ctx, companyID); err != nil {
		return false, err
	}
	return s.Repository.ToggleCompany(ctx, indicatorID, companyID)
}

func (s *Service) Delete(ctx context.Context, id ulid.ULID) error {
	if _, err := s.Repository.GetByID(ctx, id); err != nil {
		return err
	}
	return s.Repository.DeleteWithLinks(ctx, id)
}
