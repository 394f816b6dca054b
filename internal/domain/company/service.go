package company

import (
	"context"
	"strings"

	"Demonstra/internal/domain/shared"
	appErrors "Demonstra/internal/errors"
	"Demonstra/internal/pkg"

	"github.com/oklog/ulid/v2"
)

type Service struct {
	Repository Repository
}

func NewService(repo Repository) *Service {
	return &Service{Repository: repo}
}

type CreateCompanyInput struct {
	Name        string
	TradingName string
}

type UpdateCompanyInput struct {
	Name        *string
	TradingName *string
}

func (s *Service) Create(ctx context.Context, input CreateCompanyInput) (*Company, error) {
	name := shared.CollapseSpaces(input.Name)
	if name == "" {
		return nil, appErrors.NewValidationError("name", "é obrigatório")
	}

	now := pkg.SetTimestamps()
	entity := &Company{
		Id:          pkg.GenerateULIDObject(),
		Name:        name,
		TradingName: strings.TrimSpace(input.TradingName),
		IsActive:    true,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	if entity.TradingName == "" {
		entity.TradingName = name
	}

	if err := s.Repository.Create(ctx, entity); err != nil {
		return nil, err
	}
	return entity, nil
}

func (s *Service) Update(ctx context.Context, id ulid.ULID, input UpdateCompanyInput) (*Company, error) {
	entity, err := s.Repository.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if input.Name != nil {
		name := shared.CollapseSpaces(*input.Name)
		if name == "" {
			return nil, appErrors.NewValidationError("name", "não pode estar vazio")
		}
		entity.Name = name
	}
	if input.TradingName != nil {
		entity.TradingName = strings.TrimSpace(*input.TradingName)
	}
	entity.UpdatedAt = pkg.SetTimestamps()

	if err := s.Repository.Update(ctx, entity); err != nil {
		return nil, err
	}
	return entity, nil
}

func (s *Service) ToggleActive(ctx context.Context, id ulid.ULID) (*Company, error) {
	entity, err := s.Repository.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	entity.IsActive = !entity.IsActive
	entity.UpdatedAt = pkg.SetTimestamps()

	if err := s.Repository.Update(ctx, entity); err != nil {
		return nil, err
	}
	return entity, nil
}

func (s *Service) GetByID(ctx context.Context, id ulid.ULID) (*Company, error) {
	return s.Repository.GetByID(ctx, id)
}

// List devolve as empresas ordenadas por nome fantasia.
func (s *Service) List(ctx context.Context, activeOnly bool) ([]*Company, error) {
	return s.Repository.List(ctx, activeOnly)
}

// Exists satisfaz shared.CompanyChecker.
func (s *Service) Exists(ctx context.Context, id ulid.ULID) error {
	_, err := s.Repository.GetByID(ctx, id)
	return err
}
