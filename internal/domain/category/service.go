package category

import (
	"context"
	"fmt"

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

type CategoryInput struct {
	Code string
	Name string
	Type Type
}

func (in *CategoryInput) normalize() error {
	in.Code = shared.NormalizeCode(in.Code)
	in.Name = shared.CollapseSpaces(in.Name)
	if in.Code == "" {
		return appErrors.NewValidationError("code", "é obrigatório")
	}
	if in.Name == "" {
		return appErrors.NewValidationError("name", "é obrigatório")
	}
	if !in.Type.IsValid() {
		return appErrors.NewValidationError("type", "deve ser revenue ou expense")
	}
	return nil
}

func (s *Service) Create(ctx context.Context, input CategoryInput) (*Category, error) {
	if err := input.normalize(); err != nil {
		return nil, err
	}

	now := pkg.SetTimestamps()
	entity := &Category{
		Id:        pkg.GenerateULIDObject(),
		Code:      input.Code,
		Name:      input.Name,
		Type:      input.Type,
		CreatedAt: now,
		UpdatedAt: now,
	}

	if err := s.Repository.Create(ctx, entity); err != nil {
		if shared.IsUniqueConstraintError(err) {
			return nil, appErrors.NewConflictError("categoria")
		}
		return nil, err
	}
	return entity, nil
}

func (s *Service) Update(ctx context.Context, id ulid.ULID, input CategoryInput) (*Category, error) {
	if err := input.normalize(); err != nil {
		return nil, err
	}

	entity, err := s.Repository.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	entity.Code = input.Code
	entity.Name = input.Name
	entity.Type = input.Type
	entity.UpdatedAt = pkg.SetTimestamps()

	if err := s.Repository.Update(ctx, entity); err != nil {
		if shared.IsUniqueConstraintError(err) {
			return nil, appErrors.NewConflictError("categoria")
		}
		return nil, err
	}
	return entity, nil
}

func (s *Service) Delete(ctx context.Context, id ulid.ULID) error {
	if _, err := s.Repository.GetByID(ctx, id); err != nil {
		return err
	}
	return s.Repository.Delete(ctx, id)
}

func (s *Service) GetByID(ctx context.Context, id ulid.ULID) (*Category, error) {
	return s.Repository.GetByID(ctx, id)
}

func (s *Service) GetByCode(ctx context.Context, code string) (*Category, error) {
	return s.Repository.GetByCode(ctx, shared.NormalizeCode(code))
}

// List devolve as categorias ordenadas por código; typ vazio traz todas.
func (s *Service) List(ctx context.Context, typ Type) ([]*Category, error) {
	if typ != "" && !typ.IsValid() {
		return nil, appErrors.NewValidationError("type", "deve ser revenue ou expense")
	}
	return s.Repository.List(ctx, typ)
}

// EnsureTyped confirma que todos os ids existem e são do tipo informado.
func (s *Service) EnsureTyped(ctx context.Context, ids []ulid.ULID, typ Type) error {
	if len(ids) == 0 {
		return nil
	}

	found, err := s.Repository.GetByIDs(ctx, ids)
	if err != nil {
		return err
	}

	byID := make(map[ulid.ULID]*Category, len(found))
	for _, c := range found {
		byID[c.Id] = c
	}

	for _, id := range ids {
		c, ok := byID[id]
		if !ok {
			return appErrors.ErrCategoryNotFound.WithDetails(map[string]interface{}{"id": id.String()})
		}
		if c.Type != typ {
			return appErrors.NewValidationError("category_ids",
				fmt.Sprintf("contém a categoria %s que não é do tipo %s", c.Code, typ))
		}
	}
	return nil
}
