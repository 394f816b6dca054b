package user

import (
	"context"
	"regexp"
	"strings"

	"Demonstra/internal/domain/shared"
	appErrors "Demonstra/internal/errors"
	"Demonstra/internal/pkg"

	"github.com/oklog/ulid/v2"
	"golang.org/x/crypto/bcrypt"
)

const bcryptCost = 12

type Service struct {
	Repository Repository
	shared.BaseService
}

func NewService(repo Repository, companyChecker *shared.CompanyCheckerService) *Service {
	return &Service{
		Repository: repo,
		BaseService: shared.BaseService{
			CompanyChecker: companyChecker,
		},
	}
}

type CreateUserInput struct {
	Name                  string
	Email                 string
	Password              string
	Role                  Role
	CompanyId             *ulid.ULID
	HasAllCompaniesAccess bool
}

func (s *Service) Create(ctx context.Context, input CreateUserInput) (*User, error) {
	input.Name = shared.CollapseSpaces(input.Name)
	input.Email = strings.ToLower(strings.TrimSpace(input.Email))

	if input.Name == "" {
		return nil, appErrors.NewValidationError("name", "é obrigatório")
	}
	if input.Email == "" {
		return nil, appErrors.NewValidationError("email", "é obrigatório")
	}
	if input.Role == "" {
		input.Role = RoleUser
	}
	if !input.Role.IsValid() {
		return nil, appErrors.NewValidationError("role", "deve ser admin ou user")
	}
	if !input.HasAllCompaniesAccess && input.CompanyId == nil {
		return nil, appErrors.NewValidationError("company_id", "é obrigatório para usuários sem acesso a todas as empresas")
	}
	if err := validatePasswordRequirements(input.Password); err != nil {
		return nil, err
	}

	if input.CompanyId != nil {
		if err := s.EnsureCompanyExists(ctx, *input.CompanyId); err != nil {
			return nil, err
		}
	}

	if _, err := s.Repository.GetByEmail(ctx, input.Email); err == nil {
		return nil, appErrors.ErrEmailAlreadyExists
	} else if !appErrors.HasCode(err, appErrors.ErrUserNotFound.Code) {
		return nil, err
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(input.Password), bcryptCost)
	if err != nil {
		return nil, appErrors.ErrInternalServer.WithError(err)
	}

	now := pkg.SetTimestamps()
	entity := &User{
		Id:                    pkg.GenerateULIDObject(),
		Name:                  input.Name,
		Email:                 input.Email,
		Password:              string(hashed),
		Role:                  input.Role,
		CompanyId:             input.CompanyId,
		HasAllCompaniesAccess: input.HasAllCompaniesAccess,
		IsActive:              true,
		CreatedAt:             now,
		UpdatedAt:             now,
	}

	if err := s.Repository.Create(ctx, entity); err != nil {
		if shared.IsUniqueConstraintError(err) {
			return nil, appErrors.ErrEmailAlreadyExists
		}
		return nil, err
	}
	return entity, nil
}

func (s *Service) GetByID(ctx context.Context, id ulid.ULID) (*User, error) {
	return s.Repository.GetByID(ctx, id)
}

func (s *Service) GetByEmail(ctx context.Context, email string) (*User, error) {
	return s.Repository.GetByEmail(ctx, strings.ToLower(strings.TrimSpace(email)))
}

func (s *Service) List(ctx context.Context) ([]*User, error) {
	return s.Repository.List(ctx)
}

func (s *Service) SetActive(ctx context.Context, id ulid.ULID, active bool) (*User, error) {
	entity, err := s.Repository.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	entity.IsActive = active
	entity.UpdatedAt = pkg.SetTimestamps()
	if err := s.Repository.Update(ctx, entity); err != nil {
		return nil, err
	}
	return entity, nil
}

// ScopeOf carrega o usuário e monta o escopo; usuários inativos não recebem escopo.
func (s *Service) ScopeOf(ctx context.Context, id ulid.ULID) (Scope, error) {
	entity, err := s.Repository.GetByID(ctx, id)
	if err != nil {
		return Scope{}, err
	}
	if !entity.IsActive {
		return Scope{}, appErrors.ErrUserInactive
	}
	return ScopeFor(entity), nil
}

var (
	upperPattern   = regexp.MustCompile(`[A-Z]`)
	specialPattern = regexp.MustCompile(`[@$!%*?&]`)
)

func validatePasswordRequirements(password string) error {
	if len(password) < 8 {
		return appErrors.NewValidationError("password", "deve conter no mínimo 8 caracteres")
	}
	if !upperPattern.MatchString(password) {
		return appErrors.NewValidationError("password", "deve conter ao menos uma letra maiúscula")
	}
	if !specialPattern.MatchString(password) {
		return appErrors.NewValidationError("password", "deve conter ao menos um caractere especial (@$!%*?&)")
	}
	return nil
}
