package auth

import (
	"context"
	"strings"

	"Demonstra/internal/domain/user"
	appErrors "Demonstra/internal/errors"

	"golang.org/x/crypto/bcrypt"
)

type Login struct {
	Email    string
	Password string
}

type Service struct {
	Repository user.Repository
}

func NewService(repo user.Repository) *Service {
	return &Service{Repository: repo}
}

// Login valida email e senha; usuário inexistente e senha errada produzem o mesmo erro.
func (s *Service) Login(ctx context.Context, login Login) (*user.User, error) {
	if strings.TrimSpace(login.Email) == "" {
		return nil, appErrors.NewValidationError("email", "deve ser informado")
	}

	entity, err := s.Repository.GetByEmail(ctx, strings.ToLower(strings.TrimSpace(login.Email)))
	if err != nil {
		if appErrors.HasCode(err, appErrors.ErrUserNotFound.Code) {
			return nil, appErrors.ErrInvalidCredentials
		}
		return nil, err
	}
	if err := PasswordValidate(login.Password, entity.Password); err != nil {
		return nil, err
	}
	if !entity.IsActive {
		return nil, appErrors.ErrUserInactive
	}
	return entity, nil
}

func PasswordValidate(inputPassword string, storedPassword string) error {
	if inputPassword == "" {
		return appErrors.NewValidationError("password", "deve ser informada")
	}
	if err := bcrypt.CompareHashAndPassword([]byte(storedPassword), []byte(inputPassword)); err != nil {
		return appErrors.ErrInvalidCredentials
	}
	return nil
}
