package shared

import (
	"context"

	appErrors "Demonstra/internal/errors"

	"github.com/oklog/ulid/v2"
)

type CompanyChecker interface {
	Exists(ctx context.Context, companyID ulid.ULID) error
}

type CompanyCheckerService struct {
	companies CompanyChecker
}

func NewCompanyCheckerService(companies CompanyChecker) *CompanyCheckerService {
	return &CompanyCheckerService{companies: companies}
}

func (s *CompanyCheckerService) EnsureCompanyExists(ctx context.Context, companyID ulid.ULID) error {
	if s == nil || s.companies == nil {
		return appErrors.ErrInternalServer
	}

	if err := s.companies.Exists(ctx, companyID); err != nil {
		if appErr, ok := appErrors.AsAppError(err); ok && appErr.Code == appErrors.ErrDatabase.Code {
			return appErr
		}
		return appErrors.ErrCompanyNotFound.WithError(err)
	}

	return nil
}

type BaseService struct {
	CompanyChecker *CompanyCheckerService
}

func (b *BaseService) EnsureCompanyExists(ctx context.Context, companyID ulid.ULID) error {
	if b.CompanyChecker == nil {
		return appErrors.ErrInternalServer
	}
	return b.CompanyChecker.EnsureCompanyExists(ctx, companyID)
}
