package dre

import (
	"context"

	"Demonstra/internal/domain/shared"
	appErrors "Demonstra/internal/errors"
	"Demonstra/internal/logger"
	"Demonstra/internal/pkg"

	"github.com/oklog/ulid/v2"
)

const TotalColumn = "Acumulado"

type Report struct {
	CompanyId ulid.ULID `json:"companyId"`
	Reference Period    `json:"reference"`
	Periods   []Period  `json:"periods"`
	Columns   []string  `json:"columns"`
	Lines     []Line    `json:"lines"`
}

type Service struct {
	Repository Repository
	Accounts   AccountLister
	shared.BaseService
}

func NewService(repo Repository, accounts AccountLister, companyChecker *shared.CompanyCheckerService) *Service {
	return &Service{
		Repository: repo,
		Accounts:   accounts,
		BaseService: shared.BaseService{
			CompanyChecker: companyChecker,
		},
	}
}

// Report calcula a DRE da empresa nos 12 meses terminados em month/year.
func (s *Service) Report(ctx context.Context, companyID ulid.ULID, month, year int) (*Report, error) {
	if !pkg.ValidMonth(month) {
		return nil, appErrors.NewValidationError("month", "deve estar entre 1 e 12")
	}
	if year < 1900 || year > 2999 {
		return nil, appErrors.NewValidationError("year", "é inválido")
	}
	if err := s.EnsureCompanyExists(ctx, companyID); err != nil {
		return nil, err
	}

	window := TrailingWindow(month, year)

	accounts, err := s.Accounts.ListAccounts(ctx, true)
	if err != nil {
		return nil, err
	}

	entries, err := s.Repository.ListEntries(ctx, companyID, window[0], window[len(window)-1])
	if err != nil {
		return nil, err
	}

	columns := make([]string, 0, len(window)+1)
	for _, p := range window {
		columns = append(columns, p.Label())
	}
	columns = append(columns, TotalColumn)

	logger.Debug().
		Str("company_id", companyID.String()).
		Int("accounts", len(accounts)).
		Int("entries", len(entries)).
		Msg("DRE calculada")

	return &Report{
		CompanyId: companyID,
		Reference: Period{Month: month, Year: year},
		Periods:   window,
		Columns:   columns,
		Lines:     Aggregate(accounts, entries, window),
	}, nil
}
