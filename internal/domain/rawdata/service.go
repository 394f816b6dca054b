package rawdata

import (
	"context"
	"fmt"
	"io"

	"Demonstra/internal/domain/shared"
	appErrors "Demonstra/internal/errors"
	"Demonstra/internal/logger"
	"Demonstra/internal/pkg"
	"Demonstra/internal/pkg/query"

	"github.com/oklog/ulid/v2"
	"github.com/shopspring/decimal"
)

const maxReportedLineErrors = 20

type Service struct {
	Repository Repository
	Categories CategoryFinder
	Indicators IndicatorFinder
	shared.BaseService
}

func NewService(repo Repository, categories CategoryFinder, indicators IndicatorFinder, companyChecker *shared.CompanyCheckerService) *Service {
	return &Service{
		Repository: repo,
		Categories: categories,
		Indicators: indicators,
		BaseService: shared.BaseService{
			CompanyChecker: companyChecker,
		},
	}
}

type CreateInput struct {
	CompanyId   ulid.ULID
	CategoryId  *ulid.ULID
	IndicatorId *ulid.ULID
	Value       decimal.Decimal
	Month       int
	Year        int
}

func (s *Service) List(ctx context.Context, filter Filter, page query.Page) (*query.Result[*RawData], error) {
	if err := s.EnsureCompanyExists(ctx, filter.CompanyId); err != nil {
		return nil, err
	}
	if filter.Month != 0 && !pkg.ValidMonth(filter.Month) {
		return nil, appErrors.NewValidationError("month", "deve estar entre 1 e 12")
	}
	return s.Repository.List(ctx, filter, page)
}

func (s *Service) Create(ctx context.Context, input CreateInput) (*RawData, error) {
	if (input.CategoryId == nil) == (input.IndicatorId == nil) {
		return nil, appErrors.NewValidationError("category_id", "ou indicador deve ser informado (apenas um)")
	}
	if !pkg.ValidMonth(input.Month) {
		return nil, appErrors.NewValidationError("month", "deve estar entre 1 e 12")
	}
	if input.Year < 1900 || input.Year > 2999 {
		return nil, appErrors.NewValidationError("year", "é inválido")
	}
	if err := s.EnsureCompanyExists(ctx, input.CompanyId); err != nil {
		return nil, err
	}

	if input.CategoryId != nil {
		if _, err := s.Categories.GetByID(ctx, *input.CategoryId); err != nil {
			return nil, err
		}
	} else if _, err := s.Indicators.GetByID(ctx, *input.IndicatorId); err != nil {
		return nil, err
	}

	row := &RawData{
		Id:          pkg.GenerateULIDObject(),
		CompanyId:   input.CompanyId,
		CategoryId:  input.CategoryId,
		IndicatorId: input.IndicatorId,
		Value:       input.Value.Round(2),
		Month:       input.Month,
		Year:        input.Year,
		CreatedAt:   pkg.SetTimestamps(),
	}
	if err := s.Repository.Create(ctx, row); err != nil {
		return nil, err
	}
	return row, nil
}

func (s *Service) Delete(ctx context.Context, companyID, id ulid.ULID) error {
	row, err := s.Repository.GetByID(ctx, id)
	if err != nil {
		return err
	}
	if row.CompanyId != companyID {
		return appErrors.ErrRawDataNotFound
	}
	return s.Repository.Delete(ctx, id)
}

// Import lê um CSV ou XLSX e grava todas as linhas numa transação.
// Qualquer linha inválida rejeita o arquivo inteiro.
func (s *Service) Import(ctx context.Context, companyID ulid.ULID, filename string, r io.Reader) (*ImportResult, error) {
	if err := s.EnsureCompanyExists(ctx, companyID); err != nil {
		return nil, err
	}

	format, err := FormatFromFilename(filename)
	if err != nil {
		return nil, appErrors.NewValidationError("file", err.Error())
	}

	parsed, problems, err := Parse(r, format)
	if err != nil {
		return nil, appErrors.NewValidationError("file", err.Error())
	}

	resolved := make(map[string]reference)
	now := pkg.SetTimestamps()
	rows := make([]*RawData, 0, len(parsed))

	for _, p := range parsed {
		ref, err := s.resolve(ctx, resolved, p.Code)
		if err != nil {
			if appErrors.HasCode(err, "DATABASE_ERROR") {
				return nil, err
			}
			problems = append(problems, LineError{Line: p.Line, Message: err.Error()})
			continue
		}
		rows = append(rows, &RawData{
			Id:          pkg.GenerateULIDObject(),
			CompanyId:   companyID,
			CategoryId:  ref.categoryID,
			IndicatorId: ref.indicatorID,
			Value:       p.Value,
			Month:       p.Month,
			Year:        p.Year,
			CreatedAt:   now,
		})
	}

	if len(problems) > 0 {
		return nil, lineErrors(problems)
	}
	if len(rows) == 0 {
		return nil, appErrors.NewValidationError("file", "não contém lançamentos")
	}

	if err := s.Repository.CreateBatch(ctx, rows); err != nil {
		return nil, err
	}

	logger.Info().
		Str("company_id", companyID.String()).
		Str("file", filename).
		Int("rows", len(rows)).
		Msg("dados brutos importados")

	return &ImportResult{Inserted: len(rows)}, nil
}

type reference struct {
	categoryID  *ulid.ULID
	indicatorID *ulid.ULID
}

// resolve procura o código primeiro entre as categorias e depois entre os indicadores.
func (s *Service) resolve(ctx context.Context, cache map[string]reference, code string) (reference, error) {
	code = shared.NormalizeCode(code)
	if ref, ok := cache[code]; ok {
		return ref, nil
	}

	cat, err := s.Categories.GetByCode(ctx, code)
	switch {
	case err == nil:
		id := cat.Id
		ref := reference{categoryID: &id}
		cache[code] = ref
		return ref, nil
	case !appErrors.HasCode(err, appErrors.ErrCategoryNotFound.Code):
		return reference{}, err
	}

	ind, err := s.Indicators.GetByCode(ctx, code)
	switch {
	case err == nil:
		id := ind.Id
		ref := reference{indicatorID: &id}
		cache[code] = ref
		return ref, nil
	case appErrors.HasCode(err, appErrors.ErrIndicatorNotFound.Code):
		return reference{}, fmt.Errorf("código %q não corresponde a categoria nem indicador", code)
	default:
		return reference{}, err
	}
}

func lineErrors(problems []LineError) error {
	messages := make([]string, 0, len(problems))
	for i, p := range problems {
		if i == maxReportedLineErrors {
			messages = append(messages, fmt.Sprintf("... e mais %d linha(s)", len(problems)-i))
			break
		}
		messages = append(messages, p.String())
	}
	return appErrors.NewValidationError("file", fmt.Sprintf("contém %d linha(s) inválida(s)", len(problems))).
		WithDetails(map[string]interface{}{
			"field": "file",
			"lines": messages,
		})
}
