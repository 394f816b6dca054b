package dreconfig

import (
	"context"
	"fmt"
	"strings"

	"Demonstra/internal/domain/category"
	"Demonstra/internal/domain/indicator"
	"Demonstra/internal/domain/shared"
	appErrors "Demonstra/internal/errors"
	"Demonstra/internal/logger"
	"Demonstra/internal/pkg"

	"github.com/oklog/ulid/v2"
)

type CategoryValidator interface {
	EnsureTyped(ctx context.Context, ids []ulid.ULID, typ category.Type) error
}

type IndicatorGetter interface {
	GetByID(ctx context.Context, id ulid.ULID) (*indicator.Indicator, error)
}

// CompanyAccess informa se o chamador alcança a empresa; user.Scope satisfaz.
type CompanyAccess interface {
	CanAccess(companyID ulid.ULID) bool
}

type Service struct {
	Repository Repository
	Categories CategoryValidator
	Indicators IndicatorGetter
	shared.BaseService
}

func NewService(
	repo Repository,
	categories CategoryValidator,
	indicators IndicatorGetter,
	companyChecker *shared.CompanyCheckerService,
) *Service {
	return &Service{
		Repository: repo,
		Categories: categories,
		Indicators: indicators,
		BaseService: shared.BaseService{
			CompanyChecker: companyChecker,
		},
	}
}

type SaveInput struct {
	Id               *ulid.ULID
	CompanyId        *ulid.ULID
	Name             string
	FormType         FormType
	CategoryType     category.Type
	CategoryIds      []ulid.ULID
	IndicatorId      *ulid.ULID
	SelectedAccounts []ulid.ULID
	Sign             Sign
	ParentAccountId  *ulid.ULID
	ComponentId      *ulid.ULID
	CustomName       string
}

func (in *SaveInput) rename() *ComponentRename {
	if in.ComponentId == nil || strings.TrimSpace(in.CustomName) == "" {
		return nil
	}
	return &ComponentRename{ComponentId: *in.ComponentId, DisplayName: strings.TrimSpace(in.CustomName)}
}

// Save cria ou atualiza uma conta conforme as regras do tipo escolhido no formulário.
func (s *Service) Save(ctx context.Context, access CompanyAccess, in SaveInput) (*Account, error) {
	in.Name = shared.CollapseSpaces(in.Name)
	if in.Name == "" {
		return nil, appErrors.NewValidationError("name", "é obrigatório")
	}
	if !in.FormType.IsValid() {
		return nil, appErrors.NewValidationError("type", "deve ser category, calculated, total ou flex")
	}

	var existing *Account
	if in.Id != nil {
		acc, err := s.Repository.GetByID(ctx, *in.Id)
		if err != nil {
			return nil, err
		}
		if err := s.ensureAccess(ctx, access, acc.Id); err != nil {
			return nil, err
		}
		existing = acc
	} else if in.CompanyId == nil {
		return nil, appErrors.ErrCompanyRequired
	} else if !access.CanAccess(*in.CompanyId) {
		return nil, outOfScope(*in.CompanyId)
	}

	if err := s.validateReferences(ctx, &in); err != nil {
		return nil, err
	}
	if err := s.validateParent(ctx, in.Id, in.ParentAccountId); err != nil {
		return nil, err
	}

	account := existing
	now := pkg.SetTimestamps()
	if account == nil {
		account = &Account{
			Id:        pkg.GenerateULIDObject(),
			IsActive:  true,
			CreatedAt: now,
		}
	}
	account.Name = in.Name
	account.Type = accountTypeFor(in.FormType, in.CategoryType)
	account.ParentAccountId = in.ParentAccountId
	account.UpdatedAt = now
	applyReferences(account, &in)

	if existing != nil {
		if err := s.Repository.Update(ctx, account, in.rename()); err != nil {
			return nil, err
		}
		return account, nil
	}

	if err := s.EnsureCompanyExists(ctx, *in.CompanyId); err != nil {
		return nil, err
	}
	count, err := s.Repository.CountByCompany(ctx, *in.CompanyId)
	if err != nil {
		return nil, err
	}
	account.DisplayOrder = int(count)

	if err := s.Repository.Create(ctx, account, *in.CompanyId, in.rename()); err != nil {
		return nil, err
	}

	logger.Info().
		Str("account_id", account.Id.String()).
		Str("company_id", in.CompanyId.String()).
		Str("type", string(account.Type)).
		Msg("conta DRE criada")
	return account, nil
}

// applyReferences mantém só as referências do tipo escolhido.
func applyReferences(a *Account, in *SaveInput) {
	a.CategoryIds = []ulid.ULID{}
	a.IndicatorId = nil
	a.SelectedAccounts = []ulid.ULID{}
	a.Sign = ""

	switch in.FormType {
	case FormCategory:
		a.CategoryIds = in.CategoryIds
	case FormCalculated:
		a.IndicatorId = in.IndicatorId
	case FormTotal:
		a.SelectedAccounts = in.SelectedAccounts
	case FormFlex:
		a.Sign = in.Sign
	}
}

func (s *Service) validateReferences(ctx context.Context, in *SaveInput) error {
	switch in.FormType {
	case FormCategory:
		if !in.CategoryType.IsValid() {
			return appErrors.NewValidationError("category_type", "deve ser revenue ou expense")
		}
		if len(in.CategoryIds) == 0 {
			return appErrors.NewValidationError("category_ids", "selecione ao menos uma categoria")
		}
		return s.Categories.EnsureTyped(ctx, in.CategoryIds, in.CategoryType)

	case FormCalculated:
		if in.IndicatorId == nil {
			return appErrors.NewValidationError("indicator_id", "é obrigatório para contas calculadas")
		}
		_, err := s.Indicators.GetByID(ctx, *in.IndicatorId)
		return err

	case FormTotal:
		if len(in.SelectedAccounts) == 0 {
			return appErrors.NewValidationError("selected_accounts", "selecione ao menos uma conta")
		}
		for _, id := range in.SelectedAccounts {
			if in.Id != nil && id == *in.Id {
				return appErrors.NewValidationError("selected_accounts", "não pode conter a própria conta")
			}
		}
		referenced, err := s.Repository.GetByIDs(ctx, in.SelectedAccounts)
		if err != nil {
			return err
		}
		found := make(map[ulid.ULID]*Account, len(referenced))
		for _, r := range referenced {
			found[r.Id] = r
		}
		for _, id := range in.SelectedAccounts {
			r, ok := found[id]
			if !ok {
				return appErrors.ErrAccountNotFound.WithDetails(map[string]interface{}{"id": id.String()})
			}
			if !r.Type.Referenceable() {
				return appErrors.NewValidationError("selected_accounts",
					fmt.Sprintf("não pode conter a conta %q do tipo %s", r.Name, r.Type))
			}
		}
		return nil

	case FormFlex:
		if in.Sign == "" {
			in.Sign = SignPositive
		}
		if !in.Sign.IsValid() {
			return appErrors.NewValidationError("sign", "deve ser positive ou negative")
		}
	}
	return nil
}

func (s *Service) validateParent(ctx context.Context, id, parent *ulid.ULID) error {
	if parent == nil {
		return nil
	}
	if _, err := s.Repository.GetByID(ctx, *parent); err != nil {
		if appErrors.HasCode(err, appErrors.ErrAccountNotFound.Code) {
			return appErrors.NewValidationError("parent_account_id", "não existe")
		}
		return err
	}
	if id == nil {
		return nil
	}

	all, err := s.Repository.ListAll(ctx)
	if err != nil {
		return err
	}
	if BuildTree(all).WouldCycle(*id, *parent) {
		return appErrors.NewValidationError("parent_account_id", "criaria um ciclo na hierarquia")
	}
	return nil
}

// ensureAccess exige que toda empresa vinculada às contas esteja no alcance do chamador.
// Contas sem vínculo não pertencem a nenhuma empresa e ficam liberadas.
func (s *Service) ensureAccess(ctx context.Context, access CompanyAccess, ids ...ulid.ULID) error {
	for _, id := range ids {
		companies, err := s.Repository.ListCompanyIDs(ctx, id)
		if err != nil {
			return err
		}
		for _, companyID := range companies {
			if !access.CanAccess(companyID) {
				return appErrors.ErrCompanyOutOfScope.WithDetails(map[string]interface{}{
					"company_id": companyID.String(),
					"account_id": id.String(),
				})
			}
		}
	}
	return nil
}

func outOfScope(companyID ulid.ULID) *appErrors.AppError {
	return appErrors.ErrCompanyOutOfScope.WithDetails(map[string]interface{}{
		"company_id": companyID.String(),
	})
}

func (s *Service) GetByID(ctx context.Context, id ulid.ULID) (*Account, error) {
	return s.Repository.GetByID(ctx, id)
}

// ListByCompany devolve as contas vinculadas à empresa, por ordem de exibição.
func (s *Service) ListByCompany(ctx context.Context, companyID ulid.ULID) ([]*Account, error) {
	return s.Repository.ListByCompany(ctx, companyID)
}

func (s *Service) TreeForCompany(ctx context.Context, companyID ulid.ULID) (*Tree, error) {
	accounts, err := s.Repository.ListByCompany(ctx, companyID)
	if err != nil {
		return nil, err
	}
	return BuildTree(accounts), nil
}

// Delete remove a conta e todas as descendentes; devolve os ids removidos.
func (s *Service) Delete(ctx context.Context, access CompanyAccess, id ulid.ULID) ([]ulid.ULID, error) {
	if _, err := s.Repository.GetByID(ctx, id); err != nil {
		return nil, err
	}

	all, err := s.Repository.ListAll(ctx)
	if err != nil {
		return nil, err
	}
	ids := append([]ulid.ULID{id}, BuildTree(all).Descendants(id)...)
	if err := s.ensureAccess(ctx, access, ids...); err != nil {
		return nil, err
	}

	if err := s.Repository.DeleteCascade(ctx, ids); err != nil {
		return nil, err
	}

	logger.Info().
		Str("account_id", id.String()).
		Int("removed", len(ids)).
		Msg("conta DRE removida com descendentes")
	return ids, nil
}

// Move troca a ordem com o irmão adjacente dentro da árvore da empresa.
func (s *Service) Move(ctx context.Context, companyID, id ulid.ULID, dir Direction) (bool, error) {
	if !dir.IsValid() {
		return false, appErrors.NewValidationError("direction", "deve ser up ou down")
	}

	tree, err := s.TreeForCompany(ctx, companyID)
	if err != nil {
		return false, err
	}
	if _, ok := tree.Get(id); !ok {
		return false, appErrors.ErrAccountNotFound
	}

	a, b, ok := SwapWithSibling(tree.Siblings(id), id, dir)
	if !ok {
		return false, nil
	}
	if err := s.Repository.SwapOrder(ctx, a, b); err != nil {
		return false, err
	}
	return true, nil
}

func (s *Service) ToggleActive(ctx context.Context, access CompanyAccess, id ulid.ULID) (*Account, error) {
	account, err := s.Repository.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := s.ensureAccess(ctx, access, id); err != nil {
		return nil, err
	}
	account.IsActive = !account.IsActive
	if err := s.Repository.SetActive(ctx, id, account.IsActive); err != nil {
		return nil, err
	}
	return account, nil
}

func (s *Service) ToggleCompany(ctx context.Context, accountID, companyID ulid.ULID) (bool, error) {
	if _, err := s.Repository.GetByID(ctx, accountID); err != nil {
		return false, err
	}
	if err := s.EnsureCompanyExists(ctx, companyID); err != nil {
		return false, err
	}
	return s.Repository.ToggleCompany(ctx, accountID, companyID)
}

func (s *Service) ListCompanies(ctx context.Context, accountID ulid.ULID) ([]ulid.ULID, error) {
	if _, err := s.Repository.GetByID(ctx, accountID); err != nil {
		return nil, err
	}
	return s.Repository.ListCompanyIDs(ctx, accountID)
}
