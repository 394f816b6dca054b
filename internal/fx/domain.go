package fx

import (
	"Demonstra/internal/domain/auth"
	"Demonstra/internal/domain/category"
	"Demonstra/internal/domain/company"
	"Demonstra/internal/domain/companyconfig"
	"Demonstra/internal/domain/dre"
	"Demonstra/internal/domain/dreconfig"
	"Demonstra/internal/domain/dremodel"
	"Demonstra/internal/domain/indicator"
	"Demonstra/internal/domain/rawdata"
	"Demonstra/internal/domain/shared"
	"Demonstra/internal/domain/user"
	"Demonstra/internal/infrastructure"

	"go.uber.org/fx"
)

// DomainModule fornece todos os services do domínio
var DomainModule = fx.Module("domain",
	fx.Provide(
		newCompanyService,
		newCompanyCheckerService,
		newUserService,
		newAuthService,
		newCategoryService,
		newIndicatorService,
		newDreConfigService,
		newDreModelService,
		newCompanyConfigService,
		newRawDataService,
		newReportService,
	),
)

func newCompanyService(repo *infrastructure.CompanyRepository) *company.Service {
	return company.NewService(repo)
}

func newCompanyCheckerService(companySvc *company.Service) *shared.CompanyCheckerService {
	return shared.NewCompanyCheckerService(companySvc)
}

func newUserService(
	repo *infrastructure.UserRepository,
	companyChecker *shared.CompanyCheckerService,
) *user.Service {
	return user.NewService(repo, companyChecker)
}

func newAuthService(repo *infrastructure.UserRepository) *auth.Service {
	return auth.NewService(repo)
}

func newCategoryService(repo *infrastructure.CategoryRepository) *category.Service {
	return category.NewService(repo)
}

func newIndicatorService(
	repo *infrastructure.IndicatorRepository,
	categories *infrastructure.CategoryRepository,
	companyChecker *shared.CompanyCheckerService,
) *indicator.Service {
	return indicator.NewService(repo, categories, companyChecker)
}

func newDreConfigService(
	repo *infrastructure.DreConfigRepository,
	categorySvc *category.Service,
	indicatorSvc *indicator.Service,
	companyChecker *shared.CompanyCheckerService,
) *dreconfig.Service {
	return dreconfig.NewService(repo, categorySvc, indicatorSvc, companyChecker)
}

func newDreModelService(repo *infrastructure.DreModelRepository) *dremodel.Service {
	return dremodel.NewService(repo, repo)
}

func newCompanyConfigService(
	repo *infrastructure.CompanyConfigRepository,
	modelSvc *dremodel.Service,
	companyChecker *shared.CompanyCheckerService,
) *companyconfig.Service {
	return companyconfig.NewService(repo, modelSvc, companyChecker)
}

func newRawDataService(
	repo *infrastructure.RawDataRepository,
	categorySvc *category.Service,
	indicatorSvc *indicator.Service,
	companyChecker *shared.CompanyCheckerService,
) *rawdata.Service {
	return rawdata.NewService(repo, categorySvc, indicatorSvc, companyChecker)
}

func newReportService(
	repo *infrastructure.RawDataRepository,
	modelSvc *dremodel.Service,
	companyChecker *shared.CompanyCheckerService,
) *dre.Service {
	return dre.NewService(repo, modelSvc, companyChecker)
}
