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
	"Demonstra/internal/domain/user"
	"Demonstra/internal/middleware"
	"Demonstra/internal/routes"

	"go.uber.org/fx"
)

// RoutesModule fornece o handler HTTP
var RoutesModule = fx.Module("routes",
	fx.Provide(
		newHandler,
	),
)

func newHandler(
	userSvc *user.Service,
	jwtSvc *middleware.JwtService,
	authSvc *auth.Service,
	companySvc *company.Service,
	categorySvc *category.Service,
	indicatorSvc *indicator.Service,
	accountSvc *dreconfig.Service,
	modelSvc *dremodel.Service,
	companyConfigSvc *companyconfig.Service,
	rawDataSvc *rawdata.Service,
	reportSvc *dre.Service,
) *routes.Handler {
	return &routes.Handler{
		UserService:          userSvc,
		JwtService:           jwtSvc,
		AuthService:          authSvc,
		CompanyService:       companySvc,
		CategoryService:      categorySvc,
		IndicatorService:     indicatorSvc,
		AccountService:       accountSvc,
		ModelService:         modelSvc,
		CompanyConfigService: companyConfigSvc,
		RawDataService:       rawDataSvc,
		ReportService:        reportSvc,
	}
}
