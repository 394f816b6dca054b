package cli

import (
	"Demonstra/config"
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

	"gorm.io/gorm"
)

// services monta à mão o mesmo grafo que o fx monta para a API.
type services struct {
	db            *gorm.DB
	companies     *company.Service
	users         *user.Service
	auth          *auth.Service
	categories    *category.Service
	indicators    *indicator.Service
	accounts      *dreconfig.Service
	model         *dremodel.Service
	companyConfig *companyconfig.Service
	rawData       *rawdata.Service
	reports       *dre.Service
}

func newServices(db *gorm.DB) *services {
	companyRepo := &infrastructure.CompanyRepository{DB: db}
	userRepo := &infrastructure.UserRepository{DB: db}
	categoryRepo := &infrastructure.CategoryRepository{DB: db}
	indicatorRepo := &infrastructure.IndicatorRepository{DB: db}
	modelRepo := &infrastructure.DreModelRepository{DB: db}
	rawRepo := &infrastructure.RawDataRepository{DB: db}

	companies := company.NewService(companyRepo)
	checker := shared.NewCompanyCheckerService(companies)
	categories := category.NewService(categoryRepo)
	indicators := indicator.NewService(indicatorRepo, categoryRepo, checker)
	model := dremodel.NewService(modelRepo, modelRepo)

	return &services{
		db:            db,
		companies:     companies,
		users:         user.NewService(userRepo, checker),
		auth:          auth.NewService(userRepo),
		categories:    categories,
		indicators:    indicators,
		accounts:      dreconfig.NewService(&infrastructure.DreConfigRepository{DB: db}, categories, indicators, checker),
		model:         model,
		companyConfig: companyconfig.NewService(&infrastructure.CompanyConfigRepository{DB: db}, model, checker),
		rawData:       rawdata.NewService(rawRepo, categories, indicators, checker),
		reports:       dre.NewService(rawRepo, model, checker),
	}
}

func openServices(cfg *config.Config) (*services, func(), error) {
	db, err := infrastructure.Open(cfg)
	if err != nil {
		return nil, nil, err
	}
	closeFn := func() {
		if sqlDB, err := db.DB(); err == nil {
			sqlDB.Close()
		}
	}
	return newServices(db), closeFn, nil
}
