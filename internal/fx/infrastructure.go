package fx

import (
	"context"

	"Demonstra/config"
	"Demonstra/internal/infrastructure"
	"Demonstra/internal/logger"

	"go.uber.org/fx"
	"gorm.io/gorm"
)

var InfrastructureModule = fx.Module("infrastructure",
	fx.Provide(
		newDatabase,
		newUserRepository,
		newCompanyRepository,
		newCategoryRepository,
		newIndicatorRepository,
		newDreConfigRepository,
		newDreModelRepository,
		newCompanyConfigRepository,
		newRawDataRepository,
	),
)

func newDatabase(lc fx.Lifecycle, cfg *config.Config) (*gorm.DB, error) {
	db, err := infrastructure.NewDb(cfg)
	if err != nil {
		return nil, err
	}

	lc.Append(fx.Hook{
		OnStop: func(ctx context.Context) error {
			sqlDB, err := db.DB()
			if err != nil {
				return err
			}
			logger.Info().Msg("Fechando conexões com o banco")
			return sqlDB.Close()
		},
	})
	return db, nil
}

func newUserRepository(db *gorm.DB) *infrastructure.UserRepository {
	return &infrastructure.UserRepository{DB: db}
}

func newCompanyRepository(db *gorm.DB) *infrastructure.CompanyRepository {
	return &infrastructure.CompanyRepository{DB: db}
}

func newCategoryRepository(db *gorm.DB) *infrastructure.CategoryRepository {
	return &infrastructure.CategoryRepository{DB: db}
}

func newIndicatorRepository(db *gorm.DB) *infrastructure.IndicatorRepository {
	return &infrastructure.IndicatorRepository{DB: db}
}

func newDreConfigRepository(db *gorm.DB) *infrastructure.DreConfigRepository {
	return &infrastructure.DreConfigRepository{DB: db}
}

func newDreModelRepository(db *gorm.DB) *infrastructure.DreModelRepository {
	return &infrastructure.DreModelRepository{DB: db}
}

func newCompanyConfigRepository(db *gorm.DB) *infrastructure.CompanyConfigRepository {
	return &infrastructure.CompanyConfigRepository{DB: db}
}

func newRawDataRepository(db *gorm.DB) *infrastructure.RawDataRepository {
	return &infrastructure.RawDataRepository{DB: db}
}
