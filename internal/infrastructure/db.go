package infrastructure

import (
	"fmt"
	"time"

	"Demonstra/config"
	"Demonstra/internal/logger"

	"github.com/glebarez/sqlite"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"
)

func NewDb(cfg *config.Config) (*gorm.DB, error) {
	db, err := Open(cfg)
	if err != nil {
		return nil, err
	}

	if err := Migrate(db); err != nil {
		return nil, err
	}

	return db, nil
}

// Open conecta sem migrar; usado pelo CLI e pelos testes.
func Open(cfg *config.Config) (*gorm.DB, error) {
	var dialector gorm.Dialector
	switch cfg.Database.Driver {
	case config.DriverSQLite:
		dialector = sqlite.Open(cfg.Database.DSN)
	case config.DriverPostgres:
		dialector = postgres.Open(cfg.Database.DSN)
	default:
		return nil, fmt.Errorf("driver de banco não suportado: %q", cfg.Database.Driver)
	}

	gormCfg := &gorm.Config{Logger: newGormLogger(cfg)}

	db, err := gorm.Open(dialector, gormCfg)
	if err != nil {
		logger.Error().
			Err(err).
			Str("driver", cfg.Database.Driver).
			Str("host", cfg.Database.Host).
			Int("port", cfg.Database.Port).
			Str("database", cfg.Database.DBName).
			Msg("Falha ao conectar ao banco de dados")
		return nil, err
	}

	sqlDB, err := db.DB()
	if err != nil {
		logger.Error().Err(err).Msg("Falha ao obter instância do banco de dados")
		return nil, err
	}

	if cfg.Database.Driver == config.DriverSQLite {
		// sqlite serializa escritas; uma conexão evita "database is locked"
		sqlDB.SetMaxOpenConns(1)
	} else {
		sqlDB.SetMaxOpenConns(cfg.Database.MaxOpenConns)
		sqlDB.SetMaxIdleConns(cfg.Database.MaxIdleConns)
		sqlDB.SetConnMaxLifetime(cfg.Database.ConnMaxLifetime)
	}

	logger.Info().
		Str("driver", cfg.Database.Driver).
		Str("database", cfg.Database.DBName).
		Msg("Conexão com banco de dados estabelecida com sucesso")

	return db, nil
}

type migration struct {
	name  string
	model interface{}
}

var migrations = []migration{
	{"Company", &companyDB{}},
	{"SystemUser", &userDB{}},
	{"Category", &categoryDB{}},
	{"Indicator", &indicatorDB{}},
	{"CompanyIndicator", &companyIndicatorDB{}},
	{"ConfigAccount", &configAccountDB{}},
	{"AccountCompany", &accountCompanyDB{}},
	{"ModelAccount", &modelAccountDB{}},
	{"SecondaryAccount", &secondaryAccountDB{}},
	{"Component", &componentDB{}},
	{"CompanyAccount", &companyAccountDB{}},
	{"CompanyComponent", &companyComponentDB{}},
	{"RawData", &rawDataDB{}},
}

// gormWriter encaminha as mensagens do gorm para o logger da aplicação.
type gormWriter struct{}

func (gormWriter) Printf(format string, args ...interface{}) {
	logger.Warn().Str("component", "gorm").Msgf(format, args...)
}

// newGormLogger ignora record-not-found: buscas sem resultado são fluxo normal (login, importação).
func newGormLogger(cfg *config.Config) gormlogger.Interface {
	level := gormlogger.Warn
	if cfg.IsProduction() {
		level = gormlogger.Error
	}
	return gormlogger.New(gormWriter{}, gormlogger.Config{
		SlowThreshold:             200 * time.Millisecond,
		LogLevel:                  level,
		IgnoreRecordNotFoundError: true,
		Colorful:                  false,
	})
}

func Migrate(db *gorm.DB) error {
	logger.Info().Msg("Executando migrations...")

	for _, m := range migrations {
		if err := db.AutoMigrate(m.model); err != nil {
			logger.Error().
				Err(err).
				Str("entity", m.name).
				Msg("Erro ao migrar entidade")
			return err
		}
	}

	if err := createPeriodIndex(db); err != nil {
		logger.Warn().Err(err).Msg("Aviso ao criar índice de período em dados_brutos")
	}

	logger.Info().Msg("Migrations executadas com sucesso!")
	return nil
}

// createPeriodIndex cobre o filtro ano*100+mes usado pela DRE.
func createPeriodIndex(db *gorm.DB) error {
	return db.Exec(`CREATE INDEX IF NOT EXISTS idx_dados_brutos_periodo ON dados_brutos (empresa_id, (ano * 100 + mes))`).Error
}
