package fx

import (
	"context"

	"Demonstra/config"
	"Demonstra/internal/domain/user"
	"Demonstra/internal/middleware"
	"Demonstra/internal/routes"

	"go.uber.org/fx"
)

var MiddlewareModule = fx.Module("middleware",
	fx.Provide(
		newJwtService,
		newRateLimiters,
	),
)

func newJwtService(cfg *config.Config, userSvc *user.Service) (*middleware.JwtService, error) {
	return middleware.NewJwtService(cfg.JWT, userSvc)
}

// newRateLimiters usa a configuração para rotas autenticadas e um teto mais baixo para o login.
func newRateLimiters(lc fx.Lifecycle, cfg *config.Config) routes.Limiters {
	limiters := routes.Limiters{
		Public:  middleware.NewRateLimiter(max(cfg.RateLimit.Requests/5, 5), cfg.RateLimit.Window),
		Private: middleware.NewRateLimiter(cfg.RateLimit.Requests, cfg.RateLimit.Window),
	}
	lc.Append(fx.Hook{
		OnStop: func(ctx context.Context) error {
			limiters.Public.Stop()
			limiters.Private.Stop()
			return nil
		},
	})
	return limiters
}
