package main

import (
	appfx "Demonstra/internal/fx"

	"go.uber.org/fx"
)

// @title Demonstra API
// @version 1.0
// @description Administração da DRE: contas, modelo, indicadores, dados brutos e relatório.
// @BasePath /api
// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
func main() {
	fx.New(
		appfx.AppModule,
	).Run()
}
