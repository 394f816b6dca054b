package routes

import (
	"net/http"

	"Demonstra/internal/middleware"

	"github.com/gin-gonic/gin"
)

type Limiters struct {
	Public  *middleware.RateLimiter
	Private *middleware.RateLimiter
}

// Register monta /api: login público; leitura para qualquer usuário autenticado;
// mutações de configuração só para admin.
func Register(router *gin.Engine, h *Handler, limiters Limiters) {
	router.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	public := router.Group("/api")
	public.Use(middleware.RateLimit(limiters.Public))
	{
		public.POST("/auth/login", h.Authenticate)
	}

	private := router.Group("/api")
	private.Use(middleware.AuthMiddleware(h.JwtService))
	private.Use(middleware.RateLimitByUser(limiters.Private))
	{
		private.GET("/auth/me", h.Me)
		private.GET("/companies", h.ListCompanies)
		private.GET("/categories", h.ListCategories)
		private.GET("/indicators", h.ListIndicators)

		private.GET("/dre-config/accounts", h.AccountTree)
		private.GET("/dre-config/accounts/:id/companies", h.ListAccountCompanies)

		private.GET("/dre-model/accounts", h.ListModelAccounts)
		private.GET("/dre-model/accounts/:id/secondaries", h.ListSecondaryAccounts)
		private.GET("/dre-model/components", h.ListComponents)
		private.GET("/dre-model/structure", h.ModelStructure)

		private.GET("/companies/:id/dre-structure", h.CompanyStructure)

		private.GET("/raw-data", h.ListRawData)

		private.GET("/reports/dre", h.GetReport)
		private.GET("/reports/dre/export", h.ExportReport)
	}

	admin := private.Group("")
	admin.Use(middleware.RequireAdmin())
	{
		users := admin.Group("/users")
		{
			users.GET("", h.ListUsers)
			users.POST("", h.CreateUser)
			users.PATCH("/:id/active", h.SetUserActive)
		}

		companies := admin.Group("/companies")
		{
			companies.POST("", h.CreateCompany)
			companies.PATCH("/:id", h.UpdateCompany)
			companies.POST("/:id/toggle-active", h.ToggleCompanyActive)

			companies.PUT("/:id/dre-structure/accounts/:account_id", h.ToggleCompanyAccount)
			companies.PATCH("/:id/dre-structure/accounts/:account_id/order", h.SetCompanyAccountOrder)
			companies.POST("/:id/dre-structure/components", h.ToggleCompanyComponent)
			companies.POST("/:id/dre-structure/copy", h.CopyCompanyStructure)
		}

		categories := admin.Group("/categories")
		{
			categories.POST("", h.CreateCategory)
			categories.PUT("/:id", h.UpdateCategory)
			categories.DELETE("/:id", h.DeleteCategory)
		}

		indicators := admin.Group("/indicators")
		{
			indicators.POST("", h.CreateIndicator)
			indicators.PUT("/:id", h.UpdateIndicator)
			indicators.DELETE("/:id", h.DeleteIndicator)
			indicators.POST("/:id/companies", h.ToggleIndicatorCompany)
		}

		accounts := admin.Group("/dre-config/accounts")
		{
			accounts.POST("", h.CreateAccount)
			accounts.PUT("/:id", h.UpdateAccount)
			accounts.DELETE("/:id", h.DeleteAccount)
			accounts.POST("/:id/move", h.MoveAccount)
			accounts.POST("/:id/toggle-active", h.ToggleAccountActive)
			accounts.POST("/:id/companies", h.ToggleAccountCompany)
		}

		model := admin.Group("/dre-model")
		{
			model.POST("/accounts", h.CreateModelAccount)
			model.PUT("/accounts/:id", h.UpdateModelAccount)
			model.DELETE("/accounts/:id", h.DeleteModelAccount)

			model.POST("/secondaries", h.CreateSecondaryAccount)
			model.PUT("/secondaries/:id", h.UpdateSecondaryAccount)
			model.DELETE("/secondaries/:id", h.DeleteSecondaryAccount)

			model.POST("/components", h.CreateComponent)
			model.PUT("/components/:id", h.UpdateComponent)
			model.DELETE("/components/:id", h.DeleteComponent)
		}

		rawData := admin.Group("/raw-data")
		{
			rawData.POST("", h.CreateRawData)
			rawData.DELETE("/:id", h.DeleteRawData)
			rawData.POST("/import", h.ImportRawData)
		}
	}
}
