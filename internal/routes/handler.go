package routes

import (
	"strings"

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
	appErrors "Demonstra/internal/errors"
	"Demonstra/internal/logger"
	"Demonstra/internal/middleware"
	"Demonstra/internal/pkg"

	"github.com/gin-gonic/gin"
	"github.com/oklog/ulid/v2"
)

type Handler struct {
	UserService          *user.Service
	AuthService          *auth.Service
	JwtService           *middleware.JwtService
	CompanyService       *company.Service
	CategoryService      *category.Service
	IndicatorService     *indicator.Service
	AccountService       *dreconfig.Service
	ModelService         *dremodel.Service
	CompanyConfigService *companyconfig.Service
	RawDataService       *rawdata.Service
	ReportService        *dre.Service
}

func (h *Handler) GetUserIDFromContext(c *gin.Context) (ulid.ULID, error) {
	userIDStr := c.GetString(middleware.ContextUserID)
	if userIDStr == "" {
		return ulid.ULID{}, appErrors.ErrUnauthorized
	}

	userID, err := pkg.ParseULID(userIDStr)
	if err != nil {
		return ulid.ULID{}, appErrors.ErrUnauthorized.WithError(err)
	}

	return userID, nil
}

func (h *Handler) scope(c *gin.Context) (user.Scope, error) {
	scope, ok := middleware.ScopeFrom(c)
	if !ok {
		return user.Scope{}, appErrors.ErrUnauthorized
	}
	return scope, nil
}

// resolveCompany aplica o escopo do usuário ao company_id recebido (vazio usa a empresa do usuário).
func (h *Handler) resolveCompany(c *gin.Context, raw string) (ulid.ULID, error) {
	scope, err := h.scope(c)
	if err != nil {
		return ulid.ULID{}, err
	}

	requested, err := parseOptionalID("company_id", raw)
	if err != nil {
		return ulid.ULID{}, err
	}
	return scope.Resolve(requested)
}

func (h *Handler) companyFromQuery(c *gin.Context) (ulid.ULID, error) {
	return h.resolveCompany(c, c.Query("company_id"))
}

func parseParamID(c *gin.Context, name string) (ulid.ULID, error) {
	id, err := pkg.ParseULID(c.Param(name))
	if err != nil {
		return ulid.ULID{}, appErrors.NewValidationError(name, "formato inválido")
	}
	return id, nil
}

func parseOptionalID(field, raw string) (*ulid.ULID, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return nil, nil
	}
	id, err := pkg.ParseULID(raw)
	if err != nil {
		return nil, appErrors.NewValidationError(field, "formato inválido")
	}
	return &id, nil
}

func parseIDList(field string, raw []string) ([]ulid.ULID, error) {
	ids, err := pkg.ParseULIDs(raw)
	if err != nil {
		return nil, appErrors.NewValidationError(field, "contém identificador inválido")
	}
	return ids, nil
}

func bindJSON(c *gin.Context, body interface{}) error {
	if err := c.ShouldBindJSON(body); err != nil {
		return appErrors.ParseValidationErrors(err)
	}
	return nil
}

func (h *Handler) respondError(c *gin.Context, err error) {
	appErr := appErrors.FromError(err)
	event := logger.Error()
	if appErr.StatusCode < 500 {
		event = logger.Warn()
	}
	event = event.
		Str("code", appErr.Code).
		Str("path", c.FullPath()).
		Str("request_id", c.GetString(middleware.ContextRequestID))
	if appErr.Err != nil {
		event = event.Err(appErr.Err)
	}
	event.Msg("request_error")

	payload := gin.H{
		"error":   appErr.Code,
		"message": appErr.Message,
	}
	if len(appErr.Details) > 0 {
		payload["details"] = appErr.Details
	}
	c.JSON(appErr.StatusCode, payload)
}
