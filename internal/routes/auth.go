package routes

import (
	"net/http"

	"Demonstra/internal/contracts"
	"Demonstra/internal/domain/auth"
	"Demonstra/internal/domain/user"
	"Demonstra/internal/logger"
	"Demonstra/internal/pkg"

	"github.com/gin-gonic/gin"
)

func toUserResponse(u *user.User) contracts.UserResponse {
	return contracts.UserResponse{
		Id:                    u.Id.String(),
		Name:                  u.Name,
		Email:                 u.Email,
		Role:                  string(u.Role),
		CompanyId:             pkg.ULIDPtrToString(u.CompanyId),
		HasAllCompaniesAccess: u.HasAllCompaniesAccess,
		IsActive:              u.IsActive,
	}
}

func (h *Handler) Authenticate(c *gin.Context) {
	var body contracts.LoginRequest
	if err := bindJSON(c, &body); err != nil {
		h.respondError(c, err)
		return
	}

	ctx := c.Request.Context()
	entity, err := h.AuthService.Login(ctx, auth.Login{Email: body.Email, Password: body.Password})
	if err != nil {
		h.respondError(c, err)
		return
	}

	token, expiresAt, err := h.JwtService.GenerateToken(entity)
	if err != nil {
		h.respondError(c, err)
		return
	}

	logger.Info().Str("user_id", entity.Id.String()).Msg("Login realizado")

	c.JSON(http.StatusOK, contracts.LoginResponse{
		Token:     token,
		ExpiresAt: expiresAt,
		User:      toUserResponse(entity),
	})
}

func (h *Handler) Me(c *gin.Context) {
	userID, err := h.GetUserIDFromContext(c)
	if err != nil {
		h.respondError(c, err)
		return
	}

	entity, err := h.UserService.GetByID(c.Request.Context(), userID)
	if err != nil {
		h.respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, toUserResponse(entity))
}

func (h *Handler) CreateUser(c *gin.Context) {
	var body contracts.UserCreateRequest
	if err := bindJSON(c, &body); err != nil {
		h.respondError(c, err)
		return
	}

	companyID, err := parseOptionalID("company_id", body.CompanyId)
	if err != nil {
		h.respondError(c, err)
		return
	}

	role := user.Role(body.Role)
	if role == "" {
		role = user.RoleUser
	}

	entity, err := h.UserService.Create(c.Request.Context(), user.CreateUserInput{
		Name:                  body.Name,
		Email:                 body.Email,
		Password:              body.Password,
		Role:                  role,
		CompanyId:             companyID,
		HasAllCompaniesAccess: body.HasAllCompaniesAccess,
	})
	if err != nil {
		h.respondError(c, err)
		return
	}

	c.JSON(http.StatusCreated, toUserResponse(entity))
}

func (h *Handler) ListUsers(c *gin.Context) {
	users, err := h.UserService.List(c.Request.Context())
	if err != nil {
		h.respondError(c, err)
		return
	}

	response := make([]contracts.UserResponse, 0, len(users))
	for _, u := range users {
		response = append(response, toUserResponse(u))
	}
	c.JSON(http.StatusOK, response)
}

func (h *Handler) SetUserActive(c *gin.Context) {
	id, err := parseParamID(c, "id")
	if err != nil {
		h.respondError(c, err)
		return
	}

	var body contracts.UserActiveRequest
	if err := bindJSON(c, &body); err != nil {
		h.respondError(c, err)
		return
	}

	entity, err := h.UserService.SetActive(c.Request.Context(), id, *body.Active)
	if err != nil {
		h.respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, toUserResponse(entity))
}
