package middleware

import (
	"context"
	"crypto/rand"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"

	"Demonstra/config"
	"Demonstra/internal/domain/user"
	appErrors "Demonstra/internal/errors"
	"Demonstra/internal/logger"
	"Demonstra/internal/pkg"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
	"github.com/oklog/ulid/v2"
)

const (
	ContextUserID = "user_id"
	ContextRole   = "role"
	ContextScope  = "scope"
)

// ScopeLoader recarrega o escopo do usuário a cada requisição, barrando usuários desativados.
type ScopeLoader interface {
	ScopeOf(ctx context.Context, id ulid.ULID) (user.Scope, error)
}

type Claims struct {
	Role string `json:"role"`
	jwt.RegisteredClaims
}

type JwtService struct {
	secret     []byte
	issuer     string
	expiration time.Duration
	users      ScopeLoader
}

func NewJwtService(cfg config.JWTConfig, users ScopeLoader) (*JwtService, error) {
	secret := []byte(cfg.Secret)
	if len(secret) == 0 {
		secret = make([]byte, 32)
		if _, err := rand.Read(secret); err != nil {
			return nil, fmt.Errorf("gerar segredo JWT: %w", err)
		}
		logger.Warn().Msg("JWT_SECRET não definido; usando segredo aleatório (tokens expiram ao reiniciar)")
	}

	expiration := cfg.Expiration
	if expiration <= 0 {
		expiration = 12 * time.Hour
	}

	return &JwtService{
		secret:     secret,
		issuer:     cfg.Issuer,
		expiration: expiration,
		users:      users,
	}, nil
}

func (s *JwtService) GenerateToken(u *user.User) (string, time.Time, error) {
	now := time.Now()
	expiresAt := now.Add(s.expiration)

	claims := Claims{
		Role: string(u.Role),
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   u.Id.String(),
			Issuer:    s.issuer,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(expiresAt),
		},
	}

	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(s.secret)
	if err != nil {
		return "", time.Time{}, appErrors.ErrInternalServer.WithError(err)
	}
	return token, expiresAt, nil
}

func (s *JwtService) ParseToken(tokenString string) (*Claims, error) {
	claims := &Claims{}
	token, err := jwt.ParseWithClaims(tokenString, claims, func(t *jwt.Token) (interface{}, error) {
		return s.secret, nil
	},
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithIssuer(s.issuer),
	)
	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return nil, appErrors.NewAuthError("TOKEN_EXPIRED", "Sessão expirada")
		}
		return nil, appErrors.NewAuthError("INVALID_TOKEN", "Token inválido").WithError(err)
	}
	if !token.Valid {
		return nil, appErrors.NewAuthError("INVALID_TOKEN", "Token inválido")
	}
	return claims, nil
}

func bearerToken(header string) string {
	if len(header) < 7 || !strings.EqualFold(header[:7], "Bearer ") {
		return ""
	}
	return strings.TrimSpace(header[7:])
}

func abortWithError(c *gin.Context, err error) {
	appErr := appErrors.FromError(err)
	payload := gin.H{
		"error":   appErr.Code,
		"message": appErr.Message,
	}
	if len(appErr.Details) > 0 {
		payload["details"] = appErr.Details
	}
	c.AbortWithStatusJSON(appErr.StatusCode, payload)
}

// AuthMiddleware valida o bearer token e grava user_id, role e scope no contexto.
func AuthMiddleware(s *JwtService) gin.HandlerFunc {
	return func(c *gin.Context) {
		raw := bearerToken(c.GetHeader("Authorization"))
		if raw == "" {
			abortWithError(c, appErrors.ErrUnauthorized)
			return
		}

		claims, err := s.ParseToken(raw)
		if err != nil {
			abortWithError(c, err)
			return
		}

		userID, err := pkg.ParseULID(claims.Subject)
		if err != nil {
			abortWithError(c, appErrors.ErrUnauthorized.WithError(err))
			return
		}

		scope, err := s.users.ScopeOf(c.Request.Context(), userID)
		if err != nil {
			if appErrors.HasCode(err, appErrors.ErrUserNotFound.Code) {
				err = appErrors.ErrUnauthorized.WithError(err)
			}
			abortWithError(c, err)
			return
		}

		c.Set(ContextUserID, userID.String())
		c.Set(ContextRole, string(scope.Role))
		c.Set(ContextScope, scope)
		c.Next()
	}
}

// ScopeFrom lê o escopo gravado por AuthMiddleware.
func ScopeFrom(c *gin.Context) (user.Scope, bool) {
	v, ok := c.Get(ContextScope)
	if !ok {
		return user.Scope{}, false
	}
	scope, ok := v.(user.Scope)
	return scope, ok
}

// RequireAdmin bloqueia rotas de configuração para perfis sem administração.
func RequireAdmin() gin.HandlerFunc {
	return func(c *gin.Context) {
		scope, ok := ScopeFrom(c)
		if !ok {
			abortWithError(c, appErrors.ErrUnauthorized)
			return
		}
		if !scope.IsAdmin() {
			abortWithError(c, appErrors.ErrForbidden)
			return
		}
		c.Next()
	}
}

func CORSMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Header("Access-Control-Allow-Origin", "*")
		c.Header("Access-Control-Allow-Methods", "GET, POST, PUT, PATCH, DELETE, OPTIONS")
		c.Header("Access-Control-Allow-Headers", "Authorization, Content-Type, X-Request-ID")
		c.Header("Access-Control-Expose-Headers", "X-Request-ID, Content-Disposition")

		if c.Request.Method == http.MethodOptions {
			c.AbortWithStatus(http.StatusNoContent)
			return
		}
		c.Next()
	}
}
