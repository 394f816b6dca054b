package middleware

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"Demonstra/config"
	"Demonstra/internal/domain/user"
	appErrors "Demonstra/internal/errors"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
	"github.com/oklog/ulid/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeScopeLoader struct {
	scopeOfFn func(ctx context.Context, id ulid.ULID) (user.Scope, error)
}

func (f *fakeScopeLoader) ScopeOf(ctx context.Context, id ulid.ULID) (user.Scope, error) {
	return f.scopeOfFn(ctx, id)
}

func init() {
	gin.SetMode(gin.TestMode)
}

func newTestJwtService(t *testing.T, loader ScopeLoader) *JwtService {
	t.Helper()
	s, err := NewJwtService(config.JWTConfig{
		Secret:     "segredo-de-teste-com-tamanho-suficiente",
		Issuer:     "demonstra-test",
		Expiration: time.Hour,
	}, loader)
	require.NoError(t, err)
	return s
}

func TestGenerateAndParseToken(t *testing.T) {
	t.Parallel()

	s := newTestJwtService(t, nil)
	u := &user.User{Id: ulid.Make(), Role: user.RoleAdmin}

	token, expiresAt, err := s.GenerateToken(u)
	require.NoError(t, err)
	assert.WithinDuration(t, time.Now().Add(time.Hour), expiresAt, 5*time.Second)

	claims, err := s.ParseToken(token)
	require.NoError(t, err)
	assert.Equal(t, u.Id.String(), claims.Subject)
	assert.Equal(t, "admin", claims.Role)
}

func TestParseTokenRejections(t *testing.T) {
	t.Parallel()

	s := newTestJwtService(t, nil)
	other := newTestJwtService(t, nil)
	other.secret = []byte("outro-segredo")

	foreign, _, err := other.GenerateToken(&user.User{Id: ulid.Make(), Role: user.RoleUser})
	require.NoError(t, err)

	expired, err := jwt.NewWithClaims(jwt.SigningMethodHS256, Claims{
		Role: "user",
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   ulid.Make().String(),
			Issuer:    "demonstra-test",
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(-time.Minute)),
		},
	}).SignedString(s.secret)
	require.NoError(t, err)

	wrongIssuer, err := jwt.NewWithClaims(jwt.SigningMethodHS256, Claims{
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   ulid.Make().String(),
			Issuer:    "outro",
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Minute)),
		},
	}).SignedString(s.secret)
	require.NoError(t, err)

	tests := []struct {
		name  string
		token string
		code  string
	}{
		{name: "assinatura de outro segredo", token: foreign, code: "INVALID_TOKEN"},
		{name: "expirado", token: expired, code: "TOKEN_EXPIRED"},
		{name: "emissor diferente", token: wrongIssuer, code: "INVALID_TOKEN"},
		{name: "lixo", token: "abc.def.ghi", code: "INVALID_TOKEN"},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			_, err := s.ParseToken(tt.token)
			require.Error(t, err)
			assert.True(t, appErrors.HasCode(err, tt.code), "erro inesperado: %v", err)
		})
	}
}

func TestNewJwtServiceGeneratesSecretWhenEmpty(t *testing.T) {
	t.Parallel()

	s, err := NewJwtService(config.JWTConfig{Issuer: "x"}, nil)
	require.NoError(t, err)
	assert.Len(t, s.secret, 32)
	assert.Equal(t, 12*time.Hour, s.expiration)
}

func newProtectedRouter(s *JwtService, extra ...gin.HandlerFunc) *gin.Engine {
	r := gin.New()
	handlers := append([]gin.HandlerFunc{AuthMiddleware(s)}, extra...)
	handlers = append(handlers, func(c *gin.Context) {
		scope, _ := ScopeFrom(c)
		c.JSON(http.StatusOK, gin.H{"user_id": c.GetString(ContextUserID), "role": string(scope.Role)})
	})
	r.GET("/protegido", handlers...)
	return r
}

func TestAuthMiddleware(t *testing.T) {
	t.Parallel()

	active := &user.User{Id: ulid.Make(), Role: user.RoleUser}
	inactive := &user.User{Id: ulid.Make(), Role: user.RoleUser}
	missing := &user.User{Id: ulid.Make(), Role: user.RoleUser}

	loader := &fakeScopeLoader{scopeOfFn: func(ctx context.Context, id ulid.ULID) (user.Scope, error) {
		switch id {
		case active.Id:
			return user.ScopeFor(active), nil
		case inactive.Id:
			return user.Scope{}, appErrors.ErrUserInactive
		default:
			return user.Scope{}, appErrors.ErrUserNotFound
		}
	}}
	s := newTestJwtService(t, loader)

	token := func(u *user.User) string {
		tk, _, err := s.GenerateToken(u)
		require.NoError(t, err)
		return tk
	}

	tests := []struct {
		name   string
		header string
		status int
	}{
		{name: "sem cabeçalho", header: "", status: http.StatusUnauthorized},
		{name: "esquema errado", header: "Basic abc", status: http.StatusUnauthorized},
		{name: "usuário ativo", header: "Bearer " + token(active), status: http.StatusOK},
		{name: "prefixo minúsculo", header: "bearer " + token(active), status: http.StatusOK},
		{name: "usuário inativo", header: "Bearer " + token(inactive), status: http.StatusForbidden},
		{name: "usuário removido", header: "Bearer " + token(missing), status: http.StatusUnauthorized},
	}

	router := newProtectedRouter(s)
	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			req := httptest.NewRequest(http.MethodGet, "/protegido", nil)
			if tt.header != "" {
				req.Header.Set("Authorization", tt.header)
			}
			rec := httptest.NewRecorder()
			router.ServeHTTP(rec, req)
			assert.Equal(t, tt.status, rec.Code, rec.Body.String())
		})
	}
}

func TestRequireAdmin(t *testing.T) {
	t.Parallel()

	admin := &user.User{Id: ulid.Make(), Role: user.RoleAdmin}
	common := &user.User{Id: ulid.Make(), Role: user.RoleUser}
	users := map[ulid.ULID]*user.User{admin.Id: admin, common.Id: common}

	s := newTestJwtService(t, &fakeScopeLoader{scopeOfFn: func(ctx context.Context, id ulid.ULID) (user.Scope, error) {
		return user.ScopeFor(users[id]), nil
	}})
	router := newProtectedRouter(s, RequireAdmin())

	for u, status := range map[*user.User]int{admin: http.StatusOK, common: http.StatusForbidden} {
		tk, _, err := s.GenerateToken(u)
		require.NoError(t, err)

		req := httptest.NewRequest(http.MethodGet, "/protegido", nil)
		req.Header.Set("Authorization", "Bearer "+tk)
		rec := httptest.NewRecorder()
		router.ServeHTTP(rec, req)
		assert.Equal(t, status, rec.Code)
	}
}

func TestCORSMiddlewarePreflight(t *testing.T) {
	t.Parallel()

	r := gin.New()
	r.Use(CORSMiddleware())
	r.GET("/x", func(c *gin.Context) { c.Status(http.StatusOK) })

	req := httptest.NewRequest(http.MethodOptions, "/x", nil)
	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusNoContent, rec.Code)
	assert.Equal(t, "*", rec.Header().Get("Access-Control-Allow-Origin"))
}
