package middleware

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"event-registration/internal/cache"
	"event-registration/internal/model"
	"event-registration/internal/service"

	"github.com/labstack/echo/v4"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/require"
)

func newContext(auth string, cookie string) (echo.Context, *httptest.ResponseRecorder) {
	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	if auth != "" {
		req.Header.Set("Authorization", auth)
	}
	if cookie != "" {
		req.AddCookie(&http.Cookie{Name: AuthCookie, Value: cookie})
	}
	rec := httptest.NewRecorder()
	return e.NewContext(req, rec), rec
}

func newTokens(revoked map[string]bool) *service.TokenService {
	c := &cache.FakeCache{
		ExistsFn: func(_ context.Context, keys ...string) *redis.IntCmd {
			if revoked[keys[0]] {
				return redis.NewIntResult(1, nil)
			}
			return redis.NewIntResult(0, nil)
		},
		SetFn: func(_ context.Context, key string, _ any, _ time.Duration) *redis.StatusCmd {
			revoked[key] = true
			return redis.NewStatusResult("OK", nil)
		},
	}
	return service.NewTokenService("testsecret", time.Minute, c)
}

func ok(c echo.Context) error { return c.String(http.StatusOK, "ok") }

func TestTokenFromRequest(t *testing.T) {
	ctx, _ := newContext("", "")
	require.Empty(t, TokenFromRequest(ctx))

	ctx, _ = newContext("BadHeader", "")
	require.Empty(t, TokenFromRequest(ctx))

	ctx, _ = newContext("Bearer header-token", "")
	require.Equal(t, "header-token", TokenFromRequest(ctx))

	ctx, _ = newContext("Bearer header-token", "cookie-token")
	require.Equal(t, "cookie-token", TokenFromRequest(ctx))
}

func TestRequireAuth(t *testing.T) {
	tokens := newTokens(map[string]bool{})
	tok, err := tokens.IssueAccessToken(model.User{ID: 2, Role: model.RoleUser})
	require.NoError(t, err)
	mw := RequireAuth(tokens)

	// success via header
	ctx, rec := newContext("Bearer "+tok, "")
	require.NoError(t, mw(func(c echo.Context) error {
		claims := ClaimsFrom(c)
		require.Equal(t, 2, claims.UserID)
		require.Equal(t, tok, c.Get(ContextTokenKey))
		return ok(c)
	})(ctx))
	require.Equal(t, http.StatusOK, rec.Code)

	// success via cookie
	ctx, rec = newContext("", tok)
	require.NoError(t, mw(ok)(ctx))
	require.Equal(t, http.StatusOK, rec.Code)

	// missing token
	ctx, rec = newContext("", "")
	require.NoError(t, mw(ok)(ctx))
	require.Equal(t, http.StatusUnauthorized, rec.Code)
	require.Contains(t, rec.Body.String(), "Kindly Login")

	// invalid token
	ctx, rec = newContext("Bearer invalid", "")
	require.NoError(t, mw(ok)(ctx))
	require.Equal(t, http.StatusUnauthorized, rec.Code)
	require.Contains(t, rec.Body.String(), "Invalid or expired token")
}

func TestRequireAuthRevoked(t *testing.T) {
	tokens := newTokens(map[string]bool{})
	tok, err := tokens.IssueAccessToken(model.User{ID: 3, Role: model.RoleUser})
	require.NoError(t, err)
	claims, err := tokens.VerifyAccessToken(context.Background(), tok)
	require.NoError(t, err)
	require.NoError(t, tokens.RevokeToken(context.Background(), claims))

	ctx, rec := newContext("Bearer "+tok, "")
	require.NoError(t, RequireAuth(tokens)(ok)(ctx))
	require.Equal(t, http.StatusUnauthorized, rec.Code)
	require.Contains(t, rec.Body.String(), "logged out")
}

func TestRequireAuthDenylistDown(t *testing.T) {
	c := &cache.FakeCache{ExistsFn: func(context.Context, ...string) *redis.IntCmd {
		return redis.NewIntResult(0, errors.New("redis down"))
	}}
	tokens := service.NewTokenService("s", time.Minute, c)
	tok, err := tokens.IssueAccessToken(model.User{ID: 1, Role: model.RoleUser})
	require.NoError(t, err)

	ctx, rec := newContext("Bearer "+tok, "")
	require.NoError(t, RequireAuth(tokens)(ok)(ctx))
	require.Equal(t, http.StatusInternalServerError, rec.Code)
}

func TestRequireAdmin(t *testing.T) {
	tokens := newTokens(map[string]bool{})
	userTok, err := tokens.IssueAccessToken(model.User{ID: 1, Role: model.RoleUser})
	require.NoError(t, err)
	adminTok, err := tokens.IssueAccessToken(model.User{ID: 9, Role: model.RoleAdmin})
	require.NoError(t, err)
	mw := RequireAdmin(tokens)

	ctx, rec := newContext("Bearer "+userTok, "")
	require.NoError(t, mw(ok)(ctx))
	require.Equal(t, http.StatusForbidden, rec.Code)

	ctx, rec = newContext("Bearer "+adminTok, "")
	require.NoError(t, mw(ok)(ctx))
	require.Equal(t, http.StatusOK, rec.Code)

	ctx, rec = newContext("", "")
	require.NoError(t, mw(ok)(ctx))
	require.Equal(t, http.StatusUnauthorized, rec.Code)
}
