package middleware

import (
	"context"
	"errors"
	"net/http"
	"strings"

	"event-registration/internal/api"
	"event-registration/internal/service"

	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog"
)

const (
	ContextUserKey  = "user"
	ContextTokenKey = "token"

	// AuthCookie 登入後設定的 HttpOnly cookie 名稱
	AuthCookie = "authToken"
)

var errMissingToken = errors.New("missing token")

// TokenVerifier 由 service.TokenService 實作
type TokenVerifier interface {
	VerifyAccessToken(ctx context.Context, token string) (*service.Claims, error)
}

// TokenFromRequest 先讀 cookie，再讀 Authorization: Bearer
func TokenFromRequest(c echo.Context) string {
	if ck, err := c.Cookie(AuthCookie); err == nil && ck.Value != "" {
		return ck.Value
	}
	authHeader := c.Request().Header.Get(echo.HeaderAuthorization)
	parts := strings.SplitN(authHeader, " ", 2)
	if len(parts) == 2 && strings.EqualFold(parts[0], "bearer") {
		return strings.TrimSpace(parts[1])
	}
	return ""
}

func extractClaims(c echo.Context, v TokenVerifier) (*service.Claims, string, error) {
	tokenString := TokenFromRequest(c)
	if tokenString == "" {
		return nil, "", errMissingToken
	}
	claims, err := v.VerifyAccessToken(c.Request().Context(), tokenString)
	if err != nil {
		return nil, "", err
	}
	return claims, tokenString, nil
}

// RequireAuth 驗證 session token，缺少、無效或已撤銷皆回 401
func RequireAuth(v TokenVerifier) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			claims, token, err := extractClaims(c, v)
			switch {
			case err == nil:
			case errors.Is(err, errMissingToken):
				return c.JSON(http.StatusUnauthorized, api.ErrorResponse{Message: "Unauthorized: Kindly Login to Register Events!"})
			case errors.Is(err, service.ErrRevokedToken):
				return c.JSON(http.StatusUnauthorized, api.ErrorResponse{Message: "Session has been logged out"})
			case errors.Is(err, service.ErrInvalidToken):
				return c.JSON(http.StatusUnauthorized, api.ErrorResponse{Message: "Invalid or expired token"})
			default:
				zerolog.Ctx(c.Request().Context()).Error().Err(err).Msg("verify token")
				return c.JSON(http.StatusInternalServerError, api.ErrorResponse{Message: "internal server error"})
			}
			c.Set(ContextUserKey, claims)
			c.Set(ContextTokenKey, token)
			return next(c)
		}
	}
}

// RequireAdmin 先驗證身分，再檢查 role
func RequireAdmin(v TokenVerifier) echo.MiddlewareFunc {
	auth := RequireAuth(v)
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return auth(func(c echo.Context) error {
			claims := ClaimsFrom(c)
			if claims == nil || !claims.IsAdmin() {
				return c.JSON(http.StatusForbidden, api.ErrorResponse{Message: "Admin access required!"})
			}
			return next(c)
		})
	}
}

// ClaimsFrom 取出 RequireAuth 放入的 claims
func ClaimsFrom(c echo.Context) *service.Claims {
	claims, _ := c.Get(ContextUserKey).(*service.Claims)
	return claims
}
