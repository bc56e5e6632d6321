// File: internal/handler/auth/login.go
package auth

import (
	"errors"
	"net/http"

	"event-registration/internal/api"
	"event-registration/internal/apperr"
	"event-registration/internal/database"
	"event-registration/internal/handler"
	"event-registration/internal/middleware"
	"event-registration/internal/store"

	"github.com/labstack/echo/v4"
)

// LoginHandler 使用 Email/Password 驗證並回傳 JWT，同時設定 HttpOnly cookie
// @Summary     登入使用者
// @Description 驗證帳密後發行 session token，並寫入 authToken cookie
// @Tags        auth
// @Accept      json
// @Produce     json
// @Param       body body     api.LoginRequest true "帳密"
// @Success     200  {object} api.LoginResponse
// @Failure     400  {object} api.ErrorResponse
// @Failure     401  {object} api.ErrorResponse
// @Failure     500  {object} api.ErrorResponse
// @Router      /login [post]
func LoginHandler(db database.DB, tokens Tokens) echo.HandlerFunc {
	return func(c echo.Context) error {
		var req api.LoginRequest
		if err := handler.Bind(c, &req); err != nil {
			return handler.RespondError(c, err)
		}

		// 撈使用者資料
		user, err := getUserByEmail(c.Request().Context(), db, req.Email)
		if err != nil {
			if errors.Is(err, store.ErrNotFound) {
				return handler.RespondError(c, apperr.New(apperr.Unauthenticated, "Invalid credentials"))
			}
			return handler.RespondError(c, apperr.Wrap(err, "failed to load user"))
		}

		// 驗證密碼
		if err := authenticateUser(*user, req.Password); err != nil {
			return handler.RespondError(c, apperr.New(apperr.Unauthenticated, "Invalid credentials"))
		}

		// 發行存取令牌
		token, err := tokens.IssueAccessToken(*user)
		if err != nil {
			return handler.RespondError(c, apperr.Wrap(err, "failed to issue token"))
		}

		ttl := tokens.TTL()
		c.SetCookie(&http.Cookie{
			Name:     middleware.AuthCookie,
			Value:    token,
			Path:     "/",
			HttpOnly: true,
			Secure:   c.IsTLS(),
			SameSite: http.SameSiteStrictMode,
			MaxAge:   int(ttl.Seconds()),
		})
		return c.JSON(http.StatusOK, api.LoginResponse{
			Message:   "Logged in successfully",
			Role:      user.Role,
			Token:     token,
			ExpiresIn: int(ttl.Seconds()),
		})
	}
}
