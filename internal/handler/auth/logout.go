package auth

import (
	"net/http"

	"event-registration/internal/api"
	"event-registration/internal/apperr"
	"event-registration/internal/handler"
	"event-registration/internal/middleware"

	"github.com/labstack/echo/v4"
)

// LogoutHandler 清除 cookie 並撤銷目前的 token
// @Summary     登出
// @Description 清除 authToken cookie；帶有效 token 時將其加入 Redis denylist
// @Tags        auth
// @Produce     json
// @Success     200 {object} api.MessageResponse
// @Failure     500 {object} api.ErrorResponse
// @Router      /logout [post]
func LogoutHandler(tokens Tokens) echo.HandlerFunc {
	return func(c echo.Context) error {
		if raw := middleware.TokenFromRequest(c); raw != "" {
			// 無效或過期的 token 不需撤銷
			if claims, err := tokens.VerifyAccessToken(c.Request().Context(), raw); err == nil {
				if err := tokens.RevokeToken(c.Request().Context(), claims); err != nil {
					return handler.RespondError(c, apperr.Wrap(err, "failed to revoke session"))
				}
			}
		}

		c.SetCookie(&http.Cookie{
			Name:     middleware.AuthCookie,
			Value:    "",
			Path:     "/",
			HttpOnly: true,
			MaxAge:   -1,
		})
		return c.JSON(http.StatusOK, api.MessageResponse{Message: "Logout successful!"})
	}
}
