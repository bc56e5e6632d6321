package auth

import (
	"errors"
	"net/http"

	"event-registration/internal/api"
	"event-registration/internal/apperr"
	"event-registration/internal/database"
	"event-registration/internal/handler"
	"event-registration/internal/store"

	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog"
)

// ForgotPasswordHandler 產生重設 token (手機號碼 + 隨機字串)，一小時內有效
// 回應刻意帶回隨機字串：沒有簡訊通道，使用者自行以手機號碼 + 字串組成 token。
// 只回傳字串，不回傳完整 token。
// @Summary     忘記密碼
// @Description 回傳隨機字串；重設 token = 註冊手機號碼 + 此字串
// @Tags        auth
// @Accept      json
// @Produce     json
// @Param       body body     api.ForgotPasswordRequest true "Email"
// @Success     200  {object} api.ForgotPasswordResponse
// @Failure     400  {object} api.ErrorResponse
// @Failure     404  {object} api.ErrorResponse
// @Failure     500  {object} api.ErrorResponse
// @Router      /forgot-password [post]
func ForgotPasswordHandler(db database.DB) echo.HandlerFunc {
	return func(c echo.Context) error {
		var req api.ForgotPasswordRequest
		if err := handler.Bind(c, &req); err != nil {
			return handler.RespondError(c, err)
		}

		ctx := c.Request().Context()
		user, err := getUserByEmail(ctx, db, req.Email)
		if err != nil {
			if errors.Is(err, store.ErrNotFound) {
				return handler.RespondError(c, apperr.New(apperr.NotFound, "No user found with this email."))
			}
			return handler.RespondError(c, apperr.Wrap(err, "failed to load user"))
		}
		if user.Phone == "" {
			return handler.RespondError(c, apperr.New(apperr.Validation, "Phone number not found for this account."))
		}

		rt, err := newResetToken(user.Phone)
		if err != nil {
			return handler.RespondError(c, apperr.Wrap(err, "failed to generate reset token"))
		}
		if err := setResetToken(ctx, db, user.ID, rt.Token, rt.Expires); err != nil {
			return handler.RespondError(c, apperr.Wrap(err, "failed to save reset token"))
		}

		zerolog.Ctx(ctx).Info().Int("user_id", user.ID).Time("expires", rt.Expires).Msg("reset token generated")

		return c.JSON(http.StatusOK, api.ForgotPasswordResponse{
			Message:      "Reset token generated successfully!",
			Note:         "Your reset token = your registered phone number + the following string.",
			RandomString: rt.Suffix,
			ExpiresIn:    "1 hour",
		})
	}
}

// ResetPasswordHandler 以 email + 未過期的 token 設定新密碼
// @Summary     重設密碼
// @Tags        auth
// @Accept      json
// @Produce     json
// @Param       body body     api.ResetPasswordRequest true "重設資料"
// @Success     200  {object} api.MessageResponse
// @Failure     400  {object} api.ErrorResponse
// @Failure     500  {object} api.ErrorResponse
// @Router      /reset-password [post]
func ResetPasswordHandler(db database.DB) echo.HandlerFunc {
	return func(c echo.Context) error {
		var req api.ResetPasswordRequest
		if err := handler.Bind(c, &req); err != nil {
			return handler.RespondError(c, err)
		}

		hash, err := hashPassword(req.NewPassword)
		if err != nil {
			return handler.RespondError(c, apperr.Wrap(err, "failed to hash password"))
		}

		ctx := c.Request().Context()
		if err := resetPassword(ctx, db, req.Email, req.ResetToken, timeNow(), hash); err != nil {
			if errors.Is(err, store.ErrNotFound) {
				return handler.RespondError(c, apperr.New(apperr.Validation, "Invalid token, email, or token has expired."))
			}
			return handler.RespondError(c, apperr.Wrap(err, "failed to reset password"))
		}

		zerolog.Ctx(ctx).Info().Str("email", req.Email).Msg("password reset")
		return c.JSON(http.StatusOK, api.MessageResponse{Message: "Password reset successful!"})
	}
}
