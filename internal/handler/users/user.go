// Package users 目前登入使用者的個人資料
package users

import (
	"errors"
	"net/http"

	"event-registration/internal/api"
	"event-registration/internal/apperr"
	"event-registration/internal/database"
	"event-registration/internal/handler"
	"event-registration/internal/middleware"
	"event-registration/internal/service"
	"event-registration/internal/store"

	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog"
)

var (
	getUserByID              = store.GetUserByID
	setQRCode                = store.SetQRCode
	updateProfile            = store.UpdateProfile
	getPaymentStatus         = store.GetPaymentStatus
	listRegisteredEventNames = store.ListRegisteredEventNames
)

func currentUser(c echo.Context) (int, error) {
	claims := middleware.ClaimsFrom(c)
	if claims == nil || claims.UserID == 0 {
		return 0, apperr.New(apperr.Unauthenticated, "Unauthorized")
	}
	return claims.UserID, nil
}

// GetProfileHandler 取得個人資料；沒有顯示代碼時當場補上
// @Summary     取得個人資料
// @Tags        users
// @Produce     json
// @Success     200 {object} api.ProfileResponse
// @Failure     401 {object} api.ErrorResponse
// @Failure     404 {object} api.ErrorResponse
// @Failure     500 {object} api.ErrorResponse
// @Security    BearerAuth
// @Router      /user/get-profile [get]
func GetProfileHandler(db database.DB, displayCodePrefix string) echo.HandlerFunc {
	return func(c echo.Context) error {
		userID, err := currentUser(c)
		if err != nil {
			return handler.RespondError(c, err)
		}
		ctx := c.Request().Context()

		user, err := getUserByID(ctx, db, userID)
		if errors.Is(err, store.ErrNotFound) {
			return handler.RespondError(c, apperr.New(apperr.NotFound, "User not found!"))
		}
		if err != nil {
			return handler.RespondError(c, apperr.Wrap(err, "Failed to fetch profile."))
		}

		code := ""
		if user.QRCodeID != nil {
			code = *user.QRCodeID
		}
		if code == "" {
			code = service.DisplayCode(displayCodePrefix, user.ID)
			if err := setQRCode(ctx, db, user.ID, code); err != nil {
				return handler.RespondError(c, apperr.Wrap(err, "Failed to assign QR code."))
			}
			zerolog.Ctx(ctx).Info().Int("user_id", user.ID).Str("qr_code_id", code).Msg("display code assigned")
		}

		return c.JSON(http.StatusOK, api.ProfileResponse{
			ID:            user.ID,
			Name:          user.Name,
			College:       user.College,
			Year:          user.Year,
			Accommodation: user.Accommodation,
			Role:          user.Role,
			Phone:         user.Phone,
			QRCodeID:      code,
		})
	}
}

// UpdateProfileHandler 更新姓名、學校、年級、住宿與電話
// @Summary     更新個人資料
// @Tags        users
// @Accept      json
// @Produce     json
// @Param       body body     api.UpdateProfileRequest true "個人資料"
// @Success     200  {object} api.MessageResponse
// @Failure     400  {object} api.ErrorResponse
// @Failure     401  {object} api.ErrorResponse
// @Failure     404  {object} api.ErrorResponse
// @Failure     500  {object} api.ErrorResponse
// @Security    BearerAuth
// @Router      /user/update-profile [post]
func UpdateProfileHandler(db database.DB) echo.HandlerFunc {
	return func(c echo.Context) error {
		userID, err := currentUser(c)
		if err != nil {
			return handler.RespondError(c, err)
		}

		var req api.UpdateProfileRequest
		if err := handler.Bind(c, &req); err != nil {
			return handler.RespondError(c, err)
		}

		err = updateProfile(c.Request().Context(), db, userID, store.ProfileUpdate{
			Name:          req.Name,
			College:       req.College,
			Year:          req.Year,
			Accommodation: req.Accommodation,
			Phone:         req.Phone,
		})
		if errors.Is(err, store.ErrNotFound) {
			return handler.RespondError(c, apperr.New(apperr.NotFound, "User not found!"))
		}
		if err != nil {
			return handler.RespondError(c, apperr.Wrap(err, "Failed to update profile."))
		}
		return c.JSON(http.StatusOK, api.MessageResponse{Message: "Profile updated successfully!"})
	}
}

// PaymentStatusHandler 回傳付款狀態
// @Summary     付款狀態
// @Tags        users
// @Produce     json
// @Success     200 {object} api.PaymentStatusResponse
// @Failure     401 {object} api.ErrorResponse
// @Failure     404 {object} api.ErrorResponse
// @Failure     500 {object} api.ErrorResponse
// @Security    BearerAuth
// @Router      /user/payment-status [get]
func PaymentStatusHandler(db database.DB) echo.HandlerFunc {
	return func(c echo.Context) error {
		userID, err := currentUser(c)
		if err != nil {
			return handler.RespondError(c, err)
		}
		status, err := getPaymentStatus(c.Request().Context(), db, userID)
		if errors.Is(err, store.ErrNotFound) {
			return handler.RespondError(c, apperr.New(apperr.NotFound, "User not found!"))
		}
		if err != nil {
			return handler.RespondError(c, apperr.Wrap(err, "Failed to fetch payment status."))
		}
		return c.JSON(http.StatusOK, api.PaymentStatusResponse{PaymentStatus: status})
	}
}

// @Summary     已報名活動
// @Tags        users
// @Produce     json
// @Success     200 {object} api.UserEventsResponse
// @Failure     401 {object} api.ErrorResponse
// @Failure     500 {object} api.ErrorResponse
// @Security    BearerAuth
// @Router      /user/events [get]
func RegisteredEventsHandler(db database.DB) echo.HandlerFunc {
	return func(c echo.Context) error {
		userID, err := currentUser(c)
		if err != nil {
			return handler.RespondError(c, err)
		}
		names, err := listRegisteredEventNames(c.Request().Context(), db, userID)
		if err != nil {
			return handler.RespondError(c, apperr.Wrap(err, "Failed to fetch registered events."))
		}
		return c.JSON(http.StatusOK, api.UserEventsResponse{Events: names})
	}
}
