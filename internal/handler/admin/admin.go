// Package admin 管理員簽到與出席查詢
package admin

import (
	"context"
	"errors"
	"net/http"

	"event-registration/internal/api"
	"event-registration/internal/apperr"
	"event-registration/internal/database"
	"event-registration/internal/handler"
	"event-registration/internal/middleware"
	"event-registration/internal/model"
	"event-registration/internal/store"

	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog"
)

var (
	listAttendance        = store.ListAttendance
	listAttendanceByAdmin = store.ListAttendanceByAdmin
	getUserByID           = store.GetUserByID
)

// Marker 由 attendance.Marker 實作
type Marker interface {
	Mark(ctx context.Context, adminID int, code string, eventID int) (*model.Attendance, error)
}

func toResponses(records []model.AttendanceRecord) []api.AttendanceResponse {
	out := make([]api.AttendanceResponse, 0, len(records))
	for _, r := range records {
		out = append(out, api.AttendanceResponse{
			ID:        r.ID,
			UserName:  r.UserName,
			College:   r.College,
			EventName: r.EventName,
			Status:    r.Status,
			MarkedAt:  r.MarkedAt,
		})
	}
	return out
}

// MarkAttendanceHandler 以顯示代碼替參加者簽到
// @Summary     簽到
// @Description 活動 1-9 需事先報名；其他活動簽到時自動報名
// @Tags        admin
// @Accept      json
// @Produce     json
// @Param       body body     api.MarkAttendanceRequest true "顯示代碼與活動"
// @Success     200  {object} api.MarkAttendanceResponse
// @Failure     400  {object} api.ErrorResponse
// @Failure     401  {object} api.ErrorResponse
// @Failure     403  {object} api.ErrorResponse
// @Failure     404  {object} api.ErrorResponse
// @Failure     409  {object} api.ErrorResponse
// @Failure     500  {object} api.ErrorResponse
// @Security    BearerAuth
// @Router      /admin/mark-attendance [post]
func MarkAttendanceHandler(marker Marker) echo.HandlerFunc {
	return func(c echo.Context) error {
		claims := middleware.ClaimsFrom(c)
		if claims == nil {
			return handler.RespondError(c, apperr.New(apperr.Unauthenticated, "Unauthorized"))
		}

		var req api.MarkAttendanceRequest
		if err := handler.Bind(c, &req); err != nil {
			return handler.RespondError(c, err)
		}

		rec, err := marker.Mark(c.Request().Context(), claims.UserID, req.QRCodeID, req.EventID)
		if err != nil {
			return handler.RespondError(c, err)
		}

		zerolog.Ctx(c.Request().Context()).Info().
			Int("admin_id", claims.UserID).
			Int("user_id", rec.UserID).
			Int("event_id", rec.EventID).
			Msg("attendance marked")

		return c.JSON(http.StatusOK, api.MarkAttendanceResponse{
			Success: true,
			Message: "Attendance marked successfully!",
		})
	}
}

// OverallAttendanceHandler 所有出席紀錄
// @Summary     全部出席紀錄
// @Tags        admin
// @Produce     json
// @Success     200 {array}  api.AttendanceResponse
// @Failure     401 {object} api.ErrorResponse
// @Failure     403 {object} api.ErrorResponse
// @Failure     500 {object} api.ErrorResponse
// @Security    BearerAuth
// @Router      /admin/overall-attendance [get]
func OverallAttendanceHandler(db database.DB) echo.HandlerFunc {
	return func(c echo.Context) error {
		records, err := listAttendance(c.Request().Context(), db)
		if err != nil {
			return handler.RespondError(c, apperr.Wrap(err, "Failed to fetch attendance."))
		}
		return c.JSON(http.StatusOK, toResponses(records))
	}
}

// MyAttendanceHandler 目前管理員登記的出席紀錄
// @Summary     我登記的出席紀錄
// @Tags        admin
// @Produce     json
// @Success     200 {object} api.AdminAttendanceResponse
// @Failure     401 {object} api.ErrorResponse
// @Failure     403 {object} api.ErrorResponse
// @Failure     500 {object} api.ErrorResponse
// @Security    BearerAuth
// @Router      /admin/attendance [get]
func MyAttendanceHandler(db database.DB) echo.HandlerFunc {
	return func(c echo.Context) error {
		claims := middleware.ClaimsFrom(c)
		if claims == nil {
			return handler.RespondError(c, apperr.New(apperr.Unauthenticated, "Unauthorized"))
		}
		records, err := listAttendanceByAdmin(c.Request().Context(), db, claims.UserID)
		if err != nil {
			return handler.RespondError(c, apperr.Wrap(err, "Failed to fetch attendance."))
		}
		return c.JSON(http.StatusOK, api.AdminAttendanceResponse{Success: true, Data: toResponses(records)})
	}
}

// @Summary     管理員資料
// @Tags        admin
// @Produce     json
// @Success     200 {object} api.AdminProfileResponse
// @Failure     401 {object} api.ErrorResponse
// @Failure     403 {object} api.ErrorResponse
// @Failure     404 {object} api.ErrorResponse
// @Failure     500 {object} api.ErrorResponse
// @Security    BearerAuth
// @Router      /admin/profile [get]
func AdminProfileHandler(db database.DB) echo.HandlerFunc {
	return func(c echo.Context) error {
		claims := middleware.ClaimsFrom(c)
		if claims == nil {
			return handler.RespondError(c, apperr.New(apperr.Unauthenticated, "Unauthorized"))
		}
		user, err := getUserByID(c.Request().Context(), db, claims.UserID)
		if errors.Is(err, store.ErrNotFound) || (err == nil && !user.IsAdmin()) {
			return handler.RespondError(c, apperr.New(apperr.NotFound, "Admin not found!"))
		}
		if err != nil {
			return handler.RespondError(c, apperr.Wrap(err, "Failed to fetch admin profile."))
		}
		return c.JSON(http.StatusOK, api.AdminProfileResponse{
			Name:    user.Name,
			Email:   user.Email,
			College: user.College,
		})
	}
}
