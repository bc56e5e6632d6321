// Package events 活動列表、名額與報名
package events

import (
	"context"
	"net/http"
	"strconv"

	"event-registration/internal/api"
	"event-registration/internal/apperr"
	"event-registration/internal/database"
	"event-registration/internal/handler"
	"event-registration/internal/middleware"
	"event-registration/internal/registration"
	"event-registration/internal/store"

	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog"
)

var (
	listEvents = store.ListEvents
	countTeams = store.CountTeams
)

const dateLayout = "02-01-2006"

// Registrar 由 registration.Engine 實作
type Registrar interface {
	Register(ctx context.Context, req registration.Request) (*registration.Result, error)
}

// ListEventsHandler 列出所有活動
// @Summary     活動列表
// @Tags        events
// @Produce     json
// @Success     200 {array}  api.EventResponse
// @Failure     401 {object} api.ErrorResponse
// @Failure     500 {object} api.ErrorResponse
// @Security    BearerAuth
// @Router      /events [get]
func ListEventsHandler(db database.DB) echo.HandlerFunc {
	return func(c echo.Context) error {
		events, err := listEvents(c.Request().Context(), db)
		if err != nil {
			return handler.RespondError(c, apperr.Wrap(err, "Failed to fetch events."))
		}
		out := make([]api.EventResponse, 0, len(events))
		for _, e := range events {
			out = append(out, api.EventResponse{
				ID:    e.ID,
				Name:  e.Name,
				Date:  e.Date.Format(dateLayout),
				Time:  e.Time,
				Venue: e.Venue,
			})
		}
		return c.JSON(http.StatusOK, out)
	}
}

// SlotsTakenHandler 回傳活動已成立的隊伍數
// @Summary     已佔用名額
// @Tags        events
// @Produce     json
// @Param       eventId path     int true "活動 ID"
// @Success     200     {object} api.SlotsTakenResponse
// @Failure     400     {object} api.ErrorResponse
// @Failure     500     {object} api.ErrorResponse
// @Security    BearerAuth
// @Router      /events/slots-taken/{eventId} [get]
func SlotsTakenHandler(db database.DB) echo.HandlerFunc {
	return func(c echo.Context) error {
		eventID, err := strconv.ParseInt(c.Param("eventId"), 10, 32)
		if err != nil || eventID <= 0 {
			return handler.RespondError(c, apperr.New(apperr.Validation, "Invalid event ID."))
		}
		n, err := countTeams(c.Request().Context(), db, int(eventID))
		if err != nil {
			return handler.RespondError(c, apperr.Wrap(err, "Failed to fetch slots data."))
		}
		return c.JSON(http.StatusOK, api.SlotsTakenResponse{SlotsTaken: n})
	}
}

// RegisterEventHandler 為目前使用者 (與隊友) 報名活動
// @Summary     報名活動
// @Description 依活動規則驗證隊伍人數、單場票與重複報名，成功後寄送確認信
// @Tags        events
// @Accept      json
// @Produce     json
// @Param       body body     api.RegisterEventRequest true "活動與隊友"
// @Success     201  {object} api.RegisterEventResponse
// @Failure     400  {object} api.ErrorResponse
// @Failure     401  {object} api.ErrorResponse
// @Failure     403  {object} api.ErrorResponse
// @Failure     404  {object} api.ErrorResponse
// @Failure     409  {object} api.ErrorResponse
// @Failure     500  {object} api.ErrorResponse
// @Security    BearerAuth
// @Router      /events/register [post]
func RegisterEventHandler(reg Registrar) echo.HandlerFunc {
	return func(c echo.Context) error {
		claims := middleware.ClaimsFrom(c)
		if claims == nil {
			return handler.RespondError(c, apperr.New(apperr.Unauthenticated, "Unauthorized"))
		}

		var req api.RegisterEventRequest
		if err := handler.Bind(c, &req); err != nil {
			return handler.RespondError(c, err)
		}

		res, err := reg.Register(c.Request().Context(), registration.Request{
			UserID:    claims.UserID,
			EventID:   req.EventID,
			Teammates: req.Teammates,
		})
		if err != nil {
			return handler.RespondError(c, err)
		}

		zerolog.Ctx(c.Request().Context()).Info().
			Int("user_id", claims.UserID).
			Int("event_id", req.EventID).
			Str("team", res.Team).
			Msg("event registration")

		return c.JSON(http.StatusCreated, api.RegisterEventResponse{
			Success: true,
			Message: "Registration successful!",
			Team:    res.Team,
		})
	}
}
