package admin

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"event-registration/internal/api"
	"event-registration/internal/apperr"
	"event-registration/internal/database"
	"event-registration/internal/middleware"
	"event-registration/internal/model"
	"event-registration/internal/service"
	"event-registration/internal/store"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/require"
)

func restoreGlobals() {
	listAttendance = store.ListAttendance
	listAttendanceByAdmin = store.ListAttendanceByAdmin
	getUserByID = store.GetUserByID
}

func newCtx(method, body string, adminID int) (echo.Context, *httptest.ResponseRecorder) {
	e := echo.New()
	e.Validator = api.NewValidator()
	req := httptest.NewRequest(method, "/", strings.NewReader(body))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)
	if adminID != 0 {
		c.Set(middleware.ContextUserKey, &service.Claims{UserID: adminID, Role: model.RoleAdmin})
	}
	return c, rec
}

type fakeMarker struct {
	adminID, eventID int
	code             string
	err              error
}

func (f *fakeMarker) Mark(_ context.Context, adminID int, code string, eventID int) (*model.Attendance, error) {
	f.adminID, f.code, f.eventID = adminID, code, eventID
	if f.err != nil {
		return nil, f.err
	}
	return &model.Attendance{ID: 1, EventID: eventID, UserID: 12, AdminID: adminID, Status: model.AttendancePresent}, nil
}

func TestMarkAttendanceHandler(t *testing.T) {
	t.Run("success", func(t *testing.T) {
		m := &fakeMarker{}
		ctx, rec := newCtx(http.MethodPost, `{"qr_code_id":"EVT_12","event_id":10}`, 3)
		require.NoError(t, MarkAttendanceHandler(m)(ctx))
		require.Equal(t, http.StatusOK, rec.Code)
		require.Equal(t, 3, m.adminID)
		require.Equal(t, "EVT_12", m.code)
		require.Equal(t, 10, m.eventID)
		require.JSONEq(t, `{"success":true,"message":"Attendance marked successfully!"}`, rec.Body.String())
	})

	t.Run("missing code", func(t *testing.T) {
		ctx, rec := newCtx(http.MethodPost, `{"event_id":10}`, 3)
		require.NoError(t, MarkAttendanceHandler(&fakeMarker{})(ctx))
		require.Equal(t, http.StatusBadRequest, rec.Code)
	})

	t.Run("already marked", func(t *testing.T) {
		m := &fakeMarker{err: apperr.New(apperr.Conflict, "Attendance already marked!")}
		ctx, rec := newCtx(http.MethodPost, `{"qr_code_id":"EVT_12","event_id":2}`, 3)
		require.NoError(t, MarkAttendanceHandler(m)(ctx))
		require.Equal(t, http.StatusConflict, rec.Code)
		require.JSONEq(t, `{"message":"Attendance already marked!"}`, rec.Body.String())
	})
}

func TestOverallAttendanceHandler(t *testing.T) {
	t.Cleanup(restoreGlobals)
	at := time.Date(2025, 3, 14, 10, 0, 0, 0, time.UTC)
	listAttendance = func(context.Context, database.Querier) ([]model.AttendanceRecord, error) {
		return []model.AttendanceRecord{{ID: 1, UserName: "Asha", College: "MIT", EventName: "Hackathon", Status: "present", MarkedAt: at}}, nil
	}
	ctx, rec := newCtx(http.MethodGet, "", 3)
	require.NoError(t, OverallAttendanceHandler(&database.FakeDB{})(ctx))
	require.Equal(t, http.StatusOK, rec.Code)

	var got []api.AttendanceResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &got))
	require.Len(t, got, 1)
	require.Equal(t, "Asha", got[0].UserName)

	listAttendance = func(context.Context, database.Querier) ([]model.AttendanceRecord, error) {
		return nil, errors.New("down")
	}
	ctx, rec = newCtx(http.MethodGet, "", 3)
	require.NoError(t, OverallAttendanceHandler(&database.FakeDB{})(ctx))
	require.Equal(t, http.StatusInternalServerError, rec.Code)
}

func TestMyAttendanceHandler(t *testing.T) {
	t.Cleanup(restoreGlobals)
	listAttendanceByAdmin = func(_ context.Context, _ database.Querier, adminID int) ([]model.AttendanceRecord, error) {
		require.Equal(t, 3, adminID)
		return nil, nil
	}
	ctx, rec := newCtx(http.MethodGet, "", 3)
	require.NoError(t, MyAttendanceHandler(&database.FakeDB{})(ctx))
	require.Equal(t, http.StatusOK, rec.Code)
	require.JSONEq(t, `{"success":true,"data":[]}`, rec.Body.String())
}

func TestAdminProfileHandler(t *testing.T) {
	t.Cleanup(restoreGlobals)
	getUserByID = func(_ context.Context, _ database.Querier, id int) (*model.User, error) {
		return &model.User{ID: id, Name: "Ravi", Email: "ravi@example.com", College: "MIT", Role: model.RoleAdmin}, nil
	}
	ctx, rec := newCtx(http.MethodGet, "", 3)
	require.NoError(t, AdminProfileHandler(&database.FakeDB{})(ctx))
	require.Equal(t, http.StatusOK, rec.Code)
	require.JSONEq(t, `{"name":"Ravi","email":"ravi@example.com","college":"MIT"}`, rec.Body.String())

	getUserByID = func(context.Context, database.Querier, int) (*model.User, error) {
		return nil, fmt.Errorf("GetUserByID: %w", store.ErrNotFound)
	}
	ctx, rec = newCtx(http.MethodGet, "", 3)
	require.NoError(t, AdminProfileHandler(&database.FakeDB{})(ctx))
	require.Equal(t, http.StatusNotFound, rec.Code)
	require.JSONEq(t, `{"message":"Admin not found!"}`, rec.Body.String())
}
