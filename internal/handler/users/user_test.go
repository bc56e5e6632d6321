package users

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"event-registration/internal/api"
	"event-registration/internal/database"
	"event-registration/internal/middleware"
	"event-registration/internal/model"
	"event-registration/internal/service"
	"event-registration/internal/store"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/require"
)

func restoreGlobals() {
	getUserByID = store.GetUserByID
	setQRCode = store.SetQRCode
	updateProfile = store.UpdateProfile
	getPaymentStatus = store.GetPaymentStatus
	listRegisteredEventNames = store.ListRegisteredEventNames
}

func newCtx(method, body string, userID int) (echo.Context, *httptest.ResponseRecorder) {
	e := echo.New()
	e.Validator = api.NewValidator()
	req := httptest.NewRequest(method, "/", strings.NewReader(body))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)
	if userID != 0 {
		c.Set(middleware.ContextUserKey, &service.Claims{UserID: userID, Role: model.RoleUser})
	}
	return c, rec
}

func TestGetProfileHandler(t *testing.T) {
	t.Run("unauthenticated", func(t *testing.T) {
		ctx, rec := newCtx(http.MethodGet, "", 0)
		require.NoError(t, GetProfileHandler(&database.FakeDB{}, "EVT_")(ctx))
		require.Equal(t, http.StatusUnauthorized, rec.Code)
	})

	t.Run("existing code", func(t *testing.T) {
		t.Cleanup(restoreGlobals)
		code := "EVT_12"
		getUserByID = func(_ context.Context, _ database.Querier, id int) (*model.User, error) {
			return &model.User{ID: id, Name: "Asha", Role: model.RoleUser, QRCodeID: &code}, nil
		}
		setQRCode = func(context.Context, database.Querier, int, string) error {
			t.Fatal("display code already assigned")
			return nil
		}
		ctx, rec := newCtx(http.MethodGet, "", 12)
		require.NoError(t, GetProfileHandler(&database.FakeDB{}, "EVT_")(ctx))
		require.Equal(t, http.StatusOK, rec.Code)

		var got api.ProfileResponse
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &got))
		require.Equal(t, "EVT_12", got.QRCodeID)
		require.Equal(t, "Asha", got.Name)
	})

	t.Run("assigns missing code", func(t *testing.T) {
		t.Cleanup(restoreGlobals)
		getUserByID = func(_ context.Context, _ database.Querier, id int) (*model.User, error) {
			return &model.User{ID: id, Name: "Asha"}, nil
		}
		var assigned string
		setQRCode = func(_ context.Context, _ database.Querier, id int, c string) error {
			require.Equal(t, 15, id)
			assigned = c
			return nil
		}
		ctx, rec := newCtx(http.MethodGet, "", 15)
		require.NoError(t, GetProfileHandler(&database.FakeDB{}, "EVT_")(ctx))
		require.Equal(t, http.StatusOK, rec.Code)
		require.Equal(t, "EVT_15", assigned)
		require.Contains(t, rec.Body.String(), `"qr_code_id":"EVT_15"`)
	})

	t.Run("not found", func(t *testing.T) {
		t.Cleanup(restoreGlobals)
		getUserByID = func(context.Context, database.Querier, int) (*model.User, error) {
			return nil, fmt.Errorf("GetUserByID: %w", store.ErrNotFound)
		}
		ctx, rec := newCtx(http.MethodGet, "", 15)
		require.NoError(t, GetProfileHandler(&database.FakeDB{}, "EVT_")(ctx))
		require.Equal(t, http.StatusNotFound, rec.Code)
	})
}

func TestUpdateProfileHandler(t *testing.T) {
	const body = `{"name":"Asha","college":"MIT","year":"3","accommodation":"yes","phone":"9876543210"}`

	t.Run("invalid phone", func(t *testing.T) {
		ctx, rec := newCtx(http.MethodPost, strings.Replace(body, "9876543210", "98765", 1), 12)
		require.NoError(t, UpdateProfileHandler(&database.FakeDB{})(ctx))
		require.Equal(t, http.StatusBadRequest, rec.Code)
		require.Contains(t, rec.Body.String(), "Must be 10 digits")
	})

	t.Run("success", func(t *testing.T) {
		t.Cleanup(restoreGlobals)
		var got store.ProfileUpdate
		updateProfile = func(_ context.Context, _ database.Querier, id int, p store.ProfileUpdate) error {
			require.Equal(t, 12, id)
			got = p
			return nil
		}
		ctx, rec := newCtx(http.MethodPost, body, 12)
		require.NoError(t, UpdateProfileHandler(&database.FakeDB{})(ctx))
		require.Equal(t, http.StatusOK, rec.Code)
		require.Equal(t, store.ProfileUpdate{Name: "Asha", College: "MIT", Year: "3", Accommodation: "yes", Phone: "9876543210"}, got)
	})

	t.Run("not found", func(t *testing.T) {
		t.Cleanup(restoreGlobals)
		updateProfile = func(context.Context, database.Querier, int, store.ProfileUpdate) error {
			return fmt.Errorf("UpdateProfile: %w", store.ErrNotFound)
		}
		ctx, rec := newCtx(http.MethodPost, body, 12)
		require.NoError(t, UpdateProfileHandler(&database.FakeDB{})(ctx))
		require.Equal(t, http.StatusNotFound, rec.Code)
		require.JSONEq(t, `{"message":"User not found!"}`, rec.Body.String())
	})
}

func TestPaymentStatusHandler(t *testing.T) {
	t.Cleanup(restoreGlobals)
	getPaymentStatus = func(context.Context, database.Querier, int) (string, error) { return "pending", nil }
	ctx, rec := newCtx(http.MethodGet, "", 12)
	require.NoError(t, PaymentStatusHandler(&database.FakeDB{})(ctx))
	require.Equal(t, http.StatusOK, rec.Code)
	require.JSONEq(t, `{"payment_status":"pending"}`, rec.Body.String())

	getPaymentStatus = func(context.Context, database.Querier, int) (string, error) { return "", errors.New("down") }
	ctx, rec = newCtx(http.MethodGet, "", 12)
	require.NoError(t, PaymentStatusHandler(&database.FakeDB{})(ctx))
	require.Equal(t, http.StatusInternalServerError, rec.Code)
}

func TestRegisteredEventsHandler(t *testing.T) {
	t.Cleanup(restoreGlobals)
	listRegisteredEventNames = func(context.Context, database.Querier, int) ([]string, error) {
		return []string{"Paper Presentation", "Hackathon"}, nil
	}
	ctx, rec := newCtx(http.MethodGet, "", 12)
	require.NoError(t, RegisteredEventsHandler(&database.FakeDB{})(ctx))
	require.Equal(t, http.StatusOK, rec.Code)
	require.JSONEq(t, `{"events":["Paper Presentation","Hackathon"]}`, rec.Body.String())
}
