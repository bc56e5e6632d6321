package handler

import (
	"errors"

	"event-registration/internal/api"
	"event-registration/internal/apperr"

	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog"
)

// RespondError 依 apperr.Kind 回應狀態碼；非預期錯誤只記錄不外洩
func RespondError(c echo.Context, err error) error {
	kind := apperr.KindOf(err)
	if kind == apperr.Unexpected {
		zerolog.Ctx(c.Request().Context()).Error().
			Err(err).
			Str("method", c.Request().Method).
			Str("path", c.Path()).
			Msg("request failed")
	}
	return c.JSON(kind.Status(), api.ErrorResponse{Message: apperr.Message(err)})
}

// Bind 先 Bind 再以 e.Validator 驗證；錯誤皆為 apperr.Validation
func Bind(c echo.Context, req any) error {
	if err := c.Bind(req); err != nil {
		return &apperr.Error{Kind: apperr.Validation, Message: "Invalid request body.", Err: err}
	}
	if err := c.Validate(req); err != nil {
		var ae *apperr.Error
		if errors.As(err, &ae) {
			return ae
		}
		return &apperr.Error{Kind: apperr.Validation, Message: err.Error(), Err: err}
	}
	return nil
}
