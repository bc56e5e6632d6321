package middleware

import (
	"bytes"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/require"
)

func TestLoggingMiddleware(t *testing.T) {
	var buf bytes.Buffer
	log := zerolog.New(&buf)

	e := echo.New()
	e.Use(RequestLogger(log))
	e.Use(WithLogger(log))
	e.GET("/hello", func(c echo.Context) error {
		zerolog.Ctx(c.Request().Context()).Info().Str("from", "handler").Msg("inside")
		return c.String(http.StatusTeapot, "hi")
	})

	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/hello", nil))
	require.Equal(t, http.StatusTeapot, rec.Code)

	out := buf.String()
	require.Contains(t, out, `"from":"handler"`)
	require.Contains(t, out, `"uri":"/hello"`)
	require.Contains(t, out, `"status":418`)
}
