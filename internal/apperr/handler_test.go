package apperr_test

import (
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/DjordjeVuckovic/news-pulse/internal/apperr"
	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
)

func TestGlobalErrorHandler_StatusMapping(t *testing.T) {
	tests := []struct {
		name   string
		err    error
		status int
	}{
		{name: "validation", err: apperr.NewValidation("lat is required"), status: http.StatusBadRequest},
		{name: "invalid reference", err: fmt.Errorf("wrap: %w", apperr.NewInvalidReference("article", "x")), status: http.StatusUnprocessableEntity},
		{name: "oracle", err: apperr.NewOracle("analyze", errors.New("timeout")), status: http.StatusBadGateway},
		{name: "echo http error", err: echo.NewHTTPError(http.StatusNotFound, "not found"), status: http.StatusNotFound},
		{name: "unknown", err: errors.New("boom"), status: http.StatusInternalServerError},
	}

	handler := apperr.GlobalErrorHandler()

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			e := echo.New()
			rec := httptest.NewRecorder()
			c := e.NewContext(httptest.NewRequest(http.MethodGet, "/", nil), rec)

			handler(tt.err, c)

			assert.Equal(t, tt.status, rec.Code)
			assert.Contains(t, rec.Body.String(), `"error"`)
		})
	}
}
