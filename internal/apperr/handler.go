package apperr

import (
	"errors"
	"fmt"
	"log/slog"
	"net/http"

	"github.com/labstack/echo/v4"
)

func GlobalErrorHandler() echo.HTTPErrorHandler {
	return func(err error, c echo.Context) {
		if c.Response().Committed {
			return
		}

		var ve *ValidationError
		if errors.As(err, &ve) {
			_ = c.JSON(http.StatusBadRequest, map[string]string{"error": ve.Error(), "title": "validation error"})
			return
		}

		var re *InvalidReferenceError
		if errors.As(err, &re) {
			_ = c.JSON(http.StatusUnprocessableEntity, map[string]string{"error": re.Error(), "title": "invalid reference"})
			return
		}

		var oe *OracleError
		if errors.As(err, &oe) {
			slog.Warn("Oracle failure surfaced to client", "op", oe.Op, "error", oe.Err)
			_ = c.JSON(http.StatusBadGateway, map[string]string{"error": "query understanding is unavailable", "title": "upstream error"})
			return
		}

		var he *echo.HTTPError
		if errors.As(err, &he) {
			msg := fmt.Sprintf("%v", he.Message)
			_ = c.JSON(he.Code, map[string]string{"error": msg})
			return
		}

		slog.Error("Unhandled error", "error", err)
		_ = c.JSON(http.StatusInternalServerError, map[string]string{"error": "internal server error"})
	}
}
