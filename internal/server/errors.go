package server

import (
	"errors"
	"fmt"
	"log/slog"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/gradpath/transcript-service/internal/common"
)

func bodyLimit(maxBytes int64) string {
	return fmt.Sprintf("%dM", maxBytes>>20)
}

// newHTTPErrorHandler maps domain errors onto status codes. Extraction and
// schema failures are 422: the request was well formed, the document wasn't.
func newHTTPErrorHandler(logger *slog.Logger) echo.HTTPErrorHandler {
	return func(err error, ctx echo.Context) {
		code := http.StatusInternalServerError
		message := http.StatusText(http.StatusInternalServerError)

		var httpErr *echo.HTTPError
		var appErr *common.AppError
		switch {
		case errors.As(err, &httpErr):
			code = httpErr.Code
			if m, ok := httpErr.Message.(string); ok {
				message = m
			}
		case errors.Is(err, common.ErrNotFound):
			code = http.StatusNotFound
			message = errMessage(err, appErr)
		case errors.Is(err, common.ErrInvalidInput):
			code = http.StatusBadRequest
			message = errMessage(err, appErr)
		case errors.Is(err, common.ErrUnsupportedMedia):
			code = http.StatusUnsupportedMediaType
			message = errMessage(err, appErr)
		case errors.Is(err, common.ErrExtraction), errors.Is(err, common.ErrSchema):
			code = http.StatusUnprocessableEntity
			message = errMessage(err, appErr)
		default:
			logger.Error("unhandled request error", "error", err, "path", ctx.Path())
		}

		if code >= http.StatusInternalServerError {
			logger.Error("request failed", "error", err, "path", ctx.Path(), "status", code)
		}

		if ctx.Response().Committed {
			return
		}
		var werr error
		if ctx.Request().Method == http.MethodHead {
			werr = ctx.NoContent(code)
		} else {
			werr = ctx.JSON(code, echo.Map{"error": message})
		}
		if werr != nil {
			logger.Error("error response write failed", "error", werr)
		}
	}
}

func errMessage(err error, appErr *common.AppError) string {
	if errors.As(err, &appErr) {
		return appErr.Message
	}
	return err.Error()
}
