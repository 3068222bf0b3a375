package handlers

import (
	"errors"
	"fmt"
	"net/http"
	"strconv"

	"github.com/anonto42/movieshare/backend/internal/apperrors"
	"github.com/anonto42/movieshare/backend/internal/middleware"
	"github.com/anonto42/movieshare/backend/internal/models"
	"github.com/labstack/echo/v4"
	"go.uber.org/zap"
)

// NewHTTPErrorHandler renders every error as {"detail": "..."} with the status of its kind.
// Server-side failures are logged; their cause is never sent to the client.
func NewHTTPErrorHandler(logger *zap.Logger) echo.HTTPErrorHandler {
	return func(err error, c echo.Context) {
		if c.Response().Committed {
			return
		}

		status := http.StatusInternalServerError
		message := "Internal server error"

		var appErr *apperrors.Error
		var httpErr *echo.HTTPError
		switch {
		case errors.As(err, &appErr):
			status = apperrors.HTTPStatus(appErr.Kind)
			message = appErr.Message
		case errors.As(err, &httpErr):
			status = httpErr.Code
			message = fmt.Sprint(httpErr.Message)
		}

		if status >= http.StatusInternalServerError {
			logger.Error("request failed",
				zap.String("method", c.Request().Method),
				zap.String("path", c.Path()),
				zap.Error(err),
			)
		}

		if c.Request().Method == http.MethodHead {
			err = c.NoContent(status)
		} else {
			err = c.JSON(status, echo.Map{"detail": message})
		}
		if err != nil {
			logger.Error("failed to write error response", zap.Error(err))
		}
	}
}

// getUserFromContext returns the user placed on the context by the auth middleware.
func getUserFromContext(c echo.Context) (*models.User, error) {
	user, ok := c.Get(middleware.UserContextKey).(*models.User)
	if !ok || user == nil {
		return nil, apperrors.Unauthenticated("Invalid or expired token")
	}
	return user, nil
}

func parseIDParam(c echo.Context, name string) (uint, error) {
	id, err := strconv.ParseUint(c.Param(name), 10, 64)
	if err != nil || id == 0 {
		return 0, apperrors.Validation("Invalid " + name)
	}
	return uint(id), nil
}

// bindAndValidate decodes the request into req and runs the registered validator.
func bindAndValidate(c echo.Context, req interface{}) error {
	if err := c.Bind(req); err != nil {
		return apperrors.Wrap(apperrors.KindValidation, "Invalid request payload", err)
	}
	if err := c.Validate(req); err != nil {
		return apperrors.Wrap(apperrors.KindValidation, err.Error(), err)
	}
	return nil
}
