package handler

import (
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"storefront-commerce/internal/apperror"
	"storefront-commerce/internal/dto"
	"storefront-commerce/internal/middleware"
	"storefront-commerce/internal/service"
	"strconv"

	"github.com/labstack/echo/v4"
)

// forbiddenCodes are auth failures of a caller whose token is valid.
var forbiddenCodes = map[string]bool{
	middleware.CodeNotAdmin:      true,
	middleware.CodeNotCustomer:   true,
	service.CodePurchaseRequired: true,
}

// errorResponse maps an error returned by a handler to a status code and body.
func errorResponse(err error) (int, *dto.ErrorResponse) {
	var (
		authErr       *apperror.AuthError
		validationErr *apperror.ValidationError
		notFoundErr   *apperror.NotFoundError
		conflictErr   *apperror.ConflictError
		upstreamErr   *apperror.UpstreamError
		configErr     *apperror.ConfigError
		httpErr       *echo.HTTPError
	)

	switch {
	case errors.As(err, &authErr):
		status := http.StatusUnauthorized
		if forbiddenCodes[authErr.Code] {
			status = http.StatusForbidden
		}
		return status, &dto.ErrorResponse{Error: authErr.Code}

	case errors.As(err, &validationErr):
		if validationErr.Field == "" {
			return http.StatusBadRequest, &dto.ErrorResponse{Error: validationErr.Reason}
		}
		return http.StatusBadRequest, &dto.ErrorResponse{
			Error:  "validation_error",
			Field:  validationErr.Field,
			Detail: validationErr.Reason,
		}

	case errors.As(err, &notFoundErr):
		return http.StatusNotFound, &dto.ErrorResponse{Error: "not_found", Detail: notFoundErr.Error()}

	case errors.As(err, &conflictErr):
		return http.StatusConflict, &dto.ErrorResponse{Error: conflictErr.Reason}

	case errors.As(err, &upstreamErr):
		detail := upstreamErr.Detail
		if detail == "" {
			detail = "Etsy API request failed."
		}
		return http.StatusBadGateway, &dto.ErrorResponse{
			Error:  upstreamErr.Code,
			Status: upstreamErr.StatusCode,
			Detail: detail,
		}

	case errors.As(err, &configErr):
		return http.StatusInternalServerError, &dto.ErrorResponse{Error: configErr.Code}

	case errors.As(err, &httpErr):
		msg := http.StatusText(httpErr.Code)
		if m, ok := httpErr.Message.(string); ok {
			msg = m
		} else if httpErr.Message != nil {
			msg = fmt.Sprint(httpErr.Message)
		}
		return httpErr.Code, &dto.ErrorResponse{Error: msg}
	}

	return http.StatusInternalServerError, &dto.ErrorResponse{Error: "internal_error"}
}

// NewHTTPErrorHandler writes every handler error as a JSON error body.
// Unexpected errors are logged.
func NewHTTPErrorHandler(logger *slog.Logger) echo.HTTPErrorHandler {
	return func(err error, c echo.Context) {
		if c.Response().Committed {
			return
		}

		status, body := errorResponse(err)
		if status >= http.StatusInternalServerError {
			logger.Error("request failed",
				"method", c.Request().Method,
				"path", c.Path(),
				"status", status,
				"error", err,
			)
		}

		if c.Request().Method == http.MethodHead {
			err = c.NoContent(status)
		} else {
			err = c.JSON(status, body)
		}
		if err != nil {
			logger.Error("write error response", "error", err)
		}
	}
}

func parseID(c echo.Context, name, resource string) (uint, error) {
	id, err := strconv.ParseUint(c.Param(name), 10, 64)
	if err != nil || id == 0 {
		return 0, apperror.NotFound(resource)
	}
	return uint(id), nil
}

func bind(c echo.Context, req interface{}) error {
	if err := c.Bind(req); err != nil {
		return apperror.Validation("body", "invalid request body")
	}
	return nil
}

func customerID(c echo.Context) (uint, error) {
	id, ok := middleware.CustomerID(c)
	if !ok {
		return 0, apperror.Auth(middleware.CodeNotCustomer)
	}
	return id, nil
}
