package handler

import (
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"storefront-commerce/internal/apperror"
	"storefront-commerce/internal/dto"
	"storefront-commerce/internal/middleware"
	"storefront-commerce/internal/service"
	"testing"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestErrorResponse(t *testing.T) {
	tests := []struct {
		name       string
		err        error
		wantStatus int
		wantBody   *dto.ErrorResponse
	}{
		{
			name:       "expired token",
			err:        apperror.Auth(service.CodeTokenExpired),
			wantStatus: http.StatusUnauthorized,
			wantBody:   &dto.ErrorResponse{Error: "token_expired"},
		},
		{
			name:       "wrong role",
			err:        apperror.Auth(middleware.CodeNotCustomer),
			wantStatus: http.StatusForbidden,
			wantBody:   &dto.ErrorResponse{Error: "not_customer"},
		},
		{
			name:       "purchase required",
			err:        fmt.Errorf("create review: %w", apperror.Auth(service.CodePurchaseRequired)),
			wantStatus: http.StatusForbidden,
			wantBody:   &dto.ErrorResponse{Error: "purchase_required"},
		},
		{
			name:       "field validation",
			err:        apperror.Validation("price", "must be >= 0"),
			wantStatus: http.StatusBadRequest,
			wantBody:   &dto.ErrorResponse{Error: "validation_error", Field: "price", Detail: "must be >= 0"},
		},
		{
			name:       "coded validation",
			err:        apperror.Validation("", service.CodeMissingListingID),
			wantStatus: http.StatusBadRequest,
			wantBody:   &dto.ErrorResponse{Error: "missing_listing_id"},
		},
		{
			name:       "not found",
			err:        apperror.NotFound("item"),
			wantStatus: http.StatusNotFound,
			wantBody:   &dto.ErrorResponse{Error: "not_found", Detail: "item not found"},
		},
		{
			name:       "conflict",
			err:        apperror.Conflict("customer", "email_exists", nil),
			wantStatus: http.StatusConflict,
			wantBody:   &dto.ErrorResponse{Error: "email_exists"},
		},
		{
			name:       "upstream",
			err:        &apperror.UpstreamError{Code: "etsy_api_error", StatusCode: 404},
			wantStatus: http.StatusBadGateway,
			wantBody:   &dto.ErrorResponse{Error: "etsy_api_error", Status: 404, Detail: "Etsy API request failed."},
		},
		{
			name:       "config",
			err:        &apperror.ConfigError{Code: service.CodeAdminNotConfigured},
			wantStatus: http.StatusInternalServerError,
			wantBody:   &dto.ErrorResponse{Error: "admin_not_configured"},
		},
		{
			name:       "echo error",
			err:        echo.ErrMethodNotAllowed,
			wantStatus: http.StatusMethodNotAllowed,
			wantBody:   &dto.ErrorResponse{Error: "Method Not Allowed"},
		},
		{
			name:       "unexpected",
			err:        fmt.Errorf("disk on fire"),
			wantStatus: http.StatusInternalServerError,
			wantBody:   &dto.ErrorResponse{Error: "internal_error"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			status, body := errorResponse(tt.err)
			assert.Equal(t, tt.wantStatus, status)
			assert.Equal(t, tt.wantBody, body)
		})
	}
}

func TestHTTPErrorHandlerWritesJSON(t *testing.T) {
	e := echo.New()
	e.HTTPErrorHandler = NewHTTPErrorHandler(slog.New(slog.NewTextHandler(io.Discard, nil)))
	e.GET("/items/:id", func(c echo.Context) error {
		_, err := parseID(c, "id", "item")
		return err
	})

	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/items/abc", nil))

	require.Equal(t, http.StatusNotFound, rec.Code)
	assert.JSONEq(t, `{"error":"not_found","detail":"item not found"}`, rec.Body.String())
}
