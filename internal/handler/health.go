package handler

import (
	"net/http"
	"storefront-commerce/internal/config"
	"storefront-commerce/internal/dto"

	"github.com/labstack/echo/v4"
)

type HealthHandler struct {
	cfg *config.Config
}

func NewHealthHandler(cfg *config.Config) *HealthHandler {
	return &HealthHandler{
		cfg: cfg,
	}
}

func (h *HealthHandler) Health(c echo.Context) error {
	return c.JSON(http.StatusOK, &dto.HealthResponse{
		Status: "ok",
		Config: dto.HealthConfig{
			EtsyAPIConfigured: h.cfg.Etsy.Configured(),
			JWTConfigured:     h.cfg.JWT.Configured(),
			AdminConfigured:   h.cfg.Admin.Configured(),
		},
	})
}
