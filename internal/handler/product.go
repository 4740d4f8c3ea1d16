package handler

import (
	"net/http"
	"storefront-commerce/internal/apperror"
	"storefront-commerce/internal/dto"
	"storefront-commerce/internal/service"
	"strconv"

	"github.com/labstack/echo/v4"
)

type ManualProductHandler struct {
	catalogService service.CatalogService
}

func NewManualProductHandler(catalogService service.CatalogService) *ManualProductHandler {
	return &ManualProductHandler{
		catalogService: catalogService,
	}
}

func (h *ManualProductHandler) List(c echo.Context) error {
	featuredOnly := false
	if raw := c.QueryParam("featured"); raw != "" {
		v, err := strconv.ParseBool(raw)
		if err != nil {
			return apperror.Validation("featured", "must be a boolean")
		}
		featuredOnly = v
	}

	products, err := h.catalogService.ListManualProducts(c.Request().Context(), featuredOnly)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, products)
}

func (h *ManualProductHandler) Get(c echo.Context) error {
	id, err := parseID(c, "id", "manual_product")
	if err != nil {
		return err
	}

	product, err := h.catalogService.GetManualProduct(c.Request().Context(), id)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, product)
}

func (h *ManualProductHandler) Create(c echo.Context) error {
	var req dto.ManualProductRequest
	if err := bind(c, &req); err != nil {
		return err
	}

	product, err := h.catalogService.CreateManualProduct(c.Request().Context(), &req)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusCreated, product)
}

func (h *ManualProductHandler) Update(c echo.Context) error {
	id, err := parseID(c, "id", "manual_product")
	if err != nil {
		return err
	}
	var req dto.ManualProductRequest
	if err := bind(c, &req); err != nil {
		return err
	}

	product, err := h.catalogService.UpdateManualProduct(c.Request().Context(), id, &req)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, product)
}

func (h *ManualProductHandler) Delete(c echo.Context) error {
	id, err := parseID(c, "id", "manual_product")
	if err != nil {
		return err
	}

	if err := h.catalogService.DeleteManualProduct(c.Request().Context(), id); err != nil {
		return err
	}
	return c.NoContent(http.StatusNoContent)
}
