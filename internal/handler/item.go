package handler

import (
	"net/http"
	"storefront-commerce/internal/dto"
	"storefront-commerce/internal/service"

	"github.com/labstack/echo/v4"
)

type ItemHandler struct {
	catalogService service.CatalogService
}

func NewItemHandler(catalogService service.CatalogService) *ItemHandler {
	return &ItemHandler{
		catalogService: catalogService,
	}
}

func (h *ItemHandler) List(c echo.Context) error {
	items, err := h.catalogService.ListItems(c.Request().Context())
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, items)
}

func (h *ItemHandler) Get(c echo.Context) error {
	id, err := parseID(c, "id", "item")
	if err != nil {
		return err
	}

	item, err := h.catalogService.GetItem(c.Request().Context(), id)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, item)
}

// Create imports a marketplace listing given by id or url in the body or the
// query string.
func (h *ItemHandler) Create(c echo.Context) error {
	var req dto.CreateItemRequest
	if err := bind(c, &req); err != nil {
		return err
	}

	value := req.Value()
	for _, param := range []string{"etsy_listing_id", "etsy_url", "listing_id"} {
		if value != "" {
			break
		}
		value = c.QueryParam(param)
	}

	item, err := h.catalogService.ImportListing(c.Request().Context(), value)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusCreated, item)
}
