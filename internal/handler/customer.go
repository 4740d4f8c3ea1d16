package handler

import (
	"net/http"
	"storefront-commerce/internal/dto"
	"storefront-commerce/internal/service"

	"github.com/labstack/echo/v4"
)

// CustomerHandler serves the routes behind the customer gate. Every call is
// scoped to the customer named by the token.
type CustomerHandler struct {
	customerService service.CustomerService
}

func NewCustomerHandler(customerService service.CustomerService) *CustomerHandler {
	return &CustomerHandler{
		customerService: customerService,
	}
}

func (h *CustomerHandler) ListAddresses(c echo.Context) error {
	id, err := customerID(c)
	if err != nil {
		return err
	}

	addresses, err := h.customerService.ListAddresses(c.Request().Context(), id)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, addresses)
}

func (h *CustomerHandler) AddAddress(c echo.Context) error {
	id, err := customerID(c)
	if err != nil {
		return err
	}
	var req dto.AddressRequest
	if err := bind(c, &req); err != nil {
		return err
	}

	address, err := h.customerService.AddAddress(c.Request().Context(), id, &req)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusCreated, address)
}

func (h *CustomerHandler) ListFavorites(c echo.Context) error {
	id, err := customerID(c)
	if err != nil {
		return err
	}

	favorites, err := h.customerService.ListFavorites(c.Request().Context(), id)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, favorites)
}

func (h *CustomerHandler) AddFavorite(c echo.Context) error {
	ctx := c.Request().Context()
	id, err := customerID(c)
	if err != nil {
		return err
	}
	var req dto.ProductRef
	if err := bind(c, &req); err != nil {
		return err
	}

	if err := h.customerService.AddFavorite(ctx, id, &req); err != nil {
		return err
	}
	favorites, err := h.customerService.ListFavorites(ctx, id)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusCreated, favorites)
}

func (h *CustomerHandler) RemoveFavorite(c echo.Context) error {
	id, err := customerID(c)
	if err != nil {
		return err
	}
	favoriteID, err := parseID(c, "id", "favorite")
	if err != nil {
		return err
	}

	if err := h.customerService.RemoveFavorite(c.Request().Context(), id, favoriteID); err != nil {
		return err
	}
	return c.NoContent(http.StatusNoContent)
}

func (h *CustomerHandler) cart(c echo.Context, customerID uint, status int) error {
	items, err := h.customerService.ListCart(c.Request().Context(), customerID)
	if err != nil {
		return err
	}
	return c.JSON(status, items)
}

func (h *CustomerHandler) ListCart(c echo.Context) error {
	id, err := customerID(c)
	if err != nil {
		return err
	}
	return h.cart(c, id, http.StatusOK)
}

func (h *CustomerHandler) AddToCart(c echo.Context) error {
	id, err := customerID(c)
	if err != nil {
		return err
	}
	var req dto.CartRequest
	if err := bind(c, &req); err != nil {
		return err
	}

	if err := h.customerService.AddToCart(c.Request().Context(), id, &req); err != nil {
		return err
	}
	return h.cart(c, id, http.StatusOK)
}

func (h *CustomerHandler) SetCartQuantity(c echo.Context) error {
	id, err := customerID(c)
	if err != nil {
		return err
	}
	itemID, err := parseID(c, "id", "cart_item")
	if err != nil {
		return err
	}
	var req dto.CartQuantityRequest
	if err := bind(c, &req); err != nil {
		return err
	}

	if err := h.customerService.SetCartQuantity(c.Request().Context(), id, itemID, req.Quantity); err != nil {
		return err
	}
	return h.cart(c, id, http.StatusOK)
}

func (h *CustomerHandler) RemoveCartItem(c echo.Context) error {
	id, err := customerID(c)
	if err != nil {
		return err
	}
	itemID, err := parseID(c, "id", "cart_item")
	if err != nil {
		return err
	}

	if err := h.customerService.RemoveCartItem(c.Request().Context(), id, itemID); err != nil {
		return err
	}
	return h.cart(c, id, http.StatusOK)
}

func (h *CustomerHandler) ListOrders(c echo.Context) error {
	id, err := customerID(c)
	if err != nil {
		return err
	}

	orders, err := h.customerService.ListOrders(c.Request().Context(), id)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, orders)
}

func (h *CustomerHandler) ListOrderItems(c echo.Context) error {
	id, err := customerID(c)
	if err != nil {
		return err
	}
	orderID, err := parseID(c, "id", "order")
	if err != nil {
		return err
	}

	items, err := h.customerService.ListOrderItems(c.Request().Context(), id, orderID)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, items)
}

func (h *CustomerHandler) Checkout(c echo.Context) error {
	id, err := customerID(c)
	if err != nil {
		return err
	}

	order, err := h.customerService.Checkout(c.Request().Context(), id)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusCreated, order)
}
