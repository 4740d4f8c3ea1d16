package handler

import (
	"net/http"
	"storefront-commerce/internal/dto"
	"storefront-commerce/internal/service"

	"github.com/labstack/echo/v4"
)

type ReviewHandler struct {
	reviewService service.ReviewService
}

func NewReviewHandler(reviewService service.ReviewService) *ReviewHandler {
	return &ReviewHandler{
		reviewService: reviewService,
	}
}

// ListForProduct is public and only returns approved reviews.
func (h *ReviewHandler) ListForProduct(c echo.Context) error {
	reviews, err := h.reviewService.ListForProduct(c.Request().Context(), c.Param("type"), c.Param("id"))
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, reviews)
}

func (h *ReviewHandler) ListMine(c echo.Context) error {
	id, err := customerID(c)
	if err != nil {
		return err
	}

	reviews, err := h.reviewService.ListForCustomer(c.Request().Context(), id)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, reviews)
}

func (h *ReviewHandler) Create(c echo.Context) error {
	id, err := customerID(c)
	if err != nil {
		return err
	}
	var req dto.ReviewRequest
	if err := bind(c, &req); err != nil {
		return err
	}

	review, err := h.reviewService.Create(c.Request().Context(), id, &req)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusCreated, review)
}
