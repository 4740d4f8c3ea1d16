package handler

import (
	"net/http"
	"storefront-commerce/internal/dto"
	"storefront-commerce/internal/service"

	"github.com/labstack/echo/v4"
)

type AuthHandler struct {
	accountService service.AccountService
}

func NewAuthHandler(accountService service.AccountService) *AuthHandler {
	return &AuthHandler{
		accountService: accountService,
	}
}

func (h *AuthHandler) AdminLogin(c echo.Context) error {
	var req dto.LoginRequest
	if err := bind(c, &req); err != nil {
		return err
	}

	resp, err := h.accountService.AdminLogin(c.Request().Context(), &req)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, resp)
}

func (h *AuthHandler) Signup(c echo.Context) error {
	var req dto.SignupRequest
	if err := bind(c, &req); err != nil {
		return err
	}

	resp, err := h.accountService.Signup(c.Request().Context(), &req)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusCreated, resp)
}

func (h *AuthHandler) CustomerLogin(c echo.Context) error {
	var req dto.LoginRequest
	if err := bind(c, &req); err != nil {
		return err
	}

	resp, err := h.accountService.CustomerLogin(c.Request().Context(), &req)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, resp)
}

func (h *AuthHandler) Me(c echo.Context) error {
	id, err := customerID(c)
	if err != nil {
		return err
	}

	customer, err := h.accountService.Profile(c.Request().Context(), id)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, customer)
}

func (h *AuthHandler) UpdateMe(c echo.Context) error {
	id, err := customerID(c)
	if err != nil {
		return err
	}
	var req dto.ProfileRequest
	if err := bind(c, &req); err != nil {
		return err
	}

	customer, err := h.accountService.UpdateProfile(c.Request().Context(), id, &req)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, customer)
}
