package middleware

import (
	"storefront-commerce/internal/apperror"
	"storefront-commerce/internal/service"
	"strings"

	"github.com/labstack/echo/v4"
)

const (
	CodeNotAdmin    = "not_admin"
	CodeNotCustomer = "not_customer"

	claimsKey = "auth_claims"
)

func bearerToken(c echo.Context) string {
	header := strings.TrimSpace(c.Request().Header.Get(echo.HeaderAuthorization))
	if len(header) < len("Bearer ") || !strings.EqualFold(header[:len("Bearer ")], "Bearer ") {
		return ""
	}
	return strings.TrimSpace(header[len("Bearer "):])
}

func verify(c echo.Context, tokens service.TokenService) (*service.Claims, error) {
	token := bearerToken(c)
	if token == "" {
		return nil, apperror.Auth(service.CodeMissingToken)
	}
	return tokens.Verify(token)
}

// RequireAdmin rejects requests without a valid admin token. Tokens that
// carry no role are treated as admin tokens.
func RequireAdmin(tokens service.TokenService) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			claims, err := verify(c, tokens)
			if err != nil {
				return err
			}
			if claims.Role != "" && claims.Role != service.RoleAdmin {
				return apperror.Auth(CodeNotAdmin)
			}

			c.Set(claimsKey, claims)
			return next(c)
		}
	}
}

// RequireCustomer rejects requests without a valid customer token and makes
// the customer id available through CustomerID.
func RequireCustomer(tokens service.TokenService) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			claims, err := verify(c, tokens)
			if err != nil {
				return err
			}
			if claims.Role != service.RoleCustomer || claims.CustomerID == nil {
				return apperror.Auth(CodeNotCustomer)
			}

			c.Set(claimsKey, claims)
			return next(c)
		}
	}
}

func ClaimsFromContext(c echo.Context) (*service.Claims, bool) {
	claims, ok := c.Get(claimsKey).(*service.Claims)
	return claims, ok
}

// CustomerID returns the id of the authenticated customer.
func CustomerID(c echo.Context) (uint, bool) {
	claims, ok := ClaimsFromContext(c)
	if !ok || claims.CustomerID == nil {
		return 0, false
	}
	return *claims.CustomerID, true
}
