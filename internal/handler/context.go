package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"bookstore/internal/auth"
)

// CurrentClaims returns the authenticated user's claims, resolved by the
// JWT middleware before the handler runs.
func CurrentClaims(c echo.Context) (*auth.Claims, error) {
	claims, ok := c.Get("user").(*auth.Claims)
	if !ok {
		return nil, echo.NewHTTPError(http.StatusUnauthorized, "missing or invalid token")
	}
	return claims, nil
}
