package handlers

import (
	"fmt"

	"github.com/cymate/backend/internal/models"
	"github.com/labstack/echo/v4"
)

// getUserIDFromContext extracts the authenticated user ID from the JWT
// claims stored by the auth middleware.
func getUserIDFromContext(c echo.Context) (uint, error) {
	claims, ok := c.Get("user").(*models.JwtCustomClaims)
	if !ok || claims == nil {
		return 0, fmt.Errorf("missing authentication claims")
	}
	return claims.UserID, nil
}
