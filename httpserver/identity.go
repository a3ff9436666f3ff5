package httpserver

import (
	"github.com/golang-jwt/jwt/v5"
	"github.com/labstack/echo/v4"
)

// currentUserID extracts the authenticated user's id from the JWT the
// middleware stored on the context. It returns 0 when no valid token is
// present, which downstream services treat as unauthenticated.
func currentUserID(c echo.Context) int64 {
	token, ok := c.Get("user").(*jwt.Token)
	if !ok || token == nil {
		return 0
	}

	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok {
		return 0
	}

	// Numeric claims round-trip as float64.
	rawID, ok := claims["user_id"].(float64)
	if !ok {
		return 0
	}

	return int64(rawID)
}
