package handlers

import (
	"github.com/labstack/echo/v4"
	"github.com/vibewham/vibe-wham/backend/internal/middleware"
)

// currentUserID returns the verified caller id stored by the identity
// middleware. Routes registered behind the middleware always carry it.
func currentUserID(c echo.Context) string {
	if id, ok := c.Get(middleware.ContextUserIDKey).(string); ok {
		return id
	}
	return ""
}
