package handlers

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/cymate/backend/internal/services"
	"github.com/labstack/echo/v4"
)

// NotificationHandler handles notification HTTP requests
type NotificationHandler struct {
	engine *services.NotificationEngine
}

// NewNotificationHandler creates a new NotificationHandler
func NewNotificationHandler(engine *services.NotificationEngine) *NotificationHandler {
	return &NotificationHandler{engine: engine}
}

// RegisterNotificationRoutes registers notification routes
func (h *NotificationHandler) RegisterNotificationRoutes(g *echo.Group) {
	g.GET("", h.ListUnread)
	g.GET("/unread-count", h.UnreadCount)
	g.POST("/:id/mark-read", h.MarkRead)
	g.POST("/mark-all-read", h.MarkAllRead)
}

// ListUnread returns the caller's unread notifications, newest first.
// Read notifications no longer exist, so this is the whole inbox.
func (h *NotificationHandler) ListUnread(c echo.Context) error {
	userID, err := getUserIDFromContext(c)
	if err != nil {
		return echo.NewHTTPError(http.StatusUnauthorized, "Invalid token")
	}

	notifications, err := h.engine.ListUnread(userID)
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}

	return c.JSON(http.StatusOK, echo.Map{
		"success": true,
		"data":    notifications,
		"count":   len(notifications),
	})
}

// UnreadCount returns the number of unread notifications
func (h *NotificationHandler) UnreadCount(c echo.Context) error {
	userID, err := getUserIDFromContext(c)
	if err != nil {
		return echo.NewHTTPError(http.StatusUnauthorized, "Invalid token")
	}

	count, err := h.engine.UnreadCount(userID)
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}

	return c.JSON(http.StatusOK, echo.Map{
		"success": true,
		"count":   count,
	})
}

// MarkRead marks a single notification as read, which deletes it
func (h *NotificationHandler) MarkRead(c echo.Context) error {
	userID, err := getUserIDFromContext(c)
	if err != nil {
		return echo.NewHTTPError(http.StatusUnauthorized, "Invalid token")
	}

	notificationID, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid notification ID")
	}

	if err := h.engine.MarkRead(userID, uint(notificationID)); err != nil {
		if errors.Is(err, services.ErrNotFound) {
			return echo.NewHTTPError(http.StatusNotFound, "Notification not found")
		}
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}

	return c.JSON(http.StatusOK, echo.Map{
		"success": true,
		"message": "Notification marked as read",
	})
}

// MarkAllRead marks all of the caller's notifications as read
func (h *NotificationHandler) MarkAllRead(c echo.Context) error {
	userID, err := getUserIDFromContext(c)
	if err != nil {
		return echo.NewHTTPError(http.StatusUnauthorized, "Invalid token")
	}

	count, err := h.engine.MarkAllRead(userID)
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}

	return c.JSON(http.StatusOK, echo.Map{
		"success": true,
		"message": "All notifications marked as read",
		"count":   count,
	})
}
