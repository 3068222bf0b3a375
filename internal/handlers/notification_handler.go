package handlers

import (
	"net/http"

	"github.com/anonto42/movieshare/backend/internal/services"
	"github.com/labstack/echo/v4"
)

// NotificationHandler handles notification-related HTTP requests
type NotificationHandler struct {
	engagement *services.EngagementService
}

// NewNotificationHandler creates a new NotificationHandler
func NewNotificationHandler(engagement *services.EngagementService) *NotificationHandler {
	return &NotificationHandler{engagement: engagement}
}

// RegisterNotificationRoutes registers notification routes
func (h *NotificationHandler) RegisterNotificationRoutes(g *echo.Group, requireAuth echo.MiddlewareFunc) {
	g.GET("/posts/notifications", h.GetNotifications, requireAuth)
	g.GET("/posts/notifications/unread_count", h.GetUnreadCount, requireAuth)
	g.PATCH("/posts/notifications/:id", h.MarkAsSeen, requireAuth)
}

// GetNotifications retrieves the caller's notifications, newest first
func (h *NotificationHandler) GetNotifications(c echo.Context) error {
	user, err := getUserFromContext(c)
	if err != nil {
		return err
	}

	notifications, err := h.engagement.ListNotifications(c.Request().Context(), user.ID)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, notifications)
}

// GetUnreadCount gets the count of unseen notifications
func (h *NotificationHandler) GetUnreadCount(c echo.Context) error {
	user, err := getUserFromContext(c)
	if err != nil {
		return err
	}

	count, err := h.engagement.UnreadCount(c.Request().Context(), user.ID)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, echo.Map{"count": count})
}

// MarkAsSeen marks one of the caller's notifications as seen
func (h *NotificationHandler) MarkAsSeen(c echo.Context) error {
	user, err := getUserFromContext(c)
	if err != nil {
		return err
	}
	notificationID, err := parseIDParam(c, "id")
	if err != nil {
		return err
	}

	notification, err := h.engagement.MarkSeen(c.Request().Context(), notificationID, user.ID)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, notification)
}
