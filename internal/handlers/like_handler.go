package handlers

import (
	"net/http"

	"github.com/anonto42/movieshare/backend/internal/models"
	"github.com/anonto42/movieshare/backend/internal/services"
	"github.com/labstack/echo/v4"
)

// LikeHandler handles HTTP requests related to likes
type LikeHandler struct {
	engagement *services.EngagementService
}

// NewLikeHandler creates a new LikeHandler
func NewLikeHandler(engagement *services.EngagementService) *LikeHandler {
	return &LikeHandler{engagement: engagement}
}

// RegisterLikeRoutes registers like-related routes
func (h *LikeHandler) RegisterLikeRoutes(g *echo.Group, requireAuth echo.MiddlewareFunc) {
	g.POST("/posts/:id/like", h.ToggleLike, requireAuth)
}

// ToggleLike likes the post, or removes the like if the caller already liked it
func (h *LikeHandler) ToggleLike(c echo.Context) error {
	user, err := getUserFromContext(c)
	if err != nil {
		return err
	}
	postID, err := parseIDParam(c, "id")
	if err != nil {
		return err
	}

	liked, err := h.engagement.ToggleLike(c.Request().Context(), postID, user.ID)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, models.LikeResponse{Liked: liked})
}
