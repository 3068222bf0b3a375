package handlers

import (
	"net/http"

	"github.com/anonto42/movieshare/backend/internal/models"
	"github.com/anonto42/movieshare/backend/internal/services"
	"github.com/labstack/echo/v4"
)

// BookmarkHandler handles bookmark HTTP requests
type BookmarkHandler struct {
	engagement *services.EngagementService
}

// NewBookmarkHandler creates a new BookmarkHandler
func NewBookmarkHandler(engagement *services.EngagementService) *BookmarkHandler {
	return &BookmarkHandler{engagement: engagement}
}

// RegisterBookmarkRoutes registers bookmark routes
func (h *BookmarkHandler) RegisterBookmarkRoutes(g *echo.Group, requireAuth echo.MiddlewareFunc) {
	g.POST("/posts/:id/bookmark", h.ToggleBookmark, requireAuth)
	g.GET("/posts/:id/is_bookmarked", h.IsBookmarked, requireAuth)
	g.GET("/posts/bookmarks", h.GetBookmarks, requireAuth)
}

// ToggleBookmark bookmarks the post, or removes the bookmark if present
func (h *BookmarkHandler) ToggleBookmark(c echo.Context) error {
	user, err := getUserFromContext(c)
	if err != nil {
		return err
	}
	postID, err := parseIDParam(c, "id")
	if err != nil {
		return err
	}

	bookmarked, err := h.engagement.ToggleBookmark(c.Request().Context(), postID, user.ID)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, models.BookmarkResponse{Bookmarked: bookmarked})
}

func (h *BookmarkHandler) IsBookmarked(c echo.Context) error {
	user, err := getUserFromContext(c)
	if err != nil {
		return err
	}
	postID, err := parseIDParam(c, "id")
	if err != nil {
		return err
	}

	bookmarked, err := h.engagement.IsBookmarked(c.Request().Context(), postID, user.ID)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, models.BookmarkResponse{Bookmarked: bookmarked})
}

// GetBookmarks lists the caller's bookmarked posts
func (h *BookmarkHandler) GetBookmarks(c echo.Context) error {
	user, err := getUserFromContext(c)
	if err != nil {
		return err
	}

	posts, err := h.engagement.ListBookmarks(c.Request().Context(), user.ID)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, posts)
}
