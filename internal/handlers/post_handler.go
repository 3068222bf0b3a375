package handlers

import (
	"net/http"

	"github.com/anonto42/movieshare/backend/internal/models"
	"github.com/anonto42/movieshare/backend/internal/services"
	"github.com/labstack/echo/v4"
)

// PostHandler handles HTTP requests related to posts
type PostHandler struct {
	content *services.ContentService
}

// NewPostHandler creates a new PostHandler
func NewPostHandler(content *services.ContentService) *PostHandler {
	return &PostHandler{content: content}
}

// RegisterPostRoutes registers post-related routes
func (h *PostHandler) RegisterPostRoutes(g *echo.Group, requireAuth echo.MiddlewareFunc) {
	g.POST("/posts", h.CreatePost, requireAuth)
	g.GET("/posts", h.GetPosts)
	g.GET("/posts/me", h.GetMyPosts, requireAuth)
	g.PUT("/posts/:id", h.UpdatePost, requireAuth)
	g.DELETE("/posts/:id", h.DeletePost, requireAuth)
}

// CreatePost handles the creation of a new post
func (h *PostHandler) CreatePost(c echo.Context) error {
	user, err := getUserFromContext(c)
	if err != nil {
		return err
	}

	var req models.CreatePostRequest
	if err := bindAndValidate(c, &req); err != nil {
		return err
	}

	post, err := h.content.CreatePost(c.Request().Context(), user.ID, req.Title, req.Content, req.Visibility)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusCreated, post)
}

// GetPosts lists public posts with optional search, sort and paging
func (h *PostHandler) GetPosts(c echo.Context) error {
	var query models.ListPostsQuery
	if err := bindAndValidate(c, &query); err != nil {
		return err
	}

	posts, err := h.content.ListPosts(c.Request().Context(), models.PostFilter{
		Search: query.Search,
		Sort:   models.PostSort(query.Sort),
		Limit:  query.Limit,
		Offset: query.Offset,
	})
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, posts)
}

// GetMyPosts lists every post of the caller, private ones included
func (h *PostHandler) GetMyPosts(c echo.Context) error {
	user, err := getUserFromContext(c)
	if err != nil {
		return err
	}

	posts, err := h.content.ListOwnedPosts(c.Request().Context(), user.ID)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, posts)
}

// UpdatePost replaces title and content of a post owned by the caller
func (h *PostHandler) UpdatePost(c echo.Context) error {
	user, err := getUserFromContext(c)
	if err != nil {
		return err
	}
	postID, err := parseIDParam(c, "id")
	if err != nil {
		return err
	}

	var req models.UpdatePostRequest
	if err := bindAndValidate(c, &req); err != nil {
		return err
	}

	post, err := h.content.UpdatePost(c.Request().Context(), postID, user.ID, req.Title, req.Content)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, post)
}

// DeletePost deletes a post owned by the caller along with its likes, bookmarks and comments
func (h *PostHandler) DeletePost(c echo.Context) error {
	user, err := getUserFromContext(c)
	if err != nil {
		return err
	}
	postID, err := parseIDParam(c, "id")
	if err != nil {
		return err
	}

	if err := h.content.DeletePost(c.Request().Context(), postID, user.ID); err != nil {
		return err
	}
	return c.NoContent(http.StatusNoContent)
}
