package handlers

import (
	"errors"
	"io"
	"net/http"

	"github.com/anonto42/movieshare/backend/internal/apperrors"
	"github.com/anonto42/movieshare/backend/internal/models"
	"github.com/anonto42/movieshare/backend/internal/services"
	"github.com/anonto42/movieshare/backend/internal/storage"
	"github.com/gabriel-vasile/mimetype"
	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
)

const (
	avatarURLPrefix = "/static/avatars/"
	maxAvatarBytes  = 5 << 20
)

// UserHandler handles HTTP requests related to users
type UserHandler struct {
	identity *services.IdentityService
	avatars  storage.AvatarStore
}

// NewUserHandler creates a new UserHandler
func NewUserHandler(identity *services.IdentityService, avatars storage.AvatarStore) *UserHandler {
	return &UserHandler{identity: identity, avatars: avatars}
}

// RegisterProfileRoutes registers user profile-related routes
func (h *UserHandler) RegisterProfileRoutes(g *echo.Group, requireAuth echo.MiddlewareFunc) {
	g.GET("/me/profile", h.GetProfile, requireAuth)
	g.PATCH("/me/profile", h.UpdateProfile, requireAuth)
	g.POST("/me/avatar", h.UploadAvatar, requireAuth)
	g.GET(avatarURLPrefix+":name", h.ServeAvatar)
}

// GetProfile retrieves the authenticated user's profile
func (h *UserHandler) GetProfile(c echo.Context) error {
	user, err := getUserFromContext(c)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, user)
}

// UpdateProfile changes only the fields present in the request body
func (h *UserHandler) UpdateProfile(c echo.Context) error {
	user, err := getUserFromContext(c)
	if err != nil {
		return err
	}

	var patch models.ProfilePatch
	if err := bindAndValidate(c, &patch); err != nil {
		return err
	}

	updated, err := h.identity.UpdateProfile(c.Request().Context(), user.ID, patch)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, updated)
}

// UploadAvatar stores an image from the multipart field "file" and points the profile at it
func (h *UserHandler) UploadAvatar(c echo.Context) error {
	user, err := getUserFromContext(c)
	if err != nil {
		return err
	}

	file, err := c.FormFile("file")
	if err != nil {
		return apperrors.Validation("file is required")
	}
	if !storage.AllowedAvatarType(file.Header.Get(echo.HeaderContentType)) {
		return apperrors.Validation("File must be a PNG, JPEG, GIF or WebP image")
	}
	if file.Size > maxAvatarBytes {
		return apperrors.Validation("File is too large")
	}

	src, err := file.Open()
	if err != nil {
		return apperrors.Internal(err)
	}
	defer src.Close()

	// the declared type is client supplied, so sniff the bytes too
	mtype, err := mimetype.DetectReader(src)
	if err != nil {
		return apperrors.Internal(err)
	}
	if !storage.AllowedAvatarType(mtype.String()) {
		return apperrors.Validation("File must be a PNG, JPEG, GIF or WebP image")
	}
	if _, err := src.Seek(0, io.SeekStart); err != nil {
		return apperrors.Internal(err)
	}

	ctx := c.Request().Context()
	name := uuid.NewString() + mtype.Extension()
	if err := h.avatars.Save(ctx, name, mtype.String(), src); err != nil {
		return apperrors.Internal(err)
	}

	updated, err := h.identity.SetAvatar(ctx, user.ID, avatarURLPrefix+name)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, updated)
}

func (h *UserHandler) ServeAvatar(c echo.Context) error {
	rc, contentType, err := h.avatars.Open(c.Request().Context(), c.Param("name"))
	if err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			return apperrors.NotFound("Avatar not found")
		}
		return apperrors.Internal(err)
	}
	defer rc.Close()

	header := c.Response().Header()
	header.Set("X-Content-Type-Options", "nosniff")
	header.Set("Content-Security-Policy", "default-src 'none'; sandbox")
	if !storage.AllowedAvatarType(contentType) {
		// anything outside the raster formats is downloaded, never rendered
		contentType = echo.MIMEOctetStream
		header.Set(echo.HeaderContentDisposition, "attachment")
	}
	return c.Stream(http.StatusOK, contentType, rc)
}
