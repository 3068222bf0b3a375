// Package storage keeps uploaded avatar images.
package storage

import (
	"context"
	"errors"
	"io"
	"path/filepath"
	"strings"
)

// ErrNotFound is returned by Open when no avatar has the given name.
var ErrNotFound = errors.New("avatar not found")

// AvatarStore saves and serves avatar files by generated name.
type AvatarStore interface {
	Save(ctx context.Context, name, contentType string, r io.Reader) error
	Open(ctx context.Context, name string) (io.ReadCloser, string, error)
}

// validName rejects anything that could escape the store's namespace.
func validName(name string) bool {
	return name != "" &&
		name == filepath.Base(name) &&
		!strings.HasPrefix(name, ".") &&
		!strings.ContainsAny(name, `/\`)
}

// avatarTypes are the raster formats accepted as avatars. Script-capable
// formats such as SVG are left out.
var avatarTypes = map[string]bool{
	"image/png":  true,
	"image/jpeg": true,
	"image/gif":  true,
	"image/webp": true,
}

// AllowedAvatarType reports whether contentType names an accepted avatar format.
func AllowedAvatarType(contentType string) bool {
	mediaType, _, _ := strings.Cut(contentType, ";")
	return avatarTypes[strings.ToLower(strings.TrimSpace(mediaType))]
}
