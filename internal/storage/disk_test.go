package storage

import (
	"bytes"
	"context"
	"io"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// smallest valid PNG header plus IHDR is enough for detection
var pngBytes = []byte("\x89PNG\r\n\x1a\n\x00\x00\x00\rIHDR\x00\x00\x00\x01\x00\x00\x00\x01\x08\x02\x00\x00\x00")

func TestDiskAvatarStore(t *testing.T) {
	ctx := context.Background()
	store, err := NewDiskAvatarStore(t.TempDir())
	require.NoError(t, err)

	require.NoError(t, store.Save(ctx, "a.png", "image/png", bytes.NewReader(pngBytes)))

	rc, contentType, err := store.Open(ctx, "a.png")
	require.NoError(t, err)
	defer rc.Close()
	data, err := io.ReadAll(rc)
	require.NoError(t, err)
	assert.Equal(t, pngBytes, data)
	assert.Equal(t, "image/png", contentType)

	_, _, err = store.Open(ctx, "missing.png")
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestAvatarNamesCannotEscape(t *testing.T) {
	ctx := context.Background()
	store, err := NewDiskAvatarStore(t.TempDir())
	require.NoError(t, err)

	for _, name := range []string{"", "../x.png", "a/b.png", ".hidden", `..\x.png`} {
		assert.Error(t, store.Save(ctx, name, "image/png", bytes.NewReader(pngBytes)), name)
		_, _, err := store.Open(ctx, name)
		assert.ErrorIs(t, err, ErrNotFound, name)
	}
}

func TestAllowedAvatarType(t *testing.T) {
	for _, ct := range []string{"image/png", "image/jpeg", "image/gif", "image/webp", "IMAGE/PNG", "image/jpeg; charset=binary"} {
		assert.True(t, AllowedAvatarType(ct), ct)
	}
	for _, ct := range []string{"", "image/svg+xml", "image/svg+xml; charset=utf-8", "text/html", "image/x-icon", "application/octet-stream"} {
		assert.False(t, AllowedAvatarType(ct), ct)
	}
}
