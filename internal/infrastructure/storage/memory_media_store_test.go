package storage

import (
	"bytes"
	"context"
	"image"
	"image/png"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/wanderlens/backend/internal/domain/media"
)

func pngBytes(t *testing.T, width, height int) []byte {
	t.Helper()
	var buf bytes.Buffer
	img := image.NewRGBA(image.Rect(0, 0, width, height))
	require.NoError(t, png.Encode(&buf, img))
	return buf.Bytes()
}

func TestMemoryMediaStore_Store(t *testing.T) {
	store := NewMemoryMediaStore()
	ctx := context.Background()

	t.Run("stores png and detects dimensions", func(t *testing.T) {
		data := pngBytes(t, 640, 480)

		asset, err := store.Store(ctx, data, "photos/uploads")
		require.NoError(t, err)
		assert.True(t, strings.HasPrefix(asset.AssetID, "photos/uploads/"))
		assert.True(t, strings.HasSuffix(asset.AssetID, ".png"))
		assert.Equal(t, "image/png", asset.MimeType)
		assert.Equal(t, 640, asset.Width)
		assert.Equal(t, 480, asset.Height)
		assert.Equal(t, int64(len(data)), asset.ByteSize)
		assert.Equal(t, "https://media.example.com/"+asset.AssetID, asset.URL)
		assert.True(t, store.Contains(asset.AssetID))
	})

	t.Run("empty payload", func(t *testing.T) {
		_, err := store.Store(ctx, nil, "photos/uploads")
		assert.Error(t, err)
	})

	t.Run("non-image payload falls back to bin", func(t *testing.T) {
		asset, err := store.Store(ctx, []byte("plain text payload for detection"), "docs")
		require.NoError(t, err)
		assert.True(t, strings.HasSuffix(asset.AssetID, ".bin"))
		assert.Zero(t, asset.Width)
	})
}

func TestMemoryMediaStore_Delete(t *testing.T) {
	store := NewMemoryMediaStore()
	ctx := context.Background()

	asset, err := store.Store(ctx, pngBytes(t, 10, 10), "photos/uploads")
	require.NoError(t, err)
	require.Equal(t, 1, store.Len())

	require.NoError(t, store.Delete(ctx, asset.AssetID))
	assert.Equal(t, 0, store.Len())
	assert.False(t, store.Contains(asset.AssetID))

	assert.Error(t, store.Delete(ctx, asset.AssetID))
	assert.Error(t, store.Delete(ctx, ""))
}

func TestMemoryMediaStore_VariantURL(t *testing.T) {
	store := NewMemoryMediaStore()
	store.BaseURL = "http://localhost:9000/bucket"

	url := store.VariantURL("photos/uploads/x.png", media.VariantThumbnail, nil)
	assert.Equal(t, "http://localhost:9000/bucket/w_300,h_300,c_fill/photos/uploads/x.png", url)
}
