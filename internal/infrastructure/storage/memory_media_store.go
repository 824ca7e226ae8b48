package storage

import (
	"bytes"
	"context"
	"errors"
	"image"
	"net/http"
	"sync"

	"github.com/wanderlens/backend/internal/application/ingestion"
	"github.com/wanderlens/backend/internal/domain/media"
)

// Ensure MemoryMediaStore implements the ingestion port
var _ ingestion.MediaStore = (*MemoryMediaStore)(nil)

// MemoryMediaStore keeps assets in process memory. Use it for development
// until a real S3-compatible backend is configured.
type MemoryMediaStore struct {
	mu      sync.RWMutex
	objects map[string][]byte

	// BaseURL is the base for delivery URLs.
	// Defaults to "https://media.example.com" if not set.
	BaseURL string
}

// NewMemoryMediaStore creates a new MemoryMediaStore
func NewMemoryMediaStore() *MemoryMediaStore {
	return &MemoryMediaStore{
		objects: make(map[string][]byte),
		BaseURL: "https://media.example.com",
	}
}

// Store keeps the bytes in memory under a generated asset id
func (s *MemoryMediaStore) Store(ctx context.Context, data []byte, folderHint string) (*ingestion.StoredAsset, error) {
	if len(data) == 0 {
		return nil, errors.New("no data to store")
	}

	mimeType := http.DetectContentType(data)
	assetID := buildAssetID(folderHint, mimeType)

	var width, height int
	if cfg, _, err := image.DecodeConfig(bytes.NewReader(data)); err == nil {
		width = cfg.Width
		height = cfg.Height
	}

	s.mu.Lock()
	s.objects[assetID] = append([]byte(nil), data...)
	s.mu.Unlock()

	return &ingestion.StoredAsset{
		AssetID:  assetID,
		URL:      s.BaseURL + "/" + assetID,
		ByteSize: int64(len(data)),
		Width:    width,
		Height:   height,
		MimeType: mimeType,
	}, nil
}

// Delete removes an asset; deleting an unknown asset is an error
func (s *MemoryMediaStore) Delete(ctx context.Context, assetID string) error {
	if assetID == "" {
		return errors.New("asset id is required")
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.objects[assetID]; !ok {
		return errors.New("asset not found: " + assetID)
	}
	delete(s.objects, assetID)
	return nil
}

// VariantURL derives a delivery URL using the shared recipe encoding
func (s *MemoryMediaStore) VariantURL(assetID string, spec media.VariantSpec, watermark *media.WatermarkSetting) string {
	return s.BaseURL + "/" + VariantRecipe(spec, watermark) + "/" + assetID
}

// Contains reports whether an asset is held in memory
func (s *MemoryMediaStore) Contains(assetID string) bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	_, ok := s.objects[assetID]
	return ok
}

// Len returns the number of stored assets
func (s *MemoryMediaStore) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.objects)
}
