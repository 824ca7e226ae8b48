package ingestion

import (
	"context"

	"github.com/wanderlens/backend/internal/application/places"
	"github.com/wanderlens/backend/internal/domain/media"
	"github.com/wanderlens/backend/internal/domain/photo"
	"github.com/wanderlens/backend/internal/domain/shared/valueobject"
)

// StoredAsset describes bytes accepted by the media store
type StoredAsset struct {
	AssetID  string
	URL      string
	ByteSize int64
	Width    int
	Height   int
	MimeType string
}

// MediaStore accepts raw bytes and returns a stable content identifier.
// Derived display variants are produced on demand from the asset id.
type MediaStore interface {
	Store(ctx context.Context, data []byte, folderHint string) (*StoredAsset, error)
	Delete(ctx context.Context, assetID string) error
	// VariantURL returns the delivery URL for a derived rendition. The
	// watermark is applied only to variants that carry it; pass nil for a
	// clean rendition.
	VariantURL(assetID string, spec media.VariantSpec, watermark *media.WatermarkSetting) string
}

// GeoResolver turns coordinates or a postal code into address information
type GeoResolver interface {
	ReverseGeocode(ctx context.Context, point valueobject.GeoPoint) (places.ResolvedLocation, error)
	ForwardGeocode(ctx context.Context, postalCode string) (places.ResolvedLocation, error)
}

// ExifExtractor pulls camera metadata and embedded GPS coordinates out of
// image bytes. Extraction is best-effort; callers degrade to empty metadata
// on error.
type ExifExtractor interface {
	Extract(data []byte) (photo.ExifData, *valueobject.GeoPoint, error)
}
