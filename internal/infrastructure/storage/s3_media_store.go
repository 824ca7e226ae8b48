// Package storage provides media store implementations for photo bytes
// and derived display variants.
package storage

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"image"
	_ "image/gif"
	_ "image/jpeg"
	_ "image/png"
	"net/http"
	"net/url"
	"strings"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/aws/aws-sdk-go-v2/service/s3/types"
	"github.com/google/uuid"
	"github.com/wanderlens/backend/internal/application/ingestion"
	"github.com/wanderlens/backend/internal/domain/media"
	infraconfig "github.com/wanderlens/backend/internal/infrastructure/config"
	"go.uber.org/zap"
)

// Ensure S3MediaStore implements the ingestion port
var _ ingestion.MediaStore = (*S3MediaStore)(nil)

// S3MediaStore stores photo bytes in any S3-compatible backend (AWS S3,
// MinIO, RustFS, etc.) and derives variant delivery URLs under a public
// base URL served by an image proxy.
type S3MediaStore struct {
	client        *s3.Client
	bucket        string
	publicBaseURL string
	logger        *zap.Logger
}

// S3MediaStoreOption is a functional option for configuring S3MediaStore
type S3MediaStoreOption func(*S3MediaStore)

// WithLogger sets a custom logger for S3MediaStore
func WithLogger(logger *zap.Logger) S3MediaStoreOption {
	return func(s *S3MediaStore) {
		s.logger = logger
	}
}

// NewS3MediaStore creates a new S3MediaStore from configuration.
func NewS3MediaStore(cfg *infraconfig.StorageConfig, opts ...S3MediaStoreOption) (*S3MediaStore, error) {
	if cfg == nil {
		return nil, errors.New("storage configuration is required")
	}
	if cfg.Bucket == "" {
		return nil, errors.New("storage bucket is required")
	}
	if cfg.AccessKey == "" {
		return nil, errors.New("storage access key is required")
	}
	if cfg.SecretKey == "" {
		return nil, errors.New("storage secret key is required")
	}

	endpoint := cfg.Endpoint
	if endpoint == "" {
		endpoint = "http://localhost:9000"
	}
	if !strings.HasPrefix(endpoint, "http://") && !strings.HasPrefix(endpoint, "https://") {
		if cfg.UseSSL {
			endpoint = "https://" + endpoint
		} else {
			endpoint = "http://" + endpoint
		}
	}
	if _, err := url.Parse(endpoint); err != nil {
		return nil, fmt.Errorf("invalid storage endpoint: %w", err)
	}

	region := cfg.Region
	if region == "" {
		region = "us-east-1"
	}

	awsCfg, err := awsconfig.LoadDefaultConfig(context.Background(),
		awsconfig.WithRegion(region),
		awsconfig.WithCredentialsProvider(credentials.NewStaticCredentialsProvider(
			cfg.AccessKey,
			cfg.SecretKey,
			"",
		)),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to create AWS config: %w", err)
	}

	client := s3.NewFromConfig(awsCfg, func(o *s3.Options) {
		o.UsePathStyle = cfg.UsePathStyle
		o.BaseEndpoint = aws.String(endpoint)
	})

	publicBaseURL := strings.TrimSuffix(cfg.PublicBaseURL, "/")
	if publicBaseURL == "" {
		publicBaseURL = endpoint + "/" + cfg.Bucket
	}

	store := &S3MediaStore{
		client:        client,
		bucket:        cfg.Bucket,
		publicBaseURL: publicBaseURL,
		logger:        zap.NewNop(),
	}

	for _, opt := range opts {
		opt(store)
	}

	return store, nil
}

// EnsureBucket creates the bucket if it doesn't exist.
// Call this during application startup to ensure the bucket is ready.
func (s *S3MediaStore) EnsureBucket(ctx context.Context) error {
	_, err := s.client.HeadBucket(ctx, &s3.HeadBucketInput{
		Bucket: aws.String(s.bucket),
	})
	if err == nil {
		return nil
	}

	var notFound *types.NotFound
	var noSuchBucket *types.NoSuchBucket
	if !errors.As(err, &notFound) && !errors.As(err, &noSuchBucket) {
		return fmt.Errorf("failed to check bucket existence: %w", err)
	}

	s.logger.Info("Creating storage bucket", zap.String("bucket", s.bucket))
	_, err = s.client.CreateBucket(ctx, &s3.CreateBucketInput{
		Bucket: aws.String(s.bucket),
	})
	if err != nil {
		// Another instance may have created it concurrently
		var alreadyOwned *types.BucketAlreadyOwnedByYou
		if errors.As(err, &alreadyOwned) {
			return nil
		}
		return fmt.Errorf("failed to create bucket: %w", err)
	}

	return nil
}

// Store uploads photo bytes and returns the stored asset metadata. The
// asset id doubles as the object key; dimensions are decoded from the
// image header without loading the full image.
func (s *S3MediaStore) Store(ctx context.Context, data []byte, folderHint string) (*ingestion.StoredAsset, error) {
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

	_, err := s.client.PutObject(ctx, &s3.PutObjectInput{
		Bucket:      aws.String(s.bucket),
		Key:         aws.String(assetID),
		Body:        bytes.NewReader(data),
		ContentType: aws.String(mimeType),
	})
	if err != nil {
		return nil, fmt.Errorf("failed to upload object: %w", err)
	}

	s.logger.Debug("Stored media asset",
		zap.String("asset_id", assetID),
		zap.Int("bytes", len(data)),
	)

	return &ingestion.StoredAsset{
		AssetID:  assetID,
		URL:      s.publicBaseURL + "/" + assetID,
		ByteSize: int64(len(data)),
		Width:    width,
		Height:   height,
		MimeType: mimeType,
	}, nil
}

// Delete removes a stored asset
func (s *S3MediaStore) Delete(ctx context.Context, assetID string) error {
	if assetID == "" {
		return errors.New("asset id is required")
	}

	_, err := s.client.DeleteObject(ctx, &s3.DeleteObjectInput{
		Bucket: aws.String(s.bucket),
		Key:    aws.String(assetID),
	})
	if err != nil {
		return fmt.Errorf("failed to delete object: %w", err)
	}

	return nil
}

// VariantURL returns the delivery URL for a derived rendition. The recipe
// is encoded as a path segment the image proxy resolves on demand.
func (s *S3MediaStore) VariantURL(assetID string, spec media.VariantSpec, watermark *media.WatermarkSetting) string {
	return s.publicBaseURL + "/" + VariantRecipe(spec, watermark) + "/" + assetID
}

// VariantRecipe encodes a rendition's parameters as a comma-joined path
// segment: size and crop mode first, then the optional text overlay.
func VariantRecipe(spec media.VariantSpec, watermark *media.WatermarkSetting) string {
	parts := []string{fmt.Sprintf("w_%d", spec.Width)}
	if spec.Height > 0 {
		parts = append(parts, fmt.Sprintf("h_%d", spec.Height))
	}
	parts = append(parts, "c_"+string(spec.Mode))

	if watermark != nil {
		parts = append(parts,
			fmt.Sprintf("l_text:%s_%d:%s", watermark.FontFamily, watermark.FontSize, url.PathEscape(watermark.Text)),
			"g_"+string(watermark.Gravity()),
			fmt.Sprintf("o_%d", watermark.Opacity),
			"co_rgb:"+watermark.Color,
		)
	}

	return strings.Join(parts, ",")
}

// GetBucket returns the bucket name
func (s *S3MediaStore) GetBucket() string {
	return s.bucket
}

func buildAssetID(folderHint, mimeType string) string {
	folder := strings.Trim(folderHint, "/")
	if folder == "" {
		folder = "photos"
	}

	ext := ".bin"
	switch mimeType {
	case "image/jpeg":
		ext = ".jpg"
	case "image/png":
		ext = ".png"
	case "image/gif":
		ext = ".gif"
	case "image/webp":
		ext = ".webp"
	}

	return folder + "/" + uuid.NewString() + ext
}
