package sync

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/wanderlens/backend/internal/application/ingestion"
	"github.com/wanderlens/backend/internal/application/places"
	"github.com/wanderlens/backend/internal/domain/media"
	"github.com/wanderlens/backend/internal/domain/photo"
	"github.com/wanderlens/backend/internal/domain/place"
	"github.com/wanderlens/backend/internal/domain/shared"
	"github.com/wanderlens/backend/internal/domain/shared/valueobject"
	"go.uber.org/zap"
)

// =============================================================================
// Mocks
// =============================================================================

type MockAlbumLister struct {
	mock.Mock
}

func (m *MockAlbumLister) Validate(ctx context.Context, shareLink string) (*AlbumInfo, error) {
	args := m.Called(ctx, shareLink)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*AlbumInfo), args.Error(1)
}

func (m *MockAlbumLister) ListItems(ctx context.Context, shareLink string) ([]string, error) {
	args := m.Called(ctx, shareLink)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]string), args.Error(1)
}

func (m *MockAlbumLister) Download(ctx context.Context, locator string) ([]byte, error) {
	args := m.Called(ctx, locator)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]byte), args.Error(1)
}

type MockPhotoRepository struct {
	mock.Mock
}

func (m *MockPhotoRepository) FindByID(ctx context.Context, id uuid.UUID) (*photo.Photo, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*photo.Photo), args.Error(1)
}

func (m *MockPhotoRepository) FindByAssetID(ctx context.Context, assetID string) (*photo.Photo, error) {
	args := m.Called(ctx, assetID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*photo.Photo), args.Error(1)
}

func (m *MockPhotoRepository) FindByOwnerAndDedupKey(ctx context.Context, ownerID uuid.UUID, dedupKey string) (*photo.Photo, error) {
	args := m.Called(ctx, ownerID, dedupKey)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*photo.Photo), args.Error(1)
}

func (m *MockPhotoRepository) FindAll(ctx context.Context, filter photo.Filter) ([]*photo.Photo, int64, error) {
	args := m.Called(ctx, filter)
	return args.Get(0).([]*photo.Photo), args.Get(1).(int64), args.Error(2)
}

func (m *MockPhotoRepository) FindNearby(ctx context.Context, center valueobject.GeoPoint, radiusMeters float64, limit int) ([]*photo.Photo, error) {
	args := m.Called(ctx, center, radiusMeters, limit)
	return args.Get(0).([]*photo.Photo), args.Error(1)
}

func (m *MockPhotoRepository) CountByStatus(ctx context.Context) (photo.StatusCounts, error) {
	args := m.Called(ctx)
	return args.Get(0).(photo.StatusCounts), args.Error(1)
}

func (m *MockPhotoRepository) CountByOwnerAndSource(ctx context.Context, ownerID uuid.UUID, source photo.SourceKind) (photo.StatusCounts, error) {
	args := m.Called(ctx, ownerID, source)
	return args.Get(0).(photo.StatusCounts), args.Error(1)
}

func (m *MockPhotoRepository) Save(ctx context.Context, p *photo.Photo) error {
	args := m.Called(ctx, p)
	return args.Error(0)
}

func (m *MockPhotoRepository) SaveWithLock(ctx context.Context, p *photo.Photo) error {
	args := m.Called(ctx, p)
	return args.Error(0)
}

func (m *MockPhotoRepository) Delete(ctx context.Context, id uuid.UUID) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

type MockPlaceRepository struct {
	mock.Mock
}

func (m *MockPlaceRepository) FindByID(ctx context.Context, id uuid.UUID) (*place.Place, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*place.Place), args.Error(1)
}

func (m *MockPlaceRepository) FindByNameNear(ctx context.Context, name string, point valueobject.GeoPoint, maxMeters float64) (*place.Place, error) {
	args := m.Called(ctx, name, point, maxMeters)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*place.Place), args.Error(1)
}

func (m *MockPlaceRepository) FindAll(ctx context.Context, filter shared.Filter) ([]*place.Place, int64, error) {
	args := m.Called(ctx, filter)
	return args.Get(0).([]*place.Place), args.Get(1).(int64), args.Error(2)
}

func (m *MockPlaceRepository) Save(ctx context.Context, p *place.Place) error {
	args := m.Called(ctx, p)
	return args.Error(0)
}

func (m *MockPlaceRepository) SaveWithLock(ctx context.Context, p *place.Place) error {
	args := m.Called(ctx, p)
	return args.Error(0)
}

type MockMediaStore struct {
	mock.Mock
}

func (m *MockMediaStore) Store(ctx context.Context, data []byte, folderHint string) (*ingestion.StoredAsset, error) {
	args := m.Called(ctx, data, folderHint)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*ingestion.StoredAsset), args.Error(1)
}

func (m *MockMediaStore) Delete(ctx context.Context, assetID string) error {
	args := m.Called(ctx, assetID)
	return args.Error(0)
}

func (m *MockMediaStore) VariantURL(assetID string, spec media.VariantSpec, watermark *media.WatermarkSetting) string {
	args := m.Called(assetID, spec, watermark)
	return args.String(0)
}

type MockGeoResolver struct {
	mock.Mock
}

func (m *MockGeoResolver) ReverseGeocode(ctx context.Context, point valueobject.GeoPoint) (places.ResolvedLocation, error) {
	args := m.Called(ctx, point)
	return args.Get(0).(places.ResolvedLocation), args.Error(1)
}

func (m *MockGeoResolver) ForwardGeocode(ctx context.Context, postalCode string) (places.ResolvedLocation, error) {
	args := m.Called(ctx, postalCode)
	return args.Get(0).(places.ResolvedLocation), args.Error(1)
}

type MockExifExtractor struct {
	mock.Mock
}

func (m *MockExifExtractor) Extract(data []byte) (photo.ExifData, *valueobject.GeoPoint, error) {
	args := m.Called(data)
	var gps *valueobject.GeoPoint
	if args.Get(1) != nil {
		gps = args.Get(1).(*valueobject.GeoPoint)
	}
	return args.Get(0).(photo.ExifData), gps, args.Error(2)
}

// =============================================================================
// Fixtures
// =============================================================================

type syncFixture struct {
	lister    *MockAlbumLister
	photoRepo *MockPhotoRepository
	placeRepo *MockPlaceRepository
	store     *MockMediaStore
	geo       *MockGeoResolver
	exif      *MockExifExtractor
	svc       *AlbumSyncService
}

func newSyncFixture() *syncFixture {
	f := &syncFixture{
		lister:    new(MockAlbumLister),
		photoRepo: new(MockPhotoRepository),
		placeRepo: new(MockPlaceRepository),
		store:     new(MockMediaStore),
		geo:       new(MockGeoResolver),
		exif:      new(MockExifExtractor),
	}
	registry := places.NewRegistryService(f.placeRepo, zap.NewNop())
	ingest := ingestion.NewService(f.photoRepo, f.store, f.geo, f.exif, registry, zap.NewNop())
	f.svc = NewAlbumSyncService(f.lister, ingest, f.photoRepo, zap.NewNop())
	return f
}

func (f *syncFixture) expectFreshIngest(locator string) {
	f.lister.On("Download", mock.Anything, locator).Return([]byte("img-"+locator), nil)
	f.store.On("Store", mock.Anything, []byte("img-"+locator), "photos/imported").Return(&ingestion.StoredAsset{
		AssetID:  "asset-" + locator,
		URL:      "https://cdn.example.com/asset-" + locator,
		ByteSize: 100,
		MimeType: "image/jpeg",
	}, nil)
}

const shareLink = "https://photos.app.goo.gl/AbCdEf123"

// =============================================================================
// Tests
// =============================================================================

func TestSyncAlbum_UploadsEveryItemOnFirstRun(t *testing.T) {
	f := newSyncFixture()
	ownerID := uuid.New()
	locators := []string{"item-a", "item-b", "item-c"}

	f.lister.On("Validate", mock.Anything, shareLink).Return(&AlbumInfo{Title: "Goa Trip"}, nil)
	f.lister.On("ListItems", mock.Anything, shareLink).Return(locators, nil)
	f.photoRepo.On("FindByOwnerAndDedupKey", mock.Anything, ownerID, mock.Anything).
		Return(nil, shared.ErrNotFound)
	for _, locator := range locators {
		f.expectFreshIngest(locator)
	}
	f.exif.On("Extract", mock.Anything).Return(photo.ExifData{}, nil, nil)
	f.photoRepo.On("Save", mock.Anything, mock.AnythingOfType("*photo.Photo")).Return(nil)

	result, err := f.svc.SyncAlbum(context.Background(), ownerID, shareLink)

	assert.NoError(t, err)
	assert.Equal(t, "Goa Trip", result.AlbumTitle)
	assert.Equal(t, 3, result.Total)
	assert.Equal(t, 3, result.Uploaded)
	assert.Equal(t, 0, result.Skipped)
	assert.Equal(t, 0, result.Failed)
	f.photoRepo.AssertNumberOfCalls(t, "Save", 3)
}

func TestSyncAlbum_SecondRunSkipsEverything(t *testing.T) {
	f := newSyncFixture()
	ownerID := uuid.New()
	locators := []string{"item-a", "item-b", "item-c"}

	f.lister.On("Validate", mock.Anything, shareLink).Return(&AlbumInfo{}, nil)
	f.lister.On("ListItems", mock.Anything, shareLink).Return(locators, nil)
	existing, _ := photo.NewPhoto(ownerID, "asset", "url", photo.FileInfo{}, photo.SourceGooglePhotos)
	f.photoRepo.On("FindByOwnerAndDedupKey", mock.Anything, ownerID, mock.Anything).
		Return(existing, nil)

	result, err := f.svc.SyncAlbum(context.Background(), ownerID, shareLink)

	assert.NoError(t, err)
	assert.Equal(t, 3, result.Total)
	assert.Equal(t, 0, result.Uploaded)
	assert.Equal(t, 3, result.Skipped)
	assert.Equal(t, 0, result.Failed)
	// Recognized re-imports never hit the network or the media store
	f.lister.AssertNotCalled(t, "Download", mock.Anything, mock.Anything)
	f.store.AssertNotCalled(t, "Store", mock.Anything, mock.Anything, mock.Anything)
}

func TestSyncAlbum_PartialFailureDoesNotAbortLoop(t *testing.T) {
	f := newSyncFixture()
	ownerID := uuid.New()
	locators := []string{"item-a", "item-b", "item-c"}

	f.lister.On("Validate", mock.Anything, shareLink).Return(&AlbumInfo{}, nil)
	f.lister.On("ListItems", mock.Anything, shareLink).Return(locators, nil)
	f.photoRepo.On("FindByOwnerAndDedupKey", mock.Anything, ownerID, mock.Anything).
		Return(nil, shared.ErrNotFound)

	f.expectFreshIngest("item-a")
	f.lister.On("Download", mock.Anything, "item-b").Return(nil, assert.AnError)
	f.expectFreshIngest("item-c")

	f.exif.On("Extract", mock.Anything).Return(photo.ExifData{}, nil, nil)
	f.photoRepo.On("Save", mock.Anything, mock.AnythingOfType("*photo.Photo")).Return(nil)

	result, err := f.svc.SyncAlbum(context.Background(), ownerID, shareLink)

	assert.NoError(t, err)
	assert.Equal(t, 3, result.Total)
	assert.Equal(t, 2, result.Uploaded)
	assert.Equal(t, 0, result.Skipped)
	assert.Equal(t, 1, result.Failed)
	assert.Len(t, result.Errors, 1)
	assert.Equal(t, "item-b", result.Errors[0].Locator)
	assert.Contains(t, result.Errors[0].Message, "download failed")
	f.photoRepo.AssertNumberOfCalls(t, "Save", 2)
}

func TestSyncAlbum_EmptyAlbumIsTerminalError(t *testing.T) {
	f := newSyncFixture()

	f.lister.On("Validate", mock.Anything, shareLink).Return(&AlbumInfo{}, nil)
	f.lister.On("ListItems", mock.Anything, shareLink).Return([]string{}, nil)

	_, err := f.svc.SyncAlbum(context.Background(), uuid.New(), shareLink)

	var domainErr *shared.DomainError
	assert.ErrorAs(t, err, &domainErr)
	assert.Equal(t, "NO_PHOTOS_FOUND", domainErr.Code)
}

func TestSyncAlbum_InvalidLinkFailsFast(t *testing.T) {
	f := newSyncFixture()

	f.lister.On("Validate", mock.Anything, "https://example.com/not-an-album").
		Return(nil, shared.NewDomainError("INVALID_SHARE_LINK", "Not a recognized album link"))

	_, err := f.svc.SyncAlbum(context.Background(), uuid.New(), "https://example.com/not-an-album")

	assert.Error(t, err)
	f.lister.AssertNotCalled(t, "ListItems", mock.Anything, mock.Anything)
}

func TestGetSyncStatus(t *testing.T) {
	f := newSyncFixture()
	userID := uuid.New()

	counts := photo.StatusCounts{Total: 10, Pending: 2, Approved: 7, Rejected: 1}
	f.photoRepo.On("CountByOwnerAndSource", mock.Anything, userID, photo.SourceGooglePhotos).
		Return(counts, nil)

	got, err := f.svc.GetSyncStatus(context.Background(), userID)

	assert.NoError(t, err)
	assert.Equal(t, counts, got)
}

func TestDedupKey_IsStablePerLocator(t *testing.T) {
	assert.Equal(t, DedupKey("item-a"), DedupKey("item-a"))
	assert.NotEqual(t, DedupKey("item-a"), DedupKey("item-b"))
	assert.Len(t, DedupKey("item-a"), 32)
}
