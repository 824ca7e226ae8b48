package handler

import (
	"context"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/mock"

	"github.com/wanderlens/backend/internal/application/ingestion"
	"github.com/wanderlens/backend/internal/application/places"
	appsync "github.com/wanderlens/backend/internal/application/sync"
	"github.com/wanderlens/backend/internal/domain/ledger"
	"github.com/wanderlens/backend/internal/domain/media"
	"github.com/wanderlens/backend/internal/domain/member"
	"github.com/wanderlens/backend/internal/domain/photo"
	"github.com/wanderlens/backend/internal/domain/place"
	"github.com/wanderlens/backend/internal/domain/shared"
	"github.com/wanderlens/backend/internal/domain/shared/valueobject"
)

// MockPhotoRepository implements photo.Repository for testing
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
	if args.Get(0) == nil {
		return nil, args.Get(1).(int64), args.Error(2)
	}
	return args.Get(0).([]*photo.Photo), args.Get(1).(int64), args.Error(2)
}

func (m *MockPhotoRepository) FindNearby(ctx context.Context, center valueobject.GeoPoint, radiusMeters float64, limit int) ([]*photo.Photo, error) {
	args := m.Called(ctx, center, radiusMeters, limit)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
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

// MockUserRepository implements member.Repository for testing
type MockUserRepository struct {
	mock.Mock
}

func (m *MockUserRepository) FindByID(ctx context.Context, id uuid.UUID) (*member.User, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*member.User), args.Error(1)
}

func (m *MockUserRepository) FindByEmail(ctx context.Context, email string) (*member.User, error) {
	args := m.Called(ctx, email)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*member.User), args.Error(1)
}

func (m *MockUserRepository) Save(ctx context.Context, u *member.User) error {
	args := m.Called(ctx, u)
	return args.Error(0)
}

func (m *MockUserRepository) SaveWithLock(ctx context.Context, u *member.User) error {
	args := m.Called(ctx, u)
	return args.Error(0)
}

func (m *MockUserRepository) Count(ctx context.Context) (int64, error) {
	args := m.Called(ctx)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockUserRepository) SumWalletBalances(ctx context.Context) (decimal.Decimal, error) {
	args := m.Called(ctx)
	return args.Get(0).(decimal.Decimal), args.Error(1)
}

// MockLedgerRepository implements ledger.Repository for testing
type MockLedgerRepository struct {
	mock.Mock
}

func (m *MockLedgerRepository) Create(ctx context.Context, tx *ledger.Transaction) error {
	args := m.Called(ctx, tx)
	return args.Error(0)
}

func (m *MockLedgerRepository) FindByID(ctx context.Context, id uuid.UUID) (*ledger.Transaction, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*ledger.Transaction), args.Error(1)
}

func (m *MockLedgerRepository) FindByUserID(ctx context.Context, userID uuid.UUID, filter ledger.Filter) ([]*ledger.Transaction, int64, error) {
	args := m.Called(ctx, userID, filter)
	if args.Get(0) == nil {
		return nil, args.Get(1).(int64), args.Error(2)
	}
	return args.Get(0).([]*ledger.Transaction), args.Get(1).(int64), args.Error(2)
}

func (m *MockLedgerRepository) FindByPhotoID(ctx context.Context, photoID uuid.UUID) ([]*ledger.Transaction, error) {
	args := m.Called(ctx, photoID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*ledger.Transaction), args.Error(1)
}

func (m *MockLedgerRepository) SumCompletedByUserID(ctx context.Context, userID uuid.UUID) (decimal.Decimal, error) {
	args := m.Called(ctx, userID)
	return args.Get(0).(decimal.Decimal), args.Error(1)
}

func (m *MockLedgerRepository) CountByTypeAndStatus(ctx context.Context, txType ledger.TransactionType, status ledger.TransactionStatus) (int64, error) {
	args := m.Called(ctx, txType, status)
	return args.Get(0).(int64), args.Error(1)
}

// MockPlaceRepository implements place.Repository for testing
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
	if args.Get(0) == nil {
		return nil, args.Get(1).(int64), args.Error(2)
	}
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

// MockWatermarkRepository implements media.Repository for testing
type MockWatermarkRepository struct {
	mock.Mock
}

func (m *MockWatermarkRepository) FindByID(ctx context.Context, id uuid.UUID) (*media.WatermarkSetting, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*media.WatermarkSetting), args.Error(1)
}

func (m *MockWatermarkRepository) FindActive(ctx context.Context) (*media.WatermarkSetting, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*media.WatermarkSetting), args.Error(1)
}

func (m *MockWatermarkRepository) Save(ctx context.Context, setting *media.WatermarkSetting) error {
	args := m.Called(ctx, setting)
	return args.Error(0)
}

func (m *MockWatermarkRepository) DeactivateAll(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}

// MockMediaStore implements ingestion.MediaStore for testing
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

// stubGeoResolver returns a fixed resolution or error
type stubGeoResolver struct {
	resolved places.ResolvedLocation
	err      error
}

func (s *stubGeoResolver) ReverseGeocode(ctx context.Context, point valueobject.GeoPoint) (places.ResolvedLocation, error) {
	return s.resolved, s.err
}

func (s *stubGeoResolver) ForwardGeocode(ctx context.Context, postalCode string) (places.ResolvedLocation, error) {
	return s.resolved, s.err
}

// stubExifExtractor returns fixed metadata
type stubExifExtractor struct {
	meta     photo.ExifData
	location *valueobject.GeoPoint
	err      error
}

func (s *stubExifExtractor) Extract(data []byte) (photo.ExifData, *valueobject.GeoPoint, error) {
	return s.meta, s.location, s.err
}

// MockAlbumLister implements sync.AlbumLister for testing
type MockAlbumLister struct {
	mock.Mock
}

func (m *MockAlbumLister) Validate(ctx context.Context, shareLink string) (*appsync.AlbumInfo, error) {
	args := m.Called(ctx, shareLink)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*appsync.AlbumInfo), args.Error(1)
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
