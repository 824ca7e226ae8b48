package places

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/wanderlens/backend/internal/domain/place"
	"github.com/wanderlens/backend/internal/domain/shared"
	"github.com/wanderlens/backend/internal/domain/shared/valueobject"
	"go.uber.org/zap"
)

// MockPlaceRepository is a mock implementation of place.Repository
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

func TestRegistryService_Resolve_ReturnsExistingPlace(t *testing.T) {
	repo := new(MockPlaceRepository)
	svc := NewRegistryService(repo, zap.NewNop())

	loc, _ := valueobject.NewGeoPoint(12.9716, 77.5946)
	existing, _ := place.NewPlace("Cubbon Park", loc, "Bengaluru", "Karnataka", "India", "")
	repo.On("FindByNameNear", mock.Anything, "Cubbon Park", loc, place.ProximityThresholdMeters).
		Return(existing, nil)

	got, err := svc.Resolve(context.Background(), loc, ResolvedLocation{
		PlaceName: "Cubbon Park",
		City:      "Bengaluru",
		State:     "Karnataka",
		Country:   "India",
	})

	assert.NoError(t, err)
	assert.Equal(t, existing.ID, got.ID)
	// Existing places are returned unchanged; the count only moves on approval
	assert.Equal(t, int64(0), got.PhotoCount)
	repo.AssertNotCalled(t, "Save", mock.Anything, mock.Anything)
}

func TestRegistryService_Resolve_CreatesWhenAbsent(t *testing.T) {
	repo := new(MockPlaceRepository)
	svc := NewRegistryService(repo, zap.NewNop())

	loc, _ := valueobject.NewGeoPoint(12.9507, 77.5848)
	repo.On("FindByNameNear", mock.Anything, "Lalbagh", loc, place.ProximityThresholdMeters).
		Return(nil, shared.ErrNotFound)
	repo.On("Save", mock.Anything, mock.AnythingOfType("*place.Place")).Return(nil)

	got, err := svc.Resolve(context.Background(), loc, ResolvedLocation{
		PlaceName: "Lalbagh",
		City:      "Bengaluru",
		State:     "Karnataka",
		Country:   "India",
	})

	assert.NoError(t, err)
	assert.Equal(t, "Lalbagh", got.Name)
	assert.Equal(t, int64(0), got.PhotoCount)
	assert.Equal(t, "Bengaluru", got.City)
	repo.AssertExpectations(t)
}

func TestRegistryService_Resolve_FallsBackToUnknownName(t *testing.T) {
	repo := new(MockPlaceRepository)
	svc := NewRegistryService(repo, zap.NewNop())

	loc, _ := valueobject.NewGeoPoint(0.1, 0.1)
	repo.On("FindByNameNear", mock.Anything, place.UnknownPlaceName, loc, place.ProximityThresholdMeters).
		Return(nil, shared.ErrNotFound)
	repo.On("Save", mock.Anything, mock.AnythingOfType("*place.Place")).Return(nil)

	got, err := svc.Resolve(context.Background(), loc, ResolvedLocation{})

	assert.NoError(t, err)
	assert.Equal(t, place.UnknownPlaceName, got.Name)
}

func TestRegistryService_Resolve_PropagatesRepositoryError(t *testing.T) {
	repo := new(MockPlaceRepository)
	svc := NewRegistryService(repo, zap.NewNop())

	loc, _ := valueobject.NewGeoPoint(1, 1)
	repo.On("FindByNameNear", mock.Anything, "Somewhere", loc, place.ProximityThresholdMeters).
		Return(nil, assert.AnError)

	_, err := svc.Resolve(context.Background(), loc, ResolvedLocation{PlaceName: "Somewhere"})

	assert.Error(t, err)
	repo.AssertNotCalled(t, "Save", mock.Anything, mock.Anything)
}
