package handler

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/wanderlens/backend/internal/application/places"
	"github.com/wanderlens/backend/internal/domain/place"
	"github.com/wanderlens/backend/internal/domain/shared"
	"github.com/wanderlens/backend/internal/domain/shared/valueobject"
	"github.com/wanderlens/backend/internal/interfaces/http/dto"
)

func newPlaceHandler(repo *MockPlaceRepository) *PlaceHandler {
	return NewPlaceHandler(places.NewRegistryService(repo, zap.NewNop()))
}

func testPlace(t *testing.T, name string) *place.Place {
	t.Helper()
	point, err := valueobject.NewGeoPoint(12.9716, 77.5946)
	require.NoError(t, err)
	p, err := place.NewPlace(name, point, "Bengaluru", "Karnataka", "India", "560001")
	require.NoError(t, err)
	return p
}

func TestPlaceHandler_List(t *testing.T) {
	gin.SetMode(gin.TestMode)

	repo := new(MockPlaceRepository)
	h := newPlaceHandler(repo)

	items := []*place.Place{testPlace(t, "Cubbon Park"), testPlace(t, "Lalbagh")}
	repo.On("FindAll", mock.Anything, mock.MatchedBy(func(f shared.Filter) bool {
		return f.Page == 1 && f.PageSize == 20 && len(f.Filters) == 0
	})).Return(items, int64(2), nil)

	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request = httptest.NewRequest(http.MethodGet, "/places", nil)

	h.List(c)

	assert.Equal(t, http.StatusOK, w.Code)

	var resp dto.Response
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.True(t, resp.Success)
	assert.Equal(t, int64(2), resp.Meta.Total)
	repo.AssertExpectations(t)
}

func TestPlaceHandler_ListWithFilters(t *testing.T) {
	gin.SetMode(gin.TestMode)

	repo := new(MockPlaceRepository)
	h := newPlaceHandler(repo)

	repo.On("FindAll", mock.Anything, mock.MatchedBy(func(f shared.Filter) bool {
		return f.Filters["search"] == "park" && f.Filters["country"] == "India"
	})).Return([]*place.Place{}, int64(0), nil)

	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request = httptest.NewRequest(http.MethodGet, "/places?search=park&country=India", nil)

	h.List(c)

	assert.Equal(t, http.StatusOK, w.Code)
	repo.AssertExpectations(t)
}

func TestPlaceHandler_GetByID(t *testing.T) {
	gin.SetMode(gin.TestMode)

	repo := new(MockPlaceRepository)
	h := newPlaceHandler(repo)

	p := testPlace(t, "Cubbon Park")
	repo.On("FindByID", mock.Anything, p.ID).Return(p, nil)

	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request = httptest.NewRequest(http.MethodGet, "/places/"+p.ID.String(), nil)
	c.Params = gin.Params{{Key: "id", Value: p.ID.String()}}

	h.GetByID(c)

	assert.Equal(t, http.StatusOK, w.Code)

	var resp dto.Response
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	data := resp.Data.(map[string]interface{})
	assert.Equal(t, "Cubbon Park", data["name"])
}

func TestPlaceHandler_GetByIDInvalidID(t *testing.T) {
	gin.SetMode(gin.TestMode)

	h := newPlaceHandler(new(MockPlaceRepository))

	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request = httptest.NewRequest(http.MethodGet, "/places/not-a-uuid", nil)
	c.Params = gin.Params{{Key: "id", Value: "not-a-uuid"}}

	h.GetByID(c)

	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestPlaceHandler_GetByIDNotFound(t *testing.T) {
	gin.SetMode(gin.TestMode)

	repo := new(MockPlaceRepository)
	h := newPlaceHandler(repo)

	id := uuid.New()
	repo.On("FindByID", mock.Anything, id).Return(nil, nil)

	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request = httptest.NewRequest(http.MethodGet, "/places/"+id.String(), nil)
	c.Params = gin.Params{{Key: "id", Value: id.String()}}

	h.GetByID(c)

	assert.Equal(t, http.StatusNotFound, w.Code)

	var resp dto.Response
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, dto.ErrCodeNotFound, resp.Error.Code)
}
