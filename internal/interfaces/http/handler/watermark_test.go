package handler

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/wanderlens/backend/internal/application/watermark"
	"github.com/wanderlens/backend/internal/domain/media"
	"github.com/wanderlens/backend/internal/domain/shared"
	"github.com/wanderlens/backend/internal/interfaces/http/dto"
	"github.com/wanderlens/backend/internal/interfaces/http/middleware"
)

// newWatermarkRouter mounts the handler behind an injected role so the
// admin guard is exercised the way it runs in production
func newWatermarkRouter(repo *MockWatermarkRepository, role string) *gin.Engine {
	gin.SetMode(gin.TestMode)
	engine := gin.New()
	engine.Use(func(c *gin.Context) {
		if role != "" {
			c.Set(middleware.JWTRoleKey, role)
		}
	})
	api := engine.Group("/api/v1")
	NewWatermarkHandler(watermark.NewService(repo, zap.NewNop())).RegisterRoutes(api)
	return engine
}

func TestWatermarkHandler_GetActive(t *testing.T) {
	repo := new(MockWatermarkRepository)
	setting, err := media.NewWatermarkSetting("© Test", "Georgia", 30, "FF0000", media.Position{X: 10, Y: 10}, 55)
	require.NoError(t, err)
	repo.On("FindActive", mock.Anything).Return(setting, nil)

	engine := newWatermarkRouter(repo, "admin")
	w := httptest.NewRecorder()
	req, _ := http.NewRequest(http.MethodGet, "/api/v1/admin/watermark", nil)
	engine.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)

	var resp dto.Response
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	data := resp.Data.(map[string]interface{})
	assert.Equal(t, "© Test", data["text"])
	assert.Equal(t, "Georgia", data["font_family"])
}

func TestWatermarkHandler_GetActiveDefaults(t *testing.T) {
	repo := new(MockWatermarkRepository)
	repo.On("FindActive", mock.Anything).Return(nil, shared.ErrNotFound)

	engine := newWatermarkRouter(repo, "admin")
	w := httptest.NewRecorder()
	req, _ := http.NewRequest(http.MethodGet, "/api/v1/admin/watermark", nil)
	engine.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)

	var resp dto.Response
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	data := resp.Data.(map[string]interface{})
	assert.Equal(t, "© WanderLens", data["text"])
}

func TestWatermarkHandler_Update(t *testing.T) {
	repo := new(MockWatermarkRepository)
	repo.On("DeactivateAll", mock.Anything).Return(nil)
	repo.On("Save", mock.Anything, mock.MatchedBy(func(s *media.WatermarkSetting) bool {
		return s.Text == "© Shutter" && s.Opacity == 40 && s.Active
	})).Return(nil)

	engine := newWatermarkRouter(repo, "admin")
	body, _ := json.Marshal(WatermarkUpdateRequest{
		Text:      "© Shutter",
		FontSize:  32,
		Color:     "00FF00",
		PositionX: 50,
		PositionY: 90,
		Opacity:   40,
	})
	w := httptest.NewRecorder()
	req, _ := http.NewRequest(http.MethodPut, "/api/v1/admin/watermark", bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	engine.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	repo.AssertExpectations(t)
}

func TestWatermarkHandler_UpdateInvalidBody(t *testing.T) {
	repo := new(MockWatermarkRepository)
	engine := newWatermarkRouter(repo, "admin")

	// font_size below the allowed minimum
	body := []byte(`{"font_size": 5}`)
	w := httptest.NewRecorder()
	req, _ := http.NewRequest(http.MethodPut, "/api/v1/admin/watermark", bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	engine.ServeHTTP(w, req)

	assert.Equal(t, http.StatusBadRequest, w.Code)
	repo.AssertNotCalled(t, "Save", mock.Anything, mock.Anything)
}

func TestWatermarkHandler_RequiresAdmin(t *testing.T) {
	repo := new(MockWatermarkRepository)
	engine := newWatermarkRouter(repo, "user")

	w := httptest.NewRecorder()
	req, _ := http.NewRequest(http.MethodGet, "/api/v1/admin/watermark", nil)
	engine.ServeHTTP(w, req)

	assert.Equal(t, http.StatusForbidden, w.Code)
	repo.AssertNotCalled(t, "FindActive", mock.Anything)
}
