package handler

import (
	"github.com/gin-gonic/gin"

	"github.com/wanderlens/backend/internal/application/watermark"
	"github.com/wanderlens/backend/internal/domain/media"
	"github.com/wanderlens/backend/internal/interfaces/http/middleware"
)

// WatermarkHandler handles the admin watermark settings endpoints
type WatermarkHandler struct {
	BaseHandler
	svc *watermark.Service
}

// NewWatermarkHandler creates a new WatermarkHandler
func NewWatermarkHandler(svc *watermark.Service) *WatermarkHandler {
	return &WatermarkHandler{svc: svc}
}

// RegisterRoutes registers watermark routes under the admin group
func (h *WatermarkHandler) RegisterRoutes(rg *gin.RouterGroup) {
	group := rg.Group("/admin/watermark")
	group.Use(middleware.RequireAdmin())
	{
		group.GET("", h.GetActive)
		group.PUT("", h.Update)
	}
}

// WatermarkUpdateRequest carries the new watermark configuration.
// Unset fields fall back to defaults.
type WatermarkUpdateRequest struct {
	Text       string `json:"text" binding:"max=100"`
	FontFamily string `json:"font_family" binding:"max=50"`
	FontSize   int    `json:"font_size" binding:"omitempty,min=10,max=100"`
	Color      string `json:"color" binding:"omitempty,len=6"`
	PositionX  int    `json:"position_x" binding:"min=0,max=100"`
	PositionY  int    `json:"position_y" binding:"min=0,max=100"`
	Opacity    int    `json:"opacity" binding:"min=0,max=100"`
}

// GetActive returns the currently active watermark setting
func (h *WatermarkHandler) GetActive(c *gin.Context) {
	setting, err := h.svc.GetActive(c.Request.Context())
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, setting)
}

// Update activates a new watermark setting, deactivating the previous one
func (h *WatermarkHandler) Update(c *gin.Context) {
	var req WatermarkUpdateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	setting, err := h.svc.Update(c.Request.Context(), watermark.UpdateParams{
		Text:       req.Text,
		FontFamily: req.FontFamily,
		FontSize:   req.FontSize,
		Color:      req.Color,
		Position:   media.Position{X: req.PositionX, Y: req.PositionY},
		Opacity:    req.Opacity,
	})
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, setting)
}
