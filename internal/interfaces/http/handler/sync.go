package handler

import (
	"github.com/gin-gonic/gin"

	appsync "github.com/wanderlens/backend/internal/application/sync"
)

// SyncHandler handles shared-album sync endpoints
type SyncHandler struct {
	BaseHandler
	svc *appsync.AlbumSyncService
}

// NewSyncHandler creates a new SyncHandler
func NewSyncHandler(svc *appsync.AlbumSyncService) *SyncHandler {
	return &SyncHandler{svc: svc}
}

// RegisterRoutes registers album sync routes
func (h *SyncHandler) RegisterRoutes(rg *gin.RouterGroup) {
	group := rg.Group("/sync")
	{
		group.POST("/validate", h.ValidateLink)
		group.POST("/album", h.SyncAlbum)
		group.GET("/status", h.Status)
	}
}

// ShareLinkRequest carries a shared-album link
type ShareLinkRequest struct {
	ShareLink string `json:"share_link" binding:"required,url"`
}

// ValidateLink checks a share link without importing anything
func (h *SyncHandler) ValidateLink(c *gin.Context) {
	var req ShareLinkRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, "A valid share_link is required")
		return
	}

	info, err := h.svc.ValidateLink(c.Request.Context(), req.ShareLink)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, info)
}

// SyncAlbum imports every photo of a shared album for the caller
func (h *SyncHandler) SyncAlbum(c *gin.Context) {
	ownerID, err := getUserID(c)
	if err != nil {
		h.Unauthorized(c, "Authentication required")
		return
	}

	var req ShareLinkRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, "A valid share_link is required")
		return
	}

	result, err := h.svc.SyncAlbum(c.Request.Context(), ownerID, req.ShareLink)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, result)
}

// Status reports the caller's imported-photo counts by moderation state
func (h *SyncHandler) Status(c *gin.Context) {
	userID, err := getUserID(c)
	if err != nil {
		h.Unauthorized(c, "Authentication required")
		return
	}

	counts, err := h.svc.GetSyncStatus(c.Request.Context(), userID)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, counts)
}
