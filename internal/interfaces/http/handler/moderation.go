package handler

import (
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/wanderlens/backend/internal/application/moderation"
	"github.com/wanderlens/backend/internal/interfaces/http/middleware"
)

// ModerationHandler handles the admin moderation endpoints
type ModerationHandler struct {
	BaseHandler
	svc *moderation.Service
}

// NewModerationHandler creates a new ModerationHandler
func NewModerationHandler(svc *moderation.Service) *ModerationHandler {
	return &ModerationHandler{svc: svc}
}

// RegisterRoutes registers moderation routes under the admin group
func (h *ModerationHandler) RegisterRoutes(rg *gin.RouterGroup) {
	group := rg.Group("/admin")
	group.Use(middleware.RequireAdmin())
	{
		group.GET("/photos/pending", h.PendingQueue)
		group.POST("/photos/:id/approve", h.Approve)
		group.POST("/photos/:id/reject", h.Reject)
		group.GET("/stats", h.Stats)
	}
}

// RejectRequest carries an optional rejection reason
type RejectRequest struct {
	Reason string `json:"reason" binding:"max=500"`
}

// PendingQueue lists photos awaiting moderation, oldest first
func (h *ModerationHandler) PendingQueue(c *gin.Context) {
	page, pageSize := parsePagination(c)

	pending, total, err := h.svc.PendingQueue(c.Request.Context(), page, pageSize)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.SuccessWithMeta(c, pending, total, page, pageSize)
}

// Approve transitions a pending photo to approved and credits the owner
func (h *ModerationHandler) Approve(c *gin.Context) {
	actorID, err := getUserID(c)
	if err != nil {
		h.Unauthorized(c, "Authentication required")
		return
	}

	photoID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		h.BadRequest(c, "Invalid photo ID format")
		return
	}

	approved, err := h.svc.Approve(c.Request.Context(), photoID, actorID)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, approved)
}

// Reject transitions a pending photo to rejected with a reason
func (h *ModerationHandler) Reject(c *gin.Context) {
	photoID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		h.BadRequest(c, "Invalid photo ID format")
		return
	}

	var req RejectRequest
	if err := c.ShouldBindJSON(&req); err != nil && err.Error() != "EOF" {
		h.BadRequest(c, err.Error())
		return
	}

	rejected, err := h.svc.Reject(c.Request.Context(), photoID, req.Reason)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, rejected)
}

// Stats returns platform-wide moderation and reward figures
func (h *ModerationHandler) Stats(c *gin.Context) {
	stats, err := h.svc.GetStats(c.Request.Context())
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, stats)
}
