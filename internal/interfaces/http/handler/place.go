package handler

import (
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/wanderlens/backend/internal/application/places"
	"github.com/wanderlens/backend/internal/domain/shared"
)

// PlaceHandler exposes the place registry
type PlaceHandler struct {
	BaseHandler
	registry *places.RegistryService
}

// NewPlaceHandler creates a new PlaceHandler
func NewPlaceHandler(registry *places.RegistryService) *PlaceHandler {
	return &PlaceHandler{registry: registry}
}

// RegisterRoutes registers place routes
func (h *PlaceHandler) RegisterRoutes(rg *gin.RouterGroup) {
	group := rg.Group("/places")
	{
		group.GET("", h.List)
		group.GET("/:id", h.GetByID)
	}
}

// List returns registered places, optionally filtered by name search or country
func (h *PlaceHandler) List(c *gin.Context) {
	filter := shared.DefaultFilter()
	filter.Page, filter.PageSize = parsePagination(c)
	if search := c.Query("search"); search != "" {
		filter.Filters["search"] = search
	}
	if country := c.Query("country"); country != "" {
		filter.Filters["country"] = country
	}

	items, total, err := h.registry.ListAll(c.Request.Context(), filter)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.SuccessWithMeta(c, items, total, filter.Page, filter.PageSize)
}

// GetByID returns a single place
func (h *PlaceHandler) GetByID(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		h.BadRequest(c, "Invalid place ID")
		return
	}

	p, err := h.registry.GetByID(c.Request.Context(), id)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, p)
}
