package handlers

import (
	"github.com/gin-gonic/gin"

	"gyh/internal/domain/inventory"
	"gyh/internal/infrastructure/http/v1/dto"
)

// InventoryHandler handles physical count snapshots.
type InventoryHandler struct {
	*BaseHandler
	service *inventory.Service
}

// NewInventoryHandler creates a new inventory handler.
func NewInventoryHandler(base *BaseHandler, service *inventory.Service) *InventoryHandler {
	return &InventoryHandler{BaseHandler: base, service: service}
}

// RegisterRoutes registers inventory snapshot endpoints.
func (h *InventoryHandler) RegisterRoutes(rg *gin.RouterGroup) {
	rg.POST("", h.Create)
	rg.GET("", h.List)
}

// Create handles POST /registers/inventory.
func (h *InventoryHandler) Create(c *gin.Context) {
	var req dto.CreateSnapshotRequest
	if !h.BindJSON(c, &req) {
		return
	}

	snapshot, err := h.service.Create(c.Request.Context(), req.PhysicalCount)
	if err != nil {
		h.Error(c, err)
		return
	}
	h.OK(c, snapshot)
}

// List handles GET /registers/inventory.
func (h *InventoryHandler) List(c *gin.Context) {
	limit := h.ParseIntQuery(c, "limit", 50)
	offset := h.ParseIntQuery(c, "offset", 0)

	result, err := h.service.List(c.Request.Context(), limit, offset)
	if err != nil {
		h.Error(c, err)
		return
	}
	h.OK(c, dto.NewListResponse(result))
}
