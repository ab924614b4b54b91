package handlers

import (
	"github.com/gin-gonic/gin"

	"gyh/internal/domain/sale"
	"gyh/internal/infrastructure/http/v1/dto"
)

// SaleHandler handles sale endpoints.
type SaleHandler struct {
	*BaseHandler
	service *sale.Service
}

// NewSaleHandler creates a new sale handler.
func NewSaleHandler(base *BaseHandler, service *sale.Service) *SaleHandler {
	return &SaleHandler{BaseHandler: base, service: service}
}

// RegisterRoutes registers sale endpoints.
func (h *SaleHandler) RegisterRoutes(rg *gin.RouterGroup) {
	rg.POST("", h.Create)
	rg.GET("", h.List)
	rg.GET("/:id", h.GetByID)
	rg.PUT("/:id", h.Update)
	rg.DELETE("/:id", h.Delete)
	rg.POST("/:id/print", h.MarkPrinted)
}

// Create handles POST /document/sales.
func (h *SaleHandler) Create(c *gin.Context) {
	var req dto.CreateSaleRequest
	if !h.BindJSON(c, &req) {
		return
	}
	input, err := req.ToInput()
	if err != nil {
		h.Error(c, err)
		return
	}

	s, err := h.service.Create(c.Request.Context(), input)
	if err != nil {
		h.Error(c, err)
		return
	}
	h.Created(c, s.ID)
}

// List handles GET /document/sales.
func (h *SaleHandler) List(c *gin.Context) {
	var req dto.SaleListRequest
	if !h.BindQuery(c, &req) {
		return
	}
	filter, err := req.ToFilter()
	if err != nil {
		h.Error(c, err)
		return
	}

	result, err := h.service.List(c.Request.Context(), filter)
	if err != nil {
		h.Error(c, err)
		return
	}
	h.OK(c, dto.NewListResponse(result))
}

// GetByID handles GET /document/sales/:id.
func (h *SaleHandler) GetByID(c *gin.Context) {
	saleID, ok := h.ParseID(c, "id")
	if !ok {
		return
	}

	s, err := h.service.GetByID(c.Request.Context(), saleID)
	if err != nil {
		h.Error(c, err)
		return
	}
	h.OK(c, s)
}

// Update handles PUT /document/sales/:id.
func (h *SaleHandler) Update(c *gin.Context) {
	saleID, ok := h.ParseID(c, "id")
	if !ok {
		return
	}
	var req dto.UpdateSaleRequest
	if !h.BindJSON(c, &req) {
		return
	}
	input, err := req.ToInput()
	if err != nil {
		h.Error(c, err)
		return
	}

	s, err := h.service.Update(c.Request.Context(), saleID, input)
	if err != nil {
		h.Error(c, err)
		return
	}
	h.OK(c, s)
}

// Delete handles DELETE /document/sales/:id.
func (h *SaleHandler) Delete(c *gin.Context) {
	saleID, ok := h.ParseID(c, "id")
	if !ok {
		return
	}
	if err := h.service.Delete(c.Request.Context(), saleID); err != nil {
		h.Error(c, err)
		return
	}
	h.NoContent(c)
}

// MarkPrinted handles POST /document/sales/:id/print.
func (h *SaleHandler) MarkPrinted(c *gin.Context) {
	saleID, ok := h.ParseID(c, "id")
	if !ok {
		return
	}
	if err := h.service.MarkPrinted(c.Request.Context(), saleID); err != nil {
		h.Error(c, err)
		return
	}
	h.Success(c, "sale marked as printed")
}
