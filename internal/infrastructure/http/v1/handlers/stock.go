package handlers

import (
	"github.com/gin-gonic/gin"

	"gyh/internal/domain/stock"
	"gyh/internal/infrastructure/http/v1/dto"
)

// StockHandler serves computed stock positions.
type StockHandler struct {
	*BaseHandler
	service *stock.Service
}

// NewStockHandler creates a new stock handler.
func NewStockHandler(base *BaseHandler, service *stock.Service) *StockHandler {
	return &StockHandler{BaseHandler: base, service: service}
}

// RegisterRoutes registers stock endpoints.
func (h *StockHandler) RegisterRoutes(rg *gin.RouterGroup) {
	rg.GET("", h.List)
	rg.GET("/:productId", h.GetByProduct)
}

// List handles GET /registers/stock.
func (h *StockHandler) List(c *gin.Context) {
	infos, err := h.service.ComputeAll(c.Request.Context())
	if err != nil {
		h.Error(c, err)
		return
	}

	items := make([]dto.StockResponse, 0, len(infos))
	for _, info := range infos {
		items = append(items, dto.FromStockInfo(info))
	}
	h.OK(c, items)
}

// GetByProduct handles GET /registers/stock/:productId.
func (h *StockHandler) GetByProduct(c *gin.Context) {
	productID, ok := h.ParseID(c, "productId")
	if !ok {
		return
	}

	info, err := h.service.Get(c.Request.Context(), productID)
	if err != nil {
		h.Error(c, err)
		return
	}
	h.OK(c, dto.FromStockInfo(info))
}
