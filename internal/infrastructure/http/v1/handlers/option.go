package handlers

import (
	"github.com/gin-gonic/gin"

	"gyh/internal/domain/catalogs/option"
	"gyh/internal/infrastructure/http/v1/dto"
)

// OptionHandler handles configurable option list endpoints (product types
// and qualities).
type OptionHandler struct {
	*BaseHandler
	service *option.Service
}

// NewOptionHandler creates a new option handler.
func NewOptionHandler(base *BaseHandler, service *option.Service) *OptionHandler {
	return &OptionHandler{BaseHandler: base, service: service}
}

// RegisterRoutes registers option endpoints.
func (h *OptionHandler) RegisterRoutes(rg *gin.RouterGroup) {
	rg.GET("/:kind", h.List)
	rg.POST("/:kind", h.Create)
	rg.DELETE("/:kind/:id", h.Delete)
}

// List handles GET /catalog/options/:kind.
func (h *OptionHandler) List(c *gin.Context) {
	items, err := h.service.List(c.Request.Context(), option.Kind(c.Param("kind")))
	if err != nil {
		h.Error(c, err)
		return
	}
	h.OK(c, items)
}

// Create handles POST /catalog/options/:kind.
func (h *OptionHandler) Create(c *gin.Context) {
	var req dto.CreateOptionRequest
	if !h.BindJSON(c, &req) {
		return
	}

	o := option.New(option.Kind(c.Param("kind")), req.Name)
	if err := h.service.Create(c.Request.Context(), o); err != nil {
		h.Error(c, err)
		return
	}
	h.Created(c, o.ID)
}

// Delete handles DELETE /catalog/options/:kind/:id.
func (h *OptionHandler) Delete(c *gin.Context) {
	optionID, ok := h.ParseID(c, "id")
	if !ok {
		return
	}
	if err := h.service.Delete(c.Request.Context(), optionID); err != nil {
		h.Error(c, err)
		return
	}
	h.NoContent(c)
}
