package handlers

import (
	"github.com/gin-gonic/gin"

	"gyh/internal/domain/intake"
	"gyh/internal/infrastructure/http/v1/dto"
)

// IntakeHandler handles truck intake endpoints.
type IntakeHandler struct {
	*BaseHandler
	service *intake.Service
}

// NewIntakeHandler creates a new intake handler.
func NewIntakeHandler(base *BaseHandler, service *intake.Service) *IntakeHandler {
	return &IntakeHandler{BaseHandler: base, service: service}
}

// RegisterRoutes registers intake endpoints.
func (h *IntakeHandler) RegisterRoutes(rg *gin.RouterGroup) {
	rg.POST("", h.Create)
	rg.GET("", h.List)
	rg.GET("/:id", h.GetByID)
	rg.PUT("/:id", h.Update)
	rg.DELETE("/:id", h.Delete)
}

// Create handles POST /document/intakes.
func (h *IntakeHandler) Create(c *gin.Context) {
	var req dto.IntakeRequest
	if !h.BindJSON(c, &req) {
		return
	}
	input, err := req.ToInput()
	if err != nil {
		h.Error(c, err)
		return
	}

	batch, err := h.service.Create(c.Request.Context(), input)
	if err != nil {
		h.Error(c, err)
		return
	}
	h.Created(c, batch.ID)
}

// List handles GET /document/intakes.
func (h *IntakeHandler) List(c *gin.Context) {
	var req dto.IntakeListRequest
	if !h.BindQuery(c, &req) {
		return
	}

	result, err := h.service.List(c.Request.Context(), req.ToFilter())
	if err != nil {
		h.Error(c, err)
		return
	}
	h.OK(c, dto.NewListResponse(result))
}

// GetByID handles GET /document/intakes/:id.
func (h *IntakeHandler) GetByID(c *gin.Context) {
	batchID, ok := h.ParseID(c, "id")
	if !ok {
		return
	}

	batch, err := h.service.GetByID(c.Request.Context(), batchID)
	if err != nil {
		h.Error(c, err)
		return
	}
	h.OK(c, batch)
}

// Update handles PUT /document/intakes/:id.
func (h *IntakeHandler) Update(c *gin.Context) {
	batchID, ok := h.ParseID(c, "id")
	if !ok {
		return
	}
	var req dto.IntakeRequest
	if !h.BindJSON(c, &req) {
		return
	}
	input, err := req.ToInput()
	if err != nil {
		h.Error(c, err)
		return
	}

	batch, err := h.service.Update(c.Request.Context(), batchID, input)
	if err != nil {
		h.Error(c, err)
		return
	}
	h.OK(c, batch)
}

// Delete handles DELETE /document/intakes/:id.
func (h *IntakeHandler) Delete(c *gin.Context) {
	batchID, ok := h.ParseID(c, "id")
	if !ok {
		return
	}
	if err := h.service.Delete(c.Request.Context(), batchID); err != nil {
		h.Error(c, err)
		return
	}
	h.NoContent(c)
}
