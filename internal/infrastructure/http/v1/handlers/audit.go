package handlers

import (
	"github.com/gin-gonic/gin"

	"gyh/internal/infrastructure/storage/postgres"
)

// AuditHandler exposes the audit trail of an entity.
type AuditHandler struct {
	*BaseHandler
	recorder *postgres.AuditRecorder
}

// NewAuditHandler creates a new audit handler.
func NewAuditHandler(base *BaseHandler, recorder *postgres.AuditRecorder) *AuditHandler {
	return &AuditHandler{BaseHandler: base, recorder: recorder}
}

// RegisterRoutes registers audit endpoints.
func (h *AuditHandler) RegisterRoutes(rg *gin.RouterGroup) {
	rg.GET("/:entityType/:id", h.History)
}

// History handles GET /audit/:entityType/:id.
func (h *AuditHandler) History(c *gin.Context) {
	entityID, ok := h.ParseID(c, "id")
	if !ok {
		return
	}
	limit := h.ParseIntQuery(c, "limit", 100)

	entries, err := h.recorder.History(c.Request.Context(), c.Param("entityType"), entityID, limit)
	if err != nil {
		h.Error(c, err)
		return
	}
	h.OK(c, entries)
}
