package handlers

import (
	"github.com/gin-gonic/gin"

	"gyh/internal/core/apperror"
	"gyh/internal/core/types"
	"gyh/internal/domain/catalogs/customer"
	"gyh/internal/domain/ledger"
	"gyh/internal/infrastructure/http/v1/dto"
)

// CustomerHandler handles customer catalog and payment endpoints.
type CustomerHandler struct {
	*BaseHandler
	service  *customer.Service
	payments *ledger.Service
}

// NewCustomerHandler creates a new customer handler.
func NewCustomerHandler(base *BaseHandler, service *customer.Service, payments *ledger.Service) *CustomerHandler {
	return &CustomerHandler{BaseHandler: base, service: service, payments: payments}
}

// RegisterRoutes registers customer endpoints.
func (h *CustomerHandler) RegisterRoutes(rg *gin.RouterGroup) {
	rg.POST("", h.Create)
	rg.GET("", h.List)
	rg.GET("/:id", h.GetByID)
	rg.PUT("/:id", h.Update)
	rg.DELETE("/:id", h.Delete)

	rg.POST("/:id/payments", h.RecordPayment)
	rg.GET("/:id/payments", h.ListPayments)
}

// Create handles POST /catalog/customers.
func (h *CustomerHandler) Create(c *gin.Context) {
	var req dto.CreateCustomerRequest
	if !h.BindJSON(c, &req) {
		return
	}

	cust := customer.New(req.Name, req.WhatsappNumber)
	if err := h.service.Create(c.Request.Context(), cust); err != nil {
		h.Error(c, err)
		return
	}
	h.Created(c, cust.ID)
}

// List handles GET /catalog/customers.
func (h *CustomerHandler) List(c *gin.Context) {
	var req dto.ListRequest
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

// GetByID handles GET /catalog/customers/:id.
func (h *CustomerHandler) GetByID(c *gin.Context) {
	customerID, ok := h.ParseID(c, "id")
	if !ok {
		return
	}

	cust, err := h.service.GetByID(c.Request.Context(), customerID)
	if err != nil {
		h.Error(c, err)
		return
	}
	h.OK(c, cust)
}

// Update handles PUT /catalog/customers/:id. Debt is not editable here;
// it only moves through sales and payments.
func (h *CustomerHandler) Update(c *gin.Context) {
	customerID, ok := h.ParseID(c, "id")
	if !ok {
		return
	}
	var req dto.UpdateCustomerRequest
	if !h.BindJSON(c, &req) {
		return
	}

	cust, err := h.service.GetByID(c.Request.Context(), customerID)
	if err != nil {
		h.Error(c, err)
		return
	}
	cust.Name = req.Name
	cust.WhatsappNumber = req.WhatsappNumber
	cust.SetVersion(req.Version)

	if err := h.service.Update(c.Request.Context(), cust); err != nil {
		h.Error(c, err)
		return
	}
	h.OK(c, cust)
}

// Delete handles DELETE /catalog/customers/:id.
func (h *CustomerHandler) Delete(c *gin.Context) {
	customerID, ok := h.ParseID(c, "id")
	if !ok {
		return
	}
	if err := h.service.Delete(c.Request.Context(), customerID); err != nil {
		h.Error(c, err)
		return
	}
	h.NoContent(c)
}

// RecordPayment handles POST /catalog/customers/:id/payments.
func (h *CustomerHandler) RecordPayment(c *gin.Context) {
	customerID, ok := h.ParseID(c, "id")
	if !ok {
		return
	}
	var req dto.RecordPaymentRequest
	if !h.BindJSON(c, &req) {
		return
	}

	amount, err := types.NewMoneyFromString(req.Amount)
	if err != nil {
		h.Error(c, apperror.NewFieldValidation("amount", "invalid amount"))
		return
	}

	payment, err := h.payments.RecordPayment(c.Request.Context(), customerID, amount, req.Notes)
	if err != nil {
		h.Error(c, err)
		return
	}
	h.OK(c, payment)
}

// ListPayments handles GET /catalog/customers/:id/payments.
func (h *CustomerHandler) ListPayments(c *gin.Context) {
	customerID, ok := h.ParseID(c, "id")
	if !ok {
		return
	}

	limit := h.ParseIntQuery(c, "limit", 50)
	offset := h.ParseIntQuery(c, "offset", 0)

	result, err := h.payments.ListPayments(c.Request.Context(), customerID, limit, offset)
	if err != nil {
		h.Error(c, err)
		return
	}
	h.OK(c, dto.NewListResponse(result))
}
