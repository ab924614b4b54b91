package dto

// --- Products ---

// CreateProductRequest for POST /catalog/products.
type CreateProductRequest struct {
	Name             string  `json:"name" binding:"required"`
	Type             string  `json:"type" binding:"required"`
	Quality          string  `json:"quality" binding:"required"`
	ConversionFactor float64 `json:"conversionFactor"`
}

// UpdateProductRequest for PUT /catalog/products/:id.
type UpdateProductRequest struct {
	Name             string  `json:"name" binding:"required"`
	Type             string  `json:"type" binding:"required"`
	Quality          string  `json:"quality" binding:"required"`
	ConversionFactor float64 `json:"conversionFactor"`
	Version          int     `json:"version" binding:"required,min=1"`
}

// --- Customers ---

// CreateCustomerRequest for POST /catalog/customers.
type CreateCustomerRequest struct {
	Name           string  `json:"name" binding:"required"`
	WhatsappNumber *string `json:"whatsappNumber"`
}

// UpdateCustomerRequest for PUT /catalog/customers/:id.
type UpdateCustomerRequest struct {
	Name           string  `json:"name" binding:"required"`
	WhatsappNumber *string `json:"whatsappNumber"`
	Version        int     `json:"version" binding:"required,min=1"`
}

// --- Options ---

// CreateOptionRequest for POST /catalog/options/:kind.
type CreateOptionRequest struct {
	Name string `json:"name" binding:"required"`
}

// --- Payments ---

// RecordPaymentRequest for POST /catalog/customers/:id/payments.
type RecordPaymentRequest struct {
	Amount string  `json:"amount" binding:"required"`
	Notes  *string `json:"notes"`
}
