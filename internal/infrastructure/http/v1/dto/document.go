package dto

import (
	"time"

	"gyh/internal/core/apperror"
	"gyh/internal/core/id"
	"gyh/internal/core/types"
	"gyh/internal/domain/intake"
	"gyh/internal/domain/sale"
)

// --- Intake batches ---

// IntakeLineRequest is one line of a batch form.
type IntakeLineRequest struct {
	SupplierName     string   `json:"supplierName" binding:"required"`
	ProductID        string   `json:"productId" binding:"required"`
	TotalKG          float64  `json:"totalKg" binding:"required,gt=0"`
	ConversionFactor *float64 `json:"conversionFactor"`
	CostInput        float64  `json:"costInput" binding:"required,gt=0"`
	CostMode         string   `json:"costMode"`
}

// IntakeRequest for POST and PUT /document/intakes.
type IntakeRequest struct {
	Date    *time.Time          `json:"date"`
	TruckID string              `json:"truckId" binding:"required"`
	Lines   []IntakeLineRequest `json:"lines" binding:"required,min=1"`
}

// ToInput converts the request to the service input form.
func (r *IntakeRequest) ToInput() (intake.CreateInput, error) {
	input := intake.CreateInput{
		Date:    r.Date,
		TruckID: r.TruckID,
		Lines:   make([]intake.LineInput, 0, len(r.Lines)),
	}
	for i, line := range r.Lines {
		productID, err := id.Parse(line.ProductID)
		if err != nil {
			return input, apperror.NewFieldValidation("productId", "invalid product id").
				WithDetail("line", i+1)
		}
		input.Lines = append(input.Lines, intake.LineInput{
			SupplierName:     line.SupplierName,
			ProductID:        productID,
			TotalKG:          line.TotalKG,
			ConversionFactor: line.ConversionFactor,
			CostInput:        line.CostInput,
			CostMode:         intake.CostMode(line.CostMode),
		})
	}
	return input, nil
}

// IntakeListRequest for GET /document/intakes.
type IntakeListRequest struct {
	DateFrom *time.Time `form:"dateFrom" time_format:"2006-01-02"`
	DateTo   *time.Time `form:"dateTo" time_format:"2006-01-02"`
	TruckID  string     `form:"truckId"`
	Limit    int        `form:"limit"`
	Offset   int        `form:"offset"`
}

// ToFilter converts the request to an intake filter.
func (r *IntakeListRequest) ToFilter() intake.Filter {
	return intake.Filter{
		DateFrom: r.DateFrom,
		DateTo:   r.DateTo,
		TruckID:  r.TruckID,
		Limit:    r.Limit,
		Offset:   r.Offset,
	}
}

// --- Sales ---

// SaleLineRequest is one line of a sale form.
type SaleLineRequest struct {
	ProductID        string   `json:"productId" binding:"required"`
	QuantityKG       float64  `json:"quantityKg" binding:"required,gt=0"`
	ConversionFactor *float64 `json:"conversionFactor"`
	PricePerKG       string   `json:"pricePerKg" binding:"required"`
}

// CreateSaleRequest for POST /document/sales.
type CreateSaleRequest struct {
	Type       string            `json:"type" binding:"required"`
	CustomerID *string           `json:"customerId"`
	Lines      []SaleLineRequest `json:"lines" binding:"required,min=1"`
}

// UpdateSaleRequest for PUT /document/sales/:id.
type UpdateSaleRequest struct {
	CustomerID *string           `json:"customerId"`
	Lines      []SaleLineRequest `json:"lines" binding:"required,min=1"`
}

func parseSaleLines(lines []SaleLineRequest) ([]sale.LineInput, error) {
	inputs := make([]sale.LineInput, 0, len(lines))
	for i, line := range lines {
		productID, err := id.Parse(line.ProductID)
		if err != nil {
			return nil, apperror.NewFieldValidation("productId", "invalid product id").
				WithDetail("line", i+1)
		}
		price, err := types.NewMoneyFromString(line.PricePerKG)
		if err != nil {
			return nil, apperror.NewFieldValidation("pricePerKg", "invalid price").
				WithDetail("line", i+1)
		}
		inputs = append(inputs, sale.LineInput{
			ProductID:        productID,
			QuantityKG:       line.QuantityKG,
			ConversionFactor: line.ConversionFactor,
			PricePerKG:       price,
		})
	}
	return inputs, nil
}

func parseCustomerID(raw *string) (*id.ID, error) {
	if raw == nil || *raw == "" {
		return nil, nil
	}
	customerID, err := id.Parse(*raw)
	if err != nil {
		return nil, apperror.NewFieldValidation("customerId", "invalid customer id")
	}
	return &customerID, nil
}

// ToInput converts the request to the service input form.
func (r *CreateSaleRequest) ToInput() (sale.CreateInput, error) {
	customerID, err := parseCustomerID(r.CustomerID)
	if err != nil {
		return sale.CreateInput{}, err
	}
	lines, err := parseSaleLines(r.Lines)
	if err != nil {
		return sale.CreateInput{}, err
	}
	return sale.CreateInput{
		Type:       sale.Type(r.Type),
		CustomerID: customerID,
		Lines:      lines,
	}, nil
}

// ToInput converts the request to the service input form.
func (r *UpdateSaleRequest) ToInput() (sale.UpdateInput, error) {
	customerID, err := parseCustomerID(r.CustomerID)
	if err != nil {
		return sale.UpdateInput{}, err
	}
	lines, err := parseSaleLines(r.Lines)
	if err != nil {
		return sale.UpdateInput{}, err
	}
	return sale.UpdateInput{
		CustomerID: customerID,
		Lines:      lines,
	}, nil
}

// SaleListRequest for GET /document/sales.
type SaleListRequest struct {
	DateFrom   *time.Time `form:"dateFrom" time_format:"2006-01-02"`
	DateTo     *time.Time `form:"dateTo" time_format:"2006-01-02"`
	CustomerID *string    `form:"customerId"`
	Type       *string    `form:"type"`
	Limit      int        `form:"limit"`
	Offset     int        `form:"offset"`
}

// ToFilter converts the request to a sale filter.
func (r *SaleListRequest) ToFilter() (sale.Filter, error) {
	f := sale.Filter{
		DateFrom: r.DateFrom,
		DateTo:   r.DateTo,
		Limit:    r.Limit,
		Offset:   r.Offset,
	}
	customerID, err := parseCustomerID(r.CustomerID)
	if err != nil {
		return f, err
	}
	f.CustomerID = customerID
	if r.Type != nil && *r.Type != "" {
		saleType := sale.Type(*r.Type)
		if !saleType.Valid() {
			return f, apperror.NewFieldValidation("type", "sale type must be CASH or CREDIT")
		}
		f.Type = &saleType
	}
	return f, nil
}
