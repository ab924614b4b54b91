package dto

import (
	"gyh/internal/domain/stock"
)

// StockResponse is the computed position of one product.
type StockResponse struct {
	ProductID        string  `json:"productId"`
	ProductName      string  `json:"productName"`
	ConversionFactor float64 `json:"conversionFactor"`

	TotalIntakeKG    float64 `json:"totalIntakeKg"`
	TotalIntakeJavas float64 `json:"totalIntakeJavas"`
	TotalSoldKG      float64 `json:"totalSoldKg"`
	TotalSoldJavas   float64 `json:"totalSoldJavas"`

	AvailableKG        float64 `json:"availableKg"`
	AvailableJavas     float64 `json:"availableJavas"`
	AverageCostPerJava float64 `json:"averageCostPerJava"`
}

// FromStockInfo converts a computed position to its API view.
func FromStockInfo(info *stock.Info) StockResponse {
	return StockResponse{
		ProductID:          info.ProductID.String(),
		ProductName:        info.ProductName,
		ConversionFactor:   info.ConversionFactor,
		TotalIntakeKG:      info.TotalIntakeKG,
		TotalIntakeJavas:   info.TotalIntakeJavas,
		TotalSoldKG:        info.TotalSoldKG,
		TotalSoldJavas:     info.TotalSoldJavas,
		AvailableKG:        info.AvailableKG(),
		AvailableJavas:     info.AvailableJavas(),
		AverageCostPerJava: info.AverageCostPerJava(),
	}
}

// --- Inventory snapshots ---

// CreateSnapshotRequest for POST /registers/inventory.
type CreateSnapshotRequest struct {
	PhysicalCount float64 `json:"physicalCount" binding:"min=0"`
}
