package query

import (
	"fmt"

	catalogdomain "github.com/rasoilabs/pos-backend/internal/catalog/domain"
	"github.com/rasoilabs/pos-backend/internal/inventory/domain"
	"github.com/rasoilabs/pos-backend/pkg/apperror"
)

// Report types
const (
	ReportAll      = "all"
	ReportLowStock = "low_stock"
)

// GetReportQuery builds the derived stock report
type GetReportQuery struct {
	Type string
}

// GetReportHandler handles the inventory report query
type GetReportHandler struct {
	products  catalogdomain.ProductRepository
	inventory domain.InventoryRepository
}

// NewGetReportHandler creates a new report handler
func NewGetReportHandler(products catalogdomain.ProductRepository, inventory domain.InventoryRepository) *GetReportHandler {
	return &GetReportHandler{products: products, inventory: inventory}
}

// Handle executes the report query. Status is computed on read: zero stock
// is out_of_stock regardless of threshold, stock at or below the threshold
// is low_stock.
func (h *GetReportHandler) Handle(query GetReportQuery) ([]domain.StockReport, error) {
	reportType := query.Type
	if reportType == "" {
		reportType = ReportAll
	}
	if reportType != ReportAll && reportType != ReportLowStock {
		return nil, apperror.Invalid("invalid report type %q", reportType)
	}

	products, err := h.products.FindAll(catalogdomain.ProductFilter{})
	if err != nil {
		return nil, fmt.Errorf("failed to fetch products: %w", err)
	}

	totals, err := h.inventory.TotalSoldByProduct()
	if err != nil {
		return nil, fmt.Errorf("failed to fetch sold totals: %w", err)
	}

	reports := make([]domain.StockReport, 0, len(products))
	for _, p := range products {
		status := p.StockStatus()
		if reportType == ReportLowStock && status == catalogdomain.StockStatusIn {
			continue
		}

		reports = append(reports, domain.StockReport{
			ProductID:         p.ID,
			ProductName:       p.Name,
			CategoryName:      p.CategoryName,
			CurrentStock:      p.StockQuantity,
			LowStockThreshold: p.LowStockThreshold,
			Status:            status,
			TotalSold:         totals[p.ID],
			LastUpdated:       p.UpdatedAt,
		})
	}

	return reports, nil
}
