package command

import (
	"fmt"

	"github.com/rasoilabs/pos-backend/internal/catalog/domain"
	inventorydomain "github.com/rasoilabs/pos-backend/internal/inventory/domain"
	"github.com/rasoilabs/pos-backend/pkg/apperror"
)

// StockRecorder appends an inventory history row for a stock-affecting
// operation. Implemented by the inventory repository.
type StockRecorder interface {
	RecordChange(productID uint, changeType string, quantityChange, previousStock, newStock int, referenceOrderID *uint, notes string, createdBy *uint) error
}

// CreateProductCommand represents the command to create a menu item
type CreateProductCommand struct {
	Name              string
	CategoryID        uint
	Price             float64
	StockQuantity     int
	LowStockThreshold int
	CreatedBy         *uint
}

// CreateProductHandler handles product creation
type CreateProductHandler struct {
	products   domain.ProductRepository
	categories domain.CategoryRepository
	stock      StockRecorder
}

// NewCreateProductHandler creates a new create product handler
func NewCreateProductHandler(products domain.ProductRepository, categories domain.CategoryRepository, stock StockRecorder) *CreateProductHandler {
	return &CreateProductHandler{products: products, categories: categories, stock: stock}
}

// Handle executes the create product command
func (h *CreateProductHandler) Handle(cmd CreateProductCommand) (*domain.Product, error) {
	if cmd.Name == "" {
		return nil, apperror.Invalid("product name is required")
	}
	if cmd.CategoryID == 0 {
		return nil, apperror.Invalid("category_id is required")
	}
	if cmd.Price < 0 {
		return nil, apperror.Invalid("price cannot be negative")
	}
	if cmd.StockQuantity < 0 {
		return nil, apperror.Invalid("stock quantity cannot be negative")
	}

	category, err := h.categories.FindByID(cmd.CategoryID)
	if err != nil {
		return nil, apperror.Invalid("category not found")
	}

	threshold := cmd.LowStockThreshold
	if threshold <= 0 {
		threshold = 10
	}

	product := &domain.Product{
		Name:              cmd.Name,
		CategoryID:        cmd.CategoryID,
		Price:             cmd.Price,
		Enabled:           true,
		StockQuantity:     cmd.StockQuantity,
		LowStockThreshold: threshold,
	}

	if err := h.products.Create(product); err != nil {
		return nil, fmt.Errorf("failed to create product: %w", err)
	}
	product.CategoryName = category.Name

	if cmd.StockQuantity > 0 && h.stock != nil {
		if err := h.stock.RecordChange(product.ID, inventorydomain.ChangeInitial, cmd.StockQuantity, 0, cmd.StockQuantity, nil, "Initial stock", cmd.CreatedBy); err != nil {
			return nil, fmt.Errorf("failed to record initial stock: %w", err)
		}
	}

	return product, nil
}
