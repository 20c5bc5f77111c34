package command

import (
	"fmt"

	"github.com/rasoilabs/pos-backend/internal/catalog/domain"
	"github.com/rasoilabs/pos-backend/pkg/apperror"
)

// UpdateProductCommand carries a partial update; nil fields are untouched
type UpdateProductCommand struct {
	ID                uint
	Name              *string
	CategoryID        *uint
	Price             *float64
	Enabled           *bool
	LowStockThreshold *int
}

// UpdateProductHandler handles product updates
type UpdateProductHandler struct {
	products   domain.ProductRepository
	categories domain.CategoryRepository
}

// NewUpdateProductHandler creates a new update product handler
func NewUpdateProductHandler(products domain.ProductRepository, categories domain.CategoryRepository) *UpdateProductHandler {
	return &UpdateProductHandler{products: products, categories: categories}
}

// Handle executes the update product command
func (h *UpdateProductHandler) Handle(cmd UpdateProductCommand) (*domain.Product, error) {
	if cmd.ID == 0 {
		return nil, apperror.Invalid("invalid product id")
	}
	if cmd.Name == nil && cmd.CategoryID == nil && cmd.Price == nil && cmd.Enabled == nil && cmd.LowStockThreshold == nil {
		return nil, apperror.Invalid("no fields to update")
	}

	product, err := h.products.FindByID(cmd.ID)
	if err != nil {
		return nil, apperror.Invalid("product not found")
	}

	if cmd.Name != nil {
		if *cmd.Name == "" {
			return nil, apperror.Invalid("product name cannot be empty")
		}
		product.Name = *cmd.Name
	}
	if cmd.CategoryID != nil {
		if _, err := h.categories.FindByID(*cmd.CategoryID); err != nil {
			return nil, apperror.Invalid("category not found")
		}
		product.CategoryID = *cmd.CategoryID
	}
	if cmd.Price != nil {
		if *cmd.Price < 0 {
			return nil, apperror.Invalid("price cannot be negative")
		}
		product.Price = *cmd.Price
	}
	if cmd.Enabled != nil {
		product.Enabled = *cmd.Enabled
	}
	if cmd.LowStockThreshold != nil {
		if *cmd.LowStockThreshold < 0 {
			return nil, apperror.Invalid("low stock threshold cannot be negative")
		}
		product.LowStockThreshold = *cmd.LowStockThreshold
	}

	if err := h.products.Update(product); err != nil {
		return nil, fmt.Errorf("failed to update product: %w", err)
	}

	return h.products.FindByID(cmd.ID)
}
