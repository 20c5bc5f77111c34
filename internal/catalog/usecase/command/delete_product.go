package command

import (
	"fmt"

	"github.com/rasoilabs/pos-backend/internal/catalog/domain"
	"github.com/rasoilabs/pos-backend/pkg/apperror"
)

// DeleteProductCommand represents the command to delete a menu item
type DeleteProductCommand struct {
	ID uint
}

// DeleteProductHandler handles product deletion
type DeleteProductHandler struct {
	products domain.ProductRepository
}

// NewDeleteProductHandler creates a new delete product handler
func NewDeleteProductHandler(products domain.ProductRepository) *DeleteProductHandler {
	return &DeleteProductHandler{products: products}
}

// Handle executes the delete product command. Order items keep their own
// name/price snapshots, so historical bills survive the delete.
func (h *DeleteProductHandler) Handle(cmd DeleteProductCommand) error {
	if cmd.ID == 0 {
		return apperror.Invalid("invalid product id")
	}

	if _, err := h.products.FindByID(cmd.ID); err != nil {
		return apperror.Invalid("product not found")
	}

	if err := h.products.Delete(cmd.ID); err != nil {
		return fmt.Errorf("failed to delete product: %w", err)
	}

	return nil
}
