package command

import (
	"errors"
	"fmt"

	"gorm.io/gorm"

	"github.com/rasoilabs/pos-backend/internal/inventory/domain"
	"github.com/rasoilabs/pos-backend/pkg/apperror"
)

// RestockCommand adds purchased stock to a product
type RestockCommand struct {
	ProductID uint
	Quantity  int
	Notes     string
	CreatedBy *uint
}

// RestockHandler handles the restock command
type RestockHandler struct {
	repo domain.InventoryRepository
}

// NewRestockHandler creates a new restock handler
func NewRestockHandler(repo domain.InventoryRepository) *RestockHandler {
	return &RestockHandler{repo: repo}
}

// Handle executes the restock command
func (h *RestockHandler) Handle(cmd RestockCommand) (*domain.StockChangeResult, error) {
	if cmd.ProductID == 0 {
		return nil, apperror.Invalid("product id is required")
	}
	if cmd.Quantity <= 0 {
		return nil, apperror.Invalid("quantity must be positive")
	}

	notes := cmd.Notes
	if notes == "" {
		notes = "Stock purchase"
	}

	result, err := h.repo.ApplyStockChange(cmd.ProductID, domain.ChangePurchase, cmd.Quantity, nil, notes, cmd.CreatedBy)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperror.Invalid("product %d not found", cmd.ProductID)
		}
		return nil, fmt.Errorf("failed to restock: %w", err)
	}

	return result, nil
}
