package command

import (
	"errors"
	"fmt"

	"gorm.io/gorm"

	"github.com/rasoilabs/pos-backend/internal/inventory/domain"
	"github.com/rasoilabs/pos-backend/pkg/apperror"
)

// AdjustStockCommand applies a signed manual correction (wastage, recount)
type AdjustStockCommand struct {
	ProductID uint
	Quantity  int
	Notes     string
	CreatedBy *uint
}

// AdjustStockHandler handles manual stock adjustments
type AdjustStockHandler struct {
	repo domain.InventoryRepository
}

// NewAdjustStockHandler creates a new adjust stock handler
func NewAdjustStockHandler(repo domain.InventoryRepository) *AdjustStockHandler {
	return &AdjustStockHandler{repo: repo}
}

// Handle executes the adjustment. Stock floors at zero.
func (h *AdjustStockHandler) Handle(cmd AdjustStockCommand) (*domain.StockChangeResult, error) {
	if cmd.ProductID == 0 {
		return nil, apperror.Invalid("product id is required")
	}
	if cmd.Quantity == 0 {
		return nil, apperror.Invalid("quantity cannot be zero")
	}

	notes := cmd.Notes
	if notes == "" {
		notes = "Manual adjustment"
	}

	result, err := h.repo.ApplyStockChange(cmd.ProductID, domain.ChangeAdjustment, cmd.Quantity, nil, notes, cmd.CreatedBy)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperror.Invalid("product %d not found", cmd.ProductID)
		}
		return nil, fmt.Errorf("failed to adjust stock: %w", err)
	}

	return result, nil
}
