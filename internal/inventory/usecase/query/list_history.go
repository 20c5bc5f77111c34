package query

import (
	"fmt"

	"github.com/rasoilabs/pos-backend/internal/inventory/domain"
)

// ListHistoryQuery contains filters for the stock audit trail
type ListHistoryQuery struct {
	ProductID uint
	Limit     int
}

// ListHistoryHandler handles the inventory history query
type ListHistoryHandler struct {
	repo domain.InventoryRepository
}

// NewListHistoryHandler creates a new history handler
func NewListHistoryHandler(repo domain.InventoryRepository) *ListHistoryHandler {
	return &ListHistoryHandler{repo: repo}
}

// Handle executes the history query, newest first
func (h *ListHistoryHandler) Handle(query ListHistoryQuery) ([]domain.InventoryHistory, error) {
	limit := query.Limit
	if limit <= 0 {
		limit = 100
	}

	history, err := h.repo.FindHistory(query.ProductID, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch inventory history: %w", err)
	}
	return history, nil
}
