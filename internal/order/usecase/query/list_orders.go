package query

import (
	"fmt"

	"github.com/rasoilabs/pos-backend/internal/order/domain"
)

// ListOrdersQuery wraps the order history filters
type ListOrdersQuery struct {
	Filter domain.OrderFilter
}

// ListOrdersHandler handles the order history query
type ListOrdersHandler struct {
	repo domain.OrderRepository
}

// NewListOrdersHandler creates a new list orders handler
func NewListOrdersHandler(repo domain.OrderRepository) *ListOrdersHandler {
	return &ListOrdersHandler{repo: repo}
}

// Handle executes the history query, attaching item snapshots to each order
func (h *ListOrdersHandler) Handle(query ListOrdersQuery) ([]domain.Order, error) {
	orders, err := h.repo.FindAll(query.Filter)
	if err != nil {
		return nil, fmt.Errorf("failed to list orders: %w", err)
	}
	if len(orders) == 0 {
		return orders, nil
	}

	ids := make([]uint, len(orders))
	for i, o := range orders {
		ids[i] = o.ID
	}

	items, err := h.repo.FindItemsByOrderIDs(ids)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch order items: %w", err)
	}

	byOrder := make(map[uint][]domain.OrderItem, len(orders))
	for _, item := range items {
		byOrder[item.OrderID] = append(byOrder[item.OrderID], item)
	}
	for i := range orders {
		orders[i].Items = byOrder[orders[i].ID]
	}

	return orders, nil
}
