package query

import (
	"fmt"
	"sort"

	"github.com/rasoilabs/pos-backend/internal/customer/domain"
	orderdomain "github.com/rasoilabs/pos-backend/internal/order/domain"
)

// GetStatsQuery summarizes a customer's spending and ordering habits
type GetStatsQuery struct {
	CustomerID uint
}

// GetStatsHandler handles the customer stats query
type GetStatsHandler struct {
	customers domain.CustomerRepository
	orders    orderdomain.OrderRepository
}

// NewGetStatsHandler creates a new customer stats handler
func NewGetStatsHandler(customers domain.CustomerRepository, orders orderdomain.OrderRepository) *GetStatsHandler {
	return &GetStatsHandler{customers: customers, orders: orders}
}

// Handle executes the customer stats query. Total spent counts the original
// order value: when advance was applied, total_amount + advance_used.
func (h *GetStatsHandler) Handle(query GetStatsQuery) (*domain.CustomerStats, error) {
	if query.CustomerID == 0 {
		return nil, fmt.Errorf("invalid customer id")
	}

	if _, err := h.customers.FindByID(query.CustomerID); err != nil {
		return nil, fmt.Errorf("customer not found")
	}

	orders, err := h.orders.FindByCustomerID(query.CustomerID)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch customer orders: %w", err)
	}

	stats := &domain.CustomerStats{
		TotalOrders:      len(orders),
		MostOrderedItems: []domain.OrderedItem{},
	}

	orderIDs := make([]uint, 0, len(orders))
	for _, o := range orders {
		stats.TotalSpent += o.TotalAmount + o.AdvanceUsed
		orderIDs = append(orderIDs, o.ID)
	}

	if len(orderIDs) == 0 {
		return stats, nil
	}

	items, err := h.orders.FindItemsByOrderIDs(orderIDs)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch order items: %w", err)
	}

	grouped := make(map[string]*domain.OrderedItem)
	for _, item := range items {
		entry, ok := grouped[item.ProductName]
		if !ok {
			entry = &domain.OrderedItem{Name: item.ProductName}
			grouped[item.ProductName] = entry
		}
		entry.Quantity += item.Quantity
		entry.Revenue += item.PriceAtTime * float64(item.Quantity)
	}

	ranked := make([]domain.OrderedItem, 0, len(grouped))
	for _, entry := range grouped {
		ranked = append(ranked, *entry)
	}
	sort.SliceStable(ranked, func(i, j int) bool {
		return ranked[i].Quantity > ranked[j].Quantity
	})

	if len(ranked) > 5 {
		ranked = ranked[:5]
	}
	stats.MostOrderedItems = ranked

	return stats, nil
}
