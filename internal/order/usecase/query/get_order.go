package query

import (
	"errors"
	"fmt"

	"gorm.io/gorm"

	customerdomain "github.com/rasoilabs/pos-backend/internal/customer/domain"
	"github.com/rasoilabs/pos-backend/internal/order/domain"
)

// ErrOrderNotFound is returned when the requested order does not exist
var ErrOrderNotFound = errors.New("order not found")

// GetOrderQuery fetches one order with its bill lines
type GetOrderQuery struct {
	ID uint
}

// OrderDetail is an order plus the customer attached to it, if any
type OrderDetail struct {
	domain.Order
	Customer *customerdomain.Customer `json:"customer,omitempty"`
}

// GetOrderHandler handles the single-order query
type GetOrderHandler struct {
	orders    domain.OrderRepository
	customers customerdomain.CustomerRepository
}

// NewGetOrderHandler creates a new get order handler
func NewGetOrderHandler(orders domain.OrderRepository, customers customerdomain.CustomerRepository) *GetOrderHandler {
	return &GetOrderHandler{orders: orders, customers: customers}
}

// Handle executes the query
func (h *GetOrderHandler) Handle(query GetOrderQuery) (*OrderDetail, error) {
	order, err := h.orders.FindByID(query.ID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrOrderNotFound
		}
		return nil, fmt.Errorf("failed to fetch order: %w", err)
	}

	items, err := h.orders.FindItemsByOrderID(order.ID)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch order items: %w", err)
	}
	order.Items = items

	detail := &OrderDetail{Order: *order}
	if order.CustomerID != nil {
		customer, err := h.customers.FindByID(*order.CustomerID)
		if err == nil {
			detail.Customer = customer
		}
	}

	return detail, nil
}
