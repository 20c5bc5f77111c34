package command

import (
	catalogdomain "github.com/rasoilabs/pos-backend/internal/catalog/domain"
	customerdomain "github.com/rasoilabs/pos-backend/internal/customer/domain"
	"github.com/rasoilabs/pos-backend/internal/order/domain"
	"github.com/rasoilabs/pos-backend/pkg/apperror"
)

// OrderItemInput is one cart line in a checkout request
type OrderItemInput struct {
	ProductID uint
	Quantity  int
}

// CreateOrderCommand finalizes a cart into a completed order
type CreateOrderCommand struct {
	OrderType   string
	PaymentMode string
	Items       []OrderItemInput
	Notes       string
	CustomerID  *uint
	AdvanceUsed float64
	CreatedBy   uint
}

// EventPublisher fans out a completed order to interested listeners
// (SSE subscribers, message broker). Publishing happens after commit
// and must not fail the order.
type EventPublisher interface {
	OrderCompleted(order *domain.Order)
}

// CreateOrderHandler handles the checkout command
type CreateOrderHandler struct {
	orders    domain.OrderRepository
	products  catalogdomain.ProductRepository
	customers customerdomain.CustomerRepository
	publisher EventPublisher
}

// NewCreateOrderHandler creates a new checkout handler
func NewCreateOrderHandler(
	orders domain.OrderRepository,
	products catalogdomain.ProductRepository,
	customers customerdomain.CustomerRepository,
	publisher EventPublisher,
) *CreateOrderHandler {
	return &CreateOrderHandler{
		orders:    orders,
		products:  products,
		customers: customers,
		publisher: publisher,
	}
}

// Handle validates the cart, snapshots product names and prices, and runs
// the transactional creation workflow. Item prices are read server-side so
// a tampered client cannot set its own prices.
func (h *CreateOrderHandler) Handle(cmd CreateOrderCommand) (*domain.Order, error) {
	if cmd.OrderType != domain.TypeDineIn && cmd.OrderType != domain.TypeTakeaway {
		return nil, apperror.Invalid("invalid order type %q", cmd.OrderType)
	}
	if cmd.PaymentMode != domain.PaymentCash && cmd.PaymentMode != domain.PaymentUPI {
		return nil, apperror.Invalid("invalid payment mode %q", cmd.PaymentMode)
	}
	if len(cmd.Items) == 0 {
		return nil, apperror.Invalid("order must contain at least one item")
	}
	if cmd.CreatedBy == 0 {
		return nil, apperror.Invalid("created_by is required")
	}
	if cmd.AdvanceUsed < 0 {
		return nil, apperror.Invalid("advance used cannot be negative")
	}

	var subtotal float64
	items := make([]domain.OrderItem, 0, len(cmd.Items))
	for _, line := range cmd.Items {
		if line.Quantity <= 0 {
			return nil, apperror.Invalid("item quantity must be positive")
		}

		product, err := h.products.FindByID(line.ProductID)
		if err != nil {
			return nil, apperror.Invalid("product %d not found", line.ProductID)
		}

		items = append(items, domain.OrderItem{
			ProductID:   product.ID,
			ProductName: product.Name,
			Quantity:    line.Quantity,
			PriceAtTime: product.Price,
		})
		subtotal += product.Price * float64(line.Quantity)
	}

	if cmd.AdvanceUsed > 0 {
		if cmd.CustomerID == nil {
			return nil, apperror.Invalid("advance payment requires a customer")
		}
		if cmd.AdvanceUsed > subtotal {
			return nil, apperror.Invalid("advance used cannot exceed order subtotal")
		}
		customer, err := h.customers.FindByID(*cmd.CustomerID)
		if err != nil {
			return nil, apperror.Invalid("customer %d not found", *cmd.CustomerID)
		}
		if customer.AdvanceBalance < cmd.AdvanceUsed {
			return nil, domain.ErrInsufficientAdvance
		}
	}

	order := &domain.Order{
		OrderType:   cmd.OrderType,
		PaymentMode: cmd.PaymentMode,
		TotalAmount: subtotal - cmd.AdvanceUsed,
		Notes:       cmd.Notes,
		Status:      domain.StatusCompleted,
		CustomerID:  cmd.CustomerID,
		AdvanceUsed: cmd.AdvanceUsed,
		CreatedBy:   cmd.CreatedBy,
	}

	if err := h.orders.CreateCompleted(order, items); err != nil {
		return nil, err
	}

	if h.publisher != nil {
		h.publisher.OrderCompleted(order)
	}

	return order, nil
}
