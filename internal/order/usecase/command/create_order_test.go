package command

import (
	"errors"
	"fmt"
	"testing"
	"time"

	catalogdomain "github.com/rasoilabs/pos-backend/internal/catalog/domain"
	customerdomain "github.com/rasoilabs/pos-backend/internal/customer/domain"
	"github.com/rasoilabs/pos-backend/internal/order/domain"
)

type fakeOrderRepo struct {
	orders []domain.Order
	items  [][]domain.OrderItem
	seq    int
}

func (f *fakeOrderRepo) CreateCompleted(order *domain.Order, items []domain.OrderItem) error {
	f.seq++
	order.ID = uint(f.seq)
	order.BillNumber = fmt.Sprintf("%s-%04d", time.Now().Format("20060102"), f.seq)
	order.CreatedAt = time.Now()
	for i := range items {
		items[i].OrderID = order.ID
	}
	order.Items = items
	f.orders = append(f.orders, *order)
	f.items = append(f.items, items)
	return nil
}

func (f *fakeOrderRepo) FindByID(id uint) (*domain.Order, error) {
	for i := range f.orders {
		if f.orders[i].ID == id {
			return &f.orders[i], nil
		}
	}
	return nil, errors.New("not found")
}

func (f *fakeOrderRepo) FindAll(filter domain.OrderFilter) ([]domain.Order, error) {
	return f.orders, nil
}

func (f *fakeOrderRepo) FindItemsByOrderID(orderID uint) ([]domain.OrderItem, error) {
	var items []domain.OrderItem
	for _, set := range f.items {
		for _, item := range set {
			if item.OrderID == orderID {
				items = append(items, item)
			}
		}
	}
	return items, nil
}

func (f *fakeOrderRepo) FindItemsByOrderIDs(orderIDs []uint) ([]domain.OrderItem, error) {
	var items []domain.OrderItem
	for _, id := range orderIDs {
		found, _ := f.FindItemsByOrderID(id)
		items = append(items, found...)
	}
	return items, nil
}

func (f *fakeOrderRepo) FindByCustomerID(customerID uint) ([]domain.Order, error) {
	var orders []domain.Order
	for _, o := range f.orders {
		if o.CustomerID != nil && *o.CustomerID == customerID {
			orders = append(orders, o)
		}
	}
	return orders, nil
}

func (f *fakeOrderRepo) FindCompletedBetween(start, end time.Time) ([]domain.Order, error) {
	return f.orders, nil
}

func (f *fakeOrderRepo) CountToday() (int64, error) {
	return int64(len(f.orders)), nil
}

type fakeProductRepo struct {
	products map[uint]catalogdomain.Product
}

func (f *fakeProductRepo) Create(p *catalogdomain.Product) error { return nil }

func (f *fakeProductRepo) FindByID(id uint) (*catalogdomain.Product, error) {
	p, ok := f.products[id]
	if !ok {
		return nil, errors.New("not found")
	}
	return &p, nil
}

func (f *fakeProductRepo) FindAll(filter catalogdomain.ProductFilter) ([]catalogdomain.Product, error) {
	var products []catalogdomain.Product
	for _, p := range f.products {
		products = append(products, p)
	}
	return products, nil
}

func (f *fakeProductRepo) Update(p *catalogdomain.Product) error { return nil }
func (f *fakeProductRepo) Delete(id uint) error                  { return nil }
func (f *fakeProductRepo) Count() (int64, error)                 { return int64(len(f.products)), nil }

type fakeCustomerRepo struct {
	customers map[uint]customerdomain.Customer
}

func (f *fakeCustomerRepo) Create(c *customerdomain.Customer) error { return nil }

func (f *fakeCustomerRepo) FindByID(id uint) (*customerdomain.Customer, error) {
	c, ok := f.customers[id]
	if !ok {
		return nil, errors.New("not found")
	}
	return &c, nil
}

func (f *fakeCustomerRepo) FindByPhone(phone string) (*customerdomain.Customer, error) {
	return nil, errors.New("not found")
}

func (f *fakeCustomerRepo) FindAll() ([]customerdomain.Customer, error) { return nil, nil }
func (f *fakeCustomerRepo) Update(c *customerdomain.Customer) error    { return nil }

type capturingPublisher struct {
	published []*domain.Order
}

func (p *capturingPublisher) OrderCompleted(order *domain.Order) {
	p.published = append(p.published, order)
}

func newTestHandler() (*CreateOrderHandler, *fakeOrderRepo, *capturingPublisher) {
	orders := &fakeOrderRepo{}
	products := &fakeProductRepo{products: map[uint]catalogdomain.Product{
		1: {ID: 1, Name: "Steamed Chicken Chest", Price: 100},
		2: {ID: 2, Name: "Banana Shake", Price: 50},
	}}
	customers := &fakeCustomerRepo{customers: map[uint]customerdomain.Customer{
		7: {ID: 7, PhoneNumber: "9876543210", Name: "Ravi", AdvanceBalance: 50},
	}}
	publisher := &capturingPublisher{}
	return NewCreateOrderHandler(orders, products, customers, publisher), orders, publisher
}

func TestCreateOrderTotals(t *testing.T) {
	handler, repo, publisher := newTestHandler()

	order, err := handler.Handle(CreateOrderCommand{
		OrderType:   domain.TypeDineIn,
		PaymentMode: domain.PaymentCash,
		Items: []OrderItemInput{
			{ProductID: 1, Quantity: 2},
			{ProductID: 2, Quantity: 1},
		},
		CreatedBy: 1,
	})
	if err != nil {
		t.Fatalf("Handle() error = %v", err)
	}

	if order.TotalAmount != 250 {
		t.Errorf("TotalAmount = %v, want 250", order.TotalAmount)
	}
	if len(order.Items) != 2 {
		t.Fatalf("len(Items) = %d, want 2", len(order.Items))
	}
	if order.Items[0].ProductName != "Steamed Chicken Chest" || order.Items[0].PriceAtTime != 100 {
		t.Errorf("item snapshot = %+v, want name and price copied from product", order.Items[0])
	}
	if order.BillNumber == "" {
		t.Error("BillNumber not assigned")
	}
	if order.Status != domain.StatusCompleted {
		t.Errorf("Status = %q, want %q", order.Status, domain.StatusCompleted)
	}
	if len(repo.orders) != 1 {
		t.Errorf("orders persisted = %d, want 1", len(repo.orders))
	}
	if len(publisher.published) != 1 {
		t.Errorf("events published = %d, want 1", len(publisher.published))
	}
}

func TestCreateOrderAdvanceDeduction(t *testing.T) {
	handler, _, _ := newTestHandler()
	customerID := uint(7)

	order, err := handler.Handle(CreateOrderCommand{
		OrderType:   domain.TypeTakeaway,
		PaymentMode: domain.PaymentUPI,
		Items:       []OrderItemInput{{ProductID: 1, Quantity: 1}},
		CustomerID:  &customerID,
		AdvanceUsed: 30,
		CreatedBy:   1,
	})
	if err != nil {
		t.Fatalf("Handle() error = %v", err)
	}

	if order.TotalAmount != 70 {
		t.Errorf("TotalAmount = %v, want 70", order.TotalAmount)
	}
	if order.Subtotal() != 100 {
		t.Errorf("Subtotal() = %v, want 100", order.Subtotal())
	}
}

func TestCreateOrderInsufficientAdvance(t *testing.T) {
	handler, repo, publisher := newTestHandler()
	customerID := uint(7) // balance 50

	_, err := handler.Handle(CreateOrderCommand{
		OrderType:   domain.TypeDineIn,
		PaymentMode: domain.PaymentCash,
		Items:       []OrderItemInput{{ProductID: 1, Quantity: 2}},
		CustomerID:  &customerID,
		AdvanceUsed: 100,
		CreatedBy:   1,
	})
	if !errors.Is(err, domain.ErrInsufficientAdvance) {
		t.Fatalf("Handle() error = %v, want ErrInsufficientAdvance", err)
	}
	if len(repo.orders) != 0 {
		t.Errorf("orders persisted = %d, want 0", len(repo.orders))
	}
	if len(publisher.published) != 0 {
		t.Errorf("events published = %d, want 0", len(publisher.published))
	}
}

func TestCreateOrderAdvanceExceedsSubtotal(t *testing.T) {
	handler, _, _ := newTestHandler()
	customerID := uint(7)

	_, err := handler.Handle(CreateOrderCommand{
		OrderType:   domain.TypeDineIn,
		PaymentMode: domain.PaymentCash,
		Items:       []OrderItemInput{{ProductID: 2, Quantity: 1}}, // subtotal 50
		CustomerID:  &customerID,
		AdvanceUsed: 60,
		CreatedBy:   1,
	})
	if err == nil {
		t.Fatal("Handle() expected error when advance exceeds subtotal")
	}
}

func TestCreateOrderValidation(t *testing.T) {
	handler, _, _ := newTestHandler()

	tests := []struct {
		name string
		cmd  CreateOrderCommand
	}{
		{
			name: "invalid order type",
			cmd: CreateOrderCommand{
				OrderType:   "delivery",
				PaymentMode: domain.PaymentCash,
				Items:       []OrderItemInput{{ProductID: 1, Quantity: 1}},
				CreatedBy:   1,
			},
		},
		{
			name: "invalid payment mode",
			cmd: CreateOrderCommand{
				OrderType:   domain.TypeDineIn,
				PaymentMode: "card",
				Items:       []OrderItemInput{{ProductID: 1, Quantity: 1}},
				CreatedBy:   1,
			},
		},
		{
			name: "empty cart",
			cmd: CreateOrderCommand{
				OrderType:   domain.TypeDineIn,
				PaymentMode: domain.PaymentCash,
				CreatedBy:   1,
			},
		},
		{
			name: "zero quantity",
			cmd: CreateOrderCommand{
				OrderType:   domain.TypeDineIn,
				PaymentMode: domain.PaymentCash,
				Items:       []OrderItemInput{{ProductID: 1, Quantity: 0}},
				CreatedBy:   1,
			},
		},
		{
			name: "unknown product",
			cmd: CreateOrderCommand{
				OrderType:   domain.TypeDineIn,
				PaymentMode: domain.PaymentCash,
				Items:       []OrderItemInput{{ProductID: 99, Quantity: 1}},
				CreatedBy:   1,
			},
		},
		{
			name: "missing created_by",
			cmd: CreateOrderCommand{
				OrderType:   domain.TypeDineIn,
				PaymentMode: domain.PaymentCash,
				Items:       []OrderItemInput{{ProductID: 1, Quantity: 1}},
			},
		},
		{
			name: "advance without customer",
			cmd: CreateOrderCommand{
				OrderType:   domain.TypeDineIn,
				PaymentMode: domain.PaymentCash,
				Items:       []OrderItemInput{{ProductID: 1, Quantity: 1}},
				AdvanceUsed: 10,
				CreatedBy:   1,
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := handler.Handle(tt.cmd); err == nil {
				t.Error("Handle() expected error, got nil")
			}
		})
	}
}
