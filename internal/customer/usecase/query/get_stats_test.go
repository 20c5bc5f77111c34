package query

import (
	"errors"
	"testing"
	"time"

	"github.com/rasoilabs/pos-backend/internal/customer/domain"
	orderdomain "github.com/rasoilabs/pos-backend/internal/order/domain"
)

type fakeCustomerRepo struct {
	customers map[uint]domain.Customer
}

func (f *fakeCustomerRepo) Create(c *domain.Customer) error { return nil }

func (f *fakeCustomerRepo) FindByID(id uint) (*domain.Customer, error) {
	c, ok := f.customers[id]
	if !ok {
		return nil, errors.New("not found")
	}
	return &c, nil
}

func (f *fakeCustomerRepo) FindByPhone(phone string) (*domain.Customer, error) {
	for _, c := range f.customers {
		if c.PhoneNumber == phone {
			customer := c
			return &customer, nil
		}
	}
	return nil, errors.New("not found")
}

func (f *fakeCustomerRepo) FindAll() ([]domain.Customer, error) { return nil, nil }
func (f *fakeCustomerRepo) Update(c *domain.Customer) error     { return nil }

type fakeOrderRepo struct {
	orders []orderdomain.Order
	items  []orderdomain.OrderItem
}

func (f *fakeOrderRepo) CreateCompleted(order *orderdomain.Order, items []orderdomain.OrderItem) error {
	return nil
}
func (f *fakeOrderRepo) FindByID(id uint) (*orderdomain.Order, error) { return nil, nil }
func (f *fakeOrderRepo) FindAll(filter orderdomain.OrderFilter) ([]orderdomain.Order, error) {
	return f.orders, nil
}
func (f *fakeOrderRepo) FindItemsByOrderID(orderID uint) ([]orderdomain.OrderItem, error) {
	return nil, nil
}
func (f *fakeOrderRepo) FindItemsByOrderIDs(orderIDs []uint) ([]orderdomain.OrderItem, error) {
	return f.items, nil
}
func (f *fakeOrderRepo) FindByCustomerID(customerID uint) ([]orderdomain.Order, error) {
	var out []orderdomain.Order
	for _, o := range f.orders {
		if o.CustomerID != nil && *o.CustomerID == customerID {
			out = append(out, o)
		}
	}
	return out, nil
}
func (f *fakeOrderRepo) FindCompletedBetween(start, end time.Time) ([]orderdomain.Order, error) {
	return nil, nil
}
func (f *fakeOrderRepo) CountToday() (int64, error) { return 0, nil }

func TestCustomerStatsTotalSpentIncludesAdvance(t *testing.T) {
	customerID := uint(7)
	customers := &fakeCustomerRepo{customers: map[uint]domain.Customer{
		7: {ID: 7, PhoneNumber: "9876543210", Name: "Ravi"},
	}}
	orders := &fakeOrderRepo{
		orders: []orderdomain.Order{
			{ID: 1, TotalAmount: 150, AdvanceUsed: 50, CustomerID: &customerID},
			{ID: 2, TotalAmount: 200, CustomerID: &customerID},
		},
		items: []orderdomain.OrderItem{
			{OrderID: 1, ProductName: "Chicken Wrap", Quantity: 1, PriceAtTime: 150},
			{OrderID: 2, ProductName: "Chicken Salad", Quantity: 2, PriceAtTime: 190},
		},
	}
	handler := NewGetStatsHandler(customers, orders)

	stats, err := handler.Handle(GetStatsQuery{CustomerID: 7})
	if err != nil {
		t.Fatalf("Handle() error = %v", err)
	}

	if stats.TotalSpent != 400 {
		t.Errorf("TotalSpent = %v, want 400 (advance counted)", stats.TotalSpent)
	}
	if stats.TotalOrders != 2 {
		t.Errorf("TotalOrders = %d, want 2", stats.TotalOrders)
	}
	if len(stats.MostOrderedItems) != 2 || stats.MostOrderedItems[0].Name != "Chicken Salad" {
		t.Errorf("MostOrderedItems = %+v, want Chicken Salad first", stats.MostOrderedItems)
	}
}

func TestCustomerStatsTopFiveOnly(t *testing.T) {
	customerID := uint(7)
	customers := &fakeCustomerRepo{customers: map[uint]domain.Customer{7: {ID: 7}}}

	items := []orderdomain.OrderItem{}
	names := []string{"A", "B", "C", "D", "E", "F", "G"}
	for i, name := range names {
		items = append(items, orderdomain.OrderItem{
			OrderID: 1, ProductName: name, Quantity: len(names) - i, PriceAtTime: 10,
		})
	}
	orders := &fakeOrderRepo{
		orders: []orderdomain.Order{{ID: 1, TotalAmount: 100, CustomerID: &customerID}},
		items:  items,
	}
	handler := NewGetStatsHandler(customers, orders)

	stats, err := handler.Handle(GetStatsQuery{CustomerID: 7})
	if err != nil {
		t.Fatalf("Handle() error = %v", err)
	}
	if len(stats.MostOrderedItems) != 5 {
		t.Errorf("len(MostOrderedItems) = %d, want 5", len(stats.MostOrderedItems))
	}
	if stats.MostOrderedItems[0].Name != "A" {
		t.Errorf("top item = %q, want A", stats.MostOrderedItems[0].Name)
	}
}

func TestCustomerStatsUnknownCustomer(t *testing.T) {
	handler := NewGetStatsHandler(&fakeCustomerRepo{customers: map[uint]domain.Customer{}}, &fakeOrderRepo{})
	if _, err := handler.Handle(GetStatsQuery{CustomerID: 42}); err == nil {
		t.Error("expected error for unknown customer")
	}
}

func TestCustomerStatsNoOrders(t *testing.T) {
	handler := NewGetStatsHandler(
		&fakeCustomerRepo{customers: map[uint]domain.Customer{7: {ID: 7}}},
		&fakeOrderRepo{},
	)

	stats, err := handler.Handle(GetStatsQuery{CustomerID: 7})
	if err != nil {
		t.Fatalf("Handle() error = %v", err)
	}
	if stats.TotalSpent != 0 || stats.TotalOrders != 0 {
		t.Errorf("stats = %+v, want zeros", stats)
	}
	if stats.MostOrderedItems == nil {
		t.Error("MostOrderedItems should be an empty slice, not nil")
	}
}
