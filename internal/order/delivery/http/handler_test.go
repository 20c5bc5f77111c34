package http

import (
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gorilla/mux"

	catalogdomain "github.com/rasoilabs/pos-backend/internal/catalog/domain"
	customerdomain "github.com/rasoilabs/pos-backend/internal/customer/domain"
	"github.com/rasoilabs/pos-backend/internal/order/domain"
)

type fakeOrderRepo struct {
	createErr error
	orders    []domain.Order
}

func (f *fakeOrderRepo) CreateCompleted(order *domain.Order, items []domain.OrderItem) error {
	if f.createErr != nil {
		return f.createErr
	}
	order.ID = uint(len(f.orders) + 1)
	order.BillNumber = fmt.Sprintf("20250610-%04d", order.ID)
	f.orders = append(f.orders, *order)
	return nil
}

func (f *fakeOrderRepo) FindByID(id uint) (*domain.Order, error) {
	return nil, errors.New("not found")
}

func (f *fakeOrderRepo) FindAll(filter domain.OrderFilter) ([]domain.Order, error) {
	return f.orders, nil
}

func (f *fakeOrderRepo) FindItemsByOrderID(orderID uint) ([]domain.OrderItem, error) {
	return nil, nil
}

func (f *fakeOrderRepo) FindItemsByOrderIDs(orderIDs []uint) ([]domain.OrderItem, error) {
	return nil, nil
}

func (f *fakeOrderRepo) FindByCustomerID(customerID uint) ([]domain.Order, error) {
	return nil, nil
}

func (f *fakeOrderRepo) FindCompletedBetween(start, end time.Time) ([]domain.Order, error) {
	return nil, nil
}

func (f *fakeOrderRepo) CountToday() (int64, error) { return int64(len(f.orders)), nil }

type fakeProductRepo struct{}

func (f *fakeProductRepo) Create(p *catalogdomain.Product) error { return nil }
func (f *fakeProductRepo) FindByID(id uint) (*catalogdomain.Product, error) {
	return &catalogdomain.Product{ID: id, Name: "Chicken Wrap", Price: 120}, nil
}
func (f *fakeProductRepo) FindAll(filter catalogdomain.ProductFilter) ([]catalogdomain.Product, error) {
	return nil, nil
}
func (f *fakeProductRepo) Update(p *catalogdomain.Product) error { return nil }
func (f *fakeProductRepo) Delete(id uint) error                  { return nil }
func (f *fakeProductRepo) Count() (int64, error)                 { return 0, nil }

type fakeCustomerRepo struct{}

func (f *fakeCustomerRepo) Create(c *customerdomain.Customer) error { return nil }
func (f *fakeCustomerRepo) FindByID(id uint) (*customerdomain.Customer, error) {
	return &customerdomain.Customer{ID: id, PhoneNumber: "9876543210", Name: "Ravi", AdvanceBalance: 500}, nil
}
func (f *fakeCustomerRepo) FindByPhone(phone string) (*customerdomain.Customer, error) {
	return nil, errors.New("not found")
}
func (f *fakeCustomerRepo) FindAll() ([]customerdomain.Customer, error) { return nil, nil }
func (f *fakeCustomerRepo) Update(c *customerdomain.Customer) error     { return nil }

func newTestRouter(orders domain.OrderRepository) *mux.Router {
	handler := NewOrderHandler(orders, &fakeProductRepo{}, &fakeCustomerRepo{}, nil, nil)
	router := mux.NewRouter()
	handler.RegisterRoutes(router)
	return router
}

func TestCreateOrderEndpoint(t *testing.T) {
	router := newTestRouter(&fakeOrderRepo{})

	body := `{"order_type":"dine-in","payment_mode":"cash","items":[{"product_id":1,"quantity":2}],"created_by":1}`
	req := httptest.NewRequest(http.MethodPost, "/api/orders", strings.NewReader(body))
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	if rec.Code != http.StatusCreated {
		t.Fatalf("status = %d, want 201: %s", rec.Code, rec.Body.String())
	}
	if !strings.Contains(rec.Body.String(), "20250610-0001") {
		t.Errorf("body missing bill number: %s", rec.Body.String())
	}
}

func TestCreateOrderValidationReturnsBadRequest(t *testing.T) {
	router := newTestRouter(&fakeOrderRepo{})

	body := `{"order_type":"delivery","payment_mode":"cash","items":[{"product_id":1,"quantity":1}],"created_by":1}`
	req := httptest.NewRequest(http.MethodPost, "/api/orders", strings.NewReader(body))
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	if rec.Code != http.StatusBadRequest {
		t.Fatalf("status = %d, want 400", rec.Code)
	}
	if !strings.Contains(rec.Body.String(), "invalid order type") {
		t.Errorf("body = %s, want validation message", rec.Body.String())
	}
}

// A storage failure must come back as a 500 with a generic message; the
// underlying error stays in the server log.
func TestCreateOrderStorageFailureReturnsInternalError(t *testing.T) {
	repo := &fakeOrderRepo{
		createErr: fmt.Errorf("failed to create order: %w", errors.New(`pq: connection refused at 10.0.0.5:5432`)),
	}
	router := newTestRouter(repo)

	body := `{"order_type":"takeaway","payment_mode":"upi","items":[{"product_id":1,"quantity":1}],"created_by":1}`
	req := httptest.NewRequest(http.MethodPost, "/api/orders", strings.NewReader(body))
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	if rec.Code != http.StatusInternalServerError {
		t.Fatalf("status = %d, want 500: %s", rec.Code, rec.Body.String())
	}
	for _, leaked := range []string{"pq:", "connection refused", "10.0.0.5"} {
		if strings.Contains(rec.Body.String(), leaked) {
			t.Errorf("response leaks %q: %s", leaked, rec.Body.String())
		}
	}
	if !strings.Contains(rec.Body.String(), "Failed to create order") {
		t.Errorf("body = %s, want generic message", rec.Body.String())
	}
}

func TestCreateOrderInsufficientAdvanceReturnsBadRequest(t *testing.T) {
	router := newTestRouter(&fakeOrderRepo{})

	// fake customer holds 500 in advance; order total is 120
	body := `{"order_type":"dine-in","payment_mode":"cash","items":[{"product_id":1,"quantity":1}],"customer_id":3,"advance_used":600,"created_by":1}`
	req := httptest.NewRequest(http.MethodPost, "/api/orders", strings.NewReader(body))
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	if rec.Code != http.StatusBadRequest {
		t.Fatalf("status = %d, want 400: %s", rec.Code, rec.Body.String())
	}
}
