package query

import (
	"errors"
	"testing"

	catalogdomain "github.com/rasoilabs/pos-backend/internal/catalog/domain"
	"github.com/rasoilabs/pos-backend/internal/inventory/domain"
)

type fakeProductRepo struct {
	products []catalogdomain.Product
}

func (f *fakeProductRepo) Create(p *catalogdomain.Product) error { return nil }
func (f *fakeProductRepo) FindByID(id uint) (*catalogdomain.Product, error) {
	return nil, errors.New("not found")
}
func (f *fakeProductRepo) FindAll(filter catalogdomain.ProductFilter) ([]catalogdomain.Product, error) {
	return f.products, nil
}
func (f *fakeProductRepo) Update(p *catalogdomain.Product) error { return nil }
func (f *fakeProductRepo) Delete(id uint) error                  { return nil }
func (f *fakeProductRepo) Count() (int64, error)                 { return int64(len(f.products)), nil }

type fakeInventoryRepo struct {
	totals        map[uint]int
	history       []domain.InventoryHistory
	notifications []domain.InventoryNotification
}

func (f *fakeInventoryRepo) ApplyStockChange(productID uint, changeType string, quantityChange int, referenceOrderID *uint, notes string, createdBy *uint) (*domain.StockChangeResult, error) {
	return nil, errors.New("not implemented")
}

func (f *fakeInventoryRepo) RecordChange(productID uint, changeType string, quantityChange, previousStock, newStock int, referenceOrderID *uint, notes string, createdBy *uint) error {
	return nil
}

func (f *fakeInventoryRepo) FindHistory(productID uint, limit int) ([]domain.InventoryHistory, error) {
	if limit < len(f.history) {
		return f.history[:limit], nil
	}
	return f.history, nil
}

func (f *fakeInventoryRepo) FindNotifications(unacknowledgedOnly bool) ([]domain.InventoryNotification, error) {
	if !unacknowledgedOnly {
		return f.notifications, nil
	}
	var out []domain.InventoryNotification
	for _, n := range f.notifications {
		if !n.Acknowledged {
			out = append(out, n)
		}
	}
	return out, nil
}

func (f *fakeInventoryRepo) Acknowledge(notificationID uint, acknowledgedBy *uint) (*domain.InventoryNotification, error) {
	return nil, errors.New("not found")
}

func (f *fakeInventoryRepo) TotalSoldByProduct() (map[uint]int, error) {
	return f.totals, nil
}

func testProducts() []catalogdomain.Product {
	return []catalogdomain.Product{
		{ID: 1, Name: "Chicken Wrap", StockQuantity: 40, LowStockThreshold: 10},
		{ID: 2, Name: "Egg Bhurji", StockQuantity: 10, LowStockThreshold: 10},
		{ID: 3, Name: "Cold Coffee", StockQuantity: 0, LowStockThreshold: 5},
	}
}

func TestStockReportAll(t *testing.T) {
	handler := NewGetReportHandler(
		&fakeProductRepo{products: testProducts()},
		&fakeInventoryRepo{totals: map[uint]int{1: 12, 3: 7}},
	)

	reports, err := handler.Handle(GetReportQuery{})
	if err != nil {
		t.Fatalf("Handle() error = %v", err)
	}
	if len(reports) != 3 {
		t.Fatalf("len(reports) = %d, want 3", len(reports))
	}

	byID := map[uint]domain.StockReport{}
	for _, r := range reports {
		byID[r.ProductID] = r
	}

	if byID[1].Status != catalogdomain.StockStatusIn || byID[1].TotalSold != 12 {
		t.Errorf("product 1 = %+v, want in_stock sold 12", byID[1])
	}
	// stock equal to threshold counts as low
	if byID[2].Status != catalogdomain.StockStatusLow {
		t.Errorf("product 2 status = %s, want low_stock", byID[2].Status)
	}
	if byID[3].Status != catalogdomain.StockStatusOut {
		t.Errorf("product 3 status = %s, want out_of_stock", byID[3].Status)
	}
	// no sales rows yet still reports zero
	if byID[2].TotalSold != 0 {
		t.Errorf("product 2 sold = %d, want 0", byID[2].TotalSold)
	}
}

func TestStockReportLowStockOnly(t *testing.T) {
	handler := NewGetReportHandler(
		&fakeProductRepo{products: testProducts()},
		&fakeInventoryRepo{},
	)

	reports, err := handler.Handle(GetReportQuery{Type: ReportLowStock})
	if err != nil {
		t.Fatalf("Handle() error = %v", err)
	}
	if len(reports) != 2 {
		t.Fatalf("len(reports) = %d, want 2 (low and out)", len(reports))
	}
	for _, r := range reports {
		if r.Status == catalogdomain.StockStatusIn {
			t.Errorf("in-stock product %d leaked into low_stock report", r.ProductID)
		}
	}
}

func TestStockReportInvalidType(t *testing.T) {
	handler := NewGetReportHandler(&fakeProductRepo{}, &fakeInventoryRepo{})
	if _, err := handler.Handle(GetReportQuery{Type: "expired"}); err == nil {
		t.Error("expected error for unknown report type")
	}
}

func TestListHistoryDefaultLimit(t *testing.T) {
	repo := &fakeInventoryRepo{}
	for i := 0; i < 150; i++ {
		repo.history = append(repo.history, domain.InventoryHistory{ID: uint(i + 1)})
	}
	handler := NewListHistoryHandler(repo)

	history, err := handler.Handle(ListHistoryQuery{})
	if err != nil {
		t.Fatalf("Handle() error = %v", err)
	}
	if len(history) != 100 {
		t.Errorf("len(history) = %d, want default limit 100", len(history))
	}
}

func TestListNotificationsUnacknowledged(t *testing.T) {
	repo := &fakeInventoryRepo{notifications: []domain.InventoryNotification{
		{ID: 1, Acknowledged: true},
		{ID: 2},
	}}
	handler := NewListNotificationsHandler(repo)

	all, err := handler.Handle(ListNotificationsQuery{})
	if err != nil {
		t.Fatalf("Handle() error = %v", err)
	}
	if len(all) != 2 {
		t.Errorf("all = %d, want 2", len(all))
	}

	open, err := handler.Handle(ListNotificationsQuery{UnacknowledgedOnly: true})
	if err != nil {
		t.Fatalf("Handle() error = %v", err)
	}
	if len(open) != 1 || open[0].ID != 2 {
		t.Errorf("open = %+v, want only ID 2", open)
	}
}
