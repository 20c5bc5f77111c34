package query

import (
	"testing"

	expensedomain "github.com/rasoilabs/pos-backend/internal/expense/domain"
	orderdomain "github.com/rasoilabs/pos-backend/internal/order/domain"
)

type fakeExpenseRepo struct {
	expenses []expensedomain.Expense
}

func (f *fakeExpenseRepo) Create(e *expensedomain.Expense) error { return nil }
func (f *fakeExpenseRepo) FindByID(id uint) (*expensedomain.Expense, error) {
	return nil, nil
}
func (f *fakeExpenseRepo) FindAll(filter expensedomain.ExpenseFilter) ([]expensedomain.Expense, error) {
	return f.expenses, nil
}
func (f *fakeExpenseRepo) Update(e *expensedomain.Expense) error { return nil }
func (f *fakeExpenseRepo) Delete(id uint) error                  { return nil }

func (f *fakeExpenseRepo) SumBetween(from, to string) (float64, error) {
	var total float64
	for _, e := range f.expenses {
		if e.ExpenseDate >= from && e.ExpenseDate <= to {
			total += e.Amount
		}
	}
	return total, nil
}

func TestProfitLossDaily(t *testing.T) {
	orders := &fakeOrderRepo{
		orders: []orderdomain.Order{
			{ID: 1, TotalAmount: 700, AdvanceUsed: 100, Status: orderdomain.StatusCompleted, CreatedAt: at("2025-06-10", 12)},
			{ID: 2, TotalAmount: 200, Status: orderdomain.StatusCompleted, CreatedAt: at("2025-06-10", 18)},
		},
	}
	expenses := &fakeExpenseRepo{
		expenses: []expensedomain.Expense{
			{Amount: 250, ExpenseDate: "2025-06-10"},
			{Amount: 999, ExpenseDate: "2025-06-11"}, // outside window
		},
	}
	handler := NewGetProfitLossHandler(orders, expenses)

	report, err := handler.Handle(GetProfitLossQuery{Period: PeriodDaily, Date: "2025-06-10"})
	if err != nil {
		t.Fatalf("Handle() error = %v", err)
	}

	// revenue counts the advance-paid portion of the bill
	if report.Revenue != 1000 {
		t.Errorf("Revenue = %v, want 1000", report.Revenue)
	}
	if report.Expenses != 250 {
		t.Errorf("Expenses = %v, want 250", report.Expenses)
	}
	if report.Profit != 750 {
		t.Errorf("Profit = %v, want 750", report.Profit)
	}
	if report.ProfitPercentage != 75 {
		t.Errorf("ProfitPercentage = %v, want 75", report.ProfitPercentage)
	}
	if report.OrderCount != 2 {
		t.Errorf("OrderCount = %d, want 2", report.OrderCount)
	}
}

func TestProfitLossCustomRange(t *testing.T) {
	orders := &fakeOrderRepo{
		orders: []orderdomain.Order{
			{ID: 1, TotalAmount: 100, Status: orderdomain.StatusCompleted, CreatedAt: at("2025-06-10", 12)},
			{ID: 2, TotalAmount: 300, Status: orderdomain.StatusCompleted, CreatedAt: at("2025-06-12", 12)},
		},
	}
	handler := NewGetProfitLossHandler(orders, &fakeExpenseRepo{})

	report, err := handler.Handle(GetProfitLossQuery{StartDate: "2025-06-10", EndDate: "2025-06-11"})
	if err != nil {
		t.Fatalf("Handle() error = %v", err)
	}
	if report.Revenue != 100 {
		t.Errorf("Revenue = %v, want 100 (order outside range excluded)", report.Revenue)
	}
}

func TestProfitLossZeroRevenue(t *testing.T) {
	handler := NewGetProfitLossHandler(&fakeOrderRepo{}, &fakeExpenseRepo{
		expenses: []expensedomain.Expense{{Amount: 50, ExpenseDate: "2025-06-10"}},
	})

	report, err := handler.Handle(GetProfitLossQuery{Period: PeriodDaily, Date: "2025-06-10"})
	if err != nil {
		t.Fatalf("Handle() error = %v", err)
	}
	if report.Profit != -50 {
		t.Errorf("Profit = %v, want -50", report.Profit)
	}
	if report.ProfitPercentage != 0 {
		t.Errorf("ProfitPercentage = %v, want 0 when revenue is zero", report.ProfitPercentage)
	}
}

func TestProfitLossRangeValidation(t *testing.T) {
	handler := NewGetProfitLossHandler(&fakeOrderRepo{}, &fakeExpenseRepo{})

	if _, err := handler.Handle(GetProfitLossQuery{StartDate: "2025-06-10"}); err == nil {
		t.Error("expected error for missing endDate")
	}
	if _, err := handler.Handle(GetProfitLossQuery{StartDate: "2025-06-12", EndDate: "2025-06-10"}); err == nil {
		t.Error("expected error for inverted range")
	}
}
