package command

import (
	"errors"
	"testing"

	"github.com/rasoilabs/pos-backend/internal/expense/domain"
	"github.com/rasoilabs/pos-backend/pkg/timeutil"
)

type fakeExpenseRepo struct {
	expenses []domain.Expense
}

func (f *fakeExpenseRepo) Create(e *domain.Expense) error {
	e.ID = uint(len(f.expenses) + 1)
	f.expenses = append(f.expenses, *e)
	return nil
}

func (f *fakeExpenseRepo) FindByID(id uint) (*domain.Expense, error) {
	for i := range f.expenses {
		if f.expenses[i].ID == id {
			return &f.expenses[i], nil
		}
	}
	return nil, errors.New("not found")
}

func (f *fakeExpenseRepo) FindAll(filter domain.ExpenseFilter) ([]domain.Expense, error) {
	return f.expenses, nil
}

func (f *fakeExpenseRepo) Update(e *domain.Expense) error {
	for i := range f.expenses {
		if f.expenses[i].ID == e.ID {
			f.expenses[i] = *e
			return nil
		}
	}
	return errors.New("not found")
}

func (f *fakeExpenseRepo) Delete(id uint) error {
	for i := range f.expenses {
		if f.expenses[i].ID == id {
			f.expenses = append(f.expenses[:i], f.expenses[i+1:]...)
			return nil
		}
	}
	return errors.New("not found")
}

func (f *fakeExpenseRepo) SumBetween(from, to string) (float64, error) { return 0, nil }

func TestCreateExpense(t *testing.T) {
	repo := &fakeExpenseRepo{}
	handler := NewCreateExpenseHandler(repo)

	expense, err := handler.Handle(CreateExpenseCommand{
		Description: "Chicken supplier payment",
		Amount:      1500,
		Category:    "ingredients",
		ExpenseDate: "2025-06-10",
		CreatedBy:   1,
	})
	if err != nil {
		t.Fatalf("Handle() error = %v", err)
	}
	if expense.ExpenseDate != "2025-06-10" || expense.Amount != 1500 {
		t.Errorf("expense = %+v", expense)
	}
}

func TestCreateExpenseDefaultsDateToToday(t *testing.T) {
	handler := NewCreateExpenseHandler(&fakeExpenseRepo{})

	expense, err := handler.Handle(CreateExpenseCommand{
		Description: "Gas refill",
		Amount:      900,
		CreatedBy:   1,
	})
	if err != nil {
		t.Fatalf("Handle() error = %v", err)
	}
	if expense.ExpenseDate != timeutil.Today() {
		t.Errorf("ExpenseDate = %q, want today", expense.ExpenseDate)
	}
}

func TestCreateExpenseValidation(t *testing.T) {
	handler := NewCreateExpenseHandler(&fakeExpenseRepo{})

	tests := []struct {
		name string
		cmd  CreateExpenseCommand
	}{
		{"missing description", CreateExpenseCommand{Amount: 100, CreatedBy: 1}},
		{"zero amount", CreateExpenseCommand{Description: "x", CreatedBy: 1}},
		{"negative amount", CreateExpenseCommand{Description: "x", Amount: -5, CreatedBy: 1}},
		{"missing created_by", CreateExpenseCommand{Description: "x", Amount: 100}},
		{"malformed date", CreateExpenseCommand{Description: "x", Amount: 100, ExpenseDate: "10-06-2025", CreatedBy: 1}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := handler.Handle(tt.cmd); err == nil {
				t.Error("expected error")
			}
		})
	}
}

func TestUpdateExpensePartial(t *testing.T) {
	repo := &fakeExpenseRepo{}
	create := NewCreateExpenseHandler(repo)
	update := NewUpdateExpenseHandler(repo)

	expense, err := create.Handle(CreateExpenseCommand{
		Description: "Gas refill",
		Amount:      900,
		ExpenseDate: "2025-06-10",
		CreatedBy:   1,
	})
	if err != nil {
		t.Fatalf("create error = %v", err)
	}

	newAmount := 950.0
	updated, err := update.Handle(UpdateExpenseCommand{ID: expense.ID, Amount: &newAmount})
	if err != nil {
		t.Fatalf("update error = %v", err)
	}
	if updated.Amount != 950 {
		t.Errorf("Amount = %v, want 950", updated.Amount)
	}
	if updated.Description != "Gas refill" || updated.ExpenseDate != "2025-06-10" {
		t.Errorf("untouched fields changed: %+v", updated)
	}
}

func TestDeleteExpense(t *testing.T) {
	repo := &fakeExpenseRepo{}
	create := NewCreateExpenseHandler(repo)
	del := NewDeleteExpenseHandler(repo)

	expense, _ := create.Handle(CreateExpenseCommand{
		Description: "Napkins", Amount: 120, CreatedBy: 1,
	})

	if err := del.Handle(DeleteExpenseCommand{ID: expense.ID}); err != nil {
		t.Fatalf("delete error = %v", err)
	}
	if err := del.Handle(DeleteExpenseCommand{ID: expense.ID}); err == nil {
		t.Error("expected error deleting a missing expense")
	}
}
