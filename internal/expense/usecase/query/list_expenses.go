package query

import (
	"fmt"

	"github.com/rasoilabs/pos-backend/internal/expense/domain"
)

// ListExpensesQuery wraps the expense listing filters
type ListExpensesQuery struct {
	Filter domain.ExpenseFilter
}

// ExpenseList carries the entries plus their combined total
type ExpenseList struct {
	Expenses []domain.Expense `json:"expenses"`
	Total    float64          `json:"total"`
}

// ListExpensesHandler handles the expense listing query
type ListExpensesHandler struct {
	repo domain.ExpenseRepository
}

// NewListExpensesHandler creates a new list handler
func NewListExpensesHandler(repo domain.ExpenseRepository) *ListExpensesHandler {
	return &ListExpensesHandler{repo: repo}
}

// Handle executes the listing query
func (h *ListExpensesHandler) Handle(query ListExpensesQuery) (*ExpenseList, error) {
	expenses, err := h.repo.FindAll(query.Filter)
	if err != nil {
		return nil, fmt.Errorf("failed to list expenses: %w", err)
	}

	var total float64
	for _, e := range expenses {
		total += e.Amount
	}

	return &ExpenseList{Expenses: expenses, Total: total}, nil
}
