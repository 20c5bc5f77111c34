package command

import (
	"fmt"

	"github.com/rasoilabs/pos-backend/internal/expense/domain"
	"github.com/rasoilabs/pos-backend/pkg/apperror"
	"github.com/rasoilabs/pos-backend/pkg/timeutil"
)

// CreateExpenseCommand records an operating cost
type CreateExpenseCommand struct {
	Description string
	Amount      float64
	Category    string
	ExpenseDate string
	Notes       string
	CreatedBy   uint
}

// CreateExpenseHandler handles the create expense command
type CreateExpenseHandler struct {
	repo domain.ExpenseRepository
}

// NewCreateExpenseHandler creates a new expense handler
func NewCreateExpenseHandler(repo domain.ExpenseRepository) *CreateExpenseHandler {
	return &CreateExpenseHandler{repo: repo}
}

// Handle executes the create command. ExpenseDate defaults to today when
// omitted.
func (h *CreateExpenseHandler) Handle(cmd CreateExpenseCommand) (*domain.Expense, error) {
	if cmd.Description == "" {
		return nil, apperror.Invalid("description is required")
	}
	if cmd.Amount <= 0 {
		return nil, apperror.Invalid("amount must be positive")
	}
	if cmd.CreatedBy == 0 {
		return nil, apperror.Invalid("created_by is required")
	}

	expenseDate := cmd.ExpenseDate
	if expenseDate == "" {
		expenseDate = timeutil.Today()
	} else if _, err := timeutil.ParseDate(expenseDate); err != nil {
		return nil, apperror.Invalid("invalid expense date: %w", err)
	}

	expense := &domain.Expense{
		Description: cmd.Description,
		Amount:      cmd.Amount,
		Category:    cmd.Category,
		ExpenseDate: expenseDate,
		Notes:       cmd.Notes,
		CreatedBy:   cmd.CreatedBy,
	}

	if err := h.repo.Create(expense); err != nil {
		return nil, fmt.Errorf("failed to create expense: %w", err)
	}

	return expense, nil
}
