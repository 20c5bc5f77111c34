package query

import (
	"fmt"

	expensedomain "github.com/rasoilabs/pos-backend/internal/expense/domain"
	orderdomain "github.com/rasoilabs/pos-backend/internal/order/domain"
	"github.com/rasoilabs/pos-backend/pkg/apperror"
	"github.com/rasoilabs/pos-backend/pkg/timeutil"
)

// GetProfitLossQuery selects the statement window, either a period anchored
// at a date or an explicit start/end range
type GetProfitLossQuery struct {
	Period    string
	Date      string
	StartDate string
	EndDate   string
}

// ProfitLossReport is the revenue-versus-expenses statement
type ProfitLossReport struct {
	StartDate        string  `json:"start_date"`
	EndDate          string  `json:"end_date"`
	Revenue          float64 `json:"revenue"`
	Expenses         float64 `json:"expenses"`
	Profit           float64 `json:"profit"`
	ProfitPercentage float64 `json:"profit_percentage"`
	OrderCount       int     `json:"order_count"`
}

// GetProfitLossHandler handles the profit and loss query
type GetProfitLossHandler struct {
	orders   orderdomain.OrderRepository
	expenses expensedomain.ExpenseRepository
}

// NewGetProfitLossHandler creates a new profit and loss handler
func NewGetProfitLossHandler(orders orderdomain.OrderRepository, expenses expensedomain.ExpenseRepository) *GetProfitLossHandler {
	return &GetProfitLossHandler{orders: orders, expenses: expenses}
}

// Handle computes the statement. Revenue counts the full bill value of
// completed orders including the advance-paid portion; expenses match on
// their business date.
func (h *GetProfitLossHandler) Handle(query GetProfitLossQuery) (*ProfitLossReport, error) {
	var bounds timeutil.Bounds
	var err error

	if query.StartDate != "" || query.EndDate != "" {
		if query.StartDate == "" || query.EndDate == "" {
			return nil, apperror.Invalid("both startDate and endDate are required for a custom range")
		}
		var start, end timeutil.Bounds
		if start, err = timeutil.DayBounds(query.StartDate); err != nil {
			return nil, apperror.Invalid("invalid start date: %w", err)
		}
		if end, err = timeutil.DayBounds(query.EndDate); err != nil {
			return nil, apperror.Invalid("invalid end date: %w", err)
		}
		if end.End.Before(start.Start) {
			return nil, apperror.Invalid("end date precedes start date")
		}
		bounds = timeutil.Bounds{Start: start.Start, End: end.End}
	} else {
		period := query.Period
		if period == "" {
			period = PeriodDaily
		}
		date := query.Date
		if date == "" {
			date = timeutil.Today()
		}
		if bounds, err = periodBounds(period, date); err != nil {
			return nil, err
		}
	}

	orders, err := h.orders.FindCompletedBetween(bounds.Start, bounds.End)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch orders: %w", err)
	}

	var revenue float64
	for _, o := range orders {
		revenue += o.Subtotal()
	}

	startDate := timeutil.FormatDate(bounds.Start)
	endDate := timeutil.FormatDate(bounds.End)

	expenses, err := h.expenses.SumBetween(startDate, endDate)
	if err != nil {
		return nil, fmt.Errorf("failed to sum expenses: %w", err)
	}

	profit := revenue - expenses
	var profitPct float64
	if revenue > 0 {
		profitPct = profit / revenue * 100
	}

	return &ProfitLossReport{
		StartDate:        startDate,
		EndDate:          endDate,
		Revenue:          revenue,
		Expenses:         expenses,
		Profit:           profit,
		ProfitPercentage: profitPct,
		OrderCount:       len(orders),
	}, nil
}
