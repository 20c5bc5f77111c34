package query

import (
	"fmt"

	orderdomain "github.com/rasoilabs/pos-backend/internal/order/domain"
	"github.com/rasoilabs/pos-backend/pkg/apperror"
	"github.com/rasoilabs/pos-backend/pkg/timeutil"
)

// GetDailySalesQuery selects the business day to summarize
type GetDailySalesQuery struct {
	Date string // defaults to today
}

// DailySalesSummary is the end-of-day till summary with the payment
// mode split
type DailySalesSummary struct {
	Date        string  `json:"date"`
	TotalSales  float64 `json:"total_sales"`
	CashSales   float64 `json:"cash_sales"`
	UPISales    float64 `json:"upi_sales"`
	TotalOrders int     `json:"total_orders"`
	CashOrders  int     `json:"cash_orders"`
	UPIOrders   int     `json:"upi_orders"`
}

// GetDailySalesHandler handles the day summary query
type GetDailySalesHandler struct {
	orders orderdomain.OrderRepository
}

// NewGetDailySalesHandler creates a new daily sales handler
func NewGetDailySalesHandler(orders orderdomain.OrderRepository) *GetDailySalesHandler {
	return &GetDailySalesHandler{orders: orders}
}

// Handle totals one day's completed orders split by payment mode
func (h *GetDailySalesHandler) Handle(query GetDailySalesQuery) (*DailySalesSummary, error) {
	date := query.Date
	if date == "" {
		date = timeutil.Today()
	}

	bounds, err := timeutil.DayBounds(date)
	if err != nil {
		return nil, apperror.Invalid("invalid date: %w", err)
	}

	orders, err := h.orders.FindCompletedBetween(bounds.Start, bounds.End)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch orders: %w", err)
	}

	summary := &DailySalesSummary{Date: date}
	for _, o := range orders {
		summary.TotalSales += o.TotalAmount
		summary.TotalOrders++
		switch o.PaymentMode {
		case orderdomain.PaymentCash:
			summary.CashSales += o.TotalAmount
			summary.CashOrders++
		case orderdomain.PaymentUPI:
			summary.UPISales += o.TotalAmount
			summary.UPIOrders++
		}
	}

	return summary, nil
}
