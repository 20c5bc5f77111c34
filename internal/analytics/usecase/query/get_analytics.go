package query

import (
	"fmt"
	"sort"

	orderdomain "github.com/rasoilabs/pos-backend/internal/order/domain"
	"github.com/rasoilabs/pos-backend/pkg/apperror"
	"github.com/rasoilabs/pos-backend/pkg/timeutil"
)

// Analytics periods
const (
	PeriodDaily   = "daily"
	PeriodWeekly  = "weekly"
	PeriodMonthly = "monthly"
)

// GetAnalyticsQuery selects the reporting window
type GetAnalyticsQuery struct {
	Period string // daily, weekly or monthly
	Date   string // anchor date, defaults to today
}

// SalesTrend is one day's revenue line. Days with no sales still appear
// with zero values so charts have no gaps.
type SalesTrend struct {
	Date       string  `json:"date"`
	TotalSales float64 `json:"total_sales"`
	OrderCount int     `json:"order_count"`
}

// BestSeller is one product's aggregated sales line
type BestSeller struct {
	ProductName  string  `json:"product_name"`
	TotalSold    int     `json:"total_sold"`
	TotalRevenue float64 `json:"total_revenue"`
}

// PeakHour is one hour-of-day bucket. All 24 buckets are always present.
type PeakHour struct {
	Hour       int     `json:"hour"`
	OrderCount int     `json:"order_count"`
	TotalSales float64 `json:"total_sales"`
}

// AnalyticsReport is the combined dashboard payload
type AnalyticsReport struct {
	Period      string       `json:"period"`
	StartDate   string       `json:"start_date"`
	EndDate     string       `json:"end_date"`
	SalesTrends []SalesTrend `json:"sales_trends"`
	BestSelling []BestSeller `json:"best_selling"`
	PeakHours   []PeakHour   `json:"peak_hours"`
}

// GetAnalyticsHandler handles the dashboard analytics query
type GetAnalyticsHandler struct {
	orders orderdomain.OrderRepository
}

// NewGetAnalyticsHandler creates a new analytics handler
func NewGetAnalyticsHandler(orders orderdomain.OrderRepository) *GetAnalyticsHandler {
	return &GetAnalyticsHandler{orders: orders}
}

// periodBounds resolves the reporting window for a period anchored at date
func periodBounds(period, date string) (timeutil.Bounds, error) {
	var (
		bounds timeutil.Bounds
		err    error
	)
	switch period {
	case PeriodDaily:
		bounds, err = timeutil.DayBounds(date)
	case PeriodWeekly:
		bounds, err = timeutil.WeekBounds(date)
	case PeriodMonthly:
		bounds, err = timeutil.MonthBounds(date)
	default:
		return timeutil.Bounds{}, apperror.Invalid("invalid period %q", period)
	}
	if err != nil {
		return timeutil.Bounds{}, apperror.Invalid("invalid date: %w", err)
	}
	return bounds, nil
}

// Handle aggregates completed orders inside the window. Only completed
// orders count toward revenue.
func (h *GetAnalyticsHandler) Handle(query GetAnalyticsQuery) (*AnalyticsReport, error) {
	period := query.Period
	if period == "" {
		period = PeriodDaily
	}
	date := query.Date
	if date == "" {
		date = timeutil.Today()
	}

	bounds, err := periodBounds(period, date)
	if err != nil {
		return nil, err
	}

	orders, err := h.orders.FindCompletedBetween(bounds.Start, bounds.End)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch orders: %w", err)
	}

	ids := make([]uint, len(orders))
	for i, o := range orders {
		ids[i] = o.ID
	}
	items, err := h.orders.FindItemsByOrderIDs(ids)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch order items: %w", err)
	}

	startDate := timeutil.FormatDate(bounds.Start)
	endDate := timeutil.FormatDate(bounds.End)

	report := &AnalyticsReport{
		Period:      period,
		StartDate:   startDate,
		EndDate:     endDate,
		SalesTrends: salesTrends(orders, startDate, endDate),
		BestSelling: bestSelling(items),
		PeakHours:   peakHours(orders),
	}
	return report, nil
}

// salesTrends buckets revenue per day, zero-filling the whole range
func salesTrends(orders []orderdomain.Order, startDate, endDate string) []SalesTrend {
	dates, err := timeutil.DateRange(startDate, endDate)
	if err != nil {
		return nil
	}

	byDate := make(map[string]*SalesTrend, len(dates))
	trends := make([]SalesTrend, len(dates))
	for i, d := range dates {
		trends[i] = SalesTrend{Date: d}
		byDate[d] = &trends[i]
	}

	for _, o := range orders {
		if trend, ok := byDate[timeutil.FormatDate(o.CreatedAt)]; ok {
			trend.TotalSales += o.TotalAmount
			trend.OrderCount++
		}
	}
	return trends
}

// bestSelling ranks products by quantity sold, top ten
func bestSelling(items []orderdomain.OrderItem) []BestSeller {
	byName := make(map[string]*BestSeller)
	for _, item := range items {
		seller, ok := byName[item.ProductName]
		if !ok {
			seller = &BestSeller{ProductName: item.ProductName}
			byName[item.ProductName] = seller
		}
		seller.TotalSold += item.Quantity
		seller.TotalRevenue += item.PriceAtTime * float64(item.Quantity)
	}

	sellers := make([]BestSeller, 0, len(byName))
	for _, s := range byName {
		sellers = append(sellers, *s)
	}
	sort.SliceStable(sellers, func(i, j int) bool {
		return sellers[i].TotalSold > sellers[j].TotalSold
	})

	if len(sellers) > 10 {
		sellers = sellers[:10]
	}
	return sellers
}

// peakHours buckets orders into 24 hour-of-day slots
func peakHours(orders []orderdomain.Order) []PeakHour {
	hours := make([]PeakHour, 24)
	for i := range hours {
		hours[i].Hour = i
	}

	for _, o := range orders {
		h := timeutil.HourOf(o.CreatedAt)
		hours[h].OrderCount++
		hours[h].TotalSales += o.TotalAmount
	}
	return hours
}
