package repository

import (
	"fmt"
	"time"

	"gorm.io/gorm"

	customerdomain "github.com/rasoilabs/pos-backend/internal/customer/domain"
	inventorydomain "github.com/rasoilabs/pos-backend/internal/inventory/domain"
	inventoryrepo "github.com/rasoilabs/pos-backend/internal/inventory/repository"
	"github.com/rasoilabs/pos-backend/internal/order/domain"
	"github.com/rasoilabs/pos-backend/pkg/timeutil"
)

type GormOrderRepository struct {
	db *gorm.DB
}

func NewGormOrderRepository(db *gorm.DB) *GormOrderRepository {
	return &GormOrderRepository{db: db}
}

func (r *GormOrderRepository) AutoMigrate() error {
	return r.db.AutoMigrate(&domain.Order{}, &domain.OrderItem{}, &domain.BillSequence{})
}

// nextBillSequence bumps the per-day counter and returns the new value.
// The conditional upsert serializes concurrent callers on the day row, so
// two orders created at the same instant get distinct sequence numbers.
func nextBillSequence(tx *gorm.DB, day string) (int, error) {
	var seq int
	err := tx.Raw(
		`INSERT INTO bill_sequences (day, last_number) VALUES (?, 1)
		 ON CONFLICT (day) DO UPDATE SET last_number = bill_sequences.last_number + 1
		 RETURNING last_number`,
		day,
	).Scan(&seq).Error
	if err != nil {
		return 0, fmt.Errorf("failed to allocate bill sequence: %w", err)
	}
	return seq, nil
}

// CreateCompleted runs the whole checkout workflow in a single transaction.
// If any step fails the bill number, order, items, stock decrements and
// advance debit all roll back together.
func (r *GormOrderRepository) CreateCompleted(order *domain.Order, items []domain.OrderItem) error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		now := time.Now()

		seq, err := nextBillSequence(tx, now.In(timeutil.IST).Format("20060102"))
		if err != nil {
			return err
		}
		order.BillNumber = timeutil.BillNumber(now, seq)
		order.Status = domain.StatusCompleted

		if err := tx.Create(order).Error; err != nil {
			return fmt.Errorf("failed to create order: %w", err)
		}

		for i := range items {
			items[i].OrderID = order.ID
		}
		if err := tx.Create(&items).Error; err != nil {
			return fmt.Errorf("failed to create order items: %w", err)
		}

		createdBy := order.CreatedBy
		for _, item := range items {
			_, err := inventoryrepo.ApplyStockChangeTx(
				tx,
				item.ProductID,
				inventorydomain.ChangeSale,
				-item.Quantity,
				&order.ID,
				fmt.Sprintf("Sale - Bill %s", order.BillNumber),
				&createdBy,
			)
			if err != nil {
				return err
			}
		}

		if order.AdvanceUsed > 0 {
			if order.CustomerID == nil {
				return fmt.Errorf("advance requires a customer")
			}
			res := tx.Model(&customerdomain.Customer{}).
				Where("id = ? AND advance_balance >= ?", *order.CustomerID, order.AdvanceUsed).
				Update("advance_balance", gorm.Expr("advance_balance - ?", order.AdvanceUsed))
			if res.Error != nil {
				return fmt.Errorf("failed to debit advance: %w", res.Error)
			}
			if res.RowsAffected == 0 {
				return domain.ErrInsufficientAdvance
			}
		}

		order.Items = items
		return nil
	})
}

func (r *GormOrderRepository) FindByID(id uint) (*domain.Order, error) {
	var order domain.Order
	if err := r.db.First(&order, id).Error; err != nil {
		return nil, err
	}
	return &order, nil
}

func (r *GormOrderRepository) FindAll(filter domain.OrderFilter) ([]domain.Order, error) {
	q := r.db.Order("created_at DESC")

	if filter.Date != "" {
		bounds, err := timeutil.DayBounds(filter.Date)
		if err != nil {
			return nil, fmt.Errorf("invalid date filter: %w", err)
		}
		q = q.Where("created_at BETWEEN ? AND ?", bounds.Start, bounds.End)
	} else {
		if filter.From != "" {
			bounds, err := timeutil.DayBounds(filter.From)
			if err != nil {
				return nil, fmt.Errorf("invalid from filter: %w", err)
			}
			q = q.Where("created_at >= ?", bounds.Start)
		}
		if filter.To != "" {
			bounds, err := timeutil.DayBounds(filter.To)
			if err != nil {
				return nil, fmt.Errorf("invalid to filter: %w", err)
			}
			q = q.Where("created_at <= ?", bounds.End)
		}
	}

	if filter.OrderType != "" {
		q = q.Where("order_type = ?", filter.OrderType)
	}
	if filter.PaymentMode != "" {
		q = q.Where("payment_mode = ?", filter.PaymentMode)
	}
	if filter.Status != "" {
		q = q.Where("status = ?", filter.Status)
	}
	if filter.MinAmount != nil {
		q = q.Where("total_amount >= ?", *filter.MinAmount)
	}
	if filter.MaxAmount != nil {
		q = q.Where("total_amount <= ?", *filter.MaxAmount)
	}
	if filter.BillNumber != "" {
		q = q.Where("bill_number LIKE ?", "%"+filter.BillNumber+"%")
	}
	if filter.CustomerID != 0 {
		q = q.Where("customer_id = ?", filter.CustomerID)
	}

	var orders []domain.Order
	err := q.Find(&orders).Error
	return orders, err
}

func (r *GormOrderRepository) FindItemsByOrderID(orderID uint) ([]domain.OrderItem, error) {
	var items []domain.OrderItem
	err := r.db.Where("order_id = ?", orderID).Find(&items).Error
	return items, err
}

func (r *GormOrderRepository) FindItemsByOrderIDs(orderIDs []uint) ([]domain.OrderItem, error) {
	if len(orderIDs) == 0 {
		return nil, nil
	}
	var items []domain.OrderItem
	err := r.db.Where("order_id IN ?", orderIDs).Find(&items).Error
	return items, err
}

func (r *GormOrderRepository) FindByCustomerID(customerID uint) ([]domain.Order, error) {
	var orders []domain.Order
	err := r.db.Where("customer_id = ?", customerID).Order("created_at DESC").Find(&orders).Error
	return orders, err
}

func (r *GormOrderRepository) FindCompletedBetween(start, end time.Time) ([]domain.Order, error) {
	var orders []domain.Order
	err := r.db.
		Where("status = ? AND created_at BETWEEN ? AND ?", domain.StatusCompleted, start, end).
		Order("created_at ASC").
		Find(&orders).Error
	return orders, err
}

func (r *GormOrderRepository) CountToday() (int64, error) {
	bounds, err := timeutil.DayBounds(timeutil.Today())
	if err != nil {
		return 0, err
	}

	var count int64
	err = r.db.Model(&domain.Order{}).
		Where("created_at BETWEEN ? AND ?", bounds.Start, bounds.End).
		Count(&count).Error
	return count, err
}
