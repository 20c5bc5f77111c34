package repository

import (
	"fmt"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	catalogdomain "github.com/rasoilabs/pos-backend/internal/catalog/domain"
	"github.com/rasoilabs/pos-backend/internal/inventory/domain"
)

type GormInventoryRepository struct {
	db *gorm.DB
}

func NewGormInventoryRepository(db *gorm.DB) *GormInventoryRepository {
	return &GormInventoryRepository{db: db}
}

func (r *GormInventoryRepository) AutoMigrate() error {
	return r.db.AutoMigrate(&domain.InventoryHistory{}, &domain.InventoryNotification{})
}

// ApplyStockChange shifts stock inside one transaction, floored at zero,
// keeping the audit trail and notification generation with it.
func (r *GormInventoryRepository) ApplyStockChange(productID uint, changeType string, quantityChange int, referenceOrderID *uint, notes string, createdBy *uint) (*domain.StockChangeResult, error) {
	var result *domain.StockChangeResult

	err := r.db.Transaction(func(tx *gorm.DB) error {
		var err error
		result, err = applyStockChangeTx(tx, productID, changeType, quantityChange, referenceOrderID, notes, createdBy)
		return err
	})
	if err != nil {
		return nil, err
	}
	return result, nil
}

// ApplyStockChangeTx is the transaction-scoped variant used by the order
// workflow, which owns the surrounding transaction.
func ApplyStockChangeTx(tx *gorm.DB, productID uint, changeType string, quantityChange int, referenceOrderID *uint, notes string, createdBy *uint) (*domain.StockChangeResult, error) {
	return applyStockChangeTx(tx, productID, changeType, quantityChange, referenceOrderID, notes, createdBy)
}

func applyStockChangeTx(tx *gorm.DB, productID uint, changeType string, quantityChange int, referenceOrderID *uint, notes string, createdBy *uint) (*domain.StockChangeResult, error) {
	var product catalogdomain.Product
	if err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).First(&product, productID).Error; err != nil {
		return nil, fmt.Errorf("product %d not found: %w", productID, err)
	}

	previous := product.StockQuantity
	newStock := previous + quantityChange
	if newStock < 0 {
		newStock = 0
	}
	// History records the clamped delta so new = previous + change holds
	clampedChange := newStock - previous

	if err := tx.Model(&catalogdomain.Product{}).
		Where("id = ?", productID).
		Update("stock_quantity", newStock).Error; err != nil {
		return nil, fmt.Errorf("failed to update stock: %w", err)
	}

	history := &domain.InventoryHistory{
		ProductID:        productID,
		ChangeType:       changeType,
		QuantityChange:   clampedChange,
		PreviousStock:    previous,
		NewStock:         newStock,
		ReferenceOrderID: referenceOrderID,
		Notes:            notes,
		CreatedBy:        createdBy,
	}
	if err := tx.Create(history).Error; err != nil {
		return nil, fmt.Errorf("failed to record inventory history: %w", err)
	}

	if notification := thresholdNotification(&product, previous, newStock); notification != nil {
		if err := tx.Create(notification).Error; err != nil {
			return nil, fmt.Errorf("failed to create stock notification: %w", err)
		}
	}

	return &domain.StockChangeResult{
		ProductID: productID,
		NewStock:  newStock,
		History:   history,
	}, nil
}

// thresholdNotification returns an alert row when the mutation crossed the
// low-stock threshold or emptied the shelf, nil otherwise.
func thresholdNotification(product *catalogdomain.Product, previous, newStock int) *domain.InventoryNotification {
	switch {
	case newStock == 0 && previous > 0:
		return &domain.InventoryNotification{
			ProductID:        product.ID,
			CurrentStock:     newStock,
			Threshold:        product.LowStockThreshold,
			NotificationType: domain.NotifyOutOfStock,
		}
	case newStock > 0 && newStock <= product.LowStockThreshold && previous > product.LowStockThreshold:
		return &domain.InventoryNotification{
			ProductID:        product.ID,
			CurrentStock:     newStock,
			Threshold:        product.LowStockThreshold,
			NotificationType: domain.NotifyLowStock,
		}
	}
	return nil
}

func (r *GormInventoryRepository) RecordChange(productID uint, changeType string, quantityChange, previousStock, newStock int, referenceOrderID *uint, notes string, createdBy *uint) error {
	history := &domain.InventoryHistory{
		ProductID:        productID,
		ChangeType:       changeType,
		QuantityChange:   quantityChange,
		PreviousStock:    previousStock,
		NewStock:         newStock,
		ReferenceOrderID: referenceOrderID,
		Notes:            notes,
		CreatedBy:        createdBy,
	}
	return r.db.Create(history).Error
}

func (r *GormInventoryRepository) FindHistory(productID uint, limit int) ([]domain.InventoryHistory, error) {
	var history []domain.InventoryHistory

	q := r.db.
		Select("inventory_history.*, products.name AS product_name").
		Joins("JOIN products ON products.id = inventory_history.product_id").
		Order("inventory_history.created_at DESC").
		Limit(limit)

	if productID != 0 {
		q = q.Where("inventory_history.product_id = ?", productID)
	}

	err := q.Find(&history).Error
	return history, err
}

func (r *GormInventoryRepository) FindNotifications(unacknowledgedOnly bool) ([]domain.InventoryNotification, error) {
	var notifications []domain.InventoryNotification

	q := r.db.Order("created_at DESC")
	if unacknowledgedOnly {
		q = q.Where("acknowledged = ?", false)
	}

	err := q.Find(&notifications).Error
	return notifications, err
}

func (r *GormInventoryRepository) Acknowledge(notificationID uint, acknowledgedBy *uint) (*domain.InventoryNotification, error) {
	var notification domain.InventoryNotification
	if err := r.db.First(&notification, notificationID).Error; err != nil {
		return nil, err
	}

	now := r.db.NowFunc()
	notification.Acknowledged = true
	notification.AcknowledgedBy = acknowledgedBy
	notification.AcknowledgedAt = &now

	if err := r.db.Save(&notification).Error; err != nil {
		return nil, err
	}
	return &notification, nil
}

func (r *GormInventoryRepository) TotalSoldByProduct() (map[uint]int, error) {
	var rows []struct {
		ProductID uint
		Total     int
	}

	err := r.db.Table("order_items").
		Select("product_id, SUM(quantity) AS total").
		Group("product_id").
		Scan(&rows).Error
	if err != nil {
		return nil, err
	}

	totals := make(map[uint]int, len(rows))
	for _, row := range rows {
		totals[row.ProductID] = row.Total
	}
	return totals, nil
}
