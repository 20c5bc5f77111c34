package repository

import (
	"gorm.io/gorm"

	"github.com/rasoilabs/pos-backend/internal/expense/domain"
)

type GormExpenseRepository struct {
	db *gorm.DB
}

func NewGormExpenseRepository(db *gorm.DB) *GormExpenseRepository {
	return &GormExpenseRepository{db: db}
}

func (r *GormExpenseRepository) AutoMigrate() error {
	return r.db.AutoMigrate(&domain.Expense{})
}

func (r *GormExpenseRepository) Create(expense *domain.Expense) error {
	return r.db.Create(expense).Error
}

func (r *GormExpenseRepository) FindByID(id uint) (*domain.Expense, error) {
	var expense domain.Expense
	if err := r.db.First(&expense, id).Error; err != nil {
		return nil, err
	}
	return &expense, nil
}

func (r *GormExpenseRepository) FindAll(filter domain.ExpenseFilter) ([]domain.Expense, error) {
	q := r.db.Order("expense_date DESC, created_at DESC")

	if filter.Date != "" {
		q = q.Where("expense_date = ?", filter.Date)
	} else {
		if filter.From != "" {
			q = q.Where("expense_date >= ?", filter.From)
		}
		if filter.To != "" {
			q = q.Where("expense_date <= ?", filter.To)
		}
	}
	if filter.Category != "" {
		q = q.Where("category = ?", filter.Category)
	}

	var expenses []domain.Expense
	err := q.Find(&expenses).Error
	return expenses, err
}

func (r *GormExpenseRepository) Update(expense *domain.Expense) error {
	return r.db.Save(expense).Error
}

func (r *GormExpenseRepository) Delete(id uint) error {
	return r.db.Delete(&domain.Expense{}, id).Error
}

// SumBetween totals expenses whose business date falls in [from, to].
// Date strings compare correctly because the format is YYYY-MM-DD.
func (r *GormExpenseRepository) SumBetween(from, to string) (float64, error) {
	var total float64
	err := r.db.Model(&domain.Expense{}).
		Where("expense_date BETWEEN ? AND ?", from, to).
		Select("COALESCE(SUM(amount), 0)").
		Scan(&total).Error
	return total, err
}
