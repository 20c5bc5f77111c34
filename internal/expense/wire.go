//go:build wireinject
// +build wireinject

package expense

import (
	"github.com/google/wire"
	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"

	"github.com/rasoilabs/pos-backend/internal/expense/delivery/http"
	"github.com/rasoilabs/pos-backend/internal/expense/domain"
	"github.com/rasoilabs/pos-backend/internal/expense/repository"
)

// ProvideExpenseRepository provides the expense repository
func ProvideExpenseRepository(db *gorm.DB) domain.ExpenseRepository {
	return repository.NewGormExpenseRepository(db)
}

// Wire sets
var RepositorySet = wire.NewSet(
	ProvideExpenseRepository,
)

// InitializeHTTPHandler initializes HTTP handler with all dependencies
func InitializeHTTPHandler(db *gorm.DB, redisClient *redis.Client) (*http.ExpenseHandler, error) {
	wire.Build(
		RepositorySet,
		http.NewExpenseHandler,
	)
	return nil, nil
}
