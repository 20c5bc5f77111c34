package seed

import (
	"fmt"

	catalogdomain "github.com/rasoilabs/pos-backend/internal/catalog/domain"
	userdomain "github.com/rasoilabs/pos-backend/internal/user/domain"
	"github.com/rasoilabs/pos-backend/pkg/logger"
)

// Result summarizes a seeding run
type Result struct {
	AlreadySeeded bool `json:"already_seeded"`
	Users         int  `json:"users,omitempty"`
	Categories    int  `json:"categories,omitempty"`
	Products      int  `json:"products,omitempty"`
}

// Seeder populates a fresh database with the default users and menu
type Seeder struct {
	users      userdomain.UserRepository
	categories catalogdomain.CategoryRepository
	products   catalogdomain.ProductRepository
}

// NewSeeder creates a new seeder
func NewSeeder(
	users userdomain.UserRepository,
	categories catalogdomain.CategoryRepository,
	products catalogdomain.ProductRepository,
) *Seeder {
	return &Seeder{users: users, categories: categories, products: products}
}

type seedProduct struct {
	name     string
	category string
	price    float64
}

var seedCategories = []catalogdomain.Category{
	{Name: "Steamed", DisplayOrder: 1},
	{Name: "Tandoori", DisplayOrder: 2},
	{Name: "Sandwich", DisplayOrder: 3},
	{Name: "Boiled/Omelette", DisplayOrder: 4},
	{Name: "Salad", DisplayOrder: 5},
	{Name: "Brown Rice", DisplayOrder: 6},
	{Name: "Shakes/Coffee", DisplayOrder: 7},
	{Name: "Sprouts", DisplayOrder: 8},
	{Name: "Wrap", DisplayOrder: 9},
}

var seedProducts = []seedProduct{
	{"Steamed Chicken Chest", "Steamed", 100},
	{"Steamed Chicken Leg Thigh", "Steamed", 120},
	{"Steamed Fish (250 gms)", "Steamed", 290},

	{"Tandoori Chest (6 pc)", "Tandoori", 130},
	{"Tandoori Leg Thigh (3 pc)", "Tandoori", 140},
	{"Tandoori Chicken (Half)", "Tandoori", 290},
	{"Tandoori Chicken (Full)", "Tandoori", 450},

	{"Chicken Sandwich (Grilled)", "Sandwich", 100},
	{"Boiled Egg Sandwich", "Sandwich", 70},
	{"Egg Omlette Sandwich", "Sandwich", 80},
	{"Veg. Paneer Sandwich", "Sandwich", 80},
	{"Peanut Butter Sandwich (Grilled)", "Sandwich", 50},

	{"Boiled Egg (per pc)", "Boiled/Omelette", 10},
	{"Egg Omelette (3 pc)", "Boiled/Omelette", 60},
	{"Chicken Egg Omelette", "Boiled/Omelette", 150},
	{"Oats Egg Omelette", "Boiled/Omelette", 80},
	{"Egg Bhurji", "Boiled/Omelette", 70},
	{"Paneer Bhurji", "Boiled/Omelette", 100},

	{"Chicken Salad", "Salad", 190},
	{"Boiled Egg Salad", "Salad", 160},
	{"Paneer Veg. Salad", "Salad", 160},

	{"Plain Brown Rice", "Brown Rice", 80},
	{"Veg. Paneer Rice", "Brown Rice", 140},
	{"Chicken Chest Rice", "Brown Rice", 160},
	{"Chicken Leg Rice", "Brown Rice", 170},
	{"Egg Brown Rice", "Brown Rice", 140},
	{"Fish Rice (Full 650g)", "Brown Rice", 240},

	{"Whey Protein Shake", "Shakes/Coffee", 110},
	{"Gaining Protein Shake", "Shakes/Coffee", 150},
	{"Banana Shake", "Shakes/Coffee", 50},
	{"Cold Coffee", "Shakes/Coffee", 90},
	{"Hot Coffee", "Shakes/Coffee", 70},

	{"Chana+Mung Daal", "Sprouts", 50},
	{"Sweet Corn Sprouts", "Sprouts", 50},
	{"Mix Sprouts", "Sprouts", 60},
	{"Egg Sprouts", "Sprouts", 70},

	{"Chicken Wrap", "Wrap", 150},
	{"Veg. Paneer Wrap", "Wrap", 130},
}

// Run seeds the default users, categories and menu. A database that
// already has users is left untouched.
func (s *Seeder) Run() (*Result, error) {
	count, err := s.users.Count()
	if err != nil {
		return nil, fmt.Errorf("failed to count users: %w", err)
	}
	if count > 0 {
		logger.Logger.Info().Msg("Database already seeded")
		return &Result{AlreadySeeded: true}, nil
	}

	users := []userdomain.User{
		{Username: "admin", PIN: "1234", Role: userdomain.RoleAdmin},
		{Username: "cashier", PIN: "5678", Role: userdomain.RoleCashier},
	}
	for i := range users {
		if err := s.users.Create(&users[i]); err != nil {
			return nil, fmt.Errorf("failed to seed user %s: %w", users[i].Username, err)
		}
	}

	categoryIDs := make(map[string]uint, len(seedCategories))
	for _, c := range seedCategories {
		category := c
		if err := s.categories.Create(&category); err != nil {
			return nil, fmt.Errorf("failed to seed category %s: %w", category.Name, err)
		}
		categoryIDs[category.Name] = category.ID
	}

	for _, p := range seedProducts {
		product := catalogdomain.Product{
			Name:       p.name,
			CategoryID: categoryIDs[p.category],
			Price:      p.price,
			Enabled:    true,
		}
		if err := s.products.Create(&product); err != nil {
			return nil, fmt.Errorf("failed to seed product %s: %w", p.name, err)
		}
	}

	logger.Logger.Info().
		Int("users", len(users)).
		Int("categories", len(seedCategories)).
		Int("products", len(seedProducts)).
		Msg("Database seeded")

	return &Result{
		Users:      len(users),
		Categories: len(seedCategories),
		Products:   len(seedProducts),
	}, nil
}
