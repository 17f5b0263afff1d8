package sandbox

import (
	"github.com/marespinozac/comanda/app/models"
	"github.com/marespinozac/comanda/pkg/logger"
)

// seed loads a demo dataset: one account per role (password "secret"),
// a few categories and a small menu. It is a no-op if users already exist.
func (s *Server) seed() error {
	var count int64
	if err := s.db.Model(&User{}).Count(&count).Error; err != nil {
		return err
	}
	if count > 0 {
		return nil
	}

	hash, err := hashPassword("secret")
	if err != nil {
		return err
	}

	users := []User{
		{Username: "admin", FullName: "Ana Admin", Role: string(models.RoleAdmin)},
		{Username: "manager", FullName: "Marta Manager", Role: string(models.RoleManager)},
		{Username: "cashier", FullName: "Carlos Cashier", Role: string(models.RoleCashier)},
		{Username: "waiter", FullName: "Wendy Waiter", Role: string(models.RoleWaiter)},
		{Username: "cook", FullName: "Camilo Cook", Role: string(models.RoleCook)},
		{Username: "bartender", FullName: "Bruno Bartender", Role: string(models.RoleBartender)},
	}
	for i := range users {
		users[i].PasswordHash = hash
	}
	if err := s.db.Create(&users).Error; err != nil {
		return err
	}

	categories := []Category{
		{Name: "Starters", Description: "Small plates", Color: "#4CAF50", Icon: "🥗"},
		{Name: "Mains", Description: "Main courses", Color: "#FF5722", Icon: "🍽️"},
		{Name: "Drinks", Description: "Cold and hot drinks", Color: "#2196F3", Icon: "🍹"},
		{Name: "Desserts", Description: "Sweet endings", Color: "#9C27B0", Icon: "🍰"},
	}
	if err := s.db.Create(&categories).Error; err != nil {
		return err
	}

	byName := make(map[string]string, len(categories))
	for _, c := range categories {
		byName[c.Name] = c.ID
	}

	products := []Product{
		{Name: "Bruschetta", Price: 6.50, CategoryID: byName["Starters"], Stock: 100, MinStock: 5, IsActive: true},
		{Name: "Soup of the day", Price: 5.00, CategoryID: byName["Starters"], Stock: 100, MinStock: 5, IsActive: true},
		{Name: "Grilled salmon", Price: 18.90, CategoryID: byName["Mains"], Stock: 100, MinStock: 5, IsActive: true},
		{Name: "Ribeye steak", Price: 24.00, CategoryID: byName["Mains"], Stock: 100, MinStock: 5, IsActive: true},
		{Name: "Margherita pizza", Price: 12.50, CategoryID: byName["Mains"], Stock: 100, MinStock: 5, IsActive: true},
		{Name: "Lemonade", Price: 3.50, CategoryID: byName["Drinks"], Stock: 100, MinStock: 5, IsActive: true},
		{Name: "Espresso", Price: 2.20, CategoryID: byName["Drinks"], Stock: 100, MinStock: 5, IsActive: true},
		{Name: "House red (glass)", Price: 5.50, CategoryID: byName["Drinks"], Stock: 100, MinStock: 5, IsActive: true},
		{Name: "Tiramisu", Price: 6.00, CategoryID: byName["Desserts"], Stock: 100, MinStock: 5, IsActive: true},
		{Name: "Seasonal special", Price: 15.00, CategoryID: byName["Mains"], Stock: 100, MinStock: 5, IsActive: false},
	}
	if err := s.db.Create(&products).Error; err != nil {
		return err
	}

	logger.Info("sandbox seeded",
		"users", len(users), "categories", len(categories), "products", len(products))
	return nil
}
