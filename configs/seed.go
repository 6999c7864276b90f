package configs

import (
	"log"

	"storefront/entity"

	"gorm.io/gorm"
)

// Seed the catalog with the storefront menu. FirstOrCreate keyed on the
// item id keeps restarts idempotent; existing rows are left untouched so
// the catalog stays immutable within a session.
func SeedCatalog(db *gorm.DB) error {
	for _, item := range defaultCatalog {
		var row entity.CatalogItem
		if err := db.Where(entity.CatalogItem{ItemID: item.ItemID}).
			Attrs(item).
			FirstOrCreate(&row).Error; err != nil {
			return err
		}
	}
	log.Printf("catalog seeded: %d items", len(defaultCatalog))
	return nil
}

var defaultCatalog = []entity.CatalogItem{
	// Pizza
	{ItemID: "1", Name: "Margherita Pizza", Category: "Pizza", Price: 12.99,
		Description: "Classic tomato and mozzarella with fresh basil",
		Image:       "/assets/menu-items/margherita-pizza.jpg", IsAvailable: true},
	{ItemID: "2", Name: "Pepperoni Pizza", Category: "Pizza", Price: 14.99,
		Description: "Pepperoni and mozzarella on our signature crust",
		Image:       "/assets/menu-items/pepperoni-pizza.jpg", IsAvailable: true},
	{ItemID: "3", Name: "Veggie Supreme Pizza", Category: "Pizza", Price: 15.99,
		Description: "Loaded with fresh vegetables, mushrooms, and bell peppers",
		Image:       "/assets/menu-items/veggie-pizza.jpg", IsAvailable: true},
	// Burger
	{ItemID: "4", Name: "Classic Burger", Category: "Burger", Price: 9.99,
		Description: "Beef patty with lettuce, tomato, and our special sauce",
		Image:       "/assets/menu-items/classic-burger.jpg", IsAvailable: true},
	{ItemID: "5", Name: "Bacon Cheeseburger", Category: "Burger", Price: 12.99,
		Description: "Double beef patty with crispy bacon and melted cheese",
		Image:       "/assets/menu-items/bacon-cheeseburger.jpg", IsAvailable: true},
	{ItemID: "6", Name: "Veggie Burger", Category: "Burger", Price: 10.99,
		Description: "Plant-based patty with fresh vegetables and avocado",
		Image:       "/assets/menu-items/veggie-burger.jpg", IsAvailable: true},
	// Pasta
	{ItemID: "7", Name: "Pasta Primavera", Category: "Pasta", Price: 11.49,
		Description: "Fresh vegetables with penne in a light cream sauce",
		Image:       "/assets/menu-items/pasta-primavera.jpg", IsAvailable: true},
	{ItemID: "8", Name: "Spaghetti & Meatballs", Category: "Pasta", Price: 13.99,
		Description: "Classic spaghetti with homemade meatballs in marinara sauce",
		Image:       "/assets/menu-items/spaghetti-meatballs.jpg", IsAvailable: true},
	{ItemID: "9", Name: "Fettuccine Alfredo", Category: "Pasta", Price: 12.49,
		Description: "Creamy alfredo sauce with fresh fettuccine pasta",
		Image:       "/assets/menu-items/fettuccine-alfredo.jpg", IsAvailable: true},
	// Salad
	{ItemID: "10", Name: "Caesar Salad", Category: "Salad", Price: 8.99,
		Description: "Fresh romaine lettuce with caesar dressing and croutons",
		Image:       "/assets/menu-items/caesar-salad.jpg", IsAvailable: true},
	{ItemID: "11", Name: "Strawberry Spinach Salad", Category: "Salad", Price: 10.99,
		Description: "Fresh spinach with strawberries, walnuts, and feta cheese",
		Image:       "/assets/menu-items/strawberry-spinach-salad.jpg", IsAvailable: true},
	{ItemID: "12", Name: "Greek Salad", Category: "Salad", Price: 9.99,
		Description: "Mixed greens with olives, tomatoes, cucumber, and feta",
		Image:       "/assets/menu-items/greek-salad.jpg", IsAvailable: true},
	// Dessert
	{ItemID: "13", Name: "Chocolate Cake", Category: "Dessert", Price: 6.99,
		Description: "Rich chocolate cake with chocolate ganache",
		Image:       "/assets/menu-items/chocolate-cake.jpg", IsAvailable: true},
	{ItemID: "14", Name: "Strawberry Cheesecake", Category: "Dessert", Price: 7.99,
		Description: "Creamy cheesecake topped with fresh strawberries",
		Image:       "/assets/menu-items/strawberry-cheesecake.jpg", IsAvailable: true},
	{ItemID: "15", Name: "Tiramisu", Category: "Dessert", Price: 8.49,
		Description: "Classic Italian dessert with coffee-soaked ladyfingers",
		Image:       "/assets/menu-items/tiramisu.jpg", IsAvailable: true},
	// Beverages
	{ItemID: "16", Name: "Coca Cola", Category: "Beverages", Price: 2.99,
		Description: "Classic refreshing cola with ice",
		Image:       "/assets/menu-items/coca-cola.jpg", IsAvailable: true},
	{ItemID: "17", Name: "Fresh Orange Juice", Category: "Beverages", Price: 4.99,
		Description: "Freshly squeezed orange juice with pulp",
		Image:       "/assets/menu-items/orange-juice.jpg", IsAvailable: true},
	{ItemID: "18", Name: "Coffee", Category: "Beverages", Price: 3.49,
		Description: "Freshly brewed coffee with rich aroma",
		Image:       "/assets/menu-items/coffee.jpg", IsAvailable: true},
	{ItemID: "19", Name: "Sparkling Water", Category: "Beverages", Price: 2.49,
		Description: "Refreshing sparkling water with lemon and mint",
		Image:       "/assets/menu-items/sparkling-water.jpg", IsAvailable: true},
}
