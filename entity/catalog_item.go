package entity

// CatalogItem is one purchasable menu item. Rows are created by the seed
// and never mutated within a session. ItemID is the public identifier the
// storefront and the gateway speak; the numeric primary key stays internal.
type CatalogItem struct {
	ID          uint    `json:"-" gorm:"primaryKey"`
	ItemID      string  `json:"id" gorm:"uniqueIndex"`
	Name        string  `json:"name"`
	Category    string  `json:"category"`
	Price       float64 `json:"price"`
	Description string  `json:"description"`
	Image       string  `json:"image"`
	IsAvailable bool    `json:"isAvailable"`
}

// Categories selectable in the storefront. "All" is a filter value, not a
// catalog category.
var MenuCategories = []string{"All", "Pizza", "Burger", "Pasta", "Salad", "Dessert", "Beverages"}
