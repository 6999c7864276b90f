package repository

import (
	"context"

	"storefront/entity"

	"gorm.io/gorm"
)

type CatalogRepository struct {
	DB *gorm.DB
}

func NewCatalogRepository(db *gorm.DB) *CatalogRepository {
	return &CatalogRepository{DB: db}
}

// List returns the catalog, optionally scoped to one category. "All" and
// the empty string both mean the full list.
func (r *CatalogRepository) List(ctx context.Context, category string) ([]entity.CatalogItem, error) {
	q := r.DB.WithContext(ctx).Order("id")
	if category != "" && category != "All" {
		q = q.Where("category = ?", category)
	}
	var items []entity.CatalogItem
	if err := q.Find(&items).Error; err != nil {
		return nil, err
	}
	return items, nil
}

// Search does a case-insensitive substring match over name and description.
func (r *CatalogRepository) Search(ctx context.Context, query string) ([]entity.CatalogItem, error) {
	pattern := "%" + query + "%"
	var items []entity.CatalogItem
	if err := r.DB.WithContext(ctx).
		Where("LOWER(name) LIKE LOWER(?) OR LOWER(description) LIKE LOWER(?)", pattern, pattern).
		Order("id").
		Find(&items).Error; err != nil {
		return nil, err
	}
	return items, nil
}

func (r *CatalogRepository) GetByItemID(ctx context.Context, itemID string) (*entity.CatalogItem, error) {
	var item entity.CatalogItem
	if err := r.DB.WithContext(ctx).Where("item_id = ?", itemID).First(&item).Error; err != nil {
		return nil, err
	}
	return &item, nil
}
