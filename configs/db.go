package configs

import (
	"storefront/entity"

	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func ConnectDB(source string) (*gorm.DB, error) {
	db, err := gorm.Open(sqlite.Open(source), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		return nil, err
	}
	return db, nil
}

func SetupDatabase(db *gorm.DB) error {
	// Migrate the schema
	return db.AutoMigrate(
		&entity.CatalogItem{},
		&entity.User{},
		&entity.StateBlob{},
	)
}
