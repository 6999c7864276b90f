package services

import (
	"testing"

	"storefront/entity"
	"storefront/repository"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)
	sqlDB, err := db.DB()
	require.NoError(t, err)
	// One in-memory sqlite database per test; extra pool connections would
	// each get their own empty database.
	sqlDB.SetMaxOpenConns(1)
	require.NoError(t, db.AutoMigrate(&entity.CatalogItem{}, &entity.User{}, &entity.StateBlob{}))
	return db
}

func newTestStateRepo(t *testing.T) *repository.StateRepository {
	t.Helper()
	return repository.NewStateRepository(newTestDB(t))
}

func testLogger() *logrus.Logger {
	l := logrus.New()
	l.SetLevel(logrus.PanicLevel)
	return l
}

func pizza() entity.CatalogItem {
	return entity.CatalogItem{ItemID: "1", Name: "Margherita Pizza", Category: "Pizza",
		Price: 12.99, Image: "/assets/menu-items/margherita-pizza.jpg", IsAvailable: true}
}

func burger() entity.CatalogItem {
	return entity.CatalogItem{ItemID: "4", Name: "Classic Burger", Category: "Burger",
		Price: 9.99, Image: "/assets/menu-items/classic-burger.jpg", IsAvailable: true}
}
