package repository

import (
	"fmt"
	"strings"
	"testing"

	"widgetfactory/internal/app/store/entity"

	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// setupTestDB открывает in-memory SQLite с уникальным именем на тест,
// чтобы параллельные тесты не делили состояние
func setupTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	name := strings.ReplaceAll(t.Name(), "/", "_")
	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", name)

	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)

	require.NoError(t, AutoMigrate(db))

	return db
}

// seedProduct создает категорию и товар для тестов SKU и заказов
func seedProduct(t *testing.T, db *gorm.DB, name string) *entity.Product {
	t.Helper()

	category := entity.ProductCategory{Name: name + " category"}
	require.NoError(t, db.Create(&category).Error)

	product := entity.Product{
		Name:         name,
		Manufacturer: "Acme",
		CategoryID:   category.ID,
	}
	require.NoError(t, db.Create(&product).Error)

	return &product
}
