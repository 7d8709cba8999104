package service

import (
	"testing"

	"github.com/glebarez/sqlite"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/JavierAQR/backend-luaspets/internal/config"
	"github.com/JavierAQR/backend-luaspets/internal/models"
)

func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)

	// One connection so every query sees the same in-memory database.
	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)

	require.NoError(t, config.Migrate(db))
	return db
}

func createUser(t *testing.T, db *gorm.DB, email string) *models.User {
	t.Helper()
	user := models.User{Name: "Test", Email: email, Role: models.RoleUser}
	require.NoError(t, db.Create(&user).Error)
	return &user
}

func createProduct(t *testing.T, db *gorm.DB, name string, priceCents int64, stock int) *models.Product {
	t.Helper()
	product := models.Product{
		Name:       name,
		Category:   models.ProductCategoryFood,
		PriceCents: priceCents,
		Stock:      stock,
		IsActive:   true,
	}
	require.NoError(t, db.Create(&product).Error)
	return &product
}

func createPet(t *testing.T, db *gorm.DB, ownerID uint, name string) *models.Pet {
	t.Helper()
	pet := models.Pet{OwnerID: ownerID, Name: name, Species: "dog"}
	require.NoError(t, db.Create(&pet).Error)
	return &pet
}

func createClinicService(t *testing.T, db *gorm.DB, name string, active bool) *models.ClinicService {
	t.Helper()
	svc := models.ClinicService{Name: name, PriceCents: 3000, IsActive: active}
	require.NoError(t, db.Create(&svc).Error)
	return &svc
}

func reloadProduct(t *testing.T, db *gorm.DB, id uint) *models.Product {
	t.Helper()
	var product models.Product
	require.NoError(t, db.First(&product, id).Error)
	return &product
}
