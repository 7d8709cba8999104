package handlers

import (
	"bytes"
	"encoding/json"
	"net/http/httptest"
	"testing"

	"github.com/glebarez/sqlite"
	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/JavierAQR/backend-luaspets/internal/config"
	"github.com/JavierAQR/backend-luaspets/internal/models"
	"github.com/JavierAQR/backend-luaspets/internal/service"
)

type testEnv struct {
	T     *testing.T
	E     *echo.Echo
	DB    *gorm.DB
	Cart  *CartHandler
	Order *OrderHandler
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)
	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)
	require.NoError(t, config.Migrate(db))

	return &testEnv{
		T:     t,
		E:     echo.New(),
		DB:    db,
		Cart:  &CartHandler{Svc: &service.CartService{DB: db}},
		Order: &OrderHandler{Svc: &service.OrderService{DB: db}},
	}
}

// doJSONRequest builds an echo context for a handler call with the identity
// the auth middleware would have injected.
func (env *testEnv) doJSONRequest(userID uint, method, path string, body interface{}) (*httptest.ResponseRecorder, echo.Context) {
	var buf bytes.Buffer
	if body != nil {
		require.NoError(env.T, json.NewEncoder(&buf).Encode(body))
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	rec := httptest.NewRecorder()
	c := env.E.NewContext(req, rec)
	c.Set("user_id", userID)
	c.Set("role", models.RoleUser)
	return rec, c
}

func (env *testEnv) seedUser(email string) *models.User {
	user := models.User{Name: "Test", Email: email, Role: models.RoleUser}
	require.NoError(env.T, env.DB.Create(&user).Error)
	return &user
}

func (env *testEnv) seedProduct(name string, priceCents int64, stock int) *models.Product {
	product := models.Product{
		Name:       name,
		Category:   models.ProductCategoryFood,
		PriceCents: priceCents,
		Stock:      stock,
		IsActive:   true,
	}
	require.NoError(env.T, env.DB.Create(&product).Error)
	return &product
}

func requireHTTPError(t *testing.T, err error, code int) {
	t.Helper()
	he, ok := err.(*echo.HTTPError)
	require.True(t, ok, "expected HTTPError, got %v", err)
	require.Equal(t, code, he.Code)
}
