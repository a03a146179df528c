package controllers_test

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/barrelborn/digital-menu/controllers"
	"github.com/barrelborn/digital-menu/database"
	"github.com/barrelborn/digital-menu/models"
	"github.com/barrelborn/digital-menu/services"
	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// setupTestStore uses SQLite in-memory, one database per test.
func setupTestStore(t *testing.T) *database.SQLStore {
	t.Helper()
	name := strings.NewReplacer("/", "_", " ", "_").Replace(t.Name())
	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", name)
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{Logger: logger.Default.LogMode(logger.Silent)})
	require.NoError(t, err)
	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)

	store, err := database.NewSQLStore(db, time.UTC)
	require.NoError(t, err)
	t.Cleanup(func() { _ = store.Close(context.Background()) })
	return store
}

// setupRouterForTest registers the endpoints under test without auth or
// rate limiting.
func setupRouterForTest(store database.Store) *gin.Engine {
	gin.SetMode(gin.TestMode)
	router := gin.New()

	resolver := services.NewCategoryResolver(store)
	menuSvc := services.NewMenuService(store, resolver, "rest-1")
	authSvc := services.NewAuthService(store, services.AuthConfig{
		Username: "admin",
		Password: "letmein",
		Secret:   []byte("controller-test-secret"),
		TTL:      time.Hour,
	})

	menuCtrl := controllers.NewMenuController(menuSvc)
	categoryCtrl := controllers.NewMenuCategoryController(menuSvc)
	cartCtrl := controllers.NewCartController(services.NewCartService(store))
	customerCtrl := controllers.NewCustomerController(services.NewCustomerService(store, time.UTC))
	userCtrl := controllers.NewUserController(authSvc)

	api := router.Group("/api")
	api.GET("/menu-items", menuCtrl.GetMenuItems)
	api.GET("/menu-items/category/:category", menuCtrl.GetMenuItemsByCategory)
	api.GET("/menu-items/by-id/:id", menuCtrl.GetMenuItemByID)
	api.POST("/menu-items", menuCtrl.CreateMenuItem)
	api.DELETE("/menu-items", menuCtrl.ClearMenuItems)
	api.POST("/fix-veg-classification", menuCtrl.FixVegClassification)
	api.GET("/categories", categoryCtrl.GetAllCategories)

	api.GET("/cart", cartCtrl.GetCart)
	api.POST("/cart", cartCtrl.AddToCart)
	api.DELETE("/cart/:id", cartCtrl.RemoveFromCart)
	api.DELETE("/cart", cartCtrl.ClearCart)

	api.POST("/customers", customerCtrl.CreateCustomer)
	api.GET("/customers", customerCtrl.GetAllCustomers)
	api.GET("/customers/export", customerCtrl.ExportCustomers)

	api.POST("/login", userCtrl.Login)
	return router
}

func doRequest(t *testing.T, router http.Handler, method, path string, body interface{}) *httptest.ResponseRecorder {
	t.Helper()
	var buf bytes.Buffer
	switch b := body.(type) {
	case nil:
	case string:
		buf.WriteString(b)
	default:
		require.NoError(t, json.NewEncoder(&buf).Encode(b))
	}
	req, err := http.NewRequest(method, path, &buf)
	require.NoError(t, err)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	return w
}

func decode(t *testing.T, w *httptest.ResponseRecorder, v interface{}) {
	t.Helper()
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), v), w.Body.String())
}

func seedItem(t *testing.T, store database.Store, collection, name, description string, veg bool) *models.MenuItem {
	t.Helper()
	now := time.Now().UTC()
	item := &models.MenuItem{
		Name:        name,
		Description: description,
		Price:       models.TextPrice("450"),
		Category:    collection,
		IsVeg:       veg,
		IsAvailable: true,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	require.NoError(t, store.InsertMenuItem(context.Background(), collection, item))
	return item
}
