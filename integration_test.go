package main

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"os"
	"testing"
	"time"

	"github.com/barrelborn/digital-menu/config"
	"github.com/barrelborn/digital-menu/database"
	"github.com/barrelborn/digital-menu/router"
	"github.com/barrelborn/digital-menu/utils"
	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func TestMain(m *testing.M) {
	utils.InitLogger("warn", "text")
	gin.SetMode(gin.TestMode)
	os.Exit(m.Run())
}

// TestEndToEndIntegration walks the guest and admin flows:
// 1. Guest leaves contact details on the welcome page
// 2. Admin logs in and adds menu items
// 3. Guest browses by category and fills the cart
// 4. Admin reads and exports captured customers
func TestEndToEndIntegration(t *testing.T) {
	r := router.SetupRouter(testConfig(), setupTestStore(t))

	captureCustomerTest(t, r)
	token := loginTest(t, r)
	addMenuItemsTest(t, r, token)
	browseAndOrderTest(t, r)
	dashboardTest(t, r, token)
}

func TestRouterFallbacks(t *testing.T) {
	r := router.SetupRouter(testConfig(), setupTestStore(t))

	w := performRequest(r, http.MethodGet, "/ping", nil, "")
	assert.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"message": "pong"}`, w.Body.String())

	w = performRequest(r, http.MethodGet, "/api/nothing-here", nil, "")
	assert.Equal(t, http.StatusNotFound, w.Code)

	w = performRequest(r, http.MethodPut, "/api/cart", map[string]string{}, "")
	assert.Equal(t, http.StatusMethodNotAllowed, w.Code)

	req := httptest.NewRequest(http.MethodGet, "/api/categories", nil)
	req.Header.Set("Origin", "https://tablet.example.com")
	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, req)
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "https://tablet.example.com", rec.Header().Get("Access-Control-Allow-Origin"))
	assert.Equal(t, "true", rec.Header().Get("Access-Control-Allow-Credentials"))
}

func TestDashboardOpenWhenAuthNotRequired(t *testing.T) {
	cfg := testConfig()
	cfg.AdminAuthRequired = false
	r := router.SetupRouter(cfg, setupTestStore(t))

	w := performRequest(r, http.MethodGet, "/api/customers", nil, "")
	assert.Equal(t, http.StatusOK, w.Code)

	// Destructive routes stay protected.
	w = performRequest(r, http.MethodDelete, "/api/admin/menu-items", nil, "")
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func testConfig() *config.Config {
	return &config.Config{
		AdminUsername:     "admin",
		AdminPassword:     "barrel-born",
		AdminAuthRequired: true,
		JWTSecret:         []byte("integration-secret"),
		JWTTTL:            time.Hour,
		RestaurantID:      "rest-1",
		Location:          time.UTC,
		LoginRatePerMin:   10,
	}
}

func setupTestStore(t *testing.T) database.Store {
	t.Helper()
	dsn := "file:" + t.Name() + "?mode=memory&cache=shared"
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

func performRequest(r http.Handler, method, path string, body interface{}, token string) *httptest.ResponseRecorder {
	var buf bytes.Buffer
	if body != nil {
		_ = json.NewEncoder(&buf).Encode(body)
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func captureCustomerTest(t *testing.T, r http.Handler) {
	w := performRequest(r, http.MethodPost, "/api/customers", map[string]string{"name": "Meera", "phone": "9000000001"}, "")
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	w = performRequest(r, http.MethodPost, "/api/customers", map[string]string{"name": "Meera S", "phone": "9000000001"}, "")
	require.Equal(t, http.StatusOK, w.Code)
	var again map[string]interface{}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &again))
	assert.Equal(t, "Meera", again["name"])
}

func loginTest(t *testing.T, r http.Handler) string {
	w := performRequest(r, http.MethodPost, "/api/login", map[string]string{"username": "admin", "password": "wrong"}, "")
	require.Equal(t, http.StatusUnauthorized, w.Code)

	w = performRequest(r, http.MethodPost, "/api/login", map[string]string{"username": "admin", "password": "barrel-born"}, "")
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	var resp struct {
		Data struct {
			Token string `json:"token"`
		} `json:"data"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	require.NotEmpty(t, resp.Data.Token)
	return resp.Data.Token
}

func addMenuItemsTest(t *testing.T, r http.Handler, token string) {
	item := map[string]interface{}{
		"name":        "Shiraz",
		"description": "peppery red",
		"price":       "650",
		"category":    "red wines",
		"isVeg":       true,
		"image":       "https://cdn.example.com/shiraz.jpg",
	}
	w := performRequest(r, http.MethodPost, "/api/admin/menu-items", item, "")
	require.Equal(t, http.StatusUnauthorized, w.Code)

	w = performRequest(r, http.MethodPost, "/api/admin/menu-items", item, token)
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())

	item["name"] = "Merlot"
	item["price"] = 720
	w = performRequest(r, http.MethodPost, "/api/admin/menu-items", item, token)
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
}

func browseAndOrderTest(t *testing.T, r http.Handler) {
	w := performRequest(r, http.MethodGet, "/api/menu-items/category/red-wines", nil, "")
	require.Equal(t, http.StatusOK, w.Code)
	var items []map[string]interface{}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &items))
	require.Len(t, items, 2)
	assert.Equal(t, "Merlot", items[0]["name"])
	assert.Equal(t, "red wines", items[0]["category"])
	assert.Equal(t, float64(720), items[0]["price"])
	assert.Equal(t, "650", items[1]["price"])

	menuItemID := items[0]["_id"].(string)
	for i := 0; i < 2; i++ {
		w = performRequest(r, http.MethodPost, "/api/cart", map[string]interface{}{"menuItemId": menuItemID}, "")
		require.Equal(t, http.StatusOK, w.Code)
	}

	w = performRequest(r, http.MethodGet, "/api/cart", nil, "")
	var cart []map[string]interface{}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &cart))
	require.Len(t, cart, 1)
	assert.Equal(t, float64(2), cart[0]["quantity"])

	w = performRequest(r, http.MethodDelete, "/api/cart/"+cart[0]["_id"].(string), nil, "")
	assert.Equal(t, http.StatusOK, w.Code)
}

func dashboardTest(t *testing.T, r http.Handler, token string) {
	w := performRequest(r, http.MethodGet, "/api/customers", nil, "")
	assert.Equal(t, http.StatusUnauthorized, w.Code)

	w = performRequest(r, http.MethodGet, "/api/customers?page=1&limit=10", nil, token)
	require.Equal(t, http.StatusOK, w.Code)
	var page struct {
		Customers []map[string]interface{} `json:"customers"`
		Total     int                      `json:"total"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &page))
	assert.Equal(t, 1, page.Total)

	w = performRequest(r, http.MethodGet, "/api/customers/export", nil, token)
	require.Equal(t, http.StatusOK, w.Code)
	var rows []map[string]string
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &rows))
	require.Len(t, rows, 1)
	assert.Equal(t, "Meera", rows[0]["Name"])

	w = performRequest(r, http.MethodPost, "/api/fix-veg-classification", nil, token)
	assert.Equal(t, http.StatusOK, w.Code)
}
