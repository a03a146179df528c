package controllers_test

import (
	"net/http"
	"testing"

	"github.com/barrelborn/digital-menu/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGetMenuItems(t *testing.T) {
	store := setupTestStore(t)
	router := setupRouterForTest(store)

	w := doRequest(t, router, http.MethodGet, "/api/menu-items", nil)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `[]`, w.Body.String())

	seedItem(t, store, "soups", "Tomato Shorba", "tangy", true)
	seedItem(t, store, "nibbles", "Chicken Wings", "hot", false)
	seedItem(t, store, "nibbles", "Masala Peanuts", "crunchy", true)

	w = doRequest(t, router, http.MethodGet, "/api/menu-items", nil)
	require.Equal(t, http.StatusOK, w.Code)
	var items []models.MenuItem
	decode(t, w, &items)
	require.Len(t, items, 3)
	assert.Equal(t, "Masala Peanuts", items[0].Name)
	assert.Equal(t, "Tomato Shorba", items[1].Name)
	assert.Equal(t, "Chicken Wings", items[2].Name)
	assert.Equal(t, "450", items[0].Price.Text)
}

func TestGetMenuItemsByCategory(t *testing.T) {
	store := setupTestStore(t)
	router := setupRouterForTest(store)
	seedItem(t, store, "red wines", "Shiraz", "peppery", false)

	w := doRequest(t, router, http.MethodGet, "/api/menu-items/category/red-wines", nil)
	require.Equal(t, http.StatusOK, w.Code)
	var items []models.MenuItem
	decode(t, w, &items)
	require.Len(t, items, 1)
	assert.Equal(t, "red wines", items[0].Category)

	w = doRequest(t, router, http.MethodGet, "/api/menu-items?category=red-wines", nil)
	require.Equal(t, http.StatusOK, w.Code)
	decode(t, w, &items)
	assert.Len(t, items, 1)

	w = doRequest(t, router, http.MethodGet, "/api/menu-items/category/desserts", nil)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `[]`, w.Body.String())
}

func TestGetMenuItemByID(t *testing.T) {
	store := setupTestStore(t)
	router := setupRouterForTest(store)
	item := seedItem(t, store, "desserts", "Gulab Jamun", "syrupy", true)

	w := doRequest(t, router, http.MethodGet, "/api/menu-items/by-id/"+item.ID, nil)
	require.Equal(t, http.StatusOK, w.Code)
	var got models.MenuItem
	decode(t, w, &got)
	assert.Equal(t, "Gulab Jamun", got.Name)

	w = doRequest(t, router, http.MethodGet, "/api/menu-items/by-id/unknown", nil)
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestCreateMenuItem(t *testing.T) {
	store := setupTestStore(t)
	router := setupRouterForTest(store)

	w := doRequest(t, router, http.MethodPost, "/api/menu-items", map[string]interface{}{
		"name":        "Masala Fries",
		"description": "peri peri dusted",
		"price":       "180",
		"category":    "nibbles",
		"isVeg":       true,
		"image":       "https://cdn.example.com/fries.jpg",
	})
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	var created models.MenuItem
	decode(t, w, &created)
	assert.NotEmpty(t, created.ID)
	assert.Equal(t, "rest-1", created.RestaurantID)
	assert.True(t, created.IsAvailable)

	w = doRequest(t, router, http.MethodPost, "/api/menu-items", map[string]interface{}{
		"name":        "No Image",
		"description": "x",
		"price":       100,
		"category":    "nibbles",
		"isVeg":       false,
	})
	assert.Equal(t, http.StatusBadRequest, w.Code)

	w = doRequest(t, router, http.MethodPost, "/api/menu-items", `{"name": `)
	assert.Equal(t, http.StatusBadRequest, w.Code)

	w = doRequest(t, router, http.MethodDelete, "/api/menu-items", nil)
	assert.Equal(t, http.StatusOK, w.Code)
	w = doRequest(t, router, http.MethodGet, "/api/menu-items", nil)
	assert.JSONEq(t, `[]`, w.Body.String())
}

func TestFixVegClassification(t *testing.T) {
	router := setupRouterForTest(setupTestStore(t))

	w := doRequest(t, router, http.MethodPost, "/api/fix-veg-classification", nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"message": "Fixed 0 items", "updated": 0, "details": []}`, w.Body.String())
}

func TestGetAllCategories(t *testing.T) {
	router := setupRouterForTest(setupTestStore(t))

	w := doRequest(t, router, http.MethodGet, "/api/categories", nil)
	require.Equal(t, http.StatusOK, w.Code)
	var categories []string
	decode(t, w, &categories)
	assert.Equal(t, models.Categories(), categories)
}
