package controllers

import (
	"fmt"
	"net/http"

	"github.com/barrelborn/digital-menu/services"
	"github.com/barrelborn/digital-menu/utils"
	"github.com/gin-gonic/gin"
)

type MenuController struct {
	Menu *services.MenuService
}

func NewMenuController(menu *services.MenuService) *MenuController {
	return &MenuController{Menu: menu}
}

// GetMenuItems -> every item, or the items of ?category= through the resolver
func (mc *MenuController) GetMenuItems(c *gin.Context) {
	if category := c.Query("category"); category != "" {
		c.JSON(http.StatusOK, mc.Menu.ByCategory(c.Request.Context(), category))
		return
	}

	items, err := mc.Menu.ListAll(c.Request.Context())
	if err != nil {
		respondServiceError(c, err, "Failed to fetch menu items")
		return
	}
	c.JSON(http.StatusOK, items)
}

// GetMenuItemsByCategory -> /menu-items/category/:category
func (mc *MenuController) GetMenuItemsByCategory(c *gin.Context) {
	c.JSON(http.StatusOK, mc.Menu.ByCategory(c.Request.Context(), c.Param("category")))
}

func (mc *MenuController) GetMenuItemByID(c *gin.Context) {
	item, err := mc.Menu.ByID(c.Request.Context(), c.Param("id"))
	if err != nil {
		respondServiceError(c, err, "Failed to fetch menu item")
		return
	}
	c.JSON(http.StatusOK, item)
}

// CreateMenuItem -> admin insert into the collection named by category
func (mc *MenuController) CreateMenuItem(c *gin.Context) {
	var input services.MenuItemInput
	if err := c.ShouldBindJSON(&input); err != nil {
		respondBindError(c, "Invalid menu item data", err)
		return
	}

	item, err := mc.Menu.AddMenuItem(c.Request.Context(), input)
	if err != nil {
		respondServiceError(c, err, "Failed to add menu item")
		return
	}
	c.JSON(http.StatusCreated, item)
}

func (mc *MenuController) ClearMenuItems(c *gin.Context) {
	if err := mc.Menu.ClearAll(c.Request.Context()); err != nil {
		respondServiceError(c, err, "Failed to clear menu data")
		return
	}
	utils.RespondJSON(c, http.StatusOK, "Menu data cleared", nil)
}

func (mc *MenuController) FixVegClassification(c *gin.Context) {
	result := mc.Menu.FixVegClassification(c.Request.Context())
	c.JSON(http.StatusOK, gin.H{
		"message": fmt.Sprintf("Fixed %d items", result.Updated),
		"updated": result.Updated,
		"details": result.Details,
	})
}
