package controllers

import (
	"net/http"

	"github.com/barrelborn/digital-menu/services"
	"github.com/gin-gonic/gin"
)

type MenuCategoryController struct {
	Menu *services.MenuService
}

func NewMenuCategoryController(menu *services.MenuService) *MenuCategoryController {
	return &MenuCategoryController{Menu: menu}
}

// GetAllCategories
func (mcc *MenuCategoryController) GetAllCategories(c *gin.Context) {
	c.JSON(http.StatusOK, mcc.Menu.Categories())
}
