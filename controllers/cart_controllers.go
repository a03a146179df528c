package controllers

import (
	"net/http"

	"github.com/barrelborn/digital-menu/services"
	"github.com/barrelborn/digital-menu/utils"
	"github.com/gin-gonic/gin"
)

type CartController struct {
	Cart *services.CartService
}

func NewCartController(cart *services.CartService) *CartController {
	return &CartController{Cart: cart}
}

func (cc *CartController) GetCart(c *gin.Context) {
	items, err := cc.Cart.List(c.Request.Context())
	if err != nil {
		respondServiceError(c, err, "Failed to fetch cart items")
		return
	}
	c.JSON(http.StatusOK, items)
}

// AddToCart -> increments the existing row for menuItemId, or creates it
func (cc *CartController) AddToCart(c *gin.Context) {
	var input services.CartItemInput
	if err := c.ShouldBindJSON(&input); err != nil {
		respondBindError(c, "Invalid cart item data", err)
		return
	}

	item, err := cc.Cart.Add(c.Request.Context(), input)
	if err != nil {
		respondServiceError(c, err, "Failed to add item to cart")
		return
	}
	c.JSON(http.StatusOK, item)
}

func (cc *CartController) RemoveFromCart(c *gin.Context) {
	if err := cc.Cart.Remove(c.Request.Context(), c.Param("id")); err != nil {
		respondServiceError(c, err, "Failed to remove item from cart")
		return
	}
	utils.RespondJSON(c, http.StatusOK, "Item removed from cart", nil)
}

func (cc *CartController) ClearCart(c *gin.Context) {
	if err := cc.Cart.Clear(c.Request.Context()); err != nil {
		respondServiceError(c, err, "Failed to clear cart")
		return
	}
	utils.RespondJSON(c, http.StatusOK, "Cart cleared", nil)
}
